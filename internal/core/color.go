package core

// Color is the foreground color of a screen cell. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

// Cell colors. ColorDefault leaves the terminal's foreground untouched.
const (
	ColorDefault Color = iota
	ColorBlue
	ColorMagenta
	ColorGreen
	ColorYellow
	ColorRed
	ColorCyan
	ColorWhite
	ColorGray
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
)

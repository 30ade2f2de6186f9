package engine

// Gesture is a pointer press/release pair already mapped to grid coordinates.
type Gesture struct {
	Press   Coord
	Release Coord
}

// Intent derives a swap from the gesture: the dominant axis of
// (Release - Press) picks the direction, vertical winning ties. A zero
// displacement yields no intent.
func (g Gesture) Intent() (SwapIntent, bool) {
	dr := g.Release.Row - g.Press.Row
	dc := g.Release.Col - g.Press.Col
	if dr == 0 && dc == 0 {
		return SwapIntent{}, false
	}

	var dir Direction
	if abs(dr) >= abs(dc) {
		dir = DirDown
		if dr < 0 {
			dir = DirUp
		}
	} else {
		dir = DirRight
		if dc < 0 {
			dir = DirLeft
		}
	}
	return SwapIntent{From: g.Press, Dir: dir}, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package engine

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	// Coordinates are rejected, never clamped.
	ErrOutOfBounds = errors.New("engine: coordinate out of bounds")

	// ErrEmptyCell is returned when a swap touches a cell without a piece.
	ErrEmptyCell = errors.New("engine: empty cell")

	// ErrNoCandidateColor is recorded when every palette color would create
	// a match; the generator then keeps its unfiltered draw.
	ErrNoCandidateColor = errors.New("engine: no candidate color")

	// ErrSwapInFlight is returned while a previous swap awaits its verdict
	// or its swap-back.
	ErrSwapInFlight = errors.New("engine: swap already in flight")

	// ErrNotYourTurn is returned when the side without the turn requests a swap.
	ErrNotYourTurn = errors.New("engine: not your turn")
)

var (
	// ErrBoardBusy is returned when a swap is requested while the previous
	// resolve cycle (destroy, collapse, refill) has not settled the board.
	ErrBoardBusy = errors.New("engine: board still resolving")

	// ErrGameOver is returned for requests after the session has ended.
	ErrGameOver = errors.New("engine: game over")
)

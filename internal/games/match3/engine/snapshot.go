package engine

// PieceView is one filled cell as seen by the presentation layer.
type PieceView struct {
	Piece
	Handle Handle
}

// Snapshot captures the complete session state for rendering, determinism
// testing and replay.
type Snapshot struct {
	Tick      uint64
	Width     int
	Height    int
	Pieces    []PieceView // Row-major
	Board     string      // Grid.String form
	Phase     Phase
	Turn      Side
	Mode      Mode
	Human     Tally
	Automated Tally
	Pending   PendingUndo
	GameOver  bool
	Reason    string
}

// Snapshot returns a detached copy of the session state.
func (s *Session) Snapshot() Snapshot {
	views := make([]PieceView, 0, s.grid.width*s.grid.height)
	for r := 0; r < s.grid.height; r++ {
		for c := 0; c < s.grid.width; c++ {
			p, ok := s.grid.Cell(r, c)
			if !ok {
				continue
			}
			views = append(views, PieceView{Piece: p, Handle: s.grid.Handle(r, c)})
		}
	}

	return Snapshot{
		Tick:      s.tick,
		Width:     s.grid.width,
		Height:    s.grid.height,
		Pieces:    views,
		Board:     s.grid.String(),
		Phase:     s.Phase(),
		Turn:      s.turn,
		Mode:      s.cfg.Mode,
		Human:     s.tallies[SideHuman],
		Automated: s.tallies[SideAutomated],
		Pending:   s.pending,
		GameOver:  s.over,
		Reason:    s.overReason,
	}
}

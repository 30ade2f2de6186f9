package engine

import (
	"errors"
	"time"
)

// Tick advances the session by delta. Phases run in a fixed order:
// queued swaps, match flagging, destroy, collapse, refill, opponent search
// and swap-back. Each scheduled phase only does work when its own interval
// elapses.
func (s *Session) Tick(delta time.Duration) {
	s.tick++
	if s.over {
		return
	}

	s.drainQueue()

	if n := FlagMatches(s.grid); n > 0 {
		s.emit(Event{Kind: EventMatched, Cells: Scan(s.grid)})
		s.log.Debug("pieces matched", "count", n)
	}

	if s.destroyTimer.Advance(delta) {
		s.destroyPhase()
	}
	if s.collapseTimer.Advance(delta) {
		s.collapsePhase()
	}
	if s.refillTimer.Advance(delta) {
		s.refillPhase()
	}
	if s.turn == SideAutomated && s.cfg.Mode != ModeSolo && s.opponentTimer.Advance(delta) {
		s.opponentPhase()
	}
	if s.swapBackTimer.Advance(delta) {
		s.swapBackPhase()
	}

	s.checkGameOver()
}

// drainQueue commits queued swaps in FIFO order.
func (s *Session) drainQueue() {
	queue := s.queue
	s.queue = nil
	for _, cmd := range queue {
		s.commit(cmd)
	}
}

// commit performs a swap and arms the pending-undo slot.
func (s *Session) commit(cmd command) {
	if s.pending.Blocked() {
		s.reject(cmd, ErrSwapInFlight)
		return
	}
	rec, err := AttemptSwap(s.grid, cmd.intent.From, cmd.intent.Dir)
	if err != nil {
		if errors.Is(err, ErrEmptyCell) {
			s.log.Debug("swap over empty cell ignored", "from", cmd.intent.From, "dir", cmd.intent.Dir)
			return
		}
		s.reject(cmd, err)
		return
	}

	s.version++
	s.pending = PendingUndo{Record: rec, Side: cmd.side, Armed: true}
	s.emit(Event{Kind: EventSwapped, Side: cmd.side, Swap: rec})
	s.log.Debug("swap committed", "side", cmd.side, "from", rec.Pos1, "to", rec.Pos2)
}

func (s *Session) reject(cmd command, err error) {
	s.emit(Event{Kind: EventSwapRejected, Side: cmd.side, Intent: cmd.intent, Err: err})
	s.log.Debug("swap rejected", "side", cmd.side, "from", cmd.intent.From, "dir", cmd.intent.Dir, "err", err)
}

// destroyPhase removes flagged pieces. A pending swap is judged here: any
// removal makes it productive, none makes it raise a swap-back.
func (s *Session) destroyPhase() {
	var cells []Coord
	var handles []Handle
	for r := 0; r < s.grid.height; r++ {
		for c := 0; c < s.grid.width; c++ {
			p, ok := s.grid.Cell(r, c)
			if !ok || !p.Matched {
				continue
			}
			_, h, _ := s.grid.Clear(r, c)
			cells = append(cells, C(r, c))
			handles = append(handles, h)
		}
	}

	if len(cells) > 0 {
		s.version++
		s.emit(Event{Kind: EventDestroyed, Cells: cells, Handles: handles})
		s.log.Debug("pieces destroyed", "count", len(cells))
		if s.pending.Armed {
			side := s.pending.Side
			s.pending = PendingUndo{}
			s.settle(side)
		}
		return
	}

	if s.pending.Armed {
		back := s.pending.Record.Inverse()
		s.pending.Armed = false
		s.pending.SwapBack = true
		s.pending.Back = back
		s.emit(Event{Kind: EventSwapBack, Side: s.pending.Side, Intent: back})
		s.log.Debug("no match, swapping back", "from", back.From, "dir", back.Dir)
	}
}

// settle credits the side whose swap was productive and passes the turn.
// The automated side is credited when it issues its move.
func (s *Session) settle(side Side) {
	if side == SideHuman {
		t := &s.tallies[SideHuman]
		t.Moves++
		t.Score++
		s.emit(Event{Kind: EventScored, Side: side})
	}
	if s.cfg.AlternateTurns && s.cfg.Mode == ModeVsCPU {
		s.passTurn(side)
	}
}

// passTurn hands the turn to the other side unless it has no moves left.
func (s *Session) passTurn(from Side) {
	next := from.Other()
	if s.outOfMoves(next) {
		return
	}
	s.SetTurn(next)
}

// swapBackPhase reverses an unproductive swap with the same routine that
// made it.
func (s *Session) swapBackPhase() {
	if !s.pending.SwapBack {
		return
	}
	back := s.pending.Back
	side := s.pending.Side
	s.pending = PendingUndo{}

	rec, err := AttemptSwap(s.grid, back.From, back.Dir)
	if err != nil {
		s.log.Warn("swap back failed", "from", back.From, "dir", back.Dir, "err", err)
		return
	}
	s.version++
	s.emit(Event{Kind: EventSwappedBack, Side: side, Swap: rec})
	s.log.Debug("swap reverted", "from", rec.Pos1, "to", rec.Pos2)
}

// collapsePhase moves at most one piece per column: the lowest hole that has
// a piece above it receives the nearest such piece. Repeated passes complete
// the fall.
func (s *Session) collapsePhase() {
	var moved []Coord
	for c := 0; c < s.grid.width; c++ {
		if to, from, ok := collapseTarget(s.grid, c); ok {
			s.grid.Move(from, to)
			moved = append(moved, to)
		}
	}
	if len(moved) > 0 {
		s.version++
		s.emit(Event{Kind: EventCollapsed, Cells: moved})
	}
}

// collapseTarget finds the next move in column col.
func collapseTarget(g *Grid, col int) (to, from Coord, ok bool) {
	r := g.height - 1
	for r >= 0 && g.Filled(r, col) {
		r--
	}
	if r < 0 {
		return Coord{}, Coord{}, false
	}
	for k := r - 1; k >= 0; k-- {
		if g.Filled(k, col) {
			return C(r, col), C(k, col), true
		}
	}
	return Coord{}, Coord{}, false
}

// needsCollapse reports whether any column has a piece above a hole.
func needsCollapse(g *Grid) bool {
	for c := 0; c < g.width; c++ {
		if _, _, ok := collapseTarget(g, c); ok {
			return true
		}
	}
	return false
}

// refillPhase spawns new pieces into eligible columns.
func (s *Session) refillPhase() {
	spawned := s.gen.Refill(s.grid)
	if len(spawned) == 0 {
		return
	}
	handles := make([]Handle, len(spawned))
	for i, c := range spawned {
		handles[i] = s.grid.Handle(c.Row, c.Col)
	}
	s.version++
	s.emit(Event{Kind: EventSpawned, Cells: spawned, Handles: handles})
	s.log.Debug("columns refilled", "pieces", len(spawned))
}

// opponentPhase searches for a move on a settled board and issues it.
func (s *Session) opponentPhase() {
	if !s.Settled() || len(s.queue) > 0 || s.outOfMoves(SideAutomated) {
		return
	}
	intent, ok := FindMove(s.grid)
	if !ok {
		return
	}
	if err := s.RequestSwap(SideAutomated, intent); err != nil {
		s.log.Debug("opponent move refused", "err", err)
		return
	}
	t := &s.tallies[SideAutomated]
	t.Moves++
	t.Score++
	s.emit(Event{Kind: EventOpponentMove, Side: SideAutomated, Intent: intent})
	s.log.Debug("opponent move", "from", intent.From, "dir", intent.Dir)
}

// outOfMoves reports whether a side has used its move allowance.
func (s *Session) outOfMoves(side Side) bool {
	return s.cfg.MovesPerSide > 0 && s.tallies[side].Moves >= s.cfg.MovesPerSide
}

// checkGameOver ends the session once the board is settled and either the
// move allowance is spent or no swap can produce a match.
func (s *Session) checkGameOver() {
	if !s.Settled() || len(s.queue) > 0 {
		return
	}

	var reason string
	switch {
	case s.cfg.Mode == ModeVsCPU && s.outOfMoves(SideHuman) && s.outOfMoves(SideAutomated):
		reason = "out of moves"
	case s.cfg.Mode == ModeSolo && s.outOfMoves(SideHuman):
		reason = "out of moves"
	case s.cfg.Mode == ModeWatch && s.outOfMoves(SideAutomated):
		reason = "out of moves"
	case s.noMovesLeft():
		reason = "no moves left"
	default:
		// The side holding the turn may be spent while the other is not.
		if s.cfg.Mode == ModeVsCPU && s.outOfMoves(s.turn) {
			s.SetTurn(s.turn.Other())
		}
		return
	}

	s.over = true
	s.overReason = reason
	s.emit(Event{Kind: EventGameOver, Reason: reason})
	s.log.Debug("game over", "reason", reason,
		"human", s.tallies[SideHuman].Score,
		"automated", s.tallies[SideAutomated].Score,
	)
}

// noMovesLeft runs the opponent search once per board version.
func (s *Session) noMovesLeft() bool {
	if s.deadlockCheck != s.version {
		_, ok := FindMove(s.grid)
		s.deadlocked = !ok
		s.deadlockCheck = s.version
	}
	return s.deadlocked
}

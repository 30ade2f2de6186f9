package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Side identifies who issues swap intents.
type Side int

const (
	SideHuman Side = iota
	SideAutomated
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideHuman:
		return "human"
	case SideAutomated:
		return "automated"
	default:
		return "unknown"
	}
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideHuman {
		return SideAutomated
	}
	return SideHuman
}

// Mode selects which sides take part in a session.
type Mode int

const (
	ModeVsCPU Mode = iota // Human and automated opponent
	ModeSolo              // Human only
	ModeWatch             // Automated only
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeVsCPU:
		return "vs CPU"
	case ModeSolo:
		return "solo"
	case ModeWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// Tally holds per-side counters, read-only for presentation.
type Tally struct {
	Moves int
	Score int
}

// Timers holds the cadence of each scheduled phase.
type Timers struct {
	Destroy  time.Duration
	Collapse time.Duration
	Refill   time.Duration
	Opponent time.Duration
	SwapBack time.Duration
}

// DefaultTimers returns the classic cadence.
func DefaultTimers() Timers {
	return Timers{
		Destroy:  800 * time.Millisecond,
		Collapse: 1000 * time.Millisecond,
		Refill:   1400 * time.Millisecond,
		Opponent: 3000 * time.Millisecond,
		SwapBack: 200 * time.Millisecond,
	}
}

// SessionConfig configures a game session.
type SessionConfig struct {
	Width          int
	Height         int
	Palette        Palette
	Seed           int64
	Rand           IntNSource // Overrides Seed when set
	Timers         Timers
	Mode           Mode
	StartingTurn   Side
	AlternateTurns bool // Pass the turn after each productive swap (vs CPU only)
	MovesPerSide   int  // 0 means unlimited
	Logger         *log.Logger
}

// DefaultSessionConfig returns a 7x7 vs-CPU session with the classic timers.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Width:          7,
		Height:         7,
		Palette:        DefaultPalette,
		Timers:         DefaultTimers(),
		Mode:           ModeVsCPU,
		StartingTurn:   SideHuman,
		AlternateTurns: true,
	}
}

// PendingUndo is the single in-flight swap slot.
type PendingUndo struct {
	Record   SwapRecord
	Side     Side
	Armed    bool       // Committed, verdict not yet given
	SwapBack bool       // Judged unproductive, waiting for the swap-back phase
	Back     SwapIntent // Inverse swap to apply when SwapBack is set
}

// Blocked reports whether the slot rejects new swaps.
func (p PendingUndo) Blocked() bool {
	return p.Armed || p.SwapBack
}

// command is a queued swap request.
type command struct {
	side   Side
	intent SwapIntent
}

// Session is the game context: the grid, the resolution scheduler timers,
// the pending-undo slot, the turn marker and the counters. All phases run
// from Tick in a fixed order. A Session is not safe for concurrent use.
type Session struct {
	cfg  SessionConfig
	grid *Grid
	gen  *Generator
	log  *log.Logger

	tick    uint64
	turn    Side
	pending PendingUndo
	queue   []command
	press   *Coord

	destroyTimer  Interval
	collapseTimer Interval
	refillTimer   Interval
	opponentTimer Interval
	swapBackTimer Interval

	tallies [2]Tally
	events  []Event

	version       uint64 // Bumped on every grid mutation
	deadlockCheck uint64 // Version the last no-move check ran against
	deadlocked    bool

	over       bool
	overReason string
}

// NewSession generates a fresh board and returns a session ready to tick.
func NewSession(cfg SessionConfig) *Session {
	cfg = normalizeConfig(cfg)
	gen := newSessionGenerator(cfg)
	return newSession(cfg, gen, gen.Generate(cfg.Width, cfg.Height))
}

// NewSessionWithGrid starts a session on an existing board. The grid's
// dimensions override the configured ones.
func NewSessionWithGrid(cfg SessionConfig, grid *Grid) *Session {
	cfg = normalizeConfig(cfg)
	cfg.Width, cfg.Height = grid.Width(), grid.Height()
	return newSession(cfg, newSessionGenerator(cfg), grid)
}

func normalizeConfig(cfg SessionConfig) SessionConfig {
	if cfg.Width <= 0 {
		cfg.Width = 7
	}
	if cfg.Height <= 0 {
		cfg.Height = 7
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultPalette
	}
	if cfg.Timers == (Timers{}) {
		cfg.Timers = DefaultTimers()
	}
	switch cfg.Mode {
	case ModeSolo:
		cfg.StartingTurn = SideHuman
		cfg.AlternateTurns = false
	case ModeWatch:
		cfg.StartingTurn = SideAutomated
		cfg.AlternateTurns = false
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return cfg
}

func newSessionGenerator(cfg SessionConfig) *Generator {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	return NewGenerator(rng, cfg.Palette)
}

func newSession(cfg SessionConfig, gen *Generator, grid *Grid) *Session {
	s := &Session{
		cfg:           cfg,
		grid:          grid,
		gen:           gen,
		log:           cfg.Logger,
		turn:          cfg.StartingTurn,
		destroyTimer:  NewInterval(cfg.Timers.Destroy),
		collapseTimer: NewInterval(cfg.Timers.Collapse),
		refillTimer:   NewInterval(cfg.Timers.Refill),
		opponentTimer: NewInterval(cfg.Timers.Opponent),
		swapBackTimer: NewInterval(cfg.Timers.SwapBack),
		deadlockCheck: ^uint64(0),
	}
	s.log.Debug("session started",
		"mode", cfg.Mode,
		"size", fmt.Sprintf("%dx%d", grid.Width(), grid.Height()),
		"turn", s.turn,
	)
	return s
}

// Grid returns the live grid. Callers must treat it as read-only; use
// Snapshot for a detached copy.
func (s *Session) Grid() *Grid { return s.grid }

// Config returns the effective configuration.
func (s *Session) Config() SessionConfig { return s.cfg }

// Turn returns the side currently allowed to swap.
func (s *Session) Turn() Side { return s.turn }

// SetTurn switches the turn marker.
func (s *Session) SetTurn(side Side) {
	if s.turn == side {
		return
	}
	s.turn = side
	s.opponentTimer.Reset()
	s.emit(Event{Kind: EventTurnChanged, Side: side})
}

// SetOpponentPeriod changes how often the automated side may act. The
// time already accumulated toward the next move is kept.
func (s *Session) SetOpponentPeriod(d time.Duration) {
	if d <= 0 || d == s.opponentTimer.Period {
		return
	}
	s.opponentTimer.Period = d
	s.cfg.Timers.Opponent = d
}

// Pending returns the in-flight swap slot.
func (s *Session) Pending() PendingUndo { return s.pending }

// Tally returns the counters of a side.
func (s *Session) Tally(side Side) Tally { return s.tallies[side] }

// GeneratorStats returns the board generator's counters.
func (s *Session) GeneratorStats() GeneratorStats { return s.gen.Stats() }

// TickCount returns the number of ticks run so far.
func (s *Session) TickCount() uint64 { return s.tick }

// GameOver reports whether the session has ended and why.
func (s *Session) GameOver() (bool, string) { return s.over, s.overReason }

// Winner returns the side with the higher score; ok is false on a draw or
// in single-sided modes.
func (s *Session) Winner() (side Side, ok bool) {
	if s.cfg.Mode != ModeVsCPU {
		return 0, false
	}
	h, a := s.tallies[SideHuman].Score, s.tallies[SideAutomated].Score
	switch {
	case h > a:
		return SideHuman, true
	case a > h:
		return SideAutomated, true
	default:
		return 0, false
	}
}

// Settled reports whether the board is full with no runs and no swap in
// flight; a new resolve cycle may only start from here.
func (s *Session) Settled() bool {
	return !s.pending.Blocked() && s.grid.EmptyCount() == 0 && !hasRuns(s.grid)
}

// Phase reports which stage of the resolve cycle the board is in.
func (s *Session) Phase() Phase {
	switch {
	case s.pending.SwapBack:
		return PhaseSwapBackPending
	case s.pending.Armed:
		return PhaseAwaitingVerdict
	case hasRuns(s.grid):
		return PhaseDestroying
	case needsCollapse(s.grid):
		return PhaseCollapsing
	case s.grid.EmptyCount() > 0:
		return PhaseRefilling
	default:
		return PhaseIdle
	}
}

// RequestSwap queues a swap for the next tick after validating it against
// the turn marker, the in-flight slot and the board. An empty cell is
// reported as ErrEmptyCell, which callers treat as a no-op.
func (s *Session) RequestSwap(side Side, intent SwapIntent) error {
	if s.over {
		return ErrGameOver
	}
	if side != s.turn {
		return fmt.Errorf("request swap by %s: %w", side, ErrNotYourTurn)
	}
	if s.pending.Blocked() || len(s.queue) > 0 {
		return fmt.Errorf("request swap %v %s: %w", intent.From, intent.Dir, ErrSwapInFlight)
	}
	to := intent.To()
	if intent.Dir == DirNone || !s.grid.InBounds(intent.From.Row, intent.From.Col) || !s.grid.InBounds(to.Row, to.Col) {
		return fmt.Errorf("request swap %v %s: %w", intent.From, intent.Dir, ErrOutOfBounds)
	}
	if !s.grid.Filled(intent.From.Row, intent.From.Col) || !s.grid.Filled(to.Row, to.Col) {
		return fmt.Errorf("request swap %v %s: %w", intent.From, intent.Dir, ErrEmptyCell)
	}
	if !s.Settled() {
		return fmt.Errorf("request swap %v %s: %w", intent.From, intent.Dir, ErrBoardBusy)
	}
	s.queue = append(s.queue, command{side: side, intent: intent})
	return nil
}

// Press records the grid cell where a pointer went down. Coordinates outside
// the board cancel any pending press.
func (s *Session) Press(row, col int) {
	if !s.grid.InBounds(row, col) {
		s.press = nil
		return
	}
	c := C(row, col)
	s.press = &c
}

// Release completes a gesture started by Press and requests the derived swap
// for the human side. It returns false with a nil error when the gesture
// produced no intent.
func (s *Session) Release(row, col int) (bool, error) {
	if s.press == nil {
		return false, nil
	}
	g := Gesture{Press: *s.press, Release: C(row, col)}
	s.press = nil
	intent, ok := g.Intent()
	if !ok {
		return false, nil
	}
	if err := s.RequestSwap(SideHuman, intent); err != nil {
		return false, err
	}
	return true, nil
}

// Pressed returns the cell of an unreleased press, if any.
func (s *Session) Pressed() (Coord, bool) {
	if s.press == nil {
		return Coord{}, false
	}
	return *s.press, true
}

// Events returns and clears the events raised since the last call.
func (s *Session) Events() []Event {
	out := s.events
	s.events = nil
	return out
}

func (s *Session) emit(e Event) {
	e.Tick = s.tick
	s.events = append(s.events, e)
}

package engine

// Phase is the stage of the resolve cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingVerdict
	PhaseSwapBackPending
	PhaseDestroying
	PhaseCollapsing
	PhaseRefilling
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingVerdict:
		return "awaiting verdict"
	case PhaseSwapBackPending:
		return "swap-back pending"
	case PhaseDestroying:
		return "destroying"
	case PhaseCollapsing:
		return "collapsing"
	case PhaseRefilling:
		return "refilling"
	default:
		return "unknown"
	}
}

// EventKind identifies what an Event reports.
type EventKind int

const (
	EventSwapped      EventKind = iota // A swap was committed
	EventSwapRejected                  // A queued swap failed validation
	EventMatched                       // Pieces were flagged
	EventDestroyed                     // Flagged pieces were removed
	EventSwapBack                      // An unproductive swap will be reversed
	EventSwappedBack                   // The reversal was applied
	EventCollapsed                     // Pieces fell into holes
	EventSpawned                       // Refill placed new pieces
	EventOpponentMove                  // The automated side issued a swap
	EventScored                        // A side was credited for a resolved swap
	EventTurnChanged
	EventGameOver
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSwapped:
		return "swapped"
	case EventSwapRejected:
		return "swap rejected"
	case EventMatched:
		return "matched"
	case EventDestroyed:
		return "destroyed"
	case EventSwapBack:
		return "swap back"
	case EventSwappedBack:
		return "swapped back"
	case EventCollapsed:
		return "collapsed"
	case EventSpawned:
		return "spawned"
	case EventOpponentMove:
		return "opponent move"
	case EventScored:
		return "scored"
	case EventTurnChanged:
		return "turn changed"
	case EventGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Event is an outbound notification for presentation and logging.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Tick    uint64
	Side    Side
	Swap    SwapRecord // Swapped, SwappedBack
	Intent  SwapIntent // SwapBack, OpponentMove, SwapRejected
	Cells   []Coord    // Matched, Destroyed, Collapsed (destinations), Spawned
	Handles []Handle   // Destroyed, Spawned
	Err     error      // SwapRejected
	Reason  string     // GameOver
}

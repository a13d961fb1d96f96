package engine

// Phase is the game's lifecycle state.
type Phase int

const (
	// PhaseSetup accepts players; no turns have been taken.
	PhaseSetup Phase = iota
	// PhaseInProgress alternates turns between players.
	PhaseInProgress
	// PhaseOver is terminal.
	PhaseOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseInProgress:
		return "in progress"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome reasons.
const (
	ReasonTargetEliminated = "target eliminated"
	ReasonMaxTurns         = "max turns reached"
	ReasonEnded            = "ended"
)

// Outcome is the terminal result of a game. The zero value means the game
// is not over.
type Outcome struct {
	Over bool
	// Winner is the eliminating player's name, empty when nobody won.
	Winner string
	// Reason is one of the Reason constants once Over is set.
	Reason string
}

// PlayerState is a read-only view of one player.
type PlayerState struct {
	Name     string
	Computer bool
	Room     int
	Capacity int
	Items    []string
}

// GameState is a value snapshot of the whole game, safe to hand to a
// renderer or front-end.
type GameState struct {
	GameID   string
	World    string
	Phase    Phase
	Turn     int
	MaxTurns int

	// Current player fields are zero when no players have joined.
	CurrentPlayer     string
	CurrentIndex      int
	CurrentIsComputer bool
	CurrentRoom       int
	CurrentRoomName   string

	TargetName   string
	TargetHealth int
	TargetRoom   int

	PetName string
	PetRoom int

	Players []PlayerState
	Outcome Outcome
}

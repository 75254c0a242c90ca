package game

// State should be immutable - Play always returns a new copy and leaves the receiver untouched
type State interface {
	Player() Side
	LegalMoves() []Move
	Play(Move) (State, Status)
	Copy() State
	Winner() Side
	Count(Side) int
}

// Status is the outcome of applying a move to a state.
type Status int

const (
	Continue Status = iota
	GameOver
	Illegal
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case GameOver:
		return "game over"
	case Illegal:
		return "illegal"
	default:
		return "unknown"
	}
}

// Evaluates a non-terminal state to a score from the perspective of the player to move.
type Evaluate func(State) int

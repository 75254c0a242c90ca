package communication

import (
	"context"

	"gothello/game"
)

// BasePort is the port of referee number 0. Referee n listens on BasePort+n.
const BasePort = 29057

// Status tells whether the game goes on after a session exchange.
type Status int

const (
	Continue Status = iota
	Done
)

func (s Status) String() string {
	if s == Done {
		return "done"
	}
	return "continue"
}

// Session abstracts the player's connection to the referee.
type Session interface {
	Side() game.Side
	SubmitMove(ctx context.Context, move game.Move) (Status, error)
	ReceiveMove(ctx context.Context) (game.Move, Status, error)
	// Winner is meaningful once a call returned Done. None means a draw.
	Winner() game.Side
}

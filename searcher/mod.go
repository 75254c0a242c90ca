package searcher

import (
	"errors"
	"fmt"
	"math"

	"gothello/game"
)

// Infinity is the score of a won game. It exceeds any heuristic evaluation so that a forced
// win or loss always outranks a non-terminal position.
const Infinity = game.MaxEval + 1

// Unbounded is the depth budget used after a forced pass.
const Unbounded = math.MaxInt

// ErrInconsistent reports that the legal move generator and the rules disagree. The search
// cannot recover from it.
var ErrInconsistent = errors.New("move generator and rules disagree")

var (
	ErrIllegalMove        = fmt.Errorf("%w: generated move is illegal", ErrInconsistent)
	ErrUnexpectedGameOver = fmt.Errorf("%w: unexpected game over", ErrInconsistent)
)

// terminalValue scores a finished game for the player who was to move before the final pass,
// relative to the maximizing flag of the call that reached it.
func terminalValue(mover, winner game.Side, maximizing bool) int {
	score := 0
	switch winner {
	case mover:
		score = Infinity
	case mover.Opponent():
		score = -Infinity
	}
	if !maximizing {
		return -score
	}
	return score
}

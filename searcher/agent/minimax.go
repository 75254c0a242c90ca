package agent

import (
	"gothello/game"
	"gothello/searcher"

	"golang.org/x/exp/rand"
)

type minimaxAgent struct {
	minimax *searcher.Minimax
	depth   int
	rng     *rand.Rand
}

// NewMinimaxAgent returns an agent that searches depth plies for every move. The root search
// runs with maximizing=false: its values are negated relative to the mover but it selects
// the same moves as a maximizing root.
func NewMinimaxAgent(minimax *searcher.Minimax, depth int, rng *rand.Rand) Agent {
	return minimaxAgent{minimax: minimax, depth: depth, rng: rng}
}

func (a minimaxAgent) FindMove(state game.State) (searcher.Result, error) {
	return a.minimax.Search(state, a.depth, false, a.rng)
}

package agent

import (
	"gothello/game"
	"gothello/searcher"
)

type Agent interface {
	// FindMove returns the selected move with its search value and metrics (if collected)
	FindMove(state game.State) (searcher.Result, error)
}

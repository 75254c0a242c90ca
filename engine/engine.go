package engine

import (
	"gothello/experiments/metrics"
	"gothello/game"
)

// MaxMoves bounds a local game. Every stone placement is permanent, so a real game ends well
// before this; hitting it means an agent keeps returning the same state.
const MaxMoves = 200

type Engine interface {
	// Run plays a game till it is over or MaxMoves is reached. The winner is None for a draw.
	Run() (winner game.Side, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

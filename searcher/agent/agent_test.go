package agent

import (
	"testing"

	"gothello/game"
	"gothello/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMinimaxAgent(t *testing.T) {
	t.Run("finding a legal move on the opening board", func(t *testing.T) {
		a := NewMinimaxAgent(searcher.NewMinimax(searcher.WithMetrics()), 1, rand.New(rand.NewSource(5)))
		board := game.NewBoard()

		result, err := a.FindMove(board)

		require.NoError(t, err)
		require.Contains(t, board.LegalMoves(), result.Move)
		require.Equal(t, 1, result.Metric.Depth)
		require.Equal(t, -1, result.Value, "Any first stone leaves the opponent one behind")
		require.Equal(t, 25, result.Ties)
	})

	t.Run("same seed gives the same move", func(t *testing.T) {
		board := game.NewBoard()
		a1 := NewMinimaxAgent(searcher.NewMinimax(), 1, rand.New(rand.NewSource(9)))
		a2 := NewMinimaxAgent(searcher.NewMinimax(), 1, rand.New(rand.NewSource(9)))

		r1, err := a1.FindMove(board)
		require.NoError(t, err)
		r2, err := a2.FindMove(board)
		require.NoError(t, err)

		require.Equal(t, r1.Move, r2.Move)
	})
}

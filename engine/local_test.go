package engine

import (
	"testing"

	"gothello/game"
	"gothello/searcher"
	"gothello/searcher/agent"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type passingAgent struct{}

func (passingAgent) FindMove(state game.State) (searcher.Result, error) {
	return searcher.Result{Move: game.PassMove, Ties: 1}, nil
}

type offBoardAgent struct{}

func (offBoardAgent) FindMove(state game.State) (searcher.Result, error) {
	return searcher.Result{Move: game.Move{Row: -1}}, nil
}

func newAgent(depth int, seed uint64) agent.Agent {
	return agent.NewMinimaxAgent(searcher.NewMinimax(searcher.WithMetrics()), depth, rand.New(rand.NewSource(seed)))
}

func TestLocalEngine(t *testing.T) {
	t.Run("two passes end the game in a draw", func(t *testing.T) {
		e := LocalEngine(passingAgent{}, passingAgent{})

		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.None, winner)
		require.Equal(t, "draw", gameMetric.Winner)
		require.Equal(t, "black", gameMetric.StartingPlayer)
		require.Equal(t, 2, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 2)
		require.Equal(t, "pass", moveMetrics[1].Move)
		require.Equal(t, "white", moveMetrics[1].Player)
	})

	t.Run("illegal agent move is reported", func(t *testing.T) {
		e := LocalEngine(offBoardAgent{}, passingAgent{})

		_, _, _, err := e.Run()

		require.ErrorIs(t, err, ErrIllegalAgentMove)
	})

	t.Run("minimax agents finish a game", func(t *testing.T) {
		e := LocalEngine(newAgent(1, 1), newAgent(1, 2))

		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.True(t, e.State.Over)
		require.Equal(t, e.State.Winner(), winner)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, e.State.Count(game.Black), gameMetric.BlackStones)
		require.Equal(t, e.State.Count(game.White), gameMetric.WhiteStones)
		require.Equal(t, 1, moveMetrics[0].Step)
		require.Equal(t, 25, moveMetrics[0].Ties)
		require.Positive(t, moveMetrics[0].Nodes)
	})
}

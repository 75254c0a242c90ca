package engine

import (
	"errors"
	"fmt"
	"time"

	"gothello/experiments/metrics"
	"gothello/game"
	"gothello/searcher/agent"

	"github.com/rs/zerolog/log"
)

var (
	ErrIllegalAgentMove = errors.New("agent returned an illegal move")
	ErrTooManyMoves     = errors.New("game exceeded the move limit")
)

type Local struct {
	State  *game.Board
	Agents map[game.Side]agent.Agent
}

// LocalEngine plays black against white on one board, without a referee.
func LocalEngine(black, white agent.Agent) *Local {
	return &Local{
		State: game.NewBoard(),
		Agents: map[game.Side]agent.Agent{
			game.Black: black,
			game.White: white,
		},
	}
}

// Run plays the game to its end.
func (e *Local) Run() (game.Side, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.Player().String(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.State.Player())

	for !e.State.Over {
		if len(moveMetrics) >= MaxMoves {
			return game.None, gameMetric, moveMetrics, fmt.Errorf("%w: %d", ErrTooManyMoves, MaxMoves)
		}

		player := e.State.Player()
		serial := e.State.Serial
		result, err := e.Agents[player].FindMove(e.State)
		if err != nil {
			return game.None, gameMetric, moveMetrics, fmt.Errorf("%s failed to search move %d: %w", player, serial, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         serial,
			Player:       player.String(),
			Move:         result.Move.String(),
			Value:        result.Value,
			Ties:         result.Ties,
			SearchMetric: result.Metric,
		})

		if e.State.Apply(result.Move) == game.Illegal {
			return game.None, gameMetric, moveMetrics, fmt.Errorf("%w: %s played %s at move %d", ErrIllegalAgentMove, player, result.Move, serial)
		}
		log.Debug().Msgf("%d. %s %s\n%s", serial, player, result.Move, e.State)
	}

	winner := e.State.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Winner = winnerName(winner)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.BlackStones = e.State.Count(game.Black)
	gameMetric.WhiteStones = e.State.Count(game.White)

	return winner, gameMetric, moveMetrics, nil
}

func winnerName(winner game.Side) string {
	if winner == game.None {
		return "draw"
	}
	return winner.String()
}

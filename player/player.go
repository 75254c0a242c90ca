package player

import (
	"context"
	"errors"
	"fmt"

	"gothello/communication"
	"gothello/game"
	"gothello/searcher"
	"gothello/searcher/agent"

	"github.com/rs/zerolog/log"
)

var (
	ErrIllegalOwnMove      = fmt.Errorf("%w: made illegal move", searcher.ErrInconsistent)
	ErrExpectedGameOver    = fmt.Errorf("%w: referee continues a finished game", searcher.ErrInconsistent)
	ErrIllegalOpponentMove = fmt.Errorf("%w: received illegal move", searcher.ErrInconsistent)
)

var errTerminated = errors.New("game terminated")

// Player plays one game for a side over a session, keeping its own copy of the board.
type Player struct {
	Session        communication.Session
	LocalGameState *game.Board
	agent          agent.Agent
	winner         game.Side
}

// NewPlayer creates a new Player instance.
func NewPlayer(session communication.Session, a agent.Agent) *Player {
	return &Player{
		Session:        session,
		LocalGameState: game.NewBoard(),
		agent:          a,
	}
}

// Play alternates between our move and the opponent's, black first, until the game ends. It
// returns the winner, None for a draw. Any error aborts the game.
func (p *Player) Play(ctx context.Context) (game.Side, error) {
	me := p.Session.Side()
	for {
		for _, side := range [2]game.Side{game.Black, game.White} {
			var err error
			if side == me {
				err = p.makeMove(ctx)
			} else {
				err = p.receiveMove(ctx)
			}
			if errors.Is(err, errTerminated) {
				log.Info().Msg(Report(p.winner))
				return p.winner, nil
			}
			if err != nil {
				return game.None, err
			}
		}
	}
}

func (p *Player) makeMove(ctx context.Context) error {
	serial := p.LocalGameState.Serial
	result, err := p.agent.FindMove(p.LocalGameState)
	if err != nil {
		return fmt.Errorf("failed to search move %d: %w", serial, err)
	}
	move := result.Move
	log.Info().Msgf("me:  %d. %s", serial, move)
	log.Debug().
		Int("value", result.Value).
		Int("ties", result.Ties).
		Int("nodes", result.Metric.Nodes).
		Dur("duration", result.Metric.Duration).
		Msg("search complete")

	local := p.LocalGameState.Apply(move)
	if local == game.Illegal {
		return fmt.Errorf("%w: %s at move %d", ErrIllegalOwnMove, move, serial)
	}

	status, err := p.Session.SubmitMove(ctx, move)
	if err != nil {
		return fmt.Errorf("move %s refused by referee: %w", move, err)
	}
	if status == communication.Continue && local != game.Continue {
		return fmt.Errorf("%w: after %s at move %d", ErrExpectedGameOver, move, serial)
	}
	if status == communication.Done {
		if local != game.GameOver {
			log.Warn().Msg("unexpected game over")
		}
		p.winner = p.Session.Winner()
		return errTerminated
	}
	return nil
}

func (p *Player) receiveMove(ctx context.Context) error {
	move, status, err := p.Session.ReceiveMove(ctx)
	if err != nil {
		return fmt.Errorf("couldn't receive move: %w", err)
	}
	if status == communication.Done {
		p.winner = p.Session.Winner()
		return errTerminated
	}

	serial := p.LocalGameState.Serial
	log.Info().Msgf("opp: %d. %s", serial, move)
	switch p.LocalGameState.Apply(move) {
	case game.Illegal:
		return fmt.Errorf("%w: %s at move %d", ErrIllegalOpponentMove, move, serial)
	case game.GameOver:
		// The referee announces the end on the next exchange; adjudicate locally instead of
		// searching a finished board.
		log.Warn().Msg("opponent move ended the game")
		p.winner = p.LocalGameState.Winner()
		return errTerminated
	}
	return nil
}

// Report describes the result for humans.
func Report(winner game.Side) string {
	switch winner {
	case game.Black:
		return "game ends with black win"
	case game.White:
		return "game ends with white win"
	default:
		return "game ends with draw"
	}
}

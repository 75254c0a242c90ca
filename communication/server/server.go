package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"

	"gothello/communication"
	"gothello/game"
	"gothello/gamemaster"

	"github.com/rs/zerolog/log"
)

// Observer receives every update of every game hosted by the referee.
type Observer interface {
	Publish(update gamemaster.Update)
}

type Option func(s *Server)

func WithObserver(observer Observer) Option {
	return func(s *Server) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// Server is a referee: it pairs one black and one white player per game, relays their moves
// and adjudicates the result.
type Server struct {
	listener net.Listener
	observer Observer

	mu      sync.RWMutex
	waiting map[game.Side]*seat
	games   map[string]*gamemaster.GameMaster
	wg      sync.WaitGroup
}

type seat struct {
	side game.Side
	conn *communication.Conn
}

type noObserver struct{}

func (noObserver) Publish(gamemaster.Update) {}

func Listen(addr string, options ...Option) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := &Server{
		listener: listener,
		observer: noObserver{},
		waiting:  make(map[game.Side]*seat),
		games:    make(map[string]*gamemaster.GameMaster),
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Games summarizes every game hosted so far, oldest first.
func (s *Server) Games() []gamemaster.Summary {
	s.mu.RLock()
	summaries := make([]gamemaster.Summary, 0, len(s.games))
	for _, gm := range s.games {
		summaries = append(summaries, gm.Summary())
	}
	s.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StartedAt.Before(summaries[j].StartedAt)
	})
	return summaries
}

// Serve accepts players until ctx is done, then waits for running games to finish.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		s.listener.Close()
	})
	defer stop()

	log.Info().Msgf("referee listening on %s", s.Addr())
	for {
		nc, err := s.listener.Accept()
		if err != nil {
			s.wg.Wait()
			s.closeWaiting()
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("failed to accept player: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.admit(ctx, communication.NewConn(nc))
		}()
	}
}

func (s *Server) closeWaiting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for side, p := range s.waiting {
		p.conn.Close()
		delete(s.waiting, side)
	}
}

func (s *Server) Close() error {
	return s.listener.Close()
}

// admit greets a new connection, reads the side it claims and seats it. The goroutine of the
// second player of a pair runs the game.
func (s *Server) admit(ctx context.Context, conn *communication.Conn) {
	p, err := handshake(ctx, conn)
	if err != nil {
		log.Warn().Err(err).Msgf("rejected player from %s", conn.RemoteAddr())
		notify(ctx, conn, communication.NewMessage(communication.CodeError, "bad handshake"))
		conn.Close()
		return
	}

	s.mu.Lock()
	if s.waiting[p.side] != nil {
		s.mu.Unlock()
		log.Warn().Msgf("rejected second %s player from %s", p.side, conn.RemoteAddr())
		notify(ctx, conn, communication.NewMessage(communication.CodeError, "side", "taken"))
		conn.Close()
		return
	}
	other := s.waiting[p.side.Opponent()]
	if other == nil {
		s.waiting[p.side] = p
		s.mu.Unlock()
		log.Info().Msgf("%s player from %s is waiting for an opponent", p.side, conn.RemoteAddr())
		return
	}
	delete(s.waiting, other.side)
	gm := gamemaster.New()
	s.games[gm.ID()] = gm
	s.mu.Unlock()

	s.runMatch(ctx, gm, p, other)
}

func handshake(ctx context.Context, conn *communication.Conn) (*seat, error) {
	hello := communication.NewMessage(communication.CodeHello, "gthd", communication.Version)
	if err := conn.WriteMessage(ctx, hello); err != nil {
		return nil, err
	}

	line, err := conn.ReadLine(ctx)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != "player" {
		return nil, fmt.Errorf("%w: expected player command, got %q", communication.ErrProtocol, line)
	}
	side, err := game.ParseSide(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", communication.ErrProtocol, err)
	}
	return &seat{side: side, conn: conn}, nil
}

func (s *Server) runMatch(ctx context.Context, gm *gamemaster.GameMaster, a, b *seat) {
	seats := map[game.Side]*seat{a.side: a, b.side: b}
	defer a.conn.Close()
	defer b.conn.Close()

	for _, p := range seats {
		if err := p.conn.WriteMessage(ctx, communication.NewMessage(communication.CodePlayer, p.side.String(), gm.ID())); err != nil {
			s.forfeit(ctx, gm, p, seats[p.side.Opponent()], err)
			return
		}
	}
	log.Info().Msgf("game %s started", gm.ID())

	for {
		state := gm.State()
		mover, other := seats[state.ToMove], seats[state.ToMove.Opponent()]

		line, err := mover.conn.ReadLine(ctx)
		if err != nil {
			s.forfeit(ctx, gm, mover, other, err)
			return
		}
		move, err := parseMoveCommand(line)
		if err != nil {
			notify(ctx, mover.conn, communication.NewMessage(communication.CodeError, "bad", "command"))
			s.forfeit(ctx, gm, mover, other, err)
			return
		}

		u, err := gm.Play(mover.side, move)
		if err != nil {
			notify(ctx, mover.conn, communication.NewMessage(communication.CodeIllegalMove, "illegal", "move", move.String()))
			s.forfeit(ctx, gm, mover, other, err)
			return
		}
		s.observer.Publish(u)
		log.Debug().Msgf("game %s: %d. %s %s", gm.ID(), u.Serial, u.Side, u.Move)

		serial := fmt.Sprint(u.Serial)
		if u.Over {
			notify(ctx, mover.conn, communication.NewMessage(communication.CodeMoveGameOver, serial, u.Move, u.Winner))
			notify(ctx, other.conn, communication.NewMessage(communication.CodeGameOver, u.Winner))
			_, winner := gm.Result()
			log.Info().Msgf("game %s ended with %s", gm.ID(), communication.FormatWinner(winner))
			return
		}

		if err := mover.conn.WriteMessage(ctx, communication.NewMessage(communication.CodeMoveOK, serial, u.Move)); err != nil {
			s.forfeit(ctx, gm, mover, other, err)
			return
		}
		if err := other.conn.WriteMessage(ctx, communication.NewMessage(communication.CodeOpponentMove, serial, u.Move)); err != nil {
			s.forfeit(ctx, gm, other, mover, err)
			return
		}
	}
}

// forfeit ends the game against loser and tells the winner.
func (s *Server) forfeit(ctx context.Context, gm *gamemaster.GameMaster, loser, winner *seat, cause error) {
	u := gm.Forfeit(loser.side)
	s.observer.Publish(u)
	log.Warn().Err(cause).Msgf("game %s forfeited by %s", gm.ID(), loser.side)
	notify(ctx, winner.conn, communication.NewMessage(communication.CodeGameOver, u.Winner))
}

// notify sends a final message to a player that is about to be dropped. The game is decided
// either way, so a failed write is only logged.
func notify(ctx context.Context, conn *communication.Conn, msg communication.Message) {
	if err := conn.WriteMessage(ctx, msg); err != nil {
		log.Debug().Err(err).Msgf("failed to send %q to %s", msg, conn.RemoteAddr())
	}
}

func parseMoveCommand(line string) (game.Move, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != "move" {
		return game.Move{}, fmt.Errorf("%w: expected move command, got %q", communication.ErrProtocol, line)
	}
	return game.ParseMove(fields[1])
}

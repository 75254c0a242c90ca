package client

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"gothello/communication"
	"gothello/game"

	"github.com/rs/zerolog/log"
)

// Client is a player's session with a referee over TCP.
type Client struct {
	conn   *communication.Conn
	side   game.Side
	gameID string
	winner game.Side
}

// Dial connects to referee number server on host and claims side.
func Dial(ctx context.Context, host string, server int, side game.Side) (*Client, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(communication.BasePort+server))
	return DialAddr(ctx, addr, side)
}

func DialAddr(ctx context.Context, addr string, side game.Side) (*Client, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	c := &Client{conn: communication.NewConn(nc), side: side}
	if err := c.handshake(ctx); err != nil {
		nc.Close()
		return nil, err
	}
	log.Info().Msgf("joined game %s at %s as %s", c.gameID, addr, side)
	return c, nil
}

func (c *Client) handshake(ctx context.Context) error {
	hello, err := c.conn.ReadMessage(ctx)
	if err != nil {
		return err
	}
	if hello.Code != communication.CodeHello {
		return fmt.Errorf("%w: expected greeting, got %q", communication.ErrProtocol, hello)
	}

	if err := c.conn.WriteLine(ctx, "player "+c.side.String()); err != nil {
		return err
	}

	reply, err := c.conn.ReadMessage(ctx)
	if err != nil {
		return err
	}
	if reply.Code != communication.CodePlayer {
		return fmt.Errorf("%w: referee refused %s: %q", communication.ErrProtocol, c.side, reply)
	}
	c.gameID, err = reply.Field(1)
	return err
}

func (c *Client) Side() game.Side {
	return c.side
}

func (c *Client) GameID() string {
	return c.gameID
}

func (c *Client) Winner() game.Side {
	return c.winner
}

func (c *Client) SubmitMove(ctx context.Context, move game.Move) (communication.Status, error) {
	if err := c.conn.WriteLine(ctx, "move "+move.String()); err != nil {
		return communication.Done, err
	}

	reply, err := c.conn.ReadMessage(ctx)
	if err != nil {
		return communication.Done, err
	}

	switch reply.Code {
	case communication.CodeMoveOK:
		return communication.Continue, nil
	case communication.CodeMoveGameOver:
		return communication.Done, c.readWinner(reply, 2)
	case communication.CodeIllegalMove:
		return communication.Done, fmt.Errorf("%w: %s: %q", communication.ErrRejected, move, reply)
	default:
		return communication.Done, fmt.Errorf("%w: unexpected reply to move: %q", communication.ErrProtocol, reply)
	}
}

func (c *Client) ReceiveMove(ctx context.Context) (game.Move, communication.Status, error) {
	msg, err := c.conn.ReadMessage(ctx)
	if err != nil {
		return game.Move{}, communication.Done, err
	}

	switch msg.Code {
	case communication.CodeOpponentMove:
		name, err := msg.Field(1)
		if err != nil {
			return game.Move{}, communication.Done, err
		}
		move, err := game.ParseMove(name)
		if err != nil {
			return game.Move{}, communication.Done, fmt.Errorf("%w: %v", communication.ErrProtocol, err)
		}
		return move, communication.Continue, nil
	case communication.CodeGameOver:
		return game.Move{}, communication.Done, c.readWinner(msg, 0)
	default:
		return game.Move{}, communication.Done, fmt.Errorf("%w: expected opponent move, got %q", communication.ErrProtocol, msg)
	}
}

func (c *Client) readWinner(msg communication.Message, field int) error {
	name, err := msg.Field(field)
	if err != nil {
		return err
	}
	c.winner, err = communication.ParseWinner(name)
	return err
}

func (c *Client) Close() error {
	return c.conn.Close()
}

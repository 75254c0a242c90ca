package communication

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// Conn is a line oriented connection. Blocking reads and writes return promptly once their
// context is done.
type Conn struct {
	conn net.Conn
	r    *bufio.Reader
}

func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn, r: bufio.NewReader(conn)}
}

func (c *Conn) ReadLine(ctx context.Context) (string, error) {
	stop := c.interruptOn(ctx)
	line, err := c.r.ReadString('\n')
	if err := c.finish(ctx, stop, err); err != nil {
		return "", fmt.Errorf("failed to read line: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Conn) ReadMessage(ctx context.Context) (Message, error) {
	line, err := c.ReadLine(ctx)
	if err != nil {
		return Message{}, err
	}
	return ParseMessage(line)
}

func (c *Conn) WriteLine(ctx context.Context, line string) error {
	stop := c.interruptOn(ctx)
	_, err := fmt.Fprintf(c.conn, "%s\n", line)
	if err := c.finish(ctx, stop, err); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}

func (c *Conn) WriteMessage(ctx context.Context, m Message) error {
	return c.WriteLine(ctx, m.String())
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

// interruptOn expires the connection deadline when ctx is cancelled.
func (c *Conn) interruptOn(ctx context.Context) func() bool {
	return context.AfterFunc(ctx, func() {
		c.conn.SetDeadline(time.Unix(1, 0))
	})
}

func (c *Conn) finish(ctx context.Context, stop func() bool, err error) error {
	stop()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

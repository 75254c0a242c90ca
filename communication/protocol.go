package communication

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gothello/game"
)

const Version = "1.0"

// Referee reply codes. Every referee line is "<code> <fields...>".
const (
	CodeHello        = 100 // gthd <version>
	CodePlayer       = 200 // <side> <game id>
	CodeMoveOK       = 201 // <serial> <move>
	CodeMoveGameOver = 202 // <serial> <move> <winner>
	CodeOpponentMove = 311 // <serial> <move>
	CodeGameOver     = 320 // <winner>
	CodeIllegalMove  = 401 // <reason>
	CodeError        = 500 // <reason>
)

var (
	ErrProtocol = errors.New("protocol error")
	ErrRejected = errors.New("move rejected by referee")
)

type Message struct {
	Code   int
	Fields []string
}

func NewMessage(code int, fields ...string) Message {
	return Message{Code: code, Fields: fields}
}

func (m Message) String() string {
	return strings.Join(append([]string{strconv.Itoa(m.Code)}, m.Fields...), " ")
}

// Field returns the i-th field, or an ErrProtocol error when the message is too short.
func (m Message) Field(i int) (string, error) {
	if i >= len(m.Fields) {
		return "", fmt.Errorf("%w: message %q has no field %d", ErrProtocol, m, i)
	}
	return m.Fields[i], nil
}

func ParseMessage(line string) (Message, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Message{}, fmt.Errorf("%w: empty line", ErrProtocol)
	}
	code, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 3 {
		return Message{}, fmt.Errorf("%w: bad code in %q", ErrProtocol, line)
	}
	return Message{Code: code, Fields: parts[1:]}, nil
}

// FormatWinner names a game result on the wire: black, white or draw.
func FormatWinner(side game.Side) string {
	if side == game.None {
		return "draw"
	}
	return side.String()
}

func ParseWinner(name string) (game.Side, error) {
	if name == "draw" {
		return game.None, nil
	}
	side, err := game.ParseSide(name)
	if err != nil {
		return game.None, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return side, nil
}

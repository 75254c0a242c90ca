package gamemaster

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gothello/game"

	"github.com/google/uuid"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalMove = errors.New("illegal move")
)

// Update describes the game after one move, in the form sent to observers.
type Update struct {
	GameID string   `json:"game_id"`
	Serial int      `json:"serial"`
	Side   string   `json:"side"`
	Move   string   `json:"move"`
	Board  []string `json:"board"` // Row 1 first; x black, o white, . empty
	Over   bool     `json:"over"`
	Winner string   `json:"winner,omitempty"`
}

type Summary struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Moves     int       `json:"moves"`
	ToMove    string    `json:"to_move"`
	Over      bool      `json:"over"`
	Winner    string    `json:"winner,omitempty"`
}

// GameMaster is the authority over one game: it validates and applies moves and adjudicates
// the result.
type GameMaster struct {
	mu        sync.RWMutex
	id        string
	board     *game.Board
	startedAt time.Time
	over      bool
	winner    game.Side
}

func New() *GameMaster {
	return &GameMaster{
		id:        uuid.NewString(),
		board:     game.NewBoard(),
		startedAt: time.Now(),
	}
}

func (gm *GameMaster) ID() string {
	return gm.id
}

// State returns a copy of the current position.
func (gm *GameMaster) State() game.Board {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return *gm.board
}

// Result reports whether the game is over and who won. None is a draw.
func (gm *GameMaster) Result() (over bool, winner game.Side) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return gm.over, gm.winner
}

// Play applies a move for side. Illegal or out of turn moves leave the game unchanged.
func (gm *GameMaster) Play(side game.Side, move game.Move) (Update, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.over {
		return Update{}, ErrGameOver
	}
	if side != gm.board.ToMove {
		return Update{}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, gm.board.ToMove)
	}

	serial := gm.board.Serial
	switch gm.board.Apply(move) {
	case game.Illegal:
		return Update{}, fmt.Errorf("%w: %s by %s", ErrIllegalMove, move, side)
	case game.GameOver:
		gm.over = true
		gm.winner = gm.board.Winner()
	}

	return gm.update(serial, side, move.String()), nil
}

// Forfeit ends the game with a win for the opponent of loser.
func (gm *GameMaster) Forfeit(loser game.Side) Update {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if !gm.over {
		gm.over = true
		gm.winner = loser.Opponent()
	}
	return gm.update(gm.board.Serial, loser, "forfeit")
}

func (gm *GameMaster) Summary() Summary {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s := Summary{
		ID:        gm.id,
		StartedAt: gm.startedAt,
		Moves:     gm.board.Serial - 1,
		ToMove:    gm.board.ToMove.String(),
		Over:      gm.over,
	}
	if gm.over {
		s.Winner = winnerName(gm.winner)
	}
	return s
}

func (gm *GameMaster) update(serial int, side game.Side, move string) Update {
	u := Update{
		GameID: gm.id,
		Serial: serial,
		Side:   side.String(),
		Move:   move,
		Board:  rows(gm.board),
		Over:   gm.over,
	}
	if gm.over {
		u.Winner = winnerName(gm.winner)
	}
	return u
}

func rows(b *game.Board) []string {
	out := make([]string, game.Size)
	for r := 0; r < game.Size; r++ {
		row := make([]byte, game.Size)
		for c := 0; c < game.Size; c++ {
			switch b.Squares[r][c] {
			case game.Black:
				row[c] = 'x'
			case game.White:
				row[c] = 'o'
			default:
				row[c] = '.'
			}
		}
		out[r] = string(row)
	}
	return out
}

func winnerName(side game.Side) string {
	if side == game.None {
		return "draw"
	}
	return side.String()
}

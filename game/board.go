package game

import "strings"

const Size = 5

type point struct {
	row, col int
}

// Board is the full Gothello position. It is a value type: assigning a Board copies every
// square, so a copy can never observe moves played on the original.
type Board struct {
	Squares [Size][Size]Side // Owner of each point, None if empty
	ToMove  Side             // The player to move
	Passed  bool             // Whether the previous move was a pass
	Serial  int              // Number of the next move, starting at 1
	Over    bool             // Set once two consecutive passes end the game
}

// NewBoard returns the empty starting position with black to move.
func NewBoard() *Board {
	return &Board{ToMove: Black, Serial: 1}
}

func (b *Board) Copy() State {
	nb := *b
	return &nb
}

func (b *Board) Player() Side {
	return b.ToMove
}

func (b *Board) Count(side Side) int {
	count := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Squares[r][c] == side {
				count++
			}
		}
	}
	return count
}

// Winner adjudicates a finished game by stone count. It returns None for a draw or for a
// game still in progress.
func (b *Board) Winner() Side {
	if !b.Over {
		return None
	}
	black, white := b.Count(Black), b.Count(White)
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return None
	}
}

// LegalMoves returns all stone placements for the player to move in row-major order. Pass is
// not listed: it is only played when this list is empty.
func (b *Board) LegalMoves() []Move {
	if b.Over {
		return nil
	}
	moves := []Move{}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Squares[r][c] != None {
				continue
			}
			squares := b.Squares
			if place(&squares, point{r, c}, b.ToMove) {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// Play returns the position after the move. The receiver is left unchanged.
func (b *Board) Play(move Move) (State, Status) {
	nb := *b
	status := nb.Apply(move)
	return &nb, status
}

// Apply plays the move in place. An illegal move leaves the board untouched.
func (b *Board) Apply(move Move) Status {
	if b.Over {
		return Illegal
	}

	if move.Pass {
		b.Serial++
		if b.Passed {
			b.Over = true
			return GameOver
		}
		b.Passed = true
		b.ToMove = b.ToMove.Opponent()
		return Continue
	}

	p := point{move.Row, move.Col}
	if !onBoard(p) || b.Squares[p.row][p.col] != None {
		return Illegal
	}
	squares := b.Squares
	if !place(&squares, p, b.ToMove) {
		return Illegal
	}

	b.Squares = squares
	b.Passed = false
	b.ToMove = b.ToMove.Opponent()
	b.Serial++
	return Continue
}

// place puts a stone for side on an empty point and flips every adjacent opponent group left
// without liberties. It reports false for suicide: the new group has no liberties and nothing
// was flipped.
func place(squares *[Size][Size]Side, p point, side Side) bool {
	squares[p.row][p.col] = side

	flipped := false
	for _, n := range neighbours(p) {
		if squares[n.row][n.col] != side.Opponent() {
			continue
		}
		group, liberties := groupOf(squares, n)
		if liberties > 0 {
			continue
		}
		for _, g := range group {
			squares[g.row][g.col] = side
		}
		flipped = true
	}

	if flipped {
		return true
	}
	_, liberties := groupOf(squares, p)
	return liberties > 0
}

// groupOf returns the 4-connected group containing p and its number of distinct liberties.
func groupOf(squares *[Size][Size]Side, p point) ([]point, int) {
	side := squares[p.row][p.col]
	var seen, libs [Size][Size]bool
	group := []point{p}
	seen[p.row][p.col] = true
	liberties := 0

	for i := 0; i < len(group); i++ {
		for _, n := range neighbours(group[i]) {
			switch owner := squares[n.row][n.col]; {
			case owner == None:
				if !libs[n.row][n.col] {
					libs[n.row][n.col] = true
					liberties++
				}
			case owner == side && !seen[n.row][n.col]:
				seen[n.row][n.col] = true
				group = append(group, n)
			}
		}
	}
	return group, liberties
}

func neighbours(p point) []point {
	adjacent := make([]point, 0, 4)
	for _, d := range [4]point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		n := point{p.row + d.row, p.col + d.col}
		if onBoard(n) {
			adjacent = append(adjacent, n)
		}
	}
	return adjacent
}

func onBoard(p point) bool {
	return p.row >= 0 && p.row < Size && p.col >= 0 && p.col < Size
}

// String draws the board with row 5 on top, as used in debug logs.
func (b *Board) String() string {
	var sb strings.Builder
	for r := Size - 1; r >= 0; r-- {
		sb.WriteByte(byte('1' + r))
		sb.WriteByte(' ')
		for c := 0; c < Size; c++ {
			switch b.Squares[r][c] {
			case Black:
				sb.WriteByte('x')
			case White:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcde\n")
	return sb.String()
}

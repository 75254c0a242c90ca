package game

import "fmt"

// Move places a stone on (Row, Col), or passes.
type Move struct {
	Row  int
	Col  int
	Pass bool
}

var PassMove = Move{Pass: true}

// String names the move as on the wire: "pass", or a column letter and a row digit ("c3").
func (m Move) String() string {
	if m.Pass {
		return "pass"
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

func ParseMove(name string) (Move, error) {
	if name == "pass" {
		return PassMove, nil
	}
	if len(name) != 2 {
		return Move{}, fmt.Errorf("malformed move %q", name)
	}
	col := int(name[0] - 'a')
	row := int(name[1] - '1')
	if col < 0 || col >= Size || row < 0 || row >= Size {
		return Move{}, fmt.Errorf("move %q is off the board", name)
	}
	return Move{Row: row, Col: col}, nil
}

package game

import "fmt"

// Side is a player, or the owner of a point on the board. None marks an empty point or a draw.
type Side int

const (
	None Side = iota
	Black
	White
)

func (s Side) Opponent() Side {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return None
	}
}

func (s Side) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

// ParseSide accepts "black" or "white".
func ParseSide(name string) (Side, error) {
	switch name {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	}
	return None, fmt.Errorf("unknown side %q", name)
}

package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoveString(t *testing.T) {
	require.Equal(t, "pass", PassMove.String())
	require.Equal(t, "a1", Move{Row: 0, Col: 0}.String())
	require.Equal(t, "e5", Move{Row: 4, Col: 4}.String())
	require.Equal(t, "c2", Move{Row: 1, Col: 2}.String())
}

func TestParseMove(t *testing.T) {
	t.Run("parsing names round trips", func(t *testing.T) {
		for _, name := range []string{"pass", "a1", "b4", "e5"} {
			m, err := ParseMove(name)
			require.NoError(t, err)
			require.Equal(t, name, m.String())
		}
	})

	t.Run("rejecting malformed names", func(t *testing.T) {
		for _, name := range []string{"", "a", "a10", "f1", "a6", "A1", "a0"} {
			_, err := ParseMove(name)
			require.Error(t, err, "%q should not parse", name)
		}
	})
}

func TestParseSide(t *testing.T) {
	side, err := ParseSide("white")
	require.NoError(t, err)
	require.Equal(t, White, side)
	require.Equal(t, Black, side.Opponent())
	require.Equal(t, None, None.Opponent())

	_, err = ParseSide("red")
	require.Error(t, err)
}

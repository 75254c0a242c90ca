package gamemaster

import (
	"testing"

	"gothello/game"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGameMasterNew(t *testing.T) {
	gm := New()

	_, err := uuid.Parse(gm.ID())
	require.NoError(t, err, "Game id should be a uuid")
	require.NotEqual(t, gm.ID(), New().ID())

	state := gm.State()
	require.Equal(t, game.Black, state.Player())
	require.Equal(t, 0, state.Count(game.Black)+state.Count(game.White))

	over, _ := gm.Result()
	require.False(t, over)
}

func TestGameMasterPlay(t *testing.T) {
	t.Run("applying a valid move", func(t *testing.T) {
		gm := New()

		u, err := gm.Play(game.Black, game.Move{Row: 0, Col: 2})

		require.NoError(t, err)
		require.Equal(t, 1, u.Serial)
		require.Equal(t, "black", u.Side)
		require.Equal(t, "c1", u.Move)
		require.Equal(t, "..x..", u.Board[0])
		require.False(t, u.Over)
		after := gm.State()
		require.Equal(t, game.White, after.Player())
	})

	t.Run("state is a copy", func(t *testing.T) {
		gm := New()

		state := gm.State()
		state.Apply(game.Move{Row: 1, Col: 1})

		current := gm.State()
		require.Equal(t, 0, current.Count(game.Black), "Changing the copy should not change the game")
	})

	t.Run("rejecting a move out of turn", func(t *testing.T) {
		gm := New()

		_, err := gm.Play(game.White, game.Move{Row: 0, Col: 0})

		require.ErrorIs(t, err, ErrNotYourTurn)
	})

	t.Run("rejecting an illegal move", func(t *testing.T) {
		gm := New()
		_, err := gm.Play(game.Black, game.Move{Row: 0, Col: 0})
		require.NoError(t, err)

		_, err = gm.Play(game.White, game.Move{Row: 0, Col: 0})

		require.ErrorIs(t, err, ErrIllegalMove)
		after := gm.State()
		require.Equal(t, game.White, after.Player(), "Illegal move should not change the turn")
	})

	t.Run("ending the game after two passes", func(t *testing.T) {
		gm := New()
		_, err := gm.Play(game.Black, game.Move{Row: 2, Col: 2})
		require.NoError(t, err)
		_, err = gm.Play(game.White, game.PassMove)
		require.NoError(t, err)

		u, err := gm.Play(game.Black, game.PassMove)

		require.NoError(t, err)
		require.True(t, u.Over)
		require.Equal(t, "black", u.Winner)
		over, winner := gm.Result()
		require.True(t, over)
		require.Equal(t, game.Black, winner)

		_, err = gm.Play(game.White, game.PassMove)
		require.ErrorIs(t, err, ErrGameOver)
		require.EqualError(t, err, "game is over - no moves allowed")
	})
}

func TestGameMasterForfeit(t *testing.T) {
	gm := New()

	u := gm.Forfeit(game.Black)

	require.True(t, u.Over)
	require.Equal(t, "white", u.Winner)
	require.Equal(t, "forfeit", u.Move)
	require.True(t, gm.Summary().Over)
	require.Equal(t, "white", gm.Summary().Winner)
}

func TestGameMasterSummary(t *testing.T) {
	gm := New()
	_, err := gm.Play(game.Black, game.PassMove)
	require.NoError(t, err)

	s := gm.Summary()

	require.Equal(t, gm.ID(), s.ID)
	require.Equal(t, 1, s.Moves)
	require.Equal(t, "white", s.ToMove)
	require.False(t, s.Over)
	require.Empty(t, s.Winner)
}

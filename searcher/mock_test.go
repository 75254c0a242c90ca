package searcher

import "gothello/game"

// mockState is a hand-built game tree. Moves without an entry in next lead to a state that
// ends the game in a draw on its first pass; moves without an entry in status continue.
type mockState struct {
	player game.Side
	moves  []game.Move
	next   map[game.Move]*mockState
	status map[game.Move]game.Status
	winner game.Side
	score  int // Material lead of player
}

func (m *mockState) Player() game.Side {
	return m.player
}

func (m *mockState) LegalMoves() []game.Move {
	return m.moves
}

func (m *mockState) Play(move game.Move) (game.State, game.Status) {
	next, ok := m.next[move]
	if !ok {
		next = finished(m.player.Opponent(), game.None)
	}
	return next.Copy(), m.status[move]
}

func (m *mockState) Copy() game.State {
	c := *m
	return &c
}

func (m *mockState) Winner() game.Side {
	return m.winner
}

func (m *mockState) Count(side game.Side) int {
	switch {
	case side == m.player && m.score > 0:
		return m.score
	case side == m.player.Opponent() && m.score < 0:
		return -m.score
	}
	return 0
}

func move(name string) game.Move {
	m, err := game.ParseMove(name)
	if err != nil {
		panic(err)
	}
	return m
}

// finished returns a state whose only continuation is a pass that ends the game.
func finished(player, winner game.Side) *mockState {
	return &mockState{
		player: player,
		next:   map[game.Move]*mockState{game.PassMove: {player: player.Opponent(), winner: winner}},
		status: map[game.Move]game.Status{game.PassMove: game.GameOver},
	}
}

// leaves returns a state for player with one move per score, each leading to a state whose
// player to move has that material lead.
func leaves(player game.Side, scores ...int) *mockState {
	names := []string{"a1", "b1", "c1", "d1", "e1", "a2", "b2", "c2", "d2", "e2"}
	s := &mockState{player: player, next: map[game.Move]*mockState{}}
	for i, score := range scores {
		m := move(names[i])
		s.moves = append(s.moves, m)
		s.next[m] = &mockState{player: player.Opponent(), moves: []game.Move{move("e5")}, score: score}
	}
	return s
}

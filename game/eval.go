package game

// MaxEval bounds the magnitude of any EvaluateMaterial score: every point on the board.
const MaxEval = Size * Size

// EvaluateMaterial counts the stones of the player to move minus the stones of the opponent.
func EvaluateMaterial(s State) int {
	player := s.Player()
	return s.Count(player) - s.Count(player.Opponent())
}

package searcher

import (
	"fmt"
	"time"

	"gothello/experiments/metrics"
	"gothello/game"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(m *Minimax)

// Minimax is a plain depth-bounded minimax search without pruning.
//
// Values are always relative to the maximizing flag of the call that produced them, not to
// the root. A call with maximizing=false negates heuristic and terminal scores and takes the
// minimum over its children.
type Minimax struct {
	goroutines int
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

type Result struct {
	Value  int       // Value of the root state
	Move   game.Move // Move selected among the best ones
	Ties   int       // Number of root moves sharing Value
	Metric metrics.SearchMetric
}

// WithGoroutines fans the root's children out over up to n goroutines. Nested levels are
// always searched sequentially.
func WithGoroutines(n int) Option {
	return func(m *Minimax) {
		if n > 0 {
			m.goroutines = n
		}
	}
}

// WithEvaluationFn replaces the material evaluator. Scores are clamped to ±game.MaxEval so a
// heuristic never reaches the value of a finished game.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		goroutines: 1,
		evaluate:   game.EvaluateMaterial,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search is the root call: it computes the value of state and selects a move uniformly at
// random among the moves achieving that value. A nil rng is replaced by a time-seeded one.
func (m *Minimax) Search(state game.State, depth int, maximizing bool, rng *rand.Rand) (Result, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	m.metrics.Start(m.goroutines, depth)
	value, move, ties, err := m.search(state, depth, maximizing, true, rng)
	metric := m.metrics.Complete()
	if err != nil {
		return Result{}, err
	}

	return Result{Value: value, Move: move, Ties: ties, Metric: metric}, nil
}

// Value is a nested call: it only computes the value of state.
func (m *Minimax) Value(state game.State, depth int, maximizing bool) (int, error) {
	value, _, _, err := m.search(state, depth, maximizing, false, nil)
	return value, err
}

func (m *Minimax) search(state game.State, depth int, maximizing, root bool, rng *rand.Rand) (int, game.Move, int, error) {
	m.metrics.AddNode()

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return m.pass(state, maximizing)
	}

	// Max depth reached. The root always looks one ply ahead so that it has a move to select.
	if depth <= 0 && !root {
		m.metrics.AddLeaf()
		score := max(-game.MaxEval, min(m.evaluate(state), game.MaxEval))
		if maximizing {
			return score, game.Move{}, 0, nil
		}
		return -score, game.Move{}, 0, nil
	}

	values, err := m.expand(state, moves, depth, maximizing, root)
	if err != nil {
		return 0, game.Move{}, 0, err
	}

	best := -Infinity
	if !maximizing {
		best = Infinity
	}
	for _, value := range values {
		if maximizing && value >= best || !maximizing && value <= best {
			best = value
		}
	}

	if !root {
		return best, game.Move{}, 0, nil
	}
	move, ties := pickTied(moves, values, best, rng)
	return best, move, ties, nil
}

// pass plays the forced pass. A pass never counts against the depth budget.
func (m *Minimax) pass(state game.State, maximizing bool) (int, game.Move, int, error) {
	m.metrics.AddPass()

	next, status := state.Play(game.PassMove)
	switch status {
	case game.Continue:
		value, _, _, err := m.search(next, Unbounded, !maximizing, false, nil)
		return value, game.PassMove, 1, err
	case game.GameOver:
		m.metrics.AddTerminal()
		return terminalValue(state.Player(), next.Winner(), maximizing), game.PassMove, 1, nil
	default:
		return 0, game.Move{}, 0, fmt.Errorf("%w: %s by %s", ErrIllegalMove, game.PassMove, state.Player())
	}
}

// expand searches every child of state and returns their values in move order.
func (m *Minimax) expand(state game.State, moves []game.Move, depth int, maximizing, root bool) ([]int, error) {
	values := make([]int, len(moves))

	child := func(i int) error {
		next, status := state.Play(moves[i])
		switch status {
		case game.Illegal:
			return fmt.Errorf("%w: %s by %s", ErrIllegalMove, moves[i], state.Player())
		case game.GameOver:
			return fmt.Errorf("%w: after %s by %s", ErrUnexpectedGameOver, moves[i], state.Player())
		}
		value, _, _, err := m.search(next, depth-1, !maximizing, false, nil)
		values[i] = value
		return err
	}

	if root && m.goroutines > 1 {
		var g errgroup.Group
		g.SetLimit(m.goroutines)
		for i := range moves {
			g.Go(func() error { return child(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return values, nil
	}

	for i := range moves {
		if err := child(i); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// pickTied selects uniformly at random among the moves whose value equals best and reports
// how many there were.
func pickTied(moves []game.Move, values []int, best int, rng *rand.Rand) (game.Move, int) {
	ties := 0
	for _, value := range values {
		if value == best {
			ties++
		}
	}

	nth := rng.Intn(ties)
	for i, value := range values {
		if value != best {
			continue
		}
		if nth == 0 {
			return moves[i], ties
		}
		nth--
	}
	panic("no move achieves the best value")
}

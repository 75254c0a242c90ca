package experiments

import (
	"fmt"
	"time"

	"gothello/config"
	"gothello/engine"
	"gothello/experiments/metrics"
	"gothello/game"
	"gothello/searcher"
	"gothello/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Tally counts the results of one matchup from the challenger's point of view.
type Tally struct {
	Baseline   metrics.AgentConfig
	Challenger metrics.AgentConfig
	Wins       int
	Losses     int
	Draws      int
}

// Result holds everything an experiment run produced.
type Result struct {
	Dir         string // Where the CSV records were written
	Tallies     []Tally
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

// DepthConfigs builds the baseline agent (ID 0) and one challenger per configured depth.
func DepthConfigs(cfg config.Config) (metrics.AgentConfig, []metrics.AgentConfig) {
	baseline := metrics.AgentConfig{ID: 0, Depth: cfg.Experiments.Baseline, Goroutines: cfg.Goroutines}
	configs := make([]metrics.AgentConfig, 0, len(cfg.Experiments.Depths))
	for i, depth := range cfg.Experiments.Depths {
		configs = append(configs, metrics.AgentConfig{ID: i + 1, Depth: depth, Goroutines: cfg.Goroutines})
	}
	return baseline, configs
}

// RunDepthExperiment pairs every configured depth against the baseline depth. The sides
// alternate between games so each agent starts half of them.
func RunDepthExperiment(cfg config.Config) (*Result, error) {
	baseline, configs := DepthConfigs(cfg)
	return runExperiment("depth", cfg, baseline, configs)
}

func runExperiment(name string, cfg config.Config, baseline metrics.AgentConfig, configs []metrics.AgentConfig) (*Result, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	count := 0
	result := &Result{}

	log.Info().Msgf("starting %s experiment with seed %d...", name, seed)

	for mi, challenger := range configs {
		log.Info().Msgf("starting matchup %d of %d between baseline=%+v and challenger=%+v...", mi+1, len(configs), baseline, challenger)
		tally := Tally{Baseline: baseline, Challenger: challenger}

		for i := 0; i < cfg.Experiments.Games; i++ {
			black, white := baseline, challenger
			if i%2 == 1 {
				black, white = white, black
			}

			winner, gameMetric, moveMetrics, err := runGame(black, white, rng.Uint64())
			if err != nil {
				return nil, fmt.Errorf("matchup %d game %d failed: %w", mi+1, i+1, err)
			}
			count++
			result.GameRecords = append(result.GameRecords, metrics.GameRecord{
				ID:         count,
				Black:      black.ID,
				White:      white.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.MoveRecords = append(result.MoveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			challengerSide := game.White
			if black == challenger {
				challengerSide = game.Black
			}
			switch winner {
			case game.None:
				tally.Draws++
			case challengerSide:
				tally.Wins++
			default:
				tally.Losses++
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(configs), i+1, gameMetric.Winner)
		}
		result.Tallies = append(result.Tallies, tally)
		log.Info().Msgf("completed matchup %d of %d: %d wins, %d losses, %d draws", mi+1, len(configs), tally.Wins, tally.Losses, tally.Draws)
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.Experiments.OutDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	result.Dir = writer.Dir()

	if err = writer.WriteAgentConfigs(append([]metrics.AgentConfig{baseline}, configs...)); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err = writer.WriteGameRecords(result.GameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err = writer.WriteMoveRecords(result.MoveRecords); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return result, nil
}

// runGame plays a single game between two agents and returns the winner
func runGame(black, white metrics.AgentConfig, seed uint64) (game.Side, metrics.GameMetric, []metrics.MoveMetric, error) {
	rng := rand.New(rand.NewSource(seed))
	e := engine.LocalEngine(
		agent.NewMinimaxAgent(createMinimax(black), black.Depth, rand.New(rand.NewSource(rng.Uint64()))),
		agent.NewMinimaxAgent(createMinimax(white), white.Depth, rand.New(rand.NewSource(rng.Uint64()))),
	)
	return e.Run()
}

func createMinimax(config metrics.AgentConfig) *searcher.Minimax {
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Goroutines > 1 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	return searcher.NewMinimax(options...)
}

package experiments

import (
	"path/filepath"
	"testing"

	"gothello/config"

	"github.com/stretchr/testify/require"
)

func TestDepthConfigs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Goroutines = 2
	cfg.Experiments.Baseline = 1
	cfg.Experiments.Depths = []int{0, 2}

	baseline, configs := DepthConfigs(cfg)

	require.Equal(t, 0, baseline.ID)
	require.Equal(t, 1, baseline.Depth)
	require.Len(t, configs, 2)
	require.Equal(t, 1, configs[0].ID)
	require.Equal(t, 0, configs[0].Depth)
	require.Equal(t, 2, configs[1].ID)
	require.Equal(t, 2, configs[1].Depth)
	require.Equal(t, 2, configs[1].Goroutines)
}

func TestRunDepthExperiment(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	cfg.Experiments.Games = 2
	cfg.Experiments.Baseline = 0
	cfg.Experiments.Depths = []int{1}
	cfg.Experiments.OutDir = t.TempDir()

	result, err := RunDepthExperiment(cfg)

	require.NoError(t, err)
	require.Len(t, result.GameRecords, 2)
	require.Equal(t, 0, result.GameRecords[0].Black, "Baseline starts the first game")
	require.Equal(t, 1, result.GameRecords[1].Black, "Sides alternate between games")
	require.NotEmpty(t, result.MoveRecords)

	require.Len(t, result.Tallies, 1)
	tally := result.Tallies[0]
	require.Equal(t, 2, tally.Wins+tally.Losses+tally.Draws)

	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		require.FileExists(t, filepath.Join(result.Dir, name))
	}
}

package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "depth")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	t.Run("agent configs", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{{ID: 0, Depth: 1, Goroutines: 1}, {ID: 1, Depth: 3, Goroutines: 4}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{{"id", "depth", "goroutines"}, {"0", "1", "1"}, {"1", "3", "4"}}, rows)
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID:    1,
			Black: 0,
			White: 1,
			GameMetric: GameMetric{
				StartingPlayer: "black",
				Winner:         "white",
				StartTime:      start,
				EndTime:        start.Add(time.Second),
				Duration:       time.Second,
				TotalMoves:     27,
				BlackStones:    9,
				WhiteStones:    16,
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "0", "1", "black", "white", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "27", "9", "16"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{{
			Game: 1,
			MoveMetric: MoveMetric{
				Step:         3,
				Player:       "black",
				Move:         "c3",
				Value:        -2,
				Ties:         4,
				SearchMetric: SearchMetric{Depth: 2, Goroutines: 1, Nodes: 500, Leaves: 420},
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "c3", rows[1][3])
		require.Equal(t, "-2", rows[1][4])
		require.Equal(t, "500", rows[1][9])
		require.Equal(t, "420", rows[1][10])
	})
}

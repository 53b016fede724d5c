package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/promptcritic/internal/score"
)

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

type goldenScore struct {
	Name      string          `json:"name"`
	Prompt    string          `json:"prompt"`
	Score     int             `json:"score"`
	Breakdown score.Breakdown `json:"breakdown"`
}

func loadGolden(t *testing.T) []goldenScore {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(projectRoot(), "testdata", "golden", "scores.json"))
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}
	var cases []goldenScore
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("failed to parse golden JSON: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("golden file has no cases")
	}
	return cases
}

func TestGoldenScores(t *testing.T) {
	for _, gc := range loadGolden(t) {
		t.Run(gc.Name, func(t *testing.T) {
			got := score.Score(gc.Prompt)
			if got.Score != gc.Score {
				t.Errorf("score = %d, want %d", got.Score, gc.Score)
			}
			if diff := cmp.Diff(gc.Breakdown, got.Breakdown); diff != "" {
				t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
			}
			if got.Breakdown.Total() != 100-got.Score {
				t.Errorf("penalties %d do not account for score %d", got.Breakdown.Total(), got.Score)
			}
		})
	}
}

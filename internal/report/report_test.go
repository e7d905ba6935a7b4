package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MikeSquared-Agency/Ranker/internal/simulation"
	"github.com/MikeSquared-Agency/Ranker/internal/store"
)

func item(name string, mean, baseline, meanRank, pTop1 float64, rank int) store.ItemResult {
	return store.ItemResult{
		Item:     name,
		Scores:   []float64{4, 2},
		Category: "Other",
		Perspectives: []store.PerspectiveScore{
			{Name: "Baseline", Score: baseline, Rank: rank},
			{Name: "Regulator", Score: baseline - 0.5, Rank: rank},
		},
		Derived:    []store.NamedValue{{Name: "Aging_Impact", Value: 3.2}},
		Interval:   simulation.ScoreInterval{Mean: mean, Lower: mean - 0.25, Upper: mean + 0.25},
		Robustness: simulation.RankRobustness{BaselineScore: baseline, BaselineRank: rank, MeanRank: meanRank, RankLower: 1, RankUpper: 3, PTop1: pTop1, PTop3: 1},
	}
}

func sampleAnalysis() *store.Analysis {
	return &store.Analysis{
		Domains: []string{"Lifespan (60%)", "Safety (40%)"},
		Items: []store.ItemResult{
			item("Metformin", 3.1, 3.2, 2.0, 0.1, 2),
			item("Rapamycin", 3.6, 3.2, 2.0, 0.2, 2),
			item("Spermidine", 3.4, 3.5, 1.25, 0.7, 1),
		},
	}
}

func readCSV(t *testing.T, b []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteIntervalsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIntervalsCSV(&buf, sampleAnalysis()))

	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 4)
	assert.Equal(t, intervalHeaders, rows[0])
	assert.Equal(t, []string{"Rapamycin", "3.6", "3.35", "3.85"}, rows[1])
	assert.Equal(t, "Spermidine", rows[2][0])
	assert.Equal(t, "Metformin", rows[3][0])
}

func TestWriteRobustnessCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRobustnessCSV(&buf, sampleAnalysis()))

	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 4)
	assert.Equal(t, robustnessHeaders, rows[0])
	assert.Equal(t, []string{"Spermidine", "3.5", "1.25", "1", "3", "0.7", "1"}, rows[1])
	// Equal mean rank and baseline score keep input order.
	assert.Equal(t, "Metformin", rows[2][0])
	assert.Equal(t, "Rapamycin", rows[3][0])
}

func TestWorkbookHeaders(t *testing.T) {
	assert.Equal(t, []string{
		"Intervention", "Lifespan (60%)", "Safety (40%)",
		"Weighted Score", "Regulator-Focused",
		"Baseline rank", "Regulator rank",
		"Aging_Impact", "Category",
	}, WorkbookHeaders(sampleAnalysis()))

	assert.Equal(t, []string{"Intervention", "A (1%)", "Category"},
		WorkbookHeaders(&store.Analysis{Domains: []string{"A (1%)"}}))
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteAll(dir, sampleAnalysis())
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	f, err := excelize.OpenFile(filepath.Join(dir, WorkbookFile))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(workbookSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Weighted Score", rows[0][3])
	assert.Equal(t, []string{"Metformin", "4", "2", "3.2", "2.7", "2", "2", "3.2", "Other"}, rows[1])
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Ranker/internal/analysis"
	"github.com/MikeSquared-Agency/Ranker/internal/report"
	"github.com/MikeSquared-Agency/Ranker/internal/scoring"
)

const scenarioCSV = `Intervention,Efficacy (70%),Safety (30%)
Rapamycin,5,1
Metformin,3,3
Mystery,1,5
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeWritesReports(t *testing.T) {
	input := writeInput(t, scenarioCSV)
	outdir := filepath.Join(t.TempDir(), "out")

	out, err := runCLI(t, "analyze", "-i", input, "-o", outdir, "-r", "200", "--seed-scores", "7")
	require.NoError(t, err)

	for _, name := range []string{report.WorkbookFile, report.IntervalsFile, report.RobustnessFile} {
		_, err := os.Stat(filepath.Join(outdir, name))
		assert.NoError(t, err, name)
	}
	assert.Contains(t, out, "MC iterations:   200")
	assert.Contains(t, out, "Top 5 items (mean weighted score):")
	assert.Contains(t, out, "  1. Rapamycin: rank 1.0 [1, 1], P(top-1)=100.0%, P(top-3)=100.0%")
}

func TestAnalyzeZeroNoise(t *testing.T) {
	input := writeInput(t, scenarioCSV)

	out, err := runCLI(t, "analyze", "-i", input, "-o", t.TempDir(), "-r", "10", "--noise", "0", "--wpert", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "  1. Rapamycin: 3.80 [3.80, 3.80]")
	assert.Contains(t, out, "  3. Mystery: 2.20 [2.20, 2.20]")
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		csv    string
		args   []string
		target error
	}{
		{
			name:   "no domain columns",
			csv:    "Intervention,Cost\na,1\n",
			target: scoring.ErrNoDomainColumnsFound,
		},
		{
			name:   "non numeric",
			csv:    "Intervention,A (100%)\na,high\n",
			target: scoring.ErrNonNumericDomainValues,
		},
		{
			name:   "negative noise",
			csv:    scenarioCSV,
			args:   []string{"--noise=-1"},
			target: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"analyze", "-i", writeInput(t, tt.csv), "-o", t.TempDir(), "-r", "10"}, tt.args...)
			_, err := runCLI(t, args...)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			assert.True(t, analysis.IsInputError(err))
		})
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := runCLI(t, "analyze", "-i", filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.False(t, analysis.IsInputError(err))
}

func TestRankTable(t *testing.T) {
	out, err := runCLI(t, "rank", "-i", writeInput(t, scenarioCSV))
	require.NoError(t, err)
	assert.Contains(t, out, "RANK")
	assert.Regexp(t, `1\s+Rapamycin\s+3\.800`, out)
	assert.Regexp(t, `3\s+Mystery\s+2\.200`, out)
}

func TestRankJSON(t *testing.T) {
	out, err := runCLI(t, "rank", "-i", writeInput(t, scenarioCSV), "-f", "json")
	require.NoError(t, err)

	var ranked []rankedItem
	require.NoError(t, json.Unmarshal([]byte(out), &ranked))
	require.Len(t, ranked, 3)

	want := []rankedItem{
		{Rank: 1, Item: "Rapamycin", Score: 3.8},
		{Rank: 2, Item: "Metformin", Score: 3.0},
		{Rank: 3, Item: "Mystery", Score: 2.2},
	}
	for i, w := range want {
		assert.Equal(t, w.Rank, ranked[i].Rank)
		assert.Equal(t, w.Item, ranked[i].Item)
		assert.InDelta(t, w.Score, ranked[i].Score, 1e-9)
	}
}

func TestRankErrors(t *testing.T) {
	input := writeInput(t, scenarioCSV)

	_, err := runCLI(t, "rank", "-i", input, "-f", "yaml")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = runCLI(t, "rank", "-i", input, "-p", "Astronaut")
	assert.ErrorContains(t, err, "unknown perspective")
}

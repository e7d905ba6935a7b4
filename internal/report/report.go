package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/MikeSquared-Agency/Ranker/internal/store"
)

// Output file names written by WriteAll.
const (
	IntervalsFile  = "weighted_score_intervals.csv"
	RobustnessFile = "ranking_robustness_weights_p5.csv"
	WorkbookFile   = "Intervention_list_&_scores.xlsx"
)

var (
	intervalHeaders = []string{
		"Intervention", "WeightedScore_Mean", "WeightedScore_P2_5", "WeightedScore_P97_5",
	}
	robustnessHeaders = []string{
		"Intervention", "BaseWeightedScore", "MeanRank_Weights_p5",
		"Rank_P2_5", "Rank_P97_5", "P_Top1", "P_Top3",
	}
)

// WriteIntervalsCSV writes the score-uncertainty table, highest mean first.
func WriteIntervalsCSV(w io.Writer, a *store.Analysis) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(intervalHeaders); err != nil {
		return err
	}
	for _, it := range a.ByMeanScore() {
		if err := cw.Write([]string{
			it.Item,
			formatFloat(it.Interval.Mean),
			formatFloat(it.Interval.Lower),
			formatFloat(it.Interval.Upper),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRobustnessCSV writes the weight-robustness table, best mean rank
// first, ties broken by higher baseline score.
func WriteRobustnessCSV(w io.Writer, a *store.Analysis) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(robustnessHeaders); err != nil {
		return err
	}
	for _, it := range a.ByMeanRank() {
		r := it.Robustness
		if err := cw.Write([]string{
			it.Item,
			formatFloat(r.BaselineScore),
			formatFloat(r.MeanRank),
			formatFloat(r.RankLower),
			formatFloat(r.RankUpper),
			formatFloat(r.PTop1),
			formatFloat(r.PTop3),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAll writes the workbook and both CSV reports into dir, creating it
// if needed, and returns the written paths.
func WriteAll(dir string, a *store.Analysis) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	writers := []struct {
		name  string
		write func(io.Writer, *store.Analysis) error
	}{
		{WorkbookFile, WriteWorkbook},
		{IntervalsFile, WriteIntervalsCSV},
		{RobustnessFile, WriteRobustnessCSV},
	}

	var paths []string
	for _, wr := range writers {
		path := filepath.Join(dir, wr.name)
		if err := writeFile(path, a, wr.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, a *store.Analysis, write func(io.Writer, *store.Analysis) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, a); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

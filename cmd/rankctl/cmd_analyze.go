package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Ranker/internal/analysis"
	"github.com/MikeSquared-Agency/Ranker/internal/config"
	"github.com/MikeSquared-Agency/Ranker/internal/report"
	"github.com/MikeSquared-Agency/Ranker/internal/sheet"
	"github.com/MikeSquared-Agency/Ranker/internal/simulation"
	"github.com/MikeSquared-Agency/Ranker/internal/store"
)

const summaryTopN = 5

type inputOptions struct {
	configPath string
	input      string
	sheet      string
	idColumn   string
}

func (o *inputOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.configPath, "config", "", "Path to config file")
	cmd.Flags().StringVarP(&o.input, "input", "i", "Intervention_scores.xlsx", "Input .xlsx or .csv file")
	cmd.Flags().StringVarP(&o.sheet, "sheet", "s", "", "Sheet name in the input workbook (default from config: Scoring)")
	cmd.Flags().StringVar(&o.idColumn, "id-column", "", "Identifier column (default from config: Intervention)")
}

// load reads the config and the input table, applying flag overrides.
func (o *inputOptions) load() (*config.Config, *sheet.Table, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.sheet != "" {
		cfg.Input.Sheet = o.sheet
	}
	if o.idColumn != "" {
		cfg.Input.IDColumn = o.idColumn
	}

	table, err := sheet.ReadFile(o.input, cfg.Input.Sheet)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("loaded input", "path", o.input, "rows", len(table.Rows), "columns", len(table.Headers))
	return cfg, table, nil
}

type analyzeOptions struct {
	inputOptions
	outdir string
	params simulation.Params
}

func newAnalyzeCommand() *cobra.Command {
	opts := &analyzeOptions{params: simulation.DefaultParams()}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run both simulators and write the reports",
		Long: `Parse the input sheet, enrich it, run the score-uncertainty and
weight-robustness simulations, and write three files to the output directory:

  Intervention_list_&_scores.xlsx
  weighted_score_intervals.csv
  ranking_robustness_weights_p5.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.outdir, "outdir", "o", ".", "Output directory")
	cmd.Flags().IntVarP(&opts.params.Replicates, "replicates", "r", opts.params.Replicates, "Monte Carlo iterations")
	cmd.Flags().Float64Var(&opts.params.ScoreNoise, "noise", opts.params.ScoreNoise, "Score noise half-width")
	cmd.Flags().Float64Var(&opts.params.WeightPerturbation, "wpert", opts.params.WeightPerturbation, "Relative weight perturbation (0.05 = ±5%)")
	cmd.Flags().Int64Var(&opts.params.ScoreSeed, "seed-scores", opts.params.ScoreSeed, "Seed for the score-uncertainty simulator")
	cmd.Flags().Int64Var(&opts.params.WeightSeed, "seed-weights", opts.params.WeightSeed, "Seed for the weight-robustness simulator")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	cfg, table, err := opts.load()
	if err != nil {
		return err
	}

	// Flags only override the config when set explicitly.
	params := cfg.Simulation
	flags := cmd.Flags()
	if flags.Changed("replicates") {
		params.Replicates = opts.params.Replicates
	}
	if flags.Changed("noise") {
		params.ScoreNoise = opts.params.ScoreNoise
	}
	if flags.Changed("wpert") {
		params.WeightPerturbation = opts.params.WeightPerturbation
	}
	if flags.Changed("seed-scores") {
		params.ScoreSeed = opts.params.ScoreSeed
	}
	if flags.Changed("seed-weights") {
		params.WeightSeed = opts.params.WeightSeed
	}

	svc := analysis.New(store.NewMemoryStore(), nil, cfg, slog.Default())
	a, err := svc.Run(cmd.Context(), analysis.Request{
		Name:   opts.input,
		Table:  table,
		Params: &params,
	})
	if err != nil {
		return err
	}

	paths, err := report.WriteAll(opts.outdir, a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printAnalysis(out, a.Params, len(a.Items), len(a.Domains))
	printIntervals(out, a, summaryTopN)
	printRobustness(out, a, summaryTopN)
	fmt.Fprintln(out, "\nGenerated files:")
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}

func printAnalysis(w io.Writer, p simulation.Params, items, domains int) {
	fmt.Fprintf(w, "Items:           %d\n", items)
	fmt.Fprintf(w, "Domains:         %d\n", domains)
	fmt.Fprintf(w, "MC iterations:   %d\n", p.Replicates)
	fmt.Fprintf(w, "Score noise:     ±%g\n", p.ScoreNoise)
	fmt.Fprintf(w, "Weight perturb:  ±%g%%\n", p.WeightPerturbation*100)
}

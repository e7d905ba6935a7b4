package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Ranker/internal/enrich"
	"github.com/MikeSquared-Agency/Ranker/internal/scoring"
)

type rankOptions struct {
	inputOptions
	perspective string
	format      string
}

type rankedItem struct {
	Rank  int     `json:"rank"`
	Item  string  `json:"item"`
	Score float64 `json:"score"`
}

func newRankCommand() *cobra.Command {
	opts := &rankOptions{}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the deterministic ranking without simulation",
		Long: `Parse the input sheet and print its competition ranking under the
parsed weights, or under a configured stakeholder profile with --perspective.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRank(cmd, opts)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.perspective, "perspective", "p", enrich.BaselinePerspective, "Weighting to rank by")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table or json")

	return cmd
}

func runRank(cmd *cobra.Command, opts *rankOptions) error {
	if opts.format != "table" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", opts.format)
	}

	cfg, table, err := opts.load()
	if err != nil {
		return err
	}
	model, err := scoring.Parse(table, cfg.Input.IDColumn)
	if err != nil {
		return err
	}

	var scores []float64
	var ranks []int
	var available []string
	for _, p := range cfg.Enricher().Enrich(model).Perspectives {
		available = append(available, p.Name)
		if p.Name == opts.perspective {
			scores, ranks = p.Scores, p.Ranks
		}
	}
	if scores == nil {
		return fmt.Errorf("unknown perspective %q (have %v)", opts.perspective, available)
	}

	ranked := make([]rankedItem, model.NumItems())
	for i, item := range model.Items {
		ranked[i] = rankedItem{Rank: ranks[i], Item: item, Score: scores[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rank < ranked[j].Rank })

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}
	fmt.Fprintf(out, "%-6s %-40s %s\n", "RANK", "ITEM", opts.perspective)
	for _, r := range ranked {
		fmt.Fprintf(out, "%-6d %-40s %.3f\n", r.Rank, r.Item, r.Score)
	}
	return nil
}

package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rankctl",
		Short: "rankctl - Monte Carlo sensitivity analysis for weighted rankings",
		Long: `rankctl ranks items scored on weighted domains and measures how stable
that ranking is under score noise and weight perturbation.

Domain columns carry their weight in the header, e.g. "Lifespan (25%)".`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newRankCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

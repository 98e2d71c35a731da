package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"triplan/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile string
	verbose bool

	log *slog.Logger
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "triplan",
	Short: "Triathlon training plan automation",
	Long: `Triplan turns a coach-issued weekly training plan PDF into structured
workouts and keeps them in sync with Garmin Connect.

The pipeline:
  - parse  extracts cycling, running and swimming sessions into a JSON cache
  - upload pushes the week's structured workouts to the Garmin calendar
  - fetch  pulls activities, weight and sleep back for the spreadsheet`,
	Version:      Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "triplan.yaml", "config file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "debug logging",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}

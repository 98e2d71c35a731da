package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"triplan/internal/fetch"
	"triplan/internal/garmin"
)

var (
	fetchStart string
	fetchEnd   string
	fetchOut   string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch activities, weight and sleep for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse("2006-01-02", fetchStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		end, err := time.Parse("2006-01-02", fetchEnd)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}

		client, err := garmin.NewClient(cfg.Garmin.BaseURL, cfg.Garmin.TokenDir)
		if err != nil {
			return err
		}

		sum, err := fetch.New(client, log).Run(cmd.Context(), start, end)
		if err != nil {
			return err
		}

		out := fetchOut
		if out == "" {
			out = fmt.Sprintf("data/garmin_%s_%s.json", fetchStart, fetchEnd)
		}
		if err := fetch.Save(out, sum); err != nil {
			return err
		}

		log.Info("wrote fetch summary", "file", out,
			"days", len(sum.Days), "activities", len(sum.Activities))
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "start date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "end date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "output JSON file")
	_ = fetchCmd.MarkFlagRequired("start")
	_ = fetchCmd.MarkFlagRequired("end")
}

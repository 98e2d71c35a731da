package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"triplan/internal/garmin"
	"triplan/internal/plan"
	"triplan/internal/upload"
)

var uploadForce bool

var uploadCmd = &cobra.Command{
	Use:   "upload <cache.json>",
	Short: "Upload a parsed week's workouts to Garmin Connect",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := plan.LoadCache(args[0])
		if err != nil {
			return err
		}

		client, err := garmin.NewClient(cfg.Garmin.BaseURL, cfg.Garmin.TokenDir)
		if err != nil {
			return err
		}

		state, err := upload.OpenStateDB(cfg.Upload.StateDir)
		if err != nil {
			return err
		}
		defer state.Close()

		u := upload.New(client, state, cfg.Upload.Delay, uploadForce, log)
		report := u.Run(cmd.Context(), doc)

		path, err := upload.SaveReport(cfg.Upload.ReportsDir, report)
		if err != nil {
			return err
		}

		log.Info("upload finished",
			"week", report.Week,
			"uploaded", len(report.Uploaded),
			"skipped", len(report.Skipped),
			"errors", len(report.Errors),
			"report", path,
		)
		if len(report.Errors) > 0 {
			return fmt.Errorf("%d workout(s) failed to upload", len(report.Errors))
		}
		return nil
	},
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadForce, "force", false, "re-upload workouts already marked as sent")
}

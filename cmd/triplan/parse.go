package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"triplan/internal/parse"
	"triplan/internal/pdftext"
	"triplan/internal/plan"
)

var parseOut string

var parseCmd = &cobra.Command{
	Use:   "parse <plan.pdf>",
	Short: "Parse a weekly plan PDF into the JSON cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		pages, err := pdftext.New().Extract(path)
		if err != nil {
			return err
		}
		log.Info("extracted text", "file", path, "pages", len(pages))

		doc, err := parse.New(log, cfg.Parse.Year).ParseDocument(path, pages)
		if err != nil {
			return err
		}

		out := parseOut
		if out == "" {
			out = filepath.Join(cfg.Parse.CacheDir, fmt.Sprintf("%s_workouts.json", doc.Week))
		}
		if err := plan.SaveCache(out, doc); err != nil {
			return err
		}

		log.Info("wrote cache", "file", out, "week", doc.Week, "workouts", len(doc.Workouts))
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "output cache file (default: <cache_dir>/<week>_workouts.json)")
}

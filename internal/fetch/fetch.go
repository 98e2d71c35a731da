// Package fetch pulls activities, weight and sleep data back from Garmin
// Connect over a date range and writes the per-day JSON used to fill the
// weekly spreadsheet.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"triplan/internal/garmin"
)

// Connect is the slice of the Garmin client the fetcher needs.
type Connect interface {
	Activities(ctx context.Context, start, end string, limit int) ([]garmin.Activity, error)
	DailyWeight(ctx context.Context, date string) (*float64, error)
	SleepSummary(ctx context.Context, date string) (*garmin.Sleep, error)
}

// Day is one calendar day's health data. Missing measurements stay null in
// the JSON rather than zero, so the spreadsheet filler can tell "no
// weigh-in" from "weighed 0".
type Day struct {
	Date     string        `json:"date"`
	DayName  string        `json:"day_name"`
	WeightKG *float64      `json:"weight_kg"`
	Sleep    *garmin.Sleep `json:"sleep"`
}

// Summary is the full fetch output for one period.
type Summary struct {
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	Days       []Day             `json:"days"`
	Activities []garmin.Activity `json:"activities"`
}

type Fetcher struct {
	client Connect
	log    *slog.Logger
}

func New(client Connect, log *slog.Logger) *Fetcher {
	return &Fetcher{client: client, log: log}
}

// Run collects weight and sleep for every day in [start, end] plus the
// period's activity list. A day with no data is kept with null fields;
// a failed lookup for one day is logged and does not abort the range.
func (f *Fetcher) Run(ctx context.Context, start, end time.Time) (*Summary, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	sum := &Summary{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		day := Day{Date: date, DayName: d.Weekday().String()}

		weight, err := f.client.DailyWeight(ctx, date)
		if err != nil {
			f.log.Warn("weight lookup failed", "date", date, "error", err)
		} else {
			day.WeightKG = weight
		}

		sleep, err := f.client.SleepSummary(ctx, date)
		if err != nil {
			f.log.Warn("sleep lookup failed", "date", date, "error", err)
		} else {
			day.Sleep = sleep
		}

		sum.Days = append(sum.Days, day)
		f.log.Info("fetched day", "date", date,
			"weight", day.WeightKG != nil, "sleep", day.Sleep != nil)
	}

	activities, err := f.client.Activities(ctx, sum.StartDate, sum.EndDate, 50)
	if err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}
	sum.Activities = activities

	return sum, nil
}

// Save writes the summary as pretty-printed JSON.
func Save(path string, sum *Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

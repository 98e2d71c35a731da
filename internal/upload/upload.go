// Package upload pushes a parsed week of workouts to Garmin Connect, one
// workout at a time, and records what happened.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"triplan/internal/garmin"
	"triplan/internal/plan"
)

// Skip reasons recorded in the report. French, matching the cache contract's
// language.
const (
	SkipNoIntervals = "Pas d'intervalles"
	SkipFreeRun     = "Séance libre"
	SkipSwimming    = "Natation non supportée"
	SkipAlreadySent = "Déjà uploadé"
)

// Connect is the slice of the Garmin client the uploader needs.
type Connect interface {
	UploadWorkout(ctx context.Context, w *garmin.Workout) (string, error)
	ScheduleWorkout(ctx context.Context, workoutID int64, date string) error
}

// Result is the per-workout outcome kept in the report.
type Result struct {
	Code      string `json:"code"`
	WorkoutID string `json:"workout_id,omitempty"`
	Scheduled bool   `json:"scheduled,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Report summarizes one batch run. It is persisted as JSON next to the
// cache files so a week's upload history can be audited later.
type Report struct {
	ID       string    `json:"id"`
	Week     string    `json:"week"`
	Period   string    `json:"period"`
	RunAt    time.Time `json:"run_at"`
	Uploaded []Result  `json:"uploaded"`
	Skipped  []Result  `json:"skipped"`
	Errors   []Result  `json:"errors"`
}

// Uploader walks a document's workouts, converts the uploadable ones and
// sends them sequentially with a fixed delay between calls.
type Uploader struct {
	client Connect
	state  *StateDB
	delay  time.Duration
	force  bool
	log    *slog.Logger

	// sleep is swappable so tests run without waiting.
	sleep func(time.Duration)
}

// New creates a new Uploader. state may be nil (no dedup tracking); force
// bypasses the dedup check while still recording successes.
func New(client Connect, state *StateDB, delay time.Duration, force bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		delay:  delay,
		force:  force,
		log:    log,
		sleep:  time.Sleep,
	}
}

// Run uploads every uploadable workout in doc. A failure on one workout is
// recorded and processing continues; the batch never aborts on a single
// item.
func (u *Uploader) Run(ctx context.Context, doc *plan.Document) *Report {
	report := &Report{
		ID:     uuid.NewString(),
		Week:   doc.Week,
		Period: doc.Period,
		RunAt:  time.Now().UTC(),
	}

	for i := range doc.Workouts {
		w := &doc.Workouts[i]
		if i > 0 {
			u.sleep(u.delay)
		}

		if reason := skipReason(w); reason != "" {
			u.log.Info("skipping workout", "code", w.Code, "reason", reason)
			report.Skipped = append(report.Skipped, Result{Code: w.Code, Reason: reason})
			continue
		}

		if u.state != nil && !u.force {
			done, err := u.state.IsUploaded(w.Code, doc.Week)
			if err != nil {
				u.log.Warn("state check failed", "code", w.Code, "error", err)
			} else if done {
				u.log.Info("skipping workout", "code", w.Code, "reason", SkipAlreadySent)
				report.Skipped = append(report.Skipped, Result{Code: w.Code, Reason: SkipAlreadySent})
				continue
			}
		}

		res := u.uploadOne(ctx, w)
		if res.Error != "" {
			u.log.Error("upload failed", "code", w.Code, "error", res.Error)
			report.Errors = append(report.Errors, res)
			continue
		}
		if u.state != nil {
			if err := u.state.MarkUploaded(w.Code, doc.Week, res.WorkoutID); err != nil {
				u.log.Warn("failed to mark uploaded", "code", w.Code, "error", err)
			}
		}
		u.log.Info("uploaded workout", "code", w.Code, "workout_id", res.WorkoutID, "scheduled", res.Scheduled)
		report.Uploaded = append(report.Uploaded, res)
	}

	return report
}

func (u *Uploader) uploadOne(ctx context.Context, w *plan.Workout) Result {
	res := Result{Code: w.Code}

	payload, err := garmin.ConvertWorkout(w)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	id, err := u.client.UploadWorkout(ctx, payload)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.WorkoutID = id

	if w.Date != "" {
		wid, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			u.log.Warn("scheduling skipped, non-numeric workout id", "code", w.Code, "workout_id", id)
		} else if err := u.client.ScheduleWorkout(ctx, wid, w.Date); err != nil {
			// Scheduling is best effort; the workout exists either way.
			u.log.Warn("scheduling failed", "code", w.Code, "workout_id", id, "error", err)
		} else {
			res.Scheduled = true
		}
	}
	return res
}

// skipReason classifies workouts that never reach the API.
func skipReason(w *plan.Workout) string {
	if w.Type == plan.Swimming {
		return SkipSwimming
	}
	if w.IsFreeRun() {
		return SkipFreeRun
	}
	if len(w.Intervals) == 0 {
		return SkipNoIntervals
	}
	return ""
}

// SaveReport writes a report to dir as a pretty-printed JSON file named
// after the week and run id.
func SaveReport(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports dir %s: %w", dir, err)
	}
	name := fmt.Sprintf("%s_upload_%s.json", r.Week, r.ID)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

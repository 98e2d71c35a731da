package garmin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeToken(t *testing.T, expiresAt int64) string {
	t.Helper()
	dir := t.TempDir()
	tok := fmt.Sprintf(`{"access_token":"tok-123","token_type":"Bearer","expires_at":%d}`, expiresAt)
	if err := os.WriteFile(filepath.Join(dir, "oauth2_token.json"), []byte(tok), 0600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	dir := writeToken(t, time.Now().Add(time.Hour).Unix())
	c, err := NewClient(srv.URL, dir)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientNoToken(t *testing.T) {
	_, err := NewClient("http://example.invalid", t.TempDir())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
}

func TestNewClientExpiredToken(t *testing.T) {
	dir := writeToken(t, time.Now().Add(-time.Hour).Unix())
	_, err := NewClient("http://example.invalid", dir)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

// TestUploadWorkout posts the payload with the bearer token and returns the
// id the service assigned.
func TestUploadWorkout(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/workout-service/workout" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("auth header = %q", got)
		}
		var req Workout
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.WorkoutName != "C16 - Sweet spot" {
			t.Errorf("workout name = %q", req.WorkoutName)
		}
		fmt.Fprint(w, `{"workoutId": 987654}`)
	}))

	id, err := c.UploadWorkout(context.Background(), &Workout{WorkoutName: "C16 - Sweet spot"})
	if err != nil {
		t.Fatalf("UploadWorkout: %v", err)
	}
	if id != "987654" {
		t.Errorf("id = %q, want 987654", id)
	}
}

// TestUploadWorkoutRetries: a transient 500 is retried, then succeeds.
func TestUploadWorkoutRetries(t *testing.T) {
	calls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "temporary", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"workoutId": 1}`)
	}))

	if _, err := c.UploadWorkout(context.Background(), &Workout{}); err != nil {
		t.Fatalf("UploadWorkout: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

// TestUploadWorkoutRejectedNotRetried: a 400 means the payload itself is
// bad; retrying would just repeat the rejection.
func TestUploadWorkoutRejectedNotRetried(t *testing.T) {
	calls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad step", http.StatusBadRequest)
	}))

	if _, err := c.UploadWorkout(context.Background(), &Workout{}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", calls)
	}
}

func TestUploadWorkoutUnauthorized(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))

	_, err := c.UploadWorkout(context.Background(), &Workout{})
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestScheduleWorkout(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/workout-service/schedule/987654" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req Schedule
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.WorkoutID != 987654 || req.Date != "2026-02-03" {
			t.Errorf("schedule = %+v", req)
		}
		fmt.Fprint(w, `{}`)
	}))

	if err := c.ScheduleWorkout(context.Background(), 987654, "2026-02-03"); err != nil {
		t.Fatalf("ScheduleWorkout: %v", err)
	}
}

// TestActivities filters the newest-first page down to the requested range.
func TestActivities(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"activityId":3,"startTimeLocal":"2026-02-10 08:00:00"},
			{"activityId":2,"startTimeLocal":"2026-02-05 08:00:00"},
			{"activityId":1,"startTimeLocal":"2026-01-20 08:00:00"}
		]`)
	}))

	got, err := c.Activities(context.Background(), "2026-02-02", "2026-02-08", 50)
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if len(got) != 1 || got[0].ActivityID != 2 {
		t.Errorf("activities = %+v, want only id 2", got)
	}
}

// TestDailyWeight converts grams to kilograms and takes the day's last
// weigh-in; a day without data yields nil, not zero.
func TestDailyWeight(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/weight-service/weight/dayview/2026-02-03" {
			fmt.Fprint(w, `{"dateWeightList":[{"weight":71800},{"weight":71500}]}`)
			return
		}
		fmt.Fprint(w, `{"dateWeightList":[]}`)
	}))

	kg, err := c.DailyWeight(context.Background(), "2026-02-03")
	if err != nil {
		t.Fatalf("DailyWeight: %v", err)
	}
	if kg == nil || *kg != 71.5 {
		t.Errorf("weight = %v, want 71.5", kg)
	}

	kg, err = c.DailyWeight(context.Background(), "2026-02-04")
	if err != nil {
		t.Fatalf("DailyWeight empty day: %v", err)
	}
	if kg != nil {
		t.Errorf("weight = %v, want nil for day without weigh-in", *kg)
	}
}

func TestSleepSummary(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"dailySleepDTO":{"sleepTimeSeconds":27000,"deepSleepSeconds":5400,"lightSleepSeconds":16200,"remSleepSeconds":5400},
			"sleepScores":{"overall":{"value":82}}
		}`)
	}))

	got, err := c.SleepSummary(context.Background(), "2026-02-03")
	if err != nil {
		t.Fatalf("SleepSummary: %v", err)
	}
	if got == nil {
		t.Fatal("sleep = nil")
	}
	if got.DurationHours != 7.5 {
		t.Errorf("duration = %v, want 7.5", got.DurationHours)
	}
	if got.QualityScore != 82 {
		t.Errorf("quality = %d, want 82", got.QualityScore)
	}
	if got.DeepSleepSeconds != 5400 {
		t.Errorf("deep = %d", got.DeepSleepSeconds)
	}
}

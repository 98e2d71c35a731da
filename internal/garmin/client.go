package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
)

// Session token errors. Tokens are produced out of band by a one-time
// interactive login (the MFA challenge cannot run unattended) and are valid
// for about a year; the client only resumes them.
var (
	ErrNoToken      = errors.New("no saved session token (run an interactive login first)")
	ErrTokenExpired = errors.New("saved session token expired (run an interactive login again)")
)

// oauth2Token is the relevant subset of the token file written by the
// interactive login tool.
type oauth2Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Client talks to the Garmin Connect API using a resumed session token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      oauth2Token
}

const tokenFileName = "oauth2_token.json"

// NewClient loads the saved token from tokenDir and returns a ready client.
// It fails with ErrNoToken or ErrTokenExpired rather than attempting a
// fresh login.
func NewClient(baseURL, tokenDir string) (*Client, error) {
	data, err := os.ReadFile(filepath.Join(tokenDir, tokenFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", tokenDir, ErrNoToken)
		}
		return nil, fmt.Errorf("reading token: %w", err)
	}
	var tok oauth2Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%s: %w", tokenDir, ErrNoToken)
	}
	if tok.ExpiresAt > 0 && time.Now().Unix() >= tok.ExpiresAt {
		return nil, ErrTokenExpired
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		token: tok,
	}, nil
}

// UploadWorkout creates a workout and returns its opaque identifier.
func (c *Client) UploadWorkout(ctx context.Context, w *Workout) (string, error) {
	body, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("marshaling workout: %w", err)
	}
	var id WorkoutID
	err = c.do(ctx, http.MethodPost, "/workout-service/workout", body, &id)
	if err != nil {
		return "", fmt.Errorf("uploading workout %q: %w", w.WorkoutName, err)
	}
	return id.WorkoutID.String(), nil
}

// ScheduleWorkout pins an uploaded workout to a calendar date (YYYY-MM-DD).
func (c *Client) ScheduleWorkout(ctx context.Context, workoutID int64, date string) error {
	body, err := json.Marshal(Schedule{WorkoutID: workoutID, Date: date})
	if err != nil {
		return fmt.Errorf("marshaling schedule: %w", err)
	}
	path := fmt.Sprintf("/workout-service/schedule/%d", workoutID)
	if err := c.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("scheduling workout %d for %s: %w", workoutID, date, err)
	}
	return nil
}

// Activities lists activities whose local start date falls in [start, end]
// (both YYYY-MM-DD, inclusive). The API is paged newest-first; limit caps
// how many entries are examined.
func (c *Client) Activities(ctx context.Context, start, end string, limit int) ([]Activity, error) {
	q := url.Values{}
	q.Set("start", "0")
	q.Set("limit", fmt.Sprint(limit))
	var all []Activity
	err := c.do(ctx, http.MethodGet, "/activitylist-service/activities/search/activities?"+q.Encode(), nil, &all)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	var filtered []Activity
	for _, a := range all {
		if len(a.StartTime) < 10 {
			continue
		}
		day := a.StartTime[:10]
		if start <= day && day <= end {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// DailyWeight returns the last weigh-in of the day in kilograms, or nil
// when no weigh-in exists. The API reports grams.
func (c *Client) DailyWeight(ctx context.Context, date string) (*float64, error) {
	var dv dayWeight
	err := c.do(ctx, http.MethodGet, "/weight-service/weight/dayview/"+date, nil, &dv)
	if err != nil {
		return nil, fmt.Errorf("fetching weight for %s: %w", date, err)
	}
	if len(dv.DateWeightList) == 0 {
		return nil, nil
	}
	kg := dv.DateWeightList[len(dv.DateWeightList)-1].Weight / 1000.0
	return &kg, nil
}

// SleepSummary returns the normalized sleep record for one night, or nil
// when the service has no data for that date.
func (c *Client) SleepSummary(ctx context.Context, date string) (*Sleep, error) {
	q := url.Values{}
	q.Set("date", date)
	var sd sleepData
	err := c.do(ctx, http.MethodGet, "/wellness-service/wellness/dailySleepData?"+q.Encode(), nil, &sd)
	if err != nil {
		return nil, fmt.Errorf("fetching sleep for %s: %w", date, err)
	}
	if sd.DailySleepDTO.SleepTimeSeconds == 0 {
		return nil, nil
	}
	hours := float64(sd.DailySleepDTO.SleepTimeSeconds) / 3600.0
	return &Sleep{
		Date:              date,
		DurationHours:     float64(int(hours*10+0.5)) / 10,
		QualityScore:      sd.SleepScores.Overall.Value,
		DeepSleepSeconds:  sd.DailySleepDTO.DeepSleepSeconds,
		LightSleepSeconds: sd.DailySleepDTO.LightSleepSeconds,
		RemSleepSeconds:   sd.DailySleepDTO.RemSleepSeconds,
	}, nil
}

// do runs one authenticated request with retries. 4xx responses are not
// retried: a rejected payload or a dead token will not get better.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)
			if body != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return retry.Unrecoverable(fmt.Errorf("status %d: %w", resp.StatusCode, ErrTokenExpired))
			}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
				return retry.Unrecoverable(fmt.Errorf("%s %s failed (status %d): %s", method, path, resp.StatusCode, msg))
			}
			if resp.StatusCode != http.StatusOK {
				msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
				return fmt.Errorf("%s %s failed (status %d): %s", method, path, resp.StatusCode, msg)
			}
			if out == nil {
				return nil
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decoding response: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

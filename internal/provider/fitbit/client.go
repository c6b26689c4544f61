package fitbit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const defaultBaseURL = "https://api.fitbit.com"

// DaySummary is the per-day activity rollup the sync cares about.
type DaySummary struct {
	Date          string
	CaloriesOut   int
	ActiveMinutes int
	Steps         int
}

type Client struct {
	BaseURL     string
	AccessToken string
	HTTPClient  *http.Client
}

// NewClient returns a client against the public API with sane timeouts.
func NewClient(accessToken string) *Client {
	return &Client{
		AccessToken: accessToken,
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type activityResponse struct {
	Summary struct {
		CaloriesOut         int `json:"caloriesOut"`
		FairlyActiveMinutes int `json:"fairlyActiveMinutes"`
		VeryActiveMinutes   int `json:"veryActiveMinutes"`
		Steps               int `json:"steps"`
	} `json:"summary"`
}

// ActivitySummary fetches the activity summary for one date (YYYY-MM-DD).
// Transient failures (5xx, 429, network) retry with exponential backoff;
// client errors are permanent.
func (c *Client) ActivitySummary(ctx context.Context, date string) (DaySummary, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	url := fmt.Sprintf("%s/1/user/-/activities/date/%s.json", base, date)

	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("create fitbit request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.AccessToken)

		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fitbit request for %s: %w", date, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return nil, fmt.Errorf("fitbit responded %d for %s", resp.StatusCode, date)
		default:
			return nil, backoff.Permanent(fmt.Errorf("fitbit responded %d for %s", resp.StatusCode, date))
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read fitbit response for %s: %w", date, err)
		}
		return data, nil
	}, backoff.WithMaxTries(4))
	if err != nil {
		return DaySummary{}, err
	}

	var parsed activityResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return DaySummary{}, fmt.Errorf("decode fitbit response for %s: %w", date, err)
	}
	return DaySummary{
		Date:          date,
		CaloriesOut:   parsed.Summary.CaloriesOut,
		ActiveMinutes: parsed.Summary.FairlyActiveMinutes + parsed.Summary.VeryActiveMinutes,
		Steps:         parsed.Summary.Steps,
	}, nil
}

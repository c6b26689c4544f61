package fitbit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestActivitySummaryParsesResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "summary": {
    "caloriesOut": 2450,
    "fairlyActiveMinutes": 20,
    "veryActiveMinutes": 35,
    "steps": 10432
  }
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, AccessToken: "tok", HTTPClient: ts.Client()}
	summary, err := c.ActivitySummary(context.Background(), "2026-08-27")
	if err != nil {
		t.Fatalf("activity summary: %v", err)
	}
	if summary.CaloriesOut != 2450 {
		t.Fatalf("expected 2450 calories out, got %d", summary.CaloriesOut)
	}
	if summary.ActiveMinutes != 55 {
		t.Fatalf("expected 55 active minutes, got %d", summary.ActiveMinutes)
	}
	if summary.Steps != 10432 {
		t.Fatalf("expected 10432 steps, got %d", summary.Steps)
	}
}

func TestActivitySummaryRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"summary": {"caloriesOut": 1800}}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, AccessToken: "tok", HTTPClient: ts.Client()}
	summary, err := c.ActivitySummary(context.Background(), "2026-08-27")
	if err != nil {
		t.Fatalf("activity summary after retry: %v", err)
	}
	if summary.CaloriesOut != 1800 {
		t.Fatalf("expected 1800 calories out, got %d", summary.CaloriesOut)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", calls.Load())
	}
}

func TestActivitySummaryUnauthorizedIsPermanent(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, AccessToken: "bad", HTTPClient: ts.Client()}
	if _, err := c.ActivitySummary(context.Background(), "2026-08-27"); err == nil {
		t.Fatalf("expected error for 401 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("401 must not retry, got %d calls", calls.Load())
	}
}

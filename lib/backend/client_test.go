// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clogs-dev/clogs/lib/timeline"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(Config{
		BaseURL:    server.URL + "/api/",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClient_Validation(t *testing.T) {
	for _, baseURL := range []string{"", "ftp://example.com", "://bad"} {
		if _, err := NewClient(Config{BaseURL: baseURL}); err == nil {
			t.Errorf("NewClient(%q) succeeded, want error", baseURL)
		}
	}
	client, err := NewClient(Config{BaseURL: "http://localhost:8080/api/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.BaseURL() != "http://localhost:8080/api" {
		t.Errorf("BaseURL() = %q, trailing slash not trimmed", client.BaseURL())
	}
}

func TestFetchIntervals(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/web/uptime" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get(RequestIDHeader) == "" {
			t.Error("request has no X-Request-ID")
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"container_id":"abc","start_time":0,"end_time":40,"state":"running"},
			{"container_id":"abc","start_time":40,"end_time":null,"state":"exited"}
		]`))
	})

	intervals, err := client.FetchIntervals(context.Background(), "abc")
	if err != nil {
		t.Fatalf("FetchIntervals: %v", err)
	}
	if gotQuery != "container_id=abc" {
		t.Errorf("query = %q, want container_id=abc", gotQuery)
	}
	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2", len(intervals))
	}
	if !intervals[0].End.Equal(time.Unix(40, 0)) || intervals[0].State != "running" {
		t.Errorf("first interval = %+v", intervals[0])
	}
	if !intervals[1].Open() {
		t.Error("null end_time did not produce an open interval")
	}

	if _, err := client.FetchIntervals(context.Background(), timeline.FleetSubject); err != nil {
		t.Fatalf("FetchIntervals(fleet): %v", err)
	}
	if gotQuery != "" {
		t.Errorf("fleet query sent %q, want no parameters", gotQuery)
	}
}

func TestRequestIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen[r.Header.Get(RequestIDHeader)] = true
	})
	for range 3 {
		if err := client.Health(context.Background()); err != nil {
			t.Fatalf("Health: %v", err)
		}
	}
	if len(seen) != 3 {
		t.Errorf("got %d distinct request IDs for 3 requests", len(seen))
	}
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		status    int
		notFound  bool
		transient bool
	}{
		{http.StatusNotFound, true, false},
		{http.StatusBadRequest, false, false},
		{http.StatusTooManyRequests, false, true},
		{http.StatusServiceUnavailable, false, true},
	}
	for _, tt := range tests {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte("  nope \n"))
		})
		err := client.Health(context.Background())
		var apiError *APIError
		if !errors.As(err, &apiError) {
			t.Fatalf("status %d: got %v, want *APIError", tt.status, err)
		}
		if apiError.Body != "nope" {
			t.Errorf("status %d: body = %q", tt.status, apiError.Body)
		}
		if apiError.RequestID == "" {
			t.Errorf("status %d: no request ID recorded", tt.status)
		}
		if IsNotFound(err) != tt.notFound {
			t.Errorf("status %d: IsNotFound = %v", tt.status, !tt.notFound)
		}
		if IsTransient(err) != tt.transient {
			t.Errorf("status %d: IsTransient = %v", tt.status, !tt.transient)
		}
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 502, Method: "GET", Path: "/health", Body: "bad gateway"}
	if got, want := err.Error(), "backend: GET /health: HTTP 502: bad gateway"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if IsTransient(errors.New("dial tcp: refused")) {
		t.Error("transport error classified as transient APIError")
	}
}

func TestServicesAndOrphans(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/web/services":
			w.Write([]byte(`{"shop":[{"id":"c1","agent_id":"a1","name":"web","image":"nginx","created_at":5,"status":"running","type":"compose"}]}`))
		case "/api/web/orphans":
			w.Write([]byte(`[{"id":null,"agent_id":"a1","context":null,"name":"stray","image":"busybox","created_at":6,"status":"exited"}]`))
		default:
			http.NotFound(w, r)
		}
	})

	services, err := client.Services(context.Background())
	if err != nil {
		t.Fatalf("Services: %v", err)
	}
	web := services["shop"][0]
	if web.Type != ServiceCompose || web.Name != "web" || web.Key() != "c1" {
		t.Errorf("service container = %+v", web)
	}

	orphans, err := client.Orphans(context.Background())
	if err != nil {
		t.Fatalf("Orphans: %v", err)
	}
	if len(orphans) != 1 || orphans[0].ID != nil {
		t.Fatalf("orphans = %+v", orphans)
	}
	if orphans[0].Key() != "stray" {
		t.Errorf("Key() for a container without ID = %q, want its name", orphans[0].Key())
	}
}

func TestUptimeAndLogs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/processors/uptime":
			w.Write([]byte(`{"web":7200,"db":1800.5}`))
		case "/api/web/logs":
			if got := r.URL.Query().Get("limit"); got != "50" {
				t.Errorf("limit = %q", got)
			}
			w.Write([]byte(`[{"container_id":"c1","timestamp":1700000000000000000,"level":"info","message":"up"}]`))
		}
	})

	uptime, err := client.Uptime(context.Background())
	if err != nil {
		t.Fatalf("Uptime: %v", err)
	}
	if uptime["web"] != 7200 || uptime["db"] != 1800.5 {
		t.Errorf("uptime = %v", uptime)
	}

	logs, err := client.Logs(context.Background(), 50, "c1")
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if len(logs) != 1 || !logs[0].Time().Equal(time.Unix(1_700_000_000, 0)) {
		t.Errorf("logs = %+v", logs)
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	err = client.Health(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want deadline exceeded", err)
	}
}

func TestMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})
	_, err := client.Orphans(context.Background())
	if err == nil || !strings.Contains(err.Error(), "/web/orphans") {
		t.Fatalf("got %v, want decode error naming the path", err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	closed := timeline.Interval{SubjectID: "x", Start: time.Unix(10, 0), End: time.Unix(20, 0), State: "paused"}
	if got := RecordFromInterval(closed).Interval(); !got.Start.Equal(closed.Start) || !got.End.Equal(closed.End) || got.State != "paused" {
		t.Errorf("closed interval round trip = %+v", got)
	}
	open := timeline.Interval{SubjectID: "x", Start: time.Unix(10, 0), State: "running"}
	record := RecordFromInterval(open)
	if record.EndTime != nil {
		t.Error("open interval encoded with an end time")
	}
	if !record.Interval().Open() {
		t.Error("open interval round trip closed it")
	}
}

// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clogs-dev/clogs/lib/clock"
	"github.com/clogs-dev/clogs/lib/netutil"
	"github.com/clogs-dev/clogs/lib/timeline"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the API root including any path prefix, for example
	// "http://localhost:8080/api". Required.
	BaseURL string

	// Timeout bounds each request. Zero means no per-request timeout
	// beyond the caller's context.
	Timeout time.Duration

	// HTTPClient is used for all requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock times requests for the debug log. Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the Clogs API.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger
}

var _ timeline.Provider = (*Client)(nil)

// NewClient creates a client from config.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("backend: parsing BaseURL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("backend: BaseURL must be http or https (got %q)", baseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		timeout:    config.Timeout,
		httpClient: httpClient,
		clock:      clk,
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized API root.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// get issues a GET for path with query and decodes the JSON response
// into result. result may be nil when only the status matters.
func (client *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	if client.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}

	target := client.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("backend: creating request: %w", err)
	}
	requestID := uuid.NewString()
	request.Header.Set(RequestIDHeader, requestID)
	request.Header.Set("Accept", "application/json")

	started := client.clock.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("backend: GET %s: %w", path, err)
	}
	defer response.Body.Close()

	client.logger.Debug("backend request",
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
		"duration", client.clock.Now().Sub(started),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return newAPIError(http.MethodGet, path, requestID, response.StatusCode, netutil.ErrorBody(response.Body))
	}

	if result == nil {
		return nil
	}
	if err := netutil.DecodeResponse(response.Body, result); err != nil {
		return fmt.Errorf("backend: GET %s: %w", path, err)
	}
	return nil
}

// FetchIntervals returns the uptime history of subjectID in the order
// the backend sent it. timeline.FleetSubject requests every container.
func (client *Client) FetchIntervals(ctx context.Context, subjectID string) ([]timeline.Interval, error) {
	query := url.Values{}
	if subjectID != timeline.FleetSubject {
		query.Set("container_id", subjectID)
	}
	var records []UptimeRecord
	if err := client.get(ctx, "/web/uptime", query, &records); err != nil {
		return nil, err
	}
	return Intervals(records), nil
}

// Health checks that the API is reachable and healthy.
func (client *Client) Health(ctx context.Context) error {
	return client.get(ctx, "/health", nil, nil)
}

// Services returns containers grouped by the service that owns them.
func (client *Client) Services(ctx context.Context) (ServiceMap, error) {
	var services ServiceMap
	if err := client.get(ctx, "/web/services", nil, &services); err != nil {
		return nil, err
	}
	if services == nil {
		services = ServiceMap{}
	}
	return services, nil
}

// Orphans returns containers that belong to no service.
func (client *Client) Orphans(ctx context.Context) ([]Container, error) {
	var orphans []Container
	if err := client.get(ctx, "/web/orphans", nil, &orphans); err != nil {
		return nil, err
	}
	return orphans, nil
}

// Uptime returns cumulative seconds up, keyed by container name.
func (client *Client) Uptime(ctx context.Context) (map[string]float64, error) {
	var uptime map[string]float64
	if err := client.get(ctx, "/processors/uptime", nil, &uptime); err != nil {
		return nil, err
	}
	if uptime == nil {
		uptime = map[string]float64{}
	}
	return uptime, nil
}

// Logs returns up to limit recent log entries, newest first, for
// containerID. An empty containerID returns entries for every
// container.
func (client *Client) Logs(ctx context.Context, limit int, containerID string) ([]LogEntry, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if containerID != "" {
		query.Set("container_id", containerID)
	}
	var entries []LogEntry
	if err := client.get(ctx, "/web/logs", query, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package fixture provides uptime histories from a local JSONC file,
// for running the dashboard without a backend.
//
// The file holds either an array of uptime records (the same objects
// the API returns from /web/uptime) or an object with "uptime",
// "services", "orphans", "cumulative_uptime" and "logs" keys mirroring the
// other endpoints. Comments and trailing commas are allowed. The file
// is re-read on every fetch so edits appear on the next poll.
package fixture

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/tidwall/jsonc"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/timeline"
)

// Document is the object form of a fixture file.
type Document struct {
	Uptime           []backend.UptimeRecord `json:"uptime"`
	Services         backend.ServiceMap     `json:"services"`
	Orphans          []backend.Container    `json:"orphans"`
	CumulativeUptime map[string]float64     `json:"cumulative_uptime"`
	Logs             []backend.LogEntry     `json:"logs"`
}

// Provider reads a fixture file.
type Provider struct {
	path string
}

var _ timeline.Provider = (*Provider)(nil)

// New returns a Provider for path. The file is not read until the
// first fetch.
func New(path string) *Provider {
	return &Provider{path: path}
}

// Path returns the fixture file path.
func (provider *Provider) Path() string {
	return provider.path
}

// Load reads and parses the file.
func (provider *Provider) Load() (*Document, error) {
	data, err := os.ReadFile(provider.path)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	document, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", provider.path, err)
	}
	return document, nil
}

// Parse decodes fixture content in either accepted form.
func Parse(data []byte) (*Document, error) {
	plain := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(plain) == 0 {
		return nil, fmt.Errorf("empty fixture")
	}

	document := &Document{}
	if plain[0] == '[' {
		if err := json.Unmarshal(plain, &document.Uptime); err != nil {
			return nil, fmt.Errorf("parsing uptime records: %w", err)
		}
	} else if err := json.Unmarshal(plain, document); err != nil {
		return nil, fmt.Errorf("parsing fixture document: %w", err)
	}
	if document.Services == nil {
		document.Services = backend.ServiceMap{}
	}
	if document.CumulativeUptime == nil {
		document.CumulativeUptime = map[string]float64{}
	}
	return document, nil
}

// FetchIntervals returns the records of subjectID in file order, or
// every record for timeline.FleetSubject.
func (provider *Provider) FetchIntervals(ctx context.Context, subjectID string) ([]timeline.Interval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	document, err := provider.Load()
	if err != nil {
		return nil, err
	}
	if subjectID == timeline.FleetSubject {
		return backend.Intervals(document.Uptime), nil
	}
	var selected []backend.UptimeRecord
	for _, record := range document.Uptime {
		if record.ContainerID == subjectID {
			selected = append(selected, record)
		}
	}
	return backend.Intervals(selected), nil
}

// Health reports whether the fixture file can be read and parsed.
func (provider *Provider) Health(ctx context.Context) error {
	_, err := provider.Load()
	return err
}

// Services returns the "services" section.
func (provider *Provider) Services(ctx context.Context) (backend.ServiceMap, error) {
	document, err := provider.Load()
	if err != nil {
		return nil, err
	}
	return document.Services, nil
}

// Orphans returns the "orphans" section. A bare-array fixture has no
// inventory, so every container seen in its records is reported as an
// orphan with the state of its latest record.
func (provider *Provider) Orphans(ctx context.Context) ([]backend.Container, error) {
	document, err := provider.Load()
	if err != nil {
		return nil, err
	}
	if document.Orphans != nil || len(document.Services) > 0 {
		return document.Orphans, nil
	}
	return inferContainers(document.Uptime), nil
}

func inferContainers(records []backend.UptimeRecord) []backend.Container {
	var containers []backend.Container
	index := map[string]int{}
	for _, record := range records {
		position, seen := index[record.ContainerID]
		if !seen {
			id := record.ContainerID
			position = len(containers)
			index[id] = position
			containers = append(containers, backend.Container{ID: &id, Name: id, CreatedAt: record.StartTime})
		}
		containers[position].Status = record.State
	}
	return containers
}

// Uptime returns the "cumulative_uptime" section.
func (provider *Provider) Uptime(ctx context.Context) (map[string]float64, error) {
	document, err := provider.Load()
	if err != nil {
		return nil, err
	}
	return document.CumulativeUptime, nil
}

// Logs returns up to limit entries of the "logs" section, newest
// first, for containerID. An empty containerID returns every entry
// and a non-positive limit returns all that match.
func (provider *Provider) Logs(ctx context.Context, limit int, containerID string) ([]backend.LogEntry, error) {
	document, err := provider.Load()
	if err != nil {
		return nil, err
	}
	var entries []backend.LogEntry
	for _, entry := range document.Logs {
		if containerID == "" || entry.ContainerID == containerID {
			entries = append(entries, entry)
		}
	}
	slices.SortStableFunc(entries, func(a, b backend.LogEntry) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

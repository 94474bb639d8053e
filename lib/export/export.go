// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/codec"
	"github.com/clogs-dev/clogs/lib/timeline"
	"github.com/clogs-dev/clogs/lib/tui"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a --format value.
func ParseFormat(value string) (Format, error) {
	switch format := Format(strings.ToLower(value)); format {
	case FormatText, FormatJSON, FormatCBOR:
		return format, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json, or cbor)", value)
}

// Subject is one timeline to export.
type Subject struct {
	ID   string
	Name string
}

// Inventory lists the containers to export.
type Inventory interface {
	Services(ctx context.Context) (backend.ServiceMap, error)
	Orphans(ctx context.Context) ([]backend.Container, error)
}

// Subjects returns the fleet followed by every container, services in
// name order then orphans. When only is non-empty, containers matching
// none of its IDs or names are left out.
func Subjects(ctx context.Context, inventory Inventory, only []string) ([]Subject, error) {
	services, err := inventory.Services(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	orphans, err := inventory.Orphans(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing orphans: %w", err)
	}

	keep := func(container backend.Container) bool {
		return len(only) == 0 || slices.Contains(only, container.Key()) || slices.Contains(only, container.Name)
	}
	byName := func(a, b backend.Container) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Key(), b.Key()))
	}

	subjects := []Subject{{ID: timeline.FleetSubject, Name: "all containers"}}
	seen := make(map[string]bool)
	add := func(containers []backend.Container) {
		slices.SortFunc(containers, byName)
		for _, container := range containers {
			if !keep(container) || seen[container.Key()] {
				continue
			}
			seen[container.Key()] = true
			subjects = append(subjects, Subject{ID: container.Key(), Name: container.Name})
		}
	}

	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		containers := make([]backend.Container, 0, len(services[name]))
		for _, member := range services[name] {
			containers = append(containers, member.Container)
		}
		add(containers)
	}
	add(slices.Clone(orphans))
	return subjects, nil
}

// Document is the exported form of every subject's series.
type Document struct {
	// GeneratedAt is the render time in unix seconds.
	GeneratedAt        int64           `json:"generated_at"`
	BucketWidthSeconds int64           `json:"bucket_width_seconds"`
	LookbackSeconds    int64           `json:"lookback_seconds"`
	Subjects           []SubjectSeries `json:"subjects"`
}

// SubjectSeries is one subject's channels and rows. Error is set, and
// Rows empty, when its history could not be fetched or rendered.
type SubjectSeries struct {
	SubjectID string      `json:"subject_id"`
	Name      string      `json:"name"`
	Channels  []string    `json:"channels"`
	Rows      []RowRecord `json:"rows"`
	Error     string      `json:"error,omitempty"`

	series timeline.Series
}

// RowRecord is one bucket with its one-hot vector. Times are unix
// seconds. Values are ints so JSON carries them as numbers.
type RowRecord struct {
	Start  int64  `json:"start"`
	End    int64  `json:"end"`
	State  string `json:"state"`
	Values []int  `json:"values"`
}

// Failed returns the number of subjects that carry an error.
func (document *Document) Failed() int {
	failed := 0
	for _, subject := range document.Subjects {
		if subject.Error != "" {
			failed++
		}
	}
	return failed
}

// Collect fetches every subject concurrently into board and renders
// all of them at now. A subject whose fetch or render fails is
// reported in its Error field; the others are unaffected.
func Collect(ctx context.Context, provider timeline.Provider, board *timeline.Board, subjects []Subject, now time.Time) *Document {
	results := make([]SubjectSeries, len(subjects))

	var wg sync.WaitGroup
	for index, subject := range subjects {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[index] = SubjectSeries{SubjectID: subject.ID, Name: subject.Name, Channels: []string{}, Rows: []RowRecord{}}
			intervals, err := provider.FetchIntervals(ctx, subject.ID)
			if err != nil {
				results[index].Error = err.Error()
				return
			}
			board.Replace(subject.ID, intervals, now)
		}()
	}
	wg.Wait()

	for index := range results {
		if results[index].Error != "" {
			continue
		}
		series, err := board.RenderSeries(results[index].SubjectID, now)
		if err != nil {
			results[index].Error = err.Error()
			continue
		}
		results[index].series = series
		results[index].Channels = series.Channels
		results[index].Rows = rowRecords(series)
	}

	options := board.Options()
	return &Document{
		GeneratedAt:        now.Unix(),
		BucketWidthSeconds: int64(options.BucketWidth / time.Second),
		LookbackSeconds:    int64(options.Lookback / time.Second),
		Subjects:           results,
	}
}

func rowRecords(series timeline.Series) []RowRecord {
	records := make([]RowRecord, len(series.Rows))
	for index, row := range series.Rows {
		values := make([]int, len(row.Values))
		for channel, value := range row.Values {
			values[channel] = int(value)
		}
		records[index] = RowRecord{
			Start:  row.Bucket.Start.Unix(),
			End:    row.Bucket.End.Unix(),
			State:  row.Bucket.State,
			Values: values,
		}
	}
	return records
}

// Write encodes document to w. width bounds each text line.
func Write(w io.Writer, format Format, document *Document, theme tui.Theme, width int) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(document)
	case FormatCBOR:
		return codec.NewEncoder(w).Encode(document)
	case FormatText:
		return writeText(w, document, theme, width)
	}
	return fmt.Errorf("unknown format %q", format)
}

// writeText prints one line per subject: name, then its heartbeat,
// followed by a legend of every channel seen.
func writeText(w io.Writer, document *Document, theme tui.Theme, width int) error {
	nameWidth := 0
	for _, subject := range document.Subjects {
		nameWidth = max(nameWidth, ansi.StringWidth(subject.Name))
	}
	nameWidth = min(nameWidth, 32)
	barWidth := max(width-nameWidth-2, 10)

	nameStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	errorStyle := lipgloss.NewStyle().Foreground(theme.OfflineColor)

	var channels []string
	var builder strings.Builder
	for _, subject := range document.Subjects {
		name := ansi.Truncate(subject.Name, nameWidth, "…")
		builder.WriteString(nameStyle.Render(name))
		builder.WriteString(strings.Repeat(" ", nameWidth-ansi.StringWidth(name)+2))
		switch {
		case subject.Error != "":
			builder.WriteString(errorStyle.Render(ansi.Truncate(subject.Error, barWidth, "…")))
		case subject.series.Empty():
			builder.WriteString(faintStyle.Render("no history in window"))
		default:
			builder.WriteString(tui.RenderHeartbeat(theme, subject.series, barWidth, -1))
		}
		builder.WriteString("\n")

		for _, channel := range subject.Channels {
			if !slices.Contains(channels, channel) {
				channels = append(channels, channel)
			}
		}
	}
	if len(channels) > 0 {
		builder.WriteString("\n" + tui.RenderLegend(theme, channels) + "\n")
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

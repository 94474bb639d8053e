// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/timeline"
	"github.com/clogs-dev/clogs/lib/tui"
)

// timeSourceTickMsg carries the new shared now after the time source
// advanced.
type timeSourceTickMsg struct {
	Now time.Time
}

// intervalsMsg is the outcome of one uptime history fetch.
type intervalsMsg struct {
	SubjectID string
	Intervals []timeline.Interval
	FetchedAt time.Time
	Err       error
}

// inventoryMsg is the outcome of fetching services and orphans
// together. Either failing fails both.
type inventoryMsg struct {
	Services backend.ServiceMap
	Orphans  []backend.Container
	Err      error
}

type uptimeMsg struct {
	Uptime map[string]float64
	Err    error
}

type healthMsg struct {
	CheckedAt time.Time
	Err       error
}

type logsMsg struct {
	SubjectID string
	Entries   []backend.LogEntry
	Err       error
}

// dataPollMsg and healthPollMsg fire at their poll cadences.
type (
	dataPollMsg   struct{}
	healthPollMsg struct{}
)

// heatTickMsg drives the status change glow while any row is hot.
type heatTickMsg struct{}

// listenForTicks blocks until the time source publishes and returns
// the tick. The model re-issues it after every tick.
func listenForTicks(ticks <-chan time.Time) tea.Cmd {
	return func() tea.Msg {
		now, ok := <-ticks
		if !ok {
			return nil
		}
		return timeSourceTickMsg{Now: now}
	}
}

func scheduleHeatTick() tea.Cmd {
	return tea.Tick(tui.HeatTickInterval, func(time.Time) tea.Msg {
		return heatTickMsg{}
	})
}

func (model Model) scheduleDataPoll() tea.Cmd {
	return tea.Tick(model.dataInterval, func(time.Time) tea.Msg {
		return dataPollMsg{}
	})
}

func (model Model) scheduleHealthPoll() tea.Cmd {
	return tea.Tick(model.healthInterval, func(time.Time) tea.Msg {
		return healthPollMsg{}
	})
}

// refreshData fetches the inventory, cumulative uptime, and the
// history of every tracked subject.
func (model Model) refreshData() tea.Cmd {
	commands := []tea.Cmd{model.fetchInventory(), model.fetchUptime()}
	for _, subjectID := range subjectIDs(model.groups) {
		commands = append(commands, model.fetchIntervals(subjectID))
	}
	return tea.Batch(commands...)
}

// fetchIntervals returns nil while a fetch for subjectID is already in
// flight, so a slow backend never accumulates overlapping requests.
func (model Model) fetchIntervals(subjectID string) tea.Cmd {
	if model.inFlight[subjectID] {
		return nil
	}
	model.inFlight[subjectID] = true

	source, ctx, clk := model.source, model.ctx, model.clock
	return func() tea.Msg {
		intervals, err := source.FetchIntervals(ctx, subjectID)
		return intervalsMsg{
			SubjectID: subjectID,
			Intervals: intervals,
			FetchedAt: clk.Now(),
			Err:       err,
		}
	}
}

func (model Model) fetchInventory() tea.Cmd {
	source, ctx := model.source, model.ctx
	return func() tea.Msg {
		services, err := source.Services(ctx)
		if err != nil {
			return inventoryMsg{Err: err}
		}
		orphans, err := source.Orphans(ctx)
		if err != nil {
			return inventoryMsg{Err: err}
		}
		return inventoryMsg{Services: services, Orphans: orphans}
	}
}

func (model Model) fetchUptime() tea.Cmd {
	source, ctx := model.source, model.ctx
	return func() tea.Msg {
		uptime, err := source.Uptime(ctx)
		return uptimeMsg{Uptime: uptime, Err: err}
	}
}

func (model Model) checkHealth() tea.Cmd {
	source, ctx, clk := model.source, model.ctx, model.clock
	return func() tea.Msg {
		err := source.Health(ctx)
		return healthMsg{CheckedAt: clk.Now(), Err: err}
	}
}

func (model Model) fetchLogs(subjectID string) tea.Cmd {
	source, ctx, limit := model.source, model.ctx, model.logLimit
	return func() tea.Msg {
		entries, err := source.Logs(ctx, limit, subjectID)
		return logsMsg{SubjectID: subjectID, Entries: entries, Err: err}
	}
}

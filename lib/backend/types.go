// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"time"

	"github.com/clogs-dev/clogs/lib/timeline"
)

// Container is a container as reported by an agent.
type Container struct {
	// ID is absent for containers the agent has not yet inspected.
	ID      *string `json:"id,omitempty"`
	AgentID string  `json:"agent_id"`

	// Context is the numeric deployment context, when known.
	Context *int `json:"context,omitempty"`

	Name  string `json:"name"`
	Image string `json:"image"`

	// CreatedAt is in unix seconds.
	CreatedAt int64 `json:"created_at"`

	// Status is the container state: running, exited, paused and so on.
	Status string `json:"status"`
}

// Key returns the identifier used for the container's uptime query:
// its ID when known, otherwise its name.
func (container Container) Key() string {
	if container.ID != nil && *container.ID != "" {
		return *container.ID
	}
	return container.Name
}

// ServiceType is the orchestrator that owns a service.
type ServiceType string

const (
	ServiceCompose ServiceType = "compose"
	ServiceSwarm   ServiceType = "swarm"
)

// ServiceContainer is a container that belongs to a service.
type ServiceContainer struct {
	Container
	Type ServiceType `json:"type"`
}

// ServiceMap maps service names to their containers.
type ServiceMap map[string][]ServiceContainer

// UptimeRecord is the wire form of one state interval. Times are unix
// seconds; a null end_time marks the interval as still open.
type UptimeRecord struct {
	ContainerID string `json:"container_id"`
	StartTime   int64  `json:"start_time"`
	EndTime     *int64 `json:"end_time"`
	State       string `json:"state"`
}

// Interval converts the record. The result is not validated.
func (record UptimeRecord) Interval() timeline.Interval {
	interval := timeline.Interval{
		SubjectID: record.ContainerID,
		Start:     time.Unix(record.StartTime, 0),
		State:     record.State,
	}
	if record.EndTime != nil {
		interval.End = time.Unix(*record.EndTime, 0)
	}
	return interval
}

// RecordFromInterval is the inverse of [UptimeRecord.Interval].
func RecordFromInterval(interval timeline.Interval) UptimeRecord {
	record := UptimeRecord{
		ContainerID: interval.SubjectID,
		StartTime:   interval.Start.Unix(),
		State:       interval.State,
	}
	if !interval.Open() {
		end := interval.End.Unix()
		record.EndTime = &end
	}
	return record
}

// Intervals converts a slice of records, preserving order.
func Intervals(records []UptimeRecord) []timeline.Interval {
	intervals := make([]timeline.Interval, len(records))
	for index, record := range records {
		intervals[index] = record.Interval()
	}
	return intervals
}

// LogEntry is one line of container output captured by an agent.
type LogEntry struct {
	ID          *string `json:"id,omitempty"`
	ContainerID string  `json:"container_id"`

	// Timestamp is in unix nanoseconds.
	Timestamp int64 `json:"timestamp"`

	Level   string `json:"level"`
	Message string `json:"message"`
}

// Time returns Timestamp as a time.
func (entry LogEntry) Time() time.Time {
	return time.Unix(0, entry.Timestamp)
}

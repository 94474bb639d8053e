// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package mockbackend

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/clock"
	"github.com/clogs-dev/clogs/lib/timeline"
)

// HistoryBeforeOrigin is how much history exists at the origin.
const HistoryBeforeOrigin = 2 * time.Hour

// logEvery is the spacing of synthesized log lines per container.
const logEvery = 30 * time.Second

// SimulatorConfig configures a Simulator.
type SimulatorConfig struct {
	// Containers is the number of simulated containers. Default: 8.
	Containers int

	// Seed selects the schedules. The same seed always yields the same
	// containers and histories.
	Seed int64

	// Origin anchors every schedule. Defaults to the clock's current
	// time, truncated to the second.
	Origin time.Time

	// Clock provides "now". Defaults to clock.Real().
	Clock clock.Clock
}

type segment struct {
	state    string
	duration time.Duration
}

type simContainer struct {
	container backend.Container
	service   string
	kind      backend.ServiceType
	schedule  []segment
	agentID   string
}

// Simulator produces container inventories and state histories.
// It holds no mutable state after construction and is safe for
// concurrent use.
type Simulator struct {
	clock      clock.Clock
	origin     time.Time
	containers []simContainer
	byKey      map[string]int
}

var serviceLayout = []struct {
	name  string
	kind  backend.ServiceType
	image string
}{
	{"storefront", backend.ServiceCompose, "nginx:1.27"},
	{"payments", backend.ServiceCompose, "ghcr.io/acme/payments:3.2"},
	{"monitoring", backend.ServiceSwarm, "prom/prometheus:v2.53"},
	{"", "", "busybox:1.36"},
}

// Weighted so that containers spend most of their time running.
var stateWeights = []struct {
	state  string
	weight int
}{
	{"running", 12},
	{"restarting", 2},
	{"paused", 1},
	{"unhealthy", 1},
	{"exited", 2},
	{"created", 1},
	{"dead", 1},
}

// NewSimulator builds the container set for config.
func NewSimulator(config SimulatorConfig) (*Simulator, error) {
	if config.Containers < 0 {
		return nil, fmt.Errorf("mockbackend: container count must not be negative, got %d", config.Containers)
	}
	count := config.Containers
	if count == 0 {
		count = 8
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	origin := config.Origin
	if origin.IsZero() {
		origin = clk.Now()
	}
	origin = origin.Truncate(time.Second)

	random := rand.New(rand.NewSource(config.Seed))
	simulator := &Simulator{
		clock:  clk,
		origin: origin,
		byKey:  make(map[string]int, count),
	}
	agents := []string{randomHex(random, 32), randomHex(random, 32)}

	for index := range count {
		layout := serviceLayout[index%len(serviceLayout)]
		prefix := layout.name
		if prefix == "" {
			prefix = "orphan"
		}
		id := randomHex(random, 64)
		deployment := index % 3
		simulated := simContainer{
			service:  layout.name,
			kind:     layout.kind,
			schedule: randomSchedule(random),
			agentID:  agents[index%len(agents)],
		}
		simulated.container = backend.Container{
			ID:        &id,
			AgentID:   simulated.agentID,
			Context:   &deployment,
			Name:      fmt.Sprintf("%s-%d", prefix, index/len(serviceLayout)+1),
			Image:     layout.image,
			CreatedAt: origin.Add(-HistoryBeforeOrigin).Unix(),
		}
		simulator.byKey[id] = len(simulator.containers)
		simulator.containers = append(simulator.containers, simulated)
	}
	return simulator, nil
}

func randomHex(random *rand.Rand, length int) string {
	const digits = "0123456789abcdef"
	buffer := make([]byte, length)
	for index := range buffer {
		buffer[index] = digits[random.Intn(len(digits))]
	}
	return string(buffer)
}

func randomSchedule(random *rand.Rand) []segment {
	total := 0
	for _, entry := range stateWeights {
		total += entry.weight
	}
	length := 3 + random.Intn(4)
	schedule := make([]segment, 0, length)
	for range length {
		pick := random.Intn(total)
		state := stateWeights[0].state
		for _, entry := range stateWeights {
			if pick < entry.weight {
				state = entry.state
				break
			}
			pick -= entry.weight
		}
		minutes := 1 + random.Intn(15)
		if state == "running" {
			minutes *= 3
		}
		schedule = append(schedule, segment{state: state, duration: time.Duration(minutes) * time.Minute})
	}
	return schedule
}

// Origin returns the anchor time of the schedules.
func (simulator *Simulator) Origin() time.Time {
	return simulator.origin
}

func (simulator *Simulator) now() time.Time {
	return simulator.clock.Now().Truncate(time.Second)
}

// history walks a container's schedule from its creation to now. The
// last interval is open.
func (simulator *Simulator) history(simulated simContainer, now time.Time) []timeline.Interval {
	id := simulated.container.Key()
	cursor := simulator.origin.Add(-HistoryBeforeOrigin)
	var intervals []timeline.Interval
	for index := 0; cursor.Before(now) || len(intervals) == 0; index++ {
		step := simulated.schedule[index%len(simulated.schedule)]
		end := cursor.Add(step.duration)
		interval := timeline.Interval{SubjectID: id, Start: cursor, State: step.state}
		if end.Before(now) {
			interval.End = end
		}
		intervals = append(intervals, interval)
		if interval.Open() {
			break
		}
		cursor = end
	}
	return intervals
}

func (simulator *Simulator) withStatus(simulated simContainer, now time.Time) backend.Container {
	container := simulated.container
	history := simulator.history(simulated, now)
	container.Status = history[len(history)-1].State
	return container
}

// Intervals returns the history of the container whose ID is
// containerID, or of every container for timeline.FleetSubject. The
// fleet history is each container's history in turn, so intervals of
// different containers overlap.
func (simulator *Simulator) Intervals(containerID string) ([]timeline.Interval, bool) {
	now := simulator.now()
	if containerID == timeline.FleetSubject {
		var all []timeline.Interval
		for _, simulated := range simulator.containers {
			all = append(all, simulator.history(simulated, now)...)
		}
		return all, true
	}
	index, ok := simulator.byKey[containerID]
	if !ok {
		return nil, false
	}
	return simulator.history(simulator.containers[index], now), true
}

// Services returns the containers that belong to a service.
func (simulator *Simulator) Services() backend.ServiceMap {
	now := simulator.now()
	services := backend.ServiceMap{}
	for _, simulated := range simulator.containers {
		if simulated.service == "" {
			continue
		}
		services[simulated.service] = append(services[simulated.service], backend.ServiceContainer{
			Container: simulator.withStatus(simulated, now),
			Type:      simulated.kind,
		})
	}
	return services
}

// Orphans returns the containers that belong to no service.
func (simulator *Simulator) Orphans() []backend.Container {
	now := simulator.now()
	orphans := []backend.Container{}
	for _, simulated := range simulator.containers {
		if simulated.service == "" {
			orphans = append(orphans, simulator.withStatus(simulated, now))
		}
	}
	return orphans
}

// Uptime returns cumulative seconds in the running state, keyed by
// container name.
func (simulator *Simulator) Uptime() map[string]float64 {
	now := simulator.now()
	uptime := make(map[string]float64, len(simulator.containers))
	for _, simulated := range simulator.containers {
		var total time.Duration
		for _, interval := range simulator.history(simulated, now) {
			if interval.State == "running" {
				total += interval.EffectiveEnd(now).Sub(interval.Start)
			}
		}
		uptime[simulated.container.Name] = total.Seconds()
	}
	return uptime
}

var logMessages = []struct {
	level   string
	message string
}{
	{"info", "GET /healthz 200"},
	{"info", "handled request in 12ms"},
	{"debug", "cache hit ratio 0.93"},
	{"warn", "slow query took 1.2s"},
	{"info", "worker heartbeat"},
	{"error", "upstream connection refused"},
}

// Logs returns up to limit synthesized log entries, newest first, for
// containerID or for every container when containerID is empty.
// Entries are only produced while the container is running.
func (simulator *Simulator) Logs(limit int, containerID string) ([]backend.LogEntry, bool) {
	now := simulator.now()
	var selected []simContainer
	if containerID == "" {
		selected = simulator.containers
	} else {
		index, ok := simulator.byKey[containerID]
		if !ok {
			return nil, false
		}
		selected = []simContainer{simulator.containers[index]}
	}

	entries := []backend.LogEntry{}
	for _, simulated := range selected {
		id := simulated.container.Key()
		for _, interval := range simulator.history(simulated, now) {
			if interval.State != "running" {
				continue
			}
			end := interval.EffectiveEnd(now)
			for at := interval.Start.Truncate(logEvery); at.Before(end); at = at.Add(logEvery) {
				if at.Before(interval.Start) {
					continue
				}
				pick := logMessages[int(at.Unix()/int64(logEvery.Seconds()))%len(logMessages)]
				entries = append(entries, backend.LogEntry{
					ContainerID: id,
					Timestamp:   at.UnixNano(),
					Level:       pick.level,
					Message:     pick.message,
				})
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, true
}

// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"context"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/timeline"
)

// Source is everything the dashboard reads. [backend.Client] and
// [fixture.Provider] implement it.
type Source interface {
	timeline.Provider

	Health(ctx context.Context) error
	Services(ctx context.Context) (backend.ServiceMap, error)
	Orphans(ctx context.Context) ([]backend.Container, error)
	Uptime(ctx context.Context) (map[string]float64, error)
	Logs(ctx context.Context, limit int, containerID string) ([]backend.LogEntry, error)
}

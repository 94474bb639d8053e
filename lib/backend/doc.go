// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package backend is the HTTP client for the Clogs API.
//
// [Client] implements [timeline.Provider] over GET /web/uptime and
// also fetches the supporting data the dashboard shows next to each
// heartbeat: API health, containers grouped by service, orphan
// containers, and cumulative uptime per container.
//
// Non-2xx responses are returned as [*APIError]; [IsNotFound] and
// [IsTransient] classify them. Every request carries a fresh
// X-Request-ID so a dashboard poll can be matched against backend logs.
//
// The wire types ([Container], [ServiceContainer], [UptimeRecord]) are
// shared with the mock backend and the fixture provider.
package backend

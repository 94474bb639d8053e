// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package mockbackend

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clogs-dev/clogs/lib/backend"
)

// PathPrefix is where the API is mounted, matching the dashboard's
// default base URL.
const PathPrefix = "/api"

// NewRouter returns a router serving the Clogs API from simulator
// under PathPrefix.
func NewRouter(simulator *Simulator, logger *slog.Logger) *mux.Router {
	if logger == nil {
		logger = slog.Default()
	}
	handler := &apiHandler{simulator: simulator, logger: logger}

	router := mux.NewRouter()
	api := router.PathPrefix(PathPrefix).Subrouter()
	api.HandleFunc("/health", handler.health).Methods(http.MethodGet)
	api.HandleFunc("/web/uptime", handler.uptimeHistory).Methods(http.MethodGet)
	api.HandleFunc("/web/services", handler.services).Methods(http.MethodGet)
	api.HandleFunc("/web/orphans", handler.orphans).Methods(http.MethodGet)
	api.HandleFunc("/web/logs", handler.logs).Methods(http.MethodGet)
	api.HandleFunc("/processors/uptime", handler.cumulativeUptime).Methods(http.MethodGet)
	return router
}

type apiHandler struct {
	simulator *Simulator
	logger    *slog.Logger
}

func (handler *apiHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	if requestID := r.Header.Get(backend.RequestIDHeader); requestID != "" {
		w.Header().Set(backend.RequestIDHeader, requestID)
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		handler.logger.Warn("writing response failed", "path", r.URL.Path, "error", err)
	}
}

func (handler *apiHandler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	handler.writeJSON(w, r, status, map[string]string{"error": message})
}

func (handler *apiHandler) health(w http.ResponseWriter, r *http.Request) {
	handler.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (handler *apiHandler) uptimeHistory(w http.ResponseWriter, r *http.Request) {
	containerID := r.URL.Query().Get("container_id")
	intervals, ok := handler.simulator.Intervals(containerID)
	if !ok {
		handler.writeError(w, r, http.StatusNotFound, "unknown container "+containerID)
		return
	}
	records := make([]backend.UptimeRecord, len(intervals))
	for index, interval := range intervals {
		records[index] = backend.RecordFromInterval(interval)
	}
	handler.writeJSON(w, r, http.StatusOK, records)
}

func (handler *apiHandler) services(w http.ResponseWriter, r *http.Request) {
	handler.writeJSON(w, r, http.StatusOK, handler.simulator.Services())
}

func (handler *apiHandler) orphans(w http.ResponseWriter, r *http.Request) {
	handler.writeJSON(w, r, http.StatusOK, handler.simulator.Orphans())
}

func (handler *apiHandler) logs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 100
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			handler.writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	containerID := query.Get("container_id")
	entries, ok := handler.simulator.Logs(limit, containerID)
	if !ok {
		handler.writeError(w, r, http.StatusNotFound, "unknown container "+containerID)
		return
	}
	handler.writeJSON(w, r, http.StatusOK, entries)
}

func (handler *apiHandler) cumulativeUptime(w http.ResponseWriter, r *http.Request) {
	handler.writeJSON(w, r, http.StatusOK, handler.simulator.Uptime())
}

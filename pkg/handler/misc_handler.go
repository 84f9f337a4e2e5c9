// Handler for miscellaneous endpoints such as health check

package handler

import (
	"context"
	"net/http"
	"time"
)

type HealthResponse struct {
	Health    string    `json:"health"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (dbctx *DBContext) HealthCheck(w http.ResponseWriter, r *http.Request) {

	response := HealthResponse{
		Health:    "ok",
		Database:  "unknown",
		Timestamp: time.Now(),
	}
	status := http.StatusOK

	if p, ok := dbctx.Repo.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			response.Health = "degraded"
			response.Database = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			response.Database = "ok"
		}
	}

	writeJSON(w, status, response)
}

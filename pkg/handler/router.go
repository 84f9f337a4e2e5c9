package handler

import (
	"net/http"

	"github.com/yumyai/phamfasta/logger"
	"github.com/yumyai/phamfasta/pkg/middle"
)

func NewRouter(dbctx *DBContext) http.Handler {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// API routes
	mux.HandleFunc("GET /api/v1/health", dbctx.HealthCheck)
	mux.HandleFunc("GET /api/v1/clusters", dbctx.ClustersHandler)
	mux.HandleFunc("POST /api/v1/export", dbctx.ExportHandler)

	log := logger.L()
	return middle.Chain(mux,
		middle.RequestIDMiddleware(log),
		middle.LoggingMiddleware(log),
	)
}

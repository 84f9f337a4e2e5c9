package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yumyai/phamfasta/logger"
	"github.com/yumyai/phamfasta/pkg/extract"
	"github.com/yumyai/phamfasta/pkg/handler/request"
	"github.com/yumyai/phamfasta/pkg/model"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Encode response failed", zap.Error(err))
	}
}

// errorStatus maps the error taxonomy to HTTP: bad selections are the
// client's to fix, anything else aborted the run.
func errorStatus(err error) int {
	var selErr *model.SelectionError
	if errors.As(err, &selErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// POST /api/v1/export
func (dbctx *DBContext) ExportHandler(w http.ResponseWriter, r *http.Request) {

	var req request.ExportRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, request.ExportResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	criteria, org, err := req.Criteria()
	if err != nil {
		writeJSON(w, errorStatus(err), request.ExportResponse{Error: err.Error()})
		return
	}

	opts := dbctx.Export
	opts.RunID = req.RunID

	dbctx.exportMu.Lock()
	defer dbctx.exportMu.Unlock()

	runner := &extract.Runner{Repo: dbctx.Repo, Opts: opts}
	report, err := runner.Run(r.Context(), criteria, org)
	if err != nil {
		logger.Error("Export failed", zap.String("request", req.String()), zap.Error(err))
		writeJSON(w, errorStatus(err), request.ExportResponse{Report: report, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, request.ExportResponse{Success: true, Report: report})
}

// GET /api/v1/clusters?token=F
func (dbctx *DBContext) ClustersHandler(w http.ResponseWriter, r *http.Request) {

	token := r.URL.Query().Get("token")

	expander := &model.ClusterExpander{Source: dbctx.Repo}
	exp, err := expander.Expand(r.Context(), []string{token})
	if err != nil {
		writeJSON(w, errorStatus(err), request.ExportResponse{Error: err.Error()})
		return
	}

	clusters := exp.Clusters
	if exp.Singleton {
		clusters = append(clusters, model.SingletonCluster)
	}
	if clusters == nil {
		clusters = make([]string, 0) // so the encoder writes [] instead of null
	}
	writeJSON(w, http.StatusOK, request.ClustersResponse{Token: token, Clusters: clusters})
}

// Package estimation exposes the estimation report and recent samples
// over HTTP for dashboards and ad-hoc inspection.
package estimation

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/quentinv/battrace/core/model"
	"github.com/quentinv/battrace/infra/samplelog"
)

// Reporter produces a fresh estimation report on demand.
type Reporter interface {
	Report(ctx context.Context) (model.EstimationReport, error)
}

// NewReportHandler returns an HTTP handler serving GET /api/estimate.
func NewReportHandler(rep Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		report, err := rep.Report(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// samplesResponse wraps a snapshot for JSON delivery.
type samplesResponse struct {
	Samples []model.Sample `json:"samples"`
	Dropped int            `json:"dropped"`
}

// NewSamplesHandler returns an HTTP handler serving GET /api/samples.
// An optional since query parameter (RFC 3339) narrows the window.
func NewSamplesHandler(store samplelog.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var q samplelog.Query
		if raw := r.URL.Query().Get("since"); raw != "" {
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "invalid since parameter", http.StatusBadRequest)
				return
			}
			q.Since = ts
		}
		snap, err := store.Snapshot(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(samplesResponse{Samples: snap.Samples, Dropped: snap.Dropped}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

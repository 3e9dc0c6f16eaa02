package estimation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/quentinv/battrace/core/model"
	"github.com/quentinv/battrace/infra/samplelog"
)

type staticReporter struct {
	rep model.EstimationReport
	err error
}

func (s staticReporter) Report(context.Context) (model.EstimationReport, error) {
	return s.rep, s.err
}

func TestReportHandler_Basic(t *testing.T) {
	h := NewReportHandler(staticReporter{rep: model.EstimationReport{ID: "r1", CurrentPercentage: 42}})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/estimate", nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out model.EstimationReport
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != "r1" || out.CurrentPercentage != 42 {
		t.Fatalf("unexpected output %#v", out)
	}
}

func TestReportHandler_MethodNotAllowed(t *testing.T) {
	h := NewReportHandler(staticReporter{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/estimate", nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestSamplesHandler_SinceFilter(t *testing.T) {
	store, err := samplelog.NewCSVStore(filepath.Join(t.TempDir(), "log.csv"))
	if err != nil {
		t.Fatal(err)
	}
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	for i := 0; i < 4; i++ {
		if err := store.Append(context.Background(), samplelog.Record{
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Percentage: 90,
		}); err != nil {
			t.Fatal(err)
		}
	}

	h := NewSamplesHandler(store)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/samples?since="+base.Add(2*time.Minute).Format(time.RFC3339), nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out samplesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(out.Samples))
	}
}

func TestSamplesHandler_BadSince(t *testing.T) {
	store, err := samplelog.NewCSVStore(filepath.Join(t.TempDir(), "log.csv"))
	if err != nil {
		t.Fatal(err)
	}
	h := NewSamplesHandler(store)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/samples?since=yesterday", nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/airstack/space-optimizer/internal/api"
	"github.com/airstack/space-optimizer/internal/planner"
	"github.com/airstack/space-optimizer/internal/storage"
)

var integrationBay = planner.BayConstraints{
	MaxWeight: 1200,
	MaxLength: 3.8,
	MaxWidth:  2.2,
	MaxHeight: 1.3,
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	store := storage.NewMemoryStorage()
	plan := planner.New()
	handler := api.NewHandler(plan, store, integrationBay)
	logger := zaptest.NewLogger(t)
	return api.NewRouter(handler, logger)
}

func performRequest(t *testing.T, handler http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIntegrationFlow(t *testing.T) {
	handler := newRouter(t)
	jsonHeaders := map[string]string{"Content-Type": "application/json"}

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/latest-plan", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any optimization, got %d", rec.Code)
	}

	addPayload, _ := json.Marshal(map[string]any{
		"item_type": "Water Case (24 bottles)",
		"quantity":  4,
		"priority":  8,
	})
	rec = performRequest(t, handler, http.MethodPost, "/api/requests", addPayload, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from add requests, got %d: %s", rec.Code, rec.Body.String())
	}

	addPayload, _ = json.Marshal(map[string]any{
		"item_type": "First-Aid Kit",
		"quantity":  2,
		"priority":  10,
	})
	rec = performRequest(t, handler, http.MethodPost, "/api/requests", addPayload, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from add requests, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodPost, "/api/optimize", []byte("{}"), jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from optimize, got %d: %s", rec.Code, rec.Body.String())
	}

	var plan struct {
		Packed []planner.PlacedItem `json:"packed"`
		Stats  struct {
			ItemsPacked int     `json:"items_packed"`
			TotalWeight float64 `json:"total_weight"`
		} `json:"stats"`
	}
	planBody := rec.Body.Bytes()
	if err := json.Unmarshal(planBody, &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.Stats.ItemsPacked != 6 {
		t.Fatalf("expected all 6 items packed, got %d", plan.Stats.ItemsPacked)
	}
	// 4 water cases at 18 kg plus 2 first-aid kits at 4 kg.
	if plan.Stats.TotalWeight != 80 {
		t.Fatalf("expected total weight 80, got %v", plan.Stats.TotalWeight)
	}
	// Priority 10 first-aid kits must be placed before the water cases.
	if plan.Packed[0].ItemType != "First-Aid Kit" {
		t.Fatalf("expected highest priority item first, got %s", plan.Packed[0].ItemType)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/latest-plan", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from latest plan, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodPost, "/api/export-pdf", planBody, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from export-pdf, got %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF payload from export")
	}

	rec = performRequest(t, handler, http.MethodPost, "/api/export-openscad", planBody, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from export-openscad, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "module cargo_bay") {
		t.Fatalf("expected OpenSCAD payload from export")
	}

	rec = performRequest(t, handler, http.MethodPost, "/api/export-manifest", planBody, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from export-manifest, got %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Fatalf("expected XLSX payload from export")
	}

	rec = performRequest(t, handler, http.MethodPost, "/api/requests/clear", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from clear, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/requests", nil, nil)
	var remaining []planner.CargoItem
	if err := json.Unmarshal(rec.Body.Bytes(), &remaining); err != nil {
		t.Fatalf("decode requests: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no requests after clear, got %d", len(remaining))
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/airstack/space-optimizer/internal/export"
	"github.com/airstack/space-optimizer/internal/planner"
	"github.com/airstack/space-optimizer/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires planner and storage dependencies into HTTP handlers.
type Handler struct {
	planner    planner.Planner
	storage    storage.Storage
	defaultBay planner.BayConstraints

	clock func() time.Time

	mu              sync.RWMutex
	latestPlan      *optimizeResponse
	planGeneratedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies. The default
// bay is used whenever an optimize or export request omits a constraint.
func NewHandler(plan planner.Planner, store storage.Storage, defaultBay planner.BayConstraints, opts ...HandlerOption) *Handler {
	h := &Handler{
		planner:    plan,
		storage:    store,
		defaultBay: defaultBay,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	_ = r
	requests, err := h.storage.ListRequests()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if requests == nil {
		requests = []planner.CargoItem{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *Handler) handleAddRequests(w http.ResponseWriter, r *http.Request) {
	var req addRequestsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	created, err := h.storage.AddRequests(req.ItemType, req.Quantity, req.Priority)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnknownItemType):
			writeError(w, http.StatusBadRequest, "Invalid item type", err.Error())
		case errors.Is(err, storage.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, "Invalid quantity", err.Error())
		case errors.Is(err, storage.ErrInvalidPriority):
			writeError(w, http.StatusBadRequest, "Invalid priority", err.Error())
		default:
			writeInternalError(w, err)
		}
		return
	}

	resp := addRequestsResponse{
		Success: true,
		Message: fmt.Sprintf("Added %d %s(s)", req.Quantity, req.ItemType),
		Items:   created,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleClearRequests(w http.ResponseWriter, r *http.Request) {
	_ = r
	if err := h.storage.ClearRequests(); err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clearRequestsResponse{
		Success: true,
		Message: "All requests cleared",
	})
}

func (h *Handler) handleItemPresets(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, storage.ItemPresets())
}

func (h *Handler) handleAircraftPresets(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, storage.AircraftPresets())
}

func (h *Handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
			return
		}
	}

	bay := h.bayFromOverrides(req.MaxWeight, req.MaxLength, req.MaxWidth, req.MaxHeight)

	requests, err := h.storage.ListRequests()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	start := time.Now()
	result, optErr := h.planner.Optimize(requests, bay)
	elapsed := time.Since(start)

	if optErr != nil {
		if errors.Is(optErr, planner.ErrInvalidConstraints) {
			writeError(w, http.StatusBadRequest, "Invalid bay constraints", optErr.Error())
			return
		}
		writeInternalError(w, optErr)
		return
	}

	resp := optimizeResponse{
		PackingResult:      result,
		GeneratedAt:        h.clock(),
		OptimizationTimeMs: elapsed.Milliseconds(),
	}
	h.cacheLatestPlan(resp)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLatestPlan(w http.ResponseWriter, r *http.Request) {
	_ = r
	h.mu.RLock()
	plan := h.latestPlan
	h.mu.RUnlock()

	if plan == nil {
		writeError(w, http.StatusNotFound, "No load plan available yet", "run an optimization first")
		return
	}
	writeJSON(w, http.StatusOK, *plan)
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	result, ok := h.decodeExportRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteLoadingPlanPDF(&buf, result); err != nil {
		writeInternalError(w, err)
		return
	}
	writeAttachment(w, "application/pdf", "loading_plan.pdf", buf.Bytes())
}

func (h *Handler) handleExportOpenSCAD(w http.ResponseWriter, r *http.Request) {
	result, ok := h.decodeExportRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteOpenSCAD(&buf, result); err != nil {
		writeInternalError(w, err)
		return
	}
	writeAttachment(w, "text/plain", "cargo_manifest.scad", buf.Bytes())
}

func (h *Handler) handleExportManifest(w http.ResponseWriter, r *http.Request) {
	result, ok := h.decodeExportRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteManifest(&buf, result); err != nil {
		writeInternalError(w, err)
		return
	}
	writeAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "load_manifest.xlsx", buf.Bytes())
}

func (h *Handler) decodeExportRequest(w http.ResponseWriter, r *http.Request) (planner.PackingResult, bool) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return planner.PackingResult{}, false
	}

	result := planner.PackingResult{
		Packed:   req.Packed,
		Unpacked: req.Unpacked,
		Stats:    req.Stats,
		Bay:      h.bayFromOverrides(req.MaxWeight, req.MaxLength, req.MaxWidth, req.MaxHeight),
	}
	return result, true
}

// bayFromOverrides starts from the configured default bay and applies any
// positive overrides from the request body.
func (h *Handler) bayFromOverrides(maxWeight, maxLength, maxWidth, maxHeight *float64) planner.BayConstraints {
	bay := h.defaultBay
	if maxWeight != nil && *maxWeight > 0 {
		bay.MaxWeight = *maxWeight
	}
	if maxLength != nil && *maxLength > 0 {
		bay.MaxLength = *maxLength
	}
	if maxWidth != nil && *maxWidth > 0 {
		bay.MaxWidth = *maxWidth
	}
	if maxHeight != nil && *maxHeight > 0 {
		bay.MaxHeight = *maxHeight
	}
	return bay
}

func (h *Handler) cacheLatestPlan(resp optimizeResponse) {
	h.mu.Lock()
	h.latestPlan = &resp
	h.planGeneratedAt = resp.GeneratedAt
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type addRequestsRequest struct {
	ItemType string `json:"item_type"`
	Quantity int    `json:"quantity"`
	Priority int    `json:"priority"`
}

type addRequestsResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Items   []planner.CargoItem `json:"items"`
}

type clearRequestsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type optimizeRequest struct {
	MaxWeight *float64 `json:"max_weight"`
	MaxLength *float64 `json:"max_length"`
	MaxWidth  *float64 `json:"max_width"`
	MaxHeight *float64 `json:"max_height"`
}

type optimizeResponse struct {
	planner.PackingResult
	GeneratedAt        time.Time `json:"generated_at"`
	OptimizationTimeMs int64     `json:"optimization_time_ms"`
}

type exportRequest struct {
	Packed    []planner.PlacedItem `json:"packed"`
	Unpacked  []planner.CargoItem  `json:"unpacked"`
	Stats     planner.Stats        `json:"stats"`
	MaxWeight *float64             `json:"max_weight"`
	MaxLength *float64             `json:"max_length"`
	MaxWidth  *float64             `json:"max_width"`
	MaxHeight *float64             `json:"max_height"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

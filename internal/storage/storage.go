package storage

import (
	"errors"
	"sync"

	"github.com/airstack/space-optimizer/internal/planner"
)

const (
	minPriority = 1
	maxPriority = 10
)

var (
	// ErrUnknownItemType indicates the requested item type has no preset.
	ErrUnknownItemType = errors.New("unknown item type")
	// ErrInvalidQuantity indicates a non-positive request quantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrInvalidPriority indicates a priority outside the 1-10 range.
	ErrInvalidPriority = errors.New("priority must be between 1 and 10")
)

// ItemSpec holds the fixed weight (kg) and dimensions (m) of a cargo item type.
type ItemSpec struct {
	Weight float64 `json:"weight"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var itemPresets = map[string]ItemSpec{
	"Water Case (24 bottles)":                {Weight: 18, Length: 0.45, Width: 0.30, Height: 0.25},
	"Dozen NP Food Cans":                     {Weight: 10, Length: 0.40, Width: 0.30, Height: 0.22},
	"First-Aid Kit":                          {Weight: 4, Length: 0.35, Width: 0.25, Height: 0.20},
	"Toilet Paper (12-Roll Pack)":            {Weight: 3, Length: 0.40, Width: 0.30, Height: 0.25},
	"Sanitary Pads (20 Pack)":                {Weight: 1, Length: 0.30, Width: 0.20, Height: 0.12},
	"Clothing Pack (Jacket + Undergarments)": {Weight: 5, Length: 0.45, Width: 0.35, Height: 0.25},
	"Blanket (Rolled)":                       {Weight: 2, Length: 0.50, Width: 0.25, Height: 0.25},
	"Pet Supplies Pack":                      {Weight: 6, Length: 0.50, Width: 0.30, Height: 0.30},
	"Baby Formula (Case)":                    {Weight: 8, Length: 0.40, Width: 0.30, Height: 0.25},
}

var aircraftPresets = map[string]planner.BayConstraints{
	"UH-60 Black Hawk": {MaxWeight: 1200, MaxLength: 3.8, MaxWidth: 2.2, MaxHeight: 1.3},
}

// ItemPresets returns a copy of the item type presets.
func ItemPresets() map[string]ItemSpec {
	out := make(map[string]ItemSpec, len(itemPresets))
	for name, spec := range itemPresets {
		out[name] = spec
	}
	return out
}

// AircraftPresets returns a copy of the aircraft bay presets.
func AircraftPresets() map[string]planner.BayConstraints {
	out := make(map[string]planner.BayConstraints, len(aircraftPresets))
	for name, bay := range aircraftPresets {
		out[name] = bay
	}
	return out
}

// Storage provides access to the pending cargo requests.
type Storage interface {
	AddRequests(itemType string, quantity, priority int) ([]planner.CargoItem, error)
	ListRequests() ([]planner.CargoItem, error)
	ClearRequests() error
}

// MemoryStorage keeps cargo requests in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu       sync.RWMutex
	requests []planner.CargoItem
	nextID   int
}

// NewMemoryStorage initialises an empty request store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{nextID: 1}
}

// AddRequests expands an item type preset into quantity individual cargo
// requests with sequential identifiers and returns the created items.
func (s *MemoryStorage) AddRequests(itemType string, quantity, priority int) ([]planner.CargoItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if priority < minPriority || priority > maxPriority {
		return nil, ErrInvalidPriority
	}
	spec, ok := itemPresets[itemType]
	if !ok {
		return nil, ErrUnknownItemType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]planner.CargoItem, 0, quantity)
	for i := 0; i < quantity; i++ {
		item := planner.CargoItem{
			ID:       s.nextID,
			ItemType: itemType,
			Priority: priority,
			Weight:   spec.Weight,
			Length:   spec.Length,
			Width:    spec.Width,
			Height:   spec.Height,
		}
		s.nextID++
		s.requests = append(s.requests, item)
		created = append(created, item)
	}

	return created, nil
}

// ListRequests returns a defensive copy of the pending requests in submission order.
func (s *MemoryStorage) ListRequests() ([]planner.CargoItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]planner.CargoItem, len(s.requests))
	copy(out, s.requests)
	return out, nil
}

// ClearRequests removes all pending requests and resets the identifier counter.
func (s *MemoryStorage) ClearRequests() error {
	s.mu.Lock()
	s.requests = nil
	s.nextID = 1
	s.mu.Unlock()
	return nil
}

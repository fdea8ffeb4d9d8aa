package planner

import (
	"sort"
)

// defaultLatticeStep is the spatial increment, in meters, used to discretize
// the placement search on all three axes.
const defaultLatticeStep = 0.2

type latticePlanner struct {
	step float64
}

// Option configures the planner.
type Option func(*latticePlanner)

// WithLatticeStep overrides the placement search resolution in meters.
// Non-positive values fall back to the default.
func WithLatticeStep(step float64) Option {
	return func(p *latticePlanner) {
		if step > 0 {
			p.step = step
		}
	}
}

// New creates a Planner based on quadrant-balanced lattice first-fit placement.
func New(opts ...Option) Planner {
	p := &latticePlanner{step: defaultLatticeStep}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Optimize packs the items into the bay and returns the resulting load plan.
// Items are considered in priority order (then weight, both descending; ties
// keep input order) and each is either committed at a collision-free position
// or reported in Unpacked. Rejecting an item never aborts the batch. The
// computation is deterministic for a given input sequence, constraints, and
// lattice step.
func (p *latticePlanner) Optimize(items []CargoItem, bay BayConstraints) (PackingResult, error) {
	if err := validateBay(bay); err != nil {
		return PackingResult{}, err
	}

	sorted := make([]CargoItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].Weight > sorted[j].Weight
	})

	packed := make([]PlacedItem, 0, len(sorted))
	unpacked := make([]CargoItem, 0)
	maxVolume := bay.MaxVolume()

	var balance balanceAccumulator
	var currentWeight, currentVolume float64

	for _, item := range sorted {
		volume := item.Volume()

		// Coarse capacity pre-check; no rotation is attempted.
		if currentWeight+item.Weight > bay.MaxWeight ||
			currentVolume+volume > maxVolume ||
			item.Length > bay.MaxLength ||
			item.Width > bay.MaxWidth ||
			item.Height > bay.MaxHeight {
			unpacked = append(unpacked, item)
			continue
		}

		pos, ok := findPosition(item, bay, packed, &balance, p.step)
		if !ok {
			// Lattice exhausted despite passing the capacity pre-check.
			unpacked = append(unpacked, item)
			continue
		}

		packed = append(packed, PlacedItem{CargoItem: item, Position: pos})
		currentWeight += item.Weight
		currentVolume += volume
		balance.add(quadrantFor(pos, bay), item.Weight)
	}

	return PackingResult{
		Packed:   packed,
		Unpacked: unpacked,
		Stats:    buildStats(packed, unpacked, bay, currentWeight, currentVolume, &balance),
		Bay:      bay,
	}, nil
}

func validateBay(bay BayConstraints) error {
	if bay.MaxWeight <= 0 || bay.MaxLength <= 0 || bay.MaxWidth <= 0 || bay.MaxHeight <= 0 {
		return ErrInvalidConstraints
	}
	return nil
}

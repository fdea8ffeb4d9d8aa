package planner

import (
	"math"
	"sort"
)

// Quadrant indexes one of the four horizontal bay regions formed by splitting
// length and width at their midpoints.
type Quadrant int

const (
	FrontLeft Quadrant = iota
	FrontRight
	RearLeft
	RearRight
	numQuadrants
)

// quadrantFor maps an item's center position to a quadrant. Centers on the
// midlines count as rear / right.
func quadrantFor(pos Position, bay BayConstraints) Quadrant {
	front := pos.X < bay.MaxLength/2
	left := pos.Y < bay.MaxWidth/2
	switch {
	case front && left:
		return FrontLeft
	case front:
		return FrontRight
	case left:
		return RearLeft
	default:
		return RearRight
	}
}

// balanceAccumulator tracks the committed weight per quadrant. It is updated
// incrementally on each commit and drives the placement search order.
type balanceAccumulator struct {
	weights [numQuadrants]float64
}

func (b *balanceAccumulator) add(q Quadrant, weight float64) {
	b.weights[q] += weight
}

func (b *balanceAccumulator) total() float64 {
	var sum float64
	for _, w := range b.weights {
		sum += w
	}
	return sum
}

func (b *balanceAccumulator) leftWeight() float64 {
	return b.weights[FrontLeft] + b.weights[RearLeft]
}

func (b *balanceAccumulator) rightWeight() float64 {
	return b.weights[FrontRight] + b.weights[RearRight]
}

// searchOrder returns the quadrants in placement preference order, lightest
// first. Before anything is committed a fixed order is used for the very first
// item; ties keep the front-left, front-right, rear-left, rear-right order.
func (b *balanceAccumulator) searchOrder() [numQuadrants]Quadrant {
	if b.total() == 0 {
		return [numQuadrants]Quadrant{RearRight, FrontRight, RearLeft, FrontLeft}
	}

	order := [numQuadrants]Quadrant{FrontLeft, FrontRight, RearLeft, RearRight}
	sort.SliceStable(order[:], func(i, j int) bool {
		return b.weights[order[i]] < b.weights[order[j]]
	})
	return order
}

// centerOfGravity computes the weight-weighted mean center position of the
// packed items. totalWeight must be positive.
func centerOfGravity(packed []PlacedItem, totalWeight float64) CenterOfGravity {
	var cog CenterOfGravity
	for _, p := range packed {
		cog.X += p.Position.X * p.Weight
		cog.Y += p.Position.Y * p.Weight
		cog.Z += p.Position.Z * p.Weight
	}
	cog.X /= totalWeight
	cog.Y /= totalWeight
	cog.Z /= totalWeight
	return cog
}

// balanceScore measures how centered the CoG is on the length and width axes.
// The formula is deliberately unclamped: extreme off-center placements can
// produce values outside [0,100], and downstream consumers rely on the raw
// value.
func balanceScore(cog CenterOfGravity, bay BayConstraints) float64 {
	halfL := bay.MaxLength / 2
	halfW := bay.MaxWidth / 2
	scoreX := 100 - math.Abs(cog.X-halfL)/halfL*100
	scoreY := 100 - math.Abs(cog.Y-halfW)/halfW*100
	return (scoreX + scoreY) / 2
}

// buildStats assembles the final statistics over the committed set. An empty
// bay reports CoG (0,0,0) and a perfect balance score.
func buildStats(packed []PlacedItem, unpacked []CargoItem, bay BayConstraints, totalWeight, totalVolume float64, balance *balanceAccumulator) Stats {
	stats := Stats{
		TotalWeight:       totalWeight,
		MaxWeight:         bay.MaxWeight,
		WeightUtilization: round2(totalWeight / bay.MaxWeight * 100),
		TotalVolume:       totalVolume,
		MaxVolume:         bay.MaxVolume(),
		VolumeUtilization: round2(totalVolume / bay.MaxVolume() * 100),
		ItemsPacked:       len(packed),
		ItemsUnpacked:     len(unpacked),
		BalanceScore:      100,
	}

	if len(packed) == 0 || totalWeight <= 0 {
		return stats
	}

	cog := centerOfGravity(packed, totalWeight)
	stats.CenterOfGravity = CenterOfGravity{X: round2(cog.X), Y: round2(cog.Y), Z: round2(cog.Z)}
	stats.BalanceScore = round1(balanceScore(cog, bay))
	stats.LeftWeight = round1(balance.leftWeight())
	stats.RightWeight = round1(balance.rightWeight())
	stats.QuadrantWeights = QuadrantWeights{
		FrontLeft:  round1(balance.weights[FrontLeft]),
		FrontRight: round1(balance.weights[FrontRight]),
		RearLeft:   round1(balance.weights[RearLeft]),
		RearRight:  round1(balance.weights[RearRight]),
	}
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

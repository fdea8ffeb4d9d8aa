package planner

import (
	"math"
	"testing"
)

func TestQuadrantFor(t *testing.T) {
	t.Parallel()

	bay := BayConstraints{MaxWeight: 100, MaxLength: 4, MaxWidth: 4, MaxHeight: 2}

	tests := []struct {
		name string
		pos  Position
		want Quadrant
	}{
		{name: "FrontLeft", pos: Position{X: 1, Y: 1}, want: FrontLeft},
		{name: "FrontRight", pos: Position{X: 1, Y: 3}, want: FrontRight},
		{name: "RearLeft", pos: Position{X: 3, Y: 1}, want: RearLeft},
		{name: "RearRight", pos: Position{X: 3, Y: 3}, want: RearRight},
		{name: "LengthMidlineCountsAsRear", pos: Position{X: 2, Y: 1}, want: RearLeft},
		{name: "WidthMidlineCountsAsRight", pos: Position{X: 1, Y: 2}, want: FrontRight},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := quadrantFor(tc.pos, bay); got != tc.want {
				t.Fatalf("quadrantFor(%+v) = %v, want %v", tc.pos, got, tc.want)
			}
		})
	}
}

func TestSearchOrder(t *testing.T) {
	t.Parallel()

	t.Run("EmptyBayUsesDefaultOrder", func(t *testing.T) {
		var b balanceAccumulator
		want := [numQuadrants]Quadrant{RearRight, FrontRight, RearLeft, FrontLeft}
		if got := b.searchOrder(); got != want {
			t.Fatalf("expected default order %v, got %v", want, got)
		}
	})

	t.Run("LightestQuadrantFirst", func(t *testing.T) {
		var b balanceAccumulator
		b.add(FrontLeft, 5)
		b.add(FrontRight, 1)
		b.add(RearRight, 3)

		want := [numQuadrants]Quadrant{RearLeft, FrontRight, RearRight, FrontLeft}
		if got := b.searchOrder(); got != want {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	})

	t.Run("TiesKeepFixedOrder", func(t *testing.T) {
		var b balanceAccumulator
		for q := FrontLeft; q < numQuadrants; q++ {
			b.add(q, 2)
		}
		want := [numQuadrants]Quadrant{FrontLeft, FrontRight, RearLeft, RearRight}
		if got := b.searchOrder(); got != want {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	})
}

func TestLeftRightAggregates(t *testing.T) {
	t.Parallel()

	var b balanceAccumulator
	b.add(FrontLeft, 10)
	b.add(RearLeft, 4)
	b.add(FrontRight, 3)
	b.add(RearRight, 1)

	if got := b.leftWeight(); got != 14 {
		t.Fatalf("expected left weight 14, got %v", got)
	}
	if got := b.rightWeight(); got != 4 {
		t.Fatalf("expected right weight 4, got %v", got)
	}
}

func TestCenterOfGravity(t *testing.T) {
	t.Parallel()

	packed := []PlacedItem{
		{
			CargoItem: CargoItem{ID: 1, Weight: 3},
			Position:  Position{X: 1, Y: 2, Z: 0.5},
		},
		{
			CargoItem: CargoItem{ID: 2, Weight: 1},
			Position:  Position{X: 5, Y: 2, Z: 1.5},
		},
	}

	cog := centerOfGravity(packed, 4)
	if cog.X != 2 || cog.Y != 2 || cog.Z != 0.75 {
		t.Fatalf("unexpected CoG: %+v", cog)
	}
}

func TestBalanceScore(t *testing.T) {
	t.Parallel()

	bay := BayConstraints{MaxWeight: 100, MaxLength: 4, MaxWidth: 2, MaxHeight: 2}

	tests := []struct {
		name string
		cog  CenterOfGravity
		want float64
	}{
		{name: "PerfectlyCentered", cog: CenterOfGravity{X: 2, Y: 1}, want: 100},
		{name: "AtOrigin", cog: CenterOfGravity{X: 0, Y: 0}, want: 0},
		{name: "HalfwayOffOnLength", cog: CenterOfGravity{X: 3, Y: 1}, want: 75},
		// The formula is unclamped: a CoG outside the bay goes negative.
		{name: "BeyondBayGoesNegative", cog: CenterOfGravity{X: 10, Y: 1}, want: -100},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := balanceScore(tc.cog, bay)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("balanceScore(%+v) = %v, want %v", tc.cog, got, tc.want)
			}
		})
	}
}

func TestBuildStatsEmpty(t *testing.T) {
	t.Parallel()

	bay := BayConstraints{MaxWeight: 100, MaxLength: 4, MaxWidth: 2, MaxHeight: 2}
	var balance balanceAccumulator

	stats := buildStats(nil, nil, bay, 0, 0, &balance)

	if stats.BalanceScore != 100 {
		t.Fatalf("expected balance score 100 for empty bay, got %v", stats.BalanceScore)
	}
	if stats.CenterOfGravity != (CenterOfGravity{}) {
		t.Fatalf("expected zero CoG, got %+v", stats.CenterOfGravity)
	}
	if stats.WeightUtilization != 0 || stats.VolumeUtilization != 0 {
		t.Fatalf("expected zero utilization, got %+v", stats)
	}
	if stats.ItemsPacked != 0 || stats.ItemsUnpacked != 0 {
		t.Fatalf("expected zero counts, got %+v", stats)
	}
}

func TestBuildStatsRounding(t *testing.T) {
	t.Parallel()

	bay := BayConstraints{MaxWeight: 3, MaxLength: 4, MaxWidth: 2, MaxHeight: 2}
	packed := []PlacedItem{
		{
			CargoItem: CargoItem{ID: 1, Weight: 1, Length: 1, Width: 1, Height: 1},
			Position:  Position{X: 1, Y: 0.5, Z: 0.5},
		},
	}
	var balance balanceAccumulator
	balance.add(FrontLeft, 1)

	stats := buildStats(packed, nil, bay, 1, 1, &balance)

	if stats.WeightUtilization != 33.33 {
		t.Fatalf("expected weight utilization 33.33, got %v", stats.WeightUtilization)
	}
	if stats.VolumeUtilization != 6.25 {
		t.Fatalf("expected volume utilization 6.25, got %v", stats.VolumeUtilization)
	}
	// CoG (1, 0.5, 0.5): half off on both axes => (50 + 50) / 2.
	if stats.BalanceScore != 50 {
		t.Fatalf("expected balance score 50, got %v", stats.BalanceScore)
	}
	if stats.LeftWeight != 1 || stats.RightWeight != 0 {
		t.Fatalf("unexpected left/right weights: %+v", stats)
	}
	if stats.QuadrantWeights.FrontLeft != 1 {
		t.Fatalf("unexpected quadrant weights: %+v", stats.QuadrantWeights)
	}
}

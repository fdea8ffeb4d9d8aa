package planner

// CargoItem is a single cargo request handed to the planner. Items are treated
// as immutable: the planner never modifies them and identifiers are assigned by
// the caller.
type CargoItem struct {
	ID       int     `json:"id"`
	ItemType string  `json:"item_type"`
	Priority int     `json:"priority"`
	Weight   float64 `json:"weight"`
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Volume returns the item volume in cubic meters.
func (c CargoItem) Volume() float64 {
	return c.Length * c.Width * c.Height
}

// Position is the center of a placed box, in meters from the bay origin.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlacedItem is a CargoItem with the center position assigned during planning.
type PlacedItem struct {
	CargoItem
	Position Position `json:"position"`
}

// Box returns the axis-aligned box occupied by the placed item.
func (p PlacedItem) Box() Box {
	return Box{
		X:      p.Position.X - p.Length/2,
		Y:      p.Position.Y - p.Width/2,
		Z:      p.Position.Z - p.Height/2,
		Length: p.Length,
		Width:  p.Width,
		Height: p.Height,
	}
}

// BayConstraints describes the cargo bay limits. All values must be positive.
type BayConstraints struct {
	MaxWeight float64 `json:"max_weight"`
	MaxLength float64 `json:"max_length"`
	MaxWidth  float64 `json:"max_width"`
	MaxHeight float64 `json:"max_height"`
}

// MaxVolume returns the total bay volume in cubic meters.
func (b BayConstraints) MaxVolume() float64 {
	return b.MaxLength * b.MaxWidth * b.MaxHeight
}

// CenterOfGravity is the weight-weighted mean position of all packed items.
type CenterOfGravity struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// QuadrantWeights holds the committed weight per horizontal bay quadrant.
type QuadrantWeights struct {
	FrontLeft  float64 `json:"front_left"`
	FrontRight float64 `json:"front_right"`
	RearLeft   float64 `json:"rear_left"`
	RearRight  float64 `json:"rear_right"`
}

// Stats summarises a packing run over the committed items.
type Stats struct {
	TotalWeight       float64         `json:"total_weight"`
	MaxWeight         float64         `json:"max_weight"`
	WeightUtilization float64         `json:"weight_utilization"`
	TotalVolume       float64         `json:"total_volume"`
	MaxVolume         float64         `json:"max_volume"`
	VolumeUtilization float64         `json:"volume_utilization"`
	ItemsPacked       int             `json:"items_packed"`
	ItemsUnpacked     int             `json:"items_unpacked"`
	CenterOfGravity   CenterOfGravity `json:"center_of_gravity"`
	BalanceScore      float64         `json:"balance_score"`
	LeftWeight        float64         `json:"left_weight"`
	RightWeight       float64         `json:"right_weight"`
	QuadrantWeights   QuadrantWeights `json:"quadrant_weights"`
}

// PackingResult is the full outcome of one Optimize call. It is an independent
// value: the planner retains no reference to it.
type PackingResult struct {
	Packed   []PlacedItem   `json:"packed"`
	Unpacked []CargoItem    `json:"unpacked"`
	Stats    Stats          `json:"stats"`
	Bay      BayConstraints `json:"bay"`
}

// Planner describes the behaviour required from a load planner.
type Planner interface {
	Optimize(items []CargoItem, bay BayConstraints) (PackingResult, error)
}

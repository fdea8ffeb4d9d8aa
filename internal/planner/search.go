package planner

// quadrantRect is the length x width sub-rectangle a quadrant spans.
type quadrantRect struct {
	xStart, xEnd float64
	yStart, yEnd float64
}

func rectFor(q Quadrant, bay BayConstraints) quadrantRect {
	halfL := bay.MaxLength / 2
	halfW := bay.MaxWidth / 2

	r := quadrantRect{xStart: 0, xEnd: halfL, yStart: 0, yEnd: halfW}
	if q == RearLeft || q == RearRight {
		r.xStart, r.xEnd = halfL, bay.MaxLength
	}
	if q == FrontRight || q == RearRight {
		r.yStart, r.yEnd = halfW, bay.MaxWidth
	}
	return r
}

// cornerScan lazily walks the lattice of candidate minimum corners inside one
// quadrant: z outermost, then y, then x. Callers pull corners one at a time
// until a fit is found or the scan is exhausted.
type cornerScan struct {
	rect quadrantRect
	step float64
	nx   int
	ny   int
	nz   int
	i    int
}

func newCornerScan(rect quadrantRect, bay BayConstraints, step float64) *cornerScan {
	return &cornerScan{
		rect: rect,
		step: step,
		nx:   int((rect.xEnd - rect.xStart) / step),
		ny:   int((rect.yEnd - rect.yStart) / step),
		nz:   int(bay.MaxHeight / step),
	}
}

// next returns the following lattice corner in scan order. ok is false once
// the quadrant is exhausted.
func (s *cornerScan) next() (x, y, z float64, ok bool) {
	if s.i >= s.nx*s.ny*s.nz {
		return 0, 0, 0, false
	}
	ix := s.i % s.nx
	iy := (s.i / s.nx) % s.ny
	iz := s.i / (s.nx * s.ny)
	s.i++

	return s.rect.xStart + float64(ix)*s.step,
		s.rect.yStart + float64(iy)*s.step,
		float64(iz) * s.step,
		true
}

// findPosition searches for a collision-free center position for item,
// preferring the currently lightest quadrants. Candidate corners start inside
// a quadrant but the item extent is checked against the bay edges, so boxes
// may straddle the midlines. First fit wins: a poorly centered position is
// accepted over continuing to search, keeping cost bounded. ok is false when
// every quadrant's lattice is exhausted.
func findPosition(item CargoItem, bay BayConstraints, packed []PlacedItem, balance *balanceAccumulator, step float64) (Position, bool) {
	for _, q := range balance.searchOrder() {
		scan := newCornerScan(rectFor(q, bay), bay, step)
		for {
			x, y, z, ok := scan.next()
			if !ok {
				break
			}
			if z+item.Height > bay.MaxHeight ||
				y+item.Width > bay.MaxWidth ||
				x+item.Length > bay.MaxLength {
				continue
			}

			box := Box{X: x, Y: y, Z: z, Length: item.Length, Width: item.Width, Height: item.Height}
			if collides(box, packed) {
				continue
			}

			return Position{
				X: x + item.Length/2,
				Y: y + item.Width/2,
				Z: z + item.Height/2,
			}, true
		}
	}
	return Position{}, false
}

func collides(box Box, packed []PlacedItem) bool {
	for _, p := range packed {
		if Overlaps(box, p.Box()) {
			return true
		}
	}
	return false
}

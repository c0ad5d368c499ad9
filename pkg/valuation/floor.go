package valuation

import (
	"math"
)

// FloorBand is one row of the floor table. A ceiling below UpperBound
// resolves to max(Minimum, ceiling*Pct). A zero UpperBound means no upper
// limit.
type FloorBand struct {
	UpperBound float64 `json:"upper_bound" yaml:"upper_bound"`
	Pct        float64 `json:"pct"         yaml:"pct"`
	Minimum    float64 `json:"minimum"     yaml:"minimum"`
}

// FloorBands is an ordered floor table; the first band whose upper bound
// exceeds the ceiling wins.
type FloorBands []FloorBand

// DefaultFloorBands returns the standard floor table.
func DefaultFloorBands() FloorBands {
	return FloorBands{
		{UpperBound: 100, Pct: 0.20, Minimum: 10},
		{UpperBound: 200, Pct: 0.18, Minimum: 15},
		{UpperBound: 300, Pct: 0.15, Minimum: 20},
		{UpperBound: 500, Pct: 0.12, Minimum: 25},
		{UpperBound: 800, Pct: 0.10, Minimum: 35},
		{UpperBound: 0, Pct: 0.08, Minimum: 50},
	}
}

// Band returns the band that applies to ceiling. When no band matches (a
// custom table without an open-ended last row) the last band is used.
func (b FloorBands) Band(ceiling float64) (FloorBand, bool) {
	if len(b) == 0 {
		return FloorBand{}, false
	}
	for _, band := range b {
		if band.UpperBound == 0 || ceiling < band.UpperBound {
			return band, true
		}
	}
	return b[len(b)-1], true
}

// Resolve returns the minimum offer for a device whose A+ ceiling is
// ceiling, rounded to a multiple of 5. An empty table resolves to 0.
func (b FloorBands) Resolve(ceiling float64) float64 {
	band, ok := b.Band(ceiling)
	if !ok {
		return 0
	}
	floor := math.Max(band.Minimum, round(ceiling*band.Pct))
	return finite(roundTo5(floor))
}

// ResolveFloor resolves ceiling against DefaultFloorBands.
func ResolveFloor(ceiling float64) float64 {
	return DefaultFloorBands().Resolve(ceiling)
}

// floorFor returns the override when one is given, rounded up to a multiple
// of 5 so the offer can honour it exactly, and the band-resolved floor
// otherwise.
func floorFor(override *float64, ceiling float64, bands FloorBands) float64 {
	if override != nil {
		return math.Max(0, finite(math.Ceil(*override/5)*5))
	}
	return math.Max(0, bands.Resolve(ceiling))
}

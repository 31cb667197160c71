package spot

import "github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"

// AggregateCapacity sums the limits of spots. No spots means zero capacity, not unlimited.
func AggregateCapacity(spots []*Spot) campsite.Capacity {
	guests, tents := 0, 0
	for _, s := range spots {
		guests += s.MaxCampers
		tents += s.MaxTents
	}
	return campsite.Capacity{
		TotalSpots:      len(spots),
		MaxGuestsPerDay: &guests,
		MaxTentsPerDay:  &tents,
	}
}

// EffectiveCapacity is the per-day limit bookings are checked against.
// Spot-managed campsites derive it from their spots and ignore the manual caps.
func EffectiveCapacity(cs *campsite.CampSite, spots []*Spot) campsite.Capacity {
	if cs.UseSpotView {
		return AggregateCapacity(spots)
	}
	capacity := cs.ManualCapacity()
	capacity.TotalSpots = len(spots)
	return capacity
}

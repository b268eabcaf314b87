package services

import (
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipper"
)

// ShipperDispatcher selects one shipper out of the roster entries covering an order's zone.
type ShipperDispatcher struct{}

func NewShipperDispatcher() ShipperDispatcher {
	return ShipperDispatcher{}
}

// Pick returns the candidate whose roster entry was created first. On equal creation times the
// earlier candidate in the input wins, so the result does not depend on map or query ordering
// beyond the slice handed in. It returns false when there are no valid candidates.
func (d ShipperDispatcher) Pick(candidates []*shipper.Assignment) (*shipper.Assignment, bool) {
	var best *shipper.Assignment

	for _, c := range candidates {
		if c.Validate() != nil {
			continue
		}
		if best == nil || c.CreatedAt().Before(best.CreatedAt()) {
			best = c
		}
	}

	return best, best != nil
}

// ResolveProfile picks the profile the order will be bound to. A profile tied to preferredOffice
// wins; otherwise the first profile is used.
func (d ShipperDispatcher) ResolveProfile(profiles []*shipper.Profile, preferredOffice *kernel.ID) (*shipper.Profile, bool) {
	if len(profiles) == 0 {
		return nil, false
	}

	if preferredOffice != nil {
		for _, p := range profiles {
			if p.WorksAt(*preferredOffice) {
				return p, true
			}
		}
	}

	return profiles[0], true
}

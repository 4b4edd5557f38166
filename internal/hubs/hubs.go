// Package hubs implements the hub selector (C8): whether a direct flight is
// permitted between two cities, or the mandatory hub chain a flight must be
// routed through (§4.8).
package hubs

import (
	"fmt"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/geo"
)

// LongHaulThresholdKM is the direct hub-to-hub distance past which at least
// one federal hub must be inserted for an inter-regional jump (§4.8 rule 3).
const LongHaulThresholdKM = 2000

// ShortHopCeilingKM is the distance past which a direct flight between two
// small (non-hub or class C/D) airports is always rejected (§4.8).
const ShortHopCeilingKM = 500

// Decision is the hub selector's output: either a direct flight is allowed,
// or flights must follow Chain, an ordered list of the *cities* whose hubs
// the flight must transit (§4.8). Chain entries are always city
// identifiers — never catalog.Hub identifiers, which live in a separate
// namespace — so callers can feed them straight into
// Catalog.GetConnectionsBetween without a further hub->city lookup.
type Decision struct {
	AllowDirect bool
	Chain       []string
}

// Selector decides hub chains against a catalog.
type Selector struct {
	Catalog *catalog.Catalog
}

// New constructs a Selector bound to cat.
func New(cat *catalog.Catalog) *Selector {
	return &Selector{Catalog: cat}
}

func isSmallAirport(city catalog.City) bool {
	if !city.Infra.HasAirport {
		return true
	}
	return city.Infra.AirportClass == catalog.AirportC || city.Infra.AirportClass == catalog.AirportD
}

// Decide applies the §4.8 rules for a flight from fromCityID to toCityID.
func (s *Selector) Decide(fromCityID, toCityID string) (Decision, error) {
	from, ok := s.Catalog.GetCity(fromCityID)
	if !ok {
		return Decision{}, fmt.Errorf("hubs: unknown city %q", fromCityID)
	}
	to, ok := s.Catalog.GetCity(toCityID)
	if !ok {
		return Decision{}, fmt.Errorf("hubs: unknown city %q", toCityID)
	}

	dist := geo.DistanceKM(from.Centroid, to.Centroid)

	// Rule 1: both are hubs themselves.
	if from.IsHub && to.IsHub {
		return Decision{AllowDirect: true, Chain: []string{from.ID, to.ID}}, nil
	}

	// Rule 2: exactly one city is a hub -> mandatory single-hub chain via
	// the non-hub side's nearest regional hub.
	if from.IsHub != to.IsHub {
		nonHubCityID := toCityID
		if to.IsHub {
			nonHubCityID = fromCityID
		}
		hub, found := s.Catalog.NearestRegionalHub(nonHubCityID)
		if !found {
			return Decision{}, fmt.Errorf("hubs: no regional hub reachable from %q: isolated catalog island", nonHubCityID)
		}
		return Decision{AllowDirect: false, Chain: []string{hub.CityID}}, nil
	}

	// Neither city is a hub.
	if isSmallAirport(from) || isSmallAirport(to) {
		if dist > ShortHopCeilingKM {
			return Decision{}, fmt.Errorf("hubs: direct flight between small airports over %.0fkm rejected", dist)
		}
		// Short hop between two non-hubs: caller still must confirm a
		// catalog connection exists (§4.8).
		return Decision{AllowDirect: true}, nil
	}

	// Rule 3: neither is a hub but airports are otherwise adequate ->
	// mandatory chain nearest-regional(from) -> [federal] -> nearest-regional(to).
	fromHub, ok := s.Catalog.NearestRegionalHub(fromCityID)
	if !ok {
		return Decision{}, fmt.Errorf("hubs: no regional hub reachable from %q: isolated catalog island", fromCityID)
	}
	toHub, ok := s.Catalog.NearestRegionalHub(toCityID)
	if !ok {
		return Decision{}, fmt.Errorf("hubs: no regional hub reachable from %q: isolated catalog island", toCityID)
	}

	chain := []string{fromHub.CityID}
	hubDist := geo.DistanceKM(fromHub.Coord, toHub.Coord)
	if fromHub.ID != toHub.ID && hubDist > LongHaulThresholdKM {
		if federal, ok := s.Catalog.NearestFederalHub(fromCityID); ok && federal.ID != fromHub.ID && federal.ID != toHub.ID {
			chain = append(chain, federal.CityID)
		}
	}
	if toHub.ID != fromHub.ID {
		chain = append(chain, toHub.CityID)
	}

	return Decision{AllowDirect: false, Chain: chain}, nil
}

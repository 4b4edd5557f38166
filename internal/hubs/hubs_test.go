package hubs_test

import (
	"testing"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/hubs"
)

func cityAt(id string, lat, lon float64, isHub bool, class catalog.AirportClass) catalog.City {
	return catalog.City{
		ID: id, Name: id, Centroid: geo.MustCoordinate(lat, lon),
		IsHub: isHub, HubLevel: catalog.HubRegional,
		Infra: catalog.Infrastructure{HasAirport: true, AirportClass: class},
	}
}

func TestDecideBothHubsAllowsDirect(t *testing.T) {
	cities := []catalog.City{
		cityAt("yakutsk", 62.0, 129.7, true, catalog.AirportA),
		cityAt("mirny", 62.5, 114.0, true, catalog.AirportB),
	}
	cat, err := catalog.Build(catalog.BuildInput{Cities: cities})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := hubs.New(cat)
	dec, err := s.Decide("yakutsk", "mirny")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if !dec.AllowDirect {
		t.Errorf("both cities are hubs, expected AllowDirect=true")
	}
}

func TestDecideOneHubRoutesThroughNonHubsNearestRegional(t *testing.T) {
	cities := []catalog.City{
		cityAt("yakutsk", 62.0, 129.7, true, catalog.AirportA),
		cityAt("small-town", 63.0, 131.0, false, catalog.AirportD),
	}
	hubsTable := []catalog.Hub{
		{ID: "yakutsk-hub", CityID: "yakutsk", Level: catalog.HubRegional, Coord: geo.MustCoordinate(62.0, 129.7)},
	}
	cat, err := catalog.Build(catalog.BuildInput{Cities: cities, Hubs: hubsTable})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := hubs.New(cat)
	dec, err := s.Decide("yakutsk", "small-town")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dec.AllowDirect {
		t.Errorf("exactly one hub city should not allow direct, got AllowDirect=true")
	}
	// Chain entries are city identifiers (the hub's own "yakutsk-hub" id
	// lives in a separate namespace and is never a valid city lookup key).
	if len(dec.Chain) != 1 || dec.Chain[0] != "yakutsk" {
		t.Errorf("Chain = %v, want [yakutsk]", dec.Chain)
	}
}

func TestDecideNeitherHubSmallAirportShortHop(t *testing.T) {
	cities := []catalog.City{
		cityAt("town-a", 62.0, 129.7, false, catalog.AirportD),
		cityAt("town-b", 62.3, 130.0, false, catalog.AirportD),
	}
	cat, err := catalog.Build(catalog.BuildInput{Cities: cities})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := hubs.New(cat)
	dec, err := s.Decide("town-a", "town-b")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if !dec.AllowDirect {
		t.Errorf("short hop between small airports should allow direct")
	}
}

func TestDecideNeitherHubSmallAirportLongHopRejected(t *testing.T) {
	cities := []catalog.City{
		cityAt("town-a", 62.0, 129.7, false, catalog.AirportD),
		cityAt("town-b", 55.75, 37.6, false, catalog.AirportD), // Moscow-ish, far away
	}
	cat, err := catalog.Build(catalog.BuildInput{Cities: cities})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := hubs.New(cat)
	if _, err := s.Decide("town-a", "town-b"); err == nil {
		t.Errorf("long direct hop between small airports should be rejected")
	}
}

func TestDecideUnknownCity(t *testing.T) {
	cat, err := catalog.Build(catalog.BuildInput{Cities: []catalog.City{cityAt("yakutsk", 62.0, 129.7, true, catalog.AirportA)}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := hubs.New(cat)
	if _, err := s.Decide("yakutsk", "nonexistent"); err == nil {
		t.Errorf("Decide should error for unknown destination city")
	}
}

package search_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/antigravity/sakha-transit/internal/assembler"
	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/hubs"
	"github.com/antigravity/sakha-transit/internal/railgraph"
	"github.com/antigravity/sakha-transit/internal/routeerr"
	"github.com/antigravity/sakha-transit/internal/search"
	"github.com/antigravity/sakha-transit/internal/seasonality"
	"github.com/antigravity/sakha-transit/internal/segment"
	"github.com/antigravity/sakha-transit/internal/validate"
)

func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cities := []catalog.City{
		{ID: "yakutsk", Name: "Yakutsk", Centroid: geo.MustCoordinate(62.03, 129.73), IsHub: true, HubLevel: catalog.HubFederal, IsKeyCity: true,
			Infra: catalog.Infrastructure{HasAirport: true, AirportClass: catalog.AirportA, HasBusStation: true}},
		{ID: "verkhoyansk", Name: "Verkhoyansk", Centroid: geo.MustCoordinate(67.55, 133.38),
			Infra: catalog.Infrastructure{HasBusStation: true}},
	}
	conns := []catalog.Connection{
		{
			ID: "bus-1", Mode: catalog.ModeBus, FromCityID: "yakutsk", ToCityID: "verkhoyansk",
			DistanceKM: 650, DurationMin: 720, BasePriceRUB: 3000,
			DeclaredSeason: seasonality.All, IsDirect: true,
		},
	}
	cat, err := catalog.Build(catalog.BuildInput{Cities: cities, Connections: conns})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return cat
}

func newSearcher(t *testing.T, cat *catalog.Catalog) *search.Searcher {
	t.Helper()
	segBuilder := segment.New(cat, nil, idCounter())
	asm := assembler.New(idCounter())
	hubSelector := hubs.New(cat)
	rail := railgraph.Build(cat)
	validator := validate.New(hubSelector)
	return search.New(cat, segBuilder, asm, hubSelector, rail, validator)
}

func idCounter() func() string {
	n := 0
	return func() string {
		n++
		return "id"
	}
}

func TestSearchDirectRoute(t *testing.T) {
	cat := fixtureCatalog(t)
	s := newSearcher(t, cat)
	date := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	route, alts, err := s.Search(context.Background(), "yakutsk", "verkhoyansk", date, search.Options{Priority: search.PriorityFastest})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(route.Segments) != 1 {
		t.Errorf("expected direct single-segment route, got %d segments", len(route.Segments))
	}
	if len(alts) != 0 {
		t.Errorf("expected no alternatives for a single-strategy fixture, got %d", len(alts))
	}
}

func TestSearchUnknownCityErrors(t *testing.T) {
	cat := fixtureCatalog(t)
	s := newSearcher(t, cat)
	_, _, err := s.Search(context.Background(), "nonexistent", "verkhoyansk", time.Now(), search.Options{})
	if !errors.Is(err, routeerr.ErrUnknownCity) {
		t.Errorf("Search(unknown origin) error = %v, want ErrUnknownCity", err)
	}
}

func TestSearchNoRouteErrors(t *testing.T) {
	cities := []catalog.City{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}
	cat, err := catalog.Build(catalog.BuildInput{Cities: cities})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := newSearcher(t, cat)
	_, _, err = s.Search(context.Background(), "a", "b", time.Now(), search.Options{})
	if !errors.Is(err, routeerr.ErrNoRoute) {
		t.Errorf("Search(no connections) error = %v, want ErrNoRoute", err)
	}
}

func TestSearchDegenerateSameCity(t *testing.T) {
	cat := fixtureCatalog(t)
	s := newSearcher(t, cat)
	route, alts, err := s.Search(context.Background(), "yakutsk", "yakutsk", time.Now(), search.Options{})
	if err != nil {
		t.Fatalf("Search(same city) should succeed with a degenerate route: %v", err)
	}
	if len(route.Segments) != 1 {
		t.Errorf("degenerate route should have exactly 1 segment, got %d", len(route.Segments))
	}
	if route.TotalDistance.ValueKM != 0 {
		t.Errorf("degenerate route distance = %v, want 0", route.TotalDistance.ValueKM)
	}
	if alts != nil {
		t.Errorf("degenerate route should have no alternatives, got %v", alts)
	}
}

func TestSearchViaHubsRoutesThroughNearestRegionalHub(t *testing.T) {
	// Mirrors spec §8 scenario 2: a non-hub origin with only a class-D
	// airport must route through its nearest regional hub to reach a
	// federal-hub destination; no direct connection exists between them.
	cities := []catalog.City{
		{ID: "mirny", Name: "Mirny", Centroid: geo.MustCoordinate(62.5, 114.0),
			Infra: catalog.Infrastructure{HasAirport: true, AirportClass: catalog.AirportD}},
		{ID: "khandyga", Name: "Khandyga", Centroid: geo.MustCoordinate(62.7, 135.6),
			Infra: catalog.Infrastructure{HasAirport: true, AirportClass: catalog.AirportB}},
		{ID: "yakutsk", Name: "Yakutsk", Centroid: geo.MustCoordinate(62.03, 129.73), IsHub: true, HubLevel: catalog.HubFederal,
			Infra: catalog.Infrastructure{HasAirport: true, AirportClass: catalog.AirportA}},
	}
	hubsTable := []catalog.Hub{
		{ID: "khandyga-hub", CityID: "khandyga", Level: catalog.HubRegional, Coord: geo.MustCoordinate(62.7, 135.6)},
	}
	conns := []catalog.Connection{
		{ID: "air-1", Mode: catalog.ModeAirplane, FromCityID: "mirny", ToCityID: "khandyga",
			DistanceKM: 400, DurationMin: 60, BasePriceRUB: 5000, DeclaredSeason: seasonality.All, IsDirect: true},
		{ID: "air-2", Mode: catalog.ModeAirplane, FromCityID: "khandyga", ToCityID: "yakutsk",
			DistanceKM: 600, DurationMin: 80, BasePriceRUB: 6000, DeclaredSeason: seasonality.All, IsDirect: true},
	}
	cat, err := catalog.Build(catalog.BuildInput{Cities: cities, Hubs: hubsTable, Connections: conns})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := newSearcher(t, cat)
	date := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	route, _, err := s.Search(context.Background(), "mirny", "yakutsk", date, search.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(route.Segments) != 2 {
		t.Fatalf("expected a 2-segment route via the regional hub, got %d segments: %+v", len(route.Segments), route.Segments)
	}
	if route.Segments[0].ToCityID != "khandyga" || route.Segments[1].FromCityID != "khandyga" {
		t.Errorf("expected the route to transit khandyga, got %+v", route.Segments)
	}
	if !route.Validation.IsValid {
		t.Errorf("expected a valid route, got errors: %+v", route.Validation.Errors)
	}
}

func TestSearchViaRiversAttachesMouthWaypoint(t *testing.T) {
	// Mirrors spec §8 scenario 3: a summer ferry route from an Aldan-river
	// city to a Lena-river city pivots through a Lena-pier city, and the
	// first leg's geometry includes the Aldan->Lena mouth waypoint.
	cities := []catalog.City{
		{ID: "origin-aldan", Name: "Origin", Centroid: geo.MustCoordinate(63.0, 130.0),
			Infra: catalog.Infrastructure{HasFerryPier: true}},
		{ID: "lena-pivot", Name: "Pivot", Centroid: geo.MustCoordinate(63.5, 129.3),
			Infra: catalog.Infrastructure{HasFerryPier: true}},
		{ID: "dest-lena", Name: "Dest", Centroid: geo.MustCoordinate(64.0, 128.0),
			Infra: catalog.Infrastructure{HasFerryPier: true}},
	}
	conns := []catalog.Connection{
		{ID: "ferry-aldan", Mode: catalog.ModeFerry, FromCityID: "origin-aldan", ToCityID: "lena-pivot",
			DistanceKM: 200, DurationMin: 300, BasePriceRUB: 2000, DeclaredSeason: seasonality.Summer, River: "Aldan"},
		{ID: "ferry-lena", Mode: catalog.ModeFerry, FromCityID: "lena-pivot", ToCityID: "dest-lena",
			DistanceKM: 300, DurationMin: 400, BasePriceRUB: 2500, DeclaredSeason: seasonality.Summer, River: "Lena"},
	}
	cat, err := catalog.Build(catalog.BuildInput{Cities: cities, Connections: conns})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := newSearcher(t, cat)
	date := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	route, _, err := s.Search(context.Background(), "origin-aldan", "dest-lena", date, search.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(route.Segments) != 2 {
		t.Fatalf("expected a 2-segment river-pivot route, got %d segments: %+v", len(route.Segments), route.Segments)
	}

	mouth := geo.MustCoordinate(63.44, 129.15)
	found := false
	for _, c := range route.Segments[0].Geometry.Coordinates {
		if math.Abs(c.Lat()-mouth.Lat()) < 0.001 && math.Abs(c.Lon()-mouth.Lon()) < 0.001 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected the first segment's geometry to include the Aldan->Lena mouth waypoint, got %+v", route.Segments[0].Geometry.Coordinates)
	}
}

func TestSearchRespectsSeasonalUnavailability(t *testing.T) {
	cities := []catalog.City{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	conns := []catalog.Connection{
		{
			ID: "ferry-1", Mode: catalog.ModeFerry, FromCityID: "a", ToCityID: "b",
			DistanceKM: 100, DurationMin: 300, BasePriceRUB: 1000,
			DeclaredSeason: seasonality.Summer,
		},
	}
	cat, err := catalog.Build(catalog.BuildInput{Cities: cities, Connections: conns})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := newSearcher(t, cat)
	winterDate := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, _, err = s.Search(context.Background(), "a", "b", winterDate, search.Options{})
	if !errors.Is(err, routeerr.ErrNoRoute) {
		t.Errorf("Search on an out-of-season ferry should find no route, got err=%v", err)
	}
}

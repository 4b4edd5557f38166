package segment_test

import (
	"context"
	"testing"
	"time"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/seasonality"
	"github.com/antigravity/sakha-transit/internal/segment"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cities := []catalog.City{
		{ID: "yakutsk", Name: "Yakutsk", Centroid: geo.MustCoordinate(62.03, 129.73), IsKeyCity: true},
		{ID: "verkhoyansk", Name: "Verkhoyansk", Centroid: geo.MustCoordinate(67.55, 133.38)},
	}
	conns := []catalog.Connection{
		{
			ID: "c1", Mode: catalog.ModeBus, FromCityID: "yakutsk", ToCityID: "verkhoyansk",
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

func TestFromConnectionHappyPath(t *testing.T) {
	cat := testCatalog(t)
	b := segment.New(cat, nil, func() string { return "seg-1" })
	conns := cat.GetConnectionsFrom("yakutsk")
	if len(conns) != 1 {
		t.Fatalf("expected 1 connection fixture, got %d", len(conns))
	}
	seg, err := b.FromConnection(context.Background(), conns[0], time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FromConnection: %v", err)
	}
	if seg.ID != "seg-1" {
		t.Errorf("ID = %q, want seg-1", seg.ID)
	}
	if seg.FromCityID != "yakutsk" || seg.ToCityID != "verkhoyansk" {
		t.Errorf("cities = %s -> %s, want yakutsk -> verkhoyansk", seg.FromCityID, seg.ToCityID)
	}
	if seg.Distance.ValueKM != 650 {
		t.Errorf("Distance.ValueKM = %v, want 650", seg.Distance.ValueKM)
	}
	if err := seg.Validate(); err != nil {
		t.Errorf("built segment should pass Validate, got: %v", err)
	}
}

func TestFromConnectionUnknownCity(t *testing.T) {
	cat := testCatalog(t)
	b := segment.New(cat, nil, nil)
	bad := catalog.Connection{
		ID: "bad", Mode: catalog.ModeBus, FromCityID: "nonexistent", ToCityID: "verkhoyansk",
		DistanceKM: 100, DurationMin: 60, BasePriceRUB: 500, DeclaredSeason: seasonality.All,
	}
	if _, err := b.FromConnection(context.Background(), bad, time.Now()); err == nil {
		t.Errorf("FromConnection with unknown origin city should error")
	}
}

func TestDegenerateBypassesValidateInvariants(t *testing.T) {
	cat := testCatalog(t)
	b := segment.New(cat, nil, func() string { return "deg-1" })
	seg := b.Degenerate("yakutsk")
	if seg.FromCityID != "yakutsk" || seg.ToCityID != "yakutsk" {
		t.Errorf("degenerate segment cities = %s -> %s, want yakutsk -> yakutsk", seg.FromCityID, seg.ToCityID)
	}
	if seg.Distance.ValueKM != 0 {
		t.Errorf("degenerate segment distance = %v, want 0", seg.Distance.ValueKM)
	}
	// Validate would reject this (identical stops, zero distance); Degenerate
	// intentionally never calls it.
	if err := seg.Validate(); err == nil {
		t.Errorf("a degenerate segment is expected to fail Validate's normal invariants")
	}
}

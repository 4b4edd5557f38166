package assembler_test

import (
	"testing"
	"time"

	"github.com/antigravity/sakha-transit/internal/assembler"
	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/distance"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/price"
	"github.com/antigravity/sakha-transit/internal/routemodel"
	"github.com/antigravity/sakha-transit/internal/seasonality"
)

func fixtureSegment(from, to string, mode catalog.Mode, distKM float64, durMin int) routemodel.Segment {
	p1 := geo.MustCoordinate(62.0, 129.0)
	p2 := geo.MustCoordinate(63.0, 130.0)
	travelDate := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	return routemodel.Segment{
		ID: from + "-" + to, Mode: mode,
		FromStopID: from, ToStopID: to, FromCityID: from, ToCityID: to,
		IsDirect:    true,
		Distance:    distance.FromValue(distKM, routemodel.DistanceManual, mode),
		Duration:    routemodel.NewDuration(durMin),
		Price:       price.ForSegment(price.SegmentOptions{Mode: mode, DistanceKM: distKM, OriginIsUrban: true}),
		Seasonality: seasonality.CreateSeasonality(seasonality.All, nil, travelDate),
		Geometry:    routemodel.PathGeometry{Coordinates: []geo.Coordinate{p1, p2}, Style: routemodel.StyleSolid},
	}
}

func TestAssembleSingleSegment(t *testing.T) {
	seg := fixtureSegment("yakutsk", "verkhoyansk", catalog.ModeBus, 650, 720)
	a := assembler.New(nil)
	route, err := a.Assemble("yakutsk", "verkhoyansk", []routemodel.Segment{seg})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if route.TotalDistance.ValueKM != 650 {
		t.Errorf("TotalDistance = %v, want 650", route.TotalDistance.ValueKM)
	}
	if route.TotalDuration.TransferMin != 0 {
		t.Errorf("TransferMin for a direct single-segment route = %v, want 0", route.TotalDuration.TransferMin)
	}
	if route.TotalDuration.TotalMin != 720 {
		t.Errorf("TotalMin = %v, want 720 (no transfer penalty)", route.TotalDuration.TotalMin)
	}
}

func TestAssembleMultiSegmentAppliesTransferPenalty(t *testing.T) {
	seg1 := fixtureSegment("yakutsk", "mirny", catalog.ModeAirplane, 800, 120)
	seg2 := fixtureSegment("mirny", "verkhoyansk", catalog.ModeBus, 300, 360)
	a := assembler.New(nil)
	route, err := a.Assemble("yakutsk", "verkhoyansk", []routemodel.Segment{seg1, seg2})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	wantTransferMin := 1 * assembler.TransferPenaltyMin
	if route.TotalDuration.TransferMin != wantTransferMin {
		t.Errorf("TransferMin = %v, want %v", route.TotalDuration.TransferMin, wantTransferMin)
	}
	wantTotalMin := 120 + 360 + wantTransferMin
	if route.TotalDuration.TotalMin != wantTotalMin {
		t.Errorf("TotalMin = %v, want %v", route.TotalDuration.TotalMin, wantTotalMin)
	}
	if len(route.Visualization.Polylines) != 2 {
		t.Errorf("Visualization.Polylines = %d, want 2", len(route.Visualization.Polylines))
	}
	if len(route.Visualization.Markers) != 3 {
		t.Errorf("Visualization.Markers = %d, want 3 (start, transfer, end)", len(route.Visualization.Markers))
	}
}

func TestAssembleRejectsNonContiguousChain(t *testing.T) {
	seg1 := fixtureSegment("yakutsk", "mirny", catalog.ModeAirplane, 800, 120)
	seg2 := fixtureSegment("verkhoyansk", "tiksi", catalog.ModeBus, 300, 360)
	a := assembler.New(nil)
	if _, err := a.Assemble("yakutsk", "tiksi", []routemodel.Segment{seg1, seg2}); err == nil {
		t.Errorf("Assemble should reject a chain where segment boundaries don't match")
	}
}

func TestAssembleRejectsEmptySegments(t *testing.T) {
	a := assembler.New(nil)
	if _, err := a.Assemble("yakutsk", "verkhoyansk", nil); err == nil {
		t.Errorf("Assemble should reject an empty segment list")
	}
}

func TestAssembleRejectsMismatchedOrigin(t *testing.T) {
	seg := fixtureSegment("mirny", "verkhoyansk", catalog.ModeBus, 300, 360)
	a := assembler.New(nil)
	if _, err := a.Assemble("yakutsk", "verkhoyansk", []routemodel.Segment{seg}); err == nil {
		t.Errorf("Assemble should reject a route whose first segment doesn't depart fromCityID")
	}
}

package validate_test

import (
	"testing"
	"time"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/routemodel"
	"github.com/antigravity/sakha-transit/internal/seasonality"
	"github.com/antigravity/sakha-transit/internal/validate"
)

func straightSegment(mode catalog.Mode, distKM float64) routemodel.Segment {
	p1 := geo.MustCoordinate(62.0, 129.0)
	p2 := geo.MustCoordinate(65.0, 132.0)
	return routemodel.Segment{
		ID: "seg-1", Mode: mode, FromStopID: "a", ToStopID: "b", FromCityID: "a", ToCityID: "b",
		Distance:    routemodel.DistanceModel{ValueKM: distKM},
		Duration:    routemodel.NewDuration(600),
		Geometry:    routemodel.PathGeometry{Coordinates: []geo.Coordinate{p1, p2}, Style: routemodel.StyleSolid},
		Seasonality: seasonality.Seasonality{Declared: seasonality.All, Available: true},
	}
}

func TestDetectEmptySpacePathIgnoresAirplane(t *testing.T) {
	seg := straightSegment(catalog.ModeAirplane, 2000)
	if f := validate.DetectEmptySpacePath(seg); f != nil {
		t.Errorf("DetectEmptySpacePath should not flag airplane segments, got %v", f)
	}
}

func TestDetectEmptySpacePathFlagsLongGroundSegment(t *testing.T) {
	seg := straightSegment(catalog.ModeBus, 500)
	f := validate.DetectEmptySpacePath(seg)
	if f == nil {
		t.Fatalf("DetectEmptySpacePath should flag a long bus segment with a bare straight line")
	}
	if f.Kind != routemodel.FindingEmptySpacePath {
		t.Errorf("Kind = %v, want %v", f.Kind, routemodel.FindingEmptySpacePath)
	}
}

func TestDetectEmptySpacePathIgnoresShortHop(t *testing.T) {
	seg := straightSegment(catalog.ModeBus, 10)
	if f := validate.DetectEmptySpacePath(seg); f != nil {
		t.Errorf("DetectEmptySpacePath should not flag a short hop, got %v", f)
	}
}

func TestDetectUnrealisticRouteFlagsBusOverDistanceCap(t *testing.T) {
	seg := straightSegment(catalog.ModeBus, 2000)
	if f := validate.DetectUnrealisticRoute(seg); f == nil {
		t.Errorf("DetectUnrealisticRoute should flag bus distance over cap")
	}
}

func TestDetectUnrealisticRouteAcceptsPlausibleBus(t *testing.T) {
	seg := straightSegment(catalog.ModeBus, 100)
	seg.Duration = routemodel.NewDuration(120)
	if f := validate.DetectUnrealisticRoute(seg); f != nil {
		t.Errorf("DetectUnrealisticRoute should not flag a plausible bus segment, got %v", f)
	}
}

func TestDetectInvalidIdentifierFlagsBadStopID(t *testing.T) {
	seg := straightSegment(catalog.ModeBus, 100)
	seg.FromStopID = "Not Valid!"
	f := validate.DetectInvalidIdentifier(seg)
	if f == nil {
		t.Fatalf("DetectInvalidIdentifier should flag a malformed stop id")
	}
}

func TestDetectInvalidIdentifierAcceptsValidID(t *testing.T) {
	seg := straightSegment(catalog.ModeBus, 100)
	if f := validate.DetectInvalidIdentifier(seg); f != nil {
		t.Errorf("DetectInvalidIdentifier should accept valid ids, got %v", f)
	}
}

func TestDetectDisconnectedFlagsDistantBoundary(t *testing.T) {
	prev := straightSegment(catalog.ModeBus, 100)
	prev.ToCityID, prev.ToStopID = "b", "stop-b"
	next := straightSegment(catalog.ModeBus, 100)
	next.FromCityID, next.FromStopID = "c", "stop-c"

	prevEnd := geo.MustCoordinate(62.0, 129.0)
	nextStart := geo.MustCoordinate(70.0, 140.0) // far away
	f := validate.DetectDisconnected(prev, next, prevEnd, nextStart)
	if f == nil {
		t.Fatalf("DetectDisconnected should flag a large boundary gap")
	}
}

func TestDetectDisconnectedIgnoresMatchingEndpoints(t *testing.T) {
	prev := straightSegment(catalog.ModeBus, 100)
	next := straightSegment(catalog.ModeBus, 100)
	next.FromCityID, next.FromStopID = prev.ToCityID, prev.ToStopID
	p := geo.MustCoordinate(62.0, 129.0)
	if f := validate.DetectDisconnected(prev, next, p, p); f != nil {
		t.Errorf("DetectDisconnected should not flag matching endpoints, got %v", f)
	}
}

func TestCheckDistanceFlagsMismatch(t *testing.T) {
	seg := straightSegment(catalog.ModeBus, 10) // geometry integrated length is far more than 10km given the coords
	seg.Distance = routemodel.DistanceModel{ValueKM: 10}
	if f := validate.CheckDistance(seg); f == nil {
		t.Errorf("CheckDistance should flag a declared distance far from geometry length")
	}
}

func TestCheckPathFlagsWrongStyleForFerry(t *testing.T) {
	seg := straightSegment(catalog.ModeFerry, 100)
	seg.Geometry.Style = routemodel.StyleSolid
	f := validate.CheckPath(seg)
	if f == nil {
		t.Fatalf("CheckPath should flag a ferry segment that isn't wavy")
	}
	if f.Suggestion == nil || f.Suggestion.SuggestedValue != string(routemodel.StyleWavy) {
		t.Errorf("CheckPath suggestion = %+v, want wavy", f.Suggestion)
	}
}

func TestCheckPathAcceptsCorrectStyle(t *testing.T) {
	seg := straightSegment(catalog.ModeFerry, 100)
	seg.Geometry.Style = routemodel.StyleWavy
	if f := validate.CheckPath(seg); f != nil {
		t.Errorf("CheckPath should not flag correctly-styled ferry, got %v", f)
	}
}

func TestCheckTransferTimingFlagsInsufficientLayover(t *testing.T) {
	route := routemodel.Route{
		Segments: []routemodel.Segment{
			{Mode: catalog.ModeAirplane},
			{Mode: catalog.ModeAirplane},
		},
		TotalDuration: routemodel.TotalDuration{TransferMin: 30}, // below the 60min air-to-air minimum
	}
	f := validate.CheckTransferTiming(route)
	if f == nil {
		t.Fatalf("CheckTransferTiming should flag a transfer below the mode-pair minimum")
	}
	if f.Kind != routemodel.FindingTransferMismatch {
		t.Errorf("Kind = %v, want %v", f.Kind, routemodel.FindingTransferMismatch)
	}
}

func TestCheckTransferTimingAcceptsSufficientLayover(t *testing.T) {
	route := routemodel.Route{
		Segments: []routemodel.Segment{
			{Mode: catalog.ModeBus},
			{Mode: catalog.ModeBus},
		},
		TotalDuration: routemodel.TotalDuration{TransferMin: 30}, // well above the 10min bus-to-bus minimum
	}
	if f := validate.CheckTransferTiming(route); f != nil {
		t.Errorf("CheckTransferTiming should not flag an ample layover, got %v", f)
	}
}

func TestCheckTransferTimingIgnoresDirectRoute(t *testing.T) {
	route := routemodel.Route{Segments: []routemodel.Segment{{Mode: catalog.ModeBus}}}
	if f := validate.CheckTransferTiming(route); f != nil {
		t.Errorf("CheckTransferTiming should not flag a route with no transfers, got %v", f)
	}
}

func TestCheckSeasonalityFlagsUnavailable(t *testing.T) {
	seg := straightSegment(catalog.ModeBus, 100)
	seg.Seasonality = seasonality.Seasonality{Declared: seasonality.Summer}
	winterDate := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if f := validate.CheckSeasonality(seg, winterDate); f == nil {
		t.Errorf("CheckSeasonality should flag a summer-only segment travelled in winter")
	}
}

func TestValidatorCheckCombinesStructuralAndRealityFindings(t *testing.T) {
	seg := straightSegment(catalog.ModeBus, 500) // long straight line -> warning
	seg.FromStopID = "Bad ID!"                   // invalid identifier -> error
	v := validate.New(nil)
	verdict := v.Check(routemodel.Route{Segments: []routemodel.Segment{seg}}, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC))
	if verdict.IsValid {
		t.Errorf("verdict should be invalid given an invalid identifier error")
	}
	if len(verdict.Errors) == 0 {
		t.Errorf("expected at least one structural error")
	}
	if len(verdict.Warnings) == 0 {
		t.Errorf("expected at least one reality-check warning")
	}
}

// Package validate implements the error detector (C13), reality checker
// (C14) and validator facade (C15): a pipeline of independent checks that
// together produce a route's Verdict (§4.13/§4.14/§4.15).
package validate

import (
	"fmt"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/distance"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/routemodel"
)

// BoundaryMismatchKM is the distance past which a segment's declared
// endpoint and the adjoining segment's declared endpoint are considered
// disconnected, even when they share a city/stop identifier (§4.13).
const BoundaryMismatchKM = 10.0

// BusRealismMaxKM / BusRealismMaxHours / BusRealismMaxKMH bound a single bus
// segment's plausibility (§4.13): over 1500km, over 24h, or an implied speed
// over 100km/h all warn. FerryRealismMaxKM and TaxiRealismMaxKM cap the
// distance of a single ferry or taxi segment.
const (
	BusRealismMaxKM     = 1500.0
	BusRealismMaxHours  = 24.0
	BusRealismMaxKMH    = 100.0
	FerryRealismMaxKM   = 1000.0
	TaxiRealismMaxKM    = 200.0
)

// DetectEmptySpacePath flags a segment whose geometry is a bare two-point
// straight line spanning a large distance with no intermediate points,
// which usually indicates a builder fell back without a real path (§4.13).
func DetectEmptySpacePath(seg routemodel.Segment) *routemodel.Finding {
	if len(seg.Geometry.Coordinates) != 2 {
		return nil
	}
	if seg.Mode == catalog.ModeAirplane {
		return nil // a bare two-point line is the expected flight geometry
	}
	if seg.Distance.ValueKM <= 50 {
		return nil // short hops are plausibly direct even for ground modes
	}
	return &routemodel.Finding{
		Kind:      routemodel.FindingEmptySpacePath,
		SegmentID: seg.ID,
		Message:   fmt.Sprintf("%s segment %.0fkm has only a straight-line path with no intermediate points", seg.Mode, seg.Distance.ValueKM),
	}
}

// DetectUnrealisticRoute flags segments whose declared distance/duration
// combination exceeds the plausibility bounds for their mode (§4.13).
func DetectUnrealisticRoute(seg routemodel.Segment) *routemodel.Finding {
	hours := float64(seg.Duration.ValueMin) / 60.0
	var impliedKMH float64
	if hours > 0 {
		impliedKMH = seg.Distance.ValueKM / hours
	}

	switch seg.Mode {
	case catalog.ModeBus:
		switch {
		case seg.Distance.ValueKM > BusRealismMaxKM:
			return unrealisticFinding(seg, fmt.Sprintf("bus distance %.0fkm exceeds %.0fkm", seg.Distance.ValueKM, BusRealismMaxKM))
		case hours > BusRealismMaxHours:
			return unrealisticFinding(seg, fmt.Sprintf("bus duration %.1fh exceeds %.0fh", hours, BusRealismMaxHours))
		case impliedKMH > BusRealismMaxKMH:
			return unrealisticFinding(seg, fmt.Sprintf("bus implied speed %.0fkm/h exceeds %.0fkm/h", impliedKMH, BusRealismMaxKMH))
		}
	case catalog.ModeFerry:
		if seg.Distance.ValueKM > FerryRealismMaxKM {
			return unrealisticFinding(seg, fmt.Sprintf("ferry distance %.0fkm exceeds %.0fkm", seg.Distance.ValueKM, FerryRealismMaxKM))
		}
	case catalog.ModeTaxi:
		if seg.Distance.ValueKM > TaxiRealismMaxKM {
			return unrealisticFinding(seg, fmt.Sprintf("taxi distance %.0fkm exceeds %.0fkm", seg.Distance.ValueKM, TaxiRealismMaxKM))
		}
	}
	return nil
}

func unrealisticFinding(seg routemodel.Segment, message string) *routemodel.Finding {
	return &routemodel.Finding{Kind: routemodel.FindingUnrealisticRoute, SegmentID: seg.ID, Message: message}
}

// DetectDisconnected flags a transfer point where consecutive segments'
// declared endpoints don't physically meet: endpoints more than
// BoundaryMismatchKM apart, whether or not the two segments share a
// city/stop identifier (§4.13).
func DetectDisconnected(prev, next routemodel.Segment, prevEnd, nextStart geo.Coordinate) *routemodel.Finding {
	d := geo.DistanceKM(prevEnd, nextStart)
	if d <= BoundaryMismatchKM {
		return nil
	}
	return &routemodel.Finding{
		Kind:      routemodel.FindingDisconnected,
		SegmentID: next.ID,
		Message:   fmt.Sprintf("transfer from segment %s to %s is %.1fkm apart (stops %q -> %q)", prev.ID, next.ID, d, prev.ToStopID, next.FromStopID),
	}
}

// DetectInvalidIdentifier flags a segment whose stop identifiers don't
// match the catalog's identifier grammar (§4.2/§4.13).
func DetectInvalidIdentifier(seg routemodel.Segment) *routemodel.Finding {
	for _, id := range []string{seg.FromStopID, seg.ToStopID} {
		if id == "" || catalog.ValidIdentifier(id) {
			continue
		}
		return &routemodel.Finding{
			Kind:      routemodel.FindingInvalidIdentifier,
			SegmentID: seg.ID,
			Message:   fmt.Sprintf("identifier %q does not match catalog identifier grammar", id),
		}
	}
	return nil
}

// DistanceDeviationRatio is the tolerance for a segment's declared distance
// against its geometry's integrated polyline length before the reality
// checker flags a mismatch (§4.14).
const DistanceDeviationRatio = 0.10

// CheckDistance compares a segment's declared distance against its own
// geometry's integrated length, producing a mismatch Finding with a
// suggested correction when they diverge beyond DistanceDeviationRatio.
func CheckDistance(seg routemodel.Segment) *routemodel.Finding {
	measured := distance.PolylineLength(seg.Geometry.Coordinates)
	if measured <= 0 || seg.Distance.ValueKM <= 0 {
		return nil
	}
	ratio := measured / seg.Distance.ValueKM
	if ratio >= 1-DistanceDeviationRatio && ratio <= 1+DistanceDeviationRatio {
		return nil
	}
	confidence := 0.7
	if ratio > 2 || ratio < 0.5 {
		confidence = 0.9
	}
	return &routemodel.Finding{
		Kind:      routemodel.FindingDistanceMismatch,
		SegmentID: seg.ID,
		Message:   fmt.Sprintf("declared distance %.0fkm diverges from geometry-integrated %.0fkm", seg.Distance.ValueKM, measured),
		Suggestion: &routemodel.Correction{
			Type:           "distance_km",
			SuggestedValue: fmt.Sprintf("%.0f", measured),
			Confidence:     confidence,
		},
	}
}

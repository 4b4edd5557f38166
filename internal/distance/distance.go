// Package distance computes the per-segment DistanceModel (C4): a value in
// kilometers, a calc-method tag, and a per-mode breakdown (§4.4).
package distance

import (
	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/routemodel"
)

// FromValue builds a DistanceModel from an already-known value (e.g. a
// routing-service response or a connection's declared figure), tagging it
// with method and attributing it to mode in the breakdown.
func FromValue(valueKM float64, method routemodel.DistanceCalcMethod, mode catalog.Mode) routemodel.DistanceModel {
	d := routemodel.DistanceModel{
		ValueKM:   valueKM,
		Method:    method,
		Breakdown: map[catalog.Mode]float64{mode: valueKM},
	}
	d.RenderDisplay()
	return d
}

// Haversine computes a DistanceModel between two coordinates via the great
// circle distance, attributed to mode. Used for airplane segments (§4.11).
func Haversine(from, to geo.Coordinate, mode catalog.Mode) routemodel.DistanceModel {
	return FromValue(geo.DistanceKM(from, to), routemodel.DistanceHaversine, mode)
}

// PolylineLength sums the haversine length of consecutive points in a
// polyline, used by the reality checker (C14) to integrate a path's actual
// length when comparing against a declared distance.
func PolylineLength(points []geo.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += geo.DistanceKM(points[i-1], points[i])
	}
	return total
}

// Merge combines the per-mode breakdowns of several DistanceModels and sums
// their values, used by the route assembler (C12) to accumulate totals.
func Merge(models []routemodel.DistanceModel) routemodel.DistanceModel {
	merged := routemodel.DistanceModel{
		Method:    routemodel.DistanceManual,
		Breakdown: make(map[catalog.Mode]float64),
	}
	for _, m := range models {
		merged.ValueKM += m.ValueKM
		for mode, v := range m.Breakdown {
			merged.Breakdown[mode] += v
		}
	}
	merged.RenderDisplay()
	return merged
}

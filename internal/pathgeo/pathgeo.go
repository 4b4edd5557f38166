// Package pathgeo builds mode-specific realistic polylines (C6): great-
// circle flight arcs with hub waypoints, river-following ferry paths,
// rail corridor paths broken at every intermediate station, winter-road
// paths, and road routing for bus/taxi delegated to the routing-service
// client with a synthesized non-straight fallback (§4.6).
package pathgeo

import (
	"context"
	"math"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/routemodel"
	"github.com/antigravity/sakha-transit/internal/routingclient"
)

// BuildResult is a built geometry plus an optional warning recorded when
// the builder had to fall back to a straight line (§4.6 "All builders
// validate output").
type BuildResult struct {
	Geometry routemodel.PathGeometry
	Warning  string
}

func straightLine(from, to geo.Coordinate, style routemodel.PolylineStyle) routemodel.PathGeometry {
	return routemodel.PathGeometry{Coordinates: []geo.Coordinate{from, to}, Style: style}
}

// validate checks a candidate polyline (>= 2 points, all finite) and falls
// back to a straight line with a warning on corruption.
func validate(points []geo.Coordinate, from, to geo.Coordinate, style routemodel.PolylineStyle, builderName string) BuildResult {
	if len(points) < 2 {
		return BuildResult{
			Geometry: straightLine(from, to, style),
			Warning:  builderName + ": produced fewer than 2 points, substituted straight line",
		}
	}
	for _, p := range points {
		if !geo.IsFinite(p) {
			return BuildResult{
				Geometry: straightLine(from, to, style),
				Warning:  builderName + ": produced a non-finite coordinate, substituted straight line",
			}
		}
	}
	return BuildResult{Geometry: routemodel.PathGeometry{Coordinates: points, Style: style}}
}

// BuildAirplane builds the flight polyline: [from, hub1, ..., hubk, to] when
// viaHubs is non-empty, else the two endpoints. Never adds smoothing.
func BuildAirplane(from, to geo.Coordinate, viaHubs []geo.Coordinate) BuildResult {
	points := make([]geo.Coordinate, 0, len(viaHubs)+2)
	points = append(points, from)
	points = append(points, viaHubs...)
	points = append(points, to)
	return validate(points, from, to, routemodel.StyleSolid, "pathgeo.airplane")
}

// BuildRoad delegates to the routing-service client for bus/taxi segments.
// On any client failure it synthesizes a non-straight polyline: N = max(3,
// ceil(distance/30km)) interior points with a sinusoidal lateral offset
// proportional to ~3% of the path length, always including the endpoints.
func BuildRoad(ctx context.Context, client *routingclient.Client, from, to geo.Coordinate, mode catalog.Mode) BuildResult {
	style := routemodel.StyleSolid
	if client != nil {
		profile := routingclient.ProfileDriving
		res, err := client.GetRoute(ctx, from, to, nil, profile)
		if err == nil {
			return validate(res.Polyline, from, to, style, "pathgeo.road")
		}
	}
	return validate(synthesizeRoad(from, to), from, to, style, "pathgeo.road.synthetic")
}

// synthesizeRoad generates a non-straight polyline between from and to when
// no routing service is available (§4.6 bus/taxi fallback).
func synthesizeRoad(from, to geo.Coordinate) []geo.Coordinate {
	d := geo.DistanceKM(from, to)
	n := int(math.Ceil(d / 30))
	if n < 3 {
		n = 3
	}

	lat0, lon0 := from.Lat(), from.Lon()
	lat1, lon1 := to.Lat(), to.Lon()

	// Perpendicular unit vector in (lat,lon) plane, for lateral offset.
	dLat := lat1 - lat0
	dLon := lon1 - lon0
	length := math.Hypot(dLat, dLon)
	var perpLat, perpLon float64
	if length > 0 {
		perpLat = -dLon / length
		perpLon = dLat / length
	}

	amplitudeDeg := 0.03 * length // ~3% of the path length, in degree-space

	points := make([]geo.Coordinate, 0, n+2)
	points = append(points, from)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		baseLat := lat0 + dLat*t
		baseLon := lon0 + dLon*t
		offset := amplitudeDeg * math.Sin(t*math.Pi*2)
		p, err := geo.NewCoordinate(baseLat+perpLat*offset, baseLon+perpLon*offset)
		if err != nil {
			// Clamp rather than drop the point, to keep the point count.
			lat := math.Min(90, math.Max(-90, baseLat+perpLat*offset))
			lon := math.Min(180, math.Max(-180, baseLon+perpLon*offset))
			p = geo.MustCoordinate(lat, lon)
		}
		points = append(points, p)
	}
	points = append(points, to)
	return points
}

// riverCurvature is the characteristic curvature coefficient for a known
// river, used to bow the ferry polyline rather than drawing it straight.
var riverCurvature = map[string]float64{
	"Lena":   0.12,
	"Aldan":  0.09,
	"Vilyuy": 0.07,
}

// River mouth waypoints for cross-system ferry transitions (§4.6).
var (
	AldanToLenaMouth  = geo.MustCoordinate(63.44, 129.15)
	VilyuyToLenaMouth = geo.MustCoordinate(64.37, 126.40)
)

// RiverMouthWaypoint returns the known waypoint for a ferry leg that
// transitions from one declared river system to another (e.g. an
// Aldan-river connection feeding into a Lena-river connection at a shared
// pivot city), and whether such a waypoint is known (§4.6, §8 scenario 3).
func RiverMouthWaypoint(fromRiver, toRiver string) (geo.Coordinate, bool) {
	switch {
	case fromRiver == "Aldan" && toRiver == "Lena":
		return AldanToLenaMouth, true
	case fromRiver == "Vilyuy" && toRiver == "Lena":
		return VilyuyToLenaMouth, true
	default:
		return geo.Coordinate{}, false
	}
}

// BuildFerry follows the declared river's polyline, bowing it by the
// river's curvature coefficient, and inserts any intermediate piers or
// river-mouth waypoints supplied by the caller (segment builder) when the
// connection crosses river systems. Style is always wavy.
func BuildFerry(from, to geo.Coordinate, river string, intermediates []geo.Coordinate) BuildResult {
	style := routemodel.StyleWavy

	curvature, known := riverCurvature[river]
	if !known {
		points := append([]geo.Coordinate{from}, intermediates...)
		points = append(points, to)
		return validate(points, from, to, style, "pathgeo.ferry")
	}

	points := []geo.Coordinate{from}
	points = append(points, bowPolyline(from, to, curvature, 4)...)
	points = append(points, intermediates...)
	points = append(points, to)
	return validate(points, from, to, style, "pathgeo.ferry")
}

// bowPolyline generates interior points along a great-circle chord, offset
// laterally to approximate a meandering river course.
func bowPolyline(from, to geo.Coordinate, curvature float64, segments int) []geo.Coordinate {
	lat0, lon0 := from.Lat(), from.Lon()
	lat1, lon1 := to.Lat(), to.Lon()
	dLat := lat1 - lat0
	dLon := lon1 - lon0
	length := math.Hypot(dLat, dLon)

	var perpLat, perpLon float64
	if length > 0 {
		perpLat = -dLon / length
		perpLon = dLat / length
	}

	out := make([]geo.Coordinate, 0, segments)
	for i := 1; i <= segments; i++ {
		t := float64(i) / float64(segments+1)
		baseLat := lat0 + dLat*t
		baseLon := lon0 + dLon*t
		// The river bows out and back: sin curve over the span.
		offset := curvature * length * math.Sin(t*math.Pi)
		lat := baseLat + perpLat*offset
		lon := baseLon + perpLon*offset
		lat = math.Min(90, math.Max(-90, lat))
		lon = math.Min(180, math.Max(-180, lon))
		out = append(out, geo.MustCoordinate(lat, lon))
	}
	return out
}

// BuildTrain follows the rail corridor, breaking the polyline at every
// intermediate station from the train graph. Style solid, weight 3 is
// applied by the caller when rendering the route's Polyline (C12); here we
// only emit the PathGeometry.
func BuildTrain(from, to geo.Coordinate, stations []geo.Coordinate) BuildResult {
	points := append([]geo.Coordinate{from}, stations...)
	points = append(points, to)
	return validate(points, from, to, routemodel.StyleSolid, "pathgeo.train")
}

// BuildWinterRoad follows the connection's declared intermediate waypoints.
// Style dotted (rendered with dash 10/5 by the assembler); never a straight
// two-point line for distances > 1km when waypoints are available.
func BuildWinterRoad(from, to geo.Coordinate, waypoints []geo.Coordinate) BuildResult {
	points := append([]geo.Coordinate{from}, waypoints...)
	points = append(points, to)
	return validate(points, from, to, routemodel.StyleDotted, "pathgeo.winter_road")
}

// Package geo provides coordinate primitives shared by every other package:
// validated lat/lon pairs, haversine distance, bounding boxes and GeoJSON
// export order.
package geo

import (
	"encoding/json"
	"fmt"
	"math"
)

// EarthRadiusKM is the mean Earth radius used for haversine distance.
const EarthRadiusKM = 6371.0

// Coordinate is an immutable, validated latitude/longitude pair.
type Coordinate struct {
	lat float64
	lon float64
}

// NewCoordinate validates and constructs a Coordinate. Latitude must be in
// [-90, 90], longitude in [-180, 180]; NaN and Inf are rejected.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return Coordinate{}, fmt.Errorf("geo: latitude is not finite: %v", lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return Coordinate{}, fmt.Errorf("geo: longitude is not finite: %v", lon)
	}
	if lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("geo: latitude %v out of range [-90,90]", lat)
	}
	if lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("geo: longitude %v out of range [-180,180]", lon)
	}
	return Coordinate{lat: lat, lon: lon}, nil
}

// MustCoordinate panics on an invalid pair. Reserved for catalog construction
// from literal, known-good data (table fixtures, tests).
func MustCoordinate(lat, lon float64) Coordinate {
	c, err := NewCoordinate(lat, lon)
	if err != nil {
		panic(err)
	}
	return c
}

// Lat returns the latitude in degrees.
func (c Coordinate) Lat() float64 { return c.lat }

// Lon returns the longitude in degrees.
func (c Coordinate) Lon() float64 { return c.lon }

// coordinateJSON is the wire shape for a Coordinate: {"lat":.., "lon":..},
// since the fields backing Coordinate are unexported to keep the validated
// invariant enforced through NewCoordinate.
type coordinateJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MarshalJSON renders {"lat":..,"lon":..}.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(coordinateJSON{Lat: c.lat, Lon: c.lon})
}

// UnmarshalJSON parses {"lat":..,"lon":..}, validating via NewCoordinate.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var raw coordinateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewCoordinate(raw.Lat, raw.Lon)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ToGeoJSON renders the coordinate in GeoJSON's [lon, lat] order.
func (c Coordinate) ToGeoJSON() [2]float64 {
	return [2]float64{c.lon, c.lat}
}

// FromGeoJSON is the inverse of ToGeoJSON: a [lon, lat] pair becomes a
// Coordinate. Round-trips with ToGeoJSON for any valid Coordinate.
func FromGeoJSON(p [2]float64) (Coordinate, error) {
	return NewCoordinate(p[1], p[0])
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

// DistanceKM returns the great-circle distance between two coordinates in
// kilometers using the haversine formula. Symmetric; zero for identical
// points; handles antimeridian crossings via the standard delta-longitude
// normalization implicit in sin/cos.
func DistanceKM(a, b Coordinate) float64 {
	if a == b {
		return 0
	}
	lat1, lat2 := toRadians(a.lat), toRadians(b.lat)
	dLat := toRadians(b.lat - a.lat)
	dLon := toRadians(b.lon - a.lon)

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKM * c
}

// BBox is an axis-aligned bounding box over a set of points (min/max lat/lon).
type BBox struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// NewBBox computes the bounding box over points. Rejects an empty input.
func NewBBox(points []Coordinate) (BBox, error) {
	if len(points) == 0 {
		return BBox{}, fmt.Errorf("geo: cannot compute bbox of empty point set")
	}
	b := BBox{
		MinLat: points[0].lat, MaxLat: points[0].lat,
		MinLon: points[0].lon, MaxLon: points[0].lon,
	}
	for _, p := range points[1:] {
		b.MinLat = math.Min(b.MinLat, p.lat)
		b.MaxLat = math.Max(b.MaxLat, p.lat)
		b.MinLon = math.Min(b.MinLon, p.lon)
		b.MaxLon = math.Max(b.MaxLon, p.lon)
	}
	return b, nil
}

// Contains reports whether p lies within the box (inclusive).
func (b BBox) Contains(p Coordinate) bool {
	return p.lat >= b.MinLat && p.lat <= b.MaxLat && p.lon >= b.MinLon && p.lon <= b.MaxLon
}

// Extend grows the box to also contain p, returning the updated box.
func (b BBox) Extend(p Coordinate) BBox {
	return BBox{
		MinLat: math.Min(b.MinLat, p.lat),
		MaxLat: math.Max(b.MaxLat, p.lat),
		MinLon: math.Min(b.MinLon, p.lon),
		MaxLon: math.Max(b.MaxLon, p.lon),
	}
}

// IsFinite reports whether both components of p are finite numbers. Path
// geometry builders use this to detect corrupted output before falling back
// to a straight line.
func IsFinite(p Coordinate) bool {
	return !math.IsNaN(p.lat) && !math.IsInf(p.lat, 0) && !math.IsNaN(p.lon) && !math.IsInf(p.lon, 0)
}

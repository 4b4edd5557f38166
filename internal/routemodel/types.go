// Package routemodel holds the route-level (derived, ephemeral) types:
// segments, routes, distance/price models, and visualization metadata
// (§3 "Segment", "Route", "Distance model", "Price model",
// "Visualization metadata"). Routes are created per request, owned by the
// caller, and reference catalog entities only by identifier.
package routemodel

import (
	"fmt"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/seasonality"
)

// DistanceCalcMethod is a closed sum of how a segment's distance was derived.
type DistanceCalcMethod string

const (
	DistanceHaversine      DistanceCalcMethod = "haversine"
	DistanceRoutingService DistanceCalcMethod = "routing-service"
	DistanceRiverPath      DistanceCalcMethod = "river-path"
	DistanceRailPath       DistanceCalcMethod = "rail-path"
	DistanceManual         DistanceCalcMethod = "manual"
)

// DistanceModel is a per-segment distance with a per-mode breakdown (§3/§4.4).
type DistanceModel struct {
	ValueKM   float64                  `json:"value_km"`
	Method    DistanceCalcMethod       `json:"method"`
	Breakdown map[catalog.Mode]float64 `json:"breakdown"`
	Display   string                   `json:"display"`
}

// RenderDisplay fills Display with an integer-km rendition.
func (d *DistanceModel) RenderDisplay() {
	d.Display = fmt.Sprintf("%d km", int(d.ValueKM+0.5))
}

// PriceAdditional is the set of additional price components (§3).
type PriceAdditional struct {
	Taxi     float64 `json:"taxi,omitempty"`
	Transfer float64 `json:"transfer,omitempty"`
	Baggage  float64 `json:"baggage,omitempty"`
	Fees     float64 `json:"fees,omitempty"`
}

func (a PriceAdditional) sum() float64 {
	return a.Taxi + a.Transfer + a.Baggage + a.Fees
}

// PriceModel is a per-segment or per-route price (§3/§4.5). Currency is
// always RUB. Negative components are not rejected; they propagate into
// Total, per the documented caveat in §3.
type PriceModel struct {
	Base       float64         `json:"base"`
	Additional PriceAdditional `json:"additional"`
	Total      float64         `json:"total"`
	Currency   string          `json:"currency"`
	Display    string          `json:"display"`
}

// NewPriceModel computes Total and renders Display, showing only non-zero
// components.
func NewPriceModel(base float64, additional PriceAdditional) PriceModel {
	p := PriceModel{Base: base, Additional: additional, Currency: "RUB"}
	p.Total = p.Base + p.Additional.sum()
	p.RenderDisplay()
	return p
}

// RenderDisplay auto-derives Display from the non-zero components.
func (p *PriceModel) RenderDisplay() {
	s := fmt.Sprintf("%.0f RUB", p.Base)
	if p.Additional.Taxi != 0 {
		s += fmt.Sprintf(" + %.0f taxi", p.Additional.Taxi)
	}
	if p.Additional.Transfer != 0 {
		s += fmt.Sprintf(" + %.0f transfer", p.Additional.Transfer)
	}
	if p.Additional.Baggage != 0 {
		s += fmt.Sprintf(" + %.0f baggage", p.Additional.Baggage)
	}
	if p.Additional.Fees != 0 {
		s += fmt.Sprintf(" + %.0f fees", p.Additional.Fees)
	}
	s += fmt.Sprintf(" = %.0f RUB", p.Total)
	p.Display = s
}

// Duration is always in minutes in this model (§9 "Numbers and display").
type Duration struct {
	ValueMin int    `json:"value_min"`
	Unit     string `json:"unit"`
	Display  string `json:"display"`
}

// NewDuration builds a Duration, rendering Display as "Hh Mm" or "Mm".
func NewDuration(minutes int) Duration {
	d := Duration{ValueMin: minutes, Unit: "minutes"}
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		d.Display = fmt.Sprintf("%dh %dm", h, m)
	} else {
		d.Display = fmt.Sprintf("%dm", m)
	}
	return d
}

// PathGeometry is a mode-specific realistic polyline (§4.6).
type PathGeometry struct {
	Coordinates []geo.Coordinate `json:"coordinates"`
	Style       PolylineStyle    `json:"style"`
}

// PolylineStyle is a closed sum of rendering styles (§3).
type PolylineStyle string

const (
	StyleSolid  PolylineStyle = "solid"
	StyleDashed PolylineStyle = "dashed"
	StyleDotted PolylineStyle = "dotted"
	StyleWavy   PolylineStyle = "wavy"
)

// Segment is a realized traversal of a connection (§3).
type Segment struct {
	ID           string                  `json:"id"`
	Mode         catalog.Mode            `json:"mode"`
	FromStopID   string                  `json:"from_stop_id"`
	ToStopID     string                  `json:"to_stop_id"`
	FromCityID   string                  `json:"from_city_id"`
	ToCityID     string                  `json:"to_city_id"`
	Intermediate []string                `json:"intermediate,omitempty"` // intermediate stop identifiers, if any
	ViaHubs      []string                `json:"via_hubs,omitempty"`
	IsDirect     bool                    `json:"is_direct"`
	Distance     DistanceModel           `json:"distance"`
	Duration     Duration                `json:"duration"`
	Price        PriceModel              `json:"price"`
	Seasonality  seasonality.Seasonality `json:"seasonality"`
	Geometry     PathGeometry            `json:"geometry"`
	Metadata     map[string]string       `json:"metadata,omitempty"`
}

// Validate checks the §3 Segment invariants: stops differ; distance,
// duration, price are positive; geometry has at least two points (three if
// airplane with hubs present); direct segments carry no intermediates.
func (s Segment) Validate() error {
	if s.FromStopID == s.ToStopID {
		return fmt.Errorf("routemodel: segment %s: from and to stop are identical (%s)", s.ID, s.FromStopID)
	}
	if s.Distance.ValueKM <= 0 {
		return fmt.Errorf("routemodel: segment %s: distance must be positive, got %v", s.ID, s.Distance.ValueKM)
	}
	if s.Duration.ValueMin <= 0 {
		return fmt.Errorf("routemodel: segment %s: duration must be positive, got %v", s.ID, s.Duration.ValueMin)
	}
	if s.Price.Total <= 0 {
		return fmt.Errorf("routemodel: segment %s: price must be positive, got %v", s.ID, s.Price.Total)
	}
	if len(s.Geometry.Coordinates) < 2 {
		return fmt.Errorf("routemodel: segment %s: geometry must have >= 2 points, got %d", s.ID, len(s.Geometry.Coordinates))
	}
	if s.Mode == catalog.ModeAirplane && len(s.ViaHubs) > 0 && len(s.Geometry.Coordinates) < 3 {
		return fmt.Errorf("routemodel: segment %s: airplane segment with via-hubs must have >= 3 geometry points", s.ID)
	}
	if s.IsDirect && len(s.Intermediate) > 0 {
		return fmt.Errorf("routemodel: segment %s: direct segment carries intermediates", s.ID)
	}
	return nil
}

// MarkerIcon is a closed sum of visualization marker icons (§3).
type MarkerIcon string

const (
	IconAirport      MarkerIcon = "airport"
	IconTrainStation MarkerIcon = "train_station"
	IconBusStation   MarkerIcon = "bus_station"
	IconFerryPier    MarkerIcon = "ferry_pier"
	IconHub          MarkerIcon = "hub"
	IconTransfer     MarkerIcon = "transfer"
)

// MarkerType is a closed sum of marker roles.
type MarkerType string

const (
	MarkerStart        MarkerType = "start"
	MarkerEnd          MarkerType = "end"
	MarkerTransfer     MarkerType = "transfer"
	MarkerHub          MarkerType = "hub"
	MarkerIntermediate MarkerType = "intermediate"
)

// Marker is a labeled point on the route map.
type Marker struct {
	Coord geo.Coordinate `json:"coord"`
	Icon  MarkerIcon     `json:"icon"`
	Label string         `json:"label,omitempty"`
	Type  MarkerType     `json:"type"`
}

// Polyline is one rendered line of a route's visualization.
type Polyline struct {
	Coordinates []geo.Coordinate `json:"coordinates"`
	Color       string           `json:"color"`
	Weight      int              `json:"weight"`
	Style       PolylineStyle    `json:"style"`
	DashArray   string           `json:"dash_array,omitempty"` // optional, e.g. "10,5"
}

// Bounds is the map bounding box over every polyline point and marker.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Visualization bundles a route's rendering metadata (§3).
type Visualization struct {
	Polylines []Polyline `json:"polylines"`
	Markers   []Marker   `json:"markers"`
	Bounds    Bounds     `json:"bounds"`
}

// NewVisualization computes Bounds over polylines and markers. Rejects
// empty input per §3.
func NewVisualization(polylines []Polyline, markers []Marker) (Visualization, error) {
	if len(polylines) == 0 && len(markers) == 0 {
		return Visualization{}, fmt.Errorf("routemodel: visualization requires at least one polyline or marker")
	}
	v := Visualization{Polylines: polylines, Markers: markers}
	first := true
	extend := func(lat, lon float64) {
		if first {
			v.Bounds = Bounds{MinLat: lat, MaxLat: lat, MinLon: lon, MaxLon: lon}
			first = false
			return
		}
		if lat < v.Bounds.MinLat {
			v.Bounds.MinLat = lat
		}
		if lat > v.Bounds.MaxLat {
			v.Bounds.MaxLat = lat
		}
		if lon < v.Bounds.MinLon {
			v.Bounds.MinLon = lon
		}
		if lon > v.Bounds.MaxLon {
			v.Bounds.MaxLon = lon
		}
	}
	for _, pl := range polylines {
		for _, c := range pl.Coordinates {
			extend(c.Lat(), c.Lon())
		}
	}
	for _, m := range markers {
		extend(m.Coord.Lat(), m.Coord.Lon())
	}
	return v, nil
}

// Verdict is the validator's output embedded into a Route (§3/§4.15).
type Verdict struct {
	IsValid  bool      `json:"is_valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// FindingKind is a closed sum of validator finding types (§4.13/§4.14).
type FindingKind string

const (
	FindingEmptySpacePath      FindingKind = "empty_space_path"
	FindingUnrealisticRoute    FindingKind = "unrealistic_route"
	FindingDisconnected        FindingKind = "disconnected_segments"
	FindingInvalidIdentifier   FindingKind = "invalid_identifier"
	FindingDistanceMismatch    FindingKind = "distance_mismatch"
	FindingPriceMismatch       FindingKind = "price_mismatch"
	FindingPathMismatch        FindingKind = "path_mismatch"
	FindingHubMismatch         FindingKind = "hub_mismatch"
	FindingTransferMismatch    FindingKind = "transfer_mismatch"
	FindingSeasonalityMismatch FindingKind = "seasonality_mismatch"
)

// Correction is a suggested fix for a reality-check Finding (§4.14). Present
// only when Confidence >= 0.7.
type Correction struct {
	Type           string  `json:"type"`
	SuggestedValue string  `json:"suggested_value"`
	Confidence     float64 `json:"confidence"`
}

// Finding is one typed, severity-tagged validator observation (§4.13/§4.14,
// §9 "Validator as a pipeline").
type Finding struct {
	Kind       FindingKind       `json:"kind"`
	SegmentID  string            `json:"segment_id,omitempty"`
	Message    string            `json:"message"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Suggestion *Correction       `json:"suggestion,omitempty"`
}

// TotalDuration splits a route's duration into pure travel time and the
// 30-minute-per-transfer penalty (§3).
type TotalDuration struct {
	TravelMin   int `json:"travel_min"`
	TransferMin int `json:"transfer_min"`
	TotalMin    int `json:"total_min"`
}

// TotalPrice is the route-level price rollup (§3/§4.12).
type TotalPrice struct {
	Base       float64         `json:"base"`
	Additional PriceAdditional `json:"additional"`
	Total      float64         `json:"total"`
	Currency   string          `json:"currency"`
	Display    string          `json:"display"`
}

// Route is an ordered, contiguous chain of segments from origin to
// destination (§3).
type Route struct {
	ID            string        `json:"id"`
	FromCityID    string        `json:"from_city_id"`
	ToCityID      string        `json:"to_city_id"`
	Segments      []Segment     `json:"segments"`
	TotalDistance DistanceModel `json:"total_distance"`
	TotalDuration TotalDuration `json:"total_duration"`
	TotalPrice    TotalPrice    `json:"total_price"`
	Validation    Verdict       `json:"validation"`
	Visualization Visualization `json:"visualization"`
}

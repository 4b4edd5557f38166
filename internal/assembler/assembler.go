// Package assembler concatenates built segments into a validated Route
// (C12): totals (distance, duration with the per-transfer penalty, price),
// visualization metadata, and a final structural contiguity check (§4.12).
package assembler

import (
	"fmt"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/distance"
	"github.com/antigravity/sakha-transit/internal/price"
	"github.com/antigravity/sakha-transit/internal/routeerr"
	"github.com/antigravity/sakha-transit/internal/routemodel"
)

// TransferPenaltyMin is the fixed per-transfer time cost folded into a
// route's total duration (§3/§4.12).
const TransferPenaltyMin = 30

// modeColor is the polyline color assigned per mode for visualization (§4.12).
var modeColor = map[catalog.Mode]string{
	catalog.ModeAirplane:   "#2563eb",
	catalog.ModeTrain:      "#16a34a",
	catalog.ModeBus:        "#f59e0b",
	catalog.ModeFerry:      "#0891b2",
	catalog.ModeWinterRoad: "#64748b",
	catalog.ModeTaxi:       "#db2777",
}

func dashArray(style routemodel.PolylineStyle) string {
	switch style {
	case routemodel.StyleDashed:
		return "8,4"
	case routemodel.StyleDotted:
		return "10,5"
	case routemodel.StyleWavy:
		return "1,2"
	default:
		return ""
	}
}

// Assembler builds Routes from an ordered chain of segments. NewID supplies
// the route identifier when the caller doesn't assign one.
type Assembler struct {
	NewID func() string
}

// New constructs an Assembler.
func New(newID func() string) *Assembler {
	return &Assembler{NewID: newID}
}

// Assemble concatenates segs (already in traversal order) into a Route
// rooted at fromCityID and ending at toCityID. It rejects a non-contiguous
// chain (§3 "Contiguity") before computing totals and visualization.
func (a *Assembler) Assemble(fromCityID, toCityID string, segs []routemodel.Segment) (routemodel.Route, error) {
	if len(segs) == 0 {
		return routemodel.Route{}, routeerr.Wrap(routeerr.ErrInvalidRoute, "assembler: route has no segments")
	}
	if segs[0].FromCityID != fromCityID {
		return routemodel.Route{}, routeerr.Wrap(routeerr.ErrInvalidRoute,
			"assembler: first segment departs %q, expected %q", segs[0].FromCityID, fromCityID)
	}
	if segs[len(segs)-1].ToCityID != toCityID {
		return routemodel.Route{}, routeerr.Wrap(routeerr.ErrInvalidRoute,
			"assembler: last segment arrives %q, expected %q", segs[len(segs)-1].ToCityID, toCityID)
	}
	for i := 1; i < len(segs); i++ {
		if segs[i-1].ToCityID != segs[i].FromCityID {
			return routemodel.Route{}, routeerr.Wrap(routeerr.ErrInvalidRoute,
				"assembler: segment %d arrives at %q but segment %d departs from %q",
				i-1, segs[i-1].ToCityID, i, segs[i].FromCityID)
		}
	}

	id := fromCityID + "-" + toCityID
	if a.NewID != nil {
		id = a.NewID()
	}

	transferCount := len(segs) - 1

	distanceModels := make([]routemodel.DistanceModel, 0, len(segs))
	priceModels := make([]routemodel.PriceModel, 0, len(segs))
	travelMin := 0
	for _, seg := range segs {
		distanceModels = append(distanceModels, seg.Distance)
		priceModels = append(priceModels, seg.Price)
		travelMin += seg.Duration.ValueMin
	}

	totalDistance := distance.Merge(distanceModels)
	totalPrice := price.ForRoute(priceModels, transferCount)
	totalDuration := routemodel.TotalDuration{
		TravelMin:   travelMin,
		TransferMin: transferCount * TransferPenaltyMin,
		TotalMin:    travelMin + transferCount*TransferPenaltyMin,
	}

	viz, err := buildVisualization(segs)
	if err != nil {
		return routemodel.Route{}, fmt.Errorf("assembler: %w", err)
	}

	return routemodel.Route{
		ID:            id,
		FromCityID:    fromCityID,
		ToCityID:      toCityID,
		Segments:      segs,
		TotalDistance: totalDistance,
		TotalDuration: totalDuration,
		TotalPrice:    totalPrice,
		Visualization: viz,
	}, nil
}

func buildVisualization(segs []routemodel.Segment) (routemodel.Visualization, error) {
	polylines := make([]routemodel.Polyline, 0, len(segs))
	markers := make([]routemodel.Marker, 0, len(segs)+1)

	for i, seg := range segs {
		polylines = append(polylines, routemodel.Polyline{
			Coordinates: seg.Geometry.Coordinates,
			Color:       modeColor[seg.Mode],
			Weight:      3,
			Style:       seg.Geometry.Style,
			DashArray:   dashArray(seg.Geometry.Style),
		})

		start := seg.Geometry.Coordinates[0]
		if i == 0 {
			markers = append(markers, routemodel.Marker{Coord: start, Icon: iconForMode(seg.Mode), Label: seg.FromStopID, Type: routemodel.MarkerStart})
		} else {
			markers = append(markers, routemodel.Marker{Coord: start, Icon: iconForMode(seg.Mode), Label: seg.FromStopID, Type: routemodel.MarkerTransfer})
		}
	}

	last := segs[len(segs)-1]
	end := last.Geometry.Coordinates[len(last.Geometry.Coordinates)-1]
	markers = append(markers, routemodel.Marker{Coord: end, Icon: iconForMode(last.Mode), Label: last.ToStopID, Type: routemodel.MarkerEnd})

	return routemodel.NewVisualization(polylines, markers)
}

func iconForMode(mode catalog.Mode) routemodel.MarkerIcon {
	switch mode {
	case catalog.ModeAirplane:
		return routemodel.IconAirport
	case catalog.ModeTrain:
		return routemodel.IconTrainStation
	case catalog.ModeBus:
		return routemodel.IconBusStation
	case catalog.ModeFerry:
		return routemodel.IconFerryPier
	default:
		return routemodel.IconTransfer
	}
}

// Package segment builds a single realized routemodel.Segment from a
// catalog connection (C11): stops, distance (C4),
// duration, price (C5), seasonality, and geometry (C6), validated before
// being handed back to the caller (§4.11).
package segment

import (
	"context"
	"fmt"
	"time"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/distance"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/pathgeo"
	"github.com/antigravity/sakha-transit/internal/price"
	"github.com/antigravity/sakha-transit/internal/routeerr"
	"github.com/antigravity/sakha-transit/internal/routemodel"
	"github.com/antigravity/sakha-transit/internal/routingclient"
	"github.com/antigravity/sakha-transit/internal/seasonality"
)

// stopTypeForMode is the boarding-location kind each mode uses, for picking
// a city's representative stop when a connection doesn't name one directly.
var stopTypeForMode = map[catalog.Mode]catalog.StopType{
	catalog.ModeAirplane:   catalog.StopAirport,
	catalog.ModeTrain:      catalog.StopTrainStation,
	catalog.ModeBus:        catalog.StopBusStation,
	catalog.ModeFerry:      catalog.StopFerryPier,
	catalog.ModeWinterRoad: catalog.StopWinterRoadPoint,
	catalog.ModeTaxi:       catalog.StopTaxiStand,
}

// distanceMethodForMode picks the DistanceModel tag for a catalog-declared
// connection distance (§4.4): ferries follow a river course, trains a rail
// corridor, everything else is a manually declared figure.
func distanceMethodForMode(mode catalog.Mode) routemodel.DistanceCalcMethod {
	switch mode {
	case catalog.ModeFerry:
		return routemodel.DistanceRiverPath
	case catalog.ModeTrain:
		return routemodel.DistanceRailPath
	default:
		return routemodel.DistanceManual
	}
}

// Builder materializes segments against a fixed catalog and an optional
// routing-service client for road geometry (§4.6/§4.11).
type Builder struct {
	Catalog       *catalog.Catalog
	RoutingClient *routingclient.Client
	NewID         func() string
}

// New constructs a Builder. newID supplies segment identifiers; pass nil to
// leave Segment.ID empty for the caller to assign.
func New(cat *catalog.Catalog, client *routingclient.Client, newID func() string) *Builder {
	return &Builder{Catalog: cat, RoutingClient: client, NewID: newID}
}

func (b *Builder) id() string {
	if b.NewID == nil {
		return ""
	}
	return b.NewID()
}

func (b *Builder) stopFor(cityID string, mode catalog.Mode) (catalog.Stop, bool) {
	want := stopTypeForMode[mode]
	for _, stop := range b.Catalog.GetStopsByCity(cityID) {
		if stop.Type == want {
			return stop, true
		}
	}
	return catalog.Stop{}, false
}

// FromConnection builds a Segment realizing conn, geometry included. ctx
// bounds any routing-service call the road-mode geometry builder makes;
// date is the travel date the segment's seasonality is evaluated against.
func (b *Builder) FromConnection(ctx context.Context, conn catalog.Connection, date time.Time) (routemodel.Segment, error) {
	fromCity, ok := b.Catalog.GetCity(conn.FromCityID)
	if !ok {
		return routemodel.Segment{}, routeerr.Wrap(routeerr.ErrUnknownCity, "segment: unknown city %q", conn.FromCityID)
	}
	toCity, ok := b.Catalog.GetCity(conn.ToCityID)
	if !ok {
		return routemodel.Segment{}, routeerr.Wrap(routeerr.ErrUnknownCity, "segment: unknown city %q", conn.ToCityID)
	}

	fromStop, hasFromStop := b.stopFor(conn.FromCityID, conn.Mode)
	toStop, hasToStop := b.stopFor(conn.ToCityID, conn.Mode)
	fromStopID, toStopID := fromStop.ID, toStop.ID
	if !hasFromStop {
		fromStopID = conn.FromCityID
	}
	if !hasToStop {
		toStopID = conn.ToCityID
	}

	distanceModel := distance.FromValue(conn.DistanceKM, distanceMethodForMode(conn.Mode), conn.Mode)

	durationMin := conn.DurationMin
	if durationMin <= 0 {
		if speed, ok := catalog.ModeSpeedKMH[conn.Mode]; ok && speed > 0 {
			durationMin = int(conn.DistanceKM / speed * 60.0)
			if durationMin <= 0 {
				durationMin = 1
			}
		}
	}
	duration := routemodel.NewDuration(durationMin)

	base := conn.BasePriceRUB
	if base <= 0 {
		base = price.Base(conn.Mode, conn.DistanceKM)
	}
	taxi := price.TaxiSurcharge(conn.Mode, fromCity.IsKeyCity)
	priceModel := routemodel.NewPriceModel(base, routemodel.PriceAdditional{Taxi: taxi})

	seasonalityModel := seasonality.CreateSeasonality(conn.DeclaredSeason, conn.Period, date)

	geometry, err := b.buildGeometry(ctx, conn, fromCity, toCity)
	if err != nil {
		return routemodel.Segment{}, err
	}

	seg := routemodel.Segment{
		ID:           b.id(),
		Mode:         conn.Mode,
		FromStopID:   fromStopID,
		ToStopID:     toStopID,
		FromCityID:   conn.FromCityID,
		ToCityID:     conn.ToCityID,
		Intermediate: conn.Intermediate,
		ViaHubs:      conn.ViaHubs,
		IsDirect:     conn.IsDirect,
		Distance:     distanceModel,
		Duration:     duration,
		Price:        priceModel,
		Seasonality:  seasonalityModel,
		Geometry:     geometry,
		Metadata:     map[string]string{"connection_id": conn.ID, "carrier": conn.Carrier},
	}

	if err := seg.Validate(); err != nil {
		return routemodel.Segment{}, routeerr.Wrap(routeerr.ErrInvalidSegment, "%v", err)
	}
	return seg, nil
}

// Degenerate builds the trivial zero-distance segment used when a search's
// origin and destination are the same city (§9 Open Question: identical
// from/to returns a degenerate single-segment route rather than null). It
// deliberately bypasses Segment.Validate, whose "stops differ"/"distance
// positive" invariants assume a real traversal.
func (b *Builder) Degenerate(cityID string) routemodel.Segment {
	city, _ := b.Catalog.GetCity(cityID)
	return routemodel.Segment{
		ID:         b.id(),
		Mode:       catalog.ModeTaxi,
		FromStopID: cityID,
		ToStopID:   cityID,
		FromCityID: cityID,
		ToCityID:   cityID,
		IsDirect:   true,
		Distance:   distance.FromValue(0, routemodel.DistanceManual, catalog.ModeTaxi),
		Duration:   routemodel.NewDuration(0),
		Price:      routemodel.NewPriceModel(0, routemodel.PriceAdditional{}),
		Geometry:   routemodel.PathGeometry{Coordinates: []geo.Coordinate{city.Centroid, city.Centroid}, Style: routemodel.StyleSolid},
		Metadata:   map[string]string{"degenerate": "true"},
	}
}

func (b *Builder) buildGeometry(ctx context.Context, conn catalog.Connection, fromCity, toCity catalog.City) (routemodel.PathGeometry, error) {
	var result pathgeo.BuildResult

	switch conn.Mode {
	case catalog.ModeAirplane:
		viaHubCoords := make([]geo.Coordinate, 0, len(conn.ViaHubs))
		for _, hubID := range conn.ViaHubs {
			if hub, ok := b.Catalog.GetHub(hubID); ok {
				viaHubCoords = append(viaHubCoords, hub.Coord)
			}
		}
		result = pathgeo.BuildAirplane(fromCity.Centroid, toCity.Centroid, viaHubCoords)
	case catalog.ModeFerry:
		result = pathgeo.BuildFerry(fromCity.Centroid, toCity.Centroid, conn.River, conn.IntermediateRaw)
	case catalog.ModeTrain:
		result = pathgeo.BuildTrain(fromCity.Centroid, toCity.Centroid, conn.IntermediateRaw)
	case catalog.ModeWinterRoad:
		result = pathgeo.BuildWinterRoad(fromCity.Centroid, toCity.Centroid, conn.IntermediateRaw)
	case catalog.ModeBus, catalog.ModeTaxi:
		result = pathgeo.BuildRoad(ctx, b.RoutingClient, fromCity.Centroid, toCity.Centroid, conn.Mode)
	default:
		return routemodel.PathGeometry{}, fmt.Errorf("segment: unhandled mode %q", conn.Mode)
	}

	return result.Geometry, nil
}

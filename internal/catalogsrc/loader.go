// Package catalogsrc loads the immutable catalog (C2) from Postgres,
// mirroring the teacher's routing.Loader: a pgxpool.Pool, plain
// log.Println/log.Printf progress lines, and straight Query/Scan rather
// than an ORM.
package catalogsrc

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/seasonality"
)

// Loader builds a catalog.Catalog from the sakha_transit schema.
type Loader struct {
	db *pgxpool.Pool
}

// NewLoader constructs a Loader bound to an open pool.
func NewLoader(db *pgxpool.Pool) *Loader {
	return &Loader{db: db}
}

// Load reads cities, stops, hubs and connections and builds an immutable
// catalog.Catalog (§3 "built once at startup").
func (l *Loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	log.Println("catalogsrc: loading catalog from database...")
	start := time.Now()

	cities, err := l.loadCities(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("catalogsrc: loaded %d cities", len(cities))

	stops, err := l.loadStops(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("catalogsrc: loaded %d stops", len(stops))

	hubs, err := l.loadHubs(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("catalogsrc: loaded %d hubs", len(hubs))

	connections, err := l.loadConnections(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("catalogsrc: loaded %d connections", len(connections))

	cat, err := catalog.Build(catalog.BuildInput{
		Cities:      cities,
		Stops:       stops,
		Hubs:        hubs,
		Connections: connections,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("catalogsrc: catalog ready in %s (%d connections rejected)", time.Since(start), len(cat.Rejected))
	return cat, nil
}

func (l *Loader) loadCities(ctx context.Context) ([]catalog.City, error) {
	rows, err := l.db.Query(ctx, `
		SELECT id, name, synonyms, subject, rayon, settlement,
		       centroid_lat, centroid_lon, timezone, population,
		       is_key_city, is_hub, hub_level,
		       has_airport, airport_class, has_train_station, has_bus_station,
		       has_ferry_pier, has_winter_road
		FROM cities`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.City
	for rows.Next() {
		var c catalog.City
		var lat, lon float64
		var hubLevel, airportClass string
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Synonyms, &c.Admin.Subject, &c.Admin.Rayon, &c.Admin.Settlement,
			&lat, &lon, &c.Timezone, &c.Population,
			&c.IsKeyCity, &c.IsHub, &hubLevel,
			&c.Infra.HasAirport, &airportClass, &c.Infra.HasTrainStation, &c.Infra.HasBusStation,
			&c.Infra.HasFerryPier, &c.Infra.HasWinterRoad,
		); err != nil {
			return nil, err
		}
		coord, err := geo.NewCoordinate(lat, lon)
		if err != nil {
			return nil, err
		}
		c.Centroid = coord
		c.HubLevel = catalog.HubLevel(hubLevel)
		c.Infra.AirportClass = catalog.AirportClass(airportClass)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (l *Loader) loadStops(ctx context.Context) ([]catalog.Stop, error) {
	rows, err := l.db.Query(ctx, `
		SELECT id, name, type, lat, lon, city_id, is_hub, hub_level, code FROM stops`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Stop
	for rows.Next() {
		var s catalog.Stop
		var lat, lon float64
		var stopType, hubLevel string
		if err := rows.Scan(&s.ID, &s.Name, &stopType, &lat, &lon, &s.CityID, &s.IsHub, &hubLevel, &s.Code); err != nil {
			return nil, err
		}
		coord, err := geo.NewCoordinate(lat, lon)
		if err != nil {
			return nil, err
		}
		s.Coord = coord
		s.Type = catalog.StopType(stopType)
		s.HubLevel = catalog.HubLevel(hubLevel)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (l *Loader) loadHubs(ctx context.Context) ([]catalog.Hub, error) {
	rows, err := l.db.Query(ctx, `
		SELECT id, city_id, name, level, lat, lon, airport_code, schedule_kind FROM hubs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Hub
	for rows.Next() {
		var h catalog.Hub
		var lat, lon float64
		var level, scheduleKind string
		if err := rows.Scan(&h.ID, &h.CityID, &h.Name, &level, &lat, &lon, &h.AirportCode, &scheduleKind); err != nil {
			return nil, err
		}
		coord, err := geo.NewCoordinate(lat, lon)
		if err != nil {
			return nil, err
		}
		h.Coord = coord
		h.Level = catalog.HubLevel(level)
		h.Schedule = catalog.HubSchedule{Kind: scheduleKind}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (l *Loader) loadConnections(ctx context.Context) ([]catalog.Connection, error) {
	rows, err := l.db.Query(ctx, `
		SELECT id, mode, from_city_id, to_city_id, distance_km, duration_min,
		       base_price_rub, declared_season, is_direct, carrier, route_meta, river
		FROM connections`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Connection
	for rows.Next() {
		var c catalog.Connection
		var mode, season string
		if err := rows.Scan(
			&c.ID, &mode, &c.FromCityID, &c.ToCityID, &c.DistanceKM, &c.DurationMin,
			&c.BasePriceRUB, &season, &c.IsDirect, &c.Carrier, &c.RouteMeta, &c.River,
		); err != nil {
			return nil, err
		}
		c.Mode = catalog.Mode(mode)
		c.DeclaredSeason = seasonality.Season(season)
		out = append(out, c)
	}
	return out, rows.Err()
}

package catalog

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/antigravity/sakha-transit/internal/geo"
)

// RejectedConnection is a diagnostic record for a connection dropped at
// load time (§4.2 "a compact reason is recorded for diagnostics").
type RejectedConnection struct {
	Connection Connection
	Reason     string
}

// Catalog is the immutable, in-memory city/hub/stop/connection table set,
// built once at startup (§3 "Lifecycle and ownership"). All lookups are
// read-only; there is no mutation after Build/Load returns.
type Catalog struct {
	cities      map[string]City
	stops       map[string]Stop
	hubs        map[string]Hub
	connections []Connection

	stopsByCity map[string][]string
	stopsByType map[StopType][]string

	connByFromTo map[[2]string][]int // (from,to) -> indices into connections
	connByFrom   map[string][]int
	connByTo     map[string][]int

	cityOrder []string // declaration order, for deterministic iteration

	Rejected []RejectedConnection
}

// BuildInput groups the raw tables a Catalog is built from.
type BuildInput struct {
	Cities      []City
	Stops       []Stop
	Hubs        []Hub
	Connections []Connection
}

// Build constructs an immutable Catalog from raw tables, indexing lookups
// and rejecting connections that fail the realism rules of §4.2. Duplicate
// identifiers within a kind are a construction error.
func Build(in BuildInput) (*Catalog, error) {
	c := &Catalog{
		cities:       make(map[string]City, len(in.Cities)),
		stops:        make(map[string]Stop, len(in.Stops)),
		hubs:         make(map[string]Hub, len(in.Hubs)),
		stopsByCity:  make(map[string][]string),
		stopsByType:  make(map[StopType][]string),
		connByFromTo: make(map[[2]string][]int),
		connByFrom:   make(map[string][]int),
		connByTo:     make(map[string][]int),
	}

	for _, city := range in.Cities {
		if _, dup := c.cities[city.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate city id %q", city.ID)
		}
		city.NormalizedName = strings.ToLower(city.Name)
		c.cities[city.ID] = city
		c.cityOrder = append(c.cityOrder, city.ID)
	}

	for _, stop := range in.Stops {
		if _, dup := c.stops[stop.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate stop id %q", stop.ID)
		}
		c.stops[stop.ID] = stop
		c.stopsByCity[stop.CityID] = append(c.stopsByCity[stop.CityID], stop.ID)
		c.stopsByType[stop.Type] = append(c.stopsByType[stop.Type], stop.ID)
	}

	for _, hub := range in.Hubs {
		if _, dup := c.hubs[hub.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate hub id %q", hub.ID)
		}
		c.hubs[hub.ID] = hub
	}

	for _, conn := range in.Connections {
		if reason := c.validateConnection(conn); reason != "" {
			c.Rejected = append(c.Rejected, RejectedConnection{Connection: conn, Reason: reason})
			log.Printf("catalog: rejected connection %s (%s -> %s, mode=%s): %s",
				conn.ID, conn.FromCityID, conn.ToCityID, conn.Mode, reason)
			continue
		}
		idx := len(c.connections)
		c.connections = append(c.connections, conn)
		key := [2]string{conn.FromCityID, conn.ToCityID}
		c.connByFromTo[key] = append(c.connByFromTo[key], idx)
		c.connByFrom[conn.FromCityID] = append(c.connByFrom[conn.FromCityID], idx)
		c.connByTo[conn.ToCityID] = append(c.connByTo[conn.ToCityID], idx)
	}

	return c, nil
}

// validateConnection returns a non-empty rejection reason if conn violates
// the load-time realism rules of §4.2, else "".
func (c *Catalog) validateConnection(conn Connection) string {
	if conn.DistanceKM <= 0 {
		return fmt.Sprintf("distance %.1fkm is not positive", conn.DistanceKM)
	}
	if conn.DurationMin <= 0 {
		return fmt.Sprintf("duration %dmin is not positive", conn.DurationMin)
	}
	if conn.BasePriceRUB <= 0 {
		return fmt.Sprintf("base price %.1f is not positive", conn.BasePriceRUB)
	}

	hours := float64(conn.DurationMin) / 60.0
	impliedSpeed := conn.DistanceKM / hours

	if ceiling, ok := SpeedCeilingKMH[conn.Mode]; ok {
		if impliedSpeed > ceiling {
			return fmt.Sprintf("implied speed %.1f km/h exceeds %s ceiling %.1f", impliedSpeed, conn.Mode, ceiling)
		}
	}

	if conn.Mode == ModeBus && conn.DistanceKM > 1500 {
		return fmt.Sprintf("bus distance %.1fkm exceeds 1500km cap", conn.DistanceKM)
	}

	if conn.Mode == ModeAirplane && conn.DistanceKM > 500 {
		fromHub, _ := c.hubAirport(conn.FromCityID)
		toHub, _ := c.hubAirport(conn.ToCityID)
		if !fromHub && !toHub {
			return fmt.Sprintf("direct airplane %.1fkm between two non-hub airports exceeds 500km", conn.DistanceKM)
		}
	}

	return ""
}

// hubAirport reports whether cityID is a hub city, for the direct-flight
// realism check above. The city's airport itself is not looked up.
func (c *Catalog) hubAirport(cityID string) (isHub bool, ok bool) {
	city, exists := c.cities[cityID]
	if !exists {
		return false, false
	}
	return city.IsHub, exists
}

// GetCity looks up a city by identifier.
func (c *Catalog) GetCity(id string) (City, bool) {
	city, ok := c.cities[id]
	return city, ok
}

// GetStop looks up a stop by identifier.
func (c *Catalog) GetStop(id string) (Stop, bool) {
	stop, ok := c.stops[id]
	return stop, ok
}

// GetHub looks up a hub by identifier.
func (c *Catalog) GetHub(id string) (Hub, bool) {
	hub, ok := c.hubs[id]
	return hub, ok
}

// GetStopsByCity returns the stops owned by a city, in declaration order.
func (c *Catalog) GetStopsByCity(cityID string) []Stop {
	ids := c.stopsByCity[cityID]
	out := make([]Stop, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.stops[id])
	}
	return out
}

// GetStopsByType returns every stop of the given type, in declaration order.
func (c *Catalog) GetStopsByType(t StopType) []Stop {
	ids := c.stopsByType[t]
	out := make([]Stop, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.stops[id])
	}
	return out
}

// GetConnectionsBetween returns the (validated, indexed) connections from
// fromID to toID, optionally filtered by mode.
func (c *Catalog) GetConnectionsBetween(fromID, toID string, mode *Mode) []Connection {
	idxs := c.connByFromTo[[2]string{fromID, toID}]
	out := make([]Connection, 0, len(idxs))
	for _, i := range idxs {
		conn := c.connections[i]
		if mode != nil && conn.Mode != *mode {
			continue
		}
		out = append(out, conn)
	}
	return out
}

// GetConnectionsFrom returns every connection departing cityID.
func (c *Catalog) GetConnectionsFrom(cityID string) []Connection {
	idxs := c.connByFrom[cityID]
	out := make([]Connection, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, c.connections[i])
	}
	return out
}

// GetConnectionsTo returns every connection arriving at cityID.
func (c *Catalog) GetConnectionsTo(cityID string) []Connection {
	idxs := c.connByTo[cityID]
	out := make([]Connection, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, c.connections[i])
	}
	return out
}

// AllCityIDs returns every city identifier in declaration order, the basis
// for deterministic BFS iteration (§5 "Ordering").
func (c *Catalog) AllCityIDs() []string {
	out := make([]string, len(c.cityOrder))
	copy(out, c.cityOrder)
	return out
}

// NearestRegionalHub returns the regional hub closest (by haversine) to
// cityID's centroid, or false if no hub exists.
func (c *Catalog) NearestRegionalHub(cityID string) (Hub, bool) {
	city, ok := c.cities[cityID]
	if !ok {
		return Hub{}, false
	}
	return c.nearestHubOfLevel(city, HubRegional)
}

// NearestFederalHub returns the federal hub closest to cityID's centroid.
func (c *Catalog) NearestFederalHub(cityID string) (Hub, bool) {
	city, ok := c.cities[cityID]
	if !ok {
		return Hub{}, false
	}
	return c.nearestHubOfLevel(city, HubFederal)
}

func (c *Catalog) nearestHubOfLevel(city City, level HubLevel) (Hub, bool) {
	var best Hub
	var bestDist float64
	found := false

	ids := make([]string, 0, len(c.hubs))
	for id := range c.hubs {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic tie-break on equal distance

	for _, id := range ids {
		hub := c.hubs[id]
		if hub.Level != level {
			continue
		}
		d := geo.DistanceKM(city.Centroid, hub.Coord)
		if !found || d < bestDist {
			best, bestDist, found = hub, d, true
		}
	}
	return best, found
}

// Package catalog holds the immutable, in-memory city/hub/stop/connection
// tables (C2) built once at startup, plus the closed-sum tags (mode, stop
// type, hub level, airport class) that the rest of the core switches on
// exhaustively (spec §9 "mode and season as closed sums").
package catalog

import (
	"regexp"

	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/seasonality"
)

// Mode is a closed sum of the transport modes the planner reasons about.
type Mode string

const (
	ModeAirplane   Mode = "airplane"
	ModeTrain      Mode = "train"
	ModeBus        Mode = "bus"
	ModeFerry      Mode = "ferry"
	ModeWinterRoad Mode = "winter_road"
	ModeTaxi       Mode = "taxi"
)

// Modes is the fixed priority order strategies iterate in, per spec §4.10/§5.
var Modes = []Mode{ModeBus, ModeTrain, ModeFerry, ModeWinterRoad, ModeAirplane}

// SpeedCeilingKMH is the plausible-speed band per mode used by catalog load
// validation (§4.2). Airplane has no ceiling here: its realism bound is the
// hub/distance rule in validateConnection, not a speed cap.
var SpeedCeilingKMH = map[Mode]float64{
	ModeBus:        100,
	ModeTrain:      140,
	ModeFerry:      60,
	ModeWinterRoad: 70,
	ModeTaxi:       110,
}

// ModeSpeedKMH is the assumed cruise speed used to derive duration from
// distance when a connection does not declare one (§4.11).
var ModeSpeedKMH = map[Mode]float64{
	ModeAirplane:   800,
	ModeTrain:      80,
	ModeBus:        60,
	ModeFerry:      30,
	ModeWinterRoad: 50,
	ModeTaxi:       40,
}

// RatePerKM is the per-mode base tariff in RUB/km (§4.5).
var RatePerKM = map[Mode]float64{
	ModeAirplane:   5.0,
	ModeTrain:      1.5,
	ModeBus:        4.0,
	ModeFerry:      6.0,
	ModeWinterRoad: 7.5,
	ModeTaxi:       15.0,
}

// StopType is a closed sum of boarding-location kinds.
type StopType string

const (
	StopAirport          StopType = "airport"
	StopTrainStation      StopType = "train_station"
	StopBusStation        StopType = "bus_station"
	StopFerryPier         StopType = "ferry_pier"
	StopWinterRoadPoint   StopType = "winter_road_point"
	StopTaxiStand         StopType = "taxi_stand"
)

// HubLevel is a closed sum of transfer-concentration tiers.
type HubLevel string

const (
	HubFederal  HubLevel = "federal"
	HubRegional HubLevel = "regional"
)

// AirportClass is a closed sum of runway/traffic classes, A being the
// largest.
type AirportClass string

const (
	AirportA AirportClass = "A"
	AirportB AirportClass = "B"
	AirportC AirportClass = "C"
	AirportD AirportClass = "D"
)

// identifierPattern is the shared `[a-z0-9_-]+` identifier grammar for
// cities, stops, hubs and connections.
var identifierPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidIdentifier reports whether id is a legal catalog identifier: matches
// `[a-z0-9_-]+` and is 1..50 characters.
func ValidIdentifier(id string) bool {
	return len(id) >= 1 && len(id) <= 50 && identifierPattern.MatchString(id)
}

// AdminNames is the four formatted renditions of a city's administrative
// structure (§3).
type AdminNames struct {
	Full        string `json:"full"`         // e.g. "Verkhoyansk, Verkhoyansky rayon, Sakha Republic"
	WithContext string `json:"with_context"` // e.g. "Verkhoyansk (Sakha Republic)"
	Medium      string `json:"medium"`       // e.g. "Verkhoyansk, Sakha Republic"
	Short       string `json:"short"`        // e.g. "Verkhoyansk"
}

// Administrative is the subject/rayon/settlement structure of a city.
type Administrative struct {
	Subject    string     `json:"subject"`
	Rayon      string     `json:"rayon,omitempty"` // optional, may be empty
	Settlement string     `json:"settlement"`
	Names      AdminNames `json:"names"`
}

// Infrastructure records which stop kinds a city physically has.
type Infrastructure struct {
	HasAirport      bool         `json:"has_airport"`
	AirportClass    AirportClass `json:"airport_class,omitempty"` // required iff HasAirport
	HasTrainStation bool         `json:"has_train_station"`
	HasBusStation   bool         `json:"has_bus_station"`
	HasFerryPier    bool         `json:"has_ferry_pier"`
	HasWinterRoad   bool         `json:"has_winter_road"`
}

// City is a populated place: an origin, destination, or intermediate node.
type City struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	NormalizedName string         `json:"normalized_name,omitempty"` // lowercased Name
	Synonyms       []string       `json:"synonyms,omitempty"`
	Admin          Administrative `json:"admin"`
	Centroid       geo.Coordinate `json:"centroid"`
	Timezone       string         `json:"timezone"`
	Population     int            `json:"population"`
	IsKeyCity      bool           `json:"is_key_city"`
	IsHub          bool           `json:"is_hub"`
	HubLevel       HubLevel       `json:"hub_level,omitempty"` // required iff IsHub
	Infra          Infrastructure `json:"infra"`
	Stops          []string       `json:"stops,omitempty"` // owned stop identifiers
}

// Stop is a specific boarding location within a city.
type Stop struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     StopType       `json:"type"`
	Coord    geo.Coordinate `json:"coord"`
	CityID   string         `json:"city_id"`
	IsHub    bool           `json:"is_hub"`
	HubLevel HubLevel       `json:"hub_level,omitempty"` // required together with IsHub
	Code     string         `json:"code,omitempty"`      // advisory: airport/station code, pier name
}

// HubConnections groups a hub's peer identifiers by peer level.
type HubConnections struct {
	Federal  []string `json:"federal,omitempty"`
	Regional []string `json:"regional,omitempty"`
	Local    []string `json:"local,omitempty"`
}

// HubSchedule describes when a hub is open for transfers.
type HubSchedule struct {
	Kind     string              `json:"kind"`               // "daily", "weekly", "seasonal"
	Weekdays map[int]bool        `json:"weekdays,omitempty"` // 1..7, 7 = Sunday; used when Kind == "weekly"
	Period   *seasonality.Period `json:"period,omitempty"`   // used when Kind == "seasonal"
}

// Hub is a city designated for transfer concentration. A hub has its own
// identifier namespace, distinct from the city it sits in: CityID is the
// city-level identifier the rest of the core (connections, route search)
// keys lookups on.
type Hub struct {
	ID          string         `json:"id"`
	CityID      string         `json:"city_id"`
	Name        string         `json:"name"`
	Level       HubLevel       `json:"level"`
	Coord       geo.Coordinate `json:"coord"`
	AirportCode string         `json:"airport_code,omitempty"`
	Connections HubConnections `json:"connections"`
	Schedule    HubSchedule    `json:"schedule"`
}

// Connection is a declared, pre-validated city-level edge for one mode.
type Connection struct {
	ID              string              `json:"id"`
	Mode            Mode                `json:"mode"`
	FromCityID      string              `json:"from_city_id"`
	ToCityID        string              `json:"to_city_id"`
	DistanceKM      float64             `json:"distance_km"`
	DurationMin     int                 `json:"duration_min"`
	BasePriceRUB    float64             `json:"base_price_rub"`
	DeclaredSeason  seasonality.Season  `json:"declared_season"`
	Period          *seasonality.Period `json:"period,omitempty"`
	IsDirect        bool                `json:"is_direct"`
	Intermediate    []string            `json:"intermediate,omitempty"` // intermediate city identifiers, or raw coordinates below
	IntermediateRaw []geo.Coordinate    `json:"intermediate_raw,omitempty"`
	ViaHubs         []string            `json:"via_hubs,omitempty"`
	Carrier         string              `json:"carrier,omitempty"`
	RouteMeta       string              `json:"route_meta,omitempty"`
	River           string              `json:"river,omitempty"` // known river name for ferry connections, if any
}

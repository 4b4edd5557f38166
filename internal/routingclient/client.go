// Package routingclient is the external driving-path provider (C7): an
// OSRM-shaped HTTP client with a positive-only cache and a hard timeout,
// modeled on the request/response shape of the Valhalla and Google
// Directions clients in the example pack (typed structs, http.Client with a
// fixed Timeout, context-bounded calls) adapted to the OSRM contract spec
// §6 specifies.
package routingclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/routeerr"
)

// Profile is the routing profile requested from the service.
type Profile string

const (
	ProfileDriving Profile = "driving"
)

// DefaultTimeout is the hard cap on a single routing-service call (§4.7/§6).
const DefaultTimeout = 10 * time.Second

// DefaultTTL is the positive-cache lifetime for a successful lookup (§4.7).
const DefaultTTL = 24 * time.Hour

// Result is the client's normalized response: a GeoJSON-shaped line plus
// distance and duration.
type Result struct {
	Polyline   []geo.Coordinate
	DistanceM  float64
	DurationS  float64
}

// Client talks to an OSRM-compatible routing service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cache   Cache
	TTL     time.Duration
}

// New constructs a Client with DefaultTimeout and an in-memory cache with
// DefaultTTL. baseURL is the OSRM service root, e.g. "http://osrm:5000".
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: DefaultTimeout},
		Cache:   NewMemoryCache(),
		TTL:     DefaultTTL,
	}
}

// osrmResponse mirrors the body shape in spec §6.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Type        string      `json:"type"`
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
	Waypoints []any `json:"waypoints"`
}

func cacheKey(profile Profile, coords []geo.Coordinate, excludeFerry bool) string {
	var b strings.Builder
	b.WriteString(string(profile))
	if excludeFerry {
		b.WriteString("|exclude=ferry")
	}
	for _, c := range coords {
		fmt.Fprintf(&b, "|%.6f,%.6f", c.Lon(), c.Lat())
	}
	return b.String()
}

func coordsPath(coords []geo.Coordinate) string {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts, fmt.Sprintf("%.6f,%.6f", c.Lon(), c.Lat()))
	}
	return strings.Join(parts, ";")
}

// GetRoute requests a route from `from` to `to`, optionally via waypoints,
// for the given profile (§4.7/§6). On timeout, a non-OK upstream status, a
// malformed body, or an empty route list, it returns
// routeerr.ErrRoutingServiceUnavailable or routeerr.ErrNoRoute — the caller,
// never this client, decides whether to fall back to synthesized geometry.
func (c *Client) GetRoute(ctx context.Context, from, to geo.Coordinate, via []geo.Coordinate, profile Profile) (Result, error) {
	return c.getRoute(ctx, from, to, via, profile, false)
}

// GetRoutePreferFederal first requests a route excluding ferries and, if
// that fails, retries once without the exclusion — the "federal-roads
// preference" variant of §4.7.
func (c *Client) GetRoutePreferFederal(ctx context.Context, from, to geo.Coordinate, via []geo.Coordinate, profile Profile) (Result, error) {
	res, err := c.getRoute(ctx, from, to, via, profile, true)
	if err == nil {
		return res, nil
	}
	return c.getRoute(ctx, from, to, via, profile, false)
}

func (c *Client) getRoute(ctx context.Context, from, to geo.Coordinate, via []geo.Coordinate, profile Profile, excludeFerry bool) (Result, error) {
	coords := make([]geo.Coordinate, 0, len(via)+2)
	coords = append(coords, from)
	coords = append(coords, via...)
	coords = append(coords, to)

	key := cacheKey(profile, coords, excludeFerry)
	if c.Cache != nil {
		if cached, ok := c.Cache.Get(key); ok {
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&alternatives=false&steps=false&geometries=geojson",
		strings.TrimRight(c.BaseURL, "/"), profile, coordsPath(coords))
	if excludeFerry {
		url += "&exclude=ferry"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, routeerr.Wrap(routeerr.ErrRoutingServiceUnavailable, "routingclient: build request")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{}, routeerr.Wrap(routeerr.ErrRoutingServiceUnavailable, "routingclient: request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, routeerr.Wrap(routeerr.ErrRoutingServiceUnavailable, "routingclient: upstream status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, routeerr.Wrap(routeerr.ErrRoutingServiceUnavailable, "routingclient: malformed body: %v", err)
	}

	if body.Code != "Ok" || len(body.Routes) == 0 {
		return Result{}, routeerr.Wrap(routeerr.ErrNoRoute, "routingclient: code=%s routes=%d", body.Code, len(body.Routes))
	}

	route := body.Routes[0]
	line := make([]geo.Coordinate, 0, len(route.Geometry.Coordinates))
	for _, pair := range route.Geometry.Coordinates {
		coord, err := geo.FromGeoJSON(pair)
		if err != nil {
			return Result{}, routeerr.Wrap(routeerr.ErrRoutingServiceUnavailable, "routingclient: malformed geometry point: %v", err)
		}
		line = append(line, coord)
	}
	if len(line) == 0 {
		return Result{}, routeerr.Wrap(routeerr.ErrNoRoute, "routingclient: empty geometry")
	}

	result := Result{Polyline: line, DistanceM: route.Distance, DurationS: route.Duration}
	if c.Cache != nil {
		c.Cache.Set(key, result, c.TTL)
	}
	return result, nil
}

// Package search is the route search orchestrator (C10): a fixed waterfall
// of strategies — direct connection, hub-mediated flight, rail graph,
// single-mode BFS for ferries and winter roads, and a generic bounded
// multi-modal BFS — each producing zero or more candidate routes, deduped
// and sorted into a primary result plus alternatives (§4.10/§5).
package search

import (
	"context"
	"time"

	"github.com/antigravity/sakha-transit/internal/assembler"
	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/geo"
	"github.com/antigravity/sakha-transit/internal/hubs"
	"github.com/antigravity/sakha-transit/internal/pathgeo"
	"github.com/antigravity/sakha-transit/internal/railgraph"
	"github.com/antigravity/sakha-transit/internal/routeerr"
	"github.com/antigravity/sakha-transit/internal/routemodel"
	"github.com/antigravity/sakha-transit/internal/seasonality"
	"github.com/antigravity/sakha-transit/internal/segment"
	"github.com/antigravity/sakha-transit/internal/validate"
)

// Priority is the closed sum of alternative-sorting knobs (§4.10).
type Priority string

const (
	PriorityFastest         Priority = "fastest"
	PriorityCheapest        Priority = "cheapest"
	PriorityFewestTransfers Priority = "fewest_transfers"
)

// Options bounds and tunes a single search call. Zero-valued fields fall back
// to the §6 defaults in withDefaults.
type Options struct {
	MaxTransfers          int
	Priority              Priority
	MaxBFSIterations      int
	MaxBFSDepth           int
	MaxIntermediateCities int
}

// Searcher wires together every component the waterfall strategies need.
// Rail may be nil (no train graph built); Hubs may be nil (no airplane
// hub rules enforced, e.g. for a catalog with no airports).
type Searcher struct {
	Catalog   *catalog.Catalog
	Segments  *segment.Builder
	Assembler *assembler.Assembler
	Hubs      *hubs.Selector
	Rail      *railgraph.Graph
	Validator *validate.Validator
}

// New constructs a Searcher.
func New(cat *catalog.Catalog, segments *segment.Builder, asm *assembler.Assembler, hubSelector *hubs.Selector, rail *railgraph.Graph, validator *validate.Validator) *Searcher {
	return &Searcher{Catalog: cat, Segments: segments, Assembler: asm, Hubs: hubSelector, Rail: rail, Validator: validator}
}

// Search runs the strategy waterfall from fromCityID to toCityID on date,
// returning the best route by opts.Priority plus any other distinct
// candidates as alternatives, always sorted by the same priority (§9 Open
// Question 3). Returns routeerr.ErrUnknownCity for an unrecognized city and
// routeerr.ErrNoRoute when no strategy produces a candidate.
func (s *Searcher) Search(ctx context.Context, fromCityID, toCityID string, date time.Time, opts Options) (routemodel.Route, []routemodel.Route, error) {
	if _, ok := s.Catalog.GetCity(fromCityID); !ok {
		return routemodel.Route{}, nil, routeerr.Wrap(routeerr.ErrUnknownCity, "search: unknown city %q", fromCityID)
	}
	if _, ok := s.Catalog.GetCity(toCityID); !ok {
		return routemodel.Route{}, nil, routeerr.Wrap(routeerr.ErrUnknownCity, "search: unknown city %q", toCityID)
	}

	if fromCityID == toCityID {
		route, err := s.assembleDegenerate(fromCityID, date)
		if err != nil {
			return routemodel.Route{}, nil, err
		}
		return route, nil, nil
	}

	opts = withDefaults(opts)

	var candidates []routemodel.Route
	seen := make(map[string]bool)

	add := func(r routemodel.Route, ok bool) {
		if !ok {
			return
		}
		key := routeKey(r)
		if seen[key] {
			return
		}
		seen[key] = true
		candidates = append(candidates, r)
	}

	add(s.directStrategy(ctx, fromCityID, toCityID, date))
	add(s.viaHubsStrategy(ctx, fromCityID, toCityID, date))
	add(s.viaRailStrategy(ctx, fromCityID, toCityID, date, opts))
	add(s.viaRiversStrategy(ctx, fromCityID, toCityID, date))

	ferryMode := catalog.ModeFerry
	add(s.bfsStrategy(ctx, fromCityID, toCityID, date, &ferryMode, opts))

	winterMode := catalog.ModeWinterRoad
	add(s.bfsStrategy(ctx, fromCityID, toCityID, date, &winterMode, opts))

	add(s.bfsStrategy(ctx, fromCityID, toCityID, date, nil, opts))

	if len(candidates) == 0 {
		return routemodel.Route{}, nil, routeerr.Wrap(routeerr.ErrNoRoute, "search: no strategy produced a route from %q to %q", fromCityID, toCityID)
	}

	sortByPriority(candidates, opts.Priority)

	for i := range candidates {
		candidates[i].Validation = s.Validator.Check(candidates[i], date)
	}

	primary := candidates[0]
	alternatives := candidates[1:]
	return primary, alternatives, nil
}

func withDefaults(opts Options) Options {
	if opts.MaxTransfers <= 0 {
		opts.MaxTransfers = 3
	}
	if opts.Priority == "" {
		opts.Priority = PriorityFastest
	}
	if opts.MaxBFSIterations <= 0 {
		opts.MaxBFSIterations = 1000
	}
	if opts.MaxBFSDepth <= 0 {
		opts.MaxBFSDepth = 5
	}
	if opts.MaxIntermediateCities <= 0 {
		opts.MaxIntermediateCities = 30
	}
	return opts
}

func (s *Searcher) assembleDegenerate(cityID string, date time.Time) (routemodel.Route, error) {
	seg := s.Segments.Degenerate(cityID)
	route, err := s.Assembler.Assemble(cityID, cityID, []routemodel.Segment{seg})
	if err != nil {
		return routemodel.Route{}, err
	}
	route.Validation = s.Validator.Check(route, date)
	return route, nil
}

// buildChain builds and assembles segments for an ordered list of
// connections, returning (route, true) only if every connection's segment
// builds, validates, and is available on date.
func (s *Searcher) buildChain(ctx context.Context, fromCityID, toCityID string, date time.Time, conns []catalog.Connection) (routemodel.Route, bool) {
	if len(conns) == 0 {
		return routemodel.Route{}, false
	}
	segs := make([]routemodel.Segment, 0, len(conns))
	for _, conn := range conns {
		seg, err := s.Segments.FromConnection(ctx, conn, date)
		if err != nil {
			return routemodel.Route{}, false
		}
		if !seasonality.IsAvailable(seg.Seasonality, date) {
			return routemodel.Route{}, false
		}
		segs = append(segs, seg)
	}
	route, err := s.Assembler.Assemble(fromCityID, toCityID, segs)
	if err != nil {
		return routemodel.Route{}, false
	}
	return route, true
}

// directStrategy tries a single connection of any mode, in the fixed
// priority order catalog.Modes (§4.10 strategy 1).
func (s *Searcher) directStrategy(ctx context.Context, fromCityID, toCityID string, date time.Time) (routemodel.Route, bool) {
	for _, mode := range catalog.Modes {
		m := mode
		conns := s.Catalog.GetConnectionsBetween(fromCityID, toCityID, &m)
		for _, conn := range conns {
			if route, ok := s.buildChain(ctx, fromCityID, toCityID, date, []catalog.Connection{conn}); ok {
				return route, true
			}
		}
	}
	return routemodel.Route{}, false
}

// viaHubsStrategy applies the hub selector's mandatory chain for an
// airplane itinerary (§4.10 strategy 2/§4.8). decision.Chain is already a
// list of city identifiers (hubs.Decide resolves each hub to its owning
// city), so it can be spliced straight between fromCityID and toCityID and
// fed to GetConnectionsBetween without any further hub->city lookup.
func (s *Searcher) viaHubsStrategy(ctx context.Context, fromCityID, toCityID string, date time.Time) (routemodel.Route, bool) {
	if s.Hubs == nil {
		return routemodel.Route{}, false
	}
	decision, err := s.Hubs.Decide(fromCityID, toCityID)
	if err != nil {
		return routemodel.Route{}, false
	}

	stops := []string{fromCityID}
	stops = append(stops, decision.Chain...)
	stops = append(stops, toCityID)

	dedup := make([]string, 0, len(stops))
	dedup = append(dedup, stops[0])
	for _, c := range stops[1:] {
		if c != dedup[len(dedup)-1] {
			dedup = append(dedup, c)
		}
	}
	stops = dedup

	if len(stops) < 2 {
		return routemodel.Route{}, false
	}

	airplane := catalog.ModeAirplane
	conns := make([]catalog.Connection, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		candidates := s.Catalog.GetConnectionsBetween(stops[i-1], stops[i], &airplane)
		if len(candidates) == 0 {
			return routemodel.Route{}, false
		}
		conns = append(conns, candidates[0])
	}

	return s.buildChain(ctx, fromCityID, toCityID, date, conns)
}

// viaRailStrategy uses the transfer-bounded rail graph shortest path
// (§4.10 strategy 3/§4.9).
func (s *Searcher) viaRailStrategy(ctx context.Context, fromCityID, toCityID string, date time.Time, opts Options) (routemodel.Route, bool) {
	if s.Rail == nil {
		return routemodel.Route{}, false
	}
	path, ok := s.Rail.ShortestPath(fromCityID, toCityID, opts.MaxTransfers)
	if !ok || len(path.Cities) < 2 {
		return routemodel.Route{}, false
	}

	train := catalog.ModeTrain
	conns := make([]catalog.Connection, 0, len(path.Edges))
	for i, edge := range path.Edges {
		from := path.Cities[i]
		candidates := s.Catalog.GetConnectionsBetween(from, edge.To, &train)
		found := false
		for _, c := range candidates {
			if c.ID == edge.ConnectionID {
				conns = append(conns, c)
				found = true
				break
			}
		}
		if !found {
			if len(candidates) == 0 {
				return routemodel.Route{}, false
			}
			conns = append(conns, candidates[0])
		}
	}

	return s.buildChain(ctx, fromCityID, toCityID, date, conns)
}

// viaRiversStrategy tries a direct ferry connection, then a two-leg ferry
// route through a river-system pivot city — conventionally a Lena-pier
// city — attaching the known river-mouth waypoint to the first leg when the
// two legs declare different river systems (§4.10 strategy 4/§4.6, §8
// scenario 3). Only attempted when the travel date's canonical season
// admits ferries.
func (s *Searcher) viaRiversStrategy(ctx context.Context, fromCityID, toCityID string, date time.Time) (routemodel.Route, bool) {
	season := seasonality.CanonicalSeason(date)
	if season != seasonality.Summer && season != seasonality.Transition {
		return routemodel.Route{}, false
	}

	ferry := catalog.ModeFerry

	if direct := s.Catalog.GetConnectionsBetween(fromCityID, toCityID, &ferry); len(direct) > 0 {
		if route, ok := s.buildChain(ctx, fromCityID, toCityID, date, direct[:1]); ok {
			return route, true
		}
	}

	for _, pivotID := range s.Catalog.AllCityIDs() {
		if pivotID == fromCityID || pivotID == toCityID {
			continue
		}
		pivot, ok := s.Catalog.GetCity(pivotID)
		if !ok || !pivot.Infra.HasFerryPier {
			continue
		}

		leg1 := s.Catalog.GetConnectionsBetween(fromCityID, pivotID, &ferry)
		leg2 := s.Catalog.GetConnectionsBetween(pivotID, toCityID, &ferry)
		if len(leg1) == 0 || len(leg2) == 0 {
			continue
		}

		conn1, conn2 := leg1[0], leg2[0]
		if waypoint, ok := pathgeo.RiverMouthWaypoint(conn1.River, conn2.River); ok {
			conn1.IntermediateRaw = append(append([]geo.Coordinate{}, conn1.IntermediateRaw...), waypoint)
		}

		if route, ok := s.buildChain(ctx, fromCityID, toCityID, date, []catalog.Connection{conn1, conn2}); ok {
			return route, true
		}
	}

	return routemodel.Route{}, false
}

// bfsStrategy finds the shortest (by edge count) chain of connections
// between fromCityID and toCityID, optionally restricted to one mode,
// bounded by opts.MaxBFSDepth and opts.MaxBFSIterations (§4.10 strategies
// 4/5/6/7). Deterministic: cities are explored in catalog declaration order.
func (s *Searcher) bfsStrategy(ctx context.Context, fromCityID, toCityID string, date time.Time, mode *catalog.Mode, opts Options) (routemodel.Route, bool) {
	type frame struct {
		city  string
		conns []catalog.Connection
	}

	visited := map[string]bool{fromCityID: true}
	queue := []frame{{city: fromCityID}}
	iterations := 0

	for len(queue) > 0 {
		iterations++
		if iterations > opts.MaxBFSIterations {
			return routemodel.Route{}, false
		}

		cur := queue[0]
		queue = queue[1:]

		if len(cur.conns) >= opts.MaxBFSDepth {
			continue
		}
		if len(visited) > opts.MaxIntermediateCities+2 {
			return routemodel.Route{}, false
		}

		for _, conn := range s.Catalog.GetConnectionsFrom(cur.city) {
			if mode != nil && conn.Mode != *mode {
				continue
			}
			if visited[conn.ToCityID] {
				continue
			}

			nextConns := append(append([]catalog.Connection{}, cur.conns...), conn)

			if conn.ToCityID == toCityID {
				if route, ok := s.buildChain(ctx, fromCityID, toCityID, date, nextConns); ok {
					return route, true
				}
				continue
			}

			visited[conn.ToCityID] = true
			queue = append(queue, frame{city: conn.ToCityID, conns: nextConns})
		}
	}

	return routemodel.Route{}, false
}

func routeKey(r routemodel.Route) string {
	key := ""
	for _, seg := range r.Segments {
		key += string(seg.Mode) + ":" + seg.FromCityID + ">" + seg.ToCityID + "|"
	}
	return key
}

func sortByPriority(routes []routemodel.Route, priority Priority) {
	less := func(i, j int) bool {
		a, b := routes[i], routes[j]
		switch priority {
		case PriorityCheapest:
			return a.TotalPrice.Total < b.TotalPrice.Total
		case PriorityFewestTransfers:
			if len(a.Segments) != len(b.Segments) {
				return len(a.Segments) < len(b.Segments)
			}
			return a.TotalDuration.TotalMin < b.TotalDuration.TotalMin
		default: // PriorityFastest
			return a.TotalDuration.TotalMin < b.TotalDuration.TotalMin
		}
	}
	// Simple insertion sort: candidate counts are small (a handful of
	// strategies), and it keeps the tie-break stable without importing sort
	// for what is, in practice, a list of at most a few routes.
	for i := 1; i < len(routes); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			routes[j], routes[j-1] = routes[j-1], routes[j]
		}
	}
}

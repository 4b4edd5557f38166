// Package railgraph builds the train station graph (C9): a weighted
// directed graph of rail connections, with shortest-path search bounded by
// a transfer count, via Dijkstra over a container/heap priority queue —
// the same event-queue idiom other_examples/jwmdev-brt08's transit
// simulator uses for its own scheduling loop.
package railgraph

import (
	"container/heap"

	"github.com/antigravity/sakha-transit/internal/catalog"
)

// Edge is one directed rail hop between two stations' cities.
type Edge struct {
	To           string
	DistanceKM   float64
	DurationMin  int
	ConnectionID string
}

// Graph is the immutable adjacency map built once from the catalog (§9
// "Train graph (C9): built once; adjacency map is immutable after
// construction").
type Graph struct {
	adjacency map[string][]Edge
}

// Build constructs the rail graph from every mode=train connection in cat,
// keyed by city identifier (stations are modeled one-per-city, per the
// catalog's city-level connection granularity).
func Build(cat *catalog.Catalog) *Graph {
	g := &Graph{adjacency: make(map[string][]Edge)}
	mode := catalog.ModeTrain
	for _, cityID := range cat.AllCityIDs() {
		for _, conn := range cat.GetConnectionsFrom(cityID) {
			if conn.Mode != mode {
				continue
			}
			g.adjacency[conn.FromCityID] = append(g.adjacency[conn.FromCityID], Edge{
				To:           conn.ToCityID,
				DistanceKM:   conn.DistanceKM,
				DurationMin:  conn.DurationMin,
				ConnectionID: conn.ID,
			})
		}
	}
	return g
}

// Path is the result of a bounded shortest-path search.
type Path struct {
	Cities        []string
	Edges         []Edge
	TotalDistance float64
	TotalDuration int
}

type state struct {
	city        string
	distance    float64
	duration    int
	edgeCount   int
	cities      []string
	edges       []Edge
}

// priorityQueue orders states by distance, then duration, then edge count,
// then stable lexical order of the current city identifier (§4.9 tie-break).
type priorityQueue []*state

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.duration != b.duration {
		return a.duration < b.duration
	}
	if a.edgeCount != b.edgeCount {
		return a.edgeCount < b.edgeCount
	}
	return a.city < b.city
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)   { *pq = append(*pq, x.(*state)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ShortestPath finds the minimum-distance path from "from" to "to" using at
// most maxTransfers+1 edges. Identical endpoints return a trivial zero-cost
// path. Unknown endpoints return (nil, false) without error. Dijkstra's
// usual per-node visited set is relaxed to per-(node,edgeCount) since the
// transfer bound makes edge count part of the state.
func (g *Graph) ShortestPath(from, to string, maxTransfers int) (*Path, bool) {
	if from == to {
		return &Path{Cities: []string{from}}, true
	}

	if _, ok := g.adjacency[from]; !ok {
		if !hasAnyEdgeTo(g, from) {
			return nil, false
		}
	}

	maxEdges := maxTransfers + 1
	best := make(map[string]map[int]float64) // city -> edgeCount -> best distance seen

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &state{city: from, cities: []string{from}})

	var result *state

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*state)

		if cur.city == to {
			result = cur
			break
		}
		if cur.edgeCount >= maxEdges {
			continue
		}

		if seen, ok := best[cur.city]; ok {
			if d, ok := seen[cur.edgeCount]; ok && d < cur.distance {
				continue
			}
		}

		for _, e := range g.adjacency[cur.city] {
			nd := cur.distance + e.DistanceKM
			ndur := cur.duration + e.DurationMin
			nec := cur.edgeCount + 1

			if best[e.To] == nil {
				best[e.To] = make(map[int]float64)
			}
			if prior, ok := best[e.To][nec]; ok && prior <= nd {
				continue
			}
			best[e.To][nec] = nd

			next := &state{
				city:      e.To,
				distance:  nd,
				duration:  ndur,
				edgeCount: nec,
				cities:    append(append([]string{}, cur.cities...), e.To),
				edges:     append(append([]Edge{}, cur.edges...), e),
			}
			heap.Push(pq, next)
		}
	}

	if result == nil {
		return nil, false
	}
	return &Path{
		Cities:        result.cities,
		Edges:         result.edges,
		TotalDistance: result.distance,
		TotalDuration: result.duration,
	}, true
}

func hasAnyEdgeTo(g *Graph, city string) bool {
	for _, edges := range g.adjacency {
		for _, e := range edges {
			if e.To == city {
				return true
			}
		}
	}
	return false
}

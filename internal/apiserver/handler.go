// Package apiserver is the thin HTTP presentation layer over the route
// search core, adapted from the teacher's handler.TransportHandler:
// chi.URLParam for path params, http.Error for failures, json.Encoder for
// bodies, r.Context() threaded through to the domain call.
package apiserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/obslog"
	"github.com/antigravity/sakha-transit/internal/routeerr"
	"github.com/antigravity/sakha-transit/internal/routemodel"
	"github.com/antigravity/sakha-transit/internal/search"
)

// Handler exposes the route planner over HTTP.
type Handler struct {
	Catalog  *catalog.Catalog
	Searcher *search.Searcher
	Log      *obslog.Logger
}

// New constructs a Handler.
func New(cat *catalog.Catalog, searcher *search.Searcher, log *obslog.Logger) *Handler {
	return &Handler{Catalog: cat, Searcher: searcher, Log: log}
}

type routeResponse struct {
	Route        routemodel.Route   `json:"route"`
	Alternatives []routemodel.Route `json:"alternatives,omitempty"`
}

// GetRoute handles GET /api/v1/route?from=&to=&date=&max_transfers=&priority=
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := q.Get("from")
	to := q.Get("to")
	if from == "" || to == "" {
		http.Error(w, "missing from/to city identifiers", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if ds := q.Get("date"); ds != "" {
		parsed, err := time.Parse("2006-01-02", ds)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	priority, err := parsePriority(q.Get("priority"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts := search.Options{Priority: priority}
	if mt := q.Get("max_transfers"); mt != "" {
		n, err := strconv.Atoi(mt)
		if err != nil || n < 0 {
			http.Error(w, "invalid max_transfers, expected a non-negative integer", http.StatusBadRequest)
			return
		}
		opts.MaxTransfers = n
	}

	route, alternatives, err := h.Searcher.Search(r.Context(), from, to, date, opts)
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(routeResponse{Route: route, Alternatives: alternatives})
}

// parsePriority translates the public API's priority contract (§6:
// price | time | comfort, defaulting to time when unset) into the internal
// search.Priority knob. An unrecognized value is a client error rather than
// a silent fall-through to the default.
func parsePriority(raw string) (search.Priority, error) {
	switch raw {
	case "":
		return search.PriorityFastest, nil
	case "price":
		return search.PriorityCheapest, nil
	case "time":
		return search.PriorityFastest, nil
	case "comfort":
		return search.PriorityFewestTransfers, nil
	default:
		return "", fmt.Errorf("invalid priority %q, expected price|time|comfort", raw)
	}
}

func (h *Handler) writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, routeerr.ErrUnknownCity):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, routeerr.ErrNoRoute):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, routeerr.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.Log.Error("route search failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// SearchCities handles GET /api/v1/cities?q=
func (h *Handler) SearchCities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := h.Catalog.SearchCities(query)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// GetCity handles GET /api/v1/cities/{id}
func (h *Handler) GetCity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	city, ok := h.Catalog.GetCity(id)
	if !ok {
		http.Error(w, "unknown city", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(city)
}

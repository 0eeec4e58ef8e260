// Package queryapi exposes the driver's get_crossroad query over HTTP,
// adapting pkg/api/handlers.go's request/response shape and
// pkg/api/server.go's middleware chain to the enrichment driver's
// Result instead of a router.
package queryapi

import (
	"errors"
	"math"
	"mime"
	"net/http"

	"crossroad/pkg/driver"
	"crossroad/pkg/model"

	"github.com/goccy/go-json"
)

// Handlers holds the HTTP handlers and the driver result they query.
type Handlers struct {
	result *driver.Result
}

// NewHandlers creates handlers serving queries against result.
func NewHandlers(result *driver.Result) *Handlers {
	return &Handlers{result: result}
}

// HandleCrossroad handles POST /api/v1/crossroad.
func (h *Handlers) HandleCrossroad(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	var q CrossroadQuery
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if err := validateCoord(q.Lat, q.Lon); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates")
		return
	}

	cr, ok := h.result.GetCrossroad(q.Lat, q.Lon)
	if !ok {
		writeError(w, http.StatusNotFound, "no_crossroad_found")
		return
	}

	in, ok := h.result.Intersections[cr.ID]
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCrossroadResponse(cr.ID, in))
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatsResponse{
		NumCrossroads: len(h.result.Crossroads),
		NumWarnings:   len(h.result.Warnings.All()),
	})
}

func toCrossroadResponse(id int, in *model.Intersection) CrossroadResponse {
	resp := CrossroadResponse{
		CrossroadID: id,
		CenterX:     in.CenterX,
		CenterY:     in.CenterY,
	}
	for _, j := range in.Junctions {
		jj := JunctionJSON{ID: int(j.ID), X: j.X, Y: j.Y, TactilePaving: string(j.TactilePaving)}
		for role := range j.Roles {
			jj.Roles = append(jj.Roles, string(role))
		}
		resp.Junctions = append(resp.Junctions, jj)
	}
	for _, b := range in.Branches {
		bj := BranchJSON{
			Number:     b.Number,
			AngleDeg:   b.AngleDeg,
			StreetName: joinStreetName(b.StreetName),
		}
		if b.Crossing != nil {
			bj.CrossingID = string(*b.Crossing)
		}
		for _, wid := range b.Ways {
			way, ok := in.Ways[wid]
			if !ok {
				continue
			}
			bj.Ways = append(bj.Ways, WayJSON{
				ID:           string(way.ID),
				Name:         way.Name,
				ChannelCount: len(way.Channels),
			})
		}
		resp.Branches = append(resp.Branches, bj)
	}
	return resp
}

func joinStreetName(sn model.StreetName) string {
	if sn.HeadWord == "" {
		return ""
	}
	if sn.Rest == "" {
		return sn.HeadWord
	}
	return sn.HeadWord + " " + sn.Rest
}

func validateCoord(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}

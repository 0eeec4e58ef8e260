package queryapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crossroad/pkg/driver"
	"crossroad/pkg/region"

	"github.com/goccy/go-json"
	"github.com/paulmach/osm"
)

func fourWay(g *region.Graph, cx, cy float64) {
	g.AddNode(1, cx, cy, nil)
	coords := map[osm.NodeID][2]float64{
		2: {cx + 0.0001, cy},
		3: {cx - 0.0001, cy},
		4: {cx, cy + 0.0001},
		5: {cx, cy - 0.0001},
	}
	for id, xy := range coords {
		g.AddNode(id, xy[0], xy[1], osm.Tags{{Key: "highway", Value: "crossing"}})
		g.AddEdge(1, id, osm.Tags{{Key: "highway", Value: "residential"}, {Key: "name", Value: "Rue A"}})
	}
}

func TestHandleCrossroadSuccess(t *testing.T) {
	g := region.NewGraph()
	fourWay(g, 0, 0)
	result := driver.Run(g, driver.DefaultConfig())
	h := NewHandlers(result)

	body := `{"lat":0.00001,"lon":0.00001}`
	req := httptest.NewRequest("POST", "/api/v1/crossroad", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleCrossroad(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var resp CrossroadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CenterX != 0 || resp.CenterY != 0 {
		t.Errorf("center = (%v, %v), want (0, 0)", resp.CenterX, resp.CenterY)
	}
	if len(resp.Junctions) == 0 {
		t.Error("expected at least one junction in the response")
	}
}

func TestHandleCrossroadRejectsBadContentType(t *testing.T) {
	g := region.NewGraph()
	fourWay(g, 0, 0)
	result := driver.Run(g, driver.DefaultConfig())
	h := NewHandlers(result)

	req := httptest.NewRequest("POST", "/api/v1/crossroad", strings.NewReader(`{"lat":0,"lon":0}`))
	w := httptest.NewRecorder()

	h.HandleCrossroad(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleCrossroadRejectsOutOfRangeCoordinates(t *testing.T) {
	g := region.NewGraph()
	fourWay(g, 0, 0)
	result := driver.Run(g, driver.DefaultConfig())
	h := NewHandlers(result)

	req := httptest.NewRequest("POST", "/api/v1/crossroad", strings.NewReader(`{"lat":999,"lon":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleCrossroad(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewHandlers(&driver.Result{})
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

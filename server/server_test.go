package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dimfeld/httptreemux"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
)

type fakeMap struct {
	extent geom.Extent
	// drawn records the extent of each draw
	drawn []geom.Extent
	err   error
}

func (m *fakeMap) Extent() geom.Extent { return m.extent }
func (m *fakeMap) SetExtent(e geom.Extent) error {
	if e[0] < -180 {
		return errors.New("off the globe")
	}
	m.extent = e
	return nil
}
func (m *fakeMap) DrawSVG(w io.Writer) error {
	if m.err != nil {
		return m.err
	}
	m.drawn = append(m.drawn, m.extent)
	_, err := fmt.Fprintf(w, "<svg>%v</svg>", m.extent)
	return err
}
func (m *fakeMap) GeoJSON() (fc geojson.FeatureCollection, err error) {
	fc.Features = []geojson.Feature{{
		Geometry:   geojson.Geometry{Geometry: geom.LineString{{0, -90}, {0, 90}}},
		Properties: map[string]interface{}{"kind": "meridian", "value": 0.0},
	}}
	return fc, m.err
}

func TestGenPath(t *testing.T) {
	tests := map[string]struct {
		parts []interface{}
		path  string
	}{
		"plain":  {parts: []interface{}{"grid.svg"}, path: "/grid.svg"},
		"params": {parts: []interface{}{"grid", ParamsKeyLonMin, nil, "/", "svg"}, path: "/grid/:lonmin/svg"},
		"empty":  {parts: nil, path: ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := GenPath(tc.parts...); got != tc.path {
				t.Errorf("path, expected %q got %q", tc.path, got)
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	type tcase struct {
		path        string
		status      int
		contentType string
		body        string
		drawn       []geom.Extent
	}
	start := geom.Extent{-10, -10, 10, 10}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			m := &fakeMap{extent: start}
			srv := &Server{Map: m, Headers: map[string]string{"Cache-Control": "no-cache"}}
			router := httptreemux.New()
			srv.RegisterRoutes(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", tc.path, nil))
			if w.Code != tc.status {
				t.Fatalf("status, expected %v got %v (%v)", tc.status, w.Code, w.Header().Get(HTTPErrorHeader))
			}
			if tc.status != http.StatusOK {
				if tc.status == http.StatusBadRequest && w.Header().Get(HTTPErrorHeader) == "" {
					t.Errorf("error header, expected a description")
				}
				return
			}
			if got := w.Header().Get("Content-Type"); got != tc.contentType {
				t.Errorf("content type, expected %v got %v", tc.contentType, got)
			}
			if w.Header().Get("Cache-Control") != "no-cache" || w.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Errorf("headers, got %v", w.Header())
			}
			if !strings.Contains(w.Body.String(), tc.body) {
				t.Errorf("body, expected %q in %q", tc.body, w.Body.String())
			}
			if len(m.drawn) != len(tc.drawn) {
				t.Fatalf("draws, expected %v got %v", tc.drawn, m.drawn)
			}
			for i := range m.drawn {
				if m.drawn[i] != tc.drawn[i] {
					t.Errorf("draw %v, expected %v got %v", i, tc.drawn[i], m.drawn[i])
				}
			}
			if m.extent != start {
				t.Errorf("extent, expected %v to be restored got %v", start, m.extent)
			}
		}
	}

	tests := map[string]tcase{
		"svg": {
			path:        "/grid.svg",
			status:      http.StatusOK,
			contentType: "image/svg+xml",
			body:        "<svg>",
			drawn:       []geom.Extent{start},
		},
		"extent svg": {
			path:        "/grid/-20/40/30/70/svg",
			status:      http.StatusOK,
			contentType: "image/svg+xml",
			drawn:       []geom.Extent{{-20, 30, 40, 70}},
		},
		"geojson": {
			path:        "/grid.geojson",
			status:      http.StatusOK,
			contentType: MimeGeoJSON,
			body:        `"kind":"meridian"`,
		},
		"not a number":  {path: "/grid/a/40/30/70/svg", status: http.StatusBadRequest},
		"empty extent":  {path: "/grid/40/-20/30/70/svg", status: http.StatusBadRequest},
		"off the globe": {path: "/grid/-200/40/30/70/svg", status: http.StatusBadRequest},
		"unknown":       {path: "/grid.png", status: http.StatusNotFound},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

func TestGeoJSONBody(t *testing.T) {
	srv := &Server{Map: &fakeMap{}}
	w := httptest.NewRecorder()
	srv.GridGeoJSONHandler(w, httptest.NewRequest("GET", "/grid.geojson", nil), nil)

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode, expected nil got %v", err)
	}
	if doc.Type != "FeatureCollection" || len(doc.Features) != 1 {
		t.Errorf("document, got %+v", doc)
	}
}

func TestDrawFailure(t *testing.T) {
	srv := &Server{Map: &fakeMap{err: errors.New("broken")}}
	for _, h := range []httptreemux.HandlerFunc{srv.GridSVGHandler, srv.GridGeoJSONHandler} {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest("GET", "/", nil), nil)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status, expected %v got %v", http.StatusInternalServerError, w.Code)
		}
	}
}

// Package server serves the grids of a map as svg and GeoJSON.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/dimfeld/httptreemux"
	"github.com/go-spatial/eomaps/render/svg"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
	"github.com/prometheus/common/log"
)

type URLPath string

func (u URLPath) PathComponent() string { return ":" + string(u) }

const (
	// ParamsKeyLonMin is the key used for the western edge of the extent
	ParamsKeyLonMin = URLPath("lonmin")
	// ParamsKeyLonMax is the key used for the eastern edge of the extent
	ParamsKeyLonMax = URLPath("lonmax")
	// ParamsKeyLatMin is the key used for the southern edge of the extent
	ParamsKeyLatMin = URLPath("latmin")
	// ParamsKeyLatMax is the key used for the northern edge of the extent
	ParamsKeyLatMax = URLPath("latmax")

	HTTPErrorHeader = "X-HTTP-Error-Description"

	// MimeGeoJSON is the content type of the geojson endpoint
	MimeGeoJSON = "application/geo+json"
)

// GenPath joins the path components, turning URLPath values into parameters.
func GenPath(paths ...interface{}) string {
	var path strings.Builder
	for _, p := range paths {
		var str string
		switch pp := p.(type) {
		case URLPath:
			str = pp.PathComponent()
		case string:
			str = pp
		default:
			if pp == nil {
				continue
			}
			str = fmt.Sprintf("%v", p)
		}
		if str == "/" || str == "" {
			continue
		}
		path.WriteString("/" + str)
	}
	return path.String()
}

// Map is what the server draws.
type Map interface {
	Extent() geom.Extent
	SetExtent(geom.Extent) error
	DrawSVG(w io.Writer) error
	GeoJSON() (geojson.FeatureCollection, error)
}

// DefaultCORSHeaders define the default CORS response headers added to all requests
var DefaultCORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, OPTIONS",
}

// Server serves one map. Grids are not safe for concurrent use, so requests
// draw one at a time.
type Server struct {
	// Hostname and Port are only used for logging.
	Hostname string
	Port     string

	// Headers is the map of user defined response headers.
	Headers map[string]string

	Map Map

	lck sync.Mutex
}

func setHeaders(h map[string]string, w http.ResponseWriter) {
	for name, val := range DefaultCORSHeaders {
		w.Header().Set(name, val)
	}
	for name, val := range h {
		if val == "" {
			log.Warnf("header (%v) has no value", name)
		}
		w.Header().Set(name, val)
	}
}

func badRequest(w http.ResponseWriter, reasonFmt string, data ...interface{}) {
	w.Header().Set(HTTPErrorHeader, fmt.Sprintf(reasonFmt, data...))
	w.WriteHeader(http.StatusBadRequest)
}

func serverError(w http.ResponseWriter, err error) {
	log.Errorf("%v", err)
	w.Header().Set(HTTPErrorHeader, err.Error())
	w.WriteHeader(http.StatusInternalServerError)
}

func (s *Server) drawSVG(extent *geom.Extent) ([]byte, error) {
	s.lck.Lock()
	defer s.lck.Unlock()
	if extent != nil {
		old := s.Map.Extent()
		if err := s.Map.SetExtent(*extent); err != nil {
			return nil, err
		}
		defer func() {
			if err := s.Map.SetExtent(old); err != nil {
				log.Warnf("restoring extent %v: %v", old, err)
			}
		}()
	}
	var buf bytes.Buffer
	if err := s.Map.DrawSVG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GridSVGHandler draws the map at its configured extent.
func (s *Server) GridSVGHandler(w http.ResponseWriter, request *http.Request, _ map[string]string) {
	body, err := s.drawSVG(nil)
	if err != nil {
		serverError(w, err)
		return
	}
	setHeaders(s.Headers, w)
	w.Header().Set("Content-Type", svg.Mime)
	w.Write(body)
}

func parseExtent(params map[string]string) (e geom.Extent, err error) {
	keys := [4]URLPath{ParamsKeyLonMin, ParamsKeyLatMin, ParamsKeyLonMax, ParamsKeyLatMax}
	for i, key := range keys {
		e[i], err = strconv.ParseFloat(params[string(key)], 64)
		if err != nil {
			return e, fmt.Errorf("%v (%v) is not a number", key, params[string(key)])
		}
	}
	if e[0] >= e[2] || e[1] >= e[3] {
		return e, fmt.Errorf("empty extent lon(%v, %v) lat(%v, %v)", e[0], e[2], e[1], e[3])
	}
	return e, nil
}

// GridExtentSVGHandler draws the map at the extent given in the path.
func (s *Server) GridExtentSVGHandler(w http.ResponseWriter, request *http.Request, params map[string]string) {
	extent, err := parseExtent(params)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}
	body, err := s.drawSVG(&extent)
	if err != nil {
		badRequest(w, "error drawing extent: %v", err)
		return
	}
	setHeaders(s.Headers, w)
	w.Header().Set("Content-Type", svg.Mime)
	w.Write(body)
}

// GridGeoJSONHandler returns the grid lines as a FeatureCollection.
func (s *Server) GridGeoJSONHandler(w http.ResponseWriter, request *http.Request, _ map[string]string) {
	s.lck.Lock()
	fc, err := s.Map.GeoJSON()
	s.lck.Unlock()
	if err != nil {
		serverError(w, err)
		return
	}
	setHeaders(s.Headers, w)
	w.Header().Set("Content-Type", MimeGeoJSON)
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		log.Warnf("error encoding geojson: %v", err)
	}
}

// RegisterRoutes setup the routes
func (s *Server) RegisterRoutes(r *httptreemux.TreeMux) {
	r.GET(GenPath("grid.svg"), s.GridSVGHandler)
	r.GET(GenPath("grid.geojson"), s.GridGeoJSONHandler)
	group := r.NewGroup(GenPath("grid"))
	group.GET(GenPath(ParamsKeyLonMin, ParamsKeyLonMax, ParamsKeyLatMin, ParamsKeyLatMax, "svg"), s.GridExtentSVGHandler)
}

// Package config models the toml file describing a map and its grids.
package config

import (
	"fmt"
	"io"
	"net/url"

	"github.com/BurntSushi/toml"
	"github.com/go-spatial/eomaps/grid"
	"github.com/go-spatial/eomaps/internal/urlutil"
	"github.com/go-spatial/eomaps/render"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/tegola/dict"
)

const (
	// DefaultProjection is used when the map does not name one
	DefaultProjection = "platecarree"
	// DefaultWidth of the figure in pixels
	DefaultWidth = 800
	// DefaultHeight of the figure in pixels
	DefaultHeight = 400
	// DefaultDPI is the dpi maps are drawn at
	DefaultDPI = 100
	// DefaultLayer is the layer grids are published to
	DefaultLayer = "base"
)

// Config models the config file that can be passed into the application
type Config struct {
	// FileLocation is the location that the config file was
	// read from. If this value is nil, then the Parse() function
	// was used directly
	FileLocation *url.URL `toml:"-"`

	Map       Map       `toml:"map"`
	Webserver Webserver `toml:"webserver"`
	Grids     []Grid    `toml:"grids"`
}

// Map describes the figure grids are drawn on.
type Map struct {
	Projection string `toml:"projection"`
	// Params configures the projection, i.e. central_longitude
	Params dict.Dict `toml:"params"`
	// Extent is minlon, minlat, maxlon, maxlat; empty is the globe
	Extent []float64 `toml:"extent"`
	Width  int       `toml:"width"`
	Height int       `toml:"height"`
	DPI    float64   `toml:"dpi"`
	Layer  string    `toml:"layer"`
	// Outline uses the projected outline of the extent as the map boundary
	Outline bool `toml:"outline"`
}

// Webserver represents the config values for the webserver potion
// of the application.
type Webserver struct {
	HostName string            `toml:"hostname"`
	Port     string            `toml:"port"`
	Headers  map[string]string `toml:"headers"`
}

// Grid models a grid in the config file
type Grid struct {
	Name string `toml:"name"`
	// D is the spacing as accepted by grid.ParseSpacing; unset is auto
	D interface{} `toml:"d"`
	// AutoN is a number or a lon, lat pair
	AutoN interface{} `toml:"auto_n"`
	// Bounds is lonmin, lonmax, latmin, latmax
	Bounds []float64 `toml:"bounds"`
	N      int       `toml:"n"`
	Layer  string    `toml:"layer"`
	Style  dict.Dict `toml:"style"`
	Labels []Labels  `toml:"labels"`
}

// Labels models the labels of a grid
type Labels struct {
	Where        string    `toml:"where"`
	Offset       *float64  `toml:"offset"`
	OffsetXY     []float64 `toml:"offset_xy"`
	Precision    *int      `toml:"precision"`
	Every        int       `toml:"every"`
	Exclude      []float64 `toml:"exclude"`
	Rotation     float64   `toml:"rotation"`
	RotationType string    `toml:"rotation_type"`
	AvoidOverlap bool      `toml:"avoid_overlap"`
	Style        dict.Dict `toml:"style"`
}

// ErrInvalidValue is returned for a config value that can not be used.
type ErrInvalidValue struct {
	// Key is the dotted path of the value
	Key string
	Err error
}

func (err ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid config value %v: %v", err.Key, err.Err)
}

func (err ErrInvalidValue) Unwrap() error { return err.Err }

// ProjectionName returns the configured projection or the default.
func (m Map) ProjectionName() string {
	if m.Projection == "" {
		return DefaultProjection
	}
	return m.Projection
}

// NewProjection returns the configured projection.
func (m Map) NewProjection() (render.Projector, error) {
	var params dict.Dicter
	if m.Params != nil {
		params = m.Params
	}
	return render.ProjectionFor(m.ProjectionName(), params)
}

// ExtentOrGlobe returns the configured extent.
func (m Map) ExtentOrGlobe() (geom.Extent, error) {
	switch len(m.Extent) {
	case 0:
		return grid.Globe.Extent(), nil
	case 4:
		return geom.Extent{m.Extent[0], m.Extent[1], m.Extent[2], m.Extent[3]}, nil
	}
	return geom.Extent{}, fmt.Errorf("expected 4 values got %v", len(m.Extent))
}

// Size returns the figure size and dpi with defaults applied.
func (m Map) Size() (width, height, dpi float64) {
	width, height, dpi = DefaultWidth, DefaultHeight, DefaultDPI
	if m.Width > 0 {
		width = float64(m.Width)
	}
	if m.Height > 0 {
		height = float64(m.Height)
	}
	if m.DPI > 0 {
		dpi = m.DPI
	}
	return width, height, dpi
}

// LayerOrDefault returns the configured layer or DefaultLayer.
func (m Map) LayerOrDefault() string {
	if m.Layer == "" {
		return DefaultLayer
	}
	return m.Layer
}

// Options converts the grid into options for grid.Factory.AddGrid.
func (g Grid) Options() (opts grid.GridOptions, err error) {
	if opts.Spacing, err = grid.ParseSpacing(g.D); err != nil {
		return opts, err
	}
	switch len(g.Bounds) {
	case 0:
	case 4:
		b := grid.Bounds{LonMin: g.Bounds[0], LonMax: g.Bounds[1], LatMin: g.Bounds[2], LatMax: g.Bounds[3]}
		if err := b.Validate(); err != nil {
			return opts, err
		}
		opts.Bounds = &b
	default:
		return opts, ErrInvalidValue{Key: "bounds", Err: fmt.Errorf("expected 4 values got %v", len(g.Bounds))}
	}
	if opts.AutoN, err = autoN(g.AutoN); err != nil {
		return opts, ErrInvalidValue{Key: "auto_n", Err: err}
	}
	opts.N = g.N
	opts.Layer = g.Layer
	opts.Style = g.Style
	return opts, nil
}

func autoN(v interface{}) (n [2]int, err error) {
	switch val := v.(type) {
	case nil:
		return n, nil
	case int64:
		return [2]int{int(val), int(val)}, nil
	case int:
		return [2]int{val, val}, nil
	case []interface{}:
		if len(val) != 2 {
			return n, fmt.Errorf("expected a number or 2 numbers got %v", len(val))
		}
		for i := range val {
			i64, ok := val[i].(int64)
			if !ok {
				return n, fmt.Errorf("unsupported type %T", val[i])
			}
			n[i] = int(i64)
		}
		return n, nil
	}
	return n, fmt.Errorf("unsupported type %T", v)
}

// Options converts the labels into grid.LabelOptions.
func (l Labels) Options() (grid.LabelOptions, error) {
	opts := grid.DefaultLabelOptions()
	if l.Where != "" {
		opts.Where = l.Where
	}
	if l.Offset != nil {
		opts.Offset = *l.Offset
	}
	switch len(l.OffsetXY) {
	case 0:
	case 2:
		opts.OffsetXY = [2]float64{l.OffsetXY[0], l.OffsetXY[1]}
	default:
		return opts, ErrInvalidValue{Key: "offset_xy", Err: fmt.Errorf("expected 2 values got %v", len(l.OffsetXY))}
	}
	if l.Precision != nil {
		opts.Precision = *l.Precision
	}
	rt, err := grid.ParseRotationType(l.RotationType)
	if err != nil {
		return opts, err
	}
	opts.Every = l.Every
	opts.Exclude = l.Exclude
	opts.Rotation = l.Rotation
	opts.RotationType = rt
	opts.AvoidOverlap = l.AvoidOverlap
	opts.Style = l.Style
	return opts, nil
}

// Validate checks that every section of the config can be built.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("error config not initialized")
	}
	if _, err := c.Map.NewProjection(); err != nil {
		return ErrInvalidValue{Key: "map.projection", Err: err}
	}
	if _, err := c.Map.ExtentOrGlobe(); err != nil {
		return ErrInvalidValue{Key: "map.extent", Err: err}
	}
	if c.Map.Width < 0 || c.Map.Height < 0 || c.Map.DPI < 0 {
		return ErrInvalidValue{Key: "map", Err: fmt.Errorf("negative size %vx%v at %v dpi", c.Map.Width, c.Map.Height, c.Map.DPI)}
	}
	for i, g := range c.Grids {
		if _, err := g.Options(); err != nil {
			return ErrInvalidValue{Key: fmt.Sprintf("grids[%v]", i), Err: err}
		}
		for j, l := range g.Labels {
			opts, err := l.Options()
			if err == nil {
				_, err = grid.ParseWhere(opts.Where)
			}
			if err != nil {
				return ErrInvalidValue{Key: fmt.Sprintf("grids[%v].labels[%v]", i, j), Err: err}
			}
		}
	}
	return nil
}

// Parse will parse a config file in the io.Reader
func Parse(reader io.Reader, fileLocation *url.URL) (conf Config, err error) {
	_, err = toml.DecodeReader(reader, &conf)
	conf.FileLocation = fileLocation
	return conf, err
}

// Load will load and parse the config file from the given location.
func Load(location *url.URL) (conf Config, err error) {
	err = urlutil.VisitReader(location, func(r io.Reader) error {
		var e error
		conf, e = Parse(r, location)
		return e
	})
	return conf, err
}

// LoadAndValidate is helper function that just calls load and then validate
func LoadAndValidate(location *url.URL) (cfg Config, err error) {
	cfg, err = Load(location)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

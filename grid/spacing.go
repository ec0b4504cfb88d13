package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-spatial/geom"
)

// Bounds limits where grid lines are drawn.
type Bounds struct {
	LonMin, LonMax float64
	LatMin, LatMax float64
}

// Globe is the default grid bounds.
var Globe = Bounds{LonMin: -180, LonMax: 180, LatMin: -90, LatMax: 90}

// Validate checks the bounds are on the globe and not empty.
func (b Bounds) Validate() error {
	for _, v := range [...]float64{b.LonMin, b.LonMax, b.LatMin, b.LatMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidBounds(b)
		}
	}
	if b.LonMin < -180 || b.LonMax > 180 || b.LatMin < -90 || b.LatMax > 90 {
		return ErrInvalidBounds(b)
	}
	if b.LonMin >= b.LonMax || b.LatMin >= b.LatMax {
		return ErrInvalidBounds(b)
	}
	return nil
}

// Extent returns the bounds as minlon, minlat, maxlon, maxlat.
func (b Bounds) Extent() geom.Extent {
	return geom.Extent{b.LonMin, b.LatMin, b.LonMax, b.LatMax}
}

// BoundsFromExtent is the inverse of Bounds.Extent.
func BoundsFromExtent(e geom.Extent) Bounds {
	return Bounds{LonMin: e[0], LonMax: e[2], LatMin: e[1], LatMax: e[3]}
}

// Intersect returns the tighter of b and o per coordinate. The result may be empty.
func (b Bounds) Intersect(o Bounds) Bounds {
	return Bounds{
		LonMin: math.Max(b.LonMin, o.LonMin),
		LonMax: math.Min(b.LonMax, o.LonMax),
		LatMin: math.Max(b.LatMin, o.LatMin),
		LatMax: math.Min(b.LatMax, o.LatMax),
	}
}

func (b Bounds) axis(i int) (min, max float64) {
	if i == 0 {
		return b.LonMin, b.LonMax
	}
	return b.LatMin, b.LatMax
}

// AxisKind says how the lines of one axis are placed.
type AxisKind uint8

const (
	// AxisNone draws no lines.
	AxisNone AxisKind = iota
	// AxisStep draws lines at a uniform step in degrees.
	AxisStep
	// AxisPositions draws lines at explicit positions.
	AxisPositions
)

// Axis configures the lines of one axis.
type Axis struct {
	Kind      AxisKind
	Step      float64
	Positions []float64
}

// Step returns an axis with lines every d degrees.
func Step(d float64) Axis { return Axis{Kind: AxisStep, Step: d} }

// Positions returns an axis with lines at the given values.
func Positions(values ...float64) Axis { return Axis{Kind: AxisPositions, Positions: values} }

// NoLines is an axis without lines.
var NoLines = Axis{}

func (a Axis) validate() error {
	switch a.Kind {
	case AxisNone:
	case AxisStep:
		if math.IsNaN(a.Step) || math.IsInf(a.Step, 0) || a.Step <= 0 {
			return ErrInvalidSpacing{Value: a.Step, Reason: "spacing must be a positive number"}
		}
	case AxisPositions:
		for _, v := range a.Positions {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ErrInvalidSpacing{Value: a.Positions, Reason: "positions must be finite"}
			}
		}
	default:
		return ErrInvalidSpacing{Value: a.Kind, Reason: "unknown axis kind"}
	}
	return nil
}

func (a Axis) String() string {
	switch a.Kind {
	case AxisStep:
		return fmt.Sprintf("%v", a.Step)
	case AxisPositions:
		return fmt.Sprintf("%v", a.Positions)
	default:
		return "none"
	}
}

// Spacing selects where grid lines are drawn. The zero value has no lines.
type Spacing struct {
	Lon, Lat Axis
	auto     bool
}

// Fixed spaces both axes by d degrees.
func Fixed(d float64) Spacing { return Spacing{Lon: Step(d), Lat: Step(d)} }

// FixedPair spaces longitude by lon and latitude by lat degrees.
func FixedPair(lon, lat float64) Spacing { return Spacing{Lon: Step(lon), Lat: Step(lat)} }

// Explicit draws lines at the given values; an empty list draws no lines on that axis.
func Explicit(lons, lats []float64) Spacing {
	return Spacing{Lon: Positions(lons...), Lat: Positions(lats...)}
}

// PerAxis combines independently configured axes.
func PerAxis(lon, lat Axis) Spacing { return Spacing{Lon: lon, Lat: lat} }

// Auto derives the spacing from the viewport; the number of lines per axis is
// set on the grid.
func Auto() Spacing { return Spacing{auto: true} }

// IsAuto reports whether the spacing depends on the viewport.
func (s Spacing) IsAuto() bool { return s.auto }

// Validate checks the spacing can generate lines.
func (s Spacing) Validate() error {
	if s.auto {
		return nil
	}
	if err := s.Lon.validate(); err != nil {
		return err
	}
	return s.Lat.validate()
}

func (s Spacing) axis(i int) Axis {
	if i == 0 {
		return s.Lon
	}
	return s.Lat
}

func (s Spacing) String() string {
	if s.auto {
		return "auto"
	}
	return fmt.Sprintf("(%v, %v)", s.Lon, s.Lat)
}

// ParseSpacing reads a loosely typed spacing, as decoded from a config file:
//
//	nil                          auto
//	10                           every 10 degrees on both axes
//	[-10, 0, 10]                 the same positions on both axes
//	[10, [0, 45]] or [2]any{}    per axis pair, each a number, a list or nil
//	{lon = 10, lat = [0, 45]}    per axis pair
func ParseSpacing(v interface{}) (Spacing, error) {
	var s Spacing
	switch val := v.(type) {
	case nil:
		return Auto(), nil
	case Spacing:
		s = val
	case [2]float64:
		s = FixedPair(val[0], val[1])
	case [2][]float64:
		s = Explicit(val[0], val[1])
	case [2]interface{}:
		return parsePair(v, val[0], val[1])
	case map[string]interface{}:
		for k := range val {
			if k != "lon" && k != "lat" {
				return s, ErrInvalidSpacing{Value: v, Reason: fmt.Sprintf("unknown key %q", k)}
			}
		}
		return parsePair(v, val["lon"], val["lat"])
	case []interface{}:
		hasList := false
		for _, e := range val {
			switch e.(type) {
			case []interface{}, []float64, []int64, []int, nil:
				hasList = true
			}
		}
		if !hasList {
			pos, err := parsePositions(v, val)
			if err != nil {
				return s, err
			}
			s = Explicit(pos, pos)
			break
		}
		if len(val) != 2 {
			return s, ErrInvalidSpacing{Value: v, Reason: fmt.Sprintf("expected a pair, got %d entries", len(val))}
		}
		return parsePair(v, val[0], val[1])
	default:
		ax, err := parseAxis(v, v)
		if err != nil {
			return s, err
		}
		s = Spacing{Lon: ax, Lat: ax}
	}
	return s, s.Validate()
}

func parsePair(orig, lon, lat interface{}) (Spacing, error) {
	lonAxis, err := parseAxis(orig, lon)
	if err != nil {
		return Spacing{}, err
	}
	latAxis, err := parseAxis(orig, lat)
	if err != nil {
		return Spacing{}, err
	}
	s := PerAxis(lonAxis, latAxis)
	return s, s.Validate()
}

func parseAxis(orig, v interface{}) (Axis, error) {
	if v == nil {
		return NoLines, nil
	}
	if f, ok := number(v); ok {
		return Step(f), nil
	}
	switch val := v.(type) {
	case []float64:
		return Positions(val...), nil
	case []int64, []int, []interface{}:
		pos, err := parsePositions(orig, val)
		if err != nil {
			return NoLines, err
		}
		return Positions(pos...), nil
	}
	return NoLines, ErrInvalidSpacing{Value: orig, Reason: fmt.Sprintf("unsupported type %T", v)}
}

func parsePositions(orig, v interface{}) ([]float64, error) {
	var out []float64
	switch val := v.(type) {
	case []int64:
		for _, i := range val {
			out = append(out, float64(i))
		}
	case []int:
		for _, i := range val {
			out = append(out, float64(i))
		}
	case []interface{}:
		for _, e := range val {
			f, ok := number(e)
			if !ok {
				return nil, ErrInvalidSpacing{Value: orig, Reason: fmt.Sprintf("unsupported position type %T", e)}
			}
			out = append(out, f)
		}
	}
	return out, nil
}

// number converts the numeric types a config decoder produces.
func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}

// ParseWhere reads a label side mask such as "all", "NS" or "e".
func ParseWhere(s string) (Where, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return All, nil
	}
	var w Where
	for _, r := range strings.ToUpper(s) {
		switch r {
		case 'N':
			w |= North
		case 'S':
			w |= South
		case 'E':
			w |= East
		case 'W':
			w |= West
		default:
			return 0, ErrInvalidLabelOption{Option: "where", Value: s}
		}
	}
	if w == 0 {
		return 0, ErrInvalidLabelOption{Option: "where", Value: s}
	}
	return w, nil
}

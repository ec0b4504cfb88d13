package render

import (
	"fmt"
	"math"

	"github.com/go-spatial/geom"
)

// DefaultOutlineSamples is the number of points per side used to trace the
// projected outline of a view.
const DefaultOutlineSamples = 50

// View is a rectangular Viewport: the projected lon/lat extent is stretched
// over an axes rectangle given in figure pixels, y pointing up.
type View struct {
	projection Projector
	extent     geom.Extent
	data       geom.Extent
	axes       geom.Extent
	dpi        float64

	// Outline traces the boundary along the projected edges of the extent
	// instead of the axes rectangle.
	Outline bool
}

// NewView returns a view of extent (minlon, minlat, maxlon, maxlat) drawn
// into the axes rectangle at dpi.
func NewView(proj Projector, extent geom.Extent, axes geom.Extent, dpi float64) (*View, error) {
	v := &View{
		projection: proj,
		axes:       axes,
		dpi:        dpi,
	}
	if axes.XSpan() <= 0 || axes.YSpan() <= 0 {
		return nil, fmt.Errorf("invalid axes rectangle %v", axes)
	}
	if dpi <= 0 {
		return nil, fmt.Errorf("invalid dpi %v", dpi)
	}
	if err := v.SetExtent(extent); err != nil {
		return nil, err
	}
	return v, nil
}

func clampExtent(e geom.Extent) geom.Extent {
	return geom.Extent{
		math.Max(e[0], -180), math.Max(e[1], -90),
		math.Min(e[2], 180), math.Min(e[3], 90),
	}
}

// SetExtent changes the visible lon/lat extent.
func (v *View) SetExtent(extent geom.Extent) error {
	extent = clampExtent(extent)
	if extent.XSpan() <= 0 || extent.YSpan() <= 0 {
		return fmt.Errorf("invalid extent %v", extent)
	}
	lons, lats := outline(extent, 2)
	xs, ys, err := v.projection.Project(lons, lats)
	if err != nil {
		return err
	}
	data := geom.Extent{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for i := range xs {
		data[0], data[1] = math.Min(data[0], xs[i]), math.Min(data[1], ys[i])
		data[2], data[3] = math.Max(data[2], xs[i]), math.Max(data[3], ys[i])
	}
	if data.XSpan() <= 0 || data.YSpan() <= 0 {
		return fmt.Errorf("extent %v projects to an empty area", extent)
	}
	v.extent, v.data = extent, data
	return nil
}

// Pan shifts the extent by the given degrees, stopping at the globe's edges.
func (v *View) Pan(dlon, dlat float64) error {
	e := v.extent
	if e[0]+dlon < -180 {
		dlon = -180 - e[0]
	}
	if e[2]+dlon > 180 {
		dlon = 180 - e[2]
	}
	if e[1]+dlat < -90 {
		dlat = -90 - e[1]
	}
	if e[3]+dlat > 90 {
		dlat = 90 - e[3]
	}
	return v.SetExtent(geom.Extent{e[0] + dlon, e[1] + dlat, e[2] + dlon, e[3] + dlat})
}

// Zoom scales the extent around its center; a factor above one zooms in.
func (v *View) Zoom(factor float64) error {
	if factor <= 0 {
		return fmt.Errorf("invalid zoom factor %v", factor)
	}
	e := v.extent
	cx, cy := e[0]+e.XSpan()/2, e[1]+e.YSpan()/2
	hw, hh := e.XSpan()/(2*factor), e.YSpan()/(2*factor)
	return v.SetExtent(geom.Extent{cx - hw, cy - hh, cx + hw, cy + hh})
}

// Resize moves the axes rectangle.
func (v *View) Resize(axes geom.Extent) error {
	if axes.XSpan() <= 0 || axes.YSpan() <= 0 {
		return fmt.Errorf("invalid axes rectangle %v", axes)
	}
	v.axes = axes
	return nil
}

// SetDPI changes the rendering dpi.
func (v *View) SetDPI(dpi float64) error {
	if dpi <= 0 {
		return fmt.Errorf("invalid dpi %v", dpi)
	}
	v.dpi = dpi
	return nil
}

// Projection returns the view's projection.
func (v *View) Projection() Projector { return v.projection }

// Extent implements Viewport
func (v *View) Extent() geom.Extent { return v.extent }

// AxisPosition implements Viewport
func (v *View) AxisPosition() geom.Extent { return v.axes }

// DPI implements Viewport
func (v *View) DPI() float64 { return v.dpi }

// DataToScreen implements Viewport
func (v *View) DataToScreen(x, y float64) (float64, float64) {
	return v.axes[0] + (x-v.data[0])/v.data.XSpan()*v.axes.XSpan(),
		v.axes[1] + (y-v.data[1])/v.data.YSpan()*v.axes.YSpan()
}

// ScreenToAxes implements Viewport
func (v *View) ScreenToAxes(x, y float64) (float64, float64) {
	return (x - v.axes[0]) / v.axes.XSpan(), (y - v.axes[1]) / v.axes.YSpan()
}

// Boundary implements Viewport. The ring is closed.
func (v *View) Boundary() [][2]float64 {
	if !v.Outline {
		a := v.axes
		return [][2]float64{
			{a[0], a[1]}, {a[2], a[1]}, {a[2], a[3]}, {a[0], a[3]}, {a[0], a[1]},
		}
	}
	lons, lats := outline(v.extent, DefaultOutlineSamples)
	xs, ys, err := v.projection.Project(lons, lats)
	if err != nil {
		return nil
	}
	ring := make([][2]float64, 0, len(xs)+1)
	for i := range xs {
		sx, sy := v.DataToScreen(xs[i], ys[i])
		ring = append(ring, [2]float64{sx, sy})
	}
	return append(ring, ring[0])
}

// outline samples the edges of e counter clockwise, starting at the lower left.
func outline(e geom.Extent, n int) (lons, lats []float64) {
	if n < 2 {
		n = 2
	}
	edge := func(x0, y0, x1, y1 float64) {
		for i := 0; i < n-1; i++ {
			t := float64(i) / float64(n-1)
			lons = append(lons, x0+t*(x1-x0))
			lats = append(lats, y0+t*(y1-y0))
		}
	}
	edge(e[0], e[1], e[2], e[1])
	edge(e[2], e[1], e[2], e[3])
	edge(e[2], e[3], e[0], e[3])
	edge(e[0], e[3], e[0], e[1])
	return lons, lats
}

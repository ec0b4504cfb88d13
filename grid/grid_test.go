package grid

import (
	"errors"
	"testing"

	"github.com/go-spatial/eomaps/render"
	"github.com/go-spatial/eomaps/render/svg"
	"github.com/go-spatial/geom"
)

// testMap is a 340x160 pixel plate carree map of lon -170..170, lat -80..80,
// so figure pixels are x = lon+170 and y = lat+80.
type testMap struct {
	proj    *flakyProjector
	view    *render.View
	canvas  *svg.Canvas
	factory *Factory
}

func newTestMap(t *testing.T) *testMap {
	t.Helper()
	proj := &flakyProjector{Projector: render.PlateCarree{}}
	view, err := render.NewView(proj, geom.Extent{-170, -80, 170, 80}, geom.Extent{0, 0, 340, 160}, 100)
	if err != nil {
		t.Fatalf("new view, expected nil got %v", err)
	}
	canvas := svg.New(view, 340, 160, "base")
	f, err := NewFactory(Surface{Projection: proj, View: view, Manager: canvas, Hooks: canvas, Layer: "base"})
	if err != nil {
		t.Fatalf("new factory, expected nil got %v", err)
	}
	return &testMap{proj: proj, view: view, canvas: canvas, factory: f}
}

func (m *testMap) grid(t *testing.T, opts GridOptions) *Lines {
	t.Helper()
	g, err := m.factory.AddGrid(opts)
	if err != nil {
		t.Fatalf("add grid, expected nil got %v", err)
	}
	return g
}

// flakyProjector fails while fail is set.
type flakyProjector struct {
	render.Projector
	fail bool
}

var errProjection = errors.New("projection failed")

func (p *flakyProjector) Project(lons, lats []float64) ([]float64, []float64, error) {
	if p.fail {
		return nil, nil, errProjection
	}
	return p.Projector.Project(lons, lats)
}

// fakeView is a viewport with a hand made boundary. Plot units are degrees;
// pixels are x = (lon+sx0)*sx and y = (lat+sy0)*sy on a 100x100 axes.
type fakeView struct {
	boundary [][2]float64
	sx0, sx  float64
	sy0, sy  float64
}

func (v *fakeView) Extent() geom.Extent       { return geom.Extent{-180, -90, 180, 90} }
func (v *fakeView) AxisPosition() geom.Extent { return geom.Extent{0, 0, 100, 100} }
func (v *fakeView) DPI() float64              { return 100 }
func (v *fakeView) DataToScreen(x, y float64) (float64, float64) {
	return (x + v.sx0) * v.sx, (y + v.sy0) * v.sy
}
func (v *fakeView) ScreenToAxes(x, y float64) (float64, float64) { return x / 100, y / 100 }
func (v *fakeView) Boundary() [][2]float64                        { return v.boundary }

func newFakeFactory(t *testing.T, view *fakeView) (*Factory, *svg.Canvas) {
	t.Helper()
	canvas := svg.New(view, 100, 100, "base")
	f, err := NewFactory(Surface{Projection: render.PlateCarree{}, View: view, Manager: canvas, Hooks: canvas})
	if err != nil {
		t.Fatalf("new factory, expected nil got %v", err)
	}
	return f, canvas
}

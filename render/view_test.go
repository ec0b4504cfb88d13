package render

import (
	"testing"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/cmp"
)

var (
	globe     = geom.Extent{-180, -90, 180, 90}
	globeAxes = geom.Extent{0, 0, 360, 180}
)

func TestNewView(t *testing.T) {
	tests := map[string]struct {
		extent geom.Extent
		axes   geom.Extent
		dpi    float64
		err    bool
	}{
		"ok":           {extent: globe, axes: globeAxes, dpi: 100},
		"empty axes":   {extent: globe, axes: geom.Extent{0, 0, 0, 10}, dpi: 100, err: true},
		"zero dpi":     {extent: globe, axes: globeAxes, err: true},
		"empty extent": {extent: geom.Extent{10, 0, 10, 20}, axes: globeAxes, dpi: 100, err: true},
		"off globe":    {extent: geom.Extent{190, 0, 200, 20}, axes: globeAxes, dpi: 100, err: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewView(PlateCarree{}, tc.extent, tc.axes, tc.dpi)
			if tc.err != (err != nil) {
				t.Errorf("error, expected error %v got %v", tc.err, err)
			}
		})
	}
}

func newGlobeView(t *testing.T) *View {
	t.Helper()
	v, err := NewView(PlateCarree{}, globe, globeAxes, 100)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestViewTransforms(t *testing.T) {
	v := newGlobeView(t)
	x, y := v.DataToScreen(0, 0)
	if !cmp.Float(x, 180) || !cmp.Float(y, 90) {
		t.Errorf("data to screen, expected (180, 90) got (%v, %v)", x, y)
	}
	x, y = v.DataToScreen(-90, 45)
	if !cmp.Float(x, 90) || !cmp.Float(y, 135) {
		t.Errorf("data to screen, expected (90, 135) got (%v, %v)", x, y)
	}
	ax, ay := v.ScreenToAxes(90, 135)
	if !cmp.Float(ax, .25) || !cmp.Float(ay, .75) {
		t.Errorf("screen to axes, expected (0.25, 0.75) got (%v, %v)", ax, ay)
	}

	if err := v.Resize(geom.Extent{10, 10, 190, 100}); err != nil {
		t.Fatal(err)
	}
	x, y = v.DataToScreen(180, 90)
	if !cmp.Float(x, 190) || !cmp.Float(y, 100) {
		t.Errorf("resized, expected (190, 100) got (%v, %v)", x, y)
	}
	if err := v.Resize(geom.Extent{10, 10, 5, 100}); err == nil {
		t.Errorf("resize, expected an error got nil")
	}
	if err := v.SetDPI(-1); err == nil || v.DPI() != 100 {
		t.Errorf("dpi, expected an error and 100 got %v and %v", err, v.DPI())
	}
}

func TestViewNavigation(t *testing.T) {
	type tcase struct {
		start  geom.Extent
		move   func(v *View) error
		extent geom.Extent
		err    bool
	}
	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			v, err := NewView(PlateCarree{}, tc.start, globeAxes, 100)
			if err != nil {
				t.Fatal(err)
			}
			err = tc.move(v)
			if tc.err != (err != nil) {
				t.Fatalf("error, expected error %v got %v", tc.err, err)
			}
			if got := v.Extent(); got != tc.extent {
				t.Errorf("extent, expected %v got %v", tc.extent, got)
			}
		}
	}
	ten := geom.Extent{-10, -10, 10, 10}
	tests := map[string]tcase{
		"pan": {
			start:  ten,
			move:   func(v *View) error { return v.Pan(20, 5) },
			extent: geom.Extent{10, -5, 30, 15},
		},
		"pan stops at the edge": {
			start:  ten,
			move:   func(v *View) error { return v.Pan(-200, 100) },
			extent: geom.Extent{-180, 70, -160, 90},
		},
		"pan the globe": {
			start:  globe,
			move:   func(v *View) error { return v.Pan(30, 0) },
			extent: globe,
		},
		"zoom in": {
			start:  ten,
			move:   func(v *View) error { return v.Zoom(2) },
			extent: geom.Extent{-5, -5, 5, 5},
		},
		"zoom out clamps": {
			start:  ten,
			move:   func(v *View) error { return v.Zoom(0.01) },
			extent: globe,
		},
		"bad zoom": {
			start: ten,
			move:  func(v *View) error { return v.Zoom(0) },
			err:   true, extent: ten,
		},
		"bad extent keeps the old one": {
			start: ten,
			move:  func(v *View) error { return v.SetExtent(geom.Extent{5, 5, 5, 6}) },
			err:   true, extent: ten,
		},
	}
	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

// area is the signed area of a closed ring, positive when counter clockwise.
func area(ring [][2]float64) (a float64) {
	for i := 0; i < len(ring)-1; i++ {
		a += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return a / 2
}

func TestBoundary(t *testing.T) {
	v := newGlobeView(t)

	ring := v.Boundary()
	want := [][2]float64{{0, 0}, {360, 0}, {360, 180}, {0, 180}, {0, 0}}
	if len(ring) != len(want) {
		t.Fatalf("ring, expected %v got %v", want, ring)
	}
	for i := range want {
		if ring[i] != want[i] {
			t.Errorf("ring %v, expected %v got %v", i, want[i], ring[i])
		}
	}

	v.Outline = true
	ring = v.Boundary()
	if len(ring) != 4*(DefaultOutlineSamples-1)+1 {
		t.Fatalf("outline, expected %v points got %v", 4*(DefaultOutlineSamples-1)+1, len(ring))
	}
	if ring[0] != ring[len(ring)-1] {
		t.Errorf("outline, expected a closed ring got %v ... %v", ring[0], ring[len(ring)-1])
	}
	lr := ring[DefaultOutlineSamples-1]
	if !cmp.Float(lr[0], 360) || !cmp.Float(lr[1], 0) {
		t.Errorf("outline, expected the lower right corner after the bottom edge got %v", lr)
	}
	if a := area(ring); !cmp.Float(a, 360*180) {
		t.Errorf("outline area, expected %v got %v", 360*180, a)
	}
}

package render

import (
	"math"
	"testing"

	"github.com/go-spatial/geom/cmp"
)

func TestProject(t *testing.T) {
	type tcase struct {
		proj Projector
		lons []float64
		lats []float64
		xs   []float64
		ys   []float64
		// tol is the allowed absolute error
		tol float64
		err error
	}
	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			xs, ys, err := tc.proj.Project(tc.lons, tc.lats)
			if err != tc.err {
				t.Fatalf("error, expected %v got %v", tc.err, err)
			}
			if tc.err != nil {
				return
			}
			if len(xs) != len(tc.xs) || len(ys) != len(tc.ys) {
				t.Fatalf("len, expected %v,%v got %v,%v", len(tc.xs), len(tc.ys), len(xs), len(ys))
			}
			for i := range xs {
				if tc.tol == 0 {
					if !cmp.Float(xs[i], tc.xs[i]) || !cmp.Float(ys[i], tc.ys[i]) {
						t.Errorf("point %v, expected (%v, %v) got (%v, %v)", i, tc.xs[i], tc.ys[i], xs[i], ys[i])
					}
					continue
				}
				if math.Abs(xs[i]-tc.xs[i]) > tc.tol || math.Abs(ys[i]-tc.ys[i]) > tc.tol {
					t.Errorf("point %v, expected (%v, %v) got (%v, %v)", i, tc.xs[i], tc.ys[i], xs[i], ys[i])
				}
			}
		}
	}
	half := EarthRadius * math.Pi
	tests := map[string]tcase{
		"platecarree": {
			proj: PlateCarree{},
			lons: []float64{-180, 0, 45, 180},
			lats: []float64{-90, 0, 30, 90},
			xs:   []float64{-180, 0, 45, 180},
			ys:   []float64{-90, 0, 30, 90},
		},
		"platecarree central longitude": {
			proj: PlateCarree{CentralLongitude: -170},
			lons: []float64{170, -170, 0},
			lats: []float64{0, 0, 0},
			xs:   []float64{-20, 0, 170},
			ys:   []float64{0, 0, 0},
		},
		"mercator": {
			proj: Mercator{},
			lons: []float64{0, 180, -90},
			lats: []float64{0, MaxMercatorLatitude, 0},
			xs:   []float64{0, half, -half / 2},
			ys:   []float64{0, half, 0},
			tol:  1e-3,
		},
		"mercator clamps the poles": {
			proj: Mercator{CentralLongitude: 90},
			lons: []float64{90, 90},
			lats: []float64{90, -90},
			xs:   []float64{0, 0},
			ys:   []float64{half, -half},
			tol:  1e-3,
		},
		"empty": {
			proj: Mercator{},
			xs:   []float64{},
			ys:   []float64{},
		},
		"length mismatch": {
			proj: PlateCarree{},
			lons: []float64{1, 2},
			lats: []float64{1},
			err:  ErrLengthMismatch,
		},
		"mercator length mismatch": {
			proj: Mercator{},
			lons: []float64{1},
			err:  ErrLengthMismatch,
		},
	}
	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

package grid

import (
	"errors"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
)

func TestParseSpacing(t *testing.T) {
	type tcase struct {
		in      interface{}
		spacing Spacing
		err     bool
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			s, err := ParseSpacing(tc.in)
			if tc.err {
				var want ErrInvalidSpacing
				if !errors.As(err, &want) {
					t.Errorf("error, expected ErrInvalidSpacing got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("error, expected nil got %v", err)
			}
			if !gocmp.Equal(tc.spacing, s, gocmp.AllowUnexported(Spacing{})) {
				t.Errorf("spacing, expected %v got %v", tc.spacing, s)
			}
		}
	}

	tests := map[string]tcase{
		"nil is auto":      {in: nil, spacing: Auto()},
		"int":              {in: int64(10), spacing: Fixed(10)},
		"float":            {in: 2.5, spacing: Fixed(2.5)},
		"pair array":       {in: [2]float64{10, 20}, spacing: FixedPair(10, 20)},
		"positions array":  {in: [2][]float64{{0, 10}, {5}}, spacing: Explicit([]float64{0, 10}, []float64{5})},
		"positions list":   {in: []interface{}{int64(-10), 0.0, int64(10)}, spacing: Explicit([]float64{-10, 0, 10}, []float64{-10, 0, 10})},
		"number and list":  {in: []interface{}{int64(10), []interface{}{0.0, 45.0}}, spacing: PerAxis(Step(10), Positions(0, 45))},
		"nil axis in list": {in: []interface{}{nil, int64(30)}, spacing: PerAxis(NoLines, Step(30))},
		"any pair":         {in: [2]interface{}{5.0, nil}, spacing: PerAxis(Step(5), NoLines)},
		"table": {
			in:      map[string]interface{}{"lon": int64(15), "lat": []interface{}{int64(0)}},
			spacing: PerAxis(Step(15), Positions(0)),
		},
		"spacing passes through": {in: FixedPair(1, 2), spacing: FixedPair(1, 2)},
		"zero":                   {in: 0, err: true},
		"negative":               {in: -5.0, err: true},
		"negative in pair":       {in: [2]float64{10, -1}, err: true},
		"string":                 {in: "10", err: true},
		"triple with a list":     {in: []interface{}{int64(1), []interface{}{2.0}, int64(3)}, err: true},
		"unknown table key":      {in: map[string]interface{}{"x": 1}, err: true},
		"string position":        {in: []interface{}{[]interface{}{"a"}, nil}, err: true},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

func TestParseWhere(t *testing.T) {
	tests := map[string]struct {
		where Where
		err   bool
	}{
		"all":  {where: All},
		"ALL":  {where: All},
		"SN":   {where: North | South},
		"e":    {where: East},
		"NSEW": {where: North | South | East | West},
		"":     {err: true},
		"X":    {err: true},
		"N S":  {err: true},
	}
	for in, tc := range tests {
		t.Run(in, func(t *testing.T) {
			w, err := ParseWhere(in)
			if tc.err {
				var want ErrInvalidLabelOption
				if !errors.As(err, &want) {
					t.Errorf("error, expected ErrInvalidLabelOption got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("error, expected nil got %v", err)
			}
			if w != tc.where {
				t.Errorf("where, expected %v got %v", tc.where, w)
			}
		})
	}
}

func TestBoundsValidate(t *testing.T) {
	tests := map[string]struct {
		bounds Bounds
		valid  bool
	}{
		"globe":         {bounds: Globe, valid: true},
		"europe":        {bounds: Bounds{LonMin: -20, LonMax: 40, LatMin: -20, LatMax: 60}, valid: true},
		"past the pole": {bounds: Bounds{LonMin: -20, LonMax: 40, LatMin: -20, LatMax: 91}},
		"inverted":      {bounds: Bounds{LonMin: 40, LonMax: -20, LatMin: -20, LatMax: 60}},
		"empty":         {bounds: Bounds{LonMin: 10, LonMax: 10, LatMin: -20, LatMax: 60}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.bounds.Validate()
			if tc.valid != (err == nil) {
				t.Errorf("valid, expected %v got %v", tc.valid, err)
			}
		})
	}
}

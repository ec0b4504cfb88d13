package grid

import (
	"math"
	"sort"
)

const (
	// DefaultN is the number of sample points along each grid line.
	DefaultN = 100
	// DefaultAutoN is the number of lines targeted per axis by auto grids.
	DefaultAutoN = 10

	// clipTolerance absorbs float noise of generated positions at the bounds.
	clipTolerance = 1e-9
)

// Line is one grid line sampled in lon/lat.
type Line struct {
	// Value is the longitude of a meridian or the latitude of a parallel.
	Value  float64
	Points [][2]float64
}

// LineSet holds the meridians and parallels of a grid.
type LineSet struct {
	Meridians []Line
	Parallels []Line
	// DLon and DLat are the resolved spacing of step and auto axes, zero otherwise.
	DLon, DLat float64
}

// Axis returns the meridians for 0 and the parallels for 1.
func (ls LineSet) Axis(i int) []Line {
	if i == 0 {
		return ls.Meridians
	}
	return ls.Parallels
}

// Values returns the line values of an axis.
func (ls LineSet) Values(i int) []float64 {
	var vals []float64
	for _, l := range ls.Axis(i) {
		vals = append(vals, l.Value)
	}
	return vals
}

// Len is the total number of lines.
func (ls LineSet) Len() int { return len(ls.Meridians) + len(ls.Parallels) }

var globalAxis = [2][2]float64{{-180, 180}, {-90, 90}}

// ComputeLines generates the grid lines of spacing within bounds, each sampled
// with n points. Auto spacing targets autoN lines per axis over view, the
// current lon/lat extent.
func ComputeLines(spacing Spacing, bounds Bounds, n int, autoN [2]int, view Bounds) (LineSet, error) {
	var ls LineSet
	if err := spacing.Validate(); err != nil {
		return ls, err
	}
	if err := bounds.Validate(); err != nil {
		return ls, err
	}
	if n < 2 {
		return ls, ErrInvalidSpacing{Value: n, Reason: "at least 2 sample points are needed"}
	}

	var (
		values [2][]float64
		extent = bounds
	)
	if spacing.IsAuto() {
		if autoN[0] < 1 || autoN[1] < 1 {
			return ls, ErrInvalidSpacing{Value: autoN, Reason: "auto line count must be at least 1"}
		}
		var d [2]float64
		values, d, extent = autoValues(bounds, view, autoN)
		ls.DLon, ls.DLat = d[0], d[1]
	} else {
		for i := range values {
			ax := spacing.axis(i)
			min, max := bounds.axis(i)
			switch ax.Kind {
			case AxisStep:
				values[i] = arange(min, max+ax.Step, ax.Step)
				if i == 0 {
					ls.DLon = ax.Step
				} else {
					ls.DLat = ax.Step
				}
			case AxisPositions:
				values[i] = append([]float64(nil), ax.Positions...)
			}
			values[i] = dedup(clip(values[i], min, max))
		}
	}
	values[0] = dedupWrap(values[0])

	latMin, latMax := extent.axis(1)
	for _, lon := range values[0] {
		line := Line{Value: lon, Points: make([][2]float64, n)}
		for j, lat := range linspace(latMin, latMax, n) {
			line.Points[j] = [2]float64{lon, lat}
		}
		ls.Meridians = append(ls.Meridians, line)
	}
	lonMin, lonMax := extent.axis(0)
	for _, lat := range values[1] {
		line := Line{Value: lat, Points: make([][2]float64, n)}
		for j, lon := range linspace(lonMin, lonMax, n) {
			line.Points[j] = [2]float64{lon, lat}
		}
		ls.Parallels = append(ls.Parallels, line)
	}
	return ls, nil
}

// autoValues picks line positions for auto spacing. It returns the positions,
// the spacing of each axis, and the extent the lines are sampled over.
func autoValues(bounds, view Bounds, target [2]int) (values [2][]float64, d [2]float64, extent Bounds) {
	ext := bounds.Intersect(view)
	var work [2][2]float64
	for i := range work {
		lo, hi := ext.axis(i)
		span := hi - lo
		if span <= 0 {
			continue
		}
		mag := math.Pow(10, math.Floor(math.Log10(span)))
		work[i][0] = math.Max(globalAxis[i][0], math.Floor(lo/mag)*mag)
		work[i][1] = math.Min(globalAxis[i][1], math.Ceil(hi/mag)*mag)
		d[i] = ceilSignificant((work[i][1]-work[i][0])/float64(target[i]), 2)
	}
	if target[0] == target[1] && d[0] > 0 && d[1] > 0 {
		d[0] = math.Max(d[0], d[1])
		d[1] = d[0]
	}

	extent = bounds
	for i := range work {
		if d[i] <= 0 {
			continue
		}
		bmin, bmax := bounds.axis(i)
		lo, hi := math.Max(work[i][0], bmin), math.Min(work[i][1], bmax)
		if i == 0 {
			extent.LonMin, extent.LonMax = lo, hi
		} else {
			extent.LatMin, extent.LatMax = lo, hi
		}
		// the lattice is made of multiples of d, generated 10 steps past the
		// globe on both sides before being clipped
		start := math.Floor((globalAxis[i][0]-10*d[i])/d[i]) * d[i]
		values[i] = dedup(clip(arange(start, globalAxis[i][1]+10*d[i], d[i]), lo, hi))
	}
	return values, d, extent
}

// ceilSignificant rounds v up to digits significant digits.
func ceilSignificant(v float64, digits int) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	scale := math.Pow(10, math.Floor(math.Log10(v))-float64(digits-1))
	return math.Ceil(v/scale-clipTolerance) * scale
}

// arange returns start, start+step, ... below stop.
func arange(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return nil
	}
	count := int(math.Ceil((stop - start) / step))
	out := make([]float64, count)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + (stop-start)*float64(i)/float64(n-1)
	}
	out[n-1] = stop
	return out
}

// clip keeps the values inside min..max, snapping values within tolerance
// of a bound onto it.
func clip(values []float64, min, max float64) []float64 {
	tol := clipTolerance * math.Max(1, max-min)
	out := values[:0:0]
	for _, v := range values {
		switch {
		case v < min-tol || v > max+tol:
			continue
		case v < min:
			v = min
		case v > max:
			v = max
		}
		out = append(out, v)
	}
	return out
}

// dedup drops repeated values, keeping the first occurrence.
func dedup(values []float64) []float64 {
	seen := make(map[float64]bool, len(values))
	out := values[:0:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// dedupWrap drops a meridian that is another one shifted by 360 degrees.
func dedupWrap(lons []float64) []float64 {
	if len(lons) < 2 {
		return lons
	}
	sorted := append([]float64(nil), lons...)
	sort.Float64s(sorted)
	if math.Abs(sorted[len(sorted)-1]-sorted[0]-360) > clipTolerance {
		return lons
	}
	drop := sorted[len(sorted)-1]
	out := lons[:0:0]
	for _, v := range lons {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}

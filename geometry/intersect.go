// Package geometry provides the segment primitives used to locate where grid
// lines cross a map boundary.
package geometry

import (
	"math"

	"github.com/go-spatial/geom"
)

// Parallel is the sentinel returned by LineIntersection for lines that never meet.
var Parallel = geom.Point{math.Inf(1), math.Inf(1)}

// CCW reports whether the points a, b, c are in counter clockwise order.
func CCW(a, b, c [2]float64) bool {
	return (c[1]-a[1])*(b[0]-a[0]) > (b[1]-a[1])*(c[0]-a[0])
}

// CCWAll evaluates CCW for each triple (a[i], b[i], c[i]). A batch with a
// single point is broadcast against the others, so one segment can be tested
// against every edge of a boundary in one call.
func CCWAll(a, b, c [][2]float64) ([]bool, error) {
	n := 1
	for _, l := range []int{len(a), len(b), len(c)} {
		switch {
		case l == 0:
			return nil, nil
		case l == 1 || l == n:
		case n == 1:
			n = l
		default:
			return nil, ErrShapeMismatch
		}
	}
	at := func(pts [][2]float64, i int) [2]float64 {
		if len(pts) == 1 {
			return pts[0]
		}
		return pts[i]
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = CCW(at(a, i), at(b, i), at(c, i))
	}
	return out, nil
}

// SegmentsIntersect reports whether segment ab crosses segment cd.
// Collinear overlapping segments are not special cased and are
// generally reported as not intersecting.
func SegmentsIntersect(a, b, c, d [2]float64) bool {
	return CCW(a, c, d) != CCW(b, c, d) && CCW(a, b, c) != CCW(a, b, d)
}

// Intersects is SegmentsIntersect for geom.Line values.
func Intersects(l1, l2 geom.Line) bool {
	return SegmentsIntersect(l1[0], l1[1], l2[0], l2[1])
}

// LineIntersection returns the point where the infinite line through a1, a2
// meets the infinite line through b1, b2. Parallel lines return Parallel.
func LineIntersection(a1, a2, b1, b2 [2]float64) geom.Point {
	l1 := cross(homogeneous(a1), homogeneous(a2))
	l2 := cross(homogeneous(b1), homogeneous(b2))
	p := cross(l1, l2)
	if p[2] == 0 {
		return Parallel
	}
	return geom.Point{p[0] / p[2], p[1] / p[2]}
}

// IsParallel reports whether pt is the Parallel sentinel.
func IsParallel(pt [2]float64) bool {
	return math.IsInf(pt[0], 1) && math.IsInf(pt[1], 1)
}

func homogeneous(pt [2]float64) [3]float64 { return [3]float64{pt[0], pt[1], 1} }

func cross(u, v [3]float64) [3]float64 {
	return [3]float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

// Crossing is a point where a segment crosses an edge of a ring.
type Crossing struct {
	Point geom.Point
	// Edge is the index of the first vertex of the crossed edge.
	Edge int
	// Segment is the index of the first vertex of the crossing polyline segment.
	Segment int
}

// EdgeOf returns the crossed edge of ring.
func (c Crossing) EdgeOf(ring [][2]float64) geom.Line {
	return geom.Line{ring[c.Edge], ring[c.Edge+1]}
}

// Crossings returns every point where the polyline crosses the ring. The ring
// is read as an open vertex sequence; callers close it by repeating the first
// vertex. Crossings are ordered by polyline segment then by ring edge.
func Crossings(polyline, ring [][2]float64) []Crossing {
	if len(polyline) < 2 || len(ring) < 2 {
		return nil
	}
	starts, ends := ring[:len(ring)-1], ring[1:]

	var found []Crossing
	for s := 0; s+1 < len(polyline); s++ {
		a, b := polyline[s], polyline[s+1]
		// a and b against every edge at once
		o1, _ := CCWAll([][2]float64{a}, starts, ends)
		o2, _ := CCWAll([][2]float64{b}, starts, ends)
		o3, _ := CCWAll([][2]float64{a}, [][2]float64{b}, starts)
		o4, _ := CCWAll([][2]float64{a}, [][2]float64{b}, ends)
		for e := range starts {
			if o1[e] == o2[e] || o3[e] == o4[e] {
				continue
			}
			pt := LineIntersection(a, b, starts[e], ends[e])
			if IsParallel(pt) {
				continue
			}
			found = append(found, Crossing{Point: pt, Edge: e, Segment: s})
		}
	}
	return found
}

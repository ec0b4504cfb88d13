package grid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-spatial/eomaps/geometry"
	"github.com/go-spatial/eomaps/render"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/tegola/dict"
	"github.com/prometheus/common/log"
)

const (
	// ReferenceDPI is the dpi at which label offsets are given in pixels.
	ReferenceDPI = 100.0

	// DefaultWhere labels the northern and southern boundary.
	DefaultWhere = "SN"
	// DefaultLabelOffset is the default offset along the label rotation.
	DefaultLabelOffset = 10.0
	// DefaultPrecision is the default number of decimals in label text.
	DefaultPrecision = 2

	// edgeMargin in axes units drops intersections next to a corner.
	edgeMargin = 0.01
	// extendMargin in axes units lengthens the ends of each line so lines
	// ending on the boundary still cross it.
	extendMargin = 0.01
	// maxPerLabel bounds the intersections labeled for one text.
	maxPerLabel = 2

	excludeTolerance = 1e-9
)

// Where is a set of boundary sides that receive labels.
type Where uint8

const (
	North Where = 1 << iota
	South
	East
	West

	// All labels every intersection without filtering by side.
	All Where = 1 << 7
)

// Has reports whether side is in w.
func (w Where) Has(side Where) bool { return w&side != 0 }

// axes returns whether meridians (lon) and parallels (lat) are labeled.
func (w Where) axes() (lon, lat bool) {
	if w.Has(All) {
		return true, true
	}
	return w.Has(North) || w.Has(South), w.Has(East) || w.Has(West)
}

func (w Where) String() string {
	if w.Has(All) {
		return "all"
	}
	var b strings.Builder
	for _, s := range [...]struct {
		side Where
		name byte
	}{{North, 'N'}, {South, 'S'}, {East, 'E'}, {West, 'W'}} {
		if w.Has(s.side) {
			b.WriteByte(s.name)
		}
	}
	return b.String()
}

// RotationType says how the configured rotation combines with the boundary tangent.
type RotationType uint8

const (
	// RotationRelative adds the rotation to the angle of the boundary.
	RotationRelative RotationType = iota
	// RotationAbsolute uses the rotation as is.
	RotationAbsolute
)

// ParseRotationType reads "relative" or "absolute".
func ParseRotationType(s string) (RotationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relative":
		return RotationRelative, nil
	case "absolute":
		return RotationAbsolute, nil
	}
	return 0, ErrInvalidLabelOption{Option: "rotation_type", Value: s}
}

func (rt RotationType) String() string {
	if rt == RotationAbsolute {
		return "absolute"
	}
	return "relative"
}

// LabelOptions configures a label placer.
type LabelOptions struct {
	// Where is "all" or a combination of N, S, E and W.
	Where string
	// Offset moves labels away from the boundary, along their rotation, in
	// pixels at ReferenceDPI.
	Offset float64
	// OffsetXY is added to the label position in pixels.
	OffsetXY [2]float64
	// Precision is the number of decimals; trailing zeros are dropped.
	Precision int
	// Every keeps every n-th sample point of a line when testing crossings.
	Every int
	// Exclude lists line values that get no label.
	Exclude []float64
	// Rotation in degrees.
	Rotation     float64
	RotationType RotationType
	Style        dict.Dict
	// AvoidOverlap skips labels overlapping an already placed label.
	AvoidOverlap bool
}

// DefaultLabelOptions returns the options used by EOmaps style labels.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{
		Where:     DefaultWhere,
		Offset:    DefaultLabelOffset,
		Precision: DefaultPrecision,
	}
}

type viewState struct {
	extent geom.Extent
	axes   geom.Extent
	dpi    float64
}

// Labels places text labels where the lines of a grid cross the map boundary.
type Labels struct {
	// grid is not owned by the labels
	grid *Lines
	id   int

	where        Where
	offset       float64
	offsetXY     [2]float64
	precision    int
	every        int
	exclude      []float64
	rotation     float64
	rotationType RotationType
	style        render.TextStyle
	avoidOverlap bool

	texts   []*render.Text
	handles []render.Handle

	// state is the view the published labels were computed for
	state      viewState
	stateValid bool

	cancel  func()
	removed bool
}

var labelsCount int

func newLabels(g *Lines, opts LabelOptions) (*Labels, error) {
	if opts.Where == "" {
		opts.Where = DefaultWhere
	}
	where, err := ParseWhere(opts.Where)
	if err != nil {
		return nil, err
	}
	if opts.Every < 0 {
		return nil, ErrInvalidLabelOption{Option: "every", Value: opts.Every}
	}
	if opts.Precision > 15 {
		return nil, ErrInvalidLabelOption{Option: "precision", Value: opts.Precision}
	}
	if opts.RotationType != RotationRelative && opts.RotationType != RotationAbsolute {
		return nil, ErrInvalidLabelOption{Option: "rotation_type", Value: opts.RotationType}
	}
	for _, v := range [...]float64{opts.Offset, opts.OffsetXY[0], opts.OffsetXY[1], opts.Rotation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrInvalidLabelOption{Option: "offset", Value: v}
		}
	}
	style, err := applyTextStyle(DefaultTextStyle, opts.Style)
	if err != nil {
		return nil, err
	}
	labelsCount++
	return &Labels{
		grid:         g,
		id:           labelsCount,
		where:        where,
		offset:       opts.Offset,
		offsetXY:     opts.OffsetXY,
		precision:    opts.Precision,
		every:        opts.Every,
		exclude:      append([]float64(nil), opts.Exclude...),
		rotation:     opts.Rotation,
		rotationType: opts.RotationType,
		style:        style,
		avoidOverlap: opts.AvoidOverlap,
	}, nil
}

func (l *Labels) String() string {
	return fmt.Sprintf("labels#%d(%v) of %v", l.id, l.where, l.grid)
}

// Where returns the labeled sides.
func (l *Labels) Where() Where { return l.where }

// Texts returns the published labels.
func (l *Labels) Texts() []render.Text {
	out := make([]render.Text, len(l.texts))
	for i := range l.texts {
		out[i] = *l.texts[i]
	}
	return out
}

// Handles returns the handles of the published labels.
func (l *Labels) Handles() []render.Handle { return append([]render.Handle(nil), l.handles...) }

// Removed reports whether the labels were removed.
func (l *Labels) Removed() bool { return l.removed }

// LabelText formats the value of a line for axis 0 (meridians) or 1
// (parallels). -180°E is written as 180°E and -90°N as 90°N.
func LabelText(value float64, axis int, precision int) string {
	value = alias(value, axis)
	if precision < 0 {
		precision = -1
	}
	txt := strconv.FormatFloat(value, 'f', precision, 64)
	if strings.Contains(txt, ".") {
		txt = strings.TrimSuffix(strings.TrimRight(txt, "0"), ".")
	}
	if txt == "-0" {
		txt = "0"
	}
	if axis == 0 {
		return txt + "°E"
	}
	return txt + "°N"
}

func alias(value float64, axis int) float64 {
	switch {
	case axis == 0 && value == -180:
		return 180
	case axis == 1 && value == -90:
		return 90
	}
	return value
}

func (l *Labels) excluded(value float64, axis int) bool {
	value = alias(value, axis)
	for _, e := range l.exclude {
		if math.Abs(alias(e, axis)-value) <= excludeTolerance {
			return true
		}
	}
	return false
}

// keep applies the side filter to an intersection in axes coordinates.
func (l *Labels) keep(axis int, ax, ay float64) bool {
	if l.where.Has(All) {
		return true
	}
	// position along the side, and across it
	along, across := ax, ay
	low, high := l.where.Has(South), l.where.Has(North)
	if axis == 1 {
		along, across = ay, ax
		low, high = l.where.Has(West), l.where.Has(East)
	}
	if along < edgeMargin || along > 1-edgeMargin {
		return false
	}
	switch {
	case high && !low:
		return across >= 0.5
	case low && !high:
		return across < 0.5
	}
	return high && low
}

// screenLine projects a line into figure pixels, lengthening both ends.
func (l *Labels) screenLine(s Surface, line Line, axis int, axes geom.Extent) ([][2]float64, error) {
	step := l.every
	if step < 1 {
		step = 1
	}
	var lons, lats []float64
	for i := 0; i < len(line.Points); i += step {
		lons = append(lons, line.Points[i][0])
		lats = append(lats, line.Points[i][1])
	}
	// the end point is always kept so the line still reaches the boundary
	if last := len(line.Points) - 1; last > 0 && last%step != 0 {
		lons = append(lons, line.Points[last][0])
		lats = append(lats, line.Points[last][1])
	}
	if len(lons) < 2 {
		return nil, nil
	}
	xs, ys, err := s.Projection.Project(lons, lats)
	if err != nil {
		return nil, err
	}
	pts := make([][2]float64, len(xs))
	for i := range xs {
		sx, sy := s.View.DataToScreen(xs[i], ys[i])
		pts[i] = [2]float64{sx, sy}
	}

	// meridians are lengthened vertically, parallels horizontally
	dim, margin := 1, extendMargin*axes.YSpan()
	if axis == 1 {
		dim, margin = 0, extendMargin*axes.XSpan()
	}
	last := len(pts) - 1
	pts[0][dim] += margin * sign(pts[0][dim]-pts[1][dim])
	pts[last][dim] += margin * sign(pts[last][dim]-pts[last-1][dim])
	return pts, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func closeRing(ring [][2]float64) [][2]float64 {
	if len(ring) < 2 || ring[0] == ring[len(ring)-1] {
		return ring
	}
	return append(append([][2]float64(nil), ring...), ring[0])
}

// place computes the text for one intersection.
func (l *Labels) place(text string, c geometry.Crossing, ring [][2]float64, dpiScale float64) *render.Text {
	edge := c.EdgeOf(ring)
	angle := math.Atan2(edge[1][1]-edge[0][1], edge[1][0]-edge[0][0]) + math.Pi

	r := l.rotation * math.Pi / 180
	if l.rotationType == RotationRelative {
		r += angle
	}
	x := c.Point[0] - l.offset*math.Sin(r)*dpiScale + l.offsetXY[0]
	y := c.Point[1] + l.offset*math.Cos(r)*dpiScale + l.offsetXY[1]

	// an unrotated relative label follows the boundary but stays upright,
	// a user rotation is added to the tangent as is
	rotation := l.rotation
	switch {
	case l.rotationType == RotationRelative && l.rotation == 0:
		rotation = upright(r * 180 / math.Pi)
	case l.rotationType == RotationRelative:
		rotation = normalizeDeg(r * 180 / math.Pi)
	}
	return &render.Text{
		Text:     text,
		X:        math.Round(x),
		Y:        math.Round(y),
		Rotation: rotation,
		Style:    l.style,
	}
}

// normalizeDeg brings an angle in degrees into (-180, 180].
func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	switch {
	case deg > 180:
		deg -= 360
	case deg <= -180:
		deg += 360
	}
	return math.Round(deg*1e6) / 1e6
}

// upright folds an angle in degrees into (-90, 90] so text never reads upside down.
func upright(deg float64) float64 {
	deg = normalizeDeg(deg)
	switch {
	case deg > 90:
		deg -= 180
	case deg <= -90:
		deg += 180
	}
	return math.Round(deg*1e6) / 1e6
}

// compute places the labels for the current view.
func (l *Labels) compute() ([]*render.Text, error) {
	s, err := l.grid.surface()
	if err != nil {
		return nil, err
	}
	lines, err := l.grid.Lines()
	if err != nil {
		return nil, err
	}
	ring := closeRing(s.View.Boundary())
	if len(ring) < 3 {
		return nil, nil
	}
	axes := s.View.AxisPosition()
	dpi := s.View.DPI()

	var (
		texts  []*render.Text
		counts = make(map[string]int)
		index  *collisionIndex
	)
	if l.avoidOverlap {
		index = newCollisionIndex(dpi)
	}
	lonAxis, latAxis := l.where.axes()
	for axis, wanted := range [2]bool{lonAxis, latAxis} {
		if !wanted {
			continue
		}
		for _, line := range lines.Axis(axis) {
			if l.excluded(line.Value, axis) {
				continue
			}
			text := LabelText(line.Value, axis, l.precision)
			if counts[text] >= maxPerLabel {
				continue
			}
			pts, err := l.screenLine(s, line, axis, axes)
			if err != nil {
				return nil, fmt.Errorf("projecting line %v: %w", line.Value, err)
			}
			for _, c := range geometry.Crossings(pts, ring) {
				if counts[text] >= maxPerLabel {
					break
				}
				ax, ay := s.View.ScreenToAxes(c.Point[0], c.Point[1])
				if !l.keep(axis, ax, ay) {
					continue
				}
				t := l.place(text, c, ring, dpi/ReferenceDPI)
				if index != nil && !index.insert(t) {
					continue
				}
				counts[text]++
				texts = append(texts, t)
			}
		}
	}
	return texts, nil
}

func (l *Labels) retract() {
	if l.grid.factory != nil {
		m := l.grid.factory.surface.Manager
		for _, h := range l.handles {
			if err := m.Retract(h); err != nil && !errors.Is(err, render.ErrStaleArtifact) {
				log.Warnf("%v retract: %v", l, err)
			}
		}
	}
	l.texts, l.handles = nil, nil
}

// redraw recomputes and republishes the labels. When the labels can not be
// computed the published ones are left in place.
func (l *Labels) redraw() error {
	if l.removed {
		return ErrRemoved
	}
	s, err := l.grid.surface()
	if err != nil {
		return err
	}
	state := viewState{extent: s.View.Extent(), axes: s.View.AxisPosition(), dpi: s.View.DPI()}
	texts, err := l.compute()
	if err != nil {
		return err
	}
	handles := make([]render.Handle, 0, len(texts))
	for _, t := range texts {
		h, err := s.Manager.Publish(t, l.grid.layer)
		if err != nil {
			// undo the partial publish, the old labels stay
			for _, ph := range handles {
				if rerr := s.Manager.Retract(ph); rerr != nil && !errors.Is(rerr, render.ErrStaleArtifact) {
					log.Warnf("%v retract: %v", l, rerr)
				}
			}
			return err
		}
		handles = append(handles, h)
	}
	l.retract()
	l.texts, l.handles = texts, handles
	l.state, l.stateValid = state, true
	if debug {
		log.Debugf("%v published %d labels", l, len(texts))
	}
	return nil
}

// Refresh recomputes the labels when the axes position, extent or dpi
// changed since they were published. Failures are logged and the previous
// labels stay published.
func (l *Labels) Refresh() error {
	if l.removed {
		return nil
	}
	s, err := l.grid.surface()
	if err != nil {
		return nil
	}
	state := viewState{extent: s.View.Extent(), axes: s.View.AxisPosition(), dpi: s.View.DPI()}
	if l.stateValid && state == l.state {
		return nil
	}
	if err := l.redraw(); err != nil {
		rerr := ErrRefresh{Who: l.String(), Err: err}
		log.Errorf("%v", rerr)
		return rerr
	}
	return nil
}

// hook is registered as the pre-render callback.
func (l *Labels) hook() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("%v", ErrRefresh{Who: l.String(), Err: fmt.Errorf("panic: %v", r)})
		}
	}()
	l.Refresh()
}

// Remove retracts the labels and detaches them from their grid. Removing
// twice is a no-op.
func (l *Labels) Remove() {
	if l.removed {
		return
	}
	l.retract()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.grid.detach(l)
	l.removed = true
}

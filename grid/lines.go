package grid

import (
	"errors"
	"fmt"

	"github.com/go-spatial/eomaps/render"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/tegola/dict"
	"github.com/prometheus/common/log"
)

type cacheKey struct {
	rev    uint64
	extent geom.Extent
}

// Lines is one grid drawn on a map. It is created by Factory.AddGrid and is
// only used from the map's render thread.
type Lines struct {
	// factory is not owned by the grid
	factory *Factory
	id      int

	spacing Spacing
	bounds  Bounds
	n       int
	autoN   [2]int
	layer   string
	style   render.LineStyle

	// rev changes whenever an input of the line geometry changes
	rev    uint64
	cached bool
	key    cacheKey
	lines  LineSet

	handle    render.Handle
	published bool
	// drawnExtent is the view extent the published artifact was computed for
	drawnExtent geom.Extent

	labels  []*Labels
	removed bool
}

func (g *Lines) String() string {
	return fmt.Sprintf("grid#%d(%v)", g.id, g.spacing)
}

// Spacing returns the grid's spacing.
func (g *Lines) Spacing() Spacing { return g.spacing }

// Bounds returns the grid's bounds.
func (g *Lines) Bounds() Bounds { return g.bounds }

// N returns the number of sample points per line.
func (g *Lines) N() int { return g.n }

// AutoN returns the targeted number of lines per axis of auto grids.
func (g *Lines) AutoN() (lon, lat int) { return g.autoN[0], g.autoN[1] }

// Layer returns the layer the grid is published to.
func (g *Lines) Layer() string { return g.layer }

// Style returns the line style.
func (g *Lines) Style() render.LineStyle { return g.style }

// IsAuto reports whether the grid follows the viewport.
func (g *Lines) IsAuto() bool { return g.spacing.IsAuto() }

// Published reports whether the grid's line collection is currently published.
func (g *Lines) Published() bool { return g.published }

// Handle returns the handle of the published line collection.
func (g *Lines) Handle() (render.Handle, bool) { return g.handle, g.published }

// Labels returns the attached label placers.
func (g *Lines) Labels() []*Labels { return append([]*Labels(nil), g.labels...) }

func (g *Lines) surface() (Surface, error) {
	if g.removed || g.factory == nil {
		return Surface{}, ErrRemoved
	}
	return g.factory.surface, nil
}

// Lines returns the grid's line geometry. It is recomputed only when the grid
// changed or, for auto grids, when the view extent changed.
func (g *Lines) Lines() (LineSet, error) {
	key := cacheKey{rev: g.rev}
	if g.spacing.IsAuto() && g.factory != nil {
		key.extent = g.factory.surface.View.Extent()
	}
	if g.cached && g.key == key {
		return g.lines, nil
	}
	lines, err := ComputeLines(g.spacing, g.bounds, g.n, g.autoN, BoundsFromExtent(key.extent))
	if err != nil {
		return LineSet{}, err
	}
	g.cached, g.key, g.lines = true, key, lines
	return lines, nil
}

func (g *Lines) invalidate() {
	g.rev++
	g.cached = false
}

// Publish projects the grid lines into plot space and hands them to the
// rendering manager as one line collection. An empty grid publishes nothing.
func (g *Lines) Publish() error {
	s, err := g.surface()
	if err != nil {
		return err
	}
	if g.published {
		g.Retract()
	}
	lines, err := g.Lines()
	if err != nil {
		return err
	}
	extent := s.View.Extent()
	if lines.Len() == 0 {
		g.drawnExtent = extent
		return nil
	}

	collection := &render.LineCollection{
		Lines: make(geom.MultiLineString, 0, lines.Len()),
		Style: g.style,
	}
	for _, axis := range [2][]Line{lines.Meridians, lines.Parallels} {
		for _, line := range axis {
			lons := make([]float64, len(line.Points))
			lats := make([]float64, len(line.Points))
			for i, pt := range line.Points {
				lons[i], lats[i] = pt[0], pt[1]
			}
			xs, ys, err := s.Projection.Project(lons, lats)
			if err != nil {
				return fmt.Errorf("projecting line %v: %w", line.Value, err)
			}
			pts := make([][2]float64, len(xs))
			for i := range xs {
				pts[i] = [2]float64{xs[i], ys[i]}
			}
			collection.Lines = append(collection.Lines, pts)
		}
	}

	handle, err := s.Manager.Publish(collection, g.layer)
	if err != nil {
		return err
	}
	g.handle, g.published, g.drawnExtent = handle, true, extent
	if debug {
		log.Debugf("%v published %d lines to layer %q", g, lines.Len(), g.layer)
	}
	return nil
}

// Retract removes the published line collection. It is a no-op when nothing
// is published; a collection the manager already dropped is not an error.
func (g *Lines) Retract() error {
	if !g.published {
		return nil
	}
	g.published = false
	if g.factory == nil {
		return nil
	}
	err := g.factory.surface.Manager.Retract(g.handle)
	if errors.Is(err, render.ErrStaleArtifact) {
		return nil
	}
	return err
}

// Redraw retracts, recomputes and republishes the grid and all of its labels.
func (g *Lines) Redraw() error {
	if g.removed {
		return ErrRemoved
	}
	if err := g.Retract(); err != nil {
		log.Debugf("%v ignoring retract error: %v", g, err)
	}
	err := g.Publish()
	for _, l := range g.labels {
		if lerr := l.redraw(); lerr != nil {
			log.Errorf("%v", ErrRefresh{Who: l.String(), Err: lerr})
		}
	}
	return err
}

// refreshAuto redraws an auto grid when the view moved since it was drawn.
func (g *Lines) refreshAuto() error {
	if !g.spacing.IsAuto() || g.removed {
		return nil
	}
	if g.factory.surface.View.Extent() == g.drawnExtent && g.cached {
		return nil
	}
	return g.Redraw()
}

// SetBounds limits the grid to b.
func (g *Lines) SetBounds(b Bounds) error {
	if g.removed {
		return ErrRemoved
	}
	if err := b.Validate(); err != nil {
		return err
	}
	g.bounds = b
	g.invalidate()
	return g.Redraw()
}

// SetSpacing replaces the grid's spacing.
func (g *Lines) SetSpacing(s Spacing) error {
	if g.removed {
		return ErrRemoved
	}
	if err := s.Validate(); err != nil {
		return err
	}
	g.spacing = s
	g.invalidate()
	return g.Redraw()
}

// SetD parses d with ParseSpacing and uses it as the grid's spacing.
func (g *Lines) SetD(d interface{}) error {
	s, err := ParseSpacing(d)
	if err != nil {
		return err
	}
	return g.SetSpacing(s)
}

// SetAutoN sets the number of lines auto grids target per axis.
func (g *Lines) SetAutoN(lon, lat int) error {
	if g.removed {
		return ErrRemoved
	}
	if lon < 1 || lat < 1 {
		return ErrInvalidSpacing{Value: [2]int{lon, lat}, Reason: "auto line count must be at least 1"}
	}
	g.autoN = [2]int{lon, lat}
	g.invalidate()
	return g.Redraw()
}

// SetN sets the number of sample points per line.
func (g *Lines) SetN(n int) error {
	if g.removed {
		return ErrRemoved
	}
	if n < 2 {
		return ErrInvalidSpacing{Value: n, Reason: "at least 2 sample points are needed"}
	}
	g.n = n
	g.invalidate()
	return g.Redraw()
}

// UpdateLineProps merges props into the line style. A manager implementing
// render.StyleValidator sees props first; its error is returned as is.
func (g *Lines) UpdateLineProps(props dict.Dict) error {
	s, err := g.surface()
	if err != nil {
		return err
	}
	if v, ok := s.Manager.(render.StyleValidator); ok {
		if err := v.ValidateStyle(props); err != nil {
			return err
		}
	}
	style, err := applyLineStyle(g.style, props)
	if err != nil {
		return err
	}
	g.style = style
	g.invalidate()
	return g.Redraw()
}

// AddLabels attaches a label placer to the grid and publishes its labels.
func (g *Lines) AddLabels(opts LabelOptions) (*Labels, error) {
	s, err := g.surface()
	if err != nil {
		return nil, err
	}
	l, err := newLabels(g, opts)
	if err != nil {
		return nil, err
	}
	if err := l.redraw(); err != nil {
		return nil, err
	}
	g.labels = append(g.labels, l)
	if s.Hooks != nil {
		l.cancel = s.Hooks.Register(l.hook)
	}
	return l, nil
}

func (g *Lines) detach(l *Labels) {
	for i := range g.labels {
		if g.labels[i] == l {
			g.labels = append(g.labels[:i], g.labels[i+1:]...)
			return
		}
	}
}

// Remove retracts the grid and its labels and removes the grid from its
// factory. Removing twice is a no-op.
func (g *Lines) Remove() {
	if g.removed {
		return
	}
	for _, l := range g.Labels() {
		l.Remove()
	}
	if err := g.Retract(); err != nil {
		log.Warnf("%v retract on remove: %v", g, err)
	}
	if g.factory != nil {
		g.factory.deregister(g)
	}
	g.removed = true
	g.factory = nil
}

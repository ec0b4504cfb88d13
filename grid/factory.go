package grid

import (
	"fmt"

	"github.com/go-spatial/eomaps/render"
	"github.com/go-spatial/tegola/dict"
	"github.com/prometheus/common/log"
)

// Surface bundles what grids are drawn through.
type Surface struct {
	Projection render.Projector
	View       render.Viewport
	Manager    render.Manager
	// Hooks may be nil, leaving refreshing to the caller.
	Hooks render.Hooks
	// Layer is used by grids that do not name one.
	Layer string
}

// GridOptions configures a new grid. Zero values select the defaults.
type GridOptions struct {
	Spacing Spacing
	// Bounds defaults to the Globe.
	Bounds *Bounds
	N      int
	AutoN  [2]int
	Layer  string
	Style  dict.Dict
}

// Factory creates the grids of one map and keeps auto grids in step with
// the view.
type Factory struct {
	surface Surface
	grids   []*Lines
	nextID  int
	cancel  func()
	closed  bool
}

// NewFactory validates s and, when s has hooks, registers the auto refresh
// of the factory's grids.
func NewFactory(s Surface) (*Factory, error) {
	switch {
	case s.Projection == nil:
		return nil, ErrNilProjection
	case s.View == nil:
		return nil, ErrNilView
	case s.Manager == nil:
		return nil, ErrNilManager
	}
	f := &Factory{surface: s}
	if s.Hooks != nil {
		f.cancel = s.Hooks.Register(f.hook)
	}
	return f, nil
}

// Surface returns what the factory draws through.
func (f *Factory) Surface() Surface { return f.surface }

// AddGrid creates a grid, publishes it and registers it with the factory.
func (f *Factory) AddGrid(opts GridOptions) (*Lines, error) {
	if f.closed {
		return nil, ErrRemoved
	}
	if err := opts.Spacing.Validate(); err != nil {
		return nil, err
	}
	bounds := Globe
	if opts.Bounds != nil {
		bounds = *opts.Bounds
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	n := opts.N
	switch {
	case n == 0:
		n = DefaultN
	case n < 2:
		return nil, ErrInvalidSpacing{Value: n, Reason: "at least 2 sample points are needed"}
	}
	autoN := opts.AutoN
	for i := range autoN {
		switch {
		case autoN[i] == 0:
			autoN[i] = DefaultAutoN
		case autoN[i] < 0:
			return nil, ErrInvalidSpacing{Value: opts.AutoN, Reason: "auto line count must be at least 1"}
		}
	}
	layer := opts.Layer
	if layer == "" {
		layer = f.surface.Layer
	}
	if v, ok := f.surface.Manager.(render.StyleValidator); ok && opts.Style != nil {
		if err := v.ValidateStyle(opts.Style); err != nil {
			return nil, err
		}
	}
	style, err := applyLineStyle(DefaultLineStyle, opts.Style)
	if err != nil {
		return nil, err
	}

	f.nextID++
	g := &Lines{
		factory: f,
		id:      f.nextID,
		spacing: opts.Spacing,
		bounds:  bounds,
		n:       n,
		autoN:   autoN,
		layer:   layer,
		style:   style,
	}
	if err := g.Publish(); err != nil {
		return nil, err
	}
	f.grids = append(f.grids, g)
	if debug {
		log.Debugf("added %v", g)
	}
	return g, nil
}

// Grids returns the registered grids in the order they were added.
func (f *Factory) Grids() []*Lines { return append([]*Lines(nil), f.grids...) }

func (f *Factory) deregister(g *Lines) {
	for i := range f.grids {
		if f.grids[i] == g {
			f.grids = append(f.grids[:i], f.grids[i+1:]...)
			return
		}
	}
}

// RefreshAllAuto redraws the auto grids whose view changed. A grid that
// fails is logged and skipped; the returned errors are of type ErrRefresh.
func (f *Factory) RefreshAllAuto() (errs []error) {
	for _, g := range f.Grids() {
		if !g.IsAuto() {
			continue
		}
		if err := refreshGrid(g); err != nil {
			log.Errorf("%v", err)
			errs = append(errs, err)
		}
	}
	return errs
}

func refreshGrid(g *Lines) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrRefresh{Who: g.String(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if rerr := g.refreshAuto(); rerr != nil {
		return ErrRefresh{Who: g.String(), Err: rerr}
	}
	return nil
}

// Refresh brings every grid and its labels up to date with the view, the
// way the registered hooks would before a render.
func (f *Factory) Refresh() (errs []error) {
	errs = f.RefreshAllAuto()
	for _, g := range f.Grids() {
		for _, l := range g.Labels() {
			if err := l.Refresh(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

func (f *Factory) hook() { f.RefreshAllAuto() }

// RemoveAll removes every grid.
func (f *Factory) RemoveAll() {
	for _, g := range f.Grids() {
		g.Remove()
	}
}

// Close removes every grid and unregisters the factory's hook.
func (f *Factory) Close() {
	if f.closed {
		return
	}
	f.RemoveAll()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.closed = true
}

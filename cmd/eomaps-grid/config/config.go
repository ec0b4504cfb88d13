// Package config builds a map and its grids from a loaded config file.
package config

import (
	"fmt"
	"io"

	"github.com/go-spatial/eomaps/config"
	"github.com/go-spatial/eomaps/grid"
	"github.com/go-spatial/eomaps/render"
	"github.com/go-spatial/eomaps/render/svg"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
	"github.com/pkg/errors"
	"github.com/prometheus/common/log"
)

// AxesMargin is the space in pixels left around the axes for labels.
const AxesMargin = 40

// Map is a figure with its grids drawn on an svg canvas.
type Map struct {
	View    *render.View
	Canvas  *svg.Canvas
	Factory *grid.Factory
	// Grids in config order, Names holds their names
	Grids []*grid.Lines
	Names []string
}

// Load builds the map described by conf. dpi replaces the configured dpi
// when overrideDPI is set or the config has none.
func Load(conf config.Config, dpi float64, overrideDPI bool) (*Map, error) {
	proj, err := conf.Map.NewProjection()
	if err != nil {
		return nil, err
	}
	extent, err := conf.Map.ExtentOrGlobe()
	if err != nil {
		return nil, err
	}
	width, height, mdpi := conf.Map.Size()
	if overrideDPI || conf.Map.DPI == 0 {
		mdpi = dpi
	}
	if width <= 2*AxesMargin || height <= 2*AxesMargin {
		return nil, fmt.Errorf("figure %vx%v is too small", width, height)
	}
	axes := geom.Extent{AxesMargin, AxesMargin, width - AxesMargin, height - AxesMargin}
	view, err := render.NewView(proj, extent, axes, mdpi)
	if err != nil {
		return nil, err
	}
	view.Outline = conf.Map.Outline

	layer := conf.Map.LayerOrDefault()
	canvas := svg.New(view, width, height, layer)
	factory, err := grid.NewFactory(grid.Surface{
		Projection: proj,
		View:       view,
		Manager:    canvas,
		Hooks:      canvas,
		Layer:      layer,
	})
	if err != nil {
		return nil, err
	}

	m := &Map{View: view, Canvas: canvas, Factory: factory}
	for i, g := range conf.Grids {
		opts, err := g.Options()
		if err != nil {
			factory.Close()
			return nil, errors.Wrapf(err, "error grid %v (#%v)", g.Name, i)
		}
		lines, err := factory.AddGrid(opts)
		if err != nil {
			factory.Close()
			return nil, errors.Wrapf(err, "error adding grid %v (#%v)", g.Name, i)
		}
		for j, l := range g.Labels {
			lopts, err := l.Options()
			if err == nil {
				_, err = lines.AddLabels(lopts)
			}
			if err != nil {
				factory.Close()
				return nil, errors.Wrapf(err, "error adding labels %v to grid %v (#%v)", j, g.Name, i)
			}
		}
		name := g.Name
		if name == "" {
			name = fmt.Sprintf("grid_%v", i)
		}
		m.Grids = append(m.Grids, lines)
		m.Names = append(m.Names, name)
		log.Debugf("configured %v as %v", lines, name)
	}
	return m, nil
}

// Extent returns the visible lon/lat extent.
func (m *Map) Extent() geom.Extent { return m.View.Extent() }

// SetExtent changes the visible extent; grids follow on the next draw.
func (m *Map) SetExtent(e geom.Extent) error { return m.View.SetExtent(e) }

// DrawSVG refreshes the grids and writes the svg document.
func (m *Map) DrawSVG(w io.Writer) error { return m.Canvas.Draw(w) }

// GeoJSON returns the lines of every grid, each feature carrying the name of
// its grid in the grid property.
func (m *Map) GeoJSON() (geojson.FeatureCollection, error) {
	var all geojson.FeatureCollection
	m.Factory.RefreshAllAuto()
	for i, g := range m.Grids {
		fc, err := g.GeoJSON()
		if err != nil {
			return all, errors.Wrapf(err, "grid %v", m.Names[i])
		}
		for _, f := range fc.Features {
			f.Properties["grid"] = m.Names[i]
			all.Features = append(all.Features, f)
		}
	}
	return all, nil
}

// Close removes the grids from the canvas.
func (m *Map) Close() { m.Factory.Close() }

// Package render describes the collaborators a grid is drawn through: a
// projection from lon/lat into plot space, a viewport that maps plot space
// onto the figure, a manager that owns published artifacts, and a registry of
// hooks fired before each render.
package render

import (
	"github.com/go-spatial/geom"
	"github.com/go-spatial/tegola/dict"
)

// Projector projects batches of geographic coordinates into plot space.
type Projector interface {
	Project(lons, lats []float64) (xs, ys []float64, err error)
}

// Viewport describes the current view of a map.
type Viewport interface {
	// Extent is the visible lon/lat extent as minlon, minlat, maxlon, maxlat.
	Extent() geom.Extent
	// AxisPosition is the axes rectangle in figure pixels.
	AxisPosition() geom.Extent
	DPI() float64
	// DataToScreen maps plot coordinates onto figure pixels.
	DataToScreen(x, y float64) (float64, float64)
	// ScreenToAxes maps figure pixels onto normalized axes coordinates,
	// (0,0) being the lower left and (1,1) the upper right corner.
	ScreenToAxes(x, y float64) (float64, float64)
	// Boundary is the outline of the visible map in figure pixels.
	Boundary() [][2]float64
}

// Handle identifies a published artifact.
type Handle uint64

// Manager owns published artifacts, grouping them by layer.
type Manager interface {
	Publish(a Artifact, layer string) (Handle, error)
	// Retract removes a published artifact. Retracting an unknown handle
	// returns ErrStaleArtifact.
	Retract(h Handle) error
}

// StyleValidator is implemented by managers that validate style keys.
type StyleValidator interface {
	ValidateStyle(style dict.Dicter) error
}

// Hooks is a registry of callbacks fired before each render.
type Hooks interface {
	// Register adds fn. Callbacks fire in registration order. The returned
	// function removes the callback.
	Register(fn func()) (cancel func())
}

// Artifact is something a Manager can publish.
type Artifact interface {
	artifact()
}

// LineStyle is passed through to the backend.
type LineStyle struct {
	EdgeColor string
	FaceColor string
	Width     float64
	Dash      string
	Alpha     float64
	ZOrder    int
}

// LineCollection is a batch of polylines in plot space.
type LineCollection struct {
	Lines geom.MultiLineString
	Style LineStyle
}

func (*LineCollection) artifact() {}

// TextStyle is passed through to the backend.
type TextStyle struct {
	Color      string
	FontSize   float64
	FontFamily string
	Weight     string
	ZOrder     int
}

// Text is a label anchored in figure pixels.
type Text struct {
	Text string
	X, Y float64
	// Rotation in degrees, counter clockwise.
	Rotation float64
	Style    TextStyle
}

func (*Text) artifact() {}

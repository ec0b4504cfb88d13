// Package svg is a rendering manager that composes published grid artifacts
// into an svg document.
package svg

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/go-spatial/eomaps/render"
	"github.com/go-spatial/tegola/dict"
)

// Mime is the mime type of the documents written by Canvas
const Mime = "image/svg+xml"

// LayerAll is drawn regardless of the visible layer.
const LayerAll = "all"

type entry struct {
	handle   render.Handle
	layer    string
	artifact render.Artifact
}

type hook struct {
	fn      func()
	removed bool
}

// Canvas implements render.Manager and render.Hooks.
type Canvas struct {
	View          render.Viewport
	Width, Height float64
	// Layer is the visible layer; artifacts of other layers are kept but not drawn.
	Layer string

	next    render.Handle
	entries map[render.Handle]entry
	hooks   []*hook

	// Published and Retracted count successful calls.
	Published, Retracted int
}

// New returns a canvas of the given figure size drawing through view.
func New(view render.Viewport, width, height float64, layer string) *Canvas {
	return &Canvas{
		View:    view,
		Width:   width,
		Height:  height,
		Layer:   layer,
		entries: make(map[render.Handle]entry),
	}
}

// Publish implements render.Manager
func (c *Canvas) Publish(a render.Artifact, layer string) (render.Handle, error) {
	if a == nil {
		return 0, render.ErrNilArtifact
	}
	if c.entries == nil {
		c.entries = make(map[render.Handle]entry)
	}
	c.next++
	c.entries[c.next] = entry{handle: c.next, layer: layer, artifact: a}
	c.Published++
	return c.next, nil
}

// Retract implements render.Manager
func (c *Canvas) Retract(h render.Handle) error {
	if _, ok := c.entries[h]; !ok {
		return render.ErrStaleArtifact
	}
	delete(c.entries, h)
	c.Retracted++
	return nil
}

// Artifact returns the artifact published under h.
func (c *Canvas) Artifact(h render.Handle) (render.Artifact, bool) {
	e, ok := c.entries[h]
	return e.artifact, ok
}

// Artifacts returns the artifacts published to layer in publication order.
func (c *Canvas) Artifacts(layer string) []render.Artifact {
	var out []render.Artifact
	for _, e := range c.sorted() {
		if e.layer == layer {
			out = append(out, e.artifact)
		}
	}
	return out
}

// Len is the number of published artifacts.
func (c *Canvas) Len() int { return len(c.entries) }

// ValidateStyle implements render.StyleValidator
func (c *Canvas) ValidateStyle(style dict.Dicter) error {
	var none string
	for _, key := range []string{"linestyle", "ls"} {
		ls, err := style.String(key, &none)
		if err != nil {
			return err
		}
		if _, ok := DashArray(ls); !ok {
			return ErrUnsupportedStyle{Key: key, Value: ls}
		}
	}
	return nil
}

// Register implements render.Hooks
func (c *Canvas) Register(fn func()) (cancel func()) {
	h := &hook{fn: fn}
	c.hooks = append(c.hooks, h)
	return func() {
		if h.removed {
			return
		}
		h.removed = true
		for i := range c.hooks {
			if c.hooks[i] == h {
				c.hooks = append(c.hooks[:i], c.hooks[i+1:]...)
				return
			}
		}
	}
}

// FireHooks runs the pre-render hooks in registration order.
func (c *Canvas) FireHooks() {
	hooks := append([]*hook(nil), c.hooks...)
	for _, h := range hooks {
		if h.removed || h.fn == nil {
			continue
		}
		h.fn()
	}
}

func (c *Canvas) sorted() []entry {
	entries := make([]entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		zi, zj := zorder(entries[i].artifact), zorder(entries[j].artifact)
		if zi != zj {
			return zi < zj
		}
		return entries[i].handle < entries[j].handle
	})
	return entries
}

func zorder(a render.Artifact) int {
	switch art := a.(type) {
	case *render.LineCollection:
		return art.Style.ZOrder
	case *render.Text:
		return art.Style.ZOrder
	}
	return 0
}

// Draw fires the pre-render hooks and writes the visible layer as svg.
func (c *Canvas) Draw(w io.Writer) error {
	c.FireHooks()

	var svg StringBuilder
	err := svg.WriteTag("svg", Attr(map[string]string{
		"viewBox":     fmt.Sprintf("0 0 %d %d", int64(c.Width), int64(c.Height)),
		"width":       fmt.Sprintf("%d", int64(c.Width)),
		"height":      fmt.Sprintf("%d", int64(c.Height)),
		"version":     "1.2",
		"baseProfile": "tiny",
		"xmlns":       "http://www.w3.org/2000/svg",
	}, ""), func(svg *StringBuilder) error {
		return svg.WriteTag("g", Attr(map[string]string{"id": "map"}, ""), func(svg *StringBuilder) error {
			for _, e := range c.sorted() {
				if e.layer != c.Layer && e.layer != LayerAll {
					continue
				}
				if err := c.writeArtifact(svg, e); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, svg.String())
	return err
}

// y flips figure pixels, which point up, into svg pixels.
func (c *Canvas) y(y float64) float64 { return c.Height - y }

func (c *Canvas) writeArtifact(svg *StringBuilder, e entry) error {
	switch art := e.artifact.(type) {
	case *render.LineCollection:
		var path strings.Builder
		for _, line := range art.Lines {
			// points that do not map to the figure lift the pen
			penUp := true
			for _, pt := range line {
				x, y := c.View.DataToScreen(pt[0], pt[1])
				if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
					penUp = true
					continue
				}
				if penUp {
					path.WriteString("M")
					penUp = false
				} else {
					path.WriteString("L")
				}
				fmt.Fprintf(&path, "%g %g ", x, c.y(y))
			}
		}
		attrs := map[string]string{
			"id":           fmt.Sprintf("artifact_%d", e.handle),
			"d":            strings.TrimSpace(path.String()),
			"fill":         Color(art.Style.FaceColor),
			"stroke":       Color(art.Style.EdgeColor),
			"stroke-width": fmt.Sprintf("%g", art.Style.Width),
		}
		if dash, _ := DashArray(art.Style.Dash); dash != "" {
			attrs["stroke-dasharray"] = dash
		}
		if art.Style.Alpha > 0 && art.Style.Alpha < 1 {
			attrs["opacity"] = fmt.Sprintf("%g", art.Style.Alpha)
		}
		svg.WriteEmptyTag("path", Attr(attrs, ""))
	case *render.Text:
		x, y := art.X, c.y(art.Y)
		attrs := map[string]string{
			"id":                fmt.Sprintf("artifact_%d", e.handle),
			"x":                 fmt.Sprintf("%g", x),
			"y":                 fmt.Sprintf("%g", y),
			"text-anchor":       "middle",
			"dominant-baseline": "middle",
			"fill":              Color(art.Style.Color),
		}
		if art.Style.Color == "" {
			attrs["fill"] = "black"
		}
		if art.Style.FontSize > 0 {
			attrs["font-size"] = fmt.Sprintf("%g", art.Style.FontSize)
		}
		if art.Style.FontFamily != "" {
			attrs["font-family"] = art.Style.FontFamily
		}
		if art.Style.Weight != "" {
			attrs["font-weight"] = art.Style.Weight
		}
		if art.Rotation != 0 {
			// svg rotates clockwise
			attrs["transform"] = fmt.Sprintf("rotate(%g %g %g)", -art.Rotation, x, y)
		}
		return svg.WriteTag("text", Attr(attrs, ""), func(svg *StringBuilder) error {
			svg.WriteString(escape(art.Text))
			return nil
		})
	default:
		return fmt.Errorf("unsupported artifact %T", e.artifact)
	}
	return nil
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string { return escaper.Replace(s) }

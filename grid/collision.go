package grid

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/go-spatial/eomaps/render"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// collisionIndex keeps the boxes of placed labels.
type collisionIndex struct {
	tree *rtreego.Rtree
	face font.Face
	// pixels per point
	scale float64
}

type labelBox rtreego.Rect

func (b labelBox) Bounds() rtreego.Rect { return rtreego.Rect(b) }

func newCollisionIndex(dpi float64) *collisionIndex {
	return &collisionIndex{
		tree:  rtreego.NewTree(2, 25, 50),
		face:  basicfont.Face7x13,
		scale: dpi / 72,
	}
}

// size estimates the unrotated width and height of t in pixels.
func (ci *collisionIndex) size(t *render.Text) (w, h float64) {
	height := float64(ci.face.Metrics().Height.Ceil())
	width := float64(font.MeasureString(ci.face, t.Text).Ceil())
	if t.Style.FontSize > 0 && height > 0 {
		// scale the fixed face to the requested size
		f := t.Style.FontSize * ci.scale / height
		return width * f, height * f
	}
	return width, height
}

// insert adds the box of t unless it overlaps a box already in the index.
func (ci *collisionIndex) insert(t *render.Text) bool {
	w, h := ci.size(t)
	r := t.Rotation * math.Pi / 180
	sin, cos := math.Abs(math.Sin(r)), math.Abs(math.Cos(r))
	bw, bh := w*cos+h*sin, w*sin+h*cos
	if bw <= 0 || bh <= 0 {
		return true
	}
	rect, err := rtreego.NewRect(rtreego.Point{t.X - bw/2, t.Y - bh/2}, []float64{bw, bh})
	if err != nil {
		return true
	}
	if len(ci.tree.SearchIntersect(rect)) > 0 {
		return false
	}
	ci.tree.Insert(labelBox(rect))
	return true
}

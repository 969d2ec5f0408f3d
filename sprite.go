package bramble

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a renderable entity associating a Shape with a draw order index.
// The index has no spatial meaning; the Stage visits sprites in ascending
// index order when rendering. A sprite owns its Shape exclusively — sharing
// one Shape value between sprites produces coupled movement.
type Sprite interface {
	// Shape returns the sprite's geometric region, used for hit testing and
	// collision queries.
	Shape() Shape
	// Index returns the draw order index.
	Index() int
	// Draw renders the sprite onto target in scene coordinates.
	Draw(target *ebiten.Image)
}

// BaseSprite implements the positional half of Sprite. Embed it and provide
// Draw. ZIndex may be mutated directly, but the owning Stage must then be
// told via [Stage.ForceHierarchyUpdate] — it does not observe sprite
// mutation.
type BaseSprite struct {
	shape  Shape
	ZIndex int
}

// NewBaseSprite creates a BaseSprite owning the given shape.
func NewBaseSprite(shape Shape, zIndex int) BaseSprite {
	return BaseSprite{shape: shape, ZIndex: zIndex}
}

// Shape returns the sprite's shape.
func (s *BaseSprite) Shape() Shape {
	return s.shape
}

// SetShape replaces the sprite's shape.
func (s *BaseSprite) SetShape(shape Shape) {
	s.shape = shape
}

// Index returns the draw order index.
func (s *BaseSprite) Index() int {
	return s.ZIndex
}

// ImageSprite renders an ebiten image stretched onto its shape's bounds,
// rotated about the shape's center. A nil image draws nothing, which is the
// normal state for a sprite whose resource failed to decode.
type ImageSprite struct {
	BaseSprite
	Image *ebiten.Image
	Color Color
}

// NewImageSprite creates a sprite drawing img over shape.
func NewImageSprite(shape Shape, img *ebiten.Image, zIndex int) *ImageSprite {
	return &ImageSprite{
		BaseSprite: NewBaseSprite(shape, zIndex),
		Image:      img,
		Color:      ColorWhite,
	}
}

// Draw renders the image centered on the shape with the shape's rotation.
func (s *ImageSprite) Draw(target *ebiten.Image) {
	if s.Image == nil {
		return
	}
	w, h := shapeBounds(s.Shape())
	if w == 0 || h == 0 {
		return
	}
	b := s.Image.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	center := s.Shape().Center()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/iw, h/ih)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(s.Shape().Angle())
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.Scale(float32(s.Color.R), float32(s.Color.G), float32(s.Color.B), float32(s.Color.A))
	target.DrawImage(s.Image, op)
}

// RectSprite renders a solid color over its shape's bounds by scaling
// WhitePixel.
type RectSprite struct {
	BaseSprite
	Color Color
}

// NewRectSprite creates a solid color sprite over shape.
func NewRectSprite(shape Shape, c Color, zIndex int) *RectSprite {
	return &RectSprite{BaseSprite: NewBaseSprite(shape, zIndex), Color: c}
}

// Draw fills the shape's bounds with the sprite color.
func (s *RectSprite) Draw(target *ebiten.Image) {
	w, h := shapeBounds(s.Shape())
	if w == 0 || h == 0 {
		return
	}
	center := s.Shape().Center()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(s.Shape().Angle())
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.Scale(float32(s.Color.R), float32(s.Color.G), float32(s.Color.B), float32(s.Color.A))
	target.DrawImage(WhitePixel, op)
}

// shapeBounds returns the unrotated width and height of a shape's bounds.
// Unknown variants report zero and render nothing.
func shapeBounds(s Shape) (w, h float64) {
	switch v := s.(type) {
	case *Rectangle:
		return v.Width, v.Height
	case *Circle:
		d := math.Abs(v.Radius) * 2
		return d, d
	default:
		return 0, 0
	}
}

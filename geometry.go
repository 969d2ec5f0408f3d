package bramble

import "math"

// Point is a 2D scene-space coordinate. Points are mutated only through the
// explicit Set/Add/Sub methods.
type Point struct {
	X, Y float64
}

// Set replaces both coordinates.
func (p *Point) Set(x, y float64) {
	p.X = x
	p.Y = y
}

// Add translates the point by v.
func (p *Point) Add(v Vector) {
	p.X += v.X
	p.Y += v.Y
}

// Sub translates the point by -v.
func (p *Point) Sub(v Vector) {
	p.X -= v.X
	p.Y -= v.Y
}

// VectorTo returns the vector from p to other.
func (p Point) VectorTo(other Point) Vector {
	return Vector{X: other.X - p.X, Y: other.Y - p.Y}
}

// Vector is a 2D direction/offset pair. The zero vector is valid; its angle
// is 0 by convention.
type Vector struct {
	X, Y float64
}

// Magnitude returns the vector's length.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit-length vector in the same direction.
// The zero vector normalizes to the zero vector.
func (v Vector) Normalize() Vector {
	m := v.Magnitude()
	if m == 0 {
		return Vector{}
	}
	return Vector{X: v.X / m, Y: v.Y / m}
}

// Rotate returns the vector rotated by radians.
func (v Vector) Rotate(radians float64) Vector {
	sin, cos := math.Sincos(radians)
	return Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Dot returns the dot product of v and other.
func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Project returns the projection of v onto other.
// Projecting onto the zero vector returns the zero vector.
func (v Vector) Project(other Vector) Vector {
	d := other.Dot(other)
	if d == 0 {
		return Vector{}
	}
	s := v.Dot(other) / d
	return Vector{X: other.X * s, Y: other.Y * s}
}

// Angle returns the vector's angle in radians. The zero vector reports 0.
func (v Vector) Angle() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Atan2(v.Y, v.X)
}

// Add returns v + other.
func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scaled returns v scaled by s.
func (v Vector) Scaled(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// IsZero reports whether both components are exactly zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Shape is a geometric region supporting containment and collision queries.
// All shapes are center-based: X/Y name the shape's center, so translation,
// rotation, and scaling never change which point is the shape's origin.
//
// The built-in variants are [Rectangle] and [Circle]. Collides routes every
// variant pair through exactly one concrete algorithm via double dispatch;
// a third-party variant must recognize the built-in variants in its own
// Collides method, otherwise two unknown variants delegating to each other
// will loop. That obligation belongs to the extension author — it is not
// guarded at runtime.
type Shape interface {
	// Center returns the shape's center point.
	Center() Point
	// Angle returns the rotation about the center, in radians.
	Angle() float64
	// Move translates the center by a relative offset.
	Move(dx, dy float64)
	// MoveTo sets the absolute center.
	MoveTo(x, y float64)
	// Scale resizes the shape. Rectangle multiplies its width and height by
	// ratio; Circle sets its radius to ratio directly. Callers must respect
	// this asymmetry.
	Scale(ratio float64)
	// Rotate sets the absolute angle in degrees (not cumulative).
	Rotate(degrees float64)
	// RotateRad sets the absolute angle in radians (not cumulative).
	RotateRad(radians float64)
	// Clone returns a deep copy sharing no mutable state with the original.
	Clone() Shape
	// Contains reports whether p lies inside the shape. Bounds are closed:
	// boundary points are contained.
	Contains(p Point) bool
	// Collides reports whether the shape overlaps other. Exactly-touching
	// shapes collide.
	Collides(other Shape) bool
}

// Rectangle is a rotatable rectangle identified by its center, full width and
// height, and rotation about the center.
type Rectangle struct {
	X, Y          float64 // center
	Width, Height float64
	Rotation      float64 // radians
}

// NewRectangle creates a rectangle from its center and full extents.
func NewRectangle(x, y, width, height float64) *Rectangle {
	return &Rectangle{X: x, Y: y, Width: width, Height: height}
}

// NewRectangleFromCorner creates a rectangle from its top-left corner and
// size, for callers holding corner-based coordinates.
func NewRectangleFromCorner(x, y, width, height float64) *Rectangle {
	return &Rectangle{X: x + width/2, Y: y + height/2, Width: width, Height: height}
}

// Center returns the rectangle's center.
func (r *Rectangle) Center() Point {
	return Point{X: r.X, Y: r.Y}
}

// Angle returns the rotation in radians.
func (r *Rectangle) Angle() float64 {
	return r.Rotation
}

// Move translates the center by (dx, dy).
func (r *Rectangle) Move(dx, dy float64) {
	r.X += dx
	r.Y += dy
}

// MoveTo sets the absolute center.
func (r *Rectangle) MoveTo(x, y float64) {
	r.X = x
	r.Y = y
}

// Scale multiplies the width and height by ratio.
func (r *Rectangle) Scale(ratio float64) {
	r.Width *= ratio
	r.Height *= ratio
}

// Rotate sets the absolute rotation in degrees.
func (r *Rectangle) Rotate(degrees float64) {
	r.Rotation = degrees * math.Pi / 180
}

// RotateRad sets the absolute rotation in radians.
func (r *Rectangle) RotateRad(radians float64) {
	r.Rotation = radians
}

// Clone returns a deep copy.
func (r *Rectangle) Clone() Shape {
	c := *r
	return &c
}

// Contains reports whether p lies inside the rectangle. The point is
// transformed into the rectangle's unrotated local frame; boundary points
// are contained.
func (r *Rectangle) Contains(p Point) bool {
	lx, ly := r.toLocal(p.X, p.Y)
	return math.Abs(lx) <= r.Width/2 && math.Abs(ly) <= r.Height/2
}

// Collides reports whether the rectangle overlaps other. Unknown variants
// are delegated back to other.
func (r *Rectangle) Collides(other Shape) bool {
	switch o := other.(type) {
	case *Rectangle:
		return rectanglesCollide(r, o)
	case *Circle:
		return rectangleCircleCollide(r, o)
	default:
		return other.Collides(r)
	}
}

// toLocal maps a scene-space point into the rectangle's unrotated local
// frame (center at origin).
func (r *Rectangle) toLocal(x, y float64) (lx, ly float64) {
	dx := x - r.X
	dy := y - r.Y
	if r.Rotation == 0 {
		return dx, dy
	}
	sin, cos := math.Sincos(-r.Rotation)
	return dx*cos - dy*sin, dx*sin + dy*cos
}

// vertices returns the rectangle's four corners in scene space,
// counter-clockwise from the top-left.
func (r *Rectangle) vertices() [4]Point {
	hw := r.Width / 2
	hh := r.Height / 2
	sin, cos := math.Sincos(r.Rotation)
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4]Point
	for i, c := range corners {
		out[i] = Point{
			X: r.X + c[0]*cos - c[1]*sin,
			Y: r.Y + c[0]*sin + c[1]*cos,
		}
	}
	return out
}

// Circle is a circle identified by its center, radius, and rotation. The
// rotation has no effect on containment or collision (circles are
// rotation-invariant) but is carried for renderers that draw an oriented
// texture on the circle.
type Circle struct {
	X, Y     float64 // center
	Radius   float64
	Rotation float64 // radians
}

// NewCircle creates a circle from its center and radius.
func NewCircle(x, y, radius float64) *Circle {
	return &Circle{X: x, Y: y, Radius: radius}
}

// Center returns the circle's center.
func (c *Circle) Center() Point {
	return Point{X: c.X, Y: c.Y}
}

// Angle returns the rotation in radians.
func (c *Circle) Angle() float64 {
	return c.Rotation
}

// Move translates the center by (dx, dy).
func (c *Circle) Move(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

// MoveTo sets the absolute center.
func (c *Circle) MoveTo(x, y float64) {
	c.X = x
	c.Y = y
}

// Scale sets the radius to ratio directly (NOT multiplicatively — see the
// Shape.Scale contract).
func (c *Circle) Scale(ratio float64) {
	c.Radius = ratio
}

// Rotate sets the absolute rotation in degrees.
func (c *Circle) Rotate(degrees float64) {
	c.Rotation = degrees * math.Pi / 180
}

// RotateRad sets the absolute rotation in radians.
func (c *Circle) RotateRad(radians float64) {
	c.Rotation = radians
}

// Clone returns a deep copy.
func (c *Circle) Clone() Shape {
	n := *c
	return &n
}

// Contains reports whether p lies inside or on the circle.
func (c *Circle) Contains(p Point) bool {
	dx := p.X - c.X
	dy := p.Y - c.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Collides reports whether the circle overlaps other. Unknown variants are
// delegated back to other.
func (c *Circle) Collides(other Shape) bool {
	switch o := other.(type) {
	case *Circle:
		return circlesCollide(c, o)
	case *Rectangle:
		return rectangleCircleCollide(o, c)
	default:
		return other.Collides(c)
	}
}

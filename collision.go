package bramble

// Collision predicates for the built-in shape variants. Every comparison is
// inclusive, so exactly-touching shapes report as colliding — hit-testing
// code depends on this.

// rectanglesCollide tests two rotated rectangles with the Separating Axis
// Theorem. The candidate axes are the two edge normals of each rectangle
// (4 total). The first axis with no projection overlap proves the
// rectangles disjoint.
func rectanglesCollide(a, b *Rectangle) bool {
	va := a.vertices()
	vb := b.vertices()

	return !hasSeparatingAxis(va, vb, a.Rotation) &&
		!hasSeparatingAxis(va, vb, b.Rotation)
}

// hasSeparatingAxis tests the two edge normals of a rectangle rotated by
// angle against both vertex sets. Returns true if either axis separates.
func hasSeparatingAxis(va, vb [4]Point, angle float64) bool {
	axes := [2]Vector{
		Vector{X: 1, Y: 0}.Rotate(angle),
		Vector{X: 0, Y: 1}.Rotate(angle),
	}
	for _, axis := range axes {
		minA, maxA := projectOnto(va, axis)
		minB, maxB := projectOnto(vb, axis)
		if maxA < minB || maxB < minA {
			return true
		}
	}
	return false
}

// projectOnto projects four vertices onto an axis and returns the projection
// interval.
func projectOnto(verts [4]Point, axis Vector) (min, max float64) {
	min = axis.Dot(Vector{X: verts[0].X, Y: verts[0].Y})
	max = min
	for i := 1; i < 4; i++ {
		d := axis.Dot(Vector{X: verts[i].X, Y: verts[i].Y})
		if d < min {
			min = d
		} else if d > max {
			max = d
		}
	}
	return min, max
}

// circlesCollide tests two circles by squared center distance against the
// squared radius sum. Rotation is irrelevant.
func circlesCollide(a, b *Circle) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	rr := a.Radius + b.Radius
	return dx*dx+dy*dy <= rr*rr
}

// rectangleCircleCollide tests a rotated rectangle against a circle. The
// circle center is mapped into the rectangle's unrotated local frame and
// folded into the first quadrant, reducing the problem to four branches:
// trivial rejection outside the inflated extents, trivial acceptance when
// the center projects inside either slab, and otherwise a squared-distance
// test against the nearest corner.
func rectangleCircleCollide(r *Rectangle, c *Circle) bool {
	lx, ly := r.toLocal(c.X, c.Y)
	if lx < 0 {
		lx = -lx
	}
	if ly < 0 {
		ly = -ly
	}
	hw := r.Width / 2
	hh := r.Height / 2

	if lx > hw+c.Radius || ly > hh+c.Radius {
		return false
	}
	if lx <= hw {
		return true
	}
	if ly <= hh {
		return true
	}
	dx := lx - hw
	dy := ly - hh
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

package polyarea

import "math"

// Turn is the orientation of an ordered point triple
type Turn int

const (
	Collinear Turn = iota
	Clockwise
	CounterClockwise
)

// Orientation classifies the turn taken by the ordered triple (p, q, r)
// from the sign of the cross product. Zero is exact-equality collinear:
// no epsilon is applied, so the test is reproducible but near-collinear
// inputs may land on either side after floating-point rounding.
func Orientation(p, q, r Point) Turn {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)

	switch {
	case val == 0:
		return Collinear
	case val > 0:
		return Clockwise
	default:
		return CounterClockwise
	}
}

// onSegment reports whether q lies within the axis-aligned bounding box
// of p and r, borders included. Only meaningful when the three points
// are already known to be collinear.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether segments p1–q1 and p2–q2 share at
// least one point. The general case holds when each segment's endpoints
// straddle the other's line; the four collinear cases are checked
// independently.
func SegmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := Orientation(p1, q1, p2)
	o2 := Orientation(p1, q1, q2)
	o3 := Orientation(p2, q2, p1)
	o4 := Orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == Collinear && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == Collinear && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == Collinear && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == Collinear && onSegment(p2, q1, q2) {
		return true
	}

	return false
}

// Contains reports whether p lies inside the polygon using the even-odd
// ray-casting rule: a horizontal ray from p to a point right of the
// polygon is crossed an odd number of times by the boundary. Points
// exactly on an edge or vertex classify as inside. Polygons with fewer
// than 3 vertices contain nothing.
func (poly *Polygon) Contains(p Point) bool {
	n := len(poly.vertices)
	if n < 3 {
		return false
	}

	// The far endpoint clears every vertex and the query point itself,
	// so the ray always exits the polygon on the right.
	far := Point{X: math.Max(poly.bounds.MaxX, p.X) + 1, Y: p.Y}

	count := 0
	i := 0
	for {
		next := (i + 1) % n
		a, b := poly.vertices[i], poly.vertices[next]

		if SegmentsIntersect(a, b, p, far) {
			// p on the edge's own line means p lies on the boundary
			if Orientation(a, p, b) == Collinear {
				return onSegment(a, p, b)
			}
			count++
		}

		i = next
		if i == 0 {
			break
		}
	}

	return count%2 == 1
}

package polyarea

import "math"

// Distance returns the Euclidean distance between two points
func (p Point) Distance(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Area returns the exact polygon area via the shoelace formula,
// independent of vertex winding. Useful as ground truth next to a
// Monte Carlo estimate.
func (p *Polygon) Area() float64 {
	n := len(p.vertices)
	if n < 3 {
		return 0
	}

	area := 0.0
	j := n - 1
	for i := range n {
		a, b := p.vertices[j], p.vertices[i]
		area += (a.X + b.X) * (a.Y - b.Y)
		j = i
	}

	return math.Abs(area / 2)
}

// Perimeter returns the total boundary length, closing edge included
func (p *Polygon) Perimeter() float64 {
	n := len(p.vertices)
	if n < 2 {
		return 0
	}

	per := 0.0
	j := n - 1
	for i := range n {
		per += p.vertices[j].Distance(p.vertices[i])
		j = i
	}

	return per
}

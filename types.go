// Package polyarea estimates polygon areas by Monte Carlo sampling with concurrent workers.
package polyarea

import "time"

// Engine defaults applied to zero Config fields.
const (
	DefaultBound      = 2.0         // sampling square edge, reference area DefaultBound²
	DefaultBatchSize  = 1024        // samples classified between tally merges
	DefaultMaxSamples = 1_000_000_000
	DefaultInterval   = time.Second // progress emission cadence
)

// Point is a planar coordinate pair
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is an axis-aligned bounding box
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Area returns the box area
func (b Bounds) Area() float64 { return b.Width() * b.Height() }

// Contains reports whether p lies inside the box, borders included
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Region is anything that can classify a point as inside or outside
type Region interface {
	Contains(p Point) bool
}

// RegionFunc adapts a plain predicate to the Region interface
type RegionFunc func(Point) bool

// Contains calls f(p)
func (f RegionFunc) Contains(p Point) bool { return f(p) }

// Polygon is an ordered vertex sequence, implicitly closed (the last
// vertex connects back to the first). It is read-only after
// construction and safe for concurrent use.
type Polygon struct {
	vertices []Point
	bounds   Bounds
}

// NewPolygon copies the vertices and caches their bounding box.
// Vertex order may be clockwise or counter-clockwise.
func NewPolygon(vertices ...Point) *Polygon {
	vs := make([]Point, len(vertices))
	copy(vs, vertices)
	return &Polygon{vertices: vs, bounds: boundsOf(vs)}
}

// Len returns the vertex count
func (p *Polygon) Len() int { return len(p.vertices) }

// Vertices returns the backing vertex slice; callers must not modify it
func (p *Polygon) Vertices() []Point { return p.vertices }

// Bounds returns the cached bounding box
func (p *Polygon) Bounds() Bounds { return p.bounds }

func boundsOf(vs []Point) Bounds {
	if len(vs) == 0 {
		return Bounds{}
	}

	b := Bounds{MinX: vs[0].X, MinY: vs[0].Y, MaxX: vs[0].X, MaxY: vs[0].Y}
	for _, v := range vs[1:] {
		if v.X < b.MinX {
			b.MinX = v.X
		}
		if v.X > b.MaxX {
			b.MaxX = v.X
		}
		if v.Y < b.MinY {
			b.MinY = v.Y
		}
		if v.Y > b.MaxY {
			b.MaxY = v.Y
		}
	}
	return b
}

// Config defines settings for a sampling run
type Config struct {
	Samples    int           `json:"samples"`     // total sample count N
	Workers    int           `json:"workers"`     // concurrent worker count W
	Bound      float64       `json:"bound"`       // samples are drawn from the half-open square [0,Bound)²
	Seed       int64         `json:"seed"`        // base RNG seed; 0 draws one from the clock
	BatchSize  int           `json:"batch_size"`  // samples classified between tally merges
	MaxSamples int           `json:"max_samples"` // hard cap on Samples
	Interval   time.Duration `json:"interval"`    // progress emission cadence
	Progress   func(pct int) `json:"-"`           // optional progress sink, called from the monitor goroutine
}

// withDefaults fills zero fields the way the run would interpret them
func (c Config) withDefaults() Config {
	if c.Bound == 0 {
		c.Bound = DefaultBound
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxSamples == 0 {
		c.MaxSamples = DefaultMaxSamples
	}
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	return c
}

// Result is the aggregate outcome of one sampling run.
// Area is Inside/Checked scaled by the reference area Bound²;
// Checked equals Samples unless the run was cancelled early.
type Result struct {
	Inside  uint64        `json:"inside"`
	Checked uint64        `json:"checked"`
	Samples int           `json:"samples"`
	Workers int           `json:"workers"`
	Bound   float64       `json:"bound"`
	Seed    int64         `json:"seed"`
	Area    float64       `json:"area"`
	Elapsed time.Duration `json:"elapsed"`
}

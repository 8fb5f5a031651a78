package polyarea

import "errors"

// Configuration errors are detected before any worker starts; input
// errors come from the polygon loader. ErrTallyInvariant signals a
// synchronization bug and is never swallowed.
var (
	ErrNoSamples         = errors.New("sample count must be positive")
	ErrNoWorkers         = errors.New("worker count must be positive")
	ErrSampleCapExceeded = errors.New("sample count exceeds configured cap")
	ErrBadBound          = errors.New("sampling bound must be positive and finite")
	ErrBadBatchSize      = errors.New("batch size must be positive")
	ErrBadInterval       = errors.New("progress interval must be positive")

	ErrPolygonTooSmall   = errors.New("polygon needs at least 3 vertices")
	ErrVertexCapExceeded = errors.New("vertex count exceeds configured cap")

	ErrTallyInvariant = errors.New("tally invariant violated")
)

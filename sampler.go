package polyarea

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// Tally holds the classification counters shared between workers and
// the progress monitor. Both counters only ever grow.
type Tally struct {
	checked atomic.Uint64
	inside  atomic.Uint64
}

// merge folds one worker batch into the shared counters. Checked is
// published before inside and Snapshot reads them in the opposite
// order, so no observer can see inside exceed checked.
func (t *Tally) merge(checked, inside uint64) {
	t.checked.Add(checked)
	t.inside.Add(inside)
}

// Checked returns the number of samples processed so far
func (t *Tally) Checked() uint64 {
	return t.checked.Load()
}

// Snapshot returns the current (inside, checked) pair
func (t *Tally) Snapshot() (inside, checked uint64) {
	inside = t.inside.Load()
	checked = t.checked.Load()
	return inside, checked
}

func (c Config) validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("%w: got %d", ErrNoSamples, c.Samples)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: got %d", ErrNoWorkers, c.Workers)
	}
	if c.Samples > c.MaxSamples {
		return fmt.Errorf("%w: %d > %d", ErrSampleCapExceeded, c.Samples, c.MaxSamples)
	}
	if c.Bound <= 0 || math.IsNaN(c.Bound) || math.IsInf(c.Bound, 0) {
		return fmt.Errorf("%w: got %g", ErrBadBound, c.Bound)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadBatchSize, c.BatchSize)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: got %v", ErrBadInterval, c.Interval)
	}
	return nil
}

// partition splits n samples across w workers as evenly as possible,
// remainder to the first workers
func partition(n, w int) []int {
	shares := make([]int, w)
	for i := range shares {
		shares[i] = n / w
		if i < n%w {
			shares[i]++
		}
	}
	return shares
}

// splitmix64 decorrelates per-worker seeds derived from a common base
func splitmix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Estimate draws cfg.Samples points uniformly from the half-open square
// [0,Bound)², classifies each against region across cfg.Workers
// goroutines, and scales the inside fraction by the reference area
// Bound². Zero Config fields fall back to defaults.
//
// Each worker owns an independent RNG and merges its counts into the
// shared tally once per batch, so no lock is held across the
// classification hot path. Cancelling ctx stops workers at the next
// batch boundary; the returned Result then carries the valid partial
// tally alongside the context error.
func Estimate(ctx context.Context, region Region, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log.Debugf("sampling %d points across %d workers (bound %g, seed %d)",
		cfg.Samples, cfg.Workers, cfg.Bound, seed)

	tally := &Tally{}

	var mon *progressMonitor
	if cfg.Progress != nil {
		mon = startMonitor(tally, cfg.Samples, cfg.Interval, cfg.Progress)
	}

	start := time.Now()

	var wg sync.WaitGroup
	for id, share := range partition(cfg.Samples, cfg.Workers) {
		wg.Add(1)
		go func(id, share int) {
			defer wg.Done()
			drawSamples(ctx, region, tally, cfg, share, splitmix64(uint64(seed)+uint64(id)))
		}(id, share)
	}
	wg.Wait()

	elapsed := time.Since(start)
	if mon != nil {
		mon.Stop()
	}

	inside, checked := tally.Snapshot()
	res := Result{
		Inside:  inside,
		Checked: checked,
		Samples: cfg.Samples,
		Workers: cfg.Workers,
		Bound:   cfg.Bound,
		Seed:    seed,
		Elapsed: elapsed,
	}
	if checked > 0 {
		res.Area = float64(inside) / float64(checked) * cfg.Bound * cfg.Bound
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if inside > checked || checked != uint64(cfg.Samples) {
		return res, fmt.Errorf("%w: inside=%d checked=%d want checked=%d",
			ErrTallyInvariant, inside, checked, cfg.Samples)
	}
	return res, nil
}

// drawSamples classifies share points against region, merging bounded
// batches of local counts into the shared tally. Cancellation is
// observed between batches, leaving the tally valid but short.
func drawSamples(ctx context.Context, region Region, tally *Tally, cfg Config, share int, seed uint64) {
	rng := rand.New(rand.NewSource(int64(seed)))

	for done := 0; done < share; {
		if ctx.Err() != nil {
			return
		}

		batch := min(cfg.BatchSize, share-done)
		inside := 0
		for range batch {
			p := Point{X: rng.Float64() * cfg.Bound, Y: rng.Float64() * cfg.Bound}
			if region.Contains(p) {
				inside++
			}
		}

		tally.merge(uint64(batch), uint64(inside))
		done += batch
	}
}

// ClassifyPoints classifies a fixed point set against region, fanning
// chunks out across workers. The totals are sums of per-chunk sums, so
// the worker count cannot change the outcome.
func ClassifyPoints(region Region, pts []Point, workers int) (inside, checked int) {
	if len(pts) == 0 {
		return 0, 0
	}
	if workers < 1 {
		workers = 1
	}

	size := (len(pts) + workers - 1) / workers
	chunks := lo.Chunk(pts, size)

	counts := make(chan int, len(chunks))
	var wg sync.WaitGroup

	for _, chunk := range chunks {
		wg.Add(1)
		go func(chunk []Point) {
			defer wg.Done()
			n := 0
			for _, p := range chunk {
				if region.Contains(p) {
					n++
				}
			}
			counts <- n
		}(chunk)
	}

	go func() {
		wg.Wait()
		close(counts)
	}()

	for n := range counts {
		inside += n
	}
	return inside, len(pts)
}

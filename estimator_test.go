package polyarea

import (
	"context"
	"reflect"
	"testing"
)

func TestEstimatorMemoizesSeededRuns(t *testing.T) {
	poly := NewPolygon(Point{0.5, 0.5}, Point{1.5, 0.5}, Point{1.5, 1.5}, Point{0.5, 1.5})

	e := NewEstimator(Config{Samples: 20_000, Workers: 4, Seed: 99})
	defer e.Close()

	first, err := e.EstimateArea(context.Background(), poly)
	if err != nil {
		t.Fatalf("EstimateArea() error = %v", err)
	}
	if _, found := e.cache.Get(e.fingerprint(poly)); !found {
		t.Fatal("seeded run was not memoized")
	}

	second, err := e.EstimateArea(context.Background(), poly)
	if err != nil {
		t.Fatalf("EstimateArea() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("memoized result differs:\n first %+v\nsecond %+v", first, second)
	}
}

func TestEstimatorSkipsMemoWhenUnseeded(t *testing.T) {
	poly := NewPolygon(Point{0, 0}, Point{2, 0}, Point{2, 2}, Point{0, 2})

	e := NewEstimator(Config{Samples: 1_000, Workers: 2})
	defer e.Close()

	if _, err := e.EstimateArea(context.Background(), poly); err != nil {
		t.Fatalf("EstimateArea() error = %v", err)
	}
	if _, found := e.cache.Get(e.fingerprint(poly)); found {
		t.Error("unseeded run was memoized")
	}
}

func TestEstimatorFingerprint(t *testing.T) {
	e := NewEstimator(Config{Samples: 10, Workers: 1, Seed: 5})
	defer e.Close()

	a := e.fingerprint(NewPolygon(Point{0, 0}, Point{1, 0}, Point{1, 1}))
	b := e.fingerprint(NewPolygon(Point{0, 0}, Point{1, 0}, Point{1, 2}))
	if a == b {
		t.Error("different polygons share a fingerprint")
	}

	if again := e.fingerprint(NewPolygon(Point{0, 0}, Point{1, 0}, Point{1, 1})); again != a {
		t.Errorf("fingerprint not deterministic: %q vs %q", again, a)
	}

	other := NewEstimator(Config{Samples: 10, Workers: 1, Seed: 6})
	defer other.Close()
	if other.fingerprint(NewPolygon(Point{0, 0}, Point{1, 0}, Point{1, 1})) == a {
		t.Error("different seeds share a fingerprint")
	}
}

func TestEstimatorPropagatesErrors(t *testing.T) {
	poly := NewPolygon(Point{0, 0}, Point{2, 0}, Point{2, 2}, Point{0, 2})

	e := NewEstimator(Config{Samples: -1, Workers: 2, Seed: 3})
	defer e.Close()

	if _, err := e.EstimateArea(context.Background(), poly); err == nil {
		t.Error("EstimateArea() with a bad config returned nil error")
	}
	if _, found := e.cache.Get(e.fingerprint(poly)); found {
		t.Error("failed run was memoized")
	}
}

package polyarea

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMonitorSelfTerminates(t *testing.T) {
	tally := &Tally{}
	tally.merge(500, 100)

	var mu sync.Mutex
	var emitted []int
	m := startMonitor(tally, 500, 40*time.Millisecond, func(pct int) {
		mu.Lock()
		emitted = append(emitted, pct)
		mu.Unlock()
	})

	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor kept running after the tally completed")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(emitted) != 1 || emitted[0] != 100 {
		t.Errorf("emitted %v, want [100]", emitted)
	}
}

func TestMonitorFinalReportOnStop(t *testing.T) {
	tally := &Tally{}
	tally.merge(250, 50)

	var mu sync.Mutex
	var emitted []int
	m := startMonitor(tally, 500, 40*time.Millisecond, func(pct int) {
		mu.Lock()
		emitted = append(emitted, pct)
		mu.Unlock()
	})

	time.Sleep(35 * time.Millisecond)
	m.Stop()

	// 50% lands exactly once, whether a poll beat Stop to it or not
	mu.Lock()
	defer mu.Unlock()
	if len(emitted) != 1 || emitted[0] != 50 {
		t.Errorf("emitted %v, want [50]", emitted)
	}
}

func TestMonitorOverflowClamped(t *testing.T) {
	tally := &Tally{}
	tally.merge(700, 700) // more than the monitor expects

	var mu sync.Mutex
	var emitted []int
	m := startMonitor(tally, 500, 40*time.Millisecond, func(pct int) {
		mu.Lock()
		emitted = append(emitted, pct)
		mu.Unlock()
	})

	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor kept running after the tally completed")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(emitted) != 1 || emitted[0] != 100 {
		t.Errorf("emitted %v, want [100]", emitted)
	}
}

func TestMonitorTinyInterval(t *testing.T) {
	tally := &Tally{}
	tally.merge(500, 250)

	var mu sync.Mutex
	var emitted []int
	// quartering a nanosecond truncates to zero; the monitor has to fall
	// back to a positive ticker period instead of panicking
	m := startMonitor(tally, 500, time.Nanosecond, func(pct int) {
		mu.Lock()
		emitted = append(emitted, pct)
		mu.Unlock()
	})

	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor kept running after the tally completed")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(emitted) != 1 || emitted[0] != 100 {
		t.Errorf("emitted %v, want [100]", emitted)
	}
}

func TestEstimateProgressStream(t *testing.T) {
	poly := NewPolygon(Point{0.5, 0.5}, Point{1.5, 0.5}, Point{1.5, 1.5}, Point{0.5, 1.5})

	var mu sync.Mutex
	var stream []int
	cfg := Config{
		Samples:  2_000_000,
		Workers:  4,
		Seed:     77,
		Interval: 20 * time.Millisecond,
		Progress: func(pct int) {
			mu.Lock()
			stream = append(stream, pct)
			mu.Unlock()
		},
	}

	res, err := Estimate(context.Background(), poly, cfg)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if res.Checked != 2_000_000 {
		t.Errorf("Checked = %d, want 2000000", res.Checked)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(stream) == 0 {
		t.Fatal("no progress was reported")
	}
	if last := stream[len(stream)-1]; last != 100 {
		t.Errorf("final progress = %d, want 100", last)
	}
	for i := 1; i < len(stream); i++ {
		if stream[i] < stream[i-1] {
			t.Fatalf("progress regressed: %v", stream)
		}
	}
	for _, pct := range stream {
		if pct < 0 || pct > 100 {
			t.Fatalf("progress %d out of range: %v", pct, stream)
		}
	}
}

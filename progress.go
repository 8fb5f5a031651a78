package polyarea

import (
	"time"

	"golang.org/x/time/rate"
)

// progressMonitor watches the shared tally from its own goroutine and
// emits completion percentages. It only ever reads the tally, so a slow
// or skipped poll cannot affect the estimate.
type progressMonitor struct {
	tally   *Tally
	total   uint64
	emit    func(int)
	limiter *rate.Limiter
	last    int
	stop    chan struct{}
	done    chan struct{}
}

// startMonitor begins watching the tally. Polling runs at a quarter of
// interval so termination is prompt; the limiter paces emissions down
// to one per interval.
func startMonitor(t *Tally, total int, interval time.Duration, emit func(int)) *progressMonitor {
	m := &progressMonitor{
		tally:   t,
		total:   uint64(total),
		emit:    emit,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		last:    -1,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	// the ticker needs a positive period
	poll := interval / 4
	if poll <= 0 {
		poll = time.Millisecond
	}
	go m.watch(poll)
	return m
}

// Stop ends the monitor and blocks until its final report has landed
func (m *progressMonitor) Stop() {
	close(m.stop)
	<-m.done
}

func (m *progressMonitor) watch(poll time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			m.report(true)
			return
		case <-ticker.C:
			if m.report(false) {
				return
			}
		}
	}
}

// report emits floor(checked*100/total) and returns true once every
// sample has been observed. Emissions never decrease: intermediate ones
// are paced by the limiter, the final one always lands.
func (m *progressMonitor) report(final bool) bool {
	checked := m.tally.Checked()
	complete := checked >= m.total
	if complete {
		checked = m.total
	}

	pct := int(checked * 100 / m.total)
	switch {
	case final || complete:
		if pct != m.last {
			m.emit(pct)
			m.last = pct
		}
	case pct > m.last && m.limiter.Allow():
		m.emit(pct)
		m.last = pct
	}

	return complete
}

package crawl

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how many records a crawl has stored and how fast.
// The total is unknown up front, so only counts and rate are shown.
type ProgressTracker struct {
	writer         io.Writer
	records        int
	pages          int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stderr)
// reportInterval: report progress every N records
func NewProgressTracker(writer io.Writer, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.records = 0
	p.pages = 0
	p.lastReported = 0
}

// AddPage records one stored page of n records.
func (p *ProgressTracker) AddPage(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.pages++
	p.records += n

	if p.records-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.records
	}
}

// Finish prints the final totals.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.report()
	fmt.Fprintln(p.writer)
	p.started = false
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(p.records) / elapsed.Seconds()
	}

	fmt.Fprintf(p.writer, "\rProgress: %d records, %d pages - %.1f records/s",
		p.records, p.pages, rate)
}

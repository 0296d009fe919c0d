package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"bazaar-tracker/internal/metrics"
)

// Pipeline runs the full tracking cycle: aggregate the hourly snapshots
// into today's daily one, capture the current hour, recompute cumulative
// stats, surface opportunities, and refresh the flip watchlist.
// Cycles are strictly sequential; the ticker is the only thing that starts
// them, and nothing inside the pipeline locks against a manual trigger
// racing a scheduled one.
type Pipeline struct {
	bazaar        *BazaarService
	snapshots     *SnapshotService
	aggregator    *Aggregator
	profit        *ProfitCalculator
	opportunities *OpportunityMatcher
	flips         *FlipService
	interval      time.Duration

	mu            sync.RWMutex
	cyclesRun     int
	lastCycleTime time.Time
	lastCycleErrs []string

	now func() time.Time
}

// PipelineStatus is the snapshot of pipeline state served by the API.
type PipelineStatus struct {
	LastCycleTime   time.Time `json:"last_cycle_time"`
	NextCycleTime   time.Time `json:"next_cycle_time"`
	CyclesRun       int       `json:"cycles_run"`
	Interval        string    `json:"interval"`
	LastCycleErrors []string  `json:"last_cycle_errors,omitempty"`
}

// NewPipeline wires the cycle together. A non-positive interval falls back
// to one hour.
func NewPipeline(bazaar *BazaarService, snapshots *SnapshotService, aggregator *Aggregator, profit *ProfitCalculator, opportunities *OpportunityMatcher, flips *FlipService, interval time.Duration) *Pipeline {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Pipeline{
		bazaar:        bazaar,
		snapshots:     snapshots,
		aggregator:    aggregator,
		profit:        profit,
		opportunities: opportunities,
		flips:         flips,
		interval:      interval,
		now:           time.Now,
	}
}

// Start runs one cycle immediately, then one per tick until the context is
// cancelled.
func (p *Pipeline) Start(ctx context.Context) {
	log.Printf("Pipeline started: running a full cycle every %v", p.interval)

	p.RunCycle(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Pipeline stopping...")
			return
		case <-ticker.C:
			p.RunCycle(ctx)
		}
	}
}

// RunCycle executes one sequential pass. Every step failure is logged and
// counted but never aborts the remaining steps; the worst outcome of a bad
// step is a cycle that produces no update for that output.
func (p *Pipeline) RunCycle(ctx context.Context) {
	start := p.now()
	date := start.Format("2006-01-02")
	hour := start.Format("15")

	var errs []string
	fail := func(step string, err error) {
		log.Printf("Pipeline: %s failed: %v", step, err)
		metrics.PipelineStepErrors.WithLabelValues(step).Inc()
		errs = append(errs, fmt.Sprintf("%s: %v", step, err))
	}

	if err := p.aggregator.Aggregate(date); err != nil {
		fail("aggregate", err)
	}

	metrics.BazaarFetchesTotal.Inc()
	products, err := p.bazaar.FetchProducts(ctx)
	if err != nil {
		// Skip the hourly write rather than clobber an earlier good
		// capture for this hour slot with an empty one.
		metrics.BazaarFetchErrors.Inc()
		fail("fetch", err)
	} else {
		quotes := SortedQuotes(products)
		metrics.SnapshotProducts.Set(float64(len(quotes)))
		if err := p.snapshots.WriteHourly(hour, quotes); err != nil {
			fail("record_hourly", err)
		}
	}

	if _, err := p.profit.Calculate(date); err != nil {
		fail("profit", err)
	}

	if opportunities, err := p.opportunities.Match(date); err != nil {
		fail("opportunities", err)
	} else {
		metrics.OpportunitiesFound.Set(float64(len(opportunities)))
	}

	// The flip updater shares the cycle's single fetch; with no fresh
	// quotes there is nothing to merge.
	if products != nil {
		if err := p.flips.Update(products); err != nil {
			fail("flips", err)
		}
	}

	p.mu.Lock()
	p.cyclesRun++
	p.lastCycleTime = start
	p.lastCycleErrs = errs
	p.mu.Unlock()

	metrics.PipelineCyclesTotal.Inc()
	metrics.PipelineCycleDuration.Observe(time.Since(start).Seconds())
	log.Printf("Pipeline: cycle finished in %v (%d step errors)", time.Since(start).Round(time.Millisecond), len(errs))
}

// Status returns the current pipeline status.
func (p *Pipeline) Status() PipelineStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()

	status := PipelineStatus{
		LastCycleTime:   p.lastCycleTime,
		CyclesRun:       p.cyclesRun,
		Interval:        p.interval.String(),
		LastCycleErrors: p.lastCycleErrs,
	}
	if !p.lastCycleTime.IsZero() {
		status.NextCycleTime = p.lastCycleTime.Add(p.interval)
	}
	return status
}

package services

import (
	"errors"
	"fmt"
	"log"

	"bazaar-tracker/internal/models"
	"bazaar-tracker/internal/storage"
)

const opportunityFile = "data_js.js"

// OpportunityMatcher joins a day's live buy prices against that day's
// computed average sell prices to surface flip opportunities.
type OpportunityMatcher struct {
	snapshots *SnapshotService
	profit    *ProfitCalculator
	store     storage.Store
}

// NewOpportunityMatcher creates a matcher over the given services and store.
func NewOpportunityMatcher(snapshots *SnapshotService, profit *ProfitCalculator, store storage.Store) *OpportunityMatcher {
	return &OpportunityMatcher{snapshots: snapshots, profit: profit, store: store}
}

// Match emits one Opportunity per product in the day's snapshot whose buy
// price is positive and below its historical average sell price, in the
// snapshot's own order, and writes the script export for the dashboard.
// Products without stats default to an average sell of 0, which can never
// undercut a positive buy. Missing either input file is a logged no-op.
func (m *OpportunityMatcher) Match(date string) ([]models.Opportunity, error) {
	daily, err := m.snapshots.ReadDaily(date)
	if errors.Is(err, storage.ErrNotFound) {
		log.Printf("Opportunities: no daily snapshot for %s yet, skipping", date)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stats, err := m.profit.ReadStats(date)
	if errors.Is(err, storage.ErrNotFound) {
		log.Printf("Opportunities: no stats for %s yet, skipping", date)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	avgSell := make(map[string]float64, len(stats.Items))
	for _, item := range stats.Items {
		avgSell[item.ItemID] = item.AvgSell
	}

	opportunities := make([]models.Opportunity, 0)
	for _, rec := range daily {
		buy := rec.Buy()
		if buy <= 0 {
			continue
		}
		sell := avgSell[rec.ProductID]
		if buy < sell {
			opportunities = append(opportunities, models.Opportunity{
				ItemID:     rec.ProductID,
				BuyPrice:   buy,
				SellPrice:  sell,
				Difference: sell - buy,
			})
		}
	}

	// An empty list still gets exported so the dashboard shows "nothing
	// profitable" instead of yesterday's results.
	data, err := storage.EncodeScript("data", models.OpportunityExport{ProfitableItems: opportunities})
	if err != nil {
		return nil, err
	}
	if err := m.store.Put(DirOpportunities, opportunityFile, data); err != nil {
		return nil, fmt.Errorf("writing opportunity export: %w", err)
	}
	log.Printf("Opportunities: %d profitable products for %s", len(opportunities), date)
	return opportunities, nil
}

// Current decodes the last written opportunity export, or
// storage.ErrNotFound if no cycle has produced one yet.
func (m *OpportunityMatcher) Current() (*models.OpportunityExport, error) {
	data, err := m.store.Get(DirOpportunities, opportunityFile)
	if err != nil {
		return nil, err
	}
	var export models.OpportunityExport
	if err := storage.DecodeScript(data, "data", &export); err != nil {
		return nil, err
	}
	return &export, nil
}

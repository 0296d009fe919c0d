package services

import (
	"fmt"
	"log"

	"bazaar-tracker/internal/models"
)

// Aggregator collapses the hourly snapshots into one daily snapshot.
type Aggregator struct {
	snapshots *SnapshotService
}

// NewAggregator creates an aggregator over the given snapshot service.
func NewAggregator(snapshots *SnapshotService) *Aggregator {
	return &Aggregator{snapshots: snapshots}
}

// Aggregate averages every hourly snapshot currently on disk per product and
// writes the result as the daily snapshot for date, replacing any earlier
// aggregation for that date. A product contributes only for the hours it
// actually appears in; a missing price counts as 0. With no hourly
// snapshots present the call is a logged no-op.
func (a *Aggregator) Aggregate(date string) error {
	type accum struct {
		buySum, sellSum float64
		hours           int
	}
	totals := make(map[string]*accum)
	var order []string
	partitions := 0

	for _, records := range a.snapshots.Hourly() {
		partitions++
		for _, rec := range records {
			acc, ok := totals[rec.ProductID]
			if !ok {
				acc = &accum{}
				totals[rec.ProductID] = acc
				order = append(order, rec.ProductID)
			}
			acc.buySum += rec.Buy()
			acc.sellSum += rec.Sell()
			acc.hours++
		}
	}

	if partitions == 0 {
		log.Printf("Aggregator: no hourly snapshots found, skipping aggregation for %s", date)
		return nil
	}
	if len(order) == 0 {
		log.Printf("Aggregator: hourly snapshots contain no products, skipping aggregation for %s", date)
		return nil
	}

	daily := make([]models.ProductQuote, 0, len(order))
	for _, id := range order {
		acc := totals[id]
		n := float64(acc.hours)
		daily = append(daily, models.NewProductQuote(id, acc.sellSum/n, acc.buySum/n))
	}

	if err := a.snapshots.WriteDaily(date, daily); err != nil {
		return fmt.Errorf("writing daily snapshot for %s: %w", date, err)
	}
	log.Printf("Aggregator: collapsed %d hourly snapshots into %d products for %s", partitions, len(daily), date)
	return nil
}

package services

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"

	"bazaar-tracker/internal/models"
	"bazaar-tracker/internal/storage"
)

// ProfitCalculator derives cumulative per-product statistics from every
// daily snapshot written so far.
type ProfitCalculator struct {
	snapshots *SnapshotService
	store     storage.Store
}

// NewProfitCalculator creates a calculator over the given snapshot service
// and store.
func NewProfitCalculator(snapshots *SnapshotService, store storage.Store) *ProfitCalculator {
	return &ProfitCalculator{snapshots: snapshots, store: store}
}

func statsFile(date string) string {
	return "calculs_benefs_moyenne_" + date + ".json"
}

func profitLogFile(date string) string {
	return "items_en_benef_" + date + ".txt"
}

// Calculate scans the full daily-snapshot history, computes avg/min/max buy
// and sell plus profit per product, and writes the stats document for date
// (idempotent overwrite). Products whose profit is positive with a non-zero
// average buy are also appended to the day's plain-text profit log; the log
// is append-only, so rerunning on the same day accumulates duplicate lines.
// With no daily snapshots present the call is a logged no-op returning nil.
func (c *ProfitCalculator) Calculate(date string) (*models.DailyStats, error) {
	type history struct {
		buys, sells []float64
	}
	perItem := make(map[string]*history)
	var order []string
	days := 0

	for _, records := range c.snapshots.Daily() {
		days++
		for _, rec := range records {
			h, ok := perItem[rec.ProductID]
			if !ok {
				h = &history{}
				perItem[rec.ProductID] = h
				order = append(order, rec.ProductID)
			}
			h.buys = append(h.buys, rec.Buy())
			h.sells = append(h.sells, rec.Sell())
		}
	}

	if days == 0 {
		log.Printf("Profit: no daily snapshots yet, skipping calculation for %s", date)
		return nil, nil
	}

	stats := &models.DailyStats{Date: date, Items: make([]models.ItemStats, 0, len(order))}
	var profitLog strings.Builder
	for _, id := range order {
		h := perItem[id]
		if len(h.buys) == 0 || len(h.sells) == 0 {
			continue
		}
		item := models.ItemStats{
			ItemID:  id,
			AvgBuy:  mean(h.buys),
			AvgSell: mean(h.sells),
			MaxBuy:  slices.Max(h.buys),
			MinBuy:  slices.Min(h.buys),
			MaxSell: slices.Max(h.sells),
			MinSell: slices.Min(h.sells),
		}
		item.Profit = item.AvgSell - item.AvgBuy
		stats.Items = append(stats.Items, item)

		if item.Profit > 0 && item.AvgBuy != 0 {
			fmt.Fprintf(&profitLog, "Profit of: %.2f on: %s\n", item.Profit, id)
		}
	}

	if profitLog.Len() > 0 {
		if err := c.store.Append(DirProfitLog, profitLogFile(date), []byte(profitLog.String())); err != nil {
			// The log is a convenience artifact; the stats file still counts.
			log.Printf("Profit: appending profit log for %s: %v", date, err)
		}
	}

	data, err := json.MarshalIndent(stats, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding stats for %s: %w", date, err)
	}
	if err := c.store.Put(DirStats, statsFile(date), data); err != nil {
		return nil, fmt.Errorf("writing stats for %s: %w", date, err)
	}
	log.Printf("Profit: computed stats for %d products over %d daily snapshots", len(stats.Items), days)
	return stats, nil
}

// ReadStats loads the stats document computed for date, or
// storage.ErrNotFound if none exists.
func (c *ProfitCalculator) ReadStats(date string) (*models.DailyStats, error) {
	data, err := c.store.Get(DirStats, statsFile(date))
	if err != nil {
		return nil, err
	}
	var stats models.DailyStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("parsing stats for %s: %w", date, err)
	}
	return &stats, nil
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

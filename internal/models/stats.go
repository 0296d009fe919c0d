package models

// ItemStats holds the cumulative price statistics for one product across
// every daily snapshot processed so far. Profit is always AvgSell - AvgBuy.
type ItemStats struct {
	ItemID  string  `json:"item_id"`
	AvgBuy  float64 `json:"avg_buy"`
	AvgSell float64 `json:"avg_sell"`
	MaxBuy  float64 `json:"max_buy"`
	MinBuy  float64 `json:"min_buy"`
	MaxSell float64 `json:"max_sell"`
	MinSell float64 `json:"min_sell"`
	Profit  float64 `json:"profit"`
}

// DailyStats is the stats file written after aggregating a day: one entry
// per product, in the order products were first seen across the day's hours.
type DailyStats struct {
	Date  string      `json:"date"`
	Items []ItemStats `json:"items"`
}

// Lookup returns the stats entry for the given product, if present.
func (d DailyStats) Lookup(itemID string) (ItemStats, bool) {
	for _, it := range d.Items {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return ItemStats{}, false
}

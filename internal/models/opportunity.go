package models

// Opportunity is a product whose live buy price sits below its historical
// average sell price. Difference is SellPrice - BuyPrice.
type Opportunity struct {
	ItemID     string  `json:"item_id"`
	BuyPrice   float64 `json:"buy_price"`
	SellPrice  float64 `json:"sell_price"`
	Difference float64 `json:"difference"`
}

// OpportunityExport is the document embedded in the profitable-items
// script export consumed by the web frontend.
type OpportunityExport struct {
	ProfitableItems []Opportunity `json:"profitable_items"`
}

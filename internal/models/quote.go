package models

// ProductQuote is one product's buy/sell quote inside a snapshot file.
// Prices are pointers because the Bazaar API can omit either side of the
// book; a nil price counts as 0 everywhere the pipeline does arithmetic.
type ProductQuote struct {
	ProductID string   `json:"product_id"`
	SellPrice *float64 `json:"sell_price"`
	BuyPrice  *float64 `json:"buy_price"`
}

// NewProductQuote builds a quote with both prices set.
func NewProductQuote(productID string, sellPrice, buyPrice float64) ProductQuote {
	return ProductQuote{
		ProductID: productID,
		SellPrice: &sellPrice,
		BuyPrice:  &buyPrice,
	}
}

// Sell returns the sell price, treating a missing price as 0.
func (q ProductQuote) Sell() float64 {
	if q.SellPrice == nil {
		return 0
	}
	return *q.SellPrice
}

// Buy returns the buy price, treating a missing price as 0.
func (q ProductQuote) Buy() float64 {
	if q.BuyPrice == nil {
		return 0
	}
	return *q.BuyPrice
}

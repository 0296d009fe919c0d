package models

// FlipEntry is one row of the hand-curated flip watchlist. The curator owns
// the file and may add fields the tracker knows nothing about, so entries are
// kept as opaque key/value maps; the updater only ever touches the two
// moving-week fields.
type FlipEntry map[string]any

// ProductID returns the entry's product identifier, or "" if the curator
// left it out.
func (e FlipEntry) ProductID() string {
	id, _ := e["product_id"].(string)
	return id
}

// SetMovingWeek overwrites the weekly traded-volume fields in place.
func (e FlipEntry) SetMovingWeek(buy, sell int64) {
	e["buyMovingWeek"] = buy
	e["sellMovingWeek"] = sell
}

// FlipList mirrors the document embedded in the watchlist script file.
type FlipList struct {
	Flips []FlipEntry `json:"flips"`
}

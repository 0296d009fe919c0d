package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"bazaar-tracker/internal/models"
)

const (
	defaultBazaarURL     = "https://api.hypixel.net/v2/skyblock/bazaar"
	bazaarDefaultTimeout = 10 * time.Second
)

// BazaarService fetches the live Bazaar order book from the Hypixel API.
type BazaarService struct {
	client  *http.Client
	apiURL  string
	limiter *rate.Limiter
}

// BazaarProduct is one product entry from the Bazaar API response.
type BazaarProduct struct {
	QuickStatus BazaarQuickStatus `json:"quick_status"`
}

// BazaarQuickStatus is the per-product summary the API exposes. Prices are
// pointers because either side of the book can be empty.
type BazaarQuickStatus struct {
	SellPrice      *float64 `json:"sellPrice"`
	BuyPrice       *float64 `json:"buyPrice"`
	BuyMovingWeek  int64    `json:"buyMovingWeek"`
	SellMovingWeek int64    `json:"sellMovingWeek"`
}

type bazaarResponse struct {
	Success     bool                     `json:"success"`
	LastUpdated int64                    `json:"lastUpdated"`
	Products    map[string]BazaarProduct `json:"products"`
}

// NewBazaarService creates a Bazaar API client. An empty apiURL falls back
// to the public Hypixel endpoint.
func NewBazaarService(apiURL string) *BazaarService {
	if apiURL == "" {
		apiURL = defaultBazaarURL
	}
	return &BazaarService{
		client: &http.Client{
			Timeout: bazaarDefaultTimeout,
		},
		apiURL: apiURL,
		// Hypixel allows 300 requests per 5 minutes; one per second is
		// far below that and covers manual triggers racing the schedule.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// FetchProducts downloads the full live order book, keyed by product ID.
func (s *BazaarService) FetchProducts(ctx context.Context) (map[string]BazaarProduct, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", s.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bazaar data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bazaar API returned status %d", resp.StatusCode)
	}

	var body bazaarResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode bazaar response: %w", err)
	}
	if !body.Success {
		return nil, fmt.Errorf("bazaar API returned unsuccessful response")
	}

	return body.Products, nil
}

// SortedQuotes flattens a product map into snapshot records sorted by
// product ID, so repeated captures of the same book serialize identically.
func SortedQuotes(products map[string]BazaarProduct) []models.ProductQuote {
	quotes := make([]models.ProductQuote, 0, len(products))
	for id, product := range products {
		quotes = append(quotes, models.ProductQuote{
			ProductID: id,
			SellPrice: product.QuickStatus.SellPrice,
			BuyPrice:  product.QuickStatus.BuyPrice,
		})
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].ProductID < quotes[j].ProductID
	})
	return quotes
}

package services

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"bazaar-tracker/internal/models"
	"bazaar-tracker/internal/storage"
)

const flipFile = "data_flip.js"

// FlipService maintains the hand-curated flip watchlist. The curator adds
// and removes entries by editing the script file; the tracker's only job is
// to refresh each entry's weekly traded-volume figures.
type FlipService struct {
	store storage.Store
}

// NewFlipService creates a flip service over the given store.
func NewFlipService(store storage.Store) *FlipService {
	return &FlipService{store: store}
}

// Load reads the watchlist, starting from an empty list when the file is
// missing, empty, or unparseable.
func (s *FlipService) Load() models.FlipList {
	empty := models.FlipList{Flips: []models.FlipEntry{}}

	data, err := s.store.Get(DirFlips, flipFile)
	if errors.Is(err, storage.ErrNotFound) {
		return empty
	}
	if err != nil {
		log.Printf("Flips: reading watchlist: %v", err)
		return empty
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return empty
	}

	var list models.FlipList
	if err := storage.DecodeScript(data, "data_flips", &list); err != nil {
		log.Printf("Warning: flip watchlist is malformed, starting fresh: %v", err)
		return empty
	}
	if list.Flips == nil {
		list.Flips = []models.FlipEntry{}
	}
	return list
}

// Update overwrites the moving-week volume on every watchlist entry whose
// product appears in the fresh quote set, then rewrites the whole list.
// Unmatched entries and curated fields round-trip untouched; entries are
// never dropped.
func (s *FlipService) Update(products map[string]BazaarProduct) error {
	list := s.Load()

	matched := 0
	for _, entry := range list.Flips {
		product, ok := products[entry.ProductID()]
		if !ok {
			continue
		}
		entry.SetMovingWeek(product.QuickStatus.BuyMovingWeek, product.QuickStatus.SellMovingWeek)
		matched++
	}

	data, err := storage.EncodeScript("data_flips", list)
	if err != nil {
		return err
	}
	if err := s.store.Put(DirFlips, flipFile, data); err != nil {
		return fmt.Errorf("writing flip watchlist: %w", err)
	}
	log.Printf("Flips: refreshed moving-week volume on %d/%d watchlist entries", matched, len(list.Flips))
	return nil
}

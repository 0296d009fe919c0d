package services

import (
	"encoding/json"
	"fmt"
	"iter"
	"log"
	"strings"

	"bazaar-tracker/internal/models"
	"bazaar-tracker/internal/storage"
)

// Partition directories under the data root. The names are part of the
// on-disk contract: the dashboard pages and any hand-curated files already
// live in this layout.
const (
	DirHourly        = "heure"
	DirDaily         = "Bazaar"
	DirStats         = "calculs"
	DirProfitLog     = "benef"
	DirOpportunities = "journalierJS"
	DirFlips         = "flip"
)

// DataDirs lists every partition directory bootstrapped under the data root.
var DataDirs = []string{DirDaily, DirHourly, DirProfitLog, DirStats, DirOpportunities, DirFlips}

// SnapshotService reads and writes hourly and daily price snapshots. A
// snapshot file is a JSON array of ProductQuote records named
// bazaar_<key>.json, where the key is a two-digit hour for hourly
// partitions and a YYYY-MM-DD date for daily ones.
type SnapshotService struct {
	store storage.Store
}

// NewSnapshotService creates a snapshot service over the given store.
func NewSnapshotService(store storage.Store) *SnapshotService {
	return &SnapshotService{store: store}
}

func snapshotFile(key string) string {
	return "bazaar_" + key + ".json"
}

// partitionKey extracts the hour or date key from a snapshot file name.
func partitionKey(name string) (string, bool) {
	key, ok := strings.CutPrefix(name, "bazaar_")
	if !ok {
		return "", false
	}
	return strings.CutSuffix(key, ".json")
}

// WriteHourly replaces the snapshot for the given hour ("00"-"23").
func (s *SnapshotService) WriteHourly(hour string, records []models.ProductQuote) error {
	return s.write(DirHourly, hour, records)
}

// WriteDaily replaces the aggregated snapshot for the given date.
func (s *SnapshotService) WriteDaily(date string, records []models.ProductQuote) error {
	return s.write(DirDaily, date, records)
}

func (s *SnapshotService) write(dir, key string, records []models.ProductQuote) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", key, err)
	}
	if err := s.store.Put(dir, snapshotFile(key), data); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", key, err)
	}
	return nil
}

// ReadDaily returns the aggregated snapshot for the given date, or
// storage.ErrNotFound if no aggregation has been written for it yet.
func (s *SnapshotService) ReadDaily(date string) ([]models.ProductQuote, error) {
	data, err := s.store.Get(DirDaily, snapshotFile(date))
	if err != nil {
		return nil, err
	}
	var records []models.ProductQuote
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing daily snapshot %s: %w", date, err)
	}
	return records, nil
}

// Hourly iterates every hourly snapshot currently on disk in partition-key
// order. Malformed partitions are skipped with a warning so partial data
// from the remaining hours still aggregates.
func (s *SnapshotService) Hourly() iter.Seq2[string, []models.ProductQuote] {
	return s.partitions(DirHourly)
}

// Daily iterates every daily snapshot ever written, oldest date first, with
// the same skip-on-malformed tolerance as Hourly.
func (s *SnapshotService) Daily() iter.Seq2[string, []models.ProductQuote] {
	return s.partitions(DirDaily)
}

func (s *SnapshotService) partitions(dir string) iter.Seq2[string, []models.ProductQuote] {
	return func(yield func(string, []models.ProductQuote) bool) {
		names, err := s.store.List(dir)
		if err != nil {
			log.Printf("Snapshots: listing %s: %v", dir, err)
			return
		}
		for _, name := range names {
			key, ok := partitionKey(name)
			if !ok {
				continue
			}
			data, err := s.store.Get(dir, name)
			if err != nil {
				log.Printf("Warning: reading snapshot %s/%s: %v", dir, name, err)
				continue
			}
			var records []models.ProductQuote
			if err := json.Unmarshal(data, &records); err != nil {
				log.Printf("Warning: skipping malformed snapshot %s/%s: %v", dir, name, err)
				continue
			}
			if !yield(key, records) {
				return
			}
		}
	}
}

// HourKeys lists the hourly partition keys currently on disk.
func (s *SnapshotService) HourKeys() ([]string, error) {
	names, err := s.store.List(DirHourly)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(names))
	for _, name := range names {
		if key, ok := partitionKey(name); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

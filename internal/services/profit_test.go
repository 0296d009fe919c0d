package services

import (
	"strings"
	"testing"

	"bazaar-tracker/internal/models"
	"bazaar-tracker/internal/storage"
)

func TestCalculateCumulativeStats(t *testing.T) {
	store := storage.NewMemStore()
	snapshots := NewSnapshotService(store)
	calc := NewProfitCalculator(snapshots, store)

	// Two days of history for one product
	snapshots.WriteDaily("2024-03-01", []models.ProductQuote{models.NewProductQuote("ENCHANTED_COAL", 10, 6)})
	snapshots.WriteDaily("2024-03-02", []models.ProductQuote{models.NewProductQuote("ENCHANTED_COAL", 12, 4)})

	stats, err := calc.Calculate("2024-03-02")
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if stats.Date != "2024-03-02" {
		t.Errorf("expected date 2024-03-02, got %s", stats.Date)
	}
	if len(stats.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(stats.Items))
	}

	item := stats.Items[0]
	if !almostEqual(item.AvgBuy, 5) || !almostEqual(item.AvgSell, 11) {
		t.Errorf("expected avg_buy 5 avg_sell 11, got %v / %v", item.AvgBuy, item.AvgSell)
	}
	if item.MinBuy != 4 || item.MaxBuy != 6 {
		t.Errorf("expected buy range [4,6], got [%v,%v]", item.MinBuy, item.MaxBuy)
	}
	if item.MinSell != 10 || item.MaxSell != 12 {
		t.Errorf("expected sell range [10,12], got [%v,%v]", item.MinSell, item.MaxSell)
	}
}

func TestProfitEqualsAvgSellMinusAvgBuy(t *testing.T) {
	store := storage.NewMemStore()
	snapshots := NewSnapshotService(store)
	calc := NewProfitCalculator(snapshots, store)

	snapshots.WriteDaily("2024-03-01", []models.ProductQuote{
		models.NewProductQuote("A", 123.456, 23.4),
		models.NewProductQuote("B", 1, 7),
		models.NewProductQuote("C", 0, 0),
	})
	snapshots.WriteDaily("2024-03-02", []models.ProductQuote{
		models.NewProductQuote("A", 99.9, 50.5),
		models.NewProductQuote("B", 3, 3),
	})

	stats, err := calc.Calculate("2024-03-02")
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	for _, item := range stats.Items {
		if !almostEqual(item.Profit, item.AvgSell-item.AvgBuy) {
			t.Errorf("%s: profit %v != avg_sell %v - avg_buy %v", item.ItemID, item.Profit, item.AvgSell, item.AvgBuy)
		}
	}
}

func TestCalculateWritesStatsFile(t *testing.T) {
	store := storage.NewMemStore()
	snapshots := NewSnapshotService(store)
	calc := NewProfitCalculator(snapshots, store)

	snapshots.WriteDaily("2024-03-01", []models.ProductQuote{models.NewProductQuote("A", 10, 5)})

	if _, err := calc.Calculate("2024-03-01"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	data, err := store.Get(DirStats, "calculs_benefs_moyenne_2024-03-01.json")
	if err != nil {
		t.Fatalf("stats file not written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "\"date\": \"2024-03-01\"") {
		t.Errorf("stats file should carry the date, got %s", content)
	}
	if !strings.Contains(content, "    \"items\"") {
		t.Errorf("stats file should be 4-space indented, got %s", content)
	}

	// Re-reading through the service round-trips
	stats, err := calc.ReadStats("2024-03-01")
	if err != nil {
		t.Fatalf("ReadStats failed: %v", err)
	}
	if len(stats.Items) != 1 || stats.Items[0].ItemID != "A" {
		t.Errorf("unexpected stats round trip: %+v", stats)
	}
}

func TestProfitLogOnlyPositiveWithNonZeroBuy(t *testing.T) {
	store := storage.NewMemStore()
	snapshots := NewSnapshotService(store)
	calc := NewProfitCalculator(snapshots, store)

	snapshots.WriteDaily("2024-03-01", []models.ProductQuote{
		models.NewProductQuote("WINNER", 10, 4),  // profit 6, logged
		models.NewProductQuote("LOSER", 4, 10),   // negative, not logged
		models.NewProductQuote("FREEBIE", 10, 0), // avg_buy 0, not logged
	})

	if _, err := calc.Calculate("2024-03-01"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	data, err := store.Get(DirProfitLog, "items_en_benef_2024-03-01.txt")
	if err != nil {
		t.Fatalf("profit log not written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Profit of: 6.00 on: WINNER") {
		t.Errorf("expected WINNER line, got %q", content)
	}
	if strings.Contains(content, "LOSER") {
		t.Errorf("negative profit must not be logged, got %q", content)
	}
	if strings.Contains(content, "FREEBIE") {
		t.Errorf("zero avg_buy must not be logged, got %q", content)
	}
}

func TestProfitLogAccumulatesAcrossReruns(t *testing.T) {
	store := storage.NewMemStore()
	snapshots := NewSnapshotService(store)
	calc := NewProfitCalculator(snapshots, store)

	snapshots.WriteDaily("2024-03-01", []models.ProductQuote{models.NewProductQuote("WINNER", 10, 4)})

	calc.Calculate("2024-03-01")
	calc.Calculate("2024-03-01")

	data, _ := store.Get(DirProfitLog, "items_en_benef_2024-03-01.txt")
	lines := strings.Count(string(data), "Profit of: 6.00 on: WINNER")
	if lines != 2 {
		t.Errorf("log is append-only, expected the line twice after rerun, got %d", lines)
	}

	// The JSON stats file, by contrast, is an idempotent overwrite.
	stats, err := calc.ReadStats("2024-03-01")
	if err != nil {
		t.Fatalf("ReadStats failed: %v", err)
	}
	if len(stats.Items) != 1 {
		t.Errorf("stats must not duplicate on rerun, got %d items", len(stats.Items))
	}
}

func TestCalculateNoDailySnapshotsIsNoOp(t *testing.T) {
	store := storage.NewMemStore()
	snapshots := NewSnapshotService(store)
	calc := NewProfitCalculator(snapshots, store)

	stats, err := calc.Calculate("2024-03-01")
	if err != nil {
		t.Fatalf("Calculate with no history should not error: %v", err)
	}
	if stats != nil {
		t.Errorf("expected nil stats, got %+v", stats)
	}
	if _, err := store.Get(DirStats, "calculs_benefs_moyenne_2024-03-01.json"); err == nil {
		t.Error("no stats file should be written without daily snapshots")
	}
}

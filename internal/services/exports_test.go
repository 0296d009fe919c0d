package services

import (
	"testing"

	"bazaar-tracker/internal/models"
	"bazaar-tracker/internal/storage"
)

func TestExportReferenceText(t *testing.T) {
	store := storage.NewMemStore()
	svc := NewExportService(store)

	quotes := []models.ProductQuote{
		models.NewProductQuote("ENCHANTED_COAL", 10.5, 5.25),
		models.NewProductQuote("HUGE_PRICE", 6000000, 5900000),
	}
	if err := svc.WriteReference(quotes); err != nil {
		t.Fatalf("WriteReference failed: %v", err)
	}
	if err := svc.ExportReferenceText(); err != nil {
		t.Fatalf("ExportReferenceText failed: %v", err)
	}

	data, err := store.Get("", "ref_data")
	if err != nil {
		t.Fatalf("text export not written: %v", err)
	}
	want := "ENCHANTED_COAL 10.5 5.25\nHUGE_PRICE 6000000 5900000\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, string(data))
	}
}

func TestExportTextNullPricesRenderAsZero(t *testing.T) {
	store := storage.NewMemStore()
	svc := NewExportService(store)

	quotes := []models.ProductQuote{{ProductID: "WHEAT", BuyPrice: nil, SellPrice: nil}}
	if err := svc.WriteComparison(quotes); err != nil {
		t.Fatalf("WriteComparison failed: %v", err)
	}
	if err := svc.ExportComparisonText(); err != nil {
		t.Fatalf("ExportComparisonText failed: %v", err)
	}

	data, _ := store.Get("", "comp_data")
	if string(data) != "WHEAT 0 0\n" {
		t.Errorf("null prices should render as 0, got %q", string(data))
	}
}

func TestExportTextMissingCaptureIsNoOp(t *testing.T) {
	store := storage.NewMemStore()
	svc := NewExportService(store)

	if err := svc.ExportReferenceText(); err != nil {
		t.Fatalf("missing capture should be a no-op, got %v", err)
	}
	if _, err := store.Get("", "ref_data"); err == nil {
		t.Error("no text file should be written without a capture")
	}
}

func TestCaptureOverwrites(t *testing.T) {
	store := storage.NewMemStore()
	svc := NewExportService(store)

	svc.WriteReference([]models.ProductQuote{models.NewProductQuote("A", 1, 1)})
	svc.WriteReference([]models.ProductQuote{models.NewProductQuote("B", 2, 2)})

	data, _ := store.Get("", "bazaar_ref.json")
	if string(data) != `[{"product_id":"B","sell_price":2,"buy_price":2}]` {
		t.Errorf("capture should be a whole-file replacement, got %s", data)
	}
}

package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"bazaar-tracker/internal/models"
	"bazaar-tracker/internal/storage"
)

// Capture and export file names in the data root.
const (
	referenceFile      = "bazaar_ref.json"
	comparisonFile     = "bazaar_comp.json"
	referenceTextFile  = "ref_data"
	comparisonTextFile = "comp_data"
)

// ExportService writes the reference/comparison price captures and their
// plain-text exports.
type ExportService struct {
	store storage.Store
}

// NewExportService creates an export service over the given store.
func NewExportService(store storage.Store) *ExportService {
	return &ExportService{store: store}
}

// WriteReference captures the given quotes as the reference price set.
func (s *ExportService) WriteReference(quotes []models.ProductQuote) error {
	return s.writeCapture(referenceFile, quotes)
}

// WriteComparison captures the given quotes as the comparison price set.
func (s *ExportService) WriteComparison(quotes []models.ProductQuote) error {
	return s.writeCapture(comparisonFile, quotes)
}

func (s *ExportService) writeCapture(name string, quotes []models.ProductQuote) error {
	data, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return s.store.Put("", name, data)
}

// ExportReferenceText rewrites the reference capture as one
// "id sell buy" line per product. Missing capture is a logged no-op.
func (s *ExportService) ExportReferenceText() error {
	return s.exportText(referenceFile, referenceTextFile)
}

// ExportComparisonText does the same for the comparison capture.
func (s *ExportService) ExportComparisonText() error {
	return s.exportText(comparisonFile, comparisonTextFile)
}

func (s *ExportService) exportText(captureName, textName string) error {
	data, err := s.store.Get("", captureName)
	if errors.Is(err, storage.ErrNotFound) {
		log.Printf("Exports: no %s capture yet, skipping text export", captureName)
		return nil
	}
	if err != nil {
		return err
	}

	var quotes []models.ProductQuote
	if err := json.Unmarshal(data, &quotes); err != nil {
		return fmt.Errorf("parsing %s: %w", captureName, err)
	}

	var b strings.Builder
	for _, q := range quotes {
		b.WriteString(q.ProductID)
		b.WriteByte(' ')
		b.WriteString(formatPrice(q.Sell()))
		b.WriteByte(' ')
		b.WriteString(formatPrice(q.Buy()))
		b.WriteByte('\n')
	}
	return s.store.Put("", textName, []byte(b.String()))
}

// formatPrice renders a price in plain decimal notation. %v would switch to
// scientific notation for the larger Bazaar prices.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

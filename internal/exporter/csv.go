package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"aadhaarcli/pkg/contracts/domain"
)

// Writer exports tables below a base directory.
type Writer struct {
	baseDir string
	logger  *slog.Logger
}

// NewWriter creates a writer rooted at baseDir. Absolute output paths
// bypass the base.
func NewWriter(baseDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{baseDir: baseDir, logger: logger}
}

// WriteCSV writes a table to a CSV file, prefixed with a UTF-8 BOM so
// spreadsheet tools pick up the encoding.
func (w *Writer) WriteCSV(path string, table Table) error {
	fullPath := w.resolvePath(path)

	w.logger.Info("writing CSV export",
		slog.String("path", fullPath),
		slog.Int("row_count", len(table.Rows)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return writer.Error()
}

// jsonDocument is the JSON export envelope.
type jsonDocument struct {
	Table       Table          `json:"table"`
	Metadata    domainMetaJSON `json:"metadata"`
	GeneratedAt string         `json:"generated_at"`
	Format      string         `json:"format"`
}

type domainMetaJSON struct {
	Regions []string `json:"regions"`
	MinDate string   `json:"min_date"`
	MaxDate string   `json:"max_date"`
}

// WriteJSON writes a table with its dataset metadata to a JSON file.
func (w *Writer) WriteJSON(path string, table Table, meta domain.Metadata) error {
	fullPath := w.resolvePath(path)

	w.logger.Info("writing JSON export",
		slog.String("path", fullPath),
		slog.Int("row_count", len(table.Rows)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	doc := jsonDocument{
		Table: table,
		Metadata: domainMetaJSON{
			Regions: meta.Regions,
			MinDate: meta.MinDateISO(),
			MaxDate: meta.MaxDateISO(),
		},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Format:      "aadhaar_summary_v1",
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	return nil
}

// resolvePath joins path onto the base directory unless it is absolute.
func (w *Writer) resolvePath(path string) string {
	if filepath.IsAbs(path) || w.baseDir == "" {
		return path
	}
	return filepath.Join(w.baseDir, path)
}

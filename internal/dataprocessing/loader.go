package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"aadhaarcli/internal/errors"
	"aadhaarcli/internal/files"
	"aadhaarcli/internal/taxonomy"
	"aadhaarcli/pkg/contracts/domain"
)

// Loader reads every tabular file of one dataset category and turns the raw
// rows into canonical records. A failure in any file fails the whole load;
// downstream aggregation assumes a uniform, fully parsed record set.
type Loader struct {
	discovery *files.Discovery
	logger    *slog.Logger
}

// NewLoader creates a loader whose relative directories resolve against
// basePath.
func NewLoader(basePath string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		discovery: files.NewDiscovery(basePath),
		logger:    logger,
	}
}

// Load parses all CSV and XLSX files directly inside dir according to the
// schema. Rows naming several states fan out into one record per state,
// each carrying the full original counts.
func (l *Loader) Load(ctx context.Context, dir string, schema domain.Schema) ([]domain.Record, error) {
	sources, err := l.discovery.FindTabularFiles(dir)
	if err != nil {
		return nil, errors.NewStorageError(
			fmt.Sprintf("failed to enumerate dataset directory %s", dir), err)
	}

	l.logger.InfoContext(ctx, "loading dataset",
		slog.String("dir", dir),
		slog.String("category", string(schema.Category)),
		slog.Int("file_count", len(sources)))

	var records []domain.Record
	for _, src := range sources {
		fileRecords, err := l.loadFile(ctx, src.Path, schema)
		if err != nil {
			return nil, err
		}
		records = append(records, fileRecords...)
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("dir", dir),
		slog.Int("record_count", len(records)))

	return records, nil
}

// loadFile parses one source file into canonical records.
func (l *Loader) loadFile(ctx context.Context, path string, schema domain.Schema) ([]domain.Record, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readExcelRows(path)
	} else {
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.NewFileParsingError(path, "file has no header row", nil)
	}

	columns, err := mapColumns(path, rows[0], schema)
	if err != nil {
		return nil, err
	}

	var records []domain.Record
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		rowRecords, err := l.parseRow(path, rowNum, row, columns, schema)
		if err != nil {
			return nil, err
		}
		records = append(records, rowRecords...)
	}

	l.logger.DebugContext(ctx, "parsed source file",
		slog.String("file", path),
		slog.Int("row_count", len(rows)-1),
		slog.Int("record_count", len(records)))

	return records, nil
}

// columnMap holds the resolved column positions for one file.
type columnMap struct {
	state    int
	date     int
	measures []int
}

// mapColumns resolves the required column positions from the header row.
// Header matching is case-insensitive and whitespace-tolerant; files exported
// at different times vary in column order.
func mapColumns(path string, header []string, schema domain.Schema) (columnMap, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	columns := columnMap{state: -1, date: -1}

	var ok bool
	if columns.state, ok = index[stateColumn]; !ok {
		return columnMap{}, errors.NewFileParsingError(path,
			fmt.Sprintf("missing required column %q", stateColumn), nil)
	}
	if columns.date, ok = index[dateColumn]; !ok {
		return columnMap{}, errors.NewFileParsingError(path,
			fmt.Sprintf("missing required column %q", dateColumn), nil)
	}

	for _, measure := range schema.Measures {
		pos, ok := index[measure]
		if !ok {
			return columnMap{}, errors.NewFileParsingError(path,
				fmt.Sprintf("missing required column %q", measure), nil)
		}
		columns.measures = append(columns.measures, pos)
	}

	return columns, nil
}

// parseRow converts one raw row into zero or more canonical records.
func (l *Loader) parseRow(path string, rowNum int, row []string, columns columnMap, schema domain.Schema) ([]domain.Record, error) {
	maxIdx := columns.state
	if columns.date > maxIdx {
		maxIdx = columns.date
	}
	for _, idx := range columns.measures {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	if len(row) <= maxIdx {
		// Excel trims trailing empty cells, so a short row is only an
		// error when a required column falls past its end.
		padded := make([]string, maxIdx+1)
		copy(padded, row)
		row = padded
	}

	date, err := time.Parse(dateFormat, strings.TrimSpace(row[columns.date]))
	if err != nil {
		return nil, errors.NewFileParsingError(path,
			fmt.Sprintf("row %d: invalid date %q (want DD-MM-YYYY)", rowNum, row[columns.date]), err)
	}

	values := make([]int64, len(columns.measures))
	for i, idx := range columns.measures {
		v, err := parseCount(row[idx])
		if err != nil {
			return nil, errors.NewFileParsingError(path,
				fmt.Sprintf("row %d: invalid value %q for column %q", rowNum, row[idx], schema.Measures[i]), err)
		}
		values[i] = v
	}

	states := taxonomy.Normalize(row[columns.state])
	if len(states) == 0 {
		// Blank or sentinel-only state cell: the row contributes nothing.
		return nil, nil
	}

	records := make([]domain.Record, 0, len(states))
	for _, state := range states {
		vals := make([]int64, len(values))
		copy(vals, values)
		records = append(records, domain.Record{
			Region: state,
			Date:   date,
			Values: vals,
			Total:  schema.Total(vals),
		})
	}
	return records, nil
}

// parseCount parses a non-negative integer measure cell. Thousands
// separators are tolerated, as are integral float renderings from
// spreadsheet tools ("12.0").
func parseCount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int64(f)) {
			return 0, fmt.Errorf("not an integer: %s", s)
		}
		v = int64(f)
	}

	if v < 0 {
		return 0, fmt.Errorf("negative count: %d", v)
	}
	return v, nil
}

// readCSVRows reads all rows of a CSV file, tolerating a UTF-8 BOM.
func readCSVRows(path string) ([][]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError(
			fmt.Sprintf("failed to read source file %s", path), err)
	}

	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1 // length is validated per row against the column map

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewFileParsingError(path, "malformed CSV", err)
	}
	return rows, nil
}

// readExcelRows reads all rows of the first sheet of an XLSX file.
func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewFileParsingError(path, "failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewFileParsingError(path, "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewFileParsingError(path,
			fmt.Sprintf("failed to read sheet %q", sheets[0]), err)
	}
	return rows, nil
}

// Package ingest turns uploaded spreadsheets into bookings: it reads the
// raw cell grid, maps columns by header name, and validates every data row
// against the domain's category sets.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRows loads the cell grid from an upload. The format follows the
// filename extension: .xlsx reads the workbook's first sheet, .csv the
// whole file. Rows may come back ragged; Parse indexes defensively.
func ReadRows(r io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("ingest: unsupported file type %q (want .xlsx or .csv)", filepath.Ext(filename))
	}
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("ingest: reading sheet: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are reported per row, not fatal
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: reading csv: %w", err)
	}
	return rows, nil
}

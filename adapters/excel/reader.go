// Package excel reads tabular datasets from Excel/CSV files and renders
// analysis reports back to Excel workbooks.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"driftlens/domain/dataset"
)

// DataReader handles reading Excel and CSV files into datasets
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadDataset reads the file into a dataset. Cells that parse as numbers
// become numeric values; everything else becomes a string label.
func (r *DataReader) ReadDataset() (*dataset.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}

	return r.processRows(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	log.Printf("[DataReader] read %d rows from %s", len(rows), r.filePath)
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] read %d rows from %s", len(rows), r.filePath)
	return rows, nil
}

// processRows converts raw string rows into a typed dataset. The header row
// defines field order; short rows simply end their columns early.
func (r *DataReader) processRows(rows [][]string) (*dataset.Dataset, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] == "" {
			return nil, fmt.Errorf("empty header in column %d", i+1)
		}
	}

	cols := make(map[string]dataset.Column, len(headers))
	for _, row := range rows[1:] {
		for i, h := range headers {
			if i >= len(row) {
				continue
			}
			cols[h] = append(cols[h], parseCell(row[i]))
		}
	}

	return dataset.FromColumns(headers, cols), nil
}

func parseCell(raw string) dataset.Value {
	trimmed := strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return dataset.Num(f)
	}
	return dataset.Str(trimmed)
}

package registry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harish2111/freshchat-migrations/internal/models"
	"github.com/harish2111/freshchat-migrations/internal/shared"
	"github.com/xuri/excelize/v2"
)

const registrySheet = "contacts"

// Read loads an existing registry file. A missing file is not an error; the
// first run starts with an empty registry.
func Read(path string) ([]Row, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, NormalizeRow(record))
	}
	return rows, nil
}

// Write persists the full registry, canonical header first. The format is
// chosen by file extension.
func Write(path string, rows []Row) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, Headers)
	for _, row := range rows {
		records = append(records, row.record())
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeExcel(path, records)
	case ".csv":
		return writeCSV(path, records)
	default:
		return fmt.Errorf("%w: unsupported registry format %q", shared.ErrInvalidInput, filepath.Ext(path))
	}
}

// ReadRoster loads the source roster. Rows without a source alias are skipped
// since there is nothing to migrate for them.
func ReadRoster(path string) ([]models.SourceUser, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", shared.ErrRosterNotFound, path)
	}

	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	users := make([]models.SourceUser, 0, len(records))
	for _, record := range records {
		user := NormalizeRoster(record)
		if user.Alias == "" {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func readRecords(path string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readExcelRecords(path)
	case ".csv":
		return readCSVRecords(path)
	default:
		return nil, fmt.Errorf("%w: unsupported roster format %q", shared.ErrInvalidInput, filepath.Ext(path))
	}
}

func readExcelRecords(path string) ([]map[string]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook rows: %w", err)
	}

	return keyByHeader(rows), nil
}

func readCSVRecords(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV records: %w", err)
	}

	return keyByHeader(rows), nil
}

// keyByHeader turns a header row plus data rows into header-keyed records.
// Short rows are tolerated; missing cells read as empty.
func keyByHeader(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}

	headers := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(raw) {
				record[strings.TrimSpace(header)] = raw[i]
			}
		}
		records = append(records, record)
	}
	return records
}

func writeExcel(path string, records [][]string) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), registrySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := file.SetSheetRow(registrySheet, cell, &record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeCSV(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

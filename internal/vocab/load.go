package vocab

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

//go:embed data/vocab.json
var defaultFS embed.FS

// Column order for spreadsheet and CSV imports.
var tableColumns = []string{"id", "en", "ja", "example_en", "category", "level"}

// Default returns the built-in vocabulary pool.
func Default() (Pool, error) {
	raw, err := defaultFS.ReadFile("data/vocab.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded pool: %w", err)
	}
	return ParseJSON(raw)
}

// Load reads a vocabulary pool from path. An empty path loads the built-in
// pool. The format is chosen by extension: .json, .xlsx or .csv.
func Load(path string) (Pool, error) {
	if path == "" {
		return Default()
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path, "")
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open vocab file: %w", err)
		}
		defer f.Close()
		return ParseCSV(f)
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read vocab file: %w", err)
		}
		return ParseJSON(raw)
	}
}

// ParseJSON validates raw against the pool schema and decodes it.
func ParseJSON(raw []byte) (Pool, error) {
	if err := validatePool(raw); err != nil {
		return nil, err
	}
	var pool Pool
	if err := json.Unmarshal(raw, &pool); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPool, err)
	}
	return finalize(pool)
}

// LoadXLSX reads a pool from an Excel workbook. The first row is a header.
// An empty sheet name reads the first sheet.
func LoadXLSX(path, sheet string) (Pool, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidPool)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return fromRows(rows)
}

// ParseCSV reads a pool from CSV with a header row.
func ParseCSV(r io.Reader) (Pool, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPool, err)
	}
	return fromRows(rows)
}

// MarshalJSON encodes a pool in the format ParseJSON reads.
func MarshalJSON(pool Pool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pool); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fromRows(rows [][]string) (Pool, error) {
	var pool Pool
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if isBlank(row) {
			continue
		}
		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		level, err := strconv.Atoi(cell(5))
		if err != nil || level < 1 {
			return nil, fmt.Errorf("%w: row %d: bad level %q", ErrInvalidPool, i+1, cell(5))
		}
		cat, err := ParseCategory(strings.ToLower(cell(4)))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidPool, i+1, err)
		}
		item := Item{
			ID:        cell(0),
			EN:        cell(1),
			JA:        cell(2),
			ExampleEN: cell(3),
			Category:  cat,
			Level:     level,
		}
		if item.ID == "" || item.EN == "" || item.JA == "" {
			return nil, fmt.Errorf("%w: row %d: %s, %s and %s are required",
				ErrInvalidPool, i+1, tableColumns[0], tableColumns[1], tableColumns[2])
		}
		pool = append(pool, item)
	}
	return finalize(pool)
}

// finalize normalizes text and rejects duplicate ids.
func finalize(pool Pool) (Pool, error) {
	seen := make(map[string]bool, len(pool))
	for i := range pool {
		it := &pool[i]
		if seen[it.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidPool, it.ID)
		}
		seen[it.ID] = true
		if !it.Category.Valid() {
			return nil, fmt.Errorf("%w: item %q: %v", ErrInvalidPool, it.ID, ErrUnknownCategory)
		}
		it.EN = norm.NFC.String(it.EN)
		it.JA = norm.NFC.String(it.JA)
		it.ExampleEN = norm.NFC.String(it.ExampleEN)
	}
	return pool, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

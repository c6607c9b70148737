package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ledger/internal/services"
	"ledger/internal/shipment"
)

// RowIssue describes a problem with one spreadsheet row. Row numbers are
// 1-based and count the header row, matching what a spreadsheet shows.
type RowIssue struct {
	Row     int
	Column  string
	Value   string
	Message string
}

func (i RowIssue) String() string {
	if i.Column == "" {
		return fmt.Sprintf("row %d: %s", i.Row, i.Message)
	}
	return fmt.Sprintf("row %d, %s %q: %s", i.Row, i.Column, i.Value, i.Message)
}

// Result is the outcome of reading one spreadsheet.
type Result struct {
	Records []shipment.Record
	Issues  []RowIssue
	Skipped int
}

// ReadFile imports the spreadsheet at path.
func ReadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()
	return Read(f, filepath.Base(path))
}

// Read imports a spreadsheet, choosing the format from filename's extension.
func Read(r io.Reader, filename string) (*Result, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	case ".csv":
		return ReadCSV(r)
	default:
		return nil, services.Wrap(services.ErrValidation, "import", "detect format",
			fmt.Sprintf("unsupported spreadsheet type %q (use .xlsx or .csv)", ext), nil)
	}
}

// ReadXLSX imports the first sheet of a workbook.
func ReadXLSX(r io.Reader) (*Result, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "import", "open workbook", "file is not a readable workbook", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, services.Wrap(services.ErrValidation, "import", "open workbook", "workbook has no sheets", nil)
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "import", "read sheet", sheets[0], err)
	}
	return mapRows(rows)
}

// ReadCSV imports comma-separated rows.
func ReadCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "import", "read csv", "malformed csv", err)
	}
	return mapRows(rows)
}

var errNoHeader = errors.New("spreadsheet has no recognised header row")

func mapRows(rows [][]string) (*Result, error) {
	if len(rows) == 0 {
		return nil, services.Wrap(services.ErrValidation, "import", "map columns", "spreadsheet is empty", nil)
	}
	header := rows[0]
	setters := make([]setter, len(header))
	names := make([]string, len(header))
	known := 0
	for i, name := range header {
		if set, ok := columns[normalizeHeader(name)]; ok {
			setters[i] = set
			names[i] = strings.TrimSpace(name)
			known++
		}
	}
	if known == 0 {
		return nil, services.Wrap(services.ErrValidation, "import", "map columns", "", errNoHeader)
	}

	result := &Result{}
	for offset, row := range rows[1:] {
		rowNumber := offset + 2
		rec := shipment.Record{}
		filled := false
		for i, cell := range row {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			filled = true
			if err := setters[i](&rec, value); err != nil {
				result.Issues = append(result.Issues, RowIssue{Row: rowNumber, Column: names[i], Value: value, Message: "not a number, stored as 0"})
			}
		}
		if !filled {
			continue
		}
		if strings.TrimSpace(rec.HouseBillNumber) == "" {
			result.Issues = append(result.Issues, RowIssue{Row: rowNumber, Message: "missing house bill number, row skipped"})
			result.Skipped++
			continue
		}
		rec.Normalize()
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

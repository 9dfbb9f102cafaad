package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmpty is returned for a file with no header row.
var ErrEmpty = errors.New("file has no header row")

// Read decodes a CSV file when name ends in .csv and an xlsx workbook otherwise.
func Read(name string, r io.Reader) (*Table, error) {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return ReadCSV(r)
	}
	return ReadXLSX(r)
}

// ReadXLSX decodes the first sheet of an xlsx workbook.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return fromRows(rows, nil)
}

// ReadCSV decodes a comma separated file with a header row. The reader skips
// empty lines, so each record keeps the file line it started on.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var (
		rows  [][]string
		lines []int
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, rec)
		lines = append(lines, line)
	}
	return fromRows(rows, lines)
}

// fromRows builds a table from the header row and the data rows after it.
// lines gives the file row of each entry in rows; nil means rows are
// consecutive from row 1.
func fromRows(rows [][]string, lines []int) (*Table, error) {
	if len(rows) == 0 || blank(rows[0]) {
		return nil, ErrEmpty
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		// Excel exports sometimes carry a BOM on the first header cell.
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	t := NewTable(header...)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		t.Append(row)
		if lines != nil {
			t.SourceRows = append(t.SourceRows, lines[i+1])
		} else {
			t.SourceRows = append(t.SourceRows, i+2)
		}
	}
	return t, nil
}

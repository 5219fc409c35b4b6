// Package row holds the parsed form of a CSV line shared by every import
// profile.
package row

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

// Row is one data line of an import file. Account, Category and ToAccount
// are names; the importer resolves them to ids.
type Row struct {
	Line        int
	DateTime    time.Time
	Title       string
	Type        transaction.Type
	Amount      decimal.Decimal
	Account     string
	Currency    string
	Category    string
	ToAccount   string
	ToCurrency  string
	ToAmount    *decimal.Decimal
	Description string
}

// Failed is a line that could not be imported.
type Failed struct {
	Line   int
	Reason string
}

// Columns maps trimmed header names to their index.
type Columns map[string]int

func NewColumns(header []string) Columns {
	cols := make(Columns, len(header))

	for i, cell := range header {
		name := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		if name != "" {
			cols[name] = i
		}
	}

	return cols
}

// Has reports whether every name is present.
func (c Columns) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := c[n]; !ok {
			return false
		}
	}

	return true
}

// Value returns the trimmed cell under name, or "" when the column is
// missing or the row is short.
func (c Columns) Value(row []string, name string) string {
	idx, ok := c[name]
	if !ok {
		return ""
	}

	return Cell(row, idx)
}

// Cell safely gets a trimmed cell value from a row.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// ReadAll reads every record with a lenient csv.Reader.
func ReadAll(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// Package generic imports bank statements and spreadsheets whose header
// matches one of the known column layouts.
package generic

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/importer/row"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse expects UTF-8 input. Lines before the header are ignored, as are
// lines without a date (footers, page markers) and zero amounts.
func (p *Parser) Parse(r io.Reader) ([]row.Row, []row.Failed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}

	records, err := row.ReadAll(bytes.NewReader(data), separator(data))
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}

	layout, cols, headerIdx := detectLayout(records)
	if layout == nil {
		return nil, nil, fmt.Errorf("no matching layout found: expected date, title and amount columns")
	}

	rows, failed := parseRows(layout, cols, records[headerIdx+1:], headerIdx+1)

	return rows, failed, nil
}

// separator picks ';' when it is at least as frequent as ','. European
// exports use ';' and decimal commas, so commas alone are not a signal.
func separator(data []byte) rune {
	semi := bytes.Count(data, []byte{';'})
	if semi > 0 && semi >= bytes.Count(data, []byte{','}) {
		return ';'
	}

	return ','
}

// detectLayout scans records for a header that matches a known layout.
// Returns the matched layout, the column map and the header row index.
func detectLayout(records [][]string) (*Layout, row.Columns, int) {
	for i, rec := range records {
		cols := row.NewColumns(rec)

		for j := range layouts {
			if cols.Has(layouts[j].requiredCols()...) {
				return &layouts[j], cols, i
			}
		}
	}

	return nil, nil, 0
}

// headerIdx is the 0-based index of the header in the file, used for line
// numbers.
func parseRows(l *Layout, cols row.Columns, records [][]string, headerIdx int) ([]row.Row, []row.Failed) {
	var (
		rows   []row.Row
		failed []row.Failed
	)

	for i, rec := range records {
		line := headerIdx + i + 2

		dateStr := cols.Value(rec, l.DateCol)
		if dateStr == "" {
			continue
		}

		date, err := row.ParseDate(dateStr)
		if err != nil {
			// Totals and other footers carry text in the date column.
			if !hasAmount(l, cols, rec) {
				continue
			}

			failed = append(failed, row.Failed{Line: line, Reason: err.Error()})

			continue
		}

		title := cols.Value(rec, l.TitleCol)
		if title == "" {
			failed = append(failed, row.Failed{Line: line, Reason: "missing title"})
			continue
		}

		amount, txType, err := parseAmount(l, cols, rec)
		if err != nil {
			failed = append(failed, row.Failed{Line: line, Reason: err.Error()})
			continue
		}

		if amount.IsZero() {
			continue
		}

		rows = append(rows, row.Row{
			Line:        line,
			DateTime:    date,
			Title:       title,
			Type:        txType,
			Amount:      amount,
			Account:     cols.Value(rec, l.AccountCol),
			Category:    cols.Value(rec, l.CategoryCol),
			Description: cols.Value(rec, l.NoteCol),
		})
	}

	return rows, failed
}

func hasAmount(l *Layout, cols row.Columns, rec []string) bool {
	if l.AmountMode == amountSplit {
		return cols.Value(rec, l.DebitCol) != "" || cols.Value(rec, l.CreditCol) != ""
	}

	return cols.Value(rec, l.AmountCol) != ""
}

// parseAmount extracts the absolute amount and transaction type according to
// the layout's amount mode.
func parseAmount(l *Layout, cols row.Columns, rec []string) (decimal.Decimal, transaction.Type, error) {
	if l.AmountMode == amountSplit {
		return parseSplitAmount(cols.Value(rec, l.DebitCol), cols.Value(rec, l.CreditCol))
	}

	s := cols.Value(rec, l.AmountCol)
	if s == "" {
		return decimal.Zero, "", nil
	}

	amount, err := row.ParseAmount(s)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("invalid amount %q", s)
	}

	if amount.IsNegative() {
		return amount.Neg(), transaction.TypeExpense, nil
	}

	return amount, transaction.TypeIncome, nil
}

func parseSplitAmount(debit, credit string) (decimal.Decimal, transaction.Type, error) {
	if debit != "" {
		amount, err := row.ParseAmount(debit)
		if err != nil {
			return decimal.Zero, "", fmt.Errorf("invalid debit %q", debit)
		}

		if !amount.IsZero() {
			return amount.Abs(), transaction.TypeExpense, nil
		}
	}

	if credit != "" {
		amount, err := row.ParseAmount(credit)
		if err != nil {
			return decimal.Zero, "", fmt.Errorf("invalid credit %q", credit)
		}

		return amount.Abs(), transaction.TypeIncome, nil
	}

	return decimal.Zero, "", nil
}

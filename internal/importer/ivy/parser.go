// Package ivy imports the CSV backup written by Ivy Wallet and by the export
// endpoint, which uses the same header.
package ivy

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/bucket/internal/importer/row"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

// Column names of an Ivy export.
const (
	ColDate             = "Date"
	ColTitle            = "Title"
	ColCategory         = "Category"
	ColAccount          = "Account"
	ColAmount           = "Amount"
	ColCurrency         = "Currency"
	ColType             = "Type"
	ColTransferAmount   = "Transfer Amount"
	ColTransferCurrency = "Transfer Currency"
	ColToAccount        = "To Account"
	ColReceiveAmount    = "Receive Amount"
	ColReceiveCurrency  = "Receive Currency"
	ColDescription      = "Description"
	ColDueDate          = "Due Date"
	ColID               = "ID"
)

// Header is the full column order of an Ivy export.
var Header = []string{
	ColDate, ColTitle, ColCategory, ColAccount, ColAmount, ColCurrency, ColType,
	ColTransferAmount, ColTransferCurrency, ColToAccount, ColReceiveAmount, ColReceiveCurrency,
	ColDescription, ColDueDate, ColID,
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse expects UTF-8 input; Ivy writes UTF-16, so callers decode first.
func (p *Parser) Parse(r io.Reader) ([]row.Row, []row.Failed, error) {
	records, err := row.ReadAll(r, ',')
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, nil, nil
	}

	cols := row.NewColumns(records[0])
	if !cols.Has(ColDate, ColAccount, ColType) || !(cols.Has(ColAmount) || cols.Has(ColTransferAmount)) {
		return nil, nil, fmt.Errorf("not an Ivy export: header %q", strings.Join(records[0], ","))
	}

	var (
		rows   []row.Row
		failed []row.Failed
	)

	for i, rec := range records[1:] {
		line := i + 2

		if isBlank(rec) {
			continue
		}

		parsed, err := parseRecord(cols, rec)
		if err != nil {
			failed = append(failed, row.Failed{Line: line, Reason: err.Error()})
			continue
		}

		parsed.Line = line
		rows = append(rows, parsed)
	}

	return rows, failed, nil
}

func parseRecord(cols row.Columns, rec []string) (row.Row, error) {
	dateStr := cols.Value(rec, ColDate)
	if dateStr == "" {
		if cols.Value(rec, ColDueDate) != "" {
			return row.Row{}, fmt.Errorf("planned payment without a date")
		}

		return row.Row{}, fmt.Errorf("missing date")
	}

	date, err := row.ParseDate(dateStr)
	if err != nil {
		return row.Row{}, err
	}

	txType := transaction.Type(strings.ToUpper(cols.Value(rec, ColType)))
	if !txType.Valid() {
		return row.Row{}, fmt.Errorf("unknown type %q", cols.Value(rec, ColType))
	}

	account := cols.Value(rec, ColAccount)
	if account == "" {
		return row.Row{}, fmt.Errorf("missing account")
	}

	amountStr := firstNonEmpty(cols.Value(rec, ColAmount), cols.Value(rec, ColTransferAmount))

	amount, err := row.ParseAmount(amountStr)
	if err != nil {
		return row.Row{}, fmt.Errorf("invalid amount %q", amountStr)
	}

	out := row.Row{
		DateTime:    date,
		Title:       cols.Value(rec, ColTitle),
		Type:        txType,
		Amount:      amount.Abs(),
		Account:     account,
		Currency:    firstNonEmpty(cols.Value(rec, ColCurrency), cols.Value(rec, ColTransferCurrency)),
		Category:    cols.Value(rec, ColCategory),
		Description: cols.Value(rec, ColDescription),
	}

	if txType != transaction.TypeTransfer {
		return out, nil
	}

	out.ToAccount = cols.Value(rec, ColToAccount)
	if out.ToAccount == "" {
		return row.Row{}, fmt.Errorf("transfer without destination account")
	}

	out.ToCurrency = cols.Value(rec, ColReceiveCurrency)

	if s := cols.Value(rec, ColReceiveAmount); s != "" {
		received, err := row.ParseAmount(s)
		if err != nil {
			return row.Row{}, fmt.Errorf("invalid receive amount %q", s)
		}

		out.ToAmount = new(received.Abs())
	}

	return out, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

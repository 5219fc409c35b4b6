package generic

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Amount" with value "-10.00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Layout describes the column names of one CSV export format. Supporting a
// new bank is adding a Layout to the layouts slice.
type Layout struct {
	Name        string
	DateCol     string
	TitleCol    string
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSingle
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit
	AccountCol  string // optional
	CategoryCol string // optional
	NoteCol     string // optional
}

// requiredCols returns the column names that must be present for this layout to match.
func (l Layout) requiredCols() []string {
	cols := []string{l.DateCol, l.TitleCol}

	switch l.AmountMode {
	case amountSingle:
		cols = append(cols, l.AmountCol)
	case amountSplit:
		cols = append(cols, l.DebitCol, l.CreditCol)
	}

	return cols
}

// layouts is tried in order during auto-detection; more specific layouts
// come first to avoid false matches.
var layouts = []Layout{
	{
		Name:        "bucket",
		DateCol:     "Date",
		TitleCol:    "Title",
		AmountMode:  amountSingle,
		AmountCol:   "Amount",
		AccountCol:  "Account",
		CategoryCol: "Category",
		NoteCol:     "Description",
	},
	{
		Name:       "debit-credit",
		DateCol:    "Date",
		TitleCol:   "Description",
		AmountMode: amountSplit,
		DebitCol:   "Debit",
		CreditCol:  "Credit",
	},
	{
		Name:       "statement",
		DateCol:    "Date",
		TitleCol:   "Description",
		AmountMode: amountSingle,
		AmountCol:  "Amount",
	},
	{
		Name:       "cgd-cartão",
		DateCol:    "Data",
		TitleCol:   "Descrição",
		AmountMode: amountSplit,
		DebitCol:   "Débito",
		CreditCol:  "Crédito",
	},
	{
		Name:       "cgd-extrato",
		DateCol:    "Data mov.",
		TitleCol:   "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Movimento",
	},
	{
		Name:       "cgd-conta",
		DateCol:    "Data mov.",
		TitleCol:   "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Montante",
	},
}

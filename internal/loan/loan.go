package loan

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("loan not found")
	ErrRecordNotFound = errors.New("loan record not found")
	ErrLimitReached   = errors.New("free loan limit reached")
	ErrInvalid        = errors.New("invalid loan")
)

// FreeLimit is the number of loans available without premium.
const FreeLimit = 2

type Type string

const (
	TypeBorrow Type = "BORROW"
	TypeLend   Type = "LEND"
)

func (t Type) Valid() bool {
	return t == TypeBorrow || t == TypeLend
}

type Loan struct {
	ID        uuid.UUID
	Name      string
	Amount    decimal.Decimal
	Type      Type
	AccountID *uuid.UUID
	Color     int32
	Icon      string
	CreatedAt time.Time
}

// Record is a single repayment or collection against a loan. ConvertedAmount
// holds Amount in the loan account's currency and is nil when both accounts
// share a currency.
type Record struct {
	ID              uuid.UUID
	LoanID          uuid.UUID
	Amount          decimal.Decimal
	ConvertedAmount *decimal.Decimal
	AccountID       *uuid.UUID
	Note            string
	DateTime        time.Time
}

// LoanAmount is the record amount expressed in the loan's currency.
func (r *Record) LoanAmount() decimal.Decimal {
	if r.ConvertedAmount != nil {
		return *r.ConvertedAmount
	}

	return r.Amount
}

type Details struct {
	Loan       *Loan
	Records    []*Record
	AmountPaid decimal.Decimal
	Remaining  decimal.Decimal
}

func newDetails(l *Loan, records []*Record) *Details {
	paid := decimal.Zero
	for _, r := range records {
		paid = paid.Add(r.LoanAmount())
	}

	return &Details{
		Loan:       l,
		Records:    records,
		AmountPaid: paid,
		Remaining:  l.Amount.Sub(paid),
	}
}

// Conversion describes a record edit for converted-amount recomputation.
// Old* fields describe the record before the edit; they are zero for a new
// record.
type Conversion struct {
	OldAccountID       *uuid.UUID
	OldConvertedAmount *decimal.Decimal
	OldAmount          decimal.Decimal
	NewAccountID       *uuid.UUID
	NewAmount          decimal.Decimal
	LoanAccountID      *uuid.UUID
	Force              bool
}

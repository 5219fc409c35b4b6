package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("transaction not found")
	ErrInvalid  = errors.New("invalid transaction")
)

// Type represents the direction of a transaction.
type Type string

const (
	TypeIncome   Type = "INCOME"
	TypeExpense  Type = "EXPENSE"
	TypeTransfer Type = "TRANSFER"
)

func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}

	return false
}

// Transaction is a single ledger movement on an account. Amount is always
// positive; Type carries the sign.
type Transaction struct {
	ID           uuid.UUID
	Type         Type
	Amount       decimal.Decimal
	AccountID    uuid.UUID
	ToAccountID  *uuid.UUID       // transfers only
	ToAmount     *decimal.Decimal // transfers only, in the destination currency
	CategoryID   *uuid.UUID
	Title        string
	Description  string
	DateTime     time.Time
	LoanID       *uuid.UUID
	LoanRecordID *uuid.UUID
	IsSynced     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

func (t *Transaction) IsDeleted() bool {
	return t.DeletedAt != nil
}

// IsLoanPrincipal reports whether t mirrors a loan's principal movement.
func (t *Transaction) IsLoanPrincipal() bool {
	return t.LoanID != nil && t.LoanRecordID == nil
}

// IsLoanRecord reports whether t mirrors a repayment or collection record.
func (t *Transaction) IsLoanRecord() bool {
	return t.LoanID != nil && t.LoanRecordID != nil
}

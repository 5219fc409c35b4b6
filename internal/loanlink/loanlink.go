// Package loanlink keeps the ledger transactions that mirror loans and loan
// records consistent with them across edits, deletions and currency changes.
package loanlink

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/category"
	"github.com/MrJamesThe3rd/bucket/internal/loan"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

type Transactions interface {
	SaveTransaction(ctx context.Context, tx *transaction.Transaction) error
	FindLoanTransaction(ctx context.Context, loanID uuid.UUID) (*transaction.Transaction, error)
	FindLoanRecordTransaction(ctx context.Context, recordID uuid.UUID) (*transaction.Transaction, error)
	FindAllByLoanID(ctx context.Context, loanID uuid.UUID) ([]*transaction.Transaction, error)
	FlagDeleted(ctx context.Context, id uuid.UUID) error
}

type Loans interface {
	GetLoan(ctx context.Context, id uuid.UUID) (*loan.Loan, error)
	ListLoans(ctx context.Context) ([]*loan.Loan, error)
	SaveLoan(ctx context.Context, l *loan.Loan) error
}

type Records interface {
	GetRecord(ctx context.Context, id uuid.UUID) (*loan.Record, error)
	ListRecords(ctx context.Context, loanID uuid.UUID) ([]*loan.Record, error)
	SaveRecord(ctx context.Context, r *loan.Record) error
	SaveRecords(ctx context.Context, rs []*loan.Record) error
}

type Categories interface {
	ListCategories(ctx context.Context) ([]*category.Category, error)
	CreateCategory(ctx context.Context, c *category.Category) error
}

type Accounts interface {
	ListAccounts(ctx context.Context) ([]*account.Account, error)
}

type Converter interface {
	Convert(ctx context.Context, base string, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

type Deps struct {
	Transactions Transactions
	Loans        Loans
	Records      Records
	Categories   Categories
	Accounts     Accounts
	Converter    Converter
	Deletes      transaction.DeleteQueue
}

type Service struct {
	Deps

	now func() time.Time
}

func NewService(deps Deps) *Service {
	return &Service{Deps: deps, now: time.Now}
}

// TransactionType maps a loan type to the direction of its mirrored
// transaction. Records flow opposite to the principal.
func TransactionType(t loan.Type, isRecord bool) transaction.Type {
	borrow := t == loan.TypeBorrow
	if isRecord {
		borrow = !borrow
	}

	if borrow {
		return transaction.TypeIncome
	}

	return transaction.TypeExpense
}

// LoanType is the inverse of TransactionType for principal transactions.
func LoanType(t transaction.Type) loan.Type {
	if t == transaction.TypeIncome {
		return loan.TypeBorrow
	}

	return loan.TypeLend
}

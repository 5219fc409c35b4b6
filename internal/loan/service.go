package loan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	SaveLoan(ctx context.Context, l *Loan) error
	GetLoan(ctx context.Context, id uuid.UUID) (*Loan, error)
	ListLoans(ctx context.Context) ([]*Loan, error)
	DeleteLoan(ctx context.Context, id uuid.UUID) error
}

type RecordRepository interface {
	SaveRecord(ctx context.Context, r *Record) error
	SaveRecords(ctx context.Context, rs []*Record) error
	GetRecord(ctx context.Context, id uuid.UUID) (*Record, error)
	ListRecords(ctx context.Context, loanID uuid.UUID) ([]*Record, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
}

// Linker keeps the ledger transactions mirroring loans and records in step
// with them.
type Linker interface {
	CreateLoanTransaction(ctx context.Context, sess settings.Snapshot, l *Loan, create bool) error
	EditLoanTransaction(ctx context.Context, sess settings.Snapshot, l *Loan, create bool) error
	DeleteLoanTransactions(ctx context.Context, loanID uuid.UUID) error
	RecalculateLoanRecords(ctx context.Context, sess settings.Snapshot, oldAccountID, newAccountID *uuid.UUID, loanID uuid.UUID) error

	CreateRecordTransaction(ctx context.Context, sess settings.Snapshot, l *Loan, r *Record, create bool) error
	EditRecordTransaction(ctx context.Context, sess settings.Snapshot, l *Loan, r *Record, create bool) error
	DeleteRecordTransaction(ctx context.Context, recordID uuid.UUID) error
	ComputeConvertedAmount(ctx context.Context, sess settings.Snapshot, c Conversion) (*decimal.Decimal, error)
}

type Service struct {
	loans   Repository
	records RecordRepository
	linker  Linker
	now     func() time.Time
}

func NewService(loans Repository, records RecordRepository, linker Linker) *Service {
	return &Service{loans: loans, records: records, linker: linker, now: time.Now}
}

type CreateParams struct {
	Name      string
	Amount    decimal.Decimal
	Type      Type
	AccountID *uuid.UUID
	Color     int32
	Icon      string

	// CreateTransaction mirrors the principal into the ledger.
	CreateTransaction bool
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, p.Type)
	}

	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}

	return nil
}

func (s *Service) Create(ctx context.Context, sess settings.Snapshot, params CreateParams) (*Loan, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	existing, err := s.loans.ListLoans(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}

	if !sess.Premium && len(existing) >= FreeLimit {
		return nil, ErrLimitReached
	}

	l := &Loan{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(params.Name),
		Amount:    params.Amount,
		Type:      params.Type,
		AccountID: params.AccountID,
		Color:     params.Color,
		Icon:      params.Icon,
	}
	if err := s.loans.SaveLoan(ctx, l); err != nil {
		return nil, err
	}

	if err := s.linker.CreateLoanTransaction(ctx, sess, l, params.CreateTransaction); err != nil {
		return nil, fmt.Errorf("linking loan transaction: %w", err)
	}

	return l, nil
}

func (s *Service) List(ctx context.Context) ([]*Loan, error) {
	return s.loans.ListLoans(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Details, error) {
	l, err := s.loans.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ListRecords(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	return newDetails(l, records), nil
}

// Update saves l, recomputes record conversions if the loan moved to an
// account with a different currency, and upserts (or removes, when
// createTransaction is false) the mirrored principal transaction.
func (s *Service) Update(ctx context.Context, sess settings.Snapshot, l *Loan, createTransaction bool) error {
	old, err := s.loans.GetLoan(ctx, l.ID)
	if err != nil {
		return err
	}

	if err := (CreateParams{Name: l.Name, Amount: l.Amount, Type: l.Type}).validate(); err != nil {
		return err
	}

	l.CreatedAt = old.CreatedAt
	if err := s.loans.SaveLoan(ctx, l); err != nil {
		return err
	}

	if err := s.linker.RecalculateLoanRecords(ctx, sess, old.AccountID, l.AccountID, l.ID); err != nil {
		return fmt.Errorf("recalculating records: %w", err)
	}

	if err := s.linker.EditLoanTransaction(ctx, sess, l, createTransaction); err != nil {
		return fmt.Errorf("linking loan transaction: %w", err)
	}

	return nil
}

// Delete removes the loan with its records and soft-deletes every mirrored
// transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loans.GetLoan(ctx, id); err != nil {
		return err
	}

	if err := s.linker.DeleteLoanTransactions(ctx, id); err != nil {
		return fmt.Errorf("deleting loan transactions: %w", err)
	}

	if err := s.loans.DeleteLoan(ctx, id); err != nil {
		return err
	}

	slog.Info("loan deleted", "loan_id", id)

	return nil
}

type RecordParams struct {
	Amount    decimal.Decimal
	AccountID *uuid.UUID
	Note      string
	DateTime  time.Time

	// CreateTransaction mirrors the record into the ledger.
	CreateTransaction bool
}

func (s *Service) CreateRecord(ctx context.Context, sess settings.Snapshot, loanID uuid.UUID, params RecordParams) (*Record, error) {
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: record amount must be positive", ErrInvalid)
	}

	l, err := s.loans.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	dt := params.DateTime
	if dt.IsZero() {
		dt = s.now().UTC()
	}

	r := &Record{
		ID:        uuid.New(),
		LoanID:    loanID,
		Amount:    params.Amount,
		AccountID: params.AccountID,
		Note:      strings.TrimSpace(params.Note),
		DateTime:  dt,
	}

	r.ConvertedAmount, err = s.linker.ComputeConvertedAmount(ctx, sess, Conversion{
		OldAccountID:  params.AccountID,
		OldAmount:     params.Amount,
		NewAccountID:  params.AccountID,
		NewAmount:     params.Amount,
		LoanAccountID: l.AccountID,
	})
	if err != nil {
		return nil, fmt.Errorf("computing converted amount: %w", err)
	}

	if err := s.records.SaveRecord(ctx, r); err != nil {
		return nil, err
	}

	if err := s.linker.CreateRecordTransaction(ctx, sess, l, r, params.CreateTransaction); err != nil {
		return nil, fmt.Errorf("linking record transaction: %w", err)
	}

	return r, nil
}

// UpdateRecord saves an edited record. The converted amount is rescaled when
// only the nominal amount changed and recomputed live otherwise.
func (s *Service) UpdateRecord(ctx context.Context, sess settings.Snapshot, r *Record, createTransaction bool) error {
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: record amount must be positive", ErrInvalid)
	}

	old, err := s.records.GetRecord(ctx, r.ID)
	if err != nil {
		return err
	}

	l, err := s.loans.GetLoan(ctx, old.LoanID)
	if err != nil {
		return err
	}

	r.LoanID = old.LoanID

	r.ConvertedAmount, err = s.linker.ComputeConvertedAmount(ctx, sess, Conversion{
		OldAccountID:       old.AccountID,
		OldConvertedAmount: old.ConvertedAmount,
		OldAmount:          old.Amount,
		NewAccountID:       r.AccountID,
		NewAmount:          r.Amount,
		LoanAccountID:      l.AccountID,
	})
	if err != nil {
		return fmt.Errorf("computing converted amount: %w", err)
	}

	if err := s.records.SaveRecord(ctx, r); err != nil {
		return err
	}

	if err := s.linker.EditRecordTransaction(ctx, sess, l, r, createTransaction); err != nil {
		return fmt.Errorf("linking record transaction: %w", err)
	}

	return nil
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if _, err := s.records.GetRecord(ctx, id); err != nil {
		return err
	}

	if err := s.linker.DeleteRecordTransaction(ctx, id); err != nil {
		return fmt.Errorf("deleting record transaction: %w", err)
	}

	return s.records.DeleteRecord(ctx, id)
}

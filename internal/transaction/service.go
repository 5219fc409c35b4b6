package transaction

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

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	SaveTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	FlagDeleted(ctx context.Context, id uuid.UUID) error

	FindAllByLoanID(ctx context.Context, loanID uuid.UUID) ([]*Transaction, error)
	FindLoanTransaction(ctx context.Context, loanID uuid.UUID) (*Transaction, error)
	FindLoanRecordTransaction(ctx context.Context, recordID uuid.UUID) (*Transaction, error)
	CountBetween(ctx context.Context, start, end time.Time) (int, error)

	BeginImport(ctx context.Context, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

// DeleteQueue propagates soft deletions to the remote copy.
type DeleteQueue interface {
	EnqueueDelete(ctx context.Context, id uuid.UUID) error
}

// LoanSync pushes direct edits of a loan-mirrored transaction back into the
// loan or loan record it mirrors.
type LoanSync interface {
	UpdateAssociatedLoanData(ctx context.Context, sess settings.Snapshot, tx *Transaction, accountsChanged bool) error
}

type Service struct {
	repo    Repository
	deletes DeleteQueue
	loans   LoanSync
}

func NewService(repo Repository, deletes DeleteQueue) *Service {
	return &Service{repo: repo, deletes: deletes}
}

func (s *Service) SetLoanSync(ls LoanSync) {
	s.loans = ls
}

type CreateParams struct {
	Type        Type
	Amount      decimal.Decimal
	AccountID   uuid.UUID
	ToAccountID *uuid.UUID
	ToAmount    *decimal.Decimal
	CategoryID  *uuid.UUID
	Title       string
	Description string
	DateTime    time.Time
}

// Validate reports why p cannot become a transaction, wrapping ErrInvalid.
func (p CreateParams) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, p.Type)
	}

	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}

	if p.AccountID == uuid.Nil {
		return fmt.Errorf("%w: account is required", ErrInvalid)
	}

	if p.Type == TypeTransfer && p.ToAccountID == nil {
		return fmt.Errorf("%w: transfer needs a destination account", ErrInvalid)
	}

	return nil
}

type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	AccountID *uuid.UUID
	Type      *Type
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tx := fromParams(params)
	if err := s.repo.SaveTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Update saves an edited transaction. Loan-mirrored transactions push the
// edit back into their loan or loan record.
func (s *Service) Update(ctx context.Context, sess settings.Snapshot, tx *Transaction) error {
	old, err := s.repo.GetTransaction(ctx, tx.ID)
	if err != nil {
		return err
	}

	tx.IsSynced = false
	if err := s.repo.SaveTransaction(ctx, tx); err != nil {
		return err
	}

	if s.loans == nil || tx.LoanID == nil {
		return nil
	}

	accountsChanged := old.AccountID != tx.AccountID
	if err := s.loans.UpdateAssociatedLoanData(ctx, sess, tx, accountsChanged); err != nil {
		return fmt.Errorf("updating associated loan: %w", err)
	}

	return nil
}

// Delete soft-deletes the transaction and queues the remote delete. A queue
// failure is logged; the local delete stands.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.FlagDeleted(ctx, id); err != nil {
		return err
	}

	if s.deletes == nil {
		return nil
	}

	if err := s.deletes.EnqueueDelete(ctx, id); err != nil {
		slog.Warn("failed to enqueue remote delete", "transaction_id", id, "error", err)
	}

	return nil
}

// CountBetween counts active transactions dated within [start, end].
func (s *Service) CountBetween(ctx context.Context, start, end time.Time) (int, error) {
	return s.repo.CountBetween(ctx, start, end)
}

type ImportResult struct {
	Imported  []*Transaction
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Transaction
}

type dupKey struct {
	Date    string
	Amount  string
	Type    Type
	Account uuid.UUID
	Title   string
}

func keyOf(date time.Time, amount decimal.Decimal, typ Type, account uuid.UUID, title string) dupKey {
	return dupKey{
		Date:    date.UTC().Format(time.DateOnly),
		Amount:  amount.String(),
		Type:    typ,
		Account: account,
		Title:   strings.ToLower(strings.TrimSpace(title)),
	}
}

// ImportBatch stores params atomically unless some of them look like
// transactions that already exist; in that case nothing is written and the
// split between new rows and conflicts is returned for review.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))
	for _, d := range duplicates {
		lookup[keyOf(d.DateTime, d.Amount, d.Type, d.AccountID, d.Title)] = d
	}

	var (
		newParams []CreateParams
		conflicts []Conflict
	)

	for _, p := range params {
		existing, found := lookup[keyOf(p.DateTime, p.Amount, p.Type, p.AccountID, p.Title)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	txs := paramsToTransactions(newParams)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// CreateBatch stores params atomically without duplicate detection.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	txs := paramsToTransactions(params)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].DateTime
	maxDate := params[0].DateTime

	for _, p := range params[1:] {
		if p.DateTime.Before(minDate) {
			minDate = p.DateTime
		}

		if p.DateTime.After(maxDate) {
			maxDate = p.DateTime
		}
	}

	return minDate, maxDate
}

func fromParams(p CreateParams) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Type:        p.Type,
		Amount:      p.Amount,
		AccountID:   p.AccountID,
		ToAccountID: p.ToAccountID,
		ToAmount:    p.ToAmount,
		CategoryID:  p.CategoryID,
		Title:       p.Title,
		Description: p.Description,
		DateTime:    p.DateTime,
	}
}

func paramsToTransactions(params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = fromParams(p)
	}

	return txs
}

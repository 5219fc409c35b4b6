package loanlink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/category"
	"github.com/MrJamesThe3rd/bucket/internal/loan"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

// Pairing describes the desired state of one loan-to-transaction link.
type Pairing struct {
	// Create false removes the mirrored transaction instead.
	Create     bool
	LoanID     uuid.UUID
	RecordID   *uuid.UUID
	IsRecord   bool
	Amount     decimal.Decimal
	LoanType   loan.Type
	AccountID  *uuid.UUID
	Title      string
	CategoryID *uuid.UUID
	DateTime   *time.Time

	// Existing is the transaction currently mirroring the pair, if any.
	Existing *transaction.Transaction
}

// UpsertTransaction brings the mirrored transaction in line with p. An
// existing transaction keeps its id, so repeated edits update one row.
func (s *Service) UpsertTransaction(ctx context.Context, sess settings.Snapshot, p Pairing) error {
	if p.IsRecord && p.RecordID == nil {
		return nil
	}

	if !p.Create {
		return s.deleteTransaction(ctx, p.Existing)
	}

	if p.Existing != nil && p.Existing.IsDeleted() {
		slog.Warn("skipping update of deleted loan transaction",
			"transaction_id", p.Existing.ID, "loan_id", p.LoanID)

		return nil
	}

	if p.AccountID == nil {
		return nil
	}

	categoryID := p.CategoryID
	if categoryID == nil && p.Existing != nil {
		categoryID = p.Existing.CategoryID
	}

	categoryID, err := s.loanCategoryID(ctx, sess, categoryID)
	if err != nil {
		return err
	}

	tx := &transaction.Transaction{ID: uuid.New()}
	if p.Existing != nil {
		copied := *p.Existing
		tx = &copied
	}

	title := p.Title
	if title == "" && p.Existing != nil {
		title = p.Existing.Title
	}

	switch {
	case p.DateTime != nil:
		tx.DateTime = *p.DateTime
	case p.Existing == nil:
		tx.DateTime = s.now().UTC()
	}

	tx.LoanID = &p.LoanID
	tx.LoanRecordID = nil
	if p.IsRecord {
		tx.LoanRecordID = p.RecordID
	}

	tx.Type = TransactionType(p.LoanType, p.IsRecord)
	tx.Amount = p.Amount
	tx.AccountID = *p.AccountID
	tx.ToAccountID = nil
	tx.ToAmount = nil
	tx.Title = title
	tx.CategoryID = categoryID
	tx.IsSynced = false

	if err := s.Transactions.SaveTransaction(ctx, tx); err != nil {
		return fmt.Errorf("saving loan transaction: %w", err)
	}

	return nil
}

func (s *Service) CreateLoanTransaction(ctx context.Context, sess settings.Snapshot, l *loan.Loan, create bool) error {
	return s.UpsertTransaction(ctx, sess, Pairing{
		Create:    create,
		LoanID:    l.ID,
		Amount:    l.Amount,
		LoanType:  l.Type,
		AccountID: l.AccountID,
		Title:     l.Name,
	})
}

func (s *Service) EditLoanTransaction(ctx context.Context, sess settings.Snapshot, l *loan.Loan, create bool) error {
	existing, err := s.Transactions.FindLoanTransaction(ctx, l.ID)
	if err != nil && !errors.Is(err, transaction.ErrNotFound) {
		return fmt.Errorf("finding loan transaction: %w", err)
	}

	return s.UpsertTransaction(ctx, sess, Pairing{
		Create:    create,
		LoanID:    l.ID,
		Amount:    l.Amount,
		LoanType:  l.Type,
		AccountID: l.AccountID,
		Title:     l.Name,
		Existing:  existing,
	})
}

// DeleteLoanTransactions soft-deletes every transaction referencing the loan,
// principal and records alike.
func (s *Service) DeleteLoanTransactions(ctx context.Context, loanID uuid.UUID) error {
	txs, err := s.Transactions.FindAllByLoanID(ctx, loanID)
	if err != nil {
		return fmt.Errorf("finding loan transactions: %w", err)
	}

	for _, tx := range txs {
		if err := s.deleteTransaction(ctx, tx); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) CreateRecordTransaction(ctx context.Context, sess settings.Snapshot, l *loan.Loan, r *loan.Record, create bool) error {
	return s.UpsertTransaction(ctx, sess, recordPairing(l, r, create, nil))
}

func (s *Service) EditRecordTransaction(ctx context.Context, sess settings.Snapshot, l *loan.Loan, r *loan.Record, create bool) error {
	existing, err := s.Transactions.FindLoanRecordTransaction(ctx, r.ID)
	if err != nil && !errors.Is(err, transaction.ErrNotFound) {
		return fmt.Errorf("finding record transaction: %w", err)
	}

	return s.UpsertTransaction(ctx, sess, recordPairing(l, r, create, existing))
}

func (s *Service) DeleteRecordTransaction(ctx context.Context, recordID uuid.UUID) error {
	tx, err := s.Transactions.FindLoanRecordTransaction(ctx, recordID)
	if errors.Is(err, transaction.ErrNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("finding record transaction: %w", err)
	}

	return s.deleteTransaction(ctx, tx)
}

func recordPairing(l *loan.Loan, r *loan.Record, create bool, existing *transaction.Transaction) Pairing {
	title := r.Note
	if title == "" {
		title = l.Name
	}

	dt := r.DateTime

	return Pairing{
		Create:    create,
		LoanID:    l.ID,
		RecordID:  &r.ID,
		IsRecord:  true,
		Amount:    r.Amount,
		LoanType:  l.Type,
		AccountID: r.AccountID,
		Title:     title,
		DateTime:  &dt,
		Existing:  existing,
	}
}

func (s *Service) deleteTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if tx == nil || tx.IsDeleted() {
		return nil
	}

	if err := s.Transactions.FlagDeleted(ctx, tx.ID); err != nil {
		return fmt.Errorf("deleting transaction %s: %w", tx.ID, err)
	}

	if s.Deletes == nil {
		return nil
	}

	if err := s.Deletes.EnqueueDelete(ctx, tx.ID); err != nil {
		slog.Warn("failed to enqueue remote delete", "transaction_id", tx.ID, "error", err)
	}

	return nil
}

// loanCategoryID returns existing when set. Otherwise it reuses any category
// whose name mentions "loan", creating the default one while the category
// limit allows.
func (s *Service) loanCategoryID(ctx context.Context, sess settings.Snapshot, existing *uuid.UUID) (*uuid.UUID, error) {
	if existing != nil {
		return existing, nil
	}

	categories, err := s.Categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), "loan") {
			return &c.ID, nil
		}
	}

	if !sess.Premium && len(categories) >= category.FreeLimit {
		return nil, nil
	}

	c := category.LoanDefault
	c.ID = uuid.New()
	c.OrderNum = float64(len(categories))

	if err := s.Categories.CreateCategory(ctx, &c); err != nil {
		return nil, fmt.Errorf("creating loan category: %w", err)
	}

	return &c.ID, nil
}

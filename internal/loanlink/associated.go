package loanlink

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/bucket/internal/loan"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

// UpdateAssociatedLoanData pushes a direct edit of a mirrored transaction
// back into the loan or loan record it mirrors.
func (s *Service) UpdateAssociatedLoanData(ctx context.Context, sess settings.Snapshot, tx *transaction.Transaction, accountsChanged bool) error {
	switch {
	case tx == nil:
		return nil
	case tx.IsLoanPrincipal():
		return s.updateAssociatedLoan(ctx, sess, tx, accountsChanged)
	case tx.IsLoanRecord():
		return s.updateAssociatedRecord(ctx, sess, tx)
	}

	return nil
}

func (s *Service) updateAssociatedLoan(ctx context.Context, sess settings.Snapshot, tx *transaction.Transaction, accountsChanged bool) error {
	l, err := s.Loans.GetLoan(ctx, *tx.LoanID)
	if errors.Is(err, loan.ErrNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("getting loan: %w", err)
	}

	accountID := tx.AccountID

	if accountsChanged {
		if err := s.RecalculateLoanRecords(ctx, sess, l.AccountID, &accountID, l.ID); err != nil {
			return err
		}
	}

	l.Amount = tx.Amount
	if tx.Title != "" {
		l.Name = tx.Title
	}

	l.Type = LoanType(tx.Type)
	l.AccountID = &accountID

	if err := s.Loans.SaveLoan(ctx, l); err != nil {
		return fmt.Errorf("saving loan: %w", err)
	}

	return nil
}

func (s *Service) updateAssociatedRecord(ctx context.Context, sess settings.Snapshot, tx *transaction.Transaction) error {
	r, err := s.Records.GetRecord(ctx, *tx.LoanRecordID)
	if errors.Is(err, loan.ErrRecordNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("getting loan record: %w", err)
	}

	l, err := s.Loans.GetLoan(ctx, r.LoanID)
	if err != nil {
		return fmt.Errorf("getting loan: %w", err)
	}

	accounts, err := s.Accounts.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}

	accountID := tx.AccountID

	r.ConvertedAmount = s.convertedAmount(ctx, sess, accounts, loan.Conversion{
		OldAccountID:       r.AccountID,
		OldConvertedAmount: r.ConvertedAmount,
		OldAmount:          r.Amount,
		NewAccountID:       &accountID,
		NewAmount:          tx.Amount,
		LoanAccountID:      l.AccountID,
	})
	r.Amount = tx.Amount
	r.Note = tx.Title
	r.DateTime = tx.DateTime
	r.AccountID = &accountID

	if err := s.Records.SaveRecord(ctx, r); err != nil {
		return fmt.Errorf("saving loan record: %w", err)
	}

	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/database"
	"github.com/MrJamesThe3rd/bucket/internal/loan"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectLoanColumns = `id, name, amount, type, account_id, color, icon, created_at`

func scanLoan(s database.Scanner) (*loan.Loan, error) {
	var (
		l       loan.Loan
		typeStr string
	)

	if err := s.Scan(&l.ID, &l.Name, &l.Amount, &typeStr, &l.AccountID, &l.Color, &l.Icon, &l.CreatedAt); err != nil {
		return nil, err
	}

	l.Type = loan.Type(typeStr)

	return &l, nil
}

func (s *Store) SaveLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		INSERT INTO loans (id, name, amount, type, account_id, color, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			amount = EXCLUDED.amount,
			type = EXCLUDED.type,
			account_id = EXCLUDED.account_id,
			color = EXCLUDED.color,
			icon = EXCLUDED.icon
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		l.ID, l.Name, l.Amount, l.Type, l.AccountID, l.Color, l.Icon,
	).Scan(&l.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving loan: %w", err)
	}

	return nil
}

func (s *Store) GetLoan(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	query := `SELECT ` + selectLoanColumns + ` FROM loans WHERE id = $1`

	l, err := scanLoan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, loan.ErrNotFound
		}

		return nil, fmt.Errorf("getting loan: %w", err)
	}

	return l, nil
}

func (s *Store) ListLoans(ctx context.Context) ([]*loan.Loan, error) {
	query := `SELECT ` + selectLoanColumns + ` FROM loans ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var loans []*loan.Loan

	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}

		loans = append(loans, l)
	}

	return loans, rows.Err()
}

// DeleteLoan removes the loan; its records go with it through the foreign key.
func (s *Store) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting loan: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return loan.ErrNotFound
	}

	return nil
}

const selectRecordColumns = `id, loan_id, amount, converted_amount, account_id, note, date_time`

func scanRecord(s database.Scanner) (*loan.Record, error) {
	var r loan.Record

	if err := s.Scan(&r.ID, &r.LoanID, &r.Amount, &r.ConvertedAmount, &r.AccountID, &r.Note, &r.DateTime); err != nil {
		return nil, err
	}

	return &r, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveRecord(ctx context.Context, e execer, r *loan.Record) error {
	query := `
		INSERT INTO loan_records (id, loan_id, amount, converted_amount, account_id, note, date_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			amount = EXCLUDED.amount,
			converted_amount = EXCLUDED.converted_amount,
			account_id = EXCLUDED.account_id,
			note = EXCLUDED.note,
			date_time = EXCLUDED.date_time
	`

	_, err := e.ExecContext(ctx, query,
		r.ID, r.LoanID, r.Amount, r.ConvertedAmount, r.AccountID, r.Note, r.DateTime,
	)

	return err
}

func (s *Store) SaveRecord(ctx context.Context, r *loan.Record) error {
	if err := saveRecord(ctx, s.db, r); err != nil {
		return fmt.Errorf("saving loan record: %w", err)
	}

	return nil
}

// SaveRecords persists a recalculated batch in one database transaction.
func (s *Store) SaveRecords(ctx context.Context, rs []*loan.Record) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, r := range rs {
		if err := saveRecord(ctx, dbTx, r); err != nil {
			return fmt.Errorf("saving loan record %s: %w", r.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing loan records: %w", err)
	}

	return nil
}

func (s *Store) GetRecord(ctx context.Context, id uuid.UUID) (*loan.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM loan_records WHERE id = $1`

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, loan.ErrRecordNotFound
		}

		return nil, fmt.Errorf("getting loan record: %w", err)
	}

	return r, nil
}

func (s *Store) ListRecords(ctx context.Context, loanID uuid.UUID) ([]*loan.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM loan_records
		WHERE loan_id = $1
		ORDER BY date_time DESC, id`

	rows, err := s.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("listing loan records: %w", err)
	}
	defer rows.Close()

	var records []*loan.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan record: %w", err)
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

func (s *Store) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM loan_records WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting loan record: %w", err)
	}

	return nil
}

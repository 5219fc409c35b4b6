package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/database"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Expected column order matches selectTransactionColumns.
func scanTransaction(s database.Scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	if err := s.Scan(
		&tx.ID, &typeStr, &tx.Amount, &tx.AccountID, &tx.ToAccountID, &tx.ToAmount, &tx.CategoryID,
		&tx.Title, &tx.Description, &tx.DateTime, &tx.LoanID, &tx.LoanRecordID, &tx.IsSynced,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	return &tx, nil
}

const selectTransactionColumns = `
	id, type, amount, account_id, to_account_id, to_amount, category_id,
	title, description, date_time, loan_id, loan_record_id, is_synced,
	created_at, updated_at, deleted_at
`

const upsertTransaction = `
	INSERT INTO transactions (
		id, type, amount, account_id, to_account_id, to_amount, category_id,
		title, description, date_time, loan_id, loan_record_id, is_synced, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
	ON CONFLICT (id) DO UPDATE SET
		type = EXCLUDED.type,
		amount = EXCLUDED.amount,
		account_id = EXCLUDED.account_id,
		to_account_id = EXCLUDED.to_account_id,
		to_amount = EXCLUDED.to_amount,
		category_id = EXCLUDED.category_id,
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		date_time = EXCLUDED.date_time,
		loan_id = EXCLUDED.loan_id,
		loan_record_id = EXCLUDED.loan_record_id,
		is_synced = EXCLUDED.is_synced,
		updated_at = NOW()
	RETURNING created_at, updated_at
`

func saveTransaction(ctx context.Context, q querier, tx *transaction.Transaction) error {
	return q.QueryRowContext(ctx, upsertTransaction,
		tx.ID, tx.Type, tx.Amount, tx.AccountID, tx.ToAccountID, tx.ToAmount, tx.CategoryID,
		tx.Title, tx.Description, tx.DateTime, tx.LoanID, tx.LoanRecordID, tx.IsSynced,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt)
}

func (s *Store) SaveTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := saveTransaction(ctx, s.db, tx); err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE id = $1 AND deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	var (
		conds = []string{"deleted_at IS NULL"}
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.StartDate != nil {
		add("date_time >= $%d", *filter.StartDate)
	}

	if filter.EndDate != nil {
		add("date_time <= $%d", *filter.EndDate)
	}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		conds = append(conds, fmt.Sprintf("(account_id = $%d OR to_account_id = $%d)", len(args), len(args)))
	}

	if filter.Type != nil {
		add("type = $%d", *filter.Type)
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY date_time DESC, id`

	return queryTransactions(ctx, s.db, query, args...)
}

func queryTransactions(ctx context.Context, q querier, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) FlagDeleted(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW(), is_synced = FALSE
		WHERE id = $1 AND deleted_at IS NULL
	`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (s *Store) FindAllByLoanID(ctx context.Context, loanID uuid.UUID) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE loan_id = $1 AND deleted_at IS NULL
		ORDER BY date_time DESC, id`

	return queryTransactions(ctx, s.db, query, loanID)
}

func (s *Store) findOne(ctx context.Context, query string, arg any) (*transaction.Transaction, error) {
	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("finding loan transaction: %w", err)
	}

	return tx, nil
}

// FindLoanTransaction returns the principal transaction of a loan, including a
// soft-deleted one so callers can tell "never linked" from "deleted".
func (s *Store) FindLoanTransaction(ctx context.Context, loanID uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE loan_id = $1 AND loan_record_id IS NULL
		ORDER BY deleted_at NULLS FIRST, created_at DESC
		LIMIT 1`

	return s.findOne(ctx, query, loanID)
}

func (s *Store) FindLoanRecordTransaction(ctx context.Context, recordID uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE loan_record_id = $1
		ORDER BY deleted_at NULLS FIRST, created_at DESC
		LIMIT 1`

	return s.findOne(ctx, query, recordID)
}

func (s *Store) CountBetween(ctx context.Context, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM transactions
		WHERE deleted_at IS NULL AND date_time >= $1 AND date_time <= $2
	`

	var n int
	if err := s.db.QueryRowContext(ctx, query, start, end).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}

	return n, nil
}

func importLockKey(minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.UTC().Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.UTC().Format(time.DateOnly)))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens a database transaction holding an advisory lock keyed on
// the batch date range, so overlapping imports serialize.
func (s *Store) BeginImport(ctx context.Context, minDate, maxDate time.Time) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(minDate, maxDate)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date    string
		Amount  string
		Type    transaction.Type
		Account uuid.UUID
	}

	minDate := params[0].DateTime
	maxDate := params[0].DateTime
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.DateTime.Before(minDate) {
			minDate = p.DateTime
		}

		if p.DateTime.After(maxDate) {
			maxDate = p.DateTime
		}

		keySet[lookupKey{
			Date:    p.DateTime.UTC().Format(time.DateOnly),
			Amount:  p.Amount.String(),
			Type:    p.Type,
			Account: p.AccountID,
		}] = struct{}{}
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE deleted_at IS NULL AND date_time >= $1 AND date_time < $2
		ORDER BY date_time`

	candidates, err := queryTransactions(ctx, itx.tx, query,
		minDate.UTC().Truncate(24*time.Hour), maxDate.UTC().Truncate(24*time.Hour).Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}

	var duplicates []*transaction.Transaction

	for _, tx := range candidates {
		k := lookupKey{
			Date:    tx.DateTime.UTC().Format(time.DateOnly),
			Amount:  tx.Amount.String(),
			Type:    tx.Type,
			Account: tx.AccountID,
		}

		if _, found := keySet[k]; found {
			duplicates = append(duplicates, tx)
		}
	}

	return duplicates, nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for _, tx := range txs {
		if err := saveTransaction(ctx, itx.tx, tx); err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	return nil
}

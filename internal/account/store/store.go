package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectAccountColumns = `id, name, currency, color, icon, include_in_balance, order_num, is_synced, created_at`

func scanAccount(s database.Scanner) (*account.Account, error) {
	var a account.Account

	var currency sql.NullString

	if err := s.Scan(
		&a.ID, &a.Name, &currency, &a.Color, &a.Icon, &a.IncludeInBalance, &a.OrderNum, &a.IsSynced, &a.CreatedAt,
	); err != nil {
		return nil, err
	}

	if currency.Valid {
		a.Currency = &currency.String
	}

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (id, name, currency, color, icon, include_in_balance, order_num, is_synced, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.ID, a.Name, a.Currency, a.Color, a.Icon, a.IncludeInBalance, a.OrderNum, a.IsSynced,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, currency = $2, color = $3, icon = $4, include_in_balance = $5, order_num = $6, is_synced = $7
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		a.Name, a.Currency, a.Color, a.Icon, a.IncludeInBalance, a.OrderNum, a.IsSynced, a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return account.ErrNotFound
	}

	return nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts ORDER BY order_num ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accounts, nil
}

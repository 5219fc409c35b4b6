package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/bucket/internal/exchange"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListRates(ctx context.Context, base string) ([]*exchange.Rate, error) {
	query := `
		SELECT base_currency, currency, rate, updated_at
		FROM exchange_rates
		WHERE base_currency = $1
	`

	rows, err := s.db.QueryContext(ctx, query, base)
	if err != nil {
		return nil, fmt.Errorf("listing rates: %w", err)
	}
	defer rows.Close()

	var rates []*exchange.Rate

	for rows.Next() {
		var r exchange.Rate
		if err := rows.Scan(&r.BaseCurrency, &r.Currency, &r.Rate, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning rate: %w", err)
		}

		rates = append(rates, &r)
	}

	return rates, rows.Err()
}

func (s *Store) SaveRates(ctx context.Context, rates []*exchange.Rate) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO exchange_rates (base_currency, currency, rate, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (base_currency, currency) DO UPDATE SET
			rate = EXCLUDED.rate,
			updated_at = EXCLUDED.updated_at
	`

	for _, r := range rates {
		if _, err := dbTx.ExecContext(ctx, query, r.BaseCurrency, r.Currency, r.Rate, r.UpdatedAt); err != nil {
			return fmt.Errorf("saving rate %s→%s: %w", r.BaseCurrency, r.Currency, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing rates: %w", err)
	}

	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context) (*settings.Settings, error) {
	query := `
		SELECT name, currency, buffer_amount, premium, show_notifications, start_day_of_month
		FROM settings
		WHERE id = 1
	`

	var st settings.Settings

	err := s.db.QueryRowContext(ctx, query).Scan(
		&st.Name, &st.Currency, &st.BufferAmount, &st.Premium, &st.ShowNotifications, &st.StartDayOfMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return &st, nil
}

func (s *Store) Save(ctx context.Context, st *settings.Settings) error {
	query := `
		INSERT INTO settings (id, name, currency, buffer_amount, premium, show_notifications, start_day_of_month)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			currency = EXCLUDED.currency,
			buffer_amount = EXCLUDED.buffer_amount,
			premium = EXCLUDED.premium,
			show_notifications = EXCLUDED.show_notifications,
			start_day_of_month = EXCLUDED.start_day_of_month
	`

	_, err := s.db.ExecContext(ctx, query,
		st.Name, st.Currency, st.BufferAmount, st.Premium, st.ShowNotifications, st.StartDayOfMonth,
	)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	return nil
}

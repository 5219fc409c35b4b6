package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, title string) (*uuid.UUID, error) {
	query := `
		SELECT category_id
		FROM category_mappings
		WHERE $1 ILIKE '%' || title_pattern || '%'
		ORDER BY LENGTH(title_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var categoryID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, title).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding match: %w", err)
	}

	return &categoryID, nil
}

func (s *Store) CreateMapping(ctx context.Context, titlePattern string, categoryID uuid.UUID) error {
	query := `
		INSERT INTO category_mappings (title_pattern, category_id, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, titlePattern, categoryID)
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}

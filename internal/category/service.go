package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context) ([]*Category, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string
	Color int32
	Icon  string
}

func (s *Service) Create(ctx context.Context, sess settings.Snapshot, params CreateParams) (*Category, error) {
	existing, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	if !sess.Premium && len(existing) >= FreeLimit {
		return nil, ErrLimitReached
	}

	c := &Category{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(params.Name),
		Color:    params.Color,
		Icon:     params.Icon,
		OrderNum: float64(len(existing)),
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

// Preload seeds the default categories when none exist yet.
func (s *Service) Preload(ctx context.Context) ([]*Category, error) {
	existing, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	if len(existing) > 0 {
		return existing, nil
	}

	created := make([]*Category, 0, len(Defaults))

	for i, d := range Defaults {
		c := &Category{
			ID:       uuid.New(),
			Name:     d.Name,
			Color:    d.Color,
			Icon:     d.Icon,
			OrderNum: float64(i),
		}
		if err := s.repo.CreateCategory(ctx, c); err != nil {
			return nil, fmt.Errorf("preloading %q: %w", d.Name, err)
		}

		created = append(created, c)
	}

	return created, nil
}

package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

// RateSyncer refreshes exchange rates when the base currency changes.
type RateSyncer interface {
	Sync(ctx context.Context, base string) error
}

type Service struct {
	repo  Repository
	rates RateSyncer
}

func NewService(repo Repository, rates RateSyncer) *Service {
	return &Service{repo: repo, rates: rates}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	st, err := s.repo.Get(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading settings: %w", err)
	}

	return st.Snapshot(), nil
}

// SetCurrency changes the base currency and re-syncs rates for it. A failed
// sync is logged; cached rates stay usable.
func (s *Service) SetCurrency(ctx context.Context, code string) (*Settings, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}

	st, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	st.Currency = code
	if err := s.repo.Save(ctx, st); err != nil {
		return nil, err
	}

	if s.rates != nil {
		if err := s.rates.Sync(ctx, code); err != nil {
			slog.Warn("exchange rate sync failed", "base", code, "error", err)
		}
	}

	return st, nil
}

func (s *Service) SetBuffer(ctx context.Context, amount decimal.Decimal) (*Settings, error) {
	st, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	st.BufferAmount = amount
	if err := s.repo.Save(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Service) SetShowNotifications(ctx context.Context, show bool) (*Settings, error) {
	st, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	st.ShowNotifications = show
	if err := s.repo.Save(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

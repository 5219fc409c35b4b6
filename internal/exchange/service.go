package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=exchange
type Repository interface {
	ListRates(ctx context.Context, base string) ([]*Rate, error)
	SaveRates(ctx context.Context, rates []*Rate) error
}

// Fetcher pulls the latest rates for a base currency from a remote source.
type Fetcher interface {
	Fetch(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

type table struct {
	rates    map[string]decimal.Decimal
	loadedAt time.Time
}

// Service converts amounts between currencies through a per-base rate table.
// Tables are loaded from the repository and kept in memory for ttl.
type Service struct {
	repo    Repository
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time

	mu     sync.RWMutex
	tables map[string]*table
}

func NewService(repo Repository, fetcher Fetcher, ttl time.Duration) *Service {
	return &Service{
		repo:    repo,
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		tables:  make(map[string]*table),
	}
}

// Convert expresses amount, held in from, in to:
// amount / rate(base→from) * rate(base→to).
func (s *Service) Convert(ctx context.Context, base string, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	base, from, to = normalize(base), normalize(from), normalize(to)
	if from == to {
		return amount, nil
	}

	fromRate, err := s.Rate(ctx, base, from)
	if err != nil {
		return decimal.Zero, err
	}

	toRate, err := s.Rate(ctx, base, to)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Div(fromRate).Mul(toRate), nil
}

// Rate returns rate(base→currency). The base currency always rates 1.
func (s *Service) Rate(ctx context.Context, base, currency string) (decimal.Decimal, error) {
	base, currency = normalize(base), normalize(currency)
	if base == currency {
		return decimal.NewFromInt(1), nil
	}

	t, err := s.table(ctx, base)
	if err != nil {
		return decimal.Zero, err
	}

	r, ok := t.rates[currency]
	if !ok || !r.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s→%s", ErrRateNotFound, base, currency)
	}

	return r, nil
}

func (s *Service) table(ctx context.Context, base string) (*table, error) {
	s.mu.RLock()
	t, ok := s.tables[base]
	s.mu.RUnlock()

	if ok && s.now().Sub(t.loadedAt) < s.ttl {
		return t, nil
	}

	rates, err := s.repo.ListRates(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("loading rates for %s: %w", base, err)
	}

	t = &table{rates: make(map[string]decimal.Decimal, len(rates)), loadedAt: s.now()}
	for _, r := range rates {
		t.rates[r.Currency] = r.Rate
	}

	s.mu.Lock()
	s.tables[base] = t
	s.mu.Unlock()

	return t, nil
}

// Sync fetches fresh rates for base, stores them and replaces the cached
// table.
func (s *Service) Sync(ctx context.Context, base string) error {
	if s.fetcher == nil {
		return nil
	}

	base = normalize(base)

	fetched, err := s.fetcher.Fetch(ctx, base)
	if err != nil {
		return fmt.Errorf("fetching rates for %s: %w", base, err)
	}

	now := s.now()
	rates := make([]*Rate, 0, len(fetched))
	t := &table{rates: make(map[string]decimal.Decimal, len(fetched)), loadedAt: now}

	for currency, r := range fetched {
		currency = normalize(currency)
		rates = append(rates, &Rate{BaseCurrency: base, Currency: currency, Rate: r, UpdatedAt: now})
		t.rates[currency] = r
	}

	if err := s.repo.SaveRates(ctx, rates); err != nil {
		return fmt.Errorf("saving rates for %s: %w", base, err)
	}

	s.mu.Lock()
	s.tables[base] = t
	s.mu.Unlock()

	slog.Info("exchange rates synced", "base", base, "count", len(rates))

	return nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

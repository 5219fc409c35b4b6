package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	ListAccounts(ctx context.Context) ([]*Account, error)
}

// CurrencyListener is told when an account starts holding a different
// currency so dependent amounts can be recomputed.
type CurrencyListener interface {
	AccountCurrencyChanged(ctx context.Context, sess settings.Snapshot, accountID uuid.UUID) error
}

type Service struct {
	repo     Repository
	listener CurrencyListener
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetCurrencyListener wires the listener after construction; the loan
// linkage itself depends on account listing.
func (s *Service) SetCurrencyListener(l CurrencyListener) {
	s.listener = l
}

type CreateParams struct {
	Name             string
	Currency         *string
	Color            int32
	Icon             string
	IncludeInBalance bool
}

func (s *Service) Create(ctx context.Context, sess settings.Snapshot, params CreateParams) (*Account, error) {
	existing, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	if !sess.Premium && len(existing) >= FreeLimit {
		return nil, ErrLimitReached
	}

	a := &Account{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(params.Name),
		Currency:         normalizeCurrency(params.Currency),
		Color:            params.Color,
		Icon:             params.Icon,
		IncludeInBalance: params.IncludeInBalance,
		OrderNum:         float64(len(existing)),
	}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}

// Preload seeds the default accounts when none exist yet.
func (s *Service) Preload(ctx context.Context) ([]*Account, error) {
	existing, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	if len(existing) > 0 {
		return existing, nil
	}

	created := make([]*Account, 0, len(Defaults))

	for i, d := range Defaults {
		a := &Account{
			ID:               uuid.New(),
			Name:             d.Name,
			Color:            d.Color,
			Icon:             d.Icon,
			IncludeInBalance: d.IncludeInBalance,
			OrderNum:         float64(i),
		}
		if err := s.repo.CreateAccount(ctx, a); err != nil {
			return nil, fmt.Errorf("preloading %q: %w", d.Name, err)
		}

		created = append(created, a)
	}

	return created, nil
}

// Update saves a and, when its effective currency changed, notifies the
// currency listener.
func (s *Service) Update(ctx context.Context, sess settings.Snapshot, a *Account) error {
	old, err := s.repo.GetAccount(ctx, a.ID)
	if err != nil {
		return err
	}

	a.Currency = normalizeCurrency(a.Currency)
	a.IsSynced = false

	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return err
	}

	if s.listener == nil || old.CurrencyOr(sess.BaseCurrency) == a.CurrencyOr(sess.BaseCurrency) {
		return nil
	}

	if err := s.listener.AccountCurrencyChanged(ctx, sess, a.ID); err != nil {
		return fmt.Errorf("propagating currency change: %w", err)
	}

	return nil
}

func normalizeCurrency(c *string) *string {
	if c == nil {
		return nil
	}

	code := strings.ToUpper(strings.TrimSpace(*c))
	if code == "" {
		return nil
	}

	return &code
}

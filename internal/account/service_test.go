package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

func accounts(n int) []*account.Account {
	out := make([]*account.Account, n)
	for i := range out {
		out[i] = &account.Account{ID: uuid.New()}
	}

	return out
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		sess      settings.Snapshot
		existing  int
		currency  *string
		wantErr   error
		wantCode  *string
		wantOrder float64
	}{
		{
			name:      "FreeTierUnderLimit",
			existing:  2,
			currency:  new(" usd "),
			wantCode:  new("USD"),
			wantOrder: 2,
		},
		{
			name:     "FreeTierAtLimit",
			existing: account.FreeLimit,
			wantErr:  account.ErrLimitReached,
		},
		{
			name:      "PremiumIgnoresLimit",
			sess:      settings.Snapshot{Premium: true},
			existing:  account.FreeLimit + 2,
			currency:  new(""),
			wantOrder: float64(account.FreeLimit + 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			repo := account.NewMockRepository(ctrl)
			svc := account.NewService(repo)

			repo.EXPECT().ListAccounts(ctx).Return(accounts(tt.existing), nil)

			if tt.wantErr == nil {
				repo.EXPECT().CreateAccount(ctx, gomock.Any()).Return(nil)
			}

			got, err := svc.Create(ctx, tt.sess, account.CreateParams{
				Name:             "  Savings ",
				Currency:         tt.currency,
				IncludeInBalance: true,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Savings", got.Name)
			assert.Equal(t, tt.wantCode, got.Currency)
			assert.Equal(t, tt.wantOrder, got.OrderNum)
			assert.True(t, got.IncludeInBalance)
		})
	}
}

func TestService_Update_CurrencyChange(t *testing.T) {
	sess := settings.Snapshot{BaseCurrency: "EUR"}

	tests := []struct {
		name       string
		old        *string
		updated    *string
		wantNotify bool
	}{
		{name: "Unchanged", old: new("USD"), updated: new("usd")},
		{name: "BaseToExplicitBase", old: nil, updated: new("EUR")},
		{name: "ExplicitBaseToBase", old: new("EUR"), updated: new("")},
		{name: "BaseToOther", old: nil, updated: new("USD"), wantNotify: true},
		{name: "OtherToBase", old: new("USD"), updated: nil, wantNotify: true},
		{name: "OtherToOther", old: new("USD"), updated: new("GBP"), wantNotify: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			repo := account.NewMockRepository(ctrl)
			listener := account.NewMockCurrencyListener(ctrl)

			svc := account.NewService(repo)
			svc.SetCurrencyListener(listener)

			id := uuid.New()

			repo.EXPECT().GetAccount(ctx, id).Return(&account.Account{ID: id, Currency: tt.old}, nil)
			repo.EXPECT().UpdateAccount(ctx, gomock.Any()).Return(nil)

			if tt.wantNotify {
				listener.EXPECT().AccountCurrencyChanged(ctx, sess, id).Return(nil)
			}

			err := svc.Update(ctx, sess, &account.Account{ID: id, Currency: tt.updated, IsSynced: true})
			require.NoError(t, err)
		})
	}
}

func TestService_Update_Errors(t *testing.T) {
	ctx := context.Background()
	sess := settings.Snapshot{BaseCurrency: "EUR"}

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := account.NewMockRepository(ctrl)
		svc := account.NewService(repo)

		id := uuid.New()
		repo.EXPECT().GetAccount(ctx, id).Return(nil, account.ErrNotFound)

		err := svc.Update(ctx, sess, &account.Account{ID: id})
		assert.ErrorIs(t, err, account.ErrNotFound)
	})

	t.Run("ListenerFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := account.NewMockRepository(ctrl)
		listener := account.NewMockCurrencyListener(ctrl)
		svc := account.NewService(repo)
		svc.SetCurrencyListener(listener)

		id := uuid.New()
		boom := errors.New("boom")

		repo.EXPECT().GetAccount(ctx, id).Return(&account.Account{ID: id}, nil)
		repo.EXPECT().UpdateAccount(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *account.Account) error {
			assert.False(t, a.IsSynced)
			assert.Equal(t, "USD", *a.Currency)

			return nil
		})
		listener.EXPECT().AccountCurrencyChanged(ctx, sess, id).Return(boom)

		err := svc.Update(ctx, sess, &account.Account{ID: id, Currency: new("usd"), IsSynced: true})
		assert.ErrorIs(t, err, boom)
	})
}

func TestService_Preload(t *testing.T) {
	ctx := context.Background()

	t.Run("SeedsCashAndBank", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := account.NewMockRepository(ctrl)
		svc := account.NewService(repo)

		var saved []*account.Account

		repo.EXPECT().ListAccounts(ctx).Return(nil, nil)
		repo.EXPECT().CreateAccount(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *account.Account) error {
			saved = append(saved, a)
			return nil
		}).Times(len(account.Defaults))

		got, err := svc.Preload(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, saved, got)

		for i, name := range []string{"Cash", "Bank"} {
			assert.Equal(t, name, got[i].Name)
			assert.Nil(t, got[i].Currency)
			assert.True(t, got[i].IncludeInBalance)
			assert.Equal(t, float64(i), got[i].OrderNum)
			assert.NotEqual(t, uuid.Nil, got[i].ID)
		}
	})

	t.Run("SkipsWhenAccountsExist", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := account.NewMockRepository(ctrl)
		svc := account.NewService(repo)

		existing := accounts(1)
		repo.EXPECT().ListAccounts(ctx).Return(existing, nil)

		got, err := svc.Preload(ctx)
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})
}

package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("account not found")
	ErrLimitReached = errors.New("free account limit reached")
)

// FreeLimit is the number of accounts available without premium.
const FreeLimit = 3

// Account holds money in a single currency. A nil Currency means the
// account follows the user's base currency.
type Account struct {
	ID               uuid.UUID
	Name             string
	Currency         *string
	Color            int32
	Icon             string
	IncludeInBalance bool
	OrderNum         float64
	IsSynced         bool
	CreatedAt        time.Time
}

// CurrencyOr resolves the account currency, falling back to base.
func (a *Account) CurrencyOr(base string) string {
	if a == nil || a.Currency == nil || *a.Currency == "" {
		return base
	}

	return *a.Currency
}

// Find returns the account with the given id, or nil.
func Find(accounts []*Account, id *uuid.UUID) *Account {
	if id == nil {
		return nil
	}

	for _, a := range accounts {
		if a.ID == *id {
			return a
		}
	}

	return nil
}

// Defaults are seeded on first launch. They follow the base currency.
var Defaults = []Account{
	{Name: "Cash", Color: 0x12B880, Icon: "cash", IncludeInBalance: true},
	{Name: "Bank", Color: 0x1F1F1F, Icon: "bank", IncludeInBalance: true},
}

package settings

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidCurrency = errors.New("invalid currency code")

// Settings is the single per-device configuration row.
type Settings struct {
	Name              string
	Currency          string
	BufferAmount      decimal.Decimal
	Premium           bool
	ShowNotifications bool
	StartDayOfMonth   int
}

// Snapshot is the immutable session context handed to domain operations in
// place of ambient global state.
type Snapshot struct {
	BaseCurrency    string
	Premium         bool
	StartDayOfMonth int
	Buffer          decimal.Decimal
}

// Snapshot freezes the values operations care about.
func (s Settings) Snapshot() Snapshot {
	start := s.StartDayOfMonth
	if start < 1 || start > 28 {
		start = 1
	}

	return Snapshot{
		BaseCurrency:    s.Currency,
		Premium:         s.Premium,
		StartDayOfMonth: start,
		Buffer:          s.BufferAmount,
	}
}

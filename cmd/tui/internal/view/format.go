package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders a positive amount signed by its transaction type.
func FormatAmount(t transaction.Type, amount decimal.Decimal) string {
	switch t {
	case transaction.TypeExpense:
		return "-" + amount.StringFixed(2)
	case transaction.TypeTransfer:
		return "~" + amount.StringFixed(2)
	}

	return "+" + amount.StringFixed(2)
}

// FormatOptional renders a possibly unknown amount.
func FormatOptional(amount *decimal.Decimal) string {
	if amount == nil {
		return "n/a"
	}

	return amount.StringFixed(2)
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

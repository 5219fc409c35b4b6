package exchange

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrRateNotFound = errors.New("exchange rate not found")

// Rate is the number of Currency units worth one BaseCurrency unit.
type Rate struct {
	BaseCurrency string
	Currency     string
	Rate         decimal.Decimal
	UpdatedAt    time.Time
}

package category

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("category not found")
	ErrLimitReached = errors.New("free category limit reached")
)

// FreeLimit is the number of categories available without premium.
const FreeLimit = 12

type Category struct {
	ID       uuid.UUID
	Name     string
	Color    int32
	Icon     string
	OrderNum float64
	IsSynced bool
}

// FindByName matches a category name case-insensitively.
func FindByName(categories []*Category, name string) *Category {
	name = strings.TrimSpace(name)
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}

	return nil
}

// Defaults are seeded on first launch.
var Defaults = []Category{
	{Name: "Food & Drinks", Color: 0x12B880, Icon: "fooddrink"},
	{Name: "Bills & Fees", Color: 0xFF4060, Icon: "bills"},
	{Name: "Transport", Color: 0xFFF4B5, Icon: "transport"},
	{Name: "Groceries", Color: 0xA4E5A5, Icon: "groceries"},
	{Name: "Entertainment", Color: 0xF57A3A, Icon: "game"},
	{Name: "Shopping", Color: 0x5C3DF5, Icon: "shopping"},
	{Name: "Gifts", Color: 0xFFA1A1, Icon: "gift"},
	{Name: "Health", Color: 0xC0B3FF, Icon: "health"},
	{Name: "Investments", Color: 0x2C1C80, Icon: "leaf"},
	LoanDefault,
}

// LoanDefault is created on demand the first time a loan transaction needs
// a category.
var LoanDefault = Category{Name: "Loans", Color: 0x15507A, Icon: "loan"}

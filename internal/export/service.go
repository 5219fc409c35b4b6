package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/category"
	"github.com/MrJamesThe3rd/bucket/internal/importer/ivy"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

const dateLayout = "2006-01-02 15:04:05"

//go:generate mockgen -source=service.go -destination=service_mock.go -package=export
type Transactions interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Accounts interface {
	List(ctx context.Context) ([]*account.Account, error)
}

type Categories interface {
	List(ctx context.Context) ([]*category.Category, error)
}

// Item is one exported transaction with its names resolved.
type Item struct {
	Transaction *transaction.Transaction
	Account     string
	Currency    string
	ToAccount   string
	ToCurrency  string
	Category    string
}

// Service writes transactions as CSV in the Ivy backup layout, so an export
// can be imported again with the ivy profile.
type Service struct {
	transactions Transactions
	accounts     Accounts
	categories   Categories
}

func NewService(transactions Transactions, accounts Accounts, categories Categories) *Service {
	return &Service{
		transactions: transactions,
		accounts:     accounts,
		categories:   categories,
	}
}

// Items lists the transactions matching filter with account and category
// names resolved.
func (s *Service) Items(ctx context.Context, sess settings.Snapshot, filter transaction.ListFilter) ([]Item, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	items := make([]Item, 0, len(txs))

	for _, tx := range txs {
		acc := account.Find(accounts, &tx.AccountID)

		item := Item{
			Transaction: tx,
			Account:     accountName(acc),
			Currency:    acc.CurrencyOr(sess.BaseCurrency),
		}

		if tx.ToAccountID != nil {
			to := account.Find(accounts, tx.ToAccountID)
			item.ToAccount = accountName(to)
			item.ToCurrency = to.CurrencyOr(sess.BaseCurrency)
		}

		if tx.CategoryID != nil {
			item.Category = categoryNames[*tx.CategoryID]
		}

		items = append(items, item)
	}

	return items, nil
}

func accountName(a *account.Account) string {
	if a == nil {
		return ""
	}

	return a.Name
}

// Export writes the matching transactions to w and returns what was written.
func (s *Service) Export(ctx context.Context, sess settings.Snapshot, w io.Writer, filter transaction.ListFilter) ([]Item, error) {
	items, err := s.Items(ctx, sess, filter)
	if err != nil {
		return nil, err
	}

	if err := WriteCSV(w, items); err != nil {
		return nil, err
	}

	return items, nil
}

// ExportFile writes the export into dir, creating it when needed, and returns
// the file path.
func (s *Service) ExportFile(ctx context.Context, sess settings.Snapshot, filter transaction.ListFilter, dir string) (string, []Item, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("bucket_export_%s.csv", time.Now().UTC().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	items, err := s.Export(ctx, sess, f, filter)
	if err != nil {
		return "", nil, err
	}

	return path, items, nil
}

func WriteCSV(w io.Writer, items []Item) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ivy.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, item := range items {
		if err := cw.Write(record(item)); err != nil {
			return fmt.Errorf("writing transaction %s: %w", item.Transaction.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func record(item Item) []string {
	tx := item.Transaction
	cells := make(map[string]string, len(ivy.Header))

	cells[ivy.ColDate] = tx.DateTime.UTC().Format(dateLayout)
	cells[ivy.ColTitle] = tx.Title
	cells[ivy.ColCategory] = item.Category
	cells[ivy.ColAccount] = item.Account
	cells[ivy.ColType] = string(tx.Type)
	cells[ivy.ColDescription] = tx.Description
	cells[ivy.ColID] = tx.ID.String()

	if tx.Type == transaction.TypeTransfer {
		received := tx.Amount
		if tx.ToAmount != nil {
			received = *tx.ToAmount
		}

		cells[ivy.ColTransferAmount] = tx.Amount.String()
		cells[ivy.ColTransferCurrency] = item.Currency
		cells[ivy.ColToAccount] = item.ToAccount
		cells[ivy.ColReceiveAmount] = received.String()
		cells[ivy.ColReceiveCurrency] = item.ToCurrency
	} else {
		cells[ivy.ColAmount] = tx.Amount.String()
		cells[ivy.ColCurrency] = item.Currency
	}

	out := make([]string, len(ivy.Header))
	for i, col := range ivy.Header {
		out[i] = cells[col]
	}

	return out
}

// GenerateSummary renders one line per item for display.
func (s *Service) GenerateSummary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		tx := item.Transaction

		sign := "-"
		switch tx.Type {
		case transaction.TypeIncome:
			sign = "+"
		case transaction.TypeTransfer:
			sign = "~"
		}

		category := item.Category
		if category == "" {
			category = "Uncategorized"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s %s | %s | %s\n",
			tx.DateTime.Format(time.DateOnly), tx.Title, sign, tx.Amount.StringFixed(2), item.Currency, item.Account, category)
	}

	return sb.String()
}

// Package app wires stores and services into the graph shared by the
// binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	accountStore "github.com/MrJamesThe3rd/bucket/internal/account/store"
	"github.com/MrJamesThe3rd/bucket/internal/category"
	categoryStore "github.com/MrJamesThe3rd/bucket/internal/category/store"
	"github.com/MrJamesThe3rd/bucket/internal/config"
	"github.com/MrJamesThe3rd/bucket/internal/database"
	"github.com/MrJamesThe3rd/bucket/internal/exchange"
	exchangeStore "github.com/MrJamesThe3rd/bucket/internal/exchange/store"
	"github.com/MrJamesThe3rd/bucket/internal/export"
	"github.com/MrJamesThe3rd/bucket/internal/importer"
	"github.com/MrJamesThe3rd/bucket/internal/insights"
	"github.com/MrJamesThe3rd/bucket/internal/loan"
	loanStore "github.com/MrJamesThe3rd/bucket/internal/loan/store"
	"github.com/MrJamesThe3rd/bucket/internal/loanlink"
	"github.com/MrJamesThe3rd/bucket/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/bucket/internal/matching/store"
	"github.com/MrJamesThe3rd/bucket/internal/reminder"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/bucket/internal/settings/store"
	"github.com/MrJamesThe3rd/bucket/internal/syncqueue"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
	txStore "github.com/MrJamesThe3rd/bucket/internal/transaction/store"
	"github.com/MrJamesThe3rd/bucket/internal/wallet"
)

type deleteQueue interface {
	transaction.DeleteQueue
	Close() error
}

type App struct {
	DB *sql.DB

	Settings     *settings.Service
	Exchange     *exchange.Service
	Accounts     *account.Service
	Categories   *category.Service
	Transactions *transaction.Service
	Loans        *loan.Service
	LoanLink     *loanlink.Service
	Wallet       *wallet.Service
	Matching     *matching.Service
	Importer     *importer.Service
	Export       *export.Service
	Insights     *insights.Service
	Reminder     *reminder.Service

	deletes deleteQueue
}

// New opens the database and builds every service. A broker that cannot be
// reached falls back to dropping remote deletes.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	var deletes deleteQueue = syncqueue.Noop{}

	if cfg.Sync.BrokerURL != "" {
		pub, err := syncqueue.NewPublisher(cfg.Sync.BrokerURL, cfg.Sync.Exchange, cfg.Sync.Queue)
		if err != nil {
			slog.Warn("sync broker unavailable, remote deletes disabled", "error", err)
		} else {
			deletes = pub
		}
	}

	var (
		transactions = txStore.New(db)
		accounts     = accountStore.New(db)
		categories   = categoryStore.New(db)
		loans        = loanStore.New(db)
	)

	a := &App{DB: db, deletes: deletes}

	a.Exchange = exchange.NewService(
		exchangeStore.New(db),
		exchange.NewClient(cfg.Rates.URL, cfg.Rates.Key, cfg.Rates.Timeout),
		cfg.Rates.TTL,
	)
	a.Settings = settings.NewService(settingsStore.New(db), a.Exchange)
	a.Accounts = account.NewService(accounts)
	a.Categories = category.NewService(categories)
	a.Transactions = transaction.NewService(transactions, deletes)
	a.LoanLink = loanlink.NewService(loanlink.Deps{
		Transactions: transactions,
		Loans:        loans,
		Records:      loans,
		Categories:   categories,
		Accounts:     accounts,
		Converter:    a.Exchange,
		Deletes:      deletes,
	})
	a.Loans = loan.NewService(loans, loans, a.LoanLink)
	a.Wallet = wallet.NewService(accounts, transactions, a.Exchange)
	a.Matching = matching.NewService(matchingStore.New(db))
	a.Importer = importer.NewService(a.Accounts, a.Categories, a.Matching, a.Transactions)
	a.Export = export.NewService(a.Transactions, a.Accounts, a.Categories)
	a.Insights = insights.NewService(a.Wallet,
		insights.NewClient(cfg.Insights.URL, cfg.Insights.Key, cfg.Insights.Model, cfg.Insights.Timeout))
	a.Reminder = reminder.NewService(a.Settings, a.Transactions, reminder.LogNotifier{Logger: slog.Default()})

	a.Transactions.SetLoanSync(a.LoanLink)
	a.Accounts.SetCurrencyListener(a.LoanLink)

	return a, nil
}

// Session loads the settings snapshot handed to domain operations.
func (a *App) Session(ctx context.Context) (settings.Snapshot, error) {
	return a.Settings.Snapshot(ctx)
}

func (a *App) Close() error {
	if err := a.deletes.Close(); err != nil {
		slog.Warn("closing sync publisher", "error", err)
	}

	return a.DB.Close()
}

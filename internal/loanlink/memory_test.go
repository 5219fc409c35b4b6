package loanlink_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/category"
	"github.com/MrJamesThe3rd/bucket/internal/exchange"
	"github.com/MrJamesThe3rd/bucket/internal/loan"
	"github.com/MrJamesThe3rd/bucket/internal/loanlink"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

// memory is an in-memory implementation of every loanlink port.
type memory struct {
	mu sync.Mutex

	txs        map[uuid.UUID]*transaction.Transaction
	loans      map[uuid.UUID]*loan.Loan
	records    map[uuid.UUID]*loan.Record
	categories []*category.Category
	accounts   []*account.Account

	enqueued         []uuid.UUID
	saveRecordsCalls int
}

func newMemory() *memory {
	return &memory{
		txs:     make(map[uuid.UUID]*transaction.Transaction),
		loans:   make(map[uuid.UUID]*loan.Loan),
		records: make(map[uuid.UUID]*loan.Record),
	}
}

func (m *memory) addAccount(currency string) uuid.UUID {
	a := &account.Account{ID: uuid.New(), Name: currency + " account", IncludeInBalance: true}
	if currency != "" {
		a.Currency = &currency
	}

	m.accounts = append(m.accounts, a)

	return a.ID
}

func (m *memory) SaveTransaction(_ context.Context, tx *transaction.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *tx
	m.txs[tx.ID] = &copied

	return nil
}

func (m *memory) find(match func(*transaction.Transaction) bool) (*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted *transaction.Transaction

	for _, tx := range m.txs {
		if !match(tx) {
			continue
		}

		copied := *tx
		if !tx.IsDeleted() {
			return &copied, nil
		}

		deleted = &copied
	}

	if deleted != nil {
		return deleted, nil
	}

	return nil, transaction.ErrNotFound
}

func (m *memory) FindLoanTransaction(_ context.Context, loanID uuid.UUID) (*transaction.Transaction, error) {
	return m.find(func(tx *transaction.Transaction) bool {
		return tx.LoanID != nil && *tx.LoanID == loanID && tx.LoanRecordID == nil
	})
}

func (m *memory) FindLoanRecordTransaction(_ context.Context, recordID uuid.UUID) (*transaction.Transaction, error) {
	return m.find(func(tx *transaction.Transaction) bool {
		return tx.LoanRecordID != nil && *tx.LoanRecordID == recordID
	})
}

func (m *memory) FindAllByLoanID(_ context.Context, loanID uuid.UUID) ([]*transaction.Transaction, error) {
	return m.activeByLoan(loanID), nil
}

func (m *memory) activeByLoan(loanID uuid.UUID) []*transaction.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*transaction.Transaction

	for _, tx := range m.txs {
		if tx.LoanID != nil && *tx.LoanID == loanID && !tx.IsDeleted() {
			copied := *tx
			out = append(out, &copied)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })

	return out
}

func (m *memory) FlagDeleted(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.txs[id]
	if !ok {
		return transaction.ErrNotFound
	}

	now := time.Now()
	tx.DeletedAt = &now

	return nil
}

func (m *memory) EnqueueDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enqueued = append(m.enqueued, id)

	return nil
}

func (m *memory) GetLoan(_ context.Context, id uuid.UUID) (*loan.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.loans[id]
	if !ok {
		return nil, loan.ErrNotFound
	}

	copied := *l

	return &copied, nil
}

func (m *memory) ListLoans(_ context.Context) ([]*loan.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*loan.Loan
	for _, l := range m.loans {
		copied := *l
		out = append(out, &copied)
	}

	return out, nil
}

func (m *memory) SaveLoan(_ context.Context, l *loan.Loan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *l
	m.loans[l.ID] = &copied

	return nil
}

func (m *memory) GetRecord(_ context.Context, id uuid.UUID) (*loan.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok {
		return nil, loan.ErrRecordNotFound
	}

	copied := *r

	return &copied, nil
}

func (m *memory) ListRecords(_ context.Context, loanID uuid.UUID) ([]*loan.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*loan.Record

	for _, r := range m.records {
		if r.LoanID == loanID {
			copied := *r
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (m *memory) SaveRecord(_ context.Context, r *loan.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *r
	m.records[r.ID] = &copied

	return nil
}

func (m *memory) SaveRecords(ctx context.Context, rs []*loan.Record) error {
	m.mu.Lock()
	m.saveRecordsCalls++
	m.mu.Unlock()

	for _, r := range rs {
		if err := m.SaveRecord(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

func (m *memory) ListCategories(_ context.Context) ([]*category.Category, error) {
	return m.categories, nil
}

func (m *memory) CreateCategory(_ context.Context, c *category.Category) error {
	m.categories = append(m.categories, c)
	return nil
}

func (m *memory) ListAccounts(_ context.Context) ([]*account.Account, error) {
	return m.accounts, nil
}

// converter rates everything against USD and counts live conversions.
type converter struct {
	rates map[string]decimal.Decimal
	calls atomic.Int32
	fail  bool
}

func newConverter() *converter {
	return &converter{rates: map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.5"),
		"GBP": decimal.RequireFromString("0.25"),
	}}
}

func (c *converter) Convert(_ context.Context, _ string, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	c.calls.Add(1)

	if c.fail {
		return decimal.Zero, errors.New("rates unavailable")
	}

	fromRate, ok := c.rates[from]
	if !ok {
		return decimal.Zero, exchange.ErrRateNotFound
	}

	toRate, ok := c.rates[to]
	if !ok {
		return decimal.Zero, exchange.ErrRateNotFound
	}

	return amount.Div(fromRate).Mul(toRate), nil
}

func newLinker(m *memory, conv *converter) *loanlink.Service {
	return loanlink.NewService(loanlink.Deps{
		Transactions: m,
		Loans:        m,
		Records:      m,
		Categories:   m,
		Accounts:     m,
		Converter:    conv,
		Deletes:      m,
	})
}

package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/category"
	"github.com/MrJamesThe3rd/bucket/internal/encoding"
	"github.com/MrJamesThe3rd/bucket/internal/importer/generic"
	"github.com/MrJamesThe3rd/bucket/internal/importer/ivy"
	"github.com/MrJamesThe3rd/bucket/internal/importer/row"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Accounts interface {
	List(ctx context.Context) ([]*account.Account, error)
	Create(ctx context.Context, sess settings.Snapshot, params account.CreateParams) (*account.Account, error)
}

type Categories interface {
	List(ctx context.Context) ([]*category.Category, error)
	Create(ctx context.Context, sess settings.Snapshot, params category.CreateParams) (*category.Category, error)
}

// Suggester proposes a category for an uncategorised title.
type Suggester interface {
	Suggest(ctx context.Context, title string) (*uuid.UUID, error)
}

type Transactions interface {
	ImportBatch(ctx context.Context, params []transaction.CreateParams) (*transaction.ImportResult, error)
	CreateBatch(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error)
}

type Service struct {
	accounts     Accounts
	categories   Categories
	suggester    Suggester
	transactions Transactions
	parsers      map[Profile]Parser
}

func NewService(accounts Accounts, categories Categories, suggester Suggester, transactions Transactions) *Service {
	return &Service{
		accounts:     accounts,
		categories:   categories,
		suggester:    suggester,
		transactions: transactions,
		parsers: map[Profile]Parser{
			ProfileIvy:     ivy.NewParser(),
			ProfileGeneric: generic.NewParser(),
		},
	}
}

// Options tune one import. AccountID receives rows that name no account.
type Options struct {
	Profile   Profile
	Charset   encoding.Charset
	AccountID *uuid.UUID
}

// Import reads r, creating missing accounts and categories by name. Rows that
// cannot be stored, including duplicates of existing transactions, end up in
// Result.FailedRows; the rest are written in one batch.
func (s *Service) Import(ctx context.Context, sess settings.Snapshot, r io.Reader, opts Options) (*Result, error) {
	parser, ok := s.parsers[opts.Profile]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, opts.Profile)
	}

	decoded, err := encoding.NewReader(r, opts.Charset)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	rows, failed, err := parser.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parse %s file: %w", opts.Profile, err)
	}

	res := &Result{
		RowsFound:  len(rows) + len(failed),
		FailedRows: failed,
	}

	if len(rows) == 0 {
		return res, nil
	}

	rsv, err := newResolver(ctx, s, sess, opts.AccountID)
	if err != nil {
		return nil, err
	}

	var (
		params []transaction.CreateParams
		lines  []int
	)

	for _, rw := range rows {
		p, err := rsv.params(ctx, rw)
		if err != nil {
			res.FailedRows = append(res.FailedRows, row.Failed{Line: rw.Line, Reason: err.Error()})
			continue
		}

		params = append(params, p)
		lines = append(lines, rw.Line)
	}

	res.AccountsImported = rsv.accountsCreated
	res.CategoriesImported = rsv.categoriesCreated

	if len(params) == 0 {
		return res, nil
	}

	imported, err := s.store(ctx, params, lines, res)
	if err != nil {
		return nil, err
	}

	res.TransactionsImported = imported

	slog.Info("import finished",
		"profile", opts.Profile,
		"rows", res.RowsFound,
		"imported", res.TransactionsImported,
		"failed", len(res.FailedRows),
	)

	return res, nil
}

// store writes params, reporting duplicates of existing transactions as
// failed rows and importing the remainder.
func (s *Service) store(ctx context.Context, params []transaction.CreateParams, lines []int, res *Result) (int, error) {
	batch, err := s.transactions.ImportBatch(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("importing transactions: %w", err)
	}

	if len(batch.Conflicts) == 0 {
		return len(batch.Imported), nil
	}

	matched := make([]bool, len(params))

	for _, c := range batch.Conflicts {
		for i, p := range params {
			if !matched[i] && p == c.Incoming {
				matched[i] = true

				res.FailedRows = append(res.FailedRows, row.Failed{
					Line:   lines[i],
					Reason: fmt.Sprintf("duplicate of transaction %s", c.Existing.ID),
				})

				break
			}
		}
	}

	if len(batch.New) == 0 {
		return 0, nil
	}

	created, err := s.transactions.CreateBatch(ctx, batch.New)
	if err != nil {
		return 0, fmt.Errorf("importing new transactions: %w", err)
	}

	return len(created), nil
}

// resolver maps account and category names to ids, creating what is missing.
type resolver struct {
	svc            *Service
	sess           settings.Snapshot
	defaultAccount *uuid.UUID

	accounts   map[string]*account.Account
	categories map[string]uuid.UUID

	accountsCreated   int
	categoriesCreated int
}

func newResolver(ctx context.Context, s *Service, sess settings.Snapshot, defaultAccount *uuid.UUID) (*resolver, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	r := &resolver{
		svc:            s,
		sess:           sess,
		defaultAccount: defaultAccount,
		accounts:       make(map[string]*account.Account, len(accounts)),
		categories:     make(map[string]uuid.UUID, len(categories)),
	}

	for _, a := range accounts {
		r.accounts[nameKey(a.Name)] = a
	}

	for _, c := range categories {
		r.categories[nameKey(c.Name)] = c.ID
	}

	return r, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *resolver) params(ctx context.Context, rw row.Row) (transaction.CreateParams, error) {
	accountID, err := r.account(ctx, rw.Account, rw.Currency)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	p := transaction.CreateParams{
		Type:        rw.Type,
		Amount:      rw.Amount,
		AccountID:   accountID,
		Title:       rw.Title,
		Description: rw.Description,
		DateTime:    rw.DateTime,
	}

	if rw.Type == transaction.TypeTransfer {
		toID, err := r.account(ctx, rw.ToAccount, rw.ToCurrency)
		if err != nil {
			return transaction.CreateParams{}, fmt.Errorf("destination: %w", err)
		}

		p.ToAccountID = &toID
		p.ToAmount = rw.ToAmount
	} else {
		p.CategoryID = r.category(ctx, rw.Category, rw.Title)
	}

	if err := p.Validate(); err != nil {
		return transaction.CreateParams{}, err
	}

	return p, nil
}

func (r *resolver) account(ctx context.Context, name, currency string) (uuid.UUID, error) {
	if strings.TrimSpace(name) == "" {
		if r.defaultAccount == nil {
			return uuid.Nil, fmt.Errorf("missing account")
		}

		return *r.defaultAccount, nil
	}

	if a, ok := r.accounts[nameKey(name)]; ok {
		return a.ID, nil
	}

	params := account.CreateParams{
		Name:             name,
		IncludeInBalance: true,
	}
	if currency != "" {
		params.Currency = &currency
	}

	a, err := r.svc.accounts.Create(ctx, r.sess, params)
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating account %q: %w", name, err)
	}

	r.accounts[nameKey(name)] = a
	r.accountsCreated++

	return a.ID, nil
}

// category resolves a named category, creating it when allowed, and falls
// back to a learned suggestion for unnamed ones. Failures leave the row
// uncategorised.
func (r *resolver) category(ctx context.Context, name, title string) *uuid.UUID {
	if strings.TrimSpace(name) == "" {
		if r.svc.suggester == nil {
			return nil
		}

		id, err := r.svc.suggester.Suggest(ctx, title)
		if err != nil {
			slog.Warn("category suggestion failed", "title", title, "error", err)
			return nil
		}

		return id
	}

	if id, ok := r.categories[nameKey(name)]; ok {
		return &id
	}

	c, err := r.svc.categories.Create(ctx, r.sess, category.CreateParams{Name: name})
	if err != nil {
		slog.Warn("creating category failed", "category", name, "error", err)
		return nil
	}

	r.categories[nameKey(name)] = c.ID
	r.categoriesCreated++

	return &c.ID
}

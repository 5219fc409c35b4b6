package importer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/category"
	"github.com/MrJamesThe3rd/bucket/internal/export"
	"github.com/MrJamesThe3rd/bucket/internal/importer"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

type mocks struct {
	accounts     *importer.MockAccounts
	categories   *importer.MockCategories
	suggester    *importer.MockSuggester
	transactions *importer.MockTransactions
}

func newService(t *testing.T) (*importer.Service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		accounts:     importer.NewMockAccounts(ctrl),
		categories:   importer.NewMockCategories(ctrl),
		suggester:    importer.NewMockSuggester(ctrl),
		transactions: importer.NewMockTransactions(ctrl),
	}

	return importer.NewService(m.accounts, m.categories, m.suggester, m.transactions), m
}

func importAll(_ context.Context, params []transaction.CreateParams) (*transaction.ImportResult, error) {
	txs := make([]*transaction.Transaction, len(params))
	for i, p := range params {
		txs[i] = &transaction.Transaction{ID: uuid.New(), Type: p.Type, Amount: p.Amount, AccountID: p.AccountID}
	}

	return &transaction.ImportResult{Imported: txs}, nil
}

func TestService_Import_Generic(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)

	walletID := uuid.New()
	groceriesID := uuid.New()

	csv := "Data mov.;Descrição;Montante\n30-01-2026;LIDL LISBOA;-10,00\n31-01-2026;SALARIO;1.000,00\n"

	m.accounts.EXPECT().List(ctx).Return([]*account.Account{{ID: walletID, Name: "Wallet"}}, nil)
	m.categories.EXPECT().List(ctx).Return(nil, nil)
	m.suggester.EXPECT().Suggest(ctx, "LIDL LISBOA").Return(&groceriesID, nil)
	m.suggester.EXPECT().Suggest(ctx, "SALARIO").Return(nil, nil)

	var stored []transaction.CreateParams

	m.transactions.EXPECT().ImportBatch(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, params []transaction.CreateParams) (*transaction.ImportResult, error) {
			stored = params
			return importAll(ctx, params)
		})

	res, err := svc.Import(ctx, settings.Snapshot{BaseCurrency: "EUR"}, strings.NewReader(csv), importer.Options{
		Profile:   importer.ProfileGeneric,
		AccountID: &walletID,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.RowsFound)
	assert.Equal(t, 2, res.TransactionsImported)
	assert.Zero(t, res.AccountsImported)
	assert.Empty(t, res.FailedRows)

	require.Len(t, stored, 2)
	assert.Equal(t, walletID, stored[0].AccountID)
	assert.Equal(t, transaction.TypeExpense, stored[0].Type)
	assert.True(t, decimal.NewFromInt(10).Equal(stored[0].Amount))
	require.NotNil(t, stored[0].CategoryID)
	assert.Equal(t, groceriesID, *stored[0].CategoryID)
	assert.Nil(t, stored[1].CategoryID)
	assert.Equal(t, transaction.TypeIncome, stored[1].Type)
}

func TestService_Import_IvyCreatesAccountsAndCategories(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)
	sess := settings.Snapshot{BaseCurrency: "EUR", Premium: true}

	foodID := uuid.New()
	cashID := uuid.New()
	brokerID := uuid.New()
	travelID := uuid.New()

	csv := "Date,Title,Category,Account,Amount,Currency,Type,Transfer Amount,Transfer Currency,To Account,Receive Amount,Receive Currency,Description,Due Date,ID\n" +
		"2026-01-30 12:00:00,Coffee,food,Cash,3.50,EUR,EXPENSE,,,,,,,,\n" +
		"2026-01-30 13:00:00,Train,Travel,Cash,20.00,EUR,EXPENSE,,,,,,,,\n" +
		"2026-02-01 10:00:00,Savings,,Cash,,,TRANSFER,100.00,EUR,Broker,110.00,USD,,,\n"

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	m.accounts.EXPECT().List(ctx).Return(nil, nil)
	m.categories.EXPECT().List(ctx).Return([]*category.Category{{ID: foodID, Name: "Food"}}, nil)

	m.accounts.EXPECT().Create(ctx, sess, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ settings.Snapshot, p account.CreateParams) (*account.Account, error) {
			assert.Equal(t, "Cash", p.Name)
			require.NotNil(t, p.Currency)
			assert.Equal(t, "EUR", *p.Currency)

			return &account.Account{ID: cashID, Name: p.Name}, nil
		})
	m.categories.EXPECT().Create(ctx, sess, category.CreateParams{Name: "Travel"}).
		Return(&category.Category{ID: travelID, Name: "Travel"}, nil)
	m.accounts.EXPECT().Create(ctx, sess, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ settings.Snapshot, p account.CreateParams) (*account.Account, error) {
			assert.Equal(t, "Broker", p.Name)
			assert.Equal(t, "USD", *p.Currency)

			return &account.Account{ID: brokerID, Name: p.Name}, nil
		})

	var stored []transaction.CreateParams

	m.transactions.EXPECT().ImportBatch(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, params []transaction.CreateParams) (*transaction.ImportResult, error) {
			stored = params
			return importAll(ctx, params)
		})

	res, err := svc.Import(ctx, sess, bytes.NewReader(encoded), importer.Options{Profile: importer.ProfileIvy})
	require.NoError(t, err)

	assert.Equal(t, 3, res.RowsFound)
	assert.Equal(t, 3, res.TransactionsImported)
	assert.Equal(t, 2, res.AccountsImported)
	assert.Equal(t, 1, res.CategoriesImported)
	assert.Empty(t, res.FailedRows)

	require.Len(t, stored, 3)
	assert.Equal(t, cashID, stored[0].AccountID)
	assert.Equal(t, foodID, *stored[0].CategoryID)
	assert.Equal(t, travelID, *stored[1].CategoryID)

	transfer := stored[2]
	assert.Equal(t, transaction.TypeTransfer, transfer.Type)
	assert.Equal(t, cashID, transfer.AccountID)
	require.NotNil(t, transfer.ToAccountID)
	assert.Equal(t, brokerID, *transfer.ToAccountID)
	assert.True(t, decimal.NewFromInt(110).Equal(*transfer.ToAmount))
	assert.Nil(t, transfer.CategoryID)
}

func TestService_Import_ExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)
	sess := settings.Snapshot{BaseCurrency: "EUR"}

	cashID := uuid.New()
	foodID := uuid.New()
	when := time.Date(2026, 3, 4, 18, 30, 0, 0, time.UTC)

	var buf bytes.Buffer

	err := export.WriteCSV(&buf, []export.Item{{
		Transaction: &transaction.Transaction{
			ID:          uuid.New(),
			Type:        transaction.TypeExpense,
			Amount:      decimal.RequireFromString("12.40"),
			Title:       "Café da manhã",
			Description: "weekend",
			DateTime:    when,
		},
		Account:  "Cash",
		Currency: "EUR",
		Category: "Food",
	}})
	require.NoError(t, err)

	m.accounts.EXPECT().List(ctx).Return([]*account.Account{{ID: cashID, Name: "Cash"}}, nil)
	m.categories.EXPECT().List(ctx).Return([]*category.Category{{ID: foodID, Name: "Food"}}, nil)
	m.suggester.EXPECT().Suggest(ctx, gomock.Any()).Return(nil, nil).AnyTimes()

	var stored []transaction.CreateParams

	m.transactions.EXPECT().ImportBatch(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, params []transaction.CreateParams) (*transaction.ImportResult, error) {
			stored = params
			return importAll(ctx, params)
		})

	res, err := svc.Import(ctx, sess, &buf, importer.Options{Profile: importer.ProfileIvy})
	require.NoError(t, err)

	assert.Equal(t, 1, res.RowsFound)
	assert.Equal(t, 1, res.TransactionsImported)
	assert.Empty(t, res.FailedRows)

	require.Len(t, stored, 1)
	assert.Equal(t, transaction.TypeExpense, stored[0].Type)
	assert.Equal(t, "Café da manhã", stored[0].Title)
	assert.Equal(t, "weekend", stored[0].Description)
	assert.Equal(t, cashID, stored[0].AccountID)
	require.NotNil(t, stored[0].CategoryID)
	assert.Equal(t, foodID, *stored[0].CategoryID)
	assert.True(t, decimal.RequireFromString("12.40").Equal(stored[0].Amount))
	assert.True(t, when.Equal(stored[0].DateTime))
}

func TestService_Import_FailedRows(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)
	sess := settings.Snapshot{BaseCurrency: "EUR"}

	bankID := uuid.New()
	existingID := uuid.New()

	csv := "Date,Title,Amount,Account,Category,Description\n" +
		"2026-01-30,Rent,-500,Bank,,\n" +
		"2026-01-30,Gift,50,Savings,,\n" +
		"2026-01-31,Lunch,-12,,,\n" +
		"2026-02-01,Bonus,abc,Bank,,\n" +
		"2026-02-02,Refund,5,Bank,,\n"

	m.accounts.EXPECT().List(ctx).Return([]*account.Account{{ID: bankID, Name: "bank"}}, nil)
	m.categories.EXPECT().List(ctx).Return(nil, nil)
	m.accounts.EXPECT().Create(ctx, sess, gomock.Any()).Return(nil, account.ErrLimitReached)
	m.suggester.EXPECT().Suggest(ctx, gomock.Any()).Return(nil, nil).Times(2)

	m.transactions.EXPECT().ImportBatch(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, params []transaction.CreateParams) (*transaction.ImportResult, error) {
			require.Len(t, params, 2)

			return &transaction.ImportResult{
				New: []transaction.CreateParams{params[1]},
				Conflicts: []transaction.Conflict{{
					Incoming: params[0],
					Existing: &transaction.Transaction{ID: existingID},
				}},
			}, nil
		})
	m.transactions.EXPECT().CreateBatch(ctx, gomock.Len(1)).Return([]*transaction.Transaction{{ID: uuid.New()}}, nil)

	res, err := svc.Import(ctx, sess, strings.NewReader(csv), importer.Options{Profile: importer.ProfileGeneric})
	require.NoError(t, err)

	assert.Equal(t, 5, res.RowsFound)
	assert.Equal(t, 1, res.TransactionsImported)
	assert.Zero(t, res.AccountsImported)

	reasons := make(map[int]string, len(res.FailedRows))
	for _, f := range res.FailedRows {
		reasons[f.Line] = f.Reason
	}

	require.Len(t, reasons, 4)
	assert.Contains(t, reasons[2], existingID.String())
	assert.Contains(t, reasons[3], "limit")
	assert.Contains(t, reasons[4], "missing account")
	assert.Contains(t, reasons[5], "amount")
}

func TestService_Import_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownProfile", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Import(ctx, settings.Snapshot{}, strings.NewReader(""), importer.Options{Profile: "ofx"})
		assert.ErrorIs(t, err, importer.ErrUnknownProfile)
	})

	t.Run("UnreadableFile", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Import(ctx, settings.Snapshot{}, strings.NewReader("hello\nworld\n"), importer.Options{Profile: importer.ProfileGeneric})
		assert.Error(t, err)
	})

	t.Run("NothingToImport", func(t *testing.T) {
		svc, _ := newService(t)

		res, err := svc.Import(ctx, settings.Snapshot{}, strings.NewReader("Date,Title,Amount\n"), importer.Options{Profile: importer.ProfileGeneric})
		require.NoError(t, err)
		assert.Zero(t, res.RowsFound)
		assert.Empty(t, res.FailedRows)
	})
}

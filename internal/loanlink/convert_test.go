package loanlink_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bucket/internal/loan"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestComputeConvertedAmount(t *testing.T) {
	m := newMemory()
	usdAcc := m.addAccount("USD")
	eurAcc := m.addAccount("EUR")
	gbpAcc := m.addAccount("GBP")
	baseAcc := m.addAccount("")

	tests := []struct {
		name      string
		in        loan.Conversion
		fail      bool
		want      *decimal.Decimal
		wantCalls int32
	}{
		{
			name: "SameCurrencyIsNil",
			in: loan.Conversion{
				OldAccountID: &usdAcc, OldAmount: dec("10"), OldConvertedAmount: ptr(dec("99")),
				NewAccountID: &baseAcc, NewAmount: dec("10"), LoanAccountID: &usdAcc,
			},
		},
		{
			name: "AmountOnlyRescales",
			in: loan.Conversion{
				OldAccountID: &eurAcc, OldAmount: dec("10"), OldConvertedAmount: ptr(dec("20")),
				NewAccountID: &eurAcc, NewAmount: dec("15"), LoanAccountID: &usdAcc,
			},
			want: ptr(dec("30")),
		},
		{
			name: "UnchangedKeepsPrevious",
			in: loan.Conversion{
				OldAccountID: &eurAcc, OldAmount: dec("10"), OldConvertedAmount: ptr(dec("21")),
				NewAccountID: &eurAcc, NewAmount: dec("10"), LoanAccountID: &usdAcc,
			},
			want: ptr(dec("21")),
		},
		{
			name: "CurrencyChangeConvertsLive",
			in: loan.Conversion{
				OldAccountID: &eurAcc, OldAmount: dec("10"), OldConvertedAmount: ptr(dec("20")),
				NewAccountID: &gbpAcc, NewAmount: dec("10"), LoanAccountID: &usdAcc,
			},
			want:      ptr(dec("40")),
			wantCalls: 1,
		},
		{
			name: "NoPreviousConvertsLive",
			in: loan.Conversion{
				OldAccountID: &eurAcc, OldAmount: dec("10"),
				NewAccountID: &eurAcc, NewAmount: dec("10"), LoanAccountID: &usdAcc,
			},
			want:      ptr(dec("20")),
			wantCalls: 1,
		},
		{
			name: "ForcedConvertsLive",
			in: loan.Conversion{
				OldAccountID: &eurAcc, OldAmount: dec("10"), OldConvertedAmount: ptr(dec("1")),
				NewAccountID: &eurAcc, NewAmount: dec("10"), LoanAccountID: &gbpAcc, Force: true,
			},
			want:      ptr(dec("5")),
			wantCalls: 1,
		},
		{
			name: "FailedConversionIsNil",
			in: loan.Conversion{
				OldAccountID: &eurAcc, OldAmount: dec("10"),
				NewAccountID: &eurAcc, NewAmount: dec("10"), LoanAccountID: &usdAcc,
			},
			fail:      true,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := newConverter()
			conv.fail = tt.fail

			got, err := newLinker(m, conv).ComputeConvertedAmount(context.Background(), usd, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, conv.calls.Load())

			if tt.want == nil {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "got %s want %s", got, tt.want)
		})
	}
}

func seedLoanWithRecords(m *memory, loanAccount uuid.UUID, recordAccounts ...uuid.UUID) *loan.Loan {
	l := &loan.Loan{ID: uuid.New(), Name: "Flat", Amount: dec("1000"), Type: loan.TypeLend, AccountID: &loanAccount}
	m.loans[l.ID] = l

	for i, acc := range recordAccounts {
		r := &loan.Record{
			ID:              uuid.New(),
			LoanID:          l.ID,
			Amount:          decimal.NewFromInt(int64(10 * (i + 1))),
			ConvertedAmount: ptr(dec("1")),
			AccountID:       &acc,
			DateTime:        time.Now(),
		}
		m.records[r.ID] = r
	}

	return l
}

func TestRecalculateLoanRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("SameCurrencySkipped", func(t *testing.T) {
		m := newMemory()
		usdA, usdB, eur := m.addAccount("USD"), m.addAccount("USD"), m.addAccount("EUR")
		l := seedLoanWithRecords(m, usdA, eur, eur)
		conv := newConverter()

		require.NoError(t, newLinker(m, conv).RecalculateLoanRecords(ctx, usd, &usdA, &usdB, l.ID))
		assert.Zero(t, conv.calls.Load())
		assert.Zero(t, m.saveRecordsCalls)
	})

	t.Run("SameAccountSkipped", func(t *testing.T) {
		m := newMemory()
		usdA, eur := m.addAccount("USD"), m.addAccount("EUR")
		l := seedLoanWithRecords(m, usdA, eur)
		conv := newConverter()

		require.NoError(t, newLinker(m, conv).RecalculateLoanRecords(ctx, usd, &usdA, &usdA, l.ID))
		assert.Zero(t, m.saveRecordsCalls)
	})

	t.Run("CurrencyChangeRecomputesAll", func(t *testing.T) {
		m := newMemory()
		usdA, gbp, eur := m.addAccount("USD"), m.addAccount("GBP"), m.addAccount("EUR")
		l := seedLoanWithRecords(m, usdA, eur, eur, gbp)
		conv := newConverter()

		require.NoError(t, newLinker(m, conv).RecalculateLoanRecords(ctx, usd, &usdA, &gbp, l.ID))

		assert.Equal(t, int32(2), conv.calls.Load(), "GBP record needs no conversion")
		assert.Equal(t, 1, m.saveRecordsCalls)

		records, err := m.ListRecords(ctx, l.ID)
		require.NoError(t, err)

		for _, r := range records {
			if *r.AccountID == gbp {
				assert.Nil(t, r.ConvertedAmount)
				continue
			}

			require.NotNil(t, r.ConvertedAmount)
			assert.True(t, r.ConvertedAmount.Equal(r.Amount.Div(dec("2"))), "EUR→GBP is half")
		}
	})
}

func TestAccountCurrencyChanged(t *testing.T) {
	ctx := context.Background()
	m := newMemory()
	usdA, eur, other := m.addAccount("USD"), m.addAccount("EUR"), m.addAccount("USD")

	held := seedLoanWithRecords(m, usdA, eur)
	paidFrom := seedLoanWithRecords(m, other, eur, other)
	untouched := seedLoanWithRecords(m, other, other)

	conv := newConverter()
	require.NoError(t, newLinker(m, conv).AccountCurrencyChanged(ctx, usd, eur))

	assert.Equal(t, int32(2), conv.calls.Load())
	assert.Equal(t, 2, m.saveRecordsCalls)

	for _, id := range []uuid.UUID{held.ID, paidFrom.ID} {
		records, err := m.ListRecords(ctx, id)
		require.NoError(t, err)

		for _, r := range records {
			if *r.AccountID == eur {
				require.NotNil(t, r.ConvertedAmount)
				assert.True(t, r.ConvertedAmount.Equal(r.Amount.Mul(dec("2"))))
			}
		}
	}

	records, err := m.ListRecords(ctx, untouched.ID)
	require.NoError(t, err)

	for _, r := range records {
		assert.True(t, r.ConvertedAmount.Equal(dec("1")))
	}
}

func TestUpdateAssociatedLoanData(t *testing.T) {
	ctx := context.Background()

	t.Run("Principal", func(t *testing.T) {
		m := newMemory()
		usdA, gbp, eur := m.addAccount("USD"), m.addAccount("GBP"), m.addAccount("EUR")
		l := seedLoanWithRecords(m, usdA, eur)
		conv := newConverter()

		tx := &transaction.Transaction{
			ID: uuid.New(), Type: transaction.TypeIncome, Amount: dec("1200"),
			AccountID: gbp, Title: "Flat deposit", LoanID: &l.ID,
		}

		require.NoError(t, newLinker(m, conv).UpdateAssociatedLoanData(ctx, usd, tx, true))

		got, err := m.GetLoan(ctx, l.ID)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(dec("1200")))
		assert.Equal(t, "Flat deposit", got.Name)
		assert.Equal(t, loan.TypeBorrow, got.Type)
		assert.Equal(t, gbp, *got.AccountID)
		assert.Equal(t, 1, m.saveRecordsCalls)
		assert.Equal(t, int32(1), conv.calls.Load())
	})

	t.Run("PrincipalKeepsNameOnEmptyTitle", func(t *testing.T) {
		m := newMemory()
		usdA := m.addAccount("USD")
		l := seedLoanWithRecords(m, usdA)

		tx := &transaction.Transaction{
			ID: uuid.New(), Type: transaction.TypeExpense, Amount: dec("5"), AccountID: usdA, LoanID: &l.ID,
		}

		require.NoError(t, newLinker(m, newConverter()).UpdateAssociatedLoanData(ctx, usd, tx, false))

		got, err := m.GetLoan(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "Flat", got.Name)
		assert.Equal(t, loan.TypeLend, got.Type)
	})

	t.Run("Record", func(t *testing.T) {
		m := newMemory()
		usdA, eur := m.addAccount("USD"), m.addAccount("EUR")
		l := seedLoanWithRecords(m, usdA)

		r := &loan.Record{ID: uuid.New(), LoanID: l.ID, Amount: dec("10"), ConvertedAmount: ptr(dec("20")), AccountID: &eur}
		m.records[r.ID] = r

		when := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
		tx := &transaction.Transaction{
			ID: uuid.New(), Type: transaction.TypeIncome, Amount: dec("15"), AccountID: eur,
			Title: "June", DateTime: when, LoanID: &l.ID, LoanRecordID: &r.ID,
		}

		conv := newConverter()
		require.NoError(t, newLinker(m, conv).UpdateAssociatedLoanData(ctx, usd, tx, false))

		got, err := m.GetRecord(ctx, r.ID)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(dec("15")))
		assert.Equal(t, "June", got.Note)
		assert.Equal(t, when, got.DateTime)
		require.NotNil(t, got.ConvertedAmount)
		assert.True(t, got.ConvertedAmount.Equal(dec("30")))
		assert.Zero(t, conv.calls.Load(), "amount-only edit rescales")
	})

	t.Run("PlainTransactionIgnored", func(t *testing.T) {
		m := newMemory()
		tx := &transaction.Transaction{ID: uuid.New(), Type: transaction.TypeExpense, Amount: dec("1")}

		require.NoError(t, newLinker(m, newConverter()).UpdateAssociatedLoanData(ctx, usd, tx, true))
		assert.Empty(t, m.loans)
	})
}

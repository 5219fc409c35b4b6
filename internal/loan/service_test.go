package loan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/bucket/internal/loan"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

type mocks struct {
	loans   *loan.MockRepository
	records *loan.MockRecordRepository
	linker  *loan.MockLinker
}

func newService(t *testing.T) (*loan.Service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		loans:   loan.NewMockRepository(ctrl),
		records: loan.NewMockRecordRepository(ctrl),
		linker:  loan.NewMockLinker(ctrl),
	}

	return loan.NewService(m.loans, m.records, m.linker), m
}

func TestService_Create(t *testing.T) {
	accountID := uuid.New()
	params := loan.CreateParams{
		Name:              "Car",
		Amount:            decimal.NewFromInt(100),
		Type:              loan.TypeBorrow,
		AccountID:         &accountID,
		CreateTransaction: true,
	}

	tests := []struct {
		name      string
		sess      settings.Snapshot
		existing  int
		params    loan.CreateParams
		wantErr   error
		wantSaved bool
	}{
		{
			name:      "Success",
			existing:  1,
			params:    params,
			wantSaved: true,
		},
		{
			name:     "FreeLimitReached",
			existing: loan.FreeLimit,
			params:   params,
			wantErr:  loan.ErrLimitReached,
		},
		{
			name:      "PremiumIgnoresLimit",
			sess:      settings.Snapshot{Premium: true},
			existing:  loan.FreeLimit + 3,
			params:    params,
			wantSaved: true,
		},
		{
			name:    "UnknownType",
			params:  loan.CreateParams{Name: "x", Amount: decimal.NewFromInt(1), Type: "GIFT"},
			wantErr: loan.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)

			if tt.params.Type.Valid() {
				m.loans.EXPECT().ListLoans(gomock.Any()).Return(make([]*loan.Loan, tt.existing), nil)
			}

			if tt.wantSaved {
				m.loans.EXPECT().SaveLoan(gomock.Any(), gomock.Any()).Return(nil)
				m.linker.EXPECT().
					CreateLoanTransaction(gomock.Any(), tt.sess, gomock.Any(), true).
					Return(nil)
			}

			got, err := svc.Create(context.Background(), tt.sess, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Car", got.Name)
			assert.Equal(t, &accountID, got.AccountID)
		})
	}
}

func TestService_Update(t *testing.T) {
	svc, m := newService(t)
	sess := settings.Snapshot{BaseCurrency: "USD"}

	oldAccount, newAccount := uuid.New(), uuid.New()
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	old := &loan.Loan{ID: uuid.New(), Name: "Car", Amount: decimal.NewFromInt(100), Type: loan.TypeBorrow, AccountID: &oldAccount, CreatedAt: created}
	updated := &loan.Loan{ID: old.ID, Name: "Car", Amount: decimal.NewFromInt(150), Type: loan.TypeBorrow, AccountID: &newAccount}

	gomock.InOrder(
		m.loans.EXPECT().GetLoan(gomock.Any(), old.ID).Return(old, nil),
		m.loans.EXPECT().SaveLoan(gomock.Any(), updated).Return(nil),
		m.linker.EXPECT().RecalculateLoanRecords(gomock.Any(), sess, &oldAccount, &newAccount, old.ID).Return(nil),
		m.linker.EXPECT().EditLoanTransaction(gomock.Any(), sess, updated, true).Return(nil),
	)

	require.NoError(t, svc.Update(context.Background(), sess, updated, true))
	assert.Equal(t, created, updated.CreatedAt)
}

func TestService_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, m := newService(t)
		id := uuid.New()

		gomock.InOrder(
			m.loans.EXPECT().GetLoan(gomock.Any(), id).Return(&loan.Loan{ID: id}, nil),
			m.linker.EXPECT().DeleteLoanTransactions(gomock.Any(), id).Return(nil),
			m.loans.EXPECT().DeleteLoan(gomock.Any(), id).Return(nil),
		)

		require.NoError(t, svc.Delete(context.Background(), id))
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, m := newService(t)
		id := uuid.New()

		m.loans.EXPECT().GetLoan(gomock.Any(), id).Return(nil, loan.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(context.Background(), id), loan.ErrNotFound)
	})

	t.Run("LinkerFailureKeepsLoan", func(t *testing.T) {
		svc, m := newService(t)
		id := uuid.New()

		m.loans.EXPECT().GetLoan(gomock.Any(), id).Return(&loan.Loan{ID: id}, nil)
		m.linker.EXPECT().DeleteLoanTransactions(gomock.Any(), id).Return(errors.New("db error"))

		assert.Error(t, svc.Delete(context.Background(), id))
	})
}

func TestService_Get(t *testing.T) {
	svc, m := newService(t)

	l := &loan.Loan{ID: uuid.New(), Amount: decimal.NewFromInt(100)}
	converted := decimal.NewFromInt(30)
	records := []*loan.Record{
		{Amount: decimal.NewFromInt(20)},
		{Amount: decimal.NewFromInt(25), ConvertedAmount: &converted},
	}

	m.loans.EXPECT().GetLoan(gomock.Any(), l.ID).Return(l, nil)
	m.records.EXPECT().ListRecords(gomock.Any(), l.ID).Return(records, nil)

	got, err := svc.Get(context.Background(), l.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.Equal(decimal.NewFromInt(50)), got.AmountPaid.String())
	assert.True(t, got.Remaining.Equal(decimal.NewFromInt(50)), got.Remaining.String())
}

func TestService_CreateRecord(t *testing.T) {
	svc, m := newService(t)
	sess := settings.Snapshot{BaseCurrency: "USD"}

	loanAccount, recordAccount := uuid.New(), uuid.New()
	l := &loan.Loan{ID: uuid.New(), AccountID: &loanAccount, Type: loan.TypeLend}
	converted := decimal.NewFromInt(11)
	when := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	m.loans.EXPECT().GetLoan(gomock.Any(), l.ID).Return(l, nil)
	m.linker.EXPECT().
		ComputeConvertedAmount(gomock.Any(), sess, loan.Conversion{
			OldAccountID:  &recordAccount,
			OldAmount:     decimal.NewFromInt(10),
			NewAccountID:  &recordAccount,
			NewAmount:     decimal.NewFromInt(10),
			LoanAccountID: &loanAccount,
		}).
		Return(&converted, nil)
	m.records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(nil)
	m.linker.EXPECT().CreateRecordTransaction(gomock.Any(), sess, l, gomock.Any(), false).Return(nil)

	r, err := svc.CreateRecord(context.Background(), sess, l.ID, loan.RecordParams{
		Amount:    decimal.NewFromInt(10),
		AccountID: &recordAccount,
		Note:      " first ",
		DateTime:  when,
	})
	require.NoError(t, err)
	assert.Equal(t, l.ID, r.LoanID)
	assert.Equal(t, "first", r.Note)
	assert.Equal(t, &converted, r.ConvertedAmount)
	assert.Equal(t, when, r.DateTime)
}

func TestService_UpdateRecord(t *testing.T) {
	svc, m := newService(t)
	sess := settings.Snapshot{BaseCurrency: "USD"}

	loanAccount, recordAccount := uuid.New(), uuid.New()
	l := &loan.Loan{ID: uuid.New(), AccountID: &loanAccount}
	oldConverted := decimal.NewFromInt(20)
	old := &loan.Record{ID: uuid.New(), LoanID: l.ID, Amount: decimal.NewFromInt(10), ConvertedAmount: &oldConverted, AccountID: &recordAccount}
	edited := &loan.Record{ID: old.ID, Amount: decimal.NewFromInt(15), AccountID: &recordAccount}
	rescaled := decimal.NewFromInt(30)

	m.records.EXPECT().GetRecord(gomock.Any(), old.ID).Return(old, nil)
	m.loans.EXPECT().GetLoan(gomock.Any(), l.ID).Return(l, nil)
	m.linker.EXPECT().
		ComputeConvertedAmount(gomock.Any(), sess, loan.Conversion{
			OldAccountID:       &recordAccount,
			OldConvertedAmount: &oldConverted,
			OldAmount:          decimal.NewFromInt(10),
			NewAccountID:       &recordAccount,
			NewAmount:          decimal.NewFromInt(15),
			LoanAccountID:      &loanAccount,
		}).
		Return(&rescaled, nil)
	m.records.EXPECT().SaveRecord(gomock.Any(), edited).Return(nil)
	m.linker.EXPECT().EditRecordTransaction(gomock.Any(), sess, l, edited, true).Return(nil)

	require.NoError(t, svc.UpdateRecord(context.Background(), sess, edited, true))
	assert.Equal(t, l.ID, edited.LoanID)
	assert.Equal(t, &rescaled, edited.ConvertedAmount)
}

func TestService_DeleteRecord(t *testing.T) {
	svc, m := newService(t)
	id := uuid.New()

	gomock.InOrder(
		m.records.EXPECT().GetRecord(gomock.Any(), id).Return(&loan.Record{ID: id}, nil),
		m.linker.EXPECT().DeleteRecordTransaction(gomock.Any(), id).Return(nil),
		m.records.EXPECT().DeleteRecord(gomock.Any(), id).Return(nil),
	)

	require.NoError(t, svc.DeleteRecord(context.Background(), id))
}

package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/loan"
)

type loanResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Type      loan.Type       `json:"type"`
	AccountID *uuid.UUID      `json:"account_id,omitempty"`
	Color     int32           `json:"color"`
	Icon      string          `json:"icon,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type recordResponse struct {
	ID              uuid.UUID        `json:"id"`
	LoanID          uuid.UUID        `json:"loan_id"`
	Amount          decimal.Decimal  `json:"amount"`
	ConvertedAmount *decimal.Decimal `json:"converted_amount,omitempty"`
	AccountID       *uuid.UUID       `json:"account_id,omitempty"`
	Note            string           `json:"note,omitempty"`
	DateTime        time.Time        `json:"date_time"`
}

type detailsResponse struct {
	Loan       loanResponse     `json:"loan"`
	Records    []recordResponse `json:"records"`
	AmountPaid decimal.Decimal  `json:"amount_paid"`
	Remaining  decimal.Decimal  `json:"remaining"`
}

func toLoanResponse(l *loan.Loan) loanResponse {
	return loanResponse{
		ID:        l.ID,
		Name:      l.Name,
		Amount:    l.Amount,
		Type:      l.Type,
		AccountID: l.AccountID,
		Color:     l.Color,
		Icon:      l.Icon,
		CreatedAt: l.CreatedAt,
	}
}

func toRecordResponse(r *loan.Record) recordResponse {
	return recordResponse{
		ID:              r.ID,
		LoanID:          r.LoanID,
		Amount:          r.Amount,
		ConvertedAmount: r.ConvertedAmount,
		AccountID:       r.AccountID,
		Note:            r.Note,
		DateTime:        r.DateTime,
	}
}

func toDetailsResponse(d *loan.Details) detailsResponse {
	records := make([]recordResponse, 0, len(d.Records))
	for _, r := range d.Records {
		records = append(records, toRecordResponse(r))
	}

	return detailsResponse{
		Loan:       toLoanResponse(d.Loan),
		Records:    records,
		AmountPaid: d.AmountPaid,
		Remaining:  d.Remaining,
	}
}

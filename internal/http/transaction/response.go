package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

// Response is the JSON form of a transaction, shared by the wallet history.
type Response struct {
	ID           uuid.UUID        `json:"id"`
	Type         transaction.Type `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	AccountID    uuid.UUID        `json:"account_id"`
	ToAccountID  *uuid.UUID       `json:"to_account_id,omitempty"`
	ToAmount     *decimal.Decimal `json:"to_amount,omitempty"`
	CategoryID   *uuid.UUID       `json:"category_id,omitempty"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	DateTime     time.Time        `json:"date_time"`
	LoanID       *uuid.UUID       `json:"loan_id,omitempty"`
	LoanRecordID *uuid.UUID       `json:"loan_record_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty"`
}

func ToResponse(tx *transaction.Transaction) Response {
	return Response{
		ID:           tx.ID,
		Type:         tx.Type,
		Amount:       tx.Amount,
		AccountID:    tx.AccountID,
		ToAccountID:  tx.ToAccountID,
		ToAmount:     tx.ToAmount,
		CategoryID:   tx.CategoryID,
		Title:        tx.Title,
		Description:  tx.Description,
		DateTime:     tx.DateTime,
		LoanID:       tx.LoanID,
		LoanRecordID: tx.LoanRecordID,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
}

func ToResponseList(txs []*transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}

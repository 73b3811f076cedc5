package domain

import (
	"time"

	"github.com/google/uuid"
)

// Direction tells whether a ledger entry takes money from or gives money to the account.
type Direction string

// Ledger entry directions.
const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// LedgerEntry holds balance change data for an account caused by a payment.
type LedgerEntry struct {
	ID           uuid.UUID `json:"id"`
	AccountID    uuid.UUID `json:"account_id"`
	PaymentID    uuid.UUID `json:"payment_id"`
	Direction    Direction `json:"direction"`
	Amount       int64     `json:"amount"` // always positive
	BalanceAfter int64     `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

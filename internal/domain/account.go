package domain

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = &Error{KindAccountNotFound, "account not found"}
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = &Error{KindOwnerNotFound, "owner not found"}
	// ErrAccountInactive indicates that one of the transfer accounts is not active.
	ErrAccountInactive = &Error{KindAccountInactive, "account inactive"}
	// ErrWouldGoNegative indicates that a balance change would leave the account below zero.
	ErrWouldGoNegative = &Error{KindWouldGoNegative, "balance would go negative"}
	// ErrBalanceOverflow indicates that a credit would exceed the largest representable balance.
	ErrBalanceOverflow = &Error{KindBalanceOverflow, "balance overflow"}
)

// AccountStatus is the lifecycle status of an account.
type AccountStatus string

// Account statuses.
const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// Account holds user balance data for specific currency.
//
// Balance is an amount of minor units of Currency and is never negative.
type Account struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Currency  string        `json:"currency"`
	Balance   int64         `json:"balance"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// IsActive reports whether the account may take part in transfers.
func (a Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	UserID   uuid.UUID
	Currency string
	Balance  int64
}

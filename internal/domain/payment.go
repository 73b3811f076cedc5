package domain

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ErrPaymentNotFound indicates that the payment is not found.
	ErrPaymentNotFound = &Error{KindPaymentNotFound, "payment not found"}
	// ErrSameAccountTransfer indicates that sender and receiver are the same account.
	ErrSameAccountTransfer = &Error{KindSameAccountTransfer, "same account transfer"}
	// ErrInvalidAmount indicates that the transfer amount is not positive.
	ErrInvalidAmount = &Error{KindInvalidAmount, "invalid amount"}
	// ErrCurrencyMismatch indicates that an account currency differs from the transfer currency.
	ErrCurrencyMismatch = &Error{KindCurrencyMismatch, "currency mismatch"}
	// ErrInsufficientFunds indicates that the sender balance is lower than the amount.
	ErrInsufficientFunds = &Error{KindInsufficientFunds, "insufficient funds"}
	// ErrDuplicatePayment indicates that a payment with the same sender and idempotency key
	// already exists.
	ErrDuplicatePayment = &Error{KindDuplicatePayment, "duplicate payment"}
)

// PaymentStatus is the status of a payment. Only terminal statuses are stored.
type PaymentStatus string

// PaymentStatusCompleted is the only status a stored payment can have.
const PaymentStatusCompleted PaymentStatus = "completed"

// Payment holds money movement data between two accounts.
type Payment struct {
	ID                uuid.UUID     `json:"id"`
	SenderAccountID   uuid.UUID     `json:"sender_account_id"`
	ReceiverAccountID uuid.UUID     `json:"receiver_account_id"`
	Amount            int64         `json:"amount"` // must be positive
	Currency          string        `json:"currency"`
	Status            PaymentStatus `json:"status"`
	IdempotencyKey    string        `json:"idempotency_key"`
	CreatedAt         time.Time     `json:"created_at"`
}

// TransferParams is the input data for the transfer transaction.
type TransferParams struct {
	SenderAccountID   uuid.UUID
	ReceiverAccountID uuid.UUID
	Amount            int64
	Currency          string
	IdempotencyKey    string
}

// TransferResult is the result of the transfer transaction.
//
// Replayed is set when the payment was created by an earlier call with the same
// sender and idempotency key.
type TransferResult struct {
	Payment  Payment
	Replayed bool
}

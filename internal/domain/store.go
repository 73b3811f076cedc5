package domain

import (
	"context"

	"github.com/google/uuid"
)

// TransferTx is the set of store operations available inside one transfer
// unit of work. All calls share a single database transaction.
type TransferTx interface {
	// GetPaymentByIdempotencyKey returns ErrPaymentNotFound when no payment was
	// recorded for the sender under the key.
	GetPaymentByIdempotencyKey(ctx context.Context, senderID uuid.UUID, key string) (Payment, error)
	// GetAccountForUpdate reads the account and locks its row until the transaction ends.
	GetAccountForUpdate(ctx context.Context, id uuid.UUID) (Account, error)
	// AddBalance adds a signed delta to the balance and returns the new balance.
	AddBalance(ctx context.Context, id uuid.UUID, delta int64) (int64, error)
	// CreatePayment returns ErrDuplicatePayment on a sender/key conflict.
	CreatePayment(ctx context.Context, p Payment) (Payment, error)
	AppendLedgerEntries(ctx context.Context, entries []LedgerEntry) error
}

package domain

import (
	"errors"

	"github.com/go-petr/p2p-ledger/pkg/dbpkg"
	"github.com/go-petr/p2p-ledger/pkg/errorspkg"
)

// Kind classifies domain failures. The set is closed: the transport layer
// switches over every value.
type Kind uint8

// Failure kinds.
const (
	KindUnknown Kind = iota
	KindNotFound
	KindAccountNotFound
	KindPaymentNotFound
	KindUserNotFound
	KindOwnerNotFound
	KindDuplicateEmail
	KindSameAccountTransfer
	KindInvalidAmount
	KindAccountInactive
	KindCurrencyMismatch
	KindInsufficientFunds
	KindWouldGoNegative
	KindBalanceOverflow
	KindDuplicatePayment
	KindStoreUnavailable
)

var kindNames = [...]string{
	KindUnknown:             "unknown",
	KindNotFound:            "not_found",
	KindAccountNotFound:     "account_not_found",
	KindPaymentNotFound:     "payment_not_found",
	KindUserNotFound:        "user_not_found",
	KindOwnerNotFound:       "owner_not_found",
	KindDuplicateEmail:      "duplicate_email",
	KindSameAccountTransfer: "same_account_transfer",
	KindInvalidAmount:       "invalid_amount",
	KindAccountInactive:     "account_inactive",
	KindCurrencyMismatch:    "currency_mismatch",
	KindInsufficientFunds:   "insufficient_funds",
	KindWouldGoNegative:     "would_go_negative",
	KindBalanceOverflow:     "balance_overflow",
	KindDuplicatePayment:    "duplicate_payment",
	KindStoreUnavailable:    "store_unavailable",
}

// String returns the snake case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return kindNames[KindUnknown]
}

// Error is a domain failure of a specific Kind.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

// KindOf returns the Kind of the first domain Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

var (
	// ErrNotFound indicates that the requested entity is not found.
	ErrNotFound = &Error{KindNotFound, "not found"}
	// ErrStoreUnavailable indicates a transient storage failure; the request is safe to retry
	// with the same idempotency key.
	ErrStoreUnavailable = &Error{KindStoreUnavailable, "store unavailable"}
)

// storeUnavailableError keeps the storage cause for logs while classifying as
// ErrStoreUnavailable.
type storeUnavailableError struct {
	cause error
}

func (e storeUnavailableError) Error() string {
	return ErrStoreUnavailable.msg + ": " + e.cause.Error()
}

func (e storeUnavailableError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.cause}
}

// StoreUnavailable wraps a transient storage failure.
func StoreUnavailable(cause error) error {
	if cause == nil {
		return ErrStoreUnavailable
	}

	return storeUnavailableError{cause: cause}
}

// StoreError classifies an unexpected storage error. Transient failures become
// StoreUnavailable, anything else errorspkg.ErrInternal.
func StoreError(err error) error {
	if dbpkg.IsTransient(err) {
		return StoreUnavailable(err)
	}

	return errorspkg.ErrInternal
}

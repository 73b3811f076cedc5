// Package paymentrepo manages repository layer of payments.
//
// The payments table doubles as the idempotency index: the unique constraint on
// (sender_account_id, idempotency_key) is the only deduplication mechanism.
package paymentrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/pkg/dbpkg"
)

// RepoPGS facilitates payment repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns payment RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const idempotencyConstraint = "payments_sender_account_id_idempotency_key_key"

const createQuery = `
INSERT INTO
    payments (id, sender_account_id, receiver_account_id, amount, currency, status, idempotency_key, created_at)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, sender_account_id, receiver_account_id, amount, currency, status, idempotency_key, created_at
`

// Create creates the payment and then returns it.
//
// A payment already recorded for the same sender and idempotency key is reported
// as domain.ErrDuplicatePayment.
func (r *RepoPGS) Create(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		p.ID,
		p.SenderAccountID,
		p.ReceiverAccountID,
		p.Amount,
		p.Currency,
		p.Status,
		p.IdempotencyKey,
		p.CreatedAt,
	)

	got, err := scanPayment(row)
	if err != nil {
		if constraint, ok := dbpkg.ConstraintViolation(err, dbpkg.CodeUniqueViolation); ok && constraint == idempotencyConstraint {
			l.Info().Err(err).Stringer("sender_account_id", p.SenderAccountID).Str("idempotency_key", p.IdempotencyKey).Send()
			return domain.Payment{}, domain.ErrDuplicatePayment
		}

		l.Error().Err(err).Msgf("Create(ctx, %+v)", p)

		if _, ok := dbpkg.ConstraintViolation(err, dbpkg.CodeForeignKeyViolation); ok {
			return domain.Payment{}, domain.ErrAccountNotFound
		}

		return domain.Payment{}, domain.StoreError(err)
	}

	return got, nil
}

const selectPayment = `
SELECT 
	id, sender_account_id, receiver_account_id, amount, currency, status, idempotency_key, created_at 
FROM payments
`

const getQuery = selectPayment + `WHERE id = $1
`

// Get returns the payment with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Payment, error) {
	return r.get(ctx, getQuery, id)
}

const getByIdempotencyKeyQuery = selectPayment + `WHERE sender_account_id = $1 AND idempotency_key = $2
`

// GetByIdempotencyKey returns the payment recorded for the sender under the key.
func (r *RepoPGS) GetByIdempotencyKey(ctx context.Context, senderID uuid.UUID, key string) (domain.Payment, error) {
	return r.get(ctx, getByIdempotencyKeyQuery, senderID, key)
}

func (r *RepoPGS) get(ctx context.Context, query string, args ...interface{}) (domain.Payment, error) {
	l := zerolog.Ctx(ctx)

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Payment{}, domain.ErrPaymentNotFound
		}

		l.Error().Err(err).Send()

		return domain.Payment{}, domain.StoreError(err)
	}

	return p, nil
}

func scanPayment(row *sql.Row) (domain.Payment, error) {
	var p domain.Payment

	err := row.Scan(
		&p.ID,
		&p.SenderAccountID,
		&p.ReceiverAccountID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.IdempotencyKey,
		&p.CreatedAt,
	)

	return p, err
}

// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/pkg/dbpkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const (
	userFKConstraint       = "accounts_user_id_fkey"
	balanceCheckConstraint = "accounts_balance_check"
)

const createQuery = `
INSERT INTO 
    accounts (id, user_id, currency, balance, status)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, user_id, currency, balance, status, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		uuid.New(),
		arg.UserID,
		arg.Currency,
		arg.Balance,
		domain.AccountStatusActive,
	)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if constraint, ok := dbpkg.ConstraintViolation(err, dbpkg.CodeForeignKeyViolation); ok && constraint == userFKConstraint {
			return domain.Account{}, domain.ErrOwnerNotFound
		}

		if constraint, ok := dbpkg.ConstraintViolation(err, dbpkg.CodeCheckViolation); ok && constraint == balanceCheckConstraint {
			return domain.Account{}, domain.ErrWouldGoNegative
		}

		return domain.Account{}, domain.StoreError(err)
	}

	return a, nil
}

const getQuery = `
SELECT 
	id, user_id, currency, balance, status, created_at 
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	return r.get(ctx, getQuery, id)
}

const getForUpdateQuery = getQuery + `FOR UPDATE
`

// GetForUpdate returns the account with the given id and locks its row
// until the surrounding transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	return r.get(ctx, getForUpdateQuery, id)
}

func (r *RepoPGS) get(ctx context.Context, query string, id uuid.UUID) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Err(err).Stringer("account_id", id).Send()
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, domain.StoreError(err)
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING balance
`

// AddBalance changes the account's balance by the signed delta and returns the new balance.
//
// It must run inside the caller's transaction.
func (r *RepoPGS) AddBalance(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	l := zerolog.Ctx(ctx)

	var balance int64

	err := r.db.QueryRowContext(ctx, addBalanceQuery, delta, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Err(err).Stringer("account_id", id).Send()
			return 0, domain.ErrAccountNotFound
		}

		if constraint, ok := dbpkg.ConstraintViolation(err, dbpkg.CodeCheckViolation); ok && constraint == balanceCheckConstraint {
			l.Warn().Err(err).Stringer("account_id", id).Int64("delta", delta).Send()
			return 0, domain.ErrWouldGoNegative
		}

		if pgErr, ok := dbpkg.AsPGError(err); ok && pgErr.Code == dbpkg.CodeNumericOutOfRange {
			l.Warn().Err(err).Stringer("account_id", id).Int64("delta", delta).Send()
			return 0, domain.ErrBalanceOverflow
		}

		l.Error().Err(err).Send()

		return 0, domain.StoreError(err)
	}

	return balance, nil
}

const updateStatusQuery = `
UPDATE accounts
SET status = $1
WHERE id = $2
RETURNING id, user_id, currency, balance, status, created_at
`

// UpdateStatus sets the account lifecycle status and returns the changed account.
func (r *RepoPGS) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, updateStatusQuery, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Err(err).Stringer("account_id", id).Send()
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, domain.StoreError(err)
	}

	return a, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Currency,
		&a.Balance,
		&a.Status,
		&a.CreatedAt,
	)

	return a, err
}

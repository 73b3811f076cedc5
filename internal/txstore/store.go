// Package txstore runs transfer units of work inside a single database transaction.
package txstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/internal/accountrepo"
	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/internal/ledgerrepo"
	"github.com/go-petr/p2p-ledger/internal/paymentrepo"
)

// Store provides all functions to execute transfer transactions.
type Store struct {
	conn *sql.DB
	opts *sql.TxOptions
}

// New returns Store that begins READ COMMITTED transactions on conn.
//
// Row locks taken with GetAccountForUpdate serialize transfers that share an account.
func New(conn *sql.DB) *Store {
	return &Store{
		conn: conn,
		opts: &sql.TxOptions{Isolation: sql.LevelReadCommitted},
	}
}

// ExecTx executes fn within a database transaction.
//
// The transaction is committed when fn returns nil and rolled back otherwise.
// Failures to begin or commit are reported as domain.ErrStoreUnavailable.
func (s *Store) ExecTx(ctx context.Context, fn func(tx domain.TransferTx) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := s.conn.BeginTx(ctx, s.opts)
	if err != nil {
		l.Error().Err(err).Msg("begin transaction")
		return domain.StoreUnavailable(err)
	}

	if err := fn(newQueries(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			l.Error().Err(rbErr).Msg("rollback transaction")
			return fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Msg("commit transaction")
		return domain.StoreUnavailable(err)
	}

	return nil
}

// queries binds the account, payment and ledger repositories to one transaction.
type queries struct {
	accounts *accountrepo.RepoPGS
	payments *paymentrepo.RepoPGS
	ledger   *ledgerrepo.RepoPGS
}

func newQueries(tx *sql.Tx) *queries {
	return &queries{
		accounts: accountrepo.NewRepoPGS(tx),
		payments: paymentrepo.NewRepoPGS(tx),
		ledger:   ledgerrepo.NewRepoPGS(tx),
	}
}

func (q *queries) GetPaymentByIdempotencyKey(ctx context.Context, senderID uuid.UUID, key string) (domain.Payment, error) {
	return q.payments.GetByIdempotencyKey(ctx, senderID, key)
}

func (q *queries) GetAccountForUpdate(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	return q.accounts.GetForUpdate(ctx, id)
}

func (q *queries) AddBalance(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	return q.accounts.AddBalance(ctx, id, delta)
}

func (q *queries) CreatePayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	return q.payments.Create(ctx, p)
}

func (q *queries) AppendLedgerEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	return q.ledger.Append(ctx, entries)
}

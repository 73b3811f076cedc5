// Package paymentservice manages business logic layer of payments.
//
// Transfer is the ledger's transfer engine: it moves money between two accounts
// inside one store transaction and deduplicates retries by idempotency key.
package paymentservice

import (
	"bytes"
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/pkg/currencypkg"
)

var (
	transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transfers_total",
		Help: "Transfer attempts by outcome",
	}, []string{"outcome"})

	transferDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_transfer_duration_seconds",
		Help:    "Transfer unit of work latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
)

// Transfer outcomes other than failure kinds.
const (
	outcomeCompleted = "completed"
	outcomeReplayed  = "replayed"
)

// TxStore runs a transfer unit of work inside one transaction.
//
//go:generate mockgen -source service.go -destination service_mock.go -package paymentservice
//go:generate mockgen -destination tx_mock.go -package paymentservice github.com/go-petr/p2p-ledger/internal/domain TransferTx
type TxStore interface {
	ExecTx(ctx context.Context, fn func(tx domain.TransferTx) error) error
}

// Repo provides data access layer interface needed by payment service layer.
type Repo interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Payment, error)
	GetByIdempotencyKey(ctx context.Context, senderID uuid.UUID, key string) (domain.Payment, error)
}

// Cache keeps payments by id. Payments are immutable, so entries never go stale.
type Cache interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Payment, bool)
	Set(ctx context.Context, p domain.Payment)
}

// Service facilitates payment service layer logic.
type Service struct {
	store   TxStore
	repo    Repo
	cache   Cache
	timeout time.Duration

	now   func() time.Time
	newID func() uuid.UUID
}

// Option configures Service.
type Option func(*Service)

// WithCache makes Get read through the given cache.
func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithTimeout bounds every transfer unit of work by d.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// New returns payment service struct to manage payment bussines logic.
func New(store TxStore, repo Repo, opts ...Option) *Service {
	s := &Service{
		store: store,
		repo:  repo,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
		newID: uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Transfer moves arg.Amount from the sender to the receiver account.
//
// Calling it again with the same sender and idempotency key returns the payment
// created by the first call without moving money again. On any error no
// balance, payment or ledger entry is changed.
func (s *Service) Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx).With().
		Stringer("sender_account_id", arg.SenderAccountID).
		Stringer("receiver_account_id", arg.ReceiverAccountID).
		Str("idempotency_key", arg.IdempotencyKey).
		Logger()
	ctx = l.WithContext(ctx)

	timer := prometheus.NewTimer(transferDuration)
	result, err := s.transfer(ctx, arg)
	timer.ObserveDuration()

	if err != nil {
		kind := domain.KindOf(err)
		transfersTotal.WithLabelValues(kind.String()).Inc()

		if kind == domain.KindStoreUnavailable || kind == domain.KindUnknown {
			l.Error().Err(err).Msg("transfer failed")
		} else {
			l.Info().Err(err).Msg("transfer rejected")
		}

		return domain.TransferResult{}, err
	}

	p := result.Payment

	if result.Replayed {
		transfersTotal.WithLabelValues(outcomeReplayed).Inc()
		l.Info().Stringer("payment_id", p.ID).Msg("transfer replayed")

		return result, nil
	}

	transfersTotal.WithLabelValues(outcomeCompleted).Inc()
	l.Info().
		Stringer("payment_id", p.ID).
		Str("amount", currencypkg.Format(p.Amount, p.Currency)).
		Str("currency", p.Currency).
		Msg("transfer completed")

	return result, nil
}

func (s *Service) transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error) {
	if arg.SenderAccountID == arg.ReceiverAccountID {
		return domain.TransferResult{}, domain.ErrSameAccountTransfer
	}

	if arg.Amount <= 0 {
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	arg.Currency = currencypkg.Normalize(arg.Currency)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)

		defer cancel()
	}

	var result domain.TransferResult

	err := s.store.ExecTx(ctx, func(tx domain.TransferTx) error {
		var err error
		result, err = s.execTransfer(ctx, tx, arg)

		return err
	})

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, domain.ErrDuplicatePayment):
		// A concurrent call with the same key committed first.
		return s.replay(ctx, arg)
	case ctx.Err() != nil && domain.KindOf(err) == domain.KindUnknown:
		return domain.TransferResult{}, domain.StoreUnavailable(ctx.Err())
	}

	return domain.TransferResult{}, err
}

func (s *Service) replay(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error) {
	p, err := s.repo.GetByIdempotencyKey(ctx, arg.SenderAccountID, arg.IdempotencyKey)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return domain.TransferResult{}, domain.StoreUnavailable(err)
		}

		return domain.TransferResult{}, err
	}

	return domain.TransferResult{Payment: p, Replayed: true}, nil
}

func (s *Service) execTransfer(ctx context.Context, tx domain.TransferTx, arg domain.TransferParams) (domain.TransferResult, error) {
	if result, ok, err := lookupReplay(ctx, tx, arg); ok || err != nil {
		return result, err
	}

	sender, receiver, err := lockAccounts(ctx, tx, arg.SenderAccountID, arg.ReceiverAccountID)
	if err != nil {
		return domain.TransferResult{}, err
	}

	// A duplicate that committed while this call waited on the sender lock is
	// visible only now.
	if result, ok, err := lookupReplay(ctx, tx, arg); ok || err != nil {
		return result, err
	}

	if !sender.IsActive() || !receiver.IsActive() {
		return domain.TransferResult{}, domain.ErrAccountInactive
	}

	if sender.Currency != arg.Currency || receiver.Currency != arg.Currency {
		return domain.TransferResult{}, domain.ErrCurrencyMismatch
	}

	if sender.Balance < arg.Amount {
		return domain.TransferResult{}, domain.ErrInsufficientFunds
	}

	if receiver.Balance > math.MaxInt64-arg.Amount {
		return domain.TransferResult{}, domain.ErrBalanceOverflow
	}

	senderBalance, receiverBalance, err := moveFunds(ctx, tx, arg)
	if err != nil {
		return domain.TransferResult{}, err
	}

	payment, err := tx.CreatePayment(ctx, domain.Payment{
		ID:                s.newID(),
		SenderAccountID:   arg.SenderAccountID,
		ReceiverAccountID: arg.ReceiverAccountID,
		Amount:            arg.Amount,
		Currency:          arg.Currency,
		Status:            domain.PaymentStatusCompleted,
		IdempotencyKey:    arg.IdempotencyKey,
		CreatedAt:         s.now(),
	})
	if err != nil {
		return domain.TransferResult{}, err
	}

	entries := []domain.LedgerEntry{
		{
			ID:           s.newID(),
			AccountID:    arg.SenderAccountID,
			PaymentID:    payment.ID,
			Direction:    domain.DirectionDebit,
			Amount:       arg.Amount,
			BalanceAfter: senderBalance,
			CreatedAt:    payment.CreatedAt,
		},
		{
			ID:           s.newID(),
			AccountID:    arg.ReceiverAccountID,
			PaymentID:    payment.ID,
			Direction:    domain.DirectionCredit,
			Amount:       arg.Amount,
			BalanceAfter: receiverBalance,
			CreatedAt:    payment.CreatedAt,
		},
	}

	if err := tx.AppendLedgerEntries(ctx, entries); err != nil {
		return domain.TransferResult{}, err
	}

	return domain.TransferResult{Payment: payment}, nil
}

// lookupReplay reports whether a payment with the transfer's idempotency key
// already exists.
func lookupReplay(ctx context.Context, tx domain.TransferTx, arg domain.TransferParams) (domain.TransferResult, bool, error) {
	existing, err := tx.GetPaymentByIdempotencyKey(ctx, arg.SenderAccountID, arg.IdempotencyKey)

	switch {
	case err == nil:
		return domain.TransferResult{Payment: existing, Replayed: true}, true, nil
	case errors.Is(err, domain.ErrPaymentNotFound):
		return domain.TransferResult{}, false, nil
	}

	return domain.TransferResult{}, false, err
}

// lockAccounts locks both account rows in id order to avoid deadlocks
// between transfers going in opposite directions.
func lockAccounts(ctx context.Context, tx domain.TransferTx, senderID, receiverID uuid.UUID) (domain.Account, domain.Account, error) {
	if idLess(receiverID, senderID) {
		receiver, sender, err := lockPair(ctx, tx, receiverID, senderID)
		return sender, receiver, err
	}

	return lockPair(ctx, tx, senderID, receiverID)
}

func lockPair(ctx context.Context, tx domain.TransferTx, id1, id2 uuid.UUID) (domain.Account, domain.Account, error) {
	account1, err := tx.GetAccountForUpdate(ctx, id1)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	account2, err := tx.GetAccountForUpdate(ctx, id2)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	return account1, account2, nil
}

// moveFunds debits the sender and credits the receiver in id order and
// returns both balances after the change.
func moveFunds(ctx context.Context, tx domain.TransferTx, arg domain.TransferParams) (int64, int64, error) {
	if idLess(arg.ReceiverAccountID, arg.SenderAccountID) {
		receiverBalance, senderBalance, err := addBalances(ctx, tx,
			arg.ReceiverAccountID, arg.Amount,
			arg.SenderAccountID, -arg.Amount)

		return senderBalance, receiverBalance, err
	}

	return addBalances(ctx, tx,
		arg.SenderAccountID, -arg.Amount,
		arg.ReceiverAccountID, arg.Amount)
}

func addBalances(ctx context.Context, tx domain.TransferTx, id1 uuid.UUID, delta1 int64, id2 uuid.UUID, delta2 int64) (int64, int64, error) {
	balance1, err := tx.AddBalance(ctx, id1, delta1)
	if err != nil {
		return 0, 0, err
	}

	balance2, err := tx.AddBalance(ctx, id2, delta2)
	if err != nil {
		return 0, 0, err
	}

	return balance1, balance2, nil
}

func idLess(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// Get returns payment for the given payment ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Payment, error) {
	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, id); ok {
			return p, nil
		}
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Payment{}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, p)
	}

	return p, nil
}

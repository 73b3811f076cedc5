// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/pkg/currencypkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) (domain.Account, error)
}

// LedgerRepo reads ledger entries of an account.
type LedgerRepo interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.LedgerEntry, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo   Repo
	ledger LedgerRepo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, lr LedgerRepo) *Service {
	return &Service{repo: ar, ledger: lr}
}

// Create creates an active account for the given user with the initial balance.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, currency string, initialBalance int64) (domain.Account, error) {
	if initialBalance < 0 {
		return domain.Account{}, domain.ErrWouldGoNegative
	}

	account, err := s.repo.Create(ctx, domain.CreateAccountParams{
		UserID:   userID,
		Currency: currencypkg.Normalize(currency),
		Balance:  initialBalance,
	})
	if err != nil {
		return domain.Account{}, err
	}

	zerolog.Ctx(ctx).Info().
		Stringer("account_id", account.ID).
		Stringer("user_id", account.UserID).
		Str("balance", currencypkg.Format(account.Balance, account.Currency)).
		Str("currency", account.Currency).
		Msg("account created")

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus activates or deactivates the account.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) (domain.Account, error) {
	account, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.Account{}, err
	}

	zerolog.Ctx(ctx).Info().
		Stringer("account_id", id).
		Str("status", string(status)).
		Msg("account status updated")

	return account, nil
}

// ListLedger returns ledger entries of the account, newest first.
func (s *Service) ListLedger(ctx context.Context, accountID uuid.UUID) ([]domain.LedgerEntry, error) {
	if _, err := s.repo.Get(ctx, accountID); err != nil {
		return nil, err
	}

	return s.ledger.ListByAccount(ctx, accountID)
}

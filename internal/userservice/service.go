// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/internal/domain"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, name, email string) (domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New return user service struct to manage user bussines logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// Create creates and returns user. Emails are compared case-insensitively.
func (s *Service) Create(ctx context.Context, name, email string) (domain.User, error) {
	user, err := s.repo.Create(ctx, strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, err
	}

	zerolog.Ctx(ctx).Info().Stringer("user_id", user.ID).Msg("user created")

	return user, nil
}

// Get returns user for the given user ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return s.repo.Get(ctx, id)
}

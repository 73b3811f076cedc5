// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/internal/middleware"
	"github.com/go-petr/p2p-ledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, currency string, initialBalance int64) (domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) (domain.Account, error)
	ListLedger(ctx context.Context, accountID uuid.UUID) ([]domain.LedgerEntry, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}

type response struct {
	Data data `json:"data"`
}

type createRequest struct {
	UserID         string `json:"user_id" binding:"required,uuid"`
	Currency       string `json:"currency" binding:"required,currency"`
	InitialBalance int64  `json:"initial_balance" binding:"gte=0"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	account, err := h.service.Create(ctx, uuid.MustParse(req.UserID), req.Currency, req.InitialBalance)
	if err != nil {
		middleware.AbortWithError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{account}})
}

type uriRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

func bindID(gctx *gin.Context) (uuid.UUID, bool) {
	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return uuid.Nil, false
	}

	return uuid.MustParse(req.ID), true
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	account, err := h.service.Get(gctx.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// UpdateStatus handles http request to activate or deactivate account.
func (h *Handler) UpdateStatus(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	account, err := h.service.UpdateStatus(gctx.Request.Context(), id, domain.AccountStatus(req.Status))
	if err != nil {
		middleware.AbortWithError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

type dataEntries struct {
	Entries []domain.LedgerEntry `json:"entries"`
}

type responseEntries struct {
	Data dataEntries `json:"data"`
}

// ListLedger handles http request to list account ledger entries.
func (h *Handler) ListLedger(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	entries, err := h.service.ListLedger(gctx.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, responseEntries{Data: dataEntries{entries}})
}

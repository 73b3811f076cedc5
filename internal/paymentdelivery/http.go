// Package paymentdelivery manages delivery layer of payments.
package paymentdelivery

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

// Headers of the transfer endpoint.
const (
	IdempotencyKeyHeader     = "Idempotency-Key"
	IdempotentReplayedHeader = "Idempotent-Replayed"
)

// Service provides service layer interface needed by payment delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package paymentdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Payment, error)
}

// Handler facilitates payment delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns payment handler.
func NewHandler(ps Service) *Handler {
	return &Handler{service: ps}
}

type data struct {
	Payment domain.Payment `json:"payment"`
}

type response struct {
	Data data `json:"data"`
}

type transferHeader struct {
	IdempotencyKey string `header:"Idempotency-Key" binding:"required,min=1,max=255"`
}

type transferRequest struct {
	SenderAccountID   string `json:"sender_account_id" binding:"required,uuid"`
	ReceiverAccountID string `json:"receiver_account_id" binding:"required,uuid"`
	Amount            int64  `json:"amount" binding:"required,gt=0"`
	Currency          string `json:"currency" binding:"required,currency"`
}

// Transfer handles http request to move money between two accounts.
//
// A repeated request with the same sender and idempotency key answers with
// the original payment and the Idempotent-Replayed header set.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var header transferHeader
	if err := gctx.ShouldBindHeader(&header); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: IdempotencyKeyHeader + " header must be 1 to 255 characters"})

		return
	}

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	result, err := h.service.Transfer(ctx, domain.TransferParams{
		SenderAccountID:   uuid.MustParse(req.SenderAccountID),
		ReceiverAccountID: uuid.MustParse(req.ReceiverAccountID),
		Amount:            req.Amount,
		Currency:          req.Currency,
		IdempotencyKey:    header.IdempotencyKey,
	})
	if err != nil {
		middleware.AbortWithError(gctx, err)
		return
	}

	if result.Replayed {
		gctx.Header(IdempotentReplayedHeader, "true")
	}

	gctx.JSON(http.StatusCreated, response{Data: data{result.Payment}})
}

type getRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Get handles http request to get payment.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	payment, err := h.service.Get(ctx, uuid.MustParse(req.ID))
	if err != nil {
		middleware.AbortWithError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{payment}})
}

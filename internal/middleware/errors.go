package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/pkg/errorspkg"
	"github.com/go-petr/p2p-ledger/pkg/web"
)

// StatusFromError maps a domain failure to its HTTP status code.
func StatusFromError(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound,
		domain.KindAccountNotFound,
		domain.KindPaymentNotFound,
		domain.KindUserNotFound,
		domain.KindOwnerNotFound:
		return http.StatusNotFound
	case domain.KindSameAccountTransfer,
		domain.KindInvalidAmount:
		return http.StatusBadRequest
	case domain.KindDuplicateEmail,
		domain.KindAccountInactive,
		domain.KindCurrencyMismatch,
		domain.KindInsufficientFunds,
		domain.KindWouldGoNegative,
		domain.KindBalanceOverflow,
		domain.KindDuplicatePayment:
		return http.StatusConflict
	case domain.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	case domain.KindUnknown:
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// AbortWithError writes the error response for err. Unclassified errors never
// leak their message to the client.
func AbortWithError(gctx *gin.Context, err error) {
	status := StatusFromError(err)

	switch {
	case status == http.StatusInternalServerError:
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		gctx.AbortWithStatusJSON(status, web.Error(errorspkg.ErrInternal))

		return
	case domain.KindOf(err) == domain.KindStoreUnavailable:
		gctx.AbortWithStatusJSON(status, web.Error(domain.ErrStoreUnavailable))

		return
	}

	gctx.AbortWithStatusJSON(status, web.Error(err))
}

// NoRoute answers unknown routes with the JSON envelope.
func NoRoute(gctx *gin.Context) {
	AbortWithError(gctx, domain.ErrNotFound)
}

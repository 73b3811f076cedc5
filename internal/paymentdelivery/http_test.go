package paymentdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/pkg/currencypkg"
	"github.com/go-petr/p2p-ledger/pkg/randompkg"
	"github.com/go-petr/p2p-ledger/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.ReleaseMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("currency", currencypkg.ValidCurrency); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

func randomPayment() domain.Payment {
	return domain.Payment{
		ID:                uuid.New(),
		SenderAccountID:   uuid.New(),
		ReceiverAccountID: uuid.New(),
		Amount:            randompkg.AmountBetween(1, 1000),
		Currency:          currencypkg.USD,
		Status:            domain.PaymentStatusCompleted,
		IdempotencyKey:    randompkg.IdempotencyKey(),
		CreatedAt:         time.Now().Truncate(time.Second).UTC(),
	}
}

func TestTransferAPI(t *testing.T) {
	payment := randomPayment()

	validBody := gin.H{
		"sender_account_id":   payment.SenderAccountID,
		"receiver_account_id": payment.ReceiverAccountID,
		"amount":              payment.Amount,
		"currency":            payment.Currency,
	}

	wantArg := domain.TransferParams{
		SenderAccountID:   payment.SenderAccountID,
		ReceiverAccountID: payment.ReceiverAccountID,
		Amount:            payment.Amount,
		Currency:          payment.Currency,
		IdempotencyKey:    payment.IdempotencyKey,
	}

	withBody := func(changes gin.H) gin.H {
		body := gin.H{}
		for k, v := range validBody {
			body[k] = v
		}

		for k, v := range changes {
			body[k] = v
		}

		return body
	}

	testCases := []struct {
		name          string
		key           string
		body          gin.H
		buildStubs    func(service *MockService)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			key:  payment.IdempotencyKey,
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(wantArg)).
					Times(1).
					Return(domain.TransferResult{Payment: payment}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusCreated, recorder.Code)
				require.Empty(t, recorder.Header().Get(IdempotentReplayedHeader))

				var res response
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, payment, res.Data.Payment)
			},
		},
		{
			name: "Replayed",
			key:  payment.IdempotencyKey,
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(wantArg)).
					Times(1).
					Return(domain.TransferResult{Payment: payment, Replayed: true}, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusCreated, recorder.Code)
				require.Equal(t, "true", recorder.Header().Get(IdempotentReplayedHeader))

				var res response
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, payment.ID, res.Data.Payment.ID)
			},
		},
		{
			name: "MissingIdempotencyKey",
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "LongIdempotencyKey",
			key:  strings.Repeat("k", 256),
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "ZeroAmount",
			key:  payment.IdempotencyKey,
			body: withBody(gin.H{"amount": 0}),
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "NegativeAmount",
			key:  payment.IdempotencyKey,
			body: withBody(gin.H{"amount": -10}),
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)

				var res web.Response
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, "amount must be greater than 0", res.Error)
			},
		},
		{
			name: "FractionalAmount",
			key:  payment.IdempotencyKey,
			body: withBody(gin.H{"amount": 10.5}),
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "InvalidSender",
			key:  payment.IdempotencyKey,
			body: withBody(gin.H{"sender_account_id": "1"}),
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "SameAccount",
			key:  payment.IdempotencyKey,
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrSameAccountTransfer)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "AccountNotFound",
			key:  payment.IdempotencyKey,
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name: "InsufficientFunds",
			key:  payment.IdempotencyKey,
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrInsufficientFunds)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusConflict, recorder.Code)

				var res web.Response
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, domain.ErrInsufficientFunds.Error(), res.Error)
			},
		},
		{
			name: "StoreUnavailable",
			key:  payment.IdempotencyKey,
			body: validBody,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrStoreUnavailable)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := gin.New()
			url := "/payments/transfer"
			server.POST(url, NewHandler(service).Transfer)

			body, err := json.Marshal(tc.body)
			require.NoError(t, err)

			request, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			require.NoError(t, err)

			if tc.key != "" {
				request.Header.Set(IdempotencyKeyHeader, tc.key)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}

func TestGetAPI(t *testing.T) {
	payment := randomPayment()

	testCases := []struct {
		name       string
		id         string
		buildStubs func(service *MockService)
		wantStatus int
	}{
		{
			name: "OK",
			id:   payment.ID.String(),
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Eq(payment.ID)).Times(1).Return(payment, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "InvalidID",
			id:   "abc",
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "NotFound",
			id:   uuid.NewString(),
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any()).Times(1).Return(domain.Payment{}, domain.ErrPaymentNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := gin.New()
			server.GET("/payments/:id", NewHandler(service).Get)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/payments/"+tc.id, nil))

			require.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}

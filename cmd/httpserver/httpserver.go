// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/go-petr/p2p-ledger/internal/accountdelivery"
	"github.com/go-petr/p2p-ledger/internal/accountrepo"
	"github.com/go-petr/p2p-ledger/internal/accountservice"
	"github.com/go-petr/p2p-ledger/internal/ledgerrepo"
	"github.com/go-petr/p2p-ledger/internal/middleware"
	"github.com/go-petr/p2p-ledger/internal/paymentcache"
	"github.com/go-petr/p2p-ledger/internal/paymentdelivery"
	"github.com/go-petr/p2p-ledger/internal/paymentrepo"
	"github.com/go-petr/p2p-ledger/internal/paymentservice"
	"github.com/go-petr/p2p-ledger/internal/txstore"
	"github.com/go-petr/p2p-ledger/internal/userdelivery"
	"github.com/go-petr/p2p-ledger/internal/userrepo"
	"github.com/go-petr/p2p-ledger/internal/userservice"
	"github.com/go-petr/p2p-ledger/pkg/configpkg"
	"github.com/go-petr/p2p-ledger/pkg/currencypkg"
)

const readHeaderTimeout = 10 * time.Second

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
	Logger zerolog.Logger
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
//
// rdb is optional; without it payments are always read from the database.
func New(conn *sql.DB, rdb redis.UniversalClient, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)
	paymentRepo := paymentrepo.NewRepoPGS(conn)

	paymentOpts := []paymentservice.Option{
		paymentservice.WithTimeout(config.TransferTimeout),
	}
	if rdb != nil {
		paymentOpts = append(paymentOpts,
			paymentservice.WithCache(paymentcache.New(rdb, config.PaymentCacheTTL)))
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo, ledgerRepo)
	paymentService := paymentservice.New(txstore.New(conn), paymentRepo, paymentOpts...)

	userHandler := userdelivery.NewHandler(userService)
	accountHandler := accountdelivery.NewHandler(accountService)
	paymentHandler := paymentdelivery.NewHandler(paymentService)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.NoRoute(middleware.NoRoute)

	engine.GET("/health", health(conn))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.POST("/users", userHandler.Create)
	engine.GET("/users/:id", userHandler.Get)

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.PATCH("/accounts/:id/status", accountHandler.UpdateStatus)
	engine.GET("/accounts/:id/ledger", accountHandler.ListLedger)

	engine.POST("/payments/transfer", paymentHandler.Transfer)
	engine.GET("/payments/:id", paymentHandler.Get)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
		Logger: logger,
	}

	return server, nil
}

func health(conn *sql.DB) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		if err := conn.PingContext(gctx.Request.Context()); err != nil {
			zerolog.Ctx(gctx.Request.Context()).Warn().Err(err).Msg("health check")
			gctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})

			return
		}

		gctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Run serves HTTP on the configured address until ctx is done, then shuts
// down gracefully within Config.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.ServerAddress,
		Handler:           s.Engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Logger.Info().Str("address", srv.Addr).Msg("http server started")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
		defer cancel()

		s.Logger.Info().Msg("http server shutting down")

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

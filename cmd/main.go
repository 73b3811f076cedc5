// Package main runs the p2p ledger API: users, accounts and idempotent money transfers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/p2p-ledger/cmd/httpserver"
	"github.com/go-petr/p2p-ledger/internal/middleware"
	"github.com/go-petr/p2p-ledger/internal/paymentcache"
	"github.com/go-petr/p2p-ledger/pkg/configpkg"
	"github.com/go-petr/p2p-ledger/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()

	if config.MigrationURL != "" {
		if err := dbpkg.Migrate(db, config.MigrationURL); err != nil {
			logger.Fatal().Err(err).Msg("cannot migrate database")
		}

		logger.Info().Str("source", config.MigrationURL).Msg("database migrated")
	}

	var rdb redis.UniversalClient

	if config.RedisAddress != "" {
		client, err := paymentcache.Connect(ctx, config.RedisAddress, config.RedisPassword, config.RedisDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to redis")
		}
		defer client.Close()

		rdb = client
	}

	server, err := httpserver.New(db, rdb, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if err := server.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}

	logger.Info().Msg("server stopped")
}

// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/cmd/httpserver"
	"github.com/go-petr/p2p-ledger/internal/accountrepo"
	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/internal/middleware"
	"github.com/go-petr/p2p-ledger/internal/userrepo"
	"github.com/go-petr/p2p-ledger/pkg/configpkg"
	"github.com/go-petr/p2p-ledger/pkg/dbpkg"
	"github.com/go-petr/p2p-ledger/pkg/randompkg"
)

// Paths are relative to a package two levels below the module root.
const (
	configPath   = "../../configs"
	migrationURL = "file://../../db/migration"
)

// LoadConfig reads the test configuration.
func LoadConfig(t *testing.T) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(configPath)
	if err != nil {
		t.Fatalf(`configpkg.Load(%q) returned error: %v`, configPath, err)
	}

	return config
}

// SetupServer returns test server that cleans up database after each integration test.
func SetupServer(t *testing.T) *httpserver.Server {
	t.Helper()

	config := LoadConfig(t)

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.CreateLogger(config)

	db := SetupDB(t, config.DBDriver, config.DBSource)

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(db, nil, logger, config)
	if err != nil {
		t.Fatalf(`httpserver.New(db, nil, logger, config) returned error: %v`, err)
	}

	return server
}

// Flush flushes all db tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	var tables string

	const query = `
	SELECT string_agg(table_name, ', ')
	FROM information_schema.tables 
	WHERE table_schema='public' AND table_name <> 'schema_migrations';`

	row := db.QueryRow(query)

	err := row.Scan(&tables)
	if err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE TABLE ` + tables + " CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up a migrated database for testing and cleans it afterwards.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.Migrate(db, migrationURL); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.Migrate(db, migrationURL); err != nil {
		t.Fatalf("db migration failed. err: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}

// SeedUser inserts a random user.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	user, err := userrepo.NewRepoPGS(db).Create(context.Background(), randompkg.Name(), randompkg.Email())
	if err != nil {
		t.Fatalf("SeedUser: userrepo.Create returned error: %v", err)
	}

	return user
}

// SeedAccount inserts an active account of a new random user.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, currency string, balance int64) domain.Account {
	t.Helper()

	return SeedAccountFor(t, db, SeedUser(t, db).ID, currency, balance)
}

// SeedAccountFor inserts an active account of the given user.
func SeedAccountFor(t *testing.T, db dbpkg.SQLInterface, userID uuid.UUID, currency string, balance int64) domain.Account {
	t.Helper()

	account, err := accountrepo.NewRepoPGS(db).Create(context.Background(), domain.CreateAccountParams{
		UserID:   userID,
		Currency: currency,
		Balance:  balance,
	})
	if err != nil {
		t.Fatalf("SeedAccount: accountrepo.Create returned error: %v", err)
	}

	return account
}

// Balance reads the current balance of the account.
func Balance(t *testing.T, db dbpkg.SQLInterface, id uuid.UUID) int64 {
	t.Helper()

	account, err := accountrepo.NewRepoPGS(db).Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Balance: accountrepo.Get(%v) returned error: %v", id, err)
	}

	return account.Balance
}

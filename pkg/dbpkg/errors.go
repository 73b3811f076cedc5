package dbpkg

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// PostgreSQL error codes the repositories react to.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeCheckViolation       = "23514"
	CodeNumericOutOfRange    = "22003"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeTooManyConnections   = "53300"
	CodeAdminShutdown        = "57P01"
	CodeCannotConnectNow     = "57P03"
	CodeQueryCanceled        = "57014"

	// classConnectionException is the SQLSTATE class of all connection errors.
	classConnectionException = "08"
)

// PGError is the driver-independent part of a PostgreSQL error.
type PGError struct {
	Code       string
	Constraint string
}

// AsPGError extracts the PostgreSQL error from err regardless of which driver
// (lib/pq or pgx stdlib) produced it.
func AsPGError(err error) (PGError, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return PGError{Code: string(pqErr.Code), Constraint: pqErr.Constraint}, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return PGError{Code: pgErr.Code, Constraint: pgErr.ConstraintName}, true
	}

	return PGError{}, false
}

// ConstraintViolation reports the violated constraint name when err is a
// constraint violation with the given code.
func ConstraintViolation(err error, code string) (string, bool) {
	pgErr, ok := AsPGError(err)
	if !ok || pgErr.Code != code {
		return "", false
	}

	return pgErr.Constraint, true
}

// IsTransient reports whether err is an infrastructure failure that may
// succeed when the caller retries.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}

	if pgErr, ok := AsPGError(err); ok {
		switch pgErr.Code {
		case CodeSerializationFailure,
			CodeDeadlockDetected,
			CodeTooManyConnections,
			CodeAdminShutdown,
			CodeCannotConnectNow,
			CodeQueryCanceled:
			return true
		}

		return len(pgErr.Code) == 5 && pgErr.Code[:2] == classConnectionException
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}

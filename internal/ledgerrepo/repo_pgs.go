// Package ledgerrepo manages repository layer of ledger entries.
package ledgerrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/pkg/dbpkg"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns ledger RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const entryColumns = 7

// Append inserts the entries with a single statement, so either all of them
// are written or none.
func (r *RepoPGS) Append(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	l := zerolog.Ctx(ctx)

	var sb strings.Builder

	sb.WriteString(`
INSERT INTO
    ledger_entries (id, account_id, payment_id, direction, amount, balance_after, created_at)
VALUES
`)

	args := make([]interface{}, 0, len(entries)*entryColumns)

	for i, e := range entries {
		if i > 0 {
			sb.WriteString(",\n")
		}

		n := i * entryColumns
		fmt.Fprintf(&sb, "    ($%d, $%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6, n+7)

		args = append(args, e.ID, e.AccountID, e.PaymentID, e.Direction, e.Amount, e.BalanceAfter, e.CreatedAt)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		l.Error().Err(err).Int("entries", len(entries)).Send()
		return domain.StoreError(err)
	}

	return nil
}

const listByAccountQuery = `
SELECT 
	id, account_id, payment_id, direction, amount, balance_after, created_at
FROM ledger_entries
WHERE account_id = $1
ORDER BY created_at DESC, direction DESC, id
`

// ListByAccount returns the account's entries, newest first.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.LedgerEntry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, domain.StoreError(err)
	}
	defer rows.Close()

	items := []domain.LedgerEntry{}

	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(
			&e.ID,
			&e.AccountID,
			&e.PaymentID,
			&e.Direction,
			&e.Amount,
			&e.BalanceAfter,
			&e.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, domain.StoreError(err)
		}

		items = append(items, e)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, domain.StoreError(err)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, domain.StoreError(err)
	}

	return items, nil
}

// Package paymentcache keeps recently read payments in Redis.
package paymentcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/go-petr/p2p-ledger/internal/domain"
)

const keyPrefix = "payment:"

// Cache is a JSON backed payment cache. A zero ttl keeps entries forever.
//
// Failures are logged and reported as misses: the store stays the source of truth.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// New returns payment cache over the given redis client.
func New(client redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Connect dials redis at addr and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return rdb, nil
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Get returns the cached payment.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (domain.Payment, bool) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zerolog.Ctx(ctx).Warn().Err(err).Stringer("payment_id", id).Msg("payment cache read")
		}

		return domain.Payment{}, false
	}

	var p domain.Payment
	if err := json.Unmarshal(data, &p); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Stringer("payment_id", id).Msg("payment cache decode")
		return domain.Payment{}, false
	}

	return p, true
}

// Set stores the payment.
func (c *Cache) Set(ctx context.Context, p domain.Payment) {
	data, err := json.Marshal(p)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Stringer("payment_id", p.ID).Msg("payment cache encode")
		return
	}

	if err := c.client.Set(ctx, key(p.ID), data, c.ttl).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Stringer("payment_id", p.ID).Msg("payment cache write")
	}
}

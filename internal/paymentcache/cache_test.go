package paymentcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/p2p-ledger/internal/domain"
	"github.com/go-petr/p2p-ledger/pkg/currencypkg"
	"github.com/go-petr/p2p-ledger/pkg/randompkg"
)

func setup(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, ttl), mr
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
		CreatedAt:         time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestSetGet(t *testing.T) {
	t.Parallel()

	c, mr := setup(t, time.Hour)
	ctx := context.Background()
	want := randomPayment()

	_, ok := c.Get(ctx, want.ID)
	require.False(t, ok)

	c.Set(ctx, want)
	require.True(t, mr.Exists(keyPrefix+want.ID.String()))

	got, ok := c.Get(ctx, want.ID)
	require.True(t, ok)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payment mismatch (-want +got):\n%s", diff)
	}
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	c, mr := setup(t, time.Minute)
	ctx := context.Background()
	p := randomPayment()

	c.Set(ctx, p)
	require.Equal(t, time.Minute, mr.TTL(keyPrefix+p.ID.String()))

	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, p.ID)
	require.False(t, ok)
}

func TestCorruptEntry(t *testing.T) {
	t.Parallel()

	c, mr := setup(t, 0)
	id := uuid.New()

	require.NoError(t, mr.Set(keyPrefix+id.String(), "{not json"))

	_, ok := c.Get(context.Background(), id)
	require.False(t, ok)
}

func TestUnavailable(t *testing.T) {
	t.Parallel()

	c, mr := setup(t, time.Hour)
	p := randomPayment()
	mr.Close()

	c.Set(context.Background(), p)

	_, ok := c.Get(context.Background(), p.ID)
	require.False(t, ok)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()

	_, err = Connect(context.Background(), mr.Addr(), "", 0)
	require.Error(t, err)
}

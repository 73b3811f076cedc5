// Package randompkg generates random fixtures for tests.
package randompkg

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// int63n returns a uniform random number in [0, n).
func int63n(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		panic(err)
	}

	return v.Int64()
}

// AmountBetween returns a random amount of minor units in [min, max).
func AmountBetween(min, max int64) int64 {
	return min + int63n(max-min)
}

func letters(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[int63n(int64(len(alphabet)))]
	}

	return string(b)
}

// Name returns a random user name.
func Name() string {
	return "user-" + letters(6)
}

// Email returns a random, practically unique email address.
func Email() string {
	return letters(12) + "@ledger.test"
}

// IdempotencyKey returns a random idempotency key.
func IdempotencyKey() string {
	return "key-" + letters(16)
}

package currencypkg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	require.Equal(t, USD, Normalize("usd"))
	require.Equal(t, EUR, Normalize(" eUr "))
}

func TestIsValidCode(t *testing.T) {
	testCases := []struct {
		code string
		want bool
	}{
		{"USD", true},
		{"usd", true},
		{"US", false},
		{"USDT", false},
		{"U5D", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := IsValidCode(tc.code); got != tc.want {
			t.Errorf("IsValidCode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		amount   int64
		currency string
		want     string
	}{
		{1500, USD, "15.00"},
		{5, EUR, "0.05"},
		{1500, JPY, "1500"},
		{1234, "kwd", "1.234"},
		{0, USD, "0.00"},
	}

	for _, tc := range testCases {
		if got := Format(tc.amount, tc.currency); got != tc.want {
			t.Errorf("Format(%d, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

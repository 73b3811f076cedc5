// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Constants for commonly used currencies.
const (
	USD = "USD"
	EUR = "EUR"
	RMB = "RMB"
	JPY = "JPY"
)

const defaultMinorUnits = 2

// minorUnits holds currencies whose minor unit exponent differs from the default.
var minorUnits = map[string]int32{
	JPY:   0,
	"KRW": 0,
	"BHD": 3,
	"KWD": 3,
	"TND": 3,
}

// Normalize returns the canonical form of a currency code.
func Normalize(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// IsValidCode returns true if the currency is a three letter code in any case.
func IsValidCode(currency string) bool {
	if len(currency) != 3 {
		return false
	}

	for i := 0; i < len(currency); i++ {
		c := currency[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}

	return true
}

// ValidCurrency validates whether the field holds a currency code.
var ValidCurrency validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		return IsValidCode(c)
	}

	return false
}

// MinorUnits returns the number of decimal places of the currency's minor unit.
func MinorUnits(currency string) int32 {
	if e, ok := minorUnits[Normalize(currency)]; ok {
		return e
	}

	return defaultMinorUnits
}

// Format renders an amount of minor units in major units, e.g. 1500 USD as "15.00".
func Format(amount int64, currency string) string {
	exp := MinorUnits(currency)
	return decimal.New(amount, -exp).StringFixed(exp)
}

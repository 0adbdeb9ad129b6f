// Package money formats rupee amounts for display.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the currency glyph prefixed to every formatted amount.
const Symbol = "₹"

// Places is the number of fractional digits shown.
const Places int32 = 2

// Round rounds amount to two decimal places for display.
func Round(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return fixed(amount).InexactFloat64()
}

// fixed rounds the exact binary value of amount, not its shortest decimal
// form, so 1.005 (stored as 1.00499999...) becomes 1.00.
func fixed(amount float64) decimal.Decimal {
	return decimal.NewFromFloatWithExponent(amount, -Places)
}

// FormatINR renders amount with Indian digit grouping, e.g. 1234567.8
// becomes "₹12,34,567.80". The last three integer digits form one group and
// everything to their left is grouped in pairs.
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	text := fixed(amount).StringFixed(Places)
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}

	whole, frac, _ := strings.Cut(text, ".")
	if sign != "" && strings.Trim(whole+frac, "0") == "" {
		sign = ""
	}

	return sign + Symbol + groupIndian(whole) + "." + frac
}

func groupIndian(whole string) string {
	if len(whole) <= 3 {
		return whole
	}

	lastThree := whole[len(whole)-3:]
	rest := whole[:len(whole)-3]

	var b strings.Builder
	// A leading odd digit stands alone before the pairs.
	head := len(rest) % 2
	if head > 0 {
		b.WriteString(rest[:head])
	}
	for i := head; i < len(rest); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(rest[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(lastThree)
	return b.String()
}

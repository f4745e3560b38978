// Package money formats peso amounts the way the storefront displays them:
// "$" prefix, dot as thousands separator, comma as decimal separator
// ("$1.234.567,50").
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders d as a display amount. Whole amounts carry no decimal
// part; fractional amounts keep their digits with trailing zeros trimmed.
func Format(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().String()

	intPart, fracPart, _ := strings.Cut(s, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(group(intPart))
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// group inserts a dot every three digits, counting from the right.
func group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the fixed symbol used by FormatUSD.
const CurrencySymbol = "$"

// FormatUSD formats an amount as a string like "$12,500.00".
// Always two decimal places, comma as thousands separator.
func FormatUSD(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}
	if neg && strings.Trim(intPart+frac, "0.") == "" {
		// -0.001 rounds to "-0.00"; drop the sign.
		neg = false
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + symbol
	b.Grow(len(s) + len(intPart)/3 + 2)
	if neg {
		b.WriteString("-")
	}
	b.WriteString(CurrencySymbol)

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	if rem > len(intPart) {
		rem = len(intPart)
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)

	return b.String()
}

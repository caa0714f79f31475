package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "$0.00"},
		{"small", decimal.RequireFromString("9.5"), "$9.50"},
		{"three digits", decimal.NewFromInt(500), "$500.00"},
		{"thousands", decimal.RequireFromString("1234.5"), "$1,234.50"},
		{"exact group", decimal.NewFromInt(100000), "$100,000.00"},
		{"millions", decimal.RequireFromString("1234567.891"), "$1,234,567.89"},
		{"negative", decimal.RequireFromString("-2500.1"), "-$2,500.10"},
		{"negative rounds to zero", decimal.RequireFromString("-0.001"), "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUSD(tt.amount))
		})
	}
}

func TestNormalizeSearchText(t *testing.T) {
	assert.Equal(t, "trail shoe", NormalizeSearchText("  Trail SHOE \t"))
	assert.Equal(t, "", NormalizeSearchText("   "))
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "4.0 ★", FormatRating(4))
	assert.Equal(t, "3.5 ★", FormatRating(3.46))
}

func TestItemCountLabel(t *testing.T) {
	assert.Equal(t, "0 items", ItemCountLabel(0))
	assert.Equal(t, "1 item", ItemCountLabel(1))
	assert.Equal(t, "10 items", ItemCountLabel(10))
}

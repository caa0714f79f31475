package utils

import (
	"fmt"
	"strings"
)

// Star is appended to rating displays.
const Star = "★"

// NormalizeSearchText trims and lowercases free-text search input.
func NormalizeSearchText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FormatRating formats a rating like "4.0 ★".
func FormatRating(rating float64) string {
	return fmt.Sprintf("%.1f %s", rating, Star)
}

// ItemCountLabel returns "1 item" or "N items".
func ItemCountLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

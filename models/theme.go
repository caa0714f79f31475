package models

import "strings"

// Theme is the colour scheme of the storefront. ThemeLight is the default.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme reports whether s names a known theme.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// NormalizeTheme returns the theme named by s, or ThemeLight.
func NormalizeTheme(s string) Theme {
	if t, ok := ParseTheme(s); ok {
		return t
	}
	return ThemeLight
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilterAll is the sentinel value meaning "no restriction" for category and tag.
const FilterAll = "all"

// SortMode selects the ordering of the visible product list.
// The zero value is SortFeatured, which is also the fallback for unknown input.
type SortMode int

const (
	SortFeatured SortMode = iota
	SortPriceAsc
	SortPriceDesc
	SortRating
	SortNew
)

var sortModeNames = map[SortMode]string{
	SortFeatured:  "featured",
	SortPriceAsc:  "price-asc",
	SortPriceDesc: "price-desc",
	SortRating:    "rating",
	SortNew:       "new",
}

// ParseSortMode maps a wire name to a SortMode.
// Anything unrecognised (including "") resolves to SortFeatured.
func ParseSortMode(s string) SortMode {
	name := strings.ToLower(strings.TrimSpace(s))
	for mode, n := range sortModeNames {
		if n == name {
			return mode
		}
	}
	return SortFeatured
}

// String returns the wire name of the sort mode.
func (m SortMode) String() string {
	if name, ok := sortModeNames[m]; ok {
		return name
	}
	return sortModeNames[SortFeatured]
}

// MarshalText encodes the sort mode as its wire name.
func (m SortMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText never fails; unknown names become SortFeatured.
func (m *SortMode) UnmarshalText(text []byte) error {
	*m = ParseSortMode(string(text))
	return nil
}

// FilterCriteria is the mutable filter and sort state of a storefront session.
// MaxPriceBound is derived once from the catalog and never changes afterwards;
// SelectedPrice always stays within [0, MaxPriceBound].
type FilterCriteria struct {
	Category      string          `json:"category"`
	Tag           string          `json:"tag"`
	SearchText    string          `json:"searchText"`
	Sort          SortMode        `json:"sort"`
	MaxPriceBound decimal.Decimal `json:"maxPriceBound"`
	SelectedPrice decimal.Decimal `json:"selectedPrice"`
}

// DefaultFilterCriteria returns the startup criteria for the given price bound.
func DefaultFilterCriteria(maxPriceBound decimal.Decimal) FilterCriteria {
	return FilterCriteria{
		Category:      FilterAll,
		Tag:           FilterAll,
		SearchText:    "",
		Sort:          SortFeatured,
		MaxPriceBound: maxPriceBound,
		SelectedPrice: maxPriceBound,
	}
}

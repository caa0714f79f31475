package models

import "github.com/shopspring/decimal"

// Badge is a label attached to a product card (e.g. "New", "Low stock").
type Badge struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// ProductCard is a display-ready product for the product grid.
// Example:
//
//	{
//	  "id": "B",
//	  "name": "Trail Runner",
//	  "category": "shoes",
//	  "priceDisplay": "$1,250.00",
//	  "ratingDisplay": "4.5 ★",
//	  "badges": [{"name": "new", "label": "New"}]
//	}
type ProductCard struct {
	Product
	PriceDisplay  string  `json:"priceDisplay"`
	RatingDisplay string  `json:"ratingDisplay"`
	Badges        []Badge `json:"badges"`
}

// ProductListView is the renderer input for the product grid.
// Empty is true when no product matches; renderers show their empty state.
type ProductListView struct {
	Cards []ProductCard `json:"cards"`
	Count int           `json:"count"`
	Empty bool          `json:"empty"`
}

// TagChip is one selectable tag filter. "all" is always listed first.
type TagChip struct {
	Tag    string `json:"tag"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// CartLineView is a display-ready cart line.
type CartLineView struct {
	ProductID        string          `json:"productId"`
	Name             string          `json:"name"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	UnitPriceDisplay string          `json:"unitPriceDisplay"`
	LineTotal        decimal.Decimal `json:"lineTotal"`
	LineTotalDisplay string          `json:"lineTotalDisplay"`
}

// CartView is the renderer input for the cart drawer and header badge.
// Example:
//
//	{
//	  "lines": [...],
//	  "totalItemCount": 2,
//	  "itemCountLabel": "2 items",
//	  "totalPrice": "100",
//	  "totalDisplay": "$100.00",
//	  "empty": false,
//	  "open": true
//	}
type CartView struct {
	Lines          []CartLineView  `json:"lines"`
	TotalItemCount int             `json:"totalItemCount"`
	ItemCountLabel string          `json:"itemCountLabel"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	TotalDisplay   string          `json:"totalDisplay"`
	Empty          bool            `json:"empty"`
	Open           bool            `json:"open"`
}

// FilterView is the renderer input for the filter controls.
type FilterView struct {
	Criteria             FilterCriteria `json:"criteria"`
	Categories           []string       `json:"categories"`
	TagChips             []TagChip      `json:"tagChips"`
	SelectedPriceDisplay string         `json:"selectedPriceDisplay"`
}

// StorefrontView is a complete snapshot of everything a renderer draws.
type StorefrontView struct {
	Filters  FilterView      `json:"filters"`
	Products ProductListView `json:"products"`
	Cart     CartView        `json:"cart"`
	Theme    Theme           `json:"theme"`
}

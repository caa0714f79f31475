// Package cart keeps the quantities a shopper has chosen, keyed by product id.
package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"shopsmart/catalog"
	"shopsmart/models"
)

const (
	// MinQuantity is the smallest quantity a cart line can hold.
	MinQuantity = 1
	// MaxQuantity is the largest quantity a cart line can hold.
	MaxQuantity = 10
)

// ClampQuantity forces q into [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	switch {
	case q < MinQuantity:
		return MinQuantity
	case q > MaxQuantity:
		return MaxQuantity
	default:
		return q
	}
}

// ParseQuantity reads a quantity typed by a user. Non-numeric input becomes
// MinQuantity. Numbers of any magnitude or precision are clamped before the
// fractional part is dropped, so the result is always valid.
func ParseQuantity(s string) int {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return MinQuantity
	}
	switch {
	case d.LessThan(decimal.NewFromInt(MinQuantity)):
		return MinQuantity
	case d.GreaterThan(decimal.NewFromInt(MaxQuantity)):
		return MaxQuantity
	default:
		return int(d.IntPart())
	}
}

// Store is the cart of one session. Lines keep their insertion order.
// Unknown product ids and missing lines are ignored rather than reported.
type Store struct {
	catalog *catalog.Catalog
	order   []string
	lines   map[string]*models.CartLine
}

// NewStore returns an empty cart that resolves products against c.
func NewStore(c *catalog.Catalog) *Store {
	return &Store{
		catalog: c,
		lines:   make(map[string]*models.CartLine),
	}
}

// Add puts one more unit of the product in the cart, up to MaxQuantity.
// It reports whether the id referred to a catalog product.
func (s *Store) Add(productID string) bool {
	if line, ok := s.lines[productID]; ok {
		line.Quantity = ClampQuantity(line.Quantity + 1)
		return true
	}
	product, ok := s.catalog.Lookup(productID)
	if !ok {
		return false
	}
	s.lines[productID] = &models.CartLine{Product: product, Quantity: MinQuantity}
	s.order = append(s.order, productID)
	return true
}

// SetQuantity replaces the quantity of an existing line with the clamped value.
// It reports whether a line existed.
func (s *Store) SetQuantity(productID string, requested int) bool {
	line, ok := s.lines[productID]
	if !ok {
		return false
	}
	line.Quantity = ClampQuantity(requested)
	return true
}

// Remove deletes the line for the product. It reports whether a line existed.
func (s *Store) Remove(productID string) bool {
	if _, ok := s.lines[productID]; !ok {
		return false
	}
	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Quantity returns the quantity held for the product, or 0.
func (s *Store) Quantity(productID string) int {
	if line, ok := s.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}

// Len returns the number of distinct products in the cart.
func (s *Store) Len() int {
	return len(s.order)
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	return len(s.order) == 0
}

// Clear removes every line.
func (s *Store) Clear() {
	s.order = nil
	s.lines = make(map[string]*models.CartLine)
}

// Summarize computes totals from the current lines. It is never cached.
func (s *Store) Summarize() models.CartSummary {
	summary := models.CartSummary{
		TotalPrice: decimal.Zero,
		Lines:      make([]models.CartLine, 0, len(s.order)),
	}
	for _, id := range s.order {
		line := *s.lines[id]
		summary.Lines = append(summary.Lines, line)
		summary.TotalItemCount += line.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(line.LineTotal())
	}
	return summary
}

// Package catalog holds the immutable product list of a storefront session
// together with the values derived from it once at load time.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"shopsmart/models"
)

var (
	// ErrDuplicateProductID is returned when two products share an id.
	ErrDuplicateProductID = errors.New("duplicate product id")
	// ErrInvalidProduct is returned when a product violates a field constraint.
	ErrInvalidProduct = errors.New("invalid product")
)

const (
	// MaxRating is the upper bound of a product rating.
	MaxRating = 5.0

	priceBoundFloor = 100
	priceBoundStep  = 10
)

// Catalog is an ordered, immutable list of products.
// Accessors return fresh slices; the catalog itself is never modified.
type Catalog struct {
	products      []models.Product
	byID          map[string]int
	categories    []string
	tags          []string
	maxPriceBound decimal.Decimal
}

// New validates the products and builds a catalog preserving their order.
func New(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}

	categorySet := make(map[string]struct{})
	tagSet := make(map[string]struct{})
	maxPrice := decimal.Zero

	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("product %d (%q): %w", i, p.ID, err)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProductID, p.ID)
		}

		p.Tags = append([]string(nil), p.Tags...)
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)

		categorySet[p.Category] = struct{}{}
		for _, tag := range p.Tags {
			tagSet[tag] = struct{}{}
		}
		if p.Price.GreaterThan(maxPrice) {
			maxPrice = p.Price
		}
	}

	c.categories = sortedKeys(categorySet)
	c.tags = sortedKeys(tagSet)
	c.maxPriceBound = MaxPriceBound(maxPrice)
	return c, nil
}

// MustNew is New for fixtures; it panics on invalid input.
func MustNew(products []models.Product) *Catalog {
	c, err := New(products)
	if err != nil {
		panic(err)
	}
	return c
}

// MaxPriceBound returns ceil(max(maxPrice, 100) / 10) * 10.
func MaxPriceBound(maxPrice decimal.Decimal) decimal.Decimal {
	floor := decimal.NewFromInt(priceBoundFloor)
	if maxPrice.LessThan(floor) {
		maxPrice = floor
	}
	step := decimal.NewFromInt(priceBoundStep)
	return maxPrice.Div(step).Ceil().Mul(step)
}

func validateProduct(p models.Product) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case p.Rating < 0 || p.Rating > MaxRating:
		return fmt.Errorf("%w: rating must be within [0,5]", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Products returns the products in catalog order.
func (c *Catalog) Products() []models.Product {
	return append([]models.Product(nil), c.products...)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Lookup finds a product by id.
func (c *Catalog) Lookup(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

// Position returns the catalog index of a product id, or -1.
func (c *Catalog) Position(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// Categories returns the unique categories in ascending order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Tags returns the union of all product tags in ascending order, without "all".
func (c *Catalog) Tags() []string {
	return append([]string(nil), c.tags...)
}

// MaxPriceBound returns the price slider ceiling derived at load time.
func (c *Catalog) MaxPriceBound() decimal.Decimal {
	return c.maxPriceBound
}

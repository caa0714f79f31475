// Package catalogtest provides catalog fixtures for tests.
package catalogtest

import (
	"time"

	"github.com/shopspring/decimal"

	"shopsmart/catalog"
	"shopsmart/models"
)

// Epoch is the base timestamp for fixture products.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Product builds a product with sensible defaults.
func Product(id string, price int64, opts ...func(*models.Product)) models.Product {
	p := models.Product{
		ID:          id,
		Name:        "Product " + id,
		Category:    "general",
		Tags:        []string{},
		Price:       decimal.NewFromInt(price),
		Rating:      3,
		Stock:       20,
		CreatedAt:   Epoch,
		Description: "A fine product",
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// New marks the product as new.
func New(p *models.Product) { p.IsNew = true }

// Category sets the category.
func Category(c string) func(*models.Product) {
	return func(p *models.Product) { p.Category = c }
}

// Tags sets the tags.
func Tags(tags ...string) func(*models.Product) {
	return func(p *models.Product) { p.Tags = tags }
}

// Rating sets the rating.
func Rating(r float64) func(*models.Product) {
	return func(p *models.Product) { p.Rating = r }
}

// Stock sets the stock level.
func Stock(n int) func(*models.Product) {
	return func(p *models.Product) { p.Stock = n }
}

// Name sets the display name.
func Name(n string) func(*models.Product) {
	return func(p *models.Product) { p.Name = n }
}

// Description sets the description.
func Description(d string) func(*models.Product) {
	return func(p *models.Product) { p.Description = d }
}

// CreatedDaysAfterEpoch sets CreatedAt relative to Epoch.
func CreatedDaysAfterEpoch(days int) func(*models.Product) {
	return func(p *models.Product) { p.CreatedAt = Epoch.AddDate(0, 0, days) }
}

// Example returns the two-product catalog used in the storefront scenario:
// A (20, not new, rating 4, tag sale) and B (50, new, rating 3, tag new).
func Example() *catalog.Catalog {
	return catalog.MustNew([]models.Product{
		Product("A", 20, Category("x"), Tags("sale"), Rating(4.0), CreatedDaysAfterEpoch(1)),
		Product("B", 50, New, Category("x"), Tags("new"), Rating(3.0), CreatedDaysAfterEpoch(2)),
	})
}

// Mixed returns a larger catalog exercising every filter dimension.
func Mixed() *catalog.Catalog {
	return catalog.MustNew([]models.Product{
		Product("hoodie", 45, Category("apparel"), Tags("cotton", "winter"), Rating(4.6), Name("Cozy Hoodie"),
			Description("Brushed fleece hoodie"), CreatedDaysAfterEpoch(10)),
		Product("mug", 12, Category("home"), Tags("ceramic"), Rating(4.1), Name("Camp Mug"),
			Description("Enamel mug for the trail"), CreatedDaysAfterEpoch(3), Stock(4)),
		Product("tent", 320, New, Category("outdoor"), Tags("trail", "winter"), Rating(4.8), Name("Summit Tent"),
			Description("Four season tent"), CreatedDaysAfterEpoch(30)),
		Product("socks", 12, Category("apparel"), Tags("wool", "trail"), Rating(4.1), Name("Trail Socks"),
			Description("Merino blend"), CreatedDaysAfterEpoch(20)),
		Product("lamp", 89, New, Category("home"), Tags("ceramic", "light"), Rating(3.9), Name("Table Lamp"),
			Description("Glazed ceramic base"), CreatedDaysAfterEpoch(30)),
		Product("boots", 1250, Category("outdoor"), Tags("leather", "winter"), Rating(4.6), Name("Alpine Boots"),
			Description("Hand stitched"), CreatedDaysAfterEpoch(5), Stock(2)),
	})
}

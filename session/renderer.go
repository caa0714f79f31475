package session

import "shopsmart/models"

// Renderer is notified after every mutation with freshly derived views.
// Implementations draw; they never feed state back into the session.
type Renderer interface {
	ProductsChanged(products models.ProductListView, filters models.FilterView)
	CartChanged(cart models.CartView)
	ThemeChanged(theme models.Theme)
}

// NopRenderer ignores every notification.
type NopRenderer struct{}

var _ Renderer = NopRenderer{}

func (NopRenderer) ProductsChanged(models.ProductListView, models.FilterView) {}
func (NopRenderer) CartChanged(models.CartView) {}
func (NopRenderer) ThemeChanged(models.Theme) {}

// BadgeEvaluator decides which badges a product card carries.
type BadgeEvaluator interface {
	Badges(p models.Product) []models.Badge
}

// LowStockThreshold is the stock level at or below which DefaultBadges adds
// the low-stock badge.
const LowStockThreshold = 5

// DefaultBadges marks new products and products running low on stock.
type DefaultBadges struct{}

var _ BadgeEvaluator = DefaultBadges{}

func (DefaultBadges) Badges(p models.Product) []models.Badge {
	var badges []models.Badge
	if p.IsNew {
		badges = append(badges, models.Badge{Name: "new", Label: "New"})
	}
	if p.Stock <= LowStockThreshold {
		badges = append(badges, models.Badge{Name: "low-stock", Label: "Low stock"})
	}
	return badges
}

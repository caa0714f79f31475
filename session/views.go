package session

import (
	"shopsmart/filtering"
	"shopsmart/models"
	"shopsmart/utils"
)

// Criteria returns a copy of the current filter criteria.
func (s *Session) Criteria() models.FilterCriteria {
	return s.criteria
}

// Categories returns the category selector options, without "all".
func (s *Session) Categories() []string {
	return s.catalog.Categories()
}

// TagChips returns the tag chips with the active tag marked.
func (s *Session) TagChips() []models.TagChip {
	return filtering.TagChips(s.catalog, s.criteria.Tag)
}

// VisibleProducts returns the filtered, sorted products.
func (s *Session) VisibleProducts() []models.Product {
	return filtering.ComputeVisible(s.catalog, s.criteria)
}

// Products returns the product grid view.
func (s *Session) Products() models.ProductListView {
	visible := s.VisibleProducts()
	cards := make([]models.ProductCard, 0, len(visible))
	for _, p := range visible {
		cards = append(cards, s.card(p))
	}
	return models.ProductListView{
		Cards: cards,
		Count: len(cards),
		Empty: len(cards) == 0,
	}
}

func (s *Session) card(p models.Product) models.ProductCard {
	badges := s.badges.Badges(p)
	if badges == nil {
		badges = []models.Badge{}
	}
	return models.ProductCard{
		Product:       p,
		PriceDisplay:  utils.FormatUSD(p.Price),
		RatingDisplay: utils.FormatRating(p.Rating),
		Badges:        badges,
	}
}

// Filters returns the filter controls view.
func (s *Session) Filters() models.FilterView {
	return models.FilterView{
		Criteria:             s.criteria,
		Categories:           s.Categories(),
		TagChips:             s.TagChips(),
		SelectedPriceDisplay: utils.FormatUSD(s.criteria.SelectedPrice),
	}
}

// Summary returns the cart summary, computed fresh.
func (s *Session) Summary() models.CartSummary {
	return s.cart.Summarize()
}

// Cart returns the cart drawer view.
func (s *Session) Cart() models.CartView {
	summary := s.cart.Summarize()
	lines := make([]models.CartLineView, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		total := line.LineTotal()
		lines = append(lines, models.CartLineView{
			ProductID:        line.Product.ID,
			Name:             line.Product.Name,
			Quantity:         line.Quantity,
			UnitPrice:        line.Product.Price,
			UnitPriceDisplay: utils.FormatUSD(line.Product.Price),
			LineTotal:        total,
			LineTotalDisplay: utils.FormatUSD(total),
		})
	}
	return models.CartView{
		Lines:          lines,
		TotalItemCount: summary.TotalItemCount,
		ItemCountLabel: utils.ItemCountLabel(summary.TotalItemCount),
		TotalPrice:     summary.TotalPrice,
		TotalDisplay:   utils.FormatUSD(summary.TotalPrice),
		Empty:          len(lines) == 0,
		Open:           s.cartOpen,
	}
}

// Snapshot returns everything a renderer draws in one value.
func (s *Session) Snapshot() models.StorefrontView {
	return models.StorefrontView{
		Filters:  s.Filters(),
		Products: s.Products(),
		Cart:     s.Cart(),
		Theme:    s.theme.Current(),
	}
}

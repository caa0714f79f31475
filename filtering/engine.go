// Package filtering derives the visible product list from a catalog and the
// current filter criteria. Everything here is pure: no state, no side effects.
package filtering

import (
	"sort"
	"strings"

	"shopsmart/catalog"
	"shopsmart/models"
)

// AllTagsLabel is the chip label of the "all" sentinel tag.
const AllTagsLabel = "All tags"

// ComputeVisible applies the category, tag, price and text filters and then the
// selected sort. The result is freshly allocated on every call and may be empty.
func ComputeVisible(c *catalog.Catalog, criteria models.FilterCriteria) []models.Product {
	visible := make([]models.Product, 0, c.Len())
	for _, p := range c.Products() {
		if Matches(p, criteria) {
			visible = append(visible, p)
		}
	}
	SortProducts(visible, criteria.Sort)
	return visible
}

// Matches reports whether a product passes every filter of the criteria.
func Matches(p models.Product, criteria models.FilterCriteria) bool {
	if criteria.Category != models.FilterAll && p.Category != criteria.Category {
		return false
	}
	if criteria.Tag != models.FilterAll && !p.HasTag(criteria.Tag) {
		return false
	}
	if p.Price.GreaterThan(criteria.SelectedPrice) {
		return false
	}
	if criteria.SearchText == "" {
		return true
	}
	return strings.Contains(searchHaystack(p), criteria.SearchText)
}

func searchHaystack(p models.Product) string {
	return strings.ToLower(p.Name + " " + p.Description + " " + strings.Join(p.Tags, " "))
}

// SortProducts orders products in place. Ties keep their incoming order, so a
// slice filtered from the catalog keeps catalog order among equal keys.
func SortProducts(products []models.Product, mode models.SortMode) {
	var less func(a, b models.Product) bool
	switch mode {
	case models.SortPriceAsc:
		less = func(a, b models.Product) bool { return a.Price.LessThan(b.Price) }
	case models.SortPriceDesc:
		less = func(a, b models.Product) bool { return a.Price.GreaterThan(b.Price) }
	case models.SortRating:
		less = func(a, b models.Product) bool { return a.Rating > b.Rating }
	case models.SortNew:
		less = func(a, b models.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		// featured: new products first, nothing else
		less = func(a, b models.Product) bool { return a.IsNew && !b.IsNew }
	}
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

// TagChips returns the "all" chip followed by every catalog tag in ascending
// order, marking the chip equal to activeTag.
func TagChips(c *catalog.Catalog, activeTag string) []models.TagChip {
	tags := c.Tags()
	chips := make([]models.TagChip, 0, len(tags)+1)
	chips = append(chips, models.TagChip{
		Tag:    models.FilterAll,
		Label:  AllTagsLabel,
		Active: activeTag == models.FilterAll,
	})
	for _, tag := range tags {
		chips = append(chips, models.TagChip{
			Tag:    tag,
			Label:  tag,
			Active: tag == activeTag,
		})
	}
	return chips
}

package session_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopsmart/catalog/catalogtest"
	"shopsmart/models"
	"shopsmart/session"
	"shopsmart/theme"
)

type recorder struct {
	products []models.ProductListView
	filters  []models.FilterView
	carts    []models.CartView
	themes   []models.Theme
}

func (r *recorder) ProductsChanged(p models.ProductListView, f models.FilterView) {
	r.products = append(r.products, p)
	r.filters = append(r.filters, f)
}

func (r *recorder) CartChanged(c models.CartView) { r.carts = append(r.carts, c) }

func (r *recorder) ThemeChanged(t models.Theme) { r.themes = append(r.themes, t) }

func (r *recorder) reset() { *r = recorder{} }

func newSession(t *testing.T, opts ...session.Option) (*session.Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append([]session.Option{session.WithRenderer(rec), session.WithLogger(zap.NewNop())}, opts...)
	return session.New(catalogtest.Example(), opts...), rec
}

func cardIDs(v models.ProductListView) []string {
	out := make([]string, 0, len(v.Cards))
	for _, c := range v.Cards {
		out = append(out, c.ID)
	}
	return out
}

func TestSession_ExampleScenario(t *testing.T) {
	s, _ := newSession(t)

	c := s.Criteria()
	assert.Equal(t, models.FilterAll, c.Category)
	assert.Equal(t, models.FilterAll, c.Tag)
	assert.Equal(t, "", c.SearchText)
	assert.Equal(t, models.SortFeatured, c.Sort)
	assert.True(t, decimal.NewFromInt(100).Equal(c.SelectedPrice))
	assert.Equal(t, []string{"B", "A"}, cardIDs(s.Products()))

	s.AddToCart("B")
	s.AddToCart("B")
	view := s.Cart()
	assert.Equal(t, 2, view.TotalItemCount)
	assert.Equal(t, "$100.00", view.TotalDisplay)
	assert.Equal(t, "2 items", view.ItemCountLabel)

	s.SetQuantity("B", 15)
	view = s.Cart()
	assert.Equal(t, 10, view.TotalItemCount)
	assert.Equal(t, "$500.00", view.TotalDisplay)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "$50.00", view.Lines[0].UnitPriceDisplay)
	assert.Equal(t, "$500.00", view.Lines[0].LineTotalDisplay)
}

func TestSession_FilterMutatorsNotifyProductsOnly(t *testing.T) {
	s, rec := newSession(t)

	s.SetCategory("x")
	s.SetTag("sale")
	s.SetSearchText("  PRODUCT ")
	s.SetSort("price-desc")
	s.SetSelectedPrice(decimal.NewFromInt(30))
	s.ShowBestSellers()
	s.ResetFilters()

	assert.Len(t, rec.products, 7)
	assert.Empty(t, rec.carts)
	assert.Empty(t, rec.themes)

	// tag chips refresh with the tag mutation
	chips := rec.filters[1].TagChips
	require.Len(t, chips, 3)
	assert.True(t, chips[2].Active)
	assert.Equal(t, "sale", chips[2].Tag)

	assert.Equal(t, "product", rec.filters[2].Criteria.SearchText)
	assert.Equal(t, []string{"A"}, cardIDs(rec.products[4]))
	assert.Equal(t, models.SortRating, rec.filters[5].Criteria.Sort)
}

func TestSession_CartMutatorsNotifyCartOnly(t *testing.T) {
	s, rec := newSession(t)

	s.AddToCart("A")
	s.AddToCart("missing")
	s.SetQuantity("A", 3)
	s.RemoveFromCart("A")
	s.ToggleCart()

	assert.Len(t, rec.carts, 5)
	assert.Empty(t, rec.products)
	assert.Equal(t, 1, rec.carts[0].TotalItemCount)
	assert.Equal(t, 1, rec.carts[1].TotalItemCount)
	assert.Equal(t, 3, rec.carts[2].TotalItemCount)
	assert.True(t, rec.carts[3].Empty)
	assert.True(t, rec.carts[4].Open)
}

func TestSession_ResetLeavesCartAlone(t *testing.T) {
	s, _ := newSession(t)

	s.AddToCart("A")
	s.AddToCart("B")
	s.SetQuantity("A", 4)
	before := s.Summary()

	s.SetCategory("x")
	s.SetTag("new")
	s.SetSearchText("zzz")
	s.SetSort("rating")
	s.SetSelectedPrice(decimal.NewFromInt(10))
	assert.True(t, s.Products().Empty)

	s.ResetFilters()

	c := s.Criteria()
	assert.Equal(t, models.FilterAll, c.Category)
	assert.Equal(t, models.FilterAll, c.Tag)
	assert.Empty(t, c.SearchText)
	assert.Equal(t, models.SortFeatured, c.Sort)
	assert.True(t, c.SelectedPrice.Equal(c.MaxPriceBound))
	after := s.Summary()
	assert.Equal(t, before.TotalItemCount, after.TotalItemCount)
	assert.True(t, before.TotalPrice.Equal(after.TotalPrice))
	assert.Equal(t, []string{"B", "A"}, cardIDs(s.Products()))
}

func TestSession_SelectedPriceClamped(t *testing.T) {
	s, _ := newSession(t)

	s.SetSelectedPrice(decimal.NewFromInt(-5))
	assert.True(t, s.Criteria().SelectedPrice.IsZero())

	s.SetSelectedPrice(decimal.NewFromInt(5000))
	assert.True(t, decimal.NewFromInt(100).Equal(s.Criteria().SelectedPrice))
	assert.Equal(t, "$100.00", s.Filters().SelectedPriceDisplay)
}

func TestSession_UnknownSortAndEmptySentinels(t *testing.T) {
	s, _ := newSession(t)

	s.SetSort("cheapest")
	assert.Equal(t, models.SortFeatured, s.Criteria().Sort)

	s.SetCategory("")
	s.SetTag("")
	assert.Equal(t, models.FilterAll, s.Criteria().Category)
	assert.Equal(t, models.FilterAll, s.Criteria().Tag)
}

func TestSession_ProductCards(t *testing.T) {
	s := session.New(catalogtest.Mixed())

	s.SetSearchText("boots")
	view := s.Products()
	require.Equal(t, 1, view.Count)
	card := view.Cards[0]
	assert.Equal(t, "$1,250.00", card.PriceDisplay)
	assert.Equal(t, "4.6 ★", card.RatingDisplay)
	assert.Equal(t, []models.Badge{{Name: "low-stock", Label: "Low stock"}}, card.Badges)

	s.SetSearchText("tent")
	card = s.Products().Cards[0]
	assert.Equal(t, []models.Badge{{Name: "new", Label: "New"}}, card.Badges)

	s.SetSearchText("hoodie")
	assert.Equal(t, []models.Badge{}, s.Products().Cards[0].Badges)
}

func TestSession_CheckoutStub(t *testing.T) {
	s, _ := newSession(t)
	s.AddToCart("A")

	err := s.Checkout()
	assert.ErrorIs(t, err, session.ErrCheckoutUnavailable)
	assert.Equal(t, 1, s.Summary().TotalItemCount)
	assert.Equal(t, "Checkout flow coming soon.", session.CheckoutMessage)
}

func TestSession_CartDrawer(t *testing.T) {
	s, _ := newSession(t)
	assert.False(t, s.CartOpen())
	assert.True(t, s.ToggleCart())
	s.CloseCart()
	assert.False(t, s.Cart().Open)
	s.OpenCart()
	assert.True(t, s.Cart().Open)
}

func TestSession_ThemeNotifications(t *testing.T) {
	ctrl := theme.NewController(theme.NewMemoryStore(""), false, zap.NewNop())
	s, rec := newSession(t, session.WithTheme(ctrl))

	assert.True(t, s.SystemThemeChanged(true))
	assert.Equal(t, models.ThemeLight, s.ToggleTheme())
	assert.False(t, s.SystemThemeChanged(true))

	assert.Equal(t, []models.Theme{models.ThemeDark, models.ThemeLight}, rec.themes)
	assert.Empty(t, rec.products)
	assert.Empty(t, rec.carts)
	assert.Equal(t, models.ThemeLight, s.Snapshot().Theme)
}

func TestSession_RenderAndSnapshot(t *testing.T) {
	s, rec := newSession(t, session.WithID("fixed"))
	assert.Equal(t, "fixed", s.ID())

	s.Render()
	require.Len(t, rec.products, 1)
	require.Len(t, rec.carts, 1)
	require.Len(t, rec.themes, 1)

	snap := s.Snapshot()
	assert.Equal(t, []string{"x"}, snap.Filters.Categories)
	assert.Equal(t, 2, snap.Products.Count)
	assert.True(t, snap.Cart.Empty)
	assert.Equal(t, "0 items", snap.Cart.ItemCountLabel)
	assert.Equal(t, models.ThemeLight, snap.Theme)
}

func TestSession_IDsAreUnique(t *testing.T) {
	a := session.New(catalogtest.Example())
	b := session.New(catalogtest.Example())
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

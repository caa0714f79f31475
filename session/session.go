// Package session coordinates one shopper's storefront: filter criteria, cart
// and theme. Every mutator updates state, derives the affected view and
// notifies the renderer before returning. A Session is not safe for
// concurrent use; callers serialise access.
package session

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopsmart/cart"
	"shopsmart/catalog"
	"shopsmart/models"
	"shopsmart/theme"
	"shopsmart/utils"
)

// CheckoutMessage is shown to the shopper instead of a checkout flow.
const CheckoutMessage = "Checkout flow coming soon."

// ErrCheckoutUnavailable is returned by Checkout.
var ErrCheckoutUnavailable = errors.New("checkout unavailable")

// Session is the view state of one shopper.
type Session struct {
	id       string
	catalog  *catalog.Catalog
	criteria models.FilterCriteria
	cart     *cart.Store
	cartOpen bool
	theme    *theme.Controller
	renderer Renderer
	badges   BadgeEvaluator
	logger   *zap.Logger
}

// Option customises a Session.
type Option func(*Session)

// WithID sets the session id instead of a random UUID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithRenderer sets the listener notified after each mutation.
func WithRenderer(r Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithTheme sets the theme controller.
func WithTheme(c *theme.Controller) Option {
	return func(s *Session) { s.theme = c }
}

// WithBadges sets the badge evaluator used for product cards.
func WithBadges(b BadgeEvaluator) Option {
	return func(s *Session) { s.badges = b }
}

// WithLogger sets the logger; mutations are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New starts a session over c with default criteria and an empty cart.
func New(c *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		catalog:  c,
		criteria: models.DefaultFilterCriteria(c.MaxPriceBound()),
		cart:     cart.NewStore(c),
		renderer: NopRenderer{},
		badges:   DefaultBadges{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.theme == nil {
		s.theme = theme.NewController(nil, false, s.logger)
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	s.theme.OnChange(func(t models.Theme) {
		s.logger.Debug("Theme changed", zap.String("theme", string(t)))
		s.renderer.ThemeChanged(t)
	})
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Catalog returns the catalog snapshot the session was started with.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Theme returns the theme controller.
func (s *Session) Theme() *theme.Controller {
	return s.theme
}

// Render pushes every view to the renderer, as on first paint.
func (s *Session) Render() {
	s.productsChanged()
	s.cartChanged()
	s.renderer.ThemeChanged(s.theme.Current())
}

func (s *Session) productsChanged() {
	s.renderer.ProductsChanged(s.Products(), s.Filters())
}

func (s *Session) cartChanged() {
	s.renderer.CartChanged(s.Cart())
}

// SetCategory restricts products to a category; "all" lifts the restriction.
func (s *Session) SetCategory(category string) {
	s.criteria.Category = normalizeSentinel(category)
	s.logger.Debug("SetCategory", zap.String("category", s.criteria.Category))
	s.productsChanged()
}

// SetTag restricts products to a tag; "all" lifts the restriction.
func (s *Session) SetTag(tag string) {
	s.criteria.Tag = normalizeSentinel(tag)
	s.logger.Debug("SetTag", zap.String("tag", s.criteria.Tag))
	s.productsChanged()
}

func normalizeSentinel(v string) string {
	if v == "" {
		return models.FilterAll
	}
	return v
}

// SetSearchText trims and lowercases the search text.
func (s *Session) SetSearchText(text string) {
	s.criteria.SearchText = utils.NormalizeSearchText(text)
	s.logger.Debug("SetSearchText", zap.String("search", s.criteria.SearchText))
	s.productsChanged()
}

// SetSort selects the sort by wire name; unknown names select featured.
func (s *Session) SetSort(mode string) {
	s.criteria.Sort = models.ParseSortMode(mode)
	s.logger.Debug("SetSort", zap.Stringer("sort", s.criteria.Sort))
	s.productsChanged()
}

// SetSelectedPrice sets the price ceiling, clamped to [0, MaxPriceBound].
func (s *Session) SetSelectedPrice(price decimal.Decimal) {
	switch {
	case price.IsNegative():
		price = decimal.Zero
	case price.GreaterThan(s.criteria.MaxPriceBound):
		price = s.criteria.MaxPriceBound
	}
	s.criteria.SelectedPrice = price
	s.logger.Debug("SetSelectedPrice", zap.String("price", price.String()))
	s.productsChanged()
}

// ShowBestSellers sorts by rating.
func (s *Session) ShowBestSellers() {
	s.criteria.Sort = models.SortRating
	s.logger.Debug("ShowBestSellers")
	s.productsChanged()
}

// ResetFilters restores the startup criteria. The cart is left untouched.
func (s *Session) ResetFilters() {
	s.criteria = models.DefaultFilterCriteria(s.catalog.MaxPriceBound())
	s.logger.Debug("ResetFilters")
	s.productsChanged()
}

// AddToCart adds one unit of the product; unknown ids change nothing.
func (s *Session) AddToCart(productID string) {
	added := s.cart.Add(productID)
	s.logger.Debug("AddToCart", zap.String("product", productID), zap.Bool("known", added))
	s.cartChanged()
}

// SetQuantity sets the clamped quantity of an existing cart line.
func (s *Session) SetQuantity(productID string, quantity int) {
	found := s.cart.SetQuantity(productID, quantity)
	s.logger.Debug("SetQuantity", zap.String("product", productID),
		zap.Int("requested", quantity), zap.Bool("found", found))
	s.cartChanged()
}

// RemoveFromCart deletes the product's cart line.
func (s *Session) RemoveFromCart(productID string) {
	removed := s.cart.Remove(productID)
	s.logger.Debug("RemoveFromCart", zap.String("product", productID), zap.Bool("found", removed))
	s.cartChanged()
}

// OpenCart opens the cart drawer.
func (s *Session) OpenCart() {
	s.setCartOpen(true)
}

// CloseCart closes the cart drawer.
func (s *Session) CloseCart() {
	s.setCartOpen(false)
}

// ToggleCart flips the cart drawer and returns the new state.
func (s *Session) ToggleCart() bool {
	s.setCartOpen(!s.cartOpen)
	return s.cartOpen
}

// CartOpen reports whether the cart drawer is open.
func (s *Session) CartOpen() bool {
	return s.cartOpen
}

func (s *Session) setCartOpen(open bool) {
	s.cartOpen = open
	s.cartChanged()
}

// Checkout always fails with ErrCheckoutUnavailable; the cart is kept.
func (s *Session) Checkout() error {
	s.logger.Info("Checkout requested", zap.Int("items", s.cart.Summarize().TotalItemCount))
	return ErrCheckoutUnavailable
}

// ToggleTheme flips and persists the theme.
func (s *Session) ToggleTheme() models.Theme {
	return s.theme.Toggle()
}

// SystemThemeChanged forwards the system dark-mode signal.
func (s *Session) SystemThemeChanged(prefersDark bool) bool {
	return s.theme.SystemPreferenceChanged(prefersDark)
}

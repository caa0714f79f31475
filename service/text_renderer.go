package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shopsmart/models"
	"shopsmart/session"
)

type palette struct {
	fg, accent, muted, warn lipgloss.Color
}

var (
	lightPalette = palette{fg: "#101F38", accent: "#6C5CE7", muted: "#636E72", warn: "#D63031"}
	darkPalette  = palette{fg: "#E8ECF3", accent: "#A29BFE", muted: "#B2BEC3", warn: "#FF7675"}
)

// TextRenderer draws storefront views for a terminal. As a session.Renderer
// it prints each section again whenever it changes.
type TextRenderer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	theme    models.Theme
}

// Ensure TextRenderer implements session.Renderer
var _ session.Renderer = (*TextRenderer)(nil)

// NewTextRenderer writes to w; colours are used only when w is a terminal.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w, renderer: lipgloss.NewRenderer(w), theme: models.ThemeLight}
}

func (t *TextRenderer) palette() palette {
	if t.theme == models.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

func (t *TextRenderer) ProductsChanged(products models.ProductListView, filters models.FilterView) {
	fmt.Fprintln(t.w, t.Filters(filters))
	fmt.Fprintln(t.w, t.Products(products))
}

func (t *TextRenderer) CartChanged(cart models.CartView) {
	fmt.Fprintln(t.w, t.Cart(cart))
}

func (t *TextRenderer) ThemeChanged(theme models.Theme) {
	t.theme = theme
	fmt.Fprintln(t.w, t.renderer.NewStyle().Faint(true).Render("theme: "+string(theme)))
}

// Snapshot renders a complete storefront view.
func (t *TextRenderer) Snapshot(view models.StorefrontView) string {
	t.theme = view.Theme
	p := t.palette()
	title := t.renderer.NewStyle().Bold(true).Foreground(p.accent).Render(DefaultTitle)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		t.Filters(view.Filters),
		"",
		t.Products(view.Products),
		"",
		t.Cart(view.Cart),
	)
}

// Filters renders the active criteria and tag chips.
func (t *TextRenderer) Filters(f models.FilterView) string {
	p := t.palette()
	muted := t.renderer.NewStyle().Foreground(p.muted)
	active := t.renderer.NewStyle().Bold(true).Foreground(p.accent)

	chips := make([]string, 0, len(f.TagChips))
	for _, chip := range f.TagChips {
		if chip.Active {
			chips = append(chips, active.Render("["+chip.Label+"]"))
		} else {
			chips = append(chips, muted.Render(chip.Label))
		}
	}

	c := f.Criteria
	line := fmt.Sprintf("category: %s  sort: %s  up to: %s", c.Category, c.Sort, f.SelectedPriceDisplay)
	if c.SearchText != "" {
		line += fmt.Sprintf("  search: %q", c.SearchText)
	}
	return lipgloss.JoinVertical(lipgloss.Left, muted.Render(line), strings.Join(chips, " "))
}

// Products renders the product list or its empty state.
func (t *TextRenderer) Products(v models.ProductListView) string {
	p := t.palette()
	if v.Empty {
		return t.renderer.NewStyle().Italic(true).Foreground(p.muted).Render("No products match your filters.")
	}

	name := t.renderer.NewStyle().Bold(true).Foreground(p.fg)
	price := t.renderer.NewStyle().Foreground(p.accent)
	muted := t.renderer.NewStyle().Foreground(p.muted)
	badge := t.renderer.NewStyle().Foreground(p.warn)

	rows := make([]string, 0, len(v.Cards))
	for _, card := range v.Cards {
		var badges []string
		for _, b := range card.Badges {
			badges = append(badges, badge.Render("["+b.Label+"]"))
		}
		row := fmt.Sprintf("%s  %s  %s  %s",
			name.Render(card.Name), price.Render(card.PriceDisplay),
			muted.Render(card.Category+" · "+card.RatingDisplay), strings.Join(badges, " "))
		rows = append(rows, strings.TrimRight(row, " "))
	}
	header := muted.Render(fmt.Sprintf("%d products", v.Count))
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, rows...)...)
}

// Cart renders the cart lines and totals inside a border.
func (t *TextRenderer) Cart(v models.CartView) string {
	p := t.palette()
	box := t.renderer.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent).Padding(0, 1)
	bold := t.renderer.NewStyle().Bold(true)

	lines := []string{bold.Render("Cart · " + v.ItemCountLabel)}
	if v.Empty {
		lines = append(lines, "Your cart is empty.")
	}
	for _, l := range v.Lines {
		lines = append(lines, fmt.Sprintf("%s × %d  %s", l.Name, l.Quantity, l.LineTotalDisplay))
	}
	lines = append(lines, bold.Render("Total: "+v.TotalDisplay))
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

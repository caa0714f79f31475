package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"shopsmart/models"
	"shopsmart/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTitle is the storefront heading.
const DefaultTitle = "ShopSmart"

const cardsPerPage = 9

var sortOptions = []struct {
	mode  models.SortMode
	label string
}{
	{models.SortFeatured, "Featured"},
	{models.SortPriceAsc, "Price: low to high"},
	{models.SortPriceDesc, "Price: high to low"},
	{models.SortRating, "Best rated"},
	{models.SortNew, "Newest"},
}

// RenderOptions controls how a storefront page is rendered.
type RenderOptions struct {
	// Interactive adds the controls and script that call the HTTP API.
	Interactive bool
	// InlineMedia embeds product tiles as data URIs, for documents that are
	// rendered without a server (exports, CLI output).
	InlineMedia bool
	// PagePath is the form action of the filter controls.
	PagePath string
}

type sortOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Title            string
	View             models.StorefrontView
	Pages            [][]models.ProductCard
	Media            map[string]template.URL
	SortOptions      []sortOption
	MaxPrice         string
	SelectedPrice    string
	ThemeDark        bool
	ThemeToggleLabel string
	Interactive      bool
	PagePath         string
}

// RenderService renders storefront snapshots to HTML.
type RenderService struct {
	tmpl    *template.Template
	media   *MediaService
	baseURL string
	title   string
	logger  *zap.Logger
}

// NewRenderService parses the embedded storefront template.
// baseURL prefixes media links when media is not inlined.
func NewRenderService(media *MediaService, baseURL string, logger *zap.Logger) (*RenderService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/storefront.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if media == nil {
		media = NewMediaService("", logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderService{
		tmpl:    tmpl,
		media:   media,
		baseURL: strings.TrimRight(baseURL, "/"),
		title:   DefaultTitle,
		logger:  logger,
	}, nil
}

// MediaURL returns the HTTP path of a product tile.
func MediaURL(baseURL, productID string) string {
	return strings.TrimRight(baseURL, "/") + "/media/" + url.PathEscape(productID) + ".png"
}

// RenderHTML writes the storefront page for view.
func (s *RenderService) RenderHTML(w io.Writer, view models.StorefrontView, opts RenderOptions) error {
	media := make(map[string]template.URL, len(view.Products.Cards))
	for _, card := range view.Products.Cards {
		if !opts.InlineMedia {
			media[card.ID] = template.URL(MediaURL(s.baseURL, card.ID))
			continue
		}
		uri, err := s.media.DataURI(card.Product, MediaSizeMedium)
		if err != nil {
			s.logger.Warn("Failed to inline media tile", zap.String("product", card.ID), zap.Error(err))
			continue
		}
		media[card.ID] = template.URL(uri)
	}

	options := make([]sortOption, 0, len(sortOptions))
	for _, o := range sortOptions {
		options = append(options, sortOption{
			Value:    o.mode.String(),
			Label:    o.label,
			Selected: o.mode == view.Filters.Criteria.Sort,
		})
	}

	pagePath := opts.PagePath
	if pagePath == "" {
		pagePath = "/storefront/page"
	}

	data := pageData{
		Title:            s.title,
		View:             view,
		Pages:            paginateCards(view.Products.Cards),
		Media:            media,
		SortOptions:      options,
		MaxPrice:         view.Filters.Criteria.MaxPriceBound.String(),
		SelectedPrice:    view.Filters.Criteria.SelectedPrice.String(),
		ThemeDark:        view.Theme == models.ThemeDark,
		ThemeToggleLabel: theme.ToggleLabel(view.Theme),
		Interactive:      opts.Interactive,
		PagePath:         pagePath,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderHTMLString is RenderHTML into a string.
func (s *RenderService) RenderHTMLString(view models.StorefrontView, opts RenderOptions) (string, error) {
	var sb strings.Builder
	if err := s.RenderHTML(&sb, view, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// paginateCards splits cards into printable pages of nine.
func paginateCards(cards []models.ProductCard) [][]models.ProductCard {
	var pages [][]models.ProductCard
	for i := 0; i < len(cards); i += cardsPerPage {
		end := i + cardsPerPage
		if end > len(cards) {
			end = len(cards)
		}
		pages = append(pages, cards[i:end])
	}
	return pages
}

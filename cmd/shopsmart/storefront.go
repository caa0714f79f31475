package main

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"shopsmart/app"
	"shopsmart/catalog"
	"shopsmart/config"
	"shopsmart/repository"
	"shopsmart/service"
	"shopsmart/session"
	"shopsmart/theme"
)

// viewFlags are the storefront interactions a one-shot command replays.
type viewFlags struct {
	source   string
	category string
	tag      string
	search   string
	sort     string
	maxPrice string
	add      []string
	toggle   bool
	dark     bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", "", "catalog source: file path, sql or drive:<fileID> (default from config)")
	cmd.Flags().StringVar(&f.category, "category", "", "category filter")
	cmd.Flags().StringVar(&f.tag, "tag", "", "tag filter")
	cmd.Flags().StringVar(&f.search, "search", "", "search text")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort: featured, price-asc, price-desc, rating, new")
	cmd.Flags().StringVar(&f.maxPrice, "max-price", "", "price ceiling")
	cmd.Flags().StringSliceVar(&f.add, "add", nil, "product ids to add to the cart, once per occurrence")
	cmd.Flags().BoolVar(&f.toggle, "toggle-theme", false, "toggle and persist the theme")
	cmd.Flags().BoolVar(&f.dark, "prefers-dark", false, "system prefers a dark colour scheme")
}

// loadCatalog opens the configured (or overridden) source and loads it.
func (c *cli) loadCatalog(ctx context.Context, sourceOverride string) (*catalog.Catalog, error) {
	name := c.cfg.CatalogSource
	if sourceOverride != "" {
		name = sourceOverride
	}
	ref, err := config.ParseCatalogSource(name)
	if err != nil {
		return nil, err
	}
	source, err := app.OpenCatalogSource(ctx, c.cfg, ref, c.logger)
	if err != nil {
		return nil, err
	}
	defer source.Close()
	return repository.LoadCatalog(ctx, source.Repo)
}

// buildSession loads the catalog and replays f on a new session. trace, when
// set, receives every view the session pushes.
func (c *cli) buildSession(ctx context.Context, f *viewFlags, trace io.Writer) (*session.Session, error) {
	cat, err := c.loadCatalog(ctx, f.source)
	if err != nil {
		return nil, err
	}

	badges, err := service.NewBadgeRules(c.cfg.Badges, c.logger)
	if err != nil {
		return nil, err
	}

	var store theme.Store
	if c.cfg.ThemeStore != "" {
		store = theme.NewFileStore(c.cfg.ThemeStore)
	}

	opts := []session.Option{
		session.WithTheme(theme.NewController(store, f.dark, c.logger)),
		session.WithBadges(badges),
		session.WithLogger(c.logger),
	}
	if trace != nil {
		opts = append(opts, session.WithRenderer(service.NewTextRenderer(trace)))
	}
	s := session.New(cat, opts...)

	if f.category != "" {
		s.SetCategory(f.category)
	}
	if f.tag != "" {
		s.SetTag(f.tag)
	}
	if f.search != "" {
		s.SetSearchText(f.search)
	}
	if f.sort != "" {
		s.SetSort(f.sort)
	}
	if f.maxPrice != "" {
		price, err := decimal.NewFromString(f.maxPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid --max-price %q: %w", f.maxPrice, err)
		}
		s.SetSelectedPrice(price)
	}
	for _, id := range f.add {
		if _, ok := cat.Lookup(id); !ok {
			return nil, fmt.Errorf("unknown product %q", id)
		}
		s.AddToCart(id)
	}
	if f.toggle {
		s.ToggleTheme()
	}
	return s, nil
}

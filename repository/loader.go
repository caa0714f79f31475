package repository

import (
	"context"
	"fmt"

	"shopsmart/catalog"
)

// LoadCatalog loads products from repo and builds a validated catalog.
func LoadCatalog(ctx context.Context, repo CatalogRepositoryInterface) (*catalog.Catalog, error) {
	products, err := repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	c, err := catalog.New(products)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

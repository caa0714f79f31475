package repository

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"shopsmart/models"
)

// FileCatalogRepository reads a JSON or YAML catalog document from disk.
type FileCatalogRepository struct {
	path   string
	logger *zap.Logger
}

// NewFileCatalogRepository creates a repository for the catalog file at path.
func NewFileCatalogRepository(path string, logger *zap.Logger) *FileCatalogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileCatalogRepository{path: path, logger: logger}
}

// Ensure FileCatalogRepository implements the catalog interfaces
var (
	_ CatalogRepositoryInterface = (*FileCatalogRepository)(nil)
	_ CatalogWriterInterface     = (*FileCatalogRepository)(nil)
)

// Path returns the catalog file path.
func (r *FileCatalogRepository) Path() string {
	return r.path
}

// LoadProducts reads and validates the catalog file.
func (r *FileCatalogRepository) LoadProducts(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	products, err := DecodeCatalog(data, FormatFromPath(r.path))
	if err != nil {
		r.logger.Error("❌ Catalog file rejected", zap.String("path", r.path), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	r.logger.Info("✓ Catalog file loaded", zap.String("path", r.path), zap.Int("products", len(products)))
	return products, nil
}

// ReplaceProducts overwrites the catalog file with products.
func (r *FileCatalogRepository) ReplaceProducts(ctx context.Context, products []models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeCatalog(products, FormatFromPath(r.path))
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace catalog file: %w", err)
	}
	return nil
}

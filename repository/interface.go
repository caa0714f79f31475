package repository

import (
	"context"

	"shopsmart/models"
)

// CatalogRepositoryInterface defines the contract for catalog sources.
// Products are returned in catalog order.
type CatalogRepositoryInterface interface {
	LoadProducts(ctx context.Context) ([]models.Product, error)
}

// CatalogWriterInterface defines the contract for catalog destinations.
type CatalogWriterInterface interface {
	ReplaceProducts(ctx context.Context, products []models.Product) error
}

// DriveFileFetcherInterface defines the Google Drive operations a Drive
// catalog needs.
type DriveFileFetcherInterface interface {
	FileName(ctx context.Context, fileID string) (string, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}

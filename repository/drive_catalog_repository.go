package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shopsmart/models"
)

// DriveCatalogRepository reads a catalog document stored in Google Drive.
type DriveCatalogRepository struct {
	drive  DriveFileFetcherInterface
	fileID string
	logger *zap.Logger
}

// NewDriveCatalogRepository creates a repository for the Drive file fileID.
func NewDriveCatalogRepository(drive DriveFileFetcherInterface, fileID string, logger *zap.Logger) *DriveCatalogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DriveCatalogRepository{drive: drive, fileID: fileID, logger: logger}
}

// Ensure DriveCatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*DriveCatalogRepository)(nil)

// LoadProducts downloads the file and decodes it by its file name extension.
func (r *DriveCatalogRepository) LoadProducts(ctx context.Context) ([]models.Product, error) {
	name, err := r.drive.FileName(ctx, r.fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get Drive file metadata: %w", err)
	}

	r.logger.Info("📥 Downloading catalog from Drive", zap.String("fileID", r.fileID), zap.String("name", name))
	data, err := r.drive.Download(ctx, r.fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to download Drive file %s: %w", r.fileID, err)
	}

	products, err := DecodeCatalog(data, FormatFromPath(name))
	if err != nil {
		return nil, fmt.Errorf("drive file %s: %w", name, err)
	}
	r.logger.Info("✓ Drive catalog loaded", zap.String("name", name), zap.Int("products", len(products)))
	return products, nil
}

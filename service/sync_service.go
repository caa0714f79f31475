package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shopsmart/catalog"
	"shopsmart/repository"
)

// SyncStats summarises a catalog synchronization.
// Added and Removed count product ids; Kept counts ids present on both sides.
type SyncStats struct {
	Total   int `json:"total"`
	Added   int `json:"added"`
	Kept    int `json:"kept"`
	Removed int `json:"removed"`
}

// SyncService copies a catalog from one source (file, Drive) into a
// destination (usually the SQL repository).
type SyncService struct {
	source      repository.CatalogRepositoryInterface
	destination repository.CatalogWriterInterface
	logger      *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(source repository.CatalogRepositoryInterface, destination repository.CatalogWriterInterface, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{source: source, destination: destination, logger: logger}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncCatalog validates the source catalog and replaces the destination with it.
// Nothing is written when the source is invalid.
func (s *SyncService) SyncCatalog(ctx context.Context) (SyncStats, error) {
	s.logger.Info("🔄 Starting catalog synchronization")

	source, err := repository.LoadCatalog(ctx, s.source)
	if err != nil {
		return SyncStats{}, fmt.Errorf("failed to load source catalog: %w", err)
	}

	existing := map[string]bool{}
	if reader, ok := s.destination.(repository.CatalogRepositoryInterface); ok {
		current, err := reader.LoadProducts(ctx)
		if err != nil {
			s.logger.Warn("⚠️  Could not read destination catalog, stats will count every product as added", zap.Error(err))
		}
		for _, p := range current {
			existing[p.ID] = true
		}
	}

	stats := diffStats(source, existing)
	if err := s.destination.ReplaceProducts(ctx, source.Products()); err != nil {
		return SyncStats{}, fmt.Errorf("failed to write destination catalog: %w", err)
	}

	s.logger.Info("🎉 Catalog synchronization completed",
		zap.Int("total", stats.Total), zap.Int("added", stats.Added),
		zap.Int("kept", stats.Kept), zap.Int("removed", stats.Removed))
	return stats, nil
}

func diffStats(source *catalog.Catalog, existing map[string]bool) SyncStats {
	stats := SyncStats{Total: source.Len()}
	for _, p := range source.Products() {
		if existing[p.ID] {
			stats.Kept++
		} else {
			stats.Added++
		}
	}
	for id := range existing {
		if _, ok := source.Lookup(id); !ok {
			stats.Removed++
		}
	}
	return stats
}

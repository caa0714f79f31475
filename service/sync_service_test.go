package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopsmart/catalog/catalogtest"
	"shopsmart/db"
	"shopsmart/models"
	"shopsmart/repository"
)

func TestSyncService_FileToSQL(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	source := repository.NewFileCatalogRepository(path, nil)
	require.NoError(t, source.ReplaceProducts(ctx, catalogtest.Mixed().Products()))

	conn, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()
	dest := repository.NewSQLCatalogRepository(conn, nil)
	require.NoError(t, dest.EnsureSchema(ctx))
	require.NoError(t, dest.ReplaceProducts(ctx, []models.Product{
		catalogtest.Product("mug", 1),
		catalogtest.Product("retired", 1),
	}))

	stats, err := NewSyncService(source, dest, zap.NewNop()).SyncCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncStats{Total: 6, Added: 5, Kept: 1, Removed: 1}, stats)

	got, err := dest.LoadProducts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, "hoodie", got[0].ID)
}

type memoryWriter struct {
	products []models.Product
}

func (m *memoryWriter) ReplaceProducts(_ context.Context, products []models.Product) error {
	m.products = products
	return nil
}

func TestSyncService_InvalidSourceWritesNothing(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.json")
	source := repository.NewFileCatalogRepository(path, nil)
	dup := append(catalogtest.Example().Products(), catalogtest.Product("A", 5))
	require.NoError(t, source.ReplaceProducts(ctx, dup))

	dest := &memoryWriter{}
	_, err := NewSyncService(source, dest, nil).SyncCatalog(ctx)
	assert.Error(t, err)
	assert.Nil(t, dest.products)
}

func TestIsCatalogFile(t *testing.T) {
	assert.True(t, isCatalogFile("shop.json", "application/json"))
	assert.True(t, isCatalogFile("shop.YML", "text/plain"))
	assert.False(t, isCatalogFile("photo.png", "image/png"))
	assert.False(t, isCatalogFile("shop.json", "application/vnd.google-apps.document"))
}

package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"shopsmart/catalog"
	"shopsmart/catalog/catalogtest"
	"shopsmart/repository"
)

func TestCatalogWatcher_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	repo := repository.NewFileCatalogRepository(path, nil)
	require.NoError(t, repo.ReplaceProducts(ctx, catalogtest.Example().Products()))

	reloaded := make(chan *catalog.Catalog, 4)
	w, err := repository.NewCatalogWatcher(repo, func(c *catalog.Catalog) { reloaded <- c }, zap.NewNop())
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(ctx))

	// an invalid edit is skipped
	require.NoError(t, os.WriteFile(path, []byte(`{"products": [{"id": ""}]}`), 0o644))
	select {
	case c := <-reloaded:
		t.Fatalf("unexpected reload with %d products", c.Len())
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, repo.ReplaceProducts(ctx, catalogtest.Mixed().Products()))
	select {
	case c := <-reloaded:
		assert.Equal(t, 6, c.Len())
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}

	w.Stop()
	w.Stop()
}

func TestCatalogWatcher_RunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "catalog.json")
	repo := repository.NewFileCatalogRepository(path, nil)
	w, err := repository.NewCatalogWatcher(repo, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

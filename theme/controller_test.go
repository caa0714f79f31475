package theme_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopsmart/models"
	"shopsmart/theme"
)

type brokenStore struct{}

func (brokenStore) Load() (models.Theme, bool, error) {
	return "", false, errors.New("storage disabled")
}

func (brokenStore) Save(models.Theme) error {
	return errors.New("storage disabled")
}

func TestNewController_InitialTheme(t *testing.T) {
	tests := []struct {
		name        string
		stored      string
		prefersDark bool
		want        models.Theme
		explicit    bool
	}{
		{"nothing stored, light system", "", false, models.ThemeLight, false},
		{"nothing stored, dark system", "", true, models.ThemeDark, false},
		{"stored light beats dark system", "light", true, models.ThemeLight, true},
		{"stored dark", "dark", false, models.ThemeDark, true},
		{"garbage stored", "purple", true, models.ThemeDark, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := theme.NewMemoryStore(tt.stored)
			c := theme.NewController(store, tt.prefersDark, zap.NewNop())
			assert.Equal(t, tt.want, c.Current())
			assert.Equal(t, tt.explicit, c.HasExplicitChoice())

			// the initial theme is never written back
			_, ok, _ := store.Load()
			assert.Equal(t, tt.explicit, ok)
		})
	}
}

func TestController_TogglePersists(t *testing.T) {
	store := theme.NewMemoryStore("")
	c := theme.NewController(store, false, zap.NewNop())

	var announced []models.Theme
	c.OnChange(func(th models.Theme) { announced = append(announced, th) })

	assert.Equal(t, models.ThemeDark, c.Toggle())
	stored, ok, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.ThemeDark, stored)

	assert.Equal(t, models.ThemeLight, c.Toggle())
	assert.Equal(t, []models.Theme{models.ThemeDark, models.ThemeLight}, announced)
}

func TestController_SystemSignalRespectsExplicitChoice(t *testing.T) {
	c := theme.NewController(theme.NewMemoryStore(""), false, zap.NewNop())

	assert.True(t, c.SystemPreferenceChanged(true))
	assert.Equal(t, models.ThemeDark, c.Current())
	assert.False(t, c.HasExplicitChoice())

	c.Toggle()
	assert.Equal(t, models.ThemeLight, c.Current())

	assert.False(t, c.SystemPreferenceChanged(true))
	assert.Equal(t, models.ThemeLight, c.Current())
}

func TestController_BrokenStoreStillWorks(t *testing.T) {
	c := theme.NewController(brokenStore{}, true, zap.NewNop())
	assert.Equal(t, models.ThemeDark, c.Current())

	assert.Equal(t, models.ThemeLight, c.Toggle())
	assert.True(t, c.HasExplicitChoice())
	assert.False(t, c.SystemPreferenceChanged(true), "explicit choice is remembered in memory")
	assert.Equal(t, models.ThemeLight, c.Current())
}

func TestController_ApplyNormalizes(t *testing.T) {
	c := theme.NewController(nil, true, nil)
	c.Apply(models.Theme("sepia"), false)
	assert.Equal(t, models.ThemeLight, c.Current())
	assert.False(t, c.HasExplicitChoice())
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := theme.NewFileStore(dir)
	assert.Equal(t, filepath.Join(dir, theme.StorageKey), store.Path())

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(models.ThemeDark))
	got, ok, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.ThemeDark, got)

	c := theme.NewController(store, false, zap.NewNop())
	assert.Equal(t, models.ThemeDark, c.Current())
}

func TestFileStore_IgnoresGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pref")
	require.NoError(t, os.WriteFile(path, []byte("chartreuse"), 0o644))

	_, ok, err := theme.NewFileStore(path).Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToggleLabel(t *testing.T) {
	assert.Equal(t, "Switch to light theme", theme.ToggleLabel(models.ThemeDark))
	assert.Equal(t, "Switch to dark theme", theme.ToggleLabel(models.ThemeLight))
}

// Package theme tracks the storefront colour scheme: the shopper's explicit
// choice wins over the system preference, and only explicit choices persist.
package theme

import (
	"go.uber.org/zap"

	"shopsmart/models"
)

// Controller owns the current theme of one session.
type Controller struct {
	store    Store
	logger   *zap.Logger
	current  models.Theme
	explicit bool
	onChange func(models.Theme)
}

// NewController picks the initial theme: the stored choice if any, otherwise
// dark when the system prefers dark, otherwise light. The initial theme is
// applied without persisting. A nil store behaves like an empty MemoryStore.
func NewController(store Store, prefersDark bool, logger *zap.Logger) *Controller {
	if store == nil {
		store = NewMemoryStore("")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{store: store, logger: logger}

	initial := systemTheme(prefersDark)
	stored, ok, err := store.Load()
	if err != nil {
		logger.Warn("Unable to access theme preference", zap.Error(err))
	}
	if ok {
		initial = stored
		c.explicit = true
	}
	c.current = initial
	return c
}

func systemTheme(prefersDark bool) models.Theme {
	if prefersDark {
		return models.ThemeDark
	}
	return models.ThemeLight
}

// OnChange registers the callback run after every theme application.
func (c *Controller) OnChange(fn func(models.Theme)) {
	c.onChange = fn
}

// Current returns the applied theme.
func (c *Controller) Current() models.Theme {
	return c.current
}

// HasExplicitChoice reports whether a stored or toggled choice exists.
func (c *Controller) HasExplicitChoice() bool {
	return c.explicit
}

// Toggle switches to the opposite theme and persists it.
func (c *Controller) Toggle() models.Theme {
	c.Apply(c.current.Opposite(), true)
	return c.current
}

// Apply sets the theme; unknown values become light. With persist the theme
// is saved and counts as an explicit choice even if saving fails.
func (c *Controller) Apply(t models.Theme, persist bool) {
	c.current = models.NormalizeTheme(string(t))
	if persist {
		c.explicit = true
		if err := c.store.Save(c.current); err != nil {
			c.logger.Warn("Unable to persist theme preference",
				zap.String("theme", string(c.current)), zap.Error(err))
		}
	}
	if c.onChange != nil {
		c.onChange(c.current)
	}
}

// SystemPreferenceChanged follows the system signal unless the shopper made an
// explicit choice. It reports whether the signal was applied.
func (c *Controller) SystemPreferenceChanged(prefersDark bool) bool {
	if c.explicit {
		return false
	}
	c.Apply(systemTheme(prefersDark), false)
	return true
}

// ToggleLabel is the accessible label of the theme toggle for the given theme.
func ToggleLabel(t models.Theme) string {
	if t == models.ThemeDark {
		return "Switch to light theme"
	}
	return "Switch to dark theme"
}

package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"shopsmart/models"
	"shopsmart/session"
	"shopsmart/theme"
)

type themeResponse struct {
	Theme       models.Theme `json:"theme"`
	ToggleLabel string       `json:"toggleLabel"`
	Explicit    bool         `json:"explicit"`
	Applied     *bool        `json:"applied,omitempty"`
}

type systemThemeRequest struct {
	PrefersDark bool `json:"prefersDark"`
}

func newThemeResponse(s *session.Session) themeResponse {
	current := s.Theme().Current()
	return themeResponse{
		Theme:       current,
		ToggleLabel: theme.ToggleLabel(current),
		Explicit:    s.Theme().HasExplicitChoice(),
	}
}

// ToggleTheme handles POST /theme/toggle
// The new theme is persisted in the session and mirrored in a long-lived cookie.
func (c *StorefrontController) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	c.sessions.Do(w, r, func(s *session.Session) {
		t := s.ToggleTheme()
		http.SetCookie(w, &http.Cookie{
			Name:     ThemeCookie,
			Value:    string(t),
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, c.logger, http.StatusOK, newThemeResponse(s))
	})
}

// SystemTheme handles POST /theme/system with body {"prefersDark": true}
func (c *StorefrontController) SystemTheme(w http.ResponseWriter, r *http.Request) {
	var req systemThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("❌ SystemTheme: failed to decode request body", zap.Error(err))
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	c.sessions.Do(w, r, func(s *session.Session) {
		applied := s.SystemThemeChanged(req.PrefersDark)
		resp := newThemeResponse(s)
		resp.Applied = &applied
		writeJSON(w, c.logger, http.StatusOK, resp)
	})
}

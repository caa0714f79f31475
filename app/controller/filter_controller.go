package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopsmart/session"
)

type valueRequest struct {
	Value string `json:"value"`
}

type priceRequest struct {
	Value decimal.Decimal `json:"value"`
}

// stringFilter builds a handler for POST /filters/{name} with body {"value": "..."}.
func (c *StorefrontController) stringFilter(name string, apply func(*session.Session, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req valueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			c.logger.Warn("❌ Filter: failed to decode request body", zap.String("filter", name), zap.Error(err))
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		c.sessions.Do(w, r, func(s *session.Session) {
			apply(s, req.Value)
			writeJSON(w, c.logger, http.StatusOK, s.Snapshot())
		})
	}
}

// SetCategory handles POST /filters/category
func (c *StorefrontController) SetCategory(w http.ResponseWriter, r *http.Request) {
	c.stringFilter("category", (*session.Session).SetCategory)(w, r)
}

// SetTag handles POST /filters/tag
func (c *StorefrontController) SetTag(w http.ResponseWriter, r *http.Request) {
	c.stringFilter("tag", (*session.Session).SetTag)(w, r)
}

// SetSearch handles POST /filters/search
func (c *StorefrontController) SetSearch(w http.ResponseWriter, r *http.Request) {
	c.stringFilter("search", (*session.Session).SetSearchText)(w, r)
}

// SetSort handles POST /filters/sort
func (c *StorefrontController) SetSort(w http.ResponseWriter, r *http.Request) {
	c.stringFilter("sort", (*session.Session).SetSort)(w, r)
}

// SetPrice handles POST /filters/price with body {"value": 120} or {"value": "120.50"}
func (c *StorefrontController) SetPrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("❌ SetPrice: failed to decode request body", zap.Error(err))
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	c.sessions.Do(w, r, func(s *session.Session) {
		s.SetSelectedPrice(req.Value)
		writeJSON(w, c.logger, http.StatusOK, s.Snapshot())
	})
}

// ResetFilters handles POST /filters/reset
func (c *StorefrontController) ResetFilters(w http.ResponseWriter, r *http.Request) {
	c.sessions.Do(w, r, func(s *session.Session) {
		s.ResetFilters()
		writeJSON(w, c.logger, http.StatusOK, s.Snapshot())
	})
}

// ShowBestSellers handles POST /filters/best-sellers
func (c *StorefrontController) ShowBestSellers(w http.ResponseWriter, r *http.Request) {
	c.sessions.Do(w, r, func(s *session.Session) {
		s.ShowBestSellers()
		writeJSON(w, c.logger, http.StatusOK, s.Snapshot())
	})
}

package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shopsmart/cart"
	"shopsmart/session"
)

type quantityRequest struct {
	// Quantity is a number or the raw text of a quantity input.
	Quantity json.RawMessage `json:"quantity"`
}

// parseQuantity accepts {"quantity": 3} and {"quantity": "3"}. Text that is
// not a number becomes the minimum quantity, like a quantity input does, and
// numbers are clamped into the cart's range.
func parseQuantity(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("quantity is required")
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return cart.ParseQuantity(n.String()), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("quantity must be a number or a string")
	}
	return cart.ParseQuantity(s), nil
}

// AddToCart handles POST /cart/items/{productID}
func (c *StorefrontController) AddToCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	c.sessions.Do(w, r, func(s *session.Session) {
		if _, ok := s.Catalog().Lookup(id); !ok {
			c.logger.Warn("⚠️  AddToCart: unknown product", zap.String("product", id))
			http.Error(w, fmt.Sprintf("Product not found: %s", id), http.StatusNotFound)
			return
		}
		s.AddToCart(id)
		writeJSON(w, c.logger, http.StatusOK, s.Cart())
	})
}

// SetQuantity handles PUT /cart/items/{productID}
func (c *StorefrontController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("❌ SetQuantity: failed to decode request body", zap.Error(err))
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	qty, err := parseQuantity(req.Quantity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.sessions.Do(w, r, func(s *session.Session) {
		s.SetQuantity(id, qty)
		writeJSON(w, c.logger, http.StatusOK, s.Cart())
	})
}

// RemoveFromCart handles DELETE /cart/items/{productID}
func (c *StorefrontController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	c.sessions.Do(w, r, func(s *session.Session) {
		s.RemoveFromCart(id)
		writeJSON(w, c.logger, http.StatusOK, s.Cart())
	})
}

// ToggleCart handles POST /cart/toggle
func (c *StorefrontController) ToggleCart(w http.ResponseWriter, r *http.Request) {
	c.sessions.Do(w, r, func(s *session.Session) {
		s.ToggleCart()
		writeJSON(w, c.logger, http.StatusOK, s.Cart())
	})
}

// CloseCart handles POST /cart/close
func (c *StorefrontController) CloseCart(w http.ResponseWriter, r *http.Request) {
	c.sessions.Do(w, r, func(s *session.Session) {
		s.CloseCart()
		writeJSON(w, c.logger, http.StatusOK, s.Cart())
	})
}

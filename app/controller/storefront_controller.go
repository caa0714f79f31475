package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopsmart/models"
	"shopsmart/service"
	"shopsmart/session"
)

// exportTimeout bounds one PDF/PNG export.
const exportTimeout = 60 * time.Second

// Exporter turns a rendered page into a PDF or PNG document.
type Exporter interface {
	Export(ctx context.Context, html string, format service.ExportFormat) ([]byte, error)
}

// StorefrontController handles the storefront HTTP API.
type StorefrontController struct {
	sessions *SessionRegistry
	renderer *service.RenderService
	media    *service.MediaService
	exporter Exporter
	logger   *zap.Logger
}

// NewStorefrontController creates a new StorefrontController.
// exporter may be nil, in which case exports answer 503.
func NewStorefrontController(
	sessions *SessionRegistry,
	renderer *service.RenderService,
	media *service.MediaService,
	exporter Exporter,
	logger *zap.Logger,
) *StorefrontController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorefrontController{
		sessions: sessions,
		renderer: renderer,
		media:    media,
		exporter: exporter,
		logger:   logger,
	}
}

// Ping handles GET /ping
func (c *StorefrontController) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// Catalog handles GET /catalog
func (c *StorefrontController) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.logger, http.StatusOK, c.sessions.Catalog().Products())
}

// Snapshot handles GET /storefront
func (c *StorefrontController) Snapshot(w http.ResponseWriter, r *http.Request) {
	c.sessions.Do(w, r, func(s *session.Session) {
		writeJSON(w, c.logger, http.StatusOK, s.Snapshot())
	})
}

// Page handles GET /storefront/page?category=&tag=&search=&sort=&price=&reset=1
// Query parameters are applied to the session before rendering.
func (c *StorefrontController) Page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var price *decimal.Decimal
	if raw := strings.TrimSpace(q.Get("price")); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			c.logger.Warn("❌ Page: invalid price", zap.String("price", raw))
			http.Error(w, fmt.Sprintf("Invalid price: %s", raw), http.StatusBadRequest)
			return
		}
		price = &p
	}

	c.sessions.Do(w, r, func(s *session.Session) {
		if q.Get("reset") == "1" {
			s.ResetFilters()
		}
		if q.Has("category") {
			s.SetCategory(q.Get("category"))
		}
		if q.Has("tag") {
			s.SetTag(q.Get("tag"))
		}
		if q.Has("search") {
			s.SetSearchText(q.Get("search"))
		}
		if q.Has("sort") {
			s.SetSort(q.Get("sort"))
		}
		if price != nil {
			s.SetSelectedPrice(*price)
		}

		var buf bytes.Buffer
		opts := service.RenderOptions{Interactive: true, PagePath: r.URL.Path}
		if err := c.renderer.RenderHTML(&buf, s.Snapshot(), opts); err != nil {
			c.logger.Error("❌ Page: error rendering HTML", zap.Error(err))
			http.Error(w, fmt.Sprintf("Failed to render storefront: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	})
}

// Export handles GET /storefront/export?format=pdf|png
func (c *StorefrontController) Export(w http.ResponseWriter, r *http.Request) {
	format, err := service.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		c.logger.Warn("❌ Export: invalid format", zap.String("format", r.URL.Query().Get("format")))
		http.Error(w, "Invalid format. Valid formats: pdf, png", http.StatusBadRequest)
		return
	}
	if c.exporter == nil {
		http.Error(w, "Export is not available", http.StatusServiceUnavailable)
		return
	}

	var view models.StorefrontView
	c.sessions.Do(w, r, func(s *session.Session) {
		view = s.Snapshot()
	})

	html, err := c.renderer.RenderHTMLString(view, service.RenderOptions{InlineMedia: true})
	if err != nil {
		c.logger.Error("❌ Export: error rendering HTML", zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to render storefront: %v", err), http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), exportTimeout)
	defer cancel()
	data, err := c.exporter.Export(ctx, html, format)
	if err != nil {
		c.logger.Error("❌ Export: error exporting storefront", zap.Error(err), zap.String("format", string(format)))
		http.Error(w, fmt.Sprintf("Failed to export storefront: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("storefront_%s.%s", time.Now().Format("20060102_150405"), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	c.logger.Info("✓ Export: storefront exported", zap.String("format", string(format)), zap.Int("bytes", len(data)))
}

// Media handles GET /media/{productID}.png?size=thumb|medium
func (c *StorefrontController) Media(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	size := r.URL.Query().Get("size")
	if size == "" {
		size = service.MediaSizeThumb
	}
	if size != service.MediaSizeThumb && size != service.MediaSizeMedium {
		http.Error(w, "Invalid size. Valid sizes: thumb, medium", http.StatusBadRequest)
		return
	}

	c.sessions.Do(w, r, func(s *session.Session) {
		p, ok := s.Catalog().Lookup(id)
		if !ok {
			http.Error(w, fmt.Sprintf("Product not found: %s", id), http.StatusNotFound)
			return
		}

		data, err := c.media.Tile(p, size)
		if err != nil {
			c.logger.Error("❌ Media: error rendering tile", zap.String("product", id), zap.Error(err))
			http.Error(w, fmt.Sprintf("Failed to render media: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "private, max-age=86400")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}

// Checkout handles POST /checkout
func (c *StorefrontController) Checkout(w http.ResponseWriter, r *http.Request) {
	var err error
	c.sessions.Do(w, r, func(s *session.Session) {
		err = s.Checkout()
	})
	if errors.Is(err, session.ErrCheckoutUnavailable) {
		writeJSON(w, c.logger, http.StatusNotImplemented, messageResponse{Message: session.CheckoutMessage})
		return
	}
	writeJSON(w, c.logger, http.StatusOK, messageResponse{Message: "ok"})
}

package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"shopsmart/app/controller"
)

// requestTimeout leaves room for chromedp exports.
const requestTimeout = 90 * time.Second

type Controllers struct {
	Storefront *controller.StorefrontController
}

// New builds the HTTP handler for the storefront API.
func New(controllers *Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	sf := controllers.Storefront

	r.Get("/ping", sf.Ping)
	r.Get("/catalog", sf.Catalog)

	r.Route("/storefront", func(r chi.Router) {
		r.Get("/", sf.Snapshot)
		r.Get("/page", sf.Page)
		r.Get("/export", sf.Export)
	})

	r.Get("/media/{productID}.png", sf.Media)

	r.Route("/filters", func(r chi.Router) {
		r.Post("/category", sf.SetCategory)
		r.Post("/tag", sf.SetTag)
		r.Post("/search", sf.SetSearch)
		r.Post("/sort", sf.SetSort)
		r.Post("/price", sf.SetPrice)
		r.Post("/reset", sf.ResetFilters)
		r.Post("/best-sellers", sf.ShowBestSellers)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Post("/items/{productID}", sf.AddToCart)
		r.Put("/items/{productID}", sf.SetQuantity)
		r.Delete("/items/{productID}", sf.RemoveFromCart)
		r.Post("/toggle", sf.ToggleCart)
		r.Post("/close", sf.CloseCart)
	})

	r.Post("/checkout", sf.Checkout)

	r.Route("/theme", func(r chi.Router) {
		r.Post("/toggle", sf.ToggleTheme)
		r.Post("/system", sf.SystemTheme)
	})

	return r
}

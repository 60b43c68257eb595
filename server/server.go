// Package server exposes report generation as a small upload form.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nonsonwune/result_report/assets"
	"github.com/nonsonwune/result_report/generate"
)

type Options struct {
	CORSOrigins    []string
	MaxUploadBytes int64
	DefaultAssetID string

	// AllowedAssetIDs are the extra templates a client may select by asset_id.
	AllowedAssetIDs []string
}

// NewRouter mounts the form, the report API and the cache controls.
func NewRouter(gen *generate.Generator, cache *assets.Cache, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	h := &handlers{gen: gen, cache: cache, opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Report-ID", "X-Report-Pages"},
		MaxAge:         300,
	}))

	r.Get("/", h.form)
	r.Route("/api", func(ar chi.Router) {
		ar.Post("/reports", h.createReport)
		ar.Post("/preview", h.preview)
		ar.Delete("/assets/{assetID}", h.invalidateAsset)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

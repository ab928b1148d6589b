package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/", h.getServerVersion)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)
		r.Post("/api/auth/password-reset", h.passwordReset)
	})

	// routes behind JWT authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/sync/up", h.syncUp)
		r.Post("/api/sync/down", h.syncDown)

		r.Post("/api/photos/presigned-url", h.presignPhotoUpload)
		r.Post("/api/photos/upload/{photoID}", h.uploadPhoto)
		r.Get("/api/photos/download/{photoID}", h.downloadPhoto)
		r.Delete("/api/photos/{photoID}", h.deletePhoto)
	})

	return router
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mmeshcher/linkedin-collector/internal/middleware"
)

func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Gzip)

	r.Get("/health", h.HealthHandler)
	r.Get("/debug", h.DebugHandler)
	r.Get("/ping", h.PingHandler)

	r.Group(func(r chi.Router) {
		r.Use(h.sessions.Middleware)

		r.Get("/", h.IndexHandler)
		r.Get("/login", h.LoginPageHandler)
		r.Get("/form", h.FormPageHandler)
		r.Get("/logout", h.LogoutHandler)

		if h.limiter != nil {
			r.With(h.limiter.Limit).Post("/send_code", h.SendCodeHandler)
		} else {
			r.Post("/send_code", h.SendCodeHandler)
		}
		r.Post("/verify_code", h.VerifyCodeHandler)
		r.Post("/submit_linkedin", h.SubmitLinkedInHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	return r
}

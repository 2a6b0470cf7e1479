package speedtest

import (
	"net/http"

	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/time-limit", h.GetTimeLimit)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/questions", h.GetQuestions)
		r.Post("/submit", h.Submit)
		r.Get("/submissions", h.ListSubmissions)
	})
	return r
}

package technical

import (
	"net/http"

	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/questions", h.GetQuestions)
	r.Get("/questions/", h.GetQuestions)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Post("/run", h.Run)
		r.Post("/submit", h.Submit)
	})
	return r
}

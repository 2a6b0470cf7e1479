package quiz

import (
	"net/http"

	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Get("/questions/{user_id}", h.GetQuestions)
	r.Post("/submit", h.Submit)
	r.Post("/submit_quiz", h.Submit)
	r.Get("/results/{user_id}", h.GetResults)
	r.Get("/stats/{user_id}", h.GetStats)
	return r
}

package discussion

import (
	"net/http"

	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/replies", h.Replies)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Post("/", h.Create)
		r.Post("/reply", h.Reply)
		r.Post("/{id}/vote", h.Vote)
	})
	return r
}

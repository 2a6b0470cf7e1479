package user

import (
	"net/http"

	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/go-chi/chi/v5"
)

func AuthRoutes(h *Handler, logout *auth.Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Get("/verify-email", h.VerifyEmail)
	r.Post("/login", h.Login)
	r.Post("/google-login", h.GoogleLogin)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)
	r.Post("/logout", logout.Logout)
	return r
}

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)
	r.Get("/me", h.GetUser)
	return r
}

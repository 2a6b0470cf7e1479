package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/crackit360/crackit360-api/internal/discussion"
	"github.com/crackit360/crackit360-api/internal/middlewares"
	"github.com/crackit360/crackit360-api/internal/quiz"
	"github.com/crackit360/crackit360-api/internal/speedtest"
	"github.com/crackit360/crackit360-api/internal/technical"
	"github.com/crackit360/crackit360-api/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	LogoutHandler     *auth.Handler
	DiscussionHandler *discussion.Handler
	QuizHandler       *quiz.Handler
	SpeedTestHandler  *speedtest.Handler
	TechnicalHandler  *technical.Handler
	RateLimit         func(http.Handler) http.Handler
	AllowedOrigins    []string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middlewares.Recoverer)
	r.Use(middlewares.CORS(cfg.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit)
		}

		r.Mount("/auth", user.AuthRoutes(cfg.UserHandler, cfg.LogoutHandler))
		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/discussions", discussion.Routes(cfg.DiscussionHandler))
		r.Mount("/quiz", quiz.Routes(cfg.QuizHandler))
		r.Mount("/speed-test", speedtest.Routes(cfg.SpeedTestHandler))
		r.Mount("/technical", technical.Routes(cfg.TechnicalHandler))
	})
	return r
}

package user

import (
	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/crackit360/crackit360-api/internal/config"
	"gorm.io/gorm"
)

type UserContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, mailer Mailer, settings config.Settings) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, auth.NewGoogleVerifier(settings.Google), mailer, Options{
		AccessTokenTTL: settings.AccessTokenTTL,
		BackendURL:     settings.BackendURL,
		FrontendURL:    settings.FrontendURL,
	})
	handler := NewHandler(service, settings.CookieDomain, settings.IsProduction())

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

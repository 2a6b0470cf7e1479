package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/crackit360/crackit360-api/internal/discussion"
	"github.com/crackit360/crackit360-api/internal/email"
	"github.com/crackit360/crackit360-api/internal/quiz"
	"github.com/crackit360/crackit360-api/internal/ratelimit"
	"github.com/crackit360/crackit360-api/internal/router"
	"github.com/crackit360/crackit360-api/internal/speedtest"
	"github.com/crackit360/crackit360-api/internal/technical"
	"github.com/crackit360/crackit360-api/internal/user"
)

const (
	emailWorkers   = 2
	emailQueueSize = 64
)

type Container struct {
	Settings            config.Settings
	Mailer              *email.Dispatcher
	Redis               redis.UniversalClient
	RateLimit           func(http.Handler) http.Handler
	UserContainer       *user.UserContainer
	DiscussionContainer *discussion.DiscussionContainer
	QuizContainer       *quiz.QuizContainer
	SpeedTestContainer  *speedtest.SpeedTestContainer
	TechnicalContainer  *technical.TechnicalContainer
}

// Bootstrap loads settings, initialises the token and crypto keys and
// connects to postgres. It must run once before New.
func Bootstrap(ctx context.Context) (config.Settings, error) {
	config.Init()
	auth.Init()
	config.InitCrypto()

	s := config.Get()
	if err := config.Connect(ctx, s.DatabaseDSN); err != nil {
		return s, fmt.Errorf("connect database: %w", err)
	}
	return s, nil
}

func New(db *gorm.DB, s config.Settings) (*Container, error) {
	var rdb redis.UniversalClient
	if s.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
		})
	}

	rateLimit, err := ratelimit.New(s.RateLimit, rdb)
	if err != nil {
		return nil, err
	}

	mailer := email.NewDispatcher(email.NewSender(s.SMTP), emailWorkers, emailQueueSize)

	userContainer := user.NewUserContainer(db, mailer, s)
	discussionContainer := discussion.NewDiscussionContainer(db, userContainer.Service)
	quizContainer := quiz.NewQuizContainer(db)
	speedTestContainer := speedtest.NewSpeedTestContainer(db)
	technicalContainer := technical.NewTechnicalContainer(db, s.Judge)

	return &Container{
		Settings:            s,
		Mailer:              mailer,
		Redis:               rdb,
		RateLimit:           rateLimit,
		UserContainer:       userContainer,
		DiscussionContainer: discussionContainer,
		QuizContainer:       quizContainer,
		SpeedTestContainer:  speedTestContainer,
		TechnicalContainer:  technicalContainer,
	}, nil
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		LogoutHandler:     auth.NewHandler(c.Settings.CookieDomain),
		DiscussionHandler: c.DiscussionContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		SpeedTestHandler:  c.SpeedTestContainer.Handler,
		TechnicalHandler:  c.TechnicalContainer.Handler,
		RateLimit:         c.RateLimit,
		AllowedOrigins:    c.Settings.AllowedOrigins,
	})
}

// Close drains queued emails and releases the redis client.
func (c *Container) Close() error {
	c.Mailer.Close()
	if c.Redis != nil {
		return c.Redis.Close()
	}
	return nil
}

// Models lists every table the API owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&discussion.Discussion{},
		&discussion.Reply{},
		&discussion.Vote{},
		&quiz.Question{},
		&quiz.Attempt{},
		&quiz.AttemptRecord{},
		&speedtest.QuantitativeQuestion{},
		&speedtest.Session{},
		&speedtest.Submission{},
		&technical.Question{},
		&technical.Submission{},
	}
}

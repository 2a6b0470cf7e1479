package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type SMTPSettings struct {
	Enabled  bool
	Server   string
	Port     int
	Sender   string
	Password string
}

type RateLimitSettings struct {
	Backend string
	Window  time.Duration
	Max     int
}

type RedisSettings struct {
	Addr     string
	Password string
	DB       int
}

type GoogleSettings struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type JudgeSettings struct {
	URL     string
	APIKey  string
	Host    string
	Timeout time.Duration
}

type OTelSettings struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

type Settings struct {
	Env            string
	Port           string
	LogLevel       string
	DatabaseDSN    string
	AccessTokenTTL time.Duration
	FrontendURL    string
	BackendURL     string
	CookieDomain   string
	AllowedOrigins []string
	Google         GoogleSettings
	SMTP           SMTPSettings
	RateLimit      RateLimitSettings
	Redis          RedisSettings
	Judge          JudgeSettings
	OTel           OTelSettings
}

var settings = Load()

// Init loads .env (when present), reads the settings and configures the
// global logger. It must run before any other package reads Get().
func Init() {
	_ = godotenv.Load()
	settings = Load()
	configureLogger(settings)
}

func Get() Settings {
	return settings
}

// Load reads the settings from the environment without side effects.
func Load() Settings {
	return Settings{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		AccessTokenTTL: time.Duration(getInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60)) * time.Minute,
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		BackendURL:     strings.TrimRight(getEnv("BACKEND_URL", "http://127.0.0.1:8080"), "/"),
		CookieDomain:   os.Getenv("COOKIE_DOMAIN"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		Google: GoogleSettings{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		SMTP: SMTPSettings{
			Enabled:  getBool("USE_REAL_EMAIL", false),
			Server:   getEnv("SMTP_SERVER", "smtp.gmail.com"),
			Port:     getInt("SMTP_PORT", 465),
			Sender:   os.Getenv("SENDER_EMAIL"),
			Password: os.Getenv("SENDER_PASSWORD"),
		},
		RateLimit: RateLimitSettings{
			Backend: strings.ToLower(getEnv("RATE_LIMIT_BACKEND", "memory")),
			Window:  time.Duration(getInt("RATE_LIMIT_WINDOW", 60)) * time.Second,
			Max:     getInt("RATE_LIMIT_MAX", 30),
		},
		Redis: RedisSettings{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Judge: JudgeSettings{
			URL:     getEnv("JUDGE_URL", "https://judge0-ce.p.rapidapi.com/submissions?base64_encoded=false&wait=true"),
			APIKey:  os.Getenv("RAPID_API_KEY"),
			Host:    getEnv("RAPID_API_HOST", "judge0-ce.p.rapidapi.com"),
			Timeout: 30 * time.Second,
		},
		OTel: OTelSettings{
			Enabled:     getBool("OTEL_ENABLED", false),
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:    getBool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: getFloat("OTEL_SAMPLER_RATIO", 0.1),
		},
	}
}

func (s Settings) IsProduction() bool {
	return s.Env == "production"
}

func configureLogger(s Settings) {
	if s.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		logrus.WithError(err).Warnf("Unknown LOG_LEVEL %q, falling back to info", s.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

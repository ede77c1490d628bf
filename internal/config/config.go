package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL string
	Location    *time.Location
	HTTPAddr    string
	LogLevel    string
	Env         string // dev|prod
	SentryDSN   string
	Release     string

	RosterFile   string // пусто: встроенный ростер
	ExportsDir   string // заранее сделанные PDF материалов
	PDFConverter string // auto|wkhtmltopdf|builtin
	BcryptCost   int

	RedisAddr      string // пусто: без ограничения частоты логина
	LoginRateLimit int    // попыток в минуту с одного IP
	AllowedOrigins []string
}

func Load() (*Config, error) {
	tz := getenv("TZ", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	cost, err := getenvInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	limit, err := getenvInt("LOGIN_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:    mustEnv("DATABASE_URL"),
		Location:       loc,
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		Env:            getenv("ENV", "dev"),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		Release:        getenv("RELEASE", "dev"),
		RosterFile:     os.Getenv("ROSTER_FILE"),
		ExportsDir:     getenv("EXPORTS_DIR", "static/training-materials"),
		PDFConverter:   getenv("PDF_CONVERTER", "auto"),
		BcryptCost:     cost,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		LoginRateLimit: limit,
		AllowedOrigins: parseList(getenv("ALLOWED_ORIGINS", "*")),
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: bad int %q: %w", k, v, err)
	}
	return n, nil
}

func parseList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

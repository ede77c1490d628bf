package config

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/training")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.PDFConverter != "auto" || cfg.BcryptCost != 12 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoad_BadInt(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/training")
	t.Setenv("LOGIN_RATE_LIMIT", "ten")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_PanicsWithoutDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	_, _ = Load()
}

func TestLoad_Location(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/training")
	t.Setenv("TZ", "Europe/Moscow")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Location.String() != "Europe/Moscow" {
		t.Fatalf("location = %v", cfg.Location)
	}

	t.Setenv("TZ", "Mars/Olympus")
	if cfg, _ = Load(); cfg.Location != time.UTC {
		t.Fatalf("unknown zone must fall back to UTC, got %v", cfg.Location)
	}
}

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL": "postgres://localhost/xoclub",
		"REDIS_URL":    "redis://localhost:6379",
		"APP_ENV":      "",
		"PORT":         "",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppEnv != "development" {
		t.Fatalf("AppEnv = %s", cfg.AppEnv)
	}
	if cfg.HTTPAddr() != ":8080" {
		t.Fatalf("HTTPAddr = %s", cfg.HTTPAddr())
	}
	if cfg.SessionTTL.Minutes() != 30 {
		t.Fatalf("SessionTTL = %s", cfg.SessionTTL)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("RateLimitPerMinute = %d", cfg.RateLimitPerMinute)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	if _, err := LoadForTests(map[string]string{
		"DATABASE_URL": "",
		"REDIS_URL":    "redis://localhost:6379",
	}); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadRequiresAdminTokenInProduction(t *testing.T) {
	if _, err := LoadForTests(map[string]string{
		"DATABASE_URL":    "postgres://localhost/xoclub",
		"REDIS_URL":       "redis://localhost:6379",
		"APP_ENV":         "production",
		"ADMIN_API_TOKEN": "",
	}); err == nil {
		t.Fatal("expected error when ADMIN_API_TOKEN is missing in production")
	}
}

func TestLoadEmailEnabledNeedsAPIKey(t *testing.T) {
	if _, err := LoadForTests(map[string]string{
		"DATABASE_URL":   "postgres://localhost/xoclub",
		"REDIS_URL":      "redis://localhost:6379",
		"EMAIL_ENABLED":  "true",
		"RESEND_API_KEY": "",
	}); err == nil {
		t.Fatal("expected error when email is enabled without an api key")
	}
}

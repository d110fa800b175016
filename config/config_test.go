package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_SOURCE", "TOKEN_TTL", "CHAT_REPLY_DELAY", "ISSUE_RATE_LIMIT", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.DataSource != SourceFixtures {
		t.Errorf("Port, DataSource = %q, %q", cfg.Port, cfg.DataSource)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.ChatReplyDelay != 600*time.Millisecond {
		t.Errorf("TokenTTL, ChatReplyDelay = %s, %s", cfg.TokenTTL, cfg.ChatReplyDelay)
	}
	if cfg.IssueRateLimit != 5 {
		t.Errorf("IssueRateLimit = %d", cfg.IssueRateLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GO_ENV", "production")
	t.Setenv("CHAT_REPLY_DELAY", "1s")
	t.Setenv("ISSUE_RATE_LIMIT", "12")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SIGNUP_DISABLED", "true")

	cfg := Load()
	if cfg.Port != "9090" || !cfg.Production() {
		t.Errorf("Port, Production = %q, %v", cfg.Port, cfg.Production())
	}
	if cfg.ChatReplyDelay != time.Second || cfg.IssueRateLimit != 12 || !cfg.SignUpDisabled {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %q", cfg.CORSOrigins)
	}
}

func TestLoadInvalidFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "forever")
	t.Setenv("CHAT_RATE_LIMIT", "-3")
	t.Setenv("SIGNUP_DISABLED", "maybe")

	cfg := Load()
	if cfg.TokenTTL != 24*time.Hour || cfg.ChatRateLimit != 20 || cfg.SignUpDisabled {
		t.Errorf("cfg = %+v", cfg)
	}
}

package config

import "testing"

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/aptivai")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("AI_GATEWAY_API_KEY", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("CORS_ORIGINS", "https://aptivai.co.za, https://admin.aptivai.co.za")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GetLeadOversightThreshold() != 8 {
		t.Errorf("expected lead threshold 8, got %d", cfg.GetLeadOversightThreshold())
	}
	if cfg.GetGatewayModel() != "google/gemini-2.5-flash" {
		t.Errorf("unexpected gateway model %q", cfg.GetGatewayModel())
	}
	if cfg.IsGatewayEnabled() || cfg.IsEmailEnabled() || cfg.IsMinIOEnabled() {
		t.Error("expected optional integrations to be disabled")
	}
	if got := cfg.GetCORSOrigins(); len(got) != 2 || got[1] != "https://admin.aptivai.co.za" {
		t.Errorf("unexpected CORS origins %v", got)
	}
}

func TestLoadRejectsThresholdOutOfRange(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/aptivai")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("LEAD_OVERSIGHT_THRESHOLD", "11")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for threshold above 10")
	}
}

// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
	GetAdminEmails() []string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// GatewayConfig provides settings for the OpenAI-compatible LLM gateway.
type GatewayConfig interface {
	GetGatewayURL() string
	GetGatewayAPIKey() string
	GetGatewayModel() string
	GetGatewayTimeout() time.Duration
	IsGatewayEnabled() bool
}

// ScoringConfig provides thresholds used by the intake workflow.
type ScoringConfig interface {
	GetLeadOversightThreshold() int
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketComplianceExports() string
	GetExportLinkTTL() time.Duration
	IsMinIOEnabled() bool
}

// SchedulerConfig provides settings for background job scheduling.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// EmailConfig provides settings for outgoing reviewer mail.
type EmailConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetReviewerEmails() []string
	GetAppBaseURL() string
	IsEmailEnabled() bool
}

// =============================================================================
// Main Config Struct (implements all interfaces)
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	JWTAccessSecret string
	AccessTokenTTL  time.Duration
	AdminEmails     []string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	GatewayURL     string
	GatewayAPIKey  string
	GatewayModel   string
	GatewayTimeout time.Duration

	LeadOversightThreshold int

	MinIOEndpoint                string
	MinIOAccessKey               string
	MinIOSecretKey               string
	MinIOUseSSL                  bool
	MinioBucketComplianceExports string
	ExportLinkTTL                time.Duration

	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int

	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
	ReviewerEmails   []string
	AppBaseURL       string
}

// Compile-time checks that Config implements all interfaces.
var (
	_ DatabaseConfig    = (*Config)(nil)
	_ JWTConfig         = (*Config)(nil)
	_ AuthServiceConfig = (*Config)(nil)
	_ HTTPConfig        = (*Config)(nil)
	_ GatewayConfig     = (*Config)(nil)
	_ ScoringConfig     = (*Config)(nil)
	_ MinIOConfig       = (*Config)(nil)
	_ SchedulerConfig   = (*Config)(nil)
	_ EmailConfig       = (*Config)(nil)
)

// DatabaseConfig
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig / AuthServiceConfig
func (c *Config) GetJWTAccessSecret() string        { return c.JWTAccessSecret }
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetAdminEmails() []string         { return c.AdminEmails }

// HTTPConfig
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// GatewayConfig
func (c *Config) GetGatewayURL() string            { return c.GatewayURL }
func (c *Config) GetGatewayAPIKey() string         { return c.GatewayAPIKey }
func (c *Config) GetGatewayModel() string          { return c.GatewayModel }
func (c *Config) GetGatewayTimeout() time.Duration { return c.GatewayTimeout }
func (c *Config) IsGatewayEnabled() bool           { return c.GatewayAPIKey != "" }

// ScoringConfig
func (c *Config) GetLeadOversightThreshold() int { return c.LeadOversightThreshold }

// MinIOConfig
func (c *Config) GetMinIOEndpoint() string  { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool      { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketComplianceExports() string {
	return c.MinioBucketComplianceExports
}
func (c *Config) GetExportLinkTTL() time.Duration { return c.ExportLinkTTL }
func (c *Config) IsMinIOEnabled() bool            { return c.MinIOEndpoint != "" }

// SchedulerConfig
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// EmailConfig
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetReviewerEmails() []string { return c.ReviewerEmails }
func (c *Config) GetAppBaseURL() string       { return c.AppBaseURL }
func (c *Config) IsEmailEnabled() bool        { return c.SMTPHost != "" }

// Load reads configuration from the environment, optionally seeded by a .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                          getEnv("APP_ENV", "development"),
		HTTPAddr:                     getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:                  getEnv("DATABASE_URL", ""),
		JWTAccessSecret:              getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:               mustDuration(getEnv("JWT_ACCESS_TTL", "15m")),
		AdminEmails:                  splitCSV(getEnv("ADMIN_EMAILS", "")),
		CORSAllowAll:                 corsAllowAll,
		CORSOrigins:                  corsOrigins,
		CORSAllowCreds:               strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		GatewayURL:                   getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1"),
		GatewayAPIKey:                getEnv("AI_GATEWAY_API_KEY", ""),
		GatewayModel:                 getEnv("AI_GATEWAY_MODEL", "google/gemini-2.5-flash"),
		GatewayTimeout:               mustDuration(getEnv("AI_GATEWAY_TIMEOUT", "60s")),
		LeadOversightThreshold:       mustInt(getEnv("LEAD_OVERSIGHT_THRESHOLD", "8")),
		MinIOEndpoint:                getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:               getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:               getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:                  strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketComplianceExports: getEnv("MINIO_BUCKET_COMPLIANCE_EXPORTS", "compliance-exports"),
		ExportLinkTTL:                mustDuration(getEnv("EXPORT_LINK_TTL", "1h")),
		RedisURL:                     getEnv("REDIS_URL", ""),
		RedisTLSInsecure:             strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:               getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:             mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),
		SMTPHost:                     getEnv("SMTP_HOST", ""),
		SMTPPort:                     mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:                 getEnv("SMTP_USERNAME", ""),
		SMTPPassword:                 getEnv("SMTP_PASSWORD", ""),
		EmailFromName:                getEnv("EMAIL_FROM_NAME", "AptivAI"),
		EmailFromAddress:             getEnv("EMAIL_FROM_ADDRESS", ""),
		ReviewerEmails:               splitCSV(getEnv("REVIEWER_EMAILS", "")),
		AppBaseURL:                   getEnv("APP_BASE_URL", "http://localhost:5173"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("JWT_ACCESS_TTL must be a positive duration")
	}
	if cfg.LeadOversightThreshold < 1 || cfg.LeadOversightThreshold > 10 {
		return nil, fmt.Errorf("LEAD_OVERSIGHT_THRESHOLD must be between 1 and 10")
	}
	if cfg.IsEmailEnabled() && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when SMTP_HOST is set")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

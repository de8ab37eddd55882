package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port       string
	DBURL      string
	LogLevel   string
	LogFile    string
	JWTSecret  string
	CORSOrigin []string

	Mail       MailConfig
	HubSpot    HubSpotConfig
	Salesforce SalesforceConfig
	CRMTimeout time.Duration

	RateLimitPerMinute int
	RateLimitBurst     int
	IPAllowlist        []string
	IPBlocklist        []string

	ScoringConfig string
}

type MailConfig struct {
	Server        string
	Port          string
	Username      string
	Password      string
	DefaultSender string
	SalesEmail    string
	AdminEmail    string
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (m MailConfig) Enabled() bool {
	return m.Server != "" && m.DefaultSender != ""
}

// SalesRecipients is the internal distribution list for lead notifications.
func (m MailConfig) SalesRecipients() []string {
	var out []string
	for _, r := range []string{m.SalesEmail, m.AdminEmail} {
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

type HubSpotConfig struct {
	AccessToken string
	PortalID    string
	BaseURL     string
}

type SalesforceConfig struct {
	Username      string
	Password      string
	SecurityToken string
	Domain        string
}

// Load reads the .env file when present, then the process environment.
// A missing .env is not an error; the values may come from the system.
func Load() (Config, bool) {
	envLoaded := godotenv.Load() == nil

	cfg := Config{
		Port:       envOr("PORT", "8080"),
		DBURL:      os.Getenv("DB_URL"),
		LogLevel:   envOr("LOG_LEVEL", "info"),
		LogFile:    os.Getenv("LOG_FILE"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CORSOrigin: splitList(envOr("CORS_ORIGINS", "*")),
		Mail: MailConfig{
			Server:        os.Getenv("MAIL_SERVER"),
			Port:          envOr("MAIL_PORT", "587"),
			Username:      os.Getenv("MAIL_USERNAME"),
			Password:      os.Getenv("MAIL_PASSWORD"),
			DefaultSender: envOr("MAIL_DEFAULT_SENDER", "noreply@chiral-robotics.com"),
			SalesEmail:    envOr("SALES_EMAIL", "sales@chiral-robotics.com"),
			AdminEmail:    envOr("ADMIN_EMAIL", "admin@chiral-robotics.com"),
		},
		HubSpot: HubSpotConfig{
			AccessToken: os.Getenv("HUBSPOT_ACCESS_TOKEN"),
			PortalID:    os.Getenv("HUBSPOT_PORTAL_ID"),
			BaseURL:     envOr("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
		},
		Salesforce: SalesforceConfig{
			Username:      os.Getenv("SALESFORCE_USERNAME"),
			Password:      os.Getenv("SALESFORCE_PASSWORD"),
			SecurityToken: os.Getenv("SALESFORCE_SECURITY_TOKEN"),
			Domain:        envOr("SALESFORCE_DOMAIN", "login"),
		},
		CRMTimeout:         envDuration("CRM_TIMEOUT", 10*time.Second),
		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 30),
		RateLimitBurst:     envInt("RATE_LIMIT_BURST", 10),
		IPAllowlist:        splitList(os.Getenv("IP_ALLOWLIST")),
		IPBlocklist:        splitList(os.Getenv("IP_BLOCKLIST")),
		ScoringConfig:      os.Getenv("SCORING_CONFIG"),
	}

	return cfg, envLoaded
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

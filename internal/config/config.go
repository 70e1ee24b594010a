package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting for the service. It is built once in
// main and passed to the components that need it; nothing reads the
// environment after startup.
type Config struct {
	Port string

	// Postgres
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Signed credential settings
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	// Redis (login-flow state only)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	FlowTTL       time.Duration

	// External identity provider (authorization-code flow)
	IDPClientID     string
	IDPClientSecret string
	IDPAuthURL      string
	IDPTokenURL     string
	IDPUserInfoURL  string
	IDPRedirectURI  string
	IDPScopes       []string

	// Emails that receive the superAdmin role on first login
	SuperAdminEmails []string

	// Fallback when the login request carries no frontend host
	FrontendHost string
}

// Load reads the environment into a Config. Call godotenv.Load first if a
// .env file should be honored.
func Load() *Config {
	return &Config{
		Port: getenv("PORT", "3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      getenv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getenv("DB_NAME", "admin_portal"),

		JWTSecret: getenv("JWT_SECRET", "change-me-in-production"),
		JWTIssuer: getenv("JWT_ISSUER", "go-admin-portal"),
		TokenTTL:  getdur("TOKEN_TTL", 12*time.Hour),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		FlowTTL:       getdur("AUTH_FLOW_TTL", 10*time.Minute),

		IDPClientID:     os.Getenv("IDP_CLIENT_ID"),
		IDPClientSecret: os.Getenv("IDP_CLIENT_SECRET"),
		IDPAuthURL:      os.Getenv("IDP_AUTH_URL"),
		IDPTokenURL:     os.Getenv("IDP_TOKEN_URL"),
		IDPUserInfoURL:  os.Getenv("IDP_USERINFO_URL"),
		IDPRedirectURI:  os.Getenv("IDP_REDIRECT_URI"),
		IDPScopes:       getlist("IDP_SCOPES", []string{".default"}),

		SuperAdminEmails: getlist("SUPER_ADMIN_EMAILS", nil),

		FrontendHost: getenv("FRONTEND_HOST", "http://localhost:3000"),
	}
}

// IsSuperAdmin reports whether the email is on the super-admin allow-list.
// Comparison is case-insensitive; identities are keyed by lowercased mail.
func (c *Config) IsSuperAdmin(email string) bool {
	for _, e := range c.SuperAdminEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getlist(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

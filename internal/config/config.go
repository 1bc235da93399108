package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Content   ContentConfig
	MongoDB   MongoDBConfig
	Postgres  PostgresConfig
	SQLite    SQLiteConfig
	Redis     RedisConfig
	Uploads   UploadsConfig
	MinIO     MinIOConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ContentConfig selects where section documents live. Backend is the
// default for every section; SectionBackends overrides it per key.
type ContentConfig struct {
	Backend         string
	DataDir         string
	SectionBackends map[string]string
}

type MongoDBConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// PostgresConfig points at the hosted relational backend (Supabase).
type PostgresConfig struct {
	URL          string
	ContentTable string
	ConnectTries int
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Prefix   string
}

type UploadsConfig struct {
	Backend   string // disk | minio
	PublicDir string
	MaxBytes  int64
	MaxWidth  int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

type AuthConfig struct {
	JWTSecret    string
	OIDCIssuer   string
	OIDCClientID string
	AdminEmails  []string
	AdminRole    string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// Backends the content store understands.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
)

var knownBackends = map[string]bool{
	BackendFile: true, BackendMemory: true, BackendSQLite: true,
	BackendPostgres: true, BackendMongo: true, BackendRedis: true,
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5001")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("CONTENT_BACKEND", BackendFile)
	v.SetDefault("CONTENT_DATA_DIR", "data/content")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("MONGODB_COLLECTION", "site_content")
	v.SetDefault("POSTGRES_CONTENT_TABLE", "site_content")
	v.SetDefault("POSTGRES_CONNECT_TRIES", 5)
	v.SetDefault("SQLITE_PATH", "data/content.db")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PREFIX", "content:")
	v.SetDefault("UPLOADS_BACKEND", "disk")
	v.SetDefault("UPLOADS_PUBLIC_DIR", "public")
	v.SetDefault("UPLOADS_MAX_BYTES", 5<<20)
	v.SetDefault("UPLOADS_MAX_WIDTH", 0)
	v.SetDefault("MINIO_BUCKET", "site-assets")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	// Supabase projects expose the JWT secret and DB URL under their own names.
	jwtSecret := v.GetString("AUTH_JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = v.GetString("SUPABASE_JWT_SECRET")
	}
	pgURL := v.GetString("POSTGRES_URL")
	if pgURL == "" {
		pgURL = v.GetString("SUPABASE_DB_URL")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Content: ContentConfig{
			Backend:         strings.ToLower(strings.TrimSpace(v.GetString("CONTENT_BACKEND"))),
			DataDir:         v.GetString("CONTENT_DATA_DIR"),
			SectionBackends: parseAssignments(v.GetString("CONTENT_SECTION_BACKENDS")),
		},
		MongoDB: MongoDBConfig{
			URI:        v.GetString("MONGODB_URI"),
			Database:   v.GetString("MONGODB_DATABASE"),
			Collection: v.GetString("MONGODB_COLLECTION"),
			Timeout:    time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Postgres: PostgresConfig{
			URL:          pgURL,
			ContentTable: v.GetString("POSTGRES_CONTENT_TABLE"),
			ConnectTries: v.GetInt("POSTGRES_CONNECT_TRIES"),
		},
		SQLite: SQLiteConfig{Path: v.GetString("SQLITE_PATH")},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Prefix:   v.GetString("REDIS_PREFIX"),
		},
		Uploads: UploadsConfig{
			Backend:   strings.ToLower(strings.TrimSpace(v.GetString("UPLOADS_BACKEND"))),
			PublicDir: v.GetString("UPLOADS_PUBLIC_DIR"),
			MaxBytes:  v.GetInt64("UPLOADS_MAX_BYTES"),
			MaxWidth:  v.GetInt("UPLOADS_MAX_WIDTH"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			PublicURL: v.GetString("MINIO_PUBLIC_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:    jwtSecret,
			OIDCIssuer:   v.GetString("OIDC_ISSUER"),
			OIDCClientID: v.GetString("OIDC_CLIENT_ID"),
			AdminEmails:  splitList(v.GetString("ADMIN_EMAILS")),
			AdminRole:    v.GetString("ADMIN_ROLE"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Backends returns every content backend that is in use, default first.
func (c *Config) Backends() []string {
	out := []string{c.Content.Backend}
	seen := map[string]bool{c.Content.Backend: true}
	for _, b := range c.Content.SectionBackends {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}

// Validate checks that every selected backend has the settings it needs
// and that admin access is restricted whenever tokens are verified.
func (c *Config) Validate() error {
	for _, b := range c.Backends() {
		if !knownBackends[b] {
			return fmt.Errorf("unknown content backend %q", b)
		}
		switch b {
		case BackendPostgres:
			if c.Postgres.URL == "" {
				return fmt.Errorf("content backend %q requires POSTGRES_URL (or SUPABASE_DB_URL)", b)
			}
		case BackendMongo:
			if c.MongoDB.URI == "" || c.MongoDB.Database == "" {
				return fmt.Errorf("content backend %q requires MONGODB_URI and MONGODB_DATABASE", b)
			}
		case BackendRedis:
			if c.Redis.Host == "" {
				return fmt.Errorf("content backend %q requires REDIS_HOST", b)
			}
		}
	}
	switch c.Uploads.Backend {
	case "disk":
	case "minio":
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("uploads backend minio requires MINIO_ENDPOINT")
		}
	default:
		return fmt.Errorf("unknown uploads backend %q", c.Uploads.Backend)
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("UPLOADS_MAX_BYTES must be positive")
	}
	// a verifier alone admits every user of the identity provider
	if c.Auth.Configured() && len(c.Auth.AdminEmails) == 0 && c.Auth.AdminRole == "" {
		return fmt.Errorf("token verification is configured but neither ADMIN_EMAILS nor ADMIN_ROLE is set")
	}
	return nil
}

// Configured reports whether a token verifier can be built.
func (a AuthConfig) Configured() bool {
	return a.JWTSecret != "" || (a.OIDCIssuer != "" && a.OIDCClientID != "")
}

// parseAssignments parses "faqs=postgres, footer=file" into a map.
func parseAssignments(s string) map[string]string {
	out := map[string]string{}
	for _, part := range splitList(s) {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.ToLower(strings.TrimSpace(v))
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

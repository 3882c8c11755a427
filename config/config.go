package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Database struct {
	Driver     string // mysql | sqlite
	User       string
	Password   string
	Host       string
	Port       string
	Name       string
	SQLitePath string
}

type Auth struct {
	JWTSecret     string
	JWTAlgorithm  string
	TokenLifetime time.Duration
}

type OpenAI struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Config struct {
	Env             string
	Port            string
	CORSOrigins     []string
	GenerateTimeout time.Duration
	Database        Database
	Auth            Auth
	OpenAI          OpenAI
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// Missing files are fine; real deployments set variables directly.
		_ = godotenv.Load(f)
	}

	cfg := Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		CORSOrigins:     splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		GenerateTimeout: time.Duration(getEnvInt("GENERATE_TIMEOUT_SECONDS", 90)) * time.Second,
		Database: Database{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			User:       getEnv("DB_USER", ""),
			Password:   getEnv("DB_PASSWORD", ""),
			Host:       getEnv("DB_HOST", "127.0.0.1"),
			Port:       getEnv("DB_PORT", "3306"),
			Name:       getEnv("DB_NAME", "studymate"),
			SQLitePath: getEnv("SQLITE_PATH", "studymate.db"),
		},
		Auth: Auth{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			JWTAlgorithm:  getEnv("JWT_ALGORITHM", "HS256"),
			TokenLifetime: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		},
		OpenAI: OpenAI{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-5.2"),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Timeout: time.Duration(getEnvInt("OPENAI_TIMEOUT_SECONDS", 180)) * time.Second,
		},
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.Auth.JWTSecret = "dev-insecure-secret"
	}
	return nil
}

func getEnv(key, def string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	v = sanitizeEnv(v)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// sanitizeEnv trims spaces and one pair of matching surrounding quotes.
func sanitizeEnv(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

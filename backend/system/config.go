package system

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "change-me"

// Config holds every setting the API server reads from the environment
type Config struct {
	Env         string
	ListenAddr  string
	LogDir      string
	FrontendDir string

	DB DBConfig

	JWTSecret string
	JWTExpiry time.Duration

	// Legacy password cipher used by migrated accounts
	LegacyKey  string
	LegacySalt string

	Seed SeedConfig

	// Discord-compatible webhook for activity alerts, empty disables them
	WebhookURL string
}

type DBConfig struct {
	Driver   string // sqlite or mysql
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// SeedConfig creates the first organization when the table is empty
type SeedConfig struct {
	BusinessNumber string
	Password       string
	OrgName        string
	OrgID          string
}

func (s SeedConfig) Enabled() bool {
	return s.BusinessNumber != "" && s.Password != ""
}

// LoadConfig reads configuration from the environment. Outside production a .env
// file in the working directory is loaded first if present.
func LoadConfig() (Config, error) {
	if getEnv("APP_ENV", "development") != "production" {
		_ = godotenv.Load()
	}

	cfg := Config{
		Env:         getEnv("APP_ENV", "development"),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		LogDir:      getEnv("LOG_DIR", "./logs"),
		FrontendDir: getEnv("FRONTEND_DIR", ""),
		DB: DBConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Path:     getEnv("DB_PATH", "nanum.db"),
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvInt("DB_PORT", 3306),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", ""),
		},
		JWTSecret:  getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiry:  time.Duration(getEnvInt("JWT_EXP_MIN", 60)) * time.Minute,
		LegacyKey:  getEnv("BCM_AES_KEY", "beautifulstore"),
		LegacySalt: getEnv("BCM_AES_SALT", "basecamp"),
		Seed: SeedConfig{
			BusinessNumber: getEnv("SEED_BUSINESS_NUMBER", ""),
			Password:       getEnv("SEED_PASSWORD", ""),
			OrgName:        getEnv("SEED_ORG_NAME", "기본 기관"),
			OrgID:          getEnv("SEED_ORG_ID", ""),
		},
		WebhookURL: getEnv("WEBHOOK_URL", ""),
	}

	switch cfg.DB.Driver {
	case "sqlite":
	case "mysql":
		var missing []string
		for name, v := range map[string]string{
			"DB_HOST": cfg.DB.Host, "DB_USER": cfg.DB.User, "DB_PASSWORD": cfg.DB.Password, "DB_NAME": cfg.DB.Name,
		} {
			if v == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			slices.Sort(missing)
			return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
		}
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	if cfg.JWTExpiry <= 0 {
		return Config{}, fmt.Errorf("JWT_EXP_MIN must be positive")
	}
	if cfg.IsProduction() && cfg.JWTSecret == defaultJWTSecret {
		return Config{}, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDefaultSecret reports whether tokens are signed with the built-in secret
func (c Config) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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

package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers selectable with STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	// APIKeys maps integration keys to the service user id they act as.
	APIKeys map[string]string

	StoreDriver           string
	MigrationsPath        string
	ReorderPersistTimeout time.Duration
	ReorderReloadTimeout  time.Duration
	// CollectionCacheSize caps the collections kept in memory per record kind.
	// Zero picks the registry default.
	CollectionCacheSize   int

	RateLimit          string
	CORSAllowedOrigins []string
	TemplateSeedFile   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("API_KEYS", "")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("REORDER_PERSIST_TIMEOUT", "5s")
	v.SetDefault("REORDER_RELOAD_TIMEOUT", "10s")
	v.SetDefault("COLLECTION_CACHE_SIZE", 1024)
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("TEMPLATE_SEED_FILE", "configs/templates.yaml")

	// Environment variables override the defaults and anything loaded from .env.
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		StoreDriver:         strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		CollectionCacheSize: v.GetInt("COLLECTION_CACHE_SIZE"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		TemplateSeedFile:    v.GetString("TEMPLATE_SEED_FILE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	case StoreDriverMemory:
		log.Println("Warning: STORE_DRIVER=memory, data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", cfg.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	var err error
	if cfg.ReorderPersistTimeout, err = parseDuration(v, "REORDER_PERSIST_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.ReorderReloadTimeout, err = parseDuration(v, "REORDER_RELOAD_TIMEOUT"); err != nil {
		return nil, err
	}

	if cfg.CollectionCacheSize < 0 {
		return nil, fmt.Errorf("invalid value for COLLECTION_CACHE_SIZE (%d): must not be negative", cfg.CollectionCacheSize)
	}

	if cfg.APIKeys, err = parseAPIKeys(v.GetString("API_KEYS")); err != nil {
		return nil, err
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid value for %s (%q): want a duration such as 5s", key, raw)
	}
	return d, nil
}

// parseAPIKeys reads "key1:user1,key2:user2".
func parseAPIKeys(raw string) (map[string]string, error) {
	keys := make(map[string]string)
	for _, pair := range splitList(raw) {
		key, userID, ok := strings.Cut(pair, ":")
		key, userID = strings.TrimSpace(key), strings.TrimSpace(userID)
		if !ok || key == "" || userID == "" {
			return nil, fmt.Errorf("invalid API_KEYS entry %q: want key:userID", pair)
		}
		keys[key] = userID
	}
	return keys, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

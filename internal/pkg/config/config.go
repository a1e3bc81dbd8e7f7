package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Storage selects the repository backend: memory or mongo.
	Storage string `env:"STORAGE, default=memory"`
	// SeedDemoData defaults to on for memory storage only; see SeedEnabled.
	SeedDemoData OptionalBool `env:"SEED_DEMO_DATA"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET, required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN, default=1h"`
	// PasswordHasher is bcrypt or argon2.
	PasswordHasher string `env:"PASSWORD_HASHER, default=bcrypt"`
	BcryptCost     int    `env:"BCRYPT_COST,     default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,    default=catalog"`
}

// RedisConfig is optional: an empty Addr disables Redis and idempotent replays.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// OptionalBool is a boolean that remembers whether it was set at all.
type OptionalBool struct {
	Value bool
	Set   bool
}

// EnvDecode implements envconfig.Decoder. It only runs when the variable is set.
func (b *OptionalBool) EnvDecode(val string) error {
	v, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return fmt.Errorf("invalid boolean %q", val)
	}
	b.Value, b.Set = v, true
	return nil
}

// SeedEnabled reports whether serve should load the demo accounts and data.
// Unless SEED_DEMO_DATA says otherwise, only the throwaway memory store is seeded.
func (c *Config) SeedEnabled() bool {
	if c.SeedDemoData.Set {
		return c.SeedDemoData.Value
	}
	return c.Storage == StorageMemory
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects settings go-envconfig cannot check on its own.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage {
	case StorageMemory, StorageMongo:
	default:
		errs = append(errs, fmt.Errorf("STORAGE must be %q or %q, got %q", StorageMemory, StorageMongo, c.Storage))
	}
	switch c.Auth.PasswordHasher {
	case "bcrypt", "argon2":
	default:
		errs = append(errs, fmt.Errorf("PASSWORD_HASHER must be bcrypt or argon2, got %q", c.Auth.PasswordHasher))
	}
	if c.Auth.JWTExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.Storage == StorageMongo && c.Mongo.URI == "" {
		errs = append(errs, errors.New("MONGODB_URI is required when STORAGE=mongo"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

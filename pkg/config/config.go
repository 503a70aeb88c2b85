package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"

	AllocationPolicyStrict     = "strict"
	AllocationPolicyPermissive = "permissive"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Ledger   LedgerConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StorageConfig selects the persistence backend. The sqlite driver keeps
// the whole ledger in a single local file.
type StorageConfig struct {
	Driver     string
	SQLitePath string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	Issuer     string
}

type LedgerConfig struct {
	AllocationPolicy     string
	MaxRetries           int
	SharedOrganizationID string
	CurrencySymbol       string
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables win in containers
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, err := getEnvInt("SERVER_READ_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	jwtExp, err := getEnvInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}
	maxRetries, err := getEnvInt("LEDGER_MAX_RETRIES", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "budget_ledger"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			Driver:     getEnv("STORAGE_DRIVER", StorageDriverPostgres),
			SQLitePath: getEnv("SQLITE_PATH", "data/ledger.db"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			Issuer:     getEnv("JWT_ISSUER", "budget-ledger"),
		},
		Ledger: LedgerConfig{
			AllocationPolicy:     getEnv("ALLOCATION_POLICY", AllocationPolicyStrict),
			MaxRetries:           maxRetries,
			SharedOrganizationID: getEnv("SHARED_ORGANIZATION_ID", "main_budget_org_1"),
			CurrencySymbol:       getEnv("CURRENCY_SYMBOL", "₦"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the ledger cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverSQLite, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Ledger.AllocationPolicy {
	case AllocationPolicyStrict, AllocationPolicyPermissive:
	default:
		return fmt.Errorf("unknown allocation policy %q", c.Ledger.AllocationPolicy)
	}

	if c.Ledger.MaxRetries <= 0 {
		return fmt.Errorf("LEDGER_MAX_RETRIES must be positive, got %d", c.Ledger.MaxRetries)
	}
	if c.Ledger.SharedOrganizationID == "" {
		return fmt.Errorf("SHARED_ORGANIZATION_ID must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

package config

import (
	"log"
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	DBDriver              string
	SQLitePath            string
	DatabaseURL           string
	MigrationsPath        string
	Port                  string
	IsProduction          bool
	EnableDBCheck         bool
	JWTSecret             string
	JWTExpiryDuration     time.Duration
	JWTIssuer             string
	LoginRateLimit        string
	EmergencyPINRateLimit string
	RedisAddr             string
	FrontendBaseURL       string

	MonitorInterval     time.Duration
	LowBalanceThreshold decimal.Decimal
	EmergencyVaultLimit decimal.Decimal
	MaxVaultsPerUser    int
	MaxLoginAttempts    int
	LockoutDuration     time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DB_DRIVER", DriverSQLite)
	viper.SetDefault("SQLITE_PATH", "data/vault_ledger.db")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "vault-ledger")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("EMERGENCY_PIN_RATE_LIMIT", "5-H")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("MONITOR_INTERVAL", "1h")
	viper.SetDefault("LOW_BALANCE_THRESHOLD", domain.DefaultLowBalanceThreshold.String())
	viper.SetDefault("EMERGENCY_VAULT_LIMIT", domain.DefaultEmergencyVaultLimit.String())
	viper.SetDefault("MAX_VAULTS_PER_USER", domain.DefaultMaxVaultsPerUser)
	viper.SetDefault("MAX_LOGIN_ATTEMPTS", 3)
	viper.SetDefault("LOCKOUT_DURATION", "30s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DBDriver = viper.GetString("DB_DRIVER")
	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		log.Printf("Warning: Unknown DB_DRIVER ('%s'). Defaulting to %s.\n", cfg.DBDriver, DriverSQLite)
		cfg.DBDriver = DriverSQLite
	}
	cfg.SQLitePath = viper.GetString("SQLITE_PATH")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DBDriver == DriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: DB_DRIVER is postgres but PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "vault-ledger"
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.EmergencyPINRateLimit = viper.GetString("EMERGENCY_PIN_RATE_LIMIT")
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	cfg.MonitorInterval = durationOrDefault("MONITOR_INTERVAL", time.Hour)
	cfg.LockoutDuration = durationOrDefault("LOCKOUT_DURATION", 30*time.Second)
	cfg.LowBalanceThreshold = decimalOrDefault("LOW_BALANCE_THRESHOLD", domain.DefaultLowBalanceThreshold)
	cfg.EmergencyVaultLimit = decimalOrDefault("EMERGENCY_VAULT_LIMIT", domain.DefaultEmergencyVaultLimit)

	cfg.MaxVaultsPerUser = viper.GetInt("MAX_VAULTS_PER_USER")
	if cfg.MaxVaultsPerUser <= 0 {
		log.Printf("Warning: Invalid value for MAX_VAULTS_PER_USER. Defaulting to %d.\n", domain.DefaultMaxVaultsPerUser)
		cfg.MaxVaultsPerUser = domain.DefaultMaxVaultsPerUser
	}
	cfg.MaxLoginAttempts = viper.GetInt("MAX_LOGIN_ATTEMPTS")
	if cfg.MaxLoginAttempts <= 0 {
		log.Println("Warning: Invalid value for MAX_LOGIN_ATTEMPTS. Defaulting to 3.")
		cfg.MaxLoginAttempts = 3
	}

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		return def
	}
	return d
}

func decimalOrDefault(key string, def decimal.Decimal) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		return def
	}
	return d
}

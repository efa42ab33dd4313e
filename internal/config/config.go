package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Env           string `mapstructure:"APP_ENV"`
	ServerPort    string `mapstructure:"SERVER_PORT"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	MongoURI     string `mapstructure:"MONGO_URI"`
	MongoTimeout int    `mapstructure:"MONGO_TIMEOUT_SECONDS"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	DBDSN        string `mapstructure:"DB_DSN"`

	RedisURL       string `mapstructure:"REDIS_URL"`
	LoginRateLimit int    `mapstructure:"LOGIN_RATE_LIMIT"`
	BcryptCost     int    `mapstructure:"BCRYPT_COST"`

	CSVFilePath string `mapstructure:"CSV_FILE_PATH"`
}

var defaults = map[string]any{
	"APP_ENV":               "development",
	"SERVER_PORT":           "8080",
	"SESSION_SECRET":        "",
	"STORE_DRIVER":          DriverMongo,
	"MONGO_URI":             "mongodb://localhost:27017/",
	"MONGO_TIMEOUT_SECONDS": 5,
	"DATABASE_NAME":         "examen",
	"DB_DSN":                "",
	"REDIS_URL":             "",
	"LOGIN_RATE_LIMIT":      20,
	"BCRYPT_COST":           bcrypt.DefaultCost,
	"CSV_FILE_PATH":         "datos_subir_examen.csv",
}

// Load reads .env (if present) into the process environment and then
// resolves every key from the environment, falling back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	switch cfg.StoreDriver {
	case DriverMongo:
		if strings.TrimSpace(cfg.MongoURI) == "" {
			return nil, errors.New("MONGO_URI is empty")
		}
	case DriverPostgres:
		if strings.TrimSpace(cfg.DBDSN) == "" {
			return nil, errors.New("DB_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.LoginRateLimit <= 0 {
		cfg.LoginRateLimit = 20
	}
	if cfg.MongoTimeout <= 0 {
		cfg.MongoTimeout = 5
	}

	return cfg, nil
}

func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) MongoConnectTimeout() time.Duration {
	return time.Duration(c.MongoTimeout) * time.Second
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

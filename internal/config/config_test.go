package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	// viper treats empty variables as unset
	for _, key := range []string{"APP_ENV", "SERVER_PORT", "STORE_DRIVER", "MONGO_URI", "DATABASE_NAME",
		"MONGO_TIMEOUT_SECONDS", "LOGIN_RATE_LIMIT", "BCRYPT_COST", "CSV_FILE_PATH"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "examen", cfg.DatabaseName)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, 5*time.Second, cfg.MongoConnectTimeout())
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, 20, cfg.LoginRateLimit)
	assert.Equal(t, "datos_subir_examen.csv", cfg.CSVFilePath)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "MONGO")
	t.Setenv("MONGO_URI", "mongodb://db:27017/")
	t.Setenv("DATABASE_NAME", "planillas")
	t.Setenv("LOGIN_RATE_LIMIT", "3")
	t.Setenv("BCRYPT_COST", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.HTTPAddress())
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://db:27017/", cfg.MongoURI)
	assert.Equal(t, "planillas", cfg.DatabaseName)
	assert.Equal(t, 3, cfg.LoginRateLimit)
	assert.Equal(t, 4, cfg.BcryptCost)
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/examen?sslmode=disable")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadBcryptCost(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("BCRYPT_COST", "99")

	_, err := Load()
	assert.Error(t, err)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.DB.Driver)
	assert.Equal(t, "wat2watch.db", cfg.DB.Path)
	assert.Equal(t, "8081", cfg.AccountPort)
	assert.Equal(t, "8082", cfg.RatingPort)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("ACCOUNT_SERVICE_PORT", "9081")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, "9081", cfg.AccountPort)
}

func TestDSN_Sqlite(t *testing.T) {
	d := DBConfig{Driver: "sqlite3", Path: "wat2watch.db"}
	assert.Equal(t, "file:wat2watch.db?_busy_timeout=5000&_journal_mode=WAL", d.DSN())
}

func TestDSN_Postgres(t *testing.T) {
	d := DBConfig{
		Driver:   "postgres",
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		DBName:   "wat2watch",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=wat2watch sslmode=disable",
		d.DSN())
}

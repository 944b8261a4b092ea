package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "serializable", cfg.DB.TxIsolation)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 720, cfg.JWT.Expiration)
	assert.Equal(t, 15*time.Minute, cfg.HTTP.RateLimitWindow)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "memory")
	v.Set("DB_PORT", "6543")
	v.Set("DB_TX_ISOLATION", "read_committed")
	v.Set("CORS_ORIGINS", "https://a.example, https://b.example")
	v.Set("DB_AUTO_MIGRATE", "false")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "read_committed", cfg.DB.TxIsolation)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
}

func TestFromViper_Invalidos(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("APP_ENV", "production")
	_, err = fromViper(v)
	assert.Error(t, err, "produção exige JWT_SECRET")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "epi", Password: "p@ss:word", DBName: "epi_control", SSLMode: "disable"}
	assert.Equal(t, "postgres://epi:p%40ss%3Aword@db:5432/epi_control?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestComplianceConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, ComplianceConfig{Timezone: "Nowhere/Invalid"}.Location())
}

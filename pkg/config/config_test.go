package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fertipos-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("POS_TAX_RATE", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.POS.TaxRate.Equal(decimal.RequireFromString("0.18")))
	assert.Equal(t, 8*time.Hour, cfg.POS.CartTTL)
	assert.Equal(t, "sales.completed", cfg.Kafka.SalesTopic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 5, cfg.HTTP.LoginBurst)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("POS_TAX_RATE", "0.05")
	t.Setenv("POS_CART_TTL_MINUTES", "30")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.05", cfg.POS.TaxRate.String())
	assert.Equal(t, 30*time.Minute, cfg.POS.CartTTL)
	assert.Equal(t, "INR", cfg.POS.Currency)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_TaxRateOutOfRange(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("POS_TAX_RATE", "1.5")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POS_TAX_RATE", "0.18")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss:word", DBName: "fertipos", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%3Aword@db:5432/fertipos?sslmode=disable", c.ConnectionString())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "crm-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "crm", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.False(t, cfg.Redis.Enabled())
		assert.False(t, cfg.RabbitMQ.Enabled())
		assert.Equal(t, 5, cfg.LLM.MaxIterations)
		assert.Equal(t, 5*time.Minute, cfg.Report.CacheTTL)
		assert.Equal(t, "crm-backend", cfg.Telemetry.ServiceName)
	})

	t.Run("loads values from environment variables with CRM prefix", func(t *testing.T) {
		t.Setenv("CRM_APP_NAME", "test-app")
		t.Setenv("CRM_APP_PORT", "9000")
		t.Setenv("CRM_DATABASE_HOST", "testdb.local")
		t.Setenv("CRM_DATABASE_PORT", "5433")
		t.Setenv("CRM_REDIS_HOST", "cache.local")
		t.Setenv("CRM_RABBITMQ_URL", "amqp://guest:guest@mq:5672/")
		t.Setenv("CRM_LLM_MAX_ITERATIONS", "3")
		t.Setenv("CRM_REPORT_CACHE_TTL", "30s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "cache.local:6379", cfg.Redis.Addr())
		assert.True(t, cfg.RabbitMQ.Enabled())
		assert.Equal(t, 3, cfg.LLM.MaxIterations)
		assert.Equal(t, 30*time.Second, cfg.Report.CacheTTL)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		t.Setenv("CRM_DATABASE_DRIVER", "oracle")
		_, err := Load()
		assert.ErrorContains(t, err, "database.driver")
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		t.Setenv("CRM_DATABASE_MAX_OPEN_CONNS", "2")
		t.Setenv("CRM_DATABASE_MAX_IDLE_CONNS", "5")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate_Production(t *testing.T) {
	base := func() *Config {
		cfg := &Config{App: AppConfig{Env: "production"}}
		applyDefaults(cfg)
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "s3cret"
		cfg.Storage.Enabled = true
		cfg.Storage.Bucket = "crm-files"
		return cfg
	}

	require.NoError(t, base().validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short jwt secret", func(c *Config) { c.JWT.Secret = "short" }, "jwt.secret"},
		{"missing db password", func(c *Config) { c.Database.Password = "" }, "database.password"},
		{"sqlite", func(c *Config) { c.Database.Driver = "sqlite" }, "database.driver"},
		{"no storage", func(c *Config) { c.Storage.Bucket = "" }, "storage.bucket"},
		{"wildcard cors", func(c *Config) { c.HTTP.CORSAllowOrigins = []string{"*"} }, "cors_allow_origins"},
		{"full sql logging", func(c *Config) { c.Telemetry.DBLogFullSQL = true }, "db_log_full_sql"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.validate(), tt.want)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "crm", Password: "p@ss word", DBName: "crm", SSLMode: "disable"}
	assert.Equal(t, "postgres://crm:p%40ss%20word@db:5432/crm?sslmode=disable", d.DSN())
}

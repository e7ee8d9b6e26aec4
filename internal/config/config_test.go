package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "smtp", cfg.Email.Provider)
	assert.Equal(t, "AnswerAI", cfg.Email.AppName)
	assert.Equal(t, 30*time.Second, cfg.Email.Timeout)
	assert.Equal(t, 587, cfg.Email.SMTP.Port)
	assert.True(t, cfg.Email.SMTP.UseTLS)
	assert.Empty(t, cfg.Email.SMTP.Host)
	assert.Equal(t, time.Minute, cfg.EmailVerification.ResendCooldown)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 25, cfg.Database.MaxConnections)
	assert.Zero(t, cfg.Database.MaxIdleConnections)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxIdleTime)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ANSWERAI_EMAIL_SMTP_HOST", "smtp.example.com")
	t.Setenv("ANSWERAI_EMAIL_SMTP_PORT", "2525")
	t.Setenv("ANSWERAI_EMAIL_SMTP_USE_TLS", "false")
	t.Setenv("ANSWERAI_EMAIL_BASE_URL", "https://answer.example.com")
	t.Setenv("ANSWERAI_EMAIL_TIMEOUT", "5s")

	v := viper.New()
	setDefaults(v)

	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", cfg.Email.SMTP.Host)
	assert.Equal(t, 2525, cfg.Email.SMTP.Port)
	assert.False(t, cfg.Email.SMTP.UseTLS)
	assert.Equal(t, "https://answer.example.com", cfg.Email.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Email.Timeout)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.DSN())
}

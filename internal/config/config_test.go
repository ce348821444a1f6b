package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "brushquote_db", cfg.DB.Name)
	assert.Equal(t, int64(25), cfg.S3.MaxFileSizeMB)
	assert.Equal(t, 10, cfg.Queue.PollIntervalSecs)
	assert.Equal(t, 3, cfg.Queue.MaxAttempts)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BRUSHQUOTE_DB_HOST", "db.internal")
	t.Setenv("BRUSHQUOTE_QUEUE_CONCURRENCY", "8")
	t.Setenv("BRUSHQUOTE_GENERATOR_PRIMARY_PROVIDER", "openai")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 8, cfg.Queue.Concurrency)
	assert.Equal(t, "openai", cfg.Generator.Primary.Provider)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)

	t.Setenv("BRUSHQUOTE_SERVER_PORT", ":7070")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	d := DBConfig{Host: "localhost", Port: 5432, User: "u", Password: "p", Name: "app", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@localhost:5432/app?sslmode=disable", d.DSN())
}

func TestGeneratorConfig_PrimaryFallsBackToFlat(t *testing.T) {
	g := GeneratorConfig{Provider: "claude", APIKey: "k", DefaultModel: "m", TimeoutSecs: 60}

	primary := g.PrimaryConfig()
	assert.Equal(t, "claude", primary.Provider)
	assert.Equal(t, "k", primary.APIKey)
	assert.Nil(t, g.SecondaryConfig())

	g.Primary = GeneratorProviderConfig{Provider: "openai"}
	g.Secondary = GeneratorProviderConfig{Provider: "claude"}
	assert.Equal(t, "openai", g.PrimaryConfig().Provider)
	require.NotNil(t, g.SecondaryConfig())
	assert.Equal(t, "claude", g.SecondaryConfig().Provider)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	p := writeFile(t, "config.yaml", `
server:
  port: 9000
  cors_origins: ["http://localhost:3000"]
ai:
  provider: gemini
  model: gemini-2.0-flash
  timeout: 45s
session:
  backend: redis
  redis_url: redis://localhost:6379/0
database:
  driver: mysql
  host: db
  port: 3306
  user: app
  password: secret
  name: stratiq
`)
	t.Setenv("PORT", "9100")
	t.Setenv("AI_MODEL", "gemini-2.5-pro")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Model)
	assert.Equal(t, 45*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "app:secret@tcp(db:3306)/stratiq?parseTime=true&charset=utf8mb4&loc=UTC", cfg.DSN())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.AI.Provider = "claude"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Session.Backend = "redis"
	assert.Error(t, cfg.Validate(), "redis without url")

	cfg = Default()
	cfg.Database.Driver = "sqlite"
	assert.Error(t, cfg.Validate())
}

func TestBadEnvPort(t *testing.T) {
	t.Setenv("PORT", "eighty")
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.Driver = "postgres"
	cfg.Database.Host, cfg.Database.Port = "pg", 5432
	cfg.Database.User, cfg.Database.Password, cfg.Database.Name = "u", "p", "d"
	assert.Equal(t, "host=pg port=5432 user=u password=p dbname=d sslmode=disable", cfg.DSN())
	cfg.Database.Driver = ""
	assert.Equal(t, "", cfg.DSN())
}

func TestLoadSecrets(t *testing.T) {
	p := writeFile(t, "secrets.yaml", "OPENAI_API_KEY: sk-test\nGEMINI_API_KEY: g-test\nOTHER: ignored\n")
	t.Setenv("GEMINI_API_KEY", "already-set")
	os.Unsetenv("OPENAI_API_KEY")
	t.Cleanup(func() { os.Unsetenv("OPENAI_API_KEY") })

	keys, err := LoadSecrets(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"OPENAI_API_KEY"}, keys)
	assert.Equal(t, "sk-test", os.Getenv("OPENAI_API_KEY"))
	assert.Equal(t, "already-set", os.Getenv("GEMINI_API_KEY"))
	_, set := os.LookupEnv("OTHER")
	assert.False(t, set)

	keys, err = LoadSecrets(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Nil(t, keys)
}

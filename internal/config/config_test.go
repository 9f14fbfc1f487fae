package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "data/kaigo.db", cfg.SQLite.Path)
	assert.Equal(t, 10*time.Second, cfg.OpTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.MQTT.Enabled)
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kaigo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9090"
db_driver: postgres
database:
  host: pg.local
  database: carehome
op_timeout: 3s
notify:
  webhook_url: http://hooks.local/handover
log:
  level: debug
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_HOST", "pg.override")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "pg.override", cfg.Database.Host)
	assert.Equal(t, "carehome", cfg.Database.Database)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 3*time.Second, cfg.OpTimeout)
	assert.Equal(t, "http://hooks.local/handover", cfg.Notify.WebhookURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "mysql")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_MQTTNeedsTopic(t *testing.T) {
	cfg := Default()
	cfg.MQTT.Enabled = true
	cfg.MQTT.Topic = ""
	assert.Error(t, cfg.Validate())
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("KAIGO_TEST_A=from-file\nKAIGO_TEST_B=from-file\n"), 0o600))

	t.Setenv("KAIGO_TEST_A", "from-env")
	os.Unsetenv("KAIGO_TEST_B")
	t.Cleanup(func() { os.Unsetenv("KAIGO_TEST_B") })

	loaded := LoadDotEnv(envFile, filepath.Join(dir, ".env.missing"))
	assert.Equal(t, []string{envFile}, loaded)
	assert.Equal(t, "from-env", os.Getenv("KAIGO_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("KAIGO_TEST_B"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
host = "localhost"
port = 8080
log_level = "trace"
log_to_stdout = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "workouts"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"

[production]
host = ""
port = 80
log_level = "debug"
logs_path = "/var/log/workout-tracker/service.log"
sentry_enabled = true
postgres_host = "db"
postgres_port = "5432"
postgres_db_name = "workouts"
prometheus_metrics_host = ""
prometheus_metrics_port = "2112"
`

func TestToml_Get(t *testing.T) {
	var configs Toml
	_, err := toml.Decode(testConfigContent, &configs)
	require.NoError(t, err)

	devCfg, err := configs.Get("development")
	require.NoError(t, err)
	require.NotNil(t, devCfg)
	assert.Equal(t, 8080, devCfg.Port)
	assert.Equal(t, "trace", devCfg.LogLevel)
	assert.True(t, devCfg.LogToStdout)
	assert.False(t, devCfg.SentryEnabled)

	prodCfg, err := configs.Get("prod")
	require.NoError(t, err)
	require.NotNil(t, prodCfg)
	assert.Equal(t, 80, prodCfg.Port)
	assert.Equal(t, "workouts", prodCfg.PostgresDBName)
	assert.True(t, prodCfg.SentryEnabled)

	_, err = configs.Get("staging")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfigContent), 0o600))

	cfg, err := Load("development", configPath)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "5432", cfg.PostgresPort)

	_, err = Load("development", filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"FOODQUERY_PORT", "FOODQUERY_DB_DRIVER", "FOODQUERY_DB_PATH", "FOODQUERY_DB_URL",
	"FOODQUERY_STATIC_DIR", "FOODQUERY_CORS_ORIGINS", "FOODQUERY_EXPOSE_ERRORS",
	"FOODQUERY_LOG_LEVEL", "FOODQUERY_LOG_FORMAT", "FOODQUERY_SHUTDOWN_TIMEOUT",
}

// снимает FOODQUERY_* окружения на время теста
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.True(t, cfg.ExposeErrors)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	p := writeYAML(t, `
port: "8081"
dbPath: /data/food.sqlite
staticDir: public
corsOrigins: ["http://a.test", "http://b.test"]
exposeErrors: false
logFormat: json
shutdownTimeout: 3s
`)
	cfg, err := Load(p, nil)
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "/data/food.sqlite", cfg.DBPath)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.False(t, cfg.ExposeErrors)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_ConfigFlagPicksFile(t *testing.T) {
	clearEnv(t)
	p := writeYAML(t, "port: \"9999\"\n")
	cfg, err := Load("config.yaml", []string{"-port", "7000", "-config", p})
	require.NoError(t, err)
	// флаг сильнее файла
	assert.Equal(t, "7000", cfg.Port)

	cfg, err = Load("config.yaml", []string{"--config=" + p})
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOODQUERY_PORT", "4000")
	t.Setenv("FOODQUERY_EXPOSE_ERRORS", "no")
	t.Setenv("FOODQUERY_CORS_ORIGINS", "http://x.test, http://y.test")
	t.Setenv("FOODQUERY_SHUTDOWN_TIMEOUT", "1m")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.False(t, cfg.ExposeErrors)
	assert.Equal(t, []string{"http://x.test", "http://y.test"}, cfg.CORSOrigins)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)

	cfg, err = Load(filepath.Join(t.TempDir(), "absent.yaml"), []string{"-port", "5000", "-expose-errors", "true", "-log-level", "debug"})
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.True(t, cfg.ExposeErrors)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoad_DBURLSwitchesDriver(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), []string{"-db-url", "postgres://u:p@localhost/db"})
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)

	// явный драйвер не переопределяем
	cfg, err = Load(filepath.Join(t.TempDir(), "absent.yaml"), []string{"-db-url", "postgres://u:p@localhost/db", "-db-driver", "sqlite"})
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), []string{"-db-driver", "oracle"})
	require.ErrorContains(t, err, "unknown dbDriver")

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"), []string{"-db-driver", "postgres"})
	require.ErrorContains(t, err, "dbUrl is required")

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"), []string{"-no-such-flag"})
	require.Error(t, err)

	p := writeYAML(t, "port: [1, 2\n")
	_, err = Load(p, nil)
	require.Error(t, err)

	p = writeYAML(t, "corsOrigins: [\"example.com\"]\n")
	_, err = Load(p, nil)
	require.ErrorContains(t, err, `corsOrigins: "example.com"`)

	t.Setenv("FOODQUERY_CORS_ORIGINS", "https://ok.example.com,ftp://bad.example.com")
	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.ErrorContains(t, err, "ftp://bad.example.com")
}

package bootstrap

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-auth-api/config"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_NAME=from-dotenv\nPROGRESS_ENTITIES=chapter:chapters\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("APP_NAME")
		_ = os.Unsetenv("PROGRESS_ENTITIES")
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.AppName)
	assert.Equal(t, map[string]string{"chapter": "chapters"}, cfg.Progress.Entities)
}

func TestLoadConfig_RejectsBadProgressTable(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PROGRESS_ENTITIES", "chapter:chapters;drop")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "progress")
}

func TestLoadConfig_RejectsInvalidEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LOG_LEVEL", "loud")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "parse config")
}

func TestLogConfigWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogConfigWarnings(logger, &config.AppConfig{JWT: config.JWTConfig{SecretKey: config.DefaultJWTSecret}, HTTP: config.HTTPConfig{HTTPSEnabled: true}})
	assert.Contains(t, buf.String(), "JWT_SECRET_KEY")
}

func TestInitSentry_DisabledIsNoop(t *testing.T) {
	flush, err := InitSentry(&config.AppConfig{}, discardLogger())
	require.NoError(t, err)
	flush()
}

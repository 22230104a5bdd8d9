package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, 5, cfg.DeleteRateLimit)
	assert.Equal(t, time.Minute, cfg.DeleteWindow)
	assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("DELETE_CODE", "1234")
	t.Setenv("DELETE_RATE_WINDOW", "30s")
	t.Setenv("MAX_BODY_BYTES", "1024")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,,")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "1234", cfg.DeleteCode)
	assert.Equal(t, 30*time.Second, cfg.DeleteWindow)
	assert.Equal(t, int64(1024), cfg.MaxBodyBytes)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "STORE_DRIVER=memory\nSEED_DEMO=true\nDB_HOST=db\nDB_USER=u\nDB_PASSWORD=p\nDB_NAME=phones\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, "host=db user=u password=p dbname=phones port=5432 sslmode=disable", cfg.DSN())
}

func TestDSN_PrefersURL(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://u:p@db/phones", DBHost: "ignored"}
	assert.Equal(t, "postgres://u:p@db/phones", cfg.DSN())
}

package assets_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	assets "github.com/goliatone/go-assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeEnvFile(t, `ASSETS_WORKBOOK=/srv/data/assets.xlsx
ASSETS_SIGNING_KEY=test-key
ASSETS_TOKEN_TTL=2h
`)

	cfg, err := assets.LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data/assets.xlsx", cfg.WorkbookPath)
	assert.Equal(t, "test-key", cfg.SigningKey)

	ttl, err := cfg.TokenDuration()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, ttl)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := assets.LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "assets.xlsx", cfg.WorkbookPath)
	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, "go-assets", cfg.Issuer)
	assert.Equal(t, "12h", cfg.TokenTTL)
}

func TestLoadConfigRejectsBadTTL(t *testing.T) {
	path := writeEnvFile(t, `ASSETS_WORKBOOK=assets.xlsx
ASSETS_TOKEN_TTL=soon
`)

	_, err := assets.LoadConfigFrom(path)
	require.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ordertally-service/internal/pkg/artifact"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, kvstore.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, artifact.DriverFilesystem, cfg.Artifact.Driver)
	assert.Equal(t, 30*24*time.Hour, cfg.ActivityRetention)
	assert.Equal(t, int64(1), cfg.SnowflakeNode)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_DRIVER=memory\nSNOWFLAKE_NODE=7\nS3_PATH_STYLE=true\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("STORE_DRIVER")
		os.Unsetenv("SNOWFLAKE_NODE")
		os.Unsetenv("S3_PATH_STYLE")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, kvstore.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, int64(7), cfg.SnowflakeNode)
	assert.True(t, cfg.Artifact.S3.PathStyle)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("SNOWFLAKE_NODE", "seven")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "SNOWFLAKE_NODE")
}

func TestLoad_EnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=9999\n"), 0o600))
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.HTTPPort)
}

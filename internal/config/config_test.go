package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no config.yaml present

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "retino-feed", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.False(t, cfg.Lock.Enabled)
	assert.Empty(t, cfg.FeedLog.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FEED_LOCK_ENABLED", "true")
	t.Setenv("FEED_HTTP_ADDR", ":9999")
	t.Setenv("FEED_REDIS_PORT", "6380")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Lock.Enabled)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
}

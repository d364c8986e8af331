package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(prev) })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("minimal config gets defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "api_key: abc123\n"))
		require.NoError(t, err)

		assert.Equal(t, "abc123", cfg.APIKey)
		assert.Equal(t, DefaultGatherCount, cfg.Gather.Count)
		assert.Equal(t, DefaultSimilarLimit, cfg.Gather.SimilarLimit)
		assert.Equal(t, DefaultTagLimit, cfg.Tags.Limit)
		assert.Nil(t, cfg.Cache)
	})

	t.Run("explicit values survive", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `api_key: abc123
autocorrect: true
gather:
  count: 8
  similar_limit: 50
tags:
  limit: 5
cache:
  enabled: true
  addr: localhost:6379
  ttl: 1h
`))
		require.NoError(t, err)

		assert.True(t, cfg.Autocorrect)
		assert.Equal(t, 8, cfg.Gather.Count)
		assert.Equal(t, 50, cfg.Gather.SimilarLimit)
		assert.Equal(t, 5, cfg.Tags.Limit)
		require.NotNil(t, cfg.Cache)
		assert.True(t, cfg.Cache.Enabled)
		assert.Equal(t, "localhost:6379", cfg.Cache.Addr)
		assert.Equal(t, time.Hour, cfg.Cache.TTL)
	})

	t.Run("cache block defaults its TTL", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `api_key: abc123
cache:
  enabled: true
  addr: localhost:6379
`))
		require.NoError(t, err)
		require.NotNil(t, cfg.Cache)
		assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
	})

	t.Run("missing api_key fails", func(t *testing.T) {
		_, err := Load(writeConfig(t, "gather:\n  count: 2\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api_key is required")
	})

	t.Run("enabled cache without addr fails", func(t *testing.T) {
		_, err := Load(writeConfig(t, "api_key: abc123\ncache:\n  enabled: true\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache.addr")
	})

	t.Run("negative gather count fails", func(t *testing.T) {
		_, err := Load(writeConfig(t, "api_key: abc123\ngather:\n  count: -1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gather.count")
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		_, err := Load(writeConfig(t, "api_key: [unclosed\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})
}

func TestFind(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		path := writeConfig(t, "api_key: abc123\n")
		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})

	t.Run("falls back to the working directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("api_key: abc123\n"), 0644))
		chdir(t, dir)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, DefaultFileName, found)
	})
}

package commands

import (
	"os"
	"strings"
	"testing"

	"github.com/cratedig/cratedig/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInit(t *testing.T) {
	t.Run("writes a starter config", func(t *testing.T) {
		chdir(t, t.TempDir())

		require.NoError(t, runInit(initCmd, nil))

		data, err := os.ReadFile(config.DefaultFileName)
		require.NoError(t, err)
		assert.Contains(t, string(data), "api_key:")
		assert.Contains(t, string(data), "similar_limit:")
	})

	t.Run("the starter config parses once the key is set", func(t *testing.T) {
		chdir(t, t.TempDir())
		require.NoError(t, runInit(initCmd, nil))

		data, err := os.ReadFile(config.DefaultFileName)
		require.NoError(t, err)
		patched := strings.Replace(string(data), "YOUR_API_KEY_HERE", "abc123", 1)
		require.NoError(t, os.WriteFile(config.DefaultFileName, []byte(patched), 0644))

		cfg, err := config.Load(config.DefaultFileName)
		require.NoError(t, err)
		assert.Equal(t, "abc123", cfg.APIKey)
		assert.Equal(t, config.DefaultGatherCount, cfg.Gather.Count)
	})

	t.Run("refuses to overwrite an existing config", func(t *testing.T) {
		chdir(t, t.TempDir())
		require.NoError(t, os.WriteFile(config.DefaultFileName, []byte("api_key: mine\n"), 0644))

		err := runInit(initCmd, nil)
		require.Error(t, err)

		data, readErr := os.ReadFile(config.DefaultFileName)
		require.NoError(t, readErr)
		assert.Equal(t, "api_key: mine\n", string(data))
	})

	t.Run("force overwrites", func(t *testing.T) {
		chdir(t, t.TempDir())
		require.NoError(t, os.WriteFile(config.DefaultFileName, []byte("api_key: mine\n"), 0644))

		forceInit = true
		defer func() { forceInit = false }()

		require.NoError(t, runInit(initCmd, nil))
		data, err := os.ReadFile(config.DefaultFileName)
		require.NoError(t, err)
		assert.Contains(t, string(data), "YOUR_API_KEY_HERE")
	})
}

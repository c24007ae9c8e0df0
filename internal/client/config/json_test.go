package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "full.json")
	require.NoError(t, os.WriteFile(full, []byte(`{"server_url":"http://api:9000","request_timeout":"2s"}`), 0o600))
	partial := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"request_timeout":1000000000}`), 0o600))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))

	t.Run("loads every field", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-config", full})

		assert.Equal(t, "http://api:9000", cfg.ServerURL)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("absent fields keep values", func(t *testing.T) {
		cfg := &Config{ServerURL: "http://keep"}
		parseJson(cfg, []string{"-c", partial})

		assert.Equal(t, "http://keep", cfg.ServerURL)
		assert.Equal(t, time.Second, cfg.RequestTimeout)
	})

	t.Run("no flag means no changes", func(t *testing.T) {
		cfg := &Config{ServerURL: "http://keep", RequestTimeout: 42 * time.Second}
		parseJson(cfg, nil)

		assert.Equal(t, "http://keep", cfg.ServerURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", bad}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}

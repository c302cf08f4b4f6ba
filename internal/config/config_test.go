package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sync-events", cfg.SyncTopic)
	assert.Equal(t, "commit-events", cfg.CommitTopic)
	assert.Equal(t, 10, cfg.WorkerReadTimeout)
	assert.Equal(t, "en_US", cfg.DefaultLocale)
	assert.Equal(t, []string{"en_US"}, cfg.Locales)
	assert.Equal(t, "disabled", cfg.MultilangMode)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("WORKER_READ_TIMEOUT", "30")
	t.Setenv("LOCALES", "en_US, fr_FR ,")
	t.Setenv("MULTILANG_MODE", "array")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.WorkerReadTimeout)
	assert.Equal(t, []string{"en_US", "fr_FR"}, cfg.Locales)
	assert.Equal(t, "array", cfg.MultilangMode)
}

func TestLoadIgnoresUnparsableInt(t *testing.T) {
	t.Setenv("WORKER_READ_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.WorkerReadTimeout)
}

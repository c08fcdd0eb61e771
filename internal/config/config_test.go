package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 0, cfg.Parallel)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.PathBoundary)
	assert.False(t, cfg.KeepPartial)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GSCP_PARALLEL", "8")
	t.Setenv("GSCP_LOG_LEVEL", "debug")
	t.Setenv("GSCP_PATH_BOUNDARY", "true")
	t.Setenv("GSCP_KEEP_PARTIAL", "true")

	cfg := Load()

	assert.Equal(t, 8, cfg.Parallel)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.PathBoundary)
	assert.True(t, cfg.KeepPartial)
}

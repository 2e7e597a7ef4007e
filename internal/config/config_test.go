package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetAddr())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.Game.StrictRules)
	assert.Equal(t, 2*time.Hour, cfg.Game.StaleTableTimeout)
	assert.Equal(t, 32, cfg.Words.RecentSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("STRICT_RULES", "true")
	t.Setenv("WORDS_FILE", "/tmp/words.yaml")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("STALE_TABLE_TIMEOUT", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.GetAddr())
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Game.StrictRules)
	assert.Equal(t, "/tmp/words.yaml", cfg.Words.File)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 30*time.Minute, cfg.Game.StaleTableTimeout)
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("STRICT_RULES", "maybe")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg.Logging.Format = "text"
	cfg.Game.TableCodeLength = 2
	assert.Error(t, cfg.Validate())
}

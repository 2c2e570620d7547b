package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	for _, key := range []string{"BOT_TOKEN", "CLIENT_ID", "GUILD_ID", "GLOBAL_COMMANDS", "WEBHOOK_PORT", "LOG_LEVEL", "BOT_VERSION", "DEPLOY_ON_READY", "LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Parse()
	require.NoError(t, err)

	assert.False(t, cfg.UseGlobalCommands)
	assert.True(t, cfg.DeployOnReady)
	assert.Equal(t, 5001, cfg.WebhookPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.0.1", cfg.Version)
	assert.Empty(t, cfg.LogFormat)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingToken)
}

func TestParseFromEnvironment(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("CLIENT_ID", "123")
	t.Setenv("GUILD_ID", "456")
	t.Setenv("GLOBAL_COMMANDS", "true")
	t.Setenv("WEBHOOK_PORT", "8080")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/bot")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, "123", cfg.ClientID)
	assert.Equal(t, "456", cfg.GuildID)
	assert.True(t, cfg.UseGlobalCommands)
	assert.Equal(t, 8080, cfg.WebhookPort)
	assert.Equal(t, "mongodb://localhost:27017/bot", cfg.MongoURI)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestParseRejectsBadPort(t *testing.T) {
	t.Setenv("WEBHOOK_PORT", "not-a-port")

	_, err := Parse()
	assert.Error(t, err)
}

func TestLoadReadsDotenvFile(t *testing.T) {
	t.Setenv("CLIENT_ID", "")
	os.Unsetenv("CLIENT_ID")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CLIENT_ID=from-file\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("CLIENT_ID") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.ClientID)
}

func TestLoadMissingDotenvIsNotAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

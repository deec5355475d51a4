package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token123")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "token123", cfg.DiscordToken)
	assert.Equal(t, "bk ", cfg.MessagePrefix)
	assert.Equal(t, "data/datastore.json", cfg.StoragePath)
	assert.Equal(t, "data/command_storage.json", cfg.CommandsPath)
	assert.Equal(t, "data/bookshelf.db", cfg.DatabasePath)
	assert.True(t, cfg.InitSlashCommands)
	assert.Equal(t, 2*time.Minute, cfg.WizardTimeout)
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token123")
	t.Setenv("MESSAGE_PREFIX", "!! ")
	t.Setenv("GUILD_BLACKLIST", "1,2,3")
	t.Setenv("WIZARD_TIMEOUT", "45s")
	t.Setenv("INIT_SLASH_COMMANDS", "false")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "!! ", cfg.MessagePrefix)
	assert.Equal(t, []string{"1", "2", "3"}, cfg.GuildBlacklist)
	assert.Equal(t, 45*time.Second, cfg.WizardTimeout)
	assert.False(t, cfg.InitSlashCommands)
}

func TestNewRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "placeholder") // registers cleanup
	os.Unsetenv("DISCORD_TOKEN")

	_, err := New()
	assert.Error(t, err)
}

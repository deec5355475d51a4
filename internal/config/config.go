package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries everything the bot reads from the environment. A .env file
// in the working directory is loaded first; real environment variables win.
type Config struct {
	DiscordToken      string        `env:"DISCORD_TOKEN,required"`
	MessagePrefix     string        `env:"MESSAGE_PREFIX" envDefault:"bk "`
	StoragePath       string        `env:"STORAGE_PATH" envDefault:"data/datastore.json"`
	CommandsPath      string        `env:"COMMANDS_PATH" envDefault:"data/command_storage.json"`
	DatabasePath      string        `env:"DATABASE_PATH" envDefault:"data/bookshelf.db"`
	NASAAPIKey        string        `env:"NASA_API_KEY"`
	BackupURL         string        `env:"BACKUP_URL"`
	DeveloperID       string        `env:"DEVELOPER_ID"`
	GuildBlacklist    []string      `env:"GUILD_BLACKLIST" envSeparator:","`
	InitSlashCommands bool          `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	LogToFile         bool          `env:"LOG_TO_FILE"`
	WizardTimeout     time.Duration `env:"WIZARD_TIMEOUT" envDefault:"2m"`
}

// New loads and validates the configuration.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.MessagePrefix == "" {
		return nil, fmt.Errorf("MESSAGE_PREFIX cannot be empty")
	}

	return &cfg, nil
}

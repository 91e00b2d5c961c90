package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config is the process-level configuration, read once from the environment.
// Guild-level settings (feature flags, banned terms, modes) live in storage.
type Config struct {
	DiscordToken      string `env:"DISCORD_TOKEN"`
	StoragePath       string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	AIAPIURL          string `env:"AI_API_URL" envDefault:"https://text.pollinations.ai/openai"`
	AIModel           string `env:"AI_MODEL" envDefault:"openai"`
	DeveloperID       string `env:"DEVELOPER_ID"`
	InitSlashCommands bool   `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal("failed to parse environment: ", err)
	}
	if cfg.DiscordToken == "" {
		log.Fatal("DISCORD_TOKEN is not set")
	}
	return cfg
}

// IsDeveloper reports whether userID matches the configured developer account.
func IsDeveloper(cfg *Config, userID string) bool {
	return cfg.DeveloperID != "" && cfg.DeveloperID == userID
}

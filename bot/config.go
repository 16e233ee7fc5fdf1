// Package bot assembles the file distribution bot from the reusable core
// and the domain services.
package bot

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "filegate/core/config"
	coredatabase "filegate/core/database"
)

// BotConfig holds settings specific to the file distribution bot.
type BotConfig struct {
	// AdminIDs are always treated as admins regardless of the database.
	AdminIDs []int64 `yaml:"admin_ids" envconfig:"ADMIN_IDS"`
}

// Config aggregates the core configuration with the bot's own sections.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Bot      BotConfig           `yaml:"bot"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// StaticAdminIDs merges the bot admin list with the core admin id.
func (c *Config) StaticAdminIDs() []int64 {
	ids := make([]int64, 0, len(c.Bot.AdminIDs)+1)
	ids = append(ids, c.Bot.AdminIDs...)
	if c.Telegram.AdminID != 0 {
		ids = append(ids, c.Telegram.AdminID)
	}
	return ids
}

// LoadConfig reads configuration from a YAML file and the environment.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	return &cfg, nil
}

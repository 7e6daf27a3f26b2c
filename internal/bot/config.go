package bot

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Bot struct {
		Token    string  `toml:"token"`
		AdminIDs []int64 `toml:"admin_ids"`
	} `toml:"bot"`
	Store struct {
		DSN            string `toml:"dsn"`
		CollectionPath string `toml:"collection_path"`
		AuthToken      string `toml:"auth_token"`
	} `toml:"store"`
}

func ReadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := toml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is not specified in config")
	}
	if cfg.Store.DSN == "" {
		return nil, fmt.Errorf("store DSN is not specified in config")
	}

	return &cfg, nil
}

package app

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

type HeaderConfig struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type GSheetConfig struct {
	CredentialsPath string `toml:"credentials_path"`
	SpreadsheetID   string `toml:"spreadsheet_id"`
	Schedule        string `toml:"schedule"`
}

type Config struct {
	Server struct {
		Port            string         `toml:"port"`
		RequiredHeaders []HeaderConfig `toml:"required_headers"`
	} `toml:"server"`

	Store struct {
		DSN            string `toml:"dsn"`
		MigrationsDir  string `toml:"migrations_dir"`
		CollectionPath string `toml:"collection_path"`
		AuthToken      string `toml:"auth_token"`
	} `toml:"store"`

	Challenge struct {
		Endpoint       string `toml:"endpoint"`
		SiteKey        string `toml:"site_key"`
		Action         string `toml:"action"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"challenge"`

	Replay struct {
		Enabled     bool   `toml:"enabled"`
		RedisURL    string `toml:"redis_url"`
		KeyTemplate string `toml:"key_template"`
		TTLSeconds  int    `toml:"ttl_seconds"`
	} `toml:"replay"`

	GSheet map[string]GSheetConfig `toml:"gsheet"`
}

// LoadConfig reads and validates the TOML config. Deployment secrets come in
// as ${VAR} references expanded from the environment. Missing required values
// fail here, at startup, never at submission time.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := toml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("error reading config file %s\n> Error: %w", path, err)
	}

	if config.Server.Port == "" {
		return nil, fmt.Errorf("server port is not specified in config, use a value like :9999")
	}
	if config.Store.DSN == "" {
		return nil, fmt.Errorf("store DSN is not specified in config")
	}
	if config.Challenge.Endpoint == "" || config.Challenge.SiteKey == "" {
		return nil, fmt.Errorf("challenge endpoint and site key are required in config")
	}

	if config.Store.MigrationsDir == "" {
		config.Store.MigrationsDir = "./migrations"
	}
	if config.Store.CollectionPath == "" {
		config.Store.CollectionPath = "registrations"
	}
	if config.Challenge.Action == "" {
		config.Challenge.Action = "registration_submit"
	}
	if config.Challenge.TimeoutSeconds == 0 {
		config.Challenge.TimeoutSeconds = 10
	}
	if config.Replay.KeyTemplate == "" {
		config.Replay.KeyTemplate = "challenge:used:{token}"
	}
	if config.Replay.TTLSeconds == 0 {
		config.Replay.TTLSeconds = 120
	}

	logger.Debug.Printf("Loaded config: store=%s challenge=%s", config.Store.DSN, config.Challenge.Endpoint)

	return &config, nil
}

func (c *Config) ChallengeTimeout() time.Duration {
	return time.Duration(c.Challenge.TimeoutSeconds) * time.Second
}

func (c *Config) ReplayTTL() time.Duration {
	return time.Duration(c.Replay.TTLSeconds) * time.Second
}

// Package config handles application configuration loading from YAML files.
// Supports environment variable expansion in string values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNoTransport is returned when neither chat transport is configured.
var ErrNoTransport = errors.New("telegram.token or discord.token is required")

// Config holds all application configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Discord  DiscordConfig  `yaml:"discord"`
	Database DatabaseConfig `yaml:"database"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Sysinfo  SysinfoConfig  `yaml:"sysinfo"`
	Log      LogConfig      `yaml:"log"`
}

// TelegramConfig holds Telegram bot settings.
type TelegramConfig struct {
	Token          string  `yaml:"token"`
	AllowedChatIDs []int64 `yaml:"allowed_chat_ids"`
}

// DiscordConfig holds Discord bot settings.
type DiscordConfig struct {
	Token           string  `yaml:"token"`
	GuildID         string  `yaml:"guild_id"`          // register commands in one guild only
	AllowedGuildIDs []int64 `yaml:"allowed_guild_ids"` // empty allows every guild
}

// DatabaseConfig holds audit database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // "-" disables the audit log
}

// DefaultsConfig holds default values for command execution.
type DefaultsConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// SysinfoConfig holds host fact sources. Empty values use platform defaults.
type SysinfoConfig struct {
	DataPath     string        `yaml:"data_path"`
	ExternalPath string        `yaml:"external_path"`
	CPUInfoPath  string        `yaml:"cpuinfo_path"`
	VersionPath  string        `yaml:"version_path"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// Load reads configuration from the specified YAML file path.
// Supports ${ENV_VAR} expansion in string values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Path != "-" {
		cfg.Database.Path = cfg.ExpandPath(path, cfg.Database.Path)
	}
	return cfg, nil
}

// Parse decodes YAML configuration and applies defaults.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// Default returns a configuration with defaults and no transports.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// Validate checks that at least one transport can start.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" && c.Discord.Token == "" {
		return ErrNoTransport
	}

	if c.Telegram.Token != "" && len(c.Telegram.AllowedChatIDs) == 0 {
		return fmt.Errorf("telegram.allowed_chat_ids must have at least one entry")
	}

	return nil
}

// setDefaults applies default values for unset fields.
func (c *Config) setDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "./audit.db"
	}

	if c.Defaults.Timeout == 0 {
		c.Defaults.Timeout = 60 * time.Second
	}

	if c.Sysinfo.ReadTimeout == 0 {
		c.Sysinfo.ReadTimeout = 2 * time.Second
	}
}

// ExpandPath resolves a path relative to the config file directory.
func (c *Config) ExpandPath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(base), path)
}

// envVarPattern matches ${VAR} or $VAR patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnvVars replaces ${VAR} and $VAR with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var name string
		if match[1] == '{' {
			name = match[2 : len(match)-1]
		} else {
			name = match[1:]
		}
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Source      PlatformConfig    `toml:"source"`
	Destination DestinationConfig `toml:"destination"`
	Migration   MigrationConfig   `toml:"migration"`
	Database    DatabaseConfig    `toml:"database"`
}

// PlatformConfig contains connection settings for one messaging platform.
type PlatformConfig struct {
	Domain   string `toml:"domain"`
	APIToken string `toml:"api_token"`
}

// DestinationConfig contains destination connection settings plus the fixed
// fallback identities substituted when a source identity cannot be mapped.
type DestinationConfig struct {
	Domain           string `toml:"domain"`
	APIToken         string `toml:"api_token"`
	FixedAgentID     string `toml:"fixed_agent_id"`
	DefaultChannelID string `toml:"default_channel_id"`
	FixedActorID     string `toml:"fixed_actor_id"`
	FixedActorType   string `toml:"fixed_actor_type"`
}

// MigrationConfig contains run-level settings for the migration pipeline.
type MigrationConfig struct {
	RosterPath   string `toml:"roster_path"`
	RegistryPath string `toml:"registry_path"`
	DelayMs      int    `toml:"delay_ms"`
	ItemsPerPage int    `toml:"items_per_page"`
}

// Delay returns the configured inter-request delay as a [time.Duration].
func (m MigrationConfig) Delay() time.Duration {
	return time.Duration(m.DelayMs) * time.Millisecond
}

// DatabaseConfig contains database connection settings for the run ledger.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

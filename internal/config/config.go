// Package config provides configuration management for pomo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/xvierd/pomo/internal/domain"
)

// Config holds all configuration for the pomo application.
type Config struct {
	FirstRun      bool               `mapstructure:"first_run"`
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	UI            UIConfig           `mapstructure:"ui"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Storage       StorageConfig      `mapstructure:"storage"`
}

// TimerConfig holds session durations and the long-break cycle length.
type TimerConfig struct {
	WorkDuration    Duration `mapstructure:"work_duration"`
	ShortBreak      Duration `mapstructure:"short_break"`
	LongBreak       Duration `mapstructure:"long_break"`
	CyclesUntilLong int      `mapstructure:"cycles_until_long"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Sound      bool   `mapstructure:"sound"`
	SoundStyle string `mapstructure:"sound_style"`
}

// UIConfig holds interface behavior settings.
type UIConfig struct {
	AutoStart bool `mapstructure:"auto_start"`
	DarkMode  bool `mapstructure:"dark_mode"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FirstRun: true,
		Timer: TimerConfig{
			WorkDuration:    Duration(25 * time.Minute),
			ShortBreak:      Duration(5 * time.Minute),
			LongBreak:       Duration(15 * time.Minute),
			CyclesUntilLong: 4,
		},
		Notifications: NotificationConfig{
			Enabled:    true,
			Sound:      true,
			SoundStyle: string(domain.SoundStyleBeep),
		},
		UI: UIConfig{
			AutoStart: false,
			DarkMode:  true,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: "~/.pomo",
		},
	}
}

// Settings converts the file representation into domain settings,
// clamping out-of-range values on the way in.
func (c *Config) Settings() domain.Settings {
	s := domain.Settings{
		WorkMinutes:          int(time.Duration(c.Timer.WorkDuration) / time.Minute),
		ShortBreakMinutes:    int(time.Duration(c.Timer.ShortBreak) / time.Minute),
		LongBreakMinutes:     int(time.Duration(c.Timer.LongBreak) / time.Minute),
		CyclesUntilLongBreak: c.Timer.CyclesUntilLong,
		SoundEnabled:         c.Notifications.Sound,
		NotificationsEnabled: c.Notifications.Enabled,
		AutoStartEnabled:     c.UI.AutoStart,
		DarkMode:             c.UI.DarkMode,
		SoundStyle:           domain.SoundStyle(c.Notifications.SoundStyle),
	}
	return s.Clamped()
}

// ApplySettings writes domain settings back into the file representation.
func (c *Config) ApplySettings(s domain.Settings) {
	s = s.Clamped()
	c.Timer.WorkDuration = Duration(time.Duration(s.WorkMinutes) * time.Minute)
	c.Timer.ShortBreak = Duration(time.Duration(s.ShortBreakMinutes) * time.Minute)
	c.Timer.LongBreak = Duration(time.Duration(s.LongBreakMinutes) * time.Minute)
	c.Timer.CyclesUntilLong = s.CyclesUntilLongBreak
	c.Notifications.Sound = s.SoundEnabled
	c.Notifications.Enabled = s.NotificationsEnabled
	c.Notifications.SoundStyle = string(s.SoundStyle)
	c.UI.AutoStart = s.AutoStartEnabled
	c.UI.DarkMode = s.DarkMode
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	// Set defaults
	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.pomo" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".pomo")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	// Set all values
	viper.Set("first_run", cfg.FirstRun)
	viper.Set("timer.work_duration", cfg.Timer.WorkDuration.String())
	viper.Set("timer.short_break", cfg.Timer.ShortBreak.String())
	viper.Set("timer.long_break", cfg.Timer.LongBreak.String())
	viper.Set("timer.cycles_until_long", cfg.Timer.CyclesUntilLong)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("notifications.sound_style", cfg.Notifications.SoundStyle)
	viper.Set("ui.auto_start", cfg.UI.AutoStart)
	viper.Set("ui.dark_mode", cfg.UI.DarkMode)
	viper.Set("mcp.enabled", cfg.MCP.Enabled)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomo.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("first_run", true)
	viper.SetDefault("timer.work_duration", "25m")
	viper.SetDefault("timer.short_break", "5m")
	viper.SetDefault("timer.long_break", "15m")
	viper.SetDefault("timer.cycles_until_long", 4)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("notifications.sound_style", string(domain.SoundStyleBeep))
	viper.SetDefault("ui.auto_start", false)
	viper.SetDefault("ui.dark_mode", true)
	viper.SetDefault("mcp.enabled", true)
	viper.SetDefault("storage.data_dir", "~/.pomo")
}

// Package config manages application configuration from files and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ShipCode string `mapstructure:"ship_code"`
	Sheets   struct {
		FloorPlan string `mapstructure:"floor_plan"`
		Totals    string `mapstructure:"totals"`
	} `mapstructure:"sheets"`
	Tolerance float64 `mapstructure:"tolerance"`
	Note      struct {
		Width     float64 `mapstructure:"width"`
		Height    float64 `mapstructure:"height"`
		AutoSize  bool    `mapstructure:"autosize"`
		Visible   bool    `mapstructure:"visible"`
		OutSuffix string  `mapstructure:"out_suffix"`
	} `mapstructure:"note"`
	Output struct {
		Format string `mapstructure:"format"`
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`
}

func setDefaults() {
	// An explicit empty default keeps the key visible to Unmarshal so the
	// STAF_SHIP_CODE env override is picked up.
	viper.SetDefault("ship_code", "")
	viper.SetDefault("sheets.floor_plan", "FLOOR PLAN")
	viper.SetDefault("sheets.totals", "TOTALS")
	viper.SetDefault("tolerance", 0.2)
	viper.SetDefault("note.width", 200.0)
	viper.SetDefault("note.height", 100.0)
	viper.SetDefault("note.autosize", true)
	viper.SetDefault("note.visible", false)
	viper.SetDefault("note.out_suffix", "_with_Note")
	viper.SetDefault("output.color", true)
	viper.SetDefault("output.format", "text")
}

// Load reads the configuration from ~/.staf/config.yaml and environment
// variables (STAF_ prefix).
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	setDefaults()

	viper.SetEnvPrefix("STAF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".staf"
	}
	return filepath.Join(home, ".staf")
}

// ConfigPath returns the path of the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// HistoryPath returns the path of the write-history log.
func HistoryPath() string {
	return filepath.Join(configDir(), "history.jsonl")
}

// SaveConfig writes the current settings to the config file.
func SaveConfig() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create %s: %w", dir, err)
	}
	return viper.WriteConfigAs(ConfigPath())
}

// Set updates a single key and persists the config.
func Set(key, value string) error {
	viper.Set(key, value)
	return SaveConfig()
}

// Get returns a single config value as a string.
func Get(key string) string {
	return viper.GetString(key)
}

// ResetConfig restores all defaults and persists them.
func ResetConfig() error {
	viper.Reset()
	setDefaults()
	return SaveConfig()
}

// ShowConfig renders the effective settings, sorted by key.
func ShowConfig() string {
	keys := viper.AllKeys()
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Config file: %s\n\n", ConfigPath()))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%-22s %v\n", k+":", viper.Get(k)))
	}
	return b.String()
}

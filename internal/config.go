package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Library     string   `mapstructure:"library"`
	Pattern     string   `mapstructure:"pattern"`
	ImageExt    []string `mapstructure:"image_extensions"`
	Dedup       bool     `mapstructure:"dedup"`
	UseExifTool bool     `mapstructure:"exiftool"`
	Hardlinks   bool     `mapstructure:"hardlinks"`
}

func LoadConfig() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find user config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName("ordna")
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(configDir, "ordna"))

	// Set defaults:
	v.SetDefault("library", "")
	v.SetDefault("pattern", DefaultPattern)
	v.SetDefault("image_extensions", []string{".jpg", ".jpeg"})
	v.SetDefault("dedup", true)
	v.SetDefault("exiftool", false)
	v.SetDefault("hardlinks", false)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found; that's OK, just use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

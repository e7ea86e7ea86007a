// Package config loads the enlil configuration file.
//
// The file is searched for in a fixed order: ./enlil.yaml,
// $HOME/.enlil.yaml, $HOME/.local/enlil.yaml, /etc/enlil.yaml. The first
// one found wins. An explicit --config path overrides the search.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds every setting the pipeline needs.
type Config struct {
	TargetDir    string `mapstructure:"target_dir"`
	ManifestFile string `mapstructure:"manifest_file"`
	VideoFile    string `mapstructure:"video_file"`
	SourceURL    string `mapstructure:"source_url"`
	Framerate    int    `mapstructure:"framerate"`
	Scale        string `mapstructure:"scale"`
	MarginBottom int    `mapstructure:"margin_bottom"`
	Concurrency  int    `mapstructure:"concurrency"`
}

const (
	ConfigName = "enlil.yaml"

	DefaultSourceURL    = "https://services.swpc.noaa.gov/products/animations/enlil.json"
	DefaultFramerate    = 10
	DefaultScale        = "800:542"
	DefaultMarginBottom = 50
	DefaultConcurrency  = 4
)

// SearchPaths returns the candidate config file locations in lookup order.
func SearchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return []string{
		ConfigName,
		filepath.Join(home, "."+ConfigName),
		filepath.Join(home, ".local", ConfigName),
		filepath.Join("/etc", ConfigName),
	}
}

// Init locates and reads the configuration file. When cfgFile is non-empty
// it is used directly; otherwise the search path is walked. A missing file
// is not an error on its own: the required settings can come entirely from
// ENLIL_* environment variables, and Get reports what is still absent.
func Init(cfgFile string) error {
	setDefaults()
	viper.SetEnvPrefix("ENLIL")
	viper.AutomaticEnv()
	// The required keys have no default, so they must be bound
	// explicitly for Unmarshal to see their environment values.
	for _, key := range []string{"target_dir", "manifest_file", "video_file"} {
		viper.BindEnv(key)
	}

	if cfgFile == "" {
		cfgFile = findConfig()
		if cfgFile == "" {
			return nil
		}
	}

	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("source_url", DefaultSourceURL)
	viper.SetDefault("framerate", DefaultFramerate)
	viper.SetDefault("scale", DefaultScale)
	viper.SetDefault("margin_bottom", DefaultMarginBottom)
	viper.SetDefault("concurrency", DefaultConcurrency)
}

func findConfig() string {
	for _, candidate := range SearchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Get unmarshals and validates the current configuration.
func Get() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.TargetDir == "":
		return errors.New("configuration error: target_dir is required")
	case c.ManifestFile == "":
		return errors.New("configuration error: manifest_file is required")
	case c.VideoFile == "":
		return errors.New("configuration error: video_file is required")
	}
	if c.Framerate <= 0 {
		return fmt.Errorf("configuration error: framerate must be positive, got %d", c.Framerate)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("configuration error: concurrency must be positive, got %d", c.Concurrency)
	}
	return nil
}

// FileUsed reports which configuration file viper ended up reading.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

const starterConfig = `# enlil configuration
#
# target_dir:    directory where the ENLIL frames are cached
# manifest_file: local copy of the NOAA animation manifest (JSON)
# video_file:    final MP4 animation
target_dir: /var/tmp/enlil
manifest_file: /var/tmp/enlil/enlil.json
video_file: /var/tmp/enlil/enlil.mp4

# Optional settings and their defaults:
# source_url: ` + DefaultSourceURL + `
# framerate: 10
# scale: "800:542"
# margin_bottom: 50
# concurrency: 4
`

// Write creates a starter configuration file at path. It refuses to
// overwrite an existing file.
func Write(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Package config loads the project-root, cache, and pool-search-path
// settings of SPEC_FULL.md §10 through viper, following the exact
// SetConfigName/AddConfigPath/SetDefault/SetEnvPrefix/ReadInConfig
// sequence internal/disk/dmg.go uses for its DMGConfig.
package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds the settings a project-directory caller (cmd/, batch
// drivers) needs before it opens anything.
type Config struct {
	ProjectRoot     string   `mapstructure:"project_root"`
	CacheEnabled    bool     `mapstructure:"cache_enabled"`
	CacheSize       int      `mapstructure:"cache_size"`
	PoolSearchPaths []string `mapstructure:"pool_search_paths"`
}

// Loader holds the viper instance a Config was read from, so Watch can
// re-read the same file a later change touches.
type Loader struct {
	v *viper.Viper
}

// New builds a Loader with this package's config-name/path/default/
// env conventions, without reading anything yet.
func New() *Loader {
	v := viper.New()
	v.SetConfigName("mcd2d")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.mcd2d")
	v.AddConfigPath("/etc/mcd2d")

	v.SetDefault("project_root", ".")
	v.SetDefault("cache_enabled", true)
	v.SetDefault("cache_size", 100)
	v.SetDefault("pool_search_paths", []string{"."})

	v.SetEnvPrefix("MCD2D")
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads mcd2d.yaml from the current directory, ./config,
// $HOME/.mcd2d, or /etc/mcd2d (first one found wins), falling back to
// defaults when none exists, and lets MCD2D_-prefixed environment
// variables override any setting.
func Load() (*Config, error) {
	return New().Load()
}

// Load reads l's config file (if any) and unmarshals it into a Config.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Watch re-reads l's config file on every change and invokes onChange
// with the updated Config, for the long-running batch-driver process
// (§10); it is the caller's responsibility to stop relying on the
// previous Config once onChange fires.
func (l *Loader) Watch(onChange func(*Config)) {
	l.v.OnConfigChange(func(fsnotify.Event) {
		var updated Config
		if err := l.v.Unmarshal(&updated); err == nil {
			onChange(&updated)
		}
	})
	l.v.WatchConfig()
}

package calendar

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ngrash/go-isodatetime/internal/log"
	"github.com/ngrash/go-isodatetime/internal/memo"
)

// Config describes how a Calendar is set up.
type Config struct {
	// Mode is the calendar mode or one of its aliases. Empty means Gregorian.
	Mode Mode `yaml:"mode" toml:"mode" env:"ISODATETIME_CALENDAR"`

	// CacheCapacity is the maximum number of entries per memoization cache.
	CacheCapacity int `yaml:"cache_capacity" toml:"cache_capacity" env:"ISODATETIME_CACHE_CAPACITY"`
}

// DefaultConfig returns the configuration of a fresh Default calendar.
func DefaultConfig() Config {
	return Config{
		Mode:          Gregorian,
		CacheCapacity: memo.DefaultCapacity,
	}
}

// Normalize resolves mode aliases and fills in zero values.
func (c *Config) Normalize() error {
	m, err := ParseMode(string(c.Mode))
	if err != nil {
		return err
	}
	c.Mode = m
	if c.CacheCapacity <= 0 {
		c.CacheCapacity = memo.DefaultCapacity
	}
	return nil
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file, then applies
// overrides from the ISODATETIME_CALENDAR and ISODATETIME_CACHE_CAPACITY
// environment variables. A missing file yields the defaults plus overrides.
// An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	return LoadConfigFS(afero.NewOsFs(), path)
}

// LoadConfigFS is LoadConfig reading from fsys.
func LoadConfigFS(fsys afero.Fs, path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := decodeFile(fsys, path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(fsys afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("calendar: no config file", "path", path)
		return nil
	}
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	log.Info("calendar: config loaded", "path", path)
	return nil
}

// Apply switches c to the mode and cache capacity of cfg. Caches are only
// replaced when the capacity changes.
func (c *Calendar) Apply(cfg Config) error {
	if err := cfg.Normalize(); err != nil {
		log.Error("calendar: rejected config", err, "mode", string(cfg.Mode))
		return err
	}
	if cfg.CacheCapacity != c.capacity {
		c.SetCacheCapacity(cfg.CacheCapacity)
	}
	return c.SetMode(cfg.Mode)
}

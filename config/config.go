package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile = "gothello/config.yaml"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type RefereeConfig struct {
	Server       int    `yaml:"server"`        // Referee number, listening on BasePort+Server
	ObserverAddr string `yaml:"observer_addr"` // HTTP observer address, empty to disable
}

type ExperimentsConfig struct {
	Games    int    `yaml:"games"`    // Per matchup
	Depths   []int  `yaml:"depths"`   // Each depth plays against the baseline
	Baseline int    `yaml:"baseline"` // Depth of the baseline agent
	OutDir   string `yaml:"out_dir"`
}

type Config struct {
	LogLevel    string            `yaml:"log_level"`
	Goroutines  int               `yaml:"goroutines"` // Root fan-out, 1 for a sequential search
	Seed        uint64            `yaml:"seed"`       // 0 seeds from the clock
	Referee     RefereeConfig     `yaml:"referee"`
	Experiments ExperimentsConfig `yaml:"experiments"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		Goroutines: 1,
		Referee: RefereeConfig{
			Server: 0,
		},
		Experiments: ExperimentsConfig{
			Games:    10,
			Depths:   []int{1, 2, 3},
			Baseline: 1,
			OutDir:   "experiments",
		},
	}
}

// Load reads the user's config file if there is one, falling back to the defaults.
func Load() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig()
		return &config, nil
	}
	return LoadFile(absPath)
}

// LoadFile reads the config at path over the defaults. Fields missing from the file keep
// their default values.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Goroutines < 1 {
		return &InvalidConfig{"goroutines must be at least 1"}
	}
	if c.Referee.Server < 0 {
		return &InvalidConfig{"referee server number must not be negative"}
	}
	if c.Experiments.Games < 1 {
		return &InvalidConfig{"experiments need at least one game per matchup"}
	}
	if c.Experiments.Baseline < 0 {
		return &InvalidConfig{"baseline depth must not be negative"}
	}
	for _, depth := range c.Experiments.Depths {
		if depth < 0 {
			return &InvalidConfig{fmt.Sprintf("depth %d is negative", depth)}
		}
	}
	return nil
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to locate config file: %w", err)
	}
	return c.SaveFile(absPath, 0664)
}

func (c *Config) SaveFile(path string, perm fs.FileMode) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, perm)
}

// IsInvalid reports whether err came from validation rather than I/O.
func IsInvalid(err error) bool {
	var invalid *InvalidConfig
	return errors.As(err, &invalid)
}

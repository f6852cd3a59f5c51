package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DirName   = ".ticklist"
	FileName  = "config.yaml"
	EnvPrefix = "TICKLIST"
)

type Config struct {
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`
	Web      WebConfig      `mapstructure:"web" yaml:"web"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

type StorageConfig struct {
	// Driver is "sqlite" or "mysql".
	Driver string `mapstructure:"driver" yaml:"driver"`
	// Path is the SQLite database file.
	Path string `mapstructure:"path" yaml:"path"`
	// DSN is used by the mysql driver.
	DSN string `mapstructure:"dsn" yaml:"dsn,omitempty"`
	// Key is the entry holding the serialized task list.
	Key string `mapstructure:"key" yaml:"key"`
}

type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

type WebConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// File receives log output for the terminal editor, which owns stderr.
	File string `mapstructure:"file" yaml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   filepath.Join(DirName, "ticklist.db"),
			Key:    "tasks",
		},
		Snapshot: SnapshotConfig{
			Enabled: true,
			Path:    filepath.Join(DirName, "snapshot.jsonl"),
		},
		Web: WebConfig{
			Port: "8000",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(DirName, "ticklist.log"),
		},
	}
}

// DefaultPath returns the project config file path relative to dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, DirName, FileName)
}

// Load merges defaults, the YAML file at path (if it exists) and TICKLIST_*
// environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	defaults := Default()

	v := viper.New()
	setDefaults(v, defaults)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("snapshot.enabled", d.Snapshot.Enabled)
	v.SetDefault("snapshot.path", d.Snapshot.Path)
	v.SetDefault("web.port", d.Web.Port)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case "mysql":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the mysql driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q (want sqlite or mysql)", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	return nil
}

// DSN returns the data source for the configured driver.
func (c *Config) DSN() string {
	if c.Storage.Driver == "mysql" {
		return c.Storage.DSN
	}
	return c.Storage.Path
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left alone.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Default().Marshal()
	if err != nil {
		return false, fmt.Errorf("failed to encode default config: %w", err)
	}

	content := "# ticklist configuration\n# storage.driver: sqlite (path) or mysql (dsn)\n" + string(data)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

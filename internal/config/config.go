package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultConfigFilename = "specify_config.json"
	DefaultHost           = "127.0.0.1"
	DefaultDriver         = DriverMySQL

	envPrefix = "SPECIFY"
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Database holds the connection settings for a Specify database.
// The JSON layout matches the specify_config.json files written by configure.
type Database struct {
	Driver   string `json:"driver,omitempty" mapstructure:"driver"`
	Database string `json:"database" mapstructure:"database"`
	User     string `json:"user" mapstructure:"user"`
	Password string `json:"password" mapstructure:"password"`
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port,omitempty" mapstructure:"port"`
	DSN      string `json:"dsn,omitempty" mapstructure:"dsn"`
}

// ConfigPath returns the config path from SPECIFY_CONFIG env var,
// falling back to DefaultConfigFilename.
func ConfigPath() string {
	if env := os.Getenv(envPrefix + "_CONFIG"); env != "" {
		return env
	}
	return DefaultConfigFilename
}

// Exists reports whether a config file is present at path
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadEnvFiles loads .env and .env.local from the working directory when present
func LoadEnvFiles() {
	for _, f := range []string{".env", ".env.local"} {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Overload(f)
		}
	}
}

// Load reads connection settings in order of precedence:
// SPECIFY_* environment variables, then the config file at path, then defaults.
// An empty path skips the file.
func Load(path string) (*Database, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("driver", DefaultDriver)
	v.SetDefault("host", DefaultHost)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	db := &Database{
		Driver:   strings.ToLower(v.GetString("driver")),
		Database: v.GetString("database"),
		User:     v.GetString("user"),
		Password: v.GetString("password"),
		Host:     v.GetString("host"),
		Port:     v.GetInt("port"),
		DSN:      v.GetString("dsn"),
	}
	if err := db.Validate(); err != nil {
		return nil, err
	}
	return db, nil
}

// Validate checks the settings are usable for the selected driver
func (d *Database) Validate() error {
	switch d.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported driver %q (expected %s, %s or %s)",
			d.Driver, DriverMySQL, DriverPostgres, DriverSQLite)
	}
	if d.DSN == "" && strings.TrimSpace(d.Database) == "" {
		return errors.New("database is required")
	}
	return nil
}

// Save writes the settings as JSON so later runs can pass --config
func Save(path string, db *Database) error {
	v := viper.New()
	v.SetConfigType("json")
	v.Set("database", db.Database)
	v.Set("user", db.User)
	v.Set("password", db.Password)
	v.Set("host", db.Host)
	if db.Driver != "" && db.Driver != DefaultDriver {
		v.Set("driver", db.Driver)
	}
	if db.Port != 0 {
		v.Set("port", db.Port)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}
	return os.Chmod(path, 0o600)
}

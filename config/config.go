// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DBConfig points at the annotation store
type DBConfig struct {
	// database/sql driver: sqlite or pgx
	Driver string `mapstructure:"driver"`
	// file path for sqlite, connection URL for pgx
	DSN string `mapstructure:"dsn"`
}

// ArchiveConfig is where and how FASTA files are written
type ArchiveConfig struct {
	Root      string `mapstructure:"root"`
	Gzip      bool   `mapstructure:"gzip"`
	LineWidth int    `mapstructure:"line-width"`
}

type CacheConfig struct {
	// genome sequences kept per export pass
	Genomes int `mapstructure:"genomes"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config is the root-level settings struct, a mix of defaults, the
// environment (and .env) and command line flags
type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
}

// EnvPrefix scopes environment variables, e.g. PHAMFASTA_DB_DSN.
const EnvPrefix = "PHAMFASTA"

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "./data/phamerator.db")
	v.SetDefault("archive.root", "FASTA-files")
	v.SetDefault("archive.gzip", false)
	v.SetDefault("archive.line-width", 60)
	v.SetDefault("cache.genomes", 64)
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", "0.0.0.0:8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv reads .env files into the process environment. A missing file
// is reported but is not an error for the caller to act on.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// NewConfig returns a Config populated from v
func NewConfig(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("db.driver must be sqlite or pgx, got %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("db.dsn is empty")
	}
	if c.Archive.Root == "" {
		return fmt.Errorf("archive.root is empty")
	}
	return nil
}

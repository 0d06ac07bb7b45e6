// Package config holds the settings shared by every climblog command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/climblog/climblog/internal/blob"
	"github.com/climblog/climblog/internal/db"
	"github.com/climblog/climblog/internal/reconcile"
	"github.com/climblog/climblog/internal/workspace"
)

const (
	EnvPrefix      = "CLIMBLOG"
	configFileName = "config"

	DefaultBucket  = "my-climblog-bucket"
	DefaultLogsDir = "logs"
	DefaultAddr    = "127.0.0.1:3000"
	DefaultRateRPS = 20
)

var (
	home, _           = os.UserHomeDir()
	DefaultConfigDir  = filepath.Join(home, ".climblog")
	DefaultConfigPath = filepath.Join(DefaultConfigDir, configFileName+".json")
	DefaultDataDir    = DefaultConfigDir
)

var (
	ErrNoBucket  = errors.New("bucket is required")
	ErrNoLogsDir = errors.New("logs_dir is required")
	ErrWorkers   = errors.New("workers must be at least 1")
)

type Config struct {
	Path            string           `mapstructure:"-"`
	LogsDir         string           `mapstructure:"logs_dir"`
	DataDir         string           `mapstructure:"data_dir"`
	Bucket          string           `mapstructure:"bucket"`
	Workers         int              `mapstructure:"workers"`
	TransferTimeout time.Duration    `mapstructure:"transfer_timeout"`
	S3              blob.S3Config    `mapstructure:"s3"`
	HTTP            HTTPServerConfig `mapstructure:"http"`
	DB              DBConfig         `mapstructure:"db"`
}

type HTTPServerConfig struct {
	Addr      string `mapstructure:"addr"`
	CertFile  string `mapstructure:"cert_file"`
	KeyFile   string `mapstructure:"key_file"`
	RateLimit int    `mapstructure:"rate_limit"` // requests per second per client, 0 disables
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// SetDefaults registers every key so that env overrides apply even when the
// key is absent from the config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logs_dir", DefaultLogsDir)
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("bucket", DefaultBucket)
	v.SetDefault("workers", reconcile.DefaultWorkers)
	v.SetDefault("transfer_timeout", reconcile.DefaultTransferTimeout)
	v.SetDefault("s3.region", blob.DefaultRegion)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("http.addr", DefaultAddr)
	v.SetDefault("http.cert_file", "")
	v.SetDefault("http.key_file", "")
	v.SetDefault("http.rate_limit", DefaultRateRPS)
	v.SetDefault("db.driver", db.DriverSQLite)
	v.SetDefault("db.dsn", "")
}

// Read loads path (or the default search locations when path is empty) into
// v. A missing config file is not an error.
func Read(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(DefaultConfigDir)
		v.AddConfigPath(filepath.Join(home, ".config", "climblog"))
		v.SetConfigName(configFileName)
		v.SetConfigType("json")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return fmt.Errorf("config read '%s': %w", v.ConfigFileUsed(), err)
		}
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	cfg.Path = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Bucket) == "" {
		return ErrNoBucket
	}
	if strings.TrimSpace(c.LogsDir) == "" {
		return ErrNoLogsDir
	}
	if c.Workers < 1 {
		return ErrWorkers
	}
	if c.TransferTimeout < 0 {
		return fmt.Errorf("transfer_timeout must not be negative: %s", c.TransferTimeout)
	}
	if err := c.S3.Validate(); err != nil {
		return err
	}
	if (c.HTTP.CertFile == "") != (c.HTTP.KeyFile == "") {
		return errors.New("http.cert_file and http.key_file must be set together")
	}
	switch strings.ToLower(c.DB.Driver) {
	case db.DriverSQLite, "":
	case db.DriverPostgres:
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("%w: %q", db.ErrUnknownDriver, c.DB.Driver)
	}
	return nil
}

// Workspace resolves the directories of c. A relative logs_dir or data_dir is
// taken relative to the working directory.
func (c *Config) Workspace() (*workspace.Workspace, error) {
	return workspace.NewWorkspace(".", c.LogsDir, c.DataDir)
}

// DBSource returns the driver and dsn to open, defaulting the SQLite file to
// the workspace data dir.
func (c *Config) DBSource(ws *workspace.Workspace) (driver, dsn string) {
	driver = strings.ToLower(c.DB.Driver)
	if driver == "" {
		driver = db.DriverSQLite
	}
	dsn = c.DB.DSN
	if driver == db.DriverSQLite && dsn == "" {
		dsn = ws.DBPath()
	}
	return driver, dsn
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climblog/climblog/internal/db"
	"github.com/climblog/climblog/internal/workspace"
)

func newViper(t *testing.T, path string) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	require.NoError(t, Read(v, path))
	return v
}

func TestLoad_Defaults(t *testing.T) {
	v := newViper(t, filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultBucket, cfg.Bucket)
	assert.Equal(t, DefaultLogsDir, cfg.LogsDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 30*time.Second, cfg.TransferTimeout)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, DefaultAddr, cfg.HTTP.Addr)
	assert.Equal(t, db.DriverSQLite, cfg.DB.Driver)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"bucket": "file-bucket",
		"workers": 8,
		"transfer_timeout": "5s",
		"s3": {"endpoint": "http://localhost:9000", "access_key": "ak", "secret_key": "sk"},
		"http": {"addr": "0.0.0.0:8080"}
	}`), 0o644))
	t.Setenv("CLIMBLOG_BUCKET", "env-bucket")
	t.Setenv("CLIMBLOG_S3_REGION", "eu-west-1")

	cfg, err := Load(newViper(t, path))
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "env-bucket", cfg.Bucket)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 5*time.Second, cfg.TransferTimeout)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.True(t, cfg.S3.HasStaticCredentials())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr)
}

func TestRead_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bucket":`), 0o644))

	v := viper.New()
	require.Error(t, Read(v, path))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Bucket: "b", LogsDir: "logs", Workers: 1, DB: DBConfig{Driver: "sqlite"}}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty bucket", func(c *Config) { c.Bucket = " " }},
		{"empty logs dir", func(c *Config) { c.LogsDir = "" }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"negative timeout", func(c *Config) { c.TransferTimeout = -time.Second }},
		{"half s3 credentials", func(c *Config) { c.S3.AccessKey = "ak" }},
		{"cert without key", func(c *Config) { c.HTTP.CertFile = "cert.pem" }},
		{"postgres without dsn", func(c *Config) { c.DB.Driver = "postgres" }},
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestDBSource(t *testing.T) {
	ws, err := workspace.NewWorkspace(t.TempDir(), "", "")
	require.NoError(t, err)

	c := &Config{}
	driver, dsn := c.DBSource(ws)
	assert.Equal(t, db.DriverSQLite, driver)
	assert.Equal(t, ws.DBPath(), dsn)

	c.DB = DBConfig{Driver: "Postgres", DSN: "postgres://localhost/climblog"}
	driver, dsn = c.DBSource(ws)
	assert.Equal(t, db.DriverPostgres, driver)
	assert.Equal(t, "postgres://localhost/climblog", dsn)
}

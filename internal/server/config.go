package server

import "github.com/climblog/climblog/internal/config"

const DefaultAddr = config.DefaultAddr

type Config struct {
	HTTP   config.HTTPServerConfig
	Bucket string
}

func (c *Config) TLS() bool {
	return c.HTTP.CertFile != "" && c.HTTP.KeyFile != ""
}

package server

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Config is a structure used to configure a GenericAPIServer.
type Config struct {
	Addr            string
	Mode            string
	Healthz         bool
	EnableProfiling bool
	EnableMetrics   bool
	ShutdownTimeout time.Duration
	// Middlewares run before any route registered by the caller.
	Middlewares []gin.HandlerFunc
}

// NewConfig returns a Config struct with the default values.
func NewConfig() *Config {
	return &Config{
		Addr:            "0.0.0.0:8000",
		Mode:            gin.ReleaseMode,
		Healthz:         true,
		EnableProfiling: false,
		EnableMetrics:   true,
		ShutdownTimeout: 10 * time.Second,
	}
}

// CompletedConfig is the completed configuration for GenericAPIServer.
type CompletedConfig struct {
	*Config
}

// Complete fills in any fields not set that are required to have valid data.
func (c *Config) Complete() CompletedConfig {
	if c.Addr == "" {
		c.Addr = "0.0.0.0:8000"
	}
	if c.Mode == "" {
		c.Mode = gin.ReleaseMode
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return CompletedConfig{c}
}

// New returns a new instance of GenericAPIServer from the given config.
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	gin.SetMode(c.Mode)

	s := &GenericAPIServer{
		Engine:          gin.New(),
		addr:            c.Addr,
		healthz:         c.Healthz,
		enableProfiling: c.EnableProfiling,
		enableMetrics:   c.EnableMetrics,
		shutdownTimeout: c.ShutdownTimeout,
		middlewares:     c.Middlewares,
	}
	s.init()
	return s, nil
}

package options

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/internal/pkg/server"
	"github.com/spf13/pflag"
)

// ServerRunOptions contains the options for the HTTP server.
type ServerRunOptions struct {
	BindAddress     string        `json:"bind-address"     mapstructure:"bind-address"`
	BindPort        int           `json:"bind-port"        mapstructure:"bind-port"`
	Mode            string        `json:"mode"             mapstructure:"mode"`
	Healthz         bool          `json:"healthz"          mapstructure:"healthz"`
	EnableProfiling bool          `json:"enable-profiling" mapstructure:"enable-profiling"`
	EnableMetrics   bool          `json:"enable-metrics"   mapstructure:"enable-metrics"`
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewServerRunOptions creates a new ServerRunOptions listening on port.
func NewServerRunOptions(port int) *ServerRunOptions {
	defaults := server.NewConfig()
	return &ServerRunOptions{
		BindAddress:     "0.0.0.0",
		BindPort:        port,
		Mode:            defaults.Mode,
		Healthz:         defaults.Healthz,
		EnableProfiling: defaults.EnableProfiling,
		EnableMetrics:   defaults.EnableMetrics,
		ShutdownTimeout: defaults.ShutdownTimeout,
	}
}

// ApplyTo applies the run options to the method receiver and returns self.
func (s *ServerRunOptions) ApplyTo(c *server.Config) error {
	c.Addr = fmt.Sprintf("%s:%d", s.BindAddress, s.BindPort)
	c.Mode = s.Mode
	c.Healthz = s.Healthz
	c.EnableProfiling = s.EnableProfiling
	c.EnableMetrics = s.EnableMetrics
	c.ShutdownTimeout = s.ShutdownTimeout
	return nil
}

func (s *ServerRunOptions) Validate() []error {
	var errs []error
	if s.BindPort < 0 || s.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("--serving.bind-port %d must be between 0 and 65535", s.BindPort))
	}
	switch s.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		errs = append(errs, fmt.Errorf("--serving.mode %q must be one of debug, release, test", s.Mode))
	}
	return errs
}

// AddFlags adds flags for a specific APIServer to the specified FlagSet.
func (s *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.BindAddress, "serving.bind-address", s.BindAddress, "The IP address on which to serve HTTP.")
	fs.IntVar(&s.BindPort, "serving.bind-port", s.BindPort, "The port on which to serve HTTP.")
	fs.StringVar(&s.Mode, "serving.mode", s.Mode, "Server mode. Supported: debug, test, release.")
	fs.BoolVar(&s.Healthz, "serving.healthz", s.Healthz, "Add self readiness check and install /health router.")
	fs.BoolVar(&s.EnableProfiling, "serving.enable-profiling", s.EnableProfiling, "Enable profiling via web interface host:port/debug/pprof/.")
	fs.BoolVar(&s.EnableMetrics, "serving.enable-metrics", s.EnableMetrics, "Enable Prometheus metrics on /metrics.")
	fs.DurationVar(&s.ShutdownTimeout, "serving.shutdown-timeout", s.ShutdownTimeout, "Grace period for in-flight requests on shutdown.")
}

package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// GRPCOptions are for creating an unauthenticated, unauthorized, insecure port.
type GRPCOptions struct {
	Enabled     bool   `json:"enabled"      mapstructure:"enabled"`
	BindAddress string `json:"bind-address" mapstructure:"bind-address"`
	BindPort    int    `json:"bind-port"    mapstructure:"bind-port"`
	MaxMsgSize  int    `json:"max-msg-size" mapstructure:"max-msg-size"`
}

func NewGRPCOptions(port int) *GRPCOptions {
	return &GRPCOptions{
		Enabled:     true,
		BindAddress: "0.0.0.0",
		BindPort:    port,
		MaxMsgSize:  4 * 1024 * 1024,
	}
}

func (s *GRPCOptions) Validate() []error {
	var errs []error
	if s.BindPort < 0 || s.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("--grpc.bind-port %v must be between 0 and 65535", s.BindPort))
	}
	return errs
}

func (s *GRPCOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&s.Enabled, "grpc.enabled", s.Enabled, "Serve the gRPC health service.")
	fs.StringVar(&s.BindAddress, "grpc.bind-address", s.BindAddress, "The IP address on which to serve gRPC.")
	fs.IntVar(&s.BindPort, "grpc.bind-port", s.BindPort, "The port on which to serve gRPC.")
	fs.IntVar(&s.MaxMsgSize, "grpc.max-msg-size", s.MaxMsgSize, "gRPC max message size.")
}

func (s *GRPCOptions) Addr() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.BindPort)
}

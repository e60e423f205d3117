package options

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// MCPOptions control the Model Context Protocol endpoint.
type MCPOptions struct {
	Enabled      bool   `json:"enabled"       mapstructure:"enabled"`
	EndpointPath string `json:"endpoint-path" mapstructure:"endpoint-path"`
	Stateless    bool   `json:"stateless"     mapstructure:"stateless"`
}

func NewMCPOptions() *MCPOptions {
	return &MCPOptions{
		Enabled:      true,
		EndpointPath: "/mcp",
	}
}

func (o *MCPOptions) Validate() []error {
	var errs []error
	if o.Enabled && !strings.HasPrefix(o.EndpointPath, "/") {
		errs = append(errs, fmt.Errorf("--mcp.endpoint-path %q must start with /", o.EndpointPath))
	}
	return errs
}

func (o *MCPOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "mcp.enabled", o.Enabled, "Serve the catalog tools over MCP streamable HTTP.")
	fs.StringVar(&o.EndpointPath, "mcp.endpoint-path", o.EndpointPath, "Path of the MCP endpoint.")
	fs.BoolVar(&o.Stateless, "mcp.stateless", o.Stateless, "Do not track MCP sessions.")
}

// CatalogOptions tune the catalog module.
type CatalogOptions struct {
	// EnsureSchema creates the catalog tables on startup when missing.
	EnsureSchema bool `json:"ensure-schema" mapstructure:"ensure-schema"`
}

func NewCatalogOptions() *CatalogOptions {
	return &CatalogOptions{}
}

func (o *CatalogOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.EnsureSchema, "catalog.ensure-schema", o.EnsureSchema, "Create missing catalog tables at startup.")
}

// Package mcp exposes the catalog tools to external agents over the Model
// Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"github.com/kiosk404/pokedex/internal/pkg/tool"
	"github.com/kiosk404/pokedex/internal/pkg/tool/pokedex"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/service"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/utils/json"
	"github.com/kiosk404/pokedex/pkg/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultEndpointPath is where the streamable HTTP transport is mounted.
const DefaultEndpointPath = "/mcp"

// Config holds the configuration for the MCP module.
// Config → Complete() → New(ctx, deps).
type Config struct {
	ServerName   string
	EndpointPath string
	// Stateless skips session tracking on the HTTP transport.
	Stateless bool
}

type CompletedConfig struct {
	*Config
}

func (c *Config) Complete() CompletedConfig {
	if c.ServerName == "" {
		c.ServerName = "pokedex"
	}
	if c.EndpointPath == "" {
		c.EndpointPath = DefaultEndpointPath
	}
	return CompletedConfig{c}
}

type Dependencies struct {
	Catalog service.CatalogService
}

// Module owns the MCP server and its transports.
type Module struct {
	Server   *server.MCPServer
	Registry *tool.Registry

	executor     *tool.Executor
	httpServer   *server.StreamableHTTPServer
	endpointPath string
}

func (c CompletedConfig) New(_ context.Context, deps Dependencies) (*Module, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("mcp module needs the catalog service")
	}
	registry, err := pokedex.NewRegistry(NewCatalogBackend(deps.Catalog))
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}

	m := &Module{
		Server:       server.NewMCPServer(c.ServerName, version.APIVersion, server.WithToolCapabilities(false), server.WithRecovery()),
		Registry:     registry,
		executor:     tool.NewExecutor(registry),
		endpointPath: c.EndpointPath,
	}
	for _, def := range registry.Describe() {
		params, err := json.Marshal(def.Schema.Parameters)
		if err != nil {
			return nil, fmt.Errorf("encode schema of %s: %w", def.Name, err)
		}
		m.Server.AddTool(mcp.NewToolWithRawSchema(def.Name, def.Description, params), m.handle)
	}

	m.httpServer = server.NewStreamableHTTPServer(m.Server,
		server.WithEndpointPath(c.EndpointPath),
		server.WithStateLess(c.Stateless),
	)
	logger.Info("[MCP] MCP module initialized (tools=%d, endpoint=%s)", registry.Len(), c.EndpointPath)
	return m, nil
}

// handle runs one tools/call through the shared executor so MCP calls get
// the same validation, fault handling and metrics as the agent's calls.
func (m *Module) handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := json.MarshalString(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments for %s: %v", req.Params.Name, err)), nil
	}
	res := m.executor.Run(ctx, schema.ToolCall{
		Type:     "function",
		Function: schema.FunctionCall{Name: req.Params.Name, Arguments: args},
	})
	if res.IsError() {
		return mcp.NewToolResultError(res.Wire()), nil
	}
	return mcp.NewToolResultText(res.Wire()), nil
}

// EndpointPath is where Handler should be mounted.
func (m *Module) EndpointPath() string {
	return m.endpointPath
}

// Handler serves the streamable HTTP transport.
func (m *Module) Handler() http.Handler {
	return m.httpServer
}

// ServeStdio serves the protocol on stdin/stdout until EOF or a signal.
func (m *Module) ServeStdio() error {
	return server.ServeStdio(m.Server)
}

func (m *Module) Close(ctx context.Context) error {
	return m.httpServer.Shutdown(ctx)
}

package pokeapi

import (
	"context"
	"fmt"
	"time"

	genericapiserver "github.com/kiosk404/pokedex/internal/pkg/server"
	"github.com/kiosk404/pokedex/internal/pokeapi/config"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/mcp"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/shutdown"
	"golang.org/x/sync/errgroup"
)

type apiServer struct {
	gs               *shutdown.GracefulShutdown
	gRPCAPIServer    *genericapiserver.GRPCAPIServer
	genericAPIServer *genericapiserver.GenericAPIServer

	catalogModule *catalog.Module
	mcpModule     *mcp.Module
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()
	ctx := context.Background()

	genericConfig, err := buildGenericConfig(cfg)
	if err != nil {
		return nil, err
	}
	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	var grpcServer *genericapiserver.GRPCAPIServer
	if cfg.GRPCOptions.Enabled {
		grpcServer = genericapiserver.NewGRPCAPIServer(cfg.GRPCOptions.Addr(), cfg.GRPCOptions.MaxMsgSize)
	}

	catalogModule, err := newCatalogModule(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var mcpModule *mcp.Module
	if cfg.MCPOptions.Enabled {
		mcpCfg := &mcp.Config{
			EndpointPath: cfg.MCPOptions.EndpointPath,
			Stateless:    cfg.MCPOptions.Stateless,
		}
		mcpModule, err = mcpCfg.Complete().New(ctx, mcp.Dependencies{Catalog: catalogModule.Service})
		if err != nil {
			_ = catalogModule.Close()
			return nil, fmt.Errorf("failed to create MCP module: %w", err)
		}
	}

	return &apiServer{
		gs:               gs,
		genericAPIServer: genericServer,
		gRPCAPIServer:    grpcServer,
		catalogModule:    catalogModule,
		mcpModule:        mcpModule,
	}, nil
}

func newCatalogModule(ctx context.Context, cfg *config.Config) (*catalog.Module, error) {
	catalogCfg := &catalog.Config{
		Database:     cfg.DatabaseOptions,
		Cache:        cfg.CacheOptions,
		EnsureSchema: cfg.CatalogOptions.EnsureSchema,
	}
	m, err := catalogCfg.Complete().New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Catalog module: %w", err)
	}
	return m, nil
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	initRouter(s.genericAPIServer.Engine, &routerDeps{
		catalog: s.catalogModule.Service,
		mcp:     s.mcpModule,
	})

	s.gs.AddShutdownCallback(shutdown.Func(func(string) error {
		if s.gRPCAPIServer != nil {
			s.gRPCAPIServer.Stop()
		}
		if s.mcpModule != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.mcpModule.Close(ctx); err != nil {
				logger.Warn("[Pokeapi] close MCP module: %v", err)
			}
		}
		s.genericAPIServer.Close()
		return s.catalogModule.Close()
	}))
	return preparedAPIServer{s}
}

func (s preparedAPIServer) Run() error {
	if err := s.gs.Start(); err != nil {
		return fmt.Errorf("start shutdown manager failed: %w", err)
	}

	var g errgroup.Group
	if s.gRPCAPIServer != nil {
		s.gRPCAPIServer.SetServing("pokeapi", s.catalogModule.Ping(context.Background()) == nil)
		g.Go(s.gRPCAPIServer.Run)
	}
	g.Go(s.genericAPIServer.Run)
	return g.Wait()
}

func buildGenericConfig(cfg *config.Config) (genericConfig *genericapiserver.Config, lastErr error) {
	genericConfig = genericapiserver.NewConfig()
	if lastErr = cfg.GenericServerRunOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}
	genericConfig.Middlewares = middlewares()

	return
}

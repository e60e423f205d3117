package pokeagent

import (
	"context"
	"fmt"

	genericapiserver "github.com/kiosk404/pokedex/internal/pkg/server"
	"github.com/kiosk404/pokedex/internal/pkg/tool/pokedex"
	"github.com/kiosk404/pokedex/internal/pokeagent/config"
	"github.com/kiosk404/pokedex/internal/pokeagent/service/agent"
	"github.com/kiosk404/pokedex/internal/pokeagent/service/llm"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/shutdown"
	"golang.org/x/sync/errgroup"
)

type apiServer struct {
	gs               *shutdown.GracefulShutdown
	gRPCAPIServer    *genericapiserver.GRPCAPIServer
	genericAPIServer *genericapiserver.GenericAPIServer

	// agent is nil when the agent could not be built and agent.required is off.
	agent agent.Service
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()

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

	svc, err := buildAgent(context.Background(), cfg)
	if err != nil {
		if cfg.AgentOptions.Required {
			return nil, err
		}
		logger.Error("[Pokeagent] %v; serving without an agent", err)
	}

	return &apiServer{
		gs:               gs,
		genericAPIServer: genericServer,
		gRPCAPIServer:    grpcServer,
		agent:            svc,
	}, nil
}

// buildAgent returns a nil Service together with the error on failure.
func buildAgent(ctx context.Context, cfg *config.Config) (agent.Service, error) {
	llmCfg := &llm.Config{
		ModelOptions:     cfg.ModelOptions,
		OpenAIConfigFile: cfg.AgentOptions.OpenAIConfigFile,
	}
	llmModule, err := llmCfg.Complete().New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM module: %w", err)
	}

	backend := pokedex.NewRESTBackend(pokedex.RESTConfig{
		BaseURL:  cfg.BackendOptions.BaseURL,
		Timeout:  cfg.BackendOptions.Timeout,
		RetryMax: retryMax(cfg.BackendOptions.RetryMax),
	})

	agentCfg := &agent.Config{
		MaxToolRounds: cfg.AgentOptions.MaxToolRounds,
		ModelTimeout:  cfg.ModelOptions.Timeout,
	}
	agentModule, err := agentCfg.Complete().New(ctx, agent.Dependencies{
		LLM:     llmModule,
		Backend: backend,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize the agent: %w", err)
	}
	logger.Info("[Pokeagent] agent initialized (catalog=%s)", cfg.BackendOptions.BaseURL)
	return agentModule.Orchestrator, nil
}

// retryMax maps the option (0 = no retries) onto RESTConfig (negative = none).
func retryMax(n int) int {
	if n == 0 {
		return -1
	}
	return n
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	initRouter(s.genericAPIServer.Engine, &routerDeps{agent: s.agent})

	s.gs.AddShutdownCallback(shutdown.Func(func(string) error {
		if s.gRPCAPIServer != nil {
			s.gRPCAPIServer.Stop()
		}
		s.genericAPIServer.Close()
		return nil
	}))
	return preparedAPIServer{s}
}

func (s preparedAPIServer) Run() error {
	if err := s.gs.Start(); err != nil {
		return fmt.Errorf("start shutdown manager failed: %w", err)
	}

	var g errgroup.Group
	if s.gRPCAPIServer != nil {
		s.gRPCAPIServer.SetServing("pokeagent", s.agent != nil)
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

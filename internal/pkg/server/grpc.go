package server

import (
	"net"

	"github.com/kiosk404/pokedex/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// GRPCAPIServer serves the standard gRPC health service for orchestrators.
type GRPCAPIServer struct {
	*grpc.Server
	address string
	health  *health.Server
}

// NewGRPCAPIServer creates a gRPC server with health and reflection registered.
func NewGRPCAPIServer(address string, maxMsgSize int) *GRPCAPIServer {
	srv := grpc.NewServer(grpc.MaxRecvMsgSize(maxMsgSize))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return &GRPCAPIServer{Server: srv, address: address, health: hs}
}

// SetServing flips the health status of service ("" is the whole server).
func (s *GRPCAPIServer) SetServing(service string, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, status)
}

// Run listens on the configured address; it blocks until Stop is called.
func (s *GRPCAPIServer) Run() error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.SetServing("", true)
	logger.Info("[Server] start grpc server at %s", s.address)
	return s.Serve(listen)
}

// Stop marks the server not serving and drains connections.
func (s *GRPCAPIServer) Stop() {
	s.health.Shutdown()
	s.GracefulStop()
	logger.Info("[Server] grpc server on %s stopped", s.address)
}

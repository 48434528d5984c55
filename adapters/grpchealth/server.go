package grpchealth

import (
	"net"

	"github.com/nasa/vsm/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "vsm"

// Server is a gRPC server exposing only grpc.health.v1 (and reflection). It implements
// interfaces.HealthReporter: the status publisher flips it to SERVING while an Active node exists.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	logger log.Logger
}

// NewServer creates the health server in NOT_SERVING state. Panics on nil logger.
//
// Called from cmd/main when SERVICE_PORT_GRPC is set.
func NewServer(logger log.Logger) *Server {
	logger = log.With(helpers.NilPanic(logger, "adapters.grpchealth.server.go: logger is required"), "component", "grpc_health")

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{grpc: grpcServer, health: healthServer, logger: logger}
}

// SetServing switches both the overall and the vsm status.
func (s *Server) SetServing(serving bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// Serve blocks serving lis until Stop.
func (s *Server) Serve(lis net.Listener) error {
	level.Info(s.logger).Log("msg", "Starting gRPC health server", "addr", lis.Addr())
	return s.grpc.Serve(lis)
}

// Stop reports NOT_SERVING to watchers and stops gracefully.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

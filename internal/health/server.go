package health

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
)

// ServiceName is the name clients may ask about besides the empty,
// whole-server name.
const ServiceName = "bookmarker"

type (
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Server answers grpc.health.v1 checks by pinging the database.
	Server struct {
		healthpb.UnimplementedHealthServer

		pinger Pinger
		logger *zap.SugaredLogger
		grpc   *grpc.Server
	}
)

func NewGRPCServer(lc fx.Lifecycle, cfg *config.Config, pinger Pinger, logger *zap.SugaredLogger) *Server {
	instance := Server{
		pinger: pinger,
		logger: logger,
		grpc:   grpc.NewServer(),
	}
	healthpb.RegisterHealthServer(instance.grpc, &instance)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", cfg.GRPCAddr())
			if err != nil {
				return errors.Wrap(err, "listen grpc")
			}
			logger.Infow("Starting GRPC server.", "addr", lis.Addr().String())
			go instance.Serve(lis)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping GRPC server.")
			instance.grpc.GracefulStop()
			return nil
		},
	})

	return &instance
}

func (s *Server) Serve(lis net.Listener) {
	if err := s.grpc.Serve(lis); err != nil {
		s.logger.Errorw("GRPC server stopped", "error", err)
	}
}

func (s *Server) Stop() {
	s.grpc.Stop()
}

func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if req.GetService() != "" && req.GetService() != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	if err := s.pinger.Ping(ctx); err != nil {
		s.logger.Warnw("health check failed", "error", err)
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

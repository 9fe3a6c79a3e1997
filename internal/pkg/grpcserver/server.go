package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"dorm-delivery/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

const (
	KeepaliveTime                = 5 * time.Minute
	KeepaliveTimeout             = 3 * time.Second
	KeepaliveMinTime             = 30 * time.Second
	KeepalivePermitWithoutStream = false
)

// Server отдает grpc.health.v1.Health. Пустое имя сервиса - статус процесса целиком.
type Server struct {
	log    logger.Logger
	server *grpc.Server
	health *health.Server
}

func New(log logger.Logger) *Server {
	server := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    KeepaliveTime,
			Timeout: KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             KeepaliveMinTime,
			PermitWithoutStream: KeepalivePermitWithoutStream,
		}),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)

	return &Server{
		log:    log.With(logger.NewField("component", "grpc-health")),
		server: server,
		health: healthServer,
	}
}

// Serve блокируется до Stop. Ошибка закрытого listener'а после Stop не считается ошибкой.
func (s *Server) Serve(lis net.Listener) error {
	s.log.With(
		logger.NewField("addr", lis.Addr().String()),
	).Info("gRPC health server started")

	err := s.server.Serve(lis)
	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC serve: %w", err)
	}
	return nil
}

func (s *Server) SetServing() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

// SetNotServing вызывается в начале graceful shutdown, чтобы балансировщик снял трафик.
func (s *Server) SetNotServing() {
	s.health.Shutdown()
}

// Stop ждет завершения активных RPC до отмены ctx, потом закрывает соединения.
func (s *Server) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("gRPC graceful stop timed out, forcing stop")
		s.server.Stop()
	}
}

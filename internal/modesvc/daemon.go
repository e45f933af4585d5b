package modesvc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/opencode-ai/thememode/internal/mode"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

// Options configure the daemon runtime.
type Options struct {
	Addr    string
	Version string

	// Limits overrides DefaultLimits for incoming calls.
	Limits map[string]Limit
}

// Daemon serves the mode service until its context is canceled.
type Daemon struct {
	logger zerolog.Logger
	opts   Options

	server     *Server
	grpcServer *grpc.Server
}

// NewDaemon constructs a daemon around manager.
func NewDaemon(manager *mode.Manager, logger zerolog.Logger, opts Options) (*Daemon, error) {
	if manager == nil {
		return nil, errors.New("mode manager is required")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	server := NewServer(manager, logger)
	limiter := NewRateLimiter(opts.Limits)
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(limiter.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(limiter.StreamServerInterceptor()),
	)
	RegisterModeServiceServer(grpcServer, server)

	return &Daemon{
		logger:     logger,
		opts:       opts,
		server:     server,
		grpcServer: grpcServer,
	}, nil
}

// DefaultAddr is the loopback address used when none is configured.
const DefaultAddr = "127.0.0.1:7787"

// Run listens on the configured address and blocks until ctx is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", d.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", d.opts.Addr, err)
	}
	return d.Serve(ctx, listener)
}

// Serve serves on listener and blocks until ctx is canceled or the server fails.
func (d *Daemon) Serve(ctx context.Context, listener net.Listener) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	d.logger.Info().
		Str("bind", listener.Addr().String()).
		Str("version", d.opts.Version).
		Msg("mode service starting")

	errCh := make(chan error, 1)
	go func() {
		if err := d.grpcServer.Serve(listener); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		d.logger.Info().Msg("mode service shutting down...")
		d.grpcServer.GracefulStop()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
	}

	d.logger.Info().Msg("mode service shutdown complete")
	return nil
}

// Server returns the underlying service implementation.
func (d *Daemon) Server() *Server {
	return d.server
}

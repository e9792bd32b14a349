package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/lixenwraith/racecast/core"
)

// Service runs the HTTP control surface as a hub-managed service
type Service struct {
	config  *Config
	handler http.Handler
	log     *zap.Logger

	mu     sync.Mutex
	server *http.Server
	addr   net.Addr
	done   chan struct{}
}

// NewService creates an HTTP service for handler
func NewService(cfg *Config, handler http.Handler, log *zap.Logger) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{config: cfg, handler: handler, log: log}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "http"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return []string{"race", "capture"}
}

// Init implements service.Service
// args[0]: *Config (optional, overrides construction config)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}
	return nil
}

// Start binds the listener synchronously and serves in the background
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.Address == "" || s.server != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Address, err)
	}

	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	done := make(chan struct{})
	s.server, s.addr, s.done = srv, ln.Addr(), done

	s.log.Info("http listening", zap.Stringer("addr", ln.Addr()))
	core.Go(func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http serve failed", zap.Error(err))
		}
	})
	return nil
}

// Stop shuts the server down gracefully; idempotent
func (s *Service) Stop() error {
	s.mu.Lock()
	srv, done := s.server, s.done
	s.server, s.addr, s.done = nil, nil, nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(ctx)
	<-done
	return err
}

// Addr returns the bound address, nil when not listening
func (s *Service) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

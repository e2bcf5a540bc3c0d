package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
)

// Run builds the handler tree, binds the configured address and serves until
// ctx is cancelled. The socket is opened only after Build succeeded.
func (s *Server) Run(ctx context.Context) error {
	handler, err := s.Build()
	if err != nil {
		return err
	}

	ln, err := s.listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.serve(ctx, ln, handler)
}

// Serve is Run on a caller supplied listener. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	handler, err := s.Build()
	if err != nil {
		ln.Close()
		return err
	}
	return s.serve(ctx, ln, handler)
}

func (s *Server) serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       s.cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("server listening",
		"addr", ln.Addr().String(),
		"docs", s.cfg.Docs.UIPath,
		"document", s.cfg.Docs.DocumentPath,
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down", "timeout", s.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

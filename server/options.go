package server

import (
	"log/slog"
	"net"

	"github.com/drblury/hostweaver/info"
	"github.com/drblury/hostweaver/metric"
	"github.com/drblury/hostweaver/probe"
	"github.com/drblury/hostweaver/responder"
)

// Option configures a Server.
type Option func(*Server)

// ListenFunc opens the listening socket for Run.
type ListenFunc func(network, address string) (net.Listener, error)

// WithLogger sets the logger shared by the responder, the router and the
// server itself.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics replaces the Prometheus registry. Metrics stay off when the
// configuration disables them.
func WithMetrics(registry *metric.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.metrics = registry
		}
	}
}

// WithReadinessChecks adds checks to the readiness probe.
func WithReadinessChecks(checks ...probe.Func) Option {
	return func(s *Server) {
		s.readiness = append(s.readiness, checks...)
	}
}

// WithLivenessChecks adds checks to the liveness probe.
func WithLivenessChecks(checks ...probe.Func) Option {
	return func(s *Server) {
		s.liveness = append(s.liveness, checks...)
	}
}

// WithVersionProvider replaces the payload of the version endpoint.
func WithVersionProvider(provider info.InfoProvider) Option {
	return func(s *Server) {
		if provider != nil {
			s.version = provider
		}
	}
}

// WithListenFunc replaces net.Listen in Run.
func WithListenFunc(listen ListenFunc) Option {
	return func(s *Server) {
		if listen != nil {
			s.listen = listen
		}
	}
}

// WithErrorClassifier sets how the shared responder maps handler errors to
// status codes. Without one every error is a 500.
func WithErrorClassifier(classify responder.ErrorClassifierFunc) Option {
	return func(s *Server) {
		s.classify = classify
	}
}

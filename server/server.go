package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/drblury/hostweaver/config"
	"github.com/drblury/hostweaver/info"
	"github.com/drblury/hostweaver/metric"
	"github.com/drblury/hostweaver/openapi"
	"github.com/drblury/hostweaver/probe"
	"github.com/drblury/hostweaver/responder"
	"github.com/drblury/hostweaver/router"
	"github.com/drblury/hostweaver/schema"
)

// ErrNilHandler is returned by Handle for a route without a handler.
var ErrNilHandler = errors.New("server: route handler is nil")

// Route pairs a handler with the descriptor published for it.
type Route struct {
	Descriptor schema.RouteDescriptor
	Handler    http.Handler
}

// Server collects routes and serves them once the document is built.
type Server struct {
	cfg       config.Config
	logger    *slog.Logger
	responder *responder.Responder
	metrics   *metric.Registry
	registry  *schema.Registry
	readiness []probe.Func
	liveness  []probe.Func
	version   info.InfoProvider
	listen    ListenFunc
	classify  responder.ErrorClassifierFunc

	mu       sync.Mutex
	handlers map[string]http.Handler
	handler  http.Handler
	doc      *openapi.Document
}

// New returns a Server for cfg. cfg is expected to have passed Validate.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   slog.Default(),
		registry: schema.NewRegistry(),
		version:  info.BuildInfoProvider(cfg.Docs.Title),
		listen:   net.Listen,
		handlers: make(map[string]http.Handler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.metrics == nil && cfg.Metrics.Enabled {
		s.metrics = metric.NewRegistry(metricNamespace(cfg.Docs.Title))
	}
	s.responder = responder.NewResponder(
		responder.WithLogger(s.logger),
		responder.WithErrorClassifier(s.classify),
	)
	return s
}

// Responder returns the responder shared by the infrastructure endpoints, so
// route handlers can report errors the same way.
func (s *Server) Responder() *responder.Responder {
	return s.responder
}

// Handle registers route. Registering after Build fails with
// *schema.RegistrationAfterFreezeError. When several routes share a method
// and path the first handler serves it; their descriptors must agree or Build
// fails.
func (s *Server) Handle(route Route) error {
	if route.Handler == nil {
		return fmt.Errorf("%w: %s %s", ErrNilHandler, route.Descriptor.Method, route.Descriptor.Path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.Register(route.Descriptor); err != nil {
		return err
	}
	key := routeKey(route.Descriptor)
	if _, exists := s.handlers[key]; !exists {
		s.handlers[key] = route.Handler
	}
	return nil
}

// HandleAll registers routes in order and stops at the first error.
func (s *Server) HandleAll(routes ...Route) error {
	for _, route := range routes {
		if err := s.Handle(route); err != nil {
			return err
		}
	}
	return nil
}

// Build freezes the registry, builds the OpenAPI document and assembles the
// handler tree. It runs once; later calls return the same handler. A failed
// build leaves the registry frozen.
func (s *Server) Build() (http.Handler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handler != nil {
		return s.handler, nil
	}

	doc, err := openapi.Build(openapi.Info{
		Title:       s.cfg.Docs.Title,
		Version:     s.cfg.Docs.Version,
		Description: s.cfg.Docs.Description,
	}, s.registry.Freeze())
	if err != nil {
		return nil, fmt.Errorf("server: build openapi document: %w", err)
	}

	handler, err := s.assemble(doc)
	if err != nil {
		return nil, err
	}

	s.doc = doc
	s.handler = handler
	s.logger.Info("openapi document built", "operations", doc.Len())
	return handler, nil
}

// Document returns the built document, or nil before Build succeeded.
func (s *Server) Document() *openapi.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

func (s *Server) assemble(doc *openapi.Document) (http.Handler, error) {
	api := http.NewServeMux()
	for _, desc := range doc.Descriptors() {
		api.Handle(muxPattern(desc), s.handlers[routeKey(desc)])
	}

	rt := router.New(api, s.routerOptions(doc)...)

	readiness := make([]probe.Func, 0, len(s.readiness)+1)
	readiness = append(readiness, s.readiness...)
	readiness = append(readiness, s.documentProbe())

	ih := info.NewInfoHandler(
		info.WithInfoResponder(s.responder),
		info.WithTitle(s.cfg.Docs.Title),
		info.WithUIType(s.cfg.UI()),
		info.WithInfoProvider(s.version),
		info.WithOpenAPIProvider(func() ([]byte, error) { return doc.JSON(), nil }),
		info.WithOpenAPIYAMLProvider(doc.YAML),
		info.WithProbeTimeout(s.cfg.Probe.Timeout),
		info.WithLivenessChecks(s.liveness...),
		info.WithReadinessChecks(readiness...),
	)

	docPath := s.cfg.Docs.DocumentPath
	rt.HandleFunc("GET "+docPath, ih.GetOpenAPIJSON)
	rt.HandleFunc("GET "+yamlPath(docPath), ih.GetOpenAPIYAML)
	if err := ih.MountUI(rt.Mux(), s.cfg.Docs.UIPath, relativeDocumentURL(s.cfg.Docs.UIPath, docPath)); err != nil {
		return nil, fmt.Errorf("server: mount documentation ui: %w", err)
	}

	rt.HandleFunc("GET /healthz", ih.GetHealthz)
	rt.HandleFunc("GET /readyz", ih.GetReadyz)
	rt.HandleFunc("GET /status", ih.GetStatus)
	rt.HandleFunc("GET /version", ih.GetVersion)

	if s.metricsEnabled() {
		rt.Handle("GET "+s.cfg.Metrics.Path, s.metrics.Handler())
		s.metrics.SetOperations(doc.Len())
		if bi, ok := s.version().(info.BuildInfo); ok {
			s.metrics.SetBuildInfo(bi.Version, bi.GoVersion)
		}
	}

	return rt, nil
}

func (s *Server) routerOptions(doc *openapi.Document) []router.Option {
	opts := []router.Option{
		router.WithLogger(s.logger),
		router.WithSwagger(doc.Spec()),
		router.WithValidationErrorHandler(func(w http.ResponseWriter, message string, status int) {
			s.responder.HandleAPIError(w, nil, status, errors.New(message))
		}),
		router.WithConfig(router.Config{
			Timeout: s.cfg.Server.RequestTimeout,
			CORS: router.CORSConfig{
				Origins: s.cfg.CORS.Origins,
				Methods: s.cfg.CORS.Methods,
				Headers: s.cfg.CORS.Headers,
			},
			QuietdownRoutes: []string{"/healthz", "/readyz", s.cfg.Metrics.Path},
			HideHeaders:     []string{"Authorization", "Cookie"},
		}),
	}
	if s.metricsEnabled() {
		opts = append(opts, router.WithRequestObserver(s.metrics))
	}
	return opts
}

func (s *Server) metricsEnabled() bool {
	return s.cfg.Metrics.Enabled && s.metrics != nil
}

func (s *Server) documentProbe() probe.Func {
	return probe.NewPingProbe("openapi", func(context.Context) error {
		if s.Document() == nil {
			return errors.New("document not built")
		}
		return nil
	})
}

func routeKey(desc schema.RouteDescriptor) string {
	return strings.ToUpper(strings.TrimSpace(desc.Method)) + " " + strings.TrimSpace(desc.Path)
}

// muxPattern anchors paths ending in a slash so "/" does not act as a
// catch-all.
func muxPattern(desc schema.RouteDescriptor) string {
	pattern := routeKey(desc)
	if strings.HasSuffix(desc.Path, "/") {
		pattern += "{$}"
	}
	return pattern
}

func yamlPath(docPath string) string {
	return strings.TrimSuffix(docPath, ".json") + ".yaml"
}

// relativeDocumentURL climbs out of the UI directory, so "/swagger_ui/" and
// "/openapi.json" yield "../openapi.json".
func relativeDocumentURL(uiPath, docPath string) string {
	depth := strings.Count(strings.Trim(uiPath, "/"), "/") + 1
	return strings.Repeat("../", depth) + strings.TrimPrefix(docPath, "/")
}

func metricNamespace(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9' && b.Len() > 0:
			b.WriteRune(r)
		case b.Len() > 0:
			b.WriteByte('_')
		}
	}
	ns := strings.Trim(b.String(), "_")
	if ns == "" {
		return "hostweaver"
	}
	return ns
}

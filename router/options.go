package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Option configures a Router.
type Option func(*options)

// stage names one built-in middleware so it can be switched off.
type stage uint8

const (
	stageValidation stage = 1 << iota
	stageCORS
	stageTimeout
	stageLogging
	stageMetrics
)

const defaultRequestTimeout = 30 * time.Second

type options struct {
	config    Config
	logger    *slog.Logger
	document  *openapi3.T
	onInvalid ValidationErrorHandler
	observer  RequestObserver
	prepend   []Middleware
	append    []Middleware
	override  []Middleware
	disabled  stage
}

func defaultOptions() *options {
	return &options{
		config: Config{Timeout: defaultRequestTimeout},
		logger: slog.Default(),
	}
}

func (o *options) enabled(s stage) bool {
	return o.disabled&s == 0
}

// apiHandler guards next with request validation against the document.
func (o *options) apiHandler(next http.Handler) http.Handler {
	if !o.enabled(stageValidation) || o.document == nil {
		return next
	}
	return oapiMiddleware(o.document, o.onInvalid)(next)
}

// middlewareChain lists middlewares outermost first.
func (o *options) middlewareChain() []Middleware {
	if o.override != nil {
		return slices.Clone(o.override)
	}
	return slices.Concat(o.prepend, o.builtins(), o.append)
}

func (o *options) builtins() []Middleware {
	var chain []Middleware
	if o.enabled(stageCORS) && shouldApplyCORS(o.config.CORS) {
		chain = append(chain, corsMiddleware(o.config.CORS))
	}
	if o.enabled(stageTimeout) && o.config.Timeout > 0 {
		chain = append(chain, timeoutMiddleware(o.config.Timeout))
	}
	if o.enabled(stageLogging) && o.logger != nil {
		chain = append(chain, loggingMiddleware(o.logger, o.config.QuietdownRoutes, o.config.HideHeaders))
	}
	// Innermost, so it sees the request the mux annotates with its pattern.
	if o.enabled(stageMetrics) && o.observer != nil {
		chain = append(chain, metricsMiddleware(o.observer))
	}
	return chain
}

func without(s stage) Option {
	return func(o *options) {
		o.disabled |= s
	}
}

// WithConfig replaces the router configuration.
func WithConfig(cfg Config) Option {
	cfg = sanitizeConfig(cfg)
	return func(o *options) {
		o.config = cfg
	}
}

// WithConfigMutator edits the configuration in place, after defaults and any
// earlier WithConfig.
func WithConfigMutator(mutator func(*Config)) Option {
	return func(o *options) {
		if mutator != nil {
			mutator(&o.config)
		}
	}
}

// WithLogger sets the logger of the request logging middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSwagger sets the OpenAPI document requests to the API handler are
// validated against.
func WithSwagger(doc *openapi3.T) Option {
	return func(o *options) {
		o.document = doc
	}
}

// WithValidationErrorHandler sets how rejected requests are answered.
func WithValidationErrorHandler(handler ValidationErrorHandler) Option {
	return func(o *options) {
		o.onInvalid = handler
	}
}

// WithRequestObserver reports every completed request, typically into
// Prometheus collectors.
func WithRequestObserver(observer RequestObserver) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithMiddlewares runs middlewares before the built-in chain.
func WithMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.prepend = append(o.prepend, middlewares...)
	}
}

// WithTrailingMiddlewares runs middlewares after the built-in chain, right
// before routing.
func WithTrailingMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.append = append(o.append, middlewares...)
	}
}

// WithMiddlewareChain replaces the whole chain, built-ins included.
// Validation of the API handler is not part of the chain and stays on.
func WithMiddlewareChain(middlewares ...Middleware) Option {
	chain := slices.Clone(middlewares)
	if chain == nil {
		chain = []Middleware{}
	}
	return func(o *options) {
		o.override = chain
	}
}

// WithoutOpenAPIValidation serves the API handler without request validation.
func WithoutOpenAPIValidation() Option { return without(stageValidation) }

// WithoutCORSMiddleware drops CORS handling regardless of configuration.
func WithoutCORSMiddleware() Option { return without(stageCORS) }

// WithoutTimeoutMiddleware drops the per-request timeout.
func WithoutTimeoutMiddleware() Option { return without(stageTimeout) }

// WithoutLoggingMiddleware drops request logging.
func WithoutLoggingMiddleware() Option { return without(stageLogging) }

// WithoutMetricsMiddleware drops request observation even when an observer
// is configured.
func WithoutMetricsMiddleware() Option { return without(stageMetrics) }

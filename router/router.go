package router

import (
	"net/http"
)

// Router is an http.ServeMux behind the configured middleware chain.
//
// Every request passes through the chain. Only requests that fall through to
// the catch-all API handler are checked against the OpenAPI document, so
// routes registered with Handle (documentation, probes, metrics) stay outside
// the published contract.
type Router struct {
	mux     *http.ServeMux
	handler http.Handler
}

// New returns a Router serving apiHandle for every path not claimed by a more
// specific pattern.
func New(apiHandle http.Handler, opts ...Option) *Router {
	if apiHandle == nil {
		panic("router: handler cannot be nil")
	}

	settings := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(settings)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/", settings.apiHandler(apiHandle))

	return &Router{
		mux:     mux,
		handler: applyMiddlewares(mux, settings.middlewareChain()),
	}
}

// Handle registers an auxiliary route. It panics on conflicting patterns the
// same way http.ServeMux does.
func (rt *Router) Handle(pattern string, handler http.Handler) {
	rt.mux.Handle(pattern, handler)
}

// HandleFunc is the http.HandlerFunc flavour of Handle.
func (rt *Router) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	rt.mux.HandleFunc(pattern, handler)
}

// Mux exposes the underlying multiplexer for helpers that mount themselves,
// such as the documentation UI.
func (rt *Router) Mux() *http.ServeMux {
	return rt.mux
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.handler.ServeHTTP(w, r)
}

func applyMiddlewares(handler http.Handler, middlewares []Middleware) http.Handler {
	if len(middlewares) == 0 {
		return handler
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		middleware := middlewares[i]
		if middleware == nil {
			continue
		}
		handler = middleware(handler)
	}

	return handler
}

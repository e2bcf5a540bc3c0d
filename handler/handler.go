// Package handler implements the two API routes and describes them for the
// OpenAPI document.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/drblury/hostweaver/hostinfo"
	"github.com/drblury/hostweaver/responder"
	"github.com/drblury/hostweaver/schema"
	"github.com/drblury/hostweaver/server"
)

const greeting = "Hello, World!"

// InfoSource reports the host serving the request.
type InfoSource interface {
	Info(ctx context.Context) (hostinfo.Info, error)
}

// Option configures a Handler.
type Option func(*Handler)

// Handler serves the index and hostinfo routes.
type Handler struct {
	*responder.Responder
	source InfoSource
}

// New returns a Handler reading host details from source.
func New(source InfoSource, opts ...Option) *Handler {
	if source == nil {
		source = hostinfo.NewProvider()
	}
	h := &Handler{
		Responder: responder.NewResponder(),
		source:    source,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// WithResponder replaces the responder used for bodies and error reporting.
func WithResponder(r *responder.Responder) Option {
	return func(h *Handler) {
		if r != nil {
			h.Responder = r
		}
	}
}

// Index answers with a fixed greeting.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.RespondWithText(w, r, http.StatusOK, greeting)
}

// HostInfo reports hostname, process id and uptime of the serving host.
// Lookup failures are answered with a 500 error body; they never affect
// other requests.
func (h *Handler) HostInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.source.Info(r.Context())
	if err != nil {
		h.HandleErrors(w, r, err, "host information unavailable")
		return
	}
	h.RespondWithJSON(w, r, http.StatusOK, info)
}

// ClassifyError maps HostInfo failures to the statuses HostInfoDescriptor
// documents. Host lookup errors are always 500, even when their cause is a
// deadline; only a bare deadline is 504.
func ClassifyError(err error) (int, bool) {
	switch {
	case errors.Is(err, hostinfo.ErrHostnameDecode), errors.Is(err, hostinfo.ErrUptimeUnavailable):
		return http.StatusInternalServerError, true
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, true
	default:
		return http.StatusInternalServerError, true
	}
}

// Routes returns both routes with the descriptors published for them.
func (h *Handler) Routes() []server.Route {
	return []server.Route{
		{Descriptor: IndexDescriptor(), Handler: http.HandlerFunc(h.Index)},
		{Descriptor: HostInfoDescriptor(), Handler: http.HandlerFunc(h.HostInfo)},
	}
}

// IndexDescriptor documents GET /.
func IndexDescriptor() schema.RouteDescriptor {
	return schema.RouteDescriptor{
		Method:      http.MethodGet,
		Path:        "/",
		OperationID: "index",
		Summary:     "Greeting",
		Description: `Returns "Hello, World!".`,
		Tags:        []string{"host"},
		Response: schema.Response{
			Status:      http.StatusOK,
			ContentType: "text/plain",
			Description: "The greeting.",
			Schema:      schema.Text(),
		},
	}
}

// HostInfoDescriptor documents GET /hostinfo.
func HostInfoDescriptor() schema.RouteDescriptor {
	return schema.RouteDescriptor{
		Method:      http.MethodGet,
		Path:        "/hostinfo",
		OperationID: "hostinfo",
		Summary:     "Host information",
		Description: "Returns information about the host serving this page.",
		Tags:        []string{"host"},
		Response: schema.Response{
			Status:      http.StatusOK,
			Description: "Hostname, process id and uptime in seconds.",
			Schema:      schema.MustOf[hostinfo.Info]().WithName("HostInfo"),
		},
		Errors: []schema.Response{{
			Status:      http.StatusInternalServerError,
			Description: "The hostname or uptime could not be determined.",
			Schema:      schema.MustOf[responder.ErrorResponse](),
		}, {
			Status:      http.StatusGatewayTimeout,
			Description: "The lookup did not finish before the request deadline.",
			Schema:      schema.MustOf[responder.ErrorResponse](),
		}},
	}
}

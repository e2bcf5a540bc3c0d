package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/hostweaver/hostinfo"
	"github.com/drblury/hostweaver/jsonutil"
	"github.com/drblury/hostweaver/responder"
)

type stubSource struct {
	info hostinfo.Info
	err  error
}

func (s stubSource) Info(context.Context) (hostinfo.Info, error) {
	return s.info, s.err
}

func quietResponder() *responder.Responder {
	return responder.NewResponder(responder.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestIndex(t *testing.T) {
	h := New(stubSource{}, WithResponder(quietResponder()))

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Hello, World!", rec.Body.String())
}

func TestHostInfo(t *testing.T) {
	want := hostinfo.Info{Hostname: "edge-01", PID: 4242, Uptime: 86400}
	h := New(stubSource{info: want}, WithResponder(quietResponder()))

	rec := httptest.NewRecorder()
	h.HostInfo(rec, httptest.NewRequest(http.MethodGet, "/hostinfo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hostname":"edge-01","pid":4242,"uptime":86400}`, rec.Body.String())
}

func TestHostInfoFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   error
	}{
		{
			name: "hostname decode",
			err:  &hostinfo.HostnameDecodeError{Raw: "\xff\xfe"},
			is:   hostinfo.ErrHostnameDecode,
		},
		{
			name: "uptime unavailable",
			err:  &hostinfo.UptimeUnavailableError{Cause: errors.New("no /proc/uptime")},
			is:   hostinfo.ErrUptimeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.is)
			h := New(stubSource{err: tt.err}, WithResponder(quietResponder()))

			rec := httptest.NewRecorder()
			h.HostInfo(rec, httptest.NewRequest(http.MethodGet, "/hostinfo", nil))

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body responder.ErrorResponse
			require.NoError(t, jsonutil.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body.Error)
			assert.NotEmpty(t, body.TraceID)

			// A failed lookup leaves the handler usable.
			rec = httptest.NewRecorder()
			h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "Hello, World!", rec.Body.String())
		})
	}
}

func TestNewDefaultsToHostProvider(t *testing.T) {
	h := New(nil)
	_, ok := h.source.(*hostinfo.Provider)
	assert.True(t, ok)
	assert.NotNil(t, h.Responder)
}

func TestDescriptors(t *testing.T) {
	index := IndexDescriptor()
	assert.Equal(t, "GET /", index.Key())
	assert.Equal(t, http.StatusOK, index.Response.Status)
	assert.Equal(t, "text/plain", index.Response.ContentType)
	assert.Empty(t, index.Errors)

	hostInfo := HostInfoDescriptor()
	assert.Equal(t, "GET /hostinfo", hostInfo.Key())
	assert.Equal(t, "HostInfo", hostInfo.Response.Schema.Name)
	require.Len(t, hostInfo.Errors, 2)
	assert.Equal(t, http.StatusInternalServerError, hostInfo.Errors[0].Status)
	assert.Equal(t, http.StatusGatewayTimeout, hostInfo.Errors[1].Status)
	for _, resp := range hostInfo.Errors {
		assert.Equal(t, "ErrorResponse", resp.Schema.Name)
	}

	fields := make([]string, 0, len(hostInfo.Response.Schema.Fields))
	for _, f := range hostInfo.Response.Schema.Fields {
		fields = append(fields, f.Name)
	}
	assert.Equal(t, []string{"hostname", "pid", "uptime"}, fields)
}

func TestRoutes(t *testing.T) {
	h := New(stubSource{info: hostinfo.Info{Hostname: "edge-01"}}, WithResponder(quietResponder()))
	routes := h.Routes()
	require.Len(t, routes, 2)

	assert.Equal(t, IndexDescriptor().Key(), routes[0].Descriptor.Key())
	assert.Equal(t, HostInfoDescriptor().Key(), routes[1].Descriptor.Key())

	rec := httptest.NewRecorder()
	routes[1].Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hostinfo", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hostname":"edge-01"`)
}

package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Func represents a health check that returns an error when the resource is unavailable.
type Func func(ctx context.Context) error

// PingFunc is the shape of Ping methods such as hostinfo.Provider.Ping.
type PingFunc func(ctx context.Context) error

// HTTPDoer represents the subset of *http.Client required by the HTTP probe helper.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewPingProbe wraps a PingFunc with standardised error handling suitable for InfoHandler probes.
func NewPingProbe(name string, fn PingFunc) Func {
	return func(ctx context.Context) error {
		if fn == nil {
			return nilComponentError(name, "ping function")
		}
		if err := fn(contextOrBackground(ctx)); err != nil {
			return fmt.Errorf("%s probe failed: %w", name, err)
		}
		return nil
	}
}

// All combines probes into one that fails on the first failing member.
func All(probes ...Func) Func {
	return func(ctx context.Context) error {
		ctx = contextOrBackground(ctx)
		for _, p := range probes {
			if p == nil {
				continue
			}
			if err := p(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// NewHTTPProbe creates a Func that performs an HTTP request against target.
// The probe succeeds when the response status code is within the 2xx range
// unless WithHTTPAllowedStatuses says otherwise.
func NewHTTPProbe(name, method, target string, client HTTPDoer, opts ...HTTPProbeOption) Func {
	return func(ctx context.Context) error {
		trimmedTarget := strings.TrimSpace(target)
		if trimmedTarget == "" {
			return fmt.Errorf("%s probe: target URL is required", name)
		}

		verb := strings.ToUpper(strings.TrimSpace(method))
		if verb == "" {
			verb = http.MethodGet
		}

		req, err := http.NewRequestWithContext(contextOrBackground(ctx), verb, trimmedTarget, nil)
		if err != nil {
			return fmt.Errorf("%s probe: failed to build request: %w", name, err)
		}

		cfg := buildHTTPProbeConfig(client, opts...)
		for key, values := range cfg.header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}

		resp, err := cfg.client.Do(req)
		if err != nil {
			return fmt.Errorf("%s probe request failed: %w", name, err)
		}
		defer resp.Body.Close()

		if err := cfg.validateResponse(resp); err != nil {
			return fmt.Errorf("%s probe: %w", name, err)
		}

		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return fmt.Errorf("%s probe: failed to drain response body: %w", name, err)
		}
		return nil
	}
}

package probe

import (
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/drblury/hostweaver/jsonutil"
)

// HTTPResponseValidator inspects the received response and can veto the probe.
type HTTPResponseValidator func(resp *http.Response) error

// HTTPProbeOption configures the behaviour of NewHTTPProbe.
type HTTPProbeOption func(*httpProbeConfig)

type httpProbeConfig struct {
	client     HTTPDoer
	allowed    []int
	header     http.Header
	validators []HTTPResponseValidator
}

func buildHTTPProbeConfig(client HTTPDoer, opts ...HTTPProbeOption) *httpProbeConfig {
	cfg := &httpProbeConfig{
		client: client,
		header: make(http.Header),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}
	return cfg
}

func (c *httpProbeConfig) statusAccepted(status int) bool {
	if len(c.allowed) == 0 {
		return isSuccessStatus(status)
	}
	return slices.Contains(c.allowed, status)
}

func (c *httpProbeConfig) validateResponse(resp *http.Response) error {
	if !c.statusAccepted(resp.StatusCode) {
		return fmt.Errorf("unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	for _, validator := range c.validators {
		if validator == nil {
			continue
		}
		if err := validator(resp); err != nil {
			return err
		}
	}
	return nil
}

// WithHTTPClient overrides the HTTP client used for the probe.
func WithHTTPClient(client HTTPDoer) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		cfg.client = client
	}
}

// WithHTTPAllowedStatuses restricts the probe to succeed only for the provided status codes.
func WithHTTPAllowedStatuses(statuses ...int) HTTPProbeOption {
	allowed := slices.Clone(statuses)
	return func(cfg *httpProbeConfig) {
		cfg.allowed = allowed
	}
}

// WithHTTPHeader adds a request header to every probe request.
func WithHTTPHeader(key, value string) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		cfg.header.Add(key, value)
	}
}

// WithHTTPResponseValidator registers a validator that runs after a response is received.
func WithHTTPResponseValidator(validator HTTPResponseValidator) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		cfg.validators = append(cfg.validators, validator)
	}
}

// ExpectJSONStatus returns a validator that requires a JSON body whose
// "status" member equals want, the shape served by the healthz and readyz
// endpoints.
func ExpectJSONStatus(want string) HTTPResponseValidator {
	return func(resp *http.Response) error {
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		var payload struct {
			Status string `json:"status"`
		}
		if err := jsonutil.Unmarshal(body, &payload); err != nil {
			return fmt.Errorf("response is not a status document: %w", err)
		}
		if payload.Status != want {
			return fmt.Errorf("reported status %q, want %q", payload.Status, want)
		}
		return nil
	}
}

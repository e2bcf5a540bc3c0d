package hostinfo

import (
	"context"
	"fmt"
	"math"
	"os"
	"unicode/utf8"

	"github.com/shirou/gopsutil/v4/host"
)

// Info is the payload returned by the host info endpoint.
type Info struct {
	Hostname string `json:"hostname"`
	PID      uint32 `json:"pid"`
	Uptime   uint64 `json:"uptime"`
}

// HostnameFunc returns the hostname as reported by the operating system.
type HostnameFunc func() (string, error)

// PIDFunc returns the current process id.
type PIDFunc func() int

// UptimeFunc returns the host uptime in whole seconds.
type UptimeFunc func(ctx context.Context) (uint64, error)

// Option follows the functional options pattern used by NewProvider.
type Option func(*Provider)

// Provider collects Info from the operating system.
type Provider struct {
	hostname HostnameFunc
	pid      PIDFunc
	uptime   UptimeFunc
}

// NewProvider returns a Provider backed by os and gopsutil. Options replace
// individual lookups, which is mostly useful in tests.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		hostname: os.Hostname,
		pid:      os.Getpid,
		uptime:   host.UptimeWithContext,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// WithHostnameFunc overrides the hostname lookup.
func WithHostnameFunc(fn HostnameFunc) Option {
	return func(p *Provider) {
		if fn != nil {
			p.hostname = fn
		}
	}
}

// WithPIDFunc overrides the process id lookup.
func WithPIDFunc(fn PIDFunc) Option {
	return func(p *Provider) {
		if fn != nil {
			p.pid = fn
		}
	}
}

// WithUptimeFunc overrides the uptime lookup.
func WithUptimeFunc(fn UptimeFunc) Option {
	return func(p *Provider) {
		if fn != nil {
			p.uptime = fn
		}
	}
}

// Info gathers the hostname, pid, and uptime. A hostname that is not valid
// UTF-8 yields a *HostnameDecodeError and a failed uptime query yields an
// *UptimeUnavailableError; neither is fatal to the caller.
func (p *Provider) Info(ctx context.Context) (Info, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	hostname, err := p.lookupHostname()
	if err != nil {
		return Info{}, err
	}

	uptime, err := p.uptime(ctx)
	if err != nil {
		return Info{}, &UptimeUnavailableError{Cause: err}
	}

	return Info{
		Hostname: hostname,
		PID:      p.processID(),
		Uptime:   uptime,
	}, nil
}

// Ping runs the same lookups as Info and discards the result. It is used as
// a readiness check.
func (p *Provider) Ping(ctx context.Context) error {
	_, err := p.Info(ctx)
	return err
}

func (p *Provider) lookupHostname() (string, error) {
	raw, err := p.hostname()
	if err != nil {
		return "", fmt.Errorf("lookup hostname: %w", err)
	}
	if !utf8.ValidString(raw) {
		return "", &HostnameDecodeError{Raw: raw}
	}
	return raw, nil
}

func (p *Provider) processID() uint32 {
	pid := p.pid()
	if pid < 0 || uint64(pid) > math.MaxUint32 {
		return 0
	}
	return uint32(pid)
}

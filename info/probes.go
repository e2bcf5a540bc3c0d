package info

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

type probePayload struct {
	Status  string   `json:"status"`
	Details []string `json:"details,omitempty"`
}

func (ih *InfoHandler) respondProbe(w http.ResponseWriter, r *http.Request, statusCode int, state string, details ...string) {
	payload := probePayload{Status: state}
	if len(details) > 0 {
		payload.Details = slices.Clone(details)
	}
	ih.RespondWithJSON(w, r, statusCode, payload)
}

// runChecks runs checks concurrently under one shared deadline. Every failure
// is reported, in the order the checks were given.
func (ih *InfoHandler) runChecks(ctx context.Context, checks []ProbeFunc) error {
	if len(checks) == 0 {
		return nil
	}

	timeout := ih.probeTimeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	failures := make([]error, len(checks))
	var g errgroup.Group
	for idx, check := range checks {
		if check == nil {
			continue
		}
		g.Go(func() error {
			failures[idx] = describeFailure(idx, timeout, check(probeCtx))
			return failures[idx]
		})
	}
	_ = g.Wait()

	return errors.Join(failures...)
}

func describeFailure(idx int, timeout time.Duration, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("probe %d timed out after %s: %w", idx+1, timeout, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("probe %d was cancelled: %w", idx+1, err)
	default:
		return fmt.Errorf("probe %d failed: %w", idx+1, err)
	}
}

func filterProbes(checks []ProbeFunc) []ProbeFunc {
	filtered := slices.DeleteFunc(slices.Clone(checks), func(check ProbeFunc) bool {
		return check == nil
	})
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

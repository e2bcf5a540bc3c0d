package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrNilCheck is returned by probes constructed without their check function.
var ErrNilCheck = errors.New("probe has nothing to check")

func contextOrBackground(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSuccessStatus(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func nilComponentError(name, component string) error {
	return fmt.Errorf("%s probe: %s is nil: %w", name, component, ErrNilCheck)
}

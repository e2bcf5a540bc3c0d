package info

import (
	"testing"

	"github.com/drblury/hostweaver/jsonutil"
	"github.com/drblury/hostweaver/responder"
)

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	if err := jsonutil.Unmarshal(body, &v); err != nil {
		t.Fatalf("failed to decode %T: %v (body: %s)", v, err, string(body))
	}
	return v
}

func decodeProbePayload(t *testing.T, body []byte) probePayload {
	t.Helper()
	return decodeBody[probePayload](t, body)
}

func decodeErrorResponse(t *testing.T, body []byte) responder.ErrorResponse {
	t.Helper()
	return decodeBody[responder.ErrorResponse](t, body)
}

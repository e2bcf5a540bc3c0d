package responder

import "github.com/oklog/ulid/v2"

// newTraceID returns a ULID. ulid.Make draws from a process-wide monotonic
// source, so ids generated within the same millisecond still sort in order.
func newTraceID() string {
	return ulid.Make().String()
}

// Package probe turns ping functions and HTTP endpoints into liveness and
// readiness checks. See ExampleNewPingProbe, ExampleNewHTTPProbe and
// ExampleExpectJSONStatus for quick-start patterns.
package probe

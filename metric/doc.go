// Package metric owns the Prometheus registry of the service.
//
// A Registry carries the Go runtime and process collectors, HTTP request
// counters and latency histograms labelled by the ServeMux pattern that served
// the request, and a handful of service gauges. Handler exposes the registry in
// the Prometheus text and OpenMetrics formats.
package metric

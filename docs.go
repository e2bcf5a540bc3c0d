// Package hostweaver is a small self-describing HTTP service. It answers a
// greeting on "/" and reports hostname, process id and uptime on "/hostinfo",
// and it publishes an OpenAPI 3 document describing exactly those routes
// together with a browsable documentation UI.
//
// Handlers declare a schema.RouteDescriptor next to the code that serves the
// route. The server package collects the descriptors, freezes them and builds
// the document before the listening socket is opened, so a service that
// starts is a service whose document matches its routes.
//
// # Packages
//
//   - schema: route descriptors, response schemas and the freeze-once registry.
//   - openapi: deterministic OpenAPI 3.0 document builder with conflict checks.
//   - hostinfo: hostname, pid and uptime lookups with recoverable errors.
//   - handler: the "/" and "/hostinfo" routes and their descriptors.
//   - server: assembles routes, document, UI, probes and metrics, then listens.
//   - router: middleware chain (CORS, timeout, logging, metrics, validation).
//   - info: document, UI, health, readiness, status and version endpoints.
//   - responder: JSON and text rendering with trace-id error bodies.
//   - probe: readiness checks for functions and remote HTTP endpoints.
//   - metric: Prometheus registry for request and build metrics.
//   - config: layered configuration (defaults, YAML, .env, environment, flags).
//   - jsonutil: sonic wrappers for encoding and decoding.
//
// # Quick Start
//
//	cfg := config.Default()
//	srv := server.New(cfg, server.WithLogger(logger))
//	h := handler.New(hostinfo.NewProvider(), handler.WithResponder(srv.Responder()))
//	if err := srv.HandleAll(h.Routes()...); err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
//
// The same wiring is available as the hostweaver command: "hostweaver serve"
// runs the service, "hostweaver openapi" prints the document and
// "hostweaver healthcheck" queries a running instance.
package hostweaver

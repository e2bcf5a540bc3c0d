// Package info serves the endpoints that surround an API: the OpenAPI
// document, a documentation UI, build metadata and health probes.
//
// Four documentation viewers are bundled:
//   - Swagger UI (default)
//   - Redoc
//   - Scalar
//   - Stoplight Elements
//
// Use WithUIType to pick one and MountUI to attach it below a base path. The
// page refers to the document by the URL handed to MountUI, so a relative URL
// such as "../openapi.json" keeps working behind path-rewriting proxies.
//
// See ExampleInfoHandler_full for a runnable wiring of the handler and probes.
package info

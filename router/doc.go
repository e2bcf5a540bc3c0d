// Package router wraps http.ServeMux with OpenAPI validation, CORS,
// timeouts, request logging and request metrics.
//
// The handler passed to New serves every path no auxiliary route claims and
// is the only part of the tree checked against the OpenAPI document.
// ExampleNew_customOptions demonstrates how to combine built-in and custom
// middlewares.
package router

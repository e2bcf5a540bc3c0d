// Package server assembles the service: it collects routes together with
// their descriptors, freezes the descriptors into an OpenAPI document, mounts
// the document, the documentation UI, probes and metrics next to the API, and
// only then binds the listening socket.
//
// A document that cannot be built (for example two handlers declaring
// different response shapes for the same method and path) stops startup
// before any port is opened.
package server

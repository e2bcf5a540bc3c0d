// Package openapi turns the frozen contents of a schema.Registry into an
// OpenAPI 3 document. Build is a pure function: the same descriptors always
// yield byte-identical JSON, which keeps the served document diffable and
// lets tests compare builds directly.
package openapi

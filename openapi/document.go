package openapi

import (
	"bytes"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"go.yaml.in/yaml/v4"

	"github.com/drblury/hostweaver/schema"
)

// Document is a built OpenAPI description. It is read-only once returned by
// Build and safe for concurrent readers.
type Document struct {
	spec   *openapi3.T
	json   []byte
	routes []schema.RouteDescriptor
}

// Spec exposes the underlying kin-openapi model, mainly for request
// validation. Callers must not modify it.
func (d *Document) Spec() *openapi3.T {
	return d.spec
}

// JSON returns the encoded document.
func (d *Document) JSON() []byte {
	return bytes.Clone(d.json)
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	var tree any
	if err := yaml.Unmarshal(d.json, &tree); err != nil {
		return nil, fmt.Errorf("openapi: decode document: %w", err)
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	return out, nil
}

// Routes returns the method and path of each documented operation in
// registration order.
func (d *Document) Routes() []string {
	keys := make([]string, len(d.routes))
	for i, r := range d.routes {
		keys[i] = r.Key()
	}
	return keys
}

// Len returns the number of documented operations.
func (d *Document) Len() int {
	return len(d.routes)
}

// Descriptors returns copies of the descriptors the document was built from,
// with duplicates removed.
func (d *Document) Descriptors() []schema.RouteDescriptor {
	out := make([]schema.RouteDescriptor, len(d.routes))
	for i, r := range d.routes {
		out[i] = r.Clone()
	}
	return out
}

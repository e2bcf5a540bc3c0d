package schema

import (
	"net/http"
	"slices"
	"strings"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"
)

var allowedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodTrace,
}

// Response documents one status code of a route.
type Response struct {
	// Status defaults to 200 for the success response.
	Status int
	// ContentType defaults to application/json for objects and text/plain
	// for primitive bodies.
	ContentType string
	Description string
	Schema      ResponseSchema
}

// RouteDescriptor binds a method and path to the shape of the responses the
// route emits.
type RouteDescriptor struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Response    Response
	Errors      []Response
}

// Key identifies the route by method and path.
func (d RouteDescriptor) Key() string {
	return d.Method + " " + d.Path
}

// Clone returns a deep copy of the descriptor.
func (d RouteDescriptor) Clone() RouteDescriptor {
	d.Tags = slices.Clone(d.Tags)
	d.Response.Schema = d.Response.Schema.clone()
	if d.Errors != nil {
		errs := make([]Response, len(d.Errors))
		for i, r := range d.Errors {
			r.Schema = r.Schema.clone()
			errs[i] = r
		}
		d.Errors = errs
	}
	return d
}

func (d RouteDescriptor) normalize() RouteDescriptor {
	d = d.Clone()
	d.Method = strings.ToUpper(strings.TrimSpace(d.Method))
	d.Path = strings.TrimSpace(d.Path)
	d.Response = normalizeResponse(d.Response, http.StatusOK)
	for i := range d.Errors {
		d.Errors[i] = normalizeResponse(d.Errors[i], http.StatusInternalServerError)
	}
	return d
}

func (d RouteDescriptor) validate() error {
	switch {
	case d.Path == "":
		return &InvalidDescriptorError{Method: d.Method, Path: d.Path, Reason: "path is required"}
	case !strings.HasPrefix(d.Path, "/"):
		return &InvalidDescriptorError{Method: d.Method, Path: d.Path, Reason: "path must start with /"}
	case !slices.Contains(allowedMethods, d.Method):
		return &InvalidDescriptorError{Method: d.Method, Path: d.Path, Reason: "unsupported method"}
	}

	seen := map[int]bool{d.Response.Status: true}
	for _, r := range d.Errors {
		if seen[r.Status] {
			return &InvalidDescriptorError{Method: d.Method, Path: d.Path, Reason: "duplicate response status " + http.StatusText(r.Status)}
		}
		seen[r.Status] = true
	}
	return nil
}

func normalizeResponse(r Response, defaultStatus int) Response {
	if r.Status == 0 {
		r.Status = defaultStatus
	}
	if r.ContentType == "" {
		if r.Schema.IsObject() {
			r.ContentType = contentTypeJSON
		} else {
			r.ContentType = contentTypeText
		}
	}
	if r.Description == "" {
		r.Description = http.StatusText(r.Status)
	}
	return r
}

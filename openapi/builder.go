package openapi

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/hostweaver/schema"
)

// Version is the OpenAPI version emitted by Build.
const Version = "3.0.3"

const componentRefPrefix = "#/components/schemas/"

// Info carries the document's info block.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Build materialises descriptors into a validated, frozen Document. Routes
// sharing a method and path collapse into one entry when every declared
// response agrees and fail with *SchemaConflictError otherwise. Distinct
// routes sharing an operation id fail with *DuplicateOperationIDError. Object
// schemas are published once per structural shape under components.schemas.
func Build(info Info, descriptors []schema.RouteDescriptor) (*Document, error) {
	routes, err := uniqueRoutes(descriptors)
	if err != nil {
		return nil, err
	}

	spec := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: make(openapi3.Schemas)},
	}

	components := newComponentSet(spec.Components.Schemas)
	for _, desc := range routes {
		item := spec.Paths.Value(desc.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			spec.Paths.Set(desc.Path, item)
		}
		item.SetOperation(desc.Method, buildOperation(desc, components))

		for _, tag := range desc.Tags {
			if spec.Tags.Get(tag) == nil {
				spec.Tags = append(spec.Tags, &openapi3.Tag{Name: tag})
			}
		}
	}

	if err := spec.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("openapi: built document is invalid: %w", err)
	}

	raw, err := spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}

	return &Document{spec: spec, json: raw, routes: routes}, nil
}

func uniqueRoutes(descriptors []schema.RouteDescriptor) ([]schema.RouteDescriptor, error) {
	routes := make([]schema.RouteDescriptor, 0, len(descriptors))
	index := make(map[string]int, len(descriptors))
	operationIDs := make(map[string]string, len(descriptors))

	for _, desc := range descriptors {
		key := desc.Key()
		pos, seen := index[key]
		if seen {
			existing := routes[pos]
			if !sameResponses(existing, desc) {
				return nil, &SchemaConflictError{
					Method:      desc.Method,
					Path:        desc.Path,
					Existing:    describeResponses(existing),
					Conflicting: describeResponses(desc),
				}
			}
			continue
		}

		if id := desc.OperationID; id != "" {
			if owner, taken := operationIDs[id]; taken {
				return nil, &DuplicateOperationIDError{OperationID: id, Existing: owner, Conflicting: key}
			}
			operationIDs[id] = key
		}
		index[key] = len(routes)
		routes = append(routes, desc.Clone())
	}
	return routes, nil
}

// responseSet keys every declared response by status code.
func responseSet(desc schema.RouteDescriptor) map[int]schema.Response {
	set := make(map[int]schema.Response, 1+len(desc.Errors))
	set[desc.Response.Status] = desc.Response
	for _, r := range desc.Errors {
		set[r.Status] = r
	}
	return set
}

// sameResponses reports whether a and b declare the same status codes with
// the same content type and schema each.
func sameResponses(a, b schema.RouteDescriptor) bool {
	if a.Response.Status != b.Response.Status {
		return false
	}
	left, right := responseSet(a), responseSet(b)
	if len(left) != len(right) {
		return false
	}
	for status, l := range left {
		r, ok := right[status]
		if !ok || l.ContentType != r.ContentType || !l.Schema.Equal(r.Schema) {
			return false
		}
	}
	return true
}

func describeResponses(desc schema.RouteDescriptor) string {
	set := responseSet(desc)
	statuses := slices.Sorted(maps.Keys(set))
	parts := make([]string, len(statuses))
	for i, status := range statuses {
		r := set[status]
		parts[i] = strconv.Itoa(r.Status) + " " + r.ContentType + " " + r.Schema.Key()
	}
	return strings.Join(parts, ", ")
}

func buildOperation(desc schema.RouteDescriptor, components *componentSet) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = desc.OperationID
	op.Summary = desc.Summary
	op.Description = desc.Description
	op.Tags = slices.Clone(desc.Tags)

	responses := openapi3.NewResponsesWithCapacity(1 + len(desc.Errors))
	for _, r := range append([]schema.Response{desc.Response}, desc.Errors...) {
		resp := openapi3.NewResponse().
			WithDescription(r.Description).
			WithContent(openapi3.NewContentWithSchemaRef(components.ref(r.Schema), []string{r.ContentType}))
		responses.Set(strconv.Itoa(r.Status), &openapi3.ResponseRef{Value: resp})
	}
	op.Responses = responses
	return op
}

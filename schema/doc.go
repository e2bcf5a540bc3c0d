// Package schema binds HTTP routes to the shape of their responses.
//
// A RouteDescriptor records the method, path, and response schema of one
// route. Descriptors are collected by a Registry in registration order until
// the registry is frozen, after which further registrations are rejected.
// Response schemas are usually derived from a Go type with Of:
//
//	desc := schema.RouteDescriptor{
//	    Method: http.MethodGet,
//	    Path:   "/hostinfo",
//	    Response: schema.Response{
//	        Schema: schema.MustOf[hostinfo.Info](),
//	    },
//	}
//	if err := registry.Register(desc); err != nil {
//	    return err
//	}
package schema

package schema

import "sync"

// Registry accumulates route descriptors until it is frozen. The zero value
// is ready to use.
type Registry struct {
	mu          sync.RWMutex
	descriptors []RouteDescriptor
	frozen      bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a copy of desc. It fails with *InvalidDescriptorError for
// malformed descriptors and with *RegistrationAfterFreezeError once Freeze
// has been called.
func (r *Registry) Register(desc RouteDescriptor) error {
	desc = desc.normalize()
	if err := desc.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return &RegistrationAfterFreezeError{Method: desc.Method, Path: desc.Path}
	}
	r.descriptors = append(r.descriptors, desc)
	return nil
}

// AllDescriptors returns copies of the registered descriptors in
// registration order.
func (r *Registry) AllDescriptors() []RouteDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.descriptors)
}

// Freeze closes the registry to further registrations and returns its final
// contents. Calling Freeze again returns the same contents.
func (r *Registry) Freeze() []RouteDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
	return cloneAll(r.descriptors)
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}

func cloneAll(descs []RouteDescriptor) []RouteDescriptor {
	out := make([]RouteDescriptor, len(descs))
	for i, d := range descs {
		out[i] = d.Clone()
	}
	return out
}

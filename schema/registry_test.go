package schema

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hostDescriptor() RouteDescriptor {
	return RouteDescriptor{
		Method:  http.MethodGet,
		Path:    "/hostinfo",
		Summary: "host information",
		Tags:    []string{"host"},
		Response: Response{
			Schema: MustOf[hostPayload](),
		},
	}
}

func TestRegistry_RegisterPreservesOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(RouteDescriptor{Method: "get", Path: "/", Response: Response{Schema: Text()}}))
	require.NoError(t, r.Register(hostDescriptor()))

	all := r.AllDescriptors()
	require.Len(t, all, 2)
	assert.Equal(t, "GET /", all[0].Key())
	assert.Equal(t, "GET /hostinfo", all[1].Key())
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_RegisterAppliesDefaults(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	desc := hostDescriptor()
	desc.Errors = []Response{{Schema: Object("ErrorResponse", Field{Name: "error", Type: TypeString})}}
	require.NoError(t, r.Register(desc))
	require.NoError(t, r.Register(RouteDescriptor{Method: http.MethodGet, Path: "/", Response: Response{Schema: Text()}}))

	all := r.AllDescriptors()
	assert.Equal(t, http.StatusOK, all[0].Response.Status)
	assert.Equal(t, "application/json", all[0].Response.ContentType)
	assert.Equal(t, "OK", all[0].Response.Description)
	assert.Equal(t, http.StatusInternalServerError, all[0].Errors[0].Status)
	assert.Equal(t, "application/json", all[0].Errors[0].ContentType)
	assert.Equal(t, "text/plain", all[1].Response.ContentType)
}

func TestRegistry_DescriptorsAreImmutable(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	desc := hostDescriptor()
	require.NoError(t, r.Register(desc))

	desc.Tags[0] = "mutated"
	desc.Response.Schema.Fields[0].Name = "mutated"

	got := r.AllDescriptors()
	assert.Equal(t, "host", got[0].Tags[0])
	assert.Equal(t, "hostname", got[0].Response.Schema.Fields[0].Name)

	got[0].Tags[0] = "mutated-again"
	assert.Equal(t, "host", r.AllDescriptors()[0].Tags[0])
}

func TestRegistry_RejectsInvalidDescriptors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		desc RouteDescriptor
	}{
		{"empty path", RouteDescriptor{Method: http.MethodGet}},
		{"relative path", RouteDescriptor{Method: http.MethodGet, Path: "hostinfo"}},
		{"unknown method", RouteDescriptor{Method: "FETCH", Path: "/"}},
		{"duplicate status", RouteDescriptor{
			Method: http.MethodGet,
			Path:   "/",
			Errors: []Response{{Status: http.StatusOK}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewRegistry()
			err := r.Register(tt.desc)
			require.ErrorIs(t, err, ErrInvalidDescriptor)
			var invalid *InvalidDescriptorError
			assert.ErrorAs(t, err, &invalid)
			assert.Zero(t, r.Len())
		})
	}
}

func TestRegistry_RegistrationAfterFreeze(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(hostDescriptor()))
	assert.False(t, r.Frozen())

	frozen := r.Freeze()
	require.Len(t, frozen, 1)
	assert.True(t, r.Frozen())

	err := r.Register(RouteDescriptor{Method: http.MethodGet, Path: "/late"})
	require.ErrorIs(t, err, ErrRegistrationAfterFreeze)

	var lateErr *RegistrationAfterFreezeError
	require.ErrorAs(t, err, &lateErr)
	assert.Equal(t, "/late", lateErr.Path)
	assert.Equal(t, http.MethodGet, lateErr.Method)

	assert.Len(t, r.Freeze(), 1)
	assert.Len(t, r.AllDescriptors(), 1)
}

func TestRegistry_ZeroValueUsable(t *testing.T) {
	t.Parallel()

	var r Registry
	require.NoError(t, r.Register(hostDescriptor()))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Register(hostDescriptor()))
		}()
	}
	wg.Wait()

	assert.Len(t, r.Freeze(), 32)
}

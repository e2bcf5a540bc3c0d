package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hostPayload struct {
	Hostname string `json:"hostname"`
	PID      uint32 `json:"pid"`
	Uptime   uint64 `json:"uptime"`
}

type machinePayload struct {
	Uptime   uint64 `json:"uptime"`
	Hostname string `json:"hostname"`
	PID      uint32 `json:"pid"`
}

type tagged struct {
	Visible  string  `json:"visible"`
	Hidden   string  `json:"-"`
	Dash     string  `json:"-,"`
	Optional *int64  `json:"optional"`
	Omitted  float64 `json:"omitted,omitempty"`
	Quoted   int     `json:"quoted,string"`
	Untagged bool
	internal string
}

type base struct {
	ID string `json:"id"`
}

type withEmbedded struct {
	base
	Name string `json:"name"`
}

type nested struct {
	Inner hostPayload `json:"inner"`
}

type withSlice struct {
	Items []string `json:"items"`
}

func TestOf_HostPayload(t *testing.T) {
	t.Parallel()

	s, err := Of[hostPayload]()
	require.NoError(t, err)

	assert.Equal(t, "hostPayload", s.Name)
	assert.True(t, s.IsObject())
	assert.Equal(t, []Field{
		{Name: "hostname", Type: TypeString},
		{Name: "pid", Type: TypeUint32},
		{Name: "uptime", Type: TypeUint64},
	}, s.Fields)
}

func TestOf_PointerDereferenced(t *testing.T) {
	t.Parallel()

	s, err := Of[*hostPayload]()
	require.NoError(t, err)
	assert.Equal(t, "hostPayload", s.Name)
	assert.Len(t, s.Fields, 3)
}

func TestOf_Tags(t *testing.T) {
	t.Parallel()

	s, err := Of[tagged]()
	require.NoError(t, err)

	assert.Equal(t, []Field{
		{Name: "visible", Type: TypeString},
		{Name: "-", Type: TypeString},
		{Name: "optional", Type: TypeInt64, Optional: true},
		{Name: "omitted", Type: TypeDouble, Optional: true},
		{Name: "quoted", Type: TypeString},
		{Name: "Untagged", Type: TypeBoolean},
	}, s.Fields)
}

func TestOf_EmbeddedStructIsFlattened(t *testing.T) {
	t.Parallel()

	s, err := Of[withEmbedded]()
	require.NoError(t, err)
	assert.Equal(t, []Field{
		{Name: "id", Type: TypeString},
		{Name: "name", Type: TypeString},
	}, s.Fields)
}

func TestOf_Primitive(t *testing.T) {
	t.Parallel()

	s, err := Of[string]()
	require.NoError(t, err)
	assert.False(t, s.IsObject())
	assert.True(t, s.Equal(Text()))
}

func TestOf_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := Of[nested]()
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "Inner")

	_, err = Of[withSlice]()
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Of[map[string]string]()
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = FromType(nil)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestMustOf_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustOf[[]int]() })
	assert.NotPanics(t, func() { MustOf[hostPayload]() })
}

func TestResponseSchema_EqualIgnoresNameAndOrder(t *testing.T) {
	t.Parallel()

	a := MustOf[hostPayload]()
	b := MustOf[machinePayload]()

	assert.NotEqual(t, a.Name, b.Name)
	assert.True(t, a.Equal(b))
	assert.Equal(t, "object{hostname:string,pid:uint32,uptime:uint64}", a.Key())
}

func TestResponseSchema_EqualDetectsDifferences(t *testing.T) {
	t.Parallel()

	a := Object("A", Field{Name: "id", Type: TypeString})
	b := Object("A", Field{Name: "id", Type: TypeInt64})
	c := Object("A", Field{Name: "id", Type: TypeString, Optional: true})

	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Text()))
	assert.False(t, Primitive(TypeString).Equal(Primitive(TypeBoolean)))
}

func TestResponseSchema_WithName(t *testing.T) {
	t.Parallel()

	original := MustOf[hostPayload]()
	renamed := original.WithName("HostInfo")

	assert.Equal(t, "HostInfo", renamed.Name)
	assert.Equal(t, "hostPayload", original.Name)
	assert.True(t, renamed.Equal(original))

	renamed.Fields[0].Name = "changed"
	assert.Equal(t, "hostname", original.Fields[0].Name)
}

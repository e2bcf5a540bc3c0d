package openapi

import (
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/hostweaver/schema"
)

const fallbackComponentName = "Response"

// componentSet publishes object schemas under components.schemas, one entry
// per structural shape.
type componentSet struct {
	schemas openapi3.Schemas
	byShape map[string]string
}

func newComponentSet(schemas openapi3.Schemas) *componentSet {
	return &componentSet{
		schemas: schemas,
		byShape: make(map[string]string),
	}
}

// ref returns a reference to the component describing s, registering it on
// first use. Primitive schemas are returned inline.
func (c *componentSet) ref(s schema.ResponseSchema) *openapi3.SchemaRef {
	if !s.IsObject() {
		return openapi3.NewSchemaRef("", primitiveSchema(s.Type))
	}

	shape := s.Key()
	if name, ok := c.byShape[shape]; ok {
		return openapi3.NewSchemaRef(componentRefPrefix+name, c.schemas[name].Value)
	}

	name := c.uniqueName(s.Name)
	value := objectSchema(s)
	c.schemas[name] = openapi3.NewSchemaRef("", value)
	c.byShape[shape] = name
	return openapi3.NewSchemaRef(componentRefPrefix+name, value)
}

func (c *componentSet) uniqueName(name string) string {
	if name == "" {
		name = fallbackComponentName
	}
	if _, taken := c.schemas[name]; !taken {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + strconv.Itoa(i)
		if _, taken := c.schemas[candidate]; !taken {
			return candidate
		}
	}
}

func objectSchema(s schema.ResponseSchema) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	for _, f := range s.Fields {
		obj.WithProperty(f.Name, primitiveSchema(f.Type))
		if !f.Optional {
			obj.Required = append(obj.Required, f.Name)
		}
	}
	return obj
}

func primitiveSchema(t schema.Type) *openapi3.Schema {
	switch t {
	case schema.TypeBoolean:
		return openapi3.NewBoolSchema()
	case schema.TypeInt32:
		return openapi3.NewInt32Schema()
	case schema.TypeInt64:
		return openapi3.NewInt64Schema()
	case schema.TypeUint32, schema.TypeUint64:
		return openapi3.NewIntegerSchema().WithFormat(string(t)).WithMin(0)
	case schema.TypeFloat, schema.TypeDouble:
		return openapi3.NewFloat64Schema().WithFormat(string(t))
	default:
		return openapi3.NewStringSchema()
	}
}

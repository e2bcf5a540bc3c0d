package schema

import (
	"reflect"
	"slices"
	"strings"
)

// Type names a primitive wire type.
type Type string

const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeInt32   Type = "int32"
	TypeInt64   Type = "int64"
	TypeUint32  Type = "uint32"
	TypeUint64  Type = "uint64"
	TypeFloat   Type = "float"
	TypeDouble  Type = "double"
)

// Field is one property of an object schema.
type Field struct {
	Name     string
	Type     Type
	Optional bool
}

// ResponseSchema describes a response body. A schema is either a bare
// primitive (Type set) or an object made of primitive Fields (Type empty).
// Name is used when the schema is published as a component and does not take
// part in structural comparison.
type ResponseSchema struct {
	Name   string
	Type   Type
	Fields []Field
}

// Primitive returns a schema for a body made of a single primitive value.
func Primitive(t Type) ResponseSchema {
	return ResponseSchema{Type: t}
}

// Text is the schema of a plain text body.
func Text() ResponseSchema {
	return Primitive(TypeString)
}

// Object returns a named object schema with the supplied fields.
func Object(name string, fields ...Field) ResponseSchema {
	return ResponseSchema{Name: name, Fields: slices.Clone(fields)}
}

// WithName returns a copy of s published under name.
func (s ResponseSchema) WithName(name string) ResponseSchema {
	s = s.clone()
	s.Name = name
	return s
}

// IsObject reports whether the schema describes an object.
func (s ResponseSchema) IsObject() bool {
	return s.Type == ""
}

// Key returns a canonical string for the schema's structure. Two schemas with
// the same Key describe the same shape regardless of Name or field order.
func (s ResponseSchema) Key() string {
	if !s.IsObject() {
		return string(s.Type)
	}

	fields := slices.Clone(s.Fields)
	slices.SortFunc(fields, func(a, b Field) int {
		return strings.Compare(a.Name, b.Name)
	})

	var sb strings.Builder
	sb.WriteString("object{")
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(f.Name)
		if f.Optional {
			sb.WriteByte('?')
		}
		sb.WriteByte(':')
		sb.WriteString(string(f.Type))
	}
	sb.WriteByte('}')
	return sb.String()
}

// Equal reports structural identity.
func (s ResponseSchema) Equal(other ResponseSchema) bool {
	return s.Key() == other.Key()
}

func (s ResponseSchema) clone() ResponseSchema {
	s.Fields = slices.Clone(s.Fields)
	return s
}

// Of derives the schema of T.
func Of[T any]() (ResponseSchema, error) {
	return FromType(reflect.TypeFor[T]())
}

// MustOf is like Of but panics when T cannot be described. It is meant for
// package-level route declarations.
func MustOf[T any]() ResponseSchema {
	s, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// FromType derives a schema from t. Structs become objects whose fields
// follow encoding/json naming; embedded structs are flattened. Nested
// objects, slices, and maps are not supported.
func FromType(t reflect.Type) (ResponseSchema, error) {
	if t == nil {
		return ResponseSchema{}, &UnsupportedTypeError{Reason: "nil type"}
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if prim, ok := primitiveType(t); ok {
		return Primitive(prim), nil
	}
	if t.Kind() != reflect.Struct {
		return ResponseSchema{}, &UnsupportedTypeError{Type: t, Reason: "kind " + t.Kind().String() + " has no schema"}
	}

	fields, err := structFields(t, nil)
	if err != nil {
		return ResponseSchema{}, err
	}
	return ResponseSchema{Name: t.Name(), Fields: fields}, nil
}

func structFields(t reflect.Type, seen []reflect.Type) ([]Field, error) {
	if slices.Contains(seen, t) {
		return nil, &UnsupportedTypeError{Type: t, Reason: "recursive embedding"}
	}
	seen = append(seen, t)

	var fields []Field
	for i := range t.NumField() {
		sf := t.Field(i)

		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts := parseJSONTag(tag)

		if sf.Anonymous && name == "" {
			et := sf.Type
			for et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				embedded, err := structFields(et, seen)
				if err != nil {
					return nil, err
				}
				for _, f := range embedded {
					if !hasField(fields, f.Name) {
						fields = append(fields, f)
					}
				}
				continue
			}
		}

		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		ft := sf.Type
		optional := strings.Contains(opts, "omitempty") || strings.Contains(opts, "omitzero")
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
			optional = true
		}

		prim, ok := primitiveType(ft)
		if !ok {
			return nil, &UnsupportedTypeError{Type: t, Field: sf.Name, Reason: "field kind " + ft.Kind().String() + " is not a primitive"}
		}
		if strings.Contains(opts, "string") {
			prim = TypeString
		}

		if hasField(fields, name) {
			continue
		}
		fields = append(fields, Field{Name: name, Type: prim, Optional: optional})
	}
	return fields, nil
}

func primitiveType(t reflect.Type) (Type, bool) {
	switch t.Kind() {
	case reflect.String:
		return TypeString, true
	case reflect.Bool:
		return TypeBoolean, true
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return TypeInt32, true
	case reflect.Int, reflect.Int64:
		return TypeInt64, true
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return TypeUint32, true
	case reflect.Uint, reflect.Uint64:
		return TypeUint64, true
	case reflect.Float32:
		return TypeFloat, true
	case reflect.Float64:
		return TypeDouble, true
	default:
		return "", false
	}
}

func parseJSONTag(tag string) (name, opts string) {
	name, opts, _ = strings.Cut(tag, ",")
	return name, opts
}

func hasField(fields []Field, name string) bool {
	return slices.ContainsFunc(fields, func(f Field) bool { return f.Name == name })
}

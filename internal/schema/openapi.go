package schema

import (
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPI projects entity onto an OpenAPI 3 schema object. Enum fields are
// expanded from enums; unknown enums are rendered as plain strings.
func OpenAPI(entity *EntitySchema, enums *Registry) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Title = entity.name
	out.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}
	for _, f := range entity.fields {
		out.WithProperty(f.Name, fieldOpenAPI(f, enums))
		if !f.Optional {
			out.Required = append(out.Required, f.Name)
		}
	}
	return out
}

func fieldOpenAPI(f FieldSpec, enums *Registry) *openapi3.Schema {
	var s *openapi3.Schema
	switch f.Kind {
	case KindInteger:
		s = openapi3.NewInt64Schema()
	case KindFloat:
		s = openapi3.NewFloat64Schema()
	case KindString:
		s = openapi3.NewStringSchema()
	case KindBoolean:
		s = openapi3.NewBoolSchema()
	case KindDateTime:
		s = openapi3.NewDateTimeSchema()
	case KindEnum:
		s = openapi3.NewStringSchema()
		if e, ok := enums.Lookup(f.EnumName); ok {
			for _, v := range e.values {
				s.Enum = append(s.Enum, v)
			}
		}
	case KindObject:
		s = OpenAPI(f.Elem, enums)
	case KindList:
		s = openapi3.NewArraySchema().WithItems(OpenAPI(f.Elem, enums))
	default:
		s = openapi3.NewSchema()
	}

	for _, c := range f.Constraints {
		switch v := c.(type) {
		case bound:
			limit := v.limit
			if v.lower {
				s.Min = &limit
			} else {
				s.Max = &limit
			}
		case length:
			if v.max {
				n := uint64(v.n)
				s.MaxLength = &n
			} else {
				s.MinLength = uint64(v.n)
			}
		}
	}

	if f.Optional {
		switch d := f.Default.(type) {
		case nil:
			if f.Kind == KindList {
				s.Default = []any{}
			}
		case time.Time:
			s.Default = d.Format(time.RFC3339Nano)
		default:
			s.Default = d
		}
	}
	return s
}

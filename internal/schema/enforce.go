package schema

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

// Shaped is an outbound value reduced to exactly the declared fields of its
// entity. It marshals to a JSON object with keys in declaration order.
type Shaped struct {
	keys   []string
	values map[string]any
}

// Get returns the value of a declared field.
func (s *Shaped) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Keys returns the field names in output order.
func (s *Shaped) Keys() []string { return append([]string(nil), s.keys...) }

// Record converts the shaped value (recursively) back into a Record.
func (s *Shaped) Record() Record {
	out := make(Record, len(s.keys))
	for _, k := range s.keys {
		out[k] = unshape(s.values[k])
	}
	return out
}

func unshape(v any) any {
	switch t := v.(type) {
	case *Shaped:
		return t.Record()
	case []*Shaped:
		out := make([]Record, len(t))
		for i, s := range t {
			out[i] = s.Record()
		}
		return out
	}
	return v
}

// MarshalJSON writes the declared fields in order.
func (s *Shaped) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Enforcer is the single checkpoint between handler results and callers.
// It never coerces text: values are expected to be already typed, as the
// validator or a store produced them.
type Enforcer struct {
	enums *Registry
}

func NewEnforcer(enums *Registry) *Enforcer { return &Enforcer{enums: enums} }

// Enforce shapes a single candidate. Fields not declared by entity are
// dropped; a missing required field or a value of the wrong kind yields a
// *ShapeError.
func (e *Enforcer) Enforce(entity *EntitySchema, candidate any) (*Shaped, error) {
	return e.entity(RootPath, entity, candidate)
}

// EnforceList shapes every element of a list candidate. The first failing
// element voids the whole result; its index is part of the error path.
func (e *Enforcer) EnforceList(entity *EntitySchema, candidate any) ([]*Shaped, error) {
	elems, ok := asList(candidate)
	if !ok {
		return nil, &ShapeError{Entity: entity.name, Path: RootPath, Kind: InvalidType, Detail: "expected list, got " + describe(candidate)}
	}
	out := make([]*Shaped, 0, len(elems))
	for i, el := range elems {
		s, err := e.entity(indexPath("", i), entity, el)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (e *Enforcer) entity(path string, entity *EntitySchema, candidate any) (*Shaped, error) {
	src, ok := asObject(candidate)
	if !ok {
		return nil, &ShapeError{Entity: entity.name, Path: path, Kind: NotAnObject, Detail: "expected object, got " + describe(candidate)}
	}
	out := &Shaped{keys: make([]string, 0, len(entity.fields)), values: make(map[string]any, len(entity.fields))}
	for _, f := range entity.fields {
		fp := fieldPath(path, f.Name)
		raw, present := src[f.Name]
		var val any
		switch {
		case present && raw != nil:
			v, err := e.value(fp, entity, f, raw)
			if err != nil {
				return nil, err
			}
			val = v
		case f.Optional:
			val = defaultValue(f)
			if l, isList := val.([]Record); isList && len(l) == 0 {
				val = []*Shaped{}
			}
			if f.Kind == KindEnum && val != nil {
				m, err := e.enums.Resolve(f.EnumName, val)
				if err != nil {
					return nil, &ShapeError{Entity: entity.name, Path: fp, Kind: InvalidEnumValue, Detail: "default is not a member of " + f.EnumName}
				}
				val = m
			}
		case present:
			return nil, &ShapeError{Entity: entity.name, Path: fp, Kind: InvalidType, Detail: "null for required " + f.Kind.String()}
		default:
			return nil, &ShapeError{Entity: entity.name, Path: fp, Kind: MissingRequired, Detail: "required field absent"}
		}
		out.keys = append(out.keys, f.Name)
		out.values[f.Name] = val
	}
	return out, nil
}

func (e *Enforcer) value(path string, entity *EntitySchema, f FieldSpec, raw any) (any, error) {
	mismatch := func(kind ErrorKind, detail string) error {
		return &ShapeError{Entity: entity.name, Path: path, Kind: kind, Detail: detail}
	}
	var val any
	switch f.Kind {
	case KindEnum:
		m, err := e.enums.Resolve(f.EnumName, raw)
		if err != nil {
			return nil, mismatch(InvalidEnumValue, "not a member of "+f.EnumName)
		}
		return m, nil
	case KindObject:
		return e.entity(path, f.Elem, raw)
	case KindList:
		elems, ok := asList(raw)
		if !ok {
			return nil, mismatch(InvalidType, "expected list, got "+describe(raw))
		}
		out := make([]*Shaped, 0, len(elems))
		for i, el := range elems {
			s, err := e.entity(indexPath(path, i), f.Elem, el)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case KindDateTime:
		t, ok := raw.(time.Time)
		if !ok {
			return nil, mismatch(InvalidType, "expected time.Time, got "+describe(raw))
		}
		val = t
	default:
		v, err := coerceScalar(f.Kind, raw, Strict)
		if err != nil {
			var ce coerceError
			if errors.As(err, &ce) {
				return nil, mismatch(ce.kind, ce.detail)
			}
			return nil, mismatch(InvalidType, err.Error())
		}
		val = v
	}
	for _, c := range f.Constraints {
		if !c.holds(val) {
			return nil, mismatch(ConstraintViolated, "violates "+c.Describe())
		}
	}
	return val, nil
}

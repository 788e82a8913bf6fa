package schema

import (
	"fmt"
	"strconv"
)

// EnumType is a named, closed set of symbolic values. Membership is an exact,
// case-sensitive match.
type EnumType struct {
	name   string
	values []string
	set    map[string]struct{}
}

// NewEnum builds an EnumType. Empty names, empty sets and duplicated values
// are programming errors.
func NewEnum(name string, values ...string) (*EnumType, error) {
	if name == "" {
		return nil, fmt.Errorf("enum: empty name")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("enum %s: no values", name)
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := set[v]; dup {
			return nil, fmt.Errorf("enum %s: duplicate value %q", name, v)
		}
		set[v] = struct{}{}
	}
	return &EnumType{name: name, values: append([]string(nil), values...), set: set}, nil
}

// MustEnum is like NewEnum but panics on error.
func MustEnum(name string, values ...string) *EnumType {
	e, err := NewEnum(name, values...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *EnumType) Name() string { return e.name }

// Values returns the declared values in declaration order.
func (e *EnumType) Values() []string { return append([]string(nil), e.values...) }

func (e *EnumType) Has(v string) bool {
	_, ok := e.set[v]
	return ok
}

// Member is a resolved enum value.
type Member struct {
	Enum  string
	Value string
}

func (m Member) String() string { return m.Value }

// MarshalJSON renders the bare symbolic value.
func (m Member) MarshalJSON() ([]byte, error) { return []byte(strconv.Quote(m.Value)), nil }

// Registry holds every enum known to the process. It is built once at
// startup and never mutated.
type Registry struct {
	enums map[string]*EnumType
}

// NewRegistry indexes enums by name.
func NewRegistry(enums ...*EnumType) (*Registry, error) {
	r := &Registry{enums: make(map[string]*EnumType, len(enums))}
	for _, e := range enums {
		if e == nil {
			return nil, fmt.Errorf("registry: nil enum")
		}
		if _, dup := r.enums[e.name]; dup {
			return nil, fmt.Errorf("registry: duplicate enum %s", e.name)
		}
		r.enums[e.name] = e
	}
	return r, nil
}

// Lookup returns the enum registered under name.
func (r *Registry) Lookup(name string) (*EnumType, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.enums[name]
	return e, ok
}

// Resolve maps raw onto a member of the named enum. Anything that is not one
// of the declared strings fails with InvalidEnumValue; no case folding or
// trimming is attempted.
func (r *Registry) Resolve(enumName string, raw any) (Member, error) {
	e, ok := r.Lookup(enumName)
	if !ok {
		return Member{}, fmt.Errorf("registry: unknown enum %s", enumName)
	}
	s, isString := raw.(string)
	if m, isMember := raw.(Member); isMember && m.Enum == enumName {
		s, isString = m.Value, true
	}
	if !isString || !e.Has(s) {
		return Member{}, FieldErrors{{
			Path:   RootPath,
			Kind:   InvalidEnumValue,
			Detail: fmt.Sprintf("value must be one of %q", e.values),
		}}
	}
	return Member{Enum: enumName, Value: s}, nil
}

// Check verifies that every enum field reachable from entity references a
// registered enum.
func (r *Registry) Check(entity *EntitySchema) error {
	for _, f := range entity.fields {
		switch f.Kind {
		case KindEnum:
			if _, ok := r.Lookup(f.EnumName); !ok {
				return fmt.Errorf("entity %s: field %s references unknown enum %s", entity.name, f.Name, f.EnumName)
			}
			if f.Default != nil {
				if _, err := r.Resolve(f.EnumName, f.Default); err != nil {
					return fmt.Errorf("entity %s: field %s default: %w", entity.name, f.Name, err)
				}
			}
		case KindObject, KindList:
			if err := r.Check(f.Elem); err != nil {
				return err
			}
		}
	}
	return nil
}

package schema

import (
	"fmt"
	"reflect"
)

// Kind is the declared type of a field.
type Kind int

const (
	KindInteger Kind = iota + 1
	KindFloat
	KindString
	KindDateTime
	KindBoolean
	KindEnum
	KindObject
	KindList
)

var kindNames = map[Kind]string{
	KindInteger:  "integer",
	KindFloat:    "float",
	KindString:   "string",
	KindDateTime: "datetime",
	KindBoolean:  "boolean",
	KindEnum:     "enum",
	KindObject:   "object",
	KindList:     "list",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Record is a validated entity instance: field name to typed value.
//
// Values are int64, float64, string, bool, time.Time, Member, Record or
// []Record depending on the declared kind.
type Record map[string]any

// FieldSpec declares a single field of an entity.
type FieldSpec struct {
	Name        string
	Kind        Kind
	EnumName    string        // KindEnum only
	Elem        *EntitySchema // KindObject and KindList only
	Optional    bool
	Default     any // used only when Optional and the field is absent
	Constraints []Constraint
}

func Int(name string) FieldSpec      { return FieldSpec{Name: name, Kind: KindInteger} }
func Float(name string) FieldSpec    { return FieldSpec{Name: name, Kind: KindFloat} }
func String(name string) FieldSpec   { return FieldSpec{Name: name, Kind: KindString} }
func DateTime(name string) FieldSpec { return FieldSpec{Name: name, Kind: KindDateTime} }
func Bool(name string) FieldSpec     { return FieldSpec{Name: name, Kind: KindBoolean} }

// Enum declares a field whose value must be a member of the named enum.
func Enum(name, enumName string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindEnum, EnumName: enumName}
}

// Object declares a nested entity.
func Object(name string, elem *EntitySchema) FieldSpec {
	return FieldSpec{Name: name, Kind: KindObject, Elem: elem}
}

// List declares a sequence of nested entities.
func List(name string, elem *EntitySchema) FieldSpec {
	return FieldSpec{Name: name, Kind: KindList, Elem: elem}
}

// OrDefault marks the field optional. def is substituted when the field is
// absent; a nil def on a list field means an empty list.
func (f FieldSpec) OrDefault(def any) FieldSpec {
	f.Optional = true
	f.Default = def
	return f
}

// With attaches constraints, checked in order after coercion.
func (f FieldSpec) With(cs ...Constraint) FieldSpec {
	f.Constraints = append(append([]Constraint(nil), f.Constraints...), cs...)
	return f
}

// EntitySchema is an ordered, immutable set of field declarations.
//
// Nested fields point at schemas that were already fully built, so the
// resulting graph is always acyclic.
type EntitySchema struct {
	name   string
	fields []FieldSpec
	index  map[string]int
}

// NewEntity builds an EntitySchema. Any error is a programming mistake and is
// expected to stop the process at startup.
func NewEntity(name string, fields ...FieldSpec) (*EntitySchema, error) {
	if name == "" {
		return nil, fmt.Errorf("entity: empty name")
	}
	e := &EntitySchema{name: name, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("entity %s: field #%d has no name", name, i)
		}
		if _, dup := e.index[f.Name]; dup {
			return nil, fmt.Errorf("entity %s: duplicate field %s", name, f.Name)
		}
		if err := checkField(f); err != nil {
			return nil, fmt.Errorf("entity %s: field %s: %w", name, f.Name, err)
		}
		if f.Optional && f.Default != nil {
			def, err := normalizeDefault(f)
			if err != nil {
				return nil, fmt.Errorf("entity %s: field %s: %w", name, f.Name, err)
			}
			f.Default = def
		}
		f.Constraints = append([]Constraint(nil), f.Constraints...)
		e.index[f.Name] = len(e.fields)
		e.fields = append(e.fields, f)
	}
	return e, nil
}

// MustEntity is like NewEntity but panics on error.
func MustEntity(name string, fields ...FieldSpec) *EntitySchema {
	e, err := NewEntity(name, fields...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *EntitySchema) Name() string { return e.name }

// Fields returns the declarations in order. The slice is a copy.
func (e *EntitySchema) Fields() []FieldSpec { return append([]FieldSpec(nil), e.fields...) }

// FieldByName looks a declaration up by name.
func (e *EntitySchema) FieldByName(name string) (FieldSpec, bool) {
	i, ok := e.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return e.fields[i], true
}

func checkField(f FieldSpec) error {
	if _, ok := kindNames[f.Kind]; !ok {
		return fmt.Errorf("unknown kind %d", int(f.Kind))
	}
	switch f.Kind {
	case KindEnum:
		if f.EnumName == "" {
			return fmt.Errorf("enum field without enum name")
		}
	case KindObject, KindList:
		if f.Elem == nil {
			return fmt.Errorf("%s field without element schema", f.Kind)
		}
	}
	for _, c := range f.Constraints {
		if c == nil {
			return fmt.Errorf("nil constraint")
		}
		if !c.appliesTo(f.Kind) {
			return fmt.Errorf("constraint %s is not applicable to %s", c.Describe(), f.Kind)
		}
	}
	return nil
}

// normalizeDefault converts a declared default to the field's typed form.
// Enum defaults are checked against the registry in Registry.Check.
func normalizeDefault(f FieldSpec) (any, error) {
	switch f.Kind {
	case KindEnum:
		return f.Default, nil
	case KindObject:
		return nil, fmt.Errorf("object fields cannot declare a default")
	case KindList:
		rv := reflect.ValueOf(f.Default)
		if rv.Kind() != reflect.Slice || rv.Len() != 0 {
			return nil, fmt.Errorf("list default must be an empty slice")
		}
		return nil, nil
	}
	v, err := coerceScalar(f.Kind, f.Default, Strict)
	if err != nil {
		return nil, fmt.Errorf("invalid default: %w", err)
	}
	for _, c := range f.Constraints {
		if !c.holds(v) {
			return nil, fmt.Errorf("default violates %s", c.Describe())
		}
	}
	return v, nil
}

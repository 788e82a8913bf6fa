package schema

import (
	"errors"
	"fmt"
)

// Validator turns untyped trees (as produced by a JSON or YAML decoder) into
// Records. It holds no mutable state and is safe for concurrent use.
type Validator struct {
	enums    *Registry
	coercion Coercion
}

// Option configures a Validator.
type Option func(*Validator)

// WithCoercion selects loose or strict scalar coercion.
func WithCoercion(c Coercion) Option {
	return func(v *Validator) { v.coercion = c }
}

// NewValidator returns a Validator resolving enum fields against enums.
func NewValidator(enums *Registry, opts ...Option) *Validator {
	v := &Validator{enums: enums, coercion: Loose}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Coercion reports the configured coercion mode.
func (v *Validator) Coercion() Coercion { return v.coercion }

// Validate checks raw against entity. On success every declared field is
// present in the returned Record, typed per its kind, and nothing else is.
// On failure the error is FieldErrors listing every offending value.
func (v *Validator) Validate(entity *EntitySchema, raw any) (Record, error) {
	rec, errs := v.entity(RootPath, entity, raw)
	if len(errs) > 0 {
		return nil, errs
	}
	return rec, nil
}

// Item is the outcome of validating one element of a batch.
type Item struct {
	Index  int
	Value  Record      // nil when Errors is non-empty
	Errors FieldErrors // paths are prefixed with the item index
}

func (it Item) Valid() bool { return len(it.Errors) == 0 }

// Batch holds per-item outcomes in input order.
type Batch []Item

// Valid reports whether every item passed.
func (b Batch) Valid() bool {
	for _, it := range b {
		if !it.Valid() {
			return false
		}
	}
	return true
}

// Records returns the values of the valid items.
func (b Batch) Records() []Record {
	out := make([]Record, 0, len(b))
	for _, it := range b {
		if it.Valid() {
			out = append(out, it.Value)
		}
	}
	return out
}

// Err flattens item failures into one FieldErrors, or nil.
func (b Batch) Err() error {
	var all FieldErrors
	for _, it := range b {
		all = append(all, it.Errors...)
	}
	if len(all) == 0 {
		return nil
	}
	return all
}

// ValidateBatch validates each element of the list raw independently.
// The error is non-nil only when raw itself is not a list.
func (v *Validator) ValidateBatch(entity *EntitySchema, raw any) (Batch, error) {
	elems, ok := asList(raw)
	if !ok {
		return nil, FieldErrors{{Path: RootPath, Kind: InvalidType, Detail: "expected list, got " + describe(raw)}}
	}
	out := make(Batch, len(elems))
	for i, el := range elems {
		rec, errs := v.entity(indexPath("", i), entity, el)
		out[i] = Item{Index: i, Value: rec, Errors: errs}
		if len(errs) > 0 {
			out[i].Value = nil
		}
	}
	return out, nil
}

// Param coerces a single textual parameter (query string, path segment)
// against f. Text is always allowed to carry numbers and booleans, whatever
// the configured coercion mode. present=false applies the field default.
func (v *Validator) Param(f FieldSpec, raw string, present bool) (any, error) {
	path := fieldPath("", f.Name)
	if !present {
		if f.Optional {
			val, errs := v.defaultFor(path, f)
			if len(errs) > 0 {
				return nil, errs
			}
			return val, nil
		}
		return nil, FieldErrors{{Path: path, Kind: MissingRequired, Detail: "field required"}}
	}
	val, errs := v.value(path, f, raw, Loose)
	if len(errs) > 0 {
		return nil, errs
	}
	return val, nil
}

func (v *Validator) entity(path string, entity *EntitySchema, raw any) (Record, FieldErrors) {
	src, ok := asObject(raw)
	if !ok {
		return nil, FieldErrors{{Path: path, Kind: NotAnObject, Detail: "expected object, got " + describe(raw)}}
	}
	out := make(Record, len(entity.fields))
	var errs FieldErrors
	for _, f := range entity.fields {
		fp := fieldPath(path, f.Name)
		rv, present := src[f.Name]
		if !present || rv == nil {
			switch {
			case f.Optional:
				def, derrs := v.defaultFor(fp, f)
				if len(derrs) > 0 {
					errs = append(errs, derrs...)
					continue
				}
				out[f.Name] = def
			case present:
				errs = append(errs, FieldError{Path: fp, Kind: InvalidType, Detail: "expected " + f.Kind.String() + ", got null"})
			default:
				errs = append(errs, FieldError{Path: fp, Kind: MissingRequired, Detail: "field required"})
			}
			continue
		}
		val, ferrs := v.value(fp, f, rv, v.coercion)
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		out[f.Name] = val
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (v *Validator) value(path string, f FieldSpec, raw any, mode Coercion) (any, FieldErrors) {
	var val any
	switch f.Kind {
	case KindEnum:
		m, err := v.enums.Resolve(f.EnumName, raw)
		if err != nil {
			return nil, at(path, err)
		}
		return m, nil
	case KindObject:
		rec, errs := v.entity(path, f.Elem, raw)
		if len(errs) > 0 {
			return nil, errs
		}
		return rec, nil
	case KindList:
		elems, ok := asList(raw)
		if !ok {
			return nil, FieldErrors{{Path: path, Kind: InvalidType, Detail: "expected list, got " + describe(raw)}}
		}
		recs := make([]Record, 0, len(elems))
		var errs FieldErrors
		for i, el := range elems {
			rec, ferrs := v.entity(indexPath(path, i), f.Elem, el)
			if len(ferrs) > 0 {
				errs = append(errs, ferrs...)
				continue
			}
			recs = append(recs, rec)
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return recs, nil
	default:
		c, err := coerceScalar(f.Kind, raw, mode)
		if err != nil {
			return nil, at(path, err)
		}
		val = c
	}
	var errs FieldErrors
	for _, c := range f.Constraints {
		if !c.holds(val) {
			errs = append(errs, FieldError{
				Path:       path,
				Kind:       ConstraintViolated,
				Detail:     fmt.Sprintf("value %v violates %s", val, c.Describe()),
				Constraint: c.Describe(),
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return val, nil
}

// at converts a leaf error into FieldErrors located at path.
func at(path string, err error) FieldErrors {
	var ce coerceError
	if errors.As(err, &ce) {
		return FieldErrors{{Path: path, Kind: ce.kind, Detail: ce.detail}}
	}
	if fe, ok := AsFieldErrors(err); ok {
		out := make(FieldErrors, len(fe))
		for i, e := range fe {
			e.Path = path
			out[i] = e
		}
		return out
	}
	return FieldErrors{{Path: path, Kind: InvalidType, Detail: err.Error()}}
}

// defaultFor returns the typed default of an optional field. Specs built by
// NewEntity already hold typed scalars; enum defaults become Members and a
// standalone FieldSpec gets its default converted here.
func (v *Validator) defaultFor(path string, f FieldSpec) (any, FieldErrors) {
	if f.Default == nil {
		return defaultValue(f), nil
	}
	return v.value(path, f, f.Default, Strict)
}

func defaultValue(f FieldSpec) any {
	if f.Kind == KindList && f.Default == nil {
		return []Record{}
	}
	return f.Default
}

func asObject(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	}
	return nil, false
}

func asList(raw any) ([]any, bool) {
	switch l := raw.(type) {
	case []any:
		return l, true
	case []Record:
		out := make([]any, len(l))
		for i, r := range l {
			out[i] = r
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, r := range l {
			out[i] = r
		}
		return out, true
	}
	return nil, false
}

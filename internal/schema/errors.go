package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies a single field failure.
type ErrorKind string

const (
	MissingRequired    ErrorKind = "missing_required"
	InvalidType        ErrorKind = "invalid_type"
	InvalidFormat      ErrorKind = "invalid_format"
	InvalidEnumValue   ErrorKind = "invalid_enum_value"
	ConstraintViolated ErrorKind = "constraint_violated"
	NotAnObject        ErrorKind = "not_an_object"
)

// RootPath is the path of the value being validated itself.
const RootPath = "/"

// FieldError describes one offending value.
//
// Path is a JSON pointer into the validated tree, e.g. "/2/price" for the
// price of the third item of a batch or "/degree/0/type_degree" for a nested
// enum. Constraint carries the violated constraint description (e.g. "ge=0")
// and is only set for ConstraintViolated.
type FieldError struct {
	Path       string    `json:"path"`
	Kind       ErrorKind `json:"kind"`
	Detail     string    `json:"detail"`
	Constraint string    `json:"constraint,omitempty"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Detail)
}

// FieldErrors is a client validation failure. It implements error.
type FieldErrors []FieldError

// Error summarizes the first few entries.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(fe)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", fe[i].Kind, fe[i].Path)
	}
	if len(fe) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(fe))
	}
	return b.String()
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	if err == nil {
		return nil, false
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ErrResponseShape marks a handler result that violates its declared
// response schema. It is always a server-side defect.
var ErrResponseShape = errors.New("response does not match declared schema")

// ShapeError reports the first outbound value that failed enforcement.
type ShapeError struct {
	Entity string
	Path   string
	Kind   ErrorKind
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: entity %s, %s at %s: %s", ErrResponseShape, e.Entity, e.Kind, e.Path, e.Detail)
}

func (e *ShapeError) Unwrap() error { return ErrResponseShape }

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// joinPath appends a JSON pointer token to base. An empty token returns base.
func joinPath(base, token string) string {
	if token == "" {
		if base == "" {
			return RootPath
		}
		return base
	}
	if base == "" || base == RootPath {
		return "/" + token
	}
	return base + "/" + token
}

func fieldPath(base, name string) string { return joinPath(base, pointerEscaper.Replace(name)) }

func indexPath(base string, i int) string { return joinPath(base, strconv.Itoa(i)) }

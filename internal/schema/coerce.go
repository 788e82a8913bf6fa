package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Coercion selects how scalar input is interpreted.
type Coercion int

const (
	// Loose accepts a string holding a well-formed number (or boolean literal)
	// for numeric (or boolean) fields, and integral floats for integers.
	Loose Coercion = iota
	// Strict only accepts values already of the declared JSON type. Integral
	// floats are still accepted for integer fields.
	Strict
)

// ParseCoercion maps a configuration value onto a Coercion.
func ParseCoercion(s string) (Coercion, error) {
	switch s {
	case "", "loose":
		return Loose, nil
	case "strict":
		return Strict, nil
	}
	return Loose, fmt.Errorf("unknown coercion mode %q", s)
}

func (c Coercion) String() string {
	if c == Strict {
		return "strict"
	}
	return "loose"
}

// dateTimeLayouts are tried in order. Layouts without a zone are read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

type coerceError struct {
	kind   ErrorKind
	detail string
}

func (e coerceError) Error() string { return e.detail }

func typeError(want Kind, got any) coerceError {
	return coerceError{kind: InvalidType, detail: fmt.Sprintf("expected %s, got %s", want, describe(got))}
}

// coerceScalar interprets raw as a value of kind k. Only scalar kinds are
// handled here; enums, objects and lists are resolved by the validator.
func coerceScalar(k Kind, raw any, mode Coercion) (any, error) {
	switch k {
	case KindInteger:
		return toInt(raw, mode)
	case KindFloat:
		return toFloat(raw, mode)
	case KindString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return nil, typeError(k, raw)
	case KindBoolean:
		return toBool(raw, mode)
	case KindDateTime:
		return toDateTime(raw)
	}
	return nil, fmt.Errorf("kind %s is not a scalar", k)
}

func toInt(raw any, mode Coercion) (any, error) {
	switch n := raw.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		return numberTextToInt(string(n))
	case string:
		if mode == Loose {
			if v, err := numberTextToInt(n); err == nil {
				return v, nil
			}
		}
	}
	return nil, typeError(KindInteger, raw)
}

func uintToInt(u uint64) (any, error) {
	if u > math.MaxInt64 {
		return nil, coerceError{kind: InvalidType, detail: "integer overflows int64"}
	}
	return int64(u), nil
}

func floatToInt(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, coerceError{kind: InvalidType, detail: fmt.Sprintf("expected integer, got fractional number %v", f)}
	}
	return int64(f), nil
}

func numberTextToInt(s string) (any, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return i, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil, coerceError{kind: InvalidType, detail: fmt.Sprintf("integer %s overflows int64", s)}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, coerceError{kind: InvalidType, detail: fmt.Sprintf("expected integer, got %q", s)}
	}
	return floatToInt(f)
}

func toFloat(raw any, mode Coercion) (any, error) {
	var f float64
	switch n := raw.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case json.Number:
		v, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return nil, typeError(KindFloat, raw)
		}
		f = v
	case string:
		if mode != Loose {
			return nil, typeError(KindFloat, raw)
		}
		v, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil, typeError(KindFloat, raw)
		}
		f = v
	default:
		i, err := toInt(raw, Strict)
		if err != nil {
			return nil, typeError(KindFloat, raw)
		}
		f = float64(i.(int64))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, coerceError{kind: InvalidType, detail: "expected finite number"}
	}
	return f, nil
}

func toBool(raw any, mode Coercion) (any, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	if mode == Loose {
		switch v := raw.(type) {
		case string:
			switch v {
			case "true", "1":
				return true, nil
			case "false", "0":
				return false, nil
			}
		case json.Number:
			switch v {
			case "1":
				return true, nil
			case "0":
				return false, nil
			}
		}
	}
	return nil, typeError(KindBoolean, raw)
}

func toDateTime(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return nil, coerceError{kind: InvalidFormat, detail: fmt.Sprintf("%q is not an ISO-8601 datetime", v)}
	}
	return nil, typeError(KindDateTime, raw)
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case map[string]any, Record:
		return "object"
	case []any, []Record:
		return "list"
	}
	return fmt.Sprintf("%T", v)
}

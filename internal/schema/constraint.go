package schema

import (
	"strconv"
	"unicode/utf8"
)

// Constraint is a predicate evaluated on a field value after coercion.
type Constraint interface {
	// Describe returns a short, stable description such as "ge=0".
	Describe() string
	appliesTo(k Kind) bool
	holds(v any) bool
}

type bound struct {
	limit float64
	lower bool
}

// Min is an inclusive numeric lower bound (value >= limit).
func Min(limit float64) Constraint { return bound{limit: limit, lower: true} }

// Max is an inclusive numeric upper bound (value <= limit).
func Max(limit float64) Constraint { return bound{limit: limit} }

func (b bound) Describe() string {
	op := "le="
	if b.lower {
		op = "ge="
	}
	return op + strconv.FormatFloat(b.limit, 'g', -1, 64)
}

func (b bound) appliesTo(k Kind) bool { return k == KindInteger || k == KindFloat }

func (b bound) holds(v any) bool {
	var f float64
	switch n := v.(type) {
	case int64:
		f = float64(n)
	case float64:
		f = n
	default:
		return false
	}
	if b.lower {
		return f >= b.limit
	}
	return f <= b.limit
}

type length struct {
	n   int
	max bool
}

// MaxLength caps a string at n characters (runes, not bytes).
func MaxLength(n int) Constraint { return length{n: n, max: true} }

// MinLength requires at least n characters.
func MinLength(n int) Constraint { return length{n: n} }

func (l length) Describe() string {
	if l.max {
		return "max_length=" + strconv.Itoa(l.n)
	}
	return "min_length=" + strconv.Itoa(l.n)
}

func (l length) appliesTo(k Kind) bool { return k == KindString }

func (l length) holds(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	c := utf8.RuneCountInString(s)
	if l.max {
		return c <= l.n
	}
	return c >= l.n
}

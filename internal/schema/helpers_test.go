package schema

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

type fixtureSchemas struct {
	enums  *Registry
	degree *EntitySchema
	user   *EntitySchema
	trade  *EntitySchema
}

func newFixtureSchemas(t *testing.T) fixtureSchemas {
	t.Helper()
	enums, err := NewRegistry(MustEnum("degree_type", "newbie", "expert"))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	degree := MustEntity("Degree",
		Int("id"),
		DateTime("created_at"),
		Enum("type_degree", "degree_type"),
	)
	user := MustEntity("User",
		Int("id"),
		String("role"),
		String("name"),
		List("degree", degree).OrDefault([]any{}),
	)
	trade := MustEntity("Trade",
		Int("id"),
		Int("user_id"),
		String("currency").With(MaxLength(5)),
		String("side"),
		Float("price").With(Min(0)),
		Float("amount"),
	)
	if err := enums.Check(user); err != nil {
		t.Fatalf("check: %v", err)
	}
	return fixtureSchemas{enums: enums, degree: degree, user: user, trade: trade}
}

// decode parses a JSON literal the same way request bodies are parsed.
func decode(t *testing.T, s string) any {
	t.Helper()
	v, err := DecodeJSON(strings.NewReader(s))
	if err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return v
}

func tradeJSON(fields map[string]any) string {
	base := map[string]any{
		"id": 1, "user_id": 1, "currency": "BTC", "side": "buy", "price": 123, "amount": 2.12,
	}
	for k, v := range fields {
		if v == nil {
			delete(base, k)
			continue
		}
		base[k] = v
	}
	b, _ := json.Marshal(base)
	return string(b)
}

func kinds(errs FieldErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = string(e.Kind) + "@" + e.Path
	}
	return out
}

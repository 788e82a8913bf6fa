package schema

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// DecodeJSON reads exactly one JSON value from r into an untyped tree.
// Numbers are kept as json.Number so integer fields never lose precision
// through float64.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: unexpected data after top-level value")
	}
	return v, nil
}

// EncodeJSON marshals a Record (or any tree of records) for storage.
func EncodeJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

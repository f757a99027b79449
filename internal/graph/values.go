package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Property value convention, used by both the DOT codec and the SQLite
// store: every property value is JSON-encoded into a string on save and
// JSON-decoded on load. The convention is reversible for every JSON-
// representable value, with a documented numeric narrowing: integral
// numbers are restored as int64 and decimal numbers as float64. Values the
// encoding cannot represent (channels, funcs, cyclic structures) fail the
// save loudly; nothing is silently stringified. The DOT path wraps the
// encoded text in one additional strconv quoting layer in transit (see
// Vertex.Attributes); the SQLite path stores it as-is.

// EncodeValue serializes a property value.
func EncodeValue(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("value %v is not representable: %w", v, err)
	}
	return string(data), nil
}

// DecodeValue restores a property value encoded by EncodeValue.
func DecodeValue(s string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid encoded value %q: %w", s, err)
	}
	return restoreNumbers(raw), nil
}

// restoreNumbers converts json.Number values (including those nested in
// objects and arrays) to int64 where integral, float64 otherwise.
func restoreNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	case map[string]any:
		for k, e := range x {
			x[k] = restoreNumbers(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = restoreNumbers(e)
		}
		return x
	default:
		return v
	}
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValueBag is the mapping of sub-variable key to raw value inside one
// timestep. Upstream sends it as a JSON object; key order is preserved so
// the aggregation fallback "first value in the bag" is deterministic rather
// than an accident of map iteration.
type ValueBag struct {
	keys   []string
	values map[string]any
}

// NewValueBag builds a bag from ordered key/value pairs.
func NewValueBag(pairs ...any) ValueBag {
	bag := ValueBag{values: make(map[string]any, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		bag.keys = append(bag.keys, key)
		bag.values[key] = pairs[i+1]
	}
	return bag
}

// Len returns the number of entries.
func (b ValueBag) Len() int { return len(b.keys) }

// Keys returns the sub-variable keys in upstream order.
func (b ValueBag) Keys() []string { return b.keys }

// Get returns the raw value for key. The second result reports whether the
// key is present with a non-nil value.
func (b ValueBag) Get(key string) (any, bool) {
	v, ok := b.values[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// First returns the first value in upstream order, or nil for an empty bag.
func (b ValueBag) First() any {
	if len(b.keys) == 0 {
		return nil
	}
	return b.values[b.keys[0]]
}

// Set appends or replaces an entry, keeping insertion order for new keys.
func (b *ValueBag) Set(key string, value any) {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

// UnmarshalJSON decodes a JSON object while recording key order. Scalar
// values decode to string, float64, bool or nil; nested values are kept as
// their default decoding.
func (b *ValueBag) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("value bag: expected object, got %v", tok)
	}

	*b = ValueBag{values: make(map[string]any)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("value bag: non-string key %v", keyTok)
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if num, ok := raw.(json.Number); ok {
			if f, err := num.Float64(); err == nil {
				raw = f
			} else {
				raw = num.String()
			}
		}
		b.Set(key, raw)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON writes the bag back out in insertion order.
func (b ValueBag) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, key := range b.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(b.values[key])
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

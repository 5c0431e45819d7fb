package phpserial

import (
	"fmt"
	"math"

	"github.com/francoispqt/gojay"
)

// jsonList renders a list array as JSON array
type jsonList struct {
	m *Map
}

func (l jsonList) IsNil() bool {
	return l.m == nil
}

func (l jsonList) MarshalJSONArray(enc *gojay.Encoder) {
	for _, entry := range l.m.Entries() {
		v := entry.Value
		switch v.kind {
		case NullKind:
			enc.AddNull()
		case BoolKind:
			enc.AddBool(v.b)
		case IntKind:
			enc.AddInt64(v.i)
		case FloatKind:
			if isJSONNumber(v.f) {
				enc.AddFloat64(v.f)
			} else {
				enc.AddString(formatFloat(v.f))
			}
		case StringKind:
			enc.AddString(v.s)
		case MapKind:
			if v.m.Len() > 0 && v.m.IsList() {
				enc.AddArray(jsonList{m: v.m})
			} else {
				enc.AddObject(v.m)
			}
		}
	}
}

// IsNil implements gojay.MarshalerJSONObject
func (m *Map) IsNil() bool {
	return m == nil
}

// MarshalJSONObject renders array as JSON object, integer keys are rendered as strings
func (m *Map) MarshalJSONObject(enc *gojay.Encoder) {
	for _, entry := range m.Entries() {
		key := entry.Key.String()
		v := entry.Value
		switch v.kind {
		case NullKind:
			enc.NullKey(key)
		case BoolKind:
			enc.BoolKey(key, v.b)
		case IntKind:
			enc.Int64Key(key, v.i)
		case FloatKind:
			if isJSONNumber(v.f) {
				enc.Float64Key(key, v.f)
			} else {
				enc.StringKey(key, formatFloat(v.f))
			}
		case StringKind:
			enc.StringKey(key, v.s)
		case MapKind:
			if v.m.Len() > 0 && v.m.IsList() {
				enc.ArrayKey(key, jsonList{m: v.m})
			} else {
				enc.ObjectKey(key, v.m)
			}
		}
	}
}

// MarshalJSON renders array as JSON, non empty lists become JSON arrays
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	if m.Len() > 0 && m.IsList() {
		return gojay.MarshalJSONArray(jsonList{m: m})
	}
	return gojay.MarshalJSONObject(m)
}

// MarshalJSON renders value as JSON
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NullKind:
		return []byte("null"), nil
	case FloatKind:
		if !isJSONNumber(v.f) {
			return gojay.Marshal(formatFloat(v.f))
		}
		return gojay.Marshal(v.f)
	case MapKind:
		return v.m.MarshalJSON()
	}
	return gojay.Marshal(v.Interface())
}

// NKeys implements gojay.UnmarshalerJSONObject
func (m *Map) NKeys() int {
	return 0
}

// UnmarshalJSONObject reads JSON object keys in document order, nested values are decoded
// as plain Go values, integral numbers become integers
func (m *Map) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var raw interface{}
	if err := dec.Interface(&raw); err != nil {
		return err
	}
	value, err := ValueOf(fromJSON(raw), WithKeyPolicy(NormalizeKeys))
	if err != nil {
		return fmt.Errorf("%v: %w", key, err)
	}
	m.Put(StringKey(key).normalize(), value)
	return nil
}

// FromJSON decodes JSON object into an array preserving top level key order
func FromJSON(data []byte) (*Map, error) {
	result := NewMap()
	if err := gojay.UnmarshalJSONObject(data, result); err != nil {
		return nil, err
	}
	return result, nil
}

func fromJSON(raw interface{}) interface{} {
	switch actual := raw.(type) {
	case float64:
		if actual == math.Trunc(actual) && math.Abs(actual) < 1<<53 {
			return int64(actual)
		}
		return actual
	case []interface{}:
		for i := range actual {
			actual[i] = fromJSON(actual[i])
		}
		return actual
	case map[string]interface{}:
		for k, v := range actual {
			actual[k] = fromJSON(v)
		}
		return actual
	}
	return raw
}

func isJSONNumber(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

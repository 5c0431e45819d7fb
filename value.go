package phpserial

import (
	"math"
	"strconv"
)

// Kind represents a serialized value kind
type Kind int

const (
	// NullKind represents N;
	NullKind Kind = iota
	// BoolKind represents b:0; and b:1;
	BoolKind
	// IntKind represents i:<int>;
	IntKind
	// FloatKind represents d:<float>;
	FloatKind
	// StringKind represents s:<len>:"<payload>";
	StringKind
	// MapKind represents a:<count>:{...}
	MapKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case MapKind:
		return "array"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Key represents an array key, either a string or an integer
type Key struct {
	isInt bool
	i     int64
	s     string
}

// StringKey creates a string key
func StringKey(s string) Key {
	return Key{s: s}
}

// IntKey creates an integer key
func IntKey(i int64) Key {
	return Key{isInt: true, i: i}
}

// IsInt returns true if key is an integer key
func (k Key) IsInt() bool {
	return k.isInt
}

// Int returns integer key value
func (k Key) Int() int64 {
	return k.i
}

// String returns key text, integer keys are formatted in base 10
func (k Key) String() string {
	if k.isInt {
		return strconv.FormatInt(k.i, 10)
	}
	return k.s
}

// Interface returns key as int64 or string
func (k Key) Interface() interface{} {
	if k.isInt {
		return k.i
	}
	return k.s
}

// normalize converts canonical decimal string keys to integer keys, the way PHP stores them
func (k Key) normalize() Key {
	if k.isInt || k.s == "" || len(k.s) > 20 {
		return k
	}
	s := k.s
	digits := s
	if s[0] == '-' {
		digits = s[1:]
	}
	if digits == "" || (digits[0] == '0' && len(s) > 1) {
		return k
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return k
		}
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return k
	}
	return IntKey(i)
}

// Value represents a decoded value
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	m    *Map
}

// Null returns null value
func Null() Value {
	return Value{}
}

// Bool returns boolean value
func Bool(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

// Int returns integer value
func Int(i int64) Value {
	return Value{kind: IntKind, i: i}
}

// Float returns float value
func Float(f float64) Value {
	return Value{kind: FloatKind, f: f}
}

// String returns string value
func String(s string) Value {
	return Value{kind: StringKind, s: s}
}

// MapValue returns array value, nil map is treated as an empty array
func MapValue(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: MapKind, m: m}
}

// Kind returns value kind
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns true for null value
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// Bool returns boolean value
func (v Value) Bool() bool {
	return v.b
}

// Int returns integer value
func (v Value) Int() int64 {
	return v.i
}

// Float returns float value
func (v Value) Float() float64 {
	return v.f
}

// Str returns string value
func (v Value) Str() string {
	return v.s
}

// Map returns array value or nil if value is not an array
func (v Value) Map() *Map {
	return v.m
}

// Interface returns plain Go representation: nil, bool, int64, float64, string or the array form returned by Map.Interface
func (v Value) Interface() interface{} {
	switch v.kind {
	case BoolKind:
		return v.b
	case IntKind:
		return v.i
	case FloatKind:
		return v.f
	case StringKind:
		return v.s
	case MapKind:
		return v.m.Interface()
	}
	return nil
}

// Equal returns true if both values have the same kind and content, arrays are compared in order
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case BoolKind:
		return v.b == other.b
	case IntKind:
		return v.i == other.i
	case FloatKind:
		if math.IsNaN(v.f) {
			return math.IsNaN(other.f)
		}
		return v.f == other.f
	case StringKind:
		return v.s == other.s
	case MapKind:
		return v.m.Equal(other.m)
	}
	return true
}

func (v Value) String() string {
	switch v.kind {
	case BoolKind:
		return strconv.FormatBool(v.b)
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		return formatFloat(v.f)
	case StringKind:
		return v.s
	case MapKind:
		return "array(" + strconv.Itoa(v.m.Len()) + ")"
	}
	return "null"
}

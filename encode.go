package phpserial

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/viant/phpserial/visitor"
)

var bufferPool = sync.Pool{New: func() interface{} { return bytes.NewBuffer(make([]byte, 0, 256)) }}

var timeType = reflect.TypeOf(time.Time{})

// Marshal serializes value, see ValueOf for supported types
func Marshal(value interface{}, opts ...Option) ([]byte, error) {
	options := resolveOptions(opts)
	converted, err := valueOf(value, options, 0)
	if err != nil {
		return nil, err
	}
	return converted.Serialize(), nil
}

// Serialize returns serialized value
func (v Value) Serialize() []byte {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)
	writeValue(buf, v)
	return append([]byte(nil), buf.Bytes()...)
}

// Serialize returns serialized array
func (m *Map) Serialize() []byte {
	return MapValue(m).Serialize()
}

func writeValue(buf *bytes.Buffer, v Value) {
	switch v.kind {
	case NullKind:
		buf.WriteString("N;")
	case BoolKind:
		if v.b {
			buf.WriteString("b:1;")
		} else {
			buf.WriteString("b:0;")
		}
	case IntKind:
		writeInt(buf, v.i)
	case FloatKind:
		buf.WriteString("d:")
		buf.WriteString(formatFloat(v.f))
		buf.WriteByte(';')
	case StringKind:
		writeString(buf, v.s)
	case MapKind:
		buf.WriteString("a:")
		buf.WriteString(strconv.Itoa(v.m.Len()))
		buf.WriteString(":{")
		for _, entry := range v.m.Entries() {
			if entry.Key.isInt {
				writeInt(buf, entry.Key.i)
			} else {
				writeString(buf, entry.Key.s)
			}
			writeValue(buf, entry.Value)
		}
		buf.WriteByte('}')
	}
}

func writeInt(buf *bytes.Buffer, i int64) {
	buf.WriteString("i:")
	buf.WriteString(strconv.FormatInt(i, 10))
	buf.WriteByte(';')
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteString("s:")
	buf.WriteString(strconv.Itoa(len(s)))
	buf.WriteString(`:"`)
	buf.WriteString(s)
	buf.WriteString(`";`)
}

// ValueOf converts Go value into Value.
// Supported: nil, Value, *Map, Key, bool, integers, floats, strings, []byte, time.Time,
// slices and arrays, maps with string, integer or bool keys, structs and pointers.
func ValueOf(value interface{}, opts ...Option) (Value, error) {
	return valueOf(value, resolveOptions(opts), 0)
}

func valueOf(value interface{}, options *Options, depth int) (Value, error) {
	if depth > options.MaxDepth {
		return Value{}, fmt.Errorf("max depth %d exceeded", options.MaxDepth)
	}
	switch actual := value.(type) {
	case nil:
		return Null(), nil
	case Value:
		return actual, nil
	case *Value:
		if actual == nil {
			return Null(), nil
		}
		return *actual, nil
	case *Map:
		if actual == nil {
			return Null(), nil
		}
		return MapValue(actual), nil
	case Key:
		if actual.isInt {
			return Int(actual.i), nil
		}
		return String(actual.s), nil
	case bool:
		return Bool(actual), nil
	case int:
		return Int(int64(actual)), nil
	case int64:
		return Int(actual), nil
	case int32:
		return Int(int64(actual)), nil
	case float64:
		return Float(actual), nil
	case string:
		return String(actual), nil
	case []byte:
		return String(string(actual)), nil
	case time.Time:
		return String(actual.Format(time.RFC3339Nano)), nil
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rValue.IsNil() {
			return Null(), nil
		}
		if rValue.Kind() == reflect.Ptr && rValue.Elem().Kind() == reflect.Struct && rValue.Elem().Type() != timeType {
			return structValue(value, options, depth)
		}
		return valueOf(rValue.Elem().Interface(), options, depth)
	case reflect.Bool:
		return Bool(rValue.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rValue.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rValue.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("unsigned value %d overflows int64", u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rValue.Float()), nil
	case reflect.String:
		return String(rValue.String()), nil
	case reflect.Slice, reflect.Array:
		if rValue.Kind() == reflect.Slice && rValue.Type().Elem().Kind() == reflect.Uint8 {
			return String(string(rValue.Bytes())), nil
		}
		return listValue(value, options, depth)
	case reflect.Map:
		return mapValue(value, options, depth)
	case reflect.Struct:
		return structValue(value, options, depth)
	}
	return Value{}, fmt.Errorf("unsupported type %T", value)
}

func listValue(value interface{}, options *Options, depth int) (Value, error) {
	visit, _, err := visitor.ListVisitorOf(value)
	if err != nil {
		return Value{}, err
	}
	result := NewMap()
	err = visit(func(index int, element any) (bool, error) {
		item, err := valueOf(element, options, depth+1)
		if err != nil {
			return false, fmt.Errorf("[%d]: %w", index, err)
		}
		result.Put(IntKey(int64(index)), item)
		return true, nil
	})
	if err != nil {
		return Value{}, err
	}
	return MapValue(result), nil
}

func mapValue(value interface{}, options *Options, depth int) (Value, error) {
	visit, err := visitor.AnyMapVisitorOf(value)
	if err != nil {
		return Value{}, err
	}
	result := NewMap()
	err = visit(func(key any, element any) (bool, error) {
		aKey, err := keyOf(key, options)
		if err != nil {
			return false, err
		}
		item, err := valueOf(element, options, depth+1)
		if err != nil {
			return false, fmt.Errorf("%v: %w", key, err)
		}
		result.Put(aKey, item)
		return true, nil
	})
	if err != nil {
		return Value{}, err
	}
	return MapValue(result), nil
}

func structValue(value interface{}, options *Options, depth int) (Value, error) {
	visit, err := visitor.StructVisitorOf(value, options.CaseFormat)
	if err != nil {
		return Value{}, err
	}
	result := NewMap()
	err = visit(func(name string, element interface{}) (bool, error) {
		item, err := valueOf(element, options, depth+1)
		if err != nil {
			return false, fmt.Errorf("%v: %w", name, err)
		}
		result.Put(StringKey(name), item)
		return true, nil
	})
	if err != nil {
		return Value{}, err
	}
	return MapValue(result), nil
}

// keyOf converts map key, booleans and finite floats are truncated to integer keys
func keyOf(key interface{}, options *Options) (Key, error) {
	if aKey, ok := key.(Key); ok {
		return aKey, nil
	}
	rKey := reflect.ValueOf(key)
	switch rKey.Kind() {
	case reflect.String:
		return options.key(StringKey(rKey.String())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntKey(rKey.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rKey.Uint()
		if u > math.MaxInt64 {
			return Key{}, fmt.Errorf("unsigned key %d overflows int64", u)
		}
		return IntKey(int64(u)), nil
	case reflect.Bool:
		if rKey.Bool() {
			return IntKey(1), nil
		}
		return IntKey(0), nil
	case reflect.Float32, reflect.Float64:
		f := rKey.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
			return Key{}, fmt.Errorf("float key %v is not a valid integer key", formatFloat(f))
		}
		return IntKey(int64(f)), nil
	}
	return Key{}, fmt.Errorf("unsupported key type %T", key)
}

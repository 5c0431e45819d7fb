package phpserial

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
)

// Unmarshal decodes data into dest.
// Input is decoded strictly first, with the Tolerant policy malformed arrays are recovered with RepairBytes.
// dest can be *Value, **Map, *interface{} or a pointer to any Go type Assign supports.
func Unmarshal(data []byte, dest interface{}, opts ...Option) error {
	options := resolveOptions(opts)
	value, err := decode(data, options)
	if err != nil {
		return err
	}
	return assign(dest, value, options)
}

// UnmarshalString decodes serialized string into dest, see Unmarshal
func UnmarshalString(serialized string, dest interface{}, opts ...Option) error {
	return Unmarshal([]byte(serialized), dest, opts...)
}

func decode(data []byte, options *Options) (Value, error) {
	value, err := decodeStrict(data, options)
	if err == nil {
		return value, nil
	}
	if options.MalformedPolicy == FailFast || !bytes.HasPrefix(data, []byte("a:")) {
		return Value{}, err
	}
	return MapValue(repair(data, options)), nil
}

// Assign assigns value into dest, dest has to be a non nil pointer
func Assign(dest interface{}, value Value, opts ...Option) error {
	return assign(dest, value, resolveOptions(opts))
}

func assign(dest interface{}, value Value, options *Options) error {
	switch actual := dest.(type) {
	case *Value:
		*actual = value
		return nil
	case **Map:
		if value.kind == NullKind {
			*actual = nil
			return nil
		}
		if value.kind != MapKind {
			return fmt.Errorf("cannot assign %v to *Map", value.kind)
		}
		*actual = value.m
		return nil
	case *interface{}:
		*actual = value.Interface()
		return nil
	}
	rDest := reflect.ValueOf(dest)
	if rDest.Kind() != reflect.Ptr || rDest.IsNil() {
		return errors.New("destination must be a non nil pointer")
	}
	a := &assigner{options: options}
	return a.assign(rDest.Elem(), value, "")
}

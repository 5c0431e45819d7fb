package phpserial

import (
	"fmt"
	"go/token"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/viant/phpserial/visitor"
)

var (
	valueType = reflect.TypeOf(Value{})
	mapType   = reflect.TypeOf(&Map{})
)

type assigner struct {
	options *Options
}

func (a *assigner) assign(dest reflect.Value, value Value, path string) error {
	switch dest.Type() {
	case valueType:
		dest.Set(reflect.ValueOf(value))
		return nil
	case mapType:
		if value.kind == NullKind {
			dest.Set(reflect.Zero(mapType))
			return nil
		}
		if value.kind != MapKind {
			return a.mismatch(dest, value, path)
		}
		dest.Set(reflect.ValueOf(value.m))
		return nil
	case timeType:
		if value.kind != StringKind {
			return a.mismatch(dest, value, path)
		}
		ts, err := time.Parse(time.RFC3339Nano, value.s)
		if err != nil {
			return fmt.Errorf("%v: %w", pathOrRoot(path), err)
		}
		dest.Set(reflect.ValueOf(ts))
		return nil
	}

	switch dest.Kind() {
	case reflect.Interface:
		if value.kind == NullKind {
			dest.Set(reflect.Zero(dest.Type()))
			return nil
		}
		raw := reflect.ValueOf(value.Interface())
		if !raw.Type().AssignableTo(dest.Type()) {
			return a.mismatch(dest, value, path)
		}
		dest.Set(raw)
		return nil
	case reflect.Ptr:
		if value.kind == NullKind {
			dest.Set(reflect.Zero(dest.Type()))
			return nil
		}
		if dest.IsNil() {
			dest.Set(reflect.New(dest.Type().Elem()))
		}
		return a.assign(dest.Elem(), value, path)
	}

	if value.kind == NullKind {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}

	switch dest.Kind() {
	case reflect.Bool:
		dest.SetBool(truthy(value))
		return nil
	case reflect.String:
		if value.kind == MapKind {
			return a.mismatch(dest, value, path)
		}
		dest.SetString(stringOf(value))
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := intOf(value)
		if err != nil {
			return fmt.Errorf("%v: %w", pathOrRoot(path), err)
		}
		if dest.OverflowInt(i) {
			return fmt.Errorf("%v: %d overflows %v", pathOrRoot(path), i, dest.Type())
		}
		dest.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i, err := intOf(value)
		if err != nil {
			return fmt.Errorf("%v: %w", pathOrRoot(path), err)
		}
		if i < 0 || dest.OverflowUint(uint64(i)) {
			return fmt.Errorf("%v: %d overflows %v", pathOrRoot(path), i, dest.Type())
		}
		dest.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := floatOf(value)
		if err != nil {
			return fmt.Errorf("%v: %w", pathOrRoot(path), err)
		}
		dest.SetFloat(f)
		return nil
	case reflect.Slice:
		if dest.Type().Elem().Kind() == reflect.Uint8 && value.kind == StringKind {
			dest.SetBytes([]byte(value.s))
			return nil
		}
		return a.assignSlice(dest, value, path)
	case reflect.Map:
		return a.assignMap(dest, value, path)
	case reflect.Struct:
		return a.assignStruct(dest, value, path)
	}
	return fmt.Errorf("%v: unsupported destination type %v", pathOrRoot(path), dest.Type())
}

func (a *assigner) assignSlice(dest reflect.Value, value Value, path string) error {
	if value.kind != MapKind || !value.m.IsList() {
		return a.mismatch(dest, value, path)
	}
	entries := value.m.Entries()
	slice := reflect.MakeSlice(dest.Type(), len(entries), len(entries))
	for i, entry := range entries {
		if err := a.assign(slice.Index(i), entry.Value, path+"["+entry.Key.String()+"]"); err != nil {
			return err
		}
	}
	dest.Set(slice)
	return nil
}

func (a *assigner) assignMap(dest reflect.Value, value Value, path string) error {
	if value.kind != MapKind {
		return a.mismatch(dest, value, path)
	}
	rType := dest.Type()
	result := reflect.MakeMapWithSize(rType, value.m.Len())
	for _, entry := range value.m.Entries() {
		key := reflect.New(rType.Key()).Elem()
		if err := a.assign(key, keyValue(entry.Key), path); err != nil {
			return fmt.Errorf("key %v: %w", entry.Key, err)
		}
		item := reflect.New(rType.Elem()).Elem()
		if err := a.assign(item, entry.Value, path+"["+entry.Key.String()+"]"); err != nil {
			return err
		}
		result.SetMapIndex(key, item)
	}
	dest.Set(result)
	return nil
}

func (a *assigner) assignStruct(dest reflect.Value, value Value, path string) error {
	if value.kind != MapKind {
		return a.mismatch(dest, value, path)
	}
	structType := dest.Type()
	byName := make(map[string]int, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !token.IsExported(field.Name) {
			continue
		}
		resolved, err := visitor.ResolveField(field.Name, field.Tag, a.options.CaseFormat)
		if err != nil {
			return err
		}
		if resolved.Ignore {
			continue
		}
		byName[resolved.Name] = i
		if _, ok := byName[strings.ToLower(resolved.Name)]; !ok {
			byName[strings.ToLower(resolved.Name)] = i
		}
	}
	for _, entry := range value.m.Entries() {
		name := entry.Key.String()
		index, ok := byName[name]
		if !ok {
			if index, ok = byName[strings.ToLower(name)]; !ok {
				continue
			}
		}
		fieldPath := name
		if path != "" {
			fieldPath = path + "." + name
		}
		if err := a.assign(dest.Field(index), entry.Value, fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func (a *assigner) mismatch(dest reflect.Value, value Value, path string) error {
	return fmt.Errorf("%v: cannot assign %v to %v", pathOrRoot(path), value.kind, dest.Type())
}

func pathOrRoot(path string) string {
	if path == "" {
		return "value"
	}
	return path
}

func keyValue(key Key) Value {
	if key.isInt {
		return Int(key.i)
	}
	return String(key.s)
}

// truthy follows PHP boolean conversion
func truthy(value Value) bool {
	switch value.kind {
	case BoolKind:
		return value.b
	case IntKind:
		return value.i != 0
	case FloatKind:
		return value.f != 0
	case StringKind:
		return value.s != "" && value.s != "0"
	case MapKind:
		return value.m.Len() > 0
	}
	return false
}

func stringOf(value Value) string {
	if value.kind == BoolKind {
		if value.b {
			return "1"
		}
		return ""
	}
	return value.String()
}

func intOf(value Value) (int64, error) {
	switch value.kind {
	case IntKind:
		return value.i, nil
	case BoolKind:
		if value.b {
			return 1, nil
		}
		return 0, nil
	case FloatKind:
		if math.IsNaN(value.f) || math.IsInf(value.f, 0) {
			return 0, fmt.Errorf("cannot convert %v to int", formatFloat(value.f))
		}
		return int64(value.f), nil
	case StringKind:
		return strconv.ParseInt(strings.TrimSpace(value.s), 10, 64)
	}
	return 0, fmt.Errorf("cannot convert %v to int", value.kind)
}

func floatOf(value Value) (float64, error) {
	switch value.kind {
	case FloatKind:
		return value.f, nil
	case IntKind:
		return float64(value.i), nil
	case BoolKind:
		if value.b {
			return 1, nil
		}
		return 0, nil
	case StringKind:
		return parseFloat(strings.TrimSpace(value.s))
	}
	return 0, fmt.Errorf("cannot convert %v to float", value.kind)
}

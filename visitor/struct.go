package visitor

import (
	"fmt"
	"go/token"
	"reflect"
	"unsafe"

	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

type structKey struct {
	rType      reflect.Type
	caseFormat text.CaseFormat
}

type structInfo struct {
	xStruct *xunsafe.Struct
	fields  []*structField
}

type structField struct {
	xField *xunsafe.Field
	Field
}

var structCache = NewSyncMap[structKey, *structInfo]()

// StructVisitor visits exported, not ignored struct fields keyed by resolved field name
type StructVisitor struct {
	value interface{}
	ptr   unsafe.Pointer
	info  *structInfo
}

// StructVisitorOf creates a StructVisitor from a struct value or pointer to struct.
func StructVisitorOf(value interface{}, caseFormat text.CaseFormat) (Visitor[string, interface{}], error) {
	if value == nil {
		return nil, fmt.Errorf("expected struct or pointer to struct, got nil")
	}
	valueType := reflect.TypeOf(value)
	isPtr := false
	var structType reflect.Type
	switch valueType.Kind() {
	case reflect.Ptr:
		if valueType.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
		}
		isPtr = true
		structType = valueType.Elem()
	case reflect.Struct:
		structType = valueType
	default:
		return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
	}

	if !isPtr {
		rPointer := reflect.New(structType)
		rPointer.Elem().Set(reflect.ValueOf(value))
		value = rPointer.Interface()
	}
	info, err := structInfoOf(structType, caseFormat)
	if err != nil {
		return nil, err
	}
	visitor := &StructVisitor{
		value: value,
		ptr:   xunsafe.AsPointer(value),
		info:  info,
	}
	return visitor.Visit, nil
}

func structInfoOf(structType reflect.Type, caseFormat text.CaseFormat) (*structInfo, error) {
	key := structKey{rType: structType, caseFormat: caseFormat}
	if info, ok := structCache.Get(key); ok {
		return info, nil
	}
	info := &structInfo{xStruct: xunsafe.NewStruct(structType)}
	for i := range info.xStruct.Fields {
		xField := &info.xStruct.Fields[i]
		if !token.IsExported(xField.Name) {
			continue
		}
		field, err := ResolveField(xField.Name, xField.Tag, caseFormat)
		if err != nil {
			return nil, err
		}
		if field.Ignore {
			continue
		}
		info.fields = append(info.fields, &structField{xField: xField, Field: *field})
	}
	return structCache.Put(key, info), nil
}

// Visit iterates over struct fields, calling the provided function with each field name and value.
func (w *StructVisitor) Visit(f func(key string, element interface{}) (bool, error)) error {
	for _, field := range w.info.fields {
		fieldValue := field.xField.Value(w.ptr)
		if field.OmitEmpty && isZero(fieldValue) {
			continue
		}
		continueVisit, err := f(field.Name, fieldValue)
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}

func isZero(value interface{}) bool {
	if value == nil {
		return true
	}
	return reflect.ValueOf(value).IsZero()
}

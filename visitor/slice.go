package visitor

import (
	"fmt"
	"reflect"
)

// ListVisitorOf creates a visitor over slice or array elements keyed by position.
// Common element types are visited without reflection.
func ListVisitorOf(value interface{}) (Visitor[int, any], int, error) {
	switch actual := value.(type) {
	case []interface{}:
		return TypedListVisitorOf(actual), len(actual), nil
	case []string:
		return TypedListVisitorOf(actual), len(actual), nil
	case []int:
		return TypedListVisitorOf(actual), len(actual), nil
	case []int64:
		return TypedListVisitorOf(actual), len(actual), nil
	case []float64:
		return TypedListVisitorOf(actual), len(actual), nil
	case []bool:
		return TypedListVisitorOf(actual), len(actual), nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return nil, 0, fmt.Errorf("expected slice or array, got %T", value)
	}
	visitor := &ListVisitor{data: val}
	return visitor.Visit, val.Len(), nil
}

// TypedListVisitorOf returns visitor for typed slice
func TypedListVisitorOf[E any](list []E) Visitor[int, any] {
	return func(f func(key int, element any) (bool, error)) error {
		for i, e := range list {
			continueVisit, err := f(i, e)
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}

// ListVisitor visits reflect slice or array value
type ListVisitor struct {
	data reflect.Value
}

// Visit iterates over elements via reflection.
func (v *ListVisitor) Visit(f func(key int, element any) (bool, error)) error {
	for i := 0; i < v.data.Len(); i++ {
		continueVisit, err := f(i, v.data.Index(i).Interface())
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}

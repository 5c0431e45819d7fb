package phpserial

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type option struct {
	ID       int `format:"name=id"`
	Name     string
	Autoload bool
	Tags     []string
	Meta     map[string]interface{}
	Parent   *option
	Weight   float32
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	expect := &option{
		ID:       3,
		Name:     "widget_text",
		Autoload: true,
		Tags:     []string{"a", "b"},
		Meta:     map[string]interface{}{"views": int64(10), "title": "x"},
		Parent:   &option{ID: 1, Name: "root", Tags: []string{}, Meta: map[string]interface{}{}},
		Weight:   1.5,
	}
	data, err := Marshal(expect)
	if !assert.Nil(t, err) {
		return
	}
	actual := &option{}
	err = Unmarshal(data, actual)
	if !assert.Nil(t, err) {
		return
	}
	assert.EqualValues(t, expect, actual)
}

func TestUnmarshal(t *testing.T) {
	type widget struct {
		Title string
		Tags  []string
		Count int8
	}
	var testCases = []struct {
		description string
		input       string
		options     []Option
		dest        func() interface{}
		expect      interface{}
		truncated   bool
		hasError    bool
	}{
		{
			description: "case insensitive field names",
			input:       `a:2:{s:5:"title";s:5:"Hello";s:5:"count";s:2:"12";}`,
			dest:        func() interface{} { return &widget{} },
			expect:      &widget{Title: "Hello", Count: 12},
		},
		{
			description: "tolerant recovery",
			input:       `a:2:{s:5:"title";s:5:"Hello";s:4:"tags";a:2:{i:0;s:2:"go";i:1;s:3:"ph`,
			dest:        func() interface{} { return &widget{} },
			expect:      &widget{Title: "Hello", Tags: []string{"go"}},
		},
		{
			description: "fail fast",
			input:       `a:2:{s:5:"title";s:5:"Hello";s:4:"tags";a:2:{i:0;s:2:"go";i:1;s:3:"ph`,
			options:     []Option{WithMalformedPolicy(FailFast)},
			dest:        func() interface{} { return &widget{} },
			hasError:    true,
			truncated:   true,
		},
		{
			description: "tolerant non array",
			input:       `s:5:"abc`,
			dest:        func() interface{} { return new(string) },
			hasError:    true,
			truncated:   true,
		},
		{
			description: "interface list",
			input:       `a:2:{i:0;s:1:"a";i:1;s:1:"b";}`,
			dest:        func() interface{} { return new(interface{}) },
			expect: func() interface{} {
				var ret interface{} = []interface{}{"a", "b"}
				return &ret
			}(),
		},
		{
			description: "typed map",
			input:       `a:2:{s:1:"a";i:1;s:1:"b";s:1:"2";}`,
			dest:        func() interface{} { return &map[string]int{} },
			expect:      &map[string]int{"a": 1, "b": 2},
		},
		{
			description: "integer keyed map",
			input:       `a:2:{i:4;s:1:"x";i:9;s:1:"y";}`,
			dest:        func() interface{} { return &map[int]string{} },
			expect:      &map[int]string{4: "x", 9: "y"},
		},
		{
			description: "string truthiness",
			input:       `s:1:"0";`,
			dest:        func() interface{} { return new(bool) },
			expect:      func() *bool { ret := false; return &ret }(),
		},
		{
			description: "bytes",
			input:       `s:3:"abc";`,
			dest:        func() interface{} { return &[]byte{} },
			expect:      &[]byte{'a', 'b', 'c'},
		},
		{
			description: "time",
			input:       `s:20:"2024-05-01T10:00:00Z";`,
			dest:        func() interface{} { return &time.Time{} },
			expect:      func() *time.Time { ret := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC); return &ret }(),
		},
		{
			description: "overflow",
			input:       `a:1:{s:5:"Count";i:300;}`,
			dest:        func() interface{} { return &widget{} },
			hasError:    true,
		},
		{
			description: "kind mismatch",
			input:       `a:1:{s:4:"Tags";s:1:"x";}`,
			dest:        func() interface{} { return &widget{} },
			hasError:    true,
		},
		{
			description: "string keyed array into slice",
			input:       `a:2:{s:1:"x";i:1;s:1:"y";i:2;}`,
			dest:        func() interface{} { return &[]int{} },
			hasError:    true,
		},
		{
			description: "sparse array into slice",
			input:       `a:2:{i:0;i:1;i:5;i:2;}`,
			dest:        func() interface{} { return &[]int{} },
			hasError:    true,
		},
		{
			description: "dense array into slice",
			input:       `a:2:{i:0;i:1;i:1;i:2;}`,
			dest:        func() interface{} { return &[]int{} },
			expect:      &[]int{1, 2},
		},
		{
			description: "non pointer destination",
			input:       `i:1;`,
			dest:        func() interface{} { return widget{} },
			hasError:    true,
		},
	}

	for _, testCase := range testCases {
		dest := testCase.dest()
		err := UnmarshalString(testCase.input, dest, testCase.options...)
		if testCase.hasError {
			assert.NotNil(t, err, testCase.description)
			assert.Equal(t, testCase.truncated, errors.Is(err, ErrTruncated), testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, dest, testCase.description)
	}
}

func TestUnmarshal_Value(t *testing.T) {
	var outcome Recovery
	var value Value
	err := UnmarshalString(`a:2:{i:0;b:1;i:1;`, &value, WithRecoverySink(func(recovery Recovery) { outcome = recovery }))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, MapKind, value.Kind())
	assert.Equal(t, 1, value.Map().Len())
	assert.Equal(t, Exhausted, outcome.Cause)

	var m *Map
	err = UnmarshalString(`a:1:{s:1:"k";d:0.5;}`, &m)
	if !assert.Nil(t, err) {
		return
	}
	actual, ok := m.Lookup("k")
	assert.True(t, ok)
	assert.EqualValues(t, 0.5, actual.Float())

	err = UnmarshalString(`i:1;`, &m)
	assert.NotNil(t, err)
}

func TestAssign(t *testing.T) {
	m := NewMap()
	m.Put(StringKey("Name"), String("x"))
	m.Put(StringKey("Weight"), Int(2))
	actual := &option{}
	err := Assign(actual, MapValue(m))
	assert.Nil(t, err)
	assert.EqualValues(t, &option{Name: "x", Weight: 2}, actual)
}

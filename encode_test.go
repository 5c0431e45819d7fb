package phpserial

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/tagly/format/text"
)

type author struct {
	ID       int    `format:"name=id"`
	Name     string
	Email    string `format:"omitempty=true"`
	Password string `format:"ignore=true"`
	internal string
}

type post struct {
	Title     string
	Tags      []string
	Author    *author
	Meta      map[string]interface{}
	Published time.Time
}

func TestMarshal(t *testing.T) {
	var testCases = []struct {
		description string
		input       interface{}
		options     []Option
		expect      string
	}{
		{description: "nil", input: nil, expect: `N;`},
		{description: "bool", input: true, expect: `b:1;`},
		{description: "int", input: -7, expect: `i:-7;`},
		{description: "uint8", input: uint8(200), expect: `i:200;`},
		{description: "string", input: "Zoë", expect: `s:4:"Zoë";`},
		{description: "bytes", input: []byte("abc"), expect: `s:3:"abc";`},
		{description: "float", input: 0.1, expect: `d:0.1;`},
		{description: "integral float", input: 100000.0, expect: `d:100000;`},
		{description: "large float", input: 1e20, expect: `d:1.0E+20;`},
		{description: "exponent boundary", input: 1e15, expect: `d:1.0E+15;`},
		{description: "below exponent boundary", input: 999999999999999.0, expect: `d:999999999999999;`},
		{description: "small fixed float", input: 0.0001, expect: `d:0.0001;`},
		{description: "small exponent float", input: 0.00001, expect: `d:1.0E-5;`},
		{description: "small float", input: 2.5e-7, expect: `d:2.5E-7;`},
		{description: "fixed float", input: 123456.75, expect: `d:123456.75;`},
		{description: "infinity", input: math.Inf(1), expect: `d:INF;`},
		{description: "negative zero", input: math.Copysign(0, -1), expect: `d:-0;`},
		{description: "slice", input: []string{"x", "y"}, expect: `a:2:{i:0;s:1:"x";i:1;s:1:"y";}`},
		{description: "array", input: [2]int{3, 4}, expect: `a:2:{i:0;i:3;i:1;i:4;}`},
		{description: "empty slice", input: []int{}, expect: `a:0:{}`},
		{description: "map sorted keys", input: map[string]interface{}{"b": 1, "a": "x"}, expect: `a:2:{s:1:"a";s:1:"x";s:1:"b";i:1;}`},
		{description: "float keyed map", input: map[float64]string{2.5: "b", 1.9: "a"}, expect: `a:2:{i:1;s:1:"a";i:2;s:1:"b";}`},
		{description: "int keyed map", input: map[int]bool{2: true, 1: false}, expect: `a:2:{i:1;b:0;i:2;b:1;}`},
		{
			description: "normalized map keys",
			input:       map[string]int{"5": 1},
			options:     []Option{WithKeyPolicy(NormalizeKeys)},
			expect:      `a:1:{i:5;i:1;}`,
		},
		{
			description: "struct",
			input:       author{ID: 1, Name: "Ann", Password: "secret", internal: "x"},
			expect:      `a:2:{s:2:"id";i:1;s:4:"Name";s:3:"Ann";}`,
		},
		{
			description: "struct with case format",
			input:       &author{ID: 1, Name: "Ann", Email: "ann@example.com"},
			options:     []Option{WithCaseFormat(text.CaseFormatLowerCamel)},
			expect:      `a:3:{s:2:"id";i:1;s:4:"name";s:3:"Ann";s:5:"email";s:15:"ann@example.com";}`,
		},
		{
			description: "nested struct",
			input: post{
				Title:     "Hello",
				Tags:      []string{"go"},
				Author:    &author{ID: 2, Name: "Bo"},
				Published: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			},
			expect: `a:5:{s:5:"Title";s:5:"Hello";s:4:"Tags";a:1:{i:0;s:2:"go";}s:6:"Author";a:2:{s:2:"id";i:2;s:4:"Name";s:2:"Bo";}s:4:"Meta";a:0:{}s:9:"Published";s:20:"2024-05-01T10:00:00Z";}`,
		},
		{
			description: "value passthrough",
			input: func() *Map {
				m := NewMap()
				m.Append(String("a"))
				m.Put(StringKey("k"), Null())
				return m
			}(),
			expect: `a:2:{i:0;s:1:"a";s:1:"k";N;}`,
		},
	}

	for _, testCase := range testCases {
		actual, err := Marshal(testCase.input, testCase.options...)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, string(actual), testCase.description)
	}
}

func TestMarshal_Errors(t *testing.T) {
	var testCases = []struct {
		description string
		input       interface{}
	}{
		{description: "channel", input: make(chan int)},
		{description: "uint overflow", input: uint64(math.MaxUint64)},
		{description: "nested function", input: map[string]interface{}{"f": func() {}}},
		{description: "not a number key", input: map[float64]string{math.NaN(): "x"}},
		{description: "infinite key", input: map[float64]int{math.Inf(1): 1}},
	}
	for _, testCase := range testCases {
		_, err := Marshal(testCase.input)
		assert.NotNil(t, err, testCase.description)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	expect := sampleMap()
	data, err := Marshal(expect)
	if !assert.Nil(t, err) {
		return
	}
	actual, err := Decode(data)
	if !assert.Nil(t, err) {
		return
	}
	assert.Truef(t, MapValue(expect).Equal(actual), "expected %s, got %s", expect.Serialize(), data)
}

package phpserial

import (
	"bytes"
	"strconv"

	"github.com/viant/parsly"
)

// Decode decodes exactly one well formed value, declared string lengths and array counts are honored
func Decode(data []byte, opts ...Option) (Value, error) {
	return decodeStrict(data, resolveOptions(opts))
}

func decodeStrict(data []byte, options *Options) (Value, error) {
	d := &decoder{input: data, options: options}
	value, next, err := d.value(0, 0)
	if err != nil {
		return Value{}, err
	}
	if next != len(data) {
		return Value{}, newSyntaxError(next, "unexpected trailing data %q", snippet(data[next:]))
	}
	return value, nil
}

// DecodeString decodes serialized string, see Decode
func DecodeString(serialized string, opts ...Option) (Value, error) {
	return Decode([]byte(serialized), opts...)
}

type decoder struct {
	input   []byte
	options *Options
}

func (d *decoder) cursorAt(pos int) *parsly.Cursor {
	cursor := parsly.NewCursor("", d.input, 0)
	cursor.Pos = pos
	return cursor
}

func (d *decoder) value(pos int, depth int) (Value, int, error) {
	if pos >= len(d.input) {
		return Value{}, 0, truncatedError(pos)
	}
	cursor := d.cursorAt(pos)
	match := cursor.MatchAny(valueTokens...)
	switch match.Code {
	case stringToken:
		return String(stringPayload(match.Text(cursor))), cursor.Pos, nil
	case intToken:
		return Int(intPayload(match.Text(cursor))), cursor.Pos, nil
	case floatToken:
		return Float(floatPayload(match.Text(cursor))), cursor.Pos, nil
	case boolToken:
		return Bool(boolPayload(match.Text(cursor))), cursor.Pos, nil
	case nullToken:
		return Null(), cursor.Pos, nil
	case arrayOpenToken:
		if depth+1 > d.options.MaxDepth {
			return Value{}, 0, newSyntaxError(pos, "max depth %d exceeded", d.options.MaxDepth)
		}
		return d.array(cursor.Pos, declaredLength(match.Text(cursor)), depth+1)
	}
	return Value{}, 0, d.invalid(pos, "value")
}

func (d *decoder) array(pos int, count int, depth int) (Value, int, error) {
	result := NewMap()
	for i := 0; i < count; i++ {
		if pos < len(d.input) && d.input[pos] == '}' {
			return Value{}, 0, newSyntaxError(pos, "array declared %d elements, found %d", count, i)
		}
		key, next, err := d.key(pos)
		if err != nil {
			return Value{}, 0, err
		}
		value, next, err := d.value(next, depth)
		if err != nil {
			return Value{}, 0, err
		}
		result.Put(key, value)
		pos = next
	}
	if pos >= len(d.input) {
		return Value{}, 0, truncatedError(pos)
	}
	cursor := d.cursorAt(pos)
	if match := cursor.MatchAny(arrayCloseMatcher); match.Code != arrayCloseToken {
		return Value{}, 0, newSyntaxError(pos, "array declared %d elements, found more", count)
	}
	return MapValue(result), cursor.Pos, nil
}

func (d *decoder) key(pos int) (Key, int, error) {
	if pos >= len(d.input) {
		return Key{}, 0, truncatedError(pos)
	}
	cursor := d.cursorAt(pos)
	match := cursor.MatchAny(keyTokens...)
	switch match.Code {
	case stringToken:
		return d.options.key(StringKey(stringPayload(match.Text(cursor)))), cursor.Pos, nil
	case intToken:
		return IntKey(intPayload(match.Text(cursor))), cursor.Pos, nil
	}
	switch d.input[pos] {
	case 'b', 'd', 'N', 'a':
		if !incomplete(d.input[pos:]) {
			return Key{}, 0, newSyntaxError(pos, "invalid array key %q", snippet(d.input[pos:]))
		}
	}
	return Key{}, 0, d.invalid(pos, "array key")
}

func (d *decoder) invalid(pos int, expected string) error {
	rest := d.input[pos:]
	if incomplete(rest) {
		return truncatedError(pos)
	}
	if len(rest) > 1 && rest[1] == ':' {
		switch rest[0] {
		case 'O', 'C', 'r', 'R', 'E':
			return newSyntaxError(pos, "unsupported token %q", rest[:2])
		}
	}
	return newSyntaxError(pos, "expected %s, found %q", expected, snippet(rest))
}

// incomplete returns true if rest is a prefix of a token that input ended too early to complete
func incomplete(rest []byte) bool {
	if len(rest) == 0 {
		return true
	}
	switch rest[0] {
	case 'N':
		return len(rest) == 1
	case 'b', 'i', 'd':
		if len(rest) == 1 {
			return true
		}
		return rest[1] == ':' && bytes.IndexByte(rest, ';') == -1
	case 'a':
		if len(rest) == 1 {
			return true
		}
		return rest[1] == ':' && bytes.IndexByte(rest, '{') == -1
	case 's':
		if len(rest) == 1 {
			return true
		}
		if rest[1] != ':' {
			return false
		}
		digits := countDigits(rest[2:])
		start := 2 + digits
		if start >= len(rest) {
			return true
		}
		if digits == 0 || rest[start] != ':' {
			return false
		}
		if start+1 >= len(rest) {
			return true
		}
		if rest[start+1] != '"' {
			return false
		}
		declared, err := strconv.Atoi(string(rest[2:start]))
		if err != nil {
			return false
		}
		return start+2+declared+2 > len(rest)
	}
	return false
}

func snippet(data []byte) string {
	if len(data) > 16 {
		return string(data[:16]) + "..."
	}
	return string(data)
}

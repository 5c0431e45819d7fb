package phpserial

import (
	"bytes"
	"strconv"

	"github.com/viant/parsly"
)

const maxNumberLen = 64

type boolTokenMatcher struct{}

func (m *boolTokenMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[cursor.Pos:]
	if len(input) < 4 || input[0] != 'b' || input[1] != ':' || input[3] != ';' {
		return 0
	}
	if input[2] != '0' && input[2] != '1' {
		return 0
	}
	return 4
}

// numberMatcher matches i:<int>; and d:<float>;
type numberMatcher struct {
	tag byte
}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[cursor.Pos:]
	if len(input) < 4 || input[0] != m.tag || input[1] != ':' {
		return 0
	}
	limit := len(input)
	if limit > maxNumberLen+2 {
		limit = maxNumberLen + 2
	}
	end := bytes.IndexByte(input[2:limit], ';')
	if end <= 0 {
		return 0
	}
	literal := string(input[2 : 2+end])
	var err error
	if m.tag == 'i' {
		_, err = strconv.ParseInt(literal, 10, 64)
	} else {
		_, err = parseFloat(literal)
	}
	if err != nil {
		return 0
	}
	return end + 3
}

type arrayOpenTokenMatcher struct{}

func (m *arrayOpenTokenMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[cursor.Pos:]
	if len(input) < 5 || input[0] != 'a' || input[1] != ':' {
		return 0
	}
	digits := countDigits(input[2:])
	if digits == 0 {
		return 0
	}
	pos := 2 + digits
	if len(input) < pos+2 || input[pos] != ':' || input[pos+1] != '{' {
		return 0
	}
	return pos + 2
}

type lengthMode int

const (
	scanLength lengthMode = iota
	preferLength
	exactLength
)

// stringMatcher matches s:<len>:"<payload>";
type stringMatcher struct {
	mode lengthMode
}

func (m *stringMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[cursor.Pos:]
	if len(input) < 7 || input[0] != 's' || input[1] != ':' {
		return 0
	}
	digits := countDigits(input[2:])
	if digits == 0 {
		return 0
	}
	start := 2 + digits
	if len(input) < start+2 || input[start] != ':' || input[start+1] != '"' {
		return 0
	}
	start += 2
	if m.mode != scanLength {
		if declared, err := strconv.Atoi(string(input[2 : 2+digits])); err == nil {
			end := start + declared
			if end >= start && end+2 <= len(input) && input[end] == '"' && input[end+1] == ';' {
				return end + 2
			}
		}
		if m.mode == exactLength {
			return 0
		}
	}
	end := bytes.Index(input[start:], []byte(`";`))
	if end == -1 {
		return 0
	}
	return start + end + 2
}

func countDigits(input []byte) int {
	i := 0
	for i < len(input) && input[i] >= '0' && input[i] <= '9' {
		i++
	}
	return i
}

// stringPayload returns payload of a matched string token
func stringPayload(text string) string {
	start := 0
	for start < len(text) && text[start] != '"' {
		start++
	}
	return text[start+1 : len(text)-2]
}

// declaredLength returns the declared length or count of a matched s: or a: token
func declaredLength(text string) int {
	digits := countDigits([]byte(text[2:]))
	n, _ := strconv.Atoi(text[2 : 2+digits])
	return n
}

func intPayload(text string) int64 {
	i, _ := strconv.ParseInt(text[2:len(text)-1], 10, 64)
	return i
}

func floatPayload(text string) float64 {
	f, _ := parseFloat(text[2 : len(text)-1])
	return f
}

func boolPayload(text string) bool {
	return text[2] == '1'
}

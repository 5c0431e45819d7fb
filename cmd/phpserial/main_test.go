package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	var testCases = []struct {
		description string
		args        []string
		input       string
		expectCode  int
		expectOut   string
		expectErr   string
	}{
		{
			description: "repair truncated",
			args:        []string{"repair"},
			input:       `a:2:{s:1:"a";i:1;s:1:"b";s:5:"tru` + "\n",
			expectOut:   `a:1:{s:1:"a";i:1;}` + "\n",
		},
		{
			description: "repair as JSON with outcome",
			args:        []string{"repair", "-json", "-v"},
			input:       `a:2:{s:1:"a";i:1;???`,
			expectOut:   `{"a":1}` + "\n",
			expectErr:   "recovered 1 entries, malformed at offset 17, 3 bytes remaining\n",
		},
		{
			description: "repair declared lengths",
			args:        []string{"repair", "-declared"},
			input:       `a:1:{s:1:"k";s:4:"a";b";}`,
			expectOut:   `a:1:{s:1:"k";s:4:"a";b";}` + "\n",
		},
		{
			description: "decode",
			args:        []string{"decode"},
			input:       `a:2:{i:0;s:1:"x";i:1;d:0.5;}`,
			expectOut:   `["x",0.5]` + "\n",
		},
		{
			description: "decode strict",
			args:        []string{"decode", "-strict"},
			input:       `a:2:{i:0;s:1:"x";`,
			expectCode:  1,
			expectErr:   "phpserial: unexpected end of input at offset 17\n",
		},
		{
			description: "encode",
			args:        []string{"encode"},
			input:       `{"name":"x","ids":[1,2]}`,
			expectOut:   `a:2:{s:4:"name";s:1:"x";s:3:"ids";a:2:{i:0;i:1;i:1;i:2;}}` + "\n",
		},
		{
			description: "version",
			args:        []string{"version"},
			expectOut:   "phpserial " + version + "\n",
		},
		{
			description: "unknown command",
			args:        []string{"compress"},
			expectCode:  2,
		},
		{
			description: "no command",
			expectCode:  2,
		},
	}

	for _, testCase := range testCases {
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		code := run(testCase.args, strings.NewReader(testCase.input), stdout, stderr)
		assert.Equal(t, testCase.expectCode, code, testCase.description)
		if testCase.expectCode != 0 && testCase.expectErr == "" {
			continue
		}
		assert.EqualValues(t, testCase.expectOut, stdout.String(), testCase.description)
		assert.EqualValues(t, testCase.expectErr, stderr.String(), testCase.description)
	}
}

func TestRun_File(t *testing.T) {
	location := filepath.Join(t.TempDir(), "option.txt")
	if !assert.Nil(t, os.WriteFile(location, []byte(`a:1:{s:1:"k";b:1;}`), 0644)) {
		return
	}
	stdout := &bytes.Buffer{}
	code := run([]string{"repair", "-json", location}, strings.NewReader(""), stdout, &bytes.Buffer{})
	assert.Equal(t, 0, code)
	assert.EqualValues(t, `{"k":true}`+"\n", stdout.String())

	code = run([]string{"repair", filepath.Join(t.TempDir(), "missing.txt")}, strings.NewReader(""), stdout, &bytes.Buffer{})
	assert.Equal(t, 1, code)
}

package jsonc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", sub, s)
	}
}

func Test_ParseError_Message_Format(t *testing.T) {
	pe := mustFailParse(t, `{"a":1,}`, "JSON")
	assert.Equal(t, "PARSE ERROR at 1:6: unexpected token ','", pe.Error())
}

func Test_ErrorWrap_ShowsCaretAndContext(t *testing.T) {
	// Three lines; error on line 2: trailing comma
	src := "{\n  \"a\": 1,\n}"
	_, err := ParseJSON(src, &ParserOptions{JSONSyntax: "JSON"})
	require.Error(t, err)

	msg := WrapErrorWithSource(err, src).Error()

	// Header
	mustContain(t, msg, "PARSE ERROR at 2:")
	// Context lines (line numbers + source)
	mustContain(t, msg, `   1 | {`)
	mustContain(t, msg, `   2 |   "a": 1,`)
	mustContain(t, msg, `   3 | }`)
	// Caret line points at the comma (0-based col 8 → 8 spaces, 1-based caret)
	mustContain(t, msg, "     |         ^")
}

func Test_ErrorWrap_WithName(t *testing.T) {
	src := `[1,]`
	_, err := ParseJSON(src, &ParserOptions{JSONSyntax: "JSON"})
	require.Error(t, err)

	msg := WrapErrorWithName(err, "config.json", src).Error()
	mustContain(t, msg, "PARSE ERROR in config.json at 1:3:")
}

func Test_ErrorWrap_PassesThrough_Other_Errors(t *testing.T) {
	plain := errors.New("boring")
	assert.Same(t, plain, WrapErrorWithSource(plain, "src"))
}

func Test_ErrorWrap_Clamps_Out_Of_Range(t *testing.T) {
	err := &ParseError{Message: "m", LineNumber: 99, Column: 99}
	msg := WrapErrorWithSource(err, "x").Error()
	mustContain(t, msg, "PARSE ERROR at")
	mustContain(t, msg, "^")
}

func Test_IllegalArgumentError_Format(t *testing.T) {
	_, err := GetStaticJSONValue(&Identifier{Name: "bogus"})
	require.Error(t, err)
	mustContain(t, err.Error(), "ILLEGAL ARGUMENT:")
}

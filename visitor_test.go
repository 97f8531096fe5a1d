// visitor_test.go
package jsonc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_VisitorKeys_Covers_All_Kinds(t *testing.T) {
	prog := mustParse(t, "{\"a\": [1, -2, `t`], \"b\": 1 + 2, c: undefined}", "")
	TraverseNodes(prog, Visitor{EnterNode: func(n Node) {
		_, ok := VisitorKeys[n.Type()]
		assert.True(t, ok, "kind %s missing from VisitorKeys", n.Type())
	}})

	// leaf kinds, also looked up by name
	for _, kind := range []string{"JSONLiteral", "JSONIdentifier", "JSONTemplateElement"} {
		_, ok := VisitorKeys[kind]
		assert.True(t, ok, "kind %s missing from VisitorKeys", kind)
	}
}

func Test_Traverse_Order(t *testing.T) {
	prog := mustParse(t, `{"a": [1]}`, "")

	var enter, leave []string
	TraverseNodes(prog, Visitor{
		EnterNode: func(n Node) { enter = append(enter, n.Type()) },
		LeaveNode: func(n Node) { leave = append(leave, n.Type()) },
	})

	require.Equal(t, []string{
		"Program",
		"JSONExpressionStatement",
		"JSONObjectExpression",
		"JSONProperty",
		"JSONLiteral", // key "a"
		"JSONArrayExpression",
		"JSONLiteral", // element 1
	}, enter)

	// leave order is post-order
	require.Equal(t, []string{
		"JSONLiteral",
		"JSONLiteral",
		"JSONArrayExpression",
		"JSONProperty",
		"JSONObjectExpression",
		"JSONExpressionStatement",
		"Program",
	}, leave)
}

func Test_Traverse_Skips_Elisions(t *testing.T) {
	prog := mustParse(t, `[1,,2]`, "")
	count := 0
	TraverseNodes(prog, Visitor{EnterNode: func(n Node) {
		if n.Type() == "JSONLiteral" {
			count++
		}
	}})
	assert.Equal(t, 2, count)
}

func Test_Traverse_Template_Elements(t *testing.T) {
	prog := mustParse(t, "`x`", "")
	var kinds []string
	TraverseNodes(prog, Visitor{EnterNode: func(n Node) { kinds = append(kinds, n.Type()) }})
	require.Equal(t, []string{
		"Program",
		"JSONExpressionStatement",
		"JSONTemplateLiteral",
		"JSONTemplateElement",
	}, kinds)
}

// visitor.go — visitor-keys table and AST traversal.
package jsonc

// VisitorKeys maps each node kind to the ordered list of child-bearing
// field names, for tree walkers that dispatch on node type strings.
var VisitorKeys = map[string][]string{
	"Program":                 {"body"},
	"JSONExpressionStatement": {"expression"},
	"JSONObjectExpression":    {"properties"},
	"JSONProperty":            {"key", "value"},
	"JSONArrayExpression":     {"elements"},
	"JSONIdentifier":          {},
	"JSONLiteral":             {},
	"JSONUnaryExpression":     {"argument"},
	"JSONBinaryExpression":    {"left", "right"},
	"JSONTemplateLiteral":     {"quasis", "expressions"},
	"JSONTemplateElement":     {},
}

// Visitor receives traversal callbacks. Either callback may be nil.
type Visitor struct {
	EnterNode func(Node)
	LeaveNode func(Node)
}

// TraverseNodes walks the tree rooted at node in source order, visiting
// children in VisitorKeys order: EnterNode before a node's children,
// LeaveNode after. Array elisions (nil elements) are skipped.
func TraverseNodes(node Node, v Visitor) {
	if node == nil {
		return
	}
	if v.EnterNode != nil {
		v.EnterNode(node)
	}
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Body {
			TraverseNodes(stmt, v)
		}
	case *ExpressionStatement:
		TraverseNodes(n.Expression, v)
	case *ObjectExpression:
		for _, prop := range n.Properties {
			TraverseNodes(prop, v)
		}
	case *Property:
		TraverseNodes(n.Key, v)
		TraverseNodes(n.Value, v)
	case *ArrayExpression:
		for _, el := range n.Elements {
			if el != nil {
				TraverseNodes(el, v)
			}
		}
	case *UnaryExpression:
		TraverseNodes(n.Argument, v)
	case *BinaryExpression:
		TraverseNodes(n.Left, v)
		TraverseNodes(n.Right, v)
	case *TemplateLiteral:
		for _, q := range n.Quasis {
			TraverseNodes(q, v)
		}
		for _, e := range n.Expressions {
			TraverseNodes(e, v)
		}
	}
	if v.LeaveNode != nil {
		v.LeaveNode(node)
	}
}

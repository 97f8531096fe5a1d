// eval.go — static evaluator: materialize a JSON-family AST to a value.
//
// WHAT THIS MODULE DOES
// =====================
// `GetStaticJSONValue` recursively dispatches over node kinds and builds
// the runtime value a document denotes: string, float64, bool, nil,
// Undefined, []any, map[string]any, *regexp.Regexp or *big.Int.
//
// The evaluator is total over ASTs produced by the parser and partial
// (by *IllegalArgumentError) over hand-built misuse: it never validates
// dialect rules, so a caller constructing, say, a BinaryExpression by
// hand under a dialect that cannot parse one still gets its result.
// Two literal refinements tolerate un-constructible payloads by falling
// back to their textual representation:
//   - regexp literals whose flags or pattern have no RE2 counterpart
//     evaluate to the string "/pattern/flags";
//   - bigint literals whose text does not form an integer evaluate to
//     the raw digit text.
//
// The evaluator never mutates the AST.
package jsonc

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/grafana/regexp"
	"github.com/pkg/errors"
)

// UndefinedValue is the type of the Undefined sentinel.
type UndefinedValue struct{}

// Undefined is the evaluation result of the `undefined` identifier. It
// is distinct from nil, which represents JSON null.
var Undefined UndefinedValue

// GetStaticJSONValue materializes node to a runtime value.
func GetStaticJSONValue(node Node) (any, error) {
	switch n := node.(type) {
	case *Program:
		if len(n.Body) != 1 || n.Body[0] == nil {
			return nil, illegalArg("program must hold exactly one statement")
		}
		return GetStaticJSONValue(n.Body[0])

	case *ExpressionStatement:
		if n.Expression == nil {
			return nil, illegalArg("statement has no expression")
		}
		return GetStaticJSONValue(n.Expression)

	case *ObjectExpression:
		out := make(map[string]any, len(n.Properties))
		for _, prop := range n.Properties {
			key, err := propertyKey(prop)
			if err != nil {
				return nil, err
			}
			v, err := GetStaticJSONValue(prop.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "property %q", key)
			}
			// later keys overwrite earlier ones
			out[key] = v
		}
		return out, nil

	case *Property:
		key, err := propertyKey(n)
		if err != nil {
			return nil, err
		}
		v, err := GetStaticJSONValue(n.Value)
		if err != nil {
			return nil, err
		}
		return map[string]any{key: v}, nil

	case *ArrayExpression:
		out := make([]any, 0, len(n.Elements))
		for i, el := range n.Elements {
			if el == nil {
				// elision: the index stays, the slot stays empty
				out = append(out, nil)
				continue
			}
			v, err := GetStaticJSONValue(el)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			out = append(out, v)
		}
		return out, nil

	case *Literal:
		if n.Regex != nil {
			if re, ok := buildRegexp(n.Regex.Pattern, n.Regex.Flags); ok {
				return re, nil
			}
			return "/" + n.Regex.Pattern + "/" + n.Regex.Flags, nil
		}
		if n.Bigint != "" {
			if i, ok := new(big.Int).SetString(n.Bigint, 0); ok {
				return i, nil
			}
			return n.Bigint, nil
		}
		return n.Value, nil

	case *Identifier:
		switch n.Name {
		case "Infinity":
			return math.Inf(1), nil
		case "NaN":
			return math.NaN(), nil
		case "undefined":
			return Undefined, nil
		}
		return nil, illegalArg("unknown identifier " + strconv.Quote(n.Name))

	case *UnaryExpression:
		v, err := GetStaticJSONValue(n.Argument)
		if err != nil {
			return nil, err
		}
		f, ok := v.(float64)
		if !ok {
			return nil, illegalArg("unary operand is not a number")
		}
		switch n.Operator {
		case "-":
			return -f, nil
		case "+":
			return f, nil
		}
		return nil, illegalArg("unknown unary operator " + strconv.Quote(n.Operator))

	case *BinaryExpression:
		l, err := GetStaticJSONValue(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := GetStaticJSONValue(n.Right)
		if err != nil {
			return nil, err
		}
		lf, lok := l.(float64)
		rf, rok := r.(float64)
		if !lok || !rok {
			return nil, illegalArg("binary operand is not a number")
		}
		switch n.Operator {
		case "+":
			return lf + rf, nil
		case "-":
			return lf - rf, nil
		case "*":
			return lf * rf, nil
		case "/":
			// IEEE-754: ±Inf or NaN on zero divisors
			return lf / rf, nil
		case "%":
			return math.Mod(lf, rf), nil
		case "**":
			return math.Pow(lf, rf), nil
		}
		return nil, illegalArg("unknown binary operator " + strconv.Quote(n.Operator))

	case *TemplateLiteral:
		if len(n.Quasis) != 1 || len(n.Expressions) != 0 {
			return nil, illegalArg("template literal must hold exactly one element")
		}
		return GetStaticJSONValue(n.Quasis[0])

	case *TemplateElement:
		return n.Value.Cooked, nil
	}

	return nil, illegalArg("unknown node kind")
}

//// END_OF_PUBLIC

func illegalArg(msg string) error {
	return &IllegalArgumentError{Message: msg}
}

// propertyKey resolves a property's key to its string form: the
// identifier name, the string value, or the number rendered the way JS
// stringifies numbers.
func propertyKey(prop *Property) (string, error) {
	switch k := prop.Key.(type) {
	case *Identifier:
		return k.Name, nil
	case *Literal:
		switch v := k.Value.(type) {
		case string:
			return v, nil
		case float64:
			return jsNumberString(v), nil
		}
	}
	return "", illegalArg("property key must be an identifier, string or number")
}

// jsNumberString renders a float the way JS String(number) does for the
// values a property key can hold.
func jsNumberString(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	case math.Abs(v) < 1e21 && (v == math.Trunc(v) || math.Abs(v) >= 1e-6):
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		// JS writes the exponent without leading zeros: 1e-7, 1.5e+300
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
}

// buildRegexp translates JS regexp flags to an RE2 prefix and compiles.
// Flags with no RE2 counterpart ("g", "y", "d", "v") and patterns RE2
// rejects report !ok, triggering the textual fallback.
func buildRegexp(pattern, flags string) (*regexp.Regexp, bool) {
	prefix := ""
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			prefix += string(f)
		case 'u':
			// RE2 is Unicode-aware by default
		default:
			return nil, false
		}
	}
	if prefix != "" {
		pattern = "(?" + prefix + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false
	}
	return re, true
}

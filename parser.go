// parser.go — recursive-descent parser for the JSON-family dialects.
//
// OVERVIEW
// --------
// This module consumes the token stream produced by the lexer (see
// lexer.go) and builds the typed AST defined in ast.go, enforcing the
// active dialect's capability record (dialect.go) as it goes. A document
// is exactly one expression; anything after it is an error.
//
// Design notes:
//   - The lexer scans the full superset unconditionally and records shape
//     flags (quote style, number form, line continuations). The parser is
//     the single place where dialect gates fire, so "feature not allowed"
//     errors point at the offending token with the dialect's vocabulary.
//   - Trailing commas are detected at the grammar step: after an element
//     or property, a comma followed by the closing delimiter is a trailing
//     comma; a comma in element position is an array elision.
//   - Binary arithmetic parses by precedence climbing ('**' binds tightest
//     and associates right); both operands must be numeric forms.
//   - Every node's range/loc is computed from its delimiting tokens, and
//     parent back-references are assigned as nodes are built.
//
// Grammar (superset; capability gates not shown):
//
//	document  = expr EOF
//	expr      = operand (binop operand)*
//	operand   = object | array | unary | literal | identifier | template
//	object    = "{" [ property ("," property)* [","] ] "}"
//	property  = (string | number | ident) ":" expr
//	array     = "[" [ element ("," element)* [","] ] "]"
//	element   = expr | <elision>
//	unary     = ("-" | "+") (number | "Infinity" | "NaN" | unary)
//
// Dependencies
// ------------
//   - lexer.go (tokens, comments)
//   - ast.go (node universe)
//   - dialect.go (capability records)
//   - errors.go (*ParseError)
package jsonc

import (
	"fmt"
	"math"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// ParserOptions configures a parse. JSONSyntax selects the dialect
// ("JSON", "JSONC", "JSON5", case-insensitive); empty or unknown tags
// select the unrestricted superset. Ranges, locations, tokens and
// comments are always produced.
type ParserOptions struct {
	JSONSyntax string
}

// Services describes parser-provided services for downstream analyzers.
type Services struct {
	IsJSON bool
}

// ParseResult is the envelope returned by ParseForESLint.
type ParseResult struct {
	AST         *Program
	VisitorKeys map[string][]string
	Services    Services
}

// ParseForESLint parses code and returns the AST together with the
// visitor-keys table and parser services. On failure it returns a
// *ParseError carrying message, line, column and index in
// original-source coordinates.
func ParseForESLint(code string, opts *ParserOptions) (*ParseResult, error) {
	prog, err := ParseJSON(code, opts)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		AST:         prog,
		VisitorKeys: VisitorKeys,
		Services:    Services{IsJSON: true},
	}, nil
}

// ParseJSON parses code under the dialect selected by opts and returns
// the program node directly.
func ParseJSON(code string, opts *ParserOptions) (*Program, error) {
	var tag string
	if opts != nil {
		tag = opts.JSONSyntax
	}
	lex := NewLexer(code)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{
		toks:     toks,
		comments: lex.Comments(),
		src:      code,
		caps:     ContextFor(tag),
	}
	return p.program()
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
///////////////////////////// PRIVATE IMPLEMENTATION ///////////////////////////
////////////////////////////////////////////////////////////////////////////////

type parser struct {
	toks     []Token // EOF-terminated
	comments []Comment
	i        int
	src      string
	caps     Capabilities
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) next() Token {
	t := p.peek()
	if t.Type != EOF {
		p.i++
	}
	return t
}

func errAtToken(t Token, code ErrorCode, msg string) *ParseError {
	return &ParseError{
		Code:       code,
		Message:    msg,
		Index:      t.StartByte,
		LineNumber: t.Loc.Start.Line,
		Column:     t.Loc.Start.Column,
	}
}

func (p *parser) unexpected(t Token) error {
	if t.Type == EOF {
		return errAtToken(t, CodeUnexpectedToken, "unexpected end of input")
	}
	return errAtToken(t, CodeUnexpectedToken, fmt.Sprintf("unexpected token '%s'", tokenText(t)))
}

func (p *parser) invalidFor(t Token, feature string) error {
	e := errAtToken(t, CodeInvalidForDialect, feature+" not allowed in this dialect")
	e.Feature = feature
	return e
}

// startsValue reports whether a token can begin an expression; used to
// tell "second document value" apart from stray punctuation.
func startsValue(tt TokenType) bool {
	switch tt {
	case LCURLY, LSQUARE, STRING, NUMBER, BIGINT, IDENT, TEMPLATE, REGEXP, MINUS, PLUS:
		return true
	default:
		return false
	}
}

// ───────────────────────────── span helpers ─────────────────────────────────

func tokenSpan(n interface{ setSpan(Range, SourceLocation) }, t Token) {
	n.setSpan(Range{t.StartByte, t.EndByte}, t.Loc)
}

func tokensSpan(n interface{ setSpan(Range, SourceLocation) }, a, b Token) {
	n.setSpan(Range{a.StartByte, b.EndByte}, SourceLocation{Start: a.Loc.Start, End: b.Loc.End})
}

func nodesSpan(n interface{ setSpan(Range, SourceLocation) }, a, b Node) {
	n.setSpan(Range{a.Range()[0], b.Range()[1]}, SourceLocation{Start: a.Loc().Start, End: b.Loc().End})
}

func setParentOf(child Node, parent Node) {
	if child == nil {
		return
	}
	if s, ok := child.(interface{ setParent(Node) }); ok {
		s.setParent(parent)
	}
}

func (b *baseNode) setParent(n Node) { b.parent = n }

// ───────────────────────────── document ─────────────────────────────────────

func (p *parser) program() (*Program, error) {
	if p.peek().Type == EOF {
		return nil, &ParseError{
			Code:       CodeEmptyInput,
			Message:    "empty expression",
			Index:      0,
			LineNumber: 1,
			Column:     0,
		}
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.Type != EOF {
		switch {
		case t.Type == COMMA:
			return nil, errAtToken(t, CodeUnexpectedToken, "unexpected token ','")
		case t.Type == SPREAD:
			return nil, errAtToken(t, CodeUnexpectedToken, "unexpected token '...'")
		case startsValue(t.Type):
			return nil, errAtToken(t, CodeUnexpectedExtraArgument, "unexpected extra expression")
		default:
			return nil, p.unexpected(t)
		}
	}

	if !p.caps.Comments && len(p.comments) > 0 {
		c := p.comments[0]
		return nil, &ParseError{
			Code:       CodeUnexpectedComment,
			Message:    "unexpected comment",
			Index:      c.StartByte,
			LineNumber: c.Loc.Start.Line,
			Column:     c.Loc.Start.Column,
		}
	}

	stmt := &ExpressionStatement{Expression: expr}
	stmt.setSpan(expr.Range(), expr.Loc())
	setParentOf(expr, stmt)

	eof := p.toks[len(p.toks)-1]
	prog := &Program{
		Body:     []*ExpressionStatement{stmt},
		Tokens:   p.toks[:len(p.toks)-1],
		Comments: p.comments,
	}
	prog.setSpan(
		Range{0, len(p.src)},
		SourceLocation{Start: Position{Line: 1, Column: 0}, End: eof.Loc.Start},
	)
	stmt.setParent(prog)
	return prog, nil
}

// ───────────────────────────── expressions ──────────────────────────────────

func (p *parser) parseExpression() (Expression, error) {
	return p.parseBinary(1)
}

// binPrec returns the binding power of an arithmetic operator token,
// or 0 for non-operators.
func binPrec(tt TokenType) int {
	switch tt {
	case PLUS, MINUS:
		return 10
	case STAR, SLASH, PERCENT:
		return 20
	case STARSTAR:
		return 30
	}
	return 0
}

func opString(tt TokenType) string {
	switch tt {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case PERCENT:
		return "%"
	case STARSTAR:
		return "**"
	}
	return "?"
}

// isNumericForm reports whether e may serve as an arithmetic or sign
// operand.
func isNumericForm(e Expression) bool {
	switch n := e.(type) {
	case *Literal:
		return IsNumberLiteral(n)
	case *Identifier:
		return n.Name == "Infinity" || n.Name == "NaN"
	case *UnaryExpression, *BinaryExpression:
		return true
	}
	return false
}

// parseBinary implements precedence climbing over + - * / % **.
func (p *parser) parseBinary(minPrec int) (Expression, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		prec := binPrec(op.Type)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		if !p.caps.BinaryExpressions {
			return nil, p.invalidFor(op, "binary expression")
		}
		if !isNumericForm(left) {
			return nil, p.unexpected(op)
		}
		p.next()

		nextMin := prec + 1
		if op.Type == STARSTAR {
			nextMin = prec // right-associative
		}
		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}
		if !isNumericForm(right) {
			return nil, p.unexpected(op)
		}

		bin := &BinaryExpression{Operator: opString(op.Type), Left: left, Right: right}
		nodesSpan(bin, left, right)
		setParentOf(left, bin)
		setParentOf(right, bin)
		left = bin
	}
}

func (p *parser) parseOperand() (Expression, error) {
	t := p.peek()
	switch t.Type {
	case LCURLY:
		return p.parseObject()
	case LSQUARE:
		return p.parseArray()
	case MINUS, PLUS:
		return p.parseUnary()
	case STRING:
		p.next()
		return p.stringNode(t)
	case NUMBER:
		p.next()
		return p.numberNode(t)
	case BIGINT:
		p.next()
		return p.bigintNode(t)
	case REGEXP:
		p.next()
		return p.regexpNode(t)
	case TEMPLATE:
		p.next()
		return p.templateNode(t)
	case IDENT:
		p.next()
		return p.identValueNode(t)
	default:
		return nil, p.unexpected(t)
	}
}

// parseUnary consumes a sign and its numeric operand. Nested signs are
// permitted ("+-1"); whitespace between a sign and its operand requires
// the SpacedSigns capability.
func (p *parser) parseUnary() (Expression, error) {
	op := p.next()
	if op.Type == PLUS && !p.caps.PlusSigns {
		return nil, p.invalidFor(op, "plus sign")
	}

	argTok := p.peek()
	if argTok.StartByte != op.EndByte && !p.caps.SpacedSigns {
		return nil, p.invalidFor(op, "spaced sign")
	}

	var arg Expression
	var err error
	switch argTok.Type {
	case NUMBER:
		p.next()
		arg, err = p.numberNode(argTok)
	case MINUS, PLUS:
		arg, err = p.parseUnary()
	case IDENT:
		if argTok.Lexeme == "Infinity" || argTok.Lexeme == "NaN" {
			p.next()
			arg, err = p.identValueNode(argTok)
			break
		}
		return nil, p.unexpected(argTok)
	default:
		return nil, p.unexpected(argTok)
	}
	if err != nil {
		return nil, err
	}

	node := &UnaryExpression{Operator: opString(op.Type), Argument: arg}
	node.setSpan(
		Range{op.StartByte, arg.Range()[1]},
		SourceLocation{Start: op.Loc.Start, End: arg.Loc().End},
	)
	setParentOf(arg, node)
	return node, nil
}

// ───────────────────────────── aggregates ───────────────────────────────────

func (p *parser) parseObject() (Expression, error) {
	open := p.next()
	obj := &ObjectExpression{}

	if p.peek().Type == RCURLY {
		tokensSpan(obj, open, p.next())
		return obj, nil
	}

	for {
		prop, err := p.parseProperty(obj)
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, prop)

		t := p.next()
		switch t.Type {
		case COMMA:
			if p.peek().Type == RCURLY {
				if !p.caps.TrailingCommas {
					return nil, errAtToken(t, CodeUnexpectedToken, "unexpected token ','")
				}
				tokensSpan(obj, open, p.next())
				return obj, nil
			}
		case RCURLY:
			tokensSpan(obj, open, t)
			return obj, nil
		default:
			return nil, p.unexpected(t)
		}
	}
}

func (p *parser) parseProperty(parent *ObjectExpression) (*Property, error) {
	keyTok := p.peek()
	var key Node
	var err error
	switch keyTok.Type {
	case STRING:
		p.next()
		key, err = p.stringNode(keyTok)
	case NUMBER:
		if !p.caps.NumberProperties {
			return nil, p.invalidFor(keyTok, "number property key")
		}
		p.next()
		key, err = p.numberNode(keyTok)
	case IDENT:
		if !p.caps.UnquoteProperties {
			return nil, p.invalidFor(keyTok, "unquoted property name")
		}
		p.next()
		id := &Identifier{Name: keyTok.Lexeme}
		tokenSpan(id, keyTok)
		key = id
	default:
		// computed keys, spreads and anything else surface here
		return nil, p.unexpected(keyTok)
	}
	if err != nil {
		return nil, err
	}

	if colon := p.peek(); colon.Type != COLON {
		// shorthand and method properties surface here
		return nil, p.unexpected(colon)
	}
	p.next()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	prop := &Property{Key: key, Value: value, Kind: "init"}
	nodesSpan(prop, key, value)
	setParentOf(key, prop)
	setParentOf(value, prop)
	prop.setParent(parent)
	return prop, nil
}

func (p *parser) parseArray() (Expression, error) {
	open := p.next()
	arr := &ArrayExpression{}

	if p.peek().Type == RSQUARE {
		tokensSpan(arr, open, p.next())
		return arr, nil
	}

	for {
		if t := p.peek(); t.Type == COMMA {
			// elision: an absent element before a separator
			if !p.caps.SparseArrays {
				return nil, p.invalidFor(t, "sparse array")
			}
			arr.Elements = append(arr.Elements, nil)
			p.next()
			if p.peek().Type == RSQUARE {
				tokensSpan(arr, open, p.next())
				return arr, nil
			}
			continue
		}

		el, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, el)
		setParentOf(el, arr)

		t := p.next()
		switch t.Type {
		case COMMA:
			if p.peek().Type == RSQUARE {
				if !p.caps.TrailingCommas {
					return nil, errAtToken(t, CodeUnexpectedToken, "unexpected token ','")
				}
				tokensSpan(arr, open, p.next())
				return arr, nil
			}
		case RSQUARE:
			tokensSpan(arr, open, t)
			return arr, nil
		default:
			return nil, p.unexpected(t)
		}
	}
}

// ───────────────────────────── leaves ───────────────────────────────────────

func (p *parser) stringNode(t Token) (*Literal, error) {
	sl := t.Literal.(stringLit)
	if sl.quote == '\'' && !p.caps.SingleQuotes {
		return nil, p.invalidFor(t, "single-quoted string")
	}
	if sl.continuation && !p.caps.MultilineStrings {
		return nil, p.invalidFor(t, "multiline string")
	}
	lit := &Literal{Value: sl.value, Raw: t.Lexeme}
	tokenSpan(lit, t)
	return lit, nil
}

func (p *parser) numberNode(t Token) (*Literal, error) {
	nl := t.Literal.(numberLit)
	if !p.caps.LeadingOrTrailingDecimalPoints && (nl.leadingDot || nl.trailingDot) {
		return nil, p.invalidFor(t, "leading or trailing decimal point")
	}
	if !p.caps.InvalidJSONNumbers && (nl.nonDecimal || nl.leadingZero || math.IsInf(nl.value, 0)) {
		return nil, p.invalidFor(t, "non-standard number")
	}
	lit := &Literal{Value: nl.value, Raw: t.Lexeme}
	tokenSpan(lit, t)
	return lit, nil
}

func (p *parser) bigintNode(t Token) (*Literal, error) {
	if !p.caps.BigintLiterals {
		return nil, p.invalidFor(t, "bigint literal")
	}
	lit := &Literal{Bigint: t.Literal.(string), Raw: t.Lexeme}
	tokenSpan(lit, t)
	return lit, nil
}

func (p *parser) regexpNode(t Token) (*Literal, error) {
	if !p.caps.RegExpLiterals {
		return nil, p.invalidFor(t, "regular expression literal")
	}
	rl := t.Literal.(regexLit)
	lit := &Literal{Regex: &Regex{Pattern: rl.pattern, Flags: rl.flags}, Raw: t.Lexeme}
	tokenSpan(lit, t)
	return lit, nil
}

func (p *parser) templateNode(t Token) (*TemplateLiteral, error) {
	if !p.caps.TemplateLiterals {
		return nil, p.invalidFor(t, "template literal")
	}
	tl := t.Literal.(templateLit)

	el := &TemplateElement{
		Tail:  true,
		Value: TemplateValue{Cooked: tl.cooked, Raw: t.Lexeme[1 : len(t.Lexeme)-1]},
	}
	// the element spans the text between the backticks
	el.setSpan(
		Range{t.StartByte + 1, t.EndByte - 1},
		SourceLocation{
			Start: Position{Line: t.Loc.Start.Line, Column: t.Loc.Start.Column + 1},
			End:   Position{Line: t.Loc.End.Line, Column: t.Loc.End.Column - 1},
		},
	)

	node := &TemplateLiteral{Quasis: []*TemplateElement{el}}
	tokenSpan(node, t)
	el.setParent(node)
	return node, nil
}

func (p *parser) identValueNode(t Token) (Expression, error) {
	switch t.Lexeme {
	case "true":
		lit := &Literal{Value: true, Raw: "true"}
		tokenSpan(lit, t)
		return lit, nil
	case "false":
		lit := &Literal{Value: false, Raw: "false"}
		tokenSpan(lit, t)
		return lit, nil
	case "null":
		lit := &Literal{Value: nil, Raw: "null"}
		tokenSpan(lit, t)
		return lit, nil
	case "Infinity":
		if !p.caps.Infinities {
			return nil, p.invalidFor(t, "Infinity")
		}
	case "NaN":
		if !p.caps.NaNs {
			return nil, p.invalidFor(t, "NaN")
		}
	case "undefined":
		if !p.caps.UndefinedKeywords {
			return nil, p.invalidFor(t, "undefined")
		}
	default:
		return nil, p.unexpected(t)
	}
	id := &Identifier{Name: t.Lexeme}
	tokenSpan(id, t)
	return id, nil
}

// Package when implements the small boolean expression language that gates
// command applicability: variable lookup, !, &&, ||, and comparisons over
// strings, numbers, and booleans. Evaluation is pure; variables are resolved
// lazily through a Resolver so context values are only derived when an
// expression actually reads them.
package when

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolver supplies variable values during evaluation. Lookup reports false
// for unknown names.
type Resolver interface {
	Lookup(name string) (any, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (any, bool)

// Lookup implements Resolver.
func (f ResolverFunc) Lookup(name string) (any, bool) { return f(name) }

// Expr is a parsed when-expression, safe to evaluate repeatedly.
type Expr struct {
	root node
	src  string
}

// String returns the original expression source.
func (e *Expr) String() string { return e.src }

// Eval evaluates the expression against the resolver. The result of the
// whole expression must be boolean.
func (e *Expr) Eval(r Resolver) (bool, error) {
	v, err := e.root.eval(r)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("when-expression %q is not boolean", e.src)
	}
	return b, nil
}

// Parse compiles an expression. Grammar, loosest binding first:
//
//	expr   := and ('||' and)*
//	and    := unary ('&&' unary)*
//	unary  := '!' unary | cmp
//	cmp    := term (('=='|'!='|'<'|'<='|'>'|'>=') term)?
//	term   := '(' expr ')' | literal | variable
//
// Variable names may contain letters, digits, '.', '_', and '-'.
func Parse(src string) (*Expr, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("unexpected %q in expression %q", p.peek().text, src)
	}
	return &Expr{root: root, src: src}, nil
}

type node interface {
	eval(r Resolver) (any, error)
}

type literal struct{ value any }

func (l literal) eval(Resolver) (any, error) { return l.value, nil }

type variable struct{ name string }

func (v variable) eval(r Resolver) (any, error) {
	value, ok := r.Lookup(v.name)
	if !ok {
		return nil, fmt.Errorf("unknown variable %q", v.name)
	}
	return value, nil
}

type notExpr struct{ operand node }

func (n notExpr) eval(r Resolver) (any, error) {
	v, err := n.operand.eval(r)
	if err != nil {
		return nil, err
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("operand of ! is not boolean")
	}
	return !b, nil
}

type logicalExpr struct {
	op          string // "&&" or "||"
	left, right node
}

func (l logicalExpr) eval(r Resolver) (any, error) {
	lv, err := l.left.eval(r)
	if err != nil {
		return nil, err
	}
	lb, ok := lv.(bool)
	if !ok {
		return nil, fmt.Errorf("left operand of %s is not boolean", l.op)
	}
	// Short-circuit.
	if l.op == "&&" && !lb {
		return false, nil
	}
	if l.op == "||" && lb {
		return true, nil
	}
	rv, err := l.right.eval(r)
	if err != nil {
		return nil, err
	}
	rb, ok := rv.(bool)
	if !ok {
		return nil, fmt.Errorf("right operand of %s is not boolean", l.op)
	}
	return rb, nil
}

type compareExpr struct {
	op          string
	left, right node
}

func (c compareExpr) eval(r Resolver) (any, error) {
	lv, err := c.left.eval(r)
	if err != nil {
		return nil, err
	}
	rv, err := c.right.eval(r)
	if err != nil {
		return nil, err
	}
	return compare(c.op, lv, rv)
}

func compare(op string, left, right any) (any, error) {
	if ln, lok := asNumber(left); lok {
		rn, rok := asNumber(right)
		if !rok {
			return nil, fmt.Errorf("cannot compare number with %T", right)
		}
		switch op {
		case "==":
			return ln == rn, nil
		case "!=":
			return ln != rn, nil
		case "<":
			return ln < rn, nil
		case "<=":
			return ln <= rn, nil
		case ">":
			return ln > rn, nil
		default:
			return ln >= rn, nil
		}
	}
	if ls, ok := left.(string); ok {
		rs, rok := right.(string)
		if !rok {
			return nil, fmt.Errorf("cannot compare string with %T", right)
		}
		switch op {
		case "==":
			return ls == rs, nil
		case "!=":
			return ls != rs, nil
		case "<":
			return ls < rs, nil
		case "<=":
			return ls <= rs, nil
		case ">":
			return ls > rs, nil
		default:
			return ls >= rs, nil
		}
	}
	if lb, ok := left.(bool); ok {
		rb, rok := right.(bool)
		if !rok {
			return nil, fmt.Errorf("cannot compare bool with %T", right)
		}
		switch op {
		case "==":
			return lb == rb, nil
		case "!=":
			return lb != rb, nil
		default:
			return nil, fmt.Errorf("operator %s is not defined for booleans", op)
		}
	}
	return nil, fmt.Errorf("cannot compare %T values", left)
}

// asNumber widens any numeric type a resolver may hand back to float64.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenNumber
	tokenString
	tokenOp
	tokenParenOpen
	tokenParenClose
)

type token struct {
	kind tokenKind
	text string
}

func lex(src string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenParenOpen, text: "("})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenParenClose, text: ")"})
			i++
		case c == '&' || c == '|':
			if i+1 >= len(src) || src[i+1] != c {
				return nil, fmt.Errorf("unexpected %q at offset %d", string(c), i)
			}
			tokens = append(tokens, token{kind: tokenOp, text: src[i : i+2]})
			i += 2
		case c == '!' || c == '=' || c == '<' || c == '>':
			if i+1 < len(src) && src[i+1] == '=' {
				tokens = append(tokens, token{kind: tokenOp, text: src[i : i+2]})
				i += 2
				break
			}
			if c == '=' {
				return nil, fmt.Errorf("single '=' at offset %d, use '=='", i)
			}
			tokens = append(tokens, token{kind: tokenOp, text: string(c)})
			i++
		case c == '\'' || c == '"':
			end := strings.IndexByte(src[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("unterminated string at offset %d", i)
			}
			tokens = append(tokens, token{kind: tokenString, text: src[i+1 : i+1+end]})
			i += end + 2
		case c >= '0' && c <= '9':
			j := i
			for j < len(src) && (src[j] >= '0' && src[j] <= '9' || src[j] == '.') {
				j++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: src[i:j]})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(src) && isIdentChar(src[j]) {
				j++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: src[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", string(c), i)
		}
	}
	return tokens, nil
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

// Identifiers allow '-' and '.' so capability tokens like
// "capability.clipboard-copy" read as a single variable. The grammar has no
// arithmetic, so '-' is unambiguous.
func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '.' || c == '-'
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) done() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() token {
	if p.done() {
		return token{}
	}
	return p.tokens[p.pos]
}

func (p *parser) acceptOp(ops ...string) (string, bool) {
	if p.done() {
		return "", false
	}
	t := p.tokens[p.pos]
	if t.kind != tokenOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("||"); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = logicalExpr{op: "||", left: left, right: right}
	}
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("&&"); !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = logicalExpr{op: "&&", left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	if _, ok := p.acceptOp("!"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	op, ok := p.acceptOp("==", "!=", "<=", ">=", "<", ">")
	if !ok {
		return left, nil
	}
	right, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return compareExpr{op: op, left: left, right: right}, nil
}

func (p *parser) parseTerm() (node, error) {
	if p.done() {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	t := p.tokens[p.pos]
	switch t.kind {
	case tokenParenOpen:
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.done() || p.tokens[p.pos].kind != tokenParenClose {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case tokenNumber:
		p.pos++
		n, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", t.text)
		}
		return literal{value: n}, nil
	case tokenString:
		p.pos++
		return literal{value: t.text}, nil
	case tokenIdent:
		p.pos++
		switch t.text {
		case "true":
			return literal{value: true}, nil
		case "false":
			return literal{value: false}, nil
		}
		return variable{name: t.text}, nil
	default:
		return nil, fmt.Errorf("unexpected %q", t.text)
	}
}

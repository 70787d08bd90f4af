package schema

import (
	"strconv"
	"strings"

	"view-generator/internal/errors"
)

// ExprKind is the shape of a parsed type expression.
type ExprKind int

const (
	ExprNamed   ExprKind = iota // Name or Name<Args>
	ExprArray                   // Elem[]
	ExprFixed                   // Elem[Len]
	ExprPointer                 // *Elem
)

// TypeExpr is a parsed type reference.
type TypeExpr struct {
	Kind ExprKind
	Name string
	Args []*TypeExpr
	Elem *TypeExpr
	Len  int
}

// String returns the canonical spelling of the expression.
func (e *TypeExpr) String() string {
	switch e.Kind {
	case ExprArray:
		return e.Elem.String() + "[]"
	case ExprFixed:
		return e.Elem.String() + "[" + strconv.Itoa(e.Len) + "]"
	case ExprPointer:
		return "*" + e.Elem.String()
	}

	if len(e.Args) == 0 {
		return e.Name
	}

	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}

	return e.Name + "<" + strings.Join(args, ", ") + ">"
}

// ParseTypeExpr parses a type expression such as "List<Pair<int, T>>[4]".
func ParseTypeExpr(s string) (*TypeExpr, error) {
	p := &exprParser{src: s}

	e, err := p.expr()
	if err != nil {
		return nil, errors.Wrapf(err, "type %q", s)
	}

	p.skipSpace()

	if p.pos != len(p.src) {
		return nil, errors.Newf("type %q: unexpected %q at %d", s, p.src[p.pos:], p.pos)
	}

	return e, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()

	if p.pos < len(p.src) {
		return p.src[p.pos]
	}

	return 0
}

func (p *exprParser) expr() (*TypeExpr, error) {
	if p.peek() == '*' {
		p.pos++

		elem, err := p.expr()
		if err != nil {
			return nil, err
		}

		return &TypeExpr{Kind: ExprPointer, Elem: elem}, nil
	}

	e, err := p.named()
	if err != nil {
		return nil, err
	}

	for p.peek() == '[' {
		p.pos++

		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] != ']' {
			p.pos++
		}

		if p.pos == len(p.src) {
			return nil, errors.New("unterminated [")
		}

		size := strings.TrimSpace(p.src[start:p.pos])
		p.pos++

		if size == "" {
			e = &TypeExpr{Kind: ExprArray, Elem: e}
			continue
		}

		n, err := strconv.Atoi(size)
		if err != nil || n <= 0 {
			return nil, errors.Newf("invalid buffer length %q", size)
		}

		e = &TypeExpr{Kind: ExprFixed, Elem: e, Len: n}
	}

	return e, nil
}

func (p *exprParser) named() (*TypeExpr, error) {
	p.skipSpace()

	start := p.pos
	for p.pos < len(p.src) && isNameByte(p.src[p.pos]) {
		p.pos++
	}

	if start == p.pos {
		return nil, errors.Newf("expected a type name at %d", start)
	}

	e := &TypeExpr{Kind: ExprNamed, Name: p.src[start:p.pos]}

	if p.peek() != '<' {
		return e, nil
	}

	p.pos++

	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}

		e.Args = append(e.Args, arg)

		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return e, nil
		default:
			return nil, errors.Newf("expected , or > at %d", p.pos)
		}
	}
}

func isNameByte(c byte) bool {
	return c == '_' || c == '.' || c == '/' || c == '-' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

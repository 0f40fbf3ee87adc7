package latex

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrParse is matched by every ParseError.
var ErrParse = errors.New("latex parse error")

// ParseError reports input the parser could not turn into nodes.
type ParseError struct {
	Offset int // byte offset into the parsed text
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("latex: offset %d: %s", e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Options control how forgiving the parser is.
type Options struct {
	// Strict turns unbalanced input (unclosed math, groups and environments,
	// stray closers) into a ParseError. Otherwise open regions close at the end
	// of input and stray closers are kept as plain characters.
	Strict bool
}

type scopeKind int

const (
	topScope scopeKind = iota
	groupScope
	mathScope
	environmentScope
)

// scope is the region the parser is currently filling, it knows which token closes it.
type scope struct {
	kind  scopeKind
	delim string // math opening delimiter
	name  string // environment name
}

func (s scope) String() string {
	switch s.kind {
	case groupScope:
		return "group"
	case mathScope:
		return "math " + s.delim
	case environmentScope:
		return "environment " + s.name
	default:
		return "document"
	}
}

type Parser struct {
	tokens *Tokenizer
	opts   Options
	queue  []any
}

// Parse parses text with default options and returns the top level node list.
func Parse(text string) ([]Node, error) {
	return NewParser(strings.NewReader(text), Options{}).Parse()
}

func NewParser(r io.RuneScanner, opts Options) *Parser {
	return &Parser{tokens: NewTokenizer(r), opts: opts}
}

func (p *Parser) Parse() ([]Node, error) {
	return p.list(scope{kind: topScope})
}

func (p *Parser) next() (any, error) {
	if len(p.queue) > 0 {
		t := p.queue[0]
		p.queue = p.queue[1:]
		return t, nil
	}

	return p.tokens.Token()
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Offset: p.tokens.Offset(), Msg: fmt.Sprintf(format, args...)}
}

// list collects nodes until the token closing s, or the end of input.
func (p *Parser) list(s scope) ([]Node, error) {
	var children []Node
	for {
		t, err := p.next()
		if err == io.EOF {
			if s.kind != topScope && p.opts.Strict {
				return nil, p.errorf("%s is not closed", s)
			}

			return children, nil
		}

		if err != nil {
			return nil, err
		}

		if p.closes(s, t) {
			return children, nil
		}

		node, err := p.parse(s, t)
		if err != nil {
			return nil, err
		}

		if node == nil {
			continue
		}

		// merge consequent chars together
		if c, ok := node.(*CharsNode); ok && len(children) > 0 {
			if last, ok := children[len(children)-1].(*CharsNode); ok {
				last.Text += c.Text
				continue
			}
		}

		children = append(children, node)
	}
}

// closes reports whether t ends scope s.
func (p *Parser) closes(s scope, t any) bool {
	switch s.kind {
	case groupScope:
		_, ok := t.(BraceClose)
		return ok
	case environmentScope:
		end, ok := t.(EnvironmentEnd)
		return ok && end.Name == s.name
	case mathScope:
		switch token := t.(type) {
		case MathShift:
			if s.delim == "$" && token == "$$" {
				// $a$$b$ is two inline formulas: the first $ closes, the second opens
				p.queue = append(p.queue, MathShift("$"))
				return true
			}

			return string(token) == s.delim
		case MathClose:
			return (s.delim == `\(` && token == `\)`) || (s.delim == `\[` && token == `\]`)
		}
	}

	return false
}

func (p *Parser) parse(s scope, t any) (Node, error) {
	switch token := t.(type) {
	case Chars:
		return &CharsNode{Text: string(token)}, nil
	case ControlWord:
		return &MacroNode{Name: string(token)}, nil
	case ControlSymbol:
		return &MacroNode{Name: string(token)}, nil
	case Special:
		return &SpecialsNode{Chars: string(token)}, nil
	case Comment:
		return &CommentNode{Text: string(token)}, nil
	case BraceOpen:
		children, err := p.list(scope{kind: groupScope})
		if err != nil {
			return nil, err
		}

		return &GroupNode{Children: children}, nil
	case MathShift:
		if s.kind == mathScope {
			return p.stray(t)
		}

		return p.math(string(token))
	case MathOpen:
		if s.kind == mathScope {
			return p.stray(t)
		}

		return p.math(string(token))
	case EnvironmentStart:
		children, err := p.list(scope{kind: environmentScope, name: token.Name})
		if err != nil {
			return nil, err
		}

		return &EnvironmentNode{Name: token.Name, Children: children}, nil
	case BraceClose, MathClose, EnvironmentEnd:
		return p.stray(t)
	default:
		return nil, p.errorf("unexpected token %T", t)
	}
}

func (p *Parser) math(delim string) (Node, error) {
	children, err := p.list(scope{kind: mathScope, delim: delim})
	if err != nil {
		return nil, err
	}

	return &MathNode{Delimiter: delim, Display: delim == "$$" || delim == `\[`, Children: children}, nil
}

// stray handles a closer that does not belong to the current scope.
func (p *Parser) stray(t any) (Node, error) {
	if p.opts.Strict {
		return nil, p.errorf("unexpected %q", literal(t))
	}

	return &CharsNode{Text: literal(t)}, nil
}

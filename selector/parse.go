package selector

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrInvalidSelector is returned for selectors which cannot be parsed.
var ErrInvalidSelector = errors.New("invalid selector")

// pseudo functions taking a selector list as argument
var selectorFunctions = map[string]bool{
	":not": true, ":is": true, ":where": true, ":has": true, ":matches": true,
	":merge": true, ":-webkit-any": true, ":-moz-any": true, ":host": true,
	":host-context": true, "::slotted": true, "::part": false,
}

type token struct {
	tt   css.TokenType
	data string
}

type tokens struct {
	lexer  *css.Lexer
	peeked *token
	err    error
}

func (ts *tokens) next() token {
	if ts.peeked != nil {
		t := *ts.peeked
		ts.peeked = nil
		return t
	}
	for {
		tt, data := ts.lexer.Next()
		if tt == css.CommentToken {
			continue
		}
		if tt == css.ErrorToken {
			if err := ts.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				ts.err = err
			}
		}
		return token{tt, string(data)}
	}
}

func (ts *tokens) peek() token {
	if ts.peeked == nil {
		t := ts.next()
		ts.peeked = &t
	}
	return *ts.peeked
}

// Parse parses a selector list.
func Parse(input string) (List, error) {
	ts := &tokens{lexer: css.NewLexer(parse.NewInputString(input))}
	list, err := parseList(ts)
	if err == nil && ts.err != nil {
		err = ts.err
	}
	if err != nil {
		tracer().Debugf("cannot parse selector %q: %v", input, err)
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, input, err)
	}
	return list, nil
}

// MustParse parses a selector list and panics on error. It is intended for
// selectors known at compile time.
func MustParse(input string) List {
	l, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return l
}

func parseList(ts *tokens) (List, error) {
	var list List
	sel := &Selector{}
	pendingSpace := false
	push := func(n *Node) {
		if pendingSpace && len(sel.Nodes) > 0 && n.Kind != Combinator && !endsInCombinator(sel) {
			sel.Nodes = append(sel.Nodes, &Node{Kind: Combinator, Value: " "})
		}
		pendingSpace = false
		sel.Nodes = append(sel.Nodes, n)
	}
	for {
		t := ts.next()
		switch t.tt {
		case css.ErrorToken:
			if len(sel.Nodes) == 0 || endsInCombinator(sel) {
				return nil, errors.New("unexpected end of selector")
			}
			return append(list, sel), nil
		case css.WhitespaceToken:
			pendingSpace = true
		case css.CommaToken:
			if len(sel.Nodes) == 0 || endsInCombinator(sel) {
				return nil, errors.New("empty selector in list")
			}
			list = append(list, sel)
			sel = &Selector{}
			pendingSpace = false
		case css.IdentToken:
			push(&Node{Kind: Tag, Value: t.data})
		case css.HashToken:
			push(&Node{Kind: ID, Value: Unescape(t.data[1:])})
		case css.DelimToken:
			switch t.data {
			case ".":
				name := ts.next()
				if name.tt != css.IdentToken {
					return nil, fmt.Errorf("expected class name, have %q", name.data)
				}
				push(&Node{Kind: Class, Value: Unescape(name.data)})
			case "*":
				push(&Node{Kind: Universal, Value: "*"})
			case "&":
				push(&Node{Kind: Nesting, Value: "&"})
			case ">", "+", "~":
				if len(sel.Nodes) == 0 || endsInCombinator(sel) {
					return nil, fmt.Errorf("misplaced combinator %q", t.data)
				}
				pendingSpace = false
				sel.Nodes = append(sel.Nodes, &Node{Kind: Combinator, Value: t.data})
			default:
				return nil, fmt.Errorf("unexpected delimiter %q", t.data)
			}
		case css.ColonToken:
			n, err := parsePseudo(ts)
			if err != nil {
				return nil, err
			}
			push(n)
		case css.LeftBracketToken:
			raw, err := collectUntil(ts, css.LeftBracketToken, css.RightBracketToken)
			if err != nil {
				return nil, err
			}
			push(&Node{Kind: Attribute, Value: strings.TrimSpace(raw)})
		default:
			return nil, fmt.Errorf("unexpected token %q", t.data)
		}
	}
}

func endsInCombinator(sel *Selector) bool {
	return len(sel.Nodes) > 0 && sel.Nodes[len(sel.Nodes)-1].Kind == Combinator
}

func parsePseudo(ts *tokens) (*Node, error) {
	prefix := ":"
	if ts.peek().tt == css.ColonToken {
		ts.next()
		prefix = "::"
	}
	t := ts.next()
	switch t.tt {
	case css.IdentToken:
		return &Node{Kind: Pseudo, Value: prefix + strings.ToLower(t.data)}, nil
	case css.FunctionToken:
		name := prefix + strings.ToLower(strings.TrimSuffix(t.data, "("))
		raw, err := collectUntil(ts, css.LeftParenthesisToken, css.RightParenthesisToken)
		if err != nil {
			return nil, err
		}
		n := &Node{Kind: Pseudo, Value: name, Func: true, Raw: strings.TrimSpace(raw)}
		if selectorFunctions[name] {
			args, err := Parse(n.Raw)
			if err != nil {
				return nil, err
			}
			n.Args, n.Raw = args, ""
		}
		return n, nil
	}
	return nil, fmt.Errorf("expected pseudo name, have %q", t.data)
}

// collectUntil concatenates the source text of tokens up to the closing
// token matching an already consumed opening token.
func collectUntil(ts *tokens, open, close css.TokenType) (string, error) {
	var b strings.Builder
	depth := 0
	for {
		t := ts.next()
		switch t.tt {
		case css.ErrorToken:
			return "", errors.New("unbalanced brackets in selector")
		case open, css.FunctionToken:
			if t.tt == open || open == css.LeftParenthesisToken {
				depth++
			}
		case close:
			if depth == 0 {
				return b.String(), nil
			}
			depth--
		}
		b.WriteString(t.data)
	}
}

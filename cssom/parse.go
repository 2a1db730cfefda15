package cssom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
)

// ErrSyntax is returned for source stylesheets which cannot be parsed.
var ErrSyntax = errors.New("CSS syntax error")

// Parse parses a source stylesheet. At-rules with blocks, like `@media` or
// `@layer`, may nest arbitrary rules.
func Parse(input string) (*StyleSheet, error) {
	sheet := NewStyleSheet()
	in := parse.NewInputString(input)
	p := tcss.NewParser(in, false)
	var stack []*css.Rule
	var raw []*strings.Builder // block contents of at-rules the parser does not know
	var pendingSelectors []string
	lastClose := 0 // end of the last `}` which closed a block
	add := func(r *css.Rule) {
		if len(stack) == 0 {
			sheet.css.Rules = append(sheet.css.Rules, r)
			return
		}
		top := stack[len(stack)-1]
		top.Rules = append(top.Rules, r)
	}
	for {
		start := in.Offset()
		gt, tt, data := p.Next()
		switch gt {
		case tcss.ErrorGrammar:
			if err := p.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w at offset %d: %v", ErrSyntax, in.Offset(), err)
			}
			if len(stack) > 0 {
				return nil, fmt.Errorf("%w: unclosed block %q", ErrSyntax, blockName(stack[len(stack)-1]))
			}
			return sheet, nil
		case tcss.AtRuleGrammar:
			r := css.NewRule(css.AtRule)
			r.Name = string(data)
			r.Prelude = prelude(input[start:in.Offset()], r.Name, p.Values())
			add(r)
		case tcss.BeginAtRuleGrammar:
			r := css.NewRule(css.AtRule)
			r.Name = string(data)
			r.Prelude = prelude(input[start:in.Offset()], r.Name, p.Values())
			add(r)
			stack = append(stack, r)
			if knownBlockAtRule(r.Name) {
				raw = append(raw, nil)
			} else {
				raw = append(raw, &strings.Builder{})
			}
		case tcss.TokenGrammar:
			if len(raw) > 0 && raw[len(raw)-1] != nil {
				if tt != tcss.CommentToken {
					raw[len(raw)-1].Write(data)
				}
			}
		case tcss.QualifiedRuleGrammar:
			pendingSelectors = append(pendingSelectors, joinTokens(p.Values()))
		case tcss.BeginRulesetGrammar:
			sel := append(pendingSelectors, joinTokens(p.Values()))
			pendingSelectors = nil
			r := NewStyleRule(strings.Join(sel, ", "))
			add(r)
			stack = append(stack, r)
			raw = append(raw, nil)
		case tcss.EndAtRuleGrammar, tcss.EndRulesetGrammar:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w at offset %d: unexpected }", ErrSyntax, in.Offset())
			}
			// the parser closes open blocks at EOF by itself
			end := len(strings.TrimRight(input[:in.Offset()], " \t\r\n\f"))
			if end <= lastClose || input[end-1] != '}' {
				return nil, fmt.Errorf("%w: unclosed block %q", ErrSyntax, blockName(stack[len(stack)-1]))
			}
			lastClose = end
			if block := raw[len(raw)-1]; block != nil {
				if err := parseBlock(stack[len(stack)-1], block.String()); err != nil {
					return nil, err
				}
			}
			stack, raw = stack[:len(stack)-1], raw[:len(raw)-1]
		case tcss.DeclarationGrammar, tcss.CustomPropertyGrammar:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w at offset %d: declaration outside of a rule", ErrSyntax, in.Offset())
			}
			value, important := splitImportant(joinTokens(p.Values()))
			top := stack[len(stack)-1]
			top.Declarations = append(top.Declarations, &css.Declaration{
				Property:  string(data),
				Value:     value,
				Important: important,
			})
		case tcss.CommentGrammar:
			// strip comments
		default:
			tracer().Debugf("skipping grammar %v in source stylesheet", gt)
		}
	}
}

// knownBlockAtRule is true for at-rules whose blocks are tokenized into
// grammar units. Blocks of other at-rules arrive as a plain token stream.
func knownBlockAtRule(name string) bool {
	name = strings.ToLower(strings.TrimPrefix(name, "@"))
	if strings.HasPrefix(name, "-") {
		if i := strings.IndexByte(name[1:], '-'); i >= 0 {
			name = name[i+2:]
		}
	}
	switch name {
	case "media", "supports", "document", "keyframes", "font-face", "page":
		return true
	}
	return false
}

// parseBlock parses the raw block content of an at-rule, either as nested
// rules (`@layer`, `@container`) or as declarations (`@property`).
func parseBlock(r *css.Rule, block string) error {
	if strings.TrimSpace(block) == "" {
		return nil
	}
	nested, err := Parse(block)
	if err == nil {
		r.Rules = append(r.Rules, nested.Rules()...)
		return nil
	}
	decls, derr := parser.ParseDeclarations(block)
	if derr != nil || len(decls) == 0 {
		return fmt.Errorf("%w: cannot parse block of %s: %v", ErrSyntax, r.Name, err)
	}
	for _, d := range decls {
		v, important := splitImportant(d.Value)
		d.Value, d.Important = v, d.Important || important
	}
	r.Declarations = append(r.Declarations, decls...)
	return nil
}

func blockName(r *css.Rule) string {
	if r.Kind == css.AtRule {
		return r.Name
	}
	return Selector(r)
}

// prelude extracts the prelude of an at-rule from its source text src. The
// parser drops whitespace from at-rule tokens, which would turn
// `(min-width: 640px) and (hover)` into `(min-width:640px)and(hover)`.
func prelude(src, name string, tokens []tcss.Token) string {
	i := strings.Index(src, name)
	if i < 0 {
		return joinTokens(tokens)
	}
	text := strings.TrimSpace(src[i+len(name):])
	for _, end := range []string{"{", ";", "}"} {
		if strings.HasSuffix(text, end) {
			text = text[:len(text)-1]
			break
		}
	}
	return strings.Join(strings.Fields(text), " ")
}

// joinTokens re-creates the source text of a token list. Whitespace is
// collapsed, and word-like tokens which are directly adjacent get a
// separating blank.
func joinTokens(tokens []tcss.Token) string {
	var b strings.Builder
	prevWord := false
	space := false
	for _, t := range tokens {
		if t.TokenType == tcss.WhitespaceToken {
			space = true
			continue
		}
		word := isWordToken(t.TokenType)
		if b.Len() > 0 && (space || (prevWord && word)) {
			b.WriteByte(' ')
		}
		space = false
		b.Write(t.Data)
		prevWord = word
	}
	return b.String()
}

func isWordToken(tt tcss.TokenType) bool {
	switch tt {
	case tcss.IdentToken, tcss.NumberToken, tcss.DimensionToken, tcss.PercentageToken,
		tcss.HashToken, tcss.StringToken, tcss.URLToken:
		return true
	}
	return false
}

func splitImportant(value string) (string, bool) {
	v := strings.TrimSpace(value)
	lower := strings.ToLower(v)
	if !strings.HasSuffix(lower, "important") {
		return v, false
	}
	rest := strings.TrimSpace(v[:len(v)-len("important")])
	if !strings.HasSuffix(rest, "!") {
		return v, false
	}
	return strings.TrimSpace(rest[:len(rest)-1]), true
}

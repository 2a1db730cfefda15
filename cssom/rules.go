package cssom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/datatypes"
)

// Decl creates a declaration.
func Decl(property, value string) *css.Declaration {
	return &css.Declaration{Property: property, Value: value}
}

// NewStyleRule creates a qualified rule.
func NewStyleRule(selector string, decls ...*css.Declaration) *css.Rule {
	r := css.NewRule(css.QualifiedRule)
	SetSelector(r, selector)
	r.Declarations = decls
	return r
}

// NewAtRule creates an at-rule. name is given without the leading `@`.
func NewAtRule(name, params string, children ...*css.Rule) *css.Rule {
	r := css.NewRule(css.AtRule)
	r.Name = "@" + name
	r.Prelude = params
	r.Rules = children
	return r
}

// IsAtRule is true for at-rules of the given name (without `@`). An empty
// name matches every at-rule.
func IsAtRule(r *css.Rule, name string) bool {
	return r.Kind == css.AtRule && (name == "" || r.Name == "@"+name)
}

// AtRuleName returns the name of an at-rule without the leading `@`.
func AtRuleName(r *css.Rule) string {
	return strings.TrimPrefix(r.Name, "@")
}

// Selector returns the selector text of a qualified rule.
func Selector(r *css.Rule) string {
	return r.Prelude
}

// SetSelector sets the selector of a qualified rule.
func SetSelector(r *css.Rule, selector string) {
	r.Prelude = selector
	r.Selectors = nil
	for _, s := range datatypes.SplitAtTopLevelOnly(selector, ",") {
		if s = strings.TrimSpace(s); s != "" {
			r.Selectors = append(r.Selectors, s)
		}
	}
}

// Clone creates a deep copy of a rule tree.
func Clone(r *css.Rule) *css.Rule {
	if r == nil {
		return nil
	}
	c := *r
	c.Selectors = append([]string(nil), r.Selectors...)
	if r.Declarations != nil {
		c.Declarations = make([]*css.Declaration, len(r.Declarations))
		for i, d := range r.Declarations {
			dd := *d
			c.Declarations[i] = &dd
		}
	}
	if r.Rules != nil {
		c.Rules = make([]*css.Rule, len(r.Rules))
		for i, ch := range r.Rules {
			c.Rules[i] = Clone(ch)
		}
	}
	return &c
}

// CloneAll clones a list of rule trees.
func CloneAll(rules []*css.Rule) []*css.Rule {
	c := make([]*css.Rule, len(rules))
	for i, r := range rules {
		c[i] = Clone(r)
	}
	return c
}

// Walk visits r and all nested rules, depth first. fn receives the rule
// and its ancestors, outermost first. If fn returns false, the children of
// rule are skipped.
func Walk(r *css.Rule, fn func(rule *css.Rule, ancestors []*css.Rule) bool) {
	walk(r, nil, fn)
}

func walk(r *css.Rule, ancestors []*css.Rule, fn func(*css.Rule, []*css.Rule) bool) {
	if !fn(r, ancestors) {
		return
	}
	anc := append(ancestors[:len(ancestors):len(ancestors)], r)
	for _, ch := range r.Rules {
		walk(ch, anc, fn)
	}
}

// WalkStyleRules visits all qualified rules of a tree which are not nested
// inside `@keyframes`.
func WalkStyleRules(r *css.Rule, fn func(rule *css.Rule)) {
	Walk(r, func(rule *css.Rule, _ []*css.Rule) bool {
		if IsKeyframes(rule) {
			return false
		}
		if rule.Kind == css.QualifiedRule {
			fn(rule)
		}
		return true
	})
}

// WalkDecls visits all declarations of a tree together with the rule
// owning them and the ancestors of that rule.
func WalkDecls(r *css.Rule, fn func(d *css.Declaration, owner *css.Rule, ancestors []*css.Rule)) {
	Walk(r, func(rule *css.Rule, anc []*css.Rule) bool {
		for _, d := range rule.Declarations {
			fn(d, rule, anc)
		}
		return true
	})
}

// IsKeyframes is true for `@keyframes` at-rules, including vendor
// prefixed ones.
func IsKeyframes(r *css.Rule) bool {
	return r.Kind == css.AtRule && strings.HasSuffix(r.Name, "keyframes")
}

// RewriteSelectors replaces the selector of every qualified rule of a tree
// (outside of keyframes) by the result of fn. If fn returns an error, the
// rewrite stops and the error is returned.
func RewriteSelectors(r *css.Rule, fn func(selector string) (string, error)) error {
	var err error
	WalkStyleRules(r, func(rule *css.Rule) {
		if err != nil {
			return
		}
		var sel string
		if sel, err = fn(Selector(rule)); err == nil {
			SetSelector(rule, sel)
		}
	})
	return err
}

// Remove deletes child from the rules nested in parent. It reports whether
// child has been found.
func Remove(parent *css.Rule, child *css.Rule) bool {
	for i, ch := range parent.Rules {
		if ch == child {
			parent.Rules = append(parent.Rules[:i:i], parent.Rules[i+1:]...)
			return true
		}
	}
	return false
}

// Container wraps rules into an anonymous at-rule, giving them a common
// parent for walking. Unwrap with c.Rules.
func Container(rules ...*css.Rule) *css.Rule {
	c := css.NewRule(css.AtRule)
	c.Rules = rules
	return c
}

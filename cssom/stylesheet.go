package cssom

import (
	"github.com/aymerick/douceur/css"
)

// StyleSheet is the container of a source or output stylesheet. It wraps a
// douceur stylesheet; the stylesheet is managed by the wrapper.
type StyleSheet struct {
	css css.Stylesheet
}

// Wrap a douceur stylesheet into a StyleSheet.
func Wrap(sheet *css.Stylesheet) *StyleSheet {
	if sheet == nil {
		return &StyleSheet{}
	}
	return &StyleSheet{*sheet}
}

// NewStyleSheet creates a stylesheet from top-level rules.
func NewStyleSheet(rules ...*css.Rule) *StyleSheet {
	return &StyleSheet{css.Stylesheet{Rules: rules}}
}

// Empty checks if this stylesheet contains any rules.
func (sheet *StyleSheet) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// Rules returns the top-level rules of a stylesheet.
func (sheet *StyleSheet) Rules() []*css.Rule {
	return sheet.css.Rules
}

// SetRules replaces the top-level rules of a stylesheet.
func (sheet *StyleSheet) SetRules(rules []*css.Rule) {
	sheet.css.Rules = rules
}

// Clone creates a deep copy of a stylesheet.
func (sheet *StyleSheet) Clone() *StyleSheet {
	return NewStyleSheet(CloneAll(sheet.css.Rules)...)
}

// Walk visits every rule of the stylesheet, see function Walk.
func (sheet *StyleSheet) Walk(fn func(rule *css.Rule, ancestors []*css.Rule) bool) {
	for _, r := range sheet.css.Rules {
		Walk(r, fn)
	}
}

// Remove deletes a rule from the stylesheet, wherever it is nested. It
// reports whether the rule has been found.
func (sheet *StyleSheet) Remove(rule *css.Rule) bool {
	for i, r := range sheet.css.Rules {
		if r == rule {
			sheet.css.Rules = append(sheet.css.Rules[:i:i], sheet.css.Rules[i+1:]...)
			return true
		}
	}
	removed := false
	sheet.Walk(func(r *css.Rule, _ []*css.Rule) bool {
		if !removed && Remove(r, rule) {
			removed = true
		}
		return !removed
	})
	return removed
}

// Replace substitutes a list of rules for a rule of the stylesheet, wherever
// it is nested. It reports whether the rule has been found.
func (sheet *StyleSheet) Replace(rule *css.Rule, with []*css.Rule) bool {
	if rules, ok := replaceIn(sheet.css.Rules, rule, with); ok {
		sheet.css.Rules = rules
		return true
	}
	replaced := false
	sheet.Walk(func(r *css.Rule, _ []*css.Rule) bool {
		if replaced {
			return false
		}
		if rules, ok := replaceIn(r.Rules, rule, with); ok {
			r.Rules = rules
			replaced = true
		}
		return !replaced
	})
	return replaced
}

func replaceIn(rules []*css.Rule, rule *css.Rule, with []*css.Rule) ([]*css.Rule, bool) {
	for i, r := range rules {
		if r == rule {
			n := make([]*css.Rule, 0, len(rules)-1+len(with))
			n = append(n, rules[:i]...)
			n = append(n, with...)
			return append(n, rules[i+1:]...), true
		}
	}
	return rules, false
}

func (sheet *StyleSheet) String() string {
	return Print(sheet.css.Rules)
}

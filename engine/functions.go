package engine

import (
	"errors"
	"fmt"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/theme"
)

// EvaluateFunctions replaces `theme()` and `screen()` calls in declaration
// values and at-rule preludes of a stylesheet. A generated rule referring
// to a missing theme value is removed, and its candidate is excluded from
// future builds. In rules of the source stylesheet, the same problem is an
// error.
func (ctx *Context) EvaluateFunctions(sheet *cssom.StyleSheet) error {
	var invalid []*css.Rule
	reasons := make(map[*css.Rule]error)
	var err error
	sheet.Walk(func(r *css.Rule, ancestors []*css.Rule) bool {
		if err != nil {
			return false
		}
		if r.Kind == css.AtRule && r.Prelude != "" {
			var prelude string
			if prelude, err = ctx.theme.Evaluate(r.Prelude); err != nil {
				err = fmt.Errorf("%s %s: %w", r.Name, r.Prelude, err)
				return false
			}
			r.Prelude = prelude
		}
		for _, d := range r.Declarations {
			value, e := ctx.theme.Evaluate(d.Value)
			if e == nil {
				d.Value = value
				continue
			}
			if errors.Is(e, theme.ErrNoSuchPath) {
				if _, generated := ctx.candidateOf(r, ancestors); generated {
					if _, seen := reasons[r]; !seen {
						reasons[r] = fmt.Errorf("%s: %w", d.Property, e)
						invalid = append(invalid, r)
					}
					return false
				}
			}
			err = fmt.Errorf("%s: %w", d.Property, e)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	for _, r := range invalid {
		candidate, _ := ctx.candidateOf(r, nil)
		ctx.MarkInvalidUtilityNode(r)
		sheet.Remove(r)
		ctx.warn(InvalidTheme, "invalid-theme-key-in-class",
			fmt.Sprintf("The utility `%s` contains an invalid theme value and was not generated.", candidate),
			reasons[r].Error())
	}
	return nil
}

// candidateOf finds the candidate an assembled rule has been generated for.
func (ctx *Context) candidateOf(r *css.Rule, ancestors []*css.Rule) (string, bool) {
	if c, ok := ctx.nodes[r]; ok {
		return c, true
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if c, ok := ctx.nodes[ancestors[i]]; ok {
			return c, true
		}
	}
	return "", false
}

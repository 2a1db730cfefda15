package cssom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/datatypes"
)

// Object is an ordered CSS-in-Go object, the way plugins describe styles:
//
//     cssom.Object{
//         cssom.D("margin-top", "1rem"),
//         cssom.Nest("& > * + *", cssom.D("margin-left", "1rem")),
//         cssom.Nest("@media print", cssom.D("display", "none")),
//     }
//
// Items are either declarations or nested blocks. Nested selectors refer
// to the enclosing selector with `&`; nested at-rules wrap the enclosing
// selector.
type Object []Item

// Item is a declaration (Block == nil) or a nested block.
type Item struct {
	Property  string
	Value     string
	Important bool
	Selector  string
	Block     Object
}

// D creates a declaration item.
func D(property, value string) Item {
	return Item{Property: property, Value: value}
}

// Nest creates a nested block.
func Nest(selector string, items ...Item) Item {
	return Item{Selector: selector, Block: Object(items)}
}

// Decls returns the declarations of o, ignoring nested blocks.
func (o Object) Decls() []*css.Declaration {
	var decls []*css.Declaration
	for _, it := range o {
		if it.Block == nil && it.Selector == "" {
			decls = append(decls, &css.Declaration{Property: it.Property, Value: it.Value, Important: it.Important})
		}
	}
	return decls
}

// Rules flattens o into rules under selector. The rule carrying o's own
// declarations comes first, nested blocks follow in order.
func (o Object) Rules(selector string) []*css.Rule {
	var rules []*css.Rule
	if decls := o.Decls(); len(decls) > 0 {
		rules = append(rules, NewStyleRule(selector, decls...))
	}
	for _, it := range o {
		if it.Block == nil && it.Selector == "" {
			continue
		}
		if strings.HasPrefix(it.Selector, "@") {
			name, params := SplitAtRule(it.Selector)
			rules = append(rules, NewAtRule(name, params, it.Block.Rules(selector)...))
			continue
		}
		rules = append(rules, it.Block.Rules(nestSelector(selector, it.Selector))...)
	}
	return rules
}

// SplitAtRule splits at-rule text like `@media (min-width: 640px)` into the
// name and the parameters.
func SplitAtRule(s string) (string, string) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "@")
	i := strings.IndexAny(s, " ({")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// nestSelector resolves a nested selector against its parent, forming the
// cross product of both selector lists.
func nestSelector(parent, nested string) string {
	var out []string
	for _, p := range datatypes.SplitAtTopLevelOnly(parent, ",") {
		p = strings.TrimSpace(p)
		for _, n := range datatypes.SplitAtTopLevelOnly(nested, ",") {
			n = strings.TrimSpace(n)
			if strings.Contains(n, "&") {
				out = append(out, strings.ReplaceAll(n, "&", p))
			} else {
				out = append(out, p+" "+n)
			}
		}
	}
	return strings.Join(out, ", ")
}

package cssom

import (
	"strings"

	"github.com/aymerick/douceur/css"
)

// Print renders rules as CSS text. Output is deterministic: two spaces of
// indentation per level, one declaration per line, each terminated by a
// semicolon.
func Print(rules []*css.Rule) string {
	var b strings.Builder
	for _, r := range rules {
		printRule(&b, r, 0)
	}
	return b.String()
}

// DeclString renders a single declaration without trailing semicolon.
func DeclString(d *css.Declaration) string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important"
	}
	return d.Property + ": " + d.Value
}

func printRule(b *strings.Builder, r *css.Rule, level int) {
	indent := strings.Repeat("  ", level)
	b.WriteString(indent)
	if r.Kind == css.QualifiedRule {
		b.WriteString(Selector(r))
	} else {
		b.WriteString(r.Name)
		if r.Prelude != "" {
			b.WriteString(" ")
			b.WriteString(r.Prelude)
		}
		if len(r.Declarations) == 0 && len(r.Rules) == 0 {
			b.WriteString(";\n")
			return
		}
	}
	b.WriteString(" {\n")
	for _, d := range r.Declarations {
		b.WriteString(indent)
		b.WriteString("  ")
		b.WriteString(DeclString(d))
		b.WriteString(";\n")
	}
	for _, ch := range r.Rules {
		printRule(b, ch, level+1)
	}
	b.WriteString(indent)
	b.WriteString("}\n")
}

package cssom

import (
	"github.com/aymerick/douceur/css"
	"github.com/xlab/treeprint"
)

// Dump renders a rule tree for debugging.
func Dump(rules []*css.Rule) string {
	tree := treeprint.New()
	tree.SetValue("stylesheet")
	for _, r := range rules {
		dumpRule(tree, r)
	}
	return tree.String()
}

func dumpRule(tree treeprint.Tree, r *css.Rule) {
	var label string
	if r.Kind == css.AtRule {
		label = r.Name + " " + r.Prelude
	} else {
		label = Selector(r)
	}
	if len(r.Declarations) == 0 && len(r.Rules) == 0 {
		tree.AddNode(label)
		return
	}
	branch := tree.AddBranch(label)
	for _, d := range r.Declarations {
		branch.AddNode(DeclString(d))
	}
	for _, c := range r.Rules {
		dumpRule(branch, c)
	}
}

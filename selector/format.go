package selector

import (
	"strings"
)

// Format is one selector format contributed by a variant, e.g. `&:hover`.
// The nesting selector `&` stands for the selector built so far.
type Format struct {
	Format      string
	IsArbitrary bool // from an arbitrary variant like `[&>*]`; never prefixed
}

// Prefix prepends prefix to every class of the list. With prependNegative
// set, classes starting with a dash get the dash in front of the prefix.
func Prefix(l List, prefix string, prependNegative bool) {
	if prefix == "" {
		return
	}
	l.WalkClasses(func(n *Node) {
		if prependNegative && strings.HasPrefix(n.Value, "-") {
			n.Value = "-" + prefix + n.Value[1:]
		} else {
			n.Value = prefix + n.Value
		}
	})
}

// PrefixSelector parses a selector, prefixes its classes and prints it
// again. Selectors which do not parse are returned unchanged.
func PrefixSelector(sel string, prefix string, prependNegative bool) string {
	if prefix == "" {
		return sel
	}
	l, err := Parse(sel)
	if err != nil {
		return sel
	}
	Prefix(l, prefix, prependNegative)
	return l.String()
}

// EliminateIrrelevant removes all selectors from a list which do not
// contain a class named base.
func EliminateIrrelevant(l List, base string) List {
	var keep List
	for _, sel := range l {
		if sel.HasClass(base) {
			keep = append(keep, sel)
		}
	}
	return keep
}

// UpdateClasses replaces every class name of the list by the result of fn.
func UpdateClasses(l List, fn func(string) string) {
	l.WalkClasses(func(n *Node) {
		n.Value = fn(n.Value)
	})
}

// FormatVariants merges a sequence of variant formats, innermost first,
// into a selector for a candidate. The result for `hover:focus:underline`
// with formats `&:focus`, `&:hover` is `.hover\:focus\:underline:focus:hover`.
//
// Formats not stemming from arbitrary variants get their classes prefixed.
func FormatVariants(candidate string, formats []Format, prefix string) (List, error) {
	current := List{&Selector{Nodes: []*Node{NewClass(candidate)}}}
	for _, f := range formats {
		ast, err := Parse(f.Format)
		if err != nil {
			return nil, err
		}
		if !f.IsArbitrary {
			Prefix(ast, prefix, false)
		}
		mergePseudo(current, ast)
		replaceNesting(ast, current[0].Nodes)
		current = ast
	}
	return current, nil
}

// replaceNesting substitutes every `&` in l by a copy of nodes.
func replaceNesting(l List, nodes []*Node) {
	for _, sel := range l {
		var out []*Node
		for _, n := range sel.Nodes {
			if n.Kind == Nesting {
				for _, r := range nodes {
					out = append(out, r.Clone())
				}
				continue
			}
			if n.Kind == Pseudo && n.Args != nil {
				replaceNesting(n.Args, nodes)
			}
			out = append(out, n)
		}
		sel.Nodes = out
	}
}

type pseudoRef struct {
	sel *Selector
	n   *Node
}

func findMerges(l List) []pseudoRef {
	var refs []pseudoRef
	l.Walk(func(sel *Selector, i int) bool {
		if n := sel.Nodes[i]; n.Kind == Pseudo && n.Value == ":merge" {
			refs = append(refs, pseudoRef{sel, n})
		}
		return true
	})
	return refs
}

func indexOf(sel *Selector, n *Node) int {
	for i, m := range sel.Nodes {
		if m == n {
			return i
		}
	}
	return -1
}

// mergePseudo joins `:merge(x)` markers of format with equal markers already
// present in current. The simple selectors following a marker in format, up
// to the next combinator, are attached to the marker in current; marker,
// attachments and combinator are then removed from format.
func mergePseudo(current, format List) {
	existing := findMerges(current)
	if len(existing) == 0 {
		return
	}
	for _, ref := range findMerges(format) {
		key := ref.n.Args.String()
		var target *pseudoRef
		for i := range existing {
			if existing[i].n.Args.String() == key {
				target = &existing[i]
				break
			}
		}
		if target == nil {
			continue
		}
		i := indexOf(ref.sel, ref.n)
		if i < 0 {
			continue
		}
		j := i + 1
		var attachments []*Node
		for j < len(ref.sel.Nodes) && ref.sel.Nodes[j].Kind != Combinator {
			attachments = append(attachments, ref.sel.Nodes[j].Clone())
			j++
		}
		if j < len(ref.sel.Nodes) {
			j++ // drop the combinator as well
		}
		ref.sel.Nodes = append(ref.sel.Nodes[:i:i], ref.sel.Nodes[j:]...)
		at := indexOf(target.sel, target.n)
		nodes := append([]*Node{}, target.sel.Nodes[:at+1]...)
		nodes = append(nodes, attachments...)
		target.sel.Nodes = append(nodes, target.sel.Nodes[at+1:]...)
	}
}

// Finalize rewrites the selector current of a generated rule for a
// candidate: selectors not containing the base class are dropped, and
// every occurence of the base class is replaced by the first selector of
// format. `:merge()` markers are unwrapped and pseudo-elements are moved to
// the end. Finalize returns an empty string if no selector remains.
func Finalize(current string, format List, base string) (string, error) {
	l, err := Parse(current)
	if err != nil {
		return "", err
	}
	l = EliminateIrrelevant(l, base)
	if len(l) == 0 {
		return "", nil
	}
	if len(format) > 0 {
		replaceBase(l, format[0].Nodes, base)
	}
	unwrapMerge(l)
	for _, sel := range l {
		movePseudoElements(sel)
	}
	return l.String(), nil
}

func replaceBase(l List, formatNodes []*Node, base string) {
	for _, sel := range l {
		for i := 0; i < len(sel.Nodes); i++ {
			n := sel.Nodes[i]
			if n.Kind == Pseudo && n.Args != nil {
				replaceBase(n.Args, formatNodes, base)
				continue
			}
			if n.Kind != Class || n.Value != base {
				continue
			}
			if len(sel.Nodes) == 1 {
				sel.Nodes = cloneNodes(formatNodes)
				break
			}
			start, end := compoundBounds(sel.Nodes, i)
			var nodes []*Node
			nodes = append(nodes, sel.Nodes[:start]...)
			nodes = append(nodes, cloneNodes(formatNodes)...)
			nodes = append(nodes, sel.Nodes[start:i]...)
			nodes = append(nodes, sel.Nodes[i+1:end]...)
			rest := sel.Nodes[end:]
			stop := len(nodes)
			for k := start; k < len(nodes); k++ {
				if nodes[k].Kind == Combinator {
					stop = k
					break
				}
			}
			resort(nodes[start:stop])
			i = len(nodes) - 1
			sel.Nodes = append(nodes, rest...)
		}
	}
}

func cloneNodes(nodes []*Node) []*Node {
	c := make([]*Node, len(nodes))
	for i, n := range nodes {
		c[i] = n.Clone()
	}
	return c
}

// compoundBounds returns the range of the compound selector around index i.
func compoundBounds(nodes []*Node, i int) (int, int) {
	start, end := i, i+1
	for start > 0 && nodes[start-1].Kind != Combinator {
		start--
	}
	for end < len(nodes) && nodes[end].Kind != Combinator {
		end++
	}
	return start, end
}

// resort orders a compound selector: tags before classes, classes before
// pseudo-elements. Other nodes keep their relative order.
func resort(nodes []*Node) {
	less := func(a, b *Node) bool {
		switch {
		case a.Kind == Tag && b.Kind == Class:
			return true
		case a.Kind == Class && b.Kind == Pseudo && strings.HasPrefix(b.Value, "::"):
			return true
		}
		return false
	}
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && less(nodes[j], nodes[j-1]); j-- {
			nodes[j], nodes[j-1] = nodes[j-1], nodes[j]
		}
	}
}

// unwrapMerge replaces `:merge(x)` by x.
func unwrapMerge(l List) {
	for _, sel := range l {
		var out []*Node
		for _, n := range sel.Nodes {
			if n.Kind == Pseudo && n.Value == ":merge" {
				if len(n.Args) > 0 {
					out = append(out, n.Args[0].Nodes...)
				}
				continue
			}
			if n.Kind == Pseudo && n.Args != nil {
				unwrapMerge(n.Args)
			}
			out = append(out, n)
		}
		sel.Nodes = out
	}
}

// movePseudoElements moves all pseudo-elements of a selector to its end,
// keeping their relative order.
func movePseudoElements(sel *Selector) {
	var rest, elements []*Node
	for _, n := range sel.Nodes {
		if n.IsPseudoElement() {
			elements = append(elements, n)
		} else {
			rest = append(rest, n)
		}
	}
	if len(elements) == 0 {
		return
	}
	for len(rest) > 0 && rest[len(rest)-1].Kind == Combinator {
		rest = rest[:len(rest)-1]
	}
	sel.Nodes = append(rest, elements...)
}

package selector

import (
	"strings"
)

// Kind is the type of a selector node.
type Kind uint8

// Kinds of selector nodes.
const (
	Tag Kind = iota
	Class
	ID
	Attribute
	Pseudo
	Universal
	Nesting
	Combinator
)

func (k Kind) String() string {
	return [...]string{"tag", "class", "id", "attribute", "pseudo", "universal",
		"nesting", "combinator"}[k]
}

// Node is a simple selector or a combinator.
//
// Value holds the unescaped name for classes and ids, the tag name, the
// pseudo name including its colons (":hover", "::before"), the inner text of
// an attribute selector, or the combinator character (" " for descendant).
type Node struct {
	Kind  Kind
	Value string
	Func  bool   // pseudo written as a function, e.g. :not(…)
	Args  List   // selector arguments of :not(), :is(), :merge(), …
	Raw   string // arguments of other functional pseudos, e.g. :nth-child(2n+1)
}

// Selector is a complex selector: a flat sequence of compound selectors
// separated by combinators.
type Selector struct {
	Nodes []*Node
}

// List is a selector list, the comma separated prelude of a rule.
type List []*Selector

// NewClass creates a class node.
func NewClass(name string) *Node {
	return &Node{Kind: Class, Value: name}
}

// IsPseudoElement reports whether n is a pseudo-element. Legacy
// single-colon forms like `:before` count as pseudo-elements. A few
// pseudo-elements which allow pseudo-classes to follow them are
// excluded.
func (n *Node) IsPseudoElement() bool {
	if n.Kind != Pseudo {
		return false
	}
	switch n.Value {
	case "::file-selector-button", "::-webkit-scrollbar", "::-webkit-scrollbar-button",
		"::-webkit-scrollbar-thumb", "::-webkit-scrollbar-track",
		"::-webkit-scrollbar-track-piece", "::-webkit-scrollbar-corner",
		"::-webkit-resizer":
		return false
	case ":before", ":after", ":first-line", ":first-letter":
		return true
	}
	return strings.HasPrefix(n.Value, "::")
}

// Clone creates a deep copy of a node.
func (n *Node) Clone() *Node {
	c := *n
	c.Args = n.Args.Clone()
	return &c
}

func (n *Node) String() string {
	switch n.Kind {
	case Class:
		return "." + EscapeClassName(n.Value)
	case ID:
		return "#" + EscapeIdent(n.Value)
	case Attribute:
		return "[" + n.Value + "]"
	case Pseudo:
		if !n.Func {
			return n.Value
		}
		if n.Args != nil {
			return n.Value + "(" + n.Args.String() + ")"
		}
		return n.Value + "(" + n.Raw + ")"
	case Combinator:
		if n.Value == " " {
			return " "
		}
		return " " + n.Value + " "
	}
	return n.Value
}

// Clone creates a deep copy of a selector.
func (s *Selector) Clone() *Selector {
	c := &Selector{Nodes: make([]*Node, len(s.Nodes))}
	for i, n := range s.Nodes {
		c.Nodes[i] = n.Clone()
	}
	return c
}

func (s *Selector) String() string {
	var b strings.Builder
	for _, n := range s.Nodes {
		b.WriteString(n.String())
	}
	return b.String()
}

// Clone creates a deep copy of a selector list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	c := make(List, len(l))
	for i, s := range l {
		c[i] = s.Clone()
	}
	return c
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, s := range l {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// Walk calls fn for every node of the list, descending into the arguments of
// pseudo selectors. fn receives the selector containing the node and the
// node's index therein. Returning false from fn stops the walk.
func (l List) Walk(fn func(sel *Selector, i int) bool) bool {
	for _, sel := range l {
		for i := 0; i < len(sel.Nodes); i++ {
			n := sel.Nodes[i]
			if !fn(sel, i) {
				return false
			}
			if n.Kind == Pseudo && n.Args != nil {
				if !n.Args.Walk(fn) {
					return false
				}
			}
		}
	}
	return true
}

// WalkClasses calls fn for every class node of the list.
func (l List) WalkClasses(fn func(n *Node)) {
	l.Walk(func(sel *Selector, i int) bool {
		if sel.Nodes[i].Kind == Class {
			fn(sel.Nodes[i])
		}
		return true
	})
}

// Classes returns the names of all classes of the list, in order of
// appearance. Classes inside `:not()` are skipped.
func (l List) Classes() []string {
	var classes []string
	for _, sel := range l {
		for _, n := range sel.Nodes {
			switch {
			case n.Kind == Class:
				classes = append(classes, n.Value)
			case n.Kind == Pseudo && n.Value == ":not":
			case n.Kind == Pseudo && n.Args != nil:
				classes = append(classes, n.Args.Classes()...)
			}
		}
	}
	return classes
}

// HasClass reports whether a class with the given name appears anywhere in s.
func (s *Selector) HasClass(name string) bool {
	found := false
	List{s}.Walk(func(sel *Selector, i int) bool {
		if n := sel.Nodes[i]; n.Kind == Class && n.Value == name {
			found = true
			return false
		}
		return true
	})
	return found
}

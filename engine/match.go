package engine

import (
	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/selector"
	"github.com/npillmayer/jitcss/sortkey"
)

// Match is a rule generated for a candidate, before the important policy
// of the configuration has been applied.
type Match struct {
	Sort      sortkey.Offset
	Layer     sortkey.Layer // registration layer
	Options   Options
	Rule      *css.Rule
	Important bool // candidate carries a `!`

	classCandidate string // candidate without variants and `!`
	candidate      string
	formats        []selector.Format // collected from variants, innermost first
	varied         bool              // at least one variant has been applied
}

// ClassCandidate returns the utility part of the candidate of m.
func (m *Match) ClassCandidate() string {
	return m.classCandidate
}

// GeneratedRule is an entry of the rule cache of a context.
type GeneratedRule struct {
	ID             uint64
	Sort           sortkey.Offset
	Rule           *css.Rule
	Candidate      string
	Layer          sortkey.Layer
	PreserveSource bool
}

// ParentLayer is the layer a variant rule originates from.
func (g *GeneratedRule) ParentLayer() sortkey.Layer {
	return g.Sort.ParentLayer
}

package engine

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/cssom"
)

// GenerateRules resolves candidates to rules. Results are cached per
// candidate; candidates without any match are remembered and skipped in
// later calls. The important policy of the configuration is applied to
// rules which respect it.
func (ctx *Context) GenerateRules(candidates []string) []*GeneratedRule {
	var all []*GeneratedRule
	for _, candidate := range candidates {
		if _, no := ctx.notClassCache[candidate]; no {
			continue
		}
		if cached, ok := ctx.candidateRuleCache[candidate]; ok {
			all = append(all, cached...)
			continue
		}
		matches := ctx.resolveMatches(candidate)
		if len(matches) == 0 {
			ctx.notClassCache[candidate] = struct{}{}
			continue
		}
		ctx.classCache[candidate] = matches
		rules := ctx.candidateRuleCache[candidate]
		for _, m := range matches {
			rule := m.Rule
			if m.Options.RespectImportant {
				rule = ctx.applyImportantPolicy(rule)
			}
			ctx.nextID++
			g := &GeneratedRule{
				ID:             ctx.nextID,
				Sort:           m.Sort,
				Rule:           rule,
				Candidate:      candidate,
				Layer:          m.Layer,
				PreserveSource: m.Options.PreserveSource,
			}
			rules = append(rules, g)
			ctx.ruleCache[g.ID] = g
			all = append(all, g)
		}
		ctx.candidateRuleCache[candidate] = rules
	}
	tracer().Debugf("generated %d rules for %d candidates", len(all), len(candidates))
	return all
}

// applyImportantPolicy applies the `important` setting of the
// configuration to a copy of rule. Rules inside keyframes are left alone.
func (ctx *Context) applyImportantPolicy(rule *css.Rule) *css.Rule {
	switch {
	case ctx.important.All:
		rule = cssom.Clone(rule)
		cssom.WalkStyleRules(rule, func(r *css.Rule) {
			for _, d := range r.Declarations {
				d.Important = true
			}
		})
	case ctx.important.Selector != "":
		rule = cssom.Clone(rule)
		cssom.WalkStyleRules(rule, func(r *css.Rule) {
			sels := make([]string, len(r.Selectors))
			for i, s := range r.Selectors {
				sels[i] = ctx.important.Selector + " " + s
			}
			cssom.SetSelector(r, strings.Join(sels, ", "))
		})
	}
	return rule
}

// MarkInvalidUtilityCandidate excludes a candidate from future builds and
// drops it from the candidate caches. Rules already in the rule cache are
// kept, see MarkInvalidUtilityNode.
func (ctx *Context) MarkInvalidUtilityCandidate(candidate string) {
	if _, ok := ctx.classCache[candidate]; !ok {
		return
	}
	ctx.notClassCache[candidate] = struct{}{}
	delete(ctx.classCache, candidate)
	delete(ctx.candidateRuleMap, candidate)
	delete(ctx.candidateRuleCache, candidate)
	ctx.stylesheetCache = nil
	tracer().Infof("candidate %s marked invalid", candidate)
}

// MarkInvalidUtilityNode removes all rules of the candidate an assembled
// rule has been generated for and marks the candidate invalid.
func (ctx *Context) MarkInvalidUtilityNode(node *css.Rule) {
	candidate, ok := ctx.nodes[node]
	if !ok {
		return
	}
	for id, g := range ctx.ruleCache {
		if g.Candidate == candidate {
			delete(ctx.ruleCache, id)
		}
	}
	ctx.MarkInvalidUtilityCandidate(candidate)
}

package engine

import (
	"sort"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/extract"
	"github.com/npillmayer/jitcss/sortkey"
	"github.com/npillmayer/schuko/tracing"
)

// layerSet holds the cached rules of a context, sorted and grouped by
// output layer.
type layerSet [sortkey.Variants + 1][]*GeneratedRule

// buildLayers sorts all cached rules. Rules with equal offsets are ordered
// by candidate and then by generation.
func (ctx *Context) buildLayers() *layerSet {
	rules := make([]*GeneratedRule, 0, len(ctx.ruleCache))
	for _, g := range ctx.ruleCache {
		rules = append(rules, g)
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Candidate != rules[j].Candidate {
			return rules[i].Candidate < rules[j].Candidate
		}
		return rules[i].ID < rules[j].ID
	})
	sortkey.Sort(ctx.offsets, rules, func(g *GeneratedRule) sortkey.Offset { return g.Sort })
	var set layerSet
	for _, g := range rules {
		set[g.Sort.Layer] = append(set[g.Sort.Layer], g)
	}
	return &set
}

// AddContent queues content for the next call to Expand.
func (ctx *Context) AddContent(content ...extract.Content) {
	ctx.changedContent = append(ctx.changedContent, content...)
}

// Expand replaces the `@tailwind base|components|utilities|variants`
// directives of a stylesheet by the rules generated for the candidates
// found in changed content, together with the candidates of earlier builds.
// Variant rules are inserted at `@tailwind variants` if present, otherwise
// they are appended to the stylesheet. Stylesheets without directives are
// left untouched.
func (ctx *Context) Expand(sheet *cssom.StyleSheet, changed []extract.Content) error {
	var directives [sortkey.Variants + 1]*css.Rule
	found := false
	sheet.Walk(func(r *css.Rule, _ []*css.Rule) bool {
		if cssom.IsAtRule(r, "tailwind") {
			if layer, ok := sortkey.ParseLayer(r.Prelude); ok {
				directives[layer] = r
				found = true
			}
		}
		return true
	})
	if !found {
		return nil
	}
	ctx.nodes = make(map[*css.Rule]string)
	ctx.AddContent(changed...)
	if err := ctx.scanner.Scan(ctx.changedContent, ctx.candidates); err != nil {
		return err
	}
	candidates := make([]string, 0, len(ctx.candidates))
	for c := range ctx.candidates {
		candidates = append(candidates, c)
	}
	sort.Strings(candidates)
	classCount := len(ctx.classCache)
	ctx.GenerateRules(candidates)
	if ctx.stylesheetCache == nil || len(ctx.classCache) != classCount {
		ctx.stylesheetCache = ctx.buildLayers()
	}
	layers := ctx.stylesheetCache
	for _, layer := range []sortkey.Layer{sortkey.Base, sortkey.Components, sortkey.Utilities} {
		if d := directives[layer]; d != nil {
			sheet.Replace(d, ctx.cloneRules(layers[layer]))
		}
	}
	var variants []*GeneratedRule
	hasUtilityVariants := false
	for _, g := range layers[sortkey.Variants] {
		switch g.ParentLayer() {
		case sortkey.Components:
			if directives[sortkey.Components] == nil {
				continue
			}
		case sortkey.Utilities:
			if directives[sortkey.Utilities] == nil {
				continue
			}
			hasUtilityVariants = true
		}
		variants = append(variants, g)
	}
	if d := directives[sortkey.Variants]; d != nil {
		sheet.Replace(d, ctx.cloneRules(variants))
	} else if len(variants) > 0 {
		sheet.SetRules(append(sheet.Rules(), ctx.cloneRules(variants)...))
	}
	if directives[sortkey.Utilities] != nil && len(layers[sortkey.Utilities]) == 0 && !hasUtilityVariants {
		ctx.warn(NoUtilities, "content-problems",
			"No utility classes were detected in your source files. If this is unexpected, "+
				"double-check the `content` option in your configuration.")
	}
	ctx.changedContent = nil
	removeLayerRules(sheet)
	tracer().Debugf("expanded stylesheet: %d candidates, %d classes", len(ctx.candidates), len(ctx.classCache))
	if tracer().GetTraceLevel() >= tracing.LevelDebug {
		tracer().Debugf("%s", cssom.Dump(sheet.Rules()))
	}
	return nil
}

// cloneRules copies cached rules for output and remembers the candidate of
// every copy.
func (ctx *Context) cloneRules(rules []*GeneratedRule) []*css.Rule {
	clones := make([]*css.Rule, len(rules))
	for i, g := range rules {
		c := cssom.Clone(g.Rule)
		cssom.Walk(c, func(r *css.Rule, _ []*css.Rule) bool {
			ctx.nodes[r] = g.Candidate
			return true
		})
		clones[i] = c
	}
	return clones
}

// removeLayerRules deletes leftover `@layer` rules for the layers of the
// engine.
func removeLayerRules(sheet *cssom.StyleSheet) {
	var leftovers []*css.Rule
	sheet.Walk(func(r *css.Rule, _ []*css.Rule) bool {
		if cssom.IsAtRule(r, "layer") {
			if _, ok := sortkey.ParseLayer(r.Prelude); ok {
				leftovers = append(leftovers, r)
				return false
			}
		}
		return true
	})
	for _, r := range leftovers {
		sheet.Remove(r)
	}
}

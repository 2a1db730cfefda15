package engine

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/datatypes"
	"github.com/npillmayer/jitcss/selector"
	"github.com/npillmayer/jitcss/sortkey"
)

// permutation is a split of a class candidate into a utility identifier
// and a modifier.
type permutation struct {
	prefix, modifier string
}

// candidatePermutations lists the possible splits of a class candidate,
// longest identifier first:
//
//     ring-offset-blue-100  →  ring-offset-blue / 100, ring-offset / blue-100, ring / offset-blue-100
//     grid-cols-[1fr,auto]  →  grid-cols / [1fr,auto], grid / cols-[1fr,auto]
//
// A split at a slash keeps the slash with the modifier.
func candidatePermutations(candidate string) []permutation {
	var perms []permutation
	first := true
	last := len(candidate) - 1
	for last >= 0 {
		dash, wasSlash := -1, false
		switch {
		case first && strings.HasSuffix(candidate, "]"):
			bracket := strings.IndexByte(candidate, '[')
			if bracket > 0 && candidate[bracket-1] == '-' {
				dash = bracket - 1
			} else if bracket > 0 && candidate[bracket-1] == '/' {
				dash, wasSlash = bracket-1, true
			}
		case first && strings.Contains(candidate, "/"):
			dash, wasSlash = strings.LastIndexByte(candidate, '/'), true
		default:
			dash = strings.LastIndexByte(candidate[:last+1], '-')
		}
		first = false
		if dash < 0 {
			break
		}
		prefix := candidate[:dash]
		modifier := candidate[dash+1:]
		if wasSlash {
			modifier = candidate[dash:]
		}
		last = dash - 1
		if prefix == "" || modifier == "/" {
			continue
		}
		perms = append(perms, permutation{prefix, modifier})
	}
	return perms
}

// pluginGroup is the set of entries registered for an identifier, together
// with the modifier to call them with.
type pluginGroup struct {
	entries  []*entry
	modifier string
}

// matchedPlugins lists the entry groups a class candidate may resolve to,
// in order of precedence.
func (ctx *Context) matchedPlugins(classCandidate string) []pluginGroup {
	var groups []pluginGroup
	if entries, ok := ctx.candidateRuleMap[classCandidate]; ok {
		groups = append(groups, pluginGroup{entries, "DEFAULT"})
	}
	if e := ctx.extractArbitraryProperty(classCandidate); e != nil {
		groups = append(groups, pluginGroup{[]*entry{e}, "DEFAULT"})
	}
	candidatePrefix, negative := classCandidate, false
	prefixLen := len(ctx.prefix)
	if len(classCandidate) > prefixLen && classCandidate[prefixLen] == '-' &&
		(strings.HasPrefix(classCandidate, ctx.prefix) || strings.HasPrefix(classCandidate, "-"+ctx.prefix)) {
		negative = true
		candidatePrefix = ctx.prefix + classCandidate[prefixLen+1:]
	}
	if negative {
		if entries, ok := ctx.candidateRuleMap[candidatePrefix]; ok {
			groups = append(groups, pluginGroup{entries, "-DEFAULT"})
		}
	}
	for _, p := range candidatePermutations(candidatePrefix) {
		if entries, ok := ctx.candidateRuleMap[p.prefix]; ok {
			modifier := p.modifier
			if negative {
				modifier = "-" + modifier
			}
			groups = append(groups, pluginGroup{entries, modifier})
		}
	}
	return groups
}

var (
	arbitraryProperty = regexp.MustCompile(`^\[([a-zA-Z0-9-_]+):(\S+)\]$`)
	validPropertyName = regexp.MustCompile(`^[a-z_-]`)
)

// extractArbitraryProperty creates an entry for candidates like
// `[mask-type:luminance]`.
func (ctx *Context) extractArbitraryProperty(classCandidate string) *entry {
	m := arbitraryProperty.FindStringSubmatch(classCandidate)
	if m == nil {
		return nil
	}
	property, value := m[1], m[2]
	if !validPropertyName.MatchString(property) || !cssom.IsSyntacticallyValidValue(value) {
		return nil
	}
	normalized := datatypes.Normalize(value)
	if !isParsableValue(property, normalized) {
		return nil
	}
	return &entry{
		sort:  ctx.offsets.ArbitraryProperty(),
		layer: sortkey.Utilities,
		rules: []*css.Rule{cssom.NewStyleRule(asClass(classCandidate), cssom.Decl(property, normalized))},
	}
}

func isParsableValue(property, value string) bool {
	if looksLikeURI(property + ":" + value) {
		return false
	}
	return cssom.IsParsableDeclaration(property, value)
}

func looksLikeURI(declaration string) bool {
	if !strings.Contains(declaration, "://") {
		return false
	}
	u, err := url.Parse(declaration)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// resolveMatches generates the matches of a candidate.
func (ctx *Context) resolveMatches(candidate string) []*Match {
	parts := []string{candidate}
	if candidate != NotOnDemand {
		parts = datatypes.SplitAtTopLevelOnly(candidate, ctx.separator)
	}
	classCandidate := parts[len(parts)-1]
	variants := make([]string, 0, len(parts)-1)
	for i := len(parts) - 2; i >= 0; i-- {
		variants = append(variants, parts[i])
	}
	important := false
	if strings.HasPrefix(classCandidate, "!") {
		important = true
		classCandidate = classCandidate[1:]
	}
	var result []*Match
	for _, group := range ctx.matchedPlugins(classCandidate) {
		perPlugin, typesByMatches := ctx.runPlugins(group)
		if isArbitraryValue(group.modifier) {
			if len(perPlugin) > 1 {
				fallback := ctx.findFallback(perPlugin, typesByMatches, false)
				if fallback < 0 {
					fallback = ctx.findFallback(perPlugin, typesByMatches, true)
				}
				if fallback < 0 {
					ctx.warnAmbiguous(candidate, perPlugin, typesByMatches)
					continue
				}
				perPlugin = [][]*Match{perPlugin[fallback]}
			}
			for i, list := range perPlugin {
				var parsable []*Match
				for _, m := range list {
					if cssom.IsParsableRule(m.Rule) {
						parsable = append(parsable, m)
					}
				}
				perPlugin[i] = parsable
			}
		}
		var matches []*Match
		for _, list := range perPlugin {
			for _, m := range list {
				m.classCandidate = classCandidate
				matches = append(matches, m)
			}
		}
		matches = ctx.applyPrefix(matches)
		if important {
			matches = applyImportant(matches, classCandidate)
		}
		for _, v := range variants {
			matches = ctx.applyVariant(v, matches)
		}
		for _, m := range matches {
			m.candidate = candidate
			if ctx.applyFinalFormat(m, candidate) {
				result = append(result, m)
			}
		}
	}
	return result
}

// runPlugins calls the entries of a group. It returns the matches per
// entry, omitting entries without matches, and for each the value types
// the modifier resolves to.
func (ctx *Context) runPlugins(group pluginGroup) ([][]*Match, [][]datatypes.Type) {
	var perPlugin [][]*Match
	var types [][]datatypes.Type
	isOnlyPlugin := len(group.entries) == 1
	for _, e := range group.entries {
		var rules []*css.Rule
		if e.produce != nil {
			rules = e.produce(group.modifier, isOnlyPlugin)
		} else if group.modifier == "DEFAULT" || group.modifier == "-DEFAULT" {
			rules = e.rules
		}
		if len(rules) == 0 {
			continue
		}
		list := make([]*Match, len(rules))
		for i, r := range rules {
			list[i] = &Match{Sort: e.sort, Layer: e.layer, Options: e.options, Rule: r}
		}
		var matching []datatypes.Type
		if e.produce != nil {
			for _, c := range ctx.matchingTypes(e.options, group.modifier) {
				matching = append(matching, c.typ)
			}
		}
		perPlugin = append(perPlugin, list)
		types = append(types, matching)
	}
	return perPlugin, types
}

// findFallback picks the entry to use if more than one entry matches an
// arbitrary value. Entries accepting type Any are considered in a second
// pass only.
func (ctx *Context) findFallback(perPlugin [][]*Match, types [][]datatypes.Type, withAny bool) int {
	var candidates []int
	for i, list := range perPlugin {
		if list[0].Options.hasType(datatypes.Any) == withAny {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	for _, i := range candidates {
		for _, m := range perPlugin[i] {
			if !cssom.IsParsableRule(m.Rule) {
				continue
			}
			for _, t := range m.Options.types() {
				if t.PreferOnConflict && containsType(types[i], t.Type) {
					return i
				}
			}
		}
	}
	return -1
}

func containsType(types []datatypes.Type, t datatypes.Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// warnAmbiguous reports an arbitrary value matching more than one utility.
// For every utility with a type unique to it, a type hint is suggested.
func (ctx *Context) warnAmbiguous(candidate string, perPlugin [][]*Match, types [][]datatypes.Type) {
	unique := make([]map[datatypes.Type]bool, len(types))
	for i, ts := range types {
		unique[i] = make(map[datatypes.Type]bool)
		for _, t := range ts {
			unique[i][t] = true
		}
	}
	for i, ts := range types {
		for _, t := range ts {
			shared := false
			for j := range unique {
				if j != i && unique[j][t] {
					delete(unique[j], t)
					shared = true
				}
			}
			if shared {
				delete(unique[i], t)
			}
		}
	}
	var details []string
	for i, ts := range types {
		for _, t := range ts {
			if !unique[i][t] {
				continue
			}
			var decls []string
			for _, m := range perPlugin[i] {
				cssom.WalkDecls(m.Rule, func(d *css.Declaration, _ *css.Rule, _ []*css.Rule) {
					decls = append(decls, cssom.DeclString(d)+";")
				})
			}
			details = append(details, fmt.Sprintf("  Use `%s` for `%s`",
				strings.Replace(candidate, "[", "["+string(t)+":", 1), strings.Join(decls, " ")))
			break
		}
	}
	details = append(details, fmt.Sprintf("If this is content and not a class, replace it with `%s` to silence this warning.",
		strings.Replace(strings.Replace(candidate, "[", "&lsqb;", 1), "]", "&rsqb;", 1)))
	ctx.warn(Ambiguous, "ambiguous:"+candidate,
		fmt.Sprintf("The class `%s` is ambiguous and matches multiple utilities.", candidate), details...)
}

// applyPrefix prefixes the classes of matches which respect the prefix.
func (ctx *Context) applyPrefix(matches []*Match) []*Match {
	if ctx.prefix == "" {
		return matches
	}
	for _, m := range matches {
		if !m.Options.RespectPrefix {
			continue
		}
		negative := strings.HasPrefix(m.classCandidate, "-")
		rule := cssom.Clone(m.Rule)
		cssom.Walk(rule, func(r *css.Rule, _ []*css.Rule) bool {
			if r.Kind == css.QualifiedRule {
				cssom.SetSelector(r, selector.PrefixSelector(cssom.Selector(r), ctx.prefix, negative))
			}
			return true
		})
		m.Rule = rule
	}
	return matches
}

// applyImportant marks all declarations of matches important and renames
// the candidate class to `!class`. Selectors not containing the class are
// removed.
func applyImportant(matches []*Match, classCandidate string) []*Match {
	result := make([]*Match, 0, len(matches))
	for _, m := range matches {
		rule := cssom.Clone(m.Rule)
		cssom.WalkStyleRules(rule, func(r *css.Rule) {
			l, err := selector.Parse(cssom.Selector(r))
			if err == nil {
				l = selector.EliminateIrrelevant(l, classCandidate)
				selector.UpdateClasses(l, func(c string) string {
					if c == classCandidate {
						return "!" + c
					}
					return c
				})
				cssom.SetSelector(r, l.String())
			}
			for _, d := range r.Declarations {
				d.Important = true
			}
		})
		imp := *m
		imp.Rule = rule
		imp.Important = true
		result = append(result, &imp)
	}
	return result
}

// applyFinalFormat merges the formats collected from variants into the
// selectors of a match. It returns false if the match has to be dropped.
func (ctx *Context) applyFinalFormat(m *Match, candidate string) bool {
	if !m.varied {
		return true
	}
	format, err := selector.FormatVariants(candidate, m.formats, ctx.prefix)
	if err != nil {
		tracer().Debugf("invalid variant format for %s: %v", candidate, err)
		return false
	}
	parts := datatypes.SplitAtTopLevelOnly(candidate, ctx.separator)
	base := parts[len(parts)-1]
	rule := cssom.Clone(m.Rule)
	root := cssom.Container(rule)
	valid := true
	var empty []*css.Rule
	cssom.Walk(root, func(r *css.Rule, ancestors []*css.Rule) bool {
		if !valid || cssom.IsKeyframes(r) {
			return false
		}
		if r.Kind != css.QualifiedRule {
			return true
		}
		sel, err := selector.Finalize(cssom.Selector(r), format, base)
		if err != nil {
			valid = false
			return false
		}
		if sel == "" {
			empty = append(empty, r)
			return false
		}
		cssom.SetSelector(r, sel)
		return true
	})
	if !valid {
		return false
	}
	for _, r := range empty {
		if r == rule {
			return false
		}
		removeNested(root, r)
	}
	m.Rule = rule
	return true
}

func removeNested(root, r *css.Rule) {
	cssom.Walk(root, func(parent *css.Rule, _ []*css.Rule) bool {
		return !cssom.Remove(parent, r)
	})
}

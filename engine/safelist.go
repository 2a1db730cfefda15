package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/npillmayer/jitcss/datatypes"
	"github.com/npillmayer/jitcss/extract"
	"github.com/npillmayer/jitcss/theme"
)

// registerSafelist queues the safelisted classes as content of the first
// build. Safelist patterns are matched against every class the registered
// utilities can generate.
func (ctx *Context) registerSafelist() {
	for _, s := range ctx.config.Safelist {
		if s = strings.TrimSpace(s); s != "" {
			ctx.AddContent(extract.Content{Raw: s, Extension: "html"})
		}
	}
	type check struct {
		source   string
		pattern  *regexp.Regexp
		variants []string
		count    int
	}
	var checks []*check
	withImportant := false
	for _, p := range ctx.config.SafelistPatterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			ctx.warn(ConfigProblem, "", fmt.Sprintf("The safelist pattern `%s` is not a valid regular expression.", p.Pattern),
				err.Error())
			continue
		}
		checks = append(checks, &check{source: p.Pattern, pattern: re, variants: p.Variants})
		withImportant = withImportant || strings.Contains(p.Pattern, "!")
	}
	if len(checks) == 0 {
		return
	}
	for _, util := range ctx.classList {
		for _, cls := range ctx.expandClass(util, withImportant) {
			for _, c := range checks {
				if !c.pattern.MatchString(cls) {
					continue
				}
				c.count++
				ctx.AddContent(extract.Content{Raw: cls, Extension: "html"})
				for _, v := range c.variants {
					ctx.AddContent(extract.Content{Raw: v + ctx.separator + cls, Extension: "html"})
				}
			}
		}
	}
	for _, c := range checks {
		if c.count == 0 {
			ctx.warn(UnmatchedSafelist, "",
				fmt.Sprintf("The safelist pattern `%s` doesn't match any classes.", c.source),
				"Fix this pattern or remove it from your `safelist` configuration.")
		}
	}
}

// expandClass lists the classes a class list entry stands for: every value
// key, negated and with opacity where supported.
func (ctx *Context) expandClass(util classListEntry, withImportant bool) []string {
	if util.options == nil {
		return []string{util.name}
	}
	opts := util.options
	keys := sortedKeys(opts.Values)
	classes := make([]string, len(keys))
	for i, k := range keys {
		classes[i] = FormatClass(util.name, k)
	}
	if opts.SupportsNegativeValues {
		n := len(classes)
		for _, c := range classes[:n] {
			classes = append(classes, "-"+c)
		}
		p := len(ctx.prefix)
		for _, c := range classes[:2*n] {
			if len(c) >= p {
				classes = append(classes, c[:p]+"-"+c[p:])
			}
		}
	}
	if opts.hasType(datatypes.Color) {
		opacities := sortedKeys(ctx.theme.Section("opacity"))
		n := len(classes)
		for _, c := range classes[:n] {
			for _, o := range opacities {
				classes = append(classes, c+"/"+o)
			}
		}
	}
	if withImportant && opts.RespectImportant {
		n := len(classes)
		for _, c := range classes[:n] {
			classes = append(classes, "!"+c)
		}
	}
	return classes
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	theme.SortKeys(keys)
	return keys
}

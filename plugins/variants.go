package plugins

import (
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/datatypes"
	"github.com/npillmayer/jitcss/engine"
	"github.com/npillmayer/jitcss/selector"
	"github.com/npillmayer/jitcss/sortkey"
	"github.com/npillmayer/jitcss/theme"
)

// addVariants registers simple variants given as name/format pairs.
func addVariants(api *engine.PluginAPI, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := api.AddVariant(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// withContent makes sure rules of `before:` and `after:` set the CSS
// content property.
func withContent(format string) engine.VariantFunc {
	return func(v *engine.VariantAPI) ([]engine.VariantFunc, bool) {
		cssom.WalkStyleRules(v.Container, func(r *css.Rule) {
			for _, decl := range r.Declarations {
				if decl.Property == "content" {
					return
				}
			}
			r.Declarations = append([]*css.Declaration{d("content", "var(--tw-content)")}, r.Declarations...)
		})
		v.Format(format)
		return nil, true
	}
}

func pseudoElementVariants(api *engine.PluginAPI) error {
	if err := addVariants(api,
		"first-letter", "&::first-letter",
		"first-line", "&::first-line",
	); err != nil {
		return err
	}
	if err := api.AddVariant("marker", "& *::marker", "&::marker"); err != nil {
		return err
	}
	if err := api.AddVariant("selection", "& *::selection", "&::selection"); err != nil {
		return err
	}
	if err := addVariants(api,
		"file", "&::file-selector-button",
		"placeholder", "&::placeholder",
		"backdrop", "&::backdrop",
	); err != nil {
		return err
	}
	api.AddVariantFunc("before", withContent("&::before"))
	api.AddVariantFunc("after", withContent("&::after"))
	return nil
}

// pseudoClasses are the state variants, in output order. Plain names stand
// for `&:name`.
var pseudoClasses = [][2]string{
	{"first", "&:first-child"}, {"last", "&:last-child"}, {"only", "&:only-child"},
	{"odd", "&:nth-child(odd)"}, {"even", "&:nth-child(even)"},
	{"first-of-type", ""}, {"last-of-type", ""}, {"only-of-type", ""},
	{"visited", ""}, {"target", ""}, {"open", "&[open]"},
	{"default", ""}, {"checked", ""}, {"indeterminate", ""}, {"placeholder-shown", ""},
	{"autofill", ""}, {"optional", ""}, {"required", ""}, {"valid", ""}, {"invalid", ""},
	{"in-range", ""}, {"out-of-range", ""}, {"read-only", ""}, {"empty", ""},
	{"focus-within", ""}, {"hover", ""}, {"focus", ""}, {"focus-visible", ""},
	{"active", ""}, {"enabled", ""}, {"disabled", ""},
}

var ampersandPart = regexp.MustCompile(`&(\S+)?`)

// marker creates the `:merge(.group)` marker of a group or peer, which may
// be named by a modifier as in `group/item`.
func marker(name, modifier string) string {
	if modifier == "" {
		return ":merge(." + name + ")"
	}
	return ":merge(." + name + `\/` + selector.EscapeClassName(modifier) + ")"
}

func pseudoClassVariants(api *engine.PluginAPI) error {
	values := make(map[string]string, len(pseudoClasses))
	keys := make([]string, 0, len(pseudoClasses))
	for _, pc := range pseudoClasses {
		format := pc[1]
		if format == "" {
			format = "&:" + pc[0]
		}
		if err := api.AddVariant(pc[0], format); err != nil {
			return err
		}
		values[pc[0]] = format
		keys = append(keys, pc[0])
	}
	for _, rel := range [][2]string{{"group", " &"}, {"peer", " ~ &"}} {
		name, combinator := rel[0], rel[1]
		api.MatchVariant(name, func(value, modifier string) []string {
			result := datatypes.Normalize(value)
			if !strings.Contains(result, "&") {
				result = "&" + result
			}
			return []string{ampersandPart.ReplaceAllString(result, marker(name, modifier)+"${1}"+combinator)}
		}, engine.MatchVariantOptions{Values: values, Keys: keys})
	}
	return nil
}

// attributeVariants registers `aria-*` or `data-*` variants, together
// with their group and peer forms.
func attributeVariants(api *engine.PluginAPI, attr string) {
	values := api.ThemeSection(attr)
	api.MatchVariant(attr, func(value, _ string) []string {
		return []string{"&[" + attr + "-" + datatypes.Normalize(value) + "]"}
	}, engine.MatchVariantOptions{Values: values})
	for _, rel := range [][2]string{{"group", " &"}, {"peer", " ~ &"}} {
		name, combinator := rel[0], rel[1]
		api.MatchVariant(name+"-"+attr, func(value, modifier string) []string {
			return []string{marker(name, modifier) + "[" + attr + "-" + datatypes.Normalize(value) + "]" + combinator}
		}, engine.MatchVariantOptions{Values: values})
	}
}

func ariaVariants(api *engine.PluginAPI) error {
	attributeVariants(api, "aria")
	return nil
}

func dataVariants(api *engine.PluginAPI) error {
	attributeVariants(api, "data")
	return nil
}

var (
	rawSupports = regexp.MustCompile(`^\w*\s*\(`)
	logicalOp   = regexp.MustCompile(`\b(and|or|not)\b`)
)

// supportsVariants creates feature queries: `supports-[display:grid]`
// yields `@supports (display:grid)`, a bare property like
// `supports-[backdrop-filter]` tests for any value.
func supportsVariants(api *engine.PluginAPI) error {
	api.MatchVariant("supports", func(value, _ string) []string {
		v := datatypes.Normalize(value)
		if rawSupports.MatchString(v) {
			return []string{"@supports " + logicalOp.ReplaceAllString(v, " $1 ")}
		}
		if !strings.Contains(v, ":") {
			v += ": var(--tw)"
		}
		if !strings.HasPrefix(v, "(") || !strings.HasSuffix(v, ")") {
			v = "(" + v + ")"
		}
		return []string{"@supports " + v}
	}, engine.MatchVariantOptions{Values: api.ThemeSection("supports")})
	return nil
}

func directionVariants(api *engine.PluginAPI) error {
	return addVariants(api,
		"ltr", `:is([dir="ltr"] &)`,
		"rtl", `:is([dir="rtl"] &)`,
	)
}

func reducedMotionVariants(api *engine.PluginAPI) error {
	return addVariants(api,
		"motion-safe", "@media (prefers-reduced-motion: no-preference)",
		"motion-reduce", "@media (prefers-reduced-motion: reduce)",
	)
}

func prefersContrastVariants(api *engine.PluginAPI) error {
	return addVariants(api,
		"contrast-more", "@media (prefers-contrast: more)",
		"contrast-less", "@media (prefers-contrast: less)",
	)
}

// darkVariants uses a media query, or a selector on an ancestor for
// dark mode `class`.
func darkVariants(api *engine.PluginAPI) error {
	cfg := api.Config()
	if cfg.DarkMode == "class" {
		sel := cfg.DarkSelector
		if sel == "" {
			sel = ".dark"
		}
		return api.AddVariant("dark", ":is("+sel+" &)")
	}
	return api.AddVariant("dark", "@media (prefers-color-scheme: dark)")
}

func printVariant(api *engine.PluginAPI) error {
	return api.AddVariant("print", "@media print")
}

// screenVariants registers a variant per breakpoint, plus `min-*` and
// `max-*` for every breakpoint with a simple minimum width. Rules of
// `min-*` are ordered by ascending width, those of `max-*` descending.
func screenVariants(api *engine.PluginAPI) error {
	screens := api.Screens()
	widths := make(map[string]string)
	var keys []string
	for _, s := range screens {
		if err := api.AddVariant(s.Name, "@media "+s.MediaQuery()); err != nil {
			return err
		}
		if len(s.Values) == 1 && s.Values[0].Raw == "" && s.Values[0].Max == "" && s.Values[0].Min != "" {
			widths[s.Name] = s.Values[0].Min
			keys = append(keys, s.Name)
		}
	}
	api.MatchVariant("min", func(value, _ string) []string {
		return []string{"@media (min-width: " + value + ")"}
	}, engine.MatchVariantOptions{Values: widths, Keys: keys, Sort: func(a, b sortkey.VariantValue) int {
		return theme.CompareWidths(a.Value, b.Value)
	}})
	api.MatchVariant("max", func(value, _ string) []string {
		return []string{"@media not all and (min-width: " + value + ")"}
	}, engine.MatchVariantOptions{Values: widths, Keys: keys, Sort: func(a, b sortkey.VariantValue) int {
		return theme.CompareWidths(b.Value, a.Value)
	}})
	return nil
}

func orientationVariants(api *engine.PluginAPI) error {
	return addVariants(api,
		"portrait", "@media (orientation: portrait)",
		"landscape", "@media (orientation: landscape)",
	)
}

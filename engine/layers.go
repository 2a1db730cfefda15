package engine

import (
	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/cssom"
)

// collectLayerPlugins turns the `@layer base|components|utilities` blocks
// of a source stylesheet into plugins and removes them from the source.
// Top-level `@responsive` and `@variants` blocks are treated as
// `@layer utilities`.
func collectLayerPlugins(source *cssom.StyleSheet) []Plugin {
	for _, r := range source.Rules() {
		if cssom.IsAtRule(r, "responsive") || cssom.IsAtRule(r, "variants") {
			r.Name, r.Prelude = "@layer", "utilities"
		}
	}
	var layerRules []*css.Rule
	source.Walk(func(r *css.Rule, _ []*css.Rule) bool {
		if cssom.IsAtRule(r, "layer") {
			layerRules = append(layerRules, r)
			return false
		}
		return true
	})
	var plugins []Plugin
	for _, layer := range layerRules {
		flattenVariantRules(layer)
		var register func(api *PluginAPI, rule *css.Rule)
		switch layer.Prelude {
		case "base":
			register = func(api *PluginAPI, rule *css.Rule) {
				api.AddBase(rule)
			}
		case "components":
			register = func(api *PluginAPI, rule *css.Rule) {
				opts := ComponentOptions().Preserving()
				opts.RespectPrefix = false
				api.AddComponents([]*css.Rule{rule}, opts)
			}
		case "utilities":
			register = func(api *PluginAPI, rule *css.Rule) {
				opts := UtilityOptions().Preserving()
				opts.RespectPrefix = false
				api.AddUtilities([]*css.Rule{rule}, opts)
			}
		default:
			continue
		}
		for _, rule := range layer.Rules {
			rule := rule
			plugins = append(plugins, func(api *PluginAPI) error {
				register(api, rule)
				return nil
			})
		}
		source.Remove(layer)
	}
	tracer().Debugf("collected %d rules from source layers", len(plugins))
	return plugins
}

// flattenVariantRules replaces nested `@responsive` and `@variants` blocks
// by their contents.
func flattenVariantRules(r *css.Rule) {
	var rules []*css.Rule
	for _, ch := range r.Rules {
		if cssom.IsAtRule(ch, "responsive") || cssom.IsAtRule(ch, "variants") {
			flattenVariantRules(ch)
			rules = append(rules, ch.Rules...)
			continue
		}
		rules = append(rules, ch)
	}
	r.Rules = rules
}

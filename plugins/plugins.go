package plugins

import (
	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/config"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/engine"
	"github.com/npillmayer/jitcss/selector"
)

// core is a named core plugin.
type core struct {
	name     string
	register engine.Plugin
}

// corePlugins are the core utilities in output order.
var corePlugins = []core{
	{"preflight", preflight},
	{"position", position},
	{"inset", inset},
	{"zIndex", zIndex},
	{"margin", margin},
	{"display", display},
	{"width", width},
	{"height", height},
	{"gap", gap},
	{"space", space},
	{"borderRadius", borderRadius},
	{"borderWidth", borderWidth},
	{"borderColor", borderColor},
	{"borderOpacity", borderOpacity},
	{"backgroundColor", backgroundColor},
	{"backgroundOpacity", backgroundOpacity},
	{"padding", padding},
	{"textAlign", textAlign},
	{"fontFamily", fontFamily},
	{"fontSize", fontSize},
	{"fontWeight", fontWeight},
	{"lineHeight", lineHeight},
	{"letterSpacing", letterSpacing},
	{"textColor", textColor},
	{"textOpacity", textOpacity},
	{"textDecoration", textDecoration},
	{"opacity", opacity},
	{"boxShadow", boxShadow},
	{"content", content},
}

var beforeVariants = []engine.Plugin{
	pseudoElementVariants,
	pseudoClassVariants,
	ariaVariants,
	dataVariants,
}

var afterVariants = []engine.Plugin{
	supportsVariants,
	directionVariants,
	reducedMotionVariants,
	prefersContrastVariants,
	darkVariants,
	printVariant,
	screenVariants,
	orientationVariants,
}

// Resolve returns the plugins of a configuration: the enabled core
// utilities, then the built-in variants with user plugins placed between
// the two groups of variants.
func Resolve(cfg *config.Config, user ...engine.Plugin) []engine.Plugin {
	var list []engine.Plugin
	for _, c := range corePlugins {
		if !cfg.CorePluginEnabled(c.name) {
			tracer().Debugf("core plugin %s disabled", c.name)
			continue
		}
		list = append(list, c.register)
	}
	list = append(list, beforeVariants...)
	list = append(list, user...)
	list = append(list, afterVariants...)
	return list
}

// Names lists the names of the core utility plugins.
func Names() []string {
	names := make([]string, len(corePlugins))
	for i, c := range corePlugins {
		names[i] = c.name
	}
	return names
}

// class creates the rule of a static utility.
func class(name string, decls ...*css.Declaration) *css.Rule {
	return cssom.NewStyleRule("."+selector.EscapeClassName(name), decls...)
}

func addUtilities(api *engine.PluginAPI, rules ...*css.Rule) {
	api.AddUtilities(rules, engine.UtilityOptions())
}

// set returns a utility function setting properties to the value.
func set(props ...string) engine.UtilityFunc {
	return func(value string, _ engine.Extras) cssom.Object {
		obj := make(cssom.Object, len(props))
		for i, p := range props {
			obj[i] = cssom.D(p, value)
		}
		return obj
	}
}

// family is a utility name together with the properties it sets.
type family struct {
	name  string
	props []string
}

// matchSection registers utilities taking their values from one theme
// section.
func matchSection(api *engine.PluginAPI, section string, opts engine.Options, families ...family) {
	utils := make([]engine.MatchUtility, len(families))
	for i, f := range families {
		utils[i] = engine.MatchUtility{Name: f.name, Fn: set(f.props...)}
	}
	api.MatchUtilities(utils, opts.WithValues(api.ThemeSection(section)))
}

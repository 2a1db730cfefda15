package engine

import (
	"fmt"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/config"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/selector"
	"github.com/npillmayer/jitcss/sortkey"
	"github.com/npillmayer/jitcss/theme"
)

// PluginAPI is handed to plugins for registering their utilities and
// variants.
type PluginAPI struct {
	ctx *Context
}

// Extras are passed to utility functions alongside the value.
type Extras struct {
	Modifier string // resolved modifier, e.g. a line height for `text-sm/6`
}

// UtilityFunc produces the styles of a matched utility for a value. It
// returns nil if the value is not supported.
type UtilityFunc func(value string, ex Extras) cssom.Object

// MatchUtility is a named utility function.
type MatchUtility struct {
	Name string
	Fn   UtilityFunc
}

// AddBase registers base styles. Rules without classes are always
// generated.
func (api *PluginAPI) AddBase(rules ...*css.Rule) {
	ctx := api.ctx
	for _, id := range withIdentifiers(rules) {
		ctx.register(ctx.prefixIdentifier(id.identifier, false), &entry{
			sort:  ctx.offsets.Create(sortkey.Base),
			layer: sortkey.Base,
			rules: []*css.Rule{id.rule},
		})
	}
}

// AddComponents registers component rules, see ComponentOptions.
func (api *PluginAPI) AddComponents(rules []*css.Rule, opts Options) {
	api.addStatic(sortkey.Components, rules, opts)
}

// AddUtilities registers utility rules, see UtilityOptions.
func (api *PluginAPI) AddUtilities(rules []*css.Rule, opts Options) {
	api.addStatic(sortkey.Utilities, rules, opts)
}

func (api *PluginAPI) addStatic(layer sortkey.Layer, rules []*css.Rule, opts Options) {
	ctx := api.ctx
	for _, id := range withIdentifiers(rules) {
		prefixed := ctx.prefixIdentifier(id.identifier, opts.RespectPrefix)
		ctx.addClass(prefixed, nil)
		ctx.register(prefixed, &entry{
			sort:    ctx.offsets.Create(layer),
			layer:   layer,
			options: opts,
			rules:   []*css.Rule{id.rule},
		})
	}
}

// MatchUtilities registers utilities taking a value, like `mt-4` or
// `bg-[#bada55]`. All utilities of one call share one offset.
func (api *PluginAPI) MatchUtilities(utils []MatchUtility, opts Options) {
	api.match(sortkey.Utilities, utils, opts)
}

// MatchComponents is MatchUtilities for the components layer.
func (api *PluginAPI) MatchComponents(utils []MatchUtility, opts Options) {
	api.match(sortkey.Components, utils, opts)
}

func (api *PluginAPI) match(layer sortkey.Layer, utils []MatchUtility, opts Options) {
	ctx := api.ctx
	offset := ctx.offsets.Create(layer)
	for _, u := range utils {
		u := u
		prefixed := ctx.prefixIdentifier(u.Name, opts.RespectPrefix)
		o := opts
		ctx.addClass(prefixed, &o)
		ctx.register(prefixed, &entry{
			sort:    offset,
			layer:   layer,
			options: opts,
			produce: func(modifier string, isOnlyPlugin bool) []*css.Rule {
				return ctx.produce(u, opts, modifier, isOnlyPlugin)
			},
		})
	}
}

// produce runs a utility function for a modifier.
func (ctx *Context) produce(u MatchUtility, opts Options, modifier string, isOnlyPlugin bool) []*css.Rule {
	c, ok := ctx.coerceValue(opts, modifier)
	if !ok {
		return nil
	}
	if !opts.hasType(c.typ) {
		if !isOnlyPlugin {
			return nil
		}
		ctx.warn(PluginProblem, "", fmt.Sprintf("Unnecessary typehint `%s` in `%s-%s`.", c.typ, u.Name, modifier),
			fmt.Sprintf("You can safely update it to `%s-%s`.", u.Name, removeTypeHint(modifier, string(c.typ))))
	}
	if !cssom.IsSyntacticallyValidValue(c.value) {
		return nil
	}
	obj := u.Fn(c.value, Extras{Modifier: c.modifier})
	if len(obj) == 0 {
		return nil
	}
	return obj.Rules(nameClass(u.Name, modifier))
}

func removeTypeHint(modifier, typ string) string {
	if len(modifier) > len(typ)+2 && modifier[1:len(typ)+2] == typ+":" {
		return "[" + modifier[len(typ)+2:]
	}
	return modifier
}

// AddVariant registers a variant by format strings like `&:hover` or
// `@media print`. Nested formats are written with braces:
// `@supports (display: grid) { &:hover }`. More than one format creates a
// variant with several outputs.
func (api *PluginAPI) AddVariant(name string, formats ...string) error {
	fns := make([]VariantFunc, 0, len(formats))
	for _, f := range formats {
		if !isValidVariantFormat(f) {
			return fmt.Errorf("%w: your custom variant `%s` has an invalid format string. "+
				"Make sure it's an at-rule or contains a `&` placeholder", ErrInvalidVariant, name)
		}
		fn, err := parseVariant(f)
		if err != nil {
			return fmt.Errorf("variant `%s`: %w", name, err)
		}
		fns = append(fns, fn)
	}
	api.ctx.addVariant(name, fns, &variantOptions{})
	return nil
}

// AddVariantFunc registers a variant implemented by functions.
func (api *PluginAPI) AddVariantFunc(name string, fns ...VariantFunc) {
	api.ctx.addVariant(name, fns, &variantOptions{})
}

// MatchVariantFunc returns the format strings of a parameterized variant
// for a value.
type MatchVariantFunc func(value, modifier string) []string

// MatchVariantOptions are the options of a parameterized variant.
type MatchVariantOptions struct {
	Values map[string]string
	Keys   []string                                 // order of Values, sorted keys if empty
	Sort   func(a, b sortkey.VariantValue) int      // order of rules for different values
}

// MatchVariant registers a parameterized variant. For every key of the
// values, a variant `name-key` is registered; the variant `name` itself
// accepts arbitrary values like `name-[…]` and the value `DEFAULT`.
func (api *PluginAPI) MatchVariant(name string, fn MatchVariantFunc, opts MatchVariantOptions) {
	ctx := api.ctx
	ctx.variantID++
	id := ctx.variantID
	keys := opts.Keys
	if len(keys) == 0 {
		for k := range opts.Values {
			keys = append(keys, k)
		}
		theme.SortKeys(keys)
	}
	for _, key := range keys {
		if key == "DEFAULT" {
			continue
		}
		value, ok := opts.Values[key]
		if !ok {
			continue
		}
		alias := name + "-" + key
		if name == "@" {
			alias = name + key
		}
		ctx.addVariant(alias, []VariantFunc{func(v *VariantAPI) ([]VariantFunc, bool) {
			return applyFormats(v, fn(value, v.Args.Modifier))
		}}, &variantOptions{id: id, sort: opts.Sort, value: value, hasValue: true, matched: true, base: true})
	}
	def, hasDefault := opts.Values["DEFAULT"]
	ctx.addVariant(name, []VariantFunc{func(v *VariantAPI) ([]VariantFunc, bool) {
		value := v.Args.Value
		if !v.Args.HasValue {
			if !hasDefault {
				return nil, false
			}
			value = def
		}
		return applyFormats(v, fn(value, v.Args.Modifier))
	}}, &variantOptions{id: id, sort: opts.Sort, values: opts.Values, keys: keys, matched: true})
}

// applyFormats applies the formats returned by a matched variant function.
func applyFormats(v *VariantAPI, formats []string) ([]VariantFunc, bool) {
	var fns []VariantFunc
	for _, f := range formats {
		if !isValidVariantFormat(f) {
			tracer().Debugf("dropping invalid variant format %q", f)
			continue
		}
		fn, err := parseVariant(f)
		if err != nil {
			tracer().Debugf("dropping variant format %q: %v", f, err)
			continue
		}
		fns = append(fns, fn)
	}
	switch len(fns) {
	case 0:
		return nil, false
	case 1:
		return fns[0](v)
	}
	return fns, true
}

// Theme resolves a theme path like `colors.red.500` to CSS text.
func (api *PluginAPI) Theme(path string) (string, bool) {
	segments, err := theme.ToPath(path)
	if err != nil || len(segments) == 0 {
		return "", false
	}
	v, ok := api.ctx.theme.Get(segments...)
	if !ok {
		return "", false
	}
	return theme.Stringify(segments[0], v)
}

// ThemeValue returns the raw theme value at a path, e.g. the line height
// options of a font size.
func (api *PluginAPI) ThemeValue(segments ...string) (any, bool) {
	return api.ctx.theme.Get(segments...)
}

// Screens returns the normalized breakpoints of the theme.
func (api *PluginAPI) Screens() []theme.Screen {
	return api.ctx.theme.Screens()
}

// ThemeSection returns a flattened theme section, see theme.Section.
func (api *PluginAPI) ThemeSection(name string) map[string]string {
	return api.ctx.theme.Section(name)
}

// Config returns the configuration of the context.
func (api *PluginAPI) Config() *config.Config {
	return api.ctx.config
}

// CorePlugins checks if a built-in plugin is enabled.
func (api *PluginAPI) CorePlugins(name string) bool {
	return api.ctx.config.CorePluginEnabled(name)
}

// Prefix applies the configured prefix to the classes of a selector.
func (api *PluginAPI) Prefix(sel string) string {
	return selector.PrefixSelector(sel, api.ctx.prefix, false)
}

// Escape escapes a class name.
func (api *PluginAPI) Escape(class string) string {
	return selector.EscapeClassName(class)
}

// Separator returns the variant separator.
func (api *PluginAPI) Separator() string {
	return api.ctx.separator
}

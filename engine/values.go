package engine

import (
	"regexp"
	"strings"

	"github.com/npillmayer/jitcss/datatypes"
)

// coerced is a modifier resolved to a value of a type. modifier is the
// utility modifier split off at a `/`, if the utility accepts one.
type coerced struct {
	value    string
	typ      datatypes.Type
	modifier string
}

var explicitTypeName = regexp.MustCompile(`^[\w-]+$`)

// coerceValue resolves the modifier of a matched utility candidate, e.g.
// `red-500/50` or `[length:2px]`, to a value accepted by one of the
// utility's types.
func (ctx *Context) coerceValue(opts Options, modifier string) (coerced, bool) {
	if _, ok := opts.Values[modifier]; ok {
		for _, t := range opts.types() {
			if v, ok := ctx.valueOfType(t.Type, modifier, opts); ok {
				return coerced{value: v, typ: t.Type}, true
			}
		}
	}
	if isArbitraryValue(modifier) {
		inner := modifier[1 : len(modifier)-1]
		explicit, value, hasType := strings.Cut(inner, ":")
		if !hasType || !explicitTypeName.MatchString(explicit) {
			value = inner
			hasType = false
		} else if !datatypes.Known(datatypes.Type(explicit)) {
			return coerced{}, false
		}
		if hasType && value != "" {
			v, ok := asValue("["+value+"]", opts, nil)
			return coerced{value: v, typ: datatypes.Type(explicit)}, ok
		}
	}
	matches := ctx.matchingTypes(opts, modifier)
	if len(matches) == 0 {
		return coerced{}, false
	}
	return matches[0], true
}

// matchingTypes lists every type of a utility the modifier resolves for,
// in order of the utility's types.
func (ctx *Context) matchingTypes(opts Options, raw string) []coerced {
	modifier, utilityModifier, hasModifier := splitUtilityModifier(raw)
	canUseModifier := hasModifier && (opts.AnyModifier ||
		(opts.Modifiers != nil && (isArbitraryValue(utilityModifier) || hasKey(opts.Modifiers, utilityModifier))))
	if !canUseModifier {
		modifier, utilityModifier, hasModifier = raw, "", false
	}
	if hasModifier && modifier == "" {
		modifier = "DEFAULT"
	}
	if hasModifier && opts.Modifiers != nil {
		if v, ok := opts.Modifiers[utilityModifier]; ok {
			utilityModifier = v
		} else if isArbitraryValue(utilityModifier) {
			utilityModifier = utilityModifier[1 : len(utilityModifier)-1]
		}
	}
	var matches []coerced
	for _, t := range opts.types() {
		if v, ok := ctx.valueOfType(t.Type, modifier, opts); ok {
			matches = append(matches, coerced{value: v, typ: t.Type, modifier: utilityModifier})
		}
	}
	return matches
}

// valueOfType resolves a modifier for a single type.
func (ctx *Context) valueOfType(t datatypes.Type, modifier string, opts Options) (string, bool) {
	switch t {
	case datatypes.Any:
		return asValue(modifier, opts, nil)
	case datatypes.Color:
		return ctx.asColor(modifier, opts)
	case datatypes.Lookup:
		v, ok := opts.Values[modifier]
		return v, ok
	}
	if !datatypes.Known(t) {
		return "", false
	}
	return asValue(modifier, opts, func(v string) bool { return datatypes.Is(t, v) })
}

// asValue looks up a modifier in the values of a utility. Negative and
// arbitrary values are resolved as well.
func asValue(modifier string, opts Options, validate func(string) bool) (string, bool) {
	if v, ok := opts.Values[modifier]; ok {
		return v, true
	}
	if opts.SupportsNegativeValues && strings.HasPrefix(modifier, "-") {
		return asNegativeValue(modifier[1:], opts.Values, validate)
	}
	return resolveArbitraryValue(modifier, validate)
}

func asNegativeValue(modifier string, values map[string]string, validate func(string) bool) (string, bool) {
	if v, ok := values[modifier]; ok {
		return datatypes.Negate(v)
	}
	if isArbitraryValue(modifier) {
		v, ok := resolveArbitraryValue(modifier, validate)
		if !ok {
			return "", false
		}
		return datatypes.Negate(v)
	}
	return "", false
}

func resolveArbitraryValue(modifier string, validate func(string) bool) (string, bool) {
	if !isArbitraryValue(modifier) {
		return "", false
	}
	value := modifier[1 : len(modifier)-1]
	if validate != nil && !validate(value) {
		return "", false
	}
	return datatypes.Normalize(value), true
}

// asColor resolves color values. An alpha modifier like `/50` must be a key
// of the `opacity` theme section or an arbitrary value.
func (ctx *Context) asColor(modifier string, opts Options) (string, bool) {
	if v, ok := opts.Values[modifier]; ok {
		return v, true
	}
	color, alpha, hasAlpha := splitUtilityModifier(modifier)
	if !hasAlpha {
		return asValue(modifier, opts, datatypes.IsColor)
	}
	normalized, ok := opts.Values[color]
	if !ok {
		if !isArbitraryValue(color) {
			return "", false
		}
		normalized = color[1 : len(color)-1]
	}
	if isArbitraryValue(alpha) {
		return withAlpha(normalized, alpha[1:len(alpha)-1]), true
	}
	opacity, ok := ctx.theme.Section("opacity")[alpha]
	if !ok {
		return "", false
	}
	return withAlpha(normalized, opacity), true
}

// withAlpha applies an alpha value to a color, which may carry an
// `<alpha-value>` placeholder.
func withAlpha(color, alpha string) string {
	if strings.Contains(color, "<alpha-value>") {
		return strings.ReplaceAll(color, "<alpha-value>", alpha)
	}
	return datatypes.WithAlphaValue(color, alpha, color)
}

// splitUtilityModifier splits `red-500/50` into `red-500` and `50`. Arbitrary
// values like `[1/2]` are not split, but `[a]/[b]` is.
func splitUtilityModifier(modifier string) (string, string, bool) {
	i := strings.LastIndex(modifier, "/")
	if i < 0 || i == len(modifier)-1 {
		return modifier, "", false
	}
	if isArbitraryValue(modifier) && !strings.Contains(modifier, "]/[") {
		return modifier, "", false
	}
	return modifier[:i], modifier[i+1:], true
}

func hasKey(m map[string]string, k string) bool {
	_, ok := m[k]
	return ok
}

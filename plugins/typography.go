package plugins

import (
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/datatypes"
	"github.com/npillmayer/jitcss/engine"
	"github.com/npillmayer/jitcss/theme"
)

func fontFamily(api *engine.PluginAPI) error {
	matchSection(api, "fontFamily",
		engine.UtilityOptions().WithTypes(datatypes.Lookup, datatypes.GenericName, datatypes.FamilyName),
		family{"font", []string{"font-family"}})
	return nil
}

// fontSize sets the line height configured with a font size, unless the
// candidate carries a line height modifier like `text-sm/6`.
func fontSize(api *engine.PluginAPI) error {
	values := api.ThemeSection("fontSize")
	lineHeights := make(map[string]string, len(values))
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	theme.SortKeys(keys)
	for _, key := range keys {
		size := values[key]
		if _, ok := lineHeights[size]; ok {
			continue
		}
		lineHeights[size] = configuredLineHeight(api, key)
	}
	api.MatchUtilities([]engine.MatchUtility{{
		Name: "text",
		Fn: func(value string, ex engine.Extras) cssom.Object {
			obj := cssom.Object{cssom.D("font-size", value)}
			lh := ex.Modifier
			if lh == "" {
				lh = lineHeights[value]
			}
			if lh != "" {
				obj = append(obj, cssom.D("line-height", lh))
			}
			return obj
		},
	}}, engine.UtilityOptions().WithValues(values).
		WithTypes(datatypes.AbsoluteSize, datatypes.RelativeSize, datatypes.Length, datatypes.Percentage).
		WithModifiers(api.ThemeSection("lineHeight")))
	return nil
}

// configuredLineHeight finds the line height of a font size given as
// `[size, {lineHeight: …}]` or `[size, lineHeight]`.
func configuredLineHeight(api *engine.PluginAPI, key string) string {
	v, ok := api.ThemeValue("fontSize", key)
	if !ok {
		return ""
	}
	list, ok := v.([]any)
	if !ok || len(list) < 2 {
		return ""
	}
	switch opt := list[1].(type) {
	case string:
		return opt
	case map[string]any:
		if lh, ok := opt["lineHeight"].(string); ok {
			return lh
		}
	}
	return ""
}

func fontWeight(api *engine.PluginAPI) error {
	matchSection(api, "fontWeight", engine.UtilityOptions().WithTypes(datatypes.Number, datatypes.Any),
		family{"font", []string{"font-weight"}})
	return nil
}

func lineHeight(api *engine.PluginAPI) error {
	matchSection(api, "lineHeight", engine.UtilityOptions(), family{"leading", []string{"line-height"}})
	return nil
}

func letterSpacing(api *engine.PluginAPI) error {
	matchSection(api, "letterSpacing", engine.UtilityOptions().Negative(),
		family{"tracking", []string{"letter-spacing"}})
	return nil
}

func textDecoration(api *engine.PluginAPI) error {
	addUtilities(api,
		class("underline", d("text-decoration-line", "underline")),
		class("overline", d("text-decoration-line", "overline")),
		class("line-through", d("text-decoration-line", "line-through")),
		class("no-underline", d("text-decoration-line", "none")),
	)
	return nil
}

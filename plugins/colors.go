package plugins

import (
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/datatypes"
	"github.com/npillmayer/jitcss/engine"
)

// withAlphaVariable sets a color property such that its alpha channel
// is controlled by an opacity variable:
//
//     background-color: #3b82f6  →  --tw-bg-opacity: 1;
//                                   background-color: rgb(59 130 246 / var(--tw-bg-opacity))
//
// Colors which cannot be parsed or already carry an alpha value are set
// as they are.
func withAlphaVariable(color, variable string, props ...string) cssom.Object {
	c := datatypes.ParseColor(color, true)
	if c == nil || c.HasAlpha {
		return set(props...)(color, engine.Extras{})
	}
	obj := cssom.Object{cssom.D(variable, "1")}
	value := c.WithAlpha("var(" + variable + ")").String()
	for _, p := range props {
		obj = append(obj, cssom.D(p, value))
	}
	return obj
}

// colorUtility creates a color utility using an opacity variable, if the
// opacity plugin is enabled.
func colorUtility(api *engine.PluginAPI, name, opacityPlugin, variable string, props ...string) engine.MatchUtility {
	withOpacity := api.CorePlugins(opacityPlugin)
	return engine.MatchUtility{Name: name, Fn: func(value string, _ engine.Extras) cssom.Object {
		if !withOpacity {
			return set(props...)(value, engine.Extras{})
		}
		return withAlphaVariable(value, variable, props...)
	}}
}

func colorOptions(values map[string]string) engine.Options {
	return engine.UtilityOptions().WithValues(values).WithTypes(datatypes.Color, datatypes.Any)
}

func backgroundColor(api *engine.PluginAPI) error {
	api.MatchUtilities([]engine.MatchUtility{
		colorUtility(api, "bg", "backgroundOpacity", "--tw-bg-opacity", "background-color"),
	}, colorOptions(api.ThemeSection("backgroundColor")))
	return nil
}

func backgroundOpacity(api *engine.PluginAPI) error {
	matchSection(api, "backgroundOpacity", engine.UtilityOptions(),
		family{"bg-opacity", []string{"--tw-bg-opacity"}})
	return nil
}

func textColor(api *engine.PluginAPI) error {
	api.MatchUtilities([]engine.MatchUtility{
		colorUtility(api, "text", "textOpacity", "--tw-text-opacity", "color"),
	}, colorOptions(api.ThemeSection("textColor")))
	return nil
}

func textOpacity(api *engine.PluginAPI) error {
	matchSection(api, "textOpacity", engine.UtilityOptions(),
		family{"text-opacity", []string{"--tw-text-opacity"}})
	return nil
}

// borderColor does not register a color for plain `border`, which is a
// border width.
func borderColor(api *engine.PluginAPI) error {
	values := api.ThemeSection("borderColor")
	delete(values, "DEFAULT")
	const v = "--tw-border-opacity"
	api.MatchUtilities([]engine.MatchUtility{
		colorUtility(api, "border", "borderOpacity", v, "border-color"),
		colorUtility(api, "border-x", "borderOpacity", v, "border-left-color", "border-right-color"),
		colorUtility(api, "border-y", "borderOpacity", v, "border-top-color", "border-bottom-color"),
		colorUtility(api, "border-t", "borderOpacity", v, "border-top-color"),
		colorUtility(api, "border-r", "borderOpacity", v, "border-right-color"),
		colorUtility(api, "border-b", "borderOpacity", v, "border-bottom-color"),
		colorUtility(api, "border-l", "borderOpacity", v, "border-left-color"),
	}, colorOptions(values))
	return nil
}

func borderOpacity(api *engine.PluginAPI) error {
	matchSection(api, "borderOpacity", engine.UtilityOptions(),
		family{"border-opacity", []string{"--tw-border-opacity"}})
	return nil
}

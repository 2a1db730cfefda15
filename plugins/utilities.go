package plugins

import (
	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/datatypes"
	"github.com/npillmayer/jitcss/engine"
)

var d = cssom.Decl

func preflight(api *engine.PluginAPI) error {
	border, ok := api.Theme("borderColor.DEFAULT")
	if !ok {
		border = "currentColor"
	}
	sans, ok := api.Theme("fontFamily.sans")
	if !ok {
		sans = "sans-serif"
	}
	api.AddBase(
		cssom.NewStyleRule("*, ::before, ::after",
			d("box-sizing", "border-box"), d("border-width", "0"),
			d("border-style", "solid"), d("border-color", border)),
		cssom.NewStyleRule("::before, ::after", d("--tw-content", "''")),
		cssom.NewStyleRule("html",
			d("line-height", "1.5"), d("-webkit-text-size-adjust", "100%"),
			d("tab-size", "4"), d("font-family", sans)),
		cssom.NewStyleRule("body", d("margin", "0"), d("line-height", "inherit")),
		cssom.NewStyleRule("h1, h2, h3, h4, h5, h6", d("font-size", "inherit"), d("font-weight", "inherit")),
		cssom.NewStyleRule("a", d("color", "inherit"), d("text-decoration", "inherit")),
		cssom.NewStyleRule("img, svg, video, canvas", d("display", "block"), d("vertical-align", "middle")),
		cssom.NewStyleRule("[hidden]", d("display", "none")),
	)
	return nil
}

func position(api *engine.PluginAPI) error {
	var rules []*css.Rule
	for _, p := range []string{"static", "fixed", "absolute", "relative", "sticky"} {
		rules = append(rules, class(p, d("position", p)))
	}
	addUtilities(api, rules...)
	return nil
}

func inset(api *engine.PluginAPI) error {
	matchSection(api, "inset", engine.UtilityOptions().Negative(),
		family{"inset", []string{"inset"}},
		family{"inset-x", []string{"left", "right"}},
		family{"inset-y", []string{"top", "bottom"}},
		family{"start", []string{"inset-inline-start"}},
		family{"end", []string{"inset-inline-end"}},
		family{"top", []string{"top"}},
		family{"right", []string{"right"}},
		family{"bottom", []string{"bottom"}},
		family{"left", []string{"left"}},
	)
	return nil
}

func zIndex(api *engine.PluginAPI) error {
	matchSection(api, "zIndex", engine.UtilityOptions().Negative(), family{"z", []string{"z-index"}})
	return nil
}

func margin(api *engine.PluginAPI) error {
	matchSection(api, "margin", engine.UtilityOptions().Negative(),
		family{"m", []string{"margin"}},
		family{"mx", []string{"margin-left", "margin-right"}},
		family{"my", []string{"margin-top", "margin-bottom"}},
		family{"ms", []string{"margin-inline-start"}},
		family{"me", []string{"margin-inline-end"}},
		family{"mt", []string{"margin-top"}},
		family{"mr", []string{"margin-right"}},
		family{"mb", []string{"margin-bottom"}},
		family{"ml", []string{"margin-left"}},
	)
	return nil
}

func padding(api *engine.PluginAPI) error {
	matchSection(api, "padding", engine.UtilityOptions(),
		family{"p", []string{"padding"}},
		family{"px", []string{"padding-left", "padding-right"}},
		family{"py", []string{"padding-top", "padding-bottom"}},
		family{"ps", []string{"padding-inline-start"}},
		family{"pe", []string{"padding-inline-end"}},
		family{"pt", []string{"padding-top"}},
		family{"pr", []string{"padding-right"}},
		family{"pb", []string{"padding-bottom"}},
		family{"pl", []string{"padding-left"}},
	)
	return nil
}

func display(api *engine.PluginAPI) error {
	var rules []*css.Rule
	for _, v := range []string{"block", "inline-block", "inline", "flex", "inline-flex", "table",
		"table-row", "table-cell", "grid", "inline-grid", "contents", "list-item"} {
		rules = append(rules, class(v, d("display", v)))
	}
	rules = append(rules, class("hidden", d("display", "none")))
	addUtilities(api, rules...)
	return nil
}

func width(api *engine.PluginAPI) error {
	matchSection(api, "width", engine.UtilityOptions(), family{"w", []string{"width"}})
	return nil
}

func height(api *engine.PluginAPI) error {
	matchSection(api, "height", engine.UtilityOptions(), family{"h", []string{"height"}})
	return nil
}

func gap(api *engine.PluginAPI) error {
	matchSection(api, "gap", engine.UtilityOptions(),
		family{"gap", []string{"gap"}},
		family{"gap-x", []string{"column-gap"}},
		family{"gap-y", []string{"row-gap"}},
	)
	return nil
}

// space puts margins between children, honoring `space-x-reverse`.
func space(api *engine.PluginAPI) error {
	const children = "& > :not([hidden]) ~ :not([hidden])"
	axis := func(name, start, end, reverse string) engine.MatchUtility {
		return engine.MatchUtility{Name: name, Fn: func(value string, _ engine.Extras) cssom.Object {
			if value == "0" {
				value = "0px"
			}
			return cssom.Object{cssom.Nest(children,
				cssom.D(reverse, "0"),
				cssom.D(end, "calc("+value+" * var("+reverse+"))"),
				cssom.D(start, "calc("+value+" * calc(1 - var("+reverse+")))"),
			)}
		}}
	}
	api.MatchUtilities([]engine.MatchUtility{
		axis("space-x", "margin-left", "margin-right", "--tw-space-x-reverse"),
		axis("space-y", "margin-top", "margin-bottom", "--tw-space-y-reverse"),
	}, engine.UtilityOptions().WithValues(api.ThemeSection("space")).Negative())
	addUtilities(api,
		cssom.NewStyleRule(".space-x-reverse > :not([hidden]) ~ :not([hidden])", d("--tw-space-x-reverse", "1")),
		cssom.NewStyleRule(".space-y-reverse > :not([hidden]) ~ :not([hidden])", d("--tw-space-y-reverse", "1")),
	)
	return nil
}

func borderRadius(api *engine.PluginAPI) error {
	matchSection(api, "borderRadius", engine.UtilityOptions(),
		family{"rounded", []string{"border-radius"}},
		family{"rounded-t", []string{"border-top-left-radius", "border-top-right-radius"}},
		family{"rounded-r", []string{"border-top-right-radius", "border-bottom-right-radius"}},
		family{"rounded-b", []string{"border-bottom-right-radius", "border-bottom-left-radius"}},
		family{"rounded-l", []string{"border-top-left-radius", "border-bottom-left-radius"}},
	)
	return nil
}

func borderWidth(api *engine.PluginAPI) error {
	matchSection(api, "borderWidth", engine.UtilityOptions().WithTypes(datatypes.LineWidth, datatypes.Length),
		family{"border", []string{"border-width"}},
		family{"border-x", []string{"border-left-width", "border-right-width"}},
		family{"border-y", []string{"border-top-width", "border-bottom-width"}},
		family{"border-t", []string{"border-top-width"}},
		family{"border-r", []string{"border-right-width"}},
		family{"border-b", []string{"border-bottom-width"}},
		family{"border-l", []string{"border-left-width"}},
	)
	return nil
}

func textAlign(api *engine.PluginAPI) error {
	var rules []*css.Rule
	for _, v := range []string{"left", "center", "right", "justify", "start", "end"} {
		rules = append(rules, class("text-"+v, d("text-align", v)))
	}
	addUtilities(api, rules...)
	return nil
}

func opacity(api *engine.PluginAPI) error {
	matchSection(api, "opacity", engine.UtilityOptions(), family{"opacity", []string{"opacity"}})
	return nil
}

func boxShadow(api *engine.PluginAPI) error {
	api.MatchUtilities([]engine.MatchUtility{{
		Name: "shadow",
		Fn: func(value string, _ engine.Extras) cssom.Object {
			return cssom.Object{
				cssom.D("--tw-shadow", value),
				cssom.D("box-shadow", "var(--tw-ring-offset-shadow, 0 0 #0000), "+
					"var(--tw-ring-shadow, 0 0 #0000), var(--tw-shadow)"),
			}
		},
	}}, engine.UtilityOptions().WithValues(api.ThemeSection("boxShadow")).WithTypes(datatypes.Shadow))
	return nil
}

func content(api *engine.PluginAPI) error {
	api.MatchUtilities([]engine.MatchUtility{{
		Name: "content",
		Fn: func(value string, _ engine.Extras) cssom.Object {
			return cssom.Object{
				cssom.D("--tw-content", value),
				cssom.D("content", "var(--tw-content)"),
			}
		},
	}}, engine.UtilityOptions().WithValues(api.ThemeSection("content")).WithTypes(datatypes.Lookup, datatypes.Any))
	return nil
}

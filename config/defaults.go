package config

// shades are the keys of a color palette.
var shades = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}

func palette(hex ...string) map[string]any {
	p := make(map[string]any, len(hex))
	for i, h := range hex {
		p[shades[i]] = h
	}
	return p
}

func colors() map[string]any {
	return map[string]any{
		"inherit":     "inherit",
		"current":     "currentColor",
		"transparent": "transparent",
		"black":       "#000",
		"white":       "#fff",
		"slate":       palette("#f8fafc", "#f1f5f9", "#e2e8f0", "#cbd5e1", "#94a3b8", "#64748b", "#475569", "#334155", "#1e293b", "#0f172a", "#020617"),
		"gray":        palette("#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af", "#6b7280", "#4b5563", "#374151", "#1f2937", "#111827", "#030712"),
		"red":         palette("#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d", "#450a0a"),
		"yellow":      palette("#fefce8", "#fef9c3", "#fef08a", "#fde047", "#facc15", "#eab308", "#ca8a04", "#a16207", "#854d0e", "#713f12", "#422006"),
		"green":       palette("#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d", "#052e16"),
		"blue":        palette("#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a", "#172554"),
		"indigo":      palette("#eef2ff", "#e0e7ff", "#c7d2fe", "#a5b4fc", "#818cf8", "#6366f1", "#4f46e5", "#4338ca", "#3730a3", "#312e81", "#1e1b4b"),
	}
}

func spacing() map[string]any {
	return map[string]any{
		"px": "1px", "0": "0px", "0.5": "0.125rem", "1": "0.25rem", "1.5": "0.375rem",
		"2": "0.5rem", "2.5": "0.625rem", "3": "0.75rem", "3.5": "0.875rem", "4": "1rem",
		"5": "1.25rem", "6": "1.5rem", "7": "1.75rem", "8": "2rem", "9": "2.25rem",
		"10": "2.5rem", "11": "2.75rem", "12": "3rem", "14": "3.5rem", "16": "4rem",
		"20": "5rem", "24": "6rem", "28": "7rem", "32": "8rem", "36": "9rem",
		"40": "10rem", "44": "11rem", "48": "12rem", "52": "13rem", "56": "14rem",
		"60": "15rem", "64": "16rem", "72": "18rem", "80": "20rem", "96": "24rem",
	}
}

var fractions = map[string]any{
	"1/2": "50%", "1/3": "33.333333%", "2/3": "66.666667%", "1/4": "25%",
	"2/4": "50%", "3/4": "75%", "1/5": "20%", "2/5": "40%", "3/5": "60%",
	"4/5": "80%", "1/6": "16.666667%", "5/6": "83.333333%", "full": "100%",
}

// DefaultTheme returns a fresh copy of the default theme, without the
// derived sections.
func DefaultTheme() map[string]any {
	return map[string]any{
		"colors":  colors(),
		"spacing": spacing(),
		"screens": map[string]any{
			"sm": "640px", "md": "768px", "lg": "1024px", "xl": "1280px", "2xl": "1536px",
		},
		"opacity": map[string]any{
			"0": "0", "5": "0.05", "10": "0.1", "20": "0.2", "25": "0.25", "30": "0.3",
			"40": "0.4", "50": "0.5", "60": "0.6", "70": "0.7", "75": "0.75", "80": "0.8",
			"90": "0.9", "95": "0.95", "100": "1",
		},
		"zIndex": map[string]any{
			"auto": "auto", "0": "0", "10": "10", "20": "20", "30": "30", "40": "40", "50": "50",
		},
		"fontFamily": map[string]any{
			"sans": []any{"ui-sans-serif", "system-ui", "sans-serif", `"Apple Color Emoji"`,
				`"Segoe UI Emoji"`, `"Segoe UI Symbol"`, `"Noto Color Emoji"`},
			"serif": []any{"ui-serif", "Georgia", "Cambria", `"Times New Roman"`, "Times", "serif"},
			"mono": []any{"ui-monospace", "SFMono-Regular", "Menlo", "Monaco", "Consolas",
				`"Liberation Mono"`, `"Courier New"`, "monospace"},
		},
		"fontSize": map[string]any{
			"xs":   fontSize("0.75rem", "1rem"),
			"sm":   fontSize("0.875rem", "1.25rem"),
			"base": fontSize("1rem", "1.5rem"),
			"lg":   fontSize("1.125rem", "1.75rem"),
			"xl":   fontSize("1.25rem", "1.75rem"),
			"2xl":  fontSize("1.5rem", "2rem"),
			"3xl":  fontSize("1.875rem", "2.25rem"),
			"4xl":  fontSize("2.25rem", "2.5rem"),
			"5xl":  fontSize("3rem", "1"),
			"6xl":  fontSize("3.75rem", "1"),
		},
		"fontWeight": map[string]any{
			"thin": "100", "extralight": "200", "light": "300", "normal": "400", "medium": "500",
			"semibold": "600", "bold": "700", "extrabold": "800", "black": "900",
		},
		"lineHeight": map[string]any{
			"none": "1", "tight": "1.25", "snug": "1.375", "normal": "1.5", "relaxed": "1.625",
			"loose": "2", "3": ".75rem", "4": "1rem", "5": "1.25rem", "6": "1.5rem",
			"7": "1.75rem", "8": "2rem", "9": "2.25rem", "10": "2.5rem",
		},
		"letterSpacing": map[string]any{
			"tighter": "-0.05em", "tight": "-0.025em", "normal": "0em",
			"wide": "0.025em", "wider": "0.05em", "widest": "0.1em",
		},
		"borderWidth": map[string]any{
			"DEFAULT": "1px", "0": "0px", "2": "2px", "4": "4px", "8": "8px",
		},
		"borderRadius": map[string]any{
			"none": "0px", "sm": "0.125rem", "DEFAULT": "0.25rem", "md": "0.375rem",
			"lg": "0.5rem", "xl": "0.75rem", "2xl": "1rem", "3xl": "1.5rem", "full": "9999px",
		},
		"boxShadow": map[string]any{
			"sm":      "0 1px 2px 0 rgb(0 0 0 / 0.05)",
			"DEFAULT": "0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1)",
			"md":      "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)",
			"lg":      "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)",
			"inner":   "inset 0 2px 4px 0 rgb(0 0 0 / 0.05)",
			"none":    "none",
		},
		"content": map[string]any{
			"none": "none",
		},
		"aria": map[string]any{
			"busy": `busy="true"`, "checked": `checked="true"`, "disabled": `disabled="true"`,
			"expanded": `expanded="true"`, "hidden": `hidden="true"`, "pressed": `pressed="true"`,
			"readonly": `readonly="true"`, "required": `required="true"`, "selected": `selected="true"`,
		},
		"data":     map[string]any{},
		"supports": map[string]any{},
	}
}

func fontSize(size, lineHeight string) []any {
	return []any{size, map[string]any{"lineHeight": lineHeight}}
}

// derivation computes a theme section from the (already extended) theme.
type derivation struct {
	section string
	from    func(t map[string]any) map[string]any
}

// derived lists the theme sections which default to values computed from
// other sections. Order matters: later sections may use earlier ones.
var derived = []derivation{
	{"margin", func(t map[string]any) map[string]any { return merge(section(t, "spacing"), map[string]any{"auto": "auto"}) }},
	{"padding", func(t map[string]any) map[string]any { return section(t, "spacing") }},
	{"gap", func(t map[string]any) map[string]any { return section(t, "spacing") }},
	{"space", func(t map[string]any) map[string]any { return section(t, "spacing") }},
	{"inset", func(t map[string]any) map[string]any {
		return merge(section(t, "spacing"), fractions, map[string]any{"auto": "auto"})
	}},
	{"width", func(t map[string]any) map[string]any {
		return merge(section(t, "spacing"), fractions, map[string]any{
			"auto": "auto", "screen": "100vw", "min": "min-content", "max": "max-content", "fit": "fit-content",
		})
	}},
	{"height", func(t map[string]any) map[string]any {
		return merge(section(t, "spacing"), fractions, map[string]any{
			"auto": "auto", "screen": "100vh", "min": "min-content", "max": "max-content", "fit": "fit-content",
		})
	}},
	{"translate", func(t map[string]any) map[string]any { return merge(section(t, "spacing"), fractions) }},
	{"backgroundColor", func(t map[string]any) map[string]any { return section(t, "colors") }},
	{"textColor", func(t map[string]any) map[string]any { return section(t, "colors") }},
	{"borderColor", func(t map[string]any) map[string]any {
		c := section(t, "colors")
		def := "currentColor"
		if g, ok := c["gray"].(map[string]any); ok {
			if s, ok := g["200"].(string); ok {
				def = s
			}
		}
		return merge(c, map[string]any{"DEFAULT": def})
	}},
	{"ringColor", func(t map[string]any) map[string]any { return section(t, "colors") }},
	{"backgroundOpacity", func(t map[string]any) map[string]any { return section(t, "opacity") }},
	{"textOpacity", func(t map[string]any) map[string]any { return section(t, "opacity") }},
	{"borderOpacity", func(t map[string]any) map[string]any { return section(t, "opacity") }},
}

func section(t map[string]any, name string) map[string]any {
	if m, ok := t[name].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// merge creates a new map from shallow copies of maps, later maps winning.
func merge(maps ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

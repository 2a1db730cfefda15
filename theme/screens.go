package theme

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Screen is a named breakpoint. A screen is either a raw media query or a
// list of min/max width ranges.
type Screen struct {
	Name   string
	Values []ScreenRange
}

// ScreenRange is a min/max width pair or a raw media query.
type ScreenRange struct {
	Min, Max, Raw string
}

// Screens normalizes the `screens` section of a theme. Screens are ordered
// by their minimum width, screens without a minimum width last.
func (t Theme) Screens() []Screen {
	v, ok := t.Get("screens")
	if !ok {
		return nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	screens := make([]Screen, 0, len(m))
	for _, name := range Keys(m) {
		screens = append(screens, Screen{Name: name, Values: screenRanges(m[name])})
	}
	sort.SliceStable(screens, func(i, j int) bool {
		return CompareWidths(screens[i].MinWidth(), screens[j].MinWidth()) < 0
	})
	return screens
}

// Screen finds a screen by name.
func (t Theme) Screen(name string) (Screen, bool) {
	for _, s := range t.Screens() {
		if s.Name == name {
			return s, true
		}
	}
	return Screen{}, false
}

func screenRanges(v any) []ScreenRange {
	switch x := v.(type) {
	case string:
		return []ScreenRange{{Min: x}}
	case []any:
		var ranges []ScreenRange
		for _, e := range x {
			ranges = append(ranges, screenRanges(e)...)
		}
		return ranges
	}
	if m, ok := asMap(v); ok {
		r := ScreenRange{}
		r.Min, _ = Stringify("", m["min"])
		r.Max, _ = Stringify("", m["max"])
		r.Raw, _ = Stringify("", m["raw"])
		if r.Min == "" {
			r.Min, _ = Stringify("", m["min-width"])
		}
		return []ScreenRange{r}
	}
	return nil
}

// MinWidth is the minimum width of the first range of s, if any.
func (s Screen) MinWidth() string {
	if len(s.Values) == 0 {
		return ""
	}
	return s.Values[0].Min
}

// MediaQuery builds the media query text for a screen, e.g.
// `(min-width: 640px)`.
func (s Screen) MediaQuery() string {
	parts := make([]string, 0, len(s.Values))
	for _, r := range s.Values {
		if r.Raw != "" {
			parts = append(parts, r.Raw)
			continue
		}
		var q []string
		if r.Min != "" {
			q = append(q, "(min-width: "+r.Min+")")
		}
		if r.Max != "" {
			q = append(q, "(max-width: "+r.Max+")")
		}
		parts = append(parts, strings.Join(q, " and "))
	}
	return strings.Join(parts, ", ")
}

// CompareWidths orders two CSS lengths. Lengths with equal units compare
// numerically; unparsable or empty lengths sort last.
func CompareWidths(a, b string) int {
	na, ua, oka := splitLength(a)
	nb, ub, okb := splitLength(b)
	switch {
	case !oka && !okb:
		return strings.Compare(a, b)
	case !oka:
		return 1
	case !okb:
		return -1
	}
	if ua != ub {
		return strings.Compare(ua, ub)
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	}
	return 0
}

func splitLength(s string) (float64, string, bool) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsDigit(r) || r == '.' || r == '-' || r == '+')
	})
	if i < 0 {
		i = len(s)
	}
	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, "", false
	}
	return n, s[i:], true
}

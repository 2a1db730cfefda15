package datatypes

import (
	"regexp"
	"strconv"
	"strings"
)

// Type names a kind of CSS value a utility accepts.
type Type string

// Value types known to the engine. Lookup and Any are not predicates on a
// value: Lookup means "must be a key of the plugin's value map", Any accepts
// everything.
const (
	Any          Type = "any"
	Color        Type = "color"
	URL          Type = "url"
	Image        Type = "image"
	Length       Type = "length"
	Percentage   Type = "percentage"
	Position     Type = "position"
	Lookup       Type = "lookup"
	GenericName  Type = "generic-name"
	FamilyName   Type = "family-name"
	Number       Type = "number"
	LineWidth    Type = "line-width"
	AbsoluteSize Type = "absolute-size"
	RelativeSize Type = "relative-size"
	Shadow       Type = "shadow"
	Size         Type = "size"
)

// Known reports whether t is one of the value types above.
func Known(t Type) bool {
	_, ok := predicates[t]
	return ok || t == Any || t == Lookup || t == Color
}

// Is checks whether value is acceptable as a value of type t. For types
// which are not predicates on values (Any, Lookup) Is returns false.
func Is(t Type, value string) bool {
	if t == Color {
		return IsColor(value)
	}
	if p, ok := predicates[t]; ok {
		return p(value)
	}
	return false
}

var predicates = map[Type]func(string) bool{
	URL:          IsURL,
	Image:        IsImage,
	Length:       IsLength,
	Percentage:   IsPercentage,
	Position:     IsPosition,
	GenericName:  func(v string) bool { return genericNames[v] },
	FamilyName:   IsFamilyName,
	Number:       IsNumber,
	LineWidth:    func(v string) bool { return v == "thin" || v == "medium" || v == "thick" },
	AbsoluteSize: func(v string) bool { return absoluteSizes[v] },
	RelativeSize: func(v string) bool { return v == "larger" || v == "smaller" },
	Shadow:       IsShadow,
	Size:         IsBackgroundSize,
}

var cssFunction = regexp.MustCompile(`^(min|max|clamp|calc)\(.*\)`)

func isCSSFunction(value string) bool {
	return cssFunction.MatchString(value)
}

// IsURL checks for `url(…)`.
func IsURL(value string) bool {
	return strings.HasPrefix(value, "url(")
}

// IsNumber checks for a plain number or a math function.
func IsNumber(value string) bool {
	if isCSSFunction(value) {
		return true
	}
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

// IsPercentage checks for `<number>%` or a math function.
func IsPercentage(value string) bool {
	return (strings.HasSuffix(value, "%") && IsNumber(value[:len(value)-1])) || isCSSFunction(value)
}

var lengthUnits = []string{
	"cm", "mm", "Q", "in", "pc", "pt", "px", "em", "ex", "ch", "rem", "lh",
	"rlh", "vw", "vh", "vmin", "vmax", "vb", "vi", "svw", "svh", "lvw",
	"lvh", "dvw", "dvh", "cqw", "cqh", "cqi", "cqb", "cqmin", "cqmax",
}

var lengthRe = regexp.MustCompile(`^[+-]?[0-9]*\.?[0-9]+(?:[eE][+-]?[0-9]+)?(?:` +
	strings.Join(lengthUnits, "|") + `)$`)

// IsLength checks for a dimension with a length unit, `0`, or a math function.
func IsLength(value string) bool {
	return value == "0" || lengthRe.MatchString(value) || isCSSFunction(value)
}

// IsColor checks for one or more colors, separated by underscores.
// var() parts are accepted, but at least one part has to be a color.
func IsColor(value string) bool {
	colors := 0
	for _, part := range SplitAtTopLevelOnly(value, "_") {
		part = Normalize(part)
		if strings.HasPrefix(part, "var(") {
			continue
		}
		if ParseColor(part, true) == nil {
			return false
		}
		colors++
	}
	return colors > 0
}

var gradientTypes = []string{
	"linear-gradient", "radial-gradient", "repeating-linear-gradient",
	"repeating-radial-gradient", "conic-gradient",
}

// IsGradient checks for one of the CSS gradient functions.
func IsGradient(value string) bool {
	value = Normalize(value)
	for _, t := range gradientTypes {
		if strings.HasPrefix(value, t+"(") {
			return true
		}
	}
	return false
}

// IsImage checks for a comma separated list of images (urls, gradients,
// image functions).
func IsImage(value string) bool {
	images := 0
	for _, part := range SplitAtTopLevelOnly(value, ",") {
		part = Normalize(part)
		if strings.HasPrefix(part, "var(") {
			continue
		}
		if !(IsURL(part) || IsGradient(part) || hasAnyPrefix(part, "element(", "image(", "cross-fade(", "image-set(")) {
			return false
		}
		images++
	}
	return images > 0
}

var positions = map[string]bool{"center": true, "top": true, "right": true, "bottom": true, "left": true}

// IsPosition checks for background-position like values.
func IsPosition(value string) bool {
	n := 0
	for _, part := range SplitAtTopLevelOnly(value, "_") {
		part = Normalize(part)
		if strings.HasPrefix(part, "var(") {
			continue
		}
		if !(positions[part] || IsLength(part) || IsPercentage(part)) {
			return false
		}
		n++
	}
	return n > 0
}

var quotedFamily = regexp.MustCompile(`(['"])([^"']+)['"]`)

// IsFamilyName checks for a comma separated list of font family names.
// Names containing spaces must be quoted.
func IsFamilyName(value string) bool {
	fonts := 0
	for _, part := range SplitAtTopLevelOnly(value, ",") {
		part = Normalize(part)
		if strings.HasPrefix(part, "var(") {
			continue
		}
		if strings.Contains(part, " ") && !quotedFamily.MatchString(part) {
			return false
		}
		if part != "" && isDigit(part[0]) {
			return false
		}
		fonts++
	}
	return fonts > 0
}

var genericNames = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "ui-serif": true, "ui-sans-serif": true,
	"ui-monospace": true, "ui-rounded": true, "math": true, "emoji": true,
	"fangsong": true,
}

var absoluteSizes = map[string]bool{
	"xx-small": true, "x-small": true, "small": true, "medium": true,
	"large": true, "x-large": true, "xx-large": true, "xxx-large": true,
}

var shadowKeywords = map[string]bool{"inset": true, "inherit": true, "initial": true, "revert": true, "unset": true}

// IsShadow checks for box-shadow values. Every comma separated shadow needs
// at least an x and a y offset.
func IsShadow(value string) bool {
	for _, shadow := range SplitAtTopLevelOnly(Normalize(value), ",") {
		lengths := 0
		for _, part := range strings.Fields(shadow) {
			switch {
			case shadowKeywords[part]:
			case IsLength(part):
				lengths++
			case ParseColor(part, true) != nil, strings.HasPrefix(part, "var("):
			default:
				return false
			}
		}
		if lengths < 2 {
			return false
		}
	}
	return true
}

// IsBackgroundSize checks for background-size values.
func IsBackgroundSize(value string) bool {
	for _, part := range SplitAtTopLevelOnly(value, ",") {
		var sizes []string
		for _, s := range SplitAtTopLevelOnly(part, "_") {
			if s != "" {
				sizes = append(sizes, s)
			}
		}
		if len(sizes) == 1 && (sizes[0] == "cover" || sizes[0] == "contain") {
			continue
		}
		if len(sizes) != 1 && len(sizes) != 2 {
			return false
		}
		for _, s := range sizes {
			if !(IsLength(s) || IsPercentage(s) || s == "auto") {
				return false
			}
		}
	}
	return true
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

package datatypes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParsedColor is a color split into its color space, channel values and
// an optional alpha value. Channels and alpha are kept as CSS source text.
type ParsedColor struct {
	Mode     string // "rgb" or "hsl"
	Channels []string
	Alpha    string
	HasAlpha bool
}

const (
	colorValue  = `(?:\d+|\d*\.\d+)%?`
	colorSep    = `(?:\s*,\s*|\s+)`
	alphaSep    = `\s*[,/]\s*`
	customProp  = `var\(--(?:[^ )]*?)\)`
	channelExpr = `(` + colorValue + `|` + customProp + `)`
)

var (
	hexRe      = regexp.MustCompile(`(?i)^#([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})?$`)
	shortHexRe = regexp.MustCompile(`(?i)^#([a-f\d])([a-f\d])([a-f\d])([a-f\d])?$`)
	rgbRe      = regexp.MustCompile(`^(rgb)a?\(\s*` + channelExpr +
		`(?:` + colorSep + channelExpr + `)?(?:` + colorSep + channelExpr + `)?(?:` +
		alphaSep + channelExpr + `)?\s*\)$`)
	hslRe = regexp.MustCompile(`^(hsl)a?\(\s*((?:` + colorValue + `)(?:deg|rad|grad|turn)?|` + customProp + `)` +
		`(?:` + colorSep + channelExpr + `)?(?:` + colorSep + channelExpr + `)?(?:` +
		alphaSep + channelExpr + `)?\s*\)$`)
	varOnly = regexp.MustCompile(`^var\(.*?\)$`)
)

// ParseColor parses hex, rgb(), hsl() and named colors. With loose set,
// colors with less than three channels are accepted if a channel is a
// custom property. ParseColor returns nil for anything else.
func ParseColor(value string, loose bool) *ParsedColor {
	value = strings.TrimSpace(value)
	if value == "transparent" {
		return &ParsedColor{Mode: "rgb", Channels: []string{"0", "0", "0"}, Alpha: "0", HasAlpha: true}
	}
	if rgb, ok := namedColors[strings.ToLower(value)]; ok {
		return &ParsedColor{Mode: "rgb", Channels: []string{
			strconv.Itoa(rgb[0]), strconv.Itoa(rgb[1]), strconv.Itoa(rgb[2]),
		}}
	}
	if m := shortHexRe.FindStringSubmatch(value); m != nil {
		value = "#" + m[1] + m[1] + m[2] + m[2] + m[3] + m[3] + m[4] + m[4]
	}
	if m := hexRe.FindStringSubmatch(value); m != nil {
		c := &ParsedColor{Mode: "rgb"}
		for _, h := range m[1:4] {
			n, _ := strconv.ParseInt(h, 16, 32)
			c.Channels = append(c.Channels, strconv.FormatInt(n, 10))
		}
		if m[4] != "" {
			n, _ := strconv.ParseInt(m[4], 16, 32)
			c.Alpha = strconv.FormatFloat(float64(n)/255, 'g', -1, 64)
			c.HasAlpha = true
		}
		return c
	}
	m := rgbRe.FindStringSubmatch(value)
	if m == nil {
		m = hslRe.FindStringSubmatch(value)
	}
	if m == nil {
		return nil
	}
	var channels []string
	for _, ch := range m[2:5] {
		if ch != "" {
			channels = append(channels, ch)
		}
	}
	if len(channels) == 2 && strings.HasPrefix(channels[0], "var(") {
		return &ParsedColor{Mode: m[1], Channels: channels[:1], Alpha: channels[1], HasAlpha: true}
	}
	if !loose && len(channels) != 3 {
		return nil
	}
	if len(channels) < 3 {
		someVar := false
		for _, ch := range channels {
			someVar = someVar || varOnly.MatchString(ch)
		}
		if !someVar {
			return nil
		}
	}
	c := &ParsedColor{Mode: m[1], Channels: channels}
	if m[5] != "" {
		c.Alpha, c.HasAlpha = m[5], true
	}
	return c
}

// String formats a color in space separated notation, e.g.
// `rgb(239 68 68 / 0.5)`.
func (c *ParsedColor) String() string {
	if c.HasAlpha {
		return fmt.Sprintf("%s(%s / %s)", c.Mode, strings.Join(c.Channels, " "), c.Alpha)
	}
	return fmt.Sprintf("%s(%s)", c.Mode, strings.Join(c.Channels, " "))
}

// WithAlpha returns a copy of c with its alpha value replaced.
func (c *ParsedColor) WithAlpha(alpha string) *ParsedColor {
	cc := *c
	cc.Channels = append([]string(nil), c.Channels...)
	cc.Alpha, cc.HasAlpha = alpha, true
	return &cc
}

// WithAlphaValue applies alpha to color. If color cannot be parsed,
// fallback is returned.
func WithAlphaValue(color, alpha, fallback string) string {
	c := ParseColor(color, true)
	if c == nil {
		tracer().Debugf("cannot apply alpha to color %q", color)
		return fallback
	}
	return c.WithAlpha(alpha).String()
}

var namedColors = map[string][3]int{
	"aqua": {0, 255, 255}, "azure": {240, 255, 255}, "beige": {245, 245, 220},
	"black": {0, 0, 0}, "blue": {0, 0, 255}, "brown": {165, 42, 42},
	"coral": {255, 127, 80}, "crimson": {220, 20, 60}, "cyan": {0, 255, 255},
	"darkblue": {0, 0, 139}, "darkgray": {169, 169, 169}, "darkgreen": {0, 100, 0},
	"darkred": {139, 0, 0}, "fuchsia": {255, 0, 255}, "gold": {255, 215, 0},
	"gray": {128, 128, 128}, "green": {0, 128, 0}, "grey": {128, 128, 128},
	"indigo": {75, 0, 130}, "ivory": {255, 255, 240}, "khaki": {240, 230, 140},
	"lavender": {230, 230, 250}, "lightblue": {173, 216, 230}, "lightgray": {211, 211, 211},
	"lime": {0, 255, 0}, "magenta": {255, 0, 255}, "maroon": {128, 0, 0},
	"navy": {0, 0, 128}, "olive": {128, 128, 0}, "orange": {255, 165, 0},
	"orchid": {218, 112, 214}, "pink": {255, 192, 203}, "plum": {221, 160, 221},
	"purple": {128, 0, 128}, "rebeccapurple": {102, 51, 153}, "red": {255, 0, 0},
	"salmon": {250, 128, 114}, "silver": {192, 192, 192}, "skyblue": {135, 206, 235},
	"tan": {210, 180, 140}, "teal": {0, 128, 128}, "tomato": {255, 99, 71},
	"turquoise": {64, 224, 208}, "violet": {238, 130, 238}, "wheat": {245, 222, 179},
	"white": {255, 255, 255}, "yellow": {255, 255, 0}, "yellowgreen": {154, 205, 50},
}

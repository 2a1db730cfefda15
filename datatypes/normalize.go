package datatypes

import (
	"regexp"
	"strings"
)

var (
	urlPart        = regexp.MustCompile(`url\(.*?\)`)
	underscoreRun  = regexp.MustCompile(`([^\\])_+`)
	mathFunctionRe = regexp.MustCompile(`(calc|min|max|clamp)\(`)
)

// Normalize converts an arbitrary value as written in a candidate into CSS
// notation:
//
//   - `url(…)` sections are kept verbatim
//   - underscores become spaces, except for escaped ones (`\_`)
//   - surrounding whitespace is removed
//   - math operators inside calc(), min(), max() and clamp() get spaces
//
func Normalize(value string) string {
	return normalize(value, true)
}

func normalize(value string, isRoot bool) string {
	if strings.Contains(value, "url(") {
		var b strings.Builder
		last := 0
		for _, loc := range urlPart.FindAllStringIndex(value, -1) {
			if loc[0] > last {
				b.WriteString(normalize(value[last:loc[0]], false))
			}
			b.WriteString(value[loc[0]:loc[1]])
			last = loc[1]
		}
		if last < len(value) {
			b.WriteString(normalize(value[last:], false))
		}
		return b.String()
	}
	value = underscoreRun.ReplaceAllStringFunc(value, func(m string) string {
		return m[:1] + strings.Repeat(" ", len(m)-1)
	})
	if strings.HasPrefix(value, "_") {
		value = " " + value[1:]
	}
	value = strings.ReplaceAll(value, `\_`, "_")
	if isRoot {
		value = strings.TrimSpace(value)
	}
	return spaceMathOperators(value)
}

// spaceMathOperators adds whitespace around binary operators inside math
// functions, as required by calc(). An operator is binary if it follows a
// number (optionally with unit) or a closing parenthesis. Names of custom
// properties inside var() are left alone.
func spaceMathOperators(value string) string {
	loc := mathFunctionRe.FindStringIndex(value)
	if loc == nil {
		return value
	}
	end := strings.LastIndexByte(value, ')')
	if end < loc[1] {
		return value
	}
	var b strings.Builder
	b.WriteString(value[:loc[0]])
	region := value[loc[0] : end+1]
	inVar := false
	for i := 0; i < len(region); i++ {
		c := region[i]
		if inVar {
			if c == ',' || c == ')' {
				inVar = false
			}
			b.WriteByte(c)
			continue
		}
		if strings.HasPrefix(region[i:], "var(--") {
			inVar = true
		}
		if strings.IndexByte("+-*/", c) >= 0 && followsOperand(region[:i]) {
			b.WriteByte(' ')
			b.WriteByte(c)
			if i+1 < len(region) && region[i+1] != ' ' {
				b.WriteByte(' ')
			}
			continue
		}
		b.WriteByte(c)
	}
	b.WriteString(value[end+1:])
	return b.String()
}

// followsOperand is true if s ends in a closing parenthesis or in a number
// with an optional unit or percent sign.
func followsOperand(s string) bool {
	if s == "" {
		return false
	}
	if s[len(s)-1] == ')' {
		return true
	}
	i := len(s) - 1
	for i >= 0 && (isLetter(s[i]) || s[i] == '%') {
		i--
	}
	return i >= 0 && isDigit(s[i])
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

package selector

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// EscapeClassName escapes a class name for use in a selector, e.g.
// `hover:underline` yields `hover\:underline` and `2xl` yields `\32xl`.
// Commas are escaped as `\2c `.
func EscapeClassName(name string) string {
	return strings.ReplaceAll(escapeIdent(name), `\,`, `\2c `)
}

// EscapeIdent escapes an identifier, e.g. an id selector.
func EscapeIdent(name string) string {
	return escapeIdent(name)
}

func needsSingleEscape(c rune) bool {
	switch {
	case c >= ' ' && c <= ',':
		return true
	case c == '.' || c == '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '^':
		return true
	case c == '`':
		return true
	case c >= '{' && c <= '~':
		return true
	}
	return false
}

func escapeIdent(name string) string {
	var b strings.Builder
	for i, c := range name {
		switch {
		case c < 0x20 || c > 0x7e:
			b.WriteByte('\\')
			b.WriteString(strings.ToUpper(strconv.FormatInt(int64(c), 16)))
			next, _ := utf8.DecodeRuneInString(name[i+utf8.RuneLen(c):])
			if isHex(next) || next == ' ' {
				b.WriteByte(' ')
			}
		case needsSingleEscape(c):
			b.WriteByte('\\')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	out := b.String()
	if len(out) >= 2 && out[0] == '-' && (out[1] == '-' || isDigitByte(out[1])) {
		return `\-` + out[1:]
	}
	if len(out) > 0 && isDigitByte(out[0]) {
		s := `\3` + out[:1]
		if len(out) > 1 && (isHex(rune(out[1])) || out[1] == ' ') {
			s += " "
		}
		return s + out[1:]
	}
	return out
}

// Unescape resolves CSS escapes: a backslash followed by up to six hex
// digits and an optional whitespace, or a backslash followed by any other
// character.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		j := i + 1
		for j < len(s) && j-i <= 6 && isHex(rune(s[j])) {
			j++
		}
		if j > i+1 {
			n, _ := strconv.ParseInt(s[i+1:j], 16, 32)
			if n == 0 || n > utf8.MaxRune {
				n = utf8.RuneError
			}
			b.WriteRune(rune(n))
			if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
				j++
			}
			i = j - 1
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i+1:])
		b.WriteRune(r)
		i += size
	}
	return b.String()
}

func isHex(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDigitByte(c byte) bool {
	return c >= '0' && c <= '9'
}

package theme

import (
	"fmt"
	"strings"

	"github.com/npillmayer/jitcss/datatypes"
)

// Evaluate replaces calls of the CSS functions `theme()` and `screen()` in
// a declaration value or at-rule prelude by the values they refer to.
// Function calls may be nested. The first unresolvable reference is
// returned as an error, wrapping ErrNoSuchPath.
func (t Theme) Evaluate(input string) (string, error) {
	if !strings.Contains(input, "theme(") && !strings.Contains(input, "screen(") {
		return input, nil
	}
	var b strings.Builder
	for i := 0; i < len(input); {
		name, argStart := functionAt(input, i)
		if name == "" {
			b.WriteByte(input[i])
			i++
			continue
		}
		end := matchingParen(input, argStart)
		if end < 0 {
			b.WriteString(input[i:])
			break
		}
		inner, err := t.Evaluate(input[argStart+1 : end])
		if err != nil {
			return "", err
		}
		args := splitArgs(inner)
		var value string
		if name == "theme" {
			value, err = t.themeFunction(args)
		} else {
			value, err = t.screenFunction(args[0])
		}
		if err != nil {
			return "", err
		}
		b.WriteString(value)
		i = end + 1
	}
	return b.String(), nil
}

// functionAt checks for a call of theme or screen at position i. It returns
// the function name and the position of the opening parenthesis.
func functionAt(s string, i int) (string, int) {
	if i > 0 && isIdentChar(s[i-1]) {
		return "", 0
	}
	for _, name := range []string{"theme", "screen"} {
		if strings.HasPrefix(s[i:], name+"(") {
			return name, i + len(name)
		}
	}
	return "", 0
}

func isIdentChar(c byte) bool {
	return c == '-' || c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func matchingParen(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth--; depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitArgs(s string) []string {
	var args []string
	var quote byte
	last := 0
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			args = append(args, strings.TrimSpace(s[last:i]))
			last = i + 1
		}
	}
	return append(args, strings.TrimSpace(s[last:]))
}

// themeFunction resolves `theme(path [/ alpha], default...)`. The path is
// first tried literally, then with a trailing alpha modifier split off.
func (t Theme) themeFunction(args []string) (string, error) {
	path := strings.Trim(args[0], `'"`)
	defaults := args[1:]
	value, err := t.Resolve(path, defaults...)
	if err == nil {
		return value, nil
	}
	base, alpha, ok := splitAlpha(path)
	if !ok {
		return "", err
	}
	color, aerr := t.Resolve(base, defaults...)
	if aerr != nil {
		return "", err
	}
	return datatypes.WithAlphaValue(color, alpha, color), nil
}

// splitAlpha splits `colors.red.500 / 50%` into path and alpha. Slashes
// inside of brackets are not considered.
func splitAlpha(path string) (string, string, bool) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 || strings.LastIndexByte(path, ']') > i {
		return "", "", false
	}
	base, alpha := strings.TrimSpace(path[:i]), strings.TrimSpace(path[i+1:])
	if base == "" || alpha == "" || strings.ContainsAny(base, " \t") || strings.ContainsAny(alpha, " \t/") {
		return "", "", false
	}
	return base, alpha, true
}

func (t Theme) screenFunction(arg string) (string, error) {
	name := strings.Trim(arg, `'"`)
	s, ok := t.Screen(name)
	if !ok {
		return "", &PathError{Path: "screens." + name,
			Message: fmt.Sprintf("The '%s' screen does not exist in your theme.", name)}
	}
	return s.MediaQuery(), nil
}

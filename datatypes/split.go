package datatypes

import "strings"

// SplitAtTopLevelOnly splits input at every occurence of separator which is
// not nested inside parentheses, brackets or braces and which is not
// escaped by a backslash.
//
//     SplitAtTopLevelOnly("a:[b:c]:d", ":")  →  ["a", "[b:c]", "d"]
//
func SplitAtTopLevelOnly(input string, separator string) []string {
	if separator == "" {
		return []string{input}
	}
	var parts []string
	var stack []byte
	last := 0
	escaped := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		if len(stack) == 0 && !escaped && c == separator[0] {
			if len(separator) == 1 || strings.HasPrefix(input[i:], separator) {
				parts = append(parts, input[last:i])
				last = i + len(separator)
			}
		}
		if escaped {
			escaped = false
		} else if c == '\\' {
			escaped = true
		}
		switch c {
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) > 0 && stack[len(stack)-1] == opening(c) {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return append(parts, input[last:])
}

func opening(c byte) byte {
	switch c {
	case ')':
		return '('
	case ']':
		return '['
	}
	return '{'
}

// IsBalanced reports whether all parentheses, brackets and braces of s are
// properly nested. Quoted sections are skipped.
func IsBalanced(s string) bool {
	var stack []byte
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' {
			i++
			continue
		}
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != opening(c) {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0 && quote == 0
}

package cssom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
)

// IsParsableDeclaration checks if `property: value` survives a round trip
// through a declaration parser as exactly one declaration of the same
// property.
func IsParsableDeclaration(property, value string) bool {
	if strings.TrimSpace(value) == "" || !IsSyntacticallyValidValue(value) {
		return false
	}
	decls, err := parser.ParseDeclarations(property + ": " + value + ";")
	if err != nil || len(decls) != 1 {
		return false
	}
	return decls[0].Property == property
}

// IsParsableRule checks every declaration of a rule tree.
func IsParsableRule(r *css.Rule) bool {
	ok := true
	WalkDecls(r, func(d *css.Declaration, _ *css.Rule, _ []*css.Rule) {
		if ok && !IsParsableDeclaration(d.Property, d.Value) {
			ok = false
		}
	})
	return ok
}

// IsSyntacticallyValidValue scans a declaration value. Values with scanner
// errors, unbalanced brackets, stray quotes or top-level `;` are rejected,
// as are top-level `:` outside of brackets.
func IsSyntacticallyValidValue(value string) bool {
	var stack []byte
	s := scanner.New(value)
	for {
		t := s.Next()
		switch t.Type {
		case scanner.TokenEOF:
			return len(stack) == 0
		case scanner.TokenError, scanner.TokenBOM, scanner.TokenCDO, scanner.TokenCDC:
			return false
		case scanner.TokenFunction:
			stack = append(stack, ')')
		case scanner.TokenChar:
			switch c := t.Value; c {
			case "(":
				stack = append(stack, ')')
			case "[":
				stack = append(stack, ']')
			case "{":
				stack = append(stack, '}')
			case ")", "]", "}":
				if len(stack) == 0 || stack[len(stack)-1] != c[0] {
					return false
				}
				stack = stack[:len(stack)-1]
			case ";", ":":
				if len(stack) == 0 {
					return false
				}
			case `"`, "'", `\`:
				return false
			}
		}
	}
}

package theme

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrNoSuchPath is the error class for unresolvable theme paths.
var ErrNoSuchPath = errors.New("theme path does not exist")

// PathError is returned for theme paths which do not resolve to a value.
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return e.Message
}

// Unwrap makes PathError match ErrNoSuchPath.
func (e *PathError) Unwrap() error {
	return ErrNoSuchPath
}

// Theme is a nested map of theme values. Leaves are strings, numbers or
// lists of strings.
type Theme map[string]any

// ToPath splits a theme path into its segments. Dots separate segments,
// brackets quote segments containing dots:
//
//     ToPath("spacing[2.5]")     →  ["spacing", "2.5"]
//     ToPath("colors.red.500")   →  ["colors", "red", "500"]
//
func ToPath(path string) ([]string, error) {
	if strings.Count(path, "[") != strings.Count(path, "]") {
		return nil, fmt.Errorf("path is invalid, has unbalanced brackets: %s", path)
	}
	var segments []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			segments = append(segments, b.String())
			b.Reset()
		}
	}
	inBracket := false
	for _, r := range path {
		switch {
		case r == '[':
			flush()
			inBracket = true
		case r == ']':
			flush()
			inBracket = false
		case r == '.' && !inBracket:
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return segments, nil
}

// PathString is the inverse of ToPath.
func PathString(segments []string) string {
	var b strings.Builder
	for i, s := range segments {
		switch {
		case strings.Contains(s, "."):
			b.WriteString("[" + s + "]")
		case i == 0:
			b.WriteString(s)
		default:
			b.WriteString("." + s)
		}
	}
	return b.String()
}

// Get returns the raw value at path.
func (t Theme) Get(segments ...string) (any, bool) {
	var v any = map[string]any(t)
	for _, s := range segments {
		m, ok := asMap(v)
		if !ok {
			return nil, false
		}
		if v, ok = m[s]; !ok {
			return nil, false
		}
	}
	return v, true
}

// Section returns the theme section name as a flat map of strings. Nested
// maps are flattened with `-` separated keys, keys `DEFAULT` are dropped
// from the flattened name:
//
//     colors.red.500  →  "red-500"
//     borderRadius.DEFAULT  →  "DEFAULT"
//
func (t Theme) Section(name string) map[string]string {
	v, ok := t.Get(name)
	if !ok {
		return nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	flat := make(map[string]string)
	flatten(name, "", m, flat)
	return flat
}

func flatten(section, prefix string, m map[string]any, flat map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			if k == "DEFAULT" {
				key = prefix
			} else {
				key = prefix + "-" + k
			}
		}
		if sub, ok := asMap(v); ok && !isValueObject(sub) {
			flatten(section, key, sub, flat)
			continue
		}
		if s, ok := Stringify(section, v); ok {
			flat[key] = s
		}
	}
}

// isValueObject is true for maps describing a single value, like screens
// with `min`/`max` or `raw`.
func isValueObject(m map[string]any) bool {
	for _, k := range []string{"min", "max", "raw"} {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// Keys returns the keys of a theme map in stable order: `DEFAULT` first,
// then numeric keys in ascending order, then all other keys
// alphabetically.
func Keys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// SortKeys sorts theme keys in place, see Keys.
func SortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
}

func keyLess(a, b string) bool {
	if a == "DEFAULT" || b == "DEFAULT" {
		return a == "DEFAULT" && b != "DEFAULT"
	}
	fa, erra := strconv.ParseFloat(a, 64)
	fb, errb := strconv.ParseFloat(b, 64)
	switch {
	case erra == nil && errb == nil:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case erra == nil:
		return true
	case errb == nil:
		return false
	}
	return a < b
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Theme:
		return map[string]any(m), true
	case map[string]string:
		mm := make(map[string]any, len(m))
		for k, s := range m {
			mm[k] = s
		}
		return mm, true
	}
	return nil, false
}

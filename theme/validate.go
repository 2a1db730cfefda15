package theme

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Resolve looks up the CSS text of the value at path. If path does not
// resolve and defaults are given, the defaults are returned as a comma
// separated list. Any other failure returns a *PathError.
func (t Theme) Resolve(path string, defaults ...string) (string, error) {
	path = strings.Trim(path, `'"`)
	segments, err := ToPath(path)
	if err != nil {
		return "", &PathError{Path: path, Message: err.Error()}
	}
	return t.resolve(path, segments, defaults)
}

func (t Theme) resolve(path string, segments []string, defaults []string) (string, error) {
	v, ok := t.Get(segments...)
	if !ok {
		if len(defaults) > 0 {
			return strings.Join(defaults, ", "), nil
		}
		return "", &PathError{Path: path, Message: t.missingMessage(path, segments)}
	}
	section := ""
	if len(segments) > 0 {
		section = segments[0]
	}
	if s, ok := Stringify(section, v); ok {
		return s, nil
	}
	msg := fmt.Sprintf("'%s' was found but does not resolve to a string.", path)
	if m, ok := asMap(v); ok {
		if valid := t.validKeys(segments, m); len(valid) > 0 {
			msg += fmt.Sprintf(" Did you mean something like '%s'?", PathString(append(clip(segments), valid[0])))
		}
	}
	return "", &PathError{Path: path, Message: msg}
}

func (t Theme) missingMessage(path string, segments []string) string {
	msg := fmt.Sprintf("'%s' does not exist in your theme config.", path)
	if len(segments) == 0 {
		return msg
	}
	parent := segments[:len(segments)-1]
	if pv, ok := t.Get(parent...); ok {
		if m, ok := asMap(pv); ok {
			valid := t.validKeys(parent, m)
			if s := Suggest(segments[len(segments)-1], valid); s != "" {
				return msg + fmt.Sprintf(" Did you mean '%s'?", PathString(append(clip(parent), s)))
			}
			if len(valid) > 0 {
				return msg + fmt.Sprintf(" '%s' has the following valid keys: %s", PathString(parent), quoteList(valid))
			}
			return msg
		}
	}
	closest := t.closestExisting(segments)
	if closest == nil {
		return msg + fmt.Sprintf(" Your theme has the following top-level keys: %s", quoteList(Keys(t)))
	}
	cv, _ := t.Get(closest...)
	if m, ok := asMap(cv); ok {
		return msg + fmt.Sprintf(" '%s' has the following keys: %s", PathString(closest), quoteList(Keys(m)))
	}
	return msg + fmt.Sprintf(" '%s' is not an object.", PathString(closest))
}

// validKeys are the keys of m, a map located at parent, resolving to
// leaf values.
func (t Theme) validKeys(parent []string, m map[string]any) []string {
	var valid []string
	section := ""
	if len(parent) > 0 {
		section = parent[0]
	}
	for _, k := range Keys(m) {
		if len(parent) == 0 {
			section = k
		}
		if _, ok := Stringify(section, m[k]); ok {
			valid = append(valid, k)
		}
	}
	return valid
}

func (t Theme) closestExisting(segments []string) []string {
	for n := len(segments) - 1; n > 0; n-- {
		if _, ok := t.Get(segments[:n]...); ok {
			return segments[:n]
		}
	}
	return nil
}

func clip(s []string) []string {
	return s[:len(s):len(s)]
}

func quoteList(keys []string) string {
	q := make([]string, len(keys))
	for i, k := range keys {
		q[i] = "'" + k + "'"
	}
	return strings.Join(q, ", ")
}

// Suggest returns the candidate closest to word, if it is near enough. A
// candidate qualifies if its edit distance to word is at most 40% of the
// length of word. Ties are resolved by candidate order.
func Suggest(word string, candidates []string) string {
	best, bestDist := "", -1
	limit := float64(len(word)) * 0.4
	lw := strings.ToLower(word)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lw, strings.ToLower(c))
		if float64(d) > limit {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if best != "" {
		tracer().Debugf("suggesting %q for %q", best, word)
	}
	return best
}

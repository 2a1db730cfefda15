package extract

import (
	"regexp"
	"strings"
)

// Extractor finds candidates in a line of content.
type Extractor interface {
	Extract(line string) []string
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(line string) []string

// Extract calls f(line).
func (f ExtractorFunc) Extract(line string) []string {
	return f(line)
}

// bt stands in for a backtick in the patterns below.
const bt = "§"

const (
	variantsUnquoted = `(?:(?:(?:[^\s"'§\[\\]+-)?\[[^\s"'§]+\]|[^\s"'§\[\\]+)SEP)*`
	variantsQuoted   = `(?:(?:(?:[^\s"'§\[\\]+-)?\[[^\s§]+\]|[^\s§\[\\]+)SEP)*`
	utilityPattern   = `(?:\[[^\s:'"§]+:[^\s\[\]]+\]` + // arbitrary property
		`|\[[^\s:'"§]+:[^\s]+?\[[^\s]+\][^\s]+?\]` + // arbitrary property with nested brackets
		`|-?\w+(?:` +
		`-(?:\w+-)*\[[^\s:]+\](?:/[^\s'"§\\><$]*)?` + // arbitrary value, opacity modifier
		`|-(?:\w+-)*\[[^\s]+\](?:/[^\s'"§\\$]*)?` +
		`|[-/][^\s'"§\\$={><]*` + // plain name
		`)?)`
	innerPattern = `[^<>"'§\s.(){}\[\]#=%$]*[^<>"'§\s.(){}\[\]#=%:$]`
)

// Default is the default extractor. It depends on the variant separator
// and the class prefix of a configuration.
type Default struct {
	patterns []*regexp.Regexp
}

// NewDefault creates the default extractor for a separator and prefix.
func NewDefault(separator, prefix string) *Default {
	if separator == "" {
		separator = ":"
	}
	sep := regexp.QuoteMeta(separator)
	pre := ""
	if prefix != "" {
		pre = `(?:-?` + regexp.QuoteMeta(prefix) + `)?`
	}
	expand := func(p string) *regexp.Regexp {
		p = strings.ReplaceAll(p, "SEP", sep)
		return regexp.MustCompile(strings.ReplaceAll(p, bt, "`"))
	}
	return &Default{patterns: []*regexp.Regexp{
		expand(variantsUnquoted + `!?` + pre + utilityPattern),
		expand(variantsQuoted + `!?` + pre + utilityPattern),
		expand(innerPattern),
	}}
}

// Extract returns all candidates in line, including duplicates.
func (d *Default) Extract(line string) []string {
	var results []string
	for _, p := range d.patterns {
		for _, m := range p.FindAllString(line, -1) {
			if m = clipAtBalancedParens(m); m != "" {
				results = append(results, m)
			}
		}
	}
	return results
}

// clipAtBalancedParens cuts a match at the first closing parenthesis
// which has no opening partner, e.g. `bg-red)` → `bg-red`. Brackets and
// quotes suspend the clipping.
func clipAtBalancedParens(s string) string {
	if !strings.Contains(s, ")") {
		return s
	}
	depth := 0
	brackets := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '[':
			brackets++
		case c == ']':
			brackets--
		case c == '(':
			depth++
		case c == ')':
			if depth == 0 && brackets <= 0 {
				return s[:i]
			}
			depth--
		}
	}
	return s
}

// Transformer rewrites content before extraction.
type Transformer func(content string) string

var svelteClassDirective = regexp.MustCompile(`(^|\s)class:`)

// BuiltinTransformers are the transformers for file extensions which need
// one by default.
var BuiltinTransformers = map[string]Transformer{
	"svelte": func(content string) string {
		return svelteClassDirective.ReplaceAllString(content, "$1 ")
	},
}

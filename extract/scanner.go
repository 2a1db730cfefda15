package extract

import (
	"fmt"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LineCacheSize is the number of lines every extractor remembers.
const LineCacheSize = 25000

// Content is a unit of changed content. Either File or Raw is set;
// Extension selects extractor and transformer.
type Content struct {
	File      string
	Raw       string
	Extension string
}

// entry is an extractor together with its line cache.
type entry struct {
	extractor Extractor
	lines     *lru.Cache[string, []string]
}

func newEntry(x Extractor) *entry {
	c, err := lru.New[string, []string](LineCacheSize)
	if err != nil {
		panic(err) // only for size <= 0
	}
	return &entry{extractor: x, lines: c}
}

// Scanner extracts candidates from content. Scanners are owned by a
// context and are not safe for concurrent use.
type Scanner struct {
	def          *entry
	byExt        map[string]*entry
	transformers map[string]Transformer
}

// NewScanner creates a scanner using the default extractor for separator and
// prefix. transformers override the built-in transformers per extension;
// key "DEFAULT" applies to all extensions without a specific transformer.
func NewScanner(separator, prefix string, transformers map[string]func(string) string) *Scanner {
	s := &Scanner{
		def:          newEntry(NewDefault(separator, prefix)),
		byExt:        make(map[string]*entry),
		transformers: make(map[string]Transformer),
	}
	for ext, t := range transformers {
		s.transformers[ext] = t
	}
	return s
}

// SetExtractor registers an extractor for a list of file extensions. All
// extensions share one line cache.
func (s *Scanner) SetExtractor(x Extractor, extensions ...string) {
	e := newEntry(x)
	for _, ext := range extensions {
		s.byExt[strings.TrimPrefix(ext, ".")] = e
	}
}

func (s *Scanner) entryFor(ext string) *entry {
	if e, ok := s.byExt[ext]; ok {
		return e
	}
	return s.def
}

func (s *Scanner) transformerFor(ext string) Transformer {
	if t, ok := s.transformers[ext]; ok {
		return t
	}
	if t, ok := s.transformers["DEFAULT"]; ok {
		return t
	}
	if t, ok := BuiltinTransformers[ext]; ok {
		return t
	}
	return nil
}

// Scan extracts the candidates of all changed content into candidates.
// Files are read from disk.
func (s *Scanner) Scan(changed []Content, candidates map[string]struct{}) error {
	seen := make(map[string]struct{})
	for _, c := range changed {
		content := c.Raw
		if c.File != "" {
			data, err := os.ReadFile(c.File)
			if err != nil {
				return fmt.Errorf("cannot read content file: %w", err)
			}
			content = string(data)
		}
		s.ScanContent(content, c.Extension, candidates, seen)
	}
	tracer().Debugf("have %d candidates after scanning %d content items", len(candidates), len(changed))
	return nil
}

// ScanContent extracts the candidates of a single content string. Lines
// contained in seen are skipped, new lines are added to seen.
func (s *Scanner) ScanContent(content, ext string, candidates map[string]struct{}, seen map[string]struct{}) {
	ext = strings.TrimPrefix(ext, ".")
	if t := s.transformerFor(ext); t != nil {
		content = t(content)
	}
	e := s.entryFor(ext)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if seen != nil {
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
		}
		matches, ok := e.lines.Get(line)
		if !ok {
			matches = uniq(e.extractor.Extract(line))
			e.lines.Add(line, matches)
		}
		for _, m := range matches {
			candidates[m] = struct{}{}
		}
	}
}

// Extract is a convenience function: it returns the distinct candidates
// of content in order of first appearance. The line cache is bypassed.
func (s *Scanner) Extract(content, ext string) []string {
	ext = strings.TrimPrefix(ext, ".")
	if t := s.transformerFor(ext); t != nil {
		content = t(content)
	}
	e := s.entryFor(ext)
	seen := make(map[string]struct{})
	var list []string
	for _, line := range strings.Split(content, "\n") {
		for _, m := range uniq(e.extractor.Extract(strings.TrimSpace(line))) {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				list = append(list, m)
			}
		}
	}
	return list
}

// uniq removes duplicates and the ignored candidate `!*`.
func uniq(matches []string) []string {
	seen := make(map[string]struct{}, len(matches))
	out := matches[:0]
	for _, m := range matches {
		if m == "!*" {
			continue
		}
		if _, ok := seen[m]; !ok {
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

// CachedLines returns the number of lines cached for an extension's
// extractor.
func (s *Scanner) CachedLines(ext string) int {
	return s.entryFor(strings.TrimPrefix(ext, ".")).lines.Len()
}

package config

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/mitchellh/hashstructure/v2"
)

// Warning is a problem found while resolving a configuration.
type Warning struct {
	Key     string
	Message string
}

func (w Warning) String() string {
	return w.Key + ": " + w.Message
}

var warned sync.Map

// warnOnce logs a warning the first time its key is seen in this process.
func warnOnce(w Warning) {
	if _, seen := warned.LoadOrStore(w.Key, true); !seen {
		tracer().Infof("warning: %s", w.Message)
	}
}

var bogusBraces = regexp.MustCompile(`{([^,]*?)}`)

// Resolve normalizes a configuration and computes its complete theme. The
// input configuration is not modified.
func Resolve(cfg Config) (*Config, []Warning) {
	r := cfg
	var warnings []Warning
	warn := func(key, format string, args ...any) {
		w := Warning{Key: key, Message: fmt.Sprintf(format, args...)}
		warnOnce(w)
		warnings = append(warnings, w)
	}
	if r.Separator == "" {
		r.Separator = ":"
	}
	if r.DarkMode == "" {
		r.DarkMode = "media"
	}
	if r.DarkSelector == "" {
		r.DarkSelector = ".dark"
	}
	if r.DarkMode != "media" && r.DarkMode != "class" {
		warn("darkmode-invalid", "The `dark_mode` option must be 'media' or 'class', is %q. Using 'media'.", r.DarkMode)
		r.DarkMode = "media"
	}
	if r.Purge != nil {
		warn("purge-deprecation", "The `purge`/`content` options have changed. Update your configuration file to eliminate this warning.")
		if files, ok := r.Purge.([]any); ok && len(r.Content.Files) == 0 {
			for _, f := range files {
				if s, ok := f.(string); ok {
					r.Content.Files = append(r.Content.Files, s)
				}
			}
		}
	}
	if len(r.Content.Files) == 0 && len(r.Content.Raw) == 0 {
		warn("content-problems", "The `content` option in your configuration is missing or empty. Configure your content sources or your generated CSS will be missing styles.")
	}
	for _, f := range r.Content.Files {
		if bogusBraces.MatchString(f) {
			warn("invalid-glob-braces", "The glob pattern %s in your configuration is invalid. Update it to %s to silence this warning.",
				f, bogusBraces.ReplaceAllString(f, "$1"))
			break
		}
	}
	blocklist := make([]any, 0, len(r.Blocklist))
	for _, b := range r.Blocklist {
		if _, ok := b.(string); !ok {
			warn("blocklist-invalid", "The `blocklist` option must be an array of strings.")
			blocklist = nil
			break
		}
		blocklist = append(blocklist, b)
	}
	r.Blocklist = blocklist
	r.Theme = ResolveTheme(cfg.Theme)
	return &r, warnings
}

// BlocklistStrings returns the blocklist entries.
func (c *Config) BlocklistStrings() []string {
	var list []string
	for _, b := range c.Blocklist {
		if s, ok := b.(string); ok {
			list = append(list, s)
		}
	}
	return list
}

// ResolveTheme merges a user theme onto the default theme. Top-level
// sections of the user theme replace default sections, sections below
// `extend` are merged deeply. Derived sections are computed from the
// extended theme unless the user theme sets them.
func ResolveTheme(user map[string]any) map[string]any {
	t := DefaultTheme()
	var extend map[string]any
	for k, v := range user {
		if k == "extend" {
			extend, _ = v.(map[string]any)
			continue
		}
		t[k] = deepCopy(v)
	}
	isDerived := make(map[string]bool, len(derived))
	for _, d := range derived {
		isDerived[d.section] = true
	}
	for k, v := range extend {
		if !isDerived[k] {
			t[k] = deepMerge(t[k], v)
		}
	}
	for _, d := range derived {
		if _, set := user[d.section]; !set {
			t[d.section] = deepCopy(d.from(t))
		}
	}
	for k, v := range extend {
		if isDerived[k] {
			t[k] = deepMerge(t[k], v)
		}
	}
	return t
}

func deepMerge(base, ext any) any {
	bm, ok1 := base.(map[string]any)
	em, ok2 := ext.(map[string]any)
	if !ok1 || !ok2 {
		return deepCopy(ext)
	}
	out := make(map[string]any, len(bm)+len(em))
	for k, v := range bm {
		out[k] = v
	}
	for k, v := range em {
		out[k] = deepMerge(out[k], v)
	}
	return out
}

func deepCopy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = deepCopy(e)
		}
		return out
	}
	return v
}

// Hash computes a hash over all settings of a configuration which
// influence generated CSS.
func Hash(cfg *Config) (uint64, error) {
	return hashstructure.Hash(cfg, hashstructure.FormatV2, nil)
}

package tracking

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/npillmayer/jitcss/config"
	"github.com/npillmayer/jitcss/extract"
)

// fileState is what we remember about a file after a successful build.
// hash is zero for files whose content is not scanned.
type fileState struct {
	mtime time.Time
	hash  uint64
}

// candidateFiles are the content globs of a configuration. Patterns
// starting with `!` exclude files.
type candidateFiles struct {
	include []string
	exclude []string
}

// parseCandidateFiles makes the content globs of a configuration absolute.
// With `content.relative` set, patterns are relative to the configuration
// file, otherwise to the working directory.
func parseCandidateFiles(cfg *config.Config) candidateFiles {
	base, _ := os.Getwd()
	if cfg.Content.Relative && cfg.Path != "" {
		base = filepath.Dir(cfg.Path)
	}
	var files candidateFiles
	for _, p := range cfg.Content.Files {
		p = strings.TrimSpace(p)
		negated := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		p = filepath.ToSlash(p)
		if negated {
			files.exclude = append(files.exclude, p)
		} else {
			files.include = append(files.include, p)
		}
	}
	return files
}

// expand lists all regular files matching the globs, sorted.
func (c candidateFiles) expand() []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range c.include {
		matches, err := doublestar.FilepathGlob(filepath.FromSlash(pattern))
		if err != nil {
			tracer().Errorf("invalid content pattern %q: %v", pattern, err)
			continue
		}
	next:
		for _, path := range matches {
			if _, ok := seen[path]; ok {
				continue
			}
			for _, ex := range c.exclude {
				if ok, _ := doublestar.PathMatch(filepath.FromSlash(ex), path); ok {
					continue next
				}
			}
			if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[path] = struct{}{}
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// dirs returns the static base directories of the include globs, e.g.
// `/app/src` for `/app/src/**/*.html`.
func (c candidateFiles) dirs() []string {
	var dirs []string
	seen := make(map[string]struct{})
	for _, pattern := range c.include {
		base, _ := doublestar.SplitPattern(pattern)
		base = filepath.FromSlash(base)
		if _, ok := seen[base]; !ok {
			seen[base] = struct{}{}
			dirs = append(dirs, base)
		}
	}
	return dirs
}

// changedContent collects the content to scan for a build: raw content of
// the configuration, always, and every file which has been modified since
// the last successful build. A file whose modification time advanced but
// whose content did not change is not scanned again. The returned states
// have to be committed after the build succeeded.
func changedContent(raw []config.RawContent, files []string,
	modified map[string]fileState) ([]extract.Content, map[string]fileState) {
	//
	var changed []extract.Content
	for _, r := range raw {
		changed = append(changed, extract.Content{Raw: r.Content, Extension: r.Extension})
	}
	commit := make(map[string]fileState)
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		prev, known := modified[path]
		if known && !info.ModTime().After(prev.mtime) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			tracer().Errorf("cannot read content file %s: %v", path, err)
			continue
		}
		state := fileState{mtime: info.ModTime(), hash: xxhash.Sum64(data)}
		commit[path] = state
		if known && prev.hash == state.hash {
			tracer().Debugf("content of %s did not change", path)
			continue
		}
		changed = append(changed, extract.Content{
			Raw:       string(data),
			Extension: strings.TrimPrefix(filepath.Ext(path), "."),
		})
	}
	return changed, commit
}

// trackModified checks the modification times of files against the state
// of the last successful build. Files which do not exist are ignored.
func trackModified(files []string, modified map[string]fileState) (bool, map[string]fileState) {
	changed := false
	commit := make(map[string]fileState)
	for _, path := range files {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		prev, known := modified[path]
		if !known || info.ModTime().After(prev.mtime) {
			changed = true
		}
		commit[path] = fileState{mtime: info.ModTime(), hash: prev.hash}
	}
	return changed, commit
}

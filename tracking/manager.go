package tracking

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/aymerick/douceur/css"
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/npillmayer/jitcss/config"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/engine"
	"github.com/npillmayer/jitcss/extract"
)

// Factory creates a context for a resolved configuration and a source
// stylesheet.
type Factory func(cfg *config.Config, source *cssom.StyleSheet) (*engine.Context, error)

// ConfigCacheSize is the number of configuration files a manager keeps
// loaded.
const ConfigCacheSize = 100

// Manager hands out contexts for source stylesheets.
//
// A Manager is safe for concurrent use, but builds of contexts it hands
// out must not overlap.
type Manager struct {
	mu           sync.Mutex
	factory      Factory
	bySource     map[string]*tracked
	byConfig     map[uint64]*tracked
	sourceHashes map[string]uint64
	configs      *lru.Cache[string, loadedConfig]
}

// tracked is a context together with its bookkeeping.
type tracked struct {
	ctx      *engine.Context
	hash     uint64
	sources  map[string]struct{}
	modified map[string]fileState
	files    candidateFiles
}

type loadedConfig struct {
	cfg   *config.Config
	mtime time.Time
}

// NewManager creates a manager which sets up contexts with factory.
func NewManager(factory Factory) *Manager {
	configs, err := lru.New[string, loadedConfig](ConfigCacheSize)
	if err != nil {
		panic(err) // only for size <= 0
	}
	return &Manager{
		factory:      factory,
		bySource:     make(map[string]*tracked),
		byConfig:     make(map[uint64]*tracked),
		sourceHashes: make(map[string]uint64),
		configs:      configs,
	}
}

// LoadConfig loads and resolves a configuration file. A loaded
// configuration is reused until the modification time of its file
// advances.
func (m *Manager) LoadConfig(path string) (*config.Config, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", config.ErrNotFound, path)
	} else if err != nil {
		return nil, err
	}
	m.mu.Lock()
	cached, ok := m.configs.Get(path)
	m.mu.Unlock()
	if ok && !info.ModTime().After(cached.mtime) {
		return cached.cfg, nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	resolved, warnings := config.Resolve(cfg)
	for _, w := range warnings {
		tracer().Infof("%s: %s", path, w)
	}
	m.mu.Lock()
	m.configs.Add(path, loadedConfig{cfg: resolved, mtime: info.ModTime()})
	m.mu.Unlock()
	tracer().Debugf("loaded configuration %s", path)
	return resolved, nil
}

// Request describes a build of a source stylesheet.
type Request struct {
	SourcePath   string            // identifies the source stylesheet
	Source       *cssom.StyleSheet // parsed source, before expansion
	Config       *config.Config    // resolved configuration
	ConfigPath   string            // file Config has been loaded from, if any
	Dependencies []string          // further files a context depends on
}

// Build is a context prepared for a build, together with the content
// changed since the last successful build.
type Build struct {
	Context *engine.Context
	Changed []extract.Content // content to scan
	Fresh   bool              // the context has been newly set up

	m      *Manager
	t      *tracked
	commit map[string]fileState
}

// Commit records the state of content files and dependencies after the
// build succeeded.
func (b *Build) Commit() {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	for path, state := range b.commit {
		b.t.modified[path] = state
	}
	b.commit = nil
}

// Dirs returns the directories containing content files. Watchers
// observe these.
func (b *Build) Dirs() []string {
	return b.t.files.dirs()
}

// Setup returns the context to build a source stylesheet with. An existing
// context is reused if one is registered for the source or for the
// configuration, unless the source stylesheet or one of the dependencies
// changed. Otherwise the source is detached from its old context, which is
// disposed if no other source uses it, and a new context is created.
func (m *Manager) Setup(req Request) (*Build, error) {
	hash, err := config.Hash(req.Config)
	if err != nil {
		return nil, fmt.Errorf("cannot hash configuration: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var existing *tracked
	if t, ok := m.bySource[req.SourcePath]; ok && req.ConfigPath != "" {
		existing = t
	} else if t, ok := m.byConfig[hash]; ok {
		if old, bound := m.bySource[req.SourcePath]; bound && old != t {
			m.detach(req.SourcePath)
		}
		t.sources[req.SourcePath] = struct{}{}
		m.bySource[req.SourcePath] = t
		existing = t
	}
	cssChanged := m.sourceChanged(req.SourcePath, req.Source)
	deps := append([]string{req.ConfigPath}, req.Dependencies...)
	if hasDirectives(req.Source) {
		deps = append(deps, req.SourcePath)
	}
	if existing != nil {
		changed, commit := trackModified(deps, existing.modified)
		if !changed && !cssChanged && existing.hash == hash {
			tracer().Debugf("reusing context for %s", req.SourcePath)
			return m.build(existing, commit, false), nil
		}
	}
	m.detach(req.SourcePath)
	tracer().Infof("setting up new context for %s", req.SourcePath)
	ctx, err := m.factory(req.Config, req.Source)
	if err != nil {
		return nil, err
	}
	t := &tracked{
		ctx:      ctx,
		hash:     hash,
		sources:  map[string]struct{}{req.SourcePath: {}},
		modified: make(map[string]fileState),
		files:    parseCandidateFiles(req.Config),
	}
	_, commit := trackModified(deps, t.modified)
	m.byConfig[hash] = t
	m.bySource[req.SourcePath] = t
	return m.build(t, commit, true), nil
}

func (m *Manager) build(t *tracked, commit map[string]fileState, fresh bool) *Build {
	changed, contentCommit := changedContent(t.ctx.Config().Content.Raw, t.files.expand(), t.modified)
	for path, state := range contentCommit {
		commit[path] = state
	}
	return &Build{Context: t.ctx, Changed: changed, Fresh: fresh, m: m, t: t, commit: commit}
}

// sourceChanged compares the hash of a source stylesheet to the hash seen
// for the source path before.
func (m *Manager) sourceChanged(path string, sheet *cssom.StyleSheet) bool {
	var h uint64
	if sheet != nil {
		h = xxhash.Sum64String(sheet.String())
	}
	prev, ok := m.sourceHashes[path]
	m.sourceHashes[path] = h
	return !ok || prev != h
}

// Release detaches a source from its context. A context no source refers
// to any more is disposed.
func (m *Manager) Release(sourcePath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detach(sourcePath)
	delete(m.sourceHashes, sourcePath)
}

func (m *Manager) detach(sourcePath string) {
	t, ok := m.bySource[sourcePath]
	if !ok {
		return
	}
	delete(m.bySource, sourcePath)
	delete(t.sources, sourcePath)
	if len(t.sources) > 0 {
		return
	}
	for hash, other := range m.byConfig {
		if other == t {
			delete(m.byConfig, hash)
		}
	}
	tracer().Debugf("disposing context of %s", sourcePath)
	t.ctx.Dispose()
}

// Contexts returns the number of live contexts.
func (m *Manager) Contexts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := make(map[*tracked]struct{})
	for _, t := range m.bySource {
		live[t] = struct{}{}
	}
	return len(live)
}

func hasDirectives(sheet *cssom.StyleSheet) bool {
	if sheet == nil {
		return false
	}
	found := false
	sheet.Walk(func(r *css.Rule, _ []*css.Rule) bool {
		if cssom.IsAtRule(r, "tailwind") {
			found = true
		}
		return !found
	})
	return found
}

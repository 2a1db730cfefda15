package engine

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/config"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/extract"
	"github.com/npillmayer/jitcss/selector"
	"github.com/npillmayer/jitcss/sortkey"
	"github.com/npillmayer/jitcss/theme"
)

// NotOnDemand is the candidate of rules without class selectors, like
// `*, ::before` in base styles. It is part of every build.
const NotOnDemand = "*"

// Plugin registers utilities and variants with a context.
type Plugin func(api *PluginAPI) error

// entry is a registered rule producer: either static rules or a function
// of a modifier value.
type entry struct {
	sort    sortkey.Offset
	layer   sortkey.Layer
	options Options
	rules   []*css.Rule
	produce func(modifier string, isOnlyPlugin bool) []*css.Rule
}

type classListEntry struct {
	name    string
	options *Options // set for matched utilities
}

// Context is the plugin registry and the generation caches for one
// configuration.
type Context struct {
	config    *config.Config
	theme     theme.Theme
	separator string
	prefix    string
	important config.ImportantPolicy
	reporter  Reporter
	warned    map[string]struct{}

	offsets          *sortkey.Offsets
	candidateRuleMap map[string][]*entry
	variantOrder     []string
	variantFns       map[string][]VariantFunc
	variantMap       map[string][]variantTuple
	variantOptions   map[string]*variantOptions
	variantID        int
	classList        []classListEntry
	classListSeen    map[string]bool
	parasites        []string

	candidates         map[string]struct{}
	classCache         map[string][]*Match
	notClassCache      map[string]struct{}
	candidateRuleCache map[string][]*GeneratedRule
	ruleCache          map[uint64]*GeneratedRule
	nodes              map[*css.Rule]string // assembled node → candidate
	nextID             uint64
	stylesheetCache    *layerSet
	cachedClassCount   int

	scanner        *extract.Scanner
	changedContent []extract.Content
	disposables    []func(*Context)
}

// ContextOption configures a context.
type ContextOption func(*Context)

// WithReporter sets the receiver of build diagnostics. The default is a
// Log.
func WithReporter(r Reporter) ContextOption {
	return func(ctx *Context) {
		ctx.reporter = r
	}
}

// WithExtractor registers an extractor for file extensions.
func WithExtractor(x extract.Extractor, extensions ...string) ContextOption {
	return func(ctx *Context) {
		ctx.scanner.SetExtractor(x, extensions...)
	}
}

// NewContext creates a context for a resolved configuration (see
// config.Resolve). Plugins register in the order given. `@layer` blocks of
// the source stylesheet are registered after all plugins and are removed
// from source. source may be nil.
func NewContext(cfg *config.Config, plugins []Plugin, source *cssom.StyleSheet,
	opts ...ContextOption) (*Context, error) {
	//
	ctx := &Context{
		config:             cfg,
		theme:              theme.Theme(cfg.Theme),
		separator:          cfg.Separator,
		prefix:             cfg.Prefix,
		important:          cfg.ImportantPolicy(),
		reporter:           &Log{},
		warned:             make(map[string]struct{}),
		offsets:            sortkey.New(),
		candidateRuleMap:   make(map[string][]*entry),
		variantFns:         make(map[string][]VariantFunc),
		variantMap:         make(map[string][]variantTuple),
		variantOptions:     make(map[string]*variantOptions),
		classListSeen:      make(map[string]bool),
		candidates:         map[string]struct{}{NotOnDemand: {}},
		classCache:         make(map[string][]*Match),
		notClassCache:      make(map[string]struct{}),
		candidateRuleCache: make(map[string][]*GeneratedRule),
		ruleCache:          make(map[uint64]*GeneratedRule),
		nodes:              make(map[*css.Rule]string),
	}
	if ctx.separator == "" {
		ctx.separator = ":"
	}
	ctx.scanner = extract.NewScanner(ctx.separator, ctx.prefix, cfg.Content.Transform)
	for _, opt := range opts {
		opt(ctx)
	}
	for _, b := range cfg.BlocklistStrings() {
		ctx.notClassCache[b] = struct{}{}
	}
	if source != nil {
		plugins = append(plugins[:len(plugins):len(plugins)], collectLayerPlugins(source)...)
	}
	if err := ctx.registerPlugins(plugins); err != nil {
		return nil, err
	}
	ctx.registerSafelist()
	dark := strings.TrimPrefix(cfg.DarkSelector, ".")
	if dark == "" {
		dark = "dark"
	}
	ctx.parasites = []string{ctx.prefix + dark, ctx.prefix + "group", ctx.prefix + "peer"}
	tracer().Debugf("context set up: %d utilities, %d variants", len(ctx.candidateRuleMap), len(ctx.variantMap))
	return ctx, nil
}

func (ctx *Context) registerPlugins(plugins []Plugin) error {
	api := &PluginAPI{ctx: ctx}
	for i, p := range plugins {
		if p == nil {
			continue
		}
		if err := p(api); err != nil {
			return fmt.Errorf("cannot register plugin #%d: %w", i, err)
		}
	}
	ctx.offsets.RecordVariants(ctx.variantOrder, func(name string) int {
		return len(ctx.variantFns[name])
	})
	for _, name := range ctx.variantOrder {
		fns := ctx.variantFns[name]
		tuples := make([]variantTuple, len(fns))
		for i, fn := range fns {
			off, err := ctx.offsets.ForVariant(name, i)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrUnknownVariant, name)
			}
			tuples[i] = variantTuple{sort: off, fn: fn}
		}
		ctx.variantMap[name] = tuples
	}
	return nil
}

// register adds an entry for a candidate identifier.
func (ctx *Context) register(identifier string, e *entry) {
	ctx.candidateRuleMap[identifier] = append(ctx.candidateRuleMap[identifier], e)
}

func (ctx *Context) addClass(name string, opts *Options) {
	if opts == nil {
		if ctx.classListSeen[name] {
			return
		}
		ctx.classListSeen[name] = true
	}
	ctx.classList = append(ctx.classList, classListEntry{name: name, options: opts})
}

// prefixIdentifier applies the configured prefix to a candidate
// identifier.
func (ctx *Context) prefixIdentifier(identifier string, respectPrefix bool) string {
	if identifier == NotOnDemand || !respectPrefix {
		return identifier
	}
	return ctx.prefix + identifier
}

// withIdentifiers pairs rules with the class names selecting them. A rule
// containing any selector without a class is paired with NotOnDemand, too.
func withIdentifiers(rules []*css.Rule) []identified {
	var ids []identified
	for _, r := range rules {
		classes, always := extractClasses(r)
		if always {
			ids = append(ids, identified{NotOnDemand, r})
		}
		for _, c := range classes {
			ids = append(ids, identified{c, r})
		}
	}
	return ids
}

type identified struct {
	identifier string
	rule       *css.Rule
}

func extractClasses(r *css.Rule) ([]string, bool) {
	seen := make(map[string]bool)
	var classes []string
	add := func(names []string) {
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				classes = append(classes, n)
			}
		}
	}
	nonOnDemand := false
	if r.Kind == css.QualifiedRule {
		for _, sel := range r.Selectors {
			l, err := selector.Parse(sel)
			if err != nil {
				nonOnDemand = true
				continue
			}
			names := l.Classes()
			if len(names) == 0 {
				nonOnDemand = true
			}
			add(names)
		}
	} else {
		cssom.WalkStyleRules(r, func(rule *css.Rule) {
			if l, err := selector.Parse(cssom.Selector(rule)); err == nil {
				add(l.Classes())
			}
		})
	}
	return classes, nonOnDemand || len(classes) == 0
}

// Config returns the configuration of a context.
func (ctx *Context) Config() *config.Config {
	return ctx.config
}

// Theme returns the resolved theme.
func (ctx *Context) Theme() theme.Theme {
	return ctx.theme
}

// Separator returns the variant separator.
func (ctx *Context) Separator() string {
	return ctx.separator
}

// Scanner returns the candidate scanner owned by the context.
func (ctx *Context) Scanner() *extract.Scanner {
	return ctx.scanner
}

// Offsets returns the offset allocator of the context.
func (ctx *Context) Offsets() *sortkey.Offsets {
	return ctx.offsets
}

// HasUtility reports whether a utility identifier has been registered.
func (ctx *Context) HasUtility(identifier string) bool {
	_, ok := ctx.candidateRuleMap[identifier]
	return ok
}

// HasVariant reports whether a variant has been registered.
func (ctx *Context) HasVariant(name string) bool {
	_, ok := ctx.variantMap[name]
	return ok
}

// Candidates returns the number of candidates collected so far.
func (ctx *Context) Candidates() int {
	return len(ctx.candidates)
}

// IsNotClass reports whether a candidate is known to generate nothing.
func (ctx *Context) IsNotClass(candidate string) bool {
	_, ok := ctx.notClassCache[candidate]
	return ok
}

// ClassCacheSize returns the number of candidates which generated rules.
func (ctx *Context) ClassCacheSize() int {
	return len(ctx.classCache)
}

// OnDispose registers a function to call when the context is disposed.
func (ctx *Context) OnDispose(fn func(*Context)) {
	ctx.disposables = append(ctx.disposables, fn)
}

// Dispose calls the dispose hooks and drops all caches.
func (ctx *Context) Dispose() {
	hooks := ctx.disposables
	ctx.disposables = nil
	for _, fn := range hooks {
		fn(ctx)
	}
	ctx.classCache = make(map[string][]*Match)
	ctx.notClassCache = make(map[string]struct{})
	ctx.candidateRuleCache = make(map[string][]*GeneratedRule)
	ctx.ruleCache = make(map[uint64]*GeneratedRule)
	ctx.nodes = make(map[*css.Rule]string)
	ctx.stylesheetCache = nil
	tracer().Debugf("context disposed")
}

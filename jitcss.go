/*
Package jitcss generates utility CSS on demand.

A Processor turns a source stylesheet with `@tailwind` directives into the
final stylesheet:

    @tailwind base;          →   *, ::before, ::after { … }
    @tailwind components;        .btn { … }
    @tailwind utilities;         .p-4 { padding: 1rem; }
                                 .hover\:underline:hover { … }

Content configured with `content.files` and `content.raw` is scanned for
class candidates, candidates are resolved against the built-in plugins
(package plugins) and user plugins, and the resulting rules are spliced
into the directives in a stable order. `theme()` and `screen()` in the
source are evaluated.

A Processor is meant to live as long as a watch session: contexts and
scan results are reused across builds (see package tracking).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package jitcss

import (
	"fmt"

	"github.com/npillmayer/jitcss/config"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/engine"
	"github.com/npillmayer/jitcss/plugins"
	"github.com/npillmayer/jitcss/tracking"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'jitcss'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss")
}

// Processor builds stylesheets. Builds must not overlap.
type Processor struct {
	manager  *tracking.Manager
	plugins  []engine.Plugin
	reporter engine.Reporter
}

// Option configures a Processor.
type Option func(*Processor)

// WithPlugins adds user plugins. They register after the built-in
// utilities and before variants like `md` or `dark`.
func WithPlugins(p ...engine.Plugin) Option {
	return func(proc *Processor) {
		proc.plugins = append(proc.plugins, p...)
	}
}

// WithReporter sets the receiver of build diagnostics.
func WithReporter(r engine.Reporter) Option {
	return func(proc *Processor) {
		proc.reporter = r
	}
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	proc := &Processor{}
	for _, opt := range opts {
		opt(proc)
	}
	proc.manager = tracking.NewManager(proc.newContext)
	return proc
}

func (proc *Processor) newContext(cfg *config.Config, source *cssom.StyleSheet) (*engine.Context, error) {
	var opts []engine.ContextOption
	if proc.reporter != nil {
		opts = append(opts, engine.WithReporter(proc.reporter))
	}
	return engine.NewContext(cfg, plugins.Resolve(cfg, proc.plugins...), source, opts...)
}

// Input is a source stylesheet to build.
type Input struct {
	CSS        string         // source stylesheet
	From       string         // path of the source stylesheet, if any
	ConfigPath string         // configuration file; overridden by `@config`
	Config     *config.Config // used if there is no configuration file
}

// Result is a built stylesheet.
type Result struct {
	CSS        string
	Context    *engine.Context
	ConfigPath string   // configuration file used, if any
	Dirs       []string // directories holding content files
}

// Process builds a stylesheet.
func (proc *Processor) Process(in Input) (*Result, error) {
	sheet, err := cssom.Parse(in.CSS)
	if err != nil {
		return nil, err
	}
	configPath := in.ConfigPath
	atConfig, err := tracking.FindAtConfigPath(sheet, in.From)
	if err != nil {
		return nil, err
	}
	if atConfig != "" {
		configPath = atConfig
	}
	var cfg *config.Config
	switch {
	case configPath != "":
		if cfg, err = proc.manager.LoadConfig(configPath); err != nil {
			return nil, err
		}
	case in.Config != nil:
		cfg, _ = config.Resolve(*in.Config)
	default:
		cfg, _ = config.Resolve(config.Default())
	}
	from := in.From
	if from == "" {
		from = "<input>"
	}
	build, err := proc.manager.Setup(tracking.Request{
		SourcePath: from,
		Source:     sheet,
		Config:     cfg,
		ConfigPath: configPath,
	})
	if err != nil {
		return nil, err
	}
	if err := build.Context.Expand(sheet, build.Changed); err != nil {
		return nil, fmt.Errorf("cannot expand %s: %w", from, err)
	}
	if err := build.Context.EvaluateFunctions(sheet); err != nil {
		return nil, fmt.Errorf("cannot evaluate functions in %s: %w", from, err)
	}
	build.Commit()
	tracer().Debugf("built %s with %d candidates", from, build.Context.Candidates())
	return &Result{
		CSS:        sheet.String(),
		Context:    build.Context,
		ConfigPath: configPath,
		Dirs:       build.Dirs(),
	}, nil
}

// Release drops the context of a source stylesheet.
func (proc *Processor) Release(from string) {
	proc.manager.Release(from)
}

// Build is a one-shot build of a stylesheet with a configuration.
func Build(css string, cfg config.Config) (string, error) {
	res, err := New().Process(Input{CSS: css, Config: &cfg})
	if err != nil {
		return "", err
	}
	return res.CSS, nil
}

package engine

import (
	"errors"
	"strings"
)

// Errors returned by variant registration and lookup.
var (
	ErrInvalidVariant = errors.New("invalid variant format")
	ErrUnknownVariant = errors.New("unknown variant")
)

// DiagnosticKind classifies non-fatal build problems.
type DiagnosticKind int8

// Kinds of diagnostics.
const (
	Ambiguous DiagnosticKind = iota
	InvalidTheme
	NoUtilities
	UnmatchedSafelist
	ConfigProblem
	PluginProblem
)

func (k DiagnosticKind) String() string {
	return [...]string{"ambiguous", "invalid-theme", "no-utilities",
		"unmatched-safelist", "config", "plugin"}[k]
}

// Diagnostic is a warning produced during a build.
type Diagnostic struct {
	Kind    DiagnosticKind
	Key     string // diagnostics with a key are reported once per context
	Message string
	Details []string
}

func (d Diagnostic) String() string {
	if len(d.Details) == 0 {
		return d.Message
	}
	return d.Message + "\n" + strings.Join(d.Details, "\n")
}

// Reporter receives the diagnostics of a context.
type Reporter interface {
	Report(d Diagnostic)
}

// Log is the default reporter. It traces diagnostics and keeps them for
// inspection.
type Log struct {
	Diagnostics []Diagnostic
}

// Report traces d and appends it to the log.
func (l *Log) Report(d Diagnostic) {
	tracer().Infof("warning: %s", d.String())
	l.Diagnostics = append(l.Diagnostics, d)
}

// Count returns the number of diagnostics of a kind.
func (l *Log) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range l.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// warn reports a diagnostic, at most once per key.
func (ctx *Context) warn(kind DiagnosticKind, key, message string, details ...string) {
	if key != "" {
		if _, seen := ctx.warned[key]; seen {
			return
		}
		ctx.warned[key] = struct{}{}
	}
	ctx.reporter.Report(Diagnostic{Kind: kind, Key: key, Message: message, Details: details})
}

package engine

import (
	"strings"

	"github.com/npillmayer/jitcss/datatypes"
	"github.com/npillmayer/jitcss/selector"
)

// TypeOption is a value type a matched utility accepts. If more than one
// utility accepts an arbitrary value, the one which prefers the value's
// type on conflict wins.
type TypeOption struct {
	Type             datatypes.Type
	PreferOnConflict bool
}

// Options control how registered rules are generated.
//
// Use UtilityOptions or ComponentOptions to start from the defaults of a
// layer; the zero value switches everything off.
type Options struct {
	PreserveSource   bool // rule stems from the source stylesheet
	RespectPrefix    bool // the configured prefix applies to classes
	RespectImportant bool // the configured important policy applies

	// For matched utilities only:
	Values                 map[string]string // theme values by key
	Types                  []TypeOption      // accepted value types, Any if empty
	SupportsNegativeValues bool
	Modifiers              map[string]string // values of modifiers like `/50`
	AnyModifier            bool              // accept every modifier
}

// UtilityOptions returns the default options of the utilities layer.
func UtilityOptions() Options {
	return Options{RespectPrefix: true, RespectImportant: true}
}

// ComponentOptions returns the default options of the components layer.
func ComponentOptions() Options {
	return Options{RespectPrefix: true}
}

// WithValues sets the value map of a matched utility.
func (o Options) WithValues(values map[string]string) Options {
	o.Values = values
	return o
}

// WithTypes sets the accepted value types.
func (o Options) WithTypes(types ...datatypes.Type) Options {
	o.Types = nil
	for _, t := range types {
		o.Types = append(o.Types, TypeOption{Type: t})
	}
	return o
}

// Preferring adds a type which is preferred on conflict.
func (o Options) Preferring(t datatypes.Type) Options {
	o.Types = append(o.Types, TypeOption{Type: t, PreferOnConflict: true})
	return o
}

// Negative allows negative values like `-mt-4`.
func (o Options) Negative() Options {
	o.SupportsNegativeValues = true
	return o
}

// WithModifiers sets the modifier values, e.g. line heights for font sizes.
func (o Options) WithModifiers(m map[string]string) Options {
	o.Modifiers = m
	return o
}

// AnyModifiers accepts every modifier value.
func (o Options) AnyModifiers() Options {
	o.AnyModifier = true
	return o
}

// Preserving marks rules as coming from the source stylesheet.
func (o Options) Preserving() Options {
	o.PreserveSource = true
	return o
}

// types returns the accepted types, defaulting to Any.
func (o Options) types() []TypeOption {
	if len(o.Types) == 0 {
		return []TypeOption{{Type: datatypes.Any}}
	}
	return o.Types
}

func (o Options) hasType(t datatypes.Type) bool {
	for _, to := range o.types() {
		if to.Type == t {
			return true
		}
	}
	return false
}

func (o Options) modifiersEnabled() bool {
	return o.AnyModifier || o.Modifiers != nil
}

// FormatClass forms the class name of a utility for a value key:
//
//     mt, 4        →  mt-4
//     mt, -4       →  -mt-4
//     rounded, DEFAULT  →  rounded
//
func FormatClass(utility, key string) string {
	switch {
	case key == "DEFAULT":
		return utility
	case key == "-" || key == "-DEFAULT":
		return "-" + utility
	case strings.HasPrefix(key, "-"):
		return "-" + utility + key
	case strings.HasPrefix(key, "/"):
		return utility + key
	}
	return utility + "-" + key
}

// nameClass returns the escaped class selector of a utility for a key.
func nameClass(utility, key string) string {
	return asClass(FormatClass(utility, key))
}

func asClass(name string) string {
	return "." + selector.EscapeClassName(name)
}

func isArbitraryValue(s string) bool {
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

/*
Package cssom provides the rule trees the engine generates and prints.

Nodes of a rule tree are douceur rules (github.com/aymerick/douceur/css):
a css.Rule is either a qualified rule (a selector with declarations) or an
at-rule, which may nest further rules. This package adds what douceur does
not offer: deep cloning, walking with ancestry, selector rewriting, a
deterministic printer, a parser for source stylesheets that understands
nested at-rules like `@layer`, and probes for checking whether a generated
declaration is valid CSS.

CSS handling is decoupled from the engine by type StyleSheet, which wraps a
douceur stylesheet. It is the container the engine splices generated rules
into.

Status

The parser covers the subset of CSS a utility-class source stylesheet
consists of. It is not a validating CSS parser.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'jitcss.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss.cssom")
}

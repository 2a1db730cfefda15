/*
Package datatypes classifies and normalizes CSS value strings.

Utility plugins declare which kinds of values they accept ("color",
"length", "url", …). When a candidate carries an arbitrary value, like
`bg-[#bada55]` or `w-[calc(100%-2rem)]`, the engine has to decide which of
the plugins registered for an identifier may consume the literal. This
package provides the predicates for that decision, together with a
normalization step which turns the candidate-friendly notation
(underscores for spaces, math operators without whitespace) into valid CSS.

The predicates are deliberately shallow: they look at the surface syntax of
a value and do not implement the full CSS value grammar.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package datatypes

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'jitcss.datatypes'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss.datatypes")
}

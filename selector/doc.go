/*
Package selector implements a small, mutable CSS selector AST.

Selectors are tokenized with the CSS lexer of tdewolff/parse and kept as
flat sequences of simple selectors and combinators. Class names and ids are
stored unescaped and escaped again on output, which makes comparing a
generated class against a candidate string straightforward:

    .hover\:bg-red-500  →  Class("hover:bg-red-500")

Besides parsing and printing, the package provides the selector algebra
needed for variants: variant formats (like `&:hover` or
`:merge(.group):focus &`) are merged into the selector of a generated rule,
pseudo-elements are moved to the end of a selector, and selectors not
containing the class of a candidate are removed.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package selector

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'jitcss.selector'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss.selector")
}

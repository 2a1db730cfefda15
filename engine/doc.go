/*
Package engine generates utility CSS on demand.

An engine Context is built once per resolved configuration. Plugins
register utilities and variants with it through a PluginAPI; every
registration is assigned a sort offset (package sortkey). After that, the
context turns candidate strings scraped from source files into rules:

    hover:md:bg-red-500/50
    └─┬─┘ └┬┘ └──┬───┘ └┬┘
    variant │  utility  modifier
          variant

A candidate is split into its variants and its utility. The utility is
looked up in the plugin registry, either directly, as an arbitrary
property like `[mask-type:luminance]`, or by splitting off a value at a
dash (`bg` + `red-500`). Matched rules are prefixed, made important if
the candidate starts with `!`, and wrapped by every variant, innermost
first. The selectors contributed by variants are composed with package
selector.

Results are memoized per candidate. A candidate resolving to nothing is
remembered as such for the lifetime of the context. Assembling a
stylesheet sorts all generated rules by their offsets and splices them into
the `@tailwind` placeholders of a source stylesheet.

A Context is not safe for concurrent use. Builds for one context have to
be serialized by the caller (see package tracking).

Status

The plugin API covers what the built-in plugins need (package plugins).
`@apply` is not supported.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package engine

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'jitcss.engine'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss.engine")
}

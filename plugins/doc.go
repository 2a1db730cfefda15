/*
Package plugins provides the built-in utilities and variants.

Core utilities may be switched off by name in the configuration
(`core_plugins`). Variants are registered in two groups: pseudo-element,
pseudo-class, aria and data variants come before user plugins; supports,
direction, motion, contrast, dark, print, screen and orientation variants
come after them. Registration order is output order for variants, so
`md:hover:x` and `hover:md:x` produce the same rule nesting.

The set is representative rather than complete: layout, spacing, sizing,
colors, typography, borders and effects are covered.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package plugins

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'jitcss.plugins'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss.plugins")
}

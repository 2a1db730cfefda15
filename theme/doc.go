/*
Package theme looks up values of a resolved theme.

A theme is a nested map of design tokens, like colors, spacing scales or
breakpoints:

    colors:
        red:
            500: "#ef4444"
    spacing:
        "2.5": "0.625rem"

Clients address values by paths like `colors.red.500` or `spacing[2.5]`.
Stylesheets refer to theme values with the CSS functions `theme()` and
`screen()`, which are evaluated by Evaluate.

Paths which do not resolve produce a PathError, carrying a message with a
suggestion of similar keys.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package theme

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'jitcss.theme'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss.theme")
}

/*
Package extract finds class candidates in content files.

Extraction is deliberately generous: everything which looks like it could be
a utility class is reported, like `hover:bg-red-500/50`, `[mask-type:alpha]`
or `w-[calc(100%-1rem)]`. Tokens which are not utility classes at all fail
later, during rule generation, and are remembered as such.

Content is scanned line by line. Every extractor owns a bounded cache of
lines it has seen, which makes re-scanning only slightly modified files
cheap.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package extract

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'jitcss.extract'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss.extract")
}

/*
Package sortkey allocates the ordering keys of generated CSS rules.

Every rule the engine produces carries an Offset. Offsets are handed out at
registration time: each layer (base, components, utilities, variants) keeps
a running index, and every variant function gets its own bit in a
bit-vector. Applying a variant to a rule ORs the variant's bit into the
rule's offset, so the final order of rules is fixed by the configuration
and by registration order alone, never by the order in which candidates
happen to be resolved.

Variant bits are kept in a big.Int, as the number of registered variant
functions is not bounded (arbitrary variants are registered on the fly).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sortkey

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'jitcss.sortkey'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss.sortkey")
}

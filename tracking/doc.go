/*
Package tracking keeps engine contexts alive across builds.

Setting up a context is expensive: every plugin registers its utilities and
variants. During watch builds, a context is therefore reused as long as
neither its configuration nor the source stylesheet changed. A Manager
maps source stylesheet paths and configuration hashes to contexts, so that
several stylesheets sharing a configuration share one context. A context
no source refers to any more is disposed.

Content files are tracked by modification time and content hash. Only
files which changed since the last successful build are scanned again.
Modification times are committed after a build succeeded, a failed build
leaves them untouched so that the next attempt sees the same changes.

A source stylesheet may name its configuration file with

    @config "./jitcss.toml";

see FindAtConfigPath.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tracking

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'jitcss.tracking'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss.tracking")
}

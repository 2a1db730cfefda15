/*
Package config holds the resolved configuration of a utility CSS context.

Configuration is read from TOML, YAML or JSON files, environment variables
and command line flags through viper. TOML files may also be decoded
directly, preserving the case of theme keys.

Resolve merges the user theme with the default theme, applies
`theme.extend`, derives dependent theme sections (margins from spacing and
the like) and normalizes the content configuration. Problems found during
resolution are reported as warnings, each at most once per process.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'jitcss.config'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss.config")
}

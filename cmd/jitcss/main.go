/*
Command jitcss builds utility stylesheets.

    jitcss build -i src/main.css -o dist/main.css
    jitcss watch -i src/main.css -o dist/main.css
    jitcss sort p-4 underline hover:mt-2
    jitcss classes --modifiers
    jitcss variants

Configuration is read from `jitcss.toml` in the working directory, from the
file given with --config, or from `@config` in the source stylesheet.
Settings may be overridden by environment variables with prefix JITCSS,
e.g. JITCSS_PREFIX=tw-.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package tracking

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/cssom"
)

// ErrAtConfig is returned for misuse of the `@config` directive. These
// errors abort a build.
var ErrAtConfig = errors.New("invalid @config directive")

var quotedPath = regexp.MustCompile(`"([^"]*)"|'([^']*)'`)

// FindAtConfigPath looks for a `@config "path"` directive in a source
// stylesheet. The path is resolved relative to the directory of
// sourcePath. The directive is removed from the stylesheet. If there is no
// directive, FindAtConfigPath returns an empty path.
func FindAtConfigPath(sheet *cssom.StyleSheet, sourcePath string) (string, error) {
	var directives []*css.Rule
	sheet.Walk(func(r *css.Rule, _ []*css.Rule) bool {
		if cssom.IsAtRule(r, "config") {
			directives = append(directives, r)
		}
		return true
	})
	if len(directives) == 0 {
		return "", nil
	}
	if sourcePath == "" {
		return "", fmt.Errorf("%w: cannot be used without a source path", ErrAtConfig)
	}
	if len(directives) > 1 {
		return "", fmt.Errorf("%w: only one @config directive is allowed per file", ErrAtConfig)
	}
	r := directives[0]
	m := quotedPath.FindStringSubmatch(r.Prelude)
	if m == nil {
		return "", fmt.Errorf("%w: a path is required", ErrAtConfig)
	}
	input := m[1]
	if input == "" {
		input = m[2]
	}
	if input == "" {
		return "", fmt.Errorf("%w: a path is required", ErrAtConfig)
	}
	if filepath.IsAbs(input) {
		return "", fmt.Errorf("%w: cannot be used with an absolute path", ErrAtConfig)
	}
	path := filepath.Join(filepath.Dir(sourcePath), input)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: the config file at %q does not exist", ErrAtConfig, input)
	}
	sheet.Remove(r)
	tracer().Debugf("source %s uses configuration %s", sourcePath, path)
	return path, nil
}

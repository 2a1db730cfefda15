package tracking

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/config"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/engine"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = "@tailwind utilities;\n"

type harness struct {
	manager  *Manager
	created  int
	disposed int
}

func newHarness() *harness {
	h := &harness{}
	h.manager = NewManager(func(cfg *config.Config, sheet *cssom.StyleSheet) (*engine.Context, error) {
		ctx, err := engine.NewContext(cfg, []engine.Plugin{
			func(api *engine.PluginAPI) error {
				api.AddUtilities([]*css.Rule{
					cssom.NewStyleRule(".underline", cssom.Decl("text-decoration-line", "underline")),
					cssom.NewStyleRule(".italic", cssom.Decl("font-style", "italic")),
				}, engine.UtilityOptions())
				return nil
			},
		}, sheet)
		if err != nil {
			return nil, err
		}
		h.created++
		ctx.OnDispose(func(*engine.Context) { h.disposed++ })
		return ctx, nil
	})
	return h
}

func writeFile(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func contentConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Content.Files = []string{filepath.Join(dir, "*.html"), "!" + filepath.Join(dir, "skip.html")}
	resolved, _ := config.Resolve(cfg)
	return resolved
}

func (h *harness) setup(t *testing.T, path, src string, cfg *config.Config) *Build {
	t.Helper()
	sheet, err := cssom.Parse(src)
	require.NoError(t, err)
	b, err := h.manager.Setup(Request{SourcePath: path, Source: sheet, Config: cfg})
	require.NoError(t, err)
	return b
}

func TestChangedContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.tracking")
	defer teardown()
	//
	dir := t.TempDir()
	start := time.Now().Add(-time.Hour)
	writeFile(t, filepath.Join(dir, "a.html"), `<p class="underline">`, start)
	writeFile(t, filepath.Join(dir, "skip.html"), `<p class="italic">`, start)
	cfg := contentConfig(t, dir)
	h := newHarness()
	mainCSS := filepath.Join(dir, "main.css")
	//
	b := h.setup(t, mainCSS, source, cfg)
	assert.True(t, b.Fresh)
	require.Len(t, b.Changed, 1)
	assert.Contains(t, b.Changed[0].Raw, "underline")
	assert.Equal(t, "html", b.Changed[0].Extension)
	b.Commit()
	// nothing changed
	b = h.setup(t, mainCSS, source, cfg)
	assert.False(t, b.Fresh)
	assert.Empty(t, b.Changed)
	b.Commit()
	// touched, but same content
	writeFile(t, filepath.Join(dir, "a.html"), `<p class="underline">`, start.Add(time.Minute))
	b = h.setup(t, mainCSS, source, cfg)
	assert.Empty(t, b.Changed)
	b.Commit()
	// modified
	writeFile(t, filepath.Join(dir, "a.html"), `<p class="italic">`, start.Add(2*time.Minute))
	b = h.setup(t, mainCSS, source, cfg)
	require.Len(t, b.Changed, 1)
	assert.Contains(t, b.Changed[0].Raw, "italic")
	assert.Equal(t, 1, h.created)
}

func TestCommitAfterSuccessOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.tracking")
	defer teardown()
	//
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.html"), `<p class="underline">`, time.Now().Add(-time.Hour))
	cfg := contentConfig(t, dir)
	h := newHarness()
	mainCSS := filepath.Join(dir, "main.css")
	b := h.setup(t, mainCSS, source, cfg)
	require.Len(t, b.Changed, 1)
	// no commit: the build failed
	b = h.setup(t, mainCSS, source, cfg)
	assert.Len(t, b.Changed, 1)
}

func TestRawContentAlwaysScanned(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.tracking")
	defer teardown()
	//
	cfg := config.Default()
	cfg.Content.Raw = []config.RawContent{{Content: `<b class="italic">`, Extension: "html"}}
	resolved, _ := config.Resolve(cfg)
	h := newHarness()
	for i := 0; i < 2; i++ {
		b := h.setup(t, "main.css", source, resolved)
		require.Len(t, b.Changed, 1)
		assert.Equal(t, `<b class="italic">`, b.Changed[0].Raw)
		require.NoError(t, b.Context.Expand(mustParse(t, source), b.Changed))
		b.Commit()
	}
	assert.Equal(t, 1, h.created)
}

func TestSourceChangeReplacesContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.tracking")
	defer teardown()
	//
	cfg := contentConfig(t, t.TempDir())
	h := newHarness()
	b := h.setup(t, "main.css", source, cfg)
	b.Commit()
	first := b.Context
	b = h.setup(t, "main.css", source+".card { color: red; }\n", cfg)
	assert.True(t, b.Fresh)
	assert.NotSame(t, first, b.Context)
	assert.Equal(t, 2, h.created)
	assert.Equal(t, 1, h.disposed)
	assert.Equal(t, 1, h.manager.Contexts())
}

func TestConfigChangeReplacesContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.tracking")
	defer teardown()
	//
	dir := t.TempDir()
	cfg := contentConfig(t, dir)
	h := newHarness()
	h.setup(t, "main.css", source, cfg).Commit()
	other := config.Default()
	other.Prefix = "tw-"
	resolved, _ := config.Resolve(other)
	b := h.setup(t, "main.css", source, resolved)
	assert.True(t, b.Fresh)
	assert.Equal(t, "tw-", b.Context.Config().Prefix)
	assert.Equal(t, 1, h.disposed)
}

func TestRelease(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.tracking")
	defer teardown()
	//
	h := newHarness()
	a := contentConfig(t, t.TempDir())
	other := config.Default()
	other.Separator = "_"
	b, _ := config.Resolve(other)
	h.setup(t, "a.css", source, a).Commit()
	h.setup(t, "b.css", source, b).Commit()
	assert.Equal(t, 2, h.manager.Contexts())
	h.manager.Release("a.css")
	assert.Equal(t, 1, h.manager.Contexts())
	assert.Equal(t, 1, h.disposed)
	h.manager.Release("a.css")
	assert.Equal(t, 1, h.disposed)
}

func TestSwitchToSharedConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.tracking")
	defer teardown()
	//
	h := newHarness()
	first := contentConfig(t, t.TempDir())
	other := config.Default()
	other.Separator = "_"
	second, _ := config.Resolve(other)
	h.setup(t, "a.css", source, first).Commit()
	shared := h.setup(t, "b.css", source, second)
	shared.Commit()
	b := h.setup(t, "a.css", source, second)
	assert.Same(t, shared.Context, b.Context)
	assert.Equal(t, 2, h.created)
	assert.Equal(t, 1, h.disposed, "context of the first configuration has lost its last source")
	assert.Equal(t, 1, h.manager.Contexts())
	h.manager.Release("a.css")
	h.manager.Release("b.css")
	assert.Equal(t, h.created, h.disposed)
	assert.Equal(t, 0, h.manager.Contexts())
}

func TestDirs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.tracking")
	defer teardown()
	//
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Content.Files = []string{filepath.Join(dir, "src", "**", "*.html"), filepath.Join(dir, "src", "*.js")}
	resolved, _ := config.Resolve(cfg)
	b := newHarness().setup(t, "main.css", source, resolved)
	assert.Equal(t, []string{filepath.Join(dir, "src")}, b.Dirs())
}

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.tracking")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "jitcss.toml")
	start := time.Now().Add(-time.Hour)
	writeFile(t, path, "prefix = \"tw-\"\n", start)
	m := newHarness().manager
	cfg, err := m.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tw-", cfg.Prefix)
	again, err := m.LoadConfig(path)
	require.NoError(t, err)
	assert.Same(t, cfg, again)
	writeFile(t, path, "prefix = \"x-\"\n", start.Add(time.Minute))
	changed, err := m.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "x-", changed.Prefix)
	_, err = m.LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, config.ErrNotFound))
}

func TestFindAtConfigPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.tracking")
	defer teardown()
	//
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "jitcss.toml"), "", time.Now())
	src := filepath.Join(dir, "main.css")
	sheet := mustParse(t, "@config \"./jitcss.toml\";\n@tailwind utilities;\n")
	path, err := FindAtConfigPath(sheet, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jitcss.toml"), path)
	assert.NotContains(t, sheet.String(), "@config")
	//
	path, err = FindAtConfigPath(mustParse(t, source), src)
	require.NoError(t, err)
	assert.Empty(t, path)
	//
	for _, input := range []string{
		"@config \"./jitcss.toml\";\n@config \"./jitcss.toml\";\n",
		"@config \"/etc/jitcss.toml\";\n",
		"@config \"./missing.toml\";\n",
		"@config;\n",
	} {
		_, err := FindAtConfigPath(mustParse(t, input), src)
		assert.True(t, errors.Is(err, ErrAtConfig), "expected ErrAtConfig for %q, is %v",
			strings.TrimSpace(input), err)
	}
	_, err = FindAtConfigPath(mustParse(t, "@config \"./jitcss.toml\";\n"), "")
	assert.True(t, errors.Is(err, ErrAtConfig))
}

func mustParse(t *testing.T, src string) *cssom.StyleSheet {
	t.Helper()
	sheet, err := cssom.Parse(src)
	require.NoError(t, err)
	return sheet
}

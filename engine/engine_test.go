package engine_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/config"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/datatypes"
	"github.com/npillmayer/jitcss/engine"
	"github.com/npillmayer/jitcss/extract"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx   *engine.Context
	log   *engine.Log
	sheet *cssom.StyleSheet
	calls int // calls of the margin utility function
}

const directives = "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n@tailwind variants;\n"

// newFixture sets up a context with a small set of plugins, followed by
// extra. src is the source stylesheet.
func newFixture(t *testing.T, cfg config.Config, src string, extra ...engine.Plugin) *fixture {
	t.Helper()
	resolved, _ := config.Resolve(cfg)
	sheet, err := cssom.Parse(src)
	require.NoError(t, err)
	f := &fixture{log: &engine.Log{}, sheet: sheet}
	f.ctx, err = engine.NewContext(resolved, append(f.plugins(), extra...), sheet, engine.WithReporter(f.log))
	require.NoError(t, err)
	return f
}

func (f *fixture) plugins() []engine.Plugin {
	utilities := func(api *engine.PluginAPI) error {
		api.AddBase(cssom.NewStyleRule("*, ::before, ::after", cssom.Decl("box-sizing", "border-box")))
		api.AddComponents([]*css.Rule{
			cssom.NewStyleRule(".btn", cssom.Decl("padding", "0.5rem 1rem")),
		}, engine.ComponentOptions())
		api.AddUtilities([]*css.Rule{
			cssom.NewStyleRule(".underline", cssom.Decl("text-decoration-line", "underline")),
			cssom.NewStyleRule(".text-center", cssom.Decl("text-align", "center")),
		}, engine.UtilityOptions())
		api.MatchUtilities([]engine.MatchUtility{{
			Name: "mt",
			Fn: func(value string, _ engine.Extras) cssom.Object {
				f.calls++
				return cssom.Object{cssom.D("margin-top", value)}
			},
		}}, engine.UtilityOptions().WithValues(api.ThemeSection("margin")).Negative())
		api.MatchUtilities([]engine.MatchUtility{{
			Name: "text",
			Fn: func(value string, _ engine.Extras) cssom.Object {
				return cssom.Object{cssom.D("color", value)}
			},
		}}, engine.UtilityOptions().WithValues(api.ThemeSection("textColor")).WithTypes(datatypes.Color))
		api.MatchUtilities([]engine.MatchUtility{{
			Name: "size",
			Fn: func(value string, _ engine.Extras) cssom.Object {
				return cssom.Object{cssom.D("width", value)}
			},
		}}, engine.UtilityOptions().WithTypes(datatypes.Length))
		api.MatchUtilities([]engine.MatchUtility{{
			Name: "size",
			Fn: func(value string, _ engine.Extras) cssom.Object {
				return cssom.Object{cssom.D("flex-grow", value)}
			},
		}}, engine.UtilityOptions().WithTypes(datatypes.Number))
		return nil
	}
	variants := func(api *engine.PluginAPI) error {
		if err := api.AddVariant("hover", "&:hover"); err != nil {
			return err
		}
		if err := api.AddVariant("focus", "&:focus"); err != nil {
			return err
		}
		return api.AddVariant("md", "@media (min-width: 768px)")
	}
	return []engine.Plugin{utilities, variants}
}

func (f *fixture) generate(candidates ...string) string {
	var rules []*css.Rule
	for _, g := range f.ctx.GenerateRules(candidates) {
		rules = append(rules, g.Rule)
	}
	return cssom.Print(rules)
}

func (f *fixture) build(t *testing.T, content string) string {
	t.Helper()
	err := f.ctx.Expand(f.sheet, []extract.Content{{Raw: content, Extension: "html"}})
	require.NoError(t, err)
	require.NoError(t, f.ctx.EvaluateFunctions(f.sheet))
	return f.sheet.String()
}

func TestStaticAndMatchedUtilities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	assert.Equal(t, ".underline {\n  text-decoration-line: underline;\n}\n", f.generate("underline"))
	assert.Equal(t, ".mt-4 {\n  margin-top: 1rem;\n}\n", f.generate("mt-4"))
	assert.Equal(t, ".-mt-4 {\n  margin-top: -1rem;\n}\n", f.generate("-mt-4"))
	assert.Contains(t, f.generate("text-blue-500"), "color: #3b82f6;")
	assert.Contains(t, f.generate("mt-[3px]"), "margin-top: 3px;")
	assert.Empty(t, f.generate("text-center-x"))
}

func TestArbitraryProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	out := f.generate("[mask-type:luminance]")
	assert.Contains(t, out, `.\[mask-type\:luminance\] {`)
	assert.Contains(t, out, "mask-type: luminance;")
	assert.Empty(t, f.generate("[https://example.com]"))
}

func TestImportantModifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	out := f.generate("!text-center")
	assert.Equal(t, ".\\!text-center {\n  text-align: center !important;\n}\n", out)
}

func TestImportantPolicy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	cfg := config.Default()
	cfg.Important = "#app"
	f := newFixture(t, cfg, directives)
	assert.Equal(t, "#app .underline {\n  text-decoration-line: underline;\n}\n", f.generate("underline"))
	assert.Equal(t, ".btn {\n  padding: 0.5rem 1rem;\n}\n", f.generate("btn"))
	cfg.Important = true
	f = newFixture(t, cfg, directives)
	assert.Contains(t, f.generate("mt-4"), "margin-top: 1rem !important;")
}

func TestVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	assert.Equal(t, ".hover\\:focus\\:underline:focus:hover {\n  text-decoration-line: underline;\n}\n",
		f.generate("hover:focus:underline"))
	assert.Equal(t, "@media (min-width: 768px) {\n  .md\\:underline {\n    text-decoration-line: underline;\n  }\n}\n",
		f.generate("md:underline"))
	assert.Empty(t, f.generate("unknown:underline"))
	assert.True(t, f.ctx.IsNotClass("unknown:underline"))
}

func TestArbitraryVariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	out := f.generate("[&>*]:underline")
	assert.Contains(t, out, `.\[\&\>\*\]\:underline > *`)
	assert.Empty(t, f.generate("[color:red]:underline"))
}

func TestMultiOutputVariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	x := func(api *engine.PluginAPI) error {
		api.MatchVariant("x", func(value, _ string) []string {
			return []string{"@media print", "&:is(." + value + " &)"}
		}, engine.MatchVariantOptions{Values: map[string]string{"a": "a"}})
		return nil
	}
	f := newFixture(t, config.Default(), directives, x)
	rules := f.ctx.GenerateRules([]string{"x-a:underline"})
	require.Len(t, rules, 2)
	assert.ElementsMatch(t, []int{0, 1}, []int{rules[0].Sort.ParallelIndex, rules[1].Sort.ParallelIndex})
	assert.Equal(t, rules[0].Sort.Layer, rules[1].Sort.Layer)
	out := f.build(t, `<p class="x-a:underline md:underline underline">`)
	order := []string{".underline {", "@media (min-width: 768px)", "@media print", ":is(.a "}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		if i <= last {
			t.Errorf("expected %q to follow the preceding rules in output, is at %d:\n%s", s, i, out)
		}
		last = i
	}
}

func TestMatchedComponents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	card := func(api *engine.PluginAPI) error {
		api.MatchComponents([]engine.MatchUtility{{
			Name: "card",
			Fn: func(value string, _ engine.Extras) cssom.Object {
				return cssom.Object{cssom.D("max-width", value)}
			},
		}}, engine.ComponentOptions().WithValues(map[string]string{"sm": "24rem"}))
		if esc := api.Escape("w-1/2"); esc != `w-1\/2` {
			return errors.New("unexpected escape " + esc)
		}
		return nil
	}
	f := newFixture(t, config.Default(), directives, card)
	assert.True(t, f.ctx.HasUtility("card"))
	assert.False(t, f.ctx.HasUtility("card-sm"))
	assert.True(t, f.ctx.HasVariant("md"))
	assert.False(t, f.ctx.HasVariant("unknown"))
	out := f.build(t, `<div class="underline card-sm">`)
	assert.Contains(t, out, ".card-sm {\n  max-width: 24rem;\n}")
	assert.Less(t, strings.Index(out, ".card-sm {"), strings.Index(out, ".underline {"))
}

func TestCaching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	first := f.ctx.GenerateRules([]string{"mt-4"})
	require.Len(t, first, 1)
	require.Equal(t, 1, f.calls)
	second := f.ctx.GenerateRules([]string{"mt-4"})
	require.Len(t, second, 1)
	assert.Equal(t, 1, f.calls, "expected cached candidate not to call the utility again")
	assert.Equal(t, first[0].ID, second[0].ID)
	f.ctx.GenerateRules([]string{"nonsense"})
	assert.True(t, f.ctx.IsNotClass("nonsense"))
	assert.Equal(t, 1, f.ctx.ClassCacheSize())
}

func TestAmbiguousArbitraryValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	assert.Empty(t, f.generate("size-[0]"))
	assert.Empty(t, f.generate("size-[0]"))
	assert.Equal(t, 1, f.log.Count(engine.Ambiguous))
	assert.Contains(t, f.generate("size-[length:0]"), "width: 0;")
	assert.Contains(t, f.generate("size-[number:0]"), "flex-grow: 0;")
	assert.Contains(t, f.generate("size-[2px]"), "width: 2px;")
}

func TestExpandLayerOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	out := f.build(t, `<div class="md:underline mt-4 btn underline">`)
	order := []string{"box-sizing: border-box", ".btn {", ".underline {", ".mt-4 {", "@media (min-width: 768px)"}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		if i <= last {
			t.Errorf("expected %q to follow previous layers in output, is at %d:\n%s", s, i, out)
		}
		last = i
	}
	assert.NotContains(t, out, "@tailwind")
}

func TestExpandTracesRuleTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	trace := tracing.Select("jitcss.engine")
	level := trace.GetTraceLevel()
	trace.SetTraceLevel(tracing.LevelDebug)
	defer trace.SetTraceLevel(level)
	f := newFixture(t, config.Default(), directives)
	out := f.build(t, `<p class="md:underline">`)
	assert.Contains(t, out, `.md\:underline {`)
	assert.Contains(t, cssom.Dump(f.sheet.Rules()), "@media (min-width: 768px)")
}

func TestExpandIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	content := `<p class="text-blue-500 hover:underline -mt-4 md:mt-4 btn">`
	a := newFixture(t, config.Default(), directives).build(t, content)
	b := newFixture(t, config.Default(), directives).build(t, content)
	assert.Equal(t, a, b)
}

func TestExpandIncremental(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	f.build(t, `<p class="underline">`)
	sheet, err := cssom.Parse(directives)
	require.NoError(t, err)
	f.sheet = sheet
	out := f.build(t, `<p class="mt-4">`)
	assert.Contains(t, out, ".underline {")
	assert.Contains(t, out, ".mt-4 {")
}

func TestNoUtilitiesWarning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), "@tailwind utilities;")
	f.build(t, `nothing to see here`)
	assert.Equal(t, 1, f.log.Count(engine.NoUtilities))
}

func TestSourceLayers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	src := "@tailwind components;\n@tailwind utilities;\n" +
		"@layer components { .card { border-radius: 4px } }\n" +
		"@layer utilities { .content-auto { content-visibility: auto } }\n"
	f := newFixture(t, config.Default(), src)
	out := f.build(t, `<div class="card hover:content-auto">`)
	assert.Contains(t, out, ".card {")
	assert.Contains(t, out, `.hover\:content-auto:hover {`)
	assert.NotContains(t, out, "@layer")
}

func TestInvalidThemeValueInvalidatesCandidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	src := "@tailwind utilities;\n@layer utilities { .brand { color: theme('colors.red.501') } }\n"
	f := newFixture(t, config.Default(), src)
	out := f.build(t, `<span class="brand underline">`)
	assert.NotContains(t, out, ".brand")
	assert.Contains(t, out, ".underline")
	require.Equal(t, 1, f.log.Count(engine.InvalidTheme))
	for _, d := range f.log.Diagnostics {
		if d.Kind == engine.InvalidTheme {
			assert.Contains(t, d.String(), "'colors.red.501' does not exist in your theme config. Did you mean")
		}
	}
	assert.True(t, f.ctx.IsNotClass("brand"))
}

func TestThemeFunctionInSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), "@tailwind utilities;\n.x { margin: theme('spacing.4') }\n")
	out := f.build(t, `underline`)
	assert.Contains(t, out, "margin: 1rem;")
	g := newFixture(t, config.Default(), "@tailwind utilities;\n.x { margin: theme('spacing.nope') }\n")
	err := g.ctx.EvaluateFunctions(g.sheet)
	assert.Error(t, err)
}

func TestSafelist(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	cfg := config.Default()
	cfg.Safelist = []string{"underline"}
	cfg.SafelistPatterns = []config.SafelistPattern{
		{Pattern: "^mt-(4|8)$", Variants: []string{"hover"}},
		{Pattern: "^nope-"},
	}
	f := newFixture(t, cfg, directives)
	out := f.build(t, "")
	assert.Contains(t, out, ".underline {")
	assert.Contains(t, out, ".mt-4 {")
	assert.Contains(t, out, ".mt-8 {")
	assert.Contains(t, out, `.hover\:mt-4:hover {`)
	assert.NotContains(t, out, ".mt-2 {")
	assert.Equal(t, 1, f.log.Count(engine.UnmatchedSafelist))
}

func TestBlocklist(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	cfg := config.Default()
	cfg.Blocklist = []any{"underline"}
	f := newFixture(t, cfg, directives)
	out := f.build(t, `<p class="underline mt-4">`)
	assert.NotContains(t, out, ".underline")
	assert.Contains(t, out, ".mt-4")
}

func TestPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	cfg := config.Default()
	cfg.Prefix = "tw-"
	f := newFixture(t, cfg, directives)
	assert.Contains(t, f.generate("tw-mt-4"), ".tw-mt-4 {")
	assert.Contains(t, f.generate("-tw-mt-4"), ".-tw-mt-4 {")
	assert.Contains(t, f.generate("hover:tw-underline"), `.hover\:tw-underline:hover {`)
	assert.Empty(t, f.generate("mt-4"))
}

func TestInvalidVariantFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	resolved, _ := config.Resolve(config.Default())
	bad := func(api *engine.PluginAPI) error {
		return api.AddVariant("bad", ":hover")
	}
	_, err := engine.NewContext(resolved, []engine.Plugin{bad}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidVariant))
}

func TestClassOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	order := f.ctx.ClassOrder([]string{"mt-4", "underline", "group", "nope", "btn"})
	require.Len(t, order, 5)
	assert.EqualValues(t, 5, order[0].Order.Int64())
	assert.EqualValues(t, 4, order[1].Order.Int64())
	assert.EqualValues(t, 1, order[2].Order.Int64())
	assert.Nil(t, order[3].Order)
	assert.EqualValues(t, 3, order[4].Order.Int64())
}

func TestClassList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	list := f.ctx.ClassList(true)
	find := func(name string) *engine.ClassListEntry {
		for i := range list {
			if list[i].Name == name {
				return &list[i]
			}
		}
		return nil
	}
	for _, name := range []string{"underline", "btn", "mt-4", "-mt-4", "text-blue-500"} {
		assert.NotNil(t, find(name), "expected %s in class list", name)
	}
	assert.Nil(t, find("*"))
	assert.Nil(t, find("-mt-auto"))
	blue := find("text-blue-500")
	require.NotNil(t, blue)
	assert.Contains(t, blue.Modifiers, "50")
}

func TestVariantIntrospection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	variants := f.ctx.Variants()
	require.Len(t, variants, 3)
	assert.Equal(t, "hover", variants[0].Name)
	assert.Equal(t, []string{"&:hover"}, variants[0].Selectors("", ""))
	assert.Equal(t, []string{"@media (min-width: 768px)"}, variants[2].Selectors("", ""))
}

func TestDispose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	f := newFixture(t, config.Default(), directives)
	disposed := false
	f.ctx.OnDispose(func(*engine.Context) { disposed = true })
	f.generate("mt-4")
	f.ctx.Dispose()
	assert.True(t, disposed)
	assert.Equal(t, 0, f.ctx.ClassCacheSize())
}

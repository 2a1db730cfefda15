package jitcss

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/config"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/engine"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const directives = "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n"

func rawConfig(html string) config.Config {
	cfg := config.Default()
	cfg.Content.Raw = []config.RawContent{{Content: html, Extension: "html"}}
	return cfg
}

func TestBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss")
	defer teardown()
	//
	out, err := Build(directives, rawConfig(`<div class="p-4 hover:bg-blue-500 md:mt-2 nonsense">`))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{
		"box-sizing: border-box;",
		".p-4 {\n  padding: 1rem;\n}",
		`.hover\:bg-blue-500:hover {`,
		"@media (min-width: 768px) {",
		`.md\:mt-2 {`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("expected output to contain %q, is:\n%s", s, out)
		}
	}
	if strings.Contains(out, "@tailwind") || strings.Contains(out, "nonsense") {
		t.Errorf("expected directives to be replaced, is:\n%s", out)
	}
	if strings.Index(out, "box-sizing") > strings.Index(out, ".p-4") {
		t.Errorf("expected base rules before utilities")
	}
}

func TestProcessReusesContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss")
	defer teardown()
	//
	cfg := rawConfig(`<p class="underline">`)
	proc := New()
	in := Input{CSS: directives, From: "main.css", Config: &cfg}
	first, err := proc.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := proc.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	if first.Context != second.Context {
		t.Errorf("expected context to be reused")
	}
	if first.CSS != second.CSS {
		t.Errorf("expected identical output, is:\n%s\nvs\n%s", first.CSS, second.CSS)
	}
	proc.Release("main.css")
}

func TestAtConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss")
	defer teardown()
	//
	dir := t.TempDir()
	toml := "prefix = \"tw-\"\n\n[content]\nraw = [{ content = '<p class=\"tw-underline underline\">', extension = \"html\" }]\n"
	if err := os.WriteFile(filepath.Join(dir, "jitcss.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := New().Process(Input{
		CSS:  "@config \"./jitcss.toml\";\n@tailwind utilities;\n",
		From: filepath.Join(dir, "main.css"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.ConfigPath != filepath.Join(dir, "jitcss.toml") {
		t.Errorf("expected configuration from @config, is %q", res.ConfigPath)
	}
	if !strings.Contains(res.CSS, ".tw-underline {") || strings.Contains(res.CSS, ".underline {") {
		t.Errorf("expected prefixed utility only, is:\n%s", res.CSS)
	}
	_, err = New().Process(Input{CSS: "@config \"/jitcss.toml\";\n", From: filepath.Join(dir, "main.css")})
	if err == nil {
		t.Errorf("expected absolute @config path to be rejected")
	}
}

func TestUserPluginAndFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss")
	defer teardown()
	//
	plugin := func(api *engine.PluginAPI) error {
		api.AddUtilities([]*css.Rule{
			cssom.NewStyleRule(".content-auto", cssom.Decl("content-visibility", "auto")),
		}, engine.UtilityOptions())
		return nil
	}
	cfg := rawConfig(`<p class="content-auto md:content-auto">`)
	res, err := New(WithPlugins(plugin)).Process(Input{
		CSS:    "@tailwind utilities;\n.x { margin: theme('spacing.4') }\n",
		Config: &cfg,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"content-visibility: auto;", `.md\:content-auto {`, "margin: 1rem;"} {
		if !strings.Contains(res.CSS, s) {
			t.Errorf("expected output to contain %q, is:\n%s", s, res.CSS)
		}
	}
}

func TestReporter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss")
	defer teardown()
	//
	log := &engine.Log{}
	cfg := rawConfig(`<i class="nothing">`)
	_, err := New(WithReporter(log)).Process(Input{CSS: "@tailwind utilities;\n", Config: &cfg})
	if err != nil {
		t.Fatal(err)
	}
	if log.Count(engine.NoUtilities) != 1 {
		t.Errorf("expected a warning about missing utilities, have %v", log.Diagnostics)
	}
}

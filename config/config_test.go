package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.config")
	defer teardown()
	//
	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Separator != ":" || cfg.DarkMode != "media" || cfg.DarkSelector != ".dark" {
		t.Errorf("expected defaults to be set, have %+v", cfg)
	}
	if p := cfg.ImportantPolicy(); p.All || p.Selector != "" {
		t.Errorf("expected important to be off by default, is %+v", p)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.config")
	defer teardown()
	//
	t.Setenv("JITCSS_PREFIX", "tw-")
	v := viper.New()
	v.SetEnvPrefix("JITCSS")
	v.AutomaticEnv()
	cfg, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prefix != "tw-" {
		t.Errorf("expected prefix to be tw- from environment, is %q", cfg.Prefix)
	}
}

func TestLoadFileTOML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.config")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "jitcss.toml")
	src := `
prefix = "tw-"
important = "#app"

[content]
files = ["src/**/*.html"]

[theme.extend.fontSize]
huge = "5rem"
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("cannot load TOML configuration: %v", err)
	}
	if cfg.Prefix != "tw-" || cfg.Separator != ":" {
		t.Errorf("expected prefix tw- and default separator, have %q and %q", cfg.Prefix, cfg.Separator)
	}
	if p := cfg.ImportantPolicy(); p.Selector != "#app" {
		t.Errorf("expected important selector #app, is %+v", p)
	}
	ext, _ := cfg.Theme["extend"].(map[string]any)
	if _, ok := ext["fontSize"]; !ok {
		t.Errorf("expected TOML theme keys to keep their case, have %v", ext)
	}
	if cfg.Path != path {
		t.Errorf("expected config path to be recorded, is %q", cfg.Path)
	}
}

func TestLoadFileYAML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.config")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "jitcss.yaml")
	src := `
separator: "_"
theme:
  fontSize:
    tiny: "0.5rem"
  borderRadius:
    default: "3px"
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("cannot load YAML configuration: %v", err)
	}
	if cfg.Separator != "_" {
		t.Errorf("expected separator to be _, is %q", cfg.Separator)
	}
	if _, ok := cfg.Theme["fontSize"]; !ok {
		t.Errorf("expected lowercased theme key to be restored to fontSize, have %v", cfg.Theme)
	}
	br, _ := cfg.Theme["borderRadius"].(map[string]any)
	if br["DEFAULT"] != "3px" {
		t.Errorf("expected key default to be restored to DEFAULT, have %v", br)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.config")
	defer teardown()
	//
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, is %v", err)
	}
}

func TestResolveTheme(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.config")
	defer teardown()
	//
	th := ResolveTheme(map[string]any{
		"colors": map[string]any{"brand": "#123456"},
		"extend": map[string]any{
			"spacing": map[string]any{"128": "32rem"},
			"margin":  map[string]any{"gutter": "3rem"},
		},
	})
	margin := th["margin"].(map[string]any)
	if margin["128"] != "32rem" || margin["auto"] != "auto" || margin["gutter"] != "3rem" {
		t.Errorf("expected margin to derive from extended spacing, is %v", margin)
	}
	bg := th["backgroundColor"].(map[string]any)
	if bg["brand"] != "#123456" || bg["red"] != nil {
		t.Errorf("expected backgroundColor to derive from user colors, is %v", bg)
	}
	if DefaultTheme()["spacing"].(map[string]any)["128"] != nil {
		t.Errorf("expected default theme not to be modified")
	}
}

func TestResolveWarnings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.config")
	defer teardown()
	//
	cfg := Default()
	cfg.Content.Files = []string{"./src/*.{html}"}
	cfg.Blocklist = []any{"ok", 42}
	r, warnings := Resolve(cfg)
	keys := make([]string, len(warnings))
	for i, w := range warnings {
		keys[i] = w.Key
	}
	joined := strings.Join(keys, ",")
	if !strings.Contains(joined, "invalid-glob-braces") || !strings.Contains(joined, "blocklist-invalid") {
		t.Errorf("expected glob and blocklist warnings, have %v", keys)
	}
	if len(r.BlocklistStrings()) != 0 {
		t.Errorf("expected invalid blocklist to be dropped, is %v", r.Blocklist)
	}
	_, warnings = Resolve(Default())
	if len(warnings) != 1 || warnings[0].Key != "content-problems" {
		t.Errorf("expected empty content warning, have %v", warnings)
	}
}

func TestHash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.config")
	defer teardown()
	//
	a, b := Default(), Default()
	a.Content.Transform = map[string]func(string) string{"svelte": strings.TrimSpace}
	ha, err := Hash(&a)
	if err != nil {
		t.Fatal(err)
	}
	hb, _ := Hash(&b)
	if ha != hb {
		t.Errorf("expected equal configurations to hash equally")
	}
	b.Prefix = "tw-"
	if hc, _ := Hash(&b); hc == ha {
		t.Errorf("expected different prefix to change the hash")
	}
}

func TestCorePlugins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.config")
	defer teardown()
	//
	cfg := Default()
	cfg.CorePlugins = map[string]bool{"textcolor": false}
	if cfg.CorePluginEnabled("textColor") || !cfg.CorePluginEnabled("margin") {
		t.Errorf("expected textColor to be disabled and margin to be enabled")
	}
}

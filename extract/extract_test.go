package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func TestDefaultExtractor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.extract")
	defer teardown()
	//
	x := NewDefault(":", "")
	for line, expected := range map[string][]string{
		`<div class="hover:focus:underline !text-center -mt-4 [mask-type:luminance] bg-red-500/50">`: {
			"hover:focus:underline", "!text-center", "-mt-4", "[mask-type:luminance]", "bg-red-500/50",
		},
		`<p class='w-[calc(100%-1rem)] md:grid-cols-[1fr_2fr]'>`: {
			"w-[calc(100%-1rem)]", "md:grid-cols-[1fr_2fr]",
		},
		`x = clsx("p-4", cond && "m-2")`:      {"p-4", "m-2"},
		`<li class="group-hover/item:block">`: {"group-hover/item:block"},
	} {
		found := x.Extract(line)
		for _, e := range expected {
			if !contains(found, e) {
				t.Errorf("expected %q to be extracted from %q, have %v", e, line, found)
			}
		}
	}
}

func TestClipAtBalancedParens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.extract")
	defer teardown()
	//
	for in, out := range map[string]string{
		"bg-red)":             "bg-red",
		"w-[calc(100%-1rem)]": "w-[calc(100%-1rem)]",
		"bg-[url(a.png)])":    "bg-[url(a.png)]",
		"no-parens":           "no-parens",
	} {
		if got := clipAtBalancedParens(in); got != out {
			t.Errorf("expected %q to be clipped to %q, is %q", in, out, got)
		}
	}
}

func TestScannerCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.extract")
	defer teardown()
	//
	s := NewScanner(":", "", nil)
	candidates := make(map[string]struct{})
	s.ScanContent("<a class=\"p-4\">\n<b class=\"m-2\">\n<a class=\"p-4\">", "html", candidates, make(map[string]struct{}))
	if _, ok := candidates["p-4"]; !ok {
		t.Errorf("expected p-4 to be a candidate")
	}
	if n := s.CachedLines("html"); n != 2 {
		t.Errorf("expected 2 distinct lines to be cached, have %d", n)
	}
	s.ScanContent(`<b class="m-2">`, "html", candidates, nil)
	if n := s.CachedLines("html"); n != 2 {
		t.Errorf("expected cached line not to be cached again, have %d lines", n)
	}
}

func TestSvelteAndIgnored(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.extract")
	defer teardown()
	//
	s := NewScanner(":", "", nil)
	found := s.Extract(`<div class:active={on} class="!* flex">`, "svelte")
	if !contains(found, "active") || !contains(found, "flex") {
		t.Errorf("expected svelte class directive to yield 'active', have %v", found)
	}
	if contains(found, "!*") {
		t.Errorf("expected !* to be ignored, have %v", found)
	}
}

func TestScanFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.extract")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(`<div class="sm:flex">`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewScanner(":", "", nil)
	candidates := make(map[string]struct{})
	err := s.Scan([]Content{{File: path, Extension: "html"}, {Raw: "text-lg", Extension: "html"}}, candidates)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []string{"sm:flex", "text-lg"} {
		if _, ok := candidates[c]; !ok {
			t.Errorf("expected %q to be a candidate", c)
		}
	}
	if err := s.Scan([]Content{{File: path + ".missing"}}, candidates); err == nil {
		t.Errorf("expected missing file to be an error")
	}
}

func TestPrefixedExtractor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.extract")
	defer teardown()
	//
	x := NewDefault("_", "tw-")
	found := x.Extract(`class="hover_tw-bg-red-500 -tw-mt-4"`)
	if !contains(found, "hover_tw-bg-red-500") || !contains(found, "-tw-mt-4") {
		t.Errorf("expected prefixed candidates with custom separator, have %v", found)
	}
}

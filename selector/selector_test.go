package selector

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEscape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.selector")
	defer teardown()
	//
	for _, c := range []struct{ in, out string }{
		{"hover:focus:underline", `hover\:focus\:underline`},
		{"!text-center", `\!text-center`},
		{"[mask-type:luminance]", `\[mask-type\:luminance\]`},
		{"w-1/2", `w-1\/2`},
		{"2xl:container", `\32xl\:container`},
		{"-mt-4", "-mt-4"},
		{"a,b", `a\2c b`},
		{"p-1.5", `p-1\.5`},
	} {
		if got := EscapeClassName(c.in); got != c.out {
			t.Errorf("expected EscapeClassName(%q) to be %q, is %q", c.in, c.out, got)
		}
		if back := Unescape(EscapeClassName(c.in)); back != c.in {
			t.Errorf("expected unescaping %q to yield %q, is %q", c.out, c.in, back)
		}
	}
}

func TestParsePrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.selector")
	defer teardown()
	//
	for _, c := range []struct{ in, out string }{
		{`.hover\:underline:hover`, `.hover\:underline:hover`},
		{`.a>.b`, `.a > .b`},
		{`.a   .b , .c`, `.a .b, .c`},
		{`div.x::before`, `div.x::before`},
		{`:is(.dark &)`, `:is(.dark &)`},
		{`.x:nth-child(2n+1)`, `.x:nth-child(2n+1)`},
		{`[data-state="open"] ~ &`, `[data-state="open"] ~ &`},
		{`#main *`, `#main *`},
	} {
		l, err := Parse(c.in)
		if err != nil {
			t.Errorf("cannot parse %q: %v", c.in, err)
			continue
		}
		if got := l.String(); got != c.out {
			t.Errorf("expected %q to print as %q, is %q", c.in, c.out, got)
		}
	}
	for _, bad := range []string{"", ".a,", ".a >", "a { b }", ".", ":not(.a"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.selector")
	defer teardown()
	//
	l := MustParse(`.space-x-4 > :not([hidden]) ~ :not(.hidden), .group:hover .x`)
	classes := l.Classes()
	if len(classes) != 3 || classes[0] != "space-x-4" || classes[2] != "x" {
		t.Errorf("expected classes [space-x-4 group x], are %v", classes)
	}
}

func TestFormatVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.selector")
	defer teardown()
	//
	formats := []Format{{Format: "&:focus"}, {Format: "&:hover"}}
	ast, err := FormatVariants("hover:focus:underline", formats, "")
	if err != nil {
		t.Fatal(err)
	}
	sel, err := Finalize(".underline", ast, "underline")
	if err != nil {
		t.Fatal(err)
	}
	if sel != `.hover\:focus\:underline:focus:hover` {
		t.Errorf("unexpected variant selector %q", sel)
	}
}

func TestMergePseudo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.selector")
	defer teardown()
	//
	formats := []Format{{Format: ":merge(.group):focus &"}, {Format: ":merge(.group):hover &"}}
	ast, err := FormatVariants("group-hover:group-focus:underline", formats, "")
	if err != nil {
		t.Fatal(err)
	}
	sel, _ := Finalize(".underline", ast, "underline")
	if sel != `.group:hover:focus .group-hover\:group-focus\:underline` {
		t.Errorf("unexpected merged selector %q", sel)
	}
	formats = []Format{{Format: ":merge(.peer):checked ~ &"}, {Format: ":merge(.group):hover &"}}
	ast, _ = FormatVariants("group-hover:peer-checked:x", formats, "tw-")
	sel, _ = Finalize(".x", ast, "x")
	if sel != `.tw-group:hover .tw-peer:checked ~ .group-hover\:peer-checked\:x` {
		t.Errorf("unexpected group/peer selector %q", sel)
	}
}

func TestPseudoElementsLast(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.selector")
	defer teardown()
	//
	formats := []Format{{Format: "&::before"}, {Format: "&:hover"}}
	ast, _ := FormatVariants("hover:before:x", formats, "")
	sel, _ := Finalize(".x", ast, "x")
	if sel != `.hover\:before\:x:hover::before` {
		t.Errorf("expected pseudo-element to be moved to the end, is %q", sel)
	}
	formats = []Format{{Format: "&::file-selector-button"}, {Format: "&:hover"}}
	ast, _ = FormatVariants("hover:file:x", formats, "")
	sel, _ = Finalize(".x", ast, "x")
	if sel != `.hover\:file\:x::file-selector-button:hover` {
		t.Errorf("expected file-selector-button to stay in place, is %q", sel)
	}
}

func TestFinalizeCompound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.selector")
	defer teardown()
	//
	ast, _ := FormatVariants("md:x", nil, "")
	sel, _ := Finalize("div.x > .y, .other", ast, "x")
	if sel != `div.md\:x > .y` {
		t.Errorf("unexpected finalized compound %q", sel)
	}
	sel, _ = Finalize(".unrelated", ast, "x")
	if sel != "" {
		t.Errorf("expected irrelevant selector to vanish, is %q", sel)
	}
}

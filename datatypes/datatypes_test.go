package datatypes

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSplitAtTopLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.datatypes")
	defer teardown()
	//
	parts := SplitAtTopLevelOnly("hover:[&:focus]:bg-[url(a:b)]", ":")
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, have %d: %v", len(parts), parts)
	}
	if parts[1] != "[&:focus]" {
		t.Errorf("expected nested separator to be kept, is %q", parts[1])
	}
	parts = SplitAtTopLevelOnly(`a\:b:c`, ":")
	if len(parts) != 2 || parts[0] != `a\:b` {
		t.Errorf("expected escaped separator to be kept, is %v", parts)
	}
	parts = SplitAtTopLevelOnly("sm__hover__underline", "__")
	if len(parts) != 3 || parts[2] != "underline" {
		t.Errorf("expected multi-char separator to split, is %v", parts)
	}
}

func TestNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.datatypes")
	defer teardown()
	//
	for _, c := range []struct{ in, out string }{
		{"1px_solid_red", "1px solid red"},
		{`content\_name`, "content_name"},
		{"url(/my_image.png)", "url(/my_image.png)"},
		{"calc(100%-1rem)", "calc(100% - 1rem)"},
		{"calc(var(--my-size)*2)", "calc(var(--my-size) * 2)"},
		{"clamp(1rem,2.5vw,2rem)", "clamp(1rem,2.5vw,2rem)"},
		{"  _padded_  ", "padded"},
	} {
		if got := Normalize(c.in); got != c.out {
			t.Errorf("expected Normalize(%q) to be %q, is %q", c.in, c.out, got)
		}
	}
}

func TestTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.datatypes")
	defer teardown()
	//
	for _, c := range []struct {
		t     Type
		value string
		is    bool
	}{
		{Length, "3px", true},
		{Length, "0", true},
		{Length, "calc(100%-1rem)", true},
		{Length, "3pq", false},
		{Percentage, "50%", true},
		{Number, "1.5", true},
		{Number, "abc", false},
		{Color, "#bada55", true},
		{Color, "rgb(1,2,3)", true},
		{Color, "red", true},
		{Color, "var(--x)", false},
		{Color, "var(--x)_blue", true},
		{Color, "3px", false},
		{URL, "url(/a.png)", true},
		{Image, "linear-gradient(red,blue)", true},
		{Image, "url(/a.png),none", false},
		{Position, "center_top", true},
		{Position, "center_red", false},
		{FamilyName, "'Open_Sans',serif", true},
		{FamilyName, "1font", false},
		{LineWidth, "thick", true},
		{Shadow, "0_1px_2px_black", true},
		{Shadow, "none", false},
		{Size, "cover", true},
		{Size, "auto_50%", true},
		{Size, "a_b_c", false},
	} {
		if got := Is(c.t, c.value); got != c.is {
			t.Errorf("expected Is(%s, %q) to be %v, is %v", c.t, c.value, c.is, got)
		}
	}
}

func TestParseColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.datatypes")
	defer teardown()
	//
	c := ParseColor("#ef4444", false)
	if c == nil {
		t.Fatalf("expected #ef4444 to parse")
	}
	if c.String() != "rgb(239 68 68)" {
		t.Errorf("expected rgb(239 68 68), is %s", c)
	}
	if s := WithAlphaValue("#f00", "0.5", "x"); s != "rgb(255 0 0 / 0.5)" {
		t.Errorf("expected short hex with alpha, is %s", s)
	}
	if s := WithAlphaValue("nocolor", "0.5", "fallback"); s != "fallback" {
		t.Errorf("expected fallback for non-color, is %s", s)
	}
	if c := ParseColor("hsl(10deg 20% 30% / 0.4)", false); c == nil || c.Alpha != "0.4" {
		t.Errorf("expected hsl color with alpha, is %v", c)
	}
	if c := ParseColor("rgb(var(--a) / 0.5)", true); c == nil || len(c.Channels) != 1 {
		t.Errorf("expected custom property color, is %v", c)
	}
}

func TestNegate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.datatypes")
	defer teardown()
	//
	for _, c := range []struct{ in, out string }{
		{"1rem", "-1rem"},
		{"-2px", "2px"},
		{"0", "0"},
		{"var(--x)", "calc(var(--x) * -1)"},
	} {
		got, ok := Negate(c.in)
		if !ok || got != c.out {
			t.Errorf("expected Negate(%q) to be %q, is %q", c.in, c.out, got)
		}
	}
	if _, ok := Negate("auto"); ok {
		t.Errorf("expected 'auto' not to be negatable")
	}
}

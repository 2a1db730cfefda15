package engine

import (
	"errors"
	"testing"

	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCandidatePermutations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	cases := []struct {
		candidate string
		expected  []permutation
	}{
		{"ring-offset-blue-100", []permutation{
			{"ring-offset-blue", "100"}, {"ring-offset", "blue-100"}, {"ring", "offset-blue-100"},
		}},
		{"grid-cols-[1fr,auto]", []permutation{
			{"grid-cols", "[1fr,auto]"}, {"grid", "cols-[1fr,auto]"},
		}},
		{"bg-red-500/50", []permutation{
			{"bg-red-500", "/50"}, {"bg-red", "500/50"}, {"bg", "red-500/50"},
		}},
		{"underline", nil},
	}
	for _, c := range cases {
		perms := candidatePermutations(c.candidate)
		if len(perms) != len(c.expected) {
			t.Errorf("expected %d permutations of %s, have %v", len(c.expected), c.candidate, perms)
			continue
		}
		for i, p := range perms {
			if p != c.expected[i] {
				t.Errorf("expected permutation #%d of %s to be %v, is %v", i, c.candidate, c.expected[i], p)
			}
		}
	}
}

func TestSplitVariantFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	parts, err := splitVariantFormat("@supports (display: grid) { @media print { &:hover } }")
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"@supports (display: grid)", "@media print", "&:hover"}
	if len(parts) != len(expected) {
		t.Fatalf("expected format to split into %v, is %v", expected, parts)
	}
	for i := range parts {
		if parts[i] != expected[i] {
			t.Errorf("expected part #%d to be %q, is %q", i, expected[i], parts[i])
		}
	}
	if _, err := splitVariantFormat("@media print { &:hover"); !errors.Is(err, errUnbalanced) {
		t.Errorf("expected unbalanced braces to be an error, is %v", err)
	}
	if !balancedBraces(`&[data-x="\{"]`) {
		t.Errorf("expected escaped brace to be ignored")
	}
}

func TestParseVariantNesting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	fn, err := parseVariant("@media print { &:hover }")
	if err != nil {
		t.Fatal(err)
	}
	api := &VariantAPI{Container: cssom.Container(cssom.NewStyleRule(".x"))}
	if _, ok := fn(api); !ok {
		t.Fatalf("expected variant to apply")
	}
	if len(api.formats) != 1 || api.formats[0] != "&:hover" {
		t.Errorf("expected format &:hover, is %v", api.formats)
	}
	if len(api.Container.Rules) != 1 || api.Container.Rules[0].Name != "@media" {
		t.Fatalf("expected container to be wrapped into @media")
	}
	if api.Container.Rules[0].Prelude != "print" {
		t.Errorf("expected media query 'print', is %q", api.Container.Rules[0].Prelude)
	}
}

func TestFormatClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	for key, expected := range map[string]string{
		"4": "mt-4", "-4": "-mt-4", "DEFAULT": "mt", "-DEFAULT": "-mt", "/50": "mt/50",
	} {
		if c := FormatClass("mt", key); c != expected {
			t.Errorf("expected class for key %q to be %s, is %s", key, expected, c)
		}
	}
}

func TestSplitUtilityModifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.engine")
	defer teardown()
	//
	if v, m, ok := splitUtilityModifier("red-500/50"); !ok || v != "red-500" || m != "50" {
		t.Errorf("expected red-500 and 50, is %q %q", v, m)
	}
	if _, _, ok := splitUtilityModifier("[1/2]"); ok {
		t.Errorf("expected arbitrary fraction not to be split")
	}
	if v, m, ok := splitUtilityModifier("[#fff]/[0.3]"); !ok || v != "[#fff]" || m != "[0.3]" {
		t.Errorf("expected [#fff] and [0.3], is %q %q", v, m)
	}
}

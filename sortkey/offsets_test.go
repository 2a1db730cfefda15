package sortkey

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLayerOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.sortkey")
	defer teardown()
	//
	o := New()
	u := o.Create(Utilities)
	c := o.Create(Components)
	b := o.Create(Base)
	if o.Compare(b, c) >= 0 || o.Compare(c, u) >= 0 {
		t.Errorf("expected base < components < utilities, is %v %v %v", b, c, u)
	}
	hover := o.RecordVariant("hover", 1)
	v := o.ApplyVariantOffset(b, hover, nil)
	if o.Compare(u, v) >= 0 {
		t.Errorf("expected variant rule %v to sort after utility %v", v, u)
	}
	if v.ParentLayer != Base {
		t.Errorf("expected parent layer to be base, is %s", v.ParentLayer)
	}
}

func TestVariantBits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.sortkey")
	defer teardown()
	//
	o := New()
	o.RecordVariants([]string{"hover", "marker", "focus"}, func(name string) int {
		if name == "marker" {
			return 2
		}
		return 1
	})
	hover, _ := o.ForVariant("hover", 0)
	marker1, _ := o.ForVariant("marker", 1)
	focus, _ := o.ForVariant("focus", 0)
	if hover.Variants.Int64() != 1 || marker1.Variants.Int64() != 4 || focus.Variants.Int64() != 8 {
		t.Errorf("unexpected variant bits: %v %v %v", hover, marker1, focus)
	}
	if _, err := o.ForVariant("unknown", 0); err == nil {
		t.Errorf("expected error for unknown variant")
	}
	u := o.Create(Utilities)
	a := o.ApplyVariantOffset(u, focus, nil)
	ab := o.ApplyVariantOffset(a, hover, nil)
	if ab.Variants.Int64() != 9 {
		t.Errorf("expected composed variants to be 0b1001, is %s", ab.Variants.Text(2))
	}
	if o.Compare(a, ab) >= 0 {
		t.Errorf("expected rule with more variants to sort later")
	}
}

func TestVariantSortOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.sortkey")
	defer teardown()
	//
	o := New()
	minVariant := o.RecordVariant("min", 1)
	u := o.Create(Utilities)
	bySize := func(a, b VariantValue) int { return len(a.Value) - len(b.Value) }
	large := o.ApplyVariantOffset(u, minVariant, &VariantOption{ID: 1, Sort: bySize, Value: "1000px"})
	small := o.ApplyVariantOffset(u, minVariant, &VariantOption{ID: 1, Sort: bySize, Value: "10px"})
	items := []Offset{large, small}
	Sort(o, items, func(off Offset) Offset { return off })
	if items[0].Options[0].Value != "10px" {
		t.Errorf("expected sort option to order 10px first, is %v", items[0].Options)
	}
}

func TestArbitraryAfterRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jitcss.sortkey")
	defer teardown()
	//
	o := New()
	arb := o.ArbitraryProperty()
	reg := o.Create(Utilities)
	if o.Compare(reg, arb) >= 0 {
		t.Errorf("expected arbitrary property %v after utility %v", arb, reg)
	}
	if !strings.HasPrefix(arb.String(), "utilities/utilities") {
		t.Errorf("unexpected offset format %s", arb)
	}
	p := reg.WithParallelIndex(1)
	if o.Compare(reg, p) >= 0 {
		t.Errorf("expected parallel index to order rules")
	}
}

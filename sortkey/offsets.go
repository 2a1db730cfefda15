package sortkey

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
)

// Layer is one of the fixed output groupings of a stylesheet.
type Layer int8

// Layers in output order.
const (
	Base Layer = iota
	Components
	Utilities
	Variants
)

var layerNames = [...]string{"base", "components", "utilities", "variants"}

func (l Layer) String() string {
	if l < Base || l > Variants {
		return fmt.Sprintf("layer(%d)", int(l))
	}
	return layerNames[l]
}

// ParseLayer returns the layer for a name as used in `@tailwind <layer>`
// and `@layer <layer>`.
func ParseLayer(name string) (Layer, bool) {
	for i, n := range layerNames {
		if n == name {
			return Layer(i), true
		}
	}
	return Base, false
}

// ErrUnknownVariant is returned when asking for the offset of a variant
// which has not been recorded.
var ErrUnknownVariant = errors.New("cannot find offset for unknown variant")

// VariantValue is what a variant sort function compares.
type VariantValue struct {
	Value    string
	Modifier string
}

// VariantOption carries the sort hook of a parameterized variant family
// into the offsets of the rules it has been applied to.
type VariantOption struct {
	ID       int // identifies the variant family
	Sort     func(a, b VariantValue) int
	Value    string
	Modifier string
	Variant  *big.Int // bits of the variant function which introduced the option
}

// Offset is the sort key of a generated rule. Offsets are values; the
// variant bit-vector is never mutated in place.
type Offset struct {
	Layer         Layer
	ParentLayer   Layer // layer of the rule before variants moved it to Variants
	Arbitrary     int
	Variants      *big.Int
	ParallelIndex int
	Index         int
	Options       []VariantOption
}

var zero = big.NewInt(0)

func (o Offset) variants() *big.Int {
	if o.Variants == nil {
		return zero
	}
	return o.Variants
}

// WithParallelIndex returns a copy of o for the i-th output of a
// multi-output variant.
func (o Offset) WithParallelIndex(i int) Offset {
	o.ParallelIndex = i
	return o
}

func (o Offset) String() string {
	return fmt.Sprintf("%s/%s:%d:v%s:p%d:a%d", o.Layer, o.ParentLayer, o.Index,
		o.variants().Text(2), o.ParallelIndex, o.Arbitrary)
}

// Offsets is the offset allocator of a context.
type Offsets struct {
	next         [Variants + 1]int
	reservedBits uint
	variants     map[string]*big.Int
}

// New creates an empty allocator.
func New() *Offsets {
	return &Offsets{variants: make(map[string]*big.Int)}
}

// Create allocates the next offset of a layer.
func (o *Offsets) Create(layer Layer) Offset {
	off := Offset{Layer: layer, ParentLayer: layer, Index: o.next[layer]}
	o.next[layer]++
	return off
}

// ArbitraryProperty allocates an offset for an arbitrary property
// candidate like `[mask-type:luminance]`. These sort after all regular
// utilities with equal variants.
func (o *Offsets) ArbitraryProperty() Offset {
	off := o.Create(Utilities)
	off.Arbitrary = 1
	return off
}

// ForVariant returns the offset of the index-th function of a recorded
// variant.
func (o *Offsets) ForVariant(name string, index int) (Offset, error) {
	bits, ok := o.variants[name]
	if !ok {
		return Offset{}, fmt.Errorf("%w %s", ErrUnknownVariant, name)
	}
	off := o.Create(Variants)
	off.Variants = new(big.Int).Lsh(bits, uint(index))
	return off, nil
}

// RecordVariant reserves fnCount bits for the functions of a variant and
// returns the offset of its first function.
func (o *Offsets) RecordVariant(name string, fnCount int) Offset {
	if fnCount < 1 {
		fnCount = 1
	}
	bits := new(big.Int).Lsh(big.NewInt(1), o.reservedBits)
	o.variants[name] = bits
	o.reservedBits += uint(fnCount)
	tracer().Debugf("variant %q gets bit %d (%d functions)", name, bits.BitLen()-1, fnCount)
	off := o.Create(Variants)
	off.Variants = bits
	return off
}

// RecordVariants reserves bits for a list of variants, in list order.
func (o *Offsets) RecordVariants(names []string, fnCount func(string) int) {
	for _, name := range names {
		o.RecordVariant(name, fnCount(name))
	}
}

// HasVariant reports whether bits have been reserved for a variant.
func (o *Offsets) HasVariant(name string) bool {
	_, ok := o.variants[name]
	return ok
}

// ApplyVariantOffset composes the offset of a rule with the offset of a
// variant applied to it. If opt carries a sort function, it is recorded
// in front of the rule's options.
func (o *Offsets) ApplyVariantOffset(rule, variant Offset, opt *VariantOption) Offset {
	off := rule
	off.Layer = Variants
	if rule.Layer != Variants {
		off.ParentLayer = rule.Layer
	}
	off.Variants = new(big.Int).Or(rule.variants(), variant.variants())
	if opt != nil && opt.Sort != nil {
		opt.Variant = variant.variants()
		off.Options = append([]VariantOption{*opt}, rule.Options...)
	}
	if variant.ParallelIndex > rule.ParallelIndex {
		off.ParallelIndex = variant.ParallelIndex
	}
	return off
}

// Compare establishes the total order of offsets: layer, parent layer,
// variant sort functions, variant bits, parallel index, arbitrariness and
// finally registration index.
func (o *Offsets) Compare(a, b Offset) int {
	if a.Layer != b.Layer {
		return int(a.Layer) - int(b.Layer)
	}
	if a.ParentLayer != b.ParentLayer {
		return int(a.ParentLayer) - int(b.ParentLayer)
	}
	for _, aopt := range a.Options {
		for _, bopt := range b.Options {
			if aopt.ID != bopt.ID || aopt.Sort == nil || bopt.Sort == nil {
				continue
			}
			if !sameVariantsAfter(a, b, aopt, bopt) {
				continue
			}
			r := aopt.Sort(VariantValue{aopt.Value, aopt.Modifier}, VariantValue{bopt.Value, bopt.Modifier})
			if r != 0 {
				return r
			}
		}
	}
	if c := a.variants().Cmp(b.variants()); c != 0 {
		return c
	}
	if a.ParallelIndex != b.ParallelIndex {
		return a.ParallelIndex - b.ParallelIndex
	}
	if a.Arbitrary != b.Arbitrary {
		return a.Arbitrary - b.Arbitrary
	}
	return a.Index - b.Index
}

// sameVariantsAfter checks if a and b carry the same variants above the
// variant functions which introduced the options. Only then is a variant
// sort function allowed to decide.
func sameVariantsAfter(a, b Offset, aopt, bopt VariantOption) bool {
	hi := aopt.Variant
	if hi == nil || (bopt.Variant != nil && bopt.Variant.Cmp(hi) > 0) {
		hi = bopt.Variant
	}
	if hi == nil || hi.Sign() == 0 {
		return true
	}
	shift := uint(hi.BitLen())
	aa := new(big.Int).Rsh(a.variants(), shift)
	bb := new(big.Int).Rsh(b.variants(), shift)
	return aa.Cmp(bb) == 0
}

// Sort sorts items by their offsets. Items with equal offsets keep their
// relative order.
func Sort[T any](o *Offsets, items []T, offset func(T) Offset) {
	sort.SliceStable(items, func(i, j int) bool {
		return o.Compare(offset(items[i]), offset(items[j])) < 0
	})
}

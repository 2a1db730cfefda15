package engine

import (
	"math/big"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/datatypes"
	"github.com/npillmayer/jitcss/selector"
	"github.com/npillmayer/jitcss/sortkey"
)

// OrderedClass is a class together with its position in generated output.
// Order is nil for classes which do not generate anything.
type OrderedClass struct {
	Name  string
	Order *big.Int
}

// ClassOrder sorts classes the way they would appear in the output. Classes
// used only by other utilities, like `group`, are placed before all
// generated classes.
func (ctx *Context) ClassOrder(classes []string) []OrderedClass {
	rules := ctx.GenerateRules(classes)
	sortkey.Sort(ctx.offsets, rules, func(g *GeneratedRule) sortkey.Offset { return g.Sort })
	order := make(map[string]int64)
	idx := int64(len(ctx.parasites))
	for _, g := range rules {
		order[g.Candidate] = idx
		idx++
	}
	result := make([]OrderedClass, len(classes))
	for i, c := range classes {
		result[i].Name = c
		if o, ok := order[c]; ok {
			result[i].Order = big.NewInt(o)
			continue
		}
		for p, parasite := range ctx.parasites {
			if c == parasite {
				result[i].Order = big.NewInt(int64(p))
				break
			}
		}
	}
	return result
}

// ClassListEntry is a class a context is able to generate. Modifiers are the
// modifier keys the class accepts.
type ClassListEntry struct {
	Name      string
	Modifiers []string
}

// ClassList enumerates the classes of all registered utilities and
// components, for completion. Arbitrary values are not included. If
// withMetadata is set, accepted modifiers are listed with each class.
func (ctx *Context) ClassList(withMetadata bool) []ClassListEntry {
	var list []ClassListEntry
	for _, util := range ctx.classList {
		if util.options == nil {
			if util.name != NotOnDemand {
				list = append(list, ClassListEntry{Name: util.name})
			}
			continue
		}
		opts := util.options
		var modifiers []string
		if withMetadata {
			modifiers = sortedKeys(opts.Modifiers)
			if opts.hasType(datatypes.Color) {
				modifiers = append(modifiers, sortedKeys(ctx.theme.Section("opacity"))...)
			}
		}
		var negatives []ClassListEntry
		for _, key := range sortedKeys(opts.Values) {
			list = append(list, ClassListEntry{Name: FormatClass(util.name, key), Modifiers: modifiers})
			if !opts.SupportsNegativeValues {
				continue
			}
			if _, ok := datatypes.Negate(opts.Values[key]); ok {
				negatives = append(negatives, ClassListEntry{Name: FormatClass(util.name, "-"+key), Modifiers: modifiers})
			}
		}
		list = append(list, negatives...)
	}
	return list
}

// VariantInfo describes a registered variant.
type VariantInfo struct {
	Name        string
	IsArbitrary bool     // accepts arbitrary values
	Values      []string // value keys of a parameterized variant
	HasDash     bool     // values are separated by a dash
	ctx         *Context
}

// Variants lists the registered variants in registration order. Value
// aliases of parameterized variants are not listed separately.
func (ctx *Context) Variants() []VariantInfo {
	var infos []VariantInfo
	for _, name := range ctx.variantOrder {
		opts := ctx.variantOptions[name]
		if opts != nil && opts.base {
			continue
		}
		info := VariantInfo{Name: name, HasDash: name != "@", ctx: ctx}
		if opts != nil {
			info.IsArbitrary = opts.matched
			info.Values = append([]string(nil), opts.keys...)
		}
		infos = append(infos, info)
	}
	return infos
}

const placeholder = "__PLACEHOLDER__"

// Selectors returns the formats a variant produces for a value, with `&`
// standing for the selector of the utility:
//
//     hover          →  &:hover
//     md             →  @media (min-width: 768px)
//     group, [.x]    →  .group.x &
//
func (info VariantInfo) Selectors(value, modifier string) []string {
	ctx := info.ctx
	opts := ctx.variantOptions[info.Name]
	args := VariantArgs{Modifier: modifier}
	isArbitrary := true
	if value != "" {
		args.Value, args.HasValue = value, true
		if opts != nil {
			if v, ok := opts.values[value]; ok {
				args.Value, isArbitrary = v, false
			}
		}
	}
	var groups [][]string
	newAPI := func() *VariantAPI {
		return &VariantAPI{
			Container: cssom.Container(cssom.NewStyleRule("." + placeholder)),
			Separator: ctx.separator,
			Args:      args,
		}
	}
	collect := func(fn VariantFunc) []VariantFunc {
		api := newAPI()
		next, ok := fn(api)
		if !ok {
			return nil
		}
		var formats []string
		cssom.Walk(api.Container, func(r *css.Rule, _ []*css.Rule) bool {
			if r.Kind == css.AtRule && r.Name != "" {
				formats = append(formats, r.Name+" "+r.Prelude+" { & }")
			}
			return true
		})
		if sel := cssom.Selector(innermost(api.Container)); sel != "."+placeholder {
			rebuilt := "." + selector.EscapeClassName(info.Name+ctx.separator+placeholder)
			formats = append(formats, strings.Replace(strings.Replace(sel, rebuilt, "&", 1), "."+placeholder, "&", 1))
		}
		formats = append(api.formats, formats...)
		if len(formats) > 0 {
			groups = append(groups, formats)
		}
		return next
	}
	for _, t := range ctx.variantMap[info.Name] {
		for _, fn := range collect(t.fn) {
			collect(fn)
		}
	}
	var result []string
	for _, g := range groups {
		formats := make([]selector.Format, len(g))
		for i, f := range g {
			formats[i] = selector.Format{Format: f, IsArbitrary: isArbitrary}
		}
		if s, ok := finalizeFormats(formats, ctx.prefix); ok {
			result = append(result, s)
		}
	}
	return result
}

// innermost finds the style rule inside a variant container.
func innermost(container *css.Rule) *css.Rule {
	var rule *css.Rule
	cssom.WalkStyleRules(container, func(r *css.Rule) {
		if rule == nil {
			rule = r
		}
	})
	if rule == nil {
		return container
	}
	return rule
}

// finalizeFormats combines formats for a placeholder candidate. At-rule
// formats are kept as text, selector formats are merged.
func finalizeFormats(formats []selector.Format, prefix string) (string, bool) {
	var wraps []string
	var sels []selector.Format
	for _, f := range formats {
		if strings.HasPrefix(f.Format, "@") {
			wraps = append(wraps, strings.TrimSpace(strings.TrimSuffix(f.Format, "{ & }")))
			continue
		}
		sels = append(sels, f)
	}
	parts := wraps
	if len(sels) > 0 {
		l, err := selector.FormatVariants(placeholder, sels, prefix)
		if err != nil {
			return "", false
		}
		s, err := selector.Finalize("."+placeholder, l, placeholder)
		if err != nil || s == "" {
			return "", false
		}
		parts = append(parts, strings.Replace(s, "."+placeholder, "&", 1))
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}

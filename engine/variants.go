package engine

import (
	"errors"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/jitcss/cssom"
	"github.com/npillmayer/jitcss/datatypes"
	"github.com/npillmayer/jitcss/selector"
	"github.com/npillmayer/jitcss/sortkey"
)

// VariantArgs are the arguments of a variant in a candidate, e.g. for
// `group-[.is-open]/menu:` the value is `.is-open` and the modifier is `menu`.
type VariantArgs struct {
	Value    string
	HasValue bool
	Modifier string
}

// VariantAPI is handed to variant functions. Container holds a copy of the
// generated rule and may be changed by the function.
type VariantAPI struct {
	Container *css.Rule
	Separator string
	Args      VariantArgs
	formats   []string
}

// VariantFunc applies a variant to the rule in api.Container. It returns
// false if the variant does not apply. A variant function may return
// further functions, each of which produces a separate output.
type VariantFunc func(api *VariantAPI) ([]VariantFunc, bool)

// Format adds a selector format like `&:hover`.
func (v *VariantAPI) Format(format string) {
	v.formats = append(v.formats, format)
}

// Wrap moves the contents of the container into an at-rule.
func (v *VariantAPI) Wrap(wrapper *css.Rule) {
	wrapper.Rules = append(wrapper.Rules, v.Container.Rules...)
	v.Container.Rules = []*css.Rule{wrapper}
}

// ModifySelectors rewrites the selectors of the top-level style rules of the
// container. fn receives each selector and its first class.
func (v *VariantAPI) ModifySelectors(fn func(sel, className string) string) {
	for _, r := range v.Container.Rules {
		if r.Kind != css.QualifiedRule {
			continue
		}
		sels := make([]string, len(r.Selectors))
		for i, s := range r.Selectors {
			sels[i] = fn(s, firstClass(s))
		}
		cssom.SetSelector(r, strings.Join(sels, ", "))
	}
}

func firstClass(sel string) string {
	l, err := selector.Parse(sel)
	if err != nil {
		return ""
	}
	if classes := l.Classes(); len(classes) > 0 {
		return classes[0]
	}
	return ""
}

type variantTuple struct {
	sort      sortkey.Offset
	fn        VariantFunc
	container *css.Rule // for outputs of a multi-output variant
}

// variantOptions are kept per variant name.
type variantOptions struct {
	id       int
	sort     func(a, b sortkey.VariantValue) int
	value    string
	hasValue bool
	matched  bool // registered by MatchVariant
	base     bool // a value alias like `supports-grid`
	values   map[string]string
	keys     []string
}

func (ctx *Context) addVariant(name string, fns []VariantFunc, opts *variantOptions) {
	if _, ok := ctx.variantFns[name]; !ok {
		ctx.variantOrder = append(ctx.variantOrder, name)
	}
	ctx.variantFns[name] = fns
	ctx.variantOptions[name] = opts
}

// isValidVariantFormat accepts at-rules and selectors containing `&`.
func isValidVariantFormat(format string) bool {
	return strings.HasPrefix(format, "@") || strings.Contains(format, "&")
}

var whitespace = regexp.MustCompile(`\s+`)

// parseVariant turns a format string like `@media print { &:hover }` into
// a variant function. Parts are applied innermost first.
func parseVariant(format string) (VariantFunc, error) {
	format = strings.TrimSpace(whitespace.ReplaceAllString(format, " "))
	parts, err := splitVariantFormat(format)
	if err != nil {
		return nil, err
	}
	type step func(*VariantAPI)
	steps := make([]step, 0, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if !strings.HasPrefix(part, "@") {
			steps = append(steps, func(v *VariantAPI) { v.Format(part) })
			continue
		}
		name, params := cssom.SplitAtRule(part)
		if name == "" {
			return nil, errors.New("invalid at-rule in variant format " + part)
		}
		steps = append(steps, func(v *VariantAPI) { v.Wrap(cssom.NewAtRule(name, params)) })
	}
	return func(v *VariantAPI) ([]VariantFunc, bool) {
		for _, s := range steps {
			s(v)
		}
		return nil, true
	}, nil
}

// splitVariantFormat splits a format string at its outermost braces:
// `@supports (x) { &:hover }` yields `@supports (x)` and `&:hover`.
func splitVariantFormat(format string) ([]string, error) {
	open := strings.IndexByte(format, '{')
	if open < 0 {
		if strings.ContainsRune(format, '}') {
			return nil, errUnbalanced
		}
		if format = strings.TrimSpace(format); format == "" {
			return nil, nil
		}
		return []string{format}, nil
	}
	if !balancedBraces(format) {
		return nil, errUnbalanced
	}
	end := strings.LastIndexByte(format, '}')
	var parts []string
	for _, s := range []string{format[:open], format[open+1 : end], format[end+1:]} {
		p, err := splitVariantFormat(s)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p...)
	}
	return parts, nil
}

var errUnbalanced = errors.New("your { and } are unbalanced")

func balancedBraces(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

var arbitraryVariantValue = regexp.MustCompile(`(.)(-?)\[(.*)\]`)

// applyVariant applies a variant of a candidate to matches. Matches the
// variant does not apply to are dropped.
func (ctx *Context) applyVariant(variant string, matches []*Match) []*Match {
	if len(matches) == 0 {
		return matches
	}
	var args VariantArgs
	if parts := datatypes.SplitAtTopLevelOnly(variant, "/"); len(parts) > 1 {
		base, modifier := strings.Join(parts[:len(parts)-1], "/"), parts[len(parts)-1]
		if _, ok := ctx.variantMap[variant]; !ok {
			variant = base
			args.Modifier = modifier
		}
	}
	if strings.HasSuffix(variant, "]") && !strings.HasPrefix(variant, "[") {
		if m := arbitraryVariantValue.FindStringSubmatch(variant); m != nil {
			char, dash, value := m[1], m[2], m[3]
			if char == "@" && dash == "-" {
				return nil
			}
			if char != "@" && dash == "" {
				return nil
			}
			variant = strings.Replace(variant, dash+"["+value+"]", "", 1)
			args.Value, args.HasValue = value, true
		}
	}
	if isArbitraryValue(variant) {
		if _, ok := ctx.variantMap[variant]; !ok {
			format := datatypes.Normalize(variant[1 : len(variant)-1])
			if !isValidVariantFormat(format) {
				return nil
			}
			fn, err := parseVariant(format)
			if err != nil {
				tracer().Debugf("arbitrary variant %s: %v", variant, err)
				return nil
			}
			sort := ctx.offsets.RecordVariant(variant, 1)
			ctx.variantMap[variant] = []variantTuple{{sort: sort, fn: fn}}
		}
	}
	tuples, ok := ctx.variantMap[variant]
	if !ok {
		return nil
	}
	isArbitrary := isArbitraryValue(variant)
	opts := ctx.variantOptions[variant]
	var result []*Match
	for _, m := range matches {
		container := cssom.Container(cssom.Clone(m.Rule))
		queue := append([]variantTuple(nil), tuples...)
		for i := 0; i < len(queue); i++ {
			t := queue[i]
			from := container
			if t.container != nil {
				from = t.container
			}
			api := &VariantAPI{
				Container: cssom.Clone(from),
				Separator: ctx.separator,
				Args:      args,
			}
			before := snapshotSelectors(api.Container)
			next, ok := t.fn(api)
			if len(next) > 0 {
				for idx, fn := range next {
					queue = append(queue, variantTuple{
						sort:      t.sort.WithParallelIndex(idx),
						fn:        fn,
						container: cssom.Clone(api.Container),
					})
				}
				continue
			}
			if !ok || len(api.Container.Rules) == 0 {
				continue
			}
			formats := make([]selector.Format, 0, len(m.formats)+len(api.formats)+1)
			formats = append(formats, m.formats...)
			for _, f := range api.formats {
				formats = append(formats, selector.Format{Format: f, IsArbitrary: isArbitrary})
			}
			formats = append(formats, ctx.restoreSelectors(before, variant, isArbitrary)...)
			option := &sortkey.VariantOption{Value: args.Value, Modifier: args.Modifier}
			if opts != nil {
				option.ID, option.Sort = opts.id, opts.sort
				if opts.hasValue {
					option.Value = opts.value
				}
			}
			varied := *m
			varied.Sort = ctx.offsets.ApplyVariantOffset(m.Sort, t.sort, option)
			varied.formats = formats
			varied.varied = true
			varied.Rule = api.Container.Rules[0]
			result = append(result, &varied)
		}
	}
	return result
}

type savedSelector struct {
	rule     *css.Rule
	selector string
}

func snapshotSelectors(container *css.Rule) []savedSelector {
	var snap []savedSelector
	cssom.Walk(container, func(r *css.Rule, _ []*css.Rule) bool {
		if r.Kind == css.QualifiedRule {
			snap = append(snap, savedSelector{r, cssom.Selector(r)})
		}
		return true
	})
	return snap
}

// restoreSelectors turns selectors changed by a variant function into
// formats and restores the original selectors. For variant `foo` and
// selector `.markdown > p` changed to `.foo .foo\:markdown > p`, the format
// is `.foo &`.
func (ctx *Context) restoreSelectors(before []savedSelector, variant string,
	isArbitrary bool) []selector.Format {
	//
	var formats []selector.Format
	for _, saved := range before {
		r, original := saved.rule, saved.selector
		modified := cssom.Selector(r)
		if modified == original {
			continue
		}
		rebuilt := original
		if l, err := selector.Parse(original); err == nil {
			selector.UpdateClasses(l, func(c string) string {
				return variant + ctx.separator + c
			})
			rebuilt = l.String()
		}
		formats = append(formats, selector.Format{
			Format:      strings.Replace(modified, rebuilt, "&", 1),
			IsArbitrary: isArbitrary,
		})
		cssom.SetSelector(r, original)
	}
	return formats
}

package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hyperifyio/orderextract/internal/order"
)

// Kind selects how a rule turns its labels into a pattern.
type Kind string

const (
	// KindBetween captures the text between each pair of consecutive labels.
	KindBetween Kind = "between"
	// KindAfter captures a value of a given shape that follows a label.
	KindAfter Kind = "after"
	// KindLine captures the line immediately following a label.
	KindLine Kind = "line"
)

// Rule is one extraction attempt for a field. A label may list
// alternatives separated by "|".
type Rule struct {
	Name   string   `yaml:"name" json:"name"`
	Kind   Kind     `yaml:"kind" json:"kind"`
	Labels []string `yaml:"labels" json:"labels"`
	// Shape is the regexp character class of the value for KindAfter.
	Shape string `yaml:"shape,omitempty" json:"shape,omitempty"`
	// Stop truncates a KindAfter value before this label.
	Stop string `yaml:"stop,omitempty" json:"stop,omitempty"`
	// All collects every non-overlapping match instead of the first.
	All bool `yaml:"all,omitempty" json:"all,omitempty"`
	// Lines matches against the line-preserving view of the input.
	Lines bool `yaml:"lines,omitempty" json:"lines,omitempty"`
}

// RuleSet maps each field to its rules, tried in order until one matches.
type RuleSet map[order.Field][]Rule

// DefaultRuleSet returns the built-in rule table. Each call returns a fresh
// value.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		order.FieldProduct: {
			{Name: "product-status", Kind: KindBetween, Labels: []string{order.LabelProduct, order.LabelOrderStatus}},
			{Name: "product-option", Kind: KindBetween, Labels: []string{order.LabelProduct, order.LabelOption + "|" + order.LabelQuantity}},
		},
		order.FieldOptions: {
			{Name: "option-quantity", Kind: KindBetween, Labels: []string{order.LabelOption, order.LabelQuantity}, All: true},
		},
		order.FieldQuantity: {
			{Name: "quantity-digits", Kind: KindAfter, Labels: []string{order.LabelQuantity}, Shape: `[0-9][0-9,]*`},
		},
		order.FieldRecipient: {
			{Name: "recipient-contact2-address", Kind: KindBetween, Labels: []string{order.LabelRecipient, order.LabelContact1, order.LabelContact2, order.LabelAddress}},
			{Name: "recipient-contact2", Kind: KindBetween, Labels: []string{order.LabelRecipient, order.LabelContact1, order.LabelContact2}},
			{Name: "recipient-address", Kind: KindBetween, Labels: []string{order.LabelRecipient, order.LabelContact1, order.LabelAddress}},
		},
		order.FieldAddress: {
			{Name: "address-memo", Kind: KindBetween, Labels: []string{order.LabelAddress, order.LabelMemo}, Lines: true},
			{Name: "address-shape", Kind: KindAfter, Labels: []string{order.LabelAddress}, Shape: `[\p{Hangul}\p{Latin}\p{N}\s\-(),.]+`, Stop: order.LabelMemo, Lines: true},
		},
		order.FieldMemo: {
			{Name: "memo-line", Kind: KindLine, Labels: []string{order.LabelMemo}, Lines: true},
		},
	}
}

// Rules is a compiled, immutable RuleSet. It is safe for concurrent use.
type Rules struct {
	byField map[order.Field][]compiledRule
}

type compiledRule struct {
	Rule
	re   *regexp.Regexp
	stop []string
}

// Compile validates rs and compiles every rule. Fields missing from rs are
// an error.
func Compile(rs RuleSet) (*Rules, error) {
	out := &Rules{byField: make(map[order.Field][]compiledRule, len(order.Fields))}
	for _, f := range order.Fields {
		list, ok := rs[f]
		if !ok || len(list) == 0 {
			return nil, fmt.Errorf("rules: field %q has no rules", f)
		}
		compiled := make([]compiledRule, 0, len(list))
		for i, r := range list {
			c, err := compileRule(r)
			if err != nil {
				return nil, fmt.Errorf("rules: %s[%d] %q: %w", f, i, r.Name, err)
			}
			compiled = append(compiled, c)
		}
		out.byField[f] = compiled
	}
	for f := range rs {
		if _, ok := out.byField[f]; !ok {
			return nil, fmt.Errorf("rules: unknown field %q", f)
		}
	}
	return out, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// package-level rule tables known to be valid.
func MustCompile(rs RuleSet) *Rules {
	r, err := Compile(rs)
	if err != nil {
		panic(err)
	}
	return r
}

// For returns the ordered rule names for f.
func (r *Rules) For(f order.Field) []string {
	list := r.byField[f]
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	return names
}

func compileRule(r Rule) (compiledRule, error) {
	var expr string
	switch r.Kind {
	case KindBetween:
		if len(r.Labels) < 2 {
			return compiledRule{}, errors.New("between needs at least two labels")
		}
		var b strings.Builder
		b.WriteString(`(?s)`)
		b.WriteString(alternation(r.Labels[0]))
		for _, l := range r.Labels[1:] {
			b.WriteString(labelSep + `(.*?)`)
			b.WriteString(alternation(l))
		}
		expr = b.String()
	case KindAfter:
		if len(r.Labels) != 1 || strings.TrimSpace(r.Shape) == "" {
			return compiledRule{}, errors.New("after needs one label and a shape")
		}
		expr = `(?s)` + alternation(r.Labels[0]) + labelSep + `\s*(` + r.Shape + `)`
	case KindLine:
		if len(r.Labels) != 1 {
			return compiledRule{}, errors.New("line needs one label")
		}
		expr = alternation(r.Labels[0]) + labelSep + `[ \t]*\n?[ \t]*([^\n]+)`
	default:
		return compiledRule{}, fmt.Errorf("unknown kind %q", r.Kind)
	}
	for _, l := range r.Labels {
		if strings.TrimSpace(l) == "" {
			return compiledRule{}, errors.New("empty label")
		}
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return compiledRule{}, fmt.Errorf("compile %q: %w", expr, err)
	}
	c := compiledRule{Rule: r, re: re}
	if r.Stop != "" {
		c.stop = strings.Split(r.Stop, "|")
	}
	return c, nil
}

// labelSep swallows an optional colon written after a label.
const labelSep = `[ \t]*[:：]?`

// alternation quotes each "|"-separated label into a regexp group.
func alternation(label string) string {
	parts := strings.Split(label, "|")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(strings.TrimSpace(p))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return `(?:` + strings.Join(parts, "|") + `)`
}

// find returns the trimmed capture groups of the first match, or nil.
func (c compiledRule) find(text string) []string {
	m := c.re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return c.groups(m[1:])
}

// findAll returns the trimmed capture groups of every non-overlapping match.
func (c compiledRule) findAll(text string) [][]string {
	ms := c.re.FindAllStringSubmatch(text, -1)
	out := make([][]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, c.groups(m[1:]))
	}
	return out
}

func (c compiledRule) groups(raw []string) []string {
	out := make([]string, len(raw))
	for i, g := range raw {
		out[i] = strings.TrimSpace(c.truncate(g))
	}
	return out
}

func (c compiledRule) truncate(s string) string {
	for _, stop := range c.stop {
		if i := strings.Index(s, stop); i >= 0 {
			s = s[:i]
		}
	}
	return s
}

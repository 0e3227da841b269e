package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/orderextract/internal/clean"
	"github.com/hyperifyio/orderextract/internal/order"
)

// views holds the two normalized renderings of one input.
type views struct {
	flat  string
	lines string
}

func (v views) pick(c compiledRule) string {
	if c.Lines {
		return v.lines
	}
	return v.flat
}

// first evaluates the rules of f in order and returns the groups of the
// first rule whose leading group is non-empty.
func (p *Pipeline) first(f order.Field, v views) []string {
	for _, c := range p.rules.byField[f] {
		g := c.find(v.pick(c))
		if len(g) > 0 && g[0] != "" {
			log.Debug().Str("field", string(f)).Str("rule", c.Name).Msg("field matched")
			return g
		}
	}
	log.Debug().Str("field", string(f)).Msg("no rule matched")
	return nil
}

// guard isolates a panic inside one field's matcher and substitutes
// fallback for that field only.
func guard[T any](f order.Field, fallback T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("field", string(f)).Interface("panic", r).Msg("field extraction failed")
			out = fallback
		}
	}()
	return fn()
}

func (p *Pipeline) matchProduct(v views) string {
	g := p.first(order.FieldProduct, v)
	if g == nil {
		return order.ProductNotFound
	}
	return g[0]
}

func (p *Pipeline) matchOptions(v views) []string {
	for _, c := range p.rules.byField[order.FieldOptions] {
		var found []string
		text := v.pick(c)
		matches := [][]string{c.find(text)}
		if c.All {
			matches = c.findAll(text)
		}
		for _, g := range matches {
			if len(g) > 0 && g[0] != "" {
				found = append(found, g[0])
			}
		}
		if len(found) > 0 {
			log.Debug().Str("field", string(order.FieldOptions)).Str("rule", c.Name).Int("count", len(found)).Msg("field matched")
			return found
		}
	}
	return []string{order.OptionNotFound}
}

func (p *Pipeline) matchQuantity(v views) string {
	g := p.first(order.FieldQuantity, v)
	if g == nil {
		return order.QuantityNotFound
	}
	digits := strings.ReplaceAll(g[0], ",", "")
	if digits == "" {
		return order.QuantityNotFound
	}
	return "quantity: " + digits
}

// matchRecipient maps the groups of the winning rule positionally onto
// recipient, contact 1 and contact 2.
func (p *Pipeline) matchRecipient(v views) clean.Parties {
	g := p.first(order.FieldRecipient, v)
	if g == nil {
		return clean.Parties{Recipient: order.RecipientNotFound}
	}
	var out clean.Parties
	slots := []*string{&out.Recipient, &out.Contact1, &out.Contact2}
	for i := 0; i < len(g) && i < len(slots); i++ {
		*slots[i] = g[i]
	}
	return out
}

func (p *Pipeline) matchAddress(v views, parties clean.Parties) string {
	g := p.first(order.FieldAddress, v)
	if g == nil {
		return order.AddressNotFound
	}
	return clean.Address(g[0], parties)
}

func (p *Pipeline) matchMemo(v views) string {
	g := p.first(order.FieldMemo, v)
	if g == nil {
		return order.MemoNotFound
	}
	return cleanMemo(g[0])
}

// memoNoise lists dashboard boilerplate that trails the memo line when the
// order view is copied whole.
var memoNoise = []string{
	"주문처리이력",
	"처리이력",
	"배송지 정보 변경",
	"배송메모 변경",
}

// memoUILabels are button captions; they are dropped only as whole words.
var memoUILabels = map[string]bool{
	"확인": true,
	"닫기": true,
	"복사": true,
	"변경": true,
}

var dateTimeRe = regexp.MustCompile(`\d{4}\s*[./-]\s*\d{1,2}\s*[./-]\s*\d{1,2}\.?|\d{1,2}:\d{2}(?::\d{2})?`)

// cleanMemo strips boilerplate and timestamps from a memo line. Results
// shorter than three runes or made of digits only are treated as absent.
func cleanMemo(s string) string {
	for _, n := range memoNoise {
		s = strings.ReplaceAll(s, n, " ")
	}
	s = dateTimeRe.ReplaceAllString(s, " ")
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if memoUILabels[w] {
			continue
		}
		kept = append(kept, w)
	}
	s = strings.Join(kept, " ")
	if utf8.RuneCountInString(s) < 3 || onlyDigits(s) {
		return order.MemoNotFound
	}
	return s
}

func onlyDigits(s string) bool {
	seen := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if !unicode.IsDigit(r) {
			return false
		}
		seen = true
	}
	return seen
}

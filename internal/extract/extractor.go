package extract

import (
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/orderextract/internal/assemble"
	"github.com/hyperifyio/orderextract/internal/cache"
	"github.com/hyperifyio/orderextract/internal/clean"
	"github.com/hyperifyio/orderextract/internal/normalize"
	"github.com/hyperifyio/orderextract/internal/order"
	"github.com/hyperifyio/orderextract/internal/validate"
)

// Extractor turns one pasted order block into a Record.
// Implementations must be deterministic and free of side effects.
type Extractor interface {
	Extract(raw string) order.Record
}

// Options configures a Pipeline.
type Options struct {
	// Normalize runs the normalizer before matching and re-normalizes each
	// extracted fragment before assembly.
	Normalize bool
}

// DefaultOptions returns Options with normalization enabled.
func DefaultOptions() Options {
	return Options{Normalize: true}
}

var defaultRules = MustCompile(DefaultRuleSet())

// Pipeline is the rule-driven Extractor. It holds no mutable state and may
// be shared between goroutines.
type Pipeline struct {
	rules *Rules
	opts  Options
}

var _ Extractor = (*Pipeline)(nil)

// New returns a Pipeline over rules. A nil rules uses the built-in table.
func New(rules *Rules, opts Options) *Pipeline {
	if rules == nil {
		rules = defaultRules
	}
	return &Pipeline{rules: rules, opts: opts}
}

// Extract runs normalize, match, cross-clean, validate and assemble over raw.
// It never fails: fields that cannot be extracted carry sentinels and the
// record's Empty flag reports when nothing survived assembly.
func (p *Pipeline) Extract(raw string) order.Record {
	memo := cache.NewMemo()
	v := views{flat: raw, lines: raw}
	if p.opts.Normalize {
		v.flat = memo.Do("text", raw, normalize.Text)
		v.lines = memo.Do("lines", raw, normalize.Lines)
	}

	var rec order.Record
	rec.Product = guard(order.FieldProduct, order.ExtractionError(order.FieldProduct), func() string {
		return p.matchProduct(v)
	})
	rec.Options = guard(order.FieldOptions, []string{order.ExtractionError(order.FieldOptions)}, func() []string {
		return p.matchOptions(v)
	})
	rec.Quantity = guard(order.FieldQuantity, order.ExtractionError(order.FieldQuantity), func() string {
		return p.matchQuantity(v)
	})
	parties := guard(order.FieldRecipient, clean.Parties{Recipient: order.ExtractionError(order.FieldRecipient)}, func() clean.Parties {
		return p.matchRecipient(v)
	})
	rec.Recipient, rec.Contact1, rec.Contact2 = parties.Recipient, parties.Contact1, parties.Contact2
	rec.Address = guard(order.FieldAddress, order.ExtractionError(order.FieldAddress), func() string {
		return p.matchAddress(v, parties)
	})
	rec.Memo = guard(order.FieldMemo, order.ExtractionError(order.FieldMemo), func() string {
		return p.matchMemo(v)
	})

	if p.opts.Normalize {
		refine(&rec, memo)
	}

	rec.Warnings = validate.Record(rec)
	summary, err := assemble.Join(rec)
	rec.Summary = summary
	rec.Empty = err != nil
	hits, misses := memo.Stats()
	log.Debug().Int("warnings", len(rec.Warnings)).Bool("empty", rec.Empty).Int("memo_hits", hits).Int("memo_misses", misses).Msg("extraction done")
	return rec
}

// refine re-normalizes extracted fragments; sentinels are left untouched.
// The address keeps its line breaks.
func refine(rec *order.Record, memo *cache.Memo) {
	text := func(s string) string {
		if !order.Present(s) {
			return s
		}
		return memo.Do("text", s, normalize.Text)
	}
	rec.Product = text(rec.Product)
	for i := range rec.Options {
		rec.Options[i] = text(rec.Options[i])
	}
	rec.Quantity = text(rec.Quantity)
	rec.Recipient = text(rec.Recipient)
	rec.Contact1 = text(rec.Contact1)
	rec.Contact2 = text(rec.Contact2)
	rec.Memo = text(rec.Memo)
	if order.Present(rec.Address) {
		rec.Address = memo.Do("lines", rec.Address, normalize.Lines)
	}
}

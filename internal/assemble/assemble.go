// Package assemble joins the surviving fields of an order into one
// copy-ready text block.
package assemble

import (
	"errors"
	"strings"

	"github.com/hyperifyio/orderextract/internal/order"
)

// ErrNothingExtracted is returned when every field was a sentinel or empty.
var ErrNothingExtracted = errors.New("no extractable information")

// Values lists the record's display values in output order: product,
// options, quantity, recipient, contact 1, contact 2, address, memo.
func Values(r order.Record) []string {
	out := make([]string, 0, 7+len(r.Options))
	out = append(out, r.Product)
	out = append(out, r.Options...)
	out = append(out, r.Quantity, r.Recipient, r.Contact1, r.Contact2, r.Address, r.Memo)
	return out
}

// Join drops sentinel and empty values and joins the rest with newlines.
// It returns ErrNothingExtracted instead of an empty string.
func Join(r order.Record) (string, error) {
	kept := make([]string, 0, 8)
	for _, v := range Values(r) {
		if !order.Present(v) {
			continue
		}
		kept = append(kept, strings.TrimSpace(v))
	}
	if len(kept) == 0 {
		return "", ErrNothingExtracted
	}
	return strings.Join(kept, "\n"), nil
}

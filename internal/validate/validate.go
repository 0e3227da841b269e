// Package validate runs naive format checks over an extracted order. Checks
// only observe the record; a clean result means the checks passed, not that
// the extracted content is correct.
package validate

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/orderextract/internal/order"
)

var phoneRe = regexp.MustCompile(`^\d{3}-\d{4}-\d{4}$`)

// PhoneShape reports whether s looks like a Korean mobile number,
// e.g. 010-1234-5678.
func PhoneShape(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// check inspects one aspect of a record and reports whether it failed.
type check struct {
	warning order.Warning
	failed  func(order.Record) bool
}

var checks = []check{
	{order.WarnProductMissing, func(r order.Record) bool {
		return !order.Present(r.Product)
	}},
	{order.WarnRecipientMissing, func(r order.Record) bool {
		return !order.Present(r.Recipient)
	}},
	// Contact 1 is only shape-checked when the recipient block matched;
	// otherwise the missing recipient already explains the gap.
	{order.WarnInvalidPhone, func(r order.Record) bool {
		if !order.Present(r.Recipient) && strings.TrimSpace(r.Contact1) == "" {
			return false
		}
		return !PhoneShape(r.Contact1)
	}},
	{order.WarnAddressMissing, func(r order.Record) bool {
		return !order.Present(r.Address)
	}},
}

// Record returns one warning per failed check, in a fixed order.
func Record(r order.Record) []order.Warning {
	var out []order.Warning
	for _, c := range checks {
		if c.failed(r) {
			out = append(out, c.warning)
		}
	}
	return out
}

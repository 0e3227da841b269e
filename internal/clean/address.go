// Package clean removes already-extracted recipient and contact text from an
// address candidate.
package clean

import (
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/orderextract/internal/order"
)

// MinAddressRunes is the length at or below which a cleaned address is
// treated as noise.
const MinAddressRunes = 5

// structuralLabels are removed verbatim after the per-order values.
// "배송지 정보" precedes its parts so the heading goes as one token.
var structuralLabels = []string{
	order.LabelAddressInfoBlock,
	order.LabelInformation,
	order.LabelRecipient,
	order.LabelContact1,
	order.LabelContact2,
	order.LabelAddress,
}

// Parties carries the values already extracted for the recipient block.
type Parties struct {
	Recipient string
	Contact1  string
	Contact2  string
}

// Address strips the recipient name, contact numbers and structural labels
// out of candidate using exact substring removal, repeated until the
// candidate no longer changes. Values that are empty or
// sentinels are skipped. Horizontal whitespace is flattened; line breaks
// between non-empty lines are kept. A result of MinAddressRunes runes or
// fewer yields order.AddressInsufficient. A sentinel candidate is returned
// unchanged.
func Address(candidate string, p Parties) string {
	if order.IsSentinel(candidate) {
		return candidate
	}
	values := make([]string, 0, 3)
	for _, v := range []string{p.Recipient, p.Contact1, p.Contact2} {
		if v = strings.TrimSpace(v); order.Present(v) {
			values = append(values, v)
		}
	}
	// A removal can splice two fragments into a new occurrence, so repeat
	// until nothing changes. Every pass either shortens s or stops.
	s := candidate
	for {
		prev := s
		for _, v := range values {
			s = strings.ReplaceAll(s, v, "")
		}
		for _, label := range structuralLabels {
			s = strings.ReplaceAll(s, label, "")
		}
		if s == prev {
			break
		}
	}
	s = flatten(s)
	if utf8.RuneCountInString(strings.ReplaceAll(s, "\n", "")) <= MinAddressRunes {
		return order.AddressInsufficient
	}
	return s
}

func flatten(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if f := strings.Join(strings.Fields(line), " "); f != "" {
			out = append(out, f)
		}
	}
	return strings.Join(out, "\n")
}

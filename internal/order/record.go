package order

// Warning is an advisory note about one field. Warnings never block output.
type Warning string

const (
	WarnProductMissing   Warning = "product name not found"
	WarnRecipientMissing Warning = "recipient name not found"
	WarnInvalidPhone     Warning = "invalid phone number"
	WarnAddressMissing   Warning = "delivery address not found"
)

// Record is the result of one extraction call. Every slot holds either the
// extracted content or a sentinel; Contact1 and Contact2 are empty when the
// recipient block was not found, and Contact2 is empty when the order lists
// no secondary number.
type Record struct {
	Product   string    `json:"product"`
	Options   []string  `json:"options"`
	Quantity  string    `json:"quantity"`
	Recipient string    `json:"recipient"`
	Contact1  string    `json:"contact1"`
	Contact2  string    `json:"contact2"`
	Address   string    `json:"address"`
	Memo      string    `json:"memo"`
	Warnings  []Warning `json:"warnings"`
	// Summary is the copy-ready text block produced by the assembler.
	Summary string `json:"summary"`
	// Empty is true when no field survived assembly.
	Empty bool `json:"empty"`
}

// WarningStrings returns the warnings as plain strings in order.
func (r Record) WarningStrings() []string {
	out := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, string(w))
	}
	return out
}

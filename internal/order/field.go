package order

import "strings"

// Label vocabulary of the seller dashboard order view. Labels are matched
// verbatim after normalization.
const (
	LabelProduct          = "상품명"
	LabelOrderStatus      = "상품주문상태"
	LabelOption           = "옵션"
	LabelQuantity         = "주문수량"
	LabelRecipient        = "수취인명"
	LabelContact1         = "연락처1"
	LabelContact2         = "연락처2"
	LabelAddress          = "배송지"
	LabelMemo             = "배송메모"
	LabelInformation      = "정보"
	LabelAddressInfoBlock = "배송지 정보"
)

// Field names a slot of a Record. The names double as keys in rule files.
type Field string

const (
	FieldProduct   Field = "product"
	FieldOptions   Field = "options"
	FieldQuantity  Field = "quantity"
	FieldRecipient Field = "recipient"
	FieldAddress   Field = "address"
	FieldMemo      Field = "memo"
)

// Fields lists every matcher-backed field in assembly order.
var Fields = []Field{FieldProduct, FieldOptions, FieldQuantity, FieldRecipient, FieldAddress, FieldMemo}

// Sentinel values stand in for a field that could not be extracted.
const (
	ProductNotFound     = "product name not found"
	OptionNotFound      = "option not found"
	QuantityNotFound    = "quantity not found"
	RecipientNotFound   = "recipient name not found"
	AddressNotFound     = "delivery address not found"
	AddressInsufficient = "delivery information insufficient"
	MemoNotFound        = "delivery memo not found"

	errorSuffix = " extraction error"
)

var sentinels = []string{
	ProductNotFound,
	OptionNotFound,
	QuantityNotFound,
	RecipientNotFound,
	AddressNotFound,
	AddressInsufficient,
	MemoNotFound,
	errorSuffix,
}

// NotFound returns the not-found sentinel for f.
func NotFound(f Field) string {
	switch f {
	case FieldProduct:
		return ProductNotFound
	case FieldOptions:
		return OptionNotFound
	case FieldQuantity:
		return QuantityNotFound
	case FieldRecipient:
		return RecipientNotFound
	case FieldAddress:
		return AddressNotFound
	case FieldMemo:
		return MemoNotFound
	}
	return string(f) + " not found"
}

// ExtractionError returns the sentinel used when matching f failed unexpectedly.
func ExtractionError(f Field) string {
	return string(f) + errorSuffix
}

// IsSentinel reports whether v equals or contains a known sentinel.
func IsSentinel(v string) bool {
	for _, s := range sentinels {
		if strings.Contains(v, s) {
			return true
		}
	}
	return false
}

// Present reports whether v carries real content: non-blank and not a sentinel.
func Present(v string) bool {
	return strings.TrimSpace(v) != "" && !IsSentinel(v)
}

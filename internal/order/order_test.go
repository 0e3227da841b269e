package order

import "testing"

func TestIsSentinel(t *testing.T) {
	for _, f := range Fields {
		if !IsSentinel(NotFound(f)) {
			t.Fatalf("NotFound(%s) not recognized", f)
		}
		if !IsSentinel(ExtractionError(f)) {
			t.Fatalf("ExtractionError(%s) not recognized", f)
		}
	}
	if !IsSentinel(AddressInsufficient) {
		t.Fatalf("insufficient sentinel not recognized")
	}
	// Containment counts, matching how downstream stages filter.
	if !IsSentinel("[" + OptionNotFound + "]") {
		t.Fatalf("wrapped sentinel not recognized")
	}
	if IsSentinel("서울특별시 강남구 테헤란로 123") {
		t.Fatalf("address flagged as sentinel")
	}
}

func TestPresent(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"   \n", false},
		{RecipientNotFound, false},
		{"memo extraction error", false},
		{"김철수", true},
	}
	for _, tc := range cases {
		if got := Present(tc.in); got != tc.want {
			t.Fatalf("Present(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWarningStrings(t *testing.T) {
	r := Record{Warnings: []Warning{WarnProductMissing, WarnInvalidPhone}}
	got := r.WarningStrings()
	if len(got) != 2 || got[0] != "product name not found" || got[1] != "invalid phone number" {
		t.Fatalf("unexpected warnings: %q", got)
	}
	if len((Record{}).WarningStrings()) != 0 {
		t.Fatalf("expected no warnings")
	}
}

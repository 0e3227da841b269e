package extract

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/hyperifyio/orderextract/internal/order"
)

const scenarioOne = "상품명 RED MUG 상품주문상태 결제완료 수취인명 김철수 연락처1 010-1234-5678 연락처2 배송지 서울시 강남구 테헤란로 1 배송메모 문앞에 놔주세요"

func TestExtract_ScenarioSingleLine(t *testing.T) {
	rec := New(nil, DefaultOptions()).Extract(scenarioOne)
	if rec.Product != "RED MUG" {
		t.Fatalf("product=%q", rec.Product)
	}
	if rec.Recipient != "김철수" {
		t.Fatalf("recipient=%q", rec.Recipient)
	}
	if rec.Contact1 != "010-1234-5678" {
		t.Fatalf("contact1=%q", rec.Contact1)
	}
	if rec.Contact2 != "" {
		t.Fatalf("contact2=%q, want empty", rec.Contact2)
	}
	if !strings.Contains(rec.Address, "서울시 강남구 테헤란로 1") {
		t.Fatalf("address=%q", rec.Address)
	}
	for _, leftover := range []string{"김철수", "010-1234-5678", order.LabelRecipient, order.LabelContact1, order.LabelContact2, order.LabelAddress, order.LabelMemo} {
		if strings.Contains(rec.Address, leftover) {
			t.Fatalf("address %q still contains %q", rec.Address, leftover)
		}
	}
	if rec.Memo != "문앞에 놔주세요" {
		t.Fatalf("memo=%q", rec.Memo)
	}
	for _, w := range rec.Warnings {
		if w == order.WarnInvalidPhone {
			t.Fatalf("unexpected phone warning: %v", rec.Warnings)
		}
	}
	if rec.Empty {
		t.Fatalf("record unexpectedly empty")
	}
}

func TestExtract_MissingContactLabel(t *testing.T) {
	in := strings.Replace(scenarioOne, "연락처1 ", "", 1)
	rec := New(nil, DefaultOptions()).Extract(in)
	if rec.Recipient != order.RecipientNotFound {
		t.Fatalf("recipient=%q, want sentinel", rec.Recipient)
	}
	var recipientWarnings int
	for _, w := range rec.Warnings {
		if w == order.WarnRecipientMissing {
			recipientWarnings++
		}
	}
	if recipientWarnings != 1 || len(rec.Warnings) != 1 {
		t.Fatalf("expected exactly one recipient warning, got %v", rec.Warnings)
	}
	if strings.Contains(rec.Summary, order.RecipientNotFound) {
		t.Fatalf("summary includes recipient sentinel: %q", rec.Summary)
	}
	if !strings.Contains(rec.Summary, "RED MUG") || !strings.Contains(rec.Summary, "서울시 강남구 테헤란로 1") {
		t.Fatalf("summary lost surviving fields: %q", rec.Summary)
	}
}

func TestExtract_QuantityStripsCommas(t *testing.T) {
	rec := New(nil, DefaultOptions()).Extract("주문수량 1,234")
	if rec.Quantity != "quantity: 1234" {
		t.Fatalf("quantity=%q", rec.Quantity)
	}
}

func TestExtract_NoRecipientLabelNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"연락처1 010-1234-5678 연락처2 010-0000-0000 배송지 서울",
		"상품명 RED MUG 상품주문상태 결제완료",
		"\\n\\n\t\u200b",
	}
	p := New(nil, DefaultOptions())
	for _, in := range inputs {
		rec := p.Extract(in)
		if rec.Recipient != order.RecipientNotFound {
			t.Fatalf("input %q: recipient=%q", in, rec.Recipient)
		}
		if rec.Contact1 != "" || rec.Contact2 != "" {
			t.Fatalf("input %q: contacts=%q/%q, want empty", in, rec.Contact1, rec.Contact2)
		}
	}
}

func TestExtract_DashboardCopy(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("testdata", "dashboard.txt"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	rec := New(nil, DefaultOptions()).Extract(string(b))
	if rec.Product != "RED MUG 350ml" {
		t.Fatalf("product=%q", rec.Product)
	}
	wantOptions := []string{"색상: 빨강 / 사이즈: L", "색상: 파랑 / 사이즈: M"}
	if !reflect.DeepEqual(rec.Options, wantOptions) {
		t.Fatalf("options=%q", rec.Options)
	}
	if rec.Quantity != "quantity: 2" {
		t.Fatalf("quantity=%q", rec.Quantity)
	}
	if rec.Recipient != "김철수" || rec.Contact1 != "010-1234-5678" || rec.Contact2 != "010-9876-5432" {
		t.Fatalf("recipient block=%q/%q/%q", rec.Recipient, rec.Contact1, rec.Contact2)
	}
	if rec.Address != "서울특별시 강남구 테헤란로 123 (역삼동)\n4층 401호" {
		t.Fatalf("address=%q", rec.Address)
	}
	if rec.Memo != "부재시 경비실에 맡겨주세요" {
		t.Fatalf("memo=%q", rec.Memo)
	}
	if len(rec.Warnings) != 0 {
		t.Fatalf("warnings=%v", rec.Warnings)
	}
	want := strings.Join([]string{
		"RED MUG 350ml",
		"색상: 빨강 / 사이즈: L",
		"색상: 파랑 / 사이즈: M",
		"quantity: 2",
		"김철수",
		"010-1234-5678",
		"010-9876-5432",
		"서울특별시 강남구 테헤란로 123 (역삼동)",
		"4층 401호",
		"부재시 경비실에 맡겨주세요",
	}, "\n")
	if rec.Summary != want {
		t.Fatalf("summary=\n%s\nwant\n%s", rec.Summary, want)
	}
}

func TestExtract_AddressFallbackOnlyWhenStrictFails(t *testing.T) {
	p := New(nil, DefaultOptions())
	strict := p.Extract("배송지 서울시 마포구 (합정동) / 101호 배송메모 없음없음")
	if !strings.Contains(strict.Address, "/ 101호") {
		t.Fatalf("strict variant should win, address=%q", strict.Address)
	}
	fallback := p.Extract("배송지 서울시 마포구 월드컵로 10: 공동현관 비번 1234")
	if fallback.Address != "서울시 마포구 월드컵로 10" {
		t.Fatalf("fallback address=%q", fallback.Address)
	}
	missing := p.Extract("상품명 RED MUG 상품주문상태")
	if missing.Address != order.AddressNotFound {
		t.Fatalf("address=%q, want sentinel", missing.Address)
	}
}

func TestExtract_ProductFallbackRule(t *testing.T) {
	rec := New(nil, DefaultOptions()).Extract("상품명 BLUE CUP 옵션 색상: 파랑 주문수량 3")
	if rec.Product != "BLUE CUP" {
		t.Fatalf("product=%q", rec.Product)
	}
	if len(rec.Options) != 1 || rec.Options[0] != "색상: 파랑" {
		t.Fatalf("options=%q", rec.Options)
	}
}

func TestExtract_NothingExtracted(t *testing.T) {
	rec := New(nil, DefaultOptions()).Extract("아무 라벨도 없는 텍스트")
	if !rec.Empty || rec.Summary != "" {
		t.Fatalf("expected empty record, got empty=%v summary=%q", rec.Empty, rec.Summary)
	}
	if rec.Product != order.ProductNotFound || rec.Options[0] != order.OptionNotFound || rec.Quantity != order.QuantityNotFound {
		t.Fatalf("expected sentinels in every slot: %+v", rec)
	}
}

func TestExtract_NormalizeDisabled(t *testing.T) {
	in := "상품명 RED\u200bMUG 상품주문상태"
	on := New(nil, Options{Normalize: true}).Extract(in)
	off := New(nil, Options{Normalize: false}).Extract(in)
	if on.Product != "REDMUG" {
		t.Fatalf("normalized product=%q", on.Product)
	}
	if off.Product != "RED\u200bMUG" {
		t.Fatalf("raw product=%q", off.Product)
	}
}

func TestExtract_PanicIsolatedToOneField(t *testing.T) {
	rules := MustCompile(DefaultRuleSet())
	rules.byField[order.FieldMemo] = []compiledRule{{Rule: Rule{Name: "broken", Kind: KindLine}}}
	rec := New(rules, DefaultOptions()).Extract(scenarioOne)
	if rec.Memo != order.ExtractionError(order.FieldMemo) {
		t.Fatalf("memo=%q, want extraction error sentinel", rec.Memo)
	}
	if rec.Product != "RED MUG" || rec.Recipient != "김철수" {
		t.Fatalf("failure leaked into other fields: %+v", rec)
	}
	if strings.Contains(rec.Summary, "extraction error") {
		t.Fatalf("summary includes error sentinel: %q", rec.Summary)
	}
}

func TestExtract_RoundTripIdentical(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("testdata", "dashboard.txt"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	p := New(nil, DefaultOptions())
	first, _ := json.Marshal(p.Extract(string(b)))
	second, _ := json.Marshal(p.Extract(string(b)))
	if !bytes.Equal(first, second) {
		t.Fatalf("records differ:\n%s\n%s", first, second)
	}
}

func TestExtract_ConcurrentCallsAgree(t *testing.T) {
	p := New(nil, DefaultOptions())
	want := p.Extract(scenarioOne)
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := p.Extract(scenarioOne); !reflect.DeepEqual(got, want) {
				errs <- got.Summary
			}
		}()
	}
	wg.Wait()
	close(errs)
	for s := range errs {
		t.Fatalf("concurrent result differs: %q", s)
	}
}

func TestGuard_RecoversPanic(t *testing.T) {
	got := guard(order.FieldProduct, "fallback", func() string { panic("boom") })
	if got != "fallback" {
		t.Fatalf("guard=%q", got)
	}
}

func TestCleanMemo(t *testing.T) {
	cases := map[string]string{
		"문앞에 놔주세요 닫기":               "문앞에 놔주세요",
		"부재시 연락 2024.01.02 13:45:10": "부재시 연락",
		"12345":                     order.MemoNotFound,
		"ok":                        order.MemoNotFound,
		"2024.01.02 13:45":          order.MemoNotFound,
		"주문처리이력 확인 닫기":              order.MemoNotFound,
	}
	for in, want := range cases {
		if got := cleanMemo(in); got != want {
			t.Fatalf("cleanMemo(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestExtract_ColonAfterLabels(t *testing.T) {
	in := "상품명: RED MUG 상품주문상태: 결제완료 주문수량: 3 수취인명: 김철수 연락처1: 010-1234-5678 " +
		"배송지: 서울시 마포구 월드컵로 10 배송메모: 경비실에 맡겨주세요"
	rec := New(nil, DefaultOptions()).Extract(in)
	if rec.Product != "RED MUG" {
		t.Fatalf("product=%q", rec.Product)
	}
	if rec.Quantity != "quantity: 3" {
		t.Fatalf("quantity=%q", rec.Quantity)
	}
	if rec.Recipient != "김철수" || rec.Contact1 != "010-1234-5678" {
		t.Fatalf("recipient=%q contact1=%q", rec.Recipient, rec.Contact1)
	}
	if rec.Address != "서울시 마포구 월드컵로 10" {
		t.Fatalf("address=%q", rec.Address)
	}
	if rec.Memo != "경비실에 맡겨주세요" {
		t.Fatalf("memo=%q", rec.Memo)
	}
}

func TestExtract_ColonAfterAddressFallback(t *testing.T) {
	rec := New(nil, DefaultOptions()).Extract("배송지: 서울시 마포구 월드컵로 10")
	if rec.Address != "서울시 마포구 월드컵로 10" {
		t.Fatalf("address=%q", rec.Address)
	}
}

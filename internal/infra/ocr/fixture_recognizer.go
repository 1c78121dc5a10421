package ocr

import (
	"context"
	"log/slog"

	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/service"
)

// fixtureReceiptText is the canned recognition result the fixture recognizer
// answers with. It names a demonstration store, so the extractor resolves it
// to that store's pre-baked field set.
const fixtureReceiptText = `= 슈니만두
서울 노원구 동일로 1413 6 4층, 5층
전화: 02-951-8292
거래일시: 2025-08-25 12:31:41
합계: 12,000원`

// fixtureRecognizer stands in for a cloud OCR engine when no provider is
// configured, so the whole verification flow runs offline against the
// bundled backend.
type fixtureRecognizer struct {
	logger *slog.Logger
}

func newFixtureRecognizer(logger *slog.Logger) service.TextRecognizer {
	return &fixtureRecognizer{logger: logger}
}

// Recognize answers every non-empty image with the canned receipt text.
func (r *fixtureRecognizer) Recognize(ctx context.Context, imageData []byte) (string, error) {
	if len(imageData) == 0 {
		return "", domainerrors.ErrRecognitionFailed
	}

	r.logger.DebugContext(ctx, "Answering with fixture receipt text",
		slog.Int("imageBytes", len(imageData)))

	return fixtureReceiptText, nil
}

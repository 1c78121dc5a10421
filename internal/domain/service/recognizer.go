package service

import (
	"context"

	"gachigage/internal/domain/entity"
)

// TextRecognizer extracts raw text from a receipt image. Implementations wrap
// an external OCR engine; the heuristic field extraction on top of the raw
// text is pure and lives outside this interface.
type TextRecognizer interface {
	// Recognize returns the recognized text of the image.
	Recognize(ctx context.Context, image []byte) (string, error)
}

// FieldExtractor derives the structured receipt fields from recognized text.
// Fields it cannot resolve are returned empty; the caller fills placeholders.
type FieldExtractor interface {
	ExtractFields(rawText string) entity.ReceiptFields
}

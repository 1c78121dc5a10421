package usecase

import (
	"context"

	"gachigage/internal/domain/entity"
)

// ReceiptUsecase defines the interface for the per-mission receipt
// verification flow.
type ReceiptUsecase interface {
	// AttachImage starts (or restarts) the flow with a captured receipt photo.
	AttachImage(ctx context.Context, missionID int64, image []byte) (*entity.ReceiptDraft, error)

	// Process runs OCR and field extraction on the attached image.
	Process(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error)

	// Edit applies user corrections to the extracted fields.
	Edit(ctx context.Context, missionID int64, fields entity.ReceiptFields) (*entity.ReceiptDraft, error)

	// FinishEditing returns from the edit screen to review.
	FinishEditing(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error)

	// ConfirmAsIs accepts the extracted fields without corrections, enabling
	// submission on the non-edit path.
	ConfirmAsIs(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error)

	// Submit sends the fields upstream. It fails with ErrReceiptUnmodified
	// until the user has either edited the fields or confirmed them as-is.
	Submit(ctx context.Context, missionID int64) error

	// Draft returns the current draft for a mission.
	Draft(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error)

	// Cancel drops the draft for a mission.
	Cancel(ctx context.Context, missionID int64) error
}

package repository

import (
	"context"
	"errors"

	"gachigage/internal/domain/entity"
)

// ErrReceiptDraftNotFound is returned when a mission has no verification draft.
var ErrReceiptDraftNotFound = errors.New("receipt draft not found")

// ReceiptDraftRepository persists per-mission receipt verification drafts so an
// interrupted flow resumes where it left off.
type ReceiptDraftRepository interface {
	// FindByMission retrieves the draft for a mission.
	FindByMission(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error)

	// Save stores the draft, replacing any previous one for the mission.
	Save(ctx context.Context, draft *entity.ReceiptDraft) error

	// Delete removes the draft for a mission.
	Delete(ctx context.Context, missionID int64) error
}

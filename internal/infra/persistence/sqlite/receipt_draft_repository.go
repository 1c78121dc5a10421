package sqlite

import (
	"context"

	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/repository"
	"gachigage/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// receiptDraftRepository implements the repository.ReceiptDraftRepository interface using GORM.
type receiptDraftRepository struct {
	db *gorm.DB
}

// NewReceiptDraftRepository is the constructor for receiptDraftRepository.
func NewReceiptDraftRepository(db *gorm.DB) repository.ReceiptDraftRepository {
	return &receiptDraftRepository{db: db}
}

// FindByMission retrieves the draft for a mission.
func (repo *receiptDraftRepository) FindByMission(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error) {
	var draftM model.ReceiptDraftModel
	err := repo.db.WithContext(ctx).First(&draftM, "mission_id = ?", missionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReceiptDraftNotFound
		}

		return nil, errors.Wrap(err, "failed to find receipt draft")
	}

	return toReceiptDraftDomain(&draftM), nil
}

// Save stores the draft, replacing any previous one for the mission.
func (repo *receiptDraftRepository) Save(ctx context.Context, draft *entity.ReceiptDraft) error {
	draftM := fromReceiptDraftDomain(draft)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(draftM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save receipt draft")
	}

	return nil
}

// Delete removes the draft for a mission.
func (repo *receiptDraftRepository) Delete(ctx context.Context, missionID int64) error {
	err := repo.db.WithContext(ctx).Delete(&model.ReceiptDraftModel{}, "mission_id = ?", missionID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete receipt draft")
	}

	return nil
}

// --- Mapper Functions ---

// toReceiptDraftDomain converts a GORM ReceiptDraftModel to a domain ReceiptDraft entity.
func toReceiptDraftDomain(data *model.ReceiptDraftModel) *entity.ReceiptDraft {
	if data == nil {
		return nil
	}

	return &entity.ReceiptDraft{
		MissionID: data.MissionID,
		State:     entity.ReceiptState(data.State),
		Image:     data.Image,
		RawText:   data.RawText,
		Fields: entity.ReceiptFields{
			StoreName:  data.StoreName,
			Address:    data.Address,
			Phone:      data.Phone,
			VisitedAt:  data.VisitedAt,
			TotalPrice: data.TotalPrice,
		},
		Modified:  data.Modified,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromReceiptDraftDomain converts a domain ReceiptDraft entity to a GORM ReceiptDraftModel.
func fromReceiptDraftDomain(data *entity.ReceiptDraft) *model.ReceiptDraftModel {
	if data == nil {
		return nil
	}

	return &model.ReceiptDraftModel{
		MissionID:  data.MissionID,
		State:      string(data.State),
		Image:      data.Image,
		RawText:    data.RawText,
		StoreName:  data.Fields.StoreName,
		Address:    data.Fields.Address,
		Phone:      data.Fields.Phone,
		VisitedAt:  data.Fields.VisitedAt,
		TotalPrice: data.Fields.TotalPrice,
		Modified:   data.Modified,
	}
}

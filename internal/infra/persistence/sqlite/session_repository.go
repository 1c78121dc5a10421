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

// sessionRowID keys the single persisted session row.
const sessionRowID = 1

// sessionRepository implements the repository.SessionRepository interface using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Find retrieves the persisted session, if any.
func (repo *sessionRepository) Find(ctx context.Context) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).First(&sessionM, sessionRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	return &entity.Session{
		UserID:       sessionM.UserID,
		AccessToken:  sessionM.AccessToken,
		RefreshToken: sessionM.RefreshToken,
		UpdatedAt:    sessionM.UpdatedAt,
	}, nil
}

// Save stores the session, replacing any previous one.
func (repo *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	sessionM := model.SessionModel{
		ID:           sessionRowID,
		UserID:       session.UserID,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&sessionM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save session")
	}

	return nil
}

// Clear removes the persisted session.
func (repo *sessionRepository) Clear(ctx context.Context) error {
	err := repo.db.WithContext(ctx).Delete(&model.SessionModel{}, sessionRowID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear session")
	}

	return nil
}

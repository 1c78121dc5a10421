package sqlite

import (
	"context"

	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/repository"
	"gachigage/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const couponReadKey = "coupon_read"

// preferenceRepository implements the repository.PreferenceRepository interface using GORM.
type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository is the constructor for preferenceRepository.
func NewPreferenceRepository(db *gorm.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

// CouponRead reports whether the coupon wallet has been opened. A missing
// flag means unread.
func (repo *preferenceRepository) CouponRead(ctx context.Context) (bool, error) {
	var prefM model.PreferenceModel
	err := repo.db.WithContext(ctx).First(&prefM, "key = ?", couponReadKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to read coupon flag")
	}

	return prefM.Value == "true", nil
}

// SetCouponRead stores the coupon-wallet read marker.
func (repo *preferenceRepository) SetCouponRead(ctx context.Context, read bool) error {
	value := "false"
	if read {
		value = "true"
	}

	prefM := model.PreferenceModel{Key: couponReadKey, Value: value}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&prefM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save coupon flag")
	}

	return nil
}

// Package sqlite contains the concrete implementation of the local
// persistence layer using GORM and SQLite. The database file plays the role
// the browser's localStorage played for the web client, plus the fixture
// tables of the bundled stub backend.
package sqlite

import (
	"context"
	"log/slog"

	"gachigage/config"
	"gachigage/internal/domain/lifecycle"
	"gachigage/internal/errors"
	"gachigage/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const defaultPath = "gachigage.db"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the SQLite client and migrates the local tables.
func New(params Params) (*gorm.DB, error) {
	path := params.Config.SQLite.Path
	if path == "" {
		path = defaultPath
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormSlogLogger(params.Logger, params.Config),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	migrations := []any{
		&model.SessionModel{},
		&model.RecommendationCacheModel{},
		&model.ReceiptDraftModel{},
		&model.PreferenceModel{},
	}
	if params.Config.Stub != nil && params.Config.Stub.Enabled {
		migrations = append(migrations,
			&model.StubUserModel{},
			&model.StubStoreModel{},
			&model.StubRecommendationModel{},
			&model.StubMissionModel{},
			&model.StubVerificationModel{},
			&model.StubReviewModel{},
			&model.StubCouponModel{},
		)
	}
	if err := db.AutoMigrate(migrations...); err != nil {
		return nil, errors.Wrap(err, "failed to migrate sqlite schema")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sqlite sql.DB")
	}

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(sqlDB.PingContext(ctx), "failed to ping sqlite")
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}

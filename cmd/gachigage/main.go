package main

import (
	"context"
	"log/slog"
	"os"

	"gachigage/config"
	"gachigage/internal/delivery"
	"gachigage/internal/delivery/http"
	httpmiddleware "gachigage/internal/delivery/http/middleware"
	"gachigage/internal/delivery/http/router/handler"
	sharedmiddleware "gachigage/internal/delivery/middleware"
	"gachigage/internal/delivery/stub"
	"gachigage/internal/domain/service"
	"gachigage/internal/infra/auth"
	logs "gachigage/internal/infra/log"
	"gachigage/internal/infra/ocr"
	"gachigage/internal/infra/persistence/sqlite"
	"gachigage/internal/infra/qrcode"
	"gachigage/internal/infra/upstream"
	"gachigage/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		sqlite.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewSessionRepository,
			sqlite.NewRecommendationCacheRepository,
			sqlite.NewReceiptDraftRepository,
			sqlite.NewPreferenceRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			upstream.NewClient,
			ocr.NewTextRecognizer,
			ocr.NewFieldExtractor,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewRecommendationService,
			impl.NewMissionService,
			impl.NewReceiptService,
			impl.NewReviewService,
			impl.NewProfileService,
			impl.NewCouponService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			sharedmiddleware.NewRequestIDMiddleware,
			sharedmiddleware.NewLoggerMiddleware,
			httpmiddleware.NewErrorMiddleware,
			httpmiddleware.NewSessionMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewRecommendationHandler,
			handler.NewMissionHandler,
			handler.NewReceiptHandler,
			handler.NewReviewHandler,
			handler.NewProfileHandler,
			handler.NewCouponHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				stub.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

package impl

import (
	"context"
	"log/slog"

	deliverycontext "gachigage/internal/delivery/context"
	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/repository"
	"gachigage/internal/domain/service"
	"gachigage/internal/usecase"

	"github.com/pkg/errors"
)

// receiptService implements the ReceiptUsecase interface. Drafts are persisted
// per mission so a half-finished verification survives a restart.
type receiptService struct {
	gateway    service.BackendGateway
	recognizer service.TextRecognizer
	extractor  service.FieldExtractor
	drafts     repository.ReceiptDraftRepository
	logger     *slog.Logger
}

// NewReceiptService is the constructor for receiptService.
func NewReceiptService(
	gateway service.BackendGateway,
	recognizer service.TextRecognizer,
	extractor service.FieldExtractor,
	drafts repository.ReceiptDraftRepository,
	logger *slog.Logger,
) usecase.ReceiptUsecase {
	return &receiptService{
		gateway:    gateway,
		recognizer: recognizer,
		extractor:  extractor,
		drafts:     drafts,
		logger:     logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *receiptService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AttachImage starts (or restarts) the flow with a captured receipt photo.
func (srv *receiptService) AttachImage(ctx context.Context, missionID int64, image []byte) (*entity.ReceiptDraft, error) {
	draft, err := srv.drafts.FindByMission(ctx, missionID)
	if err != nil {
		if !errors.Is(err, repository.ErrReceiptDraftNotFound) {
			return nil, errors.Wrap(err, "failed to load receipt draft")
		}
		draft = entity.NewReceiptDraft(missionID)
	}

	if err := draft.AttachImage(image); err != nil {
		return nil, err
	}
	if err := srv.drafts.Save(ctx, draft); err != nil {
		return nil, errors.Wrap(err, "failed to persist receipt draft")
	}

	return draft, nil
}

// Process runs OCR and field extraction on the attached image.
func (srv *receiptService) Process(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error) {
	draft, err := srv.loadDraft(ctx, missionID)
	if err != nil {
		return nil, err
	}

	if err := draft.BeginProcessing(); err != nil {
		return nil, err
	}
	if err := srv.drafts.Save(ctx, draft); err != nil {
		return nil, errors.Wrap(err, "failed to persist receipt draft")
	}

	rawText, err := srv.recognizer.Recognize(ctx, draft.Image)
	if err != nil {
		// Recognition failure aborts processing; the draft returns to the
		// image-selected state so the user can retake the photo.
		draft.State = entity.ReceiptImageSelected
		if saveErr := srv.drafts.Save(ctx, draft); saveErr != nil {
			srv.log(ctx).Error("Failed to reset receipt draft", slog.Any("error", saveErr))
		}
		srv.log(ctx).Warn("Receipt recognition failed", slog.Int64("mission_id", missionID), slog.Any("error", err))

		if errors.Is(err, domainerrors.ErrRecognitionFailed) {
			return nil, err
		}

		return nil, domainerrors.ErrRecognitionFailed.WithDetails(err.Error())
	}

	fields := srv.extractor.ExtractFields(rawText)
	if err := draft.FinishProcessing(rawText, fields); err != nil {
		return nil, err
	}
	if err := srv.drafts.Save(ctx, draft); err != nil {
		return nil, errors.Wrap(err, "failed to persist receipt draft")
	}
	srv.log(ctx).Info("Receipt processed", slog.Int64("mission_id", missionID))

	return draft, nil
}

// Edit applies user corrections to the extracted fields.
func (srv *receiptService) Edit(ctx context.Context, missionID int64, fields entity.ReceiptFields) (*entity.ReceiptDraft, error) {
	draft, err := srv.loadDraft(ctx, missionID)
	if err != nil {
		return nil, err
	}

	if err := draft.Edit(fields); err != nil {
		return nil, err
	}
	if err := srv.drafts.Save(ctx, draft); err != nil {
		return nil, errors.Wrap(err, "failed to persist receipt draft")
	}

	return draft, nil
}

// FinishEditing returns from the edit screen to review.
func (srv *receiptService) FinishEditing(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error) {
	draft, err := srv.loadDraft(ctx, missionID)
	if err != nil {
		return nil, err
	}

	if err := draft.FinishEditing(); err != nil {
		return nil, err
	}
	if err := srv.drafts.Save(ctx, draft); err != nil {
		return nil, errors.Wrap(err, "failed to persist receipt draft")
	}

	return draft, nil
}

// ConfirmAsIs accepts the extracted fields without corrections.
func (srv *receiptService) ConfirmAsIs(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error) {
	draft, err := srv.loadDraft(ctx, missionID)
	if err != nil {
		return nil, err
	}

	if err := draft.ConfirmAsIs(); err != nil {
		return nil, err
	}
	if err := srv.drafts.Save(ctx, draft); err != nil {
		return nil, errors.Wrap(err, "failed to persist receipt draft")
	}

	return draft, nil
}

// Submit sends the vouched-for fields upstream, then drops the draft.
func (srv *receiptService) Submit(ctx context.Context, missionID int64) error {
	draft, err := srv.loadDraft(ctx, missionID)
	if err != nil {
		return err
	}

	if err := draft.Submittable(); err != nil {
		return err
	}

	if err := srv.gateway.VerifyReceipt(ctx, missionID, draft.Fields); err != nil {
		srv.log(ctx).Warn("Receipt verification rejected", slog.Int64("mission_id", missionID), slog.Any("error", err))

		return errors.Wrap(err, "failed to verify receipt")
	}

	if err := draft.MarkSubmitted(); err != nil {
		return err
	}
	if err := srv.drafts.Delete(ctx, missionID); err != nil {
		return errors.Wrap(err, "failed to drop receipt draft")
	}
	srv.log(ctx).Info("Receipt verified", slog.Int64("mission_id", missionID))

	return nil
}

// Draft returns the current draft for a mission.
func (srv *receiptService) Draft(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error) {
	return srv.loadDraft(ctx, missionID)
}

// Cancel drops the draft for a mission.
func (srv *receiptService) Cancel(ctx context.Context, missionID int64) error {
	if err := srv.drafts.Delete(ctx, missionID); err != nil {
		return errors.Wrap(err, "failed to drop receipt draft")
	}

	return nil
}

func (srv *receiptService) loadDraft(ctx context.Context, missionID int64) (*entity.ReceiptDraft, error) {
	draft, err := srv.drafts.FindByMission(ctx, missionID)
	if err != nil {
		if errors.Is(err, repository.ErrReceiptDraftNotFound) {
			return nil, domainerrors.ErrReceiptStateInvalid.WithDetails("no verification in progress")
		}

		return nil, errors.Wrap(err, "failed to load receipt draft")
	}

	return draft, nil
}

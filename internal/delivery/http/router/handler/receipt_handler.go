package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"gachigage/internal/delivery/http/response"
	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReceiptHandler holds dependencies for the receipt verification flow.
type ReceiptHandler struct {
	uc     usecase.ReceiptUsecase
	logger *slog.Logger
}

// NewReceiptHandler is the constructor for ReceiptHandler, injected by Fx.
func NewReceiptHandler(uc usecase.ReceiptUsecase, logger *slog.Logger) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, logger: logger}
}

type receiptFieldsPayload struct {
	StoreName  string `json:"store_name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	VisitedAt  string `json:"visited_at"`
	TotalPrice string `json:"total_price"`
}

type receiptDraftResponse struct {
	MissionID int64                `json:"mission_id"`
	State     string               `json:"state"`
	RawText   string               `json:"raw_text,omitempty"`
	Fields    receiptFieldsPayload `json:"fields"`
	Modified  bool                 `json:"modified"`
}

func toReceiptDraftResponse(draft *entity.ReceiptDraft) receiptDraftResponse {
	return receiptDraftResponse{
		MissionID: draft.MissionID,
		State:     string(draft.State),
		RawText:   draft.RawText,
		Fields: receiptFieldsPayload{
			StoreName:  draft.Fields.StoreName,
			Address:    draft.Fields.Address,
			Phone:      draft.Fields.Phone,
			VisitedAt:  draft.Fields.VisitedAt,
			TotalPrice: draft.Fields.TotalPrice,
		},
		Modified: draft.Modified,
	}
}

func missionIDParam(c echo.Context) (int64, error) {
	missionID, err := strconv.ParseInt(c.Param("missionId"), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails("mission id must be numeric")
	}

	return missionID, nil
}

// AttachImage starts (or restarts) the flow with an uploaded receipt photo.
// The image arrives as a multipart file named "image".
func (h *ReceiptHandler) AttachImage(c echo.Context) error {
	missionID, err := missionIDParam(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BindingError(c, "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded image")
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return errors.Wrap(err, "failed to read uploaded image")
	}

	draft, err := h.uc.AttachImage(c.Request().Context(), missionID, image)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toReceiptDraftResponse(draft))
}

// Process runs OCR and field extraction on the attached image.
func (h *ReceiptHandler) Process(c echo.Context) error {
	missionID, err := missionIDParam(c)
	if err != nil {
		return err
	}

	draft, err := h.uc.Process(c.Request().Context(), missionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReceiptDraftResponse(draft))
}

// Draft returns the current draft for a mission.
func (h *ReceiptHandler) Draft(c echo.Context) error {
	missionID, err := missionIDParam(c)
	if err != nil {
		return err
	}

	draft, err := h.uc.Draft(c.Request().Context(), missionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReceiptDraftResponse(draft))
}

// Edit applies user corrections to the extracted fields.
func (h *ReceiptHandler) Edit(c echo.Context) error {
	missionID, err := missionIDParam(c)
	if err != nil {
		return err
	}

	var input receiptFieldsPayload
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid receipt fields")
	}

	draft, err := h.uc.Edit(c.Request().Context(), missionID, entity.ReceiptFields{
		StoreName:  input.StoreName,
		Address:    input.Address,
		Phone:      input.Phone,
		VisitedAt:  input.VisitedAt,
		TotalPrice: input.TotalPrice,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReceiptDraftResponse(draft))
}

// FinishEditing returns from the edit screen to review.
func (h *ReceiptHandler) FinishEditing(c echo.Context) error {
	missionID, err := missionIDParam(c)
	if err != nil {
		return err
	}

	draft, err := h.uc.FinishEditing(c.Request().Context(), missionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReceiptDraftResponse(draft))
}

// ConfirmAsIs accepts the extracted fields without corrections, enabling
// submission on the non-edit path.
func (h *ReceiptHandler) ConfirmAsIs(c echo.Context) error {
	missionID, err := missionIDParam(c)
	if err != nil {
		return err
	}

	draft, err := h.uc.ConfirmAsIs(c.Request().Context(), missionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReceiptDraftResponse(draft))
}

// Submit sends the vouched-for fields upstream for verification.
func (h *ReceiptHandler) Submit(c echo.Context) error {
	missionID, err := missionIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Submit(c.Request().Context(), missionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "영수증 인증이 완료되었습니다."})
}

// Cancel drops the draft for a mission.
func (h *ReceiptHandler) Cancel(c echo.Context) error {
	missionID, err := missionIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Cancel(c.Request().Context(), missionID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

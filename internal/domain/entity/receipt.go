package entity

import (
	"strings"
	"time"

	domainerrors "gachigage/internal/domain/errors"
)

// ReceiptState is the verification flow state of a mission's receipt draft.
type ReceiptState string

const (
	ReceiptIdle          ReceiptState = "idle"
	ReceiptImageSelected ReceiptState = "imageSelected"
	ReceiptProcessing    ReceiptState = "processing"
	ReceiptReviewing     ReceiptState = "reviewing"
	ReceiptEditing       ReceiptState = "editing"
	ReceiptSubmitted     ReceiptState = "submitted"
)

// Placeholder strings shown for fields the extractor could not resolve.
// Fields never surface as empty or null.
const (
	PlaceholderStoreName = "가게명 정보 없음"
	PlaceholderAddress   = "주소 정보 없음"
	PlaceholderPhone     = "전화번호 정보 없음"
	PlaceholderVisitedAt = "거래일시 정보 없음"
	PlaceholderAmount    = "금액 정보 없음"
)

// ReceiptFields are the extracted (or user-corrected) receipt values.
type ReceiptFields struct {
	StoreName  string
	Address    string
	Phone      string
	VisitedAt  string
	TotalPrice string
}

// FillPlaceholders replaces unresolved fields with their placeholder strings.
func (f *ReceiptFields) FillPlaceholders() {
	if strings.TrimSpace(f.StoreName) == "" {
		f.StoreName = PlaceholderStoreName
	}
	if strings.TrimSpace(f.Address) == "" {
		f.Address = PlaceholderAddress
	}
	if strings.TrimSpace(f.Phone) == "" {
		f.Phone = PlaceholderPhone
	}
	if strings.TrimSpace(f.VisitedAt) == "" {
		f.VisitedAt = PlaceholderVisitedAt
	}
	if strings.TrimSpace(f.TotalPrice) == "" {
		f.TotalPrice = PlaceholderAmount
	}
}

// TotalPriceNumber strips non-digits from the amount string ("12,000원" → 12000).
func (f *ReceiptFields) TotalPriceNumber() int {
	total := 0
	for _, r := range f.TotalPrice {
		if r >= '0' && r <= '9' {
			total = total*10 + int(r-'0')
		}
	}

	return total
}

// ReceiptDraft is the per-mission verification state machine:
// idle → imageSelected → processing → reviewing ↔ editing → submitted.
// Submission requires the user to vouch for the fields first, either by
// correcting at least one of them or by confirming the extraction as-is.
type ReceiptDraft struct {
	MissionID int64
	State     ReceiptState
	Image     []byte
	RawText   string
	Fields    ReceiptFields
	Modified  bool
	UpdatedAt time.Time
}

// NewReceiptDraft starts a verification flow for a mission.
func NewReceiptDraft(missionID int64) *ReceiptDraft {
	return &ReceiptDraft{MissionID: missionID, State: ReceiptIdle}
}

// AttachImage stores the captured receipt image.
func (d *ReceiptDraft) AttachImage(image []byte) error {
	if d.State != ReceiptIdle && d.State != ReceiptImageSelected {
		return domainerrors.ErrReceiptStateInvalid.WithDetails("image already processed")
	}
	if len(image) == 0 {
		return domainerrors.ErrValidationFailed.WithDetails("image is required")
	}

	d.Image = image
	d.State = ReceiptImageSelected

	return nil
}

// BeginProcessing transitions into the OCR run.
func (d *ReceiptDraft) BeginProcessing() error {
	if d.State != ReceiptImageSelected {
		return domainerrors.ErrReceiptStateInvalid.WithDetails("no image attached")
	}

	d.State = ReceiptProcessing

	return nil
}

// FinishProcessing records the extraction output and enters review.
func (d *ReceiptDraft) FinishProcessing(rawText string, fields ReceiptFields) error {
	if d.State != ReceiptProcessing {
		return domainerrors.ErrReceiptStateInvalid.WithDetails("not processing")
	}

	fields.FillPlaceholders()
	d.RawText = rawText
	d.Fields = fields
	d.Modified = false
	d.State = ReceiptReviewing

	return nil
}

// Edit applies user corrections. Any edit marks the draft modified, which is
// the gate for submission.
func (d *ReceiptDraft) Edit(fields ReceiptFields) error {
	if d.State != ReceiptReviewing && d.State != ReceiptEditing {
		return domainerrors.ErrReceiptStateInvalid.WithDetails("nothing to edit")
	}

	fields.FillPlaceholders()
	d.Fields = fields
	d.Modified = true
	d.State = ReceiptEditing

	return nil
}

// ConfirmAsIs accepts the extracted fields without corrections. It satisfies
// the same submission gate an edit does.
func (d *ReceiptDraft) ConfirmAsIs() error {
	if d.State != ReceiptReviewing {
		return domainerrors.ErrReceiptStateInvalid.WithDetails("nothing to confirm")
	}

	d.Modified = true

	return nil
}

// FinishEditing returns from the edit screen to review.
func (d *ReceiptDraft) FinishEditing() error {
	if d.State != ReceiptEditing {
		return domainerrors.ErrReceiptStateInvalid.WithDetails("not editing")
	}

	d.State = ReceiptReviewing

	return nil
}

// Submittable reports whether the draft may be sent to the backend.
func (d *ReceiptDraft) Submittable() error {
	if d.State != ReceiptReviewing && d.State != ReceiptEditing {
		return domainerrors.ErrReceiptStateInvalid.WithDetails("nothing to submit")
	}
	if !d.Modified {
		return domainerrors.ErrReceiptUnmodified
	}

	return nil
}

// MarkSubmitted finalizes the flow after the backend accepted the receipt.
func (d *ReceiptDraft) MarkSubmitted() error {
	if err := d.Submittable(); err != nil {
		return err
	}

	d.State = ReceiptSubmitted

	return nil
}

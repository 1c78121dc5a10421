package entity

import (
	"testing"

	domainerrors "gachigage/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeFields() ReceiptFields {
	return ReceiptFields{
		StoreName:  "슈니만두",
		Address:    "서울 노원구 동일로 1413",
		Phone:      "02-951-8292",
		VisitedAt:  "2025-08-25 12:31:41",
		TotalPrice: "12,000원",
	}
}

func TestReceiptDraft_Lifecycle(t *testing.T) {
	draft := NewReceiptDraft(1)
	assert.Equal(t, ReceiptIdle, draft.State)

	require.NoError(t, draft.AttachImage([]byte("img")))
	assert.Equal(t, ReceiptImageSelected, draft.State)

	require.NoError(t, draft.BeginProcessing())
	assert.Equal(t, ReceiptProcessing, draft.State)

	require.NoError(t, draft.FinishProcessing("raw text", completeFields()))
	assert.Equal(t, ReceiptReviewing, draft.State)
	assert.Equal(t, "raw text", draft.RawText)
	assert.False(t, draft.Modified)

	fields := completeFields()
	fields.Phone = "02-951-0000"
	require.NoError(t, draft.Edit(fields))
	assert.Equal(t, ReceiptEditing, draft.State)
	assert.True(t, draft.Modified)

	require.NoError(t, draft.FinishEditing())
	assert.Equal(t, ReceiptReviewing, draft.State)

	require.NoError(t, draft.MarkSubmitted())
	assert.Equal(t, ReceiptSubmitted, draft.State)
}

func TestReceiptDraft_SubmitGatedOnEdit(t *testing.T) {
	draft := NewReceiptDraft(1)
	require.NoError(t, draft.AttachImage([]byte("img")))
	require.NoError(t, draft.BeginProcessing())
	require.NoError(t, draft.FinishProcessing("raw", completeFields()))

	// Extractor output needs an edit or an explicit confirmation first.
	assert.ErrorIs(t, draft.Submittable(), domainerrors.ErrReceiptUnmodified)
	assert.ErrorIs(t, draft.MarkSubmitted(), domainerrors.ErrReceiptUnmodified)

	require.NoError(t, draft.Edit(completeFields()))
	assert.NoError(t, draft.Submittable())
}

func TestReceiptDraft_ConfirmAsIs(t *testing.T) {
	draft := NewReceiptDraft(1)
	require.NoError(t, draft.AttachImage([]byte("img")))
	require.NoError(t, draft.BeginProcessing())
	require.NoError(t, draft.FinishProcessing("raw", completeFields()))

	assert.ErrorIs(t, draft.Submittable(), domainerrors.ErrReceiptUnmodified)

	// Accepting the extraction verbatim opens the submission gate without
	// touching a single field.
	require.NoError(t, draft.ConfirmAsIs())
	assert.True(t, draft.Modified)
	assert.Equal(t, ReceiptReviewing, draft.State)
	assert.Equal(t, completeFields(), draft.Fields)

	require.NoError(t, draft.MarkSubmitted())
	assert.Equal(t, ReceiptSubmitted, draft.State)
}

func TestReceiptDraft_ConfirmAsIsOnlyFromReview(t *testing.T) {
	draft := NewReceiptDraft(1)
	assert.ErrorIs(t, draft.ConfirmAsIs(), domainerrors.ErrReceiptStateInvalid)

	require.NoError(t, draft.AttachImage([]byte("img")))
	assert.ErrorIs(t, draft.ConfirmAsIs(), domainerrors.ErrReceiptStateInvalid)

	require.NoError(t, draft.BeginProcessing())
	require.NoError(t, draft.FinishProcessing("raw", completeFields()))
	require.NoError(t, draft.Edit(completeFields()))
	// An open edit screen must be closed before confirming.
	assert.ErrorIs(t, draft.ConfirmAsIs(), domainerrors.ErrReceiptStateInvalid)
}

func TestReceiptDraft_InvalidTransitions(t *testing.T) {
	draft := NewReceiptDraft(1)

	assert.ErrorIs(t, draft.BeginProcessing(), domainerrors.ErrReceiptStateInvalid)
	assert.ErrorIs(t, draft.FinishProcessing("raw", ReceiptFields{}), domainerrors.ErrReceiptStateInvalid)
	assert.ErrorIs(t, draft.Edit(ReceiptFields{}), domainerrors.ErrReceiptStateInvalid)
	assert.ErrorIs(t, draft.FinishEditing(), domainerrors.ErrReceiptStateInvalid)
	assert.ErrorIs(t, draft.Submittable(), domainerrors.ErrReceiptStateInvalid)

	require.NoError(t, draft.AttachImage([]byte("img")))
	// A retake before processing is allowed.
	require.NoError(t, draft.AttachImage([]byte("img2")))
	assert.Equal(t, []byte("img2"), draft.Image)

	require.NoError(t, draft.BeginProcessing())
	assert.ErrorIs(t, draft.AttachImage([]byte("img3")), domainerrors.ErrReceiptStateInvalid)
}

func TestReceiptDraft_AttachImageRequiresBytes(t *testing.T) {
	draft := NewReceiptDraft(1)
	assert.ErrorIs(t, draft.AttachImage(nil), domainerrors.ErrValidationFailed)
}

func TestReceiptFields_FillPlaceholders(t *testing.T) {
	fields := ReceiptFields{StoreName: "슈니만두", VisitedAt: "  "}
	fields.FillPlaceholders()

	assert.Equal(t, "슈니만두", fields.StoreName)
	assert.Equal(t, PlaceholderAddress, fields.Address)
	assert.Equal(t, PlaceholderPhone, fields.Phone)
	assert.Equal(t, PlaceholderVisitedAt, fields.VisitedAt)
	assert.Equal(t, PlaceholderAmount, fields.TotalPrice)
}

func TestReceiptFields_TotalPriceNumber(t *testing.T) {
	tests := []struct {
		price string
		want  int
	}{
		{"12,000원", 12000},
		{"1,234,500원", 1234500},
		{"300", 300},
		{PlaceholderAmount, 0},
		{"", 0},
	}

	for _, tt := range tests {
		fields := ReceiptFields{TotalPrice: tt.price}
		assert.Equal(t, tt.want, fields.TotalPriceNumber(), tt.price)
	}
}

package models

import (
	"testing"
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandover(handoverType int) *Handover {
	delivererID := uint(20)
	return &Handover{
		ID:          1,
		Code:        "HO-TEST",
		Type:        handoverType,
		AssetID:     1,
		ReceiverID:  10,
		DelivererID: &delivererID,
		Status:      constants.HandoverStatusDraft,
	}
}

func TestHandoverRequiredSigners(t *testing.T) {
	h := newTestHandover(constants.HandoverTypeAssignment)
	assert.ElementsMatch(t, []string{SignerReceiver, SignerDeliverer}, h.RequiredSigners())

	h = newTestHandover(constants.HandoverTypeLending)
	assert.ElementsMatch(t, []string{SignerReceiver, SignerDeliverer}, h.RequiredSigners())

	// Biên bản trả chỉ cần người trả ký
	h = newTestHandover(constants.HandoverTypeReturn)
	assert.ElementsMatch(t, []string{SignerReceiver}, h.RequiredSigners())
}

func TestHandoverSignatureQuorum(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	h := newTestHandover(constants.HandoverTypeLending)
	require.NoError(t, GetHandoverState(h.Status).SendForSignature(h))
	assert.Equal(t, constants.HandoverStatusPendingSignature, h.Status)

	// Một chữ ký chưa đủ
	require.NoError(t, GetHandoverState(h.Status).Sign(h, SignerReceiver, []byte("sig-r"), now))
	assert.Equal(t, constants.HandoverStatusPendingSignature, h.Status)
	assert.False(t, h.SignaturesComplete())

	// Chưa đủ chữ ký thì không hoàn thành được
	err := GetHandoverState(h.Status).Complete(h)
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))

	// Đủ hai bên thì tự chuyển sang đã ký
	require.NoError(t, GetHandoverState(h.Status).Sign(h, SignerDeliverer, []byte("sig-d"), now))
	assert.Equal(t, constants.HandoverStatusSigned, h.Status)
	assert.True(t, h.SignaturesComplete())

	require.NoError(t, GetHandoverState(h.Status).Complete(h))
	assert.Equal(t, constants.HandoverStatusCompleted, h.Status)
}

func TestHandoverReturnNeedsOneSignature(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	h := newTestHandover(constants.HandoverTypeReturn)
	require.NoError(t, GetHandoverState(h.Status).SendForSignature(h))

	require.NoError(t, GetHandoverState(h.Status).Sign(h, SignerReceiver, []byte("sig"), now))
	assert.Equal(t, constants.HandoverStatusSigned, h.Status)

	// Bên giao không phải bên ký của biên bản trả
	h2 := newTestHandover(constants.HandoverTypeReturn)
	require.NoError(t, GetHandoverState(h2.Status).SendForSignature(h2))
	err := GetHandoverState(h2.Status).Sign(h2, SignerDeliverer, []byte("sig"), now)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestHandoverSignatureImmutable(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	h := newTestHandover(constants.HandoverTypeLending)
	require.NoError(t, GetHandoverState(h.Status).SendForSignature(h))
	require.NoError(t, GetHandoverState(h.Status).Sign(h, SignerReceiver, []byte("original"), now))

	// Đã ký thì không ghi đè được
	err := GetHandoverState(h.Status).Sign(h, SignerReceiver, []byte("tampered"), now.Add(time.Hour))
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))
	assert.Equal(t, []byte("original"), h.ReceiverSignature)
	assert.Equal(t, now, *h.ReceiverSignatureDate)
}

func TestHandoverSignBeforeSendRejected(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	h := newTestHandover(constants.HandoverTypeLending)
	err := GetHandoverState(h.Status).Sign(h, SignerReceiver, []byte("sig"), now)
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))
}

func TestHandoverCompleteIdempotent(t *testing.T) {
	h := newTestHandover(constants.HandoverTypeReturn)
	h.Status = constants.HandoverStatusCompleted

	// Gọi lại Complete trên biên bản đã hoàn thành là no-op
	require.NoError(t, GetHandoverState(h.Status).Complete(h))
	assert.Equal(t, constants.HandoverStatusCompleted, h.Status)

	// Nhưng ký hay gửi ký lại thì vẫn bị chặn
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	assert.Error(t, GetHandoverState(h.Status).Sign(h, SignerReceiver, []byte("sig"), now))
	assert.Error(t, GetHandoverState(h.Status).SendForSignature(h))
}

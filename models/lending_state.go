package models

import (
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
)

// LendingState định nghĩa interface cho các trạng thái phiếu mượn.
// Guard về xung đột lịch, quyền duyệt và biên bản bàn giao nằm ở
// LendingService; ở đây chỉ là luật chuyển trạng thái.
type LendingState interface {
	Request(l *Lending, needsApproval bool) error
	Approve(l *Lending, approverID uint) error
	Activate(l *Lending) error
	Return(l *Lending, now time.Time, returnedToID uint) error
	Cancel(l *Lending) error
}

func lendingStateError(action string, status int) error {
	return &apperrors.StateError{Entity: "phiếu mượn", Action: action, Status: status}
}

// LendingDraftState trạng thái nháp
type LendingDraftState struct{}

func (s *LendingDraftState) Request(l *Lending, needsApproval bool) error {
	if needsApproval {
		l.Status = constants.LendingStatusPendingApproval
	} else {
		l.Status = constants.LendingStatusRequested
	}
	return nil
}

func (s *LendingDraftState) Approve(l *Lending, approverID uint) error {
	return lendingStateError("duyệt", l.Status)
}

func (s *LendingDraftState) Activate(l *Lending) error {
	return lendingStateError("giao tài sản", l.Status)
}

func (s *LendingDraftState) Return(l *Lending, now time.Time, returnedToID uint) error {
	return lendingStateError("nhận trả", l.Status)
}

func (s *LendingDraftState) Cancel(l *Lending) error {
	l.Status = constants.LendingStatusCancelled
	return nil
}

// LendingRequestedState trạng thái đã yêu cầu, chờ quản lý tài sản duyệt
type LendingRequestedState struct{}

func (s *LendingRequestedState) Request(l *Lending, needsApproval bool) error {
	return lendingStateError("gửi yêu cầu lần nữa", l.Status)
}

func (s *LendingRequestedState) Approve(l *Lending, approverID uint) error {
	l.Status = constants.LendingStatusApproved
	l.ApprovedByID = &approverID
	return nil
}

func (s *LendingRequestedState) Activate(l *Lending) error {
	return lendingStateError("giao tài sản khi chưa duyệt", l.Status)
}

func (s *LendingRequestedState) Return(l *Lending, now time.Time, returnedToID uint) error {
	return lendingStateError("nhận trả", l.Status)
}

func (s *LendingRequestedState) Cancel(l *Lending) error {
	l.Status = constants.LendingStatusCancelled
	return nil
}

// LendingPendingApprovalState chờ người đang giữ tài sản ký duyệt
type LendingPendingApprovalState struct{}

func (s *LendingPendingApprovalState) Request(l *Lending, needsApproval bool) error {
	return lendingStateError("gửi yêu cầu lần nữa", l.Status)
}

func (s *LendingPendingApprovalState) Approve(l *Lending, approverID uint) error {
	l.Status = constants.LendingStatusApproved
	l.ApprovedByID = &approverID
	return nil
}

func (s *LendingPendingApprovalState) Activate(l *Lending) error {
	return lendingStateError("giao tài sản khi chưa duyệt", l.Status)
}

func (s *LendingPendingApprovalState) Return(l *Lending, now time.Time, returnedToID uint) error {
	return lendingStateError("nhận trả", l.Status)
}

func (s *LendingPendingApprovalState) Cancel(l *Lending) error {
	l.Status = constants.LendingStatusCancelled
	return nil
}

// LendingApprovedState đã duyệt, chờ giao tài sản
type LendingApprovedState struct{}

func (s *LendingApprovedState) Request(l *Lending, needsApproval bool) error {
	return lendingStateError("gửi yêu cầu lần nữa", l.Status)
}

func (s *LendingApprovedState) Approve(l *Lending, approverID uint) error {
	return lendingStateError("duyệt lần nữa", l.Status)
}

func (s *LendingApprovedState) Activate(l *Lending) error {
	l.Status = constants.LendingStatusActive
	return nil
}

func (s *LendingApprovedState) Return(l *Lending, now time.Time, returnedToID uint) error {
	return lendingStateError("nhận trả khi chưa giao", l.Status)
}

func (s *LendingApprovedState) Cancel(l *Lending) error {
	l.Status = constants.LendingStatusCancelled
	return nil
}

// LendingActiveState đang mượn
type LendingActiveState struct{}

func (s *LendingActiveState) Request(l *Lending, needsApproval bool) error {
	return lendingStateError("gửi yêu cầu lần nữa", l.Status)
}

func (s *LendingActiveState) Approve(l *Lending, approverID uint) error {
	return lendingStateError("duyệt", l.Status)
}

func (s *LendingActiveState) Activate(l *Lending) error {
	return lendingStateError("giao tài sản lần nữa", l.Status)
}

func (s *LendingActiveState) Return(l *Lending, now time.Time, returnedToID uint) error {
	l.Status = constants.LendingStatusReturned
	l.DateActualReturn = &now
	l.ReturnedToID = &returnedToID
	l.IsOverdue = false
	return nil
}

func (s *LendingActiveState) Cancel(l *Lending) error {
	// Tài sản có thể đã ra khỏi toà nhà, phải đi theo đường trả
	return lendingStateError("hủy phiếu đang mượn", l.Status)
}

// LendingReturnedState đã trả
type LendingReturnedState struct{}

func (s *LendingReturnedState) Request(l *Lending, needsApproval bool) error {
	return lendingStateError("gửi yêu cầu lần nữa", l.Status)
}

func (s *LendingReturnedState) Approve(l *Lending, approverID uint) error {
	return lendingStateError("duyệt", l.Status)
}

func (s *LendingReturnedState) Activate(l *Lending) error {
	return lendingStateError("giao tài sản", l.Status)
}

func (s *LendingReturnedState) Return(l *Lending, now time.Time, returnedToID uint) error {
	return lendingStateError("nhận trả lần nữa", l.Status)
}

func (s *LendingReturnedState) Cancel(l *Lending) error {
	return lendingStateError("hủy", l.Status)
}

// LendingCancelledState đã hủy
type LendingCancelledState struct{}

func (s *LendingCancelledState) Request(l *Lending, needsApproval bool) error {
	return lendingStateError("gửi yêu cầu lần nữa", l.Status)
}

func (s *LendingCancelledState) Approve(l *Lending, approverID uint) error {
	return lendingStateError("duyệt", l.Status)
}

func (s *LendingCancelledState) Activate(l *Lending) error {
	return lendingStateError("giao tài sản", l.Status)
}

func (s *LendingCancelledState) Return(l *Lending, now time.Time, returnedToID uint) error {
	return lendingStateError("nhận trả", l.Status)
}

func (s *LendingCancelledState) Cancel(l *Lending) error {
	return lendingStateError("hủy lần nữa", l.Status)
}

// GetLendingState trả về state tương ứng với trạng thái phiếu mượn
func GetLendingState(status int) LendingState {
	switch status {
	case constants.LendingStatusDraft:
		return &LendingDraftState{}
	case constants.LendingStatusRequested:
		return &LendingRequestedState{}
	case constants.LendingStatusPendingApproval:
		return &LendingPendingApprovalState{}
	case constants.LendingStatusApproved:
		return &LendingApprovedState{}
	case constants.LendingStatusActive:
		return &LendingActiveState{}
	case constants.LendingStatusReturned:
		return &LendingReturnedState{}
	case constants.LendingStatusCancelled:
		return &LendingCancelledState{}
	default:
		return &LendingDraftState{}
	}
}

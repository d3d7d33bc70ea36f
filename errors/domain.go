package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ConflictRef mô tả một bản ghi gây xung đột khoảng thời gian
type ConflictRef struct {
	ID    uint      `json:"id"`
	Code  string    `json:"code"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ConflictError lỗi xung đột khoảng thời gian khi xác nhận/duyệt
type ConflictError struct {
	Resource  string        `json:"resource"`
	Conflicts []ConflictRef `json:"conflicts"`
}

func (e *ConflictError) Error() string {
	codes := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		codes = append(codes, c.Code)
	}
	return fmt.Sprintf("[%s] %s đã bị chiếm trong khoảng thời gian này, xung đột với: %s",
		ErrCodeConflict, e.Resource, strings.Join(codes, ", "))
}

// StateError lỗi chuyển trạng thái không hợp lệ
type StateError struct {
	Entity string
	Action string
	Status int
}

func (e *StateError) Error() string {
	return fmt.Sprintf("[%s] không thể %s %s ở trạng thái hiện tại (%d)",
		ErrCodeState, e.Action, e.Entity, e.Status)
}

// PermissionError lỗi thiếu quyền thực hiện hành động
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("[%s] %s", ErrCodePermission, e.Message)
}

// ValidationError lỗi dữ liệu đầu vào không hợp lệ
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s", ErrCodeValidation, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s", ErrCodeValidation, e.Message)
}

// DependencyNotReadyError lỗi phụ thuộc chưa sẵn sàng (ví dụ biên bản chưa hoàn thành)
type DependencyNotReadyError struct {
	Dependency string
	Message    string
}

func (e *DependencyNotReadyError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ErrCodeDependencyNotReady, e.Dependency, e.Message)
}

// AsConflict trả về ConflictError nếu err là ConflictError
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsState kiểm tra err có phải StateError không
func IsState(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

// IsPermission kiểm tra err có phải PermissionError không
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsValidation kiểm tra err có phải ValidationError không
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDependencyNotReady kiểm tra err có phải DependencyNotReadyError không
func IsDependencyNotReady(err error) bool {
	var de *DependencyNotReadyError
	return errors.As(err, &de)
}

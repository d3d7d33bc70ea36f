package constants

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// User role
const (
	RoleEmployee     = 0
	RoleAssetManager = 1
	RoleAdmin        = 2
)

// Room status
const (
	RoomStatusAvailable   = 1
	RoomStatusMaintenance = 2
	RoomStatusClosed      = 3
)

// Asset status
const (
	AssetStatusAvailable   = 1
	AssetStatusAssigned    = 2
	AssetStatusMaintenance = 3
	AssetStatusRetired     = 4
)

// Booking status
const (
	BookingStatusDraft      = 0
	BookingStatusSubmitted  = 1
	BookingStatusConfirmed  = 2
	BookingStatusInProgress = 3
	BookingStatusDone       = 4
	BookingStatusCancelled  = 5
)

// Lending status
const (
	LendingStatusDraft           = 0
	LendingStatusRequested       = 1
	LendingStatusPendingApproval = 2
	LendingStatusApproved        = 3
	LendingStatusActive          = 4
	LendingStatusReturned        = 5
	LendingStatusCancelled       = 6
)

// Handover status
const (
	HandoverStatusDraft            = 0
	HandoverStatusPendingSignature = 1
	HandoverStatusSigned           = 2
	HandoverStatusCompleted        = 3
)

// Handover type
const (
	HandoverTypeAssignment = 0
	HandoverTypeLending    = 1
	HandoverTypeReturn     = 2
)

// Assignment status
const (
	AssignmentStatusDraft     = 0
	AssignmentStatusActive    = 1
	AssignmentStatusReturned  = 2
	AssignmentStatusCancelled = 3
)

// Lending purpose
const (
	PurposeMeeting      = 0
	PurposePresentation = 1
	PurposeTraining     = 2
	PurposeEvent        = 3
	PurposeOther        = 4
)

// Tình trạng tài sản khi giao/trả
const (
	ConditionNew     = 0
	ConditionGood    = 1
	ConditionFair    = 2
	ConditionPoor    = 3
	ConditionDamaged = 4
	ConditionBroken  = 5
)

// Maintenance status
const (
	MaintenanceStatusPending    = 0
	MaintenanceStatusInProgress = 1
	MaintenanceStatusDone       = 2
)

// Giờ làm việc mặc định cho phòng họp
const (
	DefaultWorkStartHour = 8
	DefaultWorkEndHour   = 18
)

// CheckinEarlyMinutes số phút được phép check-in sớm trước giờ họp
const CheckinEarlyMinutes = 15

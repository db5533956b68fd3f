package enums

type AssignmentType string

const (
	AssignmentEligible AssignmentType = "Eligible"
	AssignmentActive   AssignmentType = "Active"
)

type ScheduleRequestType string

const (
	RequestAdminAssign    ScheduleRequestType = "AdminAssign"
	RequestAdminRemove    ScheduleRequestType = "AdminRemove"
	RequestSelfActivate   ScheduleRequestType = "SelfActivate"
	RequestSelfDeactivate ScheduleRequestType = "SelfDeactivate"
)

type ScheduleRequestStatus string

const (
	StatusPendingApproval          ScheduleRequestStatus = "PendingApproval"
	StatusPendingApprovalProvision ScheduleRequestStatus = "PendingApprovalProvisioning"
	StatusProvisioned              ScheduleRequestStatus = "Provisioned"
	StatusDenied                   ScheduleRequestStatus = "Denied"
	StatusCanceled                 ScheduleRequestStatus = "Canceled"
)

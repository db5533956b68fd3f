package enums

type ApprovalStageApprover string

const (
	ApprovalStageSingleUser   ApprovalStageApprover = "#microsoft.graph.singleUser"
	ApprovalStageGroupMembers ApprovalStageApprover = "#microsoft.graph.groupMembers"
)

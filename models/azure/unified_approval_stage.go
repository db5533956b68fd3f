package azure

// UnifiedApprovalStage represents the unifiedApprovalStage resource type
// https://learn.microsoft.com/en-us/graph/api/resources/unifiedapprovalstage?view=graph-rest-1.0
type UnifiedApprovalStage struct {
	ApprovalStageTimeOutInDays      int32        `json:"approvalStageTimeOutInDays,omitempty"`
	IsApproverJustificationRequired bool         `json:"isApproverJustificationRequired,omitempty"`
	EscalationTimeInMinutes         int32        `json:"escalationTimeInMinutes,omitempty"`
	IsEscalationEnabled             bool         `json:"isEscalationEnabled,omitempty"`
	PrimaryApprovers                []SubjectSet `json:"primaryApprovers,omitempty"`
	EscalationApprovers             []SubjectSet `json:"escalationApprovers,omitempty"`
}

// SubjectSet identifies a user or the members of a group
type SubjectSet struct {
	Type        string `json:"@odata.type,omitempty"`
	UserId      string `json:"userId,omitempty"`
	GroupId     string `json:"groupId,omitempty"`
	Description string `json:"description,omitempty"`
}

package azure

// RoleAssignmentApprovalStep represents a stage of a roleAssignmentApprovals resource
// https://learn.microsoft.com/en-us/rest/api/authorization/role-assignment-approval-step
type RoleAssignmentApprovalStep struct {
	Id         string                               `json:"id,omitempty"`
	Name       string                               `json:"name,omitempty"`
	Type       string                               `json:"type,omitempty"`
	Properties RoleAssignmentApprovalStepProperties `json:"properties"`
}

type RoleAssignmentApprovalStepProperties struct {
	DisplayName   string `json:"displayName,omitempty"`
	Status        string `json:"status,omitempty"`
	AssignedToMe  bool   `json:"assignedToMe,omitempty"`
	ReviewedBy    string `json:"reviewedBy,omitempty"`
	ReviewResult  string `json:"reviewResult,omitempty"`
	Justification string `json:"justification,omitempty"`
}

// ApprovalDecisionBody is the PUT payload that records a review against a stage
type ApprovalDecisionBody struct {
	Properties ApprovalDecisionProperties `json:"properties"`
}

type ApprovalDecisionProperties struct {
	Justification string `json:"justification"`
	ReviewResult  string `json:"reviewResult"`
}

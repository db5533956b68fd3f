package enums

// Kind labels a record written by the list commands
type Kind string

const (
	KindPendingApproval   Kind = "PIMPendingApproval"
	KindRolePolicy        Kind = "PIMRolePolicy"
	KindAssignmentRequest Kind = "PIMAssignmentRequest"
	KindPolicyApplication Kind = "PIMPolicyApplication"
)

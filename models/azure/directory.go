package azure

// UnifiedRoleDefinition represents the unifiedRoleDefinition resource type
// https://learn.microsoft.com/en-us/graph/api/resources/unifiedroledefinition?view=graph-rest-1.0
type UnifiedRoleDefinition struct {
	Entity

	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	IsBuiltIn   bool   `json:"isBuiltIn,omitempty"`
	IsEnabled   bool   `json:"isEnabled,omitempty"`
	TemplateId  string `json:"templateId,omitempty"`
}

// Group represents the group resource type
// https://learn.microsoft.com/en-us/graph/api/resources/group?view=graph-rest-1.0
type Group struct {
	Entity

	DisplayName        string `json:"displayName,omitempty"`
	Description        string `json:"description,omitempty"`
	MailNickname       string `json:"mailNickname,omitempty"`
	SecurityEnabled    bool   `json:"securityEnabled,omitempty"`
	IsAssignableToRole bool   `json:"isAssignableToRole,omitempty"`
}

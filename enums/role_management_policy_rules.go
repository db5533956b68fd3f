package enums

type RoleManagementPolicyRuleType string

const (
	PolicyRuleApproval              RoleManagementPolicyRuleType = "#microsoft.graph.unifiedRoleManagementPolicyApprovalRule"
	PolicyRuleExpiration            RoleManagementPolicyRuleType = "#microsoft.graph.unifiedRoleManagementPolicyExpirationRule"
	PolicyRuleEnablement            RoleManagementPolicyRuleType = "#microsoft.graph.unifiedRoleManagementPolicyEnablementRule"
	PolicyRuleNotification          RoleManagementPolicyRuleType = "#microsoft.graph.unifiedRoleManagementPolicyNotificationRule"
	PolicyRuleAuthenticationContext RoleManagementPolicyRuleType = "#microsoft.graph.unifiedRoleManagementPolicyAuthenticationContextRule"
	PolicyRuleJustification         RoleManagementPolicyRuleType = "#microsoft.graph.unifiedRoleManagementPolicyJustificationRule"
	PolicyRuleMfa                   RoleManagementPolicyRuleType = "#microsoft.graph.unifiedRoleManagementPolicyMfaRule"
	PolicyRuleTicketing             RoleManagementPolicyRuleType = "#microsoft.graph.unifiedRoleManagementPolicyTicketingRule"
)

// Policy rule ids within the end-user activation namespace
const (
	RuleIdEnablement            = "Enablement_EndUser_Assignment"
	RuleIdJustification         = "Justification_EndUser_Assignment"
	RuleIdMfa                   = "MultiFactorAuthentication_EndUser_Assignment"
	RuleIdTicketing             = "Ticketing_EndUser_Assignment"
	RuleIdApproval              = "Approval_EndUser_Assignment"
	RuleIdAuthenticationContext = "AuthenticationContext_EndUser_Assignment"
	RuleIdExpiration            = "Expiration_EndUser_Assignment"
)

type ExpirationPatternType string

const (
	ExpirationAfterDateTime ExpirationPatternType = "AfterDateTime"
	ExpirationAfterDuration ExpirationPatternType = "AfterDuration"
	ExpirationNoExpiration  ExpirationPatternType = "NoExpiration"
)

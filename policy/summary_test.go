package policy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pimctl/pimctl/models/azure"
)

func TestSummarize(t *testing.T) {
	rules, err := Build(Settings{
		RequireApproval:      true,
		ApproverGroupId:      "approvers",
		RequireMfa:           true,
		RequireJustification: true,
		MaxActivationHours:   6,
	})
	require.NoError(t, err)

	var raw []json.RawMessage
	for _, rule := range rules.Rules() {
		data, err := json.Marshal(rule)
		require.NoError(t, err)
		raw = append(raw, data)
	}
	// admin-level rules are not part of activation and must be ignored
	raw = append(raw, json.RawMessage(`{"@odata.type":"#microsoft.graph.unifiedRoleManagementPolicyApprovalRule","id":"Approval_Admin_Assignment","setting":{"isApprovalRequired":true}}`))

	summary, err := Summarize(azure.UnifiedRoleManagementPolicyAssignment{
		PolicyId:         "policy-1",
		RoleDefinitionId: "role-1",
		Policy:           azure.UnifiedRoleManagementPolicy{Rules: raw},
	})
	require.NoError(t, err)
	require.Equal(t, "policy-1", summary.PolicyId)
	require.True(t, summary.ActivationRequiresApproval)
	require.True(t, summary.ActivationRequiresRequestorJustification)
	require.Equal(t, []string{"approvers"}, summary.ActivationGroupApprovers)
	require.Empty(t, summary.ActivationUserApprovers)
	require.True(t, summary.ActivationRequiresMFA)
	require.True(t, summary.ActivationRequiresJustification)
	require.False(t, summary.ActivationRequiresTicketInformation)
	require.False(t, summary.ActivationRequiresCAPAuthContext)
	require.Equal(t, "PT6H", summary.ActivationMaximumDuration)
}

func TestSummarize_EnablementSubRules(t *testing.T) {
	summary, err := Summarize(azure.UnifiedRoleManagementPolicyAssignment{
		Policy: azure.UnifiedRoleManagementPolicy{Rules: []json.RawMessage{
			json.RawMessage(`{"@odata.type":"#microsoft.graph.unifiedRoleManagementPolicyEnablementRule","id":"Enablement_EndUser_Assignment","enabledRules":["Ticketing","MultiFactorAuthentication"]}`),
		}},
	})
	require.NoError(t, err)
	require.True(t, summary.ActivationRequiresTicketInformation)
	require.True(t, summary.ActivationRequiresMFA)
	require.False(t, summary.ActivationRequiresJustification)
}

func TestActivationRuleIds(t *testing.T) {
	ids, err := ActivationRuleIds(azure.UnifiedRoleManagementPolicy{Rules: []json.RawMessage{
		json.RawMessage(`{"id":"Expiration_EndUser_Assignment"}`),
		json.RawMessage(`{"id":"Expiration_Admin_Eligibility"}`),
		json.RawMessage(`{"id":"Approval_EndUser_Assignment"}`),
	}})
	require.NoError(t, err)
	require.Equal(t, []string{"Expiration_EndUser_Assignment", "Approval_EndUser_Assignment"}, ids)

	_, err = ActivationRuleIds(azure.UnifiedRoleManagementPolicy{Rules: []json.RawMessage{json.RawMessage(`[`)}})
	require.Error(t, err)
}

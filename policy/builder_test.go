package policy

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
)

func TestBuild(t *testing.T) {
	t.Run("approval disabled still requires requestor justification", func(t *testing.T) {
		for _, settings := range []Settings{
			{MaxActivationHours: 1},
			{MaxActivationHours: 8, RequireJustification: true, RequireMfa: true},
			{MaxActivationHours: 4, ApproverGroupId: "ignored-group"},
		} {
			rules, err := Build(settings)
			require.NoError(t, err)
			require.False(t, rules.Approval.Required)
			require.True(t, rules.Approval.RequestorJustificationRequired)
			require.Empty(t, rules.Approval.ApproverPrincipalId)
		}
	})

	t.Run("approval enabled emits a single stage with the approver group", func(t *testing.T) {
		rules, err := Build(Settings{
			RequireApproval:    true,
			ApproverGroupId:    "00000000-0000-0000-0000-0000000000aa",
			MaxActivationHours: 8,
		})
		require.NoError(t, err)
		require.True(t, rules.Approval.Required)
		require.Equal(t, "00000000-0000-0000-0000-0000000000aa", rules.Approval.ApproverPrincipalId)
		require.Equal(t, 1, rules.Approval.StageTimeoutDays)
		require.True(t, rules.Approval.ApproverJustificationRequired)

		body := decode(t, rules.Approval)
		setting := body["setting"].(map[string]any)
		stages := setting["approvalStages"].([]any)
		require.Len(t, stages, 1)
		stage := stages[0].(map[string]any)
		require.EqualValues(t, 1, stage["approvalStageTimeOutInDays"])
		require.Equal(t, false, stage["isEscalationEnabled"])
		approvers := stage["primaryApprovers"].([]any)
		require.Len(t, approvers, 1)
		require.Equal(t, "00000000-0000-0000-0000-0000000000aa", approvers[0].(map[string]any)["groupId"])
		require.Equal(t, string(enums.ApprovalStageGroupMembers), approvers[0].(map[string]any)["@odata.type"])
	})

	t.Run("approval falls back to the default approver", func(t *testing.T) {
		rules, err := Build(Settings{
			RequireApproval:        true,
			DefaultApproverGroupId: "default-group",
			MaxActivationHours:     2,
		})
		require.NoError(t, err)
		require.Equal(t, "default-group", rules.Approval.ApproverPrincipalId)
	})

	t.Run("approval without any approver fails validation", func(t *testing.T) {
		_, err := Build(Settings{RequireApproval: true, MaxActivationHours: 2})

		var validationErr *models.ValidationError
		require.True(t, errors.As(err, &validationErr))
		require.Equal(t, "ApproverGroupId", validationErr.Field)
	})

	t.Run("non-positive activation hours fail validation", func(t *testing.T) {
		for _, hours := range []int{0, -1} {
			_, err := Build(Settings{MaxActivationHours: hours})

			var validationErr *models.ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Equal(t, "MaxActivationHours", validationErr.Field)
		}
	})

	t.Run("expiration carries the same duration in both fields", func(t *testing.T) {
		rules, err := Build(Settings{MaxActivationHours: 8})
		require.NoError(t, err)
		require.Equal(t, "PT8H", rules.Expiration.MaximumDuration)

		body := decode(t, rules.Expiration)
		require.Equal(t, "PT8H", body["maximumDuration"])
		require.Equal(t, true, body["isExpirationRequired"])
		expiration := body["expiration"].(map[string]any)
		require.Equal(t, "PT8H", expiration["duration"])
		require.Equal(t, "AfterDateTime", expiration["type"])
		require.Contains(t, expiration, "endDateTime")
		require.Nil(t, expiration["endDateTime"])
	})

	t.Run("toggles mirror the settings", func(t *testing.T) {
		rules, err := Build(Settings{RequireJustification: true, RequireTicket: false, RequireMfa: true, MaxActivationHours: 1})
		require.NoError(t, err)
		require.True(t, rules.Justification.IsEnabled)
		require.False(t, rules.Ticketing.IsEnabled)
		require.True(t, rules.Mfa.IsEnabled)
		require.False(t, rules.AuthenticationContext.IsEnabled)
	})

	t.Run("enablement defaults to an empty list", func(t *testing.T) {
		rules, err := Build(Settings{MaxActivationHours: 1})
		require.NoError(t, err)

		body := decode(t, rules.Enablement)
		require.Equal(t, []any{}, body["enabledRules"])
	})

	t.Run("enablement list is configurable", func(t *testing.T) {
		rules, err := Build(Settings{MaxActivationHours: 1, EnabledRules: []string{"MultiFactorAuthentication"}})
		require.NoError(t, err)
		require.Equal(t, []string{"MultiFactorAuthentication"}, rules.Enablement.EnabledRules)

		_, err = Build(Settings{MaxActivationHours: 1, EnabledRules: []string{"Coffee"}})
		var validationErr *models.ValidationError
		require.True(t, errors.As(err, &validationErr))
	})

	t.Run("building twice yields identical bodies", func(t *testing.T) {
		settings := Settings{RequireApproval: true, ApproverGroupId: "g", MaxActivationHours: 3, RequireMfa: true}
		first, err := Build(settings)
		require.NoError(t, err)
		second, err := Build(settings)
		require.NoError(t, err)

		for i, rule := range first.Rules() {
			a, err := json.Marshal(rule)
			require.NoError(t, err)
			b, err := json.Marshal(second.Rules()[i])
			require.NoError(t, err)
			require.JSONEq(t, string(a), string(b))
		}
	})
}

func TestRuleSet_Rules(t *testing.T) {
	rules, err := Build(Settings{MaxActivationHours: 1})
	require.NoError(t, err)

	seen := map[Kind]bool{}
	ids := map[string]bool{}
	for _, rule := range rules.Rules() {
		require.False(t, seen[rule.Kind()], "duplicate rule kind %s", rule.Kind())
		seen[rule.Kind()] = true
		ids[rule.RuleId()] = true

		body := decode(t, rule)
		require.Equal(t, rule.RuleId(), body["id"])
		require.NotEmpty(t, body["@odata.type"])
		target := body["target"].(map[string]any)
		require.Equal(t, "EndUser", target["caller"])
		require.Equal(t, "Assignment", target["level"])
	}
	require.Len(t, seen, 7)
	require.Len(t, ids, 7)
}

func decode(t *testing.T, rule Rule) map[string]any {
	t.Helper()
	data, err := json.Marshal(rule)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

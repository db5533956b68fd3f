// Copyright (C) 2025 The pimctl Authors
//
// This file is part of pimctl.
//
// pimctl is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// pimctl is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package policy

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/pimctl/pimctl/constants"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/models/azure"
)

type tempRuleType struct {
	Id   string                             `json:"id"`
	Type enums.RoleManagementPolicyRuleType `json:"@odata.type"`
}

// ActivationRuleIds returns the ids of the policy's rules that govern end-user activation
func ActivationRuleIds(policy azure.UnifiedRoleManagementPolicy) ([]string, error) {
	var ids []string
	for _, rule := range policy.Rules {
		var ruleType tempRuleType
		if err := json.Unmarshal(rule, &ruleType); err != nil {
			return nil, fmt.Errorf("error reading policy rule: %w", err)
		}
		if strings.HasSuffix(ruleType.Id, constants.ActivationRuleSuffix) {
			ids = append(ids, ruleType.Id)
		}
	}
	return ids, nil
}

// Summarize unmarshalls the assignment's Policy.Rules into their respective types and flattens the activation settings
func Summarize(assignment azure.UnifiedRoleManagementPolicyAssignment) (models.RolePolicySummary, error) {
	summary := models.RolePolicySummary{
		UnifiedRoleManagementPolicyAssignment: assignment,

		RoleDefinitionId: assignment.RoleDefinitionId,
		PolicyId:         assignment.PolicyId,
	}

	for _, rule := range assignment.Policy.Rules {
		var ruleType tempRuleType
		if err := json.Unmarshal(rule, &ruleType); err != nil {
			return summary, err
		}

		if !strings.HasSuffix(ruleType.Id, constants.ActivationRuleSuffix) {
			continue
		}

		var err error
		switch ruleType.Type {
		case enums.PolicyRuleApproval:
			err = summarizeApproval(rule, &summary)
		case enums.PolicyRuleEnablement:
			err = summarizeEnablement(rule, &summary)
		case enums.PolicyRuleAuthenticationContext:
			err = summarizeAuthenticationContext(rule, &summary)
		case enums.PolicyRuleExpiration:
			err = summarizeExpiration(rule, &summary)
		case enums.PolicyRuleJustification, enums.PolicyRuleMfa, enums.PolicyRuleTicketing:
			err = summarizeToggle(ruleType.Type, rule, &summary)
		default:
			continue
		}
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func summarizeApproval(data json.RawMessage, summary *models.RolePolicySummary) error {
	var rule azure.UnifiedRoleManagementPolicyApprovalRule
	if err := json.Unmarshal(data, &rule); err != nil {
		return fmt.Errorf("error unmarshalling PolicyRuleApproval: %w", err)
	}

	var (
		userApprovers  []string
		groupApprovers []string
	)

	for _, approvalStage := range rule.Setting.ApprovalStages {
		for _, approver := range approvalStage.PrimaryApprovers {
			switch enums.ApprovalStageApprover(approver.Type) {
			case enums.ApprovalStageSingleUser:
				userApprovers = append(userApprovers, approver.UserId)
			case enums.ApprovalStageGroupMembers:
				groupApprovers = append(groupApprovers, approver.GroupId)
			}
		}
	}

	summary.ActivationUserApprovers = userApprovers
	summary.ActivationGroupApprovers = groupApprovers
	summary.ActivationRequiresApproval = rule.Setting.IsApprovalRequired
	summary.ActivationRequiresRequestorJustification = rule.Setting.IsRequestorJustificationRequired

	return nil
}

// Enablement sub-rules and the standalone toggle rules both switch the same behaviours on
func summarizeEnablement(data json.RawMessage, summary *models.RolePolicySummary) error {
	var rule azure.UnifiedRoleManagementPolicyEnablementRule
	if err := json.Unmarshal(data, &rule); err != nil {
		return fmt.Errorf("error unmarshalling PolicyRuleEnablement: %w", err)
	}

	summary.EnabledRules = rule.EnabledRules
	summary.ActivationRequiresMFA = summary.ActivationRequiresMFA || slices.Contains(rule.EnabledRules, "MultiFactorAuthentication")
	summary.ActivationRequiresJustification = summary.ActivationRequiresJustification || slices.Contains(rule.EnabledRules, "Justification")
	summary.ActivationRequiresTicketInformation = summary.ActivationRequiresTicketInformation || slices.Contains(rule.EnabledRules, "Ticketing")

	return nil
}

func summarizeToggle(ruleType enums.RoleManagementPolicyRuleType, data json.RawMessage, summary *models.RolePolicySummary) error {
	var rule azure.UnifiedRoleManagementPolicyToggleRule
	if err := json.Unmarshal(data, &rule); err != nil {
		return fmt.Errorf("error unmarshalling %s: %w", ruleType, err)
	}

	switch ruleType {
	case enums.PolicyRuleJustification:
		summary.ActivationRequiresJustification = summary.ActivationRequiresJustification || rule.IsEnabled
	case enums.PolicyRuleMfa:
		summary.ActivationRequiresMFA = summary.ActivationRequiresMFA || rule.IsEnabled
	case enums.PolicyRuleTicketing:
		summary.ActivationRequiresTicketInformation = summary.ActivationRequiresTicketInformation || rule.IsEnabled
	}

	return nil
}

func summarizeAuthenticationContext(data json.RawMessage, summary *models.RolePolicySummary) error {
	var rule azure.UnifiedRoleManagementPolicyAuthenticationContextRule
	if err := json.Unmarshal(data, &rule); err != nil {
		return fmt.Errorf("error unmarshalling PolicyRuleAuthenticationContext: %w", err)
	}

	summary.ActivationRequiresCAPAuthContext = rule.IsEnabled

	return nil
}

func summarizeExpiration(data json.RawMessage, summary *models.RolePolicySummary) error {
	var rule azure.UnifiedRoleManagementPolicyExpirationRule
	if err := json.Unmarshal(data, &rule); err != nil {
		return fmt.Errorf("error unmarshalling PolicyRuleExpiration: %w", err)
	}

	summary.ActivationMaximumDuration = rule.MaximumDuration

	return nil
}

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

package client

import (
	"context"
	"fmt"
	"slices"

	"github.com/pimctl/pimctl/client/query"
	"github.com/pimctl/pimctl/client/rest"
	"github.com/pimctl/pimctl/constants"
	"github.com/pimctl/pimctl/models/azure"
	"github.com/pimctl/pimctl/policy"
)

// AzureRoleManagementClient defines the methods to read and converge role management policies
type AzureRoleManagementClient interface {
	ListRoleAssignmentPolicies(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.UnifiedRoleManagementPolicyAssignment]
	GetRoleManagementPolicy(ctx context.Context, policyId string) (azure.UnifiedRoleManagementPolicy, error)
	GetRolePolicy(ctx context.Context, roleDefinitionId string) (azure.UnifiedRoleManagementPolicyAssignment, error)
	UpdatePolicyRule(ctx context.Context, policyId string, rule policy.Rule) error
	ApplyPolicy(ctx context.Context, roleDefinitionId string, rules policy.RuleSet) (ApplyResult, error)
}

// ApplyResult lists the rule ids that were updated and those the policy does not expose
type ApplyResult struct {
	PolicyId string
	Applied  []string
	Skipped  []string
}

// ListRoleAssignmentPolicies makes a GET request to https://graph.microsoft.com/v1.0/policies/roleManagementPolicyAssignments
// This endpoint requires the RoleManagementPolicy.Read.Directory permission
// Endpoint documentation: https://learn.microsoft.com/en-us/graph/api/policyroot-list-rolemanagementpolicyassignments?view=graph-rest-1.0&tabs=http
func (s *azureClient) ListRoleAssignmentPolicies(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.UnifiedRoleManagementPolicyAssignment] {
	var (
		out  = make(chan AzureResult[azure.UnifiedRoleManagementPolicyAssignment])
		path = fmt.Sprintf("/%s/policies/roleManagementPolicyAssignments", constants.GraphApiVersion)
	)

	go getAzureObjectList[azure.UnifiedRoleManagementPolicyAssignment](s.msgraph, ctx, path, params, out)

	return out
}

// GetRoleManagementPolicy https://learn.microsoft.com/en-us/graph/api/unifiedrolemanagementpolicy-get?view=graph-rest-1.0
func (s *azureClient) GetRoleManagementPolicy(ctx context.Context, policyId string) (azure.UnifiedRoleManagementPolicy, error) {
	var (
		path     = fmt.Sprintf("/%s/policies/roleManagementPolicies/%s", constants.GraphApiVersion, policyId)
		params   = query.GraphParams{Expand: "rules"}
		response azure.UnifiedRoleManagementPolicy
	)

	if res, err := s.msgraph.Get(ctx, path, params, nil); err != nil {
		return response, err
	} else if err := rest.Decode(res.Body, &response); err != nil {
		return response, fmt.Errorf("malformed role management policy %s: %w", policyId, err)
	} else {
		return response, nil
	}
}

// GetRolePolicy returns the directory-wide policy assignment of a role together with the policy's rules
func (s *azureClient) GetRolePolicy(ctx context.Context, roleDefinitionId string) (azure.UnifiedRoleManagementPolicyAssignment, error) {
	assignments, err := collect(s.ListRoleAssignmentPolicies(ctx, query.GraphParams{
		Filter: fmt.Sprintf("scopeId eq '/' and scopeType eq 'DirectoryRole' and roleDefinitionId eq %s", query.Quote(roleDefinitionId)),
	}))
	if err != nil {
		return azure.UnifiedRoleManagementPolicyAssignment{}, fmt.Errorf("unable to list policy assignments of role %s: %w", roleDefinitionId, err)
	} else if len(assignments) == 0 || assignments[0].PolicyId == "" {
		return azure.UnifiedRoleManagementPolicyAssignment{}, &PolicyNotFoundError{RoleDefinitionId: roleDefinitionId}
	}

	assignment := assignments[0]
	if assignment.Policy, err = s.GetRoleManagementPolicy(ctx, assignment.PolicyId); err != nil {
		return assignment, fmt.Errorf("unable to read policy %s of role %s: %w", assignment.PolicyId, roleDefinitionId, err)
	}

	return assignment, nil
}

// UpdatePolicyRule https://learn.microsoft.com/en-us/graph/api/unifiedrolemanagementpolicyrule-update?view=graph-rest-1.0
func (s *azureClient) UpdatePolicyRule(ctx context.Context, policyId string, rule policy.Rule) error {
	path := fmt.Sprintf("/%s/policies/roleManagementPolicies/%s/rules/%s", constants.GraphApiVersion, policyId, rule.RuleId())

	if res, err := s.msgraph.Patch(ctx, path, rule, nil, nil); err != nil {
		return fmt.Errorf("unable to update rule %s of policy %s: %w", rule.RuleId(), policyId, err)
	} else {
		res.Body.Close()
		return nil
	}
}

// ApplyPolicy updates every rule of the set that the role's policy currently exposes for activation.
// A role without a policy is not provisioned one.
func (s *azureClient) ApplyPolicy(ctx context.Context, roleDefinitionId string, rules policy.RuleSet) (ApplyResult, error) {
	assignment, err := s.GetRolePolicy(ctx, roleDefinitionId)
	if err != nil {
		return ApplyResult{}, err
	}

	active, err := policy.ActivationRuleIds(assignment.Policy)
	if err != nil {
		return ApplyResult{}, err
	}

	result := ApplyResult{PolicyId: assignment.PolicyId}
	for _, rule := range rules.Rules() {
		if !slices.Contains(active, rule.RuleId()) {
			s.log.V(1).Info("policy does not expose rule; skipping", "policyId", assignment.PolicyId, "ruleId", rule.RuleId())
			result.Skipped = append(result.Skipped, rule.RuleId())
			continue
		}

		if err := s.UpdatePolicyRule(ctx, assignment.PolicyId, rule); err != nil {
			return result, err
		}
		s.log.V(2).Info("updated policy rule", "policyId", assignment.PolicyId, "ruleId", rule.RuleId())
		result.Applied = append(result.Applied, rule.RuleId())
	}

	return result, nil
}

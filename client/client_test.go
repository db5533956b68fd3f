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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pimctl/pimctl/client/query"
	"github.com/pimctl/pimctl/client/rest"
	"github.com/pimctl/pimctl/client/rest/mocks"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/models/azure"
	"github.com/pimctl/pimctl/policy"
)

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newMockClient(t *testing.T) (*azureClient, *mocks.MockRestClient, *mocks.MockRestClient) {
	ctrl := gomock.NewController(t)
	msgraph := mocks.NewMockRestClient(ctrl)
	resourceManager := mocks.NewMockRestClient(ctrl)
	client := initClient(msgraph, resourceManager, nil, logr.Discard()).(*azureClient)
	return client, msgraph, resourceManager
}

func TestGetAzureObjectList(t *testing.T) {
	client, msgraph, _ := newMockClient(t)
	ctx := context.Background()

	gomock.InOrder(
		msgraph.EXPECT().Get(gomock.Any(), "/v1.0/groups", gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"value":[{"id":"g1"}],"@odata.nextLink":"https://graph.microsoft.com/v1.0/groups?$skiptoken=x"}`), nil),
		msgraph.EXPECT().Get(gomock.Any(), "https://graph.microsoft.com/v1.0/groups?$skiptoken=x", nil, gomock.Any()).
			Return(jsonResponse(`{"value":[{"id":"g2"}]}`), nil),
	)

	groups, err := collect(client.ListGroups(ctx, query.GraphParams{}))
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "g1", groups[0].Id)
	assert.Equal(t, "g2", groups[1].Id)
}

func TestGetAzureObjectList_Error(t *testing.T) {
	client, msgraph, _ := newMockClient(t)

	msgraph.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom"))

	_, err := collect(client.ListGroups(context.Background(), query.GraphParams{}))
	require.ErrorContains(t, err, "boom")
}

func TestResolveRole(t *testing.T) {
	ctx := context.Background()

	t.Run("single match", func(t *testing.T) {
		client, msgraph, _ := newMockClient(t)
		msgraph.EXPECT().Get(gomock.Any(), "/v1.0/roleManagement/directory/roleDefinitions", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, params query.Params, _ map[string]string) (*http.Response, error) {
				assert.Equal(t, "displayName eq 'Global Administrator'", params.AsMap()["$filter"])
				return jsonResponse(`{"value":[{"id":"62e90394","displayName":"Global Administrator"}]}`), nil
			})

		role, err := client.ResolveRole(ctx, "Global Administrator")
		require.NoError(t, err)
		assert.Equal(t, models.RoleDefinition{Id: "62e90394", DisplayName: "Global Administrator"}, role)
	})

	t.Run("no match", func(t *testing.T) {
		client, msgraph, _ := newMockClient(t)
		msgraph.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"value":[]}`), nil)

		_, err := client.ResolveRole(ctx, "Nope")
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Nope", notFound.Name)
	})

	t.Run("ambiguous", func(t *testing.T) {
		client, msgraph, _ := newMockClient(t)
		msgraph.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"value":[{"id":"a","displayName":"Ops"},{"id":"b","displayName":"Ops"}]}`), nil)

		_, err := client.ResolveGroup(ctx, "Ops")
		var ambiguous *AmbiguousNameError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, []string{"a", "b"}, ambiguous.Matches)
	})
}

func TestApplyPolicy(t *testing.T) {
	ctx := context.Background()
	rules, err := policy.Build(policy.Settings{RequireApproval: true, ApproverGroupId: "grp", MaxActivationHours: 4})
	require.NoError(t, err)

	t.Run("updates only exposed rules", func(t *testing.T) {
		client, msgraph, _ := newMockClient(t)
		msgraph.EXPECT().Get(gomock.Any(), "/v1.0/policies/roleManagementPolicyAssignments", gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"value":[{"id":"pa","policyId":"pol","roleDefinitionId":"role","scopeId":"/","scopeType":"DirectoryRole"}]}`), nil)
		msgraph.EXPECT().Get(gomock.Any(), "/v1.0/policies/roleManagementPolicies/pol", gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"id":"pol","rules":[
				{"@odata.type":"#microsoft.graph.unifiedRoleManagementPolicyEnablementRule","id":"Enablement_EndUser_Assignment"},
				{"@odata.type":"#microsoft.graph.unifiedRoleManagementPolicyApprovalRule","id":"Approval_EndUser_Assignment"},
				{"@odata.type":"#microsoft.graph.unifiedRoleManagementPolicyExpirationRule","id":"Expiration_EndUser_Assignment"},
				{"@odata.type":"#microsoft.graph.unifiedRoleManagementPolicyExpirationRule","id":"Expiration_Admin_Eligibility"}
			]}`), nil)

		var patched []string
		msgraph.EXPECT().Patch(gomock.Any(), gomock.Any(), gomock.Any(), nil, nil).Times(3).
			DoAndReturn(func(_ context.Context, path string, body any, _ query.Params, _ map[string]string) (*http.Response, error) {
				rule, ok := body.(policy.Rule)
				require.True(t, ok)
				assert.True(t, strings.HasSuffix(path, "/v1.0/policies/roleManagementPolicies/pol/rules/"+rule.RuleId()))
				patched = append(patched, rule.RuleId())
				return jsonResponse(""), nil
			})

		result, err := client.ApplyPolicy(ctx, "role", rules)
		require.NoError(t, err)
		assert.Equal(t, "pol", result.PolicyId)
		assert.Equal(t, []string{enums.RuleIdEnablement, enums.RuleIdApproval, enums.RuleIdExpiration}, result.Applied)
		assert.Equal(t, result.Applied, patched)
		assert.Equal(t, []string{enums.RuleIdJustification, enums.RuleIdMfa, enums.RuleIdTicketing, enums.RuleIdAuthenticationContext}, result.Skipped)
	})

	t.Run("role without policy", func(t *testing.T) {
		client, msgraph, _ := newMockClient(t)
		msgraph.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"value":[]}`), nil)

		_, err := client.ApplyPolicy(ctx, "role", rules)
		var notFound *PolicyNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "role", notFound.RoleDefinitionId)
	})

	t.Run("update failure stops the run", func(t *testing.T) {
		client, msgraph, _ := newMockClient(t)
		msgraph.EXPECT().Get(gomock.Any(), "/v1.0/policies/roleManagementPolicyAssignments", gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"value":[{"policyId":"pol"}]}`), nil)
		msgraph.EXPECT().Get(gomock.Any(), "/v1.0/policies/roleManagementPolicies/pol", gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"id":"pol","rules":[
				{"@odata.type":"#microsoft.graph.unifiedRoleManagementPolicyEnablementRule","id":"Enablement_EndUser_Assignment"},
				{"@odata.type":"#microsoft.graph.unifiedRoleManagementPolicyExpirationRule","id":"Expiration_EndUser_Assignment"}
			]}`), nil)
		msgraph.EXPECT().Patch(gomock.Any(), gomock.Any(), gomock.Any(), nil, nil).
			Return(nil, &rest.TransportError{Method: http.MethodPatch, StatusCode: http.StatusForbidden})

		result, err := client.ApplyPolicy(ctx, "role", rules)
		require.Error(t, err)
		assert.Empty(t, result.Applied)
	})
}

func TestSubmitDecision(t *testing.T) {
	var (
		ctx        = context.Background()
		approvalId = "/providers/Microsoft.Authorization/roleAssignmentApprovals/a1"
		stageId    = approvalId + "/stages/s1"
		decision   = models.Decision{ReviewResult: enums.ReviewApprove, Justification: "ok"}
	)

	t.Run("decides the first stage", func(t *testing.T) {
		client, _, resourceManager := newMockClient(t)
		resourceManager.EXPECT().Get(gomock.Any(), approvalId+"/stages", gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"value":[{"id":"`+stageId+`"},{"id":"`+approvalId+`/stages/s2"}]}`), nil)
		resourceManager.EXPECT().Put(gomock.Any(), stageId, gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, _ string, body any, _ query.Params, _ map[string]string) (*http.Response, error) {
				data, err := json.Marshal(body)
				require.NoError(t, err)
				assert.JSONEq(t, `{"properties":{"justification":"ok","reviewResult":"Approve"}}`, string(data))
				return jsonResponse(`{}`), nil
			})

		require.NoError(t, client.SubmitDecision(ctx, approvalId, decision))
	})

	t.Run("no stages", func(t *testing.T) {
		client, _, resourceManager := newMockClient(t)
		resourceManager.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"value":[]}`), nil)

		err := client.SubmitDecision(ctx, approvalId, decision)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("rejected by the service", func(t *testing.T) {
		client, _, resourceManager := newMockClient(t)
		resourceManager.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"value":[{"id":"`+stageId+`"}]}`), nil)
		resourceManager.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
			Return(nil, &rest.TransportError{Method: http.MethodPut, StatusCode: http.StatusBadRequest, Code: "RoleAssignmentRequestAlreadyReviewed"})

		err := client.SubmitDecision(ctx, approvalId, decision)
		var rejected *DecisionRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, stageId, rejected.StageId)
	})

	t.Run("transport failure is not a rejection", func(t *testing.T) {
		client, _, resourceManager := newMockClient(t)
		resourceManager.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(jsonResponse(`{"value":[{"id":"`+stageId+`"}]}`), nil)
		resourceManager.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
			Return(nil, &rest.TransportError{Method: http.MethodPut, StatusCode: http.StatusBadGateway})

		err := client.SubmitDecision(ctx, approvalId, decision)
		var rejected *DecisionRejectedError
		require.Error(t, err)
		assert.False(t, errors.As(err, &rejected))
	})
}

func TestListPendingApprovals(t *testing.T) {
	client, _, resourceManager := newMockClient(t)
	resourceManager.EXPECT().Get(gomock.Any(), "/providers/Microsoft.Authorization/roleAssignmentScheduleRequests", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, params query.Params, _ map[string]string) (*http.Response, error) {
			assert.Equal(t, "asApprover()", params.AsMap()["$filter"])
			assert.Equal(t, "2020-10-01", params.AsMap()["api-version"])
			return jsonResponse(`{"value":[{"id":"r1","properties":{"status":"PendingApproval","approvalId":"a1"}}]}`), nil
		})

	requests, err := collect(client.ListPendingApprovals(context.Background()))
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "a1", requests[0].Properties.ApprovalId)
}

func TestCreateAssignmentRequest(t *testing.T) {
	ctx := context.Background()
	request := models.AssignmentRequest{
		PrincipalId:      "p1",
		RoleDefinitionId: "/subscriptions/s1/providers/Microsoft.Authorization/roleDefinitions/r1",
		ScopeId:          "/subscriptions/s1",
		AssignmentType:   enums.AssignmentEligible,
		Justification:    "onboarding",
		DurationDays:     30,
	}

	t.Run("eligible", func(t *testing.T) {
		client, _, resourceManager := newMockClient(t)
		resourceManager.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, path string, body any, _ query.Params, _ map[string]string) (*http.Response, error) {
				assert.True(t, strings.HasPrefix(path, "/subscriptions/s1/providers/Microsoft.Authorization/roleEligibilityScheduleRequests/"))
				payload, ok := body.(azure.RoleScheduleRequestBody)
				require.True(t, ok)
				assert.Equal(t, "AdminAssign", payload.Properties.RequestType)
				assert.NotNil(t, payload.Properties.ScheduleInfo.StartDateTime)
				assert.Equal(t, "P30D", payload.Properties.ScheduleInfo.Expiration.Duration)
				assert.Equal(t, "AfterDuration", payload.Properties.ScheduleInfo.Expiration.Type)
				return jsonResponse(`{"id":"x","name":"n","properties":{"status":"Provisioned"}}`), nil
			})

		res, err := client.CreateAssignmentRequest(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, "Provisioned", res.Properties.Status)
	})

	t.Run("active", func(t *testing.T) {
		client, _, resourceManager := newMockClient(t)
		active := request
		active.AssignmentType = enums.AssignmentActive
		resourceManager.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, path string, _ any, _ query.Params, _ map[string]string) (*http.Response, error) {
				assert.Contains(t, path, "/roleAssignmentScheduleRequests/")
				return jsonResponse(`{}`), nil
			})

		_, err := client.CreateAssignmentRequest(ctx, active)
		require.NoError(t, err)
	})

	t.Run("invalid request is never sent", func(t *testing.T) {
		client, _, _ := newMockClient(t)
		invalid := request
		invalid.DurationDays = 0

		_, err := client.CreateAssignmentRequest(ctx, invalid)
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "DurationDays", validationErr.Field)
	})
}

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
	"errors"
	"fmt"

	"github.com/pimctl/pimctl/client/query"
	"github.com/pimctl/pimctl/client/rest"
	"github.com/pimctl/pimctl/constants"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/models/azure"
)

// AzureApprovalClient defines the methods a reviewer uses to find and decide pending role activation requests
type AzureApprovalClient interface {
	ListRoleAssignmentScheduleRequests(ctx context.Context, params query.RMParams) <-chan AzureResult[azure.RoleAssignmentScheduleRequest]
	ListPendingApprovals(ctx context.Context) <-chan AzureResult[azure.RoleAssignmentScheduleRequest]
	GetApprovalStage(ctx context.Context, approvalId string) (models.ApprovalStage, error)
	SubmitDecision(ctx context.Context, approvalId string, decision models.Decision) error
}

// ListRoleAssignmentScheduleRequests https://learn.microsoft.com/en-us/rest/api/authorization/role-assignment-schedule-requests/list-for-scope
func (s *azureClient) ListRoleAssignmentScheduleRequests(ctx context.Context, params query.RMParams) <-chan AzureResult[azure.RoleAssignmentScheduleRequest] {
	var (
		out  = make(chan AzureResult[azure.RoleAssignmentScheduleRequest])
		path = "/providers/Microsoft.Authorization/roleAssignmentScheduleRequests"
	)

	if params.ApiVersion == "" {
		params.ApiVersion = constants.ScheduleRequestApiVersion
	}

	go getAzureObjectList[azure.RoleAssignmentScheduleRequest](s.resourceManager, ctx, path, params, out)

	return out
}

// ListPendingApprovals lists the schedule requests the signed in principal may approve
func (s *azureClient) ListPendingApprovals(ctx context.Context) <-chan AzureResult[azure.RoleAssignmentScheduleRequest] {
	return s.ListRoleAssignmentScheduleRequests(ctx, query.RMParams{Filter: "asApprover()"})
}

// GetApprovalStage returns the first stage of an approval; the service accepts decisions against its oldest open stage.
// https://learn.microsoft.com/en-us/rest/api/authorization/role-assignment-approval-steps/list
func (s *azureClient) GetApprovalStage(ctx context.Context, approvalId string) (models.ApprovalStage, error) {
	var (
		path     = approvalId + "/stages"
		params   = query.RMParams{ApiVersion: constants.ApprovalStageApiVersion}
		response azure.Response[azure.RoleAssignmentApprovalStep]
	)

	if res, err := s.resourceManager.Get(ctx, path, params, nil); err != nil {
		return models.ApprovalStage{}, err
	} else if err := rest.Decode(res.Body, &response); err != nil {
		return models.ApprovalStage{}, fmt.Errorf("malformed approval stages of %s: %w", approvalId, err)
	} else if len(response.Value) == 0 || response.Value[0].Id == "" {
		return models.ApprovalStage{}, &NotFoundError{Kind: "approval stage", Name: approvalId}
	} else {
		return models.ApprovalStage{StageId: response.Value[0].Id, ApprovalId: approvalId}, nil
	}
}

// SubmitDecision records the decision against the approval's open stage. It is sent once and never retried.
// https://learn.microsoft.com/en-us/rest/api/authorization/role-assignment-approval-step/put
func (s *azureClient) SubmitDecision(ctx context.Context, approvalId string, decision models.Decision) error {
	stage, err := s.GetApprovalStage(ctx, approvalId)
	if err != nil {
		return fmt.Errorf("unable to resolve the open stage of %s: %w", approvalId, err)
	}

	body := azure.ApprovalDecisionBody{
		Properties: azure.ApprovalDecisionProperties{
			Justification: decision.Justification,
			ReviewResult:  decision.ReviewResult.String(),
		},
	}

	s.log.V(1).Info("submitting decision", "approvalId", approvalId, "stageId", stage.StageId, "reviewResult", decision.ReviewResult)

	if res, err := s.resourceManager.Put(ctx, stage.StageId, body, query.RMParams{ApiVersion: constants.ApprovalStageApiVersion}, nil); err != nil {
		var transportErr *rest.TransportError
		if errors.As(err, &transportErr) && transportErr.IsClientError() {
			return &DecisionRejectedError{ApprovalId: approvalId, StageId: stage.StageId, Err: err}
		}
		return fmt.Errorf("unable to submit decision on %s: %w", approvalId, err)
	} else {
		res.Body.Close()
		return nil
	}
}

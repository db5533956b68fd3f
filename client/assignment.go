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
	"strings"
	"time"

	"github.com/gofrs/uuid"

	"github.com/pimctl/pimctl/client/query"
	"github.com/pimctl/pimctl/client/rest"
	"github.com/pimctl/pimctl/constants"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/models/azure"
	"github.com/pimctl/pimctl/policy"
)

// AzureAssignmentClient creates eligible and active role assignments
type AzureAssignmentClient interface {
	CreateAssignmentRequest(ctx context.Context, request models.AssignmentRequest) (azure.RoleAssignmentScheduleRequest, error)
}

// CreateAssignmentRequest submits an AdminAssign schedule request. Submitting the same request twice creates two requests.
// https://learn.microsoft.com/en-us/rest/api/authorization/role-eligibility-schedule-requests/create
// https://learn.microsoft.com/en-us/rest/api/authorization/role-assignment-schedule-requests/create
func (s *azureClient) CreateAssignmentRequest(ctx context.Context, request models.AssignmentRequest) (azure.RoleAssignmentScheduleRequest, error) {
	var response azure.RoleAssignmentScheduleRequest

	if err := models.Validate(request); err != nil {
		return response, err
	}

	name, err := uuid.NewV4()
	if err != nil {
		return response, fmt.Errorf("unable to generate request name: %w", err)
	}

	resource := "roleAssignmentScheduleRequests"
	if request.AssignmentType == enums.AssignmentEligible {
		resource = "roleEligibilityScheduleRequests"
	}

	var (
		start = time.Now().UTC()
		path  = fmt.Sprintf("%s/providers/Microsoft.Authorization/%s/%s", strings.TrimSuffix(request.ScopeId, "/"), resource, name)
		body  = azure.RoleScheduleRequestBody{
			Properties: azure.RoleScheduleRequestBodyProperties{
				PrincipalId:      request.PrincipalId,
				RoleDefinitionId: request.RoleDefinitionId,
				RequestType:      string(enums.RequestAdminAssign),
				Justification:    request.Justification,
				ScheduleInfo: azure.ScheduleInfo{
					StartDateTime: &start,
					Expiration: &azure.ScheduleExpiration{
						Type:     string(enums.ExpirationAfterDuration),
						Duration: policy.FormatDays(request.DurationDays),
					},
				},
			},
		}
	)

	s.log.V(1).Info("creating assignment request", "type", request.AssignmentType, "principalId", request.PrincipalId, "roleDefinitionId", request.RoleDefinitionId, "scope", request.ScopeId)

	if res, err := s.resourceManager.Put(ctx, path, body, query.RMParams{ApiVersion: constants.ScheduleRequestApiVersion}, nil); err != nil {
		return response, fmt.Errorf("unable to create %s assignment request: %w", strings.ToLower(string(request.AssignmentType)), err)
	} else if err := rest.Decode(res.Body, &response); err != nil {
		return response, fmt.Errorf("malformed assignment request response: %w", err)
	} else {
		return response, nil
	}
}

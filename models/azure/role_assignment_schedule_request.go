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

package azure

import "time"

// RoleAssignmentScheduleRequest represents the Azure Resource Manager roleAssignmentScheduleRequests resource
// https://learn.microsoft.com/en-us/rest/api/authorization/role-assignment-schedule-requests
type RoleAssignmentScheduleRequest struct {
	Id         string                                  `json:"id,omitempty"`
	Name       string                                  `json:"name,omitempty"`
	Type       string                                  `json:"type,omitempty"`
	Properties RoleAssignmentScheduleRequestProperties `json:"properties"`
}

type RoleAssignmentScheduleRequestProperties struct {
	ApprovalId         string             `json:"approvalId,omitempty"`
	CreatedOn          time.Time          `json:"createdOn,omitempty"`
	Condition          string             `json:"condition,omitempty"`
	ExpandedProperties ExpandedProperties `json:"expandedProperties,omitempty"`
	Justification      string             `json:"justification,omitempty"`
	PrincipalId        string             `json:"principalId,omitempty"`
	PrincipalType      string             `json:"principalType,omitempty"`
	RequestType        string             `json:"requestType,omitempty"`
	RequestorId        string             `json:"requestorId,omitempty"`
	RoleDefinitionId   string             `json:"roleDefinitionId,omitempty"`
	Scope              string             `json:"scope,omitempty"`
	ScheduleInfo       *ScheduleInfo      `json:"scheduleInfo,omitempty"`
	Status             string             `json:"status,omitempty"`
	TicketInfo         *TicketInfo        `json:"ticketInfo,omitempty"`
}

type ExpandedProperties struct {
	Principal      ExpandedResource `json:"principal,omitempty"`
	RoleDefinition ExpandedResource `json:"roleDefinition,omitempty"`
	Scope          ExpandedResource `json:"scope,omitempty"`
}

type ExpandedResource struct {
	Id          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Type        string `json:"type,omitempty"`
	Email       string `json:"email,omitempty"`
}

type ScheduleInfo struct {
	StartDateTime *time.Time          `json:"startDateTime,omitempty"`
	Expiration    *ScheduleExpiration `json:"expiration,omitempty"`
}

type ScheduleExpiration struct {
	Type        string     `json:"type,omitempty"`
	EndDateTime *time.Time `json:"endDateTime,omitempty"`
	Duration    string     `json:"duration,omitempty"`
}

type TicketInfo struct {
	TicketNumber string `json:"ticketNumber,omitempty"`
	TicketSystem string `json:"ticketSystem,omitempty"`
}

// RoleScheduleRequestBody is the PUT payload used to create eligibility and assignment schedule requests
type RoleScheduleRequestBody struct {
	Properties RoleScheduleRequestBodyProperties `json:"properties"`
}

type RoleScheduleRequestBodyProperties struct {
	PrincipalId      string       `json:"principalId"`
	RoleDefinitionId string       `json:"roleDefinitionId"`
	RequestType      string       `json:"requestType"`
	Justification    string       `json:"justification,omitempty"`
	ScheduleInfo     ScheduleInfo `json:"scheduleInfo"`
}

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

package models

import (
	"time"

	"github.com/pimctl/pimctl/enums"
)

// PendingApproval is a read-only snapshot of an activation request awaiting the reviewer's decision
type PendingApproval struct {
	ApprovalId           string     `json:"approvalId"`
	RequestId            string     `json:"requestId,omitempty"`
	CreatedOn            time.Time  `json:"createdOn"`
	RequestorDisplayName string     `json:"requestorDisplayName"`
	RoleDisplayName      string     `json:"roleDisplayName"`
	ResourceDisplayName  string     `json:"resourceDisplayName"`
	ResourceType         string     `json:"resourceType"`
	Justification        string     `json:"justification"`
	TicketNumber         string     `json:"ticketNumber,omitempty"`
	TicketSystem         string     `json:"ticketSystem,omitempty"`
	ScheduleStart        *time.Time `json:"scheduleStart,omitempty"`
	ScheduleDuration     string     `json:"scheduleDuration,omitempty"`
	Status               string     `json:"status"`
}

// ApprovalStage is the first unresolved stage of an approval
type ApprovalStage struct {
	StageId    string `json:"stageId"`
	ApprovalId string `json:"approvalId"`
}

// Decision is the reviewer's verdict on an approval
type Decision struct {
	ReviewResult  enums.ReviewResult `json:"reviewResult"`
	Justification string             `json:"justification"`
}

// AssignmentRequest grants a role to a principal at a scope, either eligible or active, for a number of days
type AssignmentRequest struct {
	PrincipalId      string               `json:"principalId" validate:"required"`
	RoleDefinitionId string               `json:"roleDefinitionId" validate:"required"`
	ScopeId          string               `json:"scopeId" validate:"required,startswith=/"`
	AssignmentType   enums.AssignmentType `json:"assignmentType" validate:"oneof=Eligible Active"`
	Justification    string               `json:"justification" validate:"required"`
	DurationDays     int                  `json:"durationDays" validate:"gt=0"`
}

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

package catalog

import (
	"context"
	"sort"

	"github.com/go-logr/logr"

	"github.com/pimctl/pimctl/client"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/models/azure"
	"github.com/pimctl/pimctl/pipeline"
)

//go:generate go run go.uber.org/mock/mockgen -destination=./mocks/lister.go -package=mocks . PendingLister

// PendingLister lists the schedule requests the signed in principal may approve
type PendingLister interface {
	ListPendingApprovals(ctx context.Context) <-chan client.AzureResult[azure.RoleAssignmentScheduleRequest]
}

// Listing is the outcome of one fetch. Err is set when the fetch failed, in which case Items is empty.
type Listing struct {
	Items []models.PendingApproval
	Err   error
}

// Failed distinguishes a failed fetch from an empty queue
func (s Listing) Failed() bool {
	return s.Err != nil
}

// Empty reports a successful fetch with nothing to review
func (s Listing) Empty() bool {
	return s.Err == nil && len(s.Items) == 0
}

type Catalog struct {
	lister PendingLister
	log    logr.Logger
}

func New(lister PendingLister, log logr.Logger) *Catalog {
	return &Catalog{lister: lister, log: log}
}

// ListPending fetches the approvals awaiting the reviewer. Nothing is cached; every call goes to the service.
// Items are ordered by scheduled start, and requests without one trail the scheduled ones.
func (s *Catalog) ListPending(ctx context.Context) Listing {
	var items []models.PendingApproval

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for item := range pipeline.OrDone(ctx.Done(), s.lister.ListPendingApprovals(ctx)) {
		if item.Error != nil {
			s.log.Error(item.Error, "unable to list pending approvals")
			return Listing{Err: item.Error}
		} else if request := item.Ok; request.Properties.Status != string(enums.StatusPendingApproval) || request.Properties.ApprovalId == "" {
			s.log.V(2).Info("skipping schedule request", "id", request.Id, "status", request.Properties.Status)
			continue
		} else {
			items = append(items, newPendingApproval(request))
		}
	}

	if err := ctx.Err(); err != nil {
		s.log.Error(err, "listing pending approvals was interrupted")
		return Listing{Err: err}
	}

	SortBySchedule(items)
	s.log.V(1).Info("listed pending approvals", "count", len(items))
	return Listing{Items: items}
}

// SortBySchedule orders approvals by ascending scheduled start; approvals without a start sort last, keeping their relative order
func SortBySchedule(items []models.PendingApproval) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].ScheduleStart, items[j].ScheduleStart
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

func newPendingApproval(request azure.RoleAssignmentScheduleRequest) models.PendingApproval {
	var (
		properties = request.Properties
		expanded   = properties.ExpandedProperties
		approval   = models.PendingApproval{
			ApprovalId:           properties.ApprovalId,
			RequestId:            request.Id,
			CreatedOn:            properties.CreatedOn,
			RequestorDisplayName: expanded.Principal.DisplayName,
			RoleDisplayName:      expanded.RoleDefinition.DisplayName,
			ResourceDisplayName:  expanded.Scope.DisplayName,
			ResourceType:         expanded.Scope.Type,
			Justification:        properties.Justification,
			Status:               properties.Status,
		}
	)

	if approval.RequestorDisplayName == "" {
		approval.RequestorDisplayName = properties.RequestorId
	}

	if approval.RoleDisplayName == "" {
		approval.RoleDisplayName = properties.RoleDefinitionId
	}

	if approval.ResourceDisplayName == "" {
		approval.ResourceDisplayName = properties.Scope
	}

	if ticket := properties.TicketInfo; ticket != nil {
		approval.TicketNumber = ticket.TicketNumber
		approval.TicketSystem = ticket.TicketSystem
	}

	if schedule := properties.ScheduleInfo; schedule != nil {
		approval.ScheduleStart = schedule.StartDateTime
		if schedule.Expiration != nil {
			approval.ScheduleDuration = schedule.Expiration.Duration
		}
	}

	return approval
}

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

import "github.com/pimctl/pimctl/models/azure"

// RolePolicySummary flattens a role's activation policy rules into the settings a reviewer cares about
type RolePolicySummary struct {
	azure.UnifiedRoleManagementPolicyAssignment

	RoleDefinitionId                         string   `json:"roleDefinitionId,omitempty"`
	PolicyId                                 string   `json:"policyId,omitempty"`
	ActivationRequiresApproval               bool     `json:"activationRequiresApproval"`
	ActivationRequiresRequestorJustification bool     `json:"activationRequiresRequestorJustification"`
	ActivationRequiresCAPAuthContext         bool     `json:"activationRequiresCAPAuthenticationContext"`
	ActivationUserApprovers                  []string `json:"activationUserApprovers,omitempty"`
	ActivationGroupApprovers                 []string `json:"activationGroupApprovers,omitempty"`
	ActivationRequiresMFA                    bool     `json:"activationRequiresMFA"`
	ActivationRequiresJustification          bool     `json:"activationRequiresJustification"`
	ActivationRequiresTicketInformation      bool     `json:"activationRequiresTicketInformation"`
	ActivationMaximumDuration                string   `json:"activationMaximumDuration,omitempty"`
	EnabledRules                             []string `json:"enabledRules,omitempty"`
}

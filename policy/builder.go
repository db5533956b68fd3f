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
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
)

const (
	approvalStageTimeoutDays = 1
)

// Settings describes the desired activation policy of a role
type Settings struct {
	RequireJustification bool `mapstructure:"requireJustification" json:"requireJustification"`
	RequireTicket        bool `mapstructure:"requireTicket" json:"requireTicket"`
	RequireMfa           bool `mapstructure:"requireMfa" json:"requireMfa"`
	RequireApproval      bool `mapstructure:"requireApproval" json:"requireApproval"`

	// ApproverGroupId is ignored unless RequireApproval is set
	ApproverGroupId string `mapstructure:"approverGroupId" json:"approverGroupId,omitempty"`
	// DefaultApproverGroupId is the caller-supplied approver used when ApproverGroupId is empty
	DefaultApproverGroupId string `mapstructure:"defaultApproverGroupId" json:"defaultApproverGroupId,omitempty"`

	MaxActivationHours int `mapstructure:"maxActivationHours" json:"maxActivationHours" validate:"gt=0"`

	// EnabledRules is sent verbatim in the enablement rule. Entra does not expose the separate
	// justification, MFA and ticketing rules on role policies, so RequireJustification, RequireMfa
	// and RequireTicket only take effect there when the matching entry is listed here.
	EnabledRules []string `mapstructure:"enabledRules" json:"enabledRules,omitempty" validate:"dive,oneof=Justification MultiFactorAuthentication Ticketing"`
}

// Validate checks the settings without building a rule set
func (s Settings) Validate() error {
	if err := models.Validate(s); err != nil {
		return err
	}

	if s.RequireApproval && s.approver() == "" {
		return &models.ValidationError{Field: "ApproverGroupId", Reason: "is required when approval is required and no default approver is configured"}
	}

	return nil
}

func (s Settings) approver() string {
	if s.ApproverGroupId != "" {
		return s.ApproverGroupId
	}
	return s.DefaultApproverGroupId
}

// Build converts the settings into a complete rule set; invalid settings fail with *models.ValidationError.
// The requestor is always required to justify activation, even when approval is off.
func Build(settings Settings) (RuleSet, error) {
	if err := settings.Validate(); err != nil {
		return RuleSet{}, err
	}

	approval := ApprovalRule{
		Required:                       false,
		RequestorJustificationRequired: true,
	}

	if settings.RequireApproval {
		approval = ApprovalRule{
			Required:                       true,
			ApproverPrincipalId:            settings.approver(),
			ApproverType:                   enums.ApprovalStageGroupMembers,
			StageTimeoutDays:               approvalStageTimeoutDays,
			ApproverJustificationRequired:  true,
			RequestorJustificationRequired: true,
		}
	}

	enabled := make([]string, len(settings.EnabledRules))
	copy(enabled, settings.EnabledRules)

	return RuleSet{
		Enablement:            EnablementRule{EnabledRules: enabled},
		Justification:         JustificationRule{IsEnabled: settings.RequireJustification},
		Mfa:                   MfaRule{IsEnabled: settings.RequireMfa},
		Ticketing:             TicketingRule{IsEnabled: settings.RequireTicket},
		Approval:              approval,
		AuthenticationContext: AuthenticationContextRule{IsEnabled: false},
		Expiration:            ExpirationRule{MaximumDuration: FormatHours(settings.MaxActivationHours)},
	}, nil
}

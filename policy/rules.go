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

	"github.com/pimctl/pimctl/enums"
)

// Kind names one of the activation policy behaviours a role can be configured with
type Kind string

const (
	KindEnablement            Kind = "Enablement"
	KindJustification         Kind = "Justification"
	KindMfa                   Kind = "Mfa"
	KindTicketing             Kind = "Ticketing"
	KindApproval              Kind = "Approval"
	KindAuthenticationContext Kind = "AuthenticationContext"
	KindExpiration            Kind = "Expiration"
)

// Rule is a fully specified activation policy rule. The set of implementations is closed to this package.
type Rule interface {
	json.Marshaler

	Kind() Kind
	// RuleId is the identifier of the rule within the role's policy
	RuleId() string

	rule()
}

type ruleTarget struct {
	Caller              string   `json:"caller"`
	Operations          []string `json:"operations"`
	Level               string   `json:"level"`
	InheritableSettings []string `json:"inheritableSettings"`
	EnforcedSettings    []string `json:"enforcedSettings"`
}

// activationTarget scopes a rule to end users activating an eligible assignment
func activationTarget() ruleTarget {
	return ruleTarget{
		Caller:              "EndUser",
		Operations:          []string{"All"},
		Level:               "Assignment",
		InheritableSettings: []string{},
		EnforcedSettings:    []string{},
	}
}

type ruleHeader struct {
	Type   enums.RoleManagementPolicyRuleType `json:"@odata.type"`
	Id     string                             `json:"id"`
	Target ruleTarget                         `json:"target"`
}

func header(ruleType enums.RoleManagementPolicyRuleType, id string) ruleHeader {
	return ruleHeader{Type: ruleType, Id: id, Target: activationTarget()}
}

// EnablementRule lists the optional sub-rules that are switched on for activation
type EnablementRule struct {
	EnabledRules []string
}

func (EnablementRule) Kind() Kind     { return KindEnablement }
func (EnablementRule) RuleId() string { return enums.RuleIdEnablement }
func (EnablementRule) rule()          {}

func (s EnablementRule) MarshalJSON() ([]byte, error) {
	enabled := s.EnabledRules
	if enabled == nil {
		enabled = []string{}
	}
	return json.Marshal(struct {
		ruleHeader
		EnabledRules []string `json:"enabledRules"`
	}{header(enums.PolicyRuleEnablement, s.RuleId()), enabled})
}

// JustificationRule requires the requestor to explain each activation
type JustificationRule struct {
	IsEnabled bool
}

func (JustificationRule) Kind() Kind     { return KindJustification }
func (JustificationRule) RuleId() string { return enums.RuleIdJustification }
func (JustificationRule) rule()          {}

func (s JustificationRule) MarshalJSON() ([]byte, error) {
	return marshalToggle(enums.PolicyRuleJustification, s.RuleId(), s.IsEnabled)
}

// MfaRule requires multi-factor authentication on activation
type MfaRule struct {
	IsEnabled bool
}

func (MfaRule) Kind() Kind     { return KindMfa }
func (MfaRule) RuleId() string { return enums.RuleIdMfa }
func (MfaRule) rule()          {}

func (s MfaRule) MarshalJSON() ([]byte, error) {
	return marshalToggle(enums.PolicyRuleMfa, s.RuleId(), s.IsEnabled)
}

// TicketingRule requires ticket information on activation
type TicketingRule struct {
	IsEnabled bool
}

func (TicketingRule) Kind() Kind     { return KindTicketing }
func (TicketingRule) RuleId() string { return enums.RuleIdTicketing }
func (TicketingRule) rule()          {}

func (s TicketingRule) MarshalJSON() ([]byte, error) {
	return marshalToggle(enums.PolicyRuleTicketing, s.RuleId(), s.IsEnabled)
}

func marshalToggle(ruleType enums.RoleManagementPolicyRuleType, id string, enabled bool) ([]byte, error) {
	return json.Marshal(struct {
		ruleHeader
		IsEnabled bool `json:"isEnabled"`
	}{header(ruleType, id), enabled})
}

// ApprovalRule controls whether activation waits on an approver.
// When Required is false ApproverPrincipalId is empty and no stage is emitted.
type ApprovalRule struct {
	Required                       bool
	ApproverPrincipalId            string
	ApproverType                   enums.ApprovalStageApprover
	StageTimeoutDays               int
	ApproverJustificationRequired  bool
	RequestorJustificationRequired bool
}

func (ApprovalRule) Kind() Kind     { return KindApproval }
func (ApprovalRule) RuleId() string { return enums.RuleIdApproval }
func (ApprovalRule) rule()          {}

type subjectSet struct {
	Type    enums.ApprovalStageApprover `json:"@odata.type"`
	UserId  string                      `json:"userId,omitempty"`
	GroupId string                      `json:"groupId,omitempty"`
}

type approvalStage struct {
	ApprovalStageTimeOutInDays      int          `json:"approvalStageTimeOutInDays"`
	IsApproverJustificationRequired bool         `json:"isApproverJustificationRequired"`
	EscalationTimeInMinutes         int          `json:"escalationTimeInMinutes"`
	IsEscalationEnabled             bool         `json:"isEscalationEnabled"`
	PrimaryApprovers                []subjectSet `json:"primaryApprovers"`
	EscalationApprovers             []subjectSet `json:"escalationApprovers"`
}

type approvalSetting struct {
	IsApprovalRequired               bool            `json:"isApprovalRequired"`
	IsApprovalRequiredForExtension   bool            `json:"isApprovalRequiredForExtension"`
	IsRequestorJustificationRequired bool            `json:"isRequestorJustificationRequired"`
	ApprovalMode                     string          `json:"approvalMode"`
	ApprovalStages                   []approvalStage `json:"approvalStages"`
}

func (s ApprovalRule) MarshalJSON() ([]byte, error) {
	setting := approvalSetting{
		IsApprovalRequired:               s.Required,
		IsRequestorJustificationRequired: s.RequestorJustificationRequired,
		ApprovalMode:                     "SingleStage",
		ApprovalStages:                   []approvalStage{},
	}

	if s.Required {
		approver := subjectSet{Type: s.ApproverType}
		if s.ApproverType == enums.ApprovalStageSingleUser {
			approver.UserId = s.ApproverPrincipalId
		} else {
			approver.Type = enums.ApprovalStageGroupMembers
			approver.GroupId = s.ApproverPrincipalId
		}

		setting.ApprovalStages = append(setting.ApprovalStages, approvalStage{
			ApprovalStageTimeOutInDays:      s.StageTimeoutDays,
			IsApproverJustificationRequired: s.ApproverJustificationRequired,
			IsEscalationEnabled:             false,
			PrimaryApprovers:                []subjectSet{approver},
			EscalationApprovers:             []subjectSet{},
		})
	}

	return json.Marshal(struct {
		ruleHeader
		Setting approvalSetting `json:"setting"`
	}{header(enums.PolicyRuleApproval, s.RuleId()), setting})
}

// AuthenticationContextRule binds activation to a conditional access authentication context
type AuthenticationContextRule struct {
	IsEnabled  bool
	ClaimValue string
}

func (AuthenticationContextRule) Kind() Kind     { return KindAuthenticationContext }
func (AuthenticationContextRule) RuleId() string { return enums.RuleIdAuthenticationContext }
func (AuthenticationContextRule) rule()          {}

func (s AuthenticationContextRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ruleHeader
		IsEnabled  bool   `json:"isEnabled"`
		ClaimValue string `json:"claimValue"`
	}{header(enums.PolicyRuleAuthenticationContext, s.RuleId()), s.IsEnabled, s.ClaimValue})
}

// ExpirationRule bounds how long an activation lasts. MaximumDuration is an ISO-8601 duration.
type ExpirationRule struct {
	MaximumDuration string
}

func (ExpirationRule) Kind() Kind     { return KindExpiration }
func (ExpirationRule) RuleId() string { return enums.RuleIdExpiration }
func (ExpirationRule) rule()          {}

type expirationPattern struct {
	Type        enums.ExpirationPatternType `json:"type"`
	EndDateTime *string                     `json:"endDateTime"`
	Duration    string                      `json:"duration"`
}

func (s ExpirationRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ruleHeader
		IsExpirationRequired bool              `json:"isExpirationRequired"`
		MaximumDuration      string            `json:"maximumDuration"`
		Expiration           expirationPattern `json:"expiration"`
	}{
		header(enums.PolicyRuleExpiration, s.RuleId()),
		true,
		s.MaximumDuration,
		expirationPattern{
			Type:     enums.ExpirationAfterDateTime,
			Duration: s.MaximumDuration,
		},
	})
}

// RuleSet holds exactly one rule of every kind
type RuleSet struct {
	Enablement            EnablementRule
	Justification         JustificationRule
	Mfa                   MfaRule
	Ticketing             TicketingRule
	Approval              ApprovalRule
	AuthenticationContext AuthenticationContextRule
	Expiration            ExpirationRule
}

// Rules returns the rules in the order they are applied
func (s RuleSet) Rules() []Rule {
	return []Rule{
		s.Enablement,
		s.Justification,
		s.Mfa,
		s.Ticketing,
		s.Approval,
		s.AuthenticationContext,
		s.Expiration,
	}
}

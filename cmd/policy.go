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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pimctl/pimctl/client"
	"github.com/pimctl/pimctl/config"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/panicrecovery"
	"github.com/pimctl/pimctl/policy"
)

func init() {
	config.Init(policyApplyCmd, []config.Config{config.DefaultApproverGroup, config.DryRun})
	config.Init(policyShowCmd, []config.Config{config.RoleName})
	policyRootCmd.AddCommand(policyApplyCmd, policyShowCmd)
	rootCmd.AddCommand(policyRootCmd)
}

var policyRootCmd = &cobra.Command{
	Use:          "policy",
	Short:        "Reads and converges role activation policies",
	SilenceUsage: true,
}

var policyApplyCmd = &cobra.Command{
	Use:          "apply",
	Short:        "Applies the activation policy of every role in the config file's roles list",
	Run:          policyApplyCmdImpl,
	SilenceUsage: true,
}

var policyShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Shows the current activation policy of a role",
	Run:          policyShowCmdImpl,
	SilenceUsage: true,
}

// policyApplication reports what was done to one role's policy
type policyApplication struct {
	Role             string        `json:"role"`
	RoleDefinitionId string        `json:"roleDefinitionId"`
	PolicyId         string        `json:"policyId,omitempty"`
	Applied          []string      `json:"applied,omitempty"`
	Skipped          []string      `json:"skipped,omitempty"`
	Rules            []policy.Rule `json:"rules,omitempty"`
	Warnings         []string      `json:"warnings,omitempty"`
}

type policyClient interface {
	ResolveRole(ctx context.Context, name string) (models.RoleDefinition, error)
	ResolveGroup(ctx context.Context, name string) (models.GroupRef, error)
	ApplyPolicy(ctx context.Context, roleDefinitionId string, rules policy.RuleSet) (client.ApplyResult, error)
}

func policyApplyCmdImpl(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)

	roles, err := config.Roles()
	if err != nil {
		exit(err)
	} else if len(roles) == 0 {
		exit(errors.New("the config file lists no roles to apply"))
	}

	azClient := connectAndCreateClient()
	defer azClient.CloseIdleConnections()
	panicrecovery.HandleBubbledPanic(ctx, stop, log)

	if applications, err := applyRolePolicies(ctx, azClient, roles, config.DefaultApproverGroup.String(), config.DryRun.Bool()); err != nil {
		exit(err)
	} else {
		out := make(chan any, len(applications))
		for _, application := range applications {
			out <- NewAzureWrapper(enums.KindPolicyApplication, application)
		}
		close(out)
		outputStream(ctx, out)
	}
}

// applyRolePolicies builds and applies each role's policy in order, stopping at the first role that fails
func applyRolePolicies(ctx context.Context, azClient policyClient, roles []config.RoleDescriptor, defaultApproverGroup string, dryRun bool) ([]policyApplication, error) {
	var (
		applications      []policyApplication
		defaultApproverId string
	)

	for _, role := range roles {
		settings := role.Settings

		if settings.RequireApproval {
			if role.ApproverGroup != "" && settings.ApproverGroupId == "" {
				if group, err := azClient.ResolveGroup(ctx, role.ApproverGroup); err != nil {
					return applications, fmt.Errorf("unable to resolve the approver group of role %q: %w", role.Name, err)
				} else {
					settings.ApproverGroupId = group.Id
				}
			}

			if settings.ApproverGroupId == "" && settings.DefaultApproverGroupId == "" && defaultApproverGroup != "" {
				if defaultApproverId == "" {
					if group, err := azClient.ResolveGroup(ctx, defaultApproverGroup); err != nil {
						return applications, fmt.Errorf("unable to resolve the default approver group: %w", err)
					} else {
						defaultApproverId = group.Id
					}
				}
				settings.DefaultApproverGroupId = defaultApproverId
			}
		}

		rules, err := policy.Build(settings)
		if err != nil {
			return applications, fmt.Errorf("invalid policy settings for role %q: %w", role.Name, err)
		}

		roleDefinition, err := azClient.ResolveRole(ctx, role.Name)
		if err != nil {
			return applications, err
		}

		application := policyApplication{Role: role.Name, RoleDefinitionId: roleDefinition.Id}
		if dryRun {
			application.Rules = rules.Rules()
			log.Info("dry run; policy left unchanged", "role", role.Name)
		} else if result, err := azClient.ApplyPolicy(ctx, roleDefinition.Id, rules); err != nil {
			return applications, fmt.Errorf("unable to apply the policy of role %q: %w", role.Name, err)
		} else {
			application.PolicyId = result.PolicyId
			application.Applied = result.Applied
			application.Skipped = result.Skipped
			application.Warnings = ineffectiveToggles(settings, result.Skipped)
			for _, warning := range application.Warnings {
				log.Info(warning, "role", role.Name)
			}
			log.Info("applied role policy", "role", role.Name, "policyId", result.PolicyId, "applied", len(result.Applied), "skipped", len(result.Skipped))
		}

		applications = append(applications, application)
	}

	return applications, nil
}

// ineffectiveToggles names the requirements that the policy could not carry: their own rule was skipped
// and the enablement rule does not list them either
func ineffectiveToggles(settings policy.Settings, skipped []string) []string {
	toggles := []struct {
		required bool
		ruleId   string
		option   string
		enabled  string
	}{
		{settings.RequireJustification, enums.RuleIdJustification, "requireJustification", "Justification"},
		{settings.RequireMfa, enums.RuleIdMfa, "requireMfa", "MultiFactorAuthentication"},
		{settings.RequireTicket, enums.RuleIdTicketing, "requireTicket", "Ticketing"},
	}

	var warnings []string
	for _, toggle := range toggles {
		if toggle.required && slices.Contains(skipped, toggle.ruleId) && !slices.Contains(settings.EnabledRules, toggle.enabled) {
			warnings = append(warnings, fmt.Sprintf("%s has no effect on this policy; add %s to enabledRules", toggle.option, toggle.enabled))
		}
	}
	return warnings
}

func policyShowCmdImpl(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)

	name := config.RoleName.String()
	if name == "" {
		exit(errors.New("--role is required"))
	}

	azClient := connectAndCreateClient()
	defer azClient.CloseIdleConnections()
	panicrecovery.HandleBubbledPanic(ctx, stop, log)

	if role, err := azClient.ResolveRole(ctx, name); err != nil {
		exit(err)
	} else {
		outputStream(ctx, listRoleAssignmentPolicies(ctx, azClient, role.Id))
	}
}

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
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pimctl/pimctl/client"
	"github.com/pimctl/pimctl/client/query"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/panicrecovery"
	"github.com/pimctl/pimctl/pipeline"
	"github.com/pimctl/pimctl/policy"
)

func init() {
	listRootCmd.AddCommand(listRoleAssignmentPoliciesCmd)
}

var listRoleAssignmentPoliciesCmd = &cobra.Command{
	Use:          "role-policies",
	Short:        "Lists the activation policy of every directory role",
	Run:          listRoleAssignmentPoliciesCmdImpl,
	SilenceUsage: true,
}

func listRoleAssignmentPoliciesCmdImpl(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)

	var (
		azClient = connectAndCreateClient()
		start    = time.Now()
		stream   = listRoleAssignmentPolicies(ctx, azClient, "")
	)

	panicrecovery.HandleBubbledPanic(ctx, stop, log)
	outputStream(ctx, stream)
	duration := time.Since(start)
	log.Info("listing completed", "duration", duration.String())
}

// listRoleAssignmentPolicies streams the summarized directory-wide policy of every role, or of roleDefinitionId alone
func listRoleAssignmentPolicies(ctx context.Context, azClient client.AzureRoleManagementClient, roleDefinitionId string) <-chan any {
	var (
		out    = make(chan any)
		filter = "scopeId eq '/' and scopeType eq 'DirectoryRole'"
	)

	if roleDefinitionId != "" {
		filter += " and roleDefinitionId eq " + query.Quote(roleDefinitionId)
	}

	go func() {
		defer panicrecovery.PanicRecovery()
		defer close(out)

		count := 0
		log.V(1).Info("collecting role management policy assignments...")
		for item := range azClient.ListRoleAssignmentPolicies(ctx, query.GraphParams{
			Filter: filter,
			Expand: "policy($expand=rules)",
		}) {
			if item.Error != nil {
				log.Error(item.Error, "unable to continue listing role management policy assignments")
				return
			} else {
				summary, err := policy.Summarize(item.Ok)
				if err != nil {
					log.Error(err, "unable to decode role management policy", "policyId", item.Ok.PolicyId)
					continue
				}

				log.V(2).Info("found role management policy assignment", "roleDefinitionId", summary.RoleDefinitionId, "policyId", summary.PolicyId)
				count++

				if ok := pipeline.SendAny(ctx.Done(), out, azureWrapper[models.RolePolicySummary]{
					Data: summary,
					Kind: enums.KindRolePolicy,
				}); !ok {
					return
				}
			}
		}

		log.V(1).Info("finished listing role management policy assignments", "count", count)
	}()

	return out
}

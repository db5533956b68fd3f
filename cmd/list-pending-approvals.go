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

	"github.com/pimctl/pimctl/catalog"
	"github.com/pimctl/pimctl/enums"
	"github.com/pimctl/pimctl/models"
	"github.com/pimctl/pimctl/panicrecovery"
	"github.com/pimctl/pimctl/pipeline"
)

func init() {
	listRootCmd.AddCommand(listPendingApprovalsCmd)
}

var listPendingApprovalsCmd = &cobra.Command{
	Use:          "pending-approvals",
	Long:         "Lists the role activation requests waiting for your approval",
	SilenceUsage: true,
	Run:          listPendingApprovalsCmdImpl,
}

func listPendingApprovalsCmdImpl(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)

	azClient := connectAndCreateClient()
	log.V(1).Info("listing pending approvals")
	start := time.Now()
	stream := listPendingApprovals(ctx, catalog.New(azClient, log))
	panicrecovery.HandleBubbledPanic(ctx, stop, log)
	outputStream(ctx, stream)
	duration := time.Since(start)
	log.V(1).Info("listing completed", "duration", duration.String())
}

func listPendingApprovals(ctx context.Context, pending *catalog.Catalog) <-chan interface{} {
	var (
		out = make(chan interface{})
	)

	go func() {
		defer panicrecovery.PanicRecovery()
		defer close(out)

		listing := pending.ListPending(ctx)
		if listing.Failed() {
			log.Error(listing.Err, "unable to continue listing pending approvals")
			return
		}

		for _, item := range listing.Items {
			log.V(2).Info("found pending approval", "approvalId", item.ApprovalId, "role", item.RoleDisplayName)
			if ok := pipeline.SendAny(ctx.Done(), out, NewAzureWrapper[models.PendingApproval](enums.KindPendingApproval, item)); !ok {
				return
			}
		}
		log.V(1).Info("finished listing pending approvals", "count", len(listing.Items))
	}()

	return out
}
